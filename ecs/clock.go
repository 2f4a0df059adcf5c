package ecs

import "time"

// Clock supplies the current time for elapsed-time computation between
// ticks. Values must be non-decreasing within a process lifetime.
type Clock interface {
	Now() time.Time
}

// systemClock is the default Clock, backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
