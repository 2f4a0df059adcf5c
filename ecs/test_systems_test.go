package ecs_test

import (
	"time"

	"github.com/plus3/downbeat/ecs"
)

// Common component names used across tests.
const (
	position = "position"
	velocity = "velocity"
	health   = "health"
	sprite   = "sprite"
)

type vec2 struct {
	X, Y float64
}

type hitpoints struct {
	Current, Max int
}

// updateCall records one dispatch as seen by a recordingSystem.
type updateCall struct {
	entity  *ecs.Entity
	tick    uint64
	elapsed float64
}

// recordingSystem appends an updateCall for every dispatch it receives.
type recordingSystem struct {
	ecs.SystemBase
	registry *ecs.Registry
	calls    []updateCall
}

func newRecordingSystem(frequency uint64, requires ...string) *recordingSystem {
	return &recordingSystem{SystemBase: ecs.NewSystemBase(frequency, requires...)}
}

func (s *recordingSystem) Update(e *ecs.Entity, elapsed float64) {
	call := updateCall{entity: e, elapsed: elapsed}
	if s.registry != nil {
		call.tick = s.registry.Tick()
	}
	s.calls = append(s.calls, call)
}

// lifecycleSystem counts Initialize/Dispose invocations.
type lifecycleSystem struct {
	ecs.SystemBase
	initialized int
	disposed    int
}

func newLifecycleSystem(requires ...string) *lifecycleSystem {
	return &lifecycleSystem{SystemBase: ecs.NewSystemBase(1, requires...)}
}

func (s *lifecycleSystem) Initialize() { s.initialized++ }
func (s *lifecycleSystem) Dispose()    { s.disposed++ }

func (s *lifecycleSystem) Update(*ecs.Entity, float64) {}

// movementSystem integrates velocity into position, the classic smoke test.
type movementSystem struct {
	ecs.SystemBase
}

func newMovementSystem() *movementSystem {
	return &movementSystem{SystemBase: ecs.NewSystemBase(1, position, velocity)}
}

func (s *movementSystem) Update(e *ecs.Entity, elapsed float64) {
	pos, _ := e.Get(position)
	vel, _ := e.Get(velocity)
	p := pos.(*vec2)
	v := vel.(*vec2)
	p.X += v.X * elapsed
	p.Y += v.Y * elapsed
}

// callbackSystem runs an arbitrary function per dispatch, for tests that
// mutate the registry from inside a tick.
type callbackSystem struct {
	ecs.SystemBase
	fn func(e *ecs.Entity, elapsed float64)
}

func newCallbackSystem(fn func(*ecs.Entity, float64), requires ...string) *callbackSystem {
	return &callbackSystem{
		SystemBase: ecs.NewSystemBase(1, requires...),
		fn:         fn,
	}
}

func (s *callbackSystem) Update(e *ecs.Entity, elapsed float64) {
	s.fn(e, elapsed)
}

// manualClock is a Clock controlled by the test.
type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Unix(1000, 0)}
}

func (c *manualClock) Now() time.Time {
	return c.now
}

func (c *manualClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// addEntityWith registers a fresh entity carrying the given component
// names, each mapped to a new vec2.
func addEntityWith(r *ecs.Registry, names ...string) *ecs.Entity {
	e := r.NewEntity()
	for _, name := range names {
		e.Set(name, &vec2{})
	}
	if err := r.AddEntity(e); err != nil {
		panic(err)
	}
	return e
}
