package ecs

import (
	"reflect"
	"time"
)

// RegistryStats is a point-in-time snapshot of the registry and the
// execution history of its systems.
type RegistryStats struct {
	Tick         uint64
	EntityCount  int
	SystemCount  int
	TotalUpdates int64
	Systems      []SystemStats
}

// SystemStats describes one registered system and its dispatch history.
// Durations cover individual Update calls, one per matched entity.
type SystemStats struct {
	Name          string
	Frequency     uint64
	Enabled       bool
	EntityCount   int
	UpdateCount   int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

type execStats struct {
	name          string
	updateCount   int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

func newExecStats(name string) *execStats {
	return &execStats{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	}
}

func (st *execStats) record(duration time.Duration) {
	st.updateCount++
	st.lastDuration = duration
	st.totalDuration += duration

	if duration < st.minDuration {
		st.minDuration = duration
	}
	if duration > st.maxDuration {
		st.maxDuration = duration
	}
}

func (st *execStats) snapshot() (minDur, maxDur, avgDur time.Duration) {
	if st.updateCount == 0 {
		return 0, 0, 0
	}
	return st.minDuration, st.maxDuration, st.totalDuration / time.Duration(st.updateCount)
}

// CollectStats returns statistics about the registry and every registered
// system, in registration order. Stats for a system accumulate across its
// lifetime and survive removal and re-registration.
func (r *Registry) CollectStats() *RegistryStats {
	stats := &RegistryStats{
		Tick:        r.tick,
		EntityCount: len(r.entities),
		SystemCount: len(r.systems),
		Systems:     make([]SystemStats, len(r.systems)),
	}

	for i, s := range r.systems {
		b := s.base()
		st := b.stats
		if st == nil {
			st = newExecStats(systemName(s))
		}
		minDur, maxDur, avgDur := st.snapshot()

		stats.Systems[i] = SystemStats{
			Name:          st.name,
			Frequency:     b.Frequency(),
			Enabled:       !b.disabled,
			EntityCount:   len(b.entities),
			UpdateCount:   st.updateCount,
			MinDuration:   minDur,
			MaxDuration:   maxDur,
			AvgDuration:   avgDur,
			LastDuration:  st.lastDuration,
			TotalDuration: st.totalDuration,
		}
		stats.TotalUpdates += st.updateCount
	}

	return stats
}

// systemName resolves a display name from the system's concrete type.
func systemName(s System) string {
	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
