package ecs

// System represents a behavior that operates on entities carrying a specific
// set of named components. Concrete systems embed SystemBase, which supplies
// the tracked entity list, frequency and enable state, the default
// all-names-present predicate, and no-op lifecycle hooks; only Update is
// left to implement.
type System interface {
	// Test reports whether the entity matches this system's predicate.
	// It must be pure: no side effects, no dependence on anything but the
	// entity's current component names.
	Test(e *Entity) bool

	// Update processes one matched entity. elapsed is the time in seconds
	// since the registry's previous tick.
	Update(e *Entity, elapsed float64)

	// Initialize is called exactly once when the system is added to a
	// registry, before any entity is attached to it.
	Initialize()

	// Dispose is called exactly once when the system is removed, after it
	// has left the registry's system list.
	Dispose()

	// base exposes the tracked list and gating state to the registry.
	// Keeping it unexported makes the registry the single authority over
	// attachment: user code gets it for free by embedding SystemBase but
	// cannot reach the tracked list from outside this package.
	base() *SystemBase
}

// SystemBase is the embeddable half of every System implementation: the
// tracked entity list, the required-names predicate, and frequency/enable
// gating. The zero value is an enabled every-tick system with an empty
// predicate; NewSystemBase fills in the interesting parts.
type SystemBase struct {
	requires  []string
	entities  []*Entity
	frequency uint64
	disabled  bool
	stats     *execStats
}

// NewSystemBase returns a SystemBase updating every frequency-th tick and
// requiring the given component names. A frequency of 0 is treated as 1.
func NewSystemBase(frequency uint64, requires ...string) SystemBase {
	return SystemBase{
		requires:  requires,
		frequency: frequency,
	}
}

func (b *SystemBase) base() *SystemBase {
	return b
}

// Test is the default predicate: true iff every required component name is
// present on the entity. Systems with more exotic matching rules shadow it.
func (b *SystemBase) Test(e *Entity) bool {
	for _, name := range b.requires {
		if !e.Has(name) {
			return false
		}
	}
	return true
}

// Initialize is a no-op by default.
func (b *SystemBase) Initialize() {}

// Dispose is a no-op by default.
func (b *SystemBase) Dispose() {}

// Requires returns the component names of the default predicate.
func (b *SystemBase) Requires() []string {
	return b.requires
}

// Entities returns the entities currently tracked by this system, in
// attachment order. The slice is a copy and may be retained by the caller.
func (b *SystemBase) Entities() []*Entity {
	out := make([]*Entity, len(b.entities))
	copy(out, b.entities)
	return out
}

// EntityCount returns the number of tracked entities.
func (b *SystemBase) EntityCount() int {
	return len(b.entities)
}

// Frequency returns the system's update frequency: the system runs on ticks
// where the registry's counter is divisible by it.
func (b *SystemBase) Frequency() uint64 {
	if b.frequency == 0 {
		return 1
	}
	return b.frequency
}

// Enabled reports whether the system receives updates.
func (b *SystemBase) Enabled() bool {
	return !b.disabled
}

// SetEnabled turns update dispatch for this system on or off. Disabling
// does not detach tracked entities; membership is unaffected.
func (b *SystemBase) SetEnabled(enabled bool) {
	b.disabled = !enabled
}

// attach appends an entity to the tracked list. Only the registry calls
// this, and only for pairs it has verified are not already attached.
func (b *SystemBase) attach(e *Entity) {
	b.entities = append(b.entities, e)
}

// detach removes an entity from the tracked list by swap-removal. Absent
// entities are a no-op, so detaching twice is safe.
func (b *SystemBase) detach(e *Entity) {
	for i, tracked := range b.entities {
		if tracked == e {
			b.entities = swapRemove(b.entities, i)
			return
		}
	}
}
