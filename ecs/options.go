package ecs

// Option configures a Registry at construction time.
type Option func(*Registry)

// SystemsFirst selects the systems-first traversal for Update: the outer
// loop walks systems in registration order, the inner loop walks each
// system's tracked entities. The default is entities-first, which walks
// entities on the outside and each entity's attached systems on the inside.
// Both visit the same (entity, system) pairs when nothing mutates the
// registry mid-tick; they differ in which structural mutations a reentrant
// callback can observe.
func SystemsFirst() Option {
	return func(r *Registry) {
		r.systemsFirst = true
	}
}

// WithClock replaces the wall clock used for elapsed-time computation.
// Mainly useful for deterministic tests.
func WithClock(c Clock) Option {
	return func(r *Registry) {
		r.clock = c
	}
}

// WithIDAllocator replaces the sequential entity id allocator.
func WithIDAllocator(a IDAllocator) Option {
	return func(r *Registry) {
		r.ids = a
	}
}
