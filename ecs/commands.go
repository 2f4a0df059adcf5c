package ecs

// Commands buffers structural registry operations so they can be applied
// after the current tick's traversal instead of mid-iteration. Update
// callbacks that mutate the registry directly get last-observed-state
// semantics (see Registry.Update); queuing through Commands sidesteps that
// entirely.
type Commands struct {
	entityAdds    []*Entity
	entityRemoves []*Entity
	systemAdds    []System
	systemRemoves []System
	defers        []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// AddEntity queues an entity registration.
func (c *Commands) AddEntity(e *Entity) {
	c.entityAdds = append(c.entityAdds, e)
}

// RemoveEntity queues an entity removal.
func (c *Commands) RemoveEntity(e *Entity) {
	c.entityRemoves = append(c.entityRemoves, e)
}

// AddSystem queues a system registration.
func (c *Commands) AddSystem(s System) {
	c.systemAdds = append(c.systemAdds, s)
}

// RemoveSystem queues a system removal.
func (c *Commands) RemoveSystem(s System) {
	c.systemRemoves = append(c.systemRemoves, s)
}

// Defer queues an arbitrary function, run after all queued structural
// operations.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies all queued operations to the registry and resets the
// buffer. Removals run before additions; duplicate additions are dropped
// silently since the target may have been registered by an earlier queued
// operation. Registry.Update calls Flush at the end of every tick.
func (c *Commands) Flush(r *Registry) {
	for _, e := range c.entityRemoves {
		r.RemoveEntity(e)
	}
	for _, s := range c.systemRemoves {
		r.RemoveSystem(s)
	}
	for _, e := range c.entityAdds {
		_ = r.AddEntity(e)
	}
	for _, s := range c.systemAdds {
		_ = r.AddSystem(s)
	}
	for _, fn := range c.defers {
		fn()
	}

	c.entityAdds = c.entityAdds[:0]
	c.entityRemoves = c.entityRemoves[:0]
	c.systemAdds = c.systemAdds[:0]
	c.systemRemoves = c.systemRemoves[:0]
	c.defers = c.defers[:0]
}
