package ecs

import "sort"

// EntityID uniquely identifies a live entity. IDs are handed out by the
// registry's IDAllocator; uniqueness among live entities is the allocator's
// contract and is not re-verified here.
type EntityID uint64

// Entity is a bag of named components. The component data itself is opaque
// to this package: membership testing only ever asks whether a name is
// present, never what the data looks like.
type Entity struct {
	id         EntityID
	components map[string]any
	systems    []System
	registry   *Registry
}

// NewEntity creates a detached entity with the given id. The entity only
// becomes live once it is passed to Registry.AddEntity. Most callers should
// prefer Registry.NewEntity, which draws the id from the registry's
// allocator.
func NewEntity(id EntityID) *Entity {
	return &Entity{
		id:         id,
		components: make(map[string]any),
	}
}

// ID returns the entity's id. It never changes after construction.
func (e *Entity) ID() EntityID {
	return e.id
}

// Set stores data under the given component name, replacing any previous
// value.
//
// Membership is lazy: mutating components on an entity that is already
// registered does not re-test it against system predicates. Predicates are
// only evaluated when an entity or a system is added to the registry.
func (e *Entity) Set(name string, data any) {
	e.components[name] = data
}

// Get returns the data stored under the given component name.
func (e *Entity) Get(name string) (any, bool) {
	data, ok := e.components[name]
	return data, ok
}

// Has reports whether a component with the given name is present.
func (e *Entity) Has(name string) bool {
	_, ok := e.components[name]
	return ok
}

// Remove deletes the named component. Like Set, it does not re-test system
// predicates; see Set for the membership model.
func (e *Entity) Remove(name string) {
	delete(e.components, name)
}

// ComponentNames returns the names of all components on the entity, sorted.
func (e *Entity) ComponentNames() []string {
	names := make([]string, 0, len(e.components))
	for name := range e.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ComponentCount returns the number of components on the entity.
func (e *Entity) ComponentCount() int {
	return len(e.components)
}

// Systems returns the systems currently tracking this entity, in attachment
// order. The slice is a copy and may be retained by the caller.
func (e *Entity) Systems() []System {
	out := make([]System, len(e.systems))
	copy(out, e.systems)
	return out
}

// Registry returns the registry the entity is live in, or nil if the entity
// has not been added (or has been removed).
func (e *Entity) Registry() *Registry {
	return e.registry
}

// hasSystem reports whether the system is in the membership cache, stale
// edges included.
func (e *Entity) hasSystem(s System) bool {
	for _, attached := range e.systems {
		if attached == s {
			return true
		}
	}
	return false
}

// dispose detaches the entity from every system tracking it and clears the
// membership cache. Called by the registry as the first step of removal,
// before the entity leaves the registry's own list.
func (e *Entity) dispose() {
	for _, s := range e.systems {
		s.base().detach(e)
	}
	e.systems = nil
}
