package ecs

import "weak"

// EntityRef is a stable handle to a live entity. It survives the
// swap-removal reordering of the registry's lists and is invalidated when
// its entity is removed: a zero ID means the referent is gone.
type EntityRef struct {
	ID     EntityID
	entity *Entity
}

// CreateEntityRef returns a stable reference to the entity with the given
// id, or nil if no such entity is registered. Calling it again for the
// same id returns the same pointer while the previous ref is still alive;
// refs are cached weakly so unused ones can be collected.
func (r *Registry) CreateEntityRef(id EntityID) *EntityRef {
	e, ok := r.GetEntity(id)
	if !ok {
		return nil
	}

	if weakPtr, ok := r.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		// Weak pointer is dead, remove it.
		r.refs.Del(id)
	}

	ref := &EntityRef{
		ID:     id,
		entity: e,
	}
	r.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the referenced entity, or false if the ref is
// nil or has been invalidated.
func (r *Registry) ResolveEntityRef(ref *EntityRef) (*Entity, bool) {
	if ref == nil || ref.ID == 0 || ref.entity == nil {
		return nil, false
	}
	return ref.entity, true
}

// InvalidateEntityRef marks the ref as dead without removing its entity.
// It returns false if the ref was nil or already invalid.
func (r *Registry) InvalidateEntityRef(ref *EntityRef) bool {
	if ref == nil || ref.ID == 0 {
		return false
	}
	r.refs.Del(ref.ID)
	ref.ID = 0
	ref.entity = nil
	return true
}

// invalidateRef kills any live ref for the id. Called on entity removal.
func (r *Registry) invalidateRef(id EntityID) {
	weakPtr, ok := r.refs.Get(id)
	if !ok {
		return
	}
	if ref := weakPtr.Value(); ref != nil {
		ref.ID = 0
		ref.entity = nil
	}
	r.refs.Del(id)
}
