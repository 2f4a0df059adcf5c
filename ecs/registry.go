package ecs

import (
	"context"
	"errors"
	"time"
	"weak"

	"github.com/kamstrup/intmap"
)

// Duplicate registration is rejected outright: attaching the same pair
// twice would corrupt the membership bookkeeping, so the registry refuses
// rather than guessing what the caller meant.
var (
	ErrDuplicateEntity = errors.New("ecs: entity already registered")
	ErrDuplicateSystem = errors.New("ecs: system already registered")
)

// Registry is the sole authority over entity and system registration and
// the per-tick dispatch loop. It owns the canonical entity and system
// lists; membership edges between the two are only ever created and
// destroyed here.
//
// A Registry is single-threaded: all mutation happens synchronously inside
// AddEntity/RemoveEntity/AddSystem/RemoveSystem/Update. The one hazard is
// reentrant structural mutation from inside an Update callback, which is
// honored with last-observed-state semantics for the remainder of that
// tick (see Update). Commands provides a deferred alternative.
type Registry struct {
	entities []*Entity
	systems  []System

	tick         uint64
	lastUpdate   time.Time
	systemsFirst bool

	clock Clock
	ids   IDAllocator

	refs     *intmap.Map[EntityID, weak.Pointer[EntityRef]]
	commands *Commands
}

// NewRegistry creates an empty registry. By default it traverses
// entities-first, uses the wall clock, and allocates sequential ids.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		clock: systemClock{},
		ids:   newSequentialAllocator(),
		refs:  intmap.New[EntityID, weak.Pointer[EntityRef]](256),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.commands = newCommands()
	r.lastUpdate = r.clock.Now()
	return r
}

// NewEntity constructs a detached entity with the next id from the
// registry's allocator. The entity is not registered; pass it to AddEntity
// to make it live.
func (r *Registry) NewEntity() *Entity {
	return NewEntity(r.ids.Next())
}

// AddEntity registers an entity, tests it against every system's predicate
// and attaches it to the ones that match, in system registration order.
// Adding an entity that is already registered returns ErrDuplicateEntity
// and changes nothing.
func (r *Registry) AddEntity(e *Entity) error {
	if r.indexOfEntity(e) >= 0 {
		return ErrDuplicateEntity
	}
	r.entities = append(r.entities, e)
	e.registry = r
	for _, s := range r.systems {
		if s.Test(e) {
			r.attach(e, s)
		}
	}
	return nil
}

// RemoveEntity unregisters an entity. The entity is first detached from
// every system tracking it, then swap-removed from the entity list; any
// live EntityRef for it is invalidated. Removing an entity that is not
// registered is a no-op, by design: the call returns its argument
// unchanged either way.
func (r *Registry) RemoveEntity(e *Entity) *Entity {
	i := r.indexOfEntity(e)
	if i < 0 {
		return e
	}
	e.dispose()
	r.entities = swapRemove(r.entities, i)
	e.registry = nil
	r.invalidateRef(e.id)
	return e
}

// AddSystem registers a system. Initialize runs exactly once, before any
// entity is attached; then every registered entity is tested against the
// system's predicate and matches are attached in entity registration
// order. Adding a system that is already registered returns
// ErrDuplicateSystem and changes nothing.
func (r *Registry) AddSystem(s System) error {
	if r.indexOfSystem(s) >= 0 {
		return ErrDuplicateSystem
	}
	r.systems = append(r.systems, s)
	b := s.base()
	if b.stats == nil {
		b.stats = newExecStats(systemName(s))
	}
	s.Initialize()
	for _, e := range r.entities {
		if e.hasSystem(s) {
			// Stale edge left in the entity's cache by an earlier removal
			// of this system; a pair is never attached twice.
			continue
		}
		if s.Test(e) {
			r.attach(e, s)
		}
	}
	return nil
}

// RemoveSystem unregisters a system: it is swap-removed from the system
// list and its own tracked list is reset, then Dispose runs exactly once.
// Removing a system that is not registered is a no-op.
//
// Entities that were tracking the system keep it in their membership
// caches; those references go stale rather than being eagerly cleared.
// Under the entities-first traversal a stale edge keeps receiving updates
// until the entity itself is removed, mirroring the last-observed-state
// contract of Update. Detaching twice is safe, so a later RemoveEntity of
// those entities works normally, and AddSystem refuses to attach a pair
// whose stale edge is still cached.
func (r *Registry) RemoveSystem(s System) System {
	i := r.indexOfSystem(s)
	if i < 0 {
		return s
	}
	r.systems = swapRemove(r.systems, i)
	s.base().entities = nil
	s.Dispose()
	return s
}

// GetEntity returns the first registered entity with the given id. The
// scan is linear; id uniqueness is the allocator's contract, not checked
// here. The second result is false when no entity matches.
func (r *Registry) GetEntity(id EntityID) (*Entity, bool) {
	for _, e := range r.entities {
		if e.id == id {
			return e, true
		}
	}
	return nil, false
}

// Entities returns the registered entities in insertion order. The slice
// is a copy and may be retained by the caller.
func (r *Registry) Entities() []*Entity {
	out := make([]*Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

// Systems returns the registered systems in insertion order. The slice is
// a copy and may be retained by the caller.
func (r *Registry) Systems() []System {
	out := make([]System, len(r.systems))
	copy(out, r.systems)
	return out
}

// EntityCount returns the number of registered entities.
func (r *Registry) EntityCount() int {
	return len(r.entities)
}

// SystemCount returns the number of registered systems.
func (r *Registry) SystemCount() int {
	return len(r.systems)
}

// Tick returns the current tick counter: the number of completed Update
// calls. The next Update dispatches against this value.
func (r *Registry) Tick() uint64 {
	return r.tick
}

// Commands returns the registry's deferred-command buffer. Operations
// queued on it are applied at the end of the current (or next) Update.
func (r *Registry) Commands() *Commands {
	return r.commands
}

// Update runs one tick: it computes the elapsed time since the previous
// tick, dispatches Update to every (entity, system) membership edge whose
// system is enabled and due on the current counter, flushes the deferred
// command buffer, and finally increments the counter.
//
// Dispatch iterates over slice headers captured when each loop starts.
// Callbacks that add or remove entities or systems on this registry during
// the tick therefore see last-observed-state behavior: a removed entity
// may still receive its remaining system callbacks this tick, newly added
// entries may or may not be visited. This is intentional; use Commands to
// queue structural changes until after the traversal instead.
func (r *Registry) Update() {
	now := r.clock.Now()
	elapsed := now.Sub(r.lastUpdate).Seconds()

	if r.systemsFirst {
		r.updateSystemsFirst(elapsed)
	} else {
		r.updateEntitiesFirst(elapsed)
	}

	r.commands.Flush(r)
	r.tick++
	r.lastUpdate = now
}

func (r *Registry) updateEntitiesFirst(elapsed float64) {
	entities := r.entities
	for i := range entities {
		e := entities[i]
		attached := e.systems
		for j := range attached {
			r.dispatch(attached[j], e, elapsed)
		}
	}
}

func (r *Registry) updateSystemsFirst(elapsed float64) {
	systems := r.systems
	for i := range systems {
		s := systems[i]
		tracked := s.base().entities
		for j := range tracked {
			r.dispatch(s, tracked[j], elapsed)
		}
	}
}

// dispatch applies the gating rule to one membership edge: skip unless the
// system is enabled and the tick counter is divisible by its frequency.
// Frequency aligns to the global counter (ticks 0, n, 2n, ...), so a
// system added mid-run synchronizes with already-registered ones instead
// of counting from its own registration tick.
func (r *Registry) dispatch(s System, e *Entity, elapsed float64) {
	b := s.base()
	if b.disabled || r.tick%b.Frequency() != 0 {
		return
	}
	start := time.Now()
	s.Update(e, elapsed)
	if b.stats != nil {
		b.stats.record(time.Since(start))
	}
}

// Run ticks Update at the given interval until the context is cancelled.
// Everything runs on the calling goroutine; the registry stays
// single-threaded.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Update()
		}
	}
}

// attach records a membership edge on both sides within one call: the
// system joins the entity's cache and the entity joins the system's
// tracked list. Callers must have verified the pair is not yet attached.
func (r *Registry) attach(e *Entity, s System) {
	e.systems = append(e.systems, s)
	s.base().attach(e)
}

func (r *Registry) indexOfEntity(e *Entity) int {
	for i, candidate := range r.entities {
		if candidate == e {
			return i
		}
	}
	return -1
}

func (r *Registry) indexOfSystem(s System) int {
	for i, candidate := range r.systems {
		if candidate == s {
			return i
		}
	}
	return -1
}
