package ecs

// IDAllocator hands out entity ids. Every value returned by Next must be
// unique among all currently-live entities; the registry trusts this
// contract and never verifies it.
type IDAllocator interface {
	Next() EntityID
}

// sequentialAllocator is the default IDAllocator: a plain counter starting
// at 1, so the zero EntityID stays free to mean "no entity" (EntityRef uses
// it as the invalidated marker).
type sequentialAllocator struct {
	next EntityID
}

func newSequentialAllocator() *sequentialAllocator {
	return &sequentialAllocator{next: 1}
}

func (a *sequentialAllocator) Next() EntityID {
	id := a.next
	a.next++
	return id
}
