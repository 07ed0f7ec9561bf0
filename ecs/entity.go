package ecs

// Entity is an opaque handle to a spawned entity. It packs a 32-bit slot
// index (lower bits) and a 32-bit generation (upper bits). The generation is
// bumped every time a slot is recycled, so a handle held across a despawn
// can never alias the slot's next occupant.
type Entity uint64

// NoEntity is the zero handle. It never refers to a live entity.
const NoEntity Entity = 0

func newEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index returns the allocator slot index of the handle.
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation returns the generation the handle was issued with.
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

// entityAllocator hands out slot indices and tracks the live generation of
// each slot. Slot 0 is burned at construction so NoEntity stays invalid.
type entityAllocator struct {
	generations []uint32
	free        []uint32
}

func newEntityAllocator() *entityAllocator {
	return &entityAllocator{
		generations: make([]uint32, 1),
	}
}

// alloc returns a fresh handle, reusing a released slot when one exists.
func (a *entityAllocator) alloc() Entity {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		return newEntity(index, a.generations[index])
	}

	index := uint32(len(a.generations))
	a.generations = append(a.generations, 0)
	return newEntity(index, 0)
}

// release invalidates every outstanding handle to the slot and queues the
// slot for reuse. The caller must not release a handle twice.
func (a *entityAllocator) release(e Entity) {
	index := e.Index()
	a.generations[index]++
	a.free = append(a.free, index)
}

// alive reports whether the handle's generation matches the slot's current
// generation.
func (a *entityAllocator) alive(e Entity) bool {
	if e == NoEntity {
		return false
	}
	index := e.Index()
	if index >= uint32(len(a.generations)) {
		return false
	}
	return a.generations[index] == e.Generation()
}
