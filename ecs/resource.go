package ecs

import "reflect"

// Resource provides systems with access to a single world-global value that
// is not attached to any entity: the turn counter, the RNG, the map. Values
// are boxed in the World, so the pointer returned by Get is stable for the
// world's lifetime.
type Resource[T any] struct {
	world *World
	ptr   *T
}

// NewResource ensures a resource of type T exists in the world and returns
// an accessor for it. If the resource already exists, value is ignored and
// the existing one is kept.
func NewResource[T any](world *World, value T) *Resource[T] {
	r := &Resource[T]{world: world}
	r.bind(world, &value)
	return r
}

// Init binds the resource accessor to a world, creating a zero-valued
// resource if none exists yet. Called by the Scheduler during system
// registration.
func (r *Resource[T]) Init(world *World) {
	r.bind(world, nil)
}

func (r *Resource[T]) bind(world *World, initial *T) {
	t := reflect.TypeFor[T]()
	r.world = world

	if existing, ok := world.resources[t]; ok {
		r.ptr = existing.(*T)
		return
	}

	boxed := new(T)
	if initial != nil {
		*boxed = *initial
	}
	world.resources[t] = boxed
	r.ptr = boxed
}

// Get returns the stable pointer to the resource value.
func (r *Resource[T]) Get() *T {
	return r.ptr
}
