package ecs

import "iter"

// Query wraps a View with per-tick caching for repeated iteration inside
// systems. The matching archetype list is re-derived whenever the world
// grows a new archetype; Collect snapshots entities and component pointers
// so a system can iterate the same result set any number of times within a
// tick.
//
// The Scheduler calls Collect on every Query field of a system before the
// system executes. Code driving a Query by hand must call Collect itself.
type Query[T any] struct {
	view  *View[T]
	world *World

	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	entities []Entity
	items    []T
	valid    bool
}

// NewQuery creates a collected-on-demand query over the world.
func NewQuery[T any](world *World) *Query[T] {
	q := &Query[T]{}
	q.Init(world)
	return q
}

// Init binds the query to a world. Called by the Scheduler during system
// registration; zero-value Query fields become usable afterwards.
func (q *Query[T]) Init(world *World) {
	q.view = NewView[T](world)
	q.world = world
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.valid = false
}

// Collect snapshots the query's entities and component data for this tick.
func (q *Query[T]) Collect() {
	if count := q.world.archetypeCount(); count != q.lastArchetypeCount {
		q.cachedArchetypes = nil
		q.lastArchetypeCount = count
	}
	if q.cachedArchetypes == nil {
		q.cachedArchetypes = make([]*Archetype, 0)
		for _, a := range q.world.ordered {
			if q.view.matches(a) {
				q.cachedArchetypes = append(q.cachedArchetypes, a)
			}
		}
	}

	q.entities = q.entities[:0]
	q.items = q.items[:0]

	for _, a := range q.cachedArchetypes {
		for e, item := range q.view.iterArchetype(a) {
			q.entities = append(q.entities, e)
			q.items = append(q.items, item)
		}
	}

	q.valid = true
}

// Iter returns an iterator over the collected entity handles and component
// data. Panics if Collect has not run this tick.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	if !q.valid {
		panic("ecs: Query.Iter() called before Query.Collect()")
	}

	return func(yield func(Entity, T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.items[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the collected component data only.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.valid {
		panic("ecs: Query.Values() called before Query.Collect()")
	}

	return func(yield func(T) bool) {
		for i := range q.items {
			if !yield(q.items[i]) {
				return
			}
		}
	}
}

// Count returns the number of collected rows.
func (q *Query[T]) Count() int {
	return len(q.entities)
}
