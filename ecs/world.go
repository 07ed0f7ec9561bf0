package ecs

import (
	"reflect"
)

// entityMeta records where a live entity's row lives.
type entityMeta struct {
	archetype *Archetype
	row       int
}

// World owns the entity allocator, the archetype tables, and the resource
// box. It is not safe for concurrent use; systems hand structural changes to
// Commands, which applies them after the tick's systems have run.
type World struct {
	registry   *ComponentRegistry
	allocator  *entityAllocator
	metas      []entityMeta         // indexed by entity slot index
	archetypes map[mask]*Archetype  // keyed by component mask
	ordered    []*Archetype         // creation order, so iteration is deterministic
	resources  map[reflect.Type]any // boxed *T per resource type
}

// NewWorld creates an empty world over the given component registry.
func NewWorld(registry *ComponentRegistry) *World {
	return &World{
		registry:   registry,
		allocator:  newEntityAllocator(),
		archetypes: make(map[mask]*Archetype),
		resources:  make(map[reflect.Type]any),
	}
}

// Registry returns the component registry this world was built over.
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// Alive reports whether the handle refers to a live entity.
func (w *World) Alive(e Entity) bool {
	return w.allocator.alive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	n := 0
	for _, a := range w.archetypes {
		n += a.Len()
	}
	return n
}

// Spawn creates a new entity with the provided components and returns its
// handle. Components may be passed by value or by pointer; either way the
// world stores a copy. Panics on empty, duplicate, or unregistered
// components.
func (w *World) Spawn(components ...any) Entity {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	ids, values := w.normalize(components)
	m := makeMask(ids)
	a := w.tableFor(m, ids)

	e := w.allocator.alloc()
	row := a.push(e, values)
	w.setMeta(e, a, row)
	return e
}

// Despawn removes the entity and all its components. Returns false if the
// handle is stale or was never live.
func (w *World) Despawn(e Entity) bool {
	if !w.Alive(e) {
		return false
	}

	meta := w.metas[e.Index()]
	moved := meta.archetype.swapRemove(meta.row)
	if moved != NoEntity {
		w.metas[moved.Index()].row = meta.row
	}

	w.metas[e.Index()] = entityMeta{}
	w.allocator.release(e)
	return true
}

// Add attaches a component to a live entity, migrating it to the matching
// archetype. If the entity already has the component type, the value is
// overwritten in place. Returns false for dead handles.
func (w *World) Add(e Entity, component any) bool {
	if !w.Alive(e) {
		return false
	}

	t := componentTypeOf(component)
	id := w.registry.mustID(t)

	meta := w.metas[e.Index()]
	src := meta.archetype

	if src.has(id) {
		return src.column(id).set(meta.row, component)
	}

	// Build the widened id set, keeping it sorted.
	newIDs := make([]ComponentID, 0, len(src.ids)+1)
	inserted := false
	for _, existing := range src.ids {
		if !inserted && id < existing {
			newIDs = append(newIDs, id)
			inserted = true
		}
		newIDs = append(newIDs, existing)
	}
	if !inserted {
		newIDs = append(newIDs, id)
	}

	newMask := src.mask
	newMask.set(id)
	dst := w.tableFor(newMask, newIDs)

	newRow := -1
	for i, cid := range dst.ids {
		if cid == id {
			newRow = dst.columns[i].appendValue(component)
		} else {
			newRow = dst.columns[i].copyFrom(src.column(cid), meta.row)
		}
	}
	dst.entities = append(dst.entities, e)

	moved := src.swapRemove(meta.row)
	if moved != NoEntity {
		w.metas[moved.Index()].row = meta.row
	}

	w.setMeta(e, dst, newRow)
	return true
}

// Remove detaches the component type T from the entity. Removing the last
// component despawns the entity. Returns false if the entity is dead or does
// not have the component.
func Remove[T any](w *World, e Entity) bool {
	return w.removeByType(e, reflect.TypeFor[T]())
}

func (w *World) removeByType(e Entity, t reflect.Type) bool {
	if !w.Alive(e) {
		return false
	}

	id, ok := w.registry.idOf(t)
	if !ok {
		return false
	}

	meta := w.metas[e.Index()]
	src := meta.archetype
	if !src.has(id) {
		return false
	}

	if len(src.ids) == 1 {
		// Nothing left to store; the entity ceases to exist.
		return w.Despawn(e)
	}

	newIDs := make([]ComponentID, 0, len(src.ids)-1)
	for _, existing := range src.ids {
		if existing != id {
			newIDs = append(newIDs, existing)
		}
	}

	newMask := src.mask
	newMask.unset(id)
	dst := w.tableFor(newMask, newIDs)

	newRow := -1
	for i, cid := range dst.ids {
		newRow = dst.columns[i].copyFrom(src.column(cid), meta.row)
	}
	dst.entities = append(dst.entities, e)

	moved := src.swapRemove(meta.row)
	if moved != NoEntity {
		w.metas[moved.Index()].row = meta.row
	}

	w.setMeta(e, dst, newRow)
	return true
}

// Get returns a pointer to the entity's T component, or nil if the entity is
// dead or lacks the component. The pointer stays valid until the next
// structural change to the entity's archetype.
func Get[T any](w *World, e Entity) *T {
	if !w.Alive(e) {
		return nil
	}

	id, ok := w.registry.idOf(reflect.TypeFor[T]())
	if !ok {
		return nil
	}

	meta := w.metas[e.Index()]
	col := meta.archetype.column(id)
	if col == nil {
		return nil
	}
	return (*T)(col.ptr(meta.row))
}

// Has reports whether the entity is live and has a T component.
func Has[T any](w *World, e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	id, ok := w.registry.idOf(reflect.TypeFor[T]())
	if !ok {
		return false
	}
	return w.metas[e.Index()].archetype.has(id)
}

// Component returns the entity's component of the given type boxed as a *T,
// or nil. Intended for reflection-driven tooling; typed code should use Get.
func (w *World) Component(e Entity, t reflect.Type) any {
	if !w.Alive(e) {
		return nil
	}
	id, ok := w.registry.idOf(t)
	if !ok {
		return nil
	}
	meta := w.metas[e.Index()]
	col := meta.archetype.column(id)
	if col == nil {
		return nil
	}
	return col.value(meta.row)
}

// ComponentTypes returns the component types attached to the entity, in the
// owning archetype's column order.
func (w *World) ComponentTypes(e Entity) []reflect.Type {
	if !w.Alive(e) {
		return nil
	}
	return w.metas[e.Index()].archetype.Types()
}

// ArchetypeOf returns the archetype storing the entity, or nil for dead
// handles.
func (w *World) ArchetypeOf(e Entity) *Archetype {
	if !w.Alive(e) {
		return nil
	}
	return w.metas[e.Index()].archetype
}

// Archetypes returns a snapshot of all archetype tables, including empty
// ones, in creation order.
func (w *World) Archetypes() []*Archetype {
	out := make([]*Archetype, len(w.ordered))
	copy(out, w.ordered)
	return out
}

// ResourceTypes returns the types of all resources boxed in the world.
// Order is unspecified.
func (w *World) ResourceTypes() []reflect.Type {
	out := make([]reflect.Type, 0, len(w.resources))
	for t := range w.resources {
		out = append(out, t)
	}
	return out
}

func (w *World) archetypeCount() int {
	return len(w.archetypes)
}

func (w *World) tableFor(m mask, ids []ComponentID) *Archetype {
	if a, ok := w.archetypes[m]; ok {
		return a
	}
	owned := make([]ComponentID, len(ids))
	copy(owned, ids)
	a := newArchetype(m, owned, w.registry)
	w.archetypes[m] = a
	w.ordered = append(w.ordered, a)
	return a
}

func (w *World) setMeta(e Entity, a *Archetype, row int) {
	index := int(e.Index())
	for index >= len(w.metas) {
		w.metas = append(w.metas, entityMeta{})
	}
	w.metas[index] = entityMeta{archetype: a, row: row}
}

// normalize resolves component values to sorted (ids, values) pairs.
func (w *World) normalize(components []any) ([]ComponentID, []any) {
	ids := make([]ComponentID, len(components))
	values := make([]any, len(components))
	for i, comp := range components {
		ids[i] = w.registry.mustID(componentTypeOf(comp))
		values[i] = comp
	}

	// Insertion sort; component lists are short.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
			values[j], values[j-1] = values[j-1], values[j]
		}
	}

	for i := 1; i < len(ids); i++ {
		if ids[i] == ids[i-1] {
			panic("ecs: duplicate component type " + w.registry.typeOf(ids[i]).String())
		}
	}

	return ids, values
}

// componentTypeOf resolves the component type of a value, unwrapping one
// level of pointer. Components must be value types.
func componentTypeOf(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("ecs: components cannot be pointers, maps, channels, or functions")
	}
	return t
}
