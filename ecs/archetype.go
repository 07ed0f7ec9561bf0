package ecs

import "reflect"

// Archetype stores every entity that has exactly one combination of
// component types, with one dense column per type (struct-of-arrays). Rows
// are swap-removed on despawn so columns never fragment.
type Archetype struct {
	mask     mask
	ids      []ComponentID // sorted ascending, parallel to columns
	columns  []column
	slots    [MaxComponents]int16 // ComponentID -> column index, -1 if absent
	entities []Entity             // row -> owning entity handle
	registry *ComponentRegistry
}

func newArchetype(m mask, ids []ComponentID, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		mask:     m,
		ids:      ids,
		columns:  make([]column, len(ids)),
		registry: registry,
	}
	for i := range a.slots {
		a.slots[i] = -1
	}
	for i, id := range ids {
		a.columns[i] = registry.newColumn(id)
		a.slots[id] = int16(i)
	}
	return a
}

func (a *Archetype) column(id ComponentID) column {
	slot := a.slots[id]
	if slot < 0 {
		return nil
	}
	return a.columns[slot]
}

// has checks if this archetype stores the given component type.
func (a *Archetype) has(id ComponentID) bool {
	return a.slots[id] >= 0
}

// push appends a row for e. values must be ordered like a.ids.
func (a *Archetype) push(e Entity, values []any) int {
	row := -1
	for i, v := range values {
		row = a.columns[i].appendValue(v)
	}
	a.entities = append(a.entities, e)
	return row
}

// swapRemove removes the row from every column and returns the entity that
// was relocated into it, or NoEntity if the row was last.
func (a *Archetype) swapRemove(row int) Entity {
	for _, c := range a.columns {
		c.swapRemove(row)
	}

	last := len(a.entities) - 1
	moved := NoEntity
	if row != last {
		a.entities[row] = a.entities[last]
		moved = a.entities[row]
	}
	a.entities = a.entities[:last]
	return moved
}

// Len returns the number of live rows in the table.
func (a *Archetype) Len() int {
	return len(a.entities)
}

// Entities returns the row-ordered entity handles. The slice is owned by the
// archetype and must not be mutated.
func (a *Archetype) Entities() []Entity {
	return a.entities
}

// Key returns a stable 64-bit identifier derived from the archetype's
// component mask, for display and map keys in tooling.
func (a *Archetype) Key() uint64 {
	k := uint64(14695981039346656037)
	for _, w := range a.mask {
		k = (k ^ w) * 1099511628211
	}
	return k
}

// Types returns the component types stored by this archetype, in column
// order.
func (a *Archetype) Types() []reflect.Type {
	types := make([]reflect.Type, len(a.ids))
	for i, id := range a.ids {
		types[i] = a.registry.typeOf(id)
	}
	return types
}
