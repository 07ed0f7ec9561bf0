package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View matches entities that carry a specific combination of components.
// The type parameter T must be a struct whose fields are pointers to
// component types. Embedded fields are always required; named fields may be
// marked optional with the `ecs:"optional"` struct tag. A field of type
// ecs.Entity receives the matched entity's handle.
//
// Views fill the result struct by writing component addresses at
// precomputed field offsets, so iteration does no per-row reflection.
type View[T any] struct {
	world         *World
	include       mask
	fields        []viewField
	entityOffsets []uintptr
}

type viewField struct {
	id       ComponentID
	typ      reflect.Type
	offset   uintptr
	optional bool
}

var entityType = reflect.TypeFor[Entity]()

// NewView creates a view over the world for the struct type T. Panics if T
// is not a struct, a field is neither an Entity nor a pointer to a
// registered component, or a tag value is unknown.
func NewView[T any](world *World) *View[T] {
	var zero T
	structType := reflect.TypeOf(zero)
	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	v := &View[T]{world: world}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityType {
			v.entityOffsets = append(v.entityOffsets, field.Offset)
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: View struct fields must be pointers to component types (or ecs.Entity)")
		}
		componentType := field.Type.Elem()
		id := world.registry.mustID(componentType)

		// Embedded fields are always required.
		optional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				optional = true
			default:
				panic("ecs: invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		if !optional {
			v.include.set(id)
		}
		v.fields = append(v.fields, viewField{
			id:       id,
			typ:      componentType,
			offset:   field.Offset,
			optional: optional,
		})
	}

	return v
}

func (v *View[T]) matches(a *Archetype) bool {
	return a.mask.containsAll(v.include)
}

// fillRow writes component addresses for the archetype row into the result
// struct. The archetype must already match the view's required mask.
func (v *View[T]) fillRow(a *Archetype, row int, e Entity, out unsafe.Pointer) {
	for _, f := range v.fields {
		fieldPtr := unsafe.Pointer(uintptr(out) + f.offset)
		col := a.column(f.id)
		if col == nil {
			// Only optional components can be absent in a matched archetype.
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = col.ptr(row)
	}
	for _, offset := range v.entityOffsets {
		*(*Entity)(unsafe.Pointer(uintptr(out) + offset)) = e
	}
}

// Get returns a populated view struct for the entity, or nil if the entity
// is dead or lacks a required component.
func (v *View[T]) Get(e Entity) *T {
	if !v.world.Alive(e) {
		return nil
	}
	meta := v.world.metas[e.Index()]
	if !v.matches(meta.archetype) {
		return nil
	}

	var result T
	v.fillRow(meta.archetype, meta.row, e, unsafe.Pointer(&result))
	return &result
}

// Iter yields (Entity, T) for every live entity carrying the view's required
// components, in archetype creation order. Structural world changes during
// iteration are undefined; queue them on Commands instead.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		var result T
		out := unsafe.Pointer(&result)

		for _, a := range v.world.ordered {
			if !v.matches(a) {
				continue
			}
			for row := 0; row < len(a.entities); row++ {
				v.fillRow(a, row, a.entities[row], out)
				if !yield(a.entities[row], result) {
					return
				}
			}
		}
	}
}

// iterArchetype yields rows of a single matched archetype.
func (v *View[T]) iterArchetype(a *Archetype) iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		var result T
		out := unsafe.Pointer(&result)

		for row := 0; row < len(a.entities); row++ {
			v.fillRow(a, row, a.entities[row], out)
			if !yield(a.entities[row], result) {
				return
			}
		}
	}
}

// Values yields just the view structs, for callers that do not care which
// entity the data belongs to.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities the view currently matches.
func (v *View[T]) Count() int {
	n := 0
	for _, a := range v.world.ordered {
		if v.matches(a) {
			n += a.Len()
		}
	}
	return n
}

// Spawn creates an entity from the view struct's non-nil component fields.
// Required fields must be non-nil. Entity fields are ignored.
func (v *View[T]) Spawn(data T) Entity {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		fieldPtr := *(*unsafe.Pointer)(unsafe.Pointer(uintptr(structPtr) + f.offset))
		if fieldPtr == nil {
			if !f.optional {
				panic("ecs: required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(f.typ, fieldPtr).Elem().Interface())
	}

	return v.world.Spawn(components...)
}
