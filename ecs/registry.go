package ecs

import (
	"fmt"
	"reflect"
)

// ComponentID is a dense index assigned to a component type at registration.
type ComponentID uint32

// ComponentRegistry assigns ComponentIDs and column factories to component
// types. Each World family gets its own registry, allowing multiple
// independent ECS instances to coexist without interference.
type ComponentRegistry struct {
	ids       map[reflect.Type]ComponentID
	types     []reflect.Type
	factories []func() column
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]ComponentID),
	}
}

// Register registers the component type T and returns its ComponentID.
// Registering an already-registered type returns the existing ID. Component
// types must be value types: structs or named primitives, never pointers,
// maps, channels, functions, or interfaces.
func Register[T any](r *ComponentRegistry) ComponentID {
	t := reflect.TypeFor[T]()
	if id, ok := r.ids[t]; ok {
		return id
	}

	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("ecs: component type " + t.String() + " must be a value type")
	}

	if len(r.types) >= MaxComponents {
		panic(fmt.Sprintf("ecs: component limit (%d) exceeded registering %s", MaxComponents, t))
	}

	id := ComponentID(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	r.factories = append(r.factories, func() column { return &typedColumn[T]{} })
	return id
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

func (r *ComponentRegistry) idOf(t reflect.Type) (ComponentID, bool) {
	id, ok := r.ids[t]
	return id, ok
}

func (r *ComponentRegistry) mustID(t reflect.Type) ComponentID {
	id, ok := r.ids[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return id
}

func (r *ComponentRegistry) typeOf(id ComponentID) reflect.Type {
	return r.types[id]
}

func (r *ComponentRegistry) newColumn(id ComponentID) column {
	return r.factories[id]()
}
