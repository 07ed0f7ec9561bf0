package ecs_test

import "github.com/mawside/cellar/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

// Named primitives for testing non-struct components
type Score int32
type Tag string
type Temperature float64

type Inventory struct {
	Items []string
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.Register[Position](registry)
	ecs.Register[Velocity](registry)
	ecs.Register[Name](registry)
	ecs.Register[Health](registry)
	ecs.Register[PlayerController](registry)
	ecs.Register[AI](registry)
	ecs.Register[Score](registry)
	ecs.Register[Tag](registry)
	ecs.Register[Temperature](registry)
	ecs.Register[Inventory](registry)
	return registry
}

func newTestWorld() *ecs.World {
	return ecs.NewWorld(newTestRegistry())
}
