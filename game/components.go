// Package game implements a small turn-based roguelike on top of the ecs
// package. It exists both as the library's worked example and as the home of
// the classic composition-over-inheritance component set: a goblin is not a
// Monster subclass, it is an entity with Position, Renderable, Hostile,
// MeleeAI and CombatStats attached.
package game

import "github.com/mawside/cellar/ecs"

// RGB is a terminal-friendly color triple.
type RGB struct {
	R, G, B uint8
}

// Position is an entity's tile coordinate on the dungeon map.
type Position struct {
	X, Y int
}

// Renderable describes how an entity is drawn: a glyph plus foreground and
// background colors.
type Renderable struct {
	Glyph rune
	Fg    RGB
	Bg    RGB
}

// Player marks the player entity.
type Player struct{}

// Name is an entity's display name.
type Name struct {
	Value string
}

// Hostile marks entities that act against the player each turn.
type Hostile struct{}

// MeleeAI closes distance with the player and attacks when adjacent.
type MeleeAI struct{}

// RangedAI attacks from up to Range tiles away and otherwise advances.
type RangedAI struct {
	Range int
}

// BlocksTile marks entities that other movers cannot share a tile with.
type BlocksTile struct{}

// CombatStats is the combat-stat component: hit points, damage reduction,
// and attack power.
type CombatStats struct {
	HP      int
	MaxHP   int
	Defense int
	Power   int
}

// RegisterComponents registers every game component with the registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.Register[Position](registry)
	ecs.Register[Renderable](registry)
	ecs.Register[Player](registry)
	ecs.Register[Name](registry)
	ecs.Register[Hostile](registry)
	ecs.Register[MeleeAI](registry)
	ecs.Register[RangedAI](registry)
	ecs.Register[BlocksTile](registry)
	ecs.Register[CombatStats](registry)
}
