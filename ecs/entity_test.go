package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mawside/cellar/ecs"
)

func TestEntityHandlePacking(t *testing.T) {
	world := newTestWorld()

	e := world.Spawn(Position{X: 1, Y: 2})
	assert.NotEqual(t, ecs.NoEntity, e)
	assert.Equal(t, uint32(0), e.Generation())
	assert.NotEqual(t, uint32(0), e.Index())
}

func TestZeroEntityNeverAlive(t *testing.T) {
	world := newTestWorld()

	assert.False(t, world.Alive(ecs.NoEntity))

	// Spawning must never hand out the zero handle.
	for i := 0; i < 100; i++ {
		e := world.Spawn(Position{})
		assert.NotEqual(t, ecs.NoEntity, e)
	}
}

func TestGenerationBumpOnRecycle(t *testing.T) {
	world := newTestWorld()

	first := world.Spawn(Position{X: 1})
	assert.True(t, world.Alive(first))

	world.Despawn(first)
	assert.False(t, world.Alive(first))

	// The slot is recycled with a bumped generation.
	second := world.Spawn(Position{X: 2})
	assert.Equal(t, first.Index(), second.Index())
	assert.Equal(t, first.Generation()+1, second.Generation())

	assert.True(t, world.Alive(second))
	assert.False(t, world.Alive(first))
}

func TestStaleHandleNeverAliasesNewOccupant(t *testing.T) {
	world := newTestWorld()

	old := world.Spawn(Position{X: 7, Y: 7})
	world.Despawn(old)
	replacement := world.Spawn(Position{X: 99, Y: 99})

	// The stale handle must not read the replacement's data.
	assert.Nil(t, ecs.Get[Position](world, old))

	pos := ecs.Get[Position](world, replacement)
	if assert.NotNil(t, pos) {
		assert.Equal(t, float32(99), pos.X)
	}
}

func TestDeadHandleOperationsAreNoops(t *testing.T) {
	world := newTestWorld()

	e := world.Spawn(Position{}, Health{Current: 10, Max: 10})
	world.Despawn(e)

	assert.False(t, world.Despawn(e))
	assert.False(t, world.Add(e, Velocity{DX: 1}))
	assert.False(t, ecs.Remove[Health](world, e))
	assert.False(t, ecs.Has[Position](world, e))
	assert.Nil(t, ecs.Get[Position](world, e))
}

func TestFreeListReusesSlots(t *testing.T) {
	world := newTestWorld()

	entities := make([]ecs.Entity, 10)
	for i := range entities {
		entities[i] = world.Spawn(Score(i))
	}
	for _, e := range entities {
		world.Despawn(e)
	}

	seen := make(map[uint32]bool)
	for _, e := range entities {
		seen[e.Index()] = true
	}

	// Respawning the same count reuses all released slots.
	for range entities {
		e := world.Spawn(Score(0))
		if !seen[e.Index()] {
			t.Errorf("expected slot %d to be recycled from the free list", e.Index())
		}
	}
}
