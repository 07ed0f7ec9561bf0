package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mawside/cellar/ecs"
)

func TestSpatialGridInsertAndAt(t *testing.T) {
	grid := NewSpatialGrid()

	a := ecs.Entity(1)
	b := ecs.Entity(2)

	grid.Insert(3, 4, a)
	grid.Insert(3, 4, b)
	grid.Insert(-2, 7, a)

	assert.ElementsMatch(t, []ecs.Entity{a, b}, grid.At(3, 4))
	assert.ElementsMatch(t, []ecs.Entity{a}, grid.At(-2, 7))
	assert.Empty(t, grid.At(0, 0))
}

func TestSpatialGridNegativeCoordinatesDoNotCollide(t *testing.T) {
	grid := NewSpatialGrid()

	grid.Insert(1, -1, ecs.Entity(1))
	grid.Insert(-1, 1, ecs.Entity(2))
	grid.Insert(0, 0, ecs.Entity(3))

	assert.Len(t, grid.At(1, -1), 1)
	assert.Len(t, grid.At(-1, 1), 1)
	assert.Len(t, grid.At(0, 0), 1)
}

func TestSpatialGridClear(t *testing.T) {
	grid := NewSpatialGrid()
	grid.Insert(1, 1, ecs.Entity(1))

	grid.Clear()
	assert.Empty(t, grid.At(1, 1))
}

func TestSpatialGridZeroValueIsUsable(t *testing.T) {
	var grid SpatialGrid

	grid.Clear()
	assert.Empty(t, grid.At(1, 1))

	grid.Insert(1, 1, ecs.Entity(9))
	assert.Len(t, grid.At(1, 1), 1)
}

func TestSpatialIndexSystemRebuildsEachTick(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	world := ecs.NewWorld(registry)

	gridRes := ecs.NewResource(world, NewSpatialGrid())

	e := world.Spawn(Position{X: 5, Y: 5}, Name{Value: "wanderer"})

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&SpatialIndexSystem{})

	scheduler.Step(1.0)
	assert.ElementsMatch(t, []ecs.Entity{e}, gridRes.Get().At(5, 5))

	ecs.Get[Position](world, e).X = 6
	scheduler.Step(1.0)

	assert.Empty(t, gridRes.Get().At(5, 5), "stale cell cleared on rebuild")
	assert.ElementsMatch(t, []ecs.Entity{e}, gridRes.Get().At(6, 5))
}
