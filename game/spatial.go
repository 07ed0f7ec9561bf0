package game

import (
	"github.com/kamstrup/intmap"

	"github.com/mawside/cellar/ecs"
)

// SpatialGrid is a tile-to-entities index, rebuilt once per turn by
// SpatialIndexSystem so systems can answer "who stands here" without
// scanning every positioned entity.
type SpatialGrid struct {
	cells *intmap.Map[int64, []ecs.Entity]
}

// NewSpatialGrid creates an empty grid.
func NewSpatialGrid() SpatialGrid {
	return SpatialGrid{
		cells: intmap.New[int64, []ecs.Entity](256),
	}
}

func packCell(x, y int) int64 {
	return int64(x)<<32 | int64(uint32(y))
}

// Clear drops all cell entries.
func (g *SpatialGrid) Clear() {
	if g.cells == nil {
		return
	}
	g.cells.Clear()
}

// Insert records the entity at the tile.
func (g *SpatialGrid) Insert(x, y int, e ecs.Entity) {
	if g.cells == nil {
		g.cells = intmap.New[int64, []ecs.Entity](256)
	}
	key := packCell(x, y)
	entities, _ := g.cells.Get(key)
	g.cells.Put(key, append(entities, e))
}

// At returns the entities standing on the tile. The returned slice is owned
// by the grid and must not be mutated.
func (g *SpatialGrid) At(x, y int) []ecs.Entity {
	if g.cells == nil {
		return nil
	}
	entities, _ := g.cells.Get(packCell(x, y))
	return entities
}

// SpatialIndexSystem rebuilds the grid from every positioned entity. It must
// run before any system that reads the grid.
type SpatialIndexSystem struct {
	Grid     ecs.Resource[SpatialGrid]
	Entities ecs.Query[struct {
		ecs.Entity
		*Position
	}]
}

func (s *SpatialIndexSystem) Execute(tick *ecs.Tick) {
	grid := s.Grid.Get()
	grid.Clear()

	for e, item := range s.Entities.Iter() {
		grid.Insert(item.Position.X, item.Position.Y, e)
	}
}
