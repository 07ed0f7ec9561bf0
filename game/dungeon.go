package game

import "math/rand/v2"

// TileKind is the terrain type of one map cell.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
)

// Rect is an axis-aligned room footprint, inclusive on all edges.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// NewRect builds a Rect from an origin and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}
}

// Center returns the middle tile of the room.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether two rooms touch or overlap, including a
// one-tile border so rooms keep a wall between them.
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2+1 && r.X2 >= other.X1-1 &&
		r.Y1 <= other.Y2+1 && r.Y2 >= other.Y1-1
}

// Dungeon is the generated map: a tile grid plus the room list the
// generator carved, in carve order. Rooms[0] is the player's starting room.
type Dungeon struct {
	Width  int
	Height int
	Tiles  []TileKind
	Rooms  []Rect
}

const (
	minRoomSize = 4
	maxRoomSize = 10
)

// GenerateDungeon carves a rooms-and-corridors map. Up to maxRooms rooms are
// placed at random, rejecting overlaps, and consecutive rooms are joined by
// an L-shaped corridor. The same rng state always produces the same map.
func GenerateDungeon(width, height, maxRooms int, rng *rand.Rand) *Dungeon {
	d := &Dungeon{
		Width:  width,
		Height: height,
		Tiles:  make([]TileKind, width*height),
	}

	for i := 0; i < maxRooms; i++ {
		w := minRoomSize + rng.IntN(maxRoomSize-minRoomSize+1)
		h := minRoomSize + rng.IntN(maxRoomSize-minRoomSize+1)
		if w >= width-2 || h >= height-2 {
			continue
		}
		x := 1 + rng.IntN(width-w-2)
		y := 1 + rng.IntN(height-h-2)

		room := NewRect(x, y, w, h)
		overlaps := false
		for _, existing := range d.Rooms {
			if room.Intersects(existing) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		d.carveRoom(room)

		if len(d.Rooms) > 0 {
			prevX, prevY := d.Rooms[len(d.Rooms)-1].Center()
			newX, newY := room.Center()

			// Alternate corridor elbow direction for variety.
			if rng.IntN(2) == 0 {
				d.carveHorizontalTunnel(prevX, newX, prevY)
				d.carveVerticalTunnel(prevY, newY, newX)
			} else {
				d.carveVerticalTunnel(prevY, newY, prevX)
				d.carveHorizontalTunnel(prevX, newX, newY)
			}
		}

		d.Rooms = append(d.Rooms, room)
	}

	return d
}

func (d *Dungeon) carveRoom(r Rect) {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			d.Tiles[d.index(x, y)] = TileFloor
		}
	}
}

func (d *Dungeon) carveHorizontalTunnel(x1, x2, y int) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if d.InBounds(x, y) {
			d.Tiles[d.index(x, y)] = TileFloor
		}
	}
}

func (d *Dungeon) carveVerticalTunnel(y1, y2, x int) {
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if d.InBounds(x, y) {
			d.Tiles[d.index(x, y)] = TileFloor
		}
	}
}

func (d *Dungeon) index(x, y int) int {
	return y*d.Width + x
}

// InBounds reports whether the coordinate lies on the map.
func (d *Dungeon) InBounds(x, y int) bool {
	return x >= 0 && x < d.Width && y >= 0 && y < d.Height
}

// Tile returns the terrain at the coordinate; out-of-bounds reads are walls.
func (d *Dungeon) Tile(x, y int) TileKind {
	if !d.InBounds(x, y) {
		return TileWall
	}
	return d.Tiles[d.index(x, y)]
}

// Walkable reports whether a mover may stand on the tile.
func (d *Dungeon) Walkable(x, y int) bool {
	return d.Tile(x, y) == TileFloor
}
