package world

import "strings"

const (
	// Width is the number of tile columns on every floor.
	Width = 56
	// Height is the number of tile rows on every floor.
	Height = 32
)

// Bounds is the full floor rectangle.
var Bounds = Rect{X0: 0, Y0: 0, X1: Width, Y1: Height}

// Interior is the part of the floor inside the impassable border.
var Interior = Bounds.Inset(1)

// Grid is the floor map.
type Grid struct {
	Tiles     [Height][Width]Tile `json:"tiles"`
	Secondary SecondaryKind       `json:"secondary"`
}

// NewGrid creates a grid filled with walls and ringed by impassable walls.
func NewGrid(kind SecondaryKind) *Grid {
	g := &Grid{Secondary: kind}
	for y := range g.Tiles {
		for x := range g.Tiles[y] {
			g.Tiles[y][x] = Tile{Terrain: TerrainWall, Room: NoRoom}
			if !Interior.Contains(Position{X: x, Y: y}) {
				g.Tiles[y][x].ImpassableWall = true
			}
		}
	}
	return g
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}

// In reports whether p lies on the grid.
func (g *Grid) In(p Position) bool {
	return Bounds.Contains(p)
}

// At returns the tile at p for modification, or nil when p is off the grid.
func (g *Grid) At(p Position) *Tile {
	if !g.In(p) {
		return nil
	}
	return &g.Tiles[p.Y][p.X]
}

// GetTile returns the tile at the given position. Off-grid positions read as
// impassable wall.
func (g *Grid) GetTile(x, y int) Tile {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return Tile{Terrain: TerrainWall, ImpassableWall: true, Room: NoRoom}
	}
	return g.Tiles[y][x]
}

// IsPassable returns true if the given position can be walked on with normal
// mobility.
func (g *Grid) IsPassable(x, y int) bool {
	return g.GetTile(x, y).IsPassable()
}

// SetFloor turns the tile at p into normal floor belonging to room. Border
// tiles are never carved.
func (g *Grid) SetFloor(p Position, room uint8) bool {
	if !Interior.Contains(p) {
		return false
	}
	t := &g.Tiles[p.Y][p.X]
	t.Terrain = TerrainNormal
	t.Room = room
	return true
}

// SetWall turns the tile at p back into a plain wall.
func (g *Grid) SetWall(p Position) {
	if !Interior.Contains(p) {
		return
	}
	t := &g.Tiles[p.Y][p.X]
	*t = Tile{Terrain: TerrainWall, Room: NoRoom}
}

// CarveRoom sets all tiles within the rectangle to floor of the given room.
func (g *Grid) CarveRoom(r Rect, room uint8) {
	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			g.SetFloor(Position{X: x, Y: y}, room)
		}
	}
}

// CarveHorizontal carves a hallway along row y. Tiles already belonging to a
// room keep their room index. It returns the newly opened positions.
func (g *Grid) CarveHorizontal(x1, x2, y int) []Position {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	var opened []Position
	for x := x1; x <= x2; x++ {
		if p := (Position{X: x, Y: y}); g.carveHall(p) {
			opened = append(opened, p)
		}
	}
	return opened
}

// CarveVertical carves a hallway along column x.
func (g *Grid) CarveVertical(y1, y2, x int) []Position {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	var opened []Position
	for y := y1; y <= y2; y++ {
		if p := (Position{X: x, Y: y}); g.carveHall(p) {
			opened = append(opened, p)
		}
	}
	return opened
}

func (g *Grid) carveHall(p Position) bool {
	if !Interior.Contains(p) {
		return false
	}
	t := &g.Tiles[p.Y][p.X]
	if t.Terrain != TerrainWall {
		return false
	}
	t.Terrain = TerrainNormal
	t.Room = NoRoom
	return true
}

// CanEnter reports whether a monster with mobility m may stand on p.
func (g *Grid) CanEnter(p Position, m Mobility) bool {
	if !g.In(p) {
		return false
	}
	t := g.Tiles[p.Y][p.X]
	switch t.Terrain {
	case TerrainNormal:
		return true
	case TerrainSecondary:
		switch m {
		case MobilityFlying:
			return true
		case MobilityLava:
			return g.Secondary == SecondaryLava
		case MobilityWater:
			return g.Secondary == SecondaryWater
		}
		return false
	case TerrainChasm:
		return m == MobilityFlying
	default:
		return false
	}
}

// CanStep reports whether a move from p in direction d is legal for m.
// Diagonal moves may not cut past a wall corner.
func (g *Grid) CanStep(p Position, d Direction, m Mobility) bool {
	to := p.Step(d)
	if !g.CanEnter(to, m) {
		return false
	}
	if d.IsDiagonal() {
		dx, dy := d.Delta()
		if g.GetTile(p.X+dx, p.Y).Terrain == TerrainWall || g.GetTile(p.X, p.Y+dy).Terrain == TerrainWall {
			return false
		}
	}
	return true
}

// UpdateWalkability recomputes the walkable neighbour masks of every tile.
func (g *Grid) UpdateWalkability() {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			p := Position{X: x, Y: y}
			t := &g.Tiles[y][x]
			for m := Mobility(0); m < MobilityCount; m++ {
				var mask DirectionMask
				for _, d := range Directions {
					if g.CanStep(p, d, m) {
						mask = mask.With(d)
					}
				}
				t.Walkable[m] = mask
			}
		}
	}
}

// Count returns how many tiles satisfy keep.
func (g *Grid) Count(keep func(Position, Tile) bool) int {
	n := 0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if keep(Position{X: x, Y: y}, g.Tiles[y][x]) {
				n++
			}
		}
	}
	return n
}

// Collect lists the positions satisfying keep, row by row.
func (g *Grid) Collect(keep func(Position, Tile) bool) []Position {
	var out []Position
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			p := Position{X: x, Y: y}
			if keep(p, g.Tiles[y][x]) {
				out = append(out, p)
			}
		}
	}
	return out
}

// String renders the grid as one line of glyphs per row.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			b.WriteRune(g.Tiles[y][x].Rune(g.Secondary))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
