package world

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridBorder(t *testing.T) {
	g := NewGrid(SecondaryWater)

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			tile := g.Tiles[y][x]
			if tile.Terrain != TerrainWall {
				t.Fatalf("tile (%d,%d) should start as wall", x, y)
			}
			if tile.Room != NoRoom {
				t.Fatalf("tile (%d,%d) should start outside rooms", x, y)
			}
			border := x == 0 || y == 0 || x == Width-1 || y == Height-1
			if tile.ImpassableWall != border {
				t.Errorf("tile (%d,%d) impassable=%v, want %v", x, y, tile.ImpassableWall, border)
			}
		}
	}
}

func TestCarveRoomSkipsBorder(t *testing.T) {
	g := NewGrid(SecondaryWater)
	g.CarveRoom(Rect{X0: 0, Y0: 0, X1: 4, Y1: 4}, 0)

	assert.False(t, g.IsPassable(0, 0))
	assert.False(t, g.IsPassable(3, 0))
	assert.True(t, g.IsPassable(1, 1))
	assert.True(t, g.IsPassable(3, 3))
	assert.Equal(t, uint8(0), g.GetTile(2, 2).Room)
}

func TestCarveHallwayKeepsRooms(t *testing.T) {
	g := NewGrid(SecondaryWater)
	g.CarveRoom(Rect{X0: 2, Y0: 2, X1: 5, Y1: 5}, 3)

	opened := g.CarveHorizontal(10, 4, 3)
	assert.Len(t, opened, 6, "columns 5..10 are new hallway")
	assert.Equal(t, uint8(3), g.GetTile(4, 3).Room)
	assert.Equal(t, NoRoom, g.GetTile(7, 3).Room)

	opened = g.CarveVertical(3, 8, 10)
	assert.Len(t, opened, 5)
	assert.True(t, g.IsPassable(10, 8))
}

func TestGetTileOffGrid(t *testing.T) {
	g := NewGrid(SecondaryWater)
	tile := g.GetTile(-1, 5)
	assert.True(t, tile.ImpassableWall)
	assert.Nil(t, g.At(Position{X: Width, Y: 0}))
}

func TestCanEnterByMobility(t *testing.T) {
	tests := []struct {
		name     string
		kind     SecondaryKind
		terrain  Terrain
		mobility Mobility
		want     bool
	}{
		{"normal on floor", SecondaryWater, TerrainNormal, MobilityNormal, true},
		{"normal on water", SecondaryWater, TerrainSecondary, MobilityNormal, false},
		{"water on water", SecondaryWater, TerrainSecondary, MobilityWater, true},
		{"lava on water", SecondaryWater, TerrainSecondary, MobilityLava, false},
		{"lava on lava", SecondaryLava, TerrainSecondary, MobilityLava, true},
		{"flying on chasm", SecondaryWater, TerrainChasm, MobilityFlying, true},
		{"water on chasm", SecondaryWater, TerrainChasm, MobilityWater, false},
		{"flying on wall", SecondaryWater, TerrainWall, MobilityFlying, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(tt.kind)
			p := Position{X: 5, Y: 5}
			g.At(p).Terrain = tt.terrain
			assert.Equal(t, tt.want, g.CanEnter(p, tt.mobility))
		})
	}
}

func TestDiagonalCornerCut(t *testing.T) {
	g := NewGrid(SecondaryWater)
	// An L of floor: (5,5) (6,5) (6,6). Moving (5,5)->(6,6) is legal
	// because neither orthogonal neighbour is a wall... except (5,6).
	g.SetFloor(Position{X: 5, Y: 5}, NoRoom)
	g.SetFloor(Position{X: 6, Y: 5}, NoRoom)
	g.SetFloor(Position{X: 6, Y: 6}, NoRoom)

	assert.False(t, g.CanStep(Position{X: 5, Y: 5}, DirDownRight, MobilityNormal))

	g.SetFloor(Position{X: 5, Y: 6}, NoRoom)
	assert.True(t, g.CanStep(Position{X: 5, Y: 5}, DirDownRight, MobilityNormal))

	// Water does not block corner cutting.
	g.At(Position{X: 5, Y: 6}).Terrain = TerrainSecondary
	assert.True(t, g.CanStep(Position{X: 5, Y: 5}, DirDownRight, MobilityNormal))
}

func TestUpdateWalkability(t *testing.T) {
	g := NewGrid(SecondaryWater)
	g.CarveRoom(Rect{X0: 3, Y0: 3, X1: 6, Y1: 6}, 0)
	g.UpdateWalkability()

	center := g.GetTile(4, 4)
	for _, d := range Directions {
		assert.True(t, center.Walkable[MobilityNormal].Has(d), "center should walk %d", d)
	}

	corner := g.GetTile(3, 3)
	assert.True(t, corner.Walkable[MobilityNormal].Has(DirRight))
	assert.True(t, corner.Walkable[MobilityNormal].Has(DirDownRight))
	assert.False(t, corner.Walkable[MobilityNormal].Has(DirUp))
	assert.False(t, corner.Walkable[MobilityNormal].Has(DirLeft))
}

func TestDistances(t *testing.T) {
	g := NewGrid(SecondaryWater)
	g.CarveHorizontal(2, 10, 5)
	g.CarveRoom(Rect{X0: 20, Y0: 20, X1: 22, Y1: 22}, 1)

	dm := g.Distances(Position{X: 2, Y: 5}, MobilityNormal)
	assert.Equal(t, 9, dm.Count())
	assert.Equal(t, 8, dm.At(Position{X: 10, Y: 5}))
	assert.False(t, dm.Reachable(Position{X: 20, Y: 20}))
	assert.Equal(t, Unreached, dm.At(Position{X: -1, Y: 0}))

	empty := g.Distances(Position{X: 1, Y: 1}, MobilityNormal)
	assert.Zero(t, empty.Count())
}

func TestNormalFloorConnected(t *testing.T) {
	g := NewGrid(SecondaryWater)
	assert.True(t, g.NormalFloorConnected(), "empty grid is trivially connected")

	g.CarveHorizontal(2, 10, 5)
	require.True(t, g.NormalFloorConnected())

	g.At(Position{X: 6, Y: 5}).Terrain = TerrainSecondary
	assert.False(t, g.NormalFloorConnected(), "water splits the hallway for walkers")
}

func TestStringRendersRows(t *testing.T) {
	g := NewGrid(SecondaryLava)
	g.SetFloor(Position{X: 1, Y: 1}, 0)
	g.At(Position{X: 2, Y: 1}).Terrain = TerrainSecondary
	g.At(Position{X: 3, Y: 1}).Stairs = true

	lines := strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
	require.Len(t, lines, Height)
	assert.Len(t, lines[0], Width)
	assert.Equal(t, "#.%>", lines[1][:4])
}

func TestCloneIsDeep(t *testing.T) {
	g := NewGrid(SecondaryWater)
	c := g.Clone()
	c.SetFloor(Position{X: 4, Y: 4}, 2)
	assert.False(t, g.IsPassable(4, 4))
	assert.True(t, c.IsPassable(4, 4))
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		o := d.Opposite()
		dx, dy := d.Delta()
		ox, oy := o.Delta()
		if dx != -ox || dy != -oy {
			t.Errorf("%d.Opposite() = %d, deltas (%d,%d) and (%d,%d)", d, o, dx, dy, ox, oy)
		}
		if o.Opposite() != d {
			t.Errorf("%d.Opposite().Opposite() = %d", d, o.Opposite())
		}
	}
}
