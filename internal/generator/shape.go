package generator

import (
	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/world"
)

const (
	minRoomSide   = 3
	maxRoomWidth  = 20
	maxRoomHeight = 12
	minMazeSide   = 5
)

// roomInfo describes one indexed room of the floor.
type roomInfo struct {
	index uint8
	rect  world.Rect
	cell  *cell
	maze  bool
}

// shape classifies valid cells as rooms or hallway anchors, sizes rooms,
// merges some neighbours and carves the result.
func (a *attempt) shape() {
	valid := a.cells.valid()
	density := a.props.RoomDensity
	if density == 0 {
		density = 100
	}
	rooms := 0
	for _, c := range valid {
		c.IsRoom = a.props.Layout == dungeon.LayoutCross || a.rng.Chance(density)
		if c.IsRoom {
			rooms++
		}
	}
	if rooms == 0 {
		valid[a.rng.Intn(len(valid))].IsRoom = true
	}

	for _, c := range valid {
		if c.IsRoom {
			a.sizeRoom(c)
		}
		if !c.IsRoom {
			a.placeAnchor(c)
		}
	}
	if !a.anyRoom() {
		a.status.invalidate("every room demoted to an anchor")
		return
	}

	a.mergeRooms()
	a.indexRooms()
	a.carveRooms()
}

func (a *attempt) anyRoom() bool {
	for _, c := range a.cells.valid() {
		if c.IsRoom {
			return true
		}
	}
	return false
}

// sizeRoom picks a room rectangle strictly inside the cell. Cells too small
// for a room are demoted to anchors.
func (a *attempt) sizeRoom(c *cell) {
	inner := c.bounds.Inset(1)
	maxW := min(inner.Width(), maxRoomWidth)
	maxH := min(inner.Height(), maxRoomHeight)
	if maxW < minRoomSide || maxH < minRoomSide {
		c.IsRoom = false
		return
	}
	w := a.rng.Range(max(minRoomSide, maxW/2), maxW+1)
	h := a.rng.Range(max(minRoomSide, maxH/2), maxH+1)

	if a.rng.Chance(a.props.MazeRoomChance) {
		mw, mh := w-(1-w%2), h-(1-h%2)
		if mw >= minMazeSide && mh >= minMazeSide {
			w, h = mw, mh
			c.IsMaze = true
			a.status.HasMaze = true
		}
	}

	x0 := inner.X0 + a.rng.Intn(inner.Width()-w+1)
	y0 := inner.Y0 + a.rng.Intn(inner.Height()-h+1)
	c.room = world.Rect{X0: x0, Y0: y0, X1: x0 + w, Y1: y0 + h}
}

func (a *attempt) placeAnchor(c *cell) {
	inner := c.bounds.Inset(1)
	c.anchor = world.Position{
		X: inner.X0 + a.rng.Intn(inner.Width()),
		Y: inner.Y0 + a.rng.Intn(inner.Height()),
	}
}

func (c *cell) mergeable() bool {
	return c.IsRoom && !c.IsMaze && !c.IsMergedRoom && c.MergedInto == nil
}

// mergeRooms fuses some horizontally or vertically adjacent rooms into one.
func (a *attempt) mergeRooms() {
	if a.opts.MergeChance <= 0 {
		return
	}
	for _, c := range a.cells.valid() {
		if !c.mergeable() {
			continue
		}
		for _, s := range []side{sideRight, sideBottom} {
			n := a.cells.neighbor(c, s)
			if n == nil || !n.mergeable() || !a.rng.Chance(a.opts.MergeChance) {
				continue
			}
			c.IsMergedRoom = true
			n.MergedInto = c
			c.room = c.room.Union(n.room)
			n.room = c.room
			c.ShouldConnect[s], n.ShouldConnect[s.opposite()] = true, true
			c.IsConnected[s], n.IsConnected[s.opposite()] = true, true
			break
		}
	}
}

// indexRooms hands out consecutive room indices in cell order.
func (a *attempt) indexRooms() {
	a.rooms = a.rooms[:0]
	var next uint8
	for _, c := range a.cells.valid() {
		if !c.IsRoom {
			continue
		}
		if c.MergedInto != nil {
			c.index = c.MergedInto.index
			continue
		}
		c.index = next
		a.rooms = append(a.rooms, &roomInfo{index: next, rect: c.room, cell: c, maze: c.IsMaze})
		next++
	}
	a.status.Rooms = len(a.rooms)
}

func (a *attempt) carveRooms() {
	for _, r := range a.rooms {
		a.grid.CarveRoom(r.rect, r.index)
		if r.maze {
			a.carveMaze(r)
		}
	}
	for _, c := range a.cells.valid() {
		if !c.IsRoom {
			a.grid.SetFloor(c.anchor, world.NoRoom)
		}
	}
}

// room returns the room with index idx, or nil.
func (a *attempt) room(idx uint8) *roomInfo {
	if int(idx) < len(a.rooms) {
		return a.rooms[idx]
	}
	return nil
}
