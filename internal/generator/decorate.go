package generator

import (
	"github.com/samdwyer/floorgen/internal/world"
)

const (
	minBlobSize = 3
	maxBlobSize = 12
	// minStructureArea is the smallest room that may hold a structure.
	minStructureArea = 25
)

// structureKind enumerates the secondary structures a room can receive.
type structureKind uint8

const (
	structurePillars structureKind = iota
	structurePool
	structureVault
	structureDivider
	structureKindCount
)

// tileEdit records a tile's previous value so a change can be undone.
type tileEdit struct {
	pos  world.Position
	prev world.Tile
}

// edits accumulates reversible tile changes.
type edits []tileEdit

func (e *edits) set(g *world.Grid, p world.Position, fn func(*world.Tile)) {
	t := g.At(p)
	*e = append(*e, tileEdit{pos: p, prev: *t})
	fn(t)
}

func (e edits) revert(g *world.Grid) {
	for i := len(e) - 1; i >= 0; i-- {
		*g.At(e[i].pos) = e[i].prev
	}
}

// commitIfConnected keeps e when the normal floor is still in one piece and
// undoes it otherwise.
func (a *attempt) commitIfConnected(e edits) bool {
	if a.grid.NormalFloorConnected() {
		return true
	}
	e.revert(a.grid)
	return false
}

// decorate runs the secondary passes: terrain blobs, room imperfections and
// secondary structures.
func (a *attempt) decorate() {
	a.secondaryTerrain()
	a.imperfections()
	a.structures()
	markJunctions(a.grid)
}

func (a *attempt) inMaze(t *world.Tile) bool {
	r := a.room(t.Room)
	return r != nil && r.maze
}

// plainFloor is normal room-or-hall floor that no decoration has touched.
func (a *attempt) plainFloor(p world.Position) bool {
	t := a.grid.At(p)
	return t != nil && t.Terrain == world.TerrainNormal && !t.Stairs && !t.KeyDoor && !a.inMaze(t)
}

func (a *attempt) blobTerrain() world.Terrain {
	if a.props.Chasms {
		return world.TerrainChasm
	}
	return world.TerrainSecondary
}

// secondaryTerrain sprinkles water, lava or chasm blobs over the floor.
func (a *attempt) secondaryTerrain() {
	terrain := a.blobTerrain()
	for i := 0; i < a.props.SecondaryTerrainDensity; i++ {
		seeds := a.grid.Collect(func(p world.Position, _ world.Tile) bool { return a.plainFloor(p) })
		if len(seeds) == 0 {
			return
		}
		cur := seeds[a.rng.Intn(len(seeds))]
		size := a.rng.Range(minBlobSize, maxBlobSize+1)

		var e edits
		for tries := 0; len(e) < size && tries < size*4; tries++ {
			if a.plainFloor(cur) {
				e.set(a.grid, cur, func(t *world.Tile) { t.Terrain = terrain })
			}
			next := cur.Step(world.Cardinals[a.rng.Intn(len(world.Cardinals))])
			if t := a.grid.At(next); t != nil && (t.Terrain == terrain || a.plainFloor(next)) {
				cur = next
			}
		}
		a.commitIfConnected(e)
	}
}

// imperfections roughens the outline of flagged rooms.
func (a *attempt) imperfections() {
	if !a.props.RoomImperfections {
		return
	}
	for _, r := range a.rooms {
		c := r.cell
		if r.maze || c.IsMergedRoom || !a.rng.Chance(a.opts.ImperfectionChance) {
			continue
		}
		c.FlagImperfect = true

		var e edits
		corners := []world.Position{
			{X: r.rect.X0, Y: r.rect.Y0},
			{X: r.rect.X1 - 1, Y: r.rect.Y0},
			{X: r.rect.X0, Y: r.rect.Y1 - 1},
			{X: r.rect.X1 - 1, Y: r.rect.Y1 - 1},
		}
		for _, p := range corners {
			if a.rng.Chance(50) && a.plainFloor(p) && !a.touchesHall(p) {
				e.set(a.grid, p, func(t *world.Tile) { *t = world.Tile{Terrain: world.TerrainWall, Room: world.NoRoom} })
			}
		}
		for _, d := range world.Cardinals {
			if !a.rng.Chance(25) {
				continue
			}
			out := edgeTile(a, r.rect, d).Step(d)
			if a.canExtend(out, r.index, c.bounds) {
				e.set(a.grid, out, func(t *world.Tile) {
					t.Terrain = world.TerrainNormal
					t.Room = r.index
				})
			}
		}
		a.commitIfConnected(e)
	}
}

func (a *attempt) touchesHall(p world.Position) bool {
	for _, d := range world.Cardinals {
		if n := a.grid.At(p.Step(d)); n != nil && n.IsOpen() && !n.InRoom() {
			return true
		}
	}
	return false
}

// canExtend reports whether the wall at p can become floor of room without
// touching anything but that room.
func (a *attempt) canExtend(p world.Position, room uint8, bounds world.Rect) bool {
	t := a.grid.At(p)
	if t == nil || t.Terrain != world.TerrainWall || t.ImpassableWall || !bounds.Inset(1).Contains(p) {
		return false
	}
	for _, d := range world.Directions {
		n := a.grid.At(p.Step(d))
		if n != nil && n.IsOpen() && n.Room != room {
			return false
		}
	}
	return true
}

// structures builds pillars, pools, vaults and dividers in large rooms until
// the floor's budget runs out.
func (a *attempt) structures() {
	if !a.props.SecondaryStructures || a.status.SecondaryStructuresBudget <= 0 {
		return
	}
	order := make([]*roomInfo, len(a.rooms))
	copy(order, a.rooms)
	a.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for _, r := range order {
		if a.status.SecondaryStructuresBudget <= 0 {
			return
		}
		if r.maze || r.rect.Area() < minStructureArea || !a.rng.Chance(a.opts.StructureChance) {
			continue
		}
		inner := r.rect.Inset(1)
		if !a.allPlain(inner, r.index) {
			continue
		}
		kind := structureKind(a.rng.Intn(int(structureKindCount)))
		e, vault := a.buildStructure(kind, inner, r.index)
		if len(e) == 0 {
			continue
		}
		if a.commitIfConnected(e) {
			r.cell.FlagSecondaryStructure = true
			a.status.SecondaryStructuresBudget--
			if vault != nil {
				a.vaults = append(a.vaults, *vault)
			}
		}
	}
}

func (a *attempt) allPlain(r world.Rect, room uint8) bool {
	for _, p := range r.Positions() {
		t := a.grid.At(p)
		if !a.plainFloor(p) || t.Room != room || t.NaturalJunction || a.claimed.Has(p) {
			return false
		}
	}
	return true
}

func (a *attempt) buildStructure(kind structureKind, inner world.Rect, room uint8) (edits, *world.Position) {
	var e edits
	wall := func(p world.Position) {
		e.set(a.grid, p, func(t *world.Tile) { *t = world.Tile{Terrain: world.TerrainWall, Room: world.NoRoom} })
	}
	switch kind {
	case structurePillars:
		for y := inner.Y0 + 1; y < inner.Y1-1; y += 2 {
			for x := inner.X0 + 1; x < inner.X1-1; x += 2 {
				wall(world.Position{X: x, Y: y})
			}
		}
	case structurePool:
		terrain := a.blobTerrain()
		for _, p := range inner.Inset(1).Positions() {
			e.set(a.grid, p, func(t *world.Tile) { t.Terrain = terrain })
		}
	case structureVault:
		if inner.Width() < 5 || inner.Height() < 5 {
			return nil, nil
		}
		center := inner.Center()
		gap := world.Cardinals[a.rng.Intn(len(world.Cardinals))]
		door := center.Step(gap)
		for _, d := range world.Directions {
			if p := center.Step(d); p != door {
				wall(p)
			}
		}
		return e, &center
	case structureDivider:
		if inner.Width() >= inner.Height() {
			x := inner.X0 + inner.Width()/2
			gap := a.rng.Range(inner.Y0, inner.Y1)
			for y := inner.Y0; y < inner.Y1; y++ {
				if y != gap {
					wall(world.Position{X: x, Y: y})
				}
			}
		} else {
			y := inner.Y0 + inner.Height()/2
			gap := a.rng.Range(inner.X0, inner.X1)
			for x := inner.X0; x < inner.X1; x++ {
				if x != gap {
					wall(world.Position{X: x, Y: y})
				}
			}
		}
	}
	return e, nil
}
