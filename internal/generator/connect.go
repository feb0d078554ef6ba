package generator

import (
	"github.com/samdwyer/floorgen/internal/world"
)

const (
	minExtraHallway = 3
	maxExtraHallway = 10
)

// connect plans links between cells, carves them as hallways and adds the
// floor's extra hallway spurs.
func (a *attempt) connect() {
	valid := a.cells.valid()
	a.spanningTree(valid[a.rng.Intn(len(valid))])

	for _, c := range valid {
		for _, s := range []side{sideRight, sideBottom} {
			if n := a.cells.neighbor(c, s); n != nil && !c.ShouldConnect[s] && a.rng.Chance(a.props.Connectivity) {
				a.cells.link(c, s)
			}
		}
	}

	if !a.props.AllowDeadEnds {
		a.fixDeadEnds()
	}
	if !a.cells.connected() {
		a.status.invalidate("cell graph is not connected")
		return
	}

	for _, c := range a.cells.valid() {
		for _, s := range []side{sideRight, sideBottom} {
			if c.ShouldConnect[s] && !c.IsConnected[s] {
				a.carveLink(c, s)
			}
		}
	}
	a.extraHallways()
}

// spanningTree links every valid cell with a randomized depth-first walk.
func (a *attempt) spanningTree(start *cell) {
	visited := map[*cell]bool{start: true}
	stack := []*cell{start}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		var options []side
		for _, s := range sides {
			if n := a.cells.neighbor(c, s); n != nil && !visited[n] {
				options = append(options, s)
			}
		}
		if len(options) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		s := options[a.rng.Intn(len(options))]
		a.cells.link(c, s)
		n := a.cells.neighbor(c, s)
		visited[n] = true
		stack = append(stack, n)
	}
}

// fixDeadEnds gives every anchor with a single link a second one, or prunes
// the anchor when it has no other neighbour.
func (a *attempt) fixDeadEnds() {
	for changed := true; changed; {
		changed = false
		for _, c := range a.cells.valid() {
			if c.IsRoom || c.degree() > 1 {
				continue
			}
			var options []side
			for _, s := range sides {
				if n := a.cells.neighbor(c, s); n != nil && !c.ShouldConnect[s] {
					options = append(options, s)
				}
			}
			if len(options) > 0 {
				a.cells.link(c, options[a.rng.Intn(len(options))])
				changed = true
				continue
			}
			if len(a.cells.valid()) == 1 {
				continue
			}
			for _, s := range sides {
				if !c.ShouldConnect[s] {
					continue
				}
				if n := a.cells.neighbor(c, s); n != nil {
					n.ShouldConnect[s.opposite()] = false
				}
				c.ShouldConnect[s] = false
			}
			c.Invalid = true
			a.grid.SetWall(c.anchor)
			changed = true
		}
	}
}

// exitPoint is where a hallway toward side s leaves c: a tile on the facing
// room edge, or the anchor itself.
func (a *attempt) exitPoint(c *cell, s side) world.Position {
	if !c.IsRoom {
		return c.anchor
	}
	r := c.room
	// Merged rooms span two cells; keep the exit within this cell's band.
	span := r
	if s == sideLeft || s == sideRight {
		span.Y0, span.Y1 = max(r.Y0, c.bounds.Y0), min(r.Y1, c.bounds.Y1)
	} else {
		span.X0, span.X1 = max(r.X0, c.bounds.X0), min(r.X1, c.bounds.X1)
	}
	switch s {
	case sideRight:
		return world.Position{X: r.X1 - 1, Y: a.rng.Range(span.Y0, span.Y1)}
	case sideLeft:
		return world.Position{X: r.X0, Y: a.rng.Range(span.Y0, span.Y1)}
	case sideBottom:
		return world.Position{X: a.rng.Range(span.X0, span.X1), Y: r.Y1 - 1}
	default:
		return world.Position{X: a.rng.Range(span.X0, span.X1), Y: r.Y0}
	}
}

// carveLink digs the hallway between c and its neighbour on side s, which
// is sideRight or sideBottom. The path bends at most twice, always inside
// the gap between the two rooms.
func (a *attempt) carveLink(c *cell, s side) {
	n := a.cells.neighbor(c, s)
	if n == nil {
		return
	}
	c.IsConnected[s], n.IsConnected[s.opposite()] = true, true
	if c.IsRoom && n.IsRoom && c.owner() == n.owner() {
		return
	}
	from := a.exitPoint(c, s)
	to := a.exitPoint(n, s.opposite())
	if s == sideRight {
		mid := a.rng.Range(from.X+1, to.X)
		a.grid.CarveHorizontal(from.X, mid, from.Y)
		a.grid.CarveVertical(from.Y, to.Y, mid)
		a.grid.CarveHorizontal(mid, to.X, to.Y)
		return
	}
	mid := a.rng.Range(from.Y+1, to.Y)
	a.grid.CarveVertical(from.Y, mid, from.X)
	a.grid.CarveHorizontal(from.X, to.X, mid)
	a.grid.CarveVertical(mid, to.Y, to.X)
}

// extraHallways carves straight spurs out of random rooms. A spur that
// does not reach other floor is filled back in unless dead ends are allowed.
func (a *attempt) extraHallways() {
	var rooms []*roomInfo
	for _, r := range a.rooms {
		if !r.maze {
			rooms = append(rooms, r)
		}
	}
	if len(rooms) == 0 {
		return
	}
	limit := world.Interior.Inset(1)
	for i := 0; i < a.props.ExtraHallways; i++ {
		r := rooms[a.rng.Intn(len(rooms))]
		d := world.Cardinals[a.rng.Intn(len(world.Cardinals))]
		p := edgeTile(a, r.rect, d)
		length := a.rng.Range(minExtraHallway, maxExtraHallway+1)

		var opened []world.Position
		joined := false
		for step := 0; step < length; step++ {
			p = p.Step(d)
			if !limit.Contains(p) {
				break
			}
			t := a.grid.At(p)
			if t.Terrain != world.TerrainWall {
				joined = t.Room != r.index
				break
			}
			opened = append(opened, a.grid.CarveHorizontal(p.X, p.X, p.Y)...)
		}
		if !joined && !a.props.AllowDeadEnds {
			for _, q := range opened {
				a.grid.SetWall(q)
			}
		}
	}
}

// edgeTile picks a random tile on the side of r facing d.
func edgeTile(a *attempt, r world.Rect, d world.Direction) world.Position {
	switch d {
	case world.DirRight:
		return world.Position{X: r.X1 - 1, Y: a.rng.Range(r.Y0, r.Y1)}
	case world.DirLeft:
		return world.Position{X: r.X0, Y: a.rng.Range(r.Y0, r.Y1)}
	case world.DirDown:
		return world.Position{X: a.rng.Range(r.X0, r.X1), Y: r.Y1 - 1}
	default:
		return world.Position{X: a.rng.Range(r.X0, r.X1), Y: r.Y0}
	}
}

// markJunctions recomputes NaturalJunction and CornerCuttable flags.
func markJunctions(g *world.Grid) {
	for y := world.Interior.Y0; y < world.Interior.Y1; y++ {
		for x := world.Interior.X0; x < world.Interior.X1; x++ {
			p := world.Position{X: x, Y: y}
			t := g.At(p)
			t.NaturalJunction = false
			t.CornerCuttable = false
			if !t.IsOpen() {
				continue
			}
			var open [4]bool
			count := 0
			hallNeighbor := false
			for i, d := range world.Cardinals {
				n := g.At(p.Step(d))
				if n == nil || !n.IsOpen() {
					continue
				}
				open[i] = true
				count++
				if !n.InRoom() {
					hallNeighbor = true
				}
			}
			if t.InRoom() {
				t.NaturalJunction = hallNeighbor
				continue
			}
			t.NaturalJunction = count >= 3
			// Cardinals alternate vertical and horizontal, so a bend is two
			// open neighbours with different index parity.
			if count == 2 {
				var idx []int
				for i, o := range open {
					if o {
						idx = append(idx, i)
					}
				}
				t.CornerCuttable = idx[0]%2 != idx[1]%2
			}
		}
	}
}
