package generator

import "github.com/samdwyer/floorgen/internal/world"

// cell is one slot of the partition grid. Cells only live while a floor is
// being laid out.
type cell struct {
	col, row int
	bounds   world.Rect

	Invalid bool
	IsRoom  bool
	IsMaze  bool

	IsMonsterHouse bool
	// IsMergedRoom is set on the cell that owns a fused room; the partner
	// points back with MergedInto.
	IsMergedRoom bool
	MergedInto   *cell

	ShouldConnect [4]bool
	IsConnected   [4]bool

	FlagImperfect          bool
	FlagSecondaryStructure bool

	room   world.Rect
	anchor world.Position
	index  uint8
}

// Side indexes the four neighbour links of a cell.
type side uint8

const (
	sideTop side = iota
	sideBottom
	sideLeft
	sideRight
)

var sides = [4]side{sideTop, sideBottom, sideLeft, sideRight}

func (s side) opposite() side {
	switch s {
	case sideTop:
		return sideBottom
	case sideBottom:
		return sideTop
	case sideLeft:
		return sideRight
	default:
		return sideLeft
	}
}

func (s side) delta() (int, int) {
	switch s {
	case sideTop:
		return 0, -1
	case sideBottom:
		return 0, 1
	case sideLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// owner returns the cell holding the room geometry for c.
func (c *cell) owner() *cell {
	if c.MergedInto != nil {
		return c.MergedInto
	}
	return c
}

// degree counts planned links.
func (c *cell) degree() int {
	n := 0
	for _, s := range sides {
		if c.ShouldConnect[s] {
			n++
		}
	}
	return n
}

// cellGrid is the partition of the usable area into cols x rows cells.
type cellGrid struct {
	cols, rows int
	area       world.Rect
	cells      []*cell
}

func (cg *cellGrid) at(col, row int) *cell {
	if col < 0 || col >= cg.cols || row < 0 || row >= cg.rows {
		return nil
	}
	return cg.cells[row*cg.cols+col]
}

// neighbor returns the valid cell on side s of c, or nil.
func (cg *cellGrid) neighbor(c *cell, s side) *cell {
	dx, dy := s.delta()
	n := cg.at(c.col+dx, c.row+dy)
	if n == nil || n.Invalid {
		return nil
	}
	return n
}

func (cg *cellGrid) valid() []*cell {
	var out []*cell
	for _, c := range cg.cells {
		if !c.Invalid {
			out = append(out, c)
		}
	}
	return out
}

// link plans a connection between c and its neighbour on side s.
func (cg *cellGrid) link(c *cell, s side) {
	n := cg.neighbor(c, s)
	if n == nil {
		return
	}
	c.ShouldConnect[s] = true
	n.ShouldConnect[s.opposite()] = true
}

// connected reports whether every valid cell can be reached from the first
// one over planned links, counting merged partners as joined.
func (cg *cellGrid) connected() bool {
	valid := cg.valid()
	if len(valid) == 0 {
		return false
	}
	seen := map[*cell]bool{valid[0]: true}
	queue := []*cell{valid[0]}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		var next []*cell
		for _, s := range sides {
			if c.ShouldConnect[s] {
				if n := cg.neighbor(c, s); n != nil {
					next = append(next, n)
				}
			}
		}
		if c.MergedInto != nil {
			next = append(next, c.MergedInto)
		}
		for _, other := range cg.cells {
			if other.MergedInto == c {
				next = append(next, other)
			}
		}
		for _, n := range next {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen) == len(valid)
}
