package generator

import (
	"math"

	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/world"
)

// preferredCellAspect is the width/height ratio cells should approach.
const preferredCellAspect = 1.6

// layoutArea returns the part of the floor a layout partitions.
func layoutArea(l dungeon.Layout) world.Rect {
	switch l {
	case dungeon.LayoutMedium:
		return centered(42, 24)
	case dungeon.LayoutSmall:
		return centered(28, 16)
	case dungeon.LayoutLine:
		return world.Rect{X0: world.Interior.X0, Y0: 9, X1: world.Interior.X1, Y1: 23}
	case dungeon.LayoutCross:
		return centered(42, 28)
	default:
		return world.Interior
	}
}

func centered(w, h int) world.Rect {
	x0 := (world.Width - w) / 2
	y0 := (world.Height - h) / 2
	return world.Rect{X0: x0, Y0: y0, X1: x0 + w, Y1: y0 + h}
}

// gridShape picks the smallest cols x rows grid holding n rooms for a
// flexible layout, breaking ties toward cells of a pleasant aspect.
func gridShape(l dungeon.Layout, n int) (cols, rows int) {
	maxCols, maxRows := l.MaxGrid()
	if l.Fixed() {
		return maxCols, maxRows
	}
	area := layoutArea(l)
	bestWaste, bestDev := math.MaxInt, math.MaxFloat64
	for r := 1; r <= maxRows; r++ {
		c := (n + r - 1) / r
		if c > maxCols || c < 1 {
			continue
		}
		waste := c*r - n
		aspect := (float64(area.Width()) / float64(c)) / (float64(area.Height()) / float64(r))
		dev := math.Abs(aspect - preferredCellAspect)
		if waste < bestWaste || (waste == bestWaste && dev < bestDev) {
			cols, rows, bestWaste, bestDev = c, r, waste, dev
		}
	}
	if cols == 0 {
		return maxCols, maxRows
	}
	return cols, rows
}

// partition splits the layout area into cells and invalidates the excess.
func (a *attempt) partition() {
	l := a.props.Layout
	n := a.props.Rooms
	if l.Fixed() {
		n = l.Capacity()
	}
	cols, rows := gridShape(l, n)
	area := layoutArea(l)

	cg := &cellGrid{cols: cols, rows: rows, area: area}
	cw, ch := area.Width()/cols, area.Height()/rows
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			b := world.Rect{
				X0: area.X0 + col*cw,
				Y0: area.Y0 + row*ch,
				X1: area.X0 + (col+1)*cw,
				Y1: area.Y0 + (row+1)*ch,
			}
			// The last column and row absorb the remainder.
			if col == cols-1 {
				b.X1 = area.X1
			}
			if row == rows-1 {
				b.Y1 = area.Y1
			}
			cg.cells = append(cg.cells, &cell{col: col, row: row, bounds: b, index: world.NoRoom})
		}
	}

	if l == dungeon.LayoutCross {
		for _, corner := range [][2]int{{0, 0}, {cols - 1, 0}, {0, rows - 1}, {cols - 1, rows - 1}} {
			cg.at(corner[0], corner[1]).Invalid = true
		}
	} else {
		for excess := cols*rows - n; excess > 0; excess-- {
			var removable []*cell
			for _, c := range cg.valid() {
				if cg.adjacentWithout(c) {
					removable = append(removable, c)
				}
			}
			if len(removable) == 0 {
				a.status.invalidate("no removable cell for %d rooms in %dx%d", n, cols, rows)
				return
			}
			removable[a.rng.Intn(len(removable))].Invalid = true
		}
	}
	a.cells = cg
}

// adjacentWithout reports whether the valid cells other than skip stay
// 4-connected by grid adjacency.
func (cg *cellGrid) adjacentWithout(skip *cell) bool {
	var first *cell
	total := 0
	for _, c := range cg.cells {
		if c.Invalid || c == skip {
			continue
		}
		if first == nil {
			first = c
		}
		total++
	}
	if first == nil {
		return false
	}
	seen := map[*cell]bool{first: true}
	queue := []*cell{first}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, s := range sides {
			n := cg.neighbor(c, s)
			if n == nil || n == skip || seen[n] {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return len(seen) == total
}
