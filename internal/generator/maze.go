package generator

import "github.com/samdwyer/floorgen/internal/world"

// carveMaze turns an odd-sided room into a maze. Nodes sit on even offsets
// from the room corner and the outer ring stays open, so every hallway
// entering the room lands on the ring.
func (a *attempt) carveMaze(r *roomInfo) {
	rect := r.rect
	for y := rect.Y0 + 1; y < rect.Y1-1; y++ {
		for x := rect.X0 + 1; x < rect.X1-1; x++ {
			a.grid.SetWall(world.Position{X: x, Y: y})
		}
	}

	cols := (rect.Width() + 1) / 2
	rows := (rect.Height() + 1) / 2
	node := func(i, j int) world.Position {
		return world.Position{X: rect.X0 + 2*i, Y: rect.Y0 + 2*j}
	}
	visited := make([]bool, cols*rows)
	onRing := func(i, j int) bool {
		return i == 0 || j == 0 || i == cols-1 || j == rows-1
	}

	start := [2]int{a.rng.Intn(cols), 0}
	visited[start[1]*cols+start[0]] = true
	stack := [][2]int{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		var options [][2]int
		for _, d := range world.Cardinals {
			dx, dy := d.Delta()
			ni, nj := cur[0]+dx, cur[1]+dy
			if ni < 0 || nj < 0 || ni >= cols || nj >= rows || visited[nj*cols+ni] {
				continue
			}
			options = append(options, [2]int{ni, nj})
		}
		if len(options) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		next := options[a.rng.Intn(len(options))]
		visited[next[1]*cols+next[0]] = true
		from, to := node(cur[0], cur[1]), node(next[0], next[1])
		if !onRing(next[0], next[1]) || !onRing(cur[0], cur[1]) {
			a.grid.SetFloor(world.Position{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}, r.index)
			a.grid.SetFloor(to, r.index)
		}
		stack = append(stack, next)
	}
}
