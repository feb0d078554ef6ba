package world

// Unreached marks tiles a flood fill did not reach.
const Unreached = -1

// DistanceMap holds step counts from a flood fill origin.
type DistanceMap struct {
	dist  [Height][Width]int
	count int
}

// At returns the distance to p, or Unreached.
func (d *DistanceMap) At(p Position) int {
	if !Bounds.Contains(p) {
		return Unreached
	}
	return d.dist[p.Y][p.X]
}

// Reachable reports whether the flood fill reached p.
func (d *DistanceMap) Reachable(p Position) bool {
	return d.At(p) != Unreached
}

// Count returns the number of reached tiles, the origin included.
func (d *DistanceMap) Count() int {
	return d.count
}

// Distances flood-fills from start using mobility m and returns the step
// count to every reachable tile. An origin the mobility cannot stand on
// yields an empty map.
func (g *Grid) Distances(start Position, m Mobility) *DistanceMap {
	dm := &DistanceMap{}
	for y := range dm.dist {
		for x := range dm.dist[y] {
			dm.dist[y][x] = Unreached
		}
	}
	if !g.CanEnter(start, m) {
		return dm
	}

	dm.dist[start.Y][start.X] = 0
	dm.count = 1
	queue := []Position{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		next := dm.dist[current.Y][current.X] + 1
		for _, d := range Directions {
			if !g.CanStep(current, d, m) {
				continue
			}
			n := current.Step(d)
			if dm.dist[n.Y][n.X] != Unreached {
				continue
			}
			dm.dist[n.Y][n.X] = next
			dm.count++
			queue = append(queue, n)
		}
	}
	return dm
}

// NormalFloorConnected reports whether every normal floor tile can reach
// every other one with normal mobility. A grid without floor is connected.
func (g *Grid) NormalFloorConnected() bool {
	var start *Position
	total := 0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if g.Tiles[y][x].Terrain == TerrainNormal {
				if start == nil {
					start = &Position{X: x, Y: y}
				}
				total++
			}
		}
	}
	if start == nil {
		return true
	}
	return g.Distances(*start, MobilityNormal).Count() == total
}
