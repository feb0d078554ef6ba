package world

// Position is a tile coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the neighbouring position in direction d.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Rect is a half-open rectangle of tiles: X0 and Y0 inclusive, X1 and Y1
// exclusive.
type Rect struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Width returns the number of columns.
func (r Rect) Width() int { return r.X1 - r.X0 }

// Height returns the number of rows.
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// Area returns the tile count, zero for degenerate rectangles.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width() * r.Height()
}

// Empty reports whether the rectangle holds no tiles.
func (r Rect) Empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Center returns the center coordinates of the rectangle.
func (r Rect) Center() Position {
	return Position{X: r.X0 + r.Width()/2, Y: r.Y0 + r.Height()/2}
}

// Contains returns true if the given point is inside the rectangle.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X0 && p.X < r.X1 && p.Y >= r.Y0 && p.Y < r.Y1
}

// ContainsRect returns true if o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X0 >= r.X0 && o.Y0 >= r.Y0 && o.X1 <= r.X1 && o.Y1 <= r.Y1
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(o Rect) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Y0 < o.Y1 && r.Y1 > o.Y0
}

// Inset shrinks the rectangle by n tiles on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X0: r.X0 + n, Y0: r.Y0 + n, X1: r.X1 - n, Y1: r.Y1 - n}
}

// Union returns the bounding box of both rectangles.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// Positions lists the tiles row by row.
func (r Rect) Positions() []Position {
	if r.Empty() {
		return nil
	}
	out := make([]Position, 0, r.Area())
	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			out = append(out, Position{X: x, Y: y})
		}
	}
	return out
}
