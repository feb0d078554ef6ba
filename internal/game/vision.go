package game

import (
	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/world"
)

// Reveal updates tile visibility for a party standing at p. Inside a room
// the whole room and its walls are seen; in hallways only the tiles within
// the floor's sight radius. Bright floors are fully lit.
func Reveal(g *world.Grid, p world.Position, d dungeon.Darkness) {
	if t := g.At(p); t != nil {
		t.Visibility.Visited = true
	}

	if d == dungeon.DarknessBright {
		for y := range g.Tiles {
			for x := range g.Tiles[y] {
				g.Tiles[y][x].Visibility.Revealed = true
			}
		}
		return
	}

	radius := d.SightRadius()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if t := g.At(world.Position{X: p.X + dx, Y: p.Y + dy}); t != nil {
				t.Visibility.Revealed = true
			}
		}
	}

	here := g.At(p)
	if here == nil || !here.InRoom() {
		return
	}
	room := here.Room
	for _, q := range g.Collect(func(_ world.Position, t world.Tile) bool { return t.Room == room }) {
		for _, d := range world.Directions {
			if t := g.At(q.Step(d)); t != nil {
				t.Visibility.Revealed = true
			}
		}
		g.At(q).Visibility.Revealed = true
	}
}
