package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/floorgen/internal/entity"
	"github.com/samdwyer/floorgen/internal/gamedata"
	"github.com/samdwyer/floorgen/internal/generator"
	"github.com/samdwyer/floorgen/internal/world"
)

// StatusRow and MessageRow are the text lines below the map.
const (
	StatusRow  = world.Height
	MessageRow = world.Height + 1
)

// View is everything one frame shows.
type View struct {
	Floor    *generator.Floor
	Entities *entity.Table
	Party    *entity.Party
	Palette  gamedata.Palette
	// RevealAll ignores tile visibility, for inspecting generated floors.
	RevealAll bool
	Status    string
	Message   string
}

// Renderer handles drawing floors to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the floor, its entities and the party.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	g := v.Floor.Grid
	for y := 0; y < world.Height; y++ {
		for x := 0; x < world.Width; x++ {
			tile := g.Tiles[y][x]
			if !v.RevealAll && !tile.Visibility.Revealed && !tile.Visibility.Visited {
				continue
			}
			r.screen.SetContent(x, y, tile.Rune(g.Secondary), r.tileStyle(tile, v.Palette))
		}
	}

	if v.Entities != nil {
		r.drawEntities(v)
	}

	// Draw party on top
	if v.Party != nil {
		partyStyle := tcell.StyleDefault.
			Foreground(tcell.ColorYellow).
			Bold(true)
		r.screen.SetContent(v.Party.Pos.X, v.Party.Pos.Y, v.Party.Symbol, partyStyle)
	}

	r.RenderMessage(v.Status, StatusRow)
	r.RenderMessage(v.Message, MessageRow)
	r.screen.Show()
}

func (r *Renderer) drawEntities(v View) {
	shown := func(p world.Position) bool {
		if v.RevealAll {
			return true
		}
		vis := v.Floor.Grid.At(p).Visibility
		return vis.Revealed || vis.Visited
	}

	for _, tr := range v.Entities.Traps {
		if (tr.Visible || v.RevealAll) && shown(tr.Pos) {
			r.screen.SetContent(tr.Pos.X, tr.Pos.Y, tr.Symbol(), tcell.StyleDefault.Foreground(tcell.ColorFuchsia))
		}
	}
	for _, it := range v.Entities.Items {
		if (!it.Buried || v.RevealAll) && shown(it.Pos) {
			r.screen.SetContent(it.Pos.X, it.Pos.Y, it.Symbol(), tcell.StyleDefault.Foreground(it.Def.TCellColor()))
		}
	}
	for _, m := range v.Entities.Monsters {
		if shown(m.Pos) {
			style := tcell.StyleDefault.Foreground(m.Def.TCellColor())
			if m.InMonsterHouse {
				style = style.Bold(true)
			}
			r.screen.SetContent(m.Pos.X, m.Pos.Y, m.Symbol, style)
		}
	}
}

// tileStyle returns the palette style for a tile.
func (r *Renderer) tileStyle(tile world.Tile, p gamedata.Palette) tcell.Style {
	fg := p.Floor
	switch {
	case tile.Stairs:
		fg = p.Stairs
	case tile.InKecleonShop:
		fg = p.Shop
	case tile.Terrain == world.TerrainWall:
		fg = p.Wall
	case tile.Terrain == world.TerrainSecondary:
		fg = p.Secondary
	case tile.Terrain == world.TerrainChasm:
		fg = p.Chasm
	case !tile.InRoom():
		fg = p.Hallway
	}
	return tcell.StyleDefault.Foreground(fg)
}

// RenderMessage displays a message on row y, clearing the rest of the row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	w, _ := r.screen.Size()
	i := 0
	for _, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
		i++
	}
	for ; i < w; i++ {
		r.screen.SetContent(i, y, ' ', style)
	}
}
