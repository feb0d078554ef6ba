package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/floorgen/internal/entity"
	"github.com/samdwyer/floorgen/internal/gamedata"
	"github.com/samdwyer/floorgen/internal/generator"
	"github.com/samdwyer/floorgen/internal/world"
)

func newSimScreen(t *testing.T) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	s, err := Wrap(sim)
	require.NoError(t, err)
	sim.SetSize(world.Width, world.Height+2)
	t.Cleanup(s.Close)
	return s
}

func testFloor(t *testing.T) (*generator.Floor, *entity.Table, *gamedata.Catalog) {
	t.Helper()
	c := gamedata.MustLoadCatalog()
	req, err := c.Request("tiny_woods", 1, 5)
	require.NoError(t, err)
	f, err := generator.New(generator.DefaultOptions()).Generate(t.Context(), req)
	require.NoError(t, err)
	tbl, err := entity.Populate(f, c, req.Properties, req.Restriction)
	require.NoError(t, err)
	return f, tbl, c
}

func TestRenderRevealAll(t *testing.T) {
	s := newSimScreen(t)
	f, tbl, c := testFloor(t)
	party := entity.NewParty(f.Result.PlayerSpawn, 4)

	NewRenderer(s).Render(View{
		Floor:     f,
		Entities:  tbl,
		Party:     party,
		Palette:   c.Palette(0),
		RevealAll: true,
		Status:    "B1F",
	})

	r, style := s.Content(party.Pos.X, party.Pos.Y)
	assert.Equal(t, '@', r)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.ColorYellow, fg)

	require.NotNil(t, f.Result.Stairs)
	r, _ = s.Content(f.Result.Stairs.X, f.Result.Stairs.Y)
	assert.Equal(t, '>', r)

	r, _ = s.Content(0, 0)
	assert.Equal(t, '#', r)

	for _, m := range tbl.Monsters {
		r, _ = s.Content(m.Pos.X, m.Pos.Y)
		assert.Equal(t, m.Symbol, r)
	}

	r, _ = s.Content(0, StatusRow)
	assert.Equal(t, 'B', r)
}

func TestRenderHidesUnrevealedTiles(t *testing.T) {
	s := newSimScreen(t)
	f, tbl, c := testFloor(t)

	f.Grid.At(f.Result.PlayerSpawn).Visibility.Visited = true
	NewRenderer(s).Render(View{Floor: f, Entities: tbl, Palette: c.Palette(0)})

	r, _ := s.Content(f.Result.PlayerSpawn.X, f.Result.PlayerSpawn.Y)
	assert.NotEqual(t, ' ', r)

	r, _ = s.Content(0, 0)
	assert.Equal(t, ' ', r, "border was never revealed")
}

func TestTileStyle(t *testing.T) {
	p := gamedata.DefaultPalette()
	r := &Renderer{}

	tests := []struct {
		name string
		tile world.Tile
		want tcell.Color
	}{
		{"wall", world.Tile{Terrain: world.TerrainWall, Room: world.NoRoom}, p.Wall},
		{"room", world.Tile{Terrain: world.TerrainNormal, Room: 0}, p.Floor},
		{"hallway", world.Tile{Terrain: world.TerrainNormal, Room: world.NoRoom}, p.Hallway},
		{"water", world.Tile{Terrain: world.TerrainSecondary, Room: 0}, p.Secondary},
		{"chasm", world.Tile{Terrain: world.TerrainChasm, Room: 0}, p.Chasm},
		{"stairs", world.Tile{Terrain: world.TerrainNormal, Stairs: true}, p.Stairs},
		{"shop", world.Tile{Terrain: world.TerrainNormal, InKecleonShop: true}, p.Shop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fg, _, _ := r.tileStyle(tt.tile, p).Decompose()
			if fg != tt.want {
				t.Errorf("tileStyle(%s) fg = %v, want %v", tt.name, fg, tt.want)
			}
		})
	}
}
