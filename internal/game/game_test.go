package game

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/floorgen/internal/gamedata"
	"github.com/samdwyer/floorgen/internal/generator"
	"github.com/samdwyer/floorgen/internal/store"
	"github.com/samdwyer/floorgen/internal/ui"
	"github.com/samdwyer/floorgen/internal/world"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateExplore, "explore"},
		{StateCleared, "cleared"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestGameLoop(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	screen, err := ui.Wrap(sim)
	require.NoError(t, err)
	sim.SetSize(world.Width, world.Height+2)

	src := &store.Loader{Generator: generator.New(generator.DefaultOptions())}
	g, err := NewWithScreen(screen, Config{DungeonID: "tiny_woods", Seed: 4}, gamedata.MustLoadCatalog(), src, nil)
	require.NoError(t, err)

	sim.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	require.NoError(t, g.Run(t.Context()))
	assert.Equal(t, 1, g.Explorer().FloorNumber())
	assert.Equal(t, uint64(1), g.Explorer().reroll)
}
