package game

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/floorgen/internal/gamedata"
	"github.com/samdwyer/floorgen/internal/ui"
	"github.com/samdwyer/floorgen/internal/world"
)

// Game connects an Explorer to a terminal screen.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	explorer *Explorer
	logger   *slog.Logger
	running  bool
}

// New creates a new game instance on the terminal.
func New(cfg Config, c *gamedata.Catalog, src FloorSource, logger *slog.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, cfg, c, src, logger)
}

// NewWithScreen creates a game drawing on screen.
func NewWithScreen(screen *ui.Screen, cfg Config, c *gamedata.Catalog, src FloorSource, logger *slog.Logger) (*Game, error) {
	ex, err := NewExplorer(cfg, c, src, logger)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		explorer: ex,
		logger:   logger,
		running:  true,
	}, nil
}

// Explorer returns the game's explorer.
func (g *Game) Explorer() *Explorer { return g.explorer }

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	if err := g.explorer.Start(ctx); err != nil {
		return err
	}

	for g.running {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.renderer.Render(g.explorer.View())

		// Handle input (blocking)
		if err := g.handleInput(ctx); err != nil {
			return err
		}
	}
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) error {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized.
		g.running = false
	}
	return nil
}

var runeDirections = map[rune]world.Direction{
	'h': world.DirLeft,
	'j': world.DirDown,
	'k': world.DirUp,
	'l': world.DirRight,
	'y': world.DirUpLeft,
	'u': world.DirUpRight,
	'b': world.DirDownLeft,
	'n': world.DirDownRight,
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		return g.explorer.Move(ctx, world.DirUp)
	case tcell.KeyDown:
		return g.explorer.Move(ctx, world.DirDown)
	case tcell.KeyLeft:
		return g.explorer.Move(ctx, world.DirLeft)
	case tcell.KeyRight:
		return g.explorer.Move(ctx, world.DirRight)

	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q', 'Q':
			g.running = false
		case 'r', 'R':
			g.logger.Debug("regenerating floor", "floor", g.explorer.FloorNumber())
			return g.explorer.Regenerate(ctx)
		default:
			if d, ok := runeDirections[r]; ok {
				return g.explorer.Move(ctx, d)
			}
		}
	}
	return nil
}
