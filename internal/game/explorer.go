package game

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/floorgen/internal/entity"
	"github.com/samdwyer/floorgen/internal/gamedata"
	"github.com/samdwyer/floorgen/internal/generator"
	"github.com/samdwyer/floorgen/internal/rng"
	"github.com/samdwyer/floorgen/internal/telemetry"
	"github.com/samdwyer/floorgen/internal/ui"
	"github.com/samdwyer/floorgen/internal/world"
)

// FloorSource supplies floors. *store.Loader implements it.
type FloorSource interface {
	Load(ctx context.Context, req generator.Request) (*generator.Floor, bool, error)
}

// Explorer holds the state of one run through a dungeon. It has no screen,
// so the game loop and tests drive it the same way.
type Explorer struct {
	cfg     Config
	catalog *gamedata.Catalog
	source  FloorSource
	logger  *slog.Logger
	tracer  trace.Tracer

	dungeon  *gamedata.DungeonDef
	floorNum int
	reroll   uint64
	req      generator.Request
	floor    *generator.Floor
	entities *entity.Table
	party    *entity.Party
	state    State
	message  string
}

// NewExplorer creates an explorer for cfg.DungeonID.
func NewExplorer(cfg Config, c *gamedata.Catalog, src FloorSource, logger *slog.Logger) (*Explorer, error) {
	d, err := c.Dungeon(cfg.DungeonID)
	if err != nil {
		return nil, err
	}
	if cfg.StartFloor == 0 {
		cfg.StartFloor = 1
	}
	if cfg.StartFloor < 1 || cfg.StartFloor > d.Floors {
		return nil, fmt.Errorf("start floor %d outside %s floors 1-%d", cfg.StartFloor, d.ID, d.Floors)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Explorer{
		cfg:     cfg,
		catalog: c,
		source:  src,
		logger:  logger,
		tracer:  telemetry.Tracer("game"),
		dungeon: d,
		state:   StateExplore,
	}, nil
}

// Start enters the first floor.
func (e *Explorer) Start(ctx context.Context) error {
	return e.enter(ctx, e.cfg.StartFloor)
}

func (e *Explorer) enter(ctx context.Context, n int) error {
	ctx, span := e.tracer.Start(ctx, "floor.enter")
	defer span.End()

	seed := rng.Seed(e.dungeon.ID, n, e.cfg.Seed+e.reroll)
	req, err := e.catalog.Request(e.dungeon.ID, n, seed)
	if err != nil {
		return err
	}
	f, cached, err := e.source.Load(ctx, req)
	if err != nil {
		return fmt.Errorf("floor %d: %w", n, err)
	}
	// Cached floors are shared; play mutates tiles.
	f = &generator.Floor{Grid: f.Grid.Clone(), Result: f.Result, Status: f.Status}

	entities, err := entity.Populate(f, e.catalog, req.Properties, req.Restriction)
	if err != nil {
		return fmt.Errorf("floor %d: %w", n, err)
	}

	e.floorNum = n
	e.req = req
	e.floor = f
	e.entities = entities
	if e.party == nil {
		e.party = entity.NewParty(f.Result.PlayerSpawn, req.Restriction.MaxPartySize)
	} else {
		e.party.Pos = f.Result.PlayerSpawn
	}
	Reveal(f.Grid, e.party.Pos, req.Properties.DarknessLevel)

	e.message = fmt.Sprintf("Entered %s %s.", e.dungeon.Name, e.floorLabel())
	if f.Result.HardFail {
		e.message += " The floor collapsed into a single room."
	}

	span.SetAttributes(
		attribute.String("dungeon.id", e.dungeon.ID),
		attribute.Int("floor.number", n),
		attribute.Bool("floor.cached", cached),
		attribute.Int("floor.monsters", len(entities.Monsters)),
	)
	e.logger.Debug("entered floor", "dungeon", e.dungeon.ID, "floor", n, "seed", seed, "cached", cached)
	return nil
}

// Move steps the party one tile, handling whatever it finds there.
func (e *Explorer) Move(ctx context.Context, d world.Direction) error {
	if e.state != StateExplore {
		return nil
	}

	to := e.party.Pos.Step(d)
	if m, ok := e.entities.MonsterAt(to); ok {
		if m.Shopkeeper {
			e.message = fmt.Sprintf("%s: Welcome! Take a look around.", m.Name)
		} else {
			e.message = fmt.Sprintf("A wild %s blocks the way.", m.Name)
		}
		return nil
	}
	if !e.party.Move(e.floor.Grid, d) {
		return nil
	}
	e.message = ""
	Reveal(e.floor.Grid, e.party.Pos, e.req.Properties.DarknessLevel)

	if it, ok := e.entities.ItemAt(e.party.Pos); ok && it.Price > 0 {
		e.message = fmt.Sprintf("%s for sale: %d Poké.", it.Def.Name, it.Price)
	} else if it, ok := e.entities.TakeItem(e.party.Pos); ok {
		if it.Def.Kind == gamedata.ItemMoney {
			e.party.Money += it.Amount
			e.message = fmt.Sprintf("Picked up %d Poké.", it.Amount)
		} else {
			e.party.Items = append(e.party.Items, it)
			e.message = fmt.Sprintf("Picked up %s.", it.Def.Name)
		}
	}
	if tr, ok := e.entities.TrapAt(e.party.Pos); ok {
		e.entities.RevealTrap(e.party.Pos)
		e.message = fmt.Sprintf("Stepped on a %s!", tr.Def.Name)
	}

	if e.floor.Grid.At(e.party.Pos).Stairs {
		return e.descend(ctx)
	}
	return nil
}

func (e *Explorer) descend(ctx context.Context) error {
	if e.floorNum >= e.dungeon.Floors {
		e.state = StateCleared
		e.message = fmt.Sprintf("Cleared %s!", e.dungeon.Name)
		return nil
	}
	e.reroll = 0
	return e.enter(ctx, e.floorNum+1)
}

// Regenerate replaces the current floor with a new one from the next seed.
func (e *Explorer) Regenerate(ctx context.Context) error {
	e.reroll++
	return e.enter(ctx, e.floorNum)
}

// Floor returns the current floor.
func (e *Explorer) Floor() *generator.Floor { return e.floor }

// Entities returns the current floor's entity table.
func (e *Explorer) Entities() *entity.Table { return e.entities }

// Party returns the player's party.
func (e *Explorer) Party() *entity.Party { return e.party }

// FloorNumber returns the current floor number.
func (e *Explorer) FloorNumber() int { return e.floorNum }

// State returns the current game state.
func (e *Explorer) State() State { return e.state }

// Message returns the latest event message.
func (e *Explorer) Message() string { return e.message }

func (e *Explorer) floorLabel() string {
	if e.dungeon.Restriction.DungeonGoesUp {
		return fmt.Sprintf("%dF", e.floorNum)
	}
	return fmt.Sprintf("B%dF", e.floorNum)
}

// View returns the frame to draw.
func (e *Explorer) View() ui.View {
	props := e.req.Properties
	status := fmt.Sprintf("%s %s  Poké %d  items %d  seed %d",
		e.dungeon.Name, e.floorLabel(), e.party.Money, len(e.party.Items), e.cfg.Seed+e.reroll)
	if props.NoStairs {
		status += "  (no stairs)"
	}
	return ui.View{
		Floor:     e.floor,
		Entities:  e.entities,
		Party:     e.party,
		Palette:   e.catalog.Palette(props.Tileset),
		RevealAll: e.cfg.RevealMap,
		Status:    status,
		Message:   e.message,
	}
}
