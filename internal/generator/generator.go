// Package generator builds dungeon floors: it partitions the floor into
// cells, shapes rooms and hallways, decorates them, places the stairs and
// special rooms, and chooses spawn points. Failed attempts are retried with
// a fresh seed until a floor satisfies every layout invariant.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/rng"
	"github.com/samdwyer/floorgen/internal/telemetry"
	"github.com/samdwyer/floorgen/internal/world"
)

// Secondary sequences used by each phase of an attempt.
const (
	streamLayout = iota
	streamDecoration
	streamFeatures
	streamSpawns
	streamFixedRoom
)

// Request is everything needed to generate one floor.
type Request struct {
	Properties  dungeon.FloorProperties
	Restriction dungeon.Restriction
	Seed        uint32
	// FixedRoom is stamped instead of a random layout when
	// Properties.FixedRoomID is set.
	FixedRoom *FixedRoom
	// Policy weights spawn tiles. Nil means uniform.
	Policy SpawnPolicy
}

// Generator produces floors. It is safe for concurrent use.
type Generator struct {
	opts   Options
	logger *slog.Logger
	tracer trace.Tracer
}

// New creates a generator with the given options.
func New(opts Options) *Generator {
	opts = opts.withDefaults()
	return &Generator{
		opts:   opts,
		logger: opts.Logger,
		tracer: telemetry.Tracer("generator"),
	}
}

// Generate builds one floor. Invalid properties are reported before any
// random value is drawn; exhausting every attempt is not an error and
// yields the minimal layout with Result.HardFail set.
func (g *Generator) Generate(ctx context.Context, req Request) (*Floor, error) {
	props := req.Properties
	if err := props.Validate(); err != nil {
		return nil, fmt.Errorf("generate floor: %w", err)
	}
	if props.FixedRoomID != 0 {
		if req.FixedRoom == nil {
			return nil, fmt.Errorf("generate floor: %w", &dungeon.ConfigError{
				Field:  "fixed_room_id",
				Reason: fmt.Sprintf("no template supplied for fixed room %d", props.FixedRoomID),
			})
		}
		if err := req.FixedRoom.Validate(); err != nil {
			return nil, fmt.Errorf("generate floor: %w", err)
		}
	}
	policy := req.Policy
	if policy == nil {
		policy = UniformPolicy{}
	}

	ctx, span := g.tracer.Start(ctx, "floor.generate")
	defer span.End()
	startTime := time.Now()

	stream := rng.New(req.Seed)
	var (
		a        *attempt
		attempts int
	)
	for attempts = 1; attempts <= g.opts.MaxAttempts; attempts++ {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "cancelled")
			return nil, fmt.Errorf("generate floor: %w", err)
		}
		stream.UsePrimary()
		stream.Reseed(stream.NextU32())

		a = g.newAttempt(&props, req, policy, stream)
		g.runAttempt(ctx, a, attempts)
		if !a.status.Invalid {
			break
		}
		g.logger.Debug("floor attempt rejected",
			"floor", props.FloorNumber,
			"attempt", attempts,
			"reason", a.status.Reason,
		)
	}

	hardFail := a.status.Invalid
	if hardFail {
		attempts = g.opts.MaxAttempts
		g.logger.Warn("floor generation exhausted its attempts, using minimal layout",
			"floor", props.FloorNumber,
			"attempts", attempts,
			"seed", req.Seed,
			"last_reason", a.status.Reason,
		)
		a = g.newAttempt(&props, req, policy, stream)
		a.minimalLayout()
	}

	floor := a.floor(req.Seed, attempts, hardFail)
	elapsed := time.Since(startTime)

	span.SetAttributes(
		attribute.Int("floor.number", props.FloorNumber),
		attribute.String("floor.layout", props.Layout.String()),
		attribute.Int("floor.rooms", floor.Result.Rooms),
		attribute.Int("floor.attempts", attempts),
		attribute.Bool("floor.hard_fail", hardFail),
		attribute.Int("floor.spawns", len(floor.Result.Spawns)),
		attribute.Int64("floor.generation_ms", elapsed.Milliseconds()),
	)
	g.opts.Metrics.RecordFloor(ctx, attempts, hardFail, elapsed.Seconds())
	counts := make(map[Category]int)
	for _, sp := range floor.Result.Spawns {
		counts[sp.Category]++
	}
	for c, n := range counts {
		g.opts.Metrics.RecordSpawns(ctx, c.String(), n)
	}
	return floor, nil
}

// GenerateDungeon builds several floors concurrently. Each floor draws from
// its own stream seeded from the dungeon ID, the floor number and seed, so
// the result does not depend on scheduling.
func (g *Generator) GenerateDungeon(ctx context.Context, dungeonID string, seed uint64, reqs []Request) ([]*Floor, error) {
	ctx, span := g.tracer.Start(ctx, "dungeon.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("dungeon.id", dungeonID),
		attribute.Int("dungeon.floors", len(reqs)),
	)

	numbers, err := floorNumbers(reqs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	floors := make([]*Floor, len(reqs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range reqs {
		eg.Go(func() error {
			req := reqs[i]
			number := numbers[i]
			req.Seed = rng.Seed(dungeonID, number, seed)
			f, err := g.Generate(ctx, req)
			if err != nil {
				return fmt.Errorf("floor %d: %w", number, err)
			}
			floors[i] = f
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return floors, nil
}

// floorNumbers resolves the floor number of each request, defaulting to its
// 1-based position. Two requests sharing a number would share a seed.
func floorNumbers(reqs []Request) ([]int, error) {
	numbers := make([]int, len(reqs))
	seen := mapset.New[int]()
	for i, req := range reqs {
		n := req.Properties.FloorNumber
		if n == 0 {
			n = i + 1
		}
		if seen.Has(n) {
			return nil, fmt.Errorf("request %d: %w", i+1, &dungeon.ConfigError{
				Field:  "floor_number",
				Reason: fmt.Sprintf("floor %d requested more than once", n),
			})
		}
		seen.Put(n)
		numbers[i] = n
	}
	return numbers, nil
}

// attempt is the working state of one layout try.
type attempt struct {
	props       *dungeon.FloorProperties
	restriction dungeon.Restriction
	opts        Options
	policy      SpawnPolicy
	fixed       *FixedRoom
	rng         *rng.Stream

	grid   *world.Grid
	status *Status
	cells  *cellGrid
	rooms  []*roomInfo

	// claimed holds tiles taken by the stairs, the player spawn and the shop.
	claimed mapset.Set[world.Position]
	// reserved holds tiles kept free for the party around the spawn.
	reserved mapset.Set[world.Position]
	shopRoom uint8
	vaults   []world.Position
	spawns   []SpawnPoint
}

func (g *Generator) newAttempt(props *dungeon.FloorProperties, req Request, policy SpawnPolicy, stream *rng.Stream) *attempt {
	a := &attempt{
		props:       props,
		restriction: req.Restriction,
		opts:        g.opts,
		policy:      policy,
		rng:         stream,
		grid:        world.NewGrid(props.SecondaryTerrain),
		status:      newStatus(props),
		claimed:     mapset.New[world.Position](),
		reserved:    mapset.New[world.Position](),
		shopRoom:    world.NoRoom,
	}
	if props.FixedRoomID != 0 {
		a.fixed = req.FixedRoom
	}
	return a
}

func (g *Generator) runAttempt(ctx context.Context, a *attempt, n int) {
	_, span := g.tracer.Start(ctx, "floor.attempt")
	defer span.End()

	type stage struct {
		stream int
		run    func()
	}
	var stages []stage
	if a.fixed != nil {
		stages = []stage{{streamFixedRoom, a.stampFixedRoom}}
	} else {
		stages = []stage{
			{streamLayout, a.partition},
			{streamLayout, a.shape},
			{streamLayout, a.connect},
			{streamDecoration, a.decorate},
			{streamFeatures, a.placeFeatures},
			{streamSpawns, a.spawn},
		}
	}
	for _, st := range stages {
		a.rng.UseSecondary(st.stream)
		st.run()
		if a.status.Invalid {
			break
		}
	}
	a.rng.UsePrimary()
	if !a.status.Invalid {
		a.finalize()
	}

	span.SetAttributes(
		attribute.Int("attempt.number", n),
		attribute.Bool("attempt.valid", !a.status.Invalid),
	)
	if a.status.Invalid {
		span.SetAttributes(attribute.String("attempt.reason", a.status.Reason))
	}
}

// finalize clears generation-only flags and computes walkability.
func (a *attempt) finalize() {
	markJunctions(a.grid)
	for y := range a.grid.Tiles {
		for x := range a.grid.Tiles[y] {
			a.grid.Tiles[y][x].UnreachableFromStairs = false
		}
	}
	a.grid.UpdateWalkability()
}

func (a *attempt) floor(seed uint32, attempts int, hardFail bool) *Floor {
	s := a.status
	res := GenerationResult{
		ID:                   floorID(seed, a.props),
		Seed:                 seed,
		Success:              !hardFail,
		HardFail:             hardFail,
		Attempts:             attempts,
		Rooms:                s.Rooms,
		PlayerSpawn:          s.PlayerSpawn,
		ItemlessMonsterHouse: s.HasMonsterHouse && s.ItemlessMonsterHouse,
		Darkness:             a.props.DarknessLevel,
		FixedRoomID:          a.props.FixedRoomID,
		Spawns:               a.spawns,
		ReachableFromStairs:  s.ReachableFromStairs,
	}
	if res.Spawns == nil {
		res.Spawns = []SpawnPoint{}
	}
	if !a.props.NoStairs {
		stairs := s.Stairs
		res.Stairs = &stairs
	}
	if s.HasHiddenStairs {
		hidden := s.HiddenStairs
		res.HiddenStairs = &hidden
		res.HiddenStairsType = s.HiddenStairsType
	}
	if s.HasKecleonShop {
		shop := s.KecleonShop
		res.KecleonShop = &shop
	}
	if s.HasMonsterHouse {
		room := int(s.MonsterHouseRoom)
		res.MonsterHouseRoom = &room
	}
	return &Floor{Grid: a.grid, Result: res, Status: *s}
}
