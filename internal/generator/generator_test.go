package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/rng"
	"github.com/samdwyer/floorgen/internal/world"
)

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return New(opts)
}

func baseProps() dungeon.FloorProperties {
	return dungeon.FloorProperties{
		Layout:       dungeon.LayoutLarge,
		Rooms:        6,
		Connectivity: 15,
		RoomDensity:  80,
		EnemyDensity: 4,
		ItemDensity:  5,
		TrapDensity:  3,
		FloorNumber:  3,
	}
}

func generate(t *testing.T, g *Generator, props dungeon.FloorProperties, seed uint32) *Floor {
	t.Helper()
	f, err := g.Generate(context.Background(), Request{
		Properties:  props,
		Restriction: dungeon.DefaultRestriction(),
		Seed:        seed,
	})
	require.NoError(t, err)
	require.NotNil(t, f)
	return f
}

func normalFloor(g *world.Grid) int {
	return g.Count(func(_ world.Position, t world.Tile) bool { return t.Terrain == world.TerrainNormal })
}

// checkInvariants verifies the map invariants every finished floor must hold.
func checkInvariants(t *testing.T, f *Floor, props dungeon.FloorProperties) {
	t.Helper()
	g, res := f.Grid, f.Result

	// Border
	for y := 0; y < world.Height; y++ {
		for x := 0; x < world.Width; x++ {
			p := world.Position{X: x, Y: y}
			tile := g.At(p)
			if world.Interior.Contains(p) {
				continue
			}
			require.True(t, tile.ImpassableWall, "border tile %v must be impassable", p)
			require.Equal(t, world.TerrainWall, tile.Terrain)
			require.False(t, tile.InRoom(), "border tile %v carries a room", p)
			require.False(t, tile.Spawn.Any(), "border tile %v carries a spawn", p)
		}
	}

	// Stairs
	stairsTiles := g.Collect(func(_ world.Position, t world.Tile) bool { return t.Stairs })
	want := 0
	if !props.NoStairs {
		want++
		require.NotNil(t, res.Stairs)
		assert.True(t, g.At(*res.Stairs).Stairs)
	} else {
		assert.Nil(t, res.Stairs)
	}
	if res.HiddenStairs != nil {
		want++
		assert.NotEqual(t, dungeon.HiddenStairsNone, res.HiddenStairsType)
		assert.NotEqual(t, dungeon.HiddenStairsRandom, res.HiddenStairsType)
	}
	assert.Len(t, stairsTiles, want)

	// Reachability
	root := res.PlayerSpawn
	if res.Stairs != nil {
		root = *res.Stairs
	}
	dist := g.Distances(root, world.MobilityNormal)
	assert.Equal(t, normalFloor(g), dist.Count(), "every normal floor tile must be reachable")
	assert.True(t, dist.Reachable(res.PlayerSpawn), "player spawn must be reachable")
	if !res.HardFail {
		assert.Equal(t, dist.Count(), res.ReachableFromStairs)
	}

	// Player spawn
	spawnTile := g.At(res.PlayerSpawn)
	assert.Equal(t, world.TerrainNormal, spawnTile.Terrain)
	assert.False(t, spawnTile.Stairs, "player spawn on stairs")
	assert.False(t, spawnTile.InMonsterHouse, "player spawn in a monster house")
	assert.False(t, spawnTile.InKecleonShop, "player spawn in the shop")

	// Exclusive features
	if res.KecleonShop != nil {
		for _, p := range res.KecleonShop.Positions() {
			tile := g.At(p)
			assert.True(t, tile.InKecleonShop)
			assert.False(t, tile.InMonsterHouse, "shop overlaps monster house at %v", p)
			assert.False(t, tile.Stairs, "shop overlaps stairs at %v", p)
		}
	} else {
		assert.Zero(t, g.Count(func(_ world.Position, t world.Tile) bool { return t.InKecleonShop }))
	}
	if res.HiddenStairs != nil {
		assert.False(t, g.At(*res.HiddenStairs).InMonsterHouse)
		assert.False(t, g.At(*res.HiddenStairs).InKecleonShop)
	}

	// Walkability masks agree with terrain.
	for y := 0; y < world.Height; y++ {
		for x := 0; x < world.Width; x++ {
			p := world.Position{X: x, Y: y}
			for m := world.Mobility(0); m < world.MobilityCount; m++ {
				for _, d := range world.Directions {
					if g.CanStep(p, d, m) != g.At(p).Walkable[m].Has(d) {
						t.Fatalf("walkable mask at %v dir %d mobility %s disagrees with terrain", p, d, m)
					}
				}
			}
		}
	}

	// Spawns
	objects := make(map[world.Position]bool)
	monsters := make(map[world.Position]bool)
	for _, sp := range res.Spawns {
		tile := g.At(sp.Pos)
		switch sp.Category {
		case CategoryMonster:
			assert.False(t, monsters[sp.Pos], "two monsters at %v", sp.Pos)
			monsters[sp.Pos] = true
			assert.True(t, tile.Spawn.Monster)
			assert.NotEqual(t, res.PlayerSpawn, sp.Pos)
			assert.False(t, tile.Stairs)
			assert.False(t, tile.InKecleonShop)
			if !tile.InMonsterHouse {
				assert.NotEqual(t, f.Status.PlayerRoom, tile.Room, "monster in the spawn room at %v", sp.Pos)
			}
		case CategoryBuriedItem:
			assert.Equal(t, world.TerrainWall, tile.Terrain)
			assert.False(t, tile.ImpassableWall)
			assert.False(t, sp.Visible)
		default:
			assert.False(t, objects[sp.Pos], "two objects at %v", sp.Pos)
			objects[sp.Pos] = true
			assert.False(t, tile.Stairs, "%s on stairs at %v", sp.Category, sp.Pos)
			if sp.Category == CategoryTrap {
				assert.False(t, tile.InKecleonShop)
				assert.False(t, tile.NaturalJunction)
				assert.NotEqual(t, res.PlayerSpawn, sp.Pos)
			}
			if sp.Category == CategoryShopItem {
				assert.True(t, tile.InKecleonShop)
			}
		}
	}

	// Generation-only flags are cleared.
	assert.Zero(t, g.Count(func(_ world.Position, t world.Tile) bool { return t.UnreachableFromStairs }))

	checkJunctions(t, g)
}

// openCardinals lists the directions out of p that lead to non-wall tiles.
func openCardinals(g *world.Grid, p world.Position) []world.Direction {
	var open []world.Direction
	for _, d := range world.Cardinals {
		if n := g.At(p.Step(d)); n != nil && n.IsOpen() {
			open = append(open, d)
		}
	}
	return open
}

// checkJunctions verifies NaturalJunction and CornerCuttable on every tile.
func checkJunctions(t *testing.T, g *world.Grid) {
	t.Helper()
	for y := 0; y < world.Height; y++ {
		for x := 0; x < world.Width; x++ {
			p := world.Position{X: x, Y: y}
			tile := g.At(p)
			if !tile.IsOpen() {
				require.False(t, tile.NaturalJunction, "wall %v marked as junction", p)
				require.False(t, tile.CornerCuttable, "wall %v marked corner-cuttable", p)
				continue
			}
			open := openCardinals(g, p)
			if tile.InRoom() {
				nextToHall := false
				for _, d := range open {
					if !g.At(p.Step(d)).InRoom() {
						nextToHall = true
					}
				}
				require.Equal(t, nextToHall, tile.NaturalJunction, "room tile %v", p)
				require.False(t, tile.CornerCuttable, "room tile %v marked corner-cuttable", p)
				continue
			}
			require.Equal(t, len(open) >= 3, tile.NaturalJunction, "hallway tile %v", p)
			bend := len(open) == 2 && open[0].Opposite() != open[1]
			require.Equal(t, bend, tile.CornerCuttable, "hallway tile %v", p)
		}
	}
}

// deadEnds returns hallway tiles with at most one open neighbour.
func deadEnds(g *world.Grid) []world.Position {
	return g.Collect(func(p world.Position, t world.Tile) bool {
		return t.IsOpen() && !t.InRoom() && len(openCardinals(g, p)) <= 1
	})
}

func TestSingleRoomFloor(t *testing.T) {
	g := testGenerator(t)
	props := dungeon.FloorProperties{Layout: dungeon.LayoutLarge, Rooms: 1, AllowDeadEnds: true}

	for seed := uint32(1); seed <= 10; seed++ {
		f := generate(t, g, props, seed)
		checkInvariants(t, f, props)

		assert.False(t, f.Result.HardFail)
		assert.Equal(t, 1, f.Result.Rooms)
		assert.Empty(t, f.Result.Spawns)
		assert.Equal(t, normalFloor(f.Grid), f.Result.ReachableFromStairs)

		rooms := make(map[uint8]bool)
		for _, p := range f.Grid.Collect(func(_ world.Position, t world.Tile) bool { return t.InRoom() }) {
			rooms[f.Grid.At(p).Room] = true
		}
		assert.Len(t, rooms, 1)
	}
}

func TestKecleonShopAlwaysPlaced(t *testing.T) {
	g := testGenerator(t)
	props := dungeon.FloorProperties{
		Layout:            dungeon.LayoutLarge,
		Rooms:             10,
		RoomDensity:       100,
		KecleonShopChance: 100,
		ItemDensity:       3,
	}

	for seed := uint32(1); seed <= 20; seed++ {
		f := generate(t, g, props, seed)
		checkInvariants(t, f, props)
		require.False(t, f.Result.HardFail, "seed %d", seed)
		require.NotNil(t, f.Result.KecleonShop, "seed %d", seed)

		shop := *f.Result.KecleonShop
		assert.GreaterOrEqual(t, shop.Width(), 2)
		assert.GreaterOrEqual(t, shop.Height(), 2)

		room := f.Grid.At(world.Position{X: shop.X0, Y: shop.Y0}).Room
		require.NotEqual(t, world.NoRoom, room)
		for _, p := range shop.Positions() {
			assert.Equal(t, room, f.Grid.At(p).Room, "shop must sit inside one room")
		}
		assert.False(t, shop.Contains(*f.Result.Stairs))
		assert.NotEqual(t, f.Status.StairsRoom, room)
		assert.NotEqual(t, f.Status.PlayerRoom, room)

		shopTiles := f.Grid.Count(func(_ world.Position, t world.Tile) bool { return t.InKecleonShop })
		assert.Equal(t, shop.Area(), shopTiles)
		assert.Len(t, f.Result.SpawnsOf(CategoryShopItem), shop.Area())
	}
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dungeon.FloorProperties)
	}{
		{"too many rooms", func(p *dungeon.FloorProperties) { p.Rooms = 25 }},
		{"too many rooms for small", func(p *dungeon.FloorProperties) { p.Layout = dungeon.LayoutSmall; p.Rooms = 7 }},
		{"no rooms", func(p *dungeon.FloorProperties) { p.Rooms = 0 }},
		{"percentage above 100", func(p *dungeon.FloorProperties) { p.MonsterHouseChance = 101 }},
		{"negative density", func(p *dungeon.FloorProperties) { p.TrapDensity = -1 }},
		{"fixed room without template", func(p *dungeon.FloorProperties) { p.FixedRoomID = 4 }},
	}

	g := testGenerator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := baseProps()
			tt.mutate(&props)
			f, err := g.Generate(context.Background(), Request{Properties: props, Seed: 1, Policy: panicPolicy{}})
			require.Error(t, err)
			assert.Nil(t, f)
			assert.True(t, errors.Is(err, dungeon.ErrInvalidConfig), "got %v", err)

			var cfgErr *dungeon.ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

// panicPolicy fails the test if generation reaches the spawner.
type panicPolicy struct{}

func (panicPolicy) Weight(Category, world.Position, PolicyContext) int {
	panic("spawn policy consulted for an invalid configuration")
}

func TestDeterministic(t *testing.T) {
	g := testGenerator(t)
	props := baseProps()
	props.KecleonShopChance = 30
	props.MonsterHouseChance = 30
	props.SecondaryTerrainDensity = 3
	props.RoomImperfections = true
	props.SecondaryStructures = true
	props.MaxSecondaryStructures = 2

	for _, seed := range []uint32{0, 1, 42, 0xDEADBEEF} {
		a := generate(t, g, props, seed)
		b := generate(t, g, props, seed)
		assert.Equal(t, a.Grid.String(), b.Grid.String(), "seed %d", seed)
		assert.Equal(t, a.Result, b.Result, "seed %d", seed)
		assert.Equal(t, *a.Grid, *b.Grid)
	}

	a := generate(t, g, props, 7)
	b := generate(t, g, props, 8)
	assert.NotEqual(t, a.Result.ID, b.Result.ID)
}

func TestInvariantsAcrossLayouts(t *testing.T) {
	tests := []struct {
		name  string
		props dungeon.FloorProperties
	}{
		{"large", baseProps()},
		{"medium dense", dungeon.FloorProperties{
			Layout: dungeon.LayoutMedium, Rooms: 12, Connectivity: 50, EnemyDensity: 8,
			ItemDensity: 6, TrapDensity: 6, BuriedItemDensity: 4, MonsterHouseChance: 50,
		}},
		{"small with dead ends", dungeon.FloorProperties{
			Layout: dungeon.LayoutSmall, Rooms: 4, RoomDensity: 50, AllowDeadEnds: true, ExtraHallways: 4,
		}},
		{"line", dungeon.FloorProperties{Layout: dungeon.LayoutLine, Rooms: 5, ItemDensity: 2}},
		{"cross", dungeon.FloorProperties{Layout: dungeon.LayoutCross, EnemyDensity: 3}},
		{"decorated", dungeon.FloorProperties{
			Layout: dungeon.LayoutLarge, Rooms: 16, RoomDensity: 70, Connectivity: 20,
			SecondaryTerrainDensity: 6, SecondaryTerrain: world.SecondaryLava,
			RoomImperfections: true, SecondaryStructures: true, MaxSecondaryStructures: 4,
			ExtraHallways: 3, TrapDensity: 4, ItemDensity: 4, EnemyDensity: 5,
		}},
		{"chasms and mazes", dungeon.FloorProperties{
			Layout: dungeon.LayoutLarge, Rooms: 8, Chasms: true, SecondaryTerrainDensity: 4,
			MazeRoomChance: 60, HiddenStairsType: dungeon.HiddenStairsRandom, HiddenStairsChance: 100,
		}},
		{"farthest spawn", dungeon.FloorProperties{
			Layout: dungeon.LayoutLarge, Rooms: 9, PlayerSpawn: dungeon.SpawnFarthest,
			KecleonShopChance: 50, MonsterHouseChance: 50, ItemlessMonsterHouseChance: 50,
		}},
		{"no stairs", dungeon.FloorProperties{Layout: dungeon.LayoutMedium, Rooms: 6, NoStairs: true, EnemyDensity: 2}},
	}

	g := testGenerator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := uint32(100); seed < 115; seed++ {
				f := generate(t, g, tt.props, seed)
				checkInvariants(t, f, tt.props)
				assert.GreaterOrEqual(t, f.Result.Attempts, 1)
				assert.LessOrEqual(t, f.Result.Attempts, DefaultMaxAttempts)
			}
		})
	}
}

func TestRetryBoundAndFallback(t *testing.T) {
	var logs bytes.Buffer
	opts := DefaultOptions()
	opts.MaxAttempts = 3
	opts.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	g := New(opts)

	// With a single room the shop can never be placed: the only room is the
	// spawn room.
	props := dungeon.FloorProperties{Layout: dungeon.LayoutLarge, Rooms: 1, KecleonShopChance: 100, EnemyDensity: 5}
	f := generate(t, g, props, 99)

	assert.True(t, f.Result.HardFail)
	assert.False(t, f.Result.Success)
	assert.Equal(t, 3, f.Result.Attempts)
	assert.Nil(t, f.Result.KecleonShop)
	assert.Empty(t, f.Result.Spawns)
	require.NotNil(t, f.Result.Stairs)
	assert.Equal(t, uint8(0), f.Grid.At(*f.Result.Stairs).Room)
	assert.Equal(t, uint8(0), f.Grid.At(f.Result.PlayerSpawn).Room)
	checkInvariants(t, f, props)

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "minimal layout")
}

func TestMinimalLayoutIsFixed(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxAttempts = 1
	opts.Logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	g := New(opts)
	props := dungeon.FloorProperties{Layout: dungeon.LayoutLarge, Rooms: 1, KecleonShopChance: 100}

	a := generate(t, g, props, 1)
	b := generate(t, g, props, 2)
	assert.Equal(t, a.Grid.String(), b.Grid.String())
	assert.Equal(t, minimalRoom.Area(), normalFloor(a.Grid))
}

func TestCancelledContext(t *testing.T) {
	g := testGenerator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, Request{Properties: baseProps(), Seed: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMazeRooms(t *testing.T) {
	g := testGenerator(t)
	props := dungeon.FloorProperties{Layout: dungeon.LayoutMedium, Rooms: 4, MazeRoomChance: 100}

	sawMaze := false
	for seed := uint32(1); seed <= 10; seed++ {
		f := generate(t, g, props, seed)
		checkInvariants(t, f, props)
		sawMaze = sawMaze || f.Status.HasMaze
	}
	assert.True(t, sawMaze, "a 100%% maze chance should produce a maze")
}

func TestMonsterHouse(t *testing.T) {
	g := testGenerator(t)
	props := dungeon.FloorProperties{Layout: dungeon.LayoutLarge, Rooms: 8, RoomDensity: 100, MonsterHouseChance: 100}

	for seed := uint32(1); seed <= 10; seed++ {
		f := generate(t, g, props, seed)
		checkInvariants(t, f, props)
		require.NotNil(t, f.Result.MonsterHouseRoom, "seed %d", seed)

		room := uint8(*f.Result.MonsterHouseRoom)
		assert.NotEqual(t, f.Status.PlayerRoom, room)
		assert.NotEqual(t, f.Status.StairsRoom, room)

		var inHouse int
		for _, sp := range f.Result.SpawnsOf(CategoryMonster) {
			if sp.InMonsterHouse {
				inHouse++
				assert.Equal(t, room, sp.Room)
			}
		}
		assert.GreaterOrEqual(t, inHouse, 1)
	}
}

func TestNoEnemiesFromFixedRoom(t *testing.T) {
	g := testGenerator(t)
	fr := &FixedRoom{
		ID:        7,
		Name:      "quiet hall",
		NoEnemies: true,
		Rows: []string{
			"#########",
			"#P..m..S#",
			"#.~~~~~.#",
			"#...i...#",
			"#########",
		},
	}
	props := dungeon.FloorProperties{FixedRoomID: 7, EnemyDensity: 10}

	f, err := g.Generate(context.Background(), Request{Properties: props, FixedRoom: fr, Seed: 3})
	require.NoError(t, err)
	checkInvariants(t, f, props)

	origin := fr.Bounds()
	assert.Equal(t, world.Position{X: origin.X0 + 1, Y: origin.Y0 + 1}, f.Result.PlayerSpawn)
	assert.Equal(t, world.Position{X: origin.X0 + 7, Y: origin.Y0 + 1}, *f.Result.Stairs)
	assert.Empty(t, f.Result.SpawnsOf(CategoryMonster))
	items := f.Result.SpawnsOf(CategoryItem)
	require.Len(t, items, 1)
	assert.Equal(t, world.Position{X: origin.X0 + 4, Y: origin.Y0 + 3}, items[0].Pos)
	assert.Equal(t, world.TerrainSecondary, f.Grid.At(world.Position{X: origin.X0 + 3, Y: origin.Y0 + 2}).Terrain)
	assert.Equal(t, 7, f.Result.FixedRoomID)
}

func TestFixedRoomValidate(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"ragged", []string{"#..", "#."}},
		{"unknown glyph", []string{"..Z"}},
		{"two stairs", []string{"S.S"}},
		{"too wide", []string{string(bytes.Repeat([]byte("."), world.Width))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&FixedRoom{ID: 1, Rows: tt.rows}).Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, dungeon.ErrInvalidConfig)
		})
	}
	require.NoError(t, (&FixedRoom{ID: 1, Rows: []string{"P.S"}}).Validate())
}

func TestGenerateDungeon(t *testing.T) {
	g := testGenerator(t)
	var reqs []Request
	for i := 1; i <= 4; i++ {
		props := baseProps()
		props.FloorNumber = i
		reqs = append(reqs, Request{Properties: props, Restriction: dungeon.DefaultRestriction()})
	}

	first, err := g.GenerateDungeon(context.Background(), "tiny_woods", 12345, reqs)
	require.NoError(t, err)
	second, err := g.GenerateDungeon(context.Background(), "tiny_woods", 12345, reqs)
	require.NoError(t, err)
	require.Len(t, first, 4)

	for i := range first {
		assert.Equal(t, first[i].Result, second[i].Result, "floor %d", i+1)

		single := reqs[i]
		single.Seed = rng.Seed("tiny_woods", i+1, 12345)
		f, err := g.Generate(context.Background(), single)
		require.NoError(t, err)
		assert.Equal(t, f.Grid.String(), first[i].Grid.String(), "floor %d", i+1)
	}
}

func TestGenerateDungeonStopsOnConfigError(t *testing.T) {
	g := testGenerator(t)
	good := baseProps()
	good.FloorNumber = 1
	bad := baseProps()
	bad.FloorNumber = 2
	bad.Rooms = 99
	_, err := g.GenerateDungeon(context.Background(), "d", 1, []Request{{Properties: good}, {Properties: bad}})
	require.Error(t, err)
	assert.ErrorIs(t, err, dungeon.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "floor 2")
}

func TestGenerateDungeonRejectsDuplicateFloors(t *testing.T) {
	g := testGenerator(t)
	first := baseProps()
	first.FloorNumber = 0
	second := baseProps()
	second.FloorNumber = 1
	_, err := g.GenerateDungeon(context.Background(), "d", 1, []Request{{Properties: first}, {Properties: second}})
	require.Error(t, err)
	assert.ErrorIs(t, err, dungeon.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "floor 1 requested more than once")
}

func TestJunctionFlags(t *testing.T) {
	g := world.NewGrid(world.SecondaryWater)
	g.CarveRoom(world.Rect{X0: 2, Y0: 2, X1: 6, Y1: 6}, 0)
	g.CarveHorizontal(6, 12, 3)
	g.CarveVertical(3, 8, 12)
	g.CarveHorizontal(13, 15, 5)
	markJunctions(g)

	tests := []struct {
		name     string
		pos      world.Position
		junction bool
		corner   bool
	}{
		{"room tile by hallway", world.Position{X: 5, Y: 3}, true, false},
		{"room tile inside", world.Position{X: 4, Y: 4}, false, false},
		{"room edge away from hallway", world.Position{X: 5, Y: 5}, false, false},
		{"straight hallway", world.Position{X: 8, Y: 3}, false, false},
		{"hallway leaving room", world.Position{X: 6, Y: 3}, false, false},
		{"bend", world.Position{X: 12, Y: 3}, false, true},
		{"branch", world.Position{X: 12, Y: 5}, true, false},
		{"hallway end", world.Position{X: 12, Y: 8}, false, false},
		{"wall", world.Position{X: 9, Y: 9}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := g.At(tt.pos)
			assert.Equal(t, tt.junction, tile.NaturalJunction)
			assert.Equal(t, tt.corner, tile.CornerCuttable)
		})
	}
	checkJunctions(t, g)
}

func TestDeadEndsRemoved(t *testing.T) {
	g := testGenerator(t)
	layouts := []dungeon.Layout{dungeon.LayoutLarge, dungeon.LayoutMedium, dungeon.LayoutSmall}
	for _, layout := range layouts {
		t.Run(layout.String(), func(t *testing.T) {
			props := dungeon.FloorProperties{
				Layout:        layout,
				Rooms:         6,
				RoomDensity:   40,
				Connectivity:  10,
				ExtraHallways: 8,
			}
			for seed := uint32(1); seed <= 20; seed++ {
				f := generate(t, g, props, seed)
				assert.Empty(t, deadEnds(f.Grid), "seed %d:\n%s", seed, f.Grid)
			}
		})
	}
}

func TestDeadEndsAllowed(t *testing.T) {
	g := testGenerator(t)
	props := dungeon.FloorProperties{
		Layout:        dungeon.LayoutLarge,
		Rooms:         6,
		RoomDensity:   40,
		AllowDeadEnds: true,
		ExtraHallways: 8,
	}
	found := 0
	for seed := uint32(1); seed <= 20; seed++ {
		f := generate(t, g, props, seed)
		checkInvariants(t, f, props)
		found += len(deadEnds(f.Grid))
	}
	assert.Positive(t, found, "extra hallways should leave some spurs open")
}

func TestSecondaryStructureBudget(t *testing.T) {
	for _, budget := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("budget %d", budget), func(t *testing.T) {
			opts := DefaultOptions()
			opts.StructureChance = 100
			opts.Logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
			g := New(opts)
			props := dungeon.FloorProperties{
				Layout:                 dungeon.LayoutLarge,
				Rooms:                  8,
				RoomDensity:            100,
				SecondaryStructures:    true,
				MaxSecondaryStructures: budget,
			}
			req := Request{Properties: props, Restriction: dungeon.DefaultRestriction()}

			total := 0
			for seed := uint32(1); seed <= 20; seed++ {
				a := g.newAttempt(&props, req, UniformPolicy{}, rng.New(seed))
				g.runAttempt(context.Background(), a, 1)

				placed := 0
				for _, r := range a.rooms {
					if r.cell.FlagSecondaryStructure {
						placed++
					}
				}
				assert.LessOrEqual(t, placed, budget, "seed %d", seed)
				assert.Equal(t, budget-placed, a.status.SecondaryStructuresBudget, "seed %d", seed)
				total += placed
			}
			if budget == 0 {
				assert.Zero(t, total)
			} else {
				assert.Positive(t, total, "a full-chance floor should place structures")
			}
		})
	}
}

func TestGridShape(t *testing.T) {
	tests := []struct {
		layout     dungeon.Layout
		rooms      int
		cols, rows int
	}{
		{dungeon.LayoutLarge, 1, 1, 1},
		{dungeon.LayoutLarge, 4, 2, 2},
		{dungeon.LayoutLarge, 10, 5, 2},
		{dungeon.LayoutLarge, 24, 6, 4},
		{dungeon.LayoutMedium, 7, 4, 2},
		{dungeon.LayoutMedium, 12, 4, 3},
		{dungeon.LayoutSmall, 6, 3, 2},
		{dungeon.LayoutLine, 4, 4, 1},
		{dungeon.LayoutCross, 5, 3, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.layout, tt.rooms), func(t *testing.T) {
			cols, rows := gridShape(tt.layout, tt.rooms)
			assert.Equal(t, tt.cols, cols)
			assert.Equal(t, tt.rows, rows)
			assert.GreaterOrEqual(t, cols*rows, min(tt.rooms, tt.layout.Capacity()))
		})
	}
}

func TestResultID(t *testing.T) {
	props := baseProps()
	id := floorID(5, &props)
	assert.Equal(t, id, floorID(5, &props))
	assert.NotEqual(t, id, floorID(6, &props))

	props.Rooms++
	assert.NotEqual(t, id, floorID(5, &props))
}
