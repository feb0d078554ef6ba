package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/samdwyer/floorgen/internal/entity"
	"github.com/samdwyer/floorgen/internal/generator"
	"github.com/samdwyer/floorgen/internal/rng"
)

var (
	dungeonID   string
	floorNumber int
	seed        uint64
	asJSON      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one floor and print it",
	Long: `Generate one floor of a catalog dungeon and print its map and summary,
or the whole floor as JSON with --json. Floors are served from the cache when
one is configured.`,
	RunE: runGenerate,
}

func init() {
	addDungeonFlags(generateCmd)
	generateCmd.Flags().IntVar(&floorNumber, "floor", 1, "floor number")
	generateCmd.Flags().BoolVar(&asJSON, "json", false, "print the floor and its entities as JSON")
}

func addDungeonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&dungeonID, "dungeon", "tiny_woods", "catalog dungeon id")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "dungeon seed (random when unset)")
}

// resolveSeed picks a random seed when --seed was not given.
func resolveSeed(cmd *cobra.Command) uint64 {
	if !cmd.Flags().Changed("seed") {
		seed = rand.Uint64()
	}
	return seed
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s := resolveSeed(cmd)

	req, err := app.catalog.Request(dungeonID, floorNumber, rng.Seed(dungeonID, floorNumber, s))
	if err != nil {
		return err
	}
	if req.Properties, err = app.cfg.ApplyFloor(req.Properties); err != nil {
		return err
	}

	f, cached, err := app.loader.Load(ctx, req)
	if err != nil {
		return err
	}
	app.logger.Debug("floor ready", "dungeon", dungeonID, "floor", floorNumber, "seed", s, "cached", cached)

	f = &generator.Floor{Grid: f.Grid.Clone(), Result: f.Result, Status: f.Status}
	entities, err := entity.Populate(f, app.catalog, req.Properties, req.Restriction)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Dungeon  string           `json:"dungeon"`
			Floor    int              `json:"floor"`
			Seed     uint64           `json:"seed"`
			Result   *generator.Floor `json:"result"`
			Entities *entity.Table    `json:"entities"`
		}{dungeonID, floorNumber, s, f, entities})
	}

	printFloor(out, f, entities)
	fmt.Fprintf(out, "dungeon %s floor %d seed %d\n", dungeonID, floorNumber, s)
	printSummary(out, &f.Result)
	return nil
}

// printFloor writes the map with entities drawn over the terrain.
func printFloor(w io.Writer, f *generator.Floor, entities *entity.Table) {
	var rows [][]rune
	for _, line := range splitRows(f.Grid.String()) {
		rows = append(rows, []rune(line))
	}
	set := func(x, y int, r rune) {
		if y >= 0 && y < len(rows) && x >= 0 && x < len(rows[y]) {
			rows[y][x] = r
		}
	}
	for _, tr := range entities.Traps {
		set(tr.Pos.X, tr.Pos.Y, tr.Symbol())
	}
	for _, it := range entities.Items {
		if !it.Buried {
			set(it.Pos.X, it.Pos.Y, it.Symbol())
		}
	}
	for _, m := range entities.Monsters {
		set(m.Pos.X, m.Pos.Y, m.Symbol)
	}
	set(f.Result.PlayerSpawn.X, f.Result.PlayerSpawn.Y, '@')

	for _, row := range rows {
		fmt.Fprintln(w, string(row))
	}
}

func printSummary(w io.Writer, r *generator.GenerationResult) {
	status := "ok"
	if r.HardFail {
		status = "fallback"
	}
	fmt.Fprintf(w, "id %s  %s after %d attempt(s)  rooms %d  reachable %d\n",
		r.ID, status, r.Attempts, r.Rooms, r.ReachableFromStairs)
	for _, c := range []generator.Category{
		generator.CategoryMonster,
		generator.CategoryItem,
		generator.CategoryBuriedItem,
		generator.CategoryTrap,
		generator.CategoryShopItem,
	} {
		if n := len(r.SpawnsOf(c)); n > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", c, n)
		}
	}
	if r.KecleonShop != nil {
		fmt.Fprintf(w, "  kecleon shop at %v\n", *r.KecleonShop)
	}
	if r.MonsterHouseRoom != nil {
		fmt.Fprintf(w, "  monster house in room %d\n", *r.MonsterHouseRoom)
	}
	if r.HiddenStairs != nil {
		fmt.Fprintf(w, "  hidden stairs (%s) at %v\n", r.HiddenStairsType, *r.HiddenStairs)
	}
	if r.Stairs == nil {
		fmt.Fprintln(w, "  no stairs")
	}
}

func splitRows(s string) []string {
	var rows []string
	start := 0
	for i := range len(s) {
		if s[i] == '\n' {
			rows = append(rows, s[start:i])
			start = i + 1
		}
	}
	return rows
}
