package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate every floor of a dungeon",
	Long: `Generate all floors of a catalog dungeon concurrently and print one
summary line per floor.`,
	RunE: runBatch,
}

func init() {
	addDungeonFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	s := resolveSeed(cmd)

	reqs, err := app.catalog.Requests(dungeonID)
	if err != nil {
		return err
	}
	for i := range reqs {
		if reqs[i].Properties, err = app.cfg.ApplyFloor(reqs[i].Properties); err != nil {
			return err
		}
	}

	floors, err := app.generator.GenerateDungeon(cmd.Context(), dungeonID, s, reqs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "dungeon %s seed %d\n", dungeonID, s)
	for i, f := range floors {
		r := f.Result
		status := "ok"
		if r.HardFail {
			status = "fallback"
		}
		fmt.Fprintf(out, "%3d  %-8s  seed %08x  attempts %2d  rooms %2d  spawns %3d  %s\n",
			i+1, status, r.Seed, r.Attempts, r.Rooms, len(r.Spawns), r.ID)
	}
	return nil
}
