package main

import (
	"github.com/spf13/cobra"

	"github.com/samdwyer/floorgen/internal/game"
)

var (
	startFloor int
	revealMap  bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Walk a dungeon in the terminal",
	Long: `Open the floor explorer. Arrow keys or hjklyubn move the party, stepping
on the stairs enters the next floor, r regenerates the floor and q quits.`,
	RunE: runPreview,
}

func init() {
	addDungeonFlags(previewCmd)
	previewCmd.Flags().IntVar(&startFloor, "floor", 1, "first floor")
	previewCmd.Flags().BoolVar(&revealMap, "reveal", false, "show the whole floor")
}

func runPreview(cmd *cobra.Command, _ []string) error {
	g, err := game.New(game.Config{
		DungeonID:  dungeonID,
		Seed:       resolveSeed(cmd),
		StartFloor: startFloor,
		RevealMap:  revealMap,
	}, app.catalog, app.loader, app.logger)
	if err != nil {
		return err
	}
	return g.Run(cmd.Context())
}
