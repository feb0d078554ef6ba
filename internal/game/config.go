package game

// Config holds explorer options.
type Config struct {
	// DungeonID selects the catalog dungeon to explore.
	DungeonID string
	// Seed for the dungeon. Every floor derives its own seed from it, so a
	// seed replays the same run.
	Seed uint64
	// StartFloor is the first floor entered; zero means 1.
	StartFloor int
	// RevealMap shows the whole floor instead of what the party has seen.
	RevealMap bool
}
