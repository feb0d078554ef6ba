// Package game provides the floor explorer: a party walks generated floors,
// taking the stairs down until the dungeon ends.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is the default mode where the party walks the floor.
	StateExplore State = iota
	// StateCleared means the party left the last floor.
	StateCleared
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateCleared:
		return "cleared"
	default:
		return "unknown"
	}
}
