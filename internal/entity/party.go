// Package entity instantiates the monsters, items and traps a generated
// floor asks for, and tracks the player's party.
package entity

import "github.com/samdwyer/floorgen/internal/world"

// Party represents the player's team. On the map it is drawn as a single
// symbol standing on the leader's tile.
type Party struct {
	Pos    world.Position // Leader position on the floor
	Size   int            // Members including the leader
	Symbol rune           // Display symbol
	Money  int
	Items  []*Item
}

// NewParty creates a party of size members at pos.
func NewParty(pos world.Position, size int) *Party {
	return &Party{
		Pos:    pos,
		Size:   max(size, 1),
		Symbol: '@',
	}
}

// Move steps the party in direction d when the grid allows it and reports
// whether it moved.
func (p *Party) Move(g *world.Grid, d world.Direction) bool {
	if !g.CanStep(p.Pos, d, world.MobilityNormal) {
		return false
	}
	p.Pos = p.Pos.Step(d)
	return true
}

// Position returns the current x, y coordinates.
func (p *Party) Position() (int, int) {
	return p.Pos.X, p.Pos.Y
}
