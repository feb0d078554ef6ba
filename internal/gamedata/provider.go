package gamedata

import (
	"github.com/samdwyer/floorgen/internal/generator"
	"github.com/samdwyer/floorgen/internal/world"
)

// Provider weights spawn tiles for the generator. Monsters lean away from
// the player spawn and traps lean toward hallways. It holds no mutable
// state and is safe for concurrent use.
type Provider struct {
	// SafeRadius keeps monsters at least this many steps from the spawn.
	SafeRadius int
}

var _ generator.SpawnPolicy = (*Provider)(nil)

// NewProvider returns the stock policy.
func NewProvider() *Provider {
	return &Provider{SafeRadius: 3}
}

// Weight implements generator.SpawnPolicy.
func (p *Provider) Weight(c generator.Category, pos world.Position, pc generator.PolicyContext) int {
	switch c {
	case generator.CategoryMonster:
		d := chebyshev(pos, pc.PlayerSpawn)
		if d < p.SafeRadius {
			return 0
		}
		return 1 + d/8
	case generator.CategoryTrap:
		if pc.Grid != nil && !pc.Grid.GetTile(pos.X, pos.Y).InRoom() {
			return 3
		}
		return 2
	default:
		return 1
	}
}

func chebyshev(a, b world.Position) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
