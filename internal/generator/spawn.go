package generator

import (
	"github.com/samdwyer/floorgen/internal/world"
)

//go:generate mockgen -destination=mock/mock_policy.go -package=mock github.com/samdwyer/floorgen/internal/generator SpawnPolicy

// SpawnPolicy weights spawn candidates. A weight of zero or less excludes the
// tile. Implementations must be safe for concurrent use when floors are
// generated in parallel.
type SpawnPolicy interface {
	Weight(c Category, p world.Position, pc PolicyContext) int
}

// PolicyContext is what a SpawnPolicy may look at. Grid must not be
// modified.
type PolicyContext struct {
	Floor       int
	PlayerSpawn world.Position
	Stairs      world.Position
	Grid        *world.Grid
}

// UniformPolicy gives every candidate the same weight.
type UniformPolicy struct{}

// Weight implements SpawnPolicy.
func (UniformPolicy) Weight(Category, world.Position, PolicyContext) int { return 1 }

const (
	minHouseMonsters = 3
	maxHouseMonsters = 16
)

// spawn chooses every spawn point of the floor.
func (a *attempt) spawn() {
	pc := PolicyContext{
		Floor:       a.props.FloorNumber,
		PlayerSpawn: a.status.PlayerSpawn,
		Stairs:      a.status.Stairs,
		Grid:        a.grid,
	}

	if a.status.HasKecleonShop {
		for _, p := range a.status.KecleonShop.Positions() {
			a.addSpawn(CategoryShopItem, p)
		}
	}
	for _, p := range a.vaults {
		if a.itemTile(p, a.grid.At(p)) {
			a.addSpawn(CategoryItem, p)
		}
	}
	if a.status.HasMonsterHouse {
		a.spawnHouse(pc)
	}

	a.spawnCategory(pc, CategoryItem, a.props.ItemDensity, a.itemTile)
	a.spawnCategory(pc, CategoryBuriedItem, a.props.BuriedItemDensity, a.buriedTile)
	a.spawnCategory(pc, CategoryTrap, a.props.TrapDensity, a.trapTile)
	if !a.status.NoEnemySpawns {
		a.spawnCategory(pc, CategoryMonster, a.props.EnemyDensity, a.monsterTile)
	}
}

// densityCount turns a density into a count of density-1 to density+1.
func (a *attempt) densityCount(density int) int {
	if density <= 0 {
		return 0
	}
	return max(0, density-1+a.rng.Intn(3))
}

func (a *attempt) spawnCategory(pc PolicyContext, c Category, density int, eligible func(world.Position, *world.Tile) bool) {
	n := a.densityCount(density)
	if n == 0 {
		return
	}
	candidates := a.grid.Collect(func(p world.Position, t world.Tile) bool {
		return eligible(p, a.grid.At(p))
	})
	for _, p := range a.sample(pc, c, candidates, n) {
		a.addSpawn(c, p)
	}
}

func (a *attempt) spawnHouse(pc PolicyContext) {
	tiles := a.grid.Collect(func(p world.Position, t world.Tile) bool {
		return t.InMonsterHouse && t.Terrain == world.TerrainNormal && !t.Stairs
	})
	if len(tiles) == 0 {
		return
	}
	n := min(max(len(tiles)/4, minHouseMonsters), maxHouseMonsters)
	if !a.status.NoEnemySpawns {
		for _, p := range a.sample(pc, CategoryMonster, tiles, n) {
			a.addSpawn(CategoryMonster, p)
		}
	}
	if a.status.ItemlessMonsterHouse {
		return
	}
	var free []world.Position
	for _, p := range tiles {
		if !a.objectTaken(p) {
			free = append(free, p)
		}
	}
	for _, p := range a.sample(pc, CategoryItem, free, max(1, len(tiles)/10)) {
		a.addSpawn(CategoryItem, p)
	}
}

// sample draws up to n distinct candidates, weighted by the policy.
func (a *attempt) sample(pc PolicyContext, c Category, candidates []world.Position, n int) []world.Position {
	type weighted struct {
		pos    world.Position
		weight int
	}
	pool := make([]weighted, 0, len(candidates))
	total := 0
	for _, p := range candidates {
		w := a.policy.Weight(c, p, pc)
		if w <= 0 {
			continue
		}
		pool = append(pool, weighted{p, w})
		total += w
	}

	var out []world.Position
	for len(out) < n && len(pool) > 0 {
		r := a.rng.Intn(total)
		i := 0
		for ; i < len(pool)-1; i++ {
			if r < pool[i].weight {
				break
			}
			r -= pool[i].weight
		}
		out = append(out, pool[i].pos)
		total -= pool[i].weight
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return out
}

func (a *attempt) addSpawn(c Category, p world.Position) {
	t := a.grid.At(p)
	sp := SpawnPoint{
		Category:         c,
		Pos:              p,
		Room:             t.Room,
		SecondaryTerrain: t.Terrain == world.TerrainSecondary || t.Terrain == world.TerrainChasm,
		Visible:          true,
		InShop:           t.InKecleonShop,
		InMonsterHouse:   t.InMonsterHouse,
	}
	switch c {
	case CategoryMonster:
		t.Spawn.Monster = true
	case CategoryTrap:
		t.Spawn.Trap = true
		sp.Visible = !a.restriction.NoTrapUncovering && a.rng.Chance(a.opts.TrapVisibleChance)
	case CategoryBuriedItem:
		t.Spawn.Item = true
		sp.Visible = false
	case CategoryItem:
		t.Spawn.Item = true
		sp.Sticky = a.rng.Chance(a.props.StickyItemChance)
	default:
		t.Spawn.Item = true
	}
	a.spawns = append(a.spawns, sp)
}

func (a *attempt) objectTaken(p world.Position) bool {
	t := a.grid.At(p)
	return t.Spawn.Item || t.Spawn.Trap
}

func (a *attempt) itemTile(p world.Position, t *world.Tile) bool {
	return t.Terrain == world.TerrainNormal && !t.Stairs && !t.InKecleonShop && !t.InMonsterHouse &&
		!a.objectTaken(p) && p != a.status.PlayerSpawn
}

func (a *attempt) buriedTile(p world.Position, t *world.Tile) bool {
	if t.Terrain != world.TerrainWall || t.ImpassableWall || t.Unbreakable || a.objectTaken(p) {
		return false
	}
	for _, d := range world.Cardinals {
		if n := a.grid.At(p.Step(d)); n != nil && n.Terrain == world.TerrainNormal {
			return true
		}
	}
	return false
}

func (a *attempt) trapTile(p world.Position, t *world.Tile) bool {
	return t.Terrain == world.TerrainNormal && !t.Stairs && !t.InKecleonShop && !t.NaturalJunction &&
		!a.objectTaken(p) && p != a.status.PlayerSpawn && !a.reserved.Has(p)
}

func (a *attempt) monsterTile(p world.Position, t *world.Tile) bool {
	return t.Terrain == world.TerrainNormal && t.Room != a.status.PlayerRoom && !t.Stairs &&
		!t.InKecleonShop && !t.InMonsterHouse && !t.Spawn.Monster &&
		p != a.status.PlayerSpawn && !a.reserved.Has(p)
}
