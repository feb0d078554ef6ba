package generator

import (
	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/world"
)

// placeFeatures picks the spawn room, stairs, player spawn, Hidden Stairs,
// Kecleon shop and Monster House, then enforces reachability.
func (a *attempt) placeFeatures() {
	candidates := a.roomCandidates()
	var eligible []uint8
	for idx := range a.rooms {
		if len(candidates[uint8(idx)]) > 0 {
			eligible = append(eligible, uint8(idx))
		}
	}
	if len(eligible) == 0 {
		a.status.invalidate("no room has a free floor tile")
		return
	}
	spawnRoom := eligible[a.rng.Intn(len(eligible))]
	a.status.PlayerRoom = spawnRoom

	if !a.props.NoStairs {
		stairsRooms := eligible
		if len(a.rooms) > 1 {
			stairsRooms = nil
			for _, idx := range eligible {
				if idx != spawnRoom {
					stairsRooms = append(stairsRooms, idx)
				}
			}
			if len(stairsRooms) == 0 {
				a.status.invalidate("no stairs room apart from the spawn room")
				return
			}
		}
		room := stairsRooms[a.rng.Intn(len(stairsRooms))]
		tiles := candidates[room]
		stairs := tiles[a.rng.Intn(len(tiles))]
		a.setStairs(stairs)
		a.status.Stairs = stairs
		a.status.StairsRoom = room
	}

	a.placePlayer(candidates[spawnRoom])
	if a.status.Invalid {
		return
	}
	a.placeHiddenStairs()
	a.placeKecleonShop()
	if a.status.Invalid {
		return
	}
	a.placeMonsterHouse()
	a.enforceReachability()
}

// roomCandidates lists, per room, the floor tiles a feature may occupy.
func (a *attempt) roomCandidates() map[uint8][]world.Position {
	out := make(map[uint8][]world.Position)
	for _, p := range a.grid.Collect(func(p world.Position, t world.Tile) bool {
		return t.InRoom() && a.freeFloor(p)
	}) {
		room := a.grid.At(p).Room
		out[room] = append(out[room], p)
	}
	return out
}

// freeFloor is normal floor without a junction or a claim.
func (a *attempt) freeFloor(p world.Position) bool {
	t := a.grid.At(p)
	return t != nil && t.Terrain == world.TerrainNormal && !t.NaturalJunction && !t.Stairs && !a.claimed.Has(p)
}

func (a *attempt) setStairs(p world.Position) {
	t := a.grid.At(p)
	t.Stairs = true
	t.Spawn.Stairs = true
	a.claimed.Put(p)
}

// placePlayer picks the player spawn in the spawn room, keeping space for
// the party around it when the room allows.
func (a *attempt) placePlayer(tiles []world.Position) {
	var options []world.Position
	for _, p := range tiles {
		if !a.claimed.Has(p) {
			options = append(options, p)
		}
	}
	if len(options) == 0 {
		a.status.invalidate("spawn room has no free tile")
		return
	}

	need := min(max(a.restriction.MaxPartySize-1, 0), len(world.Directions))
	var roomy []world.Position
	for _, p := range options {
		if a.freeNeighbors(p) >= need {
			roomy = append(roomy, p)
		}
	}
	if len(roomy) > 0 {
		options = roomy
	}

	var spawn world.Position
	if a.props.PlayerSpawn == dungeon.SpawnFarthest && !a.props.NoStairs {
		dist := a.grid.Distances(a.status.Stairs, world.MobilityNormal)
		best := -1
		var far []world.Position
		for _, p := range options {
			switch d := dist.At(p); {
			case d > best:
				best = d
				far = []world.Position{p}
			case d == best:
				far = append(far, p)
			}
		}
		spawn = far[a.rng.Intn(len(far))]
	} else {
		spawn = options[a.rng.Intn(len(options))]
	}

	if !a.props.NoStairs && !a.grid.Distances(a.status.Stairs, world.MobilityNormal).Reachable(spawn) {
		a.status.invalidate("player spawn cannot reach the stairs")
		return
	}
	a.status.PlayerSpawn = spawn
	a.claimed.Put(spawn)

	reserved := 0
	for _, d := range world.Directions {
		if reserved >= need {
			break
		}
		if n := spawn.Step(d); a.freeFloor(n) && a.grid.CanStep(spawn, d, world.MobilityNormal) {
			a.reserved.Put(n)
			reserved++
		}
	}
}

func (a *attempt) freeNeighbors(p world.Position) int {
	n := 0
	for _, d := range world.Directions {
		if a.grid.CanStep(p, d, world.MobilityNormal) && a.freeFloor(p.Step(d)) {
			n++
		}
	}
	return n
}

// placeHiddenStairs adds the optional second stairway.
func (a *attempt) placeHiddenStairs() {
	kind := a.props.HiddenStairsType
	if kind == dungeon.HiddenStairsNone || !a.rng.Chance(a.props.HiddenStairsChance) {
		return
	}
	if kind == dungeon.HiddenStairsRandom {
		kind = dungeon.HiddenStairsSecretBazaar
		if a.rng.Chance(50) {
			kind = dungeon.HiddenStairsSecretRoom
		}
	}
	root := a.reachRoot()
	dist := a.grid.Distances(root, world.MobilityNormal)
	options := a.grid.Collect(func(p world.Position, t world.Tile) bool {
		return t.InRoom() && t.Room != a.status.PlayerRoom && a.freeFloor(p) && !a.reserved.Has(p) && dist.Reachable(p)
	})
	if len(options) == 0 {
		return
	}
	p := options[a.rng.Intn(len(options))]
	a.setStairs(p)
	a.status.HasHiddenStairs = true
	a.status.HiddenStairs = p
	a.status.HiddenStairsType = kind
}

// reachRoot is the flood fill origin: the stairs, or the player spawn on
// floors without stairs.
func (a *attempt) reachRoot() world.Position {
	if a.props.NoStairs {
		return a.status.PlayerSpawn
	}
	return a.status.Stairs
}

// excludedRoom reports whether idx hosts the spawn or stairs of a
// multi-room floor.
func (a *attempt) excludedRoom(idx uint8) bool {
	if idx == a.status.PlayerRoom {
		return true
	}
	return len(a.rooms) > 1 && !a.props.NoStairs && idx == a.status.StairsRoom
}

// placeKecleonShop turns the inside of a room into a shop. A roll that
// passes with no qualifying room fails the attempt.
func (a *attempt) placeKecleonShop() {
	if !a.rng.Chance(a.status.KecleonShopChance) {
		return
	}
	var eligible []*roomInfo
	for _, r := range a.rooms {
		if r.maze || a.excludedRoom(r.index) {
			continue
		}
		footprint := r.rect.Inset(1)
		if footprint.Width() < 2 || footprint.Height() < 2 {
			continue
		}
		ok := true
		for _, p := range footprint.Positions() {
			t := a.grid.At(p)
			if t.Terrain != world.TerrainNormal || t.Room != r.index || t.Stairs || a.claimed.Has(p) || a.reserved.Has(p) {
				ok = false
				break
			}
		}
		if ok {
			eligible = append(eligible, r)
		}
	}
	if len(eligible) == 0 {
		a.status.invalidate("kecleon shop rolled but no room qualifies")
		return
	}
	r := eligible[a.rng.Intn(len(eligible))]
	footprint := r.rect.Inset(1)
	for _, p := range footprint.Positions() {
		a.grid.At(p).InKecleonShop = true
		a.claimed.Put(p)
	}
	a.status.HasKecleonShop = true
	a.status.KecleonShop = footprint
	a.status.KecleonShopMiddle = footprint.Center()
	a.shopRoom = r.index
}

// placeMonsterHouse flags a whole room as a Monster House.
func (a *attempt) placeMonsterHouse() {
	if !a.rng.Chance(a.status.MonsterHouseChance) {
		return
	}
	var eligible []*roomInfo
	for _, r := range a.rooms {
		if a.excludedRoom(r.index) || (a.status.HasKecleonShop && r.index == a.shopRoom) {
			continue
		}
		if a.status.HasHiddenStairs && a.grid.At(a.status.HiddenStairs).Room == r.index {
			continue
		}
		eligible = append(eligible, r)
	}
	if len(eligible) == 0 {
		return
	}
	r := eligible[a.rng.Intn(len(eligible))]
	for _, p := range a.grid.Collect(func(_ world.Position, t world.Tile) bool { return t.Room == r.index }) {
		a.grid.At(p).InMonsterHouse = true
	}
	r.cell.IsMonsterHouse = true
	a.status.HasMonsterHouse = true
	a.status.MonsterHouseRoom = r.index
	a.status.ItemlessMonsterHouse = a.rng.Chance(a.props.ItemlessMonsterHouseChance)
}

// enforceReachability counts the floor reachable from the root and walls
// off stray fragments, failing the attempt when too much is cut off.
func (a *attempt) enforceReachability() {
	dist := a.grid.Distances(a.reachRoot(), world.MobilityNormal)
	total := 0
	var stray []world.Position
	for _, p := range a.grid.Collect(func(_ world.Position, t world.Tile) bool { return t.Terrain == world.TerrainNormal }) {
		total++
		if !dist.Reachable(p) {
			a.grid.At(p).UnreachableFromStairs = true
			stray = append(stray, p)
		}
	}
	reached := total - len(stray)
	a.status.ReachableFromStairs = reached
	if total == 0 || reached*100 < total*a.opts.MinReachablePercent {
		a.status.invalidate("only %d of %d floor tiles reachable", reached, total)
		return
	}
	for _, p := range stray {
		t := a.grid.At(p)
		if t.Stairs || t.InKecleonShop || a.claimed.Has(p) {
			a.status.invalidate("feature at %v is unreachable", p)
			return
		}
		a.grid.SetWall(p)
	}
}
