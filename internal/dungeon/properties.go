// Package dungeon holds the static per-floor configuration consumed by floor
// generation, along with per-dungeon restrictions.
package dungeon

import (
	"errors"
	"fmt"

	"github.com/samdwyer/floorgen/internal/world"
)

// ErrInvalidConfig is matched by every configuration failure.
var ErrInvalidConfig = errors.New("invalid floor configuration")

// ConfigError describes one invalid field of caller-supplied properties.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfig) succeed.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// FloorProperties is the read-only generation input for one floor.
type FloorProperties struct {
	Layout  Layout `json:"layout" yaml:"layout"`
	Rooms   int    `json:"rooms" yaml:"rooms"`
	Tileset int    `json:"tileset" yaml:"tileset"`

	// Connectivity is the percentage chance that each adjacent cell pair not
	// already linked by the spanning tree gets an extra hallway.
	Connectivity int `json:"connectivity" yaml:"connectivity"`
	// RoomDensity is the percentage of valid cells that become rooms rather
	// than hallway anchors. Zero means every cell is a room.
	RoomDensity int `json:"room_density" yaml:"room_density"`

	EnemyDensity      int `json:"enemy_density" yaml:"enemy_density"`
	ItemDensity       int `json:"item_density" yaml:"item_density"`
	TrapDensity       int `json:"trap_density" yaml:"trap_density"`
	BuriedItemDensity int `json:"buried_item_density" yaml:"buried_item_density"`

	KecleonShopChance  int `json:"kecleon_shop_chance" yaml:"kecleon_shop_chance"`
	MonsterHouseChance int `json:"monster_house_chance" yaml:"monster_house_chance"`
	MazeRoomChance     int `json:"maze_room_chance" yaml:"maze_room_chance"`
	StickyItemChance   int `json:"sticky_item_chance" yaml:"sticky_item_chance"`

	AllowDeadEnds          bool `json:"allow_dead_ends" yaml:"allow_dead_ends"`
	MaxSecondaryStructures int  `json:"max_secondary_structures" yaml:"max_secondary_structures"`
	SecondaryStructures    bool `json:"secondary_structures" yaml:"secondary_structures"`
	RoomImperfections      bool `json:"room_imperfections" yaml:"room_imperfections"`
	ExtraHallways          int  `json:"extra_hallways" yaml:"extra_hallways"`

	SecondaryTerrainDensity int                 `json:"secondary_terrain_density" yaml:"secondary_terrain_density"`
	SecondaryTerrain        world.SecondaryKind `json:"secondary_terrain" yaml:"secondary_terrain"`
	// Chasms replaces water or lava with chasms.
	Chasms bool `json:"chasms" yaml:"chasms"`

	DarknessLevel Darkness `json:"darkness_level" yaml:"darkness_level"`
	FloorNumber   int      `json:"floor_number" yaml:"floor_number"`
	MaxMoney      int      `json:"max_money" yaml:"max_money"`

	ItemlessMonsterHouseChance int              `json:"itemless_monster_house_chance" yaml:"itemless_monster_house_chance"`
	HiddenStairsType           HiddenStairsType `json:"hidden_stairs_type" yaml:"hidden_stairs_type"`
	HiddenStairsChance         int              `json:"hidden_stairs_chance" yaml:"hidden_stairs_chance"`

	// FixedRoomID selects a hand-made floor template. Zero means none.
	FixedRoomID int            `json:"fixed_room_id" yaml:"fixed_room_id"`
	NoStairs    bool           `json:"no_stairs" yaml:"no_stairs"`
	PlayerSpawn SpawnPlacement `json:"player_spawn" yaml:"player_spawn"`
}

// Validate checks caller-supplied values. It returns every problem found,
// joined, each matching ErrInvalidConfig.
func (p *FloorProperties) Validate() error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if _, ok := layoutNames[p.Layout]; !ok {
		fail("layout", "unknown layout %d", p.Layout)
	} else if !p.Layout.Fixed() && p.FixedRoomID == 0 {
		if p.Rooms < 1 {
			fail("rooms", "must be at least 1, got %d", p.Rooms)
		}
		if capacity := p.Layout.Capacity(); p.Rooms > capacity {
			fail("rooms", "%d exceeds the %s layout capacity of %d", p.Rooms, p.Layout, capacity)
		}
	}

	percentages := []struct {
		field string
		value int
	}{
		{"connectivity", p.Connectivity},
		{"room_density", p.RoomDensity},
		{"kecleon_shop_chance", p.KecleonShopChance},
		{"monster_house_chance", p.MonsterHouseChance},
		{"maze_room_chance", p.MazeRoomChance},
		{"sticky_item_chance", p.StickyItemChance},
		{"itemless_monster_house_chance", p.ItemlessMonsterHouseChance},
		{"hidden_stairs_chance", p.HiddenStairsChance},
	}
	for _, pc := range percentages {
		if pc.value < 0 || pc.value > 100 {
			fail(pc.field, "must be a percentage between 0 and 100, got %d", pc.value)
		}
	}

	counts := []struct {
		field string
		value int
	}{
		{"enemy_density", p.EnemyDensity},
		{"item_density", p.ItemDensity},
		{"trap_density", p.TrapDensity},
		{"buried_item_density", p.BuriedItemDensity},
		{"max_secondary_structures", p.MaxSecondaryStructures},
		{"extra_hallways", p.ExtraHallways},
		{"secondary_terrain_density", p.SecondaryTerrainDensity},
		{"max_money", p.MaxMoney},
		{"fixed_room_id", p.FixedRoomID},
	}
	for _, c := range counts {
		if c.value < 0 {
			fail(c.field, "must not be negative, got %d", c.value)
		}
	}

	if p.HiddenStairsType > HiddenStairsRandom {
		fail("hidden_stairs_type", "unknown type %d", p.HiddenStairsType)
	}
	if p.DarknessLevel > DarknessPitchBlack {
		fail("darkness_level", "unknown level %d", p.DarknessLevel)
	}

	return errors.Join(errs...)
}

// Restriction holds per-dungeon rules that gate what generation may do.
type Restriction struct {
	DungeonGoesUp      bool `json:"dungeon_goes_up" yaml:"dungeon_goes_up"`
	EnemiesEvolve      bool `json:"enemies_evolve" yaml:"enemies_evolve"`
	EnemiesGiveExp     bool `json:"enemies_give_exp" yaml:"enemies_give_exp"`
	RecruitmentAllowed bool `json:"recruitment_allowed" yaml:"recruitment_allowed"`
	MoneyAllowed       bool `json:"money_allowed" yaml:"money_allowed"`
	// NoTrapUncovering keeps every generated trap hidden.
	NoTrapUncovering bool `json:"no_trap_uncovering" yaml:"no_trap_uncovering"`
	TreasureBoxDrops bool `json:"treasure_box_drops" yaml:"treasure_box_drops"`
	// MaxPartySize is how many team members enter the floor with the leader;
	// the player spawn needs room for them.
	MaxPartySize      int `json:"max_party_size" yaml:"max_party_size"`
	MaxItemsAllowed   int `json:"max_items_allowed" yaml:"max_items_allowed"`
	TurnLimitPerFloor int `json:"turn_limit_per_floor" yaml:"turn_limit_per_floor"`
}

// DefaultRestriction allows a party of four and everything else.
func DefaultRestriction() Restriction {
	return Restriction{
		EnemiesGiveExp:     true,
		RecruitmentAllowed: true,
		MoneyAllowed:       true,
		MaxPartySize:       4,
		MaxItemsAllowed:    48,
		TurnLimitPerFloor:  1000,
	}
}

// FloorLabel formats a floor number the way the dungeon counts floors.
func (r Restriction) FloorLabel(floor int) string {
	if r.DungeonGoesUp {
		return fmt.Sprintf("%dF", floor)
	}
	return fmt.Sprintf("B%dF", floor)
}
