package generator

import (
	"fmt"

	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/world"
)

// Status aggregates the run-time parameters and running totals of one
// generation attempt. A fresh Status is built for every attempt.
type Status struct {
	Rooms                     int   `json:"rooms"`
	SecondaryStructuresBudget int   `json:"secondary_structures_budget"`
	KecleonShopChance         int   `json:"kecleon_shop_chance"`
	MonsterHouseChance        int   `json:"monster_house_chance"`
	HasMonsterHouse           bool  `json:"has_monster_house"`
	ItemlessMonsterHouse      bool  `json:"itemless_monster_house,omitempty"`
	MonsterHouseRoom          uint8 `json:"monster_house_room"`

	HasKecleonShop    bool           `json:"has_kecleon_shop"`
	KecleonShop       world.Rect     `json:"kecleon_shop"`
	KecleonShopMiddle world.Position `json:"kecleon_shop_middle"`

	HasHiddenStairs  bool                     `json:"has_hidden_stairs"`
	HiddenStairs     world.Position           `json:"hidden_stairs"`
	HiddenStairsType dungeon.HiddenStairsType `json:"hidden_stairs_type"`

	PlayerSpawn world.Position `json:"player_spawn"`
	PlayerRoom  uint8          `json:"player_room"`
	Stairs      world.Position `json:"stairs"`
	StairsRoom  uint8          `json:"stairs_room"`

	ReachableFromStairs int  `json:"reachable_from_stairs"`
	HasMaze             bool `json:"has_maze"`
	HasChasms           bool `json:"has_chasms"`
	NoEnemySpawns       bool `json:"no_enemy_spawns,omitempty"`

	Invalid bool   `json:"invalid"`
	Reason  string `json:"reason,omitempty"`
}

func newStatus(props *dungeon.FloorProperties) *Status {
	return &Status{
		Rooms:                     props.Rooms,
		SecondaryStructuresBudget: props.MaxSecondaryStructures,
		KecleonShopChance:         props.KecleonShopChance,
		MonsterHouseChance:        props.MonsterHouseChance,
		HasChasms:                 props.Chasms,
		PlayerRoom:                world.NoRoom,
		StairsRoom:                world.NoRoom,
		MonsterHouseRoom:          world.NoRoom,
	}
}

// invalidate marks the attempt as failed. The first reason wins.
func (s *Status) invalidate(format string, args ...any) {
	if s.Invalid {
		return
	}
	s.Invalid = true
	s.Reason = fmt.Sprintf(format, args...)
}
