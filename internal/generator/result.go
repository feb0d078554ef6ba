package generator

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/world"
)

// floorNamespace scopes the deterministic floor IDs.
var floorNamespace = uuid.MustParse("9b0c7e52-3f1d-5a57-8c1e-4f2f7d6a0e31")

// Category is the kind of thing a spawn point produces.
type Category uint8

const (
	CategoryMonster Category = iota
	CategoryItem
	CategoryTrap
	CategoryBuriedItem
	CategoryShopItem
)

var categoryNames = [...]string{"monster", "item", "trap", "buried_item", "shop_item"}

// String returns the category name.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	for i, name := range categoryNames {
		if name == string(text) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("unknown spawn category %q", text)
}

// SpawnPoint is one chosen spawn location.
type SpawnPoint struct {
	Category Category       `json:"category"`
	Pos      world.Position `json:"pos"`
	Room     uint8          `json:"room"`
	// SecondaryTerrain is set when the point sits on water, lava or a chasm.
	SecondaryTerrain bool `json:"secondary_terrain,omitempty"`
	Visible          bool `json:"visible"`
	Sticky           bool `json:"sticky,omitempty"`
	InShop           bool `json:"in_shop,omitempty"`
	InMonsterHouse   bool `json:"in_monster_house,omitempty"`
}

// GenerationResult summarizes a generated floor.
type GenerationResult struct {
	ID       string `json:"id"`
	Seed     uint32 `json:"seed"`
	Success  bool   `json:"success"`
	HardFail bool   `json:"hard_fail"`
	Attempts int    `json:"attempts"`
	Rooms    int    `json:"rooms"`

	PlayerSpawn      world.Position           `json:"player_spawn"`
	Stairs           *world.Position          `json:"stairs,omitempty"`
	HiddenStairs     *world.Position          `json:"hidden_stairs,omitempty"`
	HiddenStairsType dungeon.HiddenStairsType `json:"hidden_stairs_type"`
	KecleonShop      *world.Rect              `json:"kecleon_shop,omitempty"`
	MonsterHouseRoom *int                     `json:"monster_house_room,omitempty"`
	// ItemlessMonsterHouse is set when the Monster House holds no items.
	ItemlessMonsterHouse bool `json:"itemless_monster_house,omitempty"`

	Darkness    dungeon.Darkness `json:"darkness"`
	FixedRoomID int              `json:"fixed_room_id,omitempty"`

	Spawns              []SpawnPoint `json:"spawns"`
	ReachableFromStairs int          `json:"reachable_from_stairs"`
}

// Floor is the generator output: the finished grid and its summary.
type Floor struct {
	Grid   *world.Grid      `json:"grid"`
	Result GenerationResult `json:"result"`
	Status Status           `json:"status"`
}

// SpawnsOf returns the spawn points of one category, in placement order.
func (r *GenerationResult) SpawnsOf(c Category) []SpawnPoint {
	var out []SpawnPoint
	for _, sp := range r.Spawns {
		if sp.Category == c {
			out = append(out, sp)
		}
	}
	return out
}

// floorID derives a stable identifier from the seed and the properties.
func floorID(seed uint32, props *dungeon.FloorProperties) string {
	raw, err := json.Marshal(props)
	if err != nil {
		raw = []byte(fmt.Sprintf("%+v", *props))
	}
	name := fmt.Sprintf("%08x/%s", seed, raw)
	return uuid.NewSHA1(floorNamespace, []byte(name)).String()
}
