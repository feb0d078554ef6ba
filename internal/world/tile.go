// Package world provides the floor tile grid shared by generation and play.
package world

import (
	"fmt"

	"github.com/google/uuid"
)

// NoRoom is the room index of tiles outside every room.
const NoRoom uint8 = 0xFF

// Terrain is the base terrain of a tile.
type Terrain uint8

const (
	// TerrainWall is a solid wall.
	TerrainWall Terrain = iota
	// TerrainNormal is ordinary walkable floor.
	TerrainNormal
	// TerrainSecondary is water or lava depending on the floor.
	TerrainSecondary
	// TerrainChasm is a bottomless pit, crossable only by flying.
	TerrainChasm
)

// String returns a human-readable terrain name.
func (t Terrain) String() string {
	switch t {
	case TerrainWall:
		return "wall"
	case TerrainNormal:
		return "normal"
	case TerrainSecondary:
		return "secondary"
	case TerrainChasm:
		return "chasm"
	default:
		return "unknown"
	}
}

// SecondaryKind says what TerrainSecondary means on a floor.
type SecondaryKind uint8

const (
	SecondaryWater SecondaryKind = iota
	SecondaryLava
)

// String returns the kind name used in configuration files.
func (k SecondaryKind) String() string {
	if k == SecondaryLava {
		return "lava"
	}
	return "water"
}

// SpawnIntent records what generation decided to spawn on a tile.
type SpawnIntent struct {
	Stairs  bool `json:"stairs,omitempty"`
	Item    bool `json:"item,omitempty"`
	Trap    bool `json:"trap,omitempty"`
	Monster bool `json:"monster,omitempty"`
}

// Any reports whether any spawn is planned on the tile.
func (s SpawnIntent) Any() bool {
	return s.Stairs || s.Item || s.Trap || s.Monster
}

// Visibility is per-tile map knowledge during play.
type Visibility struct {
	// Revealed tiles show on the map even if never visited.
	Revealed bool `json:"revealed,omitempty"`
	Visited  bool `json:"visited,omitempty"`
}

// Tile is one cell of the floor grid.
type Tile struct {
	Terrain Terrain `json:"terrain"`

	CornerCuttable bool `json:"corner_cuttable,omitempty"`
	// NaturalJunction marks room tiles next to a hallway and branching points
	// inside hallways.
	NaturalJunction bool `json:"natural_junction,omitempty"`
	// ImpassableWall tiles can never be entered or broken, e.g. the border.
	ImpassableWall      bool `json:"impassable_wall,omitempty"`
	InKecleonShop       bool `json:"in_kecleon_shop,omitempty"`
	InMonsterHouse      bool `json:"in_monster_house,omitempty"`
	Unbreakable         bool `json:"unbreakable,omitempty"`
	Stairs              bool `json:"stairs,omitempty"`
	KeyDoor             bool `json:"key_door,omitempty"`
	KeyDoorKeyLocked    bool `json:"key_door_key_locked,omitempty"`
	KeyDoorEscortLocked bool `json:"key_door_escort_locked,omitempty"`
	// UnreachableFromStairs is only meaningful while a floor is generated.
	UnreachableFromStairs bool `json:"unreachable_from_stairs,omitempty"`

	Room     uint8                        `json:"room"`
	Walkable [MobilityCount]DirectionMask `json:"walkable"`

	Spawn      SpawnIntent `json:"spawn"`
	Visibility Visibility  `json:"visibility"`

	// Monster and Object reference entities owned by the entity table.
	Monster uuid.UUID `json:"monster"`
	Object  uuid.UUID `json:"object"`
}

// InRoom reports whether the tile belongs to a room.
func (t Tile) InRoom() bool {
	return t.Room != NoRoom
}

// IsPassable returns true if the tile can be walked on with normal mobility.
func (t Tile) IsPassable() bool {
	return t.Terrain == TerrainNormal
}

// IsOpen returns true for any non-wall terrain.
func (t Tile) IsOpen() bool {
	return t.Terrain != TerrainWall
}

// Rune returns the tile's display character.
func (t Tile) Rune(kind SecondaryKind) rune {
	if t.Stairs {
		return '>'
	}
	switch t.Terrain {
	case TerrainNormal:
		return '.'
	case TerrainSecondary:
		if kind == SecondaryLava {
			return '%'
		}
		return '~'
	case TerrainChasm:
		return ':'
	default:
		return '#'
	}
}

// MarshalText encodes the kind by name.
func (k SecondaryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes "water" or "lava".
func (k *SecondaryKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "water":
		*k = SecondaryWater
	case "lava":
		*k = SecondaryLava
	default:
		return fmt.Errorf("unknown secondary terrain %q", text)
	}
	return nil
}
