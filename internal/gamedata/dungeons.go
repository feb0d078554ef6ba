package gamedata

import (
	"fmt"

	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/generator"
)

// FloorSpan applies one set of floor properties to a run of floors.
type FloorSpan struct {
	From       int                     `json:"from"`
	To         int                     `json:"to"`
	Properties dungeon.FloorProperties `json:"properties"`
}

// DungeonDef describes a whole dungeon.
type DungeonDef struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Floors      int                 `json:"floors"`
	Restriction dungeon.Restriction `json:"restriction"`
	Spans       []FloorSpan         `json:"spans"`
}

// Floor returns the properties of floor n, with FloorNumber filled in.
func (d *DungeonDef) Floor(n int) (dungeon.FloorProperties, error) {
	if n < 1 || n > d.Floors {
		return dungeon.FloorProperties{}, fmt.Errorf("dungeon %s has floors 1-%d, not %d", d.ID, d.Floors, n)
	}
	for _, s := range d.Spans {
		if n >= s.From && n <= s.To {
			props := s.Properties
			props.FloorNumber = n
			return props, nil
		}
	}
	return dungeon.FloorProperties{}, fmt.Errorf("dungeon %s has no properties for floor %d", d.ID, n)
}

// DungeonsFile represents the structure of dungeons.json.
type DungeonsFile struct {
	Dungeons []DungeonDef `json:"dungeons"`
	Tilesets []TilesetDef `json:"tilesets"`
}

// FixedRoomsFile represents the structure of fixed_rooms.json.
type FixedRoomsFile struct {
	Rooms []generator.FixedRoom `json:"rooms"`
}

// FixedRoom aliases the generator template so data files and the generator
// share one shape.
type FixedRoom = generator.FixedRoom

// LoadDungeons loads dungeon definitions from the embedded dungeons.json.
func LoadDungeons() (DungeonsFile, error) {
	return Load[DungeonsFile]("dungeons.json")
}

// LoadFixedRooms loads the fixed room templates from fixed_rooms.json.
func LoadFixedRooms() ([]FixedRoom, error) {
	file, err := Load[FixedRoomsFile]("fixed_rooms.json")
	if err != nil {
		return nil, err
	}
	return file.Rooms, nil
}
