package gamedata

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samdwyer/floorgen/internal/generator"
)

// ErrUnknownDungeon is returned for dungeon IDs missing from dungeons.json.
var ErrUnknownDungeon = errors.New("unknown dungeon")

// Catalog is the loaded, validated game data.
type Catalog struct {
	dungeons map[string]*DungeonDef
	tilesets map[int]TilesetDef
	fixed    map[int]*FixedRoom

	Monsters *Table[MonsterDef]
	Items    *Table[ItemDef]
	Shop     *Table[ItemDef]
	Traps    *Table[TrapDef]
}

// LoadCatalog loads every embedded table and cross-checks them.
func LoadCatalog() (*Catalog, error) {
	df, err := LoadDungeons()
	if err != nil {
		return nil, err
	}
	rooms, err := LoadFixedRooms()
	if err != nil {
		return nil, err
	}
	monsters, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	traps, err := LoadTraps()
	if err != nil {
		return nil, err
	}
	return NewCatalog(df, rooms, monsters, items, traps)
}

// MustLoadCatalog loads the catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// NewCatalog builds a catalog from already loaded tables.
func NewCatalog(df DungeonsFile, rooms []FixedRoom, monsters []MonsterDef, items []ItemDef, traps []TrapDef) (*Catalog, error) {
	c := &Catalog{
		dungeons: make(map[string]*DungeonDef, len(df.Dungeons)),
		tilesets: make(map[int]TilesetDef, len(df.Tilesets)),
		fixed:    make(map[int]*FixedRoom, len(rooms)),
		Monsters: NewTable(monsters),
		Items:    NewTable(items),
		Shop:     NewTable(shopStock(items)),
		Traps:    NewTable(traps),
	}
	for _, ts := range df.Tilesets {
		c.tilesets[ts.ID] = ts
	}

	var errs []error
	for i := range rooms {
		r := &rooms[i]
		if err := r.Validate(); err != nil {
			errs = append(errs, err)
		}
		c.fixed[r.ID] = r
	}
	for i := range df.Dungeons {
		d := &df.Dungeons[i]
		if _, dup := c.dungeons[d.ID]; dup {
			errs = append(errs, fmt.Errorf("dungeon %s defined twice", d.ID))
		}
		c.dungeons[d.ID] = d
		for n := 1; n <= d.Floors; n++ {
			props, err := d.Floor(n)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if err := props.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("dungeon %s floor %d: %w", d.ID, n, err))
			}
			if props.FixedRoomID != 0 && c.fixed[props.FixedRoomID] == nil {
				errs = append(errs, fmt.Errorf("dungeon %s floor %d: unknown fixed room %d", d.ID, n, props.FixedRoomID))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// Dungeon returns the dungeon with the given ID.
func (c *Catalog) Dungeon(id string) (*DungeonDef, error) {
	d, ok := c.dungeons[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDungeon, id)
	}
	return d, nil
}

// DungeonIDs lists the dungeon IDs in sorted order.
func (c *Catalog) DungeonIDs() []string {
	ids := make([]string, 0, len(c.dungeons))
	for id := range c.dungeons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FixedRoom returns the template with the given ID.
func (c *Catalog) FixedRoom(id int) (*FixedRoom, bool) {
	r, ok := c.fixed[id]
	return r, ok
}

// Palette returns the colors of a tileset.
func (c *Catalog) Palette(tileset int) Palette {
	if ts, ok := c.tilesets[tileset]; ok {
		return ts.Palette()
	}
	return DefaultPalette()
}

// Request builds the generator input for one floor of a dungeon.
func (c *Catalog) Request(dungeonID string, floor int, seed uint32) (generator.Request, error) {
	d, err := c.Dungeon(dungeonID)
	if err != nil {
		return generator.Request{}, err
	}
	props, err := d.Floor(floor)
	if err != nil {
		return generator.Request{}, err
	}
	req := generator.Request{
		Properties:  props,
		Restriction: d.Restriction,
		Seed:        seed,
		Policy:      NewProvider(),
	}
	if props.FixedRoomID != 0 {
		req.FixedRoom, _ = c.FixedRoom(props.FixedRoomID)
	}
	return req, nil
}

// Requests builds the generator input for every floor of a dungeon. Seeds
// are left for GenerateDungeon to derive.
func (c *Catalog) Requests(dungeonID string) ([]generator.Request, error) {
	d, err := c.Dungeon(dungeonID)
	if err != nil {
		return nil, err
	}
	reqs := make([]generator.Request, 0, d.Floors)
	for n := 1; n <= d.Floors; n++ {
		req, err := c.Request(dungeonID, n, 0)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
