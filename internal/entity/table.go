package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/gamedata"
	"github.com/samdwyer/floorgen/internal/generator"
	"github.com/samdwyer/floorgen/internal/rng"
	"github.com/samdwyer/floorgen/internal/world"
)

// entitySalt separates the entity stream from the layout stream.
const entitySalt = 0x3C6EF372

const shopkeeperID = "kecleon"

// Table owns every entity of one floor. Tiles refer to entities by ID.
type Table struct {
	Monsters map[uuid.UUID]*Monster `json:"monsters"`
	Items    map[uuid.UUID]*Item    `json:"items"`
	Traps    map[uuid.UUID]*Trap    `json:"traps"`

	grid *world.Grid
}

// Populate instantiates the spawn points of f from the catalog tables and
// links each tile to its occupant. The same floor always yields the same
// entities. A spawn point whose table has nothing eligible on this floor
// stays empty.
func Populate(f *generator.Floor, c *gamedata.Catalog, props dungeon.FloorProperties, r dungeon.Restriction) (*Table, error) {
	t := &Table{
		Monsters: make(map[uuid.UUID]*Monster),
		Items:    make(map[uuid.UUID]*Item),
		Traps:    make(map[uuid.UUID]*Trap),
		grid:     f.Grid,
	}
	floorID, err := uuid.Parse(f.Result.ID)
	if err != nil {
		return nil, fmt.Errorf("populate floor: %w", err)
	}
	s := rng.New(f.Result.Seed ^ entitySalt)

	monsters := c.Monsters.ForFloor(props.FloorNumber)
	items := c.Items.ForFloor(props.FloorNumber)
	if !r.MoneyAllowed {
		items = withoutMoney(items)
	}
	traps := c.Traps.ForFloor(props.FloorNumber)

	for i, sp := range f.Result.Spawns {
		id := uuid.NewSHA1(floorID, []byte(fmt.Sprintf("%s/%d/%d/%d", sp.Category, sp.Pos.X, sp.Pos.Y, i)))
		tile := f.Grid.At(sp.Pos)
		switch sp.Category {
		case generator.CategoryMonster:
			def, err := monsters.Pick(s)
			if errors.Is(err, gamedata.ErrEmptyTable) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("populate monster at %v: %w", sp.Pos, err)
			}
			m := newMonster(id, &def, sp.Pos, sp.Room)
			m.InMonsterHouse = sp.InMonsterHouse
			t.Monsters[id] = m
			tile.Monster = id

		case generator.CategoryItem, generator.CategoryBuriedItem, generator.CategoryShopItem:
			table := items
			if sp.Category == generator.CategoryShopItem {
				table = c.Shop.ForFloor(props.FloorNumber)
			}
			def, err := table.Pick(s)
			if errors.Is(err, gamedata.ErrEmptyTable) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("populate %s at %v: %w", sp.Category, sp.Pos, err)
			}
			it := &Item{
				ID:     id,
				Def:    &def,
				Pos:    sp.Pos,
				Sticky: sp.Sticky,
				Buried: sp.Category == generator.CategoryBuriedItem,
			}
			if def.Kind == gamedata.ItemMoney {
				it.Amount = s.Range(1, max(props.MaxMoney, 1)+1)
			}
			if sp.Category == generator.CategoryShopItem {
				it.Price = def.Price
			}
			t.Items[id] = it
			tile.Object = id

		case generator.CategoryTrap:
			def, err := traps.Pick(s)
			if errors.Is(err, gamedata.ErrEmptyTable) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("populate trap at %v: %w", sp.Pos, err)
			}
			t.Traps[id] = &Trap{ID: id, Def: &def, Pos: sp.Pos, Visible: sp.Visible}
			tile.Object = id
		}
	}

	if shop := f.Result.KecleonShop; shop != nil {
		if def, ok := c.Monsters.Get(shopkeeperID); ok {
			pos := shop.Center()
			id := uuid.NewSHA1(floorID, []byte("shopkeeper"))
			m := newMonster(id, &def, pos, f.Grid.At(pos).Room)
			m.Shopkeeper = true
			t.Monsters[id] = m
			f.Grid.At(pos).Monster = id
		}
	}
	return t, nil
}

func withoutMoney(t *gamedata.Table[gamedata.ItemDef]) *gamedata.Table[gamedata.ItemDef] {
	var keep []gamedata.ItemDef
	for _, it := range t.All() {
		if it.Kind != gamedata.ItemMoney {
			keep = append(keep, it)
		}
	}
	return gamedata.NewTable(keep)
}

// MonsterAt returns the monster standing on p.
func (t *Table) MonsterAt(p world.Position) (*Monster, bool) {
	tile := t.grid.At(p)
	if tile == nil || tile.Monster == uuid.Nil {
		return nil, false
	}
	m, ok := t.Monsters[tile.Monster]
	return m, ok
}

// ItemAt returns the item on or buried in p.
func (t *Table) ItemAt(p world.Position) (*Item, bool) {
	tile := t.grid.At(p)
	if tile == nil || tile.Object == uuid.Nil {
		return nil, false
	}
	it, ok := t.Items[tile.Object]
	return it, ok
}

// TrapAt returns the trap on p.
func (t *Table) TrapAt(p world.Position) (*Trap, bool) {
	tile := t.grid.At(p)
	if tile == nil || tile.Object == uuid.Nil {
		return nil, false
	}
	tr, ok := t.Traps[tile.Object]
	return tr, ok
}

// TakeItem removes the item on p and returns it. Buried and shop items stay
// where they are.
func (t *Table) TakeItem(p world.Position) (*Item, bool) {
	it, ok := t.ItemAt(p)
	if !ok || it.Buried || it.Price > 0 {
		return nil, false
	}
	delete(t.Items, it.ID)
	t.grid.At(p).Object = uuid.Nil
	return it, true
}

// RevealTrap makes the trap on p visible and returns it.
func (t *Table) RevealTrap(p world.Position) (*Trap, bool) {
	tr, ok := t.TrapAt(p)
	if ok {
		tr.Visible = true
	}
	return tr, ok
}

// SortedMonsters returns the monsters ordered by position, for stable
// iteration.
func (t *Table) SortedMonsters() []*Monster {
	out := make([]*Monster, 0, len(t.Monsters))
	for _, m := range t.Monsters {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Y != out[j].Pos.Y {
			return out[i].Pos.Y < out[j].Pos.Y
		}
		return out[i].Pos.X < out[j].Pos.X
	})
	return out
}
