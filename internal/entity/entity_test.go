package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/floorgen/internal/gamedata"
	"github.com/samdwyer/floorgen/internal/generator"
	"github.com/samdwyer/floorgen/internal/world"
)

func generate(t *testing.T, c *gamedata.Catalog, dungeonID string, floor int, seed uint32) (generator.Request, *generator.Floor) {
	t.Helper()
	req, err := c.Request(dungeonID, floor, seed)
	require.NoError(t, err)
	f, err := generator.New(generator.DefaultOptions()).Generate(t.Context(), req)
	require.NoError(t, err)
	return req, f
}

func TestPopulateLinksTiles(t *testing.T) {
	c := gamedata.MustLoadCatalog()

	for seed := uint32(1); seed <= 10; seed++ {
		req, f := generate(t, c, "tiny_woods", 2, seed)
		tbl, err := Populate(f, c, req.Properties, req.Restriction)
		require.NoError(t, err)

		for _, sp := range f.Result.Spawns {
			switch sp.Category {
			case generator.CategoryMonster:
				m, ok := tbl.MonsterAt(sp.Pos)
				require.True(t, ok, "seed %d: no monster at %v", seed, sp.Pos)
				assert.Equal(t, sp.Pos, m.Pos)
				assert.Equal(t, m.MaxHP, m.HP)
				assert.False(t, m.Shopkeeper)
			case generator.CategoryTrap:
				tr, ok := tbl.TrapAt(sp.Pos)
				require.True(t, ok, "seed %d: no trap at %v", seed, sp.Pos)
				assert.Equal(t, sp.Visible, tr.Visible)
			default:
				it, ok := tbl.ItemAt(sp.Pos)
				require.True(t, ok, "seed %d: no item at %v", seed, sp.Pos)
				assert.Equal(t, sp.Category == generator.CategoryBuriedItem, it.Buried)
				if it.Def.Kind == gamedata.ItemMoney {
					assert.GreaterOrEqual(t, it.Amount, 1)
					assert.LessOrEqual(t, it.Amount, max(req.Properties.MaxMoney, 1))
				}
				if sp.Category == generator.CategoryShopItem {
					assert.Positive(t, it.Price)
				}
			}
		}

		if f.Result.KecleonShop != nil {
			m, ok := tbl.MonsterAt(f.Result.KecleonShop.Center())
			require.True(t, ok)
			assert.True(t, m.Shopkeeper)
		}
	}
}

func TestPopulateDeterministic(t *testing.T) {
	c := gamedata.MustLoadCatalog()

	req, a := generate(t, c, "thunderwave_cave", 3, 77)
	_, b := generate(t, c, "thunderwave_cave", 3, 77)

	ta, err := Populate(a, c, req.Properties, req.Restriction)
	require.NoError(t, err)
	tb, err := Populate(b, c, req.Properties, req.Restriction)
	require.NoError(t, err)

	require.Equal(t, len(ta.Monsters), len(tb.Monsters))
	for id, m := range ta.Monsters {
		other, ok := tb.Monsters[id]
		require.True(t, ok)
		assert.Equal(t, m.Def.ID, other.Def.ID)
	}
	for id, it := range ta.Items {
		other, ok := tb.Items[id]
		require.True(t, ok)
		assert.Equal(t, it.Def.ID, other.Def.ID)
		assert.Equal(t, it.Amount, other.Amount)
	}
}

func TestPopulateWithoutMoney(t *testing.T) {
	c := gamedata.MustLoadCatalog()

	for seed := uint32(1); seed <= 10; seed++ {
		req, f := generate(t, c, "tiny_woods", 1, seed)
		req.Restriction.MoneyAllowed = false

		tbl, err := Populate(f, c, req.Properties, req.Restriction)
		require.NoError(t, err)
		for _, it := range tbl.Items {
			assert.NotEqual(t, gamedata.ItemMoney, it.Def.Kind)
		}
	}
}

func TestTakeItem(t *testing.T) {
	c := gamedata.MustLoadCatalog()

	for seed := uint32(1); seed <= 20; seed++ {
		req, f := generate(t, c, "tiny_woods", 1, seed)
		tbl, err := Populate(f, c, req.Properties, req.Restriction)
		require.NoError(t, err)

		items := f.Result.SpawnsOf(generator.CategoryItem)
		if len(items) == 0 {
			continue
		}
		p := items[0].Pos
		it, ok := tbl.TakeItem(p)
		require.True(t, ok)
		assert.Equal(t, uuid.Nil, f.Grid.At(p).Object)
		assert.NotContains(t, tbl.Items, it.ID)

		_, ok = tbl.TakeItem(p)
		assert.False(t, ok, "second pickup finds nothing")
		return
	}
	t.Fatal("no seed produced a floor item")
}

func TestPartyMove(t *testing.T) {
	g := world.NewGrid(world.SecondaryWater)
	g.CarveRoom(world.Rect{X0: 2, Y0: 2, X1: 5, Y1: 5}, 0)
	g.UpdateWalkability()

	p := NewParty(world.Position{X: 2, Y: 2}, 4)
	assert.Equal(t, 4, p.Size)
	assert.Equal(t, '@', p.Symbol)

	assert.False(t, p.Move(g, world.DirUp), "wall above")
	assert.True(t, p.Move(g, world.DirDownRight))

	x, y := p.Position()
	assert.Equal(t, 3, x)
	assert.Equal(t, 3, y)

	assert.Equal(t, 1, NewParty(world.Position{}, 0).Size)
}
