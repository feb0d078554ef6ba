package generator

import (
	"errors"
	"fmt"

	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/world"
)

// FixedRoom is a hand-drawn floor template.
//
// Glyphs:
//
//	#  breakable wall       X  impassable wall
//	.  room floor           ~  water or lava
//	:  chasm                S  stairs
//	P  player spawn         m  monster
//	i  item                 t  trap
type FixedRoom struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Rows      []string `json:"rows"`
	NoEnemies bool     `json:"no_enemies"`
}

// Validate checks the template fits the floor and uses known glyphs.
func (f *FixedRoom) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, &dungeon.ConfigError{Field: "fixed_room", Reason: fmt.Sprintf(format, args...)})
	}
	if len(f.Rows) == 0 {
		fail("template %d has no rows", f.ID)
		return errors.Join(errs...)
	}
	w, h := len(f.Rows[0]), len(f.Rows)
	if w > world.Interior.Width() || h > world.Interior.Height() {
		fail("template %d is %dx%d, larger than %dx%d", f.ID, w, h, world.Interior.Width(), world.Interior.Height())
	}
	stairs, spawns, floor := 0, 0, 0
	for y, row := range f.Rows {
		if len(row) != w {
			fail("template %d row %d has width %d, want %d", f.ID, y, len(row), w)
		}
		for x, ch := range row {
			switch ch {
			case 'S':
				stairs++
				floor++
			case 'P':
				spawns++
				floor++
			case '.', 'm', 'i', 't':
				floor++
			case '#', 'X', '~', ':':
			default:
				fail("template %d has unknown glyph %q at %d,%d", f.ID, ch, x, y)
			}
		}
	}
	if stairs > 1 {
		fail("template %d has %d stairs", f.ID, stairs)
	}
	if spawns > 1 {
		fail("template %d has %d player spawns", f.ID, spawns)
	}
	if floor < 2 {
		fail("template %d needs at least two floor tiles", f.ID)
	}
	return errors.Join(errs...)
}

// Bounds is where the template lands on the floor.
func (f *FixedRoom) Bounds() world.Rect {
	w, h := len(f.Rows[0]), len(f.Rows)
	return centered(w, h)
}

// stampFixedRoom lays the template out instead of a random layout.
func (a *attempt) stampFixedRoom() {
	f := a.fixed
	bounds := f.Bounds()
	a.rooms = []*roomInfo{{index: 0, rect: bounds, cell: &cell{bounds: bounds, IsRoom: true, room: bounds}}}
	a.status.Rooms = 1
	a.status.NoEnemySpawns = f.NoEnemies

	type marker struct {
		c Category
		p world.Position
	}
	var (
		markers       []marker
		stairs, spawn *world.Position
	)
	for y, row := range f.Rows {
		for x, ch := range row {
			p := world.Position{X: bounds.X0 + x, Y: bounds.Y0 + y}
			switch ch {
			case '#':
				continue
			case 'X':
				t := a.grid.At(p)
				t.ImpassableWall = true
				t.Unbreakable = true
				continue
			case '~':
				a.grid.SetFloor(p, 0)
				a.grid.At(p).Terrain = world.TerrainSecondary
				continue
			case ':':
				a.grid.SetFloor(p, 0)
				a.grid.At(p).Terrain = world.TerrainChasm
				a.status.HasChasms = true
				continue
			}
			a.grid.SetFloor(p, 0)
			switch ch {
			case 'S':
				stairs = &p
			case 'P':
				spawn = &p
			case 'm':
				markers = append(markers, marker{CategoryMonster, p})
			case 'i':
				markers = append(markers, marker{CategoryItem, p})
			case 't':
				markers = append(markers, marker{CategoryTrap, p})
			}
		}
	}
	markJunctions(a.grid)

	floor := func() []world.Position {
		return a.grid.Collect(func(p world.Position, t world.Tile) bool { return a.freeFloor(p) })
	}
	if !a.props.NoStairs {
		if stairs == nil {
			options := floor()
			if len(options) == 0 {
				a.status.invalidate("fixed room %d has no tile for the stairs", f.ID)
				return
			}
			p := options[a.rng.Intn(len(options))]
			stairs = &p
		}
		a.setStairs(*stairs)
		a.status.Stairs = *stairs
		a.status.StairsRoom = 0
	}
	if spawn == nil {
		options := floor()
		if len(options) == 0 {
			a.status.invalidate("fixed room %d has no tile for the player", f.ID)
			return
		}
		p := options[a.rng.Intn(len(options))]
		spawn = &p
	}
	a.status.PlayerSpawn = *spawn
	a.status.PlayerRoom = 0
	a.claimed.Put(*spawn)

	a.enforceReachability()
	if a.status.Invalid {
		return
	}
	for _, m := range markers {
		if m.c == CategoryMonster && a.status.NoEnemySpawns {
			continue
		}
		a.addSpawn(m.c, m.p)
	}
}
