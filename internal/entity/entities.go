package entity

import (
	"github.com/google/uuid"

	"github.com/samdwyer/floorgen/internal/gamedata"
	"github.com/samdwyer/floorgen/internal/world"
)

// Monster is a creature placed on the floor.
type Monster struct {
	ID     uuid.UUID
	Def    *gamedata.MonsterDef
	Name   string
	Symbol rune
	Pos    world.Position
	Room   uint8
	Level  int
	HP     int
	MaxHP  int
	// Shopkeeper marks the Kecleon guarding a shop.
	Shopkeeper     bool
	InMonsterHouse bool
}

// Item is an object lying on or buried in the floor.
type Item struct {
	ID     uuid.UUID
	Def    *gamedata.ItemDef
	Pos    world.Position
	Amount int // money only
	Price  int // shop items only
	Sticky bool
	Buried bool
}

// Symbol returns the display glyph.
func (i *Item) Symbol() rune {
	return i.Def.GlyphRune()
}

// Trap is a floor trap.
type Trap struct {
	ID      uuid.UUID
	Def     *gamedata.TrapDef
	Pos     world.Position
	Visible bool
}

// Symbol returns the display glyph.
func (t *Trap) Symbol() rune {
	return '^'
}

func newMonster(id uuid.UUID, def *gamedata.MonsterDef, pos world.Position, room uint8) *Monster {
	return &Monster{
		ID:     id,
		Def:    def,
		Name:   def.Name,
		Symbol: def.GlyphRune(),
		Pos:    pos,
		Room:   room,
		Level:  def.Level,
		HP:     def.HP,
		MaxHP:  def.HP,
	}
}
