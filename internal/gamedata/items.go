package gamedata

import "github.com/gdamore/tcell/v2"

// ItemKind groups items by how they are used.
type ItemKind string

const (
	ItemMoney ItemKind = "money"
	ItemFood  ItemKind = "food"
	ItemSeed  ItemKind = "seed"
	ItemOrb   ItemKind = "orb"
	ItemThrow ItemKind = "throw"
)

// ItemDef defines an item loaded from JSON.
type ItemDef struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        ItemKind `json:"kind"`
	Glyph       string   `json:"glyph"`
	Color       string   `json:"color"`
	Price       int      `json:"price"`       // Kecleon shop price; zero is not sold
	SpawnWeight int      `json:"spawnWeight"` // Relative spawn frequency
	floorRange
}

// Key implements Weighted.
func (i ItemDef) Key() string { return i.ID }

// Weight implements Weighted.
func (i ItemDef) Weight() int { return i.SpawnWeight }

// GlyphRune returns the glyph as a rune for rendering.
func (i *ItemDef) GlyphRune() rune {
	if len(i.Glyph) == 0 {
		return '*'
	}
	return rune(i.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (i *ItemDef) TCellColor() tcell.Color {
	return colorOr(i.Color, tcell.ColorWhite)
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}

// shopStock is a table view that only holds items a shop can sell.
func shopStock(items []ItemDef) []ItemDef {
	var out []ItemDef
	for _, it := range items {
		if it.Price > 0 {
			out = append(out, it)
		}
	}
	return out
}
