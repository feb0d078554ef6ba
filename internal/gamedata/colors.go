package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return tcell.NewHexColor(int32(v)), nil
}

// colorOr parses hex, falling back when it is empty or malformed.
func colorOr(hex string, fallback tcell.Color) tcell.Color {
	if c, err := ParseHexColor(hex); err == nil {
		return c
	}
	return fallback
}

// TilesetDef is the palette a floor is drawn with.
type TilesetDef struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Wall      string `json:"wall"`
	Floor     string `json:"floor"`
	Hallway   string `json:"hallway"`
	Secondary string `json:"secondary"`
	Chasm     string `json:"chasm"`
	Stairs    string `json:"stairs"`
	Shop      string `json:"shop"`
}

// Palette holds the parsed tileset colors.
type Palette struct {
	Wall, Floor, Hallway, Secondary, Chasm, Stairs, Shop tcell.Color
}

// Palette parses the tileset colors. Bad entries fall back to plain
// terminal colors.
func (t TilesetDef) Palette() Palette {
	return Palette{
		Wall:      colorOr(t.Wall, tcell.ColorGray),
		Floor:     colorOr(t.Floor, tcell.ColorSilver),
		Hallway:   colorOr(t.Hallway, tcell.ColorSilver),
		Secondary: colorOr(t.Secondary, tcell.ColorBlue),
		Chasm:     colorOr(t.Chasm, tcell.ColorDarkSlateGray),
		Stairs:    colorOr(t.Stairs, tcell.ColorYellow),
		Shop:      colorOr(t.Shop, tcell.ColorGreen),
	}
}

// DefaultPalette is used when a floor names an unknown tileset.
func DefaultPalette() Palette {
	return TilesetDef{}.Palette()
}
