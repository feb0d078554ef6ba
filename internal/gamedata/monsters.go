package gamedata

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/floorgen/internal/world"
)

// MonsterDef defines a monster species loaded from JSON.
type MonsterDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "caterpie")
	Name        string `json:"name"`        // Display name
	Glyph       string `json:"glyph"`       // Single character for rendering
	Color       string `json:"color"`       // Hex color code
	Level       int    `json:"level"`       // Level on spawn
	HP          int    `json:"hp"`          // Base hit points
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency
	// Mobility is "normal", "water", "lava" or "flying".
	Mobility string `json:"mobility"`
	floorRange
}

// Key implements Weighted.
func (m MonsterDef) Key() string { return m.ID }

// Weight implements Weighted.
func (m MonsterDef) Weight() int { return m.SpawnWeight }

// GlyphRune returns the glyph as a rune for rendering.
func (m *MonsterDef) GlyphRune() rune {
	if len(m.Glyph) == 0 {
		return '?'
	}
	return rune(m.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (m *MonsterDef) TCellColor() tcell.Color {
	return colorOr(m.Color, tcell.ColorWhite)
}

// MobilityType maps the mobility name onto the grid's movement classes.
func (m *MonsterDef) MobilityType() world.Mobility {
	switch m.Mobility {
	case "water":
		return world.MobilityWater
	case "lava":
		return world.MobilityLava
	case "flying":
		return world.MobilityFlying
	default:
		return world.MobilityNormal
	}
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Monsters []MonsterDef `json:"monsters"`
}

// LoadMonsters loads monster definitions from the embedded monsters.json file.
func LoadMonsters() ([]MonsterDef, error) {
	file, err := Load[MonstersFile]("monsters.json")
	if err != nil {
		return nil, err
	}
	return file.Monsters, nil
}
