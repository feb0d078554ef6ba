package dungeon

import "fmt"

// Layout selects how the floor is partitioned into grid cells.
type Layout uint8

const (
	// LayoutLarge spreads up to 6x4 cells over the whole floor.
	LayoutLarge Layout = iota
	// LayoutMedium uses up to 4x3 cells over the middle of the floor.
	LayoutMedium
	// LayoutSmall uses up to 3x2 cells over a small central area.
	LayoutSmall
	// LayoutLine places up to six cells in a single row.
	LayoutLine
	// LayoutCross is a plus shape of five cells.
	LayoutCross
)

var layoutNames = map[Layout]string{
	LayoutLarge:  "large",
	LayoutMedium: "medium",
	LayoutSmall:  "small",
	LayoutLine:   "line",
	LayoutCross:  "cross",
}

// String returns the layout name used in data files.
func (l Layout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return "unknown"
}

// MaxGrid returns the largest cell grid the layout may use.
func (l Layout) MaxGrid() (cols, rows int) {
	switch l {
	case LayoutMedium:
		return 4, 3
	case LayoutSmall:
		return 3, 2
	case LayoutLine:
		return 6, 1
	case LayoutCross:
		return 3, 3
	default:
		return 6, 4
	}
}

// Fixed reports whether the layout ignores the requested room count.
func (l Layout) Fixed() bool {
	return l == LayoutCross
}

// Capacity is the largest room count the layout can hold.
func (l Layout) Capacity() int {
	if l == LayoutCross {
		return 5
	}
	cols, rows := l.MaxGrid()
	return cols * rows
}

// MarshalText encodes the layout by name.
func (l Layout) MarshalText() ([]byte, error) {
	if _, ok := layoutNames[l]; !ok {
		return nil, fmt.Errorf("unknown layout %d", l)
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a layout name.
func (l *Layout) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*l = LayoutLarge
		return nil
	}
	for k, name := range layoutNames {
		if name == string(text) {
			*l = k
			return nil
		}
	}
	return fmt.Errorf("unknown layout %q", text)
}

// Darkness is how far the player can see on a floor.
type Darkness uint8

const (
	DarknessBright Darkness = iota
	DarknessDim
	DarknessDark
	DarknessPitchBlack
)

var darknessNames = [...]string{"bright", "dim", "dark", "pitch_black"}

// String returns the darkness name.
func (d Darkness) String() string {
	if int(d) < len(darknessNames) {
		return darknessNames[d]
	}
	return "unknown"
}

// SightRadius is how many tiles around the player are lit outside rooms.
func (d Darkness) SightRadius() int {
	switch d {
	case DarknessBright:
		return 0
	case DarknessDim:
		return 3
	case DarknessDark:
		return 2
	default:
		return 1
	}
}

// MarshalText encodes the darkness level by name.
func (d Darkness) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a darkness level name.
func (d *Darkness) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = DarknessBright
		return nil
	}
	for i, name := range darknessNames {
		if name == string(text) {
			*d = Darkness(i)
			return nil
		}
	}
	return fmt.Errorf("unknown darkness level %q", text)
}

// HiddenStairsType is the kind of optional second stairway.
type HiddenStairsType uint8

const (
	HiddenStairsNone HiddenStairsType = iota
	HiddenStairsSecretBazaar
	HiddenStairsSecretRoom
	// HiddenStairsRandom resolves to a bazaar or a secret room per floor.
	HiddenStairsRandom
)

var hiddenStairsNames = [...]string{"none", "secret_bazaar", "secret_room", "random"}

// String returns the hidden stairs type name.
func (h HiddenStairsType) String() string {
	if int(h) < len(hiddenStairsNames) {
		return hiddenStairsNames[h]
	}
	return "unknown"
}

// MarshalText encodes the type by name.
func (h HiddenStairsType) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes a hidden stairs type name.
func (h *HiddenStairsType) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*h = HiddenStairsNone
		return nil
	}
	for i, name := range hiddenStairsNames {
		if name == string(text) {
			*h = HiddenStairsType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown hidden stairs type %q", text)
}

// SpawnPlacement chooses how the player spawn relates to the stairs.
type SpawnPlacement uint8

const (
	// SpawnRandom picks any legal tile in the spawn room.
	SpawnRandom SpawnPlacement = iota
	// SpawnFarthest picks the spawn-room tile farthest from the stairs.
	SpawnFarthest
)

// String returns the placement name.
func (s SpawnPlacement) String() string {
	if s == SpawnFarthest {
		return "farthest"
	}
	return "random"
}

// MarshalText encodes the placement by name.
func (s SpawnPlacement) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes "random" or "farthest".
func (s *SpawnPlacement) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "random":
		*s = SpawnRandom
	case "farthest":
		*s = SpawnFarthest
	default:
		return fmt.Errorf("unknown spawn placement %q", text)
	}
	return nil
}
