package world

// Direction is one of the eight compass directions, counter-clockwise from
// down.
type Direction uint8

const (
	DirDown Direction = iota
	DirDownRight
	DirRight
	DirUpRight
	DirUp
	DirUpLeft
	DirLeft
	DirDownLeft
	directionCount
)

var directionDeltas = [directionCount][2]int{
	{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

// Directions lists all eight directions.
var Directions = [directionCount]Direction{
	DirDown, DirDownRight, DirRight, DirUpRight, DirUp, DirUpLeft, DirLeft, DirDownLeft,
}

// Cardinals lists the four orthogonal directions.
var Cardinals = [4]Direction{DirDown, DirRight, DirUp, DirLeft}

// Delta returns the x and y offsets of the direction.
func (d Direction) Delta() (int, int) {
	v := directionDeltas[d%directionCount]
	return v[0], v[1]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 4) % directionCount
}

// IsDiagonal reports whether the direction moves on both axes.
func (d Direction) IsDiagonal() bool {
	return d%2 == 1
}

// DirectionMask holds one bit per Direction.
type DirectionMask uint8

// Has reports whether d is set.
func (m DirectionMask) Has(d Direction) bool {
	return m&(1<<d) != 0
}

// With returns m with d set.
func (m DirectionMask) With(d Direction) DirectionMask {
	return m | 1<<d
}

// Mobility is a category of movement with its own walkability rules.
type Mobility uint8

const (
	MobilityNormal Mobility = iota
	MobilityLava
	MobilityWater
	MobilityFlying
	// MobilityCount is the number of mobility types tracked per tile.
	MobilityCount
)

// String returns the mobility name.
func (m Mobility) String() string {
	switch m {
	case MobilityNormal:
		return "normal"
	case MobilityLava:
		return "lava"
	case MobilityWater:
		return "water"
	case MobilityFlying:
		return "flying"
	default:
		return "unknown"
	}
}
