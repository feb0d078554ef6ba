package gamedata

import (
	"errors"

	"github.com/samdwyer/floorgen/internal/rng"
)

// ErrEmptyTable is returned when a table has nothing to pick from.
var ErrEmptyTable = errors.New("spawn table is empty")

// Weighted is a table entry with a relative spawn frequency.
type Weighted interface {
	Key() string
	Weight() int
	// Allowed reports whether the entry may appear on the given floor.
	Allowed(floor int) bool
}

// Table holds weighted definitions and picks among them.
type Table[T Weighted] struct {
	entries     []T
	index       map[string]int
	totalWeight int
}

// NewTable creates a table from loaded definitions.
func NewTable[T Weighted](entries []T) *Table[T] {
	t := &Table[T]{
		entries: entries,
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		t.index[e.Key()] = i
		t.totalWeight += max(e.Weight(), 0)
	}
	return t
}

// ForFloor returns a table restricted to entries allowed on floor.
func (t *Table[T]) ForFloor(floor int) *Table[T] {
	var keep []T
	for _, e := range t.entries {
		if e.Allowed(floor) {
			keep = append(keep, e)
		}
	}
	return NewTable(keep)
}

// Pick selects an entry using weighted probability. Entries with a higher
// weight are more likely to be selected.
func (t *Table[T]) Pick(s *rng.Stream) (T, error) {
	var zero T
	if t.totalWeight <= 0 || len(t.entries) == 0 {
		return zero, ErrEmptyTable
	}

	roll := s.Intn(t.totalWeight)

	cumulative := 0
	for _, e := range t.entries {
		cumulative += max(e.Weight(), 0)
		if roll < cumulative {
			return e, nil
		}
	}

	// Fallback (shouldn't happen)
	return t.entries[0], nil
}

// Get returns the entry with the given key.
func (t *Table[T]) Get(key string) (T, bool) {
	i, ok := t.index[key]
	if !ok {
		var zero T
		return zero, false
	}
	return t.entries[i], true
}

// All returns every entry.
func (t *Table[T]) All() []T {
	return t.entries
}

// Count returns the number of entries in the table.
func (t *Table[T]) Count() int {
	return len(t.entries)
}

// floorRange is the floor span an entry appears on. Zero bounds are open.
type floorRange struct {
	MinFloor int `json:"minFloor"`
	MaxFloor int `json:"maxFloor"`
}

func (r floorRange) Allowed(floor int) bool {
	if r.MinFloor > 0 && floor < r.MinFloor {
		return false
	}
	if r.MaxFloor > 0 && floor > r.MaxFloor {
		return false
	}
	return true
}
