// Package rng provides the deterministic pseudo-random stream consumed by
// floor generation.
//
// A Stream owns one primary linear congruential sequence and a small bank of
// secondary sequences. Callers switch the active sequence with UseSecondary
// and UsePrimary, which lets a sub-decision draw values without moving the
// primary sequence.
package rng

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

const (
	// SecondaryCount is the number of secondary sequences in the bank.
	SecondaryCount = 5

	multiplier         = 0x5D588B65
	primaryIncrement   = 1
	secondaryIncrement = 0x269EC3

	// indexMix spreads secondary indices across the state space.
	indexMix = 0x9E3779B9
)

// State is a serializable snapshot of a Stream.
type State struct {
	UseSecondary bool                   `json:"use_secondary"`
	Sequence     uint32                 `json:"sequence"`
	Preseed      uint32                 `json:"preseed"`
	Last         uint32                 `json:"last"`
	Index        int                    `json:"index"`
	Secondary    [SecondaryCount]uint32 `json:"secondary"`
}

// Stream is a deterministic random stream. It is not safe for concurrent use;
// give every goroutine its own Stream.
type Stream struct {
	useSecondary bool
	sequence     uint32
	preseed      uint32
	last         uint32
	index        int
	secondary    [SecondaryCount]uint32
}

// New creates a stream whose primary sequence starts at seed. The secondary
// bank is derived from the same seed.
func New(seed uint32) *Stream {
	s := &Stream{last: seed, sequence: 1}
	s.Reseed(seed)
	return s
}

// Reseed derives every secondary sequence from preseed. The primary sequence
// is untouched.
func (s *Stream) Reseed(preseed uint32) {
	s.preseed = preseed
	for i := range s.secondary {
		s.secondary[i] = secondarySeed(preseed, i)
	}
}

func secondarySeed(preseed uint32, idx int) uint32 {
	return (preseed ^ (uint32(idx+1) * indexMix)) | 1
}

// UseSecondary routes subsequent draws to the secondary sequence idx.
// Indices outside the bank wrap around.
func (s *Stream) UseSecondary(idx int) {
	if idx < 0 {
		idx = -idx
	}
	s.index = idx % SecondaryCount
	s.useSecondary = true
}

// UsePrimary routes subsequent draws back to the primary sequence.
func (s *Stream) UsePrimary() {
	s.useSecondary = false
}

// Secondary reports the active secondary index and whether the secondary bank
// is in use.
func (s *Stream) Secondary() (int, bool) {
	return s.index, s.useSecondary
}

// Position returns how many values the primary sequence has produced.
func (s *Stream) Position() uint32 {
	return s.sequence
}

// NextU32 returns the next raw 32-bit value from the active sequence.
func (s *Stream) NextU32() uint32 {
	if s.useSecondary {
		s.secondary[s.index] = s.secondary[s.index]*multiplier + secondaryIncrement
		return s.secondary[s.index]
	}
	s.last = s.last*multiplier + primaryIncrement
	s.sequence++
	return s.last
}

// NextInRange returns a uniform value in [0, n). It returns 0 when n is 0.
func (s *Stream) NextInRange(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	// Multiply-shift keeps the high bits, which are the strong bits of an LCG.
	// Values landing in the biased low window are rejected.
	m := uint64(s.NextU32()) * uint64(n)
	low := uint32(m)
	if low < n {
		threshold := -n % n
		for low < threshold {
			m = uint64(s.NextU32()) * uint64(n)
			low = uint32(m)
		}
	}
	return uint32(m >> 32)
}

// Intn is NextInRange for int arguments. Non-positive n yields 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.NextInRange(uint32(n)))
}

// Range returns a uniform value in [lo, hi). It returns lo when hi <= lo.
func (s *Stream) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Intn(hi-lo)
}

// NextFraction returns a value in [0, 100) for percentage comparisons.
func (s *Stream) NextFraction() float64 {
	return float64(s.NextU32()) * 100 / (1 << 32)
}

// Chance reports whether a percentage roll succeeds. A pct of 0 never
// consumes a value and always fails; 100 or more always succeeds.
func (s *Stream) Chance(pct int) bool {
	if pct <= 0 {
		return false
	}
	return s.NextFraction() < float64(pct)
}

// Shuffle permutes n elements with swap, Fisher-Yates style.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}

// State captures the stream for later Restore.
func (s *Stream) State() State {
	return State{
		UseSecondary: s.useSecondary,
		Sequence:     s.sequence,
		Preseed:      s.preseed,
		Last:         s.last,
		Index:        s.index,
		Secondary:    s.secondary,
	}
}

// Restore rewinds the stream to a captured state.
func (s *Stream) Restore(st State) {
	s.useSecondary = st.UseSecondary
	s.sequence = st.Sequence
	s.preseed = st.Preseed
	s.last = st.Last
	s.index = st.Index % SecondaryCount
	s.secondary = st.Secondary
}

// Seed derives an independent 32-bit seed for one floor of a dungeon, so that
// floors can be generated separately and in any order.
func Seed(dungeonID string, floor int, seed uint64) uint32 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(floor))
	binary.LittleEndian.PutUint64(buf[8:], seed)

	d := xxhash.New()
	_, _ = d.WriteString(dungeonID)
	_, _ = d.Write(buf[:])
	sum := d.Sum64()
	return uint32(sum) ^ uint32(sum>>32)
}
