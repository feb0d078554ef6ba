package generator

import (
	"log/slog"

	"github.com/samdwyer/floorgen/internal/telemetry"
)

// Default tuning values.
const (
	DefaultMaxAttempts         = 10
	DefaultMinReachablePercent = 100
	DefaultMergeChance         = 5
	DefaultImperfectionChance  = 60
	DefaultStructureChance     = 50
	DefaultTrapVisibleChance   = 10
)

// Options tunes the generator. Zero values fall back to the defaults.
type Options struct {
	// MaxAttempts bounds the retry loop before the minimal layout is used.
	MaxAttempts int `yaml:"max_attempts"`
	// MinReachablePercent is the share of normal floor that must be
	// reachable from the stairs before stray fragments are walled off.
	MinReachablePercent int `yaml:"min_reachable_percent"`
	// MergeChance is the chance two adjacent rooms are fused.
	MergeChance int `yaml:"merge_chance"`
	// ImperfectionChance is the chance each room is roughened when the floor
	// allows imperfections.
	ImperfectionChance int `yaml:"imperfection_chance"`
	// StructureChance is the chance a large room is flagged for a
	// secondary structure.
	StructureChance int `yaml:"structure_chance"`
	// TrapVisibleChance is the chance a trap starts revealed.
	TrapVisibleChance int `yaml:"trap_visible_chance"`

	Logger  *slog.Logger       `yaml:"-"`
	Metrics *telemetry.Metrics `yaml:"-"`
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:         DefaultMaxAttempts,
		MinReachablePercent: DefaultMinReachablePercent,
		MergeChance:         DefaultMergeChance,
		ImperfectionChance:  DefaultImperfectionChance,
		StructureChance:     DefaultStructureChance,
		TrapVisibleChance:   DefaultTrapVisibleChance,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = d.MaxAttempts
	}
	if o.MinReachablePercent <= 0 || o.MinReachablePercent > 100 {
		o.MinReachablePercent = d.MinReachablePercent
	}
	if o.MergeChance < 0 {
		o.MergeChance = 0
	}
	if o.ImperfectionChance < 0 {
		o.ImperfectionChance = 0
	}
	if o.StructureChance < 0 {
		o.StructureChance = 0
	}
	if o.TrapVisibleChance < 0 {
		o.TrapVisibleChance = 0
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
