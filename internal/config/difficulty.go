package config

import "math"

// DifficultyConfig defines the obstacle spawn-gap curve. The gap window
// [min, max] shrinks linearly with level and with progress through the
// level's quota; both pressures add up, and each bound has a floor.
type DifficultyConfig struct {
	Enabled        bool    `yaml:"enabled"` // false ignores in-level progress
	GapScale       float64 `yaml:"gap_scale"`
	MinBase        float64 `yaml:"min_base"`
	MinPerLevel    float64 `yaml:"min_per_level"`
	MinPerProgress float64 `yaml:"min_per_progress"`
	MinFloor       float64 `yaml:"min_floor"`
	MaxBase        float64 `yaml:"max_base"`
	MaxPerLevel    float64 `yaml:"max_per_level"`
	MaxPerProgress float64 `yaml:"max_per_progress"`
	MaxFloor       float64 `yaml:"max_floor"`
}

// DifficultyManager computes spawn gaps from level and quota progress.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	if cfg.GapScale <= 0 {
		cfg.GapScale = 1
	}
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether in-level progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// SpawnGap returns the window, in seconds, the next obstacle gap is drawn from.
// progress is obstacles beaten over obstacles needed and is clamped to [0, 1].
func (d *DifficultyManager) SpawnGap(level int, progress float64) (lo, hi float64) {
	if !d.cfg.Enabled {
		progress = 0
	}
	progress = clampF(progress, 0, 1)
	l := float64(level)
	c := d.cfg

	lo = c.GapScale * (c.MinBase - l*c.MinPerLevel - progress*c.MinPerProgress)
	hi = c.GapScale * (c.MaxBase - l*c.MaxPerLevel - progress*c.MaxPerProgress)
	lo = math.Max(c.MinFloor, lo)
	hi = math.Max(c.MaxFloor, hi)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *EscapeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.GapScale = 1.2
		cfg.Timers.Grace = math.Max(cfg.Timers.Grace, 12)
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.GapScale = 1.0
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.GapScale = 0.85
		cfg.Timers.Grace = math.Min(cfg.Timers.Grace, 6)
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
