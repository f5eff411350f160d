package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := DefaultEscapeConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultEscapeConfig()) {
		t.Error("embedded defaults/escape.yaml drifted from DefaultEscapeConfig()")
	}
}

func TestValidateViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EscapeConfig)
		want   string
	}{
		{"tier out of range", func(c *EscapeConfig) { c.Villains[0].Tier = 6 }, "tier 6"},
		{"empty villains", func(c *EscapeConfig) { c.Villains = nil }, "villains table is empty"},
		{"empty pool", func(c *EscapeConfig) {
			for i := range c.Villains {
				c.Villains[i].Tier = 5
			}
		}, "empty spawn pool"},
		{"rarity overflow", func(c *EscapeConfig) { c.Gems[0].Rarity = 0.6 }, "rarities sum"},
		{"speed not monotonic", func(c *EscapeConfig) { c.Levels[3].SpeedMult = 1.0 }, "speed"},
		{"count not monotonic", func(c *EscapeConfig) { c.Levels[0].Obstacles = 20 }, "obstacle count"},
		{"no step after five", func(c *EscapeConfig) { c.Levels[5].SpeedMult = 1.35 }, "step change"},
		{"unknown mood", func(c *EscapeConfig) { c.Levels[2].Mood = "jazzy" }, "jazzy"},
		{"jump too low", func(c *EscapeConfig) { c.Physics.JumpVelocity = -1.0 }, "does not clear tallest JUMP"},
		{"jump too high", func(c *EscapeConfig) { c.Physics.JumpVelocity = -1.5 }, "without a double jump"},
		{"duck flag mismatch", func(c *EscapeConfig) { c.Villains[8].Duck = false }, "duck flag"},
		{"tutorial unknown spawn", func(c *EscapeConfig) { c.Tutorial.Steps[1].Spawn = "ghost" }, "ghost"},
		{"nine levels", func(c *EscapeConfig) { c.Levels = c.Levels[:9] }, "expected 10"},
		{"negative continue delay", func(c *EscapeConfig) { c.Spawn.ContinueGem = -1 }, "continue_gem"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultEscapeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestParseRejectsUnknownEnum(t *testing.T) {
	_, err := Parse([]byte("gems:\n  - {id: x, rarity: 0.1, effect: teleport}\n"))
	if err == nil || !strings.Contains(err.Error(), "teleport") {
		t.Errorf("expected unknown effect error, got %v", err)
	}
	_, err = Parse([]byte("villains:\n  - {id: x, tier: 1, action: FLY}\n"))
	if err == nil || !strings.Contains(err.Error(), "FLY") {
		t.Errorf("expected unknown action error, got %v", err)
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("timers:\n  grace: 4\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Timers.Grace != 4 {
		t.Errorf("Grace = %g, expected 4", cfg.Timers.Grace)
	}
	if cfg.Timers.HitCooldown != 1.3 {
		t.Errorf("HitCooldown = %g, expected default 1.3", cfg.Timers.HitCooldown)
	}
}

func TestLoadEscapeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escape.yaml")
	if err := os.WriteFile(path, []byte("spawn:\n  max_obstacles: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadEscape(path)
	if err != nil {
		t.Fatalf("LoadEscape: %v", err)
	}
	if cfg.Spawn.MaxObstacles != 3 {
		t.Errorf("MaxObstacles = %d, expected 3", cfg.Spawn.MaxObstacles)
	}

	if _, err := LoadEscape(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}
}

func TestTierForLevel(t *testing.T) {
	cfg := DefaultEscapeConfig()
	expected := []int{1, 1, 2, 2, 3, 3, 4, 4, 5, 5}
	for i, want := range expected {
		if got := cfg.TierForLevel(i + 1); got != want {
			t.Errorf("TierForLevel(%d) = %d, expected %d", i+1, got, want)
		}
	}
	for _, v := range cfg.Pool(3) {
		if v.Tier > 2 {
			t.Errorf("level 3 pool contains tier %d villain %s", v.Tier, v.ID)
		}
	}
	if len(cfg.Pool(10)) != len(cfg.Villains) {
		t.Errorf("level 10 pool should contain every villain")
	}
}

func TestSpawnGapMonotonicWithFloor(t *testing.T) {
	cfg := DefaultEscapeConfig()
	d := NewDifficultyManager(cfg.Difficulty)

	prevLo, prevHi := 1e9, 1e9
	for level := 1; level <= LevelCount; level++ {
		for step := 0; step <= 10; step++ {
			lo, hi := d.SpawnGap(level, float64(step)/10)
			if lo > prevLo+1e-12 || hi > prevHi+1e-12 {
				t.Fatalf("gap widened at level %d progress %d/10: [%g,%g] after [%g,%g]", level, step, lo, hi, prevLo, prevHi)
			}
			if lo < cfg.Difficulty.MinFloor || hi < cfg.Difficulty.MaxFloor {
				t.Fatalf("gap below floor at level %d: [%g,%g]", level, lo, hi)
			}
			if hi < lo {
				t.Fatalf("inverted window [%g,%g]", lo, hi)
			}
			prevLo, prevHi = lo, hi
		}
		// progress resets at the next level
		prevLo, prevHi = 1e9, 1e9
	}

	lo, hi := d.SpawnGap(10, 1)
	if lo != cfg.Difficulty.MinFloor || hi != cfg.Difficulty.MaxFloor {
		t.Errorf("late gap = [%g,%g], expected floors [%g,%g]", lo, hi, cfg.Difficulty.MinFloor, cfg.Difficulty.MaxFloor)
	}
}

func TestSpawnGapLevelPressure(t *testing.T) {
	d := NewDifficultyManager(DefaultEscapeConfig().Difficulty)
	for level := 1; level < LevelCount; level++ {
		lo1, hi1 := d.SpawnGap(level, 0.5)
		lo2, hi2 := d.SpawnGap(level+1, 0.5)
		if lo2 > lo1 || hi2 > hi1 {
			t.Errorf("level %d -> %d widened gap", level, level+1)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultEscapeConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	d := NewDifficultyManager(cfg.Difficulty)
	lo0, _ := d.SpawnGap(3, 0)
	lo1, _ := d.SpawnGap(3, 1)
	if lo0 != lo1 {
		t.Errorf("fixed preset should ignore progress: %g vs %g", lo0, lo1)
	}

	easy := DefaultEscapeConfig()
	ApplyPreset(&easy, DifficultyEasy)
	hard := DefaultEscapeConfig()
	ApplyPreset(&hard, DifficultyHard)
	le, _ := NewDifficultyManager(easy.Difficulty).SpawnGap(1, 0)
	lh, _ := NewDifficultyManager(hard.Difficulty).SpawnGap(1, 0)
	if le <= lh {
		t.Errorf("easy gap %g should exceed hard gap %g", le, lh)
	}

	if _, err := ParsePreset("brutal"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
