package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/punch-escape/internal/audio"
)

// LevelCount is the fixed number of levels in a run.
const LevelCount = 10

// MaxTier is the highest villain tier.
const MaxTier = 5

// Validate checks table invariants. All violations are reported together.
func (c *EscapeConfig) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	// Physics and the jump balance invariant.
	p := c.Physics
	if p.Gravity <= 0 {
		add("physics.gravity must be positive, got %g", p.Gravity)
	}
	if p.JumpVelocity >= 0 || p.DoubleJumpVelocity >= 0 {
		add("physics jump velocities must be negative (upward)")
	}
	if p.MaxFrameDelta <= 0 {
		add("physics.max_frame_delta must be positive")
	}
	if p.Gravity > 0 && p.JumpVelocity < 0 {
		peak := p.JumpPeak()
		if tallest, ok := c.tallest(ActionJump); ok && peak < tallest+p.SafetyMargin {
			add("single jump peak %.3fch does not clear tallest JUMP obstacle %.3fch with margin %.3f", peak, tallest, p.SafetyMargin)
		}
		if tallest, ok := c.tallest(ActionHigh); ok {
			if peak >= tallest {
				add("single jump peak %.3fch clears tallest HIGH obstacle %.3fch without a double jump", peak, tallest)
			}
			if p.DoubleJumpVelocity < 0 && p.DoubleJumpPeak() < tallest+p.SafetyMargin {
				add("double jump peak %.3fch does not clear tallest HIGH obstacle %.3fch", p.DoubleJumpPeak(), tallest)
			}
		}
	}

	// Player and duck geometry: standing must reach the duck band, sliding must not.
	pl := c.Player
	if pl.StartLives < 1 || pl.StartLives > pl.MaxLives {
		add("player.start_lives %d outside 1..%d", pl.StartLives, pl.MaxLives)
	}
	if !(pl.SlideHeight > 0 && pl.SlideHeight < c.Collision.DuckAnchorFac && c.Collision.DuckAnchorFac < 1) {
		add("need 0 < slide_height (%g) < duck_anchor_frac (%g) < 1", pl.SlideHeight, c.Collision.DuckAnchorFac)
	}

	// Villains.
	if len(c.Villains) == 0 {
		add("villains table is empty")
	}
	seen := make(map[string]bool)
	for _, v := range c.Villains {
		if seen[v.ID] {
			add("duplicate villain id %q", v.ID)
		}
		seen[v.ID] = true
		if v.Tier < 1 || v.Tier > MaxTier {
			add("villain %q tier %d outside 1..%d", v.ID, v.Tier, MaxTier)
		}
		if v.HeightFrac <= 0 || v.WidthFrac <= 0 {
			add("villain %q needs positive size", v.ID)
		}
		if v.Duck != (v.Action == ActionDuck) {
			add("villain %q: duck flag must be set exactly for DUCK obstacles", v.ID)
		}
	}

	// Gems.
	if len(c.Gems) == 0 {
		add("gems table is empty")
	}
	sum := 0.0
	gemIDs := make(map[string]bool)
	for _, g := range c.Gems {
		if gemIDs[g.ID] {
			add("duplicate gem id %q", g.ID)
		}
		gemIDs[g.ID] = true
		if g.Rarity <= 0 {
			add("gem %q rarity must be positive", g.ID)
		}
		if g.Points < 0 {
			add("gem %q points must not be negative", g.ID)
		}
		sum += g.Rarity
	}
	if sum > 1+1e-9 {
		add("gem rarities sum to %.4f, must be <= 1", sum)
	}

	// Levels.
	if len(c.Levels) != LevelCount {
		add("levels table has %d entries, expected %d", len(c.Levels), LevelCount)
	}
	for i, l := range c.Levels {
		if l.N != i+1 {
			add("level at index %d has ordinal %d", i, l.N)
		}
		if l.SpeedMult <= 0 || l.Obstacles <= 0 {
			add("level %d needs positive speed and obstacle count", l.N)
		}
		if _, err := audio.ParseMood(l.Mood); err != nil {
			add("level %d: %v", l.N, err)
		}
		if i > 0 {
			prev := c.Levels[i-1]
			if l.SpeedMult < prev.SpeedMult {
				add("level %d speed %.2f below level %d speed %.2f", l.N, l.SpeedMult, prev.N, prev.SpeedMult)
			}
			if l.Obstacles < prev.Obstacles {
				add("level %d obstacle count %d below level %d count %d", l.N, l.Obstacles, prev.N, prev.Obstacles)
			}
		}
	}
	if len(c.Levels) == LevelCount {
		if !stepAfter(c.Levels, 5, func(l Level) float64 { return l.SpeedMult }) {
			add("speed multiplier needs a step change after level 5")
		}
		if !stepAfter(c.Levels, 5, func(l Level) float64 { return float64(l.Obstacles) }) {
			add("obstacle count needs a step change after level 5")
		}
	}

	// Spawn pools.
	if len(c.Spawn.TierThresholds) != MaxTier-1 {
		add("spawn.tier_thresholds needs %d entries", MaxTier-1)
	}
	for i := 1; i < len(c.Spawn.TierThresholds); i++ {
		if c.Spawn.TierThresholds[i] <= c.Spawn.TierThresholds[i-1] {
			add("spawn.tier_thresholds must increase")
		}
	}
	if len(c.Villains) > 0 && len(c.Spawn.TierThresholds) == MaxTier-1 {
		for n := 1; n <= LevelCount; n++ {
			if len(c.Pool(n)) == 0 {
				add("level %d has an empty spawn pool", n)
			}
		}
	}
	if c.Spawn.MaxObstacles < 1 {
		add("spawn.max_obstacles must be at least 1")
	}
	for name, d := range map[string]float64{
		"first_obstacle":    c.Spawn.FirstObstacle,
		"first_gem":         c.Spawn.FirstGem,
		"continue_obstacle": c.Spawn.ContinueObstacle,
		"continue_gem":      c.Spawn.ContinueGem,
	} {
		if d < 0 {
			add("spawn.%s must not be negative", name)
		}
	}
	if c.Spawn.GemGapMin <= 0 || c.Spawn.GemGapMax < c.Spawn.GemGapMin {
		add("spawn gem gap window [%g, %g] invalid", c.Spawn.GemGapMin, c.Spawn.GemGapMax)
	}
	if c.Spawn.TwinTrap != "" && (!seen[c.Spawn.TwinTrap] || !seen[c.Spawn.TwinCompanion]) {
		add("spawn twin trap %q / companion %q not in villains", c.Spawn.TwinTrap, c.Spawn.TwinCompanion)
	}

	// Difficulty floors.
	d := c.Difficulty
	if d.MinFloor <= 0 || d.MaxFloor < d.MinFloor {
		add("difficulty floors invalid: min %g max %g", d.MinFloor, d.MaxFloor)
	}
	if d.MinPerLevel < 0 || d.MinPerProgress < 0 || d.MaxPerLevel < 0 || d.MaxPerProgress < 0 {
		add("difficulty slopes must not be negative")
	}

	// Tutorial.
	for i, s := range c.Tutorial.Steps {
		switch s.Action {
		case TutorialAuto:
			if s.Delay <= 0 {
				add("tutorial step %d: auto step needs a delay", i)
			}
		case TutorialGem:
			if _, ok := c.Gem(s.Spawn); !ok {
				add("tutorial step %d: gem step spawns unknown gem %q", i, s.Spawn)
			}
			if s.Delay <= 0 {
				add("tutorial step %d: gem step needs a timeout", i)
			}
		case TutorialJump, TutorialSlide, TutorialDJump:
			if s.Spawn != "" && !seen[s.Spawn] {
				add("tutorial step %d spawns unknown villain %q", i, s.Spawn)
			}
		default:
			add("tutorial step %d: missing action", i)
		}
	}

	if c.Scoring.ReferenceWidth <= 0 {
		add("scoring.reference_width must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// tallest returns the tallest ground obstacle with the given action.
func (c *EscapeConfig) tallest(action ObstacleAction) (float64, bool) {
	h, ok := 0.0, false
	for _, v := range c.Villains {
		if v.Action == action && !v.Duck {
			h, ok = math.Max(h, v.HeightFrac), true
		}
	}
	return h, ok
}

// stepAfter reports whether the increase from level n to n+1 is at least
// as large as every increase among levels 1..n, and strictly positive.
func stepAfter(levels []Level, n int, f func(Level) float64) bool {
	step := f(levels[n]) - f(levels[n-1])
	if step <= 0 {
		return false
	}
	for i := 1; i < n; i++ {
		if f(levels[i])-f(levels[i-1]) > step {
			return false
		}
	}
	return true
}
