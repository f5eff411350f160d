package escape

import (
	"math"
	"testing"

	"github.com/vovakirdan/punch-escape/internal/config"
)

func newTestSpawner(seed int64) (*Spawner, *config.EscapeConfig) {
	cfg := defaultCfg()
	return NewSpawner(seed, &cfg, config.NewDifficultyManager(cfg.Difficulty)), &cfg
}

func TestGemDrawConverges(t *testing.T) {
	s, cfg := newTestSpawner(42)
	const n = 100000
	counts := make(map[string]int)
	for range n {
		counts[s.DrawGem().ID]++
	}
	for _, g := range cfg.Gems {
		got := float64(counts[g.ID]) / n
		if math.Abs(got-g.Rarity) > 0.01 {
			t.Errorf("gem %s frequency = %.4f, expected %.2f", g.ID, got, g.Rarity)
		}
	}
	if counts["diamond"] == 0 {
		t.Error("rarest gem never drawn")
	}
}

func TestPickGemBoundaries(t *testing.T) {
	cfg := defaultCfg()
	tests := []struct {
		r        float64
		expected string
	}{
		{0, "coin"},
		{0.4999, "coin"},
		{0.5, "banana"},
		{0.995, "diamond"},
		{0.99999, "diamond"},
	}
	for _, tt := range tests {
		if got := pickGem(cfg.Gems, tt.r).ID; got != tt.expected {
			t.Errorf("pickGem(%v) = %s, expected %s", tt.r, got, tt.expected)
		}
	}

	short := []config.Gem{{ID: "a", Rarity: 0.2}, {ID: "b", Rarity: 0.3}}
	if got := pickGem(short, 0.9).ID; got != "a" {
		t.Errorf("draw past the rarity sum = %s, expected fallback to first gem", got)
	}
}

func TestObstaclesRespectTierPool(t *testing.T) {
	s, cfg := newTestSpawner(3)
	c := Canvas{W: 80, H: 24}
	for level := 1; level <= config.LevelCount; level++ {
		tier := cfg.TierForLevel(level)
		for range 200 {
			for _, o := range s.Obstacles(level, c) {
				if o.Villain.ID == cfg.Spawn.TwinCompanion {
					continue
				}
				if o.Villain.Tier > tier {
					t.Fatalf("level %d spawned %s (tier %d), max tier %d", level, o.Villain.ID, o.Villain.Tier, tier)
				}
			}
		}
	}
}

func TestObstacleSpawnPlacement(t *testing.T) {
	s, cfg := newTestSpawner(5)
	c := Canvas{W: 100, H: 50}
	ground := c.Ground(cfg.Player)
	for range 300 {
		batch := s.Obstacles(10, c)
		o := batch[0]
		if o.X <= c.W {
			t.Fatalf("%s spawned on screen at x=%v", o.Villain.ID, o.X)
		}
		if o.Villain.Duck {
			expected := ground - cfg.Collision.DuckAnchorFac*cfg.Player.HeightFrac*c.H
			if math.Abs(o.BaseY-expected) > 1e-9 {
				t.Errorf("duck baseline = %v, expected %v", o.BaseY, expected)
			}
		} else if o.BaseY != ground {
			t.Errorf("%s baseline = %v, expected ground %v", o.Villain.ID, o.BaseY, ground)
		}

		bobs := o.Villain.ID == "rock" || o.Villain.ID == "boulder"
		if bobs != (o.BobAmp > 0) {
			t.Errorf("%s bob amplitude = %v", o.Villain.ID, o.BobAmp)
		}

		if o.Villain.ID == cfg.Spawn.TwinTrap {
			if len(batch) != 2 || batch[1].Villain.ID != cfg.Spawn.TwinCompanion {
				t.Fatalf("twin trap batch = %d obstacles, expected trap + companion", len(batch))
			}
			gap := batch[1].X - o.X
			if math.Abs(gap-cfg.Spawn.TwinOffset*c.W) > 1e-9 {
				t.Errorf("twin gap = %v, expected %v", gap, cfg.Spawn.TwinOffset*c.W)
			}
		} else if len(batch) != 1 {
			t.Errorf("%s batch = %d obstacles, expected 1", o.Villain.ID, len(batch))
		}
	}
}

func TestBobIsVisualOnly(t *testing.T) {
	cfg := defaultCfg()
	v, _ := cfg.Villain("rock")
	o := &Obstacle{Villain: v, X: 10, BaseY: 20, W: 4, H: 4, BobAmp: 1, BobFreq: 3}
	before := o.HitBox(cfg.Collision)
	o.Age = 0.5
	if o.DrawY() == o.BaseY {
		t.Error("bobbing obstacle should move visually")
	}
	if o.HitBox(cfg.Collision) != before {
		t.Error("bob must not move the collision box")
	}
}

func TestGemSpawnBand(t *testing.T) {
	s, cfg := newTestSpawner(9)
	c := Canvas{W: 80, H: 24}
	ground := c.Ground(cfg.Player)
	ph := cfg.Player.HeightFrac * c.H
	for range 1000 {
		g := s.Gem(c)
		if g.Y > ground-0.35*ph || g.Y < ground-1.2*ph {
			t.Fatalf("gem y = %v outside band [%v, %v]", g.Y, ground-1.2*ph, ground-0.35*ph)
		}
		if g.X <= c.W {
			t.Fatalf("gem spawned on screen at x=%v", g.X)
		}
	}
}

func TestGapsWithinWindow(t *testing.T) {
	s, cfg := newTestSpawner(11)
	for range 1000 {
		g := s.GemGap()
		if g < cfg.Spawn.GemGapMin || g > cfg.Spawn.GemGapMax {
			t.Fatalf("gem gap %v outside [%v, %v]", g, cfg.Spawn.GemGapMin, cfg.Spawn.GemGapMax)
		}
		lo, hi := s.difficulty.SpawnGap(4, 0.5)
		o := s.ObstacleGap(4, 0.5)
		if o < lo || o > hi {
			t.Fatalf("obstacle gap %v outside [%v, %v]", o, lo, hi)
		}
	}
}

func TestMagnetPullDoesNotOvershoot(t *testing.T) {
	c := &Collectible{X: 10, Y: 10}
	c.pull(0, 0, 30, 0.05)
	if c.X != 0 || c.Y != 0 {
		t.Errorf("pull landed at (%v, %v), expected the target", c.X, c.Y)
	}
	c = &Collectible{X: 10, Y: 0}
	c.pull(0, 0, 14, 0.01)
	if math.Abs(c.X-8.6) > 1e-9 {
		t.Errorf("pull x = %v, expected 8.6", c.X)
	}
}
