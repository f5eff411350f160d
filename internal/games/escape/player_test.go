package escape

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/punch-escape/internal/config"
)

func defaultCfg() config.EscapeConfig {
	return config.DefaultEscapeConfig()
}

// simulateApex jumps (and optionally double-jumps at the first apex) and
// returns the highest point reached, as a share of canvas height.
func simulateApex(ph config.PhysicsConfig, double bool, dt float64) float64 {
	var p Player
	p.Jump(ph)
	apex := 0.0
	for i := 0; i < 100000; i++ {
		if double && p.JumpCount == 1 && p.VY >= 0 {
			p.Jump(ph)
		}
		p.Update(dt, ph)
		apex = math.Min(apex, p.Y)
		if !p.Jumping {
			break
		}
	}
	return -apex
}

func TestJumpApexMatchesAnalyticPeak(t *testing.T) {
	ph := defaultCfg().Physics
	tests := []struct {
		name     string
		double   bool
		expected float64
	}{
		{"single", false, ph.JumpPeak()},
		{"double", true, ph.DoubleJumpPeak()},
	}
	for _, tt := range tests {
		got := simulateApex(ph, tt.double, 1.0/480)
		if math.Abs(got-tt.expected) > 0.01 {
			t.Errorf("%s apex = %.4f, expected %.4f", tt.name, got, tt.expected)
		}
	}
}

func TestJumpBalanceAgainstObstacles(t *testing.T) {
	cfg := defaultCfg()
	c := Canvas{W: 800, H: 600}
	s := NewSpawner(1, &cfg, config.NewDifficultyManager(cfg.Difficulty))
	px := c.W * cfg.Player.XFrac

	at := func(id string) *Obstacle {
		v, _ := cfg.Villain(id)
		return s.place(v, c, px)
	}

	tests := []struct {
		name     string
		villain  string
		y        float64
		expected bool
	}{
		{"single apex clears tallest JUMP", "boulder", -cfg.Physics.JumpPeak(), false},
		{"single apex clears small JUMP", "peel", -cfg.Physics.JumpPeak(), false},
		{"single apex hits HIGH", "bigbobo", -cfg.Physics.JumpPeak(), true},
		{"single apex hits tallest HIGH", "spike", -cfg.Physics.JumpPeak(), true},
		{"double apex clears HIGH", "bigbobo", -cfg.Physics.DoubleJumpPeak(), false},
		{"standing hits JUMP", "jumper", 0, true},
	}
	for _, tt := range tests {
		p := Player{Y: tt.y, Jumping: tt.y < 0}
		got := p.Hitbox(c, cfg.Player).Intersects(at(tt.villain).HitBox(cfg.Collision))
		if got != tt.expected {
			t.Errorf("%s: hit = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}

func TestJumpCountLimit(t *testing.T) {
	ph := defaultCfg().Physics
	var p Player
	if n := p.Jump(ph); n != 1 || p.VY != ph.JumpVelocity {
		t.Errorf("first jump = %d vy %.2f, expected 1 vy %.2f", n, p.VY, ph.JumpVelocity)
	}
	if n := p.Jump(ph); n != 2 || p.VY != ph.DoubleJumpVelocity {
		t.Errorf("second jump = %d vy %.2f, expected 2 vy %.2f", n, p.VY, ph.DoubleJumpVelocity)
	}
	if n := p.Jump(ph); n != 0 {
		t.Errorf("third jump = %d, expected refused", n)
	}
}

func TestGroundSnap(t *testing.T) {
	ph := defaultCfg().Physics
	var p Player
	p.Jump(ph)
	p.Jump(ph)
	for i := 0; i < 1000 && p.Jumping; i++ {
		p.Update(0.05, ph)
	}
	if p.Y != 0 || p.VY != 0 || p.Jumping || p.JumpCount != 0 {
		t.Errorf("after landing y=%v vy=%v jumping=%v count=%d, expected all reset", p.Y, p.VY, p.Jumping, p.JumpCount)
	}
}

func TestIntegrationContinuous(t *testing.T) {
	ph := defaultCfg().Physics
	rng := rand.New(rand.NewSource(7))
	var p Player
	for i := 0; i < 5000; i++ {
		if rng.Intn(20) == 0 {
			p.Jump(ph)
		}
		dt := rng.Float64() * ph.MaxFrameDelta
		before, vy := p.Y, p.VY
		p.Update(dt, ph)
		bound := (math.Abs(vy)+ph.Gravity*dt)*dt + 1e-12
		if math.Abs(p.Y-before) > bound {
			t.Fatalf("step %d moved %.5f in %.4fs, bound %.5f", i, math.Abs(p.Y-before), dt, bound)
		}
		if p.Y > 0 {
			t.Fatalf("step %d: player below ground (y=%v)", i, p.Y)
		}
	}
}

func TestSlide(t *testing.T) {
	cfg := defaultCfg()
	c := Canvas{W: 80, H: 24}
	var p Player

	standing := p.Hitbox(c, cfg.Player)
	if !p.Slide(true, cfg.Player.SlideSeconds) {
		t.Error("slide on the ground should start")
	}
	if p.Slide(true, cfg.Player.SlideSeconds) {
		t.Error("holding slide should not restart it")
	}
	sliding := p.Hitbox(c, cfg.Player)
	if math.Abs(sliding.H-standing.H*cfg.Player.SlideHeight) > 1e-9 {
		t.Errorf("slide height = %v, expected %v", sliding.H, standing.H*cfg.Player.SlideHeight)
	}
	if math.Abs(sliding.Bottom()-standing.Bottom()) > 1e-9 {
		t.Errorf("slide bottom = %v, expected feet on ground at %v", sliding.Bottom(), standing.Bottom())
	}

	p.Update(cfg.Player.SlideSeconds+0.01, cfg.Physics)
	if p.Sliding {
		t.Error("slide should release after its timer")
	}

	p.Jump(cfg.Physics)
	if !p.Slide(true, cfg.Player.SlideSeconds) || !p.Sliding {
		t.Error("slide should start while airborne")
	}
}

func TestJumpCancelsSlide(t *testing.T) {
	cfg := defaultCfg()
	var p Player
	p.Slide(true, 1)
	p.Jump(cfg.Physics)
	if p.Sliding {
		t.Error("jump should end the slide")
	}
}
