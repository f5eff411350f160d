package escape

import (
	"github.com/vovakirdan/punch-escape/internal/config"
	"github.com/vovakirdan/punch-escape/internal/core"
)

// Canvas is the drawing surface size in cells. All gameplay geometry is
// expressed as fractions of it, so a resize never moves the player off the
// ground or resets the run.
type Canvas struct {
	W, H float64
}

// Ground returns the y of the ground line.
func (c Canvas) Ground(p config.PlayerConfig) float64 {
	return c.H * p.GroundFrac
}

// Player is the runner. Y is the foot position as a share of canvas height
// above the ground line (0 on the ground, negative is up); velocity uses the
// same unit per second.
type Player struct {
	Y          float64
	VY         float64
	Jumping    bool
	JumpCount  int
	Sliding    bool
	SlideTimer float64

	legClock float64
	LegFrame int
}

// Reset puts the player back on the ground.
func (p *Player) Reset() {
	*p = Player{}
}

// OnGround reports whether the player stands on the ground line.
func (p *Player) OnGround() bool {
	return p.Y >= 0 && !p.Jumping
}

// Jump applies a jump impulse. The first jump uses the full velocity, the
// second a weaker one; a third is refused. It returns the new jump count,
// or 0 when nothing happened.
func (p *Player) Jump(ph config.PhysicsConfig) int {
	if p.JumpCount >= 2 {
		return 0
	}
	if p.JumpCount == 0 {
		p.VY = ph.JumpVelocity
	} else {
		p.VY = ph.DoubleJumpVelocity
	}
	p.JumpCount++
	p.Jumping = true
	p.Sliding = false
	p.SlideTimer = 0
	return p.JumpCount
}

// Slide starts or releases a slide. A slide started in the air tucks the
// player in for the slide's duration. It reports whether a new slide began.
func (p *Player) Slide(on bool, seconds float64) bool {
	if !on {
		p.Sliding = false
		p.SlideTimer = 0
		return false
	}
	started := !p.Sliding
	p.Sliding = true
	p.SlideTimer = seconds
	return started
}

// Update integrates one frame: gravity, ground snap, slide release and the
// leg animation. dt must already be clamped.
func (p *Player) Update(dt float64, ph config.PhysicsConfig) {
	if p.Sliding {
		p.SlideTimer -= dt
		if p.SlideTimer <= 0 {
			p.Sliding = false
			p.SlideTimer = 0
		}
	}

	if p.Jumping || p.Y < 0 {
		p.VY += ph.Gravity * dt
		p.Y += p.VY * dt
		if p.Y >= 0 {
			p.Y = 0
			p.VY = 0
			p.Jumping = false
			p.JumpCount = 0
		}
	}

	p.legClock += dt
	if p.legClock >= 0.12 {
		p.legClock = 0
		p.LegFrame = (p.LegFrame + 1) % 4
	}
}

// Size returns the drawn width and standing height in cells.
func (p *Player) Size(c Canvas, pc config.PlayerConfig) (w, h float64) {
	return c.W * pc.WidthFrac, c.H * pc.HeightFrac
}

// Body returns the drawn rectangle. Sliding shortens it to the slide height.
func (p *Player) Body(c Canvas, pc config.PlayerConfig) core.Box {
	w, h := p.Size(c, pc)
	if p.Sliding {
		h *= pc.SlideHeight
	}
	foot := c.Ground(pc) + p.Y*c.H
	return core.NewBox(c.W*pc.XFrac, foot-h, w, h)
}

// Hitbox returns the collision rectangle: the body narrowed horizontally.
func (p *Player) Hitbox(c Canvas, pc config.PlayerConfig) core.Box {
	return p.Body(c, pc).Inset(pc.HitboxInset)
}

// Centre returns the standing-body centre used for gem pickup.
func (p *Player) Centre(c Canvas, pc config.PlayerConfig) (x, y float64) {
	w, h := p.Size(c, pc)
	foot := c.Ground(pc) + p.Y*c.H
	return c.W*pc.XFrac + w/2, foot - h/2
}
