package escape

import (
	"math"

	"github.com/vovakirdan/punch-escape/internal/config"
	"github.com/vovakirdan/punch-escape/internal/core"
)

// Obstacle is a villain on the track. X is the left edge in cells.
// BaseY is the collision baseline: the ground line for JUMP/HIGH
// obstacles and the leaf bottom for DUCK ones. Bobbing only moves the
// drawn position.
type Obstacle struct {
	Villain  config.Villain
	X        float64
	BaseY    float64
	W, H     float64
	BobAmp   float64
	BobFreq  float64
	Age      float64
	Passed   bool
	Tutorial bool
}

// DrawY returns the visual baseline including the bob offset.
func (o *Obstacle) DrawY() float64 {
	if o.BobAmp == 0 {
		return o.BaseY
	}
	return o.BaseY + math.Sin(o.Age*o.BobFreq)*o.BobAmp
}

// HitBox returns the obstacle's collision rectangle. Ground obstacles are
// narrowed on both sides over their full height; hanging ones only hit in
// a thin band at their tip that overhangs their width.
func (o *Obstacle) HitBox(cc config.CollisionConfig) core.Box {
	if o.Villain.Duck {
		band := o.H * cc.DuckBand
		m := o.W * cc.DuckOverhang
		return core.NewBox(o.X-m, o.BaseY-band, o.W+2*m, band)
	}
	return core.NewBox(o.X, o.BaseY-o.H, o.W, o.H).Inset(cc.GroundInset)
}

// Collectible is a gem on the track, centred at X, Y.
type Collectible struct {
	Gem       config.Gem
	X, Y, R   float64
	Age       float64
	Collected bool
	Tutorial  bool
}

// reaches reports whether a point lies within reach of the gem.
func (c *Collectible) reaches(px, py, reach float64) bool {
	dx, dy := px-c.X, py-c.Y
	return math.Hypot(dx, dy) < c.R+reach
}

// pull moves the gem towards a point, closing strength*dt of the distance.
// The step never overshoots the point.
func (c *Collectible) pull(px, py, strength, dt float64) {
	k := math.Min(strength*dt, 1)
	c.X += (px - c.X) * k
	c.Y += (py - c.Y) * k
}
