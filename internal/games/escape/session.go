package escape

import (
	"math"
	"time"

	"github.com/vovakirdan/punch-escape/internal/config"
)

// Timers are the per-run countdowns, in seconds. Each one is clamped at zero.
type Timers struct {
	HitCooldown   float64
	Invincibility float64
	Magnet        float64
	Boost         float64
	Grace         float64
	Obstacle      float64 // until the next obstacle spawn
	Gem           float64 // until the next gem spawn
}

// tick counts the effect timers down. It reports whether invincibility ran
// out during this tick.
func (t *Timers) tick(dt float64) (invincibilityEnded bool) {
	wasInvincible := t.Invincibility > 0
	t.HitCooldown = math.Max(0, t.HitCooldown-dt)
	t.Invincibility = math.Max(0, t.Invincibility-dt)
	t.Magnet = math.Max(0, t.Magnet-dt)
	t.Boost = math.Max(0, t.Boost-dt)
	t.Grace = math.Max(0, t.Grace-dt)
	return wasInvincible && t.Invincibility == 0
}

// Session is the state of one run: counters, timers and the entities on
// the track.
type Session struct {
	RunID         string
	Score         int
	Lives         int
	Level         int
	Beaten        int
	Needed        int
	GemsCollected int
	GemsTotal     int
	GemLog        map[string]int
	Dev           bool
	StartedAt     time.Duration
	KilledBy      string

	Timers    Timers
	Obstacles []*Obstacle
	Gems      []*Collectible

	scoreFrac float64
}

func newSession(cfg *config.EscapeConfig) *Session {
	return &Session{
		Lives:  cfg.Player.StartLives,
		Level:  1,
		GemLog: make(map[string]int),
	}
}

// Progress returns the share of the level quota beaten so far.
func (s *Session) Progress() float64 {
	if s.Needed <= 0 {
		return 0
	}
	return float64(s.Beaten) / float64(s.Needed)
}

// liveObstacles counts the non-lesson obstacles on the track.
func (s *Session) liveObstacles() int {
	n := 0
	for _, o := range s.Obstacles {
		if !o.Tutorial {
			n++
		}
	}
	return n
}

func (s *Session) clearField() {
	s.Obstacles = s.Obstacles[:0]
	s.Gems = s.Gems[:0]
}

// addDistance accrues the distance score. speed is the scroll speed in
// reference units per second, so the total does not depend on the canvas
// size. Fractions carry over between frames.
func (s *Session) addDistance(speed, dt float64, sc config.ScoringConfig) {
	s.scoreFrac += speed*dt*sc.DistanceRate + float64(s.Level)*dt*sc.LevelRate
	whole := math.Floor(s.scoreFrac)
	s.Score += int(whole)
	s.scoreFrac -= whole
}

// hud snapshots the status line.
func (s *Session) hud(muted bool) HUD {
	return HUD{
		Score:      s.Score,
		Lives:      s.Lives,
		Level:      s.Level,
		Beaten:     s.Beaten,
		Needed:     s.Needed,
		Gems:       s.GemsCollected,
		GraceSecs:  int(math.Ceil(s.Timers.Grace)),
		Invincible: s.Timers.Invincibility > 0,
		Magnet:     s.Timers.Magnet > 0,
		Dev:        s.Dev,
		Muted:      muted,
	}
}
