package escape

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/punch-escape/internal/config"
)

// Spawner creates obstacles and gems. It owns the run's random source so
// a seeded run is reproducible.
type Spawner struct {
	rng        *rand.Rand
	cfg        *config.EscapeConfig
	difficulty *config.DifficultyManager
}

// NewSpawner creates a spawner over cfg seeded with seed.
func NewSpawner(seed int64, cfg *config.EscapeConfig, diff *config.DifficultyManager) *Spawner {
	return &Spawner{
		rng:        rand.New(rand.NewSource(seed)),
		cfg:        cfg,
		difficulty: diff,
	}
}

// Obstacles spawns one villain drawn uniformly from the level's pool, just
// past the right edge. A twin trap brings its companion along behind it.
func (s *Spawner) Obstacles(level int, c Canvas) []*Obstacle {
	pool := s.cfg.Pool(level)
	v := pool[s.rng.Intn(len(pool))]
	o := s.place(v, c, c.W+0.5*v.WidthFrac*c.W)
	if slices.Contains(s.cfg.Spawn.BobbingVillains, v.ID) {
		o.BobAmp = s.cfg.Spawn.BobAmplitude * c.H
	}
	out := []*Obstacle{o}
	if v.ID == s.cfg.Spawn.TwinTrap {
		if comp, ok := s.cfg.Villain(s.cfg.Spawn.TwinCompanion); ok {
			out = append(out, s.place(comp, c, o.X+s.cfg.Spawn.TwinOffset*c.W))
		}
	}
	return out
}

// Lesson places a tutorial obstacle at the fixed lesson position.
func (s *Spawner) Lesson(id string, c Canvas) (*Obstacle, bool) {
	v, ok := s.cfg.Villain(id)
	if !ok {
		return nil, false
	}
	o := s.place(v, c, s.cfg.Tutorial.SpawnX*c.W)
	o.Tutorial = true
	return o, true
}

func (s *Spawner) place(v config.Villain, c Canvas, x float64) *Obstacle {
	pc := s.cfg.Player
	ground := c.Ground(pc)
	base := ground
	if v.Duck {
		base = ground - s.cfg.Collision.DuckAnchorFac*pc.HeightFrac*c.H
	}
	return &Obstacle{
		Villain: v,
		X:       x,
		BaseY:   base,
		W:       v.WidthFrac * c.W,
		H:       v.HeightFrac * c.H,
		BobFreq: 2.2 + s.rng.Float64(),
	}
}

// ObstacleGap draws the seconds until the next obstacle from the
// difficulty window for the level and quota progress.
func (s *Spawner) ObstacleGap(level int, progress float64) float64 {
	lo, hi := s.difficulty.SpawnGap(level, progress)
	return lo + s.rng.Float64()*(hi-lo)
}

// GemGap draws the seconds until the next gem.
func (s *Spawner) GemGap() float64 {
	sp := s.cfg.Spawn
	return sp.GemGapMin + s.rng.Float64()*(sp.GemGapMax-sp.GemGapMin)
}

// DrawGem picks an archetype with a cumulative-sum draw against a single
// uniform number. If the rarities sum to less than one, the remainder
// falls to the first gem.
func (s *Spawner) DrawGem() config.Gem {
	return pickGem(s.cfg.Gems, s.rng.Float64())
}

func pickGem(gems []config.Gem, r float64) config.Gem {
	cum := 0.0
	for _, g := range gems {
		cum += g.Rarity
		if r < cum {
			return g
		}
	}
	return gems[0]
}

// Gem spawns a drawn gem just past the right edge at a random height in
// the band the player can reach.
func (s *Spawner) Gem(c Canvas) *Collectible {
	pc := s.cfg.Player
	ph := pc.HeightFrac * c.H
	r := s.cfg.Spawn.GemRadius * c.H
	return &Collectible{
		Gem: s.DrawGem(),
		X:   c.W + r,
		Y:   c.Ground(pc) - 0.35*ph - s.rng.Float64()*0.85*ph,
		R:   r,
		Age: s.rng.Float64() * 6.28,
	}
}

// LessonGem places the tutorial gem a few player widths ahead at mid height.
func (s *Spawner) LessonGem(id string, c Canvas) (*Collectible, bool) {
	g, ok := s.cfg.Gem(id)
	if !ok {
		return nil, false
	}
	pc := s.cfg.Player
	return &Collectible{
		Gem:      g,
		X:        c.W*pc.XFrac + s.cfg.Tutorial.CoinAhead*pc.WidthFrac*c.W,
		Y:        c.Ground(pc) - 0.5*pc.HeightFrac*c.H,
		R:        s.cfg.Tutorial.CoinRadius * c.H,
		Tutorial: true,
	}, true
}

// Pick returns a uniformly random element, used for flavour text.
func (s *Spawner) Pick(n int) int {
	return s.rng.Intn(n)
}
