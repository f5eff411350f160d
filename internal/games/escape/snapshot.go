package escape

import "math"

// Snapshot is a read-only view of the game for status endpoints and
// determinism tests. Positions are in canvas fractions so they survive a
// resize.
type Snapshot struct {
	Phase        string         `json:"phase"`
	HUD          HUD            `json:"hud"`
	Best         int            `json:"best"`
	BestLevel    int            `json:"best_level"`
	Plays        int            `json:"plays"`
	Suppression  string         `json:"suppression"`
	TutorialStep int            `json:"tutorial_step"`
	PlayerY      float64        `json:"player_y"`
	Sliding      bool           `json:"sliding"`
	JumpCount    int            `json:"jump_count"`
	Obstacles    []ObstacleView `json:"obstacles"`
	Gems         []GemView      `json:"gems"`
}

// ObstacleView is one obstacle in a snapshot.
type ObstacleView struct {
	Villain  string  `json:"villain"`
	X        float64 `json:"x"`
	Tutorial bool    `json:"tutorial,omitempty"`
	Passed   bool    `json:"passed,omitempty"`
}

// GemView is one gem in a snapshot.
type GemView struct {
	Gem string  `json:"gem"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	snap := Snapshot{
		Phase:        g.phase.String(),
		HUD:          s.hud(g.audio.Muted()),
		Best:         g.best.Score,
		BestLevel:    g.best.Level,
		Plays:        g.best.Plays,
		Suppression:  g.suppression().String(),
		TutorialStep: -1,
		PlayerY:      g.player.Y,
		Sliding:      g.player.Sliding,
		JumpCount:    g.player.JumpCount,
		Obstacles:    make([]ObstacleView, len(s.Obstacles)),
		Gems:         make([]GemView, len(s.Gems)),
	}
	if g.tutorial.Active {
		snap.TutorialStep = g.tutorial.Step
	}
	for i, o := range s.Obstacles {
		snap.Obstacles[i] = ObstacleView{
			Villain:  o.Villain.ID,
			X:        o.X / g.canvas.W,
			Tutorial: o.Tutorial,
			Passed:   o.Passed,
		}
	}
	for i, c := range s.Gems {
		snap.Gems[i] = GemView{Gem: c.Gem.ID, X: c.X / g.canvas.W, Y: c.Y / g.canvas.H}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(len(snap.Phase))
	mix := func(v uint64) { h = h*31 + v }
	for _, v := range []int{snap.HUD.Score, snap.HUD.Lives, snap.HUD.Level, snap.HUD.Beaten, snap.HUD.Gems} {
		mix(uint64(v)) //#nosec G115 -- hash computation
	}
	mix(math.Float64bits(snap.PlayerY))
	for _, o := range snap.Obstacles {
		mix(uint64(len(o.Villain)))
		mix(math.Float64bits(o.X))
	}
	for _, c := range snap.Gems {
		mix(uint64(len(c.Gem)))
		mix(math.Float64bits(c.X))
		mix(math.Float64bits(c.Y))
	}
	return h
}
