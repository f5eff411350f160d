package escape

import (
	"math"
	"strconv"

	"github.com/vovakirdan/punch-escape/internal/audio"
	"github.com/vovakirdan/punch-escape/internal/config"
	"github.com/vovakirdan/punch-escape/internal/core"
)

const (
	bannerSeconds = 1.6
	popSeconds    = 0.95
	gemPruneFrac  = 0.075 // gems leave this far past the left edge
)

// overlay is what the renderer draws on top of the track. It mirrors the
// notifications sent to the external UI.
type overlay struct {
	toast     *Notification
	lesson    *Notification
	countdown string
	banner    *Notification
	bannerTok core.Token
	final     *Notification
	pops      []scorePop
}

type scorePop struct {
	x, y  float64
	text  string
	color string
	ttl   float64
}

// frame runs one physics update against the time since the previous one.
// A pausing lesson freezes the track, but the player keeps falling so a
// lesson never starts with the player stuck in the air.
func (g *Game) frame() {
	now := g.queue.Now()
	dt := math.Min((now - g.lastFrame).Seconds(), g.cfg.Physics.MaxFrameDelta)
	g.lastFrame = now
	if g.tutorial.Paused {
		g.player.Update(dt, g.cfg.Physics)
	} else {
		g.update(dt)
	}
	g.publishHUD()
}

// update advances timers, the player and every entity by dt seconds. It
// runs to completion unless the level ends or the run is lost.
func (g *Game) update(dt float64) {
	s := g.session
	cfg := &g.cfg
	lc := cfg.Level(s.Level)

	boost := 1.0
	if s.Timers.Boost > 0 {
		boost = cfg.Physics.BoostMultiplier
	}
	scroll := cfg.Physics.BaseSpeed * lc.SpeedMult * boost
	spd := scroll * g.canvas.W
	lessonSpd := cfg.Physics.BaseSpeed * cfg.Physics.TutorialSpeedFactor * g.canvas.W

	if s.Timers.tick(dt) {
		g.audio.Effect(audio.SoundPowerOff)
	}
	if g.phase == PhasePlaying || (g.phase == PhaseTutorial && cfg.Scoring.ScoreInTutorial) {
		s.addDistance(scroll*cfg.Scoring.ReferenceWidth, dt, cfg.Scoring)
	}

	g.player.Update(dt, cfg.Physics)
	g.scroll += spd * dt

	if g.phase == PhasePlaying {
		g.spawn(dt)
	}

	pc := cfg.Player
	px := g.canvas.W * pc.XFrac
	hitbox := g.player.Hitbox(g.canvas, pc)
	for _, o := range s.Obstacles {
		speed := spd
		if o.Tutorial {
			speed = lessonSpd
		}
		o.X -= speed * dt
		o.Age += dt

		if !o.Passed && o.X+o.W < px {
			o.Passed = true
			if !o.Tutorial {
				s.Beaten++
				s.Score += cfg.Scoring.PassBase + cfg.Scoring.PassPerLevel*s.Level
				g.audio.Effect(audio.SoundPass)
				if s.Beaten >= s.Needed {
					g.levelDone()
					return
				}
			}
		}

		if g.suppression().Blocks() {
			continue
		}
		if hitbox.Intersects(o.HitBox(cfg.Collision)) {
			if g.damage(o.Villain) == DamageFatal {
				return
			}
		}
	}
	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		if o.X >= -2*o.W {
			kept = append(kept, o)
		}
	}
	s.Obstacles = kept

	g.moveGems(dt, spd)

	pops := g.ui.pops[:0]
	for _, p := range g.ui.pops {
		p.ttl -= dt
		p.y -= dt * g.canvas.H * 0.1
		if p.ttl > 0 {
			pops = append(pops, p)
		}
	}
	g.ui.pops = pops
}

// spawn counts the spawn timers down and adds obstacles and gems. The
// non-lesson obstacle count never exceeds the cap.
func (g *Game) spawn(dt float64) {
	s := g.session
	t := &s.Timers
	t.Obstacle -= dt
	if room := g.cfg.Spawn.MaxObstacles - s.liveObstacles(); t.Obstacle <= 0 && room > 0 {
		batch := g.spawner.Obstacles(s.Level, g.canvas)
		if len(batch) > room {
			batch = batch[:room]
		}
		s.Obstacles = append(s.Obstacles, batch...)
		t.Obstacle = g.spawner.ObstacleGap(s.Level, s.Progress())
	}
	t.Gem -= dt
	if t.Gem <= 0 {
		s.Gems = append(s.Gems, g.spawner.Gem(g.canvas))
		s.GemsTotal++
		t.Gem = g.spawner.GemGap()
	}
}

func (g *Game) moveGems(dt, spd float64) {
	s := g.session
	pc := g.cfg.Player
	cx, cy := g.player.Centre(g.canvas, pc)
	reach := g.cfg.Spawn.GemReach * pc.WidthFrac * g.canvas.W

	kept := s.Gems[:0]
	for _, c := range s.Gems {
		c.X -= spd * dt
		c.Age += dt
		if s.Timers.Magnet > 0 {
			str := g.cfg.Spawn.MagnetPull + (g.cfg.Timers.Magnet-s.Timers.Magnet)*g.cfg.Spawn.MagnetRamp
			c.pull(cx, cy, str, dt)
		}
		if !c.Collected && c.reaches(cx, cy, reach) {
			c.Collected = true
			g.collect(c)
		}
		if c.Collected || c.X < -gemPruneFrac*g.canvas.W {
			continue
		}
		kept = append(kept, c)
	}
	s.Gems = kept
}

// collect applies a gem's points and effect.
func (g *Game) collect(c *Collectible) {
	s := g.session
	gem := c.Gem
	s.GemsCollected++
	s.GemLog[gem.ID]++
	s.Score += gem.Points

	text := gem.Name
	if gem.Points > 0 {
		text = "+" + strconv.Itoa(gem.Points)
	}
	g.ui.pops = append(g.ui.pops, scorePop{x: c.X, y: c.Y, text: text, color: gem.Color, ttl: popSeconds})
	g.emit(Notification{Kind: KindScorePop, Text: text, Color: gem.Color, Value: gem.Points})

	switch gem.Effect {
	case config.EffectLife:
		if s.Lives < g.cfg.Player.MaxLives {
			s.Lives++
		}
		g.audio.Effect(audio.SoundGem)
		g.banner("+1 HEART!", gem.Color)
	case config.EffectInvincibility:
		s.Timers.Invincibility = g.cfg.Timers.Invincibility
		g.audio.Effect(audio.SoundInvincibility)
		g.banner("IMMUNITY! "+strconv.Itoa(int(g.cfg.Timers.Invincibility))+"s!", gem.Color)
	case config.EffectMagnet:
		s.Timers.Magnet = g.cfg.Timers.Magnet
		g.audio.Effect(audio.SoundMagnet)
		g.banner("MAGNET ON!", gem.Color)
	default:
		if gem.Rarity < 0.05 {
			g.audio.Effect(audio.SoundRareGem)
			g.banner(gem.Glyph+" "+gem.Name+"! +"+strconv.Itoa(gem.Points), gem.Color)
		} else {
			g.audio.Effect(audio.SoundGem)
		}
	}
	g.tutorial.OnAction(config.TutorialGem)
}

func (g *Game) banner(text, color string) {
	g.emit(Notification{Kind: KindGemBanner, Text: text, Color: color})
}

// emit mirrors n into the overlay and forwards it to the notifier.
func (g *Game) emit(n Notification) {
	switch n.Kind {
	case KindState:
		if g.phase != PhaseOver && g.phase != PhaseWon {
			g.ui.final = nil
		}
	case KindToast:
		g.ui.toast = &n
		if n.Title == "" {
			g.ui.toast = nil
		}
	case KindTutorialStep:
		g.ui.lesson = &n
	case KindTutorialHide:
		g.ui.lesson = nil
	case KindCountdown:
		g.ui.countdown = n.Text
	case KindGemBanner:
		g.ui.banner = &n
		g.queue.Cancel(g.ui.bannerTok)
		g.ui.bannerTok = g.after(bannerSeconds, func() { g.ui.banner = nil })
	case KindGameOver, KindWin:
		g.ui.final = &n
	}
	g.notifier.Notify(n)
}

// publishHUD sends the status line when it changed.
func (g *Game) publishHUD() {
	h := g.session.hud(g.audio.Muted())
	if h == g.lastHUD {
		return
	}
	g.lastHUD = h
	g.emit(Notification{Kind: KindHUD, HUD: &h})
}

func (g *Game) hideToast() {
	g.emit(Notification{Kind: KindToast})
}

func (g *Game) countdown(label string) {
	g.emit(Notification{Kind: KindCountdown, Text: label})
}

// clearField empties the track for a pausing lesson.
func (g *Game) clearField() {
	g.session.clearField()
}

// spawnLesson places a lesson's obstacle or gem.
func (g *Game) spawnLesson(step config.TutorialStep) {
	if step.Spawn == "" {
		return
	}
	s := g.session
	if step.Action == config.TutorialGem {
		if c, ok := g.spawner.LessonGem(step.Spawn, g.canvas); ok {
			s.Gems = append(s.Gems, c)
			s.GemsTotal++
		}
		return
	}
	o, ok := g.spawner.Lesson(step.Spawn, g.canvas)
	if !ok {
		return
	}
	s.Obstacles = append(s.Obstacles, o)
	dir := "↑"
	if o.Villain.Duck {
		dir = "↓"
	}
	g.emit(Notification{Kind: KindTutorialArrow, Icon: dir, Text: o.Villain.Name})
}

func (g *Game) showLesson(index int, step config.TutorialStep) {
	g.audio.Effect(audio.SoundTutorialPing)
	g.emit(Notification{
		Kind:  KindTutorialStep,
		Icon:  step.Icon,
		Text:  step.Text,
		Hint:  step.KeyHint,
		Value: index + 1,
	})
}

func (g *Game) hideLesson() {
	if g.ui.lesson == nil {
		return
	}
	g.emit(Notification{Kind: KindTutorialHide})
}
