// Package escape implements Punch's Great Escape, a ten-level side-scrolling
// runner. The player jumps, double-jumps and slides past villains while
// collecting gems; level one opens with a scripted tutorial.
//
// The game is single-threaded. The host calls Advance once per frame with
// the elapsed wall time and the actions that arrived since the last frame;
// every deferred action (tutorial advances, countdowns, level intros, music
// steps) is a task on a virtual-clock queue advanced by the same call.
package escape

import (
	"io"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/punch-escape/internal/audio"
	"github.com/vovakirdan/punch-escape/internal/config"
	"github.com/vovakirdan/punch-escape/internal/core"
)

// Phase is the top-level game state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTutorial
	PhaseCountdown
	PhasePlaying
	PhasePaused
	PhaseTransition
	PhaseOver
	PhaseWon
)

var phaseNames = [...]string{
	"idle", "tutorial", "countdown", "playing", "paused", "transition", "over", "won",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Game implements the runner.
type Game struct {
	cfg        config.EscapeConfig
	runtime    core.RuntimeConfig
	canvas     Canvas
	queue      *core.TaskQueue
	audio      *audio.Engine
	spawner    *Spawner
	difficulty *config.DifficultyManager
	tutorial   *Tutorial
	records    Records
	notifier   Notifier
	logger     *log.Logger

	phase    Phase
	player   Player
	session  *Session
	best     Best
	resuming bool
	endMusic core.Token

	// frame request: the update runs only while armed; lastFrame is the
	// virtual time of the previous update.
	frameArmed bool
	lastFrame  time.Duration

	ui      overlay
	lastHUD HUD
	scroll  float64 // cells scrolled, for the skyline

	audioOut audio.Output
	muted    bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for state changes and swallowed failures.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithNotifier sets the receiver of HUD and banner updates.
func WithNotifier(n Notifier) Option {
	return func(g *Game) { g.notifier = n }
}

// WithRecords sets the persistence backend.
func WithRecords(r Records) Option {
	return func(g *Game) { g.records = r }
}

// WithAudio sets the audio backend.
func WithAudio(out audio.Output) Option {
	return func(g *Game) { g.audioOut = out }
}

// WithMuted starts with music muted. Effects always play.
func WithMuted(m bool) Option {
	return func(g *Game) { g.muted = m }
}

// New creates a game in the idle state. cfg must already be validated.
func New(cfg config.EscapeConfig, runtime core.RuntimeConfig, opts ...Option) *Game {
	g := &Game{
		cfg:     cfg,
		runtime: runtime,
		queue:   core.NewTaskQueue(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.records == nil {
		g.records = NewMemoryRecords()
	}
	if g.notifier == nil {
		g.notifier = Notifiers(nil)
	}

	g.canvas = Canvas{W: float64(runtime.ScreenW), H: float64(runtime.ScreenH)}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.spawner = NewSpawner(runtime.Seed, &g.cfg, g.difficulty)
	g.tutorial = newTutorial(g.cfg.Tutorial, g.queue, g)
	g.audio = audio.NewEngine(g.audioOut, g.queue,
		audio.WithLogger(g.logger.WithPrefix("audio")),
		audio.WithMuted(g.muted))
	g.session = newSession(&g.cfg)

	best, err := g.records.LoadBest()
	if err != nil {
		g.logger.Warn("load records", "err", err)
		best = Best{Level: 1}
	}
	g.best = best
	return g
}

// Advance handles the frame's input, runs every task due within dt, then
// runs one physics update if the frame loop is armed.
func (g *Game) Advance(dt time.Duration, in core.InputFrame) core.StepResult {
	quit := false
	for _, a := range in.Actions() {
		if a == core.ActionQuit {
			quit = true
			continue
		}
		g.handle(a)
	}
	if dt > 0 {
		g.queue.Advance(dt)
	}
	if g.frameArmed {
		g.frame()
	}
	return core.StepResult{State: g.State(), Quit: quit}
}

func (g *Game) handle(a core.Action) {
	switch a {
	case core.ActionJump:
		if g.running() {
			g.jump()
		}
	case core.ActionSlideStart:
		if g.running() {
			g.slide(true)
		}
	case core.ActionSlideEnd:
		g.player.Slide(false, 0)
	case core.ActionBoostStart:
		if g.running() {
			g.session.Timers.Boost = g.cfg.Timers.Boost
		}
	case core.ActionBoostEnd:
		g.session.Timers.Boost = 0
	case core.ActionDebug:
		if g.running() {
			g.ToggleDebug()
		}
	case core.ActionMute:
		g.ToggleMute()
	case core.ActionPause:
		switch g.phase {
		case PhasePlaying:
			g.Pause()
		case PhasePaused:
			g.Resume()
		}
	case core.ActionConfirm:
		switch g.phase {
		case PhaseIdle:
			g.Start()
		case PhasePaused:
			g.Resume()
		case PhaseOver:
			g.Continue()
		case PhaseWon:
			g.Restart()
		}
	case core.ActionRestart:
		switch g.phase {
		case PhasePaused, PhaseOver, PhaseWon:
			g.Restart()
		}
	case core.ActionBack:
		if g.phase == PhasePaused {
			g.Abandon()
		}
	}
}

// running reports whether the player is on the track and controllable.
func (g *Game) running() bool {
	switch g.phase {
	case PhaseTutorial, PhaseCountdown, PhasePlaying:
		return true
	}
	return false
}

func (g *Game) jump() {
	n := g.player.Jump(g.cfg.Physics)
	switch n {
	case 1:
		g.audio.Effect(audio.SoundJump)
		g.tutorial.OnAction(config.TutorialJump)
	case 2:
		g.audio.Effect(audio.SoundDoubleJump)
		g.tutorial.OnAction(config.TutorialDJump)
	}
}

func (g *Game) slide(on bool) {
	started := g.player.Slide(on, g.cfg.Player.SlideSeconds)
	if !on {
		return
	}
	if started && g.player.OnGround() {
		g.audio.Effect(audio.SoundSlide)
	}
	g.tutorial.OnAction(config.TutorialSlide)
}

// setPhase switches state and tells the UI.
func (g *Game) setPhase(p Phase) {
	if g.phase == p {
		return
	}
	g.logger.Debug("phase", "from", g.phase, "to", p, "level", g.session.Level)
	g.phase = p
	g.emit(Notification{Kind: KindState, Phase: p.String()})
}

// startFrame arms the frame loop from the current virtual time, so time
// spent while it was stopped is never charged to physics.
func (g *Game) startFrame() {
	g.frameArmed = true
	g.lastFrame = g.queue.Now()
}

// stopFrame cancels the pending frame request.
func (g *Game) stopFrame() {
	g.frameArmed = false
}

func (g *Game) after(secs float64, fn func()) core.Token {
	return g.queue.After(seconds(secs), fn)
}

// Start begins a fresh run from level one. Only valid when idle.
func (g *Game) Start() {
	if g.phase != PhaseIdle {
		return
	}
	g.session = newSession(&g.cfg)
	g.session.RunID = uuid.NewString()
	g.session.StartedAt = g.queue.Now()
	g.player.Reset()
	if plays, err := g.records.IncrementPlays(); err != nil {
		g.logger.Warn("increment plays", "err", err)
	} else {
		g.best.Plays = plays
	}
	g.logger.Info("run started", "run", g.session.RunID)
	g.setPhase(PhaseTransition)
	g.initLevel(1)
}

// initLevel resets the track for level lv and schedules its start after
// the intro toast.
func (g *Game) initLevel(lv int) {
	s := g.session
	lc := g.cfg.Level(lv)
	s.Level = lv
	s.Beaten = 0
	s.Needed = lc.Obstacles
	s.clearField()
	s.Timers = Timers{
		Obstacle: g.cfg.Spawn.FirstObstacle,
		Gem:      g.cfg.Spawn.FirstGem,
	}
	g.player.Reset()
	g.publishHUD()

	mood, _ := audio.ParseMood(lc.Mood)
	g.emit(Notification{
		Kind:   KindToast,
		Title:  "LEVEL " + strconv.Itoa(lv),
		Text:   lc.Name,
		Detail: lc.Desc,
		Hint:   mood.Label(),
	})
	g.audio.Effect(audio.SoundLevelUp)
	g.logger.Debug("level", "n", lv, "name", lc.Name, "needed", s.Needed)

	g.after(g.cfg.Timers.LevelIntro, func() {
		g.hideToast()
		g.audio.StopMusic()
		g.audio.PlayMusic(mood)
		if lv == 1 {
			g.setPhase(PhaseTutorial)
			g.startFrame()
			g.tutorial.Start()
			return
		}
		g.setPhase(PhasePlaying)
		g.startFrame()
	})
}

// Pause stops the frame loop and the music.
func (g *Game) Pause() {
	if g.phase != PhasePlaying {
		return
	}
	g.setPhase(PhasePaused)
	g.stopFrame()
	g.audio.StopMusic()
}

// Resume runs the 3-2-1-GO countdown, then re-enters play with a fresh
// frame clock. A second call while counting down is ignored.
func (g *Game) Resume() {
	if g.phase != PhasePaused || g.resuming {
		return
	}
	g.resuming = true
	step := g.cfg.Timers.CountdownStep
	for i, label := range []string{"3", "2", "1"} {
		g.after(float64(i)*step, func() {
			g.countdown(label)
			g.audio.Effect(audio.SoundCountdown)
		})
	}
	g.after(3*step, func() {
		g.countdown("GO!")
		g.audio.Effect(audio.SoundGo)
		g.after(g.cfg.Timers.ResumeGo, func() {
			g.countdown("")
			g.resuming = false
			g.setPhase(PhasePlaying)
			g.audio.PlayMusic(g.levelMood())
			g.startFrame()
		})
	})
}

// Abandon ends a paused run. The lives left stay available to Continue.
func (g *Game) Abandon() {
	if g.phase != PhasePaused || g.resuming {
		return
	}
	g.gameOver("")
}

// tutorialDone restores normal damage rules, arms the grace period and
// counts down into play.
func (g *Game) tutorialDone() {
	s := g.session
	s.Timers.HitCooldown = 0
	s.Timers.Grace = g.cfg.Timers.Grace
	g.setPhase(PhaseCountdown)
	s.clearField()
	g.hideLesson()

	step := g.cfg.Timers.CountdownStep
	labels := []string{"3", "2", "1", "GO!"}
	for i, label := range labels {
		g.after(float64(i)*step, func() {
			g.countdown(label)
			g.audio.Effect(audio.SoundCountdown)
		})
	}
	g.after(float64(len(labels)-1)*step+g.cfg.Timers.CountdownGo, func() {
		g.countdown("")
		g.audio.Effect(audio.SoundGo)
		s.Timers.Obstacle = g.cfg.Spawn.FirstObstacle
		s.Timers.Gem = g.cfg.Spawn.FirstGem
		g.setPhase(PhasePlaying)
	})
}

// levelDone runs when the quota is met.
func (g *Game) levelDone() {
	g.setPhase(PhaseTransition)
	g.stopFrame()
	g.audio.StopMusic()
	g.saveBest()
	if g.session.Level >= config.LevelCount {
		g.win()
		return
	}
	g.audio.Effect(audio.SoundLevelUp)
	next := g.session.Level + 1
	g.after(g.cfg.Timers.LevelAdvance, func() { g.initLevel(next) })
}

// damage applies a registered hit from villain v.
func (g *Game) damage(v config.Villain) Damage {
	sup := g.suppression()
	if sup.Blocks() {
		return DamageNone
	}
	s := g.session
	s.Timers.HitCooldown = g.cfg.Timers.HitCooldown
	g.audio.Effect(audio.SoundHit)
	if sup.Shields() {
		g.logger.Debug("hit shielded", "villain", v.ID, "by", sup)
		return DamageShielded
	}
	s.Lives--
	g.logger.Debug("hit", "villain", v.ID, "lives", s.Lives)
	g.publishHUD()
	if s.Lives <= 0 {
		g.gameOver(v.Name)
		return DamageFatal
	}
	return DamageLifeLost
}

// suppression collects every reason damage is held off right now.
func (g *Game) suppression() Suppression {
	var sup Suppression
	s := g.session
	if g.tutorial.Active {
		sup |= SuppressTutorial
	}
	if s.Timers.Grace > 0 {
		sup |= SuppressGrace
	}
	if s.Timers.HitCooldown > 0 {
		sup |= SuppressCooldown
	}
	if s.Timers.Invincibility > 0 {
		sup |= SuppressPowerup
	}
	if s.Dev {
		sup |= SuppressDebug
	}
	return sup
}

func (g *Game) gameOver(villain string) {
	s := g.session
	s.KilledBy = villain
	g.tutorial.Cancel()
	g.resuming = false
	g.setPhase(PhaseOver)
	g.stopFrame()
	g.audio.StopMusic()
	g.saveBest()
	g.audio.Effect(audio.SoundDeath)
	g.endMusic = g.after(g.cfg.Timers.EndMusicDelay, func() { g.audio.PlayMusic(audio.MoodEnd) })
	g.hideLesson()

	f := Fails[g.spawner.Pick(len(Fails))]
	detail := "No hearts left!"
	if s.Lives > 0 {
		detail = strconv.Itoa(s.Lives) + " ♥ left - continue Level " + strconv.Itoa(s.Level)
	}
	g.emit(Notification{
		Kind:   KindGameOver,
		Title:  f.Title,
		Text:   failText(f, villain),
		Detail: detail,
		Hint:   ShareText(false, s.Level, s.Score),
		Value:  s.Score,
	})
	g.saveRun("over")
}

func (g *Game) win() {
	s := g.session
	g.setPhase(PhaseWon)
	g.stopFrame()
	g.audio.StopMusic()
	g.saveBest()
	g.audio.Effect(audio.SoundWin)
	g.endMusic = g.after(g.cfg.Timers.EndMusicDelay, func() { g.audio.PlayMusic(audio.MoodEnd) })
	elapsed := (g.queue.Now() - s.StartedAt).Round(time.Second)
	g.emit(Notification{
		Kind:   KindWin,
		Title:  "YOU WIN!",
		Text:   "Punch got the plushie!",
		Detail: "Time " + elapsed.String() + " - gems " + strconv.Itoa(s.GemsCollected),
		Hint:   ShareText(true, s.Level, s.Score),
		Value:  s.Score,
	})
	g.saveRun("won")
}

// Continue resumes the same level after a game over when lives remain;
// otherwise it starts a new run.
func (g *Game) Continue() {
	if g.phase != PhaseOver {
		return
	}
	s := g.session
	if s.Lives <= 0 {
		g.Restart()
		return
	}
	g.queue.Cancel(g.endMusic)
	g.audio.StopMusic()
	s.clearField()
	s.Beaten = 0
	s.Timers.HitCooldown = 0
	s.Timers.Obstacle = g.cfg.Spawn.ContinueObstacle
	s.Timers.Gem = g.cfg.Spawn.ContinueGem
	g.player.Reset()
	g.setPhase(PhaseTransition)
	g.publishHUD()
	g.emit(Notification{Kind: KindToast, Title: "LEVEL " + strconv.Itoa(s.Level), Text: "Continue!", Detail: "You got this!"})
	g.after(g.cfg.Timers.ContinueDelay, func() {
		g.hideToast()
		g.audio.StopMusic()
		g.audio.PlayMusic(g.levelMood())
		g.setPhase(PhasePlaying)
		g.startFrame()
	})
}

// Restart tears the run down and starts a new one from level one.
func (g *Game) Restart() {
	g.Stop()
	g.Start()
}

// Stop abandons everything in flight and returns to idle: the frame loop,
// music, tutorial and every pending task.
func (g *Game) Stop() {
	g.stopFrame()
	g.audio.StopMusic()
	g.tutorial.Cancel()
	g.queue.Clear()
	g.resuming = false
	g.ui = overlay{}
	g.setPhase(PhaseIdle)
}

// ToggleMute flips the music mute.
func (g *Game) ToggleMute() bool {
	m := g.audio.ToggleMute()
	g.publishHUD()
	return m
}

// ToggleDebug flips developer mode, in which hits never cost a life.
func (g *Game) ToggleDebug() {
	g.session.Dev = !g.session.Dev
	g.audio.Effect(audio.SoundDebugToggle)
	g.logger.Debug("dev mode", "on", g.session.Dev)
	g.publishHUD()
}

// Resize changes the canvas. Gameplay geometry is fractional, so the run
// carries on; only entity positions are rescaled.
func (g *Game) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	nc := Canvas{W: float64(w), H: float64(h)}
	sx, sy := nc.W/g.canvas.W, nc.H/g.canvas.H
	for _, o := range g.session.Obstacles {
		o.X *= sx
		o.W *= sx
		o.BaseY *= sy
		o.H *= sy
		o.BobAmp *= sy
	}
	for _, c := range g.session.Gems {
		c.X *= sx
		c.Y *= sy
		c.R *= sy
	}
	g.canvas = nc
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.player.Y = math.Min(g.player.Y, 0)
}

// Close stops music and drops pending tasks.
func (g *Game) Close() {
	g.Stop()
}

func (g *Game) levelMood() audio.Mood {
	m, err := audio.ParseMood(g.cfg.Level(g.session.Level).Mood)
	if err != nil {
		return audio.MoodCalm
	}
	return m
}

// saveBest raises the stored best score and level.
func (g *Game) saveBest() {
	s := g.session
	changed := false
	if s.Score > g.best.Score {
		g.best.Score = s.Score
		changed = true
	}
	if s.Level > g.best.Level {
		g.best.Level = s.Level
		changed = true
	}
	if !changed {
		return
	}
	if err := g.records.SaveBest(g.best); err != nil {
		g.logger.Warn("save best", "err", err)
	}
}

func (g *Game) saveRun(outcome string) {
	s := g.session
	r := Run{
		ID:        s.RunID,
		Score:     s.Score,
		Level:     s.Level,
		Gems:      s.GemsCollected,
		GemsTotal: s.GemsTotal,
		Outcome:   outcome,
		Duration:  g.queue.Now() - s.StartedAt,
	}
	if err := g.records.SaveRun(r); err != nil {
		g.logger.Warn("save run", "err", err)
	}
}

// Phase returns the current state.
func (g *Game) Phase() Phase { return g.phase }

// Session returns the current run. It is read-only for callers.
func (g *Game) Session() *Session { return g.session }

// Player returns the runner.
func (g *Game) Player() *Player { return &g.player }

// Best returns the personal records.
func (g *Game) Best() Best { return g.best }

// Muted reports whether music is muted.
func (g *Game) Muted() bool { return g.audio.Muted() }

// Suppression returns the current damage suppression set.
func (g *Game) Suppression() Suppression { return g.suppression() }

// Tutorial returns the lesson sequencer.
func (g *Game) Tutorial() *Tutorial { return g.tutorial }

// Runtime returns the host settings, with the current canvas size.
func (g *Game) Runtime() core.RuntimeConfig { return g.runtime }

// Config returns the active configuration.
func (g *Game) Config() *config.EscapeConfig { return &g.cfg }

// State returns the summary the host needs.
func (g *Game) State() core.GameState {
	s := g.session
	return core.GameState{
		Phase:    g.phase.String(),
		Score:    s.Score,
		Lives:    s.Lives,
		Level:    s.Level,
		GameOver: g.phase == PhaseOver,
		Won:      g.phase == PhaseWon,
		Paused:   g.phase == PhasePaused,
	}
}
