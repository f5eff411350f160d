// Package config provides YAML-based configuration for the runner: physics
// tuning, archetype tables, the level table and difficulty presets.
// Tables are validated once at load time; a bad table is a startup error.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EscapeConfig contains all configuration for the runner.
type EscapeConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Collision  CollisionConfig  `yaml:"collision"`
	Timers     TimerConfig      `yaml:"timers"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Tutorial   TutorialConfig   `yaml:"tutorial"`
	Villains   []Villain        `yaml:"villains"`
	Gems       []Gem            `yaml:"gems"`
	Levels     []Level          `yaml:"levels"`
}

// PhysicsConfig holds kinematics. Vertical values are in canvas heights (ch)
// per second, horizontal speed in canvas widths (cw) per second.
type PhysicsConfig struct {
	Gravity             float64 `yaml:"gravity"`               // ch/s²
	JumpVelocity        float64 `yaml:"jump_velocity"`         // ch/s, negative = up
	DoubleJumpVelocity  float64 `yaml:"double_jump_velocity"`  // ch/s, negative = up
	MaxFrameDelta       float64 `yaml:"max_frame_delta"`       // seconds
	BaseSpeed           float64 `yaml:"base_speed"`            // cw/s at speed multiplier 1
	BoostMultiplier     float64 `yaml:"boost_multiplier"`      // scroll multiplier while boosting
	TutorialSpeedFactor float64 `yaml:"tutorial_speed_factor"` // tutorial obstacles move at this share of base speed
	SafetyMargin        float64 `yaml:"safety_margin"`         // ch above the tallest JUMP obstacle
}

// PlayerConfig holds the player's canvas-relative geometry.
type PlayerConfig struct {
	XFrac        float64 `yaml:"x_frac"`        // left edge, share of cw
	GroundFrac   float64 `yaml:"ground_frac"`   // ground line, share of ch
	WidthFrac    float64 `yaml:"width_frac"`    // share of cw
	HeightFrac   float64 `yaml:"height_frac"`   // share of ch
	SlideHeight  float64 `yaml:"slide_height"`  // share of standing height
	SlideSeconds float64 `yaml:"slide_seconds"` // auto-release after this long
	HitboxInset  float64 `yaml:"hitbox_inset"`  // horizontal margin on each side, share of width
	StartLives   int     `yaml:"start_lives"`
	MaxLives     int     `yaml:"max_lives"`
}

// CollisionConfig describes obstacle hit rectangles.
type CollisionConfig struct {
	GroundInset   float64 `yaml:"ground_inset"`     // JUMP/HIGH: margin each side, share of width
	DuckBand      float64 `yaml:"duck_band"`        // DUCK: band height, share of obstacle height
	DuckOverhang  float64 `yaml:"duck_overhang"`    // DUCK: band overhang each side, share of width
	DuckAnchorFac float64 `yaml:"duck_anchor_frac"` // DUCK: leaf bottom height, share of player height
}

// TimerConfig holds timer durations in seconds.
type TimerConfig struct {
	HitCooldown   float64 `yaml:"hit_cooldown"`
	Invincibility float64 `yaml:"invincibility"`
	Magnet        float64 `yaml:"magnet"`
	Grace         float64 `yaml:"grace"`
	Boost         float64 `yaml:"boost"` // upper bound while the boost key is held
	LevelIntro    float64 `yaml:"level_intro"`
	LevelAdvance  float64 `yaml:"level_advance"`
	ContinueDelay float64 `yaml:"continue_delay"`
	CountdownStep float64 `yaml:"countdown_step"`
	CountdownGo   float64 `yaml:"countdown_go"`
	ResumeGo      float64 `yaml:"resume_go"`
	EndMusicDelay float64 `yaml:"end_music_delay"`
}

// SpawnConfig holds spawner tuning.
type SpawnConfig struct {
	MaxObstacles     int      `yaml:"max_obstacles"`
	FirstObstacle    float64  `yaml:"first_obstacle"` // seconds after GO / level start
	FirstGem         float64  `yaml:"first_gem"`
	ContinueObstacle float64  `yaml:"continue_obstacle"` // seconds after a continue
	ContinueGem      float64  `yaml:"continue_gem"`
	GemGapMin        float64  `yaml:"gem_gap_min"`
	GemGapMax        float64  `yaml:"gem_gap_max"`
	GemRadius        float64  `yaml:"gem_radius"`     // share of ch
	GemReach         float64  `yaml:"gem_reach"`      // pickup distance bonus, share of player width
	TwinOffset       float64  `yaml:"twin_offset"`    // share of cw
	TwinCompanion    string   `yaml:"twin_companion"` // villain id placed behind a twin trap
	TwinTrap         string   `yaml:"twin_trap"`      // villain id that spawns a companion
	BobAmplitude     float64  `yaml:"bob_amplitude"`  // share of ch
	BobbingVillains  []string `yaml:"bobbing_villains"`
	MagnetPull       float64  `yaml:"magnet_pull"`     // base pull strength
	MagnetRamp       float64  `yaml:"magnet_ramp"`     // added strength per elapsed magnet second
	TierThresholds   []int    `yaml:"tier_thresholds"` // highest level for tiers 1..4; beyond is tier 5
}

// ScoringConfig holds score tuning.
type ScoringConfig struct {
	PassBase        int     `yaml:"pass_base"`
	PassPerLevel    int     `yaml:"pass_per_level"`
	DistanceRate    float64 `yaml:"distance_rate"`   // points per reference unit scrolled
	LevelRate       float64 `yaml:"level_rate"`      // points per second per level
	ReferenceWidth  float64 `yaml:"reference_width"` // canvas width the distance score is normalised to
	ScoreInTutorial bool    `yaml:"score_in_tutorial"`
}

// TutorialConfig holds the scripted lesson sequence.
type TutorialConfig struct {
	FreeWalk     float64        `yaml:"free_walk"`     // seconds before the first step
	AdvanceDelay float64        `yaml:"advance_delay"` // seconds between an accepted action and the next step
	HideDelay    float64        `yaml:"hide_delay"`    // seconds between auto-step hide and the next step
	SpawnX       float64        `yaml:"spawn_x"`       // lesson obstacle position, share of cw
	CoinAhead    float64        `yaml:"coin_ahead"`    // lesson coin distance, player widths
	CoinRadius   float64        `yaml:"coin_radius"`   // share of ch
	Steps        []TutorialStep `yaml:"steps"`
}

// TutorialStep is one micro-lesson.
type TutorialStep struct {
	Icon    string         `yaml:"icon"`
	Text    string         `yaml:"text"`
	KeyHint string         `yaml:"key_hint"`
	Action  TutorialAction `yaml:"action"`
	Pause   bool           `yaml:"pause"`
	Spawn   string         `yaml:"spawn"` // villain id, gem id, or empty
	Delay   float64        `yaml:"delay"` // auto-advance (auto) or timeout (gem), seconds
}

// Villain is an obstacle archetype.
type Villain struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Color      string         `yaml:"color"`
	Tier       int            `yaml:"tier"`
	Action     ObstacleAction `yaml:"action"`
	HeightFrac float64        `yaml:"height_frac"` // share of ch
	WidthFrac  float64        `yaml:"width_frac"`  // share of cw
	Duck       bool           `yaml:"duck"`
}

// Gem is a collectible archetype.
type Gem struct {
	ID     string    `yaml:"id"`
	Name   string    `yaml:"name"`
	Glyph  string    `yaml:"glyph"`
	Points int       `yaml:"points"`
	Rarity float64   `yaml:"rarity"`
	Color  string    `yaml:"color"`
	Effect GemEffect `yaml:"effect"`
}

// Level is one entry in the fixed level table.
type Level struct {
	N         int     `yaml:"n"`
	Name      string  `yaml:"name"`
	Theme     string  `yaml:"theme"`
	SpeedMult float64 `yaml:"speed_mult"`
	Obstacles int     `yaml:"obstacles"`
	Mood      string  `yaml:"mood"`
	Desc      string  `yaml:"desc"`
}

// ObstacleAction is the move that clears an obstacle.
type ObstacleAction string

const (
	ActionJump ObstacleAction = "JUMP"
	ActionDuck ObstacleAction = "DUCK"
	ActionHigh ObstacleAction = "HIGH"
)

// UnmarshalYAML rejects unknown actions while decoding.
func (a *ObstacleAction) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	switch ObstacleAction(s) {
	case ActionJump, ActionDuck, ActionHigh:
		*a = ObstacleAction(s)
		return nil
	}
	return fmt.Errorf("line %d: unknown obstacle action %q", n.Line, s)
}

// GemEffect is what a gem does when collected.
type GemEffect string

const (
	EffectPoints        GemEffect = "points"
	EffectLife          GemEffect = "life"
	EffectInvincibility GemEffect = "invincibility"
	EffectMagnet        GemEffect = "magnet"
)

// UnmarshalYAML rejects unknown effects while decoding.
func (e *GemEffect) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	switch GemEffect(s) {
	case EffectPoints, EffectLife, EffectInvincibility, EffectMagnet:
		*e = GemEffect(s)
		return nil
	}
	return fmt.Errorf("line %d: unknown gem effect %q", n.Line, s)
}

// TutorialAction is the player action a lesson waits for.
type TutorialAction string

const (
	TutorialAuto  TutorialAction = "auto"
	TutorialJump  TutorialAction = "jump"
	TutorialSlide TutorialAction = "slide"
	TutorialDJump TutorialAction = "djump"
	TutorialGem   TutorialAction = "gem"
)

// UnmarshalYAML rejects unknown lesson actions while decoding.
func (a *TutorialAction) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	switch TutorialAction(s) {
	case TutorialAuto, TutorialJump, TutorialSlide, TutorialDJump, TutorialGem:
		*a = TutorialAction(s)
		return nil
	}
	return fmt.Errorf("line %d: unknown tutorial action %q", n.Line, s)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Empty means "use the config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
}

// Villain returns the archetype with the given id.
func (c *EscapeConfig) Villain(id string) (Villain, bool) {
	for _, v := range c.Villains {
		if v.ID == id {
			return v, true
		}
	}
	return Villain{}, false
}

// Gem returns the archetype with the given id.
func (c *EscapeConfig) Gem(id string) (Gem, bool) {
	for _, g := range c.Gems {
		if g.ID == id {
			return g, true
		}
	}
	return Gem{}, false
}

// Level returns the level with ordinal n (1-based). Out-of-range ordinals clamp.
func (c *EscapeConfig) Level(n int) Level {
	if n < 1 {
		n = 1
	}
	if n > len(c.Levels) {
		n = len(c.Levels)
	}
	return c.Levels[n-1]
}

// TierForLevel returns the highest villain tier unlocked at level n.
func (c *EscapeConfig) TierForLevel(n int) int {
	for i, maxLevel := range c.Spawn.TierThresholds {
		if n <= maxLevel {
			return i + 1
		}
	}
	return len(c.Spawn.TierThresholds) + 1
}

// Pool returns the villains eligible to spawn at level n, in table order.
func (c *EscapeConfig) Pool(n int) []Villain {
	tier := c.TierForLevel(n)
	pool := make([]Villain, 0, len(c.Villains))
	for _, v := range c.Villains {
		if v.Tier <= tier {
			pool = append(pool, v)
		}
	}
	return pool
}

// JumpPeak returns the single-jump apex height in canvas heights.
func (p PhysicsConfig) JumpPeak() float64 {
	return p.JumpVelocity * p.JumpVelocity / (2 * p.Gravity)
}

// DoubleJumpPeak returns the apex when the second jump fires at the first apex.
func (p PhysicsConfig) DoubleJumpPeak() float64 {
	return p.JumpPeak() + p.DoubleJumpVelocity*p.DoubleJumpVelocity/(2*p.Gravity)
}
