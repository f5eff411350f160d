package config

import (
	_ "embed"
)

//go:embed defaults/escape.yaml
var defaultEscapeYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultEscapeYAML
}

// DefaultEscapeConfig returns the built-in configuration. It mirrors
// defaults/escape.yaml and is the last fallback if the embedded file is unreadable.
func DefaultEscapeConfig() EscapeConfig {
	return EscapeConfig{
		Physics: PhysicsConfig{
			Gravity:             3.6,
			JumpVelocity:        -1.25,
			DoubleJumpVelocity:  -1.1,
			MaxFrameDelta:       0.05,
			BaseSpeed:           0.38,
			BoostMultiplier:     1.38,
			TutorialSpeedFactor: 0.36,
			SafetyMargin:        0.02,
		},
		Player: PlayerConfig{
			XFrac:        0.15,
			GroundFrac:   0.82,
			WidthFrac:    0.055,
			HeightFrac:   0.18,
			SlideHeight:  0.35,
			SlideSeconds: 0.55,
			HitboxInset:  0.12,
			StartLives:   3,
			MaxLives:     8,
		},
		Collision: CollisionConfig{
			GroundInset:   0.12,
			DuckBand:      0.18,
			DuckOverhang:  0.15,
			DuckAnchorFac: 0.85,
		},
		Timers: TimerConfig{
			HitCooldown:   1.3,
			Invincibility: 5,
			Magnet:        8,
			Grace:         10,
			Boost:         90,
			LevelIntro:    2,
			LevelAdvance:  0.42,
			ContinueDelay: 1.3,
			CountdownStep: 0.8,
			CountdownGo:   0.7,
			ResumeGo:      0.38,
			EndMusicDelay: 0.48,
		},
		Spawn: SpawnConfig{
			MaxObstacles:     6,
			FirstObstacle:    1.35,
			FirstGem:         0.95,
			ContinueObstacle: 1.3,
			ContinueGem:      0.9,
			GemGapMin:        0.72,
			GemGapMax:        1.48,
			GemRadius:        0.038,
			GemReach:         0.52,
			TwinTrap:         "twintrap",
			TwinCompanion:    "jumper",
			TwinOffset:       0.13,
			BobAmplitude:     0.025,
			BobbingVillains:  []string{"rock", "boulder"},
			MagnetPull:       14,
			MagnetRamp:       2,
			TierThresholds:   []int{2, 4, 6, 8},
		},
		Difficulty: DifficultyConfig{
			Enabled:        true,
			GapScale:       1.0,
			MinBase:        1.0,
			MinPerLevel:    0.06,
			MinPerProgress: 0.26,
			MinFloor:       0.32,
			MaxBase:        1.65,
			MaxPerLevel:    0.07,
			MaxPerProgress: 0.34,
			MaxFloor:       0.62,
		},
		Scoring: ScoringConfig{
			PassBase:       12,
			PassPerLevel:   2,
			DistanceRate:   0.35,
			LevelRate:      0.5,
			ReferenceWidth: 1000,
		},
		Tutorial: TutorialConfig{
			FreeWalk:     1.6,
			AdvanceDelay: 1.1,
			HideDelay:    0.15,
			SpawnX:       0.72,
			CoinAhead:    3.5,
			CoinRadius:   0.042,
			Steps: []TutorialStep{
				{Icon: "♥", Text: "You have 3 hearts. Lose them all = game over. Collect ♥ gems for more!", Action: TutorialAuto, Delay: 3.2},
				{Icon: "↑", Text: "Obstacle incoming! Jump over it!", KeyHint: "SPACE / ↑ / W", Action: TutorialJump, Pause: true, Spawn: "jumper"},
				{Icon: "↓", Text: "Duck under the vine - it WILL hit you if you stay standing!", KeyHint: "↓ / S (hold)", Action: TutorialSlide, Pause: true, Spawn: "vine"},
				{Icon: "↑↑", Text: "Tall obstacle! Jump TWICE - press jump again while airborne!", KeyHint: "SPACE then SPACE again mid-air", Action: TutorialDJump, Pause: true, Spawn: "bigbobo"},
				{Icon: "◆", Text: "Collect gems for points & powers! Run through that gem!", Action: TutorialGem, Spawn: "coin", Delay: 5.5},
			},
		},
		Villains: []Villain{
			{ID: "slider", Name: "Knuckles", Color: "#ef476f", Tier: 1, Action: ActionJump, HeightFrac: 0.13, WidthFrac: 0.055},
			{ID: "jumper", Name: "Bobo", Color: "#ff9f1c", Tier: 1, Action: ActionJump, HeightFrac: 0.17, WidthFrac: 0.06},
			{ID: "rock", Name: "Rockhead", Color: "#94a3b8", Tier: 2, Action: ActionJump, HeightFrac: 0.16, WidthFrac: 0.06},
			{ID: "peel", Name: "Slippy", Color: "#fdd835", Tier: 2, Action: ActionJump, HeightFrac: 0.09, WidthFrac: 0.07},
			{ID: "bigbobo", Name: "BIG Bobo", Color: "#f97316", Tier: 3, Action: ActionHigh, HeightFrac: 0.26, WidthFrac: 0.068},
			{ID: "twintrap", Name: "TwinTrap", Color: "#ec4899", Tier: 4, Action: ActionJump, HeightFrac: 0.17, WidthFrac: 0.055},
			{ID: "boulder", Name: "Crusher", Color: "#6b7280", Tier: 4, Action: ActionJump, HeightFrac: 0.18, WidthFrac: 0.065},
			{ID: "spike", Name: "Stabby", Color: "#ef4444", Tier: 5, Action: ActionHigh, HeightFrac: 0.22, WidthFrac: 0.05},
			{ID: "vine", Name: "Creepvine", Color: "#06d6a0", Tier: 1, Action: ActionDuck, HeightFrac: 0.42, WidthFrac: 0.028, Duck: true},
			{ID: "swinger", Name: "Swingby", Color: "#a855f7", Tier: 3, Action: ActionDuck, HeightFrac: 0.38, WidthFrac: 0.026, Duck: true},
		},
		Gems: []Gem{
			{ID: "coin", Name: "Gold Coin", Glyph: "o", Points: 30, Rarity: 0.50, Color: "#ffd166", Effect: EffectPoints},
			{ID: "banana", Name: "Banana", Glyph: ")", Points: 50, Rarity: 0.22, Color: "#fdd835", Effect: EffectPoints},
			{ID: "ruby", Name: "Ruby Gem", Glyph: "◆", Points: 120, Rarity: 0.11, Color: "#ff4d6d", Effect: EffectPoints},
			{ID: "heart", Name: "Heart Gem", Glyph: "♥", Points: 0, Rarity: 0.07, Color: "#ff6b6b", Effect: EffectLife},
			{ID: "star", Name: "Lucky Star", Glyph: "★", Points: 200, Rarity: 0.04, Color: "#ffd166", Effect: EffectPoints},
			{ID: "magnet", Name: "Magnet", Glyph: "U", Points: 40, Rarity: 0.03, Color: "#f472b6", Effect: EffectMagnet},
			{ID: "orb", Name: "Immunity Orb", Glyph: "●", Points: 80, Rarity: 0.02, Color: "#c084fc", Effect: EffectInvincibility},
			{ID: "diamond", Name: "Diamond", Glyph: "◇", Points: 400, Rarity: 0.01, Color: "#67e8f9", Effect: EffectPoints},
		},
		Levels: []Level{
			{N: 1, Name: "Monkey Zoo", Theme: "zoo", SpeedMult: 1.0, Obstacles: 12, Mood: "calm", Desc: "Tutorial time!"},
			{N: 2, Name: "Bamboo Forest", Theme: "bamboo", SpeedMult: 1.05, Obstacles: 15, Mood: "calm", Desc: "Watch the hanging bamboo!"},
			{N: 3, Name: "River Banks", Theme: "river", SpeedMult: 1.12, Obstacles: 18, Mood: "calm", Desc: "Stay sharp out there."},
			{N: 4, Name: "Ancient Ruins", Theme: "ruins", SpeedMult: 1.2, Obstacles: 21, Mood: "tense", Desc: "The stones begin to fly..."},
			{N: 5, Name: "Mushroom Grove", Theme: "mushroom", SpeedMult: 1.3, Obstacles: 24, Mood: "tense", Desc: "Speed picks up. Focus."},
			{N: 6, Name: "Crystal Cave", Theme: "cave", SpeedMult: 1.55, Obstacles: 30, Mood: "dark", Desc: "MUCH faster. Stay alive."},
			{N: 7, Name: "Volcano Edge", Theme: "volcano", SpeedMult: 1.82, Obstacles: 33, Mood: "dark", Desc: "The ground is on FIRE."},
			{N: 8, Name: "Moonlit Path", Theme: "moon", SpeedMult: 2.1, Obstacles: 36, Mood: "dark", Desc: "Almost there. Do NOT stop."},
			{N: 9, Name: "Storm Valley", Theme: "storm", SpeedMult: 2.4, Obstacles: 39, Mood: "intense", Desc: "MAXIMUM SPEED. GO GO GO!"},
			{N: 10, Name: "THE PLUSHIE!!!", Theme: "final", SpeedMult: 2.75, Obstacles: 42, Mood: "intense", Desc: "THIS IS IT. FOR THE PLUSHIE!"},
		},
	}
}
