package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/punch-escape/internal/audio"
	"github.com/vovakirdan/punch-escape/internal/config"
	"github.com/vovakirdan/punch-escape/internal/core"
	"github.com/vovakirdan/punch-escape/internal/feed"
	"github.com/vovakirdan/punch-escape/internal/games/escape"
	"github.com/vovakirdan/punch-escape/internal/platform/tui"
	"github.com/vovakirdan/punch-escape/internal/storage"
)

type playOptions struct {
	config      string
	difficulty  string
	mute        bool
	noAudio     bool
	feed        string
	logFile     string
	musicVolume float64
	sfxVolume   float64
}

func newPlayCmd() *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in this terminal",
		Long: `Start a run in this terminal.

Controls:
  Space/Up/W   - Jump (again in the air to double jump)
  Down/S       - Slide (hold)
  Right/D      - Speed boost (hold)
  P/Esc        - Pause
  Enter        - Start / continue after game over
  R            - Restart from level 1
  B            - Give up (while paused)
  M            - Mute music
  F2           - Dev mode (hits cost no lives)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Wider gaps and a longer grace period
  normal - Gaps narrow with level and progress
  hard   - Tighter gaps and a shorter grace period
  fixed  - Gaps stay at the level 1 window

Examples:
  escape play
  escape play --difficulty hard
  escape play --config ./my-escape.yaml
  escape play --feed :8088 --log-file escape.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.config, "config", envOr("ESCAPE_CONFIG", ""), "Path to custom game config YAML")
	cmd.Flags().StringVar(&opts.difficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&opts.mute, "mute", false, "Start with music muted")
	cmd.Flags().BoolVar(&opts.noAudio, "no-audio", false, "Disable the audio device entirely")
	cmd.Flags().StringVar(&opts.feed, "feed", envOr("ESCAPE_FEED", ""), "Serve the HUD feed on this address (e.g. :8088)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	cmd.Flags().Float64Var(&opts.musicVolume, "music-volume", 0.55, "Music volume (0-1)")
	cmd.Flags().Float64Var(&opts.sfxVolume, "sfx-volume", 0.8, "Effects volume (0-1)")
	return cmd
}

// loadConfig reads the game config and applies a difficulty preset.
func loadConfig(path, difficulty string) (config.EscapeConfig, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.EscapeConfig{}, err
	}
	cfg, err := config.LoadEscape(path)
	if err != nil {
		return config.EscapeConfig{}, err
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

func runPlay(ctx context.Context, opts playOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "escape")

	cfg, err := loadConfig(opts.config, opts.difficulty)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  max(height-1, 1), // help line
		TickRate: flagFPS,
		Seed:     seed,
	}

	gameOpts := []escape.Option{
		escape.WithLogger(logger),
		escape.WithMuted(opts.mute),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open records database", "err", err)
	} else {
		defer store.Close()
		gameOpts = append(gameOpts, escape.WithRecords(store))
	}

	out := openAudio(opts, logger)
	gameOpts = append(gameOpts, escape.WithAudio(out))
	if c, ok := out.(interface{ Close() }); ok {
		defer c.Close()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if opts.feed != "" {
		hub := feed.NewHub(logger.WithPrefix("feed"))
		gameOpts = append(gameOpts, escape.WithNotifier(hub))
		go func() {
			if err := feed.Serve(ctx, opts.feed, hub); err != nil {
				logger.Error("feed stopped", "err", err)
			}
		}()
	}

	game := escape.New(cfg, rt, gameOpts...)
	defer game.Close()

	if err := tui.Run(game, flagFPS); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// openAudio returns the speaker output, or a silent one when audio is
// disabled or no device is available.
func openAudio(opts playOptions, logger *log.Logger) audio.Output {
	if opts.noAudio {
		return audio.Discard{}
	}
	out, err := audio.NewBeepOutput(opts.musicVolume, opts.sfxVolume)
	if err != nil {
		logger.Warn("audio unavailable, playing silently", "err", err)
		return audio.Discard{}
	}
	return out
}
