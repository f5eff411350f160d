package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/punch-escape/internal/audio"
	"github.com/vovakirdan/punch-escape/internal/config"
)

func newLevelsCmd() *cobra.Command {
	var (
		configPath string
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Show the level table",
		Long: `List the ten levels with their speed, quota, obstacle gap window at the
start of the level, music and the villains that can appear.

Examples:
  escape levels
  escape levels --difficulty hard
  escape levels --config ./my-escape.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath, difficulty)
			if err != nil {
				return err
			}
			printLevels(cmd.OutOrStdout(), &cfg)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", envOr("ESCAPE_CONFIG", ""), "Path to custom game config YAML")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	return cmd
}

func printLevels(w io.Writer, cfg *config.EscapeConfig) {
	diff := config.NewDifficultyManager(cfg.Difficulty)
	fmt.Fprintf(w, "  %-3s  %-22s  %-5s  %-5s  %-11s  %-9s  %s\n", "#", "Name", "Speed", "Clear", "Gap", "Music", "Villains")
	fmt.Fprintf(w, "  %-3s  %-22s  %-5s  %-5s  %-11s  %-9s  %s\n", "-", "----", "-----", "-----", "---", "-----", "--------")
	for _, lv := range cfg.Levels {
		mood := lv.Mood
		if m, err := audio.ParseMood(lv.Mood); err == nil {
			mood = m.Label()
		}
		pool := cfg.Pool(lv.N)
		names := make([]string, len(pool))
		for i, v := range pool {
			names[i] = v.Name
		}
		lo, hi := diff.SpawnGap(lv.N, 0)
		fmt.Fprintf(w, "  %-3d  %-22s  x%-4.2f  %-5d  %-11s  %-9s  %s\n",
			lv.N, lv.Name, lv.SpeedMult, lv.Obstacles, fmt.Sprintf("%.2f-%.2fs", lo, hi), mood, strings.Join(names, ", "))
	}

	ramp := "off"
	if diff.IsEnabled() {
		ramp = "on"
	}
	fmt.Fprintf(w, "\n  Gaps narrow with quota progress: %s\n", ramp)
}
