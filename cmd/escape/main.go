// escape is Punch's Great Escape, a ten-level endless runner for the terminal.
//
// Usage:
//
//	escape play      - Play in this terminal
//	escape serve     - Start SSH server for remote play
//	escape scores    - Show records and run history
//	escape levels    - Show the level table
//
// Global flags:
//
//	--fps <rate>    - Set frame rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.escape/records.db)
//
// Defaults may also come from the environment or a .env file:
// ESCAPE_FPS, ESCAPE_DB, ESCAPE_CONFIG, ESCAPE_FEED, ESCAPE_SSH.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	// A missing .env file is normal.
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "escape",
		Short: "Punch's Great Escape - help a little monkey run home",
		Long: `Punch's Great Escape is a side-scrolling runner. Jump, double jump
and slide past the zoo's bullies across ten levels, collect gems and
reach the plushie at the end.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - Records and run history
  levels   - The level table

Examples:
  escape play
  escape play --difficulty easy --mute
  escape serve --ssh :2222
  escape scores --top 20`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", envInt("ESCAPE_FPS", 60), "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envOr("ESCAPE_DB", "~/.escape/records.db"), "Path to records database")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newLevelsCmd())
	return rootCmd
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

// newLogger writes to w with the given prefix. Debug output is enabled
// when ESCAPE_DEBUG is set.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if os.Getenv("ESCAPE_DEBUG") != "" {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
