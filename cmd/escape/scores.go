package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/punch-escape/internal/platform/tui"
	"github.com/vovakirdan/punch-escape/internal/storage"
)

func newScoresCmd() *cobra.Command {
	var (
		top         int
		recent      int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show records and run history",
		Long: `Display best score, best level, play count and stored runs.

Examples:
  escape scores
  escape scores --top 20 --recent 0
  escape scores -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := storage.Open(flagDBPath)
			if err != nil {
				return fmt.Errorf("opening records database: %w", err)
			}
			defer store.Close()

			if interactive {
				width, height := 80, 24
				if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
					width, height = w, h
				}
				return tui.RunScoreboard(store, width, height)
			}
			return printScores(cmd.OutOrStdout(), store, top, recent)
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "Number of top runs to show")
	cmd.Flags().IntVar(&recent, "recent", 5, "Number of recent runs to show")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse runs in a table")
	return cmd
}

func printScores(w io.Writer, src tui.RunSource, top, recent int) error {
	best, err := src.LoadBest()
	if err != nil {
		return fmt.Errorf("reading records: %w", err)
	}

	fmt.Fprintln(w, "Punch's Great Escape - Records")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Best score:  %d\n", best.Score)
	fmt.Fprintf(w, "  Best level:  %d\n", best.Level)
	fmt.Fprintf(w, "  Runs played: %d\n", best.Plays)

	sections := []struct {
		title string
		limit int
		load  func(int) ([]storage.RunEntry, error)
	}{
		{"Top runs", top, src.TopRuns},
		{"Recent runs", recent, src.RecentRuns},
	}
	for _, s := range sections {
		if s.limit <= 0 {
			continue
		}
		runs, err := s.load(s.limit)
		if err != nil {
			return fmt.Errorf("reading runs: %w", err)
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, s.title)
		if len(runs) == 0 {
			fmt.Fprintln(w, "  No runs recorded yet. Play 'escape play' to set one!")
			continue
		}
		fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-7s  %-6s  %-8s  %s\n", "Rank", "Score", "Level", "Gems", "Result", "Time", "Date")
		fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-7s  %-6s  %-8s  %s\n", "----", "-----", "-----", "----", "------", "----", "----")
		for i, r := range runs {
			date := "-"
			if !r.CreatedAt.IsZero() {
				date = r.CreatedAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "  %-4d  %-8d  %-5d  %-7s  %-6s  %-8s  %s\n",
				i+1, r.Score, r.Level, fmt.Sprintf("%d/%d", r.Gems, r.GemsTotal),
				r.Outcome, r.Duration.Round(time.Second), date)
		}
	}
	return nil
}
