package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/punch-escape/internal/config"
	"github.com/vovakirdan/punch-escape/internal/games/escape"
	"github.com/vovakirdan/punch-escape/internal/storage"
)

func TestLoadConfigPreset(t *testing.T) {
	cfg, err := loadConfig("", "hard")
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Difficulty.GapScale != 0.85 {
		t.Errorf("GapScale = %v, expected 0.85", cfg.Difficulty.GapScale)
	}

	if _, err := loadConfig("", "brutal"); err == nil {
		t.Error("unknown preset accepted")
	}
}

func TestPrintLevels(t *testing.T) {
	cfg := config.DefaultEscapeConfig()
	var buf bytes.Buffer
	printLevels(&buf, &cfg)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(cfg.Levels)+4 {
		t.Errorf("printed %d lines, expected %d", len(lines), len(cfg.Levels)+4)
	}
	if !strings.Contains(buf.String(), cfg.Levels[9].Name) {
		t.Errorf("level 10 %q missing from output", cfg.Levels[9].Name)
	}
	if !strings.Contains(buf.String(), "0.94-1.58s") {
		t.Errorf("level 1 gap window missing:\n%s", buf.String())
	}
	if !strings.Contains(lines[len(lines)-1], "progress: on") {
		t.Errorf("last line = %q, expected the ramp switched on", lines[len(lines)-1])
	}

	fixed, err := loadConfig("", "fixed")
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	buf.Reset()
	printLevels(&buf, &fixed)
	if !strings.Contains(buf.String(), "progress: off") {
		t.Errorf("fixed preset should switch the ramp off:\n%s", buf.String())
	}
}

func TestPrintScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveBest(escape.Best{Score: 4321, Level: 6})
	store.SaveRun(escape.Run{ID: "r1", Score: 4321, Level: 6, Gems: 3, GemsTotal: 8, Outcome: "over", Duration: time.Minute})

	var buf bytes.Buffer
	if err := printScores(&buf, store, 10, 0); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Best score:  4321", "Top runs", "3/8"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Recent runs") {
		t.Error("recent section printed with --recent 0")
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("ESCAPE_FPS", "30")
	t.Setenv("ESCAPE_DB", "/tmp/x.db")

	if got := envInt("ESCAPE_FPS", 60); got != 30 {
		t.Errorf("envInt() = %d, expected 30", got)
	}
	if got := envOr("ESCAPE_DB", "def"); got != "/tmp/x.db" {
		t.Errorf("envOr() = %q, expected /tmp/x.db", got)
	}
	if got := envOr("ESCAPE_UNSET_FOR_TEST", "def"); got != "def" {
		t.Errorf("envOr() = %q, expected def", got)
	}
}
