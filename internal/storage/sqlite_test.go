package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/punch-escape/internal/games/escape"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreEmptyBest(t *testing.T) {
	store := openTestStore(t)

	best, err := store.LoadBest()
	if err != nil {
		t.Fatalf("LoadBest() failed: %v", err)
	}
	if best != (escape.Best{Level: 1}) {
		t.Errorf("LoadBest() = %+v, expected score 0 level 1 plays 0", best)
	}
}

func TestStoreSaveBestOnlyRaises(t *testing.T) {
	store := openTestStore(t)

	steps := []struct {
		save     escape.Best
		expected escape.Best
	}{
		{escape.Best{Score: 500, Level: 3}, escape.Best{Score: 500, Level: 3}},
		{escape.Best{Score: 200, Level: 5}, escape.Best{Score: 500, Level: 5}},
		{escape.Best{Score: 900, Level: 2}, escape.Best{Score: 900, Level: 5}},
		{escape.Best{Score: 0, Level: 1}, escape.Best{Score: 900, Level: 5}},
	}

	for i, s := range steps {
		if err := store.SaveBest(s.save); err != nil {
			t.Fatalf("SaveBest(%+v) failed: %v", s.save, err)
		}
		got, err := store.LoadBest()
		if err != nil {
			t.Fatalf("LoadBest() failed: %v", err)
		}
		if got.Score != s.expected.Score || got.Level != s.expected.Level {
			t.Errorf("step %d: best = %d/%d, expected %d/%d",
				i, got.Score, got.Level, s.expected.Score, s.expected.Level)
		}
	}
}

func TestStoreIncrementPlays(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 3; i++ {
		n, err := store.IncrementPlays()
		if err != nil {
			t.Fatalf("IncrementPlays() failed: %v", err)
		}
		if n != i {
			t.Errorf("IncrementPlays() = %d, expected %d", n, i)
		}
	}

	best, _ := store.LoadBest()
	if best.Plays != 3 {
		t.Errorf("Plays = %d, expected 3", best.Plays)
	}
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveBest(escape.Best{Score: 1234, Level: 4})
	store.IncrementPlays()
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	best, err := store.LoadBest()
	if err != nil {
		t.Fatalf("LoadBest() failed: %v", err)
	}
	expected := escape.Best{Score: 1234, Level: 4, Plays: 1}
	if best != expected {
		t.Errorf("LoadBest() = %+v, expected %+v", best, expected)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []escape.Run{
		{ID: "a", Score: 300, Level: 2, Gems: 4, GemsTotal: 9, Outcome: "over", Duration: 65 * time.Second},
		{ID: "b", Score: 1200, Level: 10, Gems: 30, GemsTotal: 41, Outcome: "won", Duration: 9 * time.Minute},
		{ID: "c", Score: 50, Level: 1, Outcome: "over", Duration: 12 * time.Second},
	}
	for _, r := range runs {
		if err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", r.ID, err)
		}
	}

	top, err := store.TopRuns(2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopRuns(2) returned %d entries", len(top))
	}
	if top[0].ID != "b" || top[1].ID != "a" {
		t.Errorf("TopRuns order = %s,%s, expected b,a", top[0].ID, top[1].ID)
	}
	if top[0].Duration != 9*time.Minute || top[0].Outcome != "won" || top[0].GemsTotal != 41 {
		t.Errorf("TopRuns[0] = %+v, fields not round-tripped", top[0].Run)
	}

	recent, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("RecentRuns() returned %d entries, expected 3", len(recent))
	}
	if len(recent) > 0 && recent[0].ID != "c" {
		t.Errorf("RecentRuns()[0] = %s, expected c", recent[0].ID)
	}
}

func TestStoreSaveRunReplaces(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(escape.Run{ID: "x", Score: 10, Level: 1, Outcome: "over"})
	store.SaveRun(escape.Run{ID: "x", Score: 80, Level: 2, Outcome: "over"})

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 80 {
		t.Errorf("runs = %+v, expected one run with score 80", runs)
	}
}

func TestStoreSaveRunNeedsID(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveRun(escape.Run{Score: 1}); err == nil {
		t.Error("SaveRun() without id returned nil error")
	}
}

func TestStoreAsRecords(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveBest(escape.Best{Score: 42, Level: 2}); err != nil {
		t.Fatalf("SaveBest() failed: %v", err)
	}
	var records escape.Records = store
	best, err := records.LoadBest()
	if err != nil || best.Score != 42 {
		t.Errorf("LoadBest() through interface = %+v, %v", best, err)
	}
}
