package escape

import "time"

// Best holds the persisted personal records.
type Best struct {
	Score int
	Level int
	Plays int
}

// Run is one finished run, written to the history.
type Run struct {
	ID        string
	Score     int
	Level     int
	Gems      int
	GemsTotal int
	Outcome   string // "over" or "won"
	Duration  time.Duration
}

// Records persists best score and level, the play counter and run history.
// Every call is best-effort: the game logs failures and carries on with
// in-memory values.
type Records interface {
	LoadBest() (Best, error)
	SaveBest(b Best) error
	IncrementPlays() (int, error)
	SaveRun(r Run) error
}

// memoryRecords keeps records for the lifetime of the process only.
type memoryRecords struct {
	best Best
	runs []Run
}

// NewMemoryRecords returns a Records that is not persisted.
func NewMemoryRecords() Records {
	return &memoryRecords{best: Best{Level: 1}}
}

func (m *memoryRecords) LoadBest() (Best, error) { return m.best, nil }

func (m *memoryRecords) SaveBest(b Best) error {
	m.best.Score, m.best.Level = b.Score, b.Level
	return nil
}

func (m *memoryRecords) IncrementPlays() (int, error) {
	m.best.Plays++
	return m.best.Plays, nil
}

func (m *memoryRecords) SaveRun(r Run) error {
	m.runs = append(m.runs, r)
	return nil
}
