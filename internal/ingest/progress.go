package ingest

import "sync"

// Snapshot is one observation of batch progress for the presentation
// layer.
type Snapshot struct {
	Step      string `json:"step,omitempty"`
	Percent   int    `json:"percent"`
	LastError string `json:"lastError,omitempty"`
}

// Tracker holds user-visible progress state for the current run.
// LastError is a single slot: a later failure in the same batch
// overwrites an earlier one.
type Tracker struct {
	mu      sync.Mutex
	step    string
	percent int
	lastErr string
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) SetStep(step string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.step = step
}

func (t *Tracker) SetPercent(p int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.percent = p
}

// Fail records msg as the latest batch-level error.
func (t *Tracker) Fail(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastErr = msg
}

// Reset clears step and percent after a run. The error slot survives
// so the banner stays visible until the next failure overwrites it.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.step = ""
	t.percent = 0
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{Step: t.step, Percent: t.percent, LastError: t.lastErr}
}
