package artifacts

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type TimingEntry struct {
	Step     string    `json:"step"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end,omitempty"`
	Duration string    `json:"duration,omitempty"`
	// Approximate marks entries whose bounds were inferred after missed
	// step notifications.
	Approximate bool `json:"approximate,omitempty"`
}

// Timing records how long each step stayed current.
type Timing struct {
	mu      sync.Mutex
	now     func() time.Time
	Entries []TimingEntry `json:"entries"`
}

// NewTiming returns an empty timing log using now as its clock; nil means time.Now.
func NewTiming(now func() time.Time) *Timing {
	if now == nil {
		now = time.Now
	}
	return &Timing{now: now}
}

func timingPath(dir string) string {
	return filepath.Join(dir, "timing.json")
}

// LoadTiming reads timing data from dir.
func LoadTiming(dir string) (*Timing, error) {
	t := NewTiming(nil)
	data, err := os.ReadFile(timingPath(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return t, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Start closes any open entry and opens one for step.
func (t *Timing) Start(step string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.closeOpen(now, false)
	t.Entries = append(t.Entries, TimingEntry{Step: step, Start: now})
}

// StartApproximate is Start for a step that was passed without being
// observed; the new entry and the one it closes are marked approximate.
func (t *Timing) StartApproximate(step string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.closeOpen(now, true)
	t.Entries = append(t.Entries, TimingEntry{Step: step, Start: now, Approximate: true})
}

// Stop closes the open entry, if any.
func (t *Timing) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closeOpen(t.now(), false)
}

func (t *Timing) closeOpen(now time.Time, approximate bool) {
	if n := len(t.Entries); n > 0 && t.Entries[n-1].End.IsZero() {
		e := &t.Entries[n-1]
		e.End = now
		e.Duration = formatDuration(now.Sub(e.Start))
		e.Approximate = e.Approximate || approximate
	}
}

// Flush writes the timing log to dir.
func (t *Timing) Flush(dir string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return WriteFile(timingPath(dir), data)
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
