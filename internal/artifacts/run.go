package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

const (
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusInterrupted = "interrupted"
)

// Run describes one exported workflow run.
type Run struct {
	ID        string            `json:"id"`
	Category  string            `json:"category"`
	Scenario  workflow.Scenario `json:"scenario"`
	Status    string            `json:"status"` // running, completed, interrupted
	LastStep  int               `json:"last_step"`
	StartedAt time.Time         `json:"started_at"`
	EndedAt   time.Time         `json:"ended_at,omitempty"`
	// ApproximateTiming is set when some steps were passed between
	// notifications and their timing entries were inferred.
	ApproximateTiming bool `json:"approximate_timing,omitempty"`
}

// NewRun starts a run record for sc with a fresh id.
func NewRun(category string, sc workflow.Scenario, now time.Time) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Category:  category,
		Scenario:  sc,
		Status:    StatusRunning,
		LastStep:  workflow.Idle,
		StartedAt: now,
	}
}

func runPath(dir string) string {
	return filepath.Join(dir, "run.json")
}

// LoadRun reads run.json from dir. fs.ErrNotExist is returned as is so
// callers can tell an empty directory from a corrupt one.
func LoadRun(dir string) (*Run, error) {
	data, err := os.ReadFile(runPath(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("reading run: %w", err)
	}
	var r Run
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding run: %w", err)
	}
	return &r, nil
}

// Save writes the run record to dir.
func (r *Run) Save(dir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return WriteFile(runPath(dir), data)
}

// Reached records that step idx was entered.
func (r *Run) Reached(idx int) {
	if idx > r.LastStep {
		r.LastStep = idx
	}
}

// Finish marks the run ended with status.
func (r *Run) Finish(status string, now time.Time) {
	r.Status = status
	r.EndedAt = now
}
