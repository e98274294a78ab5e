// Package artifacts writes workflow exports: the run record, one transcript
// per step, and step timing.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

// EnsureDir creates the export directory structure.
func EnsureDir(dir string) error {
	dirs := []string{
		dir,
		filepath.Join(dir, "steps"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("creating artifacts dir %s: %w", d, err)
		}
	}
	return nil
}

// Slug lowercases name and joins its words with dashes.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// StepPath returns the transcript path for step idx, e.g. steps/step-2-data-collection.txt.
func StepPath(dir string, idx int) string {
	name := ""
	if idx >= 0 && idx < len(workflow.Steps) {
		name = "-" + Slug(workflow.Steps[idx].Name)
	}
	return filepath.Join(dir, "steps", fmt.Sprintf("step-%d%s.txt", idx+1, name))
}

// FormatStep renders an artifact as a plain-text transcript.
func FormatStep(a workflow.Artifact) string {
	return a.Title + "\n" + a.Subtitle + "\n\n" + a.Body + "\n"
}

// WriteStep writes the transcript for step idx.
func WriteStep(dir string, idx int, a workflow.Artifact) error {
	return WriteFile(StepPath(dir, idx), []byte(FormatStep(a)))
}

// MissingSteps returns the 1-based numbers of steps in [0, last] with no
// transcript in dir.
func MissingSteps(dir string, last int) []int {
	var missing []int
	for i := 0; i <= last && i < len(workflow.Steps); i++ {
		if _, err := os.Stat(StepPath(dir, i)); err != nil {
			missing = append(missing, i+1)
		}
	}
	return missing
}
