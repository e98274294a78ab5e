package scaffold

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/incidentdesk/internal/config"
	"github.com/jorge-barreto/incidentdesk/internal/fixtures"
	"github.com/jorge-barreto/incidentdesk/internal/ux"
)

const configTemplate = `name: %q

# Fixture source: a directory (relative to this project) or a base URL.
data-dir: .incidentdesk/data
# data-url: https://example.com/fixtures

listen: 127.0.0.1:8080
log-level: info
# timezone: America/New_York

workflow:
  scenario: random
  first-delay: 900ms
  step-delay: 950ms
  slow-steps:
    - step: Data Collection
      delay: 1.1s
    - step: Runbook
      delay: 1.2s
  artifacts-dir: .incidentdesk/runs
`

// Init creates a new .incidentdesk/ directory with a config file and a copy
// of the sample fixtures, then prints what it created to w.
func Init(targetDir string, w io.Writer) error {
	projDir := filepath.Join(targetDir, config.Dir)
	if _, err := os.Stat(projDir); err == nil {
		return fmt.Errorf("%s directory already exists in %s", config.Dir, targetDir)
	}

	dataDir := filepath.Join(projDir, "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating %s/data: %w", config.Dir, err)
	}

	abs, err := filepath.Abs(targetDir)
	if err != nil {
		return err
	}
	cfg := fmt.Sprintf(configTemplate, filepath.Base(abs))
	if err := os.WriteFile(filepath.Join(projDir, config.FileName), []byte(cfg), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", config.FileName, err)
	}

	samples := fixtures.Embedded()
	for _, name := range fixtures.Names {
		data, err := fs.ReadFile(samples, name)
		if err != nil {
			return fmt.Errorf("reading sample %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dataDir, name), data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	fmt.Fprintf(w, "\n%s%s✓ Initialized %s/ directory%s\n\n", ux.Bold, ux.Green, config.Dir, ux.Reset)
	fmt.Fprintf(w, "  Created:\n")
	fmt.Fprintf(w, "    %s%s/%s%s  — project configuration\n", ux.Cyan, config.Dir, config.FileName, ux.Reset)
	fmt.Fprintf(w, "    %s%s/data/%s       — %d sample fixtures\n\n", ux.Cyan, config.Dir, ux.Reset, len(fixtures.Names))
	fmt.Fprintf(w, "  Next steps:\n")
	fmt.Fprintf(w, "    1. Edit the fixtures in %s%s/data/%s\n", ux.Cyan, config.Dir, ux.Reset)
	fmt.Fprintf(w, "    2. Run %sincidentdesk fixtures check%s to validate them\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(w, "    3. Run %sincidentdesk serve%s and open the site\n\n", ux.Cyan, ux.Reset)

	return nil
}
