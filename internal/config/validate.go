package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config, projectRoot string) error {
	if cfg.Name == "" {
		return fmt.Errorf("config: 'name' is required")
	}

	if cfg.DataDir != "" && cfg.DataURL != "" {
		return fmt.Errorf("config: 'data-dir' and 'data-url' cannot be combined")
	}
	if cfg.DataDir != "" {
		if !filepath.IsAbs(cfg.DataDir) && projectRoot != "" {
			cfg.DataDir = filepath.Join(projectRoot, cfg.DataDir)
		}
		info, err := os.Stat(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("config: data-dir %q not found", cfg.DataDir)
		}
		if !info.IsDir() {
			return fmt.Errorf("config: data-dir %q is not a directory", cfg.DataDir)
		}
	}
	if cfg.DataURL != "" {
		u, err := url.Parse(cfg.DataURL)
		if err != nil {
			return fmt.Errorf("config: invalid data-url %q: %w", cfg.DataURL, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config: data-url %q must be an http or https URL", cfg.DataURL)
		}
	}

	if cfg.Listen == "" {
		cfg.Listen = "127.0.0.1:8080"
	}
	if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
		return fmt.Errorf("config: invalid listen address %q: %w", cfg.Listen, err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !validLevels[cfg.LogLevel] {
		return fmt.Errorf("config: unknown log-level %q (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if cfg.Timezone == "" {
		cfg.loc = time.Local
	} else {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return fmt.Errorf("config: unknown timezone %q", cfg.Timezone)
		}
		cfg.loc = loc
	}

	return validateWorkflow(cfg, projectRoot)
}

func validateWorkflow(cfg *Config, projectRoot string) error {
	w := &cfg.Workflow
	if w.Scenario == "" {
		w.Scenario = workflow.CategoryRandom
	}
	if !workflow.ValidCategory(w.Scenario) {
		return fmt.Errorf("config: workflow: unknown scenario %q", w.Scenario)
	}

	defaults := workflow.DefaultDelays()
	if w.FirstDelay == "" {
		w.FirstDelay = defaults.First.String()
	}
	if w.StepDelay == "" {
		w.StepDelay = defaults.Default.String()
	}
	if w.SlowSteps == nil {
		for idx := 1; idx < workflow.LastStep; idx++ {
			if v, ok := defaults.Slow[idx]; ok {
				w.SlowSteps = append(w.SlowSteps, SlowStep{Step: workflow.Steps[idx].Name, Delay: v.String()})
			}
		}
	}

	first, err := parseDelay("first-delay", w.FirstDelay)
	if err != nil {
		return err
	}
	step, err := parseDelay("step-delay", w.StepDelay)
	if err != nil {
		return err
	}
	d := workflow.Delays{First: first, Default: step, Slow: map[int]time.Duration{}}

	for _, s := range w.SlowSteps {
		idx := workflow.StepIndex(s.Step)
		if idx < 0 {
			return fmt.Errorf("config: workflow: slow-steps: unknown step %q", s.Step)
		}
		if idx == 0 || idx == workflow.LastStep {
			return fmt.Errorf("config: workflow: slow-steps: step %q has no delay of its own (use first-delay for the first step)", s.Step)
		}
		if _, dup := d.Slow[idx]; dup {
			return fmt.Errorf("config: workflow: slow-steps: duplicate step %q", s.Step)
		}
		v, err := parseDelay(fmt.Sprintf("slow-steps %q", s.Step), s.Delay)
		if err != nil {
			return err
		}
		d.Slow[idx] = v
	}
	cfg.delays = d

	if w.ArtifactsDir != "" && !filepath.IsAbs(w.ArtifactsDir) && projectRoot != "" {
		w.ArtifactsDir = filepath.Join(projectRoot, w.ArtifactsDir)
	}
	return nil
}

func parseDelay(field, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: workflow: invalid %s %q: %w", field, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: workflow: %s must be > 0", field)
	}
	return d, nil
}
