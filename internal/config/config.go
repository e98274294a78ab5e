package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

const (
	// Dir is the project directory holding config and exported artifacts.
	Dir = ".incidentdesk"
	// FileName is the config file inside Dir.
	FileName = "config.yaml"
)

type SlowStep struct {
	Step  string `yaml:"step"`
	Delay string `yaml:"delay"`
}

type Workflow struct {
	Scenario     string     `yaml:"scenario"`
	FirstDelay   string     `yaml:"first-delay"`
	StepDelay    string     `yaml:"step-delay"`
	SlowSteps    []SlowStep `yaml:"slow-steps"`
	ArtifactsDir string     `yaml:"artifacts-dir"`
}

type Config struct {
	Name     string   `yaml:"name"`
	DataDir  string   `yaml:"data-dir"`
	DataURL  string   `yaml:"data-url"`
	Listen   string   `yaml:"listen"`
	LogLevel string   `yaml:"log-level"`
	Timezone string   `yaml:"timezone"`
	Workflow Workflow `yaml:"workflow"`

	loc    *time.Location
	delays workflow.Delays
}

// Default returns the validated configuration used when no file exists.
func Default() *Config {
	cfg := &Config{Name: "incidentdesk"}
	if err := Validate(cfg, ""); err != nil {
		panic(err)
	}
	return cfg
}

// Load reads a YAML config file and returns a validated Config. Relative
// paths in the file resolve against projectRoot.
func Load(path, projectRoot string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg, projectRoot); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Find walks up from start looking for .incidentdesk/config.yaml. It returns
// the config path and the directory containing .incidentdesk, or empty
// strings when no config exists.
func Find(start string) (path, projectRoot string, err error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", "", err
	}
	for {
		p := filepath.Join(dir, Dir, FileName)
		if _, err := os.Stat(p); err == nil {
			return p, dir, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", nil
		}
		dir = parent
	}
}

// Location returns the zone used to display fixture timestamps.
func (c *Config) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// Delays returns the auto-play pacing.
func (c *Config) Delays() workflow.Delays {
	if c.delays.Default == 0 {
		return workflow.DefaultDelays()
	}
	return c.delays
}
