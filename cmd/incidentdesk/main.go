package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/incidentdesk/internal/config"
	"github.com/jorge-barreto/incidentdesk/internal/docs"
	"github.com/jorge-barreto/incidentdesk/internal/fixtures"
	"github.com/jorge-barreto/incidentdesk/internal/logging"
	"github.com/jorge-barreto/incidentdesk/internal/scaffold"
	"github.com/jorge-barreto/incidentdesk/internal/ux"
)

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "incidentdesk",
		Usage:       "Incident response demo desk",
		Description: "Run 'incidentdesk docs' for documentation on config, the workflow, fixtures, and more.",
		Writer:      w,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Config file (default: search for .incidentdesk/config.yaml)", Sources: cli.EnvVars("INCIDENTDESK_CONFIG")},
			&cli.StringFlag{Name: "data", Usage: "Directory holding the fixture JSON files", Sources: cli.EnvVars("INCIDENTDESK_DATA")},
			&cli.StringFlag{Name: "data-url", Usage: "Base URL serving the fixture JSON files", Sources: cli.EnvVars("INCIDENTDESK_DATA_URL")},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn, or error", Sources: cli.EnvVars("INCIDENTDESK_LOG_LEVEL")},
			&cli.StringFlag{Name: "timezone", Usage: "IANA zone for fixture timestamps", Sources: cli.EnvVars("INCIDENTDESK_TIMEZONE")},
			&cli.StringFlag{Name: "format", Usage: "Output format: text or json", Value: ux.FormatText, Sources: cli.EnvVars("INCIDENTDESK_FORMAT")},
		},
		Commands: []*cli.Command{
			initCmd(),
			serveCmd(),
			workflowCmd(),
			incidentsCmd(),
			rcaCmd(),
			runbooksCmd(),
			statusCmd(),
			securityCmd(),
			fixturesCmd(),
			metricsCmd(),
			docsCmd(),
		},
	}
}

// env is what every command needs once flags and config are resolved.
type env struct {
	cfg    *config.Config
	loader *fixtures.Loader
	log    *slog.Logger
	out    *ux.Formatter
	w      io.Writer
}

func setup(cmd *cli.Command) (*env, error) {
	format := cmd.String("format")
	if format != ux.FormatText && format != ux.FormatJSON {
		return nil, fmt.Errorf("unknown --format %q (must be text or json)", format)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := logging.Configure(cfg.LogLevel); err != nil {
		return nil, err
	}
	w := cmd.Root().Writer
	return &env{
		cfg:    cfg,
		loader: fixtures.NewLoader(source(cfg), slog.Default()),
		log:    slog.Default(),
		out:    &ux.Formatter{Format: format, Writer: w},
		w:      w,
	}, nil
}

// loadConfig reads --config, or the nearest .incidentdesk/config.yaml, or
// falls back to the defaults, then applies flag overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	path, root := cmd.String("config"), cwd
	if path != "" {
		if path, err = filepath.Abs(path); err != nil {
			return nil, err
		}
		root = filepath.Dir(path)
		if filepath.Base(root) == config.Dir {
			root = filepath.Dir(root)
		}
	} else if path, root, err = config.Find(cwd); err != nil {
		return nil, err
	}

	var cfg *config.Config
	if path == "" {
		cfg = config.Default()
	} else if cfg, err = config.Load(path, root); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	data, dataURL := cmd.String("data"), cmd.String("data-url")
	if data != "" && dataURL != "" {
		return nil, fmt.Errorf("--data and --data-url are mutually exclusive")
	}
	changed := false
	if data != "" {
		cfg.DataDir, cfg.DataURL, changed = data, "", true
	}
	if dataURL != "" {
		cfg.DataURL, cfg.DataDir, changed = dataURL, "", true
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.LogLevel, changed = v, true
	}
	if v := cmd.String("timezone"); v != "" {
		cfg.Timezone, changed = v, true
	}
	if changed {
		// Flag paths are relative to where the command was run.
		if err := config.Validate(cfg, cwd); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func source(cfg *config.Config) fixtures.Source {
	switch {
	case cfg.DataURL != "":
		return fixtures.HTTPSource{BaseURL: cfg.DataURL, Client: &http.Client{Timeout: 10 * time.Second}}
	case cfg.DataDir != "":
		return fixtures.DirSource(cfg.DataDir)
	default:
		return fixtures.EmbeddedSource()
	}
}

// fail reports err in the JSON envelope when --format json is set and
// returns it for main to print.
func (e *env) fail(err error, details any) error {
	if ferr := e.out.Fail(err.Error(), details); ferr != nil {
		return errors.Join(err, ferr)
	}
	return err
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a new .incidentdesk/ directory with config and sample fixtures",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir, cmd.Root().Writer)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			name := cmd.Args().First()
			if name == "" {
				fmt.Fprint(w, "\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Fprintf(w, "  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Fprintln(w, "\nRun 'incidentdesk docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprint(w, t.Content)
			return nil
		},
	}
}
