package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/incidentdesk/internal/artifacts"
	"github.com/jorge-barreto/incidentdesk/internal/console"
	"github.com/jorge-barreto/incidentdesk/internal/player"
	"github.com/jorge-barreto/incidentdesk/internal/tui"
	"github.com/jorge-barreto/incidentdesk/internal/ux"
	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

func workflowCmd() *cli.Command {
	return &cli.Command{
		Name:  "workflow",
		Usage: "Play, step through, or inspect the incident workflow",
		Commands: []*cli.Command{
			playCmd(),
			guidedCmd(),
			showStepCmd(),
			stepsCmd(),
			runStatusCmd(),
		},
	}
}

func scenarioFlag() cli.Flag {
	return &cli.StringFlag{Name: "scenario", Usage: "Scenario category: random, network, deploy, dns, cert, or db"}
}

func seedFlag() cli.Flag {
	return &cli.IntFlag{Name: "seed", Usage: "Seed for a reproducible scenario"}
}

// scenario returns --scenario, or the configured default.
func (e *env) scenario(cmd *cli.Command) (string, error) {
	key := cmd.String("scenario")
	if key == "" {
		key = e.cfg.Workflow.Scenario
	}
	if !workflow.ValidCategory(key) {
		return "", fmt.Errorf("unknown scenario %q (must be one of %v)", key, workflow.Categories())
	}
	return key, nil
}

func generator(cmd *cli.Command) *workflow.Generator {
	if cmd.IsSet("seed") {
		return workflow.NewSeededGenerator(uint64(cmd.Int("seed")))
	}
	return nil
}

func (e *env) controller(cmd *cli.Command, category string) *workflow.Controller {
	d := e.cfg.Delays()
	return workflow.NewController(workflow.Options{
		Generator: generator(cmd),
		Delays:    &d,
		Category:  category,
	})
}

func playCmd() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Auto-play the workflow in the terminal",
		Flags: []cli.Flag{
			scenarioFlag(),
			seedFlag(),
			&cli.StringFlag{Name: "out", Usage: "Export directory for run.json, step artifacts and timing"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the step plan without playing"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			if cmd.Bool("dry-run") {
				player.PrintPlan(e.w, e.cfg.Delays())
				return nil
			}
			category, err := e.scenario(cmd)
			if err != nil {
				return err
			}

			dir := cmd.String("out")
			if dir == "" && e.cfg.Workflow.ArtifactsDir != "" {
				dir = filepath.Join(e.cfg.Workflow.ArtifactsDir, time.Now().Format("20060102-150405"))
			}

			ctrl := e.controller(cmd, category)
			defer ctrl.Close()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			p := &player.Player{Controller: ctrl, Out: e.w, Dir: dir, Log: e.log}
			err = p.Play(ctx)
			if errors.Is(err, context.Canceled) {
				// The interruption has been reported and recorded.
				return nil
			}
			return err
		},
	}
}

func guidedCmd() *cli.Command {
	return &cli.Command{
		Name:  "guided",
		Usage: "Step through the workflow interactively",
		Flags: []cli.Flag{
			scenarioFlag(),
			seedFlag(),
			&cli.BoolFlag{Name: "plain", Usage: "Read line commands instead of the full-screen stepper"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			category, err := e.scenario(cmd)
			if err != nil {
				return err
			}
			ctrl := e.controller(cmd, category)
			defer ctrl.Close()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cmd.Bool("plain") || !term.IsTerminal(os.Stdin.Fd()) {
				s := &console.Session{Controller: ctrl, In: os.Stdin, Out: e.w}
				err = s.Run(ctx)
			} else {
				err = tui.Run(ctx, ctrl)
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
}

// stepArg parses a 1-based step number argument.
func stepArg(cmd *cli.Command) (int, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return 0, fmt.Errorf("step number is required (1-%d)", len(workflow.Steps))
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(workflow.Steps) {
		return 0, fmt.Errorf("invalid step %q (must be 1-%d)", arg, len(workflow.Steps))
	}
	return n - 1, nil
}

func showStepCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print one step's artifact for a fresh scenario",
		ArgsUsage: "<n>",
		Flags:     []cli.Flag{scenarioFlag(), seedFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			idx, err := stepArg(cmd)
			if err != nil {
				return e.fail(err, nil)
			}
			category, err := e.scenario(cmd)
			if err != nil {
				return e.fail(err, nil)
			}

			gen := generator(cmd)
			if gen == nil {
				gen = workflow.NewGenerator(nil)
			}
			sc := gen.Generate(category)
			now := time.Now()
			art := workflow.ArtifactFor(idx, &sc, now)
			return e.out.Emit(art, func(w io.Writer) {
				ux.StepHeader(w, idx, workflow.Steps[idx], art.Status, now)
				ux.Artifact(w, art)
			})
		},
	}
}

func stepsCmd() *cli.Command {
	return &cli.Command{
		Name:  "steps",
		Usage: "List the workflow steps",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			return e.out.Emit(workflow.Steps, func(w io.Writer) {
				fmt.Fprintln(w)
				for i, s := range workflow.Steps {
					fmt.Fprintf(w, "  %s%d.%s %-18s %s%s%s\n", ux.Cyan, i+1, ux.Reset, s.Name, ux.Dim, s.Description, ux.Reset)
				}
				fmt.Fprintln(w)
			})
		},
	}
}

type runStatus struct {
	Run  *artifacts.Run     `json:"run"`
	View workflow.ViewModel `json:"view"`
}

func runStatusCmd() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Summarize an exported workflow run",
		ArgsUsage: "<dir>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			dir := cmd.Args().First()
			if dir == "" {
				return e.fail(fmt.Errorf("export directory argument is required"), nil)
			}
			run, err := artifacts.LoadRun(dir)
			if errors.Is(err, fs.ErrNotExist) {
				return e.fail(fmt.Errorf("no exported run in %s", dir), nil)
			}
			if err != nil {
				return e.fail(err, nil)
			}
			timing, err := artifacts.LoadTiming(dir)
			if err != nil {
				return e.fail(fmt.Errorf("loading timing: %w", err), nil)
			}

			sc := run.Scenario
			vm := workflow.Render(workflow.Snapshot{
				Index:     run.LastStep,
				Scenario:  &sc,
				Category:  run.Category,
				EnteredAt: run.EndedAt,
			})
			return e.out.Emit(runStatus{Run: run, View: vm}, func(w io.Writer) {
				fmt.Fprintf(w, "%sRun:%s      %s (%s)\n", ux.Bold, ux.Reset, run.ID, run.Status)
				ux.RenderSteps(w, vm, timing, dir)
				if missing := artifacts.MissingSteps(dir, run.LastStep); len(missing) > 0 {
					fmt.Fprintf(w, "%sMissing step files:%s %v\n", ux.Yellow, ux.Reset, missing)
				}
			})
		},
	}
}
