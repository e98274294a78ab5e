// Package player auto-plays the incident workflow in a terminal and
// optionally exports what each step produced.
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jorge-barreto/incidentdesk/internal/artifacts"
	"github.com/jorge-barreto/incidentdesk/internal/ux"
	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

// ErrStopped is returned when the controller stops playing before the last
// step without the context being cancelled.
var ErrStopped = errors.New("workflow stopped before completion")

// Player drives one auto-play run of a Controller.
type Player struct {
	Controller *workflow.Controller
	Out        io.Writer
	// Dir is the export directory; empty disables exports.
	Dir string
	Now func() time.Time
	Log *slog.Logger

	Run    *artifacts.Run
	Timing *artifacts.Timing

	last      int
	lastEnter time.Time
}

func (p *Player) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Player) log() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}
	return slog.Default()
}

// finish records the final status, writes the run record and timing
// (warning on error) and returns err.
func (p *Player) finish(status string, err error) error {
	p.Timing.Stop()
	if p.Run != nil {
		p.Run.Finish(status, p.now())
	}
	if p.Dir == "" {
		return err
	}
	if p.Run != nil {
		if saveErr := p.Run.Save(p.Dir); saveErr != nil {
			p.log().Warn("failed to save run", "dir", p.Dir, "err", saveErr)
		}
	}
	if flushErr := p.Timing.Flush(p.Dir); flushErr != nil {
		p.log().Warn("failed to flush timing", "dir", p.Dir, "err", flushErr)
	}
	return err
}

// Play starts auto-play and blocks until the last step is reached or ctx is
// cancelled. Cancellation resets the controller.
func (p *Player) Play(ctx context.Context) error {
	if p.Dir != "" {
		if err := artifacts.EnsureDir(p.Dir); err != nil {
			return err
		}
	}
	p.Timing = artifacts.NewTiming(p.Now)
	p.Run = nil
	p.last = workflow.Idle

	updates := p.Controller.Subscribe()
	p.Controller.Run()

	for {
		select {
		case <-ctx.Done():
			p.Controller.Reset()
			ux.Interrupted(p.Out, p.last, p.now())
			return p.finish(artifacts.StatusInterrupted, ctx.Err())

		case s, ok := <-updates:
			if !ok {
				return p.finish(artifacts.StatusInterrupted, ErrStopped)
			}
			if err := p.advance(s); err != nil {
				p.Controller.Reset()
				return p.finish(artifacts.StatusInterrupted, err)
			}
			if s.Index == workflow.LastStep && !s.Playing {
				if p.Dir != "" {
					ux.ExportHint(p.Out, p.Dir)
				}
				ux.Success(p.Out, s.Scenario, p.now())
				return p.finish(artifacts.StatusCompleted, nil)
			}
			if !s.Playing {
				return p.finish(artifacts.StatusInterrupted, ErrStopped)
			}
		}
	}
}

// advance prints every step between the last one shown and s.Index. When
// notifications were dropped, the steps caught up on are printed without a
// duration and their timing is marked approximate.
func (p *Player) advance(s workflow.Snapshot) error {
	if s.Scenario == nil || s.Index <= p.last {
		return nil
	}
	if p.Run == nil {
		p.Run = artifacts.NewRun(s.Category, *s.Scenario, s.EnteredAt)
		if p.Dir != "" {
			if err := p.Run.Save(p.Dir); err != nil {
				return fmt.Errorf("saving run: %w", err)
			}
		}
	}

	catchUp := s.Index-p.last > 1
	if catchUp {
		p.Run.ApproximateTiming = true
	}
	for i := p.last + 1; i <= s.Index; i++ {
		switch {
		case p.last < 0:
		case catchUp:
			ux.StepPassed(p.Out, p.last, s.EnteredAt)
		default:
			ux.StepComplete(p.Out, p.last, s.EnteredAt.Sub(p.lastEnter), s.EnteredAt)
		}
		art := workflow.ArtifactFor(i, s.Scenario, s.EnteredAt)
		ux.StepHeader(p.Out, i, workflow.Steps[i], art.Status, s.EnteredAt)
		ux.Artifact(p.Out, art)
		if catchUp && i < s.Index {
			p.Timing.StartApproximate(workflow.Steps[i].Name)
		} else {
			p.Timing.Start(workflow.Steps[i].Name)
		}
		p.Run.Reached(i)

		if p.Dir != "" {
			if err := artifacts.WriteStep(p.Dir, i, art); err != nil {
				return fmt.Errorf("writing step %d: %w", i+1, err)
			}
		}
		p.last = i
		p.lastEnter = s.EnteredAt
	}
	return nil
}

// PrintPlan prints the step plan and auto-play pacing without running it.
func PrintPlan(w io.Writer, d workflow.Delays) {
	fmt.Fprintf(w, "\n%sDry run — %d steps, about %s:%s\n\n", ux.Bold, len(workflow.Steps), d.Total(), ux.Reset)
	for i, s := range workflow.Steps {
		fmt.Fprintf(w, "  %s%d.%s %s%s%s [%s] — %s\n", ux.Cyan, i+1, ux.Reset, ux.Bold, s.Name, ux.Reset, s.Tag, s.Description)
		switch {
		case i == 0:
			fmt.Fprintf(w, "     advance after: %s\n", d.First)
		case i < workflow.LastStep:
			fmt.Fprintf(w, "     advance after: %s\n", d.After(i))
		default:
			fmt.Fprintf(w, "     final step\n")
		}
	}
	fmt.Fprintln(w)
}
