// Package console runs the guided workflow from line-oriented input, for
// terminals where the full-screen stepper is unavailable.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jorge-barreto/incidentdesk/internal/ux"
	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

// Session reads commands from In, applies them to Controller and prints
// every step the controller enters to Out.
type Session struct {
	Controller *workflow.Controller
	In         io.Reader
	Out        io.Writer

	last     workflow.Snapshot
	shown    bool
	category string
}

// Run blocks until the input ends, a quit command arrives or ctx is
// cancelled. Cancellation resets the controller and returns ctx.Err().
func (s *Session) Run(ctx context.Context) error {
	reader := NewLineReader(s.In)
	defer reader.Stop()

	updates := s.Controller.Subscribe()
	s.last = s.Controller.Snapshot()
	s.category = s.last.Category

	fmt.Fprintf(s.Out, "%s%s%s\n", ux.Dim, Usage, ux.Reset)
	s.prompt()

	for {
		select {
		case <-ctx.Done():
			s.Controller.Reset()
			return ctx.Err()

		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			s.show(snap)

		case line, ok := <-reader.Lines():
			if !ok {
				return nil
			}
			cmd, err := Parse(line)
			if err != nil {
				if errors.Is(err, ErrUnknownCommand) {
					err = fmt.Errorf("%w; %s", err, Usage)
				}
				fmt.Fprintf(s.Out, "%s%s%s\n", ux.Red, err, ux.Reset)
				s.prompt()
				continue
			}
			switch cmd.Action {
			case ActQuit:
				return nil
			case ActHelp:
				fmt.Fprintln(s.Out, Usage)
			case ActShow:
				ux.RenderSteps(s.Out, s.Controller.View(), nil, "")
			default:
				Apply(s.Controller, cmd)
				s.drain(updates)
			}
			s.prompt()
		}
	}
}

// drain prints the transitions a command produced before the next prompt.
func (s *Session) drain(updates <-chan workflow.Snapshot) {
	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			s.show(snap)
		default:
			return
		}
	}
}

func (s *Session) show(snap workflow.Snapshot) {
	prev := s.last
	s.last = snap

	if snap.Category != s.category {
		s.category = snap.Category
		label := workflow.CategoryLabel(snap.Category)
		if label == "" {
			label = "Random"
		}
		fmt.Fprintf(s.Out, "%sScenario set to %s; applies to the next run%s\n", ux.Yellow, label, ux.Reset)
	}

	if snap.Index == workflow.Idle {
		if prev.Index != workflow.Idle {
			fmt.Fprintf(s.Out, "%sWorkflow reset%s\n", ux.Yellow, ux.Reset)
		}
		return
	}
	if s.shown && snap.Index == prev.Index && sameScenario(prev.Scenario, snap.Scenario) {
		return
	}
	s.shown = true

	vm := workflow.Render(snap)
	ux.StepHeader(s.Out, snap.Index, workflow.Steps[snap.Index], vm.Artifact.Status, snap.EnteredAt)
	ux.Artifact(s.Out, vm.Artifact)
	if vm.Complete {
		ux.Success(s.Out, snap.Scenario, snap.EnteredAt)
	}
}

func sameScenario(a, b *workflow.Scenario) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.IncidentID == b.IncidentID && a.TicketID == b.TicketID && a.AlertID == b.AlertID
}

func (s *Session) prompt() {
	fmt.Fprint(s.Out, "> ")
}
