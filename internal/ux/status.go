package ux

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/incidentdesk/internal/artifacts"
	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

// RenderSteps prints the step map for vm: completed steps with their
// durations from timing, the current step, and what remains. When dir is
// set the exported files are listed too.
func RenderSteps(w io.Writer, vm workflow.ViewModel, timing *artifacts.Timing, dir string) {
	fmt.Fprintf(w, "%sScenario:%s %s\n", Bold, Reset, vm.Meta.Scenario)
	fmt.Fprintf(w, "%sIncident:%s %s  %sTicket:%s %s  %sAlert:%s %s\n",
		Bold, Reset, vm.Meta.Incident, Bold, Reset, vm.Meta.Ticket, Bold, Reset, vm.Meta.Alert)
	if vm.Complete {
		fmt.Fprintf(w, "%sState:%s    %s%scomplete%s\n", Bold, Reset, Green, Bold, Reset)
	} else {
		fmt.Fprintf(w, "%sState:%s    %s — %s\n", Bold, Reset, vm.Phase, vm.Status)
	}

	fmt.Fprintln(w)
	for _, st := range vm.Steps {
		switch st.Status {
		case workflow.StepDone:
			fmt.Fprintf(w, "  %s%d%s  %-20s %sdone%s  %s\n",
				Dim, st.Number, Reset, st.Name, Green, Reset, findDuration(timing, st.Name))
		case workflow.StepActive:
			fmt.Fprintf(w, "%s→%s %s%d%s  %-20s %sactive%s %s\n",
				Yellow, Reset, Dim, st.Number, Reset, st.Name, Yellow, Reset, findDuration(timing, st.Name))
		default:
			fmt.Fprintf(w, "  %s%d%s  %-20s %s(%s)%s\n",
				Dim, st.Number, Reset, st.Name, Dim, st.Tag, Reset)
		}
	}

	if dir == "" {
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "\n%sArtifacts:%s\n", Bold, Reset)
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(w, "  %s(none)%s\n", Dim, Reset)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			subEntries, _ := os.ReadDir(filepath.Join(dir, e.Name()))
			if len(subEntries) > 0 {
				first := subEntries[0].Name()
				last := subEntries[len(subEntries)-1].Name()
				if first == last {
					fmt.Fprintf(w, "  %s/%s/%s\n", dir, e.Name(), first)
				} else {
					fmt.Fprintf(w, "  %s/%s/%s .. %s\n", dir, e.Name(), first, last)
				}
			}
		} else {
			fmt.Fprintf(w, "  %s/%s\n", dir, e.Name())
		}
	}
	fmt.Fprintln(w)
}

func findDuration(timing *artifacts.Timing, step string) string {
	if timing == nil {
		return ""
	}
	for i := len(timing.Entries) - 1; i >= 0; i-- {
		e := timing.Entries[i]
		if e.Step == step && e.Duration != "" {
			if e.Approximate {
				return fmt.Sprintf("(~%s)", e.Duration)
			}
			return fmt.Sprintf("(%s)", e.Duration)
		}
	}
	return ""
}
