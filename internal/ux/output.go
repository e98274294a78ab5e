package ux

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

const rule = "══════════════════════════════════════"

func timestamp(at time.Time) string {
	return at.Format("15:04:05")
}

// StepHeader prints a timestamped step header.
func StepHeader(w io.Writer, index int, step workflow.Step, status string, at time.Time) {
	fmt.Fprintf(w, "\n%s[%s]%s %s%s%s\n", Dim, timestamp(at), Reset, Cyan, rule, Reset)
	fmt.Fprintf(w, "%s[%s]%s  %sStep %d/%d: %s [%s] — %s%s\n",
		Dim, timestamp(at), Reset, Bold, index+1, len(workflow.Steps), step.Name, step.Tag, status, Reset)
	fmt.Fprintf(w, "%s[%s]%s %s%s%s\n", Dim, timestamp(at), Reset, Cyan, rule, Reset)
}

// Artifact prints a step artifact: title, dimmed subtitle, then the body
// indented two spaces.
func Artifact(w io.Writer, a workflow.Artifact) {
	fmt.Fprintf(w, "  %s%s%s\n", Bold, a.Title, Reset)
	if a.Subtitle != "" {
		fmt.Fprintf(w, "  %s%s%s\n", Dim, a.Subtitle, Reset)
	}
	if a.Body == "" {
		return
	}
	fmt.Fprintln(w)
	for _, line := range strings.Split(a.Body, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// StepComplete prints how long a step stayed current.
func StepComplete(w io.Writer, index int, duration time.Duration, at time.Time) {
	fmt.Fprintf(w, "%s[%s]%s  %s✓ Step %d complete (%s)%s\n",
		Dim, timestamp(at), Reset, Green, index+1, duration.Round(time.Millisecond), Reset)
}

// StepPassed prints the completion line for a step whose duration was not
// observed.
func StepPassed(w io.Writer, index int, at time.Time) {
	fmt.Fprintf(w, "%s[%s]%s  %s✓ Step %d complete%s\n",
		Dim, timestamp(at), Reset, Green, index+1, Reset)
}

// Interrupted prints the interruption notice; index is the last step reached.
func Interrupted(w io.Writer, index int, at time.Time) {
	fmt.Fprintf(w, "\n%s[%s]%s  %s✗ Interrupted at step %d; workflow reset%s\n",
		Dim, timestamp(at), Reset, Red, index+1, Reset)
}

// ExportHint points at the exported artifacts.
func ExportHint(w io.Writer, dir string) {
	fmt.Fprintf(w, "\n%sArtifacts:%s %s\n", Yellow, Reset, dir)
}

// Success prints the final completion message.
func Success(w io.Writer, sc *workflow.Scenario, at time.Time) {
	label := ""
	if sc != nil {
		label = fmt.Sprintf(" (%s, %s)", sc.IncidentID, sc.Label)
	}
	fmt.Fprintf(w, "\n%s[%s]%s  %s%s══ All %d steps complete%s ══%s\n\n",
		Dim, timestamp(at), Reset, Bold, Green, len(workflow.Steps), label, Reset)
}
