package ux

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jorge-barreto/incidentdesk/internal/artifacts"
	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

func TestFormatter_Text(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Format: FormatText, Writer: &buf}
	if err := f.Emit(map[string]int{"n": 1}, func(w io.Writer) { io.WriteString(w, "one\n") }); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "one\n" {
		t.Fatalf("got %q", buf.String())
	}
	if err := f.Fail("boom", nil); err != nil || buf.String() != "one\n" {
		t.Fatalf("Fail wrote in text mode: %q", buf.String())
	}
}

func TestFormatter_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Format: FormatJSON, Writer: &buf}
	if err := f.Emit(map[string]int{"n": 1}, func(w io.Writer) { t.Fatal("text renderer called in json mode") }); err != nil {
		t.Fatal(err)
	}
	var resp struct {
		Status string         `json:"status"`
		Data   map[string]int `json:"data"`
	}
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || resp.Data["n"] != 1 {
		t.Fatalf("got %+v", resp)
	}

	buf.Reset()
	if err := f.Fail("no such incident", map[string]string{"id": "INC-9"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"status": "error"`) || !strings.Contains(buf.String(), "no such incident") {
		t.Fatalf("got %s", buf.String())
	}
}

func TestStepHeader(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2025, 3, 14, 9, 30, 5, 0, time.UTC)
	StepHeader(&buf, 1, workflow.Steps[1], "Collecting Evidence", at)
	out := buf.String()
	if !strings.Contains(out, "Step 2/8: Data Collection [Evidence] — Collecting Evidence") {
		t.Fatalf("header missing step line:\n%s", out)
	}
	if !strings.Contains(out, "[09:30:05]") {
		t.Fatalf("header missing timestamp:\n%s", out)
	}
}

func TestArtifact_IndentsBody(t *testing.T) {
	var buf bytes.Buffer
	Artifact(&buf, workflow.Artifact{Title: "T", Subtitle: "S", Body: "a\nb"})
	if !strings.HasSuffix(buf.String(), "\n  a\n  b\n") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestRenderSteps(t *testing.T) {
	sc := workflow.NewSeededGenerator(2).Generate("cert")
	vm := workflow.Render(workflow.Snapshot{Index: 2, Scenario: &sc})

	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	timing := artifacts.NewTiming(func() time.Time { return now })
	timing.Start("Alert")
	now = now.Add(900 * time.Millisecond)
	timing.Start("Data Collection")

	var buf bytes.Buffer
	RenderSteps(&buf, vm, timing, "")
	out := buf.String()
	for _, want := range []string{sc.IncidentID, "Alert", "(900ms)", "active", "(Executive)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Artifacts:") {
		t.Error("artifacts listed without a directory")
	}
}

func TestRenderSteps_ApproximateTiming(t *testing.T) {
	sc := workflow.NewSeededGenerator(2).Generate("cert")
	vm := workflow.Render(workflow.Snapshot{Index: 2, Scenario: &sc})

	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	timing := artifacts.NewTiming(func() time.Time { return now })
	timing.Start("Alert")
	now = now.Add(2 * time.Second)
	timing.StartApproximate("Data Collection")
	timing.Start("Incident")

	var buf bytes.Buffer
	RenderSteps(&buf, vm, timing, "")
	out := buf.String()
	for _, want := range []string{"(~2s)", "(~0s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
