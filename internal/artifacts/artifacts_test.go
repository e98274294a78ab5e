package artifacts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	artDir := filepath.Join(dir, "export")
	if err := EnsureDir(artDir); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(filepath.Join(artDir, "steps"))
	if err != nil {
		t.Fatalf("steps not created: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("steps is not a directory")
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Alert":             "alert",
		"Data Collection":   "data-collection",
		"Ticket Close":      "ticket-close",
		"  RCA (draft) ":    "rca-draft",
		"Executive Summary": "executive-summary",
		"":                  "",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStepPath(t *testing.T) {
	got := StepPath("/out", 0)
	want := filepath.Join("/out", "steps", "step-1-alert.txt")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	got = StepPath("/out", 7)
	want = filepath.Join("/out", "steps", "step-8-executive-summary.txt")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	got = StepPath("/out", 9)
	want = filepath.Join("/out", "steps", "step-10.txt")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteStep(t *testing.T) {
	dir := t.TempDir()
	a := workflow.Artifact{Title: "Runbook Opened", Subtitle: "Standard response", Body: "[t] RUNBOOK: x"}
	if err := WriteStep(dir, 4, a); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "steps", "step-5-runbook.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "Runbook Opened\nStandard response\n\n[t] RUNBOOK: x\n"
	if string(data) != want {
		t.Fatalf("got %q, want %q", string(data), want)
	}
}

func TestMissingSteps(t *testing.T) {
	dir := t.TempDir()
	for _, i := range []int{0, 2} {
		if err := WriteStep(dir, i, workflow.Artifact{Title: "x"}); err != nil {
			t.Fatal(err)
		}
	}
	missing := MissingSteps(dir, 3)
	if len(missing) != 2 || missing[0] != 2 || missing[1] != 4 {
		t.Fatalf("got %v, want [2 4]", missing)
	}
	if got := MissingSteps(dir, workflow.Idle); len(got) != 0 {
		t.Fatalf("idle run should have no missing steps, got %v", got)
	}
}

func TestWriteFile_TicketUnderNestedDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "INC-1-ticket.md")
	if err := WriteFile(path, []byte("# Incident")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Incident") {
		t.Fatalf("got %q", string(data))
	}
}
