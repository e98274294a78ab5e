package console

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/incidentdesk/internal/testutil"
	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Command
	}{
		{"run", Command{Action: ActRun}},
		{"R", Command{Action: ActRun}},
		{"n", Command{Action: ActNext}},
		{"reset", Command{Action: ActReset}},
		{"step 3", Command{Action: ActStep, Step: 2}},
		{"8", Command{Action: ActStep, Step: 7}},
		{"scenario DNS", Command{Action: ActScenario, Category: "dns"}},
		{"scenario random", Command{Action: ActScenario, Category: "random"}},
		{"status", Command{Action: ActShow}},
		{"?", Command{Action: ActHelp}},
		{"exit", Command{Action: ActQuit}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("dance")
	require.ErrorIs(t, err, ErrUnknownCommand)

	_, err = Parse("step 9")
	require.ErrorContains(t, err, "between 1 and 8")

	_, err = Parse("0")
	require.ErrorContains(t, err, "between 1 and 8")

	_, err = Parse("step two")
	require.ErrorContains(t, err, "not a number")

	_, err = Parse("scenario meteor")
	require.ErrorContains(t, err, `unknown scenario "meteor"`)

	_, err = Parse("scenario")
	require.ErrorContains(t, err, "random, network, deploy, dns, cert, db")
}

func newController(t *testing.T) (*workflow.Controller, *testutil.ManualScheduler) {
	t.Helper()
	sched := testutil.NewManualScheduler()
	clock := testutil.NewClock(time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC))
	c := workflow.NewController(workflow.Options{
		Scheduler: sched,
		Generator: workflow.NewSeededGenerator(7),
		Now:       clock.Now,
	})
	t.Cleanup(c.Close)
	return c, sched
}

func TestSession_StepAndNext(t *testing.T) {
	c, _ := newController(t)
	var out strings.Builder
	s := &Session{Controller: c, In: strings.NewReader("step 3\nnext\nquit\nnext\n"), Out: &out}

	require.NoError(t, s.Run(context.Background()))

	got := out.String()
	require.Contains(t, got, "Step 3/8: Incident [SEV] — Incident Open")
	require.Contains(t, got, "Step 4/8: Ticketing [Ticket] — Ticket Created")
	require.NotContains(t, got, "Step 5/8")
	require.Equal(t, 3, c.Snapshot().Index)
}

func TestSession_RunSchedulesAutoPlay(t *testing.T) {
	c, sched := newController(t)
	var out strings.Builder
	s := &Session{Controller: c, In: strings.NewReader("run\n"), Out: &out}

	require.NoError(t, s.Run(context.Background()))
	require.Contains(t, out.String(), "Step 1/8: Alert [Firing] — Alert Firing")
	require.True(t, c.Snapshot().Playing)
	require.Equal(t, 1, sched.Pending())
}

func TestSession_LastStepPrintsSuccess(t *testing.T) {
	c, _ := newController(t)
	var out strings.Builder
	s := &Session{Controller: c, In: strings.NewReader("8\n8\n"), Out: &out}

	require.NoError(t, s.Run(context.Background()))
	got := out.String()
	require.Equal(t, 1, strings.Count(got, "Step 8/8"), "repeating the same step prints nothing new")
	require.Contains(t, got, "All 8 steps complete")
}

func TestSession_ScenarioAndReset(t *testing.T) {
	c, _ := newController(t)
	var out strings.Builder
	s := &Session{Controller: c, In: strings.NewReader("scenario cert\nnext\nreset\n"), Out: &out}

	require.NoError(t, s.Run(context.Background()))
	got := out.String()
	require.Contains(t, got, "Scenario set to Certificate/PKI mismatch")
	require.Contains(t, got, "Scenario: Certificate/PKI mismatch")
	require.Contains(t, got, "Workflow reset")
	require.Equal(t, workflow.Idle, c.Snapshot().Index)
}

func TestSession_UnknownCommandKeepsGoing(t *testing.T) {
	c, _ := newController(t)
	var out strings.Builder
	s := &Session{Controller: c, In: strings.NewReader("dance\nshow\n"), Out: &out}

	require.NoError(t, s.Run(context.Background()))
	got := out.String()
	require.Contains(t, got, `unknown command "dance"`)
	require.Contains(t, got, "State:")
}

func TestSession_CancelResets(t *testing.T) {
	c, sched := newController(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var out strings.Builder
	s := &Session{Controller: c, In: pr, Out: &out}
	c.Run()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop")
	}
	require.Equal(t, workflow.Idle, c.Snapshot().Index)
	require.Equal(t, 0, sched.Pending())
}

func TestApply_IgnoresNonControllerActions(t *testing.T) {
	c, _ := newController(t)
	Apply(c, Command{Action: ActShow})
	Apply(c, Command{Action: ActQuit})
	require.Equal(t, workflow.Idle, c.Snapshot().Index)
}
