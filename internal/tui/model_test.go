package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/incidentdesk/internal/testutil"
	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

func newModel(t *testing.T) (*Model, *workflow.Controller, *testutil.ManualScheduler) {
	t.Helper()
	sched := testutil.NewManualScheduler()
	clock := testutil.NewClock(time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC))
	c := workflow.NewController(workflow.Options{
		Scheduler: sched,
		Generator: workflow.NewSeededGenerator(3),
		Now:       clock.Now,
	})
	t.Cleanup(c.Close)
	return New(c), c, sched
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func TestModel_IdleView(t *testing.T) {
	m, _, _ := newModel(t)
	v := m.View()
	require.Contains(t, v, "Idle")
	require.Contains(t, v, "Ready")
	require.Contains(t, v, "1. Alert")
	require.Contains(t, v, "8. Executive Summary")
	require.Contains(t, v, "s scenario (Random)")
}

func TestModel_RunStartsAutoPlay(t *testing.T) {
	m, c, sched := newModel(t)
	press(m, runes("r"))

	require.Equal(t, 0, m.vm.Index)
	require.True(t, m.vm.Playing)
	require.Equal(t, 1, sched.Pending())
	require.True(t, c.Snapshot().Playing)
	require.Contains(t, m.View(), "Alert Firing")
}

func TestModel_NextAndSpace(t *testing.T) {
	m, _, _ := newModel(t)
	press(m, runes("n"))
	require.Equal(t, 0, m.vm.Index)
	press(m, tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, 1, m.vm.Index)
	require.Contains(t, m.View(), "Data Collection")
}

func TestModel_DigitJumps(t *testing.T) {
	m, _, _ := newModel(t)
	press(m, runes("6"))
	require.Equal(t, 5, m.vm.Index)
	require.Contains(t, m.View(), "RCA Created (Draft)")

	press(m, runes("8"))
	require.True(t, m.vm.Complete)
	require.Contains(t, m.View(), "Complete")
}

func TestModel_Reset(t *testing.T) {
	m, _, sched := newModel(t)
	press(m, runes("r"))
	press(m, runes("x"))
	require.Equal(t, workflow.Idle, m.vm.Index)
	require.Equal(t, 0, sched.Pending())
	require.Equal(t, workflow.Placeholder, m.vm.Meta.Incident)
}

func TestModel_CycleScenario(t *testing.T) {
	m, c, _ := newModel(t)
	want := append(workflow.Categories(), workflow.CategoryRandom)
	for _, key := range want {
		press(m, runes("s"))
		require.Equal(t, key, c.Snapshot().Category)
	}
	press(m, runes("s"))
	require.Contains(t, m.View(), "s scenario (Network flap (BGP/packet loss))")
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newModel(t)
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		cmd := press(m, msg)
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		require.True(t, ok, msg.String())
	}
}

func TestModel_SnapshotMessages(t *testing.T) {
	m, c, sched := newModel(t)
	c.Run()
	sched.Advance(900 * time.Millisecond)

	// Two notifications are buffered: the run and the first advance.
	cmd := waitForSnapshot(m.updates)
	_, next := m.Update(cmd())
	require.NotNil(t, next)
	require.Equal(t, 0, m.vm.Index)

	m.Update(waitForSnapshot(m.updates)())
	require.Equal(t, 1, m.vm.Index)
	require.Contains(t, m.View(), "Collecting Evidence")
}

func TestModel_ClosedController(t *testing.T) {
	m, c, _ := newModel(t)
	c.Close()
	_, cmd := m.Update(waitForSnapshot(m.updates)())
	require.Nil(t, cmd)
	require.True(t, m.closed)
	require.True(t, strings.Contains(m.View(), "workflow closed"))
}

func TestModel_WindowSizeWidensArtifact(t *testing.T) {
	m, _, _ := newModel(t)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	require.Equal(t, 160, m.width)
	press(m, runes("1"))
	require.Contains(t, m.View(), "ALERT FIRING: High Latency / Elevated Errors")
}

func TestNextCategory_UnknownFallsBack(t *testing.T) {
	require.Equal(t, workflow.CategoryRandom, nextCategory("meteor"))
	require.Equal(t, "network", nextCategory(workflow.CategoryRandom))
}
