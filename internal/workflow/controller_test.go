package workflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/incidentdesk/internal/testutil"
	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

func newTestController(t *testing.T) (*workflow.Controller, *testutil.ManualScheduler, *testutil.Clock) {
	t.Helper()
	sched := testutil.NewManualScheduler()
	clock := testutil.NewClock(time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC))
	c := workflow.NewController(workflow.Options{
		Scheduler: sched,
		Generator: workflow.NewSeededGenerator(1),
		Now:       clock.Now,
	})
	t.Cleanup(c.Close)
	return c, sched, clock
}

func TestController_StartsIdle(t *testing.T) {
	c, sched, _ := newTestController(t)
	s := c.Snapshot()
	require.Equal(t, workflow.Idle, s.Index)
	require.False(t, s.Playing)
	require.Nil(t, s.Scenario)
	require.Equal(t, workflow.CategoryRandom, s.Category)
	require.Zero(t, sched.Pending())
}

func TestController_RunSchedulesFirstDelay(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.Run()

	s := c.Snapshot()
	require.Equal(t, 0, s.Index)
	require.True(t, s.Playing)
	require.NotNil(t, s.Scenario)
	require.Equal(t, []time.Duration{900 * time.Millisecond}, sched.Delays())
}

func TestController_AutoPlayDelaySequence(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.Run()

	want := []time.Duration{
		900 * time.Millisecond,
		1100 * time.Millisecond,
		950 * time.Millisecond,
		950 * time.Millisecond,
		1200 * time.Millisecond,
		950 * time.Millisecond,
		950 * time.Millisecond,
	}
	var got []time.Duration
	for i := 0; sched.Pending() > 0; i++ {
		require.Less(t, i, 20, "auto-play did not terminate")
		got = append(got, sched.Delays()[0])
		sched.Fire()
	}
	require.Equal(t, want, got)

	s := c.Snapshot()
	require.Equal(t, workflow.LastStep, s.Index)
	require.False(t, s.Playing)
}

func TestController_AdvanceByTotal(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.Run()

	d := workflow.DefaultDelays()
	sched.Advance(d.Total() - time.Millisecond)
	require.Equal(t, workflow.LastStep-1, c.Snapshot().Index)
	require.True(t, c.Snapshot().Playing)

	sched.Advance(time.Millisecond)
	require.Equal(t, workflow.LastStep, c.Snapshot().Index)
	require.False(t, c.Snapshot().Playing)
	require.Zero(t, sched.Pending())
}

func TestController_ScenarioStableDuringRun(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.Run()
	first := c.Snapshot().Scenario
	sched.Advance(workflow.DefaultDelays().Total())
	require.Equal(t, first, c.Snapshot().Scenario)
}

func TestController_RunWhilePlayingIsNoop(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.Run()
	before := c.Snapshot()
	c.Run()
	require.Equal(t, before, c.Snapshot())
	require.Equal(t, 1, sched.Pending())
}

func TestController_RunAfterCompletionStartsFresh(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.Run()
	sched.Advance(workflow.DefaultDelays().Total())

	c.Run()
	s := c.Snapshot()
	require.Equal(t, 0, s.Index)
	require.True(t, s.Playing)
	require.NotNil(t, s.Scenario)
	require.Equal(t, 1, sched.Pending())
}

func TestController_ResetCancelsAutoPlay(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.Run()
	sched.Advance(900 * time.Millisecond)
	require.Equal(t, 1, c.Snapshot().Index)

	c.Reset()
	sched.Advance(time.Minute)

	s := c.Snapshot()
	require.Equal(t, workflow.Idle, s.Index)
	require.False(t, s.Playing)
	require.Nil(t, s.Scenario)
	require.True(t, s.EnteredAt.IsZero())
	require.Zero(t, sched.Pending())
}

func TestController_GoToStepClamps(t *testing.T) {
	c, _, _ := newTestController(t)

	c.GoToStep(-5)
	require.Equal(t, 0, c.Snapshot().Index)
	require.NotNil(t, c.Snapshot().Scenario)

	c.GoToStep(42)
	require.Equal(t, workflow.LastStep, c.Snapshot().Index)
}

func TestController_GoToStepKeepsScenario(t *testing.T) {
	c, _, _ := newTestController(t)
	c.GoToStep(2)
	sc := c.Snapshot().Scenario
	c.GoToStep(5)
	require.Equal(t, sc, c.Snapshot().Scenario)
}

func TestController_GoToLastStepStopsPlay(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.Run()
	c.GoToStep(workflow.LastStep)

	require.False(t, c.Snapshot().Playing)
	require.Zero(t, sched.Pending())
}

func TestController_JumpWhilePlayingContinuesFromNewStep(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.Run()
	c.GoToStep(3)
	sched.Fire()
	require.Equal(t, 4, c.Snapshot().Index)
	require.Equal(t, []time.Duration{1200 * time.Millisecond}, sched.Delays())
}

func TestController_NextFromIdleCreatesScenario(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.Next()
	s := c.Snapshot()
	require.Equal(t, 0, s.Index)
	require.NotNil(t, s.Scenario)
	require.False(t, s.Playing)
	require.Zero(t, sched.Pending())
}

func TestController_NextAtLastStepIsNoop(t *testing.T) {
	c, _, clock := newTestController(t)
	c.GoToStep(workflow.LastStep)
	before := c.Snapshot()
	clock.Add(time.Hour)
	c.Next()
	require.Equal(t, before, c.Snapshot())
}

func TestController_EnteredAtFollowsClock(t *testing.T) {
	c, _, clock := newTestController(t)
	c.GoToStep(1)
	t0 := c.Snapshot().EnteredAt
	clock.Add(3 * time.Second)
	c.Next()
	require.Equal(t, t0.Add(3*time.Second), c.Snapshot().EnteredAt)
}

func TestController_SelectAppliesToNextScenario(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.Select("cert")
	c.Run()
	require.Equal(t, "cert", c.Snapshot().Scenario.Type)
	require.Equal(t, "cert", c.Snapshot().Category)

	sched.Advance(workflow.DefaultDelays().Total())
	c.Select("db")
	require.Equal(t, "cert", c.Snapshot().Scenario.Type)

	c.Reset()
	c.Next()
	require.Equal(t, "db", c.Snapshot().Scenario.Type)
}

func TestController_SnapshotIsACopy(t *testing.T) {
	c, _, _ := newTestController(t)
	c.GoToStep(0)
	s := c.Snapshot()
	s.Scenario.Service = "tampered"
	require.NotEqual(t, "tampered", c.Snapshot().Scenario.Service)
}

func TestController_SubscribeReceivesTransitions(t *testing.T) {
	c, sched, _ := newTestController(t)
	ch := c.Subscribe()

	c.Run()
	sched.Advance(workflow.DefaultDelays().Total())

	var indexes []int
	for len(ch) > 0 {
		indexes = append(indexes, (<-ch).Index)
	}
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, indexes)
}

func TestController_CloseClosesSubscribers(t *testing.T) {
	c, sched, _ := newTestController(t)
	ch := c.Subscribe()
	c.Run()
	<-ch

	c.Close()
	_, ok := <-ch
	require.False(t, ok)
	require.Zero(t, sched.Pending())

	c.Run()
	require.False(t, c.Snapshot().Playing)

	late := c.Subscribe()
	_, ok = <-late
	require.False(t, ok)
}

func TestController_TimerSchedulerPlaysToCompletion(t *testing.T) {
	c := workflow.NewController(workflow.Options{
		Delays: &workflow.Delays{First: time.Millisecond, Default: time.Millisecond},
	})
	defer c.Close()
	ch := c.Subscribe()
	c.Run()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case s := <-ch:
			if s.Index == workflow.LastStep && !s.Playing {
				return
			}
		case <-timeout:
			t.Fatalf("auto-play did not finish, state %+v", c.Snapshot())
		}
	}
}
