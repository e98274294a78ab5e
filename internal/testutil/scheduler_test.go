package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManualScheduler_AdvanceRunsDueInOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string
	s.Schedule(2*time.Second, func() { got = append(got, "b") })
	s.Schedule(time.Second, func() { got = append(got, "a") })
	s.Schedule(5*time.Second, func() { got = append(got, "c") })

	s.Advance(2 * time.Second)
	require.Equal(t, []string{"a", "b"}, got)
	require.Equal(t, 1, s.Pending())
}

func TestManualScheduler_CancelSkips(t *testing.T) {
	s := NewManualScheduler()
	ran := false
	cancel := s.Schedule(time.Second, func() { ran = true })
	cancel()
	cancel()

	s.Advance(time.Minute)
	require.False(t, ran)
	require.Zero(t, s.Pending())
}

func TestManualScheduler_ChainedCallbacksWithinWindow(t *testing.T) {
	s := NewManualScheduler()
	count := 0
	var step func()
	step = func() {
		count++
		if count < 3 {
			s.Schedule(time.Second, step)
		}
	}
	s.Schedule(time.Second, step)

	s.Advance(3 * time.Second)
	require.Equal(t, 3, count)
	require.Zero(t, s.Pending())
}

func TestManualScheduler_Fire(t *testing.T) {
	s := NewManualScheduler()
	require.False(t, s.Fire())

	ran := false
	s.Schedule(time.Hour, func() { ran = true })
	require.Equal(t, []time.Duration{time.Hour}, s.Delays())
	require.True(t, s.Fire())
	require.True(t, ran)
}

func TestClock_Add(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	c := NewClock(start)
	c.Add(90 * time.Second)
	require.Equal(t, start.Add(90*time.Second), c.Now())
}
