package workflow

import "time"

// Scheduler runs fn once after delay. The returned cancel func prevents fn
// from running if it has not started yet; calling it more than once is safe.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules callbacks on runtime timers.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(delay time.Duration, fn func()) func() {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}
