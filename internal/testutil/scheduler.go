package testutil

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler collects scheduled callbacks and runs them only when the
// test advances its clock. It satisfies workflow.Scheduler.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*task
}

type task struct {
	at        time.Duration
	seq       int
	delay     time.Duration
	fn        func()
	cancelled bool
}

// NewManualScheduler returns a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule registers fn to run delay after the current virtual time.
func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &task{at: s.now + delay, seq: s.seq, delay: delay, fn: fn}
	s.tasks = append(s.tasks, t)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.cancelled = true
	}
}

// Pending returns the number of callbacks scheduled and not yet run or cancelled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Delays returns the requested delay of every pending callback in due order.
func (s *ManualScheduler) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortLocked()
	var out []time.Duration
	for _, t := range s.tasks {
		if !t.cancelled {
			out = append(out, t.delay)
		}
	}
	return out
}

// Advance moves virtual time forward by d, running every callback that falls
// due, in order. Callbacks run without the scheduler lock held, so they may
// schedule further work; anything that falls due within d also runs.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		s.sortLocked()
		var next *task
		for i, t := range s.tasks {
			if t.cancelled {
				continue
			}
			if t.at <= target {
				next = t
				s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			}
			break
		}
		if next == nil {
			s.now = target
			s.dropCancelledLocked()
			s.mu.Unlock()
			return
		}
		s.now = next.at
		s.mu.Unlock()
		next.fn()
	}
}

// Fire runs the next due callback immediately, regardless of its delay.
// It reports whether a callback ran.
func (s *ManualScheduler) Fire() bool {
	s.mu.Lock()
	s.sortLocked()
	var next *task
	for i, t := range s.tasks {
		if !t.cancelled {
			next = t
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	if next == nil {
		s.mu.Unlock()
		return false
	}
	if next.at > s.now {
		s.now = next.at
	}
	s.mu.Unlock()
	next.fn()
	return true
}

func (s *ManualScheduler) sortLocked() {
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].at != s.tasks[j].at {
			return s.tasks[i].at < s.tasks[j].at
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
}

func (s *ManualScheduler) dropCancelledLocked() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
}
