package workflow

import "time"

// Delays controls auto-play pacing.
type Delays struct {
	// First is the wait between entering step 0 and the first advance.
	First time.Duration
	// Default is the wait after entering any step not listed in Slow.
	Default time.Duration
	// Slow overrides the wait after entering specific step indices.
	Slow map[int]time.Duration
}

// DefaultDelays returns the stock pacing: evidence collection and runbook
// execution linger a little longer than the other steps.
func DefaultDelays() Delays {
	return Delays{
		First:   900 * time.Millisecond,
		Default: 950 * time.Millisecond,
		Slow: map[int]time.Duration{
			1: 1100 * time.Millisecond,
			4: 1200 * time.Millisecond,
		},
	}
}

// After returns the wait before advancing past step idx.
func (d Delays) After(idx int) time.Duration {
	if v, ok := d.Slow[idx]; ok {
		return v
	}
	return d.Default
}

// Total returns the wall time a full auto-play run takes.
func (d Delays) Total() time.Duration {
	total := d.First
	for i := 1; i < LastStep; i++ {
		total += d.After(i)
	}
	return total
}
