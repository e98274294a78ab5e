package workflow

import (
	"sync"
	"time"
)

// Snapshot is a copy of the controller state at one point in time.
type Snapshot struct {
	Index    int       `json:"index"`
	Playing  bool      `json:"playing"`
	Scenario *Scenario `json:"scenario,omitempty"`
	Category string    `json:"category"`
	// EnteredAt is when the current step was entered; zero while idle.
	EnteredAt time.Time `json:"entered_at,omitempty"`
}

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Scheduler Scheduler
	Generator *Generator
	Delays    *Delays
	Category  string
	Now       func() time.Time
}

// Controller drives the workflow state machine. All methods are safe for
// concurrent use; auto-advance callbacks arrive on scheduler goroutines.
type Controller struct {
	mu sync.Mutex

	sched  Scheduler
	gen    *Generator
	delays Delays
	now    func() time.Time

	idx       int
	playing   bool
	scenario  *Scenario
	category  string
	enteredAt time.Time

	// cancel is the single outstanding auto-advance, if any. generation is bumped on
	// every cancel so a callback that already fired becomes a no-op.
	cancel     func()
	generation uint64

	subs   []chan Snapshot
	closed bool
}

// NewController returns an idle controller.
func NewController(opts Options) *Controller {
	c := &Controller{
		sched:    opts.Scheduler,
		gen:      opts.Generator,
		now:      opts.Now,
		category: opts.Category,
		idx:      Idle,
	}
	if c.sched == nil {
		c.sched = TimerScheduler{}
	}
	if c.gen == nil {
		c.gen = NewGenerator(nil)
	}
	if opts.Delays != nil {
		c.delays = *opts.Delays
	} else {
		c.delays = DefaultDelays()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.category == "" {
		c.category = CategoryRandom
	}
	return c
}

// Select sets the category used the next time a scenario is created.
func (c *Controller) Select(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.category = category
	c.notify()
}

// Reset returns to Idle: the scenario is dropped and any pending advance cancelled.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimer()
	c.playing = false
	c.idx = Idle
	c.scenario = nil
	c.enteredAt = time.Time{}
	c.notify()
}

// GoToStep moves the cursor to i, clamped into [0, LastStep]. A scenario is
// created first if none exists.
func (c *Controller) GoToStep(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.goToStep(i)
	c.notify()
}

// Next advances one step. It does nothing at the last step.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.idx >= LastStep {
		return
	}
	c.goToStep(c.idx + 1)
	c.notify()
}

// Run starts auto-play with a fresh scenario. It does nothing while already
// playing.
func (c *Controller) Run() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing || c.closed {
		return
	}
	c.stopTimer()

	sc := c.gen.Generate(c.category)
	c.scenario = &sc
	c.idx = Idle
	c.playing = true

	c.goToStep(0)
	c.schedule(c.delays.First)
	c.notify()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// View renders the current state.
func (c *Controller) View() ViewModel {
	return Render(c.Snapshot())
}

// Subscribe returns a channel that receives a snapshot after every
// transition. Delivery never blocks the controller: when the buffer is full
// the update is dropped, so readers should always treat the latest snapshot
// as authoritative. The channel is closed by Close.
func (c *Controller) Subscribe() <-chan Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan Snapshot, 4*len(Steps))
	if c.closed {
		close(ch)
		return ch
	}
	c.subs = append(c.subs, ch)
	return ch
}

// Close cancels any pending advance and closes subscriber channels. The
// controller must not be used afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopTimer()
	c.playing = false
	c.closed = true
	for _, ch := range c.subs {
		close(ch)
	}
	c.subs = nil
}

func (c *Controller) goToStep(i int) {
	if c.scenario == nil {
		sc := c.gen.Generate(c.category)
		c.scenario = &sc
	}
	c.idx = clampStep(i)
	c.enteredAt = c.now()
	if c.idx == LastStep {
		c.stopTimer()
		c.playing = false
	}
}

func (c *Controller) schedule(d time.Duration) {
	gen := c.generation
	c.cancel = c.sched.Schedule(d, func() { c.tick(gen) })
}

func (c *Controller) stopTimer() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
}

// tick is the auto-advance callback.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || !c.playing {
		return
	}
	c.cancel = nil
	c.goToStep(c.idx + 1)
	if c.playing {
		c.schedule(c.delays.After(c.idx))
	}
	c.notify()
}

func (c *Controller) snapshot() Snapshot {
	s := Snapshot{
		Index:     c.idx,
		Playing:   c.playing,
		Category:  c.category,
		EnteredAt: c.enteredAt,
	}
	if c.scenario != nil {
		sc := *c.scenario
		s.Scenario = &sc
	}
	return s
}

func (c *Controller) notify() {
	if len(c.subs) == 0 {
		return
	}
	s := c.snapshot()
	for _, ch := range c.subs {
		select {
		case ch <- s:
		default:
		}
	}
}
