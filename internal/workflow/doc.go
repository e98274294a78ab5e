// Package workflow implements the scripted incident workflow: eight fixed
// steps from alert to executive summary, a generator for the synthetic
// scenario each run walks through, and the controller that moves a cursor
// over the steps either on demand or on a timer.
//
// The controller owns all mutable state. Rendering targets never read it
// directly; they take a [Snapshot] and map it through [Render], which is pure:
//
//	c := workflow.NewController(workflow.Options{Category: "dns"})
//	defer c.Close()
//	c.Run()
//	vm := workflow.Render(c.Snapshot())
//
// Auto-play goes through a [Scheduler] so tests can step time by hand.
package workflow
