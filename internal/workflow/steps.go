package workflow

// Step is one stage of the incident workflow.
type Step struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

// Steps is the fixed, ordered workflow. It never changes at runtime.
var Steps = []Step{
	{Name: "Alert", Description: "Signal detected and validated", Tag: "Firing"},
	{Name: "Data Collection", Description: "Metrics • Logs • Traces captured", Tag: "Evidence"},
	{Name: "Incident", Description: "Severity, scope, and ownership set", Tag: "SEV"},
	{Name: "Ticketing", Description: "Work item created + tasks assigned", Tag: "Ticket"},
	{Name: "Runbook", Description: "Standard mitigation applied", Tag: "Stabilize"},
	{Name: "RCA", Description: "Cause + contributing factors documented", Tag: "Draft"},
	{Name: "Ticket Close", Description: "Validation complete + closure notes", Tag: "Resolved"},
	{Name: "Executive Summary", Description: "Business-facing summary generated", Tag: "Executive"},
}

const (
	// Idle is the cursor value before any step has been entered.
	Idle = -1
	// LastStep is the index of the final step.
	LastStep = 7
)

// StepIndex returns the index of the named step, or -1 if not found.
func StepIndex(name string) int {
	for i, s := range Steps {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func clampStep(i int) int {
	if i < 0 {
		return 0
	}
	if i > LastStep {
		return LastStep
	}
	return i
}
