package workflow

import (
	"fmt"
	"strings"
	"time"
)

// StampLayout is the timestamp prefix used in artifact bodies.
const StampLayout = "2006-01-02 15:04:05"

// Artifact is the document produced when a step is entered.
type Artifact struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	// Status is the short status line shown while the step is current.
	Status string `json:"status"`
}

func bullets(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "  - " + l
	}
	return strings.Join(out, "\n")
}

// ArtifactFor returns the artifact for step idx of sc, stamped with at.
// Every index in [0, LastStep] has an artifact; anything else returns the
// zero Artifact, as does a nil scenario.
func ArtifactFor(idx int, sc *Scenario, at time.Time) Artifact {
	if sc == nil {
		return Artifact{}
	}
	t := at.Format(StampLayout)

	switch idx {
	case 0:
		return Artifact{
			Status:   "Alert Firing",
			Title:    "Scenario: " + sc.Label,
			Subtitle: fmt.Sprintf("Service: %s • Region: %s • %s", sc.Service, sc.Region, sc.Severity),
			Body: fmt.Sprintf(`[%s] ALERT FIRING: High Latency / Elevated Errors
AlertId: %s
Service: %s
Region: %s
Severity: %s

Observed symptoms:
%s

Auto-actions:
  - open dashboards
  - start evidence collection
  - create incident shell`, t, sc.AlertID, sc.Service, sc.Region, sc.Severity, bullets(sc.Symptoms)),
		}

	case 1:
		return Artifact{
			Status:   "Collecting Evidence",
			Title:    "Data Collection",
			Subtitle: "Gathering metrics, logs, traces, and topology context.",
			Body: fmt.Sprintf(`[%s] Evidence Collector started
Targets:
  - Metrics: latency, error rate, saturation
  - Logs: 5m extract (top errors)
  - Traces: sampled spans (slow endpoints)
  - Network: loss/route events (if applicable)

Collected artifacts:
  - metric_snapshot.json
  - log_extract.txt
  - trace_summary.json
  - topology_notes.md

Notable:
  - spike aligns with %s peak
  - top endpoint: /api/v1/checkout
  - error codes: 502/504 increased`, t, sc.Region),
		}

	case 2:
		return Artifact{
			Status:   "Incident Open",
			Title:    fmt.Sprintf("Incident Created (%s)", sc.IncidentID),
			Subtitle: "Assigning severity, scope, and ownership.",
			Body: fmt.Sprintf(`[%s] INCIDENT CREATED
Incident: %s
Severity: %s
Service: %s
Scope:
  - Primary: %s
  - Secondary: downstream retries increasing load

Assignments:
  - Incident Commander: On-call SRE
  - Comms: Secondary on-call
  - SME: Service owner (%s)

Working hypothesis:
  - %s`, t, sc.IncidentID, sc.Severity, sc.Service, sc.Region, sc.Service, sc.Cause),
		}

	case 3:
		return Artifact{
			Status:   "Ticket Created",
			Title:    fmt.Sprintf("Ticket Generated (%s)", sc.TicketID),
			Subtitle: "Creating work items for remediation + follow-up.",
			Body: fmt.Sprintf(`[%s] TICKETING
Primary Ticket: %s
Linked:
  - Incident: %s
  - Alert: %s

Tasks:
  - [ ] Validate blast radius & customer impact
  - [ ] Apply runbook mitigation
  - [ ] Identify root cause
  - [ ] Permanent fix + guardrails
  - [ ] Monitoring updates (SLO-aligned)

Stakeholder note:
  - Checkout latency + intermittent failures`, t, sc.TicketID, sc.IncidentID, sc.AlertID),
		}

	case 4:
		return Artifact{
			Status:   "Runbook Executing",
			Title:    "Runbook Opened",
			Subtitle: "Standard response to stabilize service.",
			Body: fmt.Sprintf(`[%s] RUNBOOK: %s
1) Confirm symptoms (p95/p99 + error rate)
2) Check saturation (CPU/mem/pools)
3) Identify top offenders (endpoints/deps)
4) Mitigate:
   - scale out replicas
   - rate-limit bursts / circuit breaker
   - rollback last deploy (if needed)
5) Validate recovery against SLO

Mitigation actions taken (demo):
%s`, t, sc.RunbookName, bullets(sc.Actions)),
		}

	case 5:
		return Artifact{
			Status:   "Drafting RCA",
			Title:    "RCA Created (Draft)",
			Subtitle: "Root cause, contributing factors, and prevention plan.",
			Body: fmt.Sprintf(`[%s] ROOT CAUSE ANALYSIS (DRAFT)
Primary Cause:
  - %s

Customer-facing symptoms:
%s

Mitigation actions taken:
%s

Prevention / follow-ups:
%s

Notes:
  - evidence auto-attached
  - post-incident review scheduled`, t, sc.Cause, bullets(sc.Symptoms), bullets(sc.Actions), bullets(sc.Prevention)),
		}

	case 6:
		return Artifact{
			Status:   "Closing Ticket",
			Title:    "Ticket Closed",
			Subtitle: "Recovery validated and closure notes recorded.",
			Body: fmt.Sprintf(`[%s] CLOSEOUT
Validation:
  - p95 latency: 310ms (below 450ms)
  - error rate: 0.3%% (below 1.0%%)
  - no ongoing instability detected

Resolution:
  - mitigation applied + monitoring updated
  - follow-up tasks assigned

Closure Notes:
  - stakeholder comms sent
  - RCA owner + due date set`, t),
		}

	case 7:
		return Artifact{
			Status:   "Executive Summary Ready",
			Title:    "Executive Summary",
			Subtitle: "Business-facing summary of impact and prevention.",
			Body: fmt.Sprintf(`[%s] EXECUTIVE SUMMARY
Incident: %s | Severity: %s
Service: %s | Region: %s

Impact:
  - Elevated latency and intermittent failures
  - Peak window affected; customer experience degraded

Detection:
  - Automated alert (%s)
  - Evidence package generated and attached

Root Cause:
  - %s

Mitigation:
%s

Prevention:
  - %s`, t, sc.IncidentID, sc.Severity, sc.Service, sc.Region, sc.AlertID, sc.Cause,
				bullets(sc.Actions), strings.Join(sc.Prevention, "; ")),
		}

	default:
		return Artifact{}
	}
}
