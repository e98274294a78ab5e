package workflow_test

import (
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

var stamp = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func deployScenario() *workflow.Scenario {
	return &workflow.Scenario{
		Type:     "deploy",
		Label:    "Bad deploy (pool exhaustion)",
		Severity: "SEV-2",
		Cause:    "Bad deploy introduced connection pool leak leading to exhaustion",
		Symptoms: []string{
			"steady rise in latency and saturation",
			"error rate climbs as pool hits max",
			"slow endpoints concentrated on /checkout",
		},
		Actions: []string{
			"Rolled back last deploy",
			"Scaled replicas to drain backlog",
			"Raised pool limit temporarily with guardrails",
		},
		Prevention: []string{
			"Canary + automated rollback on saturation",
			"Load tests for pool behavior",
			"Dashboards for pool utilization & queue depth",
		},
		RunbookName: "Latency + 5xx after Deploy",
		IncidentID:  "INC-4821",
		TicketID:    "CHG-553120",
		AlertID:     "ALRT-70312",
		Service:     "payments-api",
		Region:      "us-east-2",
	}
}

func TestArtifactFor_EveryStepHasContent(t *testing.T) {
	sc := deployScenario()
	prefix := "[" + stamp.Format(workflow.StampLayout) + "]"
	for i := range workflow.Steps {
		a := workflow.ArtifactFor(i, sc, stamp)
		require.NotEmpty(t, a.Title, "step %d", i)
		require.NotEmpty(t, a.Subtitle, "step %d", i)
		require.NotEmpty(t, a.Status, "step %d", i)
		require.True(t, strings.HasPrefix(a.Body, prefix), "step %d body %q", i, a.Body)
	}
}

func TestArtifactFor_OutOfRange(t *testing.T) {
	sc := deployScenario()
	require.Zero(t, workflow.ArtifactFor(-1, sc, stamp))
	require.Zero(t, workflow.ArtifactFor(8, sc, stamp))
	require.Zero(t, workflow.ArtifactFor(0, nil, stamp))
}

func TestArtifactFor_ScenarioFields(t *testing.T) {
	sc := deployScenario()

	alert := workflow.ArtifactFor(0, sc, stamp)
	require.Equal(t, "Scenario: Bad deploy (pool exhaustion)", alert.Title)
	require.Equal(t, "Service: payments-api • Region: us-east-2 • SEV-2", alert.Subtitle)
	require.Contains(t, alert.Body, "AlertId: ALRT-70312")

	require.Equal(t, "Incident Created (INC-4821)", workflow.ArtifactFor(2, sc, stamp).Title)
	require.Equal(t, "Ticket Generated (CHG-553120)", workflow.ArtifactFor(3, sc, stamp).Title)
	require.Contains(t, workflow.ArtifactFor(4, sc, stamp).Body, "RUNBOOK: Latency + 5xx after Deploy")
	require.Contains(t, workflow.ArtifactFor(6, sc, stamp).Body, "error rate: 0.3% (below 1.0%)")
}

func TestArtifactFor_Golden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	sc := deployScenario()

	g.Assert(t, "rca_draft", []byte(workflow.ArtifactFor(5, sc, stamp).Body+"\n"))
	g.Assert(t, "executive_summary", []byte(workflow.ArtifactFor(7, sc, stamp).Body+"\n"))
}
