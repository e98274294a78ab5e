package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

func TestRender_Idle(t *testing.T) {
	vm := workflow.Render(workflow.Snapshot{Index: workflow.Idle, Category: "random"})

	require.Equal(t, "Idle", vm.Status)
	require.Equal(t, workflow.Placeholder, vm.Phase)
	require.Equal(t, "Ready", vm.Artifact.Title)
	require.Empty(t, vm.Artifact.Body)
	require.False(t, vm.Complete)
	require.Equal(t, workflow.Placeholder, vm.Meta.Incident)
	require.Equal(t, workflow.Placeholder, vm.Meta.Scenario)
	require.Len(t, vm.Steps, len(workflow.Steps))
	for _, st := range vm.Steps {
		require.Equal(t, workflow.StepPending, st.Status)
	}
}

func TestRender_ActiveStep(t *testing.T) {
	sc := deployScenario()
	vm := workflow.Render(workflow.Snapshot{Index: 3, Playing: true, Scenario: sc, EnteredAt: stamp})

	require.Equal(t, "Ticket Created", vm.Status)
	require.Equal(t, workflow.Steps[3].Name, vm.Phase)
	require.Equal(t, workflow.ArtifactFor(3, sc, stamp), vm.Artifact)
	require.Equal(t, "INC-4821", vm.Meta.Incident)
	require.Equal(t, "Bad deploy (pool exhaustion)", vm.Meta.Scenario)

	for i, st := range vm.Steps {
		require.Equal(t, i+1, st.Number)
		switch {
		case i < 3:
			require.Equal(t, workflow.StepDone, st.Status, "step %d", i)
		case i == 3:
			require.Equal(t, workflow.StepActive, st.Status)
		default:
			require.Equal(t, workflow.StepPending, st.Status, "step %d", i)
		}
	}
}

func TestRender_Complete(t *testing.T) {
	vm := workflow.Render(workflow.Snapshot{Index: workflow.LastStep, Scenario: deployScenario(), EnteredAt: stamp})
	require.True(t, vm.Complete)
	require.Equal(t, "Complete", vm.Status)
	require.Equal(t, "Executive Summary", vm.Artifact.Title)
}

func TestRender_LastStepWhilePlayingIsNotComplete(t *testing.T) {
	vm := workflow.Render(workflow.Snapshot{Index: workflow.LastStep, Playing: true, Scenario: deployScenario()})
	require.False(t, vm.Complete)
	require.Equal(t, "Executive Summary Ready", vm.Status)
}

func TestRender_IsPure(t *testing.T) {
	s := workflow.Snapshot{Index: 5, Scenario: deployScenario(), EnteredAt: stamp}
	require.Equal(t, workflow.Render(s), workflow.Render(s))
}
