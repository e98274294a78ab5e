package workflow

// Placeholder is shown for any display field without a value.
const Placeholder = "—"

// StepStatus is the display state of a step relative to the cursor.
type StepStatus string

const (
	StepPending StepStatus = "pending"
	StepActive  StepStatus = "active"
	StepDone    StepStatus = "done"
)

// StepView is one entry of the step map.
type StepView struct {
	Number      int        `json:"number"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Tag         string     `json:"tag"`
	Status      StepStatus `json:"status"`
}

// Meta is the scenario summary panel.
type Meta struct {
	Incident string `json:"incident"`
	Ticket   string `json:"ticket"`
	Service  string `json:"service"`
	Region   string `json:"region"`
	Severity string `json:"severity"`
	Alert    string `json:"alert"`
	Scenario string `json:"scenario"`
}

// ViewModel is everything a rendering target needs to draw the workflow.
type ViewModel struct {
	Index    int        `json:"index"`
	Playing  bool       `json:"playing"`
	Complete bool       `json:"complete"`
	Category string     `json:"category"`
	Status   string     `json:"status"`
	Phase    string     `json:"phase"`
	Artifact Artifact   `json:"artifact"`
	Meta     Meta       `json:"meta"`
	Steps    []StepView `json:"steps"`
}

// Render maps a snapshot to its view. It is pure: the same snapshot always
// yields the same view.
func Render(s Snapshot) ViewModel {
	vm := ViewModel{
		Index:    s.Index,
		Playing:  s.Playing,
		Category: s.Category,
		Status:   "Idle",
		Phase:    Placeholder,
		Meta:     metaFor(s.Scenario),
		Steps:    make([]StepView, len(Steps)),
	}

	for i, st := range Steps {
		status := StepPending
		switch {
		case i < s.Index:
			status = StepDone
		case i == s.Index:
			status = StepActive
		}
		vm.Steps[i] = StepView{
			Number:      i + 1,
			Name:        st.Name,
			Description: st.Description,
			Tag:         st.Tag,
			Status:      status,
		}
	}

	if s.Index < 0 || s.Index > LastStep || s.Scenario == nil {
		vm.Artifact = Artifact{
			Title:    "Ready",
			Subtitle: "Press “Run Demo” to generate a scenario.",
		}
		if s.Playing {
			vm.Status = "Running Demo"
		}
		return vm
	}

	vm.Phase = Steps[s.Index].Name
	vm.Artifact = ArtifactFor(s.Index, s.Scenario, s.EnteredAt)
	vm.Status = vm.Artifact.Status
	if s.Index == LastStep && !s.Playing {
		vm.Complete = true
		vm.Status = "Complete"
	}
	return vm
}

func metaFor(sc *Scenario) Meta {
	if sc == nil {
		return Meta{
			Incident: Placeholder,
			Ticket:   Placeholder,
			Service:  Placeholder,
			Region:   Placeholder,
			Severity: Placeholder,
			Alert:    Placeholder,
			Scenario: Placeholder,
		}
	}
	return Meta{
		Incident: sc.IncidentID,
		Ticket:   sc.TicketID,
		Service:  sc.Service,
		Region:   sc.Region,
		Severity: sc.Severity,
		Alert:    sc.AlertID,
		Scenario: sc.Label,
	}
}
