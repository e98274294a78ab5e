package render

import "github.com/jorge-barreto/incidentdesk/internal/fixtures"

// Placeholders shown when the security documents cannot be loaded.
const (
	ThreatsUnavailable   = "Failed to load security data. Check console + JSON paths."
	DecisionsUnavailable = "Failed to load decision log. Check console + JSON paths."
)

type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Sub   string `json:"sub"`
}

type ThreatView struct {
	Vector    string `json:"vector"`
	Threat    string `json:"threat"`
	Risk      string `json:"risk"`
	RiskClass string `json:"risk_class"`
	Status    string `json:"status"`
}

type DecisionView struct {
	Decision   string `json:"decision"`
	Meta       string `json:"meta"`
	Reason     string `json:"reason"`
	Tradeoff   string `json:"tradeoff"`
	Mitigation string `json:"mitigation"`
}

// FlowLine is one labelled line of a response flow stage.
type FlowLine struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type FlowNode struct {
	Key   string     `json:"key"`
	Title string     `json:"title"`
	Lines []FlowLine `json:"lines"`
}

// Flow is the security response flow, in order.
var Flow = []FlowNode{
	{Key: "alert", Title: "Alert", Lines: []FlowLine{
		{"Goal", "detect a meaningful signal without creating noise."},
		{"Inputs", "request bursts, error rate shifts, repeated malformed payloads."},
		{"Outputs", "severity + context snapshot."},
	}},
	{Key: "triage", Title: "Triage", Lines: []FlowLine{
		{"Goal", "decide if this is real, noisy, or expected change."},
		{"Checks", "confidence score, recent deploy/change, baseline deviations."},
		{"Decision", "proceed to validate or downgrade/close as noise."},
	}},
	{Key: "validate", Title: "Validate", Lines: []FlowLine{
		{"Goal", "confirm impact and likely cause."},
		{"Checks", "logs + metrics correlation, scope (single path vs global), repetition patterns."},
		{"Outcome", "confirmed incident vs false positive."},
	}},
	{Key: "contain", Title: "Contain", Lines: []FlowLine{
		{"Goal", "apply guardrails to stop escalation (without breaking normal use)."},
		{"Actions (demo-friendly)", "rate-limit recommendations, caching, temporary shielding."},
		{"Note", "keep actions non-destructive and observable."},
	}},
	{Key: "learn", Title: "Learn", Lines: []FlowLine{
		{"Goal", "improve detection fidelity and reduce future risk."},
		{"Outputs", "tuning thresholds, adding telemetry, documenting decisions."},
		{"Metric focus", "lower false positives, improve MTTD/MTTR."},
	}},
}

// FlowStage returns the flow node with the given key.
func FlowStage(key string) (FlowNode, bool) {
	for _, n := range Flow {
		if n.Key == key {
			return n, true
		}
	}
	return FlowNode{}, false
}

// SecurityView is the security dashboard. Failed is set when the documents
// could not be loaded; the KPI cards then keep their placeholders.
type SecurityView struct {
	Failed    bool           `json:"failed"`
	KPIs      []KPI          `json:"kpis"`
	Threats   []ThreatView   `json:"threats"`
	Decisions []DecisionView `json:"decisions"`
	Flow      []FlowNode     `json:"flow"`
	// Selected is the expanded flow stage, nil until one is chosen.
	Selected *FlowNode `json:"selected,omitempty"`
}

func metricText(m fixtures.Metric) string {
	if v, ok := m.Value(); ok {
		return v
	}
	return Placeholder
}

// SecurityPage builds the dashboard from sec, or the failure placeholders
// when loadErr is non-nil. flow selects the expanded response stage.
func SecurityPage(sec fixtures.Security, loadErr error, flow string) SecurityView {
	v := SecurityView{Flow: Flow}
	if n, ok := FlowStage(flow); ok {
		v.Selected = &n
	}
	if loadErr != nil {
		sec = fixtures.Security{}
		v.Failed = true
	}

	v.KPIs = []KPI{
		{Label: "Req/min", Value: metricText(sec.Metrics.ReqPerMin), Sub: "baseline"},
		{Label: "4xx rate", Value: metricText(sec.Metrics.Rate4xx), Sub: "invalid requests"},
		{Label: "Anomaly score", Value: metricText(sec.Metrics.AnomalyScore), Sub: "burst detection"},
		{Label: "Signal confidence", Value: metricText(sec.Metrics.SignalConfidence), Sub: "noise filter"},
	}
	for _, t := range sec.Threats {
		risk := or(t.Risk, "Monitored")
		v.Threats = append(v.Threats, ThreatView{
			Vector:    t.Vector,
			Threat:    t.Threat,
			Risk:      risk,
			RiskClass: RiskClass(risk),
			Status:    or(t.Status, "Monitored"),
		})
	}
	for _, d := range sec.Decisions {
		v.Decisions = append(v.Decisions, DecisionView{
			Decision:   or(d.Decision, "Decision"),
			Meta:       or(d.Tag, "Tradeoff") + " • " + d.Date,
			Reason:     d.Reason,
			Tradeoff:   d.Tradeoff,
			Mitigation: d.Mitigation,
		})
	}
	return v
}
