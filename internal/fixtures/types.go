package fixtures

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Incident is one record of incidents.json. Every field is optional.
type Incident struct {
	ID              string          `json:"id"`
	Title           string          `json:"title,omitempty"`
	Severity        string          `json:"severity,omitempty"`
	Status          string          `json:"status,omitempty"`
	Where           string          `json:"where,omitempty"`
	Start           string          `json:"start,omitempty"`
	End             string          `json:"end,omitempty"`
	Impact          string          `json:"impact,omitempty"`
	CustomerSymptom string          `json:"customer_symptom,omitempty"`
	Findings        string          `json:"findings,omitempty"`
	Mitigation      string          `json:"mitigation,omitempty"`
	Timeline        []TimelineEntry `json:"timeline,omitempty"`
	Evidence        []Evidence      `json:"evidence,omitempty"`
	Grafana         *Grafana        `json:"grafana,omitempty"`
}

type TimelineEntry struct {
	Time  string `json:"time"`
	Event string `json:"event"`
}

type Evidence struct {
	Path    string `json:"path"`
	Caption string `json:"caption,omitempty"`
}

type Grafana struct {
	URL string `json:"url,omitempty"`
}

// LiveView returns the incident's dashboard link, or "" when none is configured.
func (i Incident) LiveView() string {
	if i.Grafana == nil {
		return ""
	}
	return i.Grafana.URL
}

// RCA is one record of rca.json.
type RCA struct {
	Title           string   `json:"title,omitempty"`
	Date            string   `json:"date,omitempty"`
	Severity        string   `json:"severity,omitempty"`
	Tag             string   `json:"tag,omitempty"`
	RelatedIncident string   `json:"related_incident,omitempty"`
	WhatHappened    string   `json:"what_happened,omitempty"`
	Impact          string   `json:"impact,omitempty"`
	RootCause       string   `json:"root_cause,omitempty"`
	Changes         []string `json:"changes,omitempty"`
	Prevention      []string `json:"prevention,omitempty"`
}

// Runbook is one record of runbooks.json.
type Runbook struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	When               string   `json:"when,omitempty"`
	Goal               string   `json:"goal,omitempty"`
	Steps              []string `json:"steps,omitempty"`
	Escalate           string   `json:"escalate,omitempty"`
	StakeholderMessage string   `json:"stakeholder_message,omitempty"`
}

// Status is the single document in status.json.
type Status struct {
	Banner          *Banner   `json:"banner,omitempty"`
	LastUpdated     string    `json:"last_updated,omitempty"`
	NextUpdate      string    `json:"next_update,omitempty"`
	CustomerMessage string    `json:"customer_message,omitempty"`
	Services        []Service `json:"services,omitempty"`
	Updates         []Update  `json:"updates,omitempty"`
}

type Banner struct {
	Title string `json:"title,omitempty"`
	State string `json:"state,omitempty"`
	Body  string `json:"body,omitempty"`
}

type Service struct {
	Name    string `json:"name,omitempty"`
	Status  string `json:"status,omitempty"`
	Summary string `json:"summary,omitempty"`
	Impact  string `json:"impact,omitempty"`
	Owner   string `json:"owner,omitempty"`
	Link    string `json:"link,omitempty"`
}

type Update struct {
	Time  string `json:"time,omitempty"`
	Level string `json:"level,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Metric is a KPI value that fixtures may write as a JSON number or string.
// The zero Metric is absent.
type Metric struct {
	text string
	set  bool
}

// MetricOf returns a present metric with the given display text.
func MetricOf(text string) Metric { return Metric{text: text, set: true} }

// Value returns the display text and whether the metric was present.
func (m Metric) Value() (string, bool) { return m.text, m.set }

func (m *Metric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*m = Metric{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = MetricOf(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("metric must be a number or string: %s", data)
		}
		*m = MetricOf(n.String())
		return nil
	}
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.set {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(m.text, 64); err == nil {
		return []byte(m.text), nil
	}
	return json.Marshal(m.text)
}

// SecurityMetrics is security-metrics.json.
type SecurityMetrics struct {
	ReqPerMin        Metric `json:"req_per_min"`
	Rate4xx          Metric `json:"rate_4xx"`
	AnomalyScore     Metric `json:"anomaly_score"`
	SignalConfidence Metric `json:"signal_confidence"`
}

// Threat is one row of security-threats.json.
type Threat struct {
	Vector string `json:"vector,omitempty"`
	Threat string `json:"threat,omitempty"`
	Risk   string `json:"risk,omitempty"`
	Status string `json:"status,omitempty"`
}

// Decision is one entry of security-decisions.json.
type Decision struct {
	Decision   string `json:"decision,omitempty"`
	Tag        string `json:"tag,omitempty"`
	Date       string `json:"date,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Tradeoff   string `json:"tradeoff,omitempty"`
	Mitigation string `json:"mitigation,omitempty"`
}

// Security bundles the three security documents, which are only ever
// shown together.
type Security struct {
	Metrics   SecurityMetrics `json:"metrics"`
	Threats   []Threat        `json:"threats"`
	Decisions []Decision      `json:"decisions"`
}
