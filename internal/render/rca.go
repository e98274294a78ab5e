package render

import "github.com/jorge-barreto/incidentdesk/internal/fixtures"

type RCAItem struct {
	Index  int    `json:"index"`
	Title  string `json:"title"`
	Meta   string `json:"meta"`
	Active bool   `json:"active"`
}

type RCADetail struct {
	Pill         string   `json:"pill"`
	Severity     string   `json:"severity"`
	Title        string   `json:"title"`
	Date         string   `json:"date"`
	Related      string   `json:"related"`
	WhatHappened string   `json:"what_happened"`
	Impact       string   `json:"impact"`
	RootCause    string   `json:"root_cause"`
	Changes      []string `json:"changes"`
	Prevention   []string `json:"prevention"`
}

// RCAView is the RCA list with the selected document expanded.
type RCAView struct {
	Items  []RCAItem  `json:"items"`
	Detail *RCADetail `json:"detail,omitempty"`
}

// RCAPage builds the RCA page with item selected expanded. An out of range
// selection falls back to the first RCA; an empty list has no detail.
func RCAPage(rcas []fixtures.RCA, selected int) RCAView {
	if selected < 0 || selected >= len(rcas) {
		selected = 0
	}
	var v RCAView
	for i, r := range rcas {
		v.Items = append(v.Items, RCAItem{
			Index:  i,
			Title:  r.Title,
			Meta:   r.Date + " • Severity: " + r.Severity + " • " + or(r.Tag, "Review"),
			Active: i == selected,
		})
	}
	if len(rcas) > 0 {
		d := RCADetailFor(rcas[selected])
		v.Detail = &d
	}
	return v
}

func RCADetailFor(r fixtures.RCA) RCADetail {
	return RCADetail{
		Pill:         SeverityPill(r.Severity),
		Severity:     r.Severity,
		Title:        r.Title,
		Date:         r.Date,
		Related:      or(r.RelatedIncident, Placeholder),
		WhatHappened: r.WhatHappened,
		Impact:       r.Impact,
		RootCause:    r.RootCause,
		Changes:      r.Changes,
		Prevention:   r.Prevention,
	}
}
