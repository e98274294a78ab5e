package render

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jorge-barreto/incidentdesk/internal/fixtures"
)

// IncidentRow is one line of the incidents table.
type IncidentRow struct {
	ID       string `json:"id"`
	Pill     string `json:"pill"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Symptom  string `json:"symptom"`
	Where    string `json:"where"`
	When     string `json:"when"`
	Link     string `json:"link"`
}

// IncidentRows builds the incidents table in fixture order.
func IncidentRows(incs []fixtures.Incident, loc *time.Location) []IncidentRow {
	rows := make([]IncidentRow, 0, len(incs))
	for _, inc := range incs {
		rows = append(rows, IncidentRow{
			ID:       inc.ID,
			Pill:     SeverityPill(inc.Severity),
			Severity: or(inc.Severity, "Low"),
			Title:    or(inc.Title, inc.ID),
			Symptom:  inc.CustomerSymptom,
			Where:    or(inc.Where, "-"),
			When:     FormatWhen(inc.Start, inc.End, loc),
			Link:     IncidentLink(inc.ID),
		})
	}
	return rows
}

// IncidentLink is the detail page URL for an incident id.
func IncidentLink(id string) string {
	return "/incident?id=" + url.QueryEscape(id)
}

// IncidentView is the incident detail page. When Found is false only
// MissingID is meaningful.
type IncidentView struct {
	Found     bool   `json:"found"`
	MissingID string `json:"missing_id,omitempty"`

	ID         string                   `json:"id"`
	Pill       string                   `json:"pill"`
	Severity   string                   `json:"severity"`
	Title      string                   `json:"title"`
	Symptom    string                   `json:"symptom"`
	Where      string                   `json:"where"`
	When       string                   `json:"when"`
	Status     string                   `json:"status"`
	Impact     string                   `json:"impact"`
	LiveView   string                   `json:"live_view,omitempty"`
	Findings   string                   `json:"findings"`
	Mitigation string                   `json:"mitigation"`
	Timeline   []fixtures.TimelineEntry `json:"timeline,omitempty"`
	Evidence   []EvidenceView           `json:"evidence,omitempty"`
}

type EvidenceView struct {
	Path    string `json:"path"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

// NotFound is the view for an id with no matching incident.
func NotFound(id string) IncidentView {
	return IncidentView{MissingID: id}
}

// IncidentDetail builds the detail view for inc.
func IncidentDetail(inc fixtures.Incident, loc *time.Location) IncidentView {
	v := IncidentView{
		Found:      true,
		ID:         inc.ID,
		Pill:       SeverityPill(inc.Severity),
		Severity:   or(inc.Severity, "Low"),
		Title:      or(inc.Title, inc.ID),
		Symptom:    inc.CustomerSymptom,
		Where:      or(inc.Where, "-"),
		When:       FormatWhen(inc.Start, inc.End, loc),
		Status:     or(inc.Status, "Resolved"),
		Impact:     or(inc.Impact, "-"),
		LiveView:   inc.LiveView(),
		Findings:   or(inc.Findings, Placeholder),
		Mitigation: or(inc.Mitigation, Placeholder),
		Timeline:   inc.Timeline,
	}
	for _, ev := range inc.Evidence {
		v.Evidence = append(v.Evidence, EvidenceView{
			Path:    ev.Path,
			Alt:     or(ev.Caption, "Evidence"),
			Caption: ev.Caption,
		})
	}
	return v
}

// TicketFilename is the download name for an incident's ticket.
func TicketFilename(inc fixtures.Incident) string {
	return inc.ID + "-ticket.md"
}

// TicketMarkdown renders the ticket document for inc. Fields are written as
// they appear in the fixture, without display fallbacks.
func TicketMarkdown(inc fixtures.Incident, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Incident %s: %s\n\n", inc.ID, inc.Title)
	fmt.Fprintf(&b, "**Severity:** %s\n", inc.Severity)
	fmt.Fprintf(&b, "**Status:** %s\n", inc.Status)
	fmt.Fprintf(&b, "**Where:** %s\n", inc.Where)
	fmt.Fprintf(&b, "**When:** %s\n", FormatWhen(inc.Start, inc.End, loc))
	fmt.Fprintf(&b, "**Impact:** %s\n\n", inc.Impact)
	fmt.Fprintf(&b, "## Customer Symptoms\n%s\n\n", inc.CustomerSymptom)
	fmt.Fprintf(&b, "## Findings (Plain English)\n%s\n\n", inc.Findings)
	fmt.Fprintf(&b, "## Mitigation / Resolution\n%s\n\n", inc.Mitigation)

	lines := make([]string, len(inc.Timeline))
	for i, t := range inc.Timeline {
		lines[i] = "- " + t.Time + " — " + t.Event
	}
	fmt.Fprintf(&b, "## Timeline\n%s\n\n", strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "## Live View\n%s\n", or(inc.LiveView(), "Not configured"))
	return b.String()
}

// EmailUpdate renders the stakeholder email for inc.
func EmailUpdate(inc fixtures.Incident, loc *time.Location) string {
	live := ""
	if l := inc.LiveView(); l != "" {
		live = "Live View: " + l
	}
	return fmt.Sprintf(`Subject: Update: %s (%s)

Hi team,

Issue location: %s
Time window: %s
Customer impact: %s

What we found:
%s

What we did:
%s

Status: %s
%s

Thanks,
`, inc.Title, inc.ID, inc.Where, FormatWhen(inc.Start, inc.End, loc), inc.CustomerSymptom,
		inc.Findings, inc.Mitigation, inc.Status, live)
}
