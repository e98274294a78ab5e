package render

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jorge-barreto/incidentdesk/internal/fixtures"
)

// DefaultEscalation is shown when a runbook does not say when to escalate.
const DefaultEscalation = "If the issue persists or impact grows."

// FilterRunbooks returns the runbooks whose title, tags or "when" text
// contain query, ignoring case. A blank query matches everything.
func FilterRunbooks(rbs []fixtures.Runbook, query string) []fixtures.Runbook {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	if q == "" {
		return rbs
	}
	var out []fixtures.Runbook
	for _, rb := range rbs {
		blob := rb.Title + " " + strings.Join(rb.Tags, " ") + " " + rb.When
		if strings.Contains(fold.String(blob), q) {
			out = append(out, rb)
		}
	}
	return out
}

type RunbookItem struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Tags   []string `json:"tags"`
	Active bool     `json:"active"`
}

type RunbookDetail struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	When               string   `json:"when"`
	Goal               string   `json:"goal"`
	Steps              []string `json:"steps"`
	Escalate           string   `json:"escalate"`
	StakeholderMessage string   `json:"stakeholder_message"`
}

// RunbooksView is the filtered runbook list with one runbook expanded.
type RunbooksView struct {
	Query  string         `json:"query"`
	Items  []RunbookItem  `json:"items"`
	Detail *RunbookDetail `json:"detail,omitempty"`
}

// RunbooksPage filters rbs by query and expands the runbook with the given
// id. When id is empty or not among the matches, the first match is expanded.
func RunbooksPage(rbs []fixtures.Runbook, query, id string) RunbooksView {
	matches := FilterRunbooks(rbs, query)
	v := RunbooksView{Query: query}

	selected := -1
	for i, rb := range matches {
		if rb.ID == id {
			selected = i
			break
		}
	}
	if selected < 0 && len(matches) > 0 {
		selected = 0
	}

	for i, rb := range matches {
		v.Items = append(v.Items, RunbookItem{
			ID:     rb.ID,
			Title:  rb.Title,
			Tags:   rb.Tags,
			Active: i == selected,
		})
	}
	if selected >= 0 {
		d := RunbookDetailFor(matches[selected])
		v.Detail = &d
	}
	return v
}

func RunbookDetailFor(rb fixtures.Runbook) RunbookDetail {
	return RunbookDetail{
		ID:                 rb.ID,
		Title:              rb.Title,
		When:               rb.When,
		Goal:               rb.Goal,
		Steps:              rb.Steps,
		Escalate:           or(rb.Escalate, DefaultEscalation),
		StakeholderMessage: rb.StakeholderMessage,
	}
}

// StakeholderUpdate is the text copied from a runbook's stakeholder section.
func StakeholderUpdate(rb fixtures.Runbook) string {
	return rb.StakeholderMessage
}
