package render_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/incidentdesk/internal/fixtures"
	"github.com/jorge-barreto/incidentdesk/internal/render"
)

func sampleIncident() fixtures.Incident {
	return fixtures.Incident{
		ID:              "INC-1",
		Title:           "Checkout down",
		Severity:        "High",
		Status:          "Resolved",
		Where:           "payments-api (us-east-2)",
		Start:           "2025-03-14T09:12:00Z",
		End:             "2025-03-14T10:05:00Z",
		Impact:          "2% of checkouts failed",
		CustomerSymptom: "Slow checkout",
		Findings:        "Pool leak",
		Mitigation:      "Rolled back",
		Timeline: []fixtures.TimelineEntry{
			{Time: "09:12", Event: "Alert fired"},
			{Time: "09:40", Event: "Rollback complete"},
		},
		Grafana: &fixtures.Grafana{URL: "https://grafana.example.com/d/x"},
	}
}

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New(time.UTC)
	require.NoError(t, err)
	return r
}

func renderPage(t *testing.T, r *render.Renderer, name string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, render.Page{Title: name, Data: data}))
	return buf.String()
}

func TestTicketMarkdown_Golden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	inc := sampleIncident()
	require.Equal(t, "INC-1-ticket.md", render.TicketFilename(inc))
	g.Assert(t, "ticket_INC-1", []byte(render.TicketMarkdown(inc, time.UTC)))
}

func TestTicketMarkdown_NoLiveView(t *testing.T) {
	inc := sampleIncident()
	inc.Grafana = nil
	inc.Timeline = nil
	md := render.TicketMarkdown(inc, time.UTC)
	require.True(t, strings.HasSuffix(md, "## Live View\nNot configured\n"), md)
	require.Contains(t, md, "## Timeline\n\n\n## Live View")
}

func TestEmailUpdate(t *testing.T) {
	inc := sampleIncident()
	text := render.EmailUpdate(inc, time.UTC)
	require.True(t, strings.HasPrefix(text, "Subject: Update: Checkout down (INC-1)\n\nHi team,\n"))
	require.Contains(t, text, "Time window: Mar 14, 2025, 09:12 AM → Mar 14, 2025, 10:05 AM\n")
	require.Contains(t, text, "Status: Resolved\nLive View: https://grafana.example.com/d/x\n\nThanks,\n")

	inc.Grafana = nil
	require.Contains(t, render.EmailUpdate(inc, time.UTC), "Status: Resolved\n\n\nThanks,\n")
}

func TestFormatWhen(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	require.Equal(t, "Mar 14, 2025, 05:12 AM → Mar 14, 2025, 06:05 AM",
		render.FormatWhen("2025-03-14T09:12:00Z", "2025-03-14T10:05:00Z", ny))
	require.Equal(t, "yesterday → —", render.FormatWhen("yesterday", "", time.UTC))
}

func TestSeverityPill(t *testing.T) {
	require.Equal(t, "bad", render.SeverityPill("High"))
	require.Equal(t, "bad", render.SeverityPill("high"))
	require.Equal(t, "warn", render.SeverityPill("Medium"))
	require.Equal(t, "good", render.SeverityPill("Low"))
	require.Equal(t, "good", render.SeverityPill(""))
}

func TestIncidentRows_Fallbacks(t *testing.T) {
	rows := render.IncidentRows([]fixtures.Incident{{ID: "INC-7"}}, time.UTC)
	require.Len(t, rows, 1)
	require.Equal(t, "Low", rows[0].Severity)
	require.Equal(t, "good", rows[0].Pill)
	require.Equal(t, "INC-7", rows[0].Title)
	require.Equal(t, "-", rows[0].Where)
	require.Equal(t, "/incident?id=INC-7", rows[0].Link)
}

func TestIncidentDetail_Fallbacks(t *testing.T) {
	v := render.IncidentDetail(fixtures.Incident{ID: "INC-7", Evidence: []fixtures.Evidence{{Path: "a.png"}}}, time.UTC)
	require.True(t, v.Found)
	require.Equal(t, "Resolved", v.Status)
	require.Equal(t, "-", v.Impact)
	require.Equal(t, render.Placeholder, v.Findings)
	require.Equal(t, render.Placeholder, v.Mitigation)
	require.Empty(t, v.LiveView)
	require.Equal(t, "Evidence", v.Evidence[0].Alt)
}

func TestIncidentPage_FoundAndNotFound(t *testing.T) {
	r := newRenderer(t)
	incs := []fixtures.Incident{sampleIncident()}

	inc, err := fixtures.FindIncident(incs, "INC-1")
	require.NoError(t, err)
	html := renderPage(t, r, render.PageIncident, render.IncidentDetail(inc, r.Location()))
	require.Contains(t, html, "Checkout down")
	require.Contains(t, html, "Open Live View")
	require.Contains(t, html, "Rollback complete")
	require.NotContains(t, html, "Incident not found")

	_, err = fixtures.FindIncident(incs, "INC-999")
	require.ErrorIs(t, err, fixtures.ErrNotFound)
	html = renderPage(t, r, render.PageIncident, render.NotFound("INC-999"))
	require.Contains(t, html, "Incident not found")
	require.Contains(t, html, "No incident with id: INC-999")
}

func TestIncidentPage_EscapesFixtureText(t *testing.T) {
	r := newRenderer(t)
	inc := sampleIncident()
	inc.Title = `<script>alert("x")</script>`

	html := renderPage(t, r, render.PageIncident, render.IncidentDetail(inc, time.UTC))
	require.NotContains(t, html, `<script>alert`)
	require.Contains(t, html, "&lt;script&gt;")

	html = renderPage(t, r, render.PageIncidents, render.IncidentRows([]fixtures.Incident{inc}, time.UTC))
	require.NotContains(t, html, `<script>alert`)

	html = renderPage(t, r, render.PageIncident, render.NotFound(`<img src=x onerror=alert(1)>`))
	require.NotContains(t, html, "<img src=x")
}

func TestIncidentPage_NoLiveViewNoEvidence(t *testing.T) {
	r := newRenderer(t)
	inc := sampleIncident()
	inc.Grafana = nil
	inc.Timeline = nil

	html := renderPage(t, r, render.PageIncident, render.IncidentDetail(inc, time.UTC))
	require.Contains(t, html, "Live View link not configured yet.")
	require.Contains(t, html, "No evidence images linked yet.")
	require.NotContains(t, html, "What happened</th>")
}
