package render

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholder is shown for empty display values.
const Placeholder = "—"

// WhenLayout formats the ends of an incident time window.
const WhenLayout = "Jan 02, 2006, 03:04 PM"

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// SeverityPill maps a severity to its pill class: high is bad, medium is
// warn, anything else (including empty) is good.
func SeverityPill(sev string) string {
	switch {
	case strings.EqualFold(sev, "high"):
		return "bad"
	case strings.EqualFold(sev, "medium"):
		return "warn"
	default:
		return "good"
	}
}

// FormatWhen renders an incident window as "start → end" in loc. Values that
// are not RFC 3339 timestamps are shown as written; empty ends show the
// placeholder.
func FormatWhen(start, end string, loc *time.Location) string {
	return formatInstant(start, loc) + " → " + formatInstant(end, loc)
}

func formatInstant(s string, loc *time.Location) string {
	if s == "" {
		return Placeholder
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(WhenLayout)
}

// DotClass maps a service or banner state to its indicator class.
func DotClass(state string) string {
	switch {
	case strings.EqualFold(state, "operational"):
		return "dot-green"
	case strings.EqualFold(state, "degraded"):
		return "dot-yellow"
	default:
		return "dot-red"
	}
}

// PillText maps a service or banner state to its headline.
func PillText(state string) string {
	switch {
	case strings.EqualFold(state, "operational"):
		return "All systems normal"
	case strings.EqualFold(state, "degraded"):
		return "Degraded performance"
	default:
		return "Service disruption"
	}
}

// LevelPill maps a status update level to its pill class.
func LevelPill(level string) string {
	switch level {
	case "high":
		return "bad"
	case "medium":
		return "warn"
	default:
		return "good"
	}
}

// LevelLabel is the upper-cased level, "LOW" when unset.
func LevelLabel(level string) string {
	return upperCase(or(level, "low"))
}

// RiskClass maps a threat risk to its pill classes.
func RiskClass(risk string) string {
	switch {
	case strings.EqualFold(risk, "accepted"):
		return "sec-risk-pill r-accepted"
	case strings.EqualFold(risk, "monitored"):
		return "sec-risk-pill r-monitored"
	case strings.EqualFold(risk, "mitigated"):
		return "sec-risk-pill r-mitigated"
	default:
		return "sec-risk-pill"
	}
}

// upperCase allocates a Caser per call; Casers carry state and must not be
// shared between goroutines.
func upperCase(s string) string {
	return cases.Upper(language.Und).String(s)
}
