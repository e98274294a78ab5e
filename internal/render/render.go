// Package render turns fixture records and workflow state into page views,
// HTML pages and plain-text exports.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

// Page names.
const (
	PageIndex     = "index"
	PageIncidents = "incidents"
	PageIncident  = "incident"
	PageRCA       = "rca"
	PageRunbooks  = "runbooks"
	PageStatus    = "status"
	PageSecurity  = "security"
	PageWorkflow  = "workflow"
	PageError     = "error"
)

var pageNames = []string{
	PageIndex, PageIncidents, PageIncident, PageRCA, PageRunbooks,
	PageStatus, PageSecurity, PageWorkflow, PageError,
}

//go:embed templates/*.html
var templateFS embed.FS

// Page is the layout envelope every page is rendered in.
type Page struct {
	Title string
	// Nav is the page name highlighted in the navigation bar.
	Nav string
	// Refresh, when positive, reloads the page after that many seconds.
	Refresh int
	Data    any
}

// ErrorView is the body of PageError.
type ErrorView struct {
	Heading string
	Message string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
	loc   *time.Location
}

// New parses the templates. Times are shown in loc; nil means UTC.
func New(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	base, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames)), loc: loc}
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parsing %s page: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Location is the zone incident windows are rendered in.
func (r *Renderer) Location() *time.Location { return r.loc }

// Render writes page name. The page is rendered to a buffer first so a
// template error never produces a half-written response.
func (r *Renderer) Render(w io.Writer, name string, p Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if p.Nav == "" {
		p.Nav = name
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
