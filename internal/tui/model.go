// Package tui is the interactive terminal stepper for the incident workflow.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

const (
	defaultWidth  = 100
	stepsWidth    = 44
	minBodyWidth  = 30
	footerPadding = 1
)

type snapshotMsg struct {
	snap workflow.Snapshot
	ok   bool
}

// Model renders a Controller and maps keys onto its operations.
type Model struct {
	ctrl    *workflow.Controller
	updates <-chan workflow.Snapshot

	vm   workflow.ViewModel
	spin spinner.Model

	width  int
	height int

	// closed is set once the controller's update channel is closed.
	closed bool
}

// New subscribes to c and returns a model showing its current state.
func New(c *workflow.Controller) *Model {
	spin := spinner.New()
	spin.Spinner = spinner.Line
	return &Model{
		ctrl:    c,
		updates: c.Subscribe(),
		vm:      c.View(),
		spin:    spin,
		width:   defaultWidth,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.updates), m.spin.Tick)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case snapshotMsg:
		if !msg.ok {
			m.closed = true
			return m, nil
		}
		m.vm = workflow.Render(msg.snap)
		return m, waitForSnapshot(m.updates)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r":
		m.ctrl.Run()
	case "n", " ", "right":
		m.ctrl.Next()
	case "x":
		m.ctrl.Reset()
	case "s":
		m.ctrl.Select(nextCategory(m.vm.Category))
	case "1", "2", "3", "4", "5", "6", "7", "8":
		m.ctrl.GoToStep(int(key[0] - '1'))
	default:
		return m, nil
	}
	m.vm = m.ctrl.View()
	return m, nil
}

// nextCategory cycles random → each catalog category → random.
func nextCategory(current string) string {
	keys := append([]string{workflow.CategoryRandom}, workflow.Categories()...)
	for i, k := range keys {
		if k == current {
			return keys[(i+1)%len(keys)]
		}
	}
	return workflow.CategoryRandom
}

func categoryName(key string) string {
	if label := workflow.CategoryLabel(key); label != "" {
		return label
	}
	return "Random"
}

func waitForSnapshot(updates <-chan workflow.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		return snapshotMsg{snap: s, ok: ok}
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.meta())
	b.WriteString("\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.stepsPanel(), m.artifactPanel())
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) header() string {
	title := titleStyle.Render("Incident Workflow")
	var pill string
	switch {
	case m.vm.Complete:
		pill = donePillStyle.Render(m.vm.Status)
	case m.vm.Playing:
		pill = pillStyle.Render(m.spin.View() + " " + m.vm.Status)
	case m.vm.Index == workflow.Idle:
		pill = idlePillStyle.Render(m.vm.Status)
	default:
		pill = pillStyle.Render(m.vm.Status)
	}
	return title + "  " + pill + "  " + mutedStyle.Render("Phase: "+m.vm.Phase)
}

func (m *Model) meta() string {
	mt := m.vm.Meta
	pairs := []struct{ k, v string }{
		{"Incident", mt.Incident},
		{"Ticket", mt.Ticket},
		{"Alert", mt.Alert},
		{"Service", mt.Service},
		{"Region", mt.Region},
		{"Severity", mt.Severity},
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = mutedStyle.Render(p.k+":") + " " + p.v
	}
	line := strings.Join(parts, "  ")
	return line + "\n" + mutedStyle.Render("Scenario:") + " " + mt.Scenario
}

func (m *Model) stepsPanel() string {
	lines := make([]string, 0, len(m.vm.Steps))
	for _, st := range m.vm.Steps {
		label := fmt.Sprintf("%d. %s", st.Number, st.Name)
		switch st.Status {
		case workflow.StepDone:
			lines = append(lines, okStyle.Render("✓ "+label))
		case workflow.StepActive:
			lines = append(lines, activeStyle.Render("▶ "+label)+" "+warnStyle.Render("["+st.Tag+"]"))
		default:
			lines = append(lines, mutedStyle.Render("· "+label))
		}
		lines = append(lines, mutedStyle.Render("    "+st.Description))
	}
	return panelStyle.Width(stepsWidth).Render(strings.Join(lines, "\n"))
}

func (m *Model) artifactPanel() string {
	w := m.width - stepsWidth - 6
	if w < minBodyWidth {
		w = minBodyWidth
	}
	a := m.vm.Artifact
	content := titleStyle.Render(a.Title)
	if a.Subtitle != "" {
		content += "\n" + mutedStyle.Render(a.Subtitle)
	}
	if a.Body != "" {
		content += "\n\n" + a.Body
	}
	return panelStyle.Width(w).Render(content)
}

func (m *Model) footer() string {
	help := fmt.Sprintf("r run • n/space next • x reset • 1-8 jump • s scenario (%s) • q quit",
		categoryName(m.vm.Category))
	if m.closed {
		help = "workflow closed • q quit"
	}
	return lipgloss.NewStyle().PaddingLeft(footerPadding).Render(mutedStyle.Render(help))
}

// Run shows the stepper until the user quits or ctx is cancelled.
func Run(ctx context.Context, c *workflow.Controller, opts ...tea.ProgramOption) error {
	m := New(c)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	_, err := p.Run()
	return err
}
