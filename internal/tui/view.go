package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/placard/internal/tui/components"
	"github.com/alexisbeaulieu97/placard/internal/visibility"
)

// View renders the resolved layout followed by the state panel.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string

	phases := components.NewPhaseList(m.tree.Controllers())
	title := titleStyle.Render(fmt.Sprintf("Placard • %s", m.title()))
	if phases.Transitioning() {
		title = lipgloss.JoinHorizontal(lipgloss.Left, title, " ", m.spinner.View())
	}
	sections = append(sections, title)

	frame := m.tree.Frame()
	sections = append(sections, canvasStyle.Render(components.RenderFrame(frame)))

	if pages := components.NewPages(frame.Context.Progress).View(); pages != "" {
		sections = append(sections, sectionStyle.Render("Carousel"), pages)
	}

	sections = append(sections, sectionStyle.Render("State"), components.NewSummary(frame.Context).View())

	if entries := phases.Entries(); len(entries) > 0 {
		sections = append(sections, sectionStyle.Render("Conditions"), renderPhaseEntries(entries))
	}

	sections = append(sections, helpStyle.Render(m.help()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderPhaseEntries(entries []components.PhaseEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := fmt.Sprintf(" %s %s %s", PhaseIcon(e.Phase), e.ID, e.Phase)
		if e.Match != e.Phase.Present() {
			line += fmt.Sprintf(" (match=%t)", e.Match)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) help() string {
	parts := []string{"d dark", "1-4 state", "←/→ page"}
	if m.customKey != "" {
		parts = append(parts, fmt.Sprintf("+/- %s", m.customKey))
	}
	if len(m.doc.Scenario) > 0 {
		parts = append(parts, fmt.Sprintf("n step %d/%d", m.nextStep, len(m.doc.Scenario)))
	}
	parts = append(parts, "q quit")
	return strings.Join(parts, " • ")
}

func (m Model) title() string {
	if m.doc != nil && strings.TrimSpace(m.doc.Name) != "" {
		return m.doc.Name
	}
	return "Preview"
}

// PhaseIcon returns the glyph representing a visibility phase.
func PhaseIcon(phase visibility.Phase) string {
	switch phase {
	case visibility.Visible:
		return visibleStyle.Render("●")
	case visibility.EnteringVisible:
		return enterStyle.Render("◐")
	case visibility.ExitingHidden:
		return exitStyle.Render("◑")
	default:
		return hiddenStyle.Render("○")
	}
}
