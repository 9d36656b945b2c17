package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/placard/internal/uistate"
)

// Pages renders the carousel position as a page counter and bar.
type Pages struct {
	bar      progress.Model
	progress uistate.Progress
}

// NewPages creates a page indicator for the given progress.
func NewPages(p uistate.Progress) Pages {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 30
	return Pages{bar: bar, progress: p}
}

// View renders "page n/m" followed by the bar. Empty sequences render nothing.
func (p Pages) View() string {
	pages := p.progress.Pages()
	if pages == 0 {
		return ""
	}
	current := p.progress.Current + 1
	ratio := math.Min(1.0, float64(current)/float64(pages))
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("page %d/%d", current, pages))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", p.bar.ViewAs(ratio))
}
