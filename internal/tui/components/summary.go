package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/placard/internal/uistate"
)

// Summary renders the UI state context as key/value lines.
type Summary struct {
	ctx uistate.Context
}

// NewSummary creates a new Summary component.
func NewSummary(ctx uistate.Context) Summary {
	return Summary{ctx: ctx}
}

// View renders the summary.
func (s Summary) View() string {
	c := s.ctx
	lines := []string{
		fmt.Sprintf("width:      %.0f (%s)", c.Width, s.breakpointName()),
		fmt.Sprintf("state:      %s", c.Interaction),
		fmt.Sprintf("dark mode:  %t", c.DarkMode),
	}
	if c.Progress.Total > 0 {
		lines = append(lines, fmt.Sprintf("offers:     %d, %d per page", c.Progress.Total, max(c.Progress.ViewableItems, 1)))
	}
	if custom := customLines(c); len(custom) > 0 {
		lines = append(lines, "custom:")
		lines = append(lines, custom...)
	}
	return strings.Join(lines, "\n")
}

func (s Summary) breakpointName() string {
	bp, ok := s.ctx.Breakpoints.At(s.ctx.BreakpointIndex)
	if !ok {
		return "no breakpoints"
	}
	return bp.Name
}

func customLines(c uistate.Context) []string {
	var lines []string
	for id, v := range c.GlobalCustomState {
		lines = append(lines, fmt.Sprintf("  %s = %d", id.Key, v))
	}
	for id, v := range c.CustomState {
		lines = append(lines, fmt.Sprintf("  [%d] %s = %d", id.Position, id.Key, v))
	}
	sort.Strings(lines)
	return lines
}
