package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/placard/internal/layout"
	"github.com/alexisbeaulieu97/placard/internal/style"
	"github.com/alexisbeaulieu97/placard/internal/tree"
)

// Lipgloss converts a resolved style record into a lipgloss style for the
// given colour scheme.
func Lipgloss(rec style.Record, dark bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Bold(rec.Bold).
		Italic(rec.Italic).
		Underline(rec.Underline).
		Faint(rec.Faint)

	if fg := rec.Foreground.For(dark); fg != "" {
		s = s.Foreground(lipgloss.Color(fg))
	}
	if bg := rec.Background.For(dark); bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}
	if border, ok := borderFor(rec.Border); ok {
		s = s.BorderStyle(border)
		if fg := rec.BorderFg.For(dark); fg != "" {
			s = s.BorderForeground(lipgloss.Color(fg))
		}
	}

	p, m := rec.Padding, rec.Margin
	s = s.Padding(p[0], p[1], p[2], p[3]).Margin(m[0], m[1], m[2], m[3])

	if rec.Width > 0 {
		s = s.Width(rec.Width)
	}
	switch rec.Align {
	case style.AlignCenter:
		s = s.Align(lipgloss.Center)
	case style.AlignEnd:
		s = s.Align(lipgloss.Right)
	}
	return s
}

func borderFor(kind style.BorderKind) (lipgloss.Border, bool) {
	switch kind {
	case style.BorderNormal:
		return lipgloss.NormalBorder(), true
	case style.BorderRounded:
		return lipgloss.RoundedBorder(), true
	case style.BorderThick:
		return lipgloss.ThickBorder(), true
	case style.BorderDouble:
		return lipgloss.DoubleBorder(), true
	}
	return lipgloss.Border{}, false
}

// RenderFrame draws every element of a frame, indented by depth. Elements
// that are still entering or already exiting are drawn faint.
func RenderFrame(frame tree.Frame) string {
	lines := make([]string, 0, len(frame.Elements))
	for _, e := range frame.Elements {
		lines = append(lines, RenderElement(e))
	}
	return strings.Join(lines, "\n")
}

// RenderElement draws a single element.
func RenderElement(e tree.Element) string {
	s := Lipgloss(e.Style, e.DarkMode)
	if e.Phase.Transitional() {
		s = s.Faint(true)
	}
	body := s.Render(label(e))
	indent := strings.Repeat("  ", e.Depth)
	return indentBlock(body, indent)
}

func label(e tree.Element) string {
	switch e.Kind {
	case layout.KindText:
		return e.Text
	case layout.KindButton:
		return fmt.Sprintf("[ %s ]", e.Text)
	}
	name := fmt.Sprintf("%s %s", e.Kind, e.ID)
	if e.Position != nil {
		name = fmt.Sprintf("%s #%d", name, *e.Position)
	}
	if e.Text != "" {
		name = fmt.Sprintf("%s: %s", name, e.Text)
	}
	return name
}

func indentBlock(block, indent string) string {
	if indent == "" {
		return block
	}
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n")
}
