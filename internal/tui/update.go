package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/placard/internal/uistate"
)

// Update handles Bubbletea messages and forwards them to the UI state store.
// Every store write happens here, on the program goroutine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tree.Store().SetWidth(float64(msg.Width))
		return m, m.fx.drain()

	case widthMsg:
		msg.deliver(msg.index)
		return m, m.fx.drain()

	case timerMsg:
		m.fx.fire(msg.id)
		return m, m.fx.drain()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.QuitMsg:
		m.quitting = true
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	store := m.tree.Store()
	ctx := store.Snapshot()

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		m.tree.Unmount()
		return m, tea.Quit
	case "d":
		store.SetDarkMode(!ctx.DarkMode)
	case "1":
		store.SetInteraction(uistate.Default)
	case "2":
		store.SetInteraction(uistate.Hovered)
	case "3":
		store.SetInteraction(uistate.Pressed)
	case "4":
		store.SetInteraction(uistate.Disabled)
	case "right", "l":
		store.SetCurrent(ctx.Progress.Current + 1)
	case "left", "h":
		store.SetCurrent(ctx.Progress.Current - 1)
	case "+", "=":
		m.adjustCustom(ctx, 1)
	case "-", "_":
		m.adjustCustom(ctx, -1)
	case "n":
		if m.nextStep < len(m.doc.Scenario) {
			step := m.doc.Scenario[m.nextStep]
			m.nextStep++
			m.log.With("step", m.nextStep).Debug("applying scenario step")
			m.tree.Apply(step)
		}
	default:
		return m, nil
	}

	return m, m.fx.drain()
}

func (m Model) adjustCustom(ctx uistate.Context, delta int) {
	if m.customKey == "" {
		return
	}
	current := ctx.GlobalCustomState[uistate.GlobalID(m.customKey)]
	m.tree.Store().SetGlobalCustomState(m.customKey, current+delta)
}
