package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerMsg fires a scheduled visibility transition.
type timerMsg struct {
	id uint64
}

// widthMsg delivers a breakpoint index computed off the UI goroutine.
type widthMsg struct {
	index   int
	deliver func(int)
}

// effects turns scheduler and offloader requests made during Update into
// bubbletea commands. It implements visibility.Scheduler and
// uistate.Offloader; both are only called from Update.
type effects struct {
	nextID  uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

func newEffects() *effects {
	return &effects{pending: make(map[uint64]func())}
}

// After schedules fn through a tea.Tick. The returned func cancels it.
func (e *effects) After(d time.Duration, fn func()) func() {
	e.nextID++
	id := e.nextID
	e.pending[id] = fn
	e.queued = append(e.queued, tea.Tick(d, func(time.Time) tea.Msg { return timerMsg{id: id} }))
	return func() { delete(e.pending, id) }
}

// Offload runs work inside a command and hands the result back as a message.
func (e *effects) Offload(work func() int, deliver func(int)) {
	e.queued = append(e.queued, func() tea.Msg {
		return widthMsg{index: work(), deliver: deliver}
	})
}

// fire runs the callback of a timer that has not been cancelled.
func (e *effects) fire(id uint64) {
	fn, ok := e.pending[id]
	if !ok {
		return
	}
	delete(e.pending, id)
	fn()
}

// drain returns the commands queued since the last call.
func (e *effects) drain() tea.Cmd {
	if len(e.queued) == 0 {
		return nil
	}
	cmds := e.queued
	e.queued = nil
	return tea.Batch(cmds...)
}
