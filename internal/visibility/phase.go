// Package visibility drives the presence of conditional subtrees through
// enter and exit transitions.
package visibility

import "time"

// Phase is the presence state of a conditional node. Renderers map it to
// presence and opacity; they never decide visibility themselves.
type Phase int

const (
	Hidden Phase = iota
	EnteringVisible
	Visible
	ExitingHidden
)

func (p Phase) String() string {
	switch p {
	case EnteringVisible:
		return "enteringVisible"
	case Visible:
		return "visible"
	case ExitingHidden:
		return "exitingHidden"
	default:
		return "hidden"
	}
}

// Present reports whether the subtree is attached. An exiting node stays
// attached until its exit transition has run.
func (p Phase) Present() bool {
	return p != Hidden
}

// Transitional reports whether the phase is waiting on a timer.
func (p Phase) Transitional() bool {
	return p == EnteringVisible || p == ExitingHidden
}

// Timing holds the durations of the enter and exit transitions.
type Timing struct {
	Enter time.Duration
	Exit  time.Duration
}

// Scheduler runs fn once after d on the UI thread. The returned cancel
// function prevents fn from running if it has not yet; calling it more than
// once is safe.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// Immediate is a Scheduler that ignores durations and runs fn inline. It is
// used when only the settled state matters.
type Immediate struct{}

// After runs fn before returning.
func (Immediate) After(_ time.Duration, fn func()) func() {
	fn()
	return func() {}
}
