package visibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/placard/internal/breakpoint"
	"github.com/alexisbeaulieu97/placard/internal/predicate"
	"github.com/alexisbeaulieu97/placard/internal/uistate"
)

// manualScheduler holds timers until the test fires them.
type manualScheduler struct {
	timers []*manualTimer
}

type manualTimer struct {
	d         time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func (m *manualScheduler) After(d time.Duration, fn func()) func() {
	timer := &manualTimer{d: d, fn: fn}
	m.timers = append(m.timers, timer)
	return func() { timer.cancelled = true }
}

// fire runs every live timer in scheduling order.
func (m *manualScheduler) fire() {
	timers := m.timers
	m.timers = nil
	for _, timer := range timers {
		if timer.cancelled || timer.fired {
			continue
		}
		timer.fired = true
		timer.fn()
	}
}

func (m *manualScheduler) live() []*manualTimer {
	var out []*manualTimer
	for _, timer := range m.timers {
		if !timer.cancelled && !timer.fired {
			out = append(out, timer)
		}
	}
	return out
}

type harness struct {
	store  *uistate.Store
	sched  *manualScheduler
	phases []Phase
}

func newHarness() *harness {
	return &harness{
		store: uistate.NewStore(uistate.Options{
			Breakpoints: breakpoint.NewTable(map[string]float64{"sm": 0, "md": 400}),
			Width:       320,
		}),
		sched: &manualScheduler{},
	}
}

func (h *harness) mount(preds ...predicate.Predicate) *Controller {
	return Mount(Config{
		ID:         "banner",
		Predicates: preds,
		Timing:     Timing{Enter: 150 * time.Millisecond, Exit: 300 * time.Millisecond},
		Store:      h.store,
		Scheduler:  h.sched,
		OnPhase:    func(p Phase) { h.phases = append(h.phases, p) },
	})
}

var darkOnly = predicate.Predicate{Category: predicate.DarkMode, Condition: predicate.IsTrue}

func TestMountWithMatchEntersThenSettlesVisible(t *testing.T) {
	t.Parallel()

	h := newHarness()
	c := h.mount()

	require.Equal(t, EnteringVisible, c.Phase())
	require.True(t, c.LastMatch())
	require.Len(t, h.sched.live(), 1)
	require.Equal(t, 150*time.Millisecond, h.sched.live()[0].d)

	h.sched.fire()
	require.Equal(t, Visible, c.Phase())
	require.Equal(t, []Phase{EnteringVisible, Visible}, h.phases)
}

func TestMountWithoutMatchStillPassesThroughEntering(t *testing.T) {
	t.Parallel()

	h := newHarness()
	c := h.mount(darkOnly)

	require.Equal(t, EnteringVisible, c.Phase())
	require.False(t, c.LastMatch())

	h.sched.fire()
	require.Equal(t, Hidden, c.Phase())
	require.False(t, c.Present())
	require.Equal(t, []Phase{EnteringVisible, Hidden}, h.phases)
}

func TestMatchFlipsDriveEnterAndExit(t *testing.T) {
	t.Parallel()

	h := newHarness()
	c := h.mount(darkOnly)
	h.sched.fire()
	h.phases = nil

	h.store.SetDarkMode(true)
	require.Equal(t, EnteringVisible, c.Phase())
	h.sched.fire()
	require.Equal(t, Visible, c.Phase())

	h.store.SetDarkMode(false)
	require.Equal(t, ExitingHidden, c.Phase())
	require.True(t, c.Present(), "exiting nodes stay attached until the exit timer runs")
	require.Equal(t, 300*time.Millisecond, h.sched.live()[0].d)

	h.sched.fire()
	require.Equal(t, Hidden, c.Phase())
	require.Equal(t, []Phase{EnteringVisible, Visible, ExitingHidden, Hidden}, h.phases)
}

func TestExitCancelledByRematch(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.store.SetDarkMode(true)
	c := h.mount(darkOnly)
	h.sched.fire()

	h.store.SetDarkMode(false)
	require.Equal(t, ExitingHidden, c.Phase())
	exitTimer := h.sched.live()[0]

	h.store.SetDarkMode(true)
	require.Equal(t, EnteringVisible, c.Phase())
	require.True(t, exitTimer.cancelled, "the pending exit is cancelled, not queued")

	h.sched.fire()
	require.Equal(t, Visible, c.Phase())
}

func TestEnterCancelledByUnmatch(t *testing.T) {
	t.Parallel()

	h := newHarness()
	c := h.mount(darkOnly)
	h.sched.fire()

	h.store.SetDarkMode(true)
	require.Equal(t, EnteringVisible, c.Phase())
	h.store.SetDarkMode(false)
	require.Equal(t, ExitingHidden, c.Phase())

	h.sched.fire()
	require.Equal(t, Hidden, c.Phase())
	require.Empty(t, h.sched.live())
}

func TestStaleTimerIsIgnored(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.store.SetDarkMode(true)
	c := h.mount(darkOnly)
	h.sched.fire()

	h.store.SetDarkMode(false)
	stale := h.sched.live()[0]
	h.store.SetDarkMode(true)

	// a timer that slipped past cancellation must not settle the new phase
	stale.fn()
	require.Equal(t, EnteringVisible, c.Phase())
}

func TestMatchDuringMountEnterSettlesVisible(t *testing.T) {
	t.Parallel()

	h := newHarness()
	c := h.mount(darkOnly)
	h.store.SetDarkMode(true)

	require.Equal(t, EnteringVisible, c.Phase())
	require.True(t, c.LastMatch())
	h.sched.fire()
	require.Equal(t, Visible, c.Phase())
}

func TestLastMatchUpdatedWithoutTransition(t *testing.T) {
	t.Parallel()

	h := newHarness()
	c := h.mount(darkOnly)
	require.Equal(t, EnteringVisible, c.Phase())

	h.store.SetDarkMode(true)
	require.True(t, c.LastMatch())
	require.Equal(t, EnteringVisible, c.Phase(), "already entering: no new transition")
	require.Len(t, h.sched.live(), 1)
}

func TestIrrelevantChangesAreIgnored(t *testing.T) {
	t.Parallel()

	h := newHarness()
	c := h.mount(darkOnly)
	h.sched.fire()
	h.phases = nil

	h.store.SetWidth(900)
	h.store.SetInteraction(uistate.Pressed)
	require.Equal(t, Hidden, c.Phase())
	require.Empty(t, h.phases)
}

func TestCloseStopsReevaluation(t *testing.T) {
	t.Parallel()

	h := newHarness()
	c := h.mount(darkOnly)
	c.Close()
	c.Close()

	require.Empty(t, h.sched.live())
	h.store.SetDarkMode(true)
	require.False(t, c.LastMatch())
	require.Equal(t, EnteringVisible, c.Phase())
}

func TestImmediateSchedulerSettlesInline(t *testing.T) {
	t.Parallel()

	store := uistate.NewStore(uistate.Options{})
	var phases []Phase
	c := Mount(Config{
		ID:         "promo",
		Predicates: []predicate.Predicate{darkOnly},
		Store:      store,
		OnPhase:    func(p Phase) { phases = append(phases, p) },
	})
	require.Equal(t, Hidden, c.Phase())

	store.SetDarkMode(true)
	require.Equal(t, Visible, c.Phase())
	store.SetDarkMode(false)
	require.Equal(t, Hidden, c.Phase())

	require.Equal(t, []Phase{EnteringVisible, Hidden, EnteringVisible, Visible, ExitingHidden, Hidden}, phases)
}

func TestPositionAwareController(t *testing.T) {
	t.Parallel()

	store := uistate.NewStore(uistate.Options{})
	store.SetProgress(uistate.Progress{Total: 3})
	pos := 2
	c := Mount(Config{
		ID:         "last-offer-note",
		Position:   &pos,
		Predicates: []predicate.Predicate{{Category: predicate.Position, Condition: predicate.Is, Value: "-1"}},
		Store:      store,
	})
	require.Equal(t, Visible, c.Phase())

	store.SetProgress(uistate.Progress{Total: 4})
	require.Equal(t, Hidden, c.Phase())
}

func TestPhaseHelpers(t *testing.T) {
	t.Parallel()

	require.False(t, Hidden.Present())
	require.True(t, ExitingHidden.Present())
	require.True(t, EnteringVisible.Transitional())
	require.False(t, Visible.Transitional())
	require.Equal(t, "exitingHidden", ExitingHidden.String())
}
