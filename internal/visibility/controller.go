package visibility

import (
	"time"

	"github.com/alexisbeaulieu97/placard/internal/logger"
	"github.com/alexisbeaulieu97/placard/internal/predicate"
	"github.com/alexisbeaulieu97/placard/internal/uistate"
)

// Config describes a conditional node to mount.
type Config struct {
	ID         string
	Predicates []predicate.Predicate
	// Position is the offer position of the node, nil at the outer level.
	Position  *int
	Timing    Timing
	Engine    *predicate.Engine
	Store     *uistate.Store
	Scheduler Scheduler
	Logger    *logger.Logger
	// OnPhase observes every phase change in order.
	OnPhase func(Phase)
}

// Controller is the visibility state machine of one conditional node:
//
//	hidden -> enteringVisible -> visible -> exitingHidden -> hidden
//
// It re-evaluates its predicates whenever the store reports a change they
// watch. The latest evaluation always wins: a pending transition is
// cancelled and replaced rather than queued.
//
// Controllers live on the UI thread together with their store.
type Controller struct {
	id        string
	preds     []predicate.Predicate
	position  *int
	timing    Timing
	engine    *predicate.Engine
	store     *uistate.Store
	sched     Scheduler
	log       *logger.Logger
	onPhase   func(Phase)
	watch     uistate.Change
	sub       uistate.Subscription
	phase     Phase
	lastMatch bool
	cancel    func()
	gen       uint64
	closed    bool
}

// Mount creates a controller, subscribes it to the store and runs the first
// evaluation. The first transition is always an enter: a node whose
// predicates fail still passes through enteringVisible before settling
// hidden.
func Mount(cfg Config) *Controller {
	sched := cfg.Scheduler
	if sched == nil {
		sched = Immediate{}
	}
	engine := cfg.Engine
	if engine == nil {
		engine = predicate.NewEngine()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	c := &Controller{
		id:       cfg.ID,
		preds:    cfg.Predicates,
		position: cfg.Position,
		timing:   cfg.Timing,
		engine:   engine,
		store:    cfg.Store,
		sched:    sched,
		log:      log.WithFields(map[string]any{"component": "visibility", "node": cfg.ID}),
		onPhase:  cfg.OnPhase,
		watch:    predicate.Watches(cfg.Predicates),
		phase:    Hidden,
	}

	if c.store != nil && c.watch != uistate.ChangeNone {
		c.sub = c.store.Subscribe(c.handle)
	}

	c.lastMatch = c.evaluate()
	c.begin(EnteringVisible, c.timing.Enter)
	return c
}

// ID returns the node identifier.
func (c *Controller) ID() string {
	return c.id
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// LastMatch returns the result of the latest evaluation.
func (c *Controller) LastMatch() bool {
	return c.lastMatch
}

// Present reports whether the node's subtree is attached.
func (c *Controller) Present() bool {
	return c.phase.Present()
}

// Reevaluate runs the predicates against the current state and starts a
// transition when the result flipped.
func (c *Controller) Reevaluate() {
	if c.closed {
		return
	}

	match := c.evaluate()
	previous := c.lastMatch
	c.lastMatch = match
	if match == previous {
		return
	}

	if match {
		if c.phase == Hidden || c.phase == ExitingHidden {
			c.begin(EnteringVisible, c.timing.Enter)
		}
		return
	}
	if c.phase == Visible || c.phase == EnteringVisible {
		c.begin(ExitingHidden, c.timing.Exit)
	}
}

// Close cancels any pending transition and stops listening to the store.
// Later notifications and timers are ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.stopTimer()
	if c.sub != nil {
		c.sub.Unsubscribe()
		c.sub = nil
	}
}

func (c *Controller) handle(change uistate.Change) {
	if !change.Has(c.watch) {
		return
	}
	c.Reevaluate()
}

func (c *Controller) evaluate() bool {
	if len(c.preds) == 0 {
		return true
	}
	var ctx uistate.Context
	if c.store != nil {
		ctx = c.store.Snapshot()
	}
	return c.engine.Evaluate(c.preds, ctx.WithPosition(c.position))
}

// begin enters a transitional phase and schedules the settle. Any pending
// settle is superseded.
func (c *Controller) begin(phase Phase, d time.Duration) {
	c.stopTimer()
	c.gen++
	gen := c.gen
	c.setPhase(phase)
	cancel := c.sched.After(d, func() { c.settle(gen) })
	if gen == c.gen && c.phase.Transitional() {
		c.cancel = cancel
	}
}

func (c *Controller) settle(gen uint64) {
	if c.closed || gen != c.gen {
		return
	}
	c.cancel = nil
	if c.lastMatch {
		c.setPhase(Visible)
	} else {
		c.setPhase(Hidden)
	}
}

func (c *Controller) stopTimer() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) setPhase(phase Phase) {
	if c.phase == phase {
		return
	}
	previous := c.phase
	c.phase = phase
	if c.log.DebugEnabled() {
		c.log.WithFields(map[string]any{
			"from":  previous.String(),
			"to":    phase.String(),
			"match": c.lastMatch,
		}).Debug("phase changed")
	}
	if c.onPhase != nil {
		c.onPhase(phase)
	}
}
