package uistate

import (
	"maps"

	"github.com/alexisbeaulieu97/placard/internal/breakpoint"
	"github.com/alexisbeaulieu97/placard/internal/logger"
)

// Handler receives the set of changes produced by one write.
type Handler func(Change)

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving notifications.
type Subscription interface {
	Unsubscribe()
}

// Offloader runs pure work away from the UI thread and delivers its result
// back on it.
type Offloader interface {
	Offload(work func() int, deliver func(int))
}

type inlineOffloader struct{}

func (inlineOffloader) Offload(work func() int, deliver func(int)) {
	deliver(work())
}

// Options configures a Store.
type Options struct {
	Breakpoints breakpoint.Table
	Width       float64
	DarkMode    bool
	Offloader   Offloader
	Logger      *logger.Logger
}

// Store owns the UI state of one rendered tree. Every mutation goes through
// the same write path, which fans out a Change to subscribers in
// registration order.
//
// A Store is not safe for concurrent use; confine it to the UI loop.
type Store struct {
	ctx       Context
	offloader Offloader
	log       *logger.Logger

	subs   []subscriptionEntry
	nextID int

	notifying bool
	pending   []Change

	widthSeq uint64
}

// NewStore creates a Store seeded from opts.
func NewStore(opts Options) *Store {
	offloader := opts.Offloader
	if offloader == nil {
		offloader = inlineOffloader{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Store{
		ctx: Context{
			Width:             opts.Width,
			BreakpointIndex:   opts.Breakpoints.IndexFor(opts.Width),
			DarkMode:          opts.DarkMode,
			CustomState:       map[Identifier]int{},
			GlobalCustomState: map[Identifier]int{},
			Breakpoints:       opts.Breakpoints,
		},
		offloader: offloader,
		log:       log.With("component", "uistate"),
	}
}

// Snapshot returns the current context. The returned value stays valid
// after later writes.
func (s *Store) Snapshot() Context {
	return s.ctx
}

// Subscribe registers a handler for every subsequent change.
func (s *Store) Subscribe(handler Handler) Subscription {
	if handler == nil {
		return noopSubscription{}
	}
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriptionEntry{id: id, handler: handler})

	return subscription{cancel: func() {
		for i, entry := range s.subs {
			if entry.id == id {
				// copy so a fan-out already iterating the old slice is unaffected
				next := make([]subscriptionEntry, 0, len(s.subs)-1)
				next = append(next, s.subs[:i]...)
				s.subs = append(next, s.subs[i+1:]...)
				return
			}
		}
	}}
}

// SetWidth records a measured width. The breakpoint index is derived through
// the Offloader; results of superseded widths are dropped.
func (s *Store) SetWidth(width float64) {
	s.widthSeq++
	seq := s.widthSeq
	table := s.ctx.Breakpoints
	s.offloader.Offload(
		func() int { return table.IndexFor(width) },
		func(index int) {
			if seq != s.widthSeq {
				return
			}
			s.applyWidth(width, index)
		},
	)
}

// ApplyWidth records a width together with an already derived breakpoint
// index. Any SetWidth result still in flight is dropped.
func (s *Store) ApplyWidth(width float64, index int) {
	s.widthSeq++
	s.applyWidth(width, index)
}

func (s *Store) applyWidth(width float64, index int) {
	s.write(func(c *Context) Change {
		var change Change
		if c.Width != width {
			c.Width = width
			change |= ChangeWidth
		}
		if c.BreakpointIndex != index {
			c.BreakpointIndex = index
			change |= ChangeBreakpoint
		}
		return change
	})
}

// SetInteraction records the interaction state.
func (s *Store) SetInteraction(state InteractionState) {
	s.write(func(c *Context) Change {
		if c.Interaction == state {
			return ChangeNone
		}
		c.Interaction = state
		return ChangeInteraction
	})
}

// SetDarkMode records the colour scheme.
func (s *Store) SetDarkMode(dark bool) {
	s.write(func(c *Context) Change {
		if c.DarkMode == dark {
			return ChangeNone
		}
		c.DarkMode = dark
		return ChangeDarkMode
	})
}

// SetProgress replaces the sequence position.
func (s *Store) SetProgress(p Progress) {
	s.write(func(c *Context) Change {
		if c.Progress == p {
			return ChangeNone
		}
		c.Progress = p
		return ChangeProgress
	})
}

// SetCurrent moves the sequence to current, wrapping around Pages.
func (s *Store) SetCurrent(current int) {
	s.write(func(c *Context) Change {
		pages := c.Progress.Pages()
		if pages > 0 {
			current = ((current % pages) + pages) % pages
		} else {
			current = 0
		}
		if c.Progress.Current == current {
			return ChangeNone
		}
		c.Progress.Current = current
		return ChangeProgress
	})
}

// SetCustomState stores a value under id. Unscoped identifiers go to the
// global map.
func (s *Store) SetCustomState(id Identifier, value int) {
	s.write(customStateOp(id, value))
}

// SetGlobalCustomState stores a value shared by every position.
func (s *Store) SetGlobalCustomState(key string, value int) {
	s.write(customStateOp(GlobalID(key), value))
}

// Batch applies several mutations and notifies once with their union.
func (s *Store) Batch(fn func(b *Batch)) {
	b := &Batch{}
	fn(b)
	s.write(func(c *Context) Change {
		var change Change
		for _, op := range b.ops {
			change |= op(c)
		}
		return change
	})
}

// write is the single mutation path. Writes issued while subscribers are
// being notified are delivered once the current fan-out completes.
func (s *Store) write(mutate func(*Context) Change) {
	change := mutate(&s.ctx)
	if change == ChangeNone {
		return
	}
	if s.notifying {
		s.pending = append(s.pending, change)
		return
	}

	s.notifying = true
	defer func() { s.notifying = false }()

	for {
		s.notify(change)
		if len(s.pending) == 0 {
			return
		}
		change = ChangeNone
		for _, queued := range s.pending {
			change |= queued
		}
		s.pending = s.pending[:0]
	}
}

func (s *Store) notify(change Change) {
	if s.log.DebugEnabled() {
		s.log.WithFields(map[string]any{
			"change":      change.String(),
			"subscribers": len(s.subs),
		}).Debug("state changed")
	}
	for _, entry := range s.subs {
		entry.handler(change)
	}
}

// Batch collects mutations applied atomically by Store.Batch.
type Batch struct {
	ops []func(*Context) Change
}

// SetDarkMode queues a colour scheme change.
func (b *Batch) SetDarkMode(dark bool) {
	b.ops = append(b.ops, func(c *Context) Change {
		if c.DarkMode == dark {
			return ChangeNone
		}
		c.DarkMode = dark
		return ChangeDarkMode
	})
}

// SetInteraction queues an interaction state change.
func (b *Batch) SetInteraction(state InteractionState) {
	b.ops = append(b.ops, func(c *Context) Change {
		if c.Interaction == state {
			return ChangeNone
		}
		c.Interaction = state
		return ChangeInteraction
	})
}

// SetProgress queues a sequence position change.
func (b *Batch) SetProgress(p Progress) {
	b.ops = append(b.ops, func(c *Context) Change {
		if c.Progress == p {
			return ChangeNone
		}
		c.Progress = p
		return ChangeProgress
	})
}

// SetCustomState queues a custom state write. Unscoped identifiers go to
// the global map.
func (b *Batch) SetCustomState(id Identifier, value int) {
	b.ops = append(b.ops, customStateOp(id, value))
}

func customStateOp(id Identifier, value int) func(c *Context) Change {
	return func(c *Context) Change {
		target := &c.CustomState
		if !id.Scoped {
			target = &c.GlobalCustomState
		}
		if current, ok := (*target)[id]; ok && current == value {
			return ChangeNone
		}
		*target = withValue(*target, id, value)
		return ChangeCustomState
	}
}

// withValue copies m and sets id, leaving m untouched for older snapshots.
func withValue(m map[Identifier]int, id Identifier, value int) map[Identifier]int {
	next := make(map[Identifier]int, len(m)+1)
	maps.Copy(next, m)
	next[id] = value
	return next
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	cancel func()
}

func (s subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type subscriptionEntry struct {
	id      int
	handler Handler
}
