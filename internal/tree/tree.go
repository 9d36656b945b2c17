// Package tree mounts a layout document against a UI state store and
// produces resolved frames for a renderer.
package tree

import (
	"github.com/alexisbeaulieu97/placard/internal/breakpoint"
	"github.com/alexisbeaulieu97/placard/internal/layout"
	"github.com/alexisbeaulieu97/placard/internal/logger"
	"github.com/alexisbeaulieu97/placard/internal/offer"
	"github.com/alexisbeaulieu97/placard/internal/predicate"
	"github.com/alexisbeaulieu97/placard/internal/style"
	"github.com/alexisbeaulieu97/placard/internal/uistate"
	"github.com/alexisbeaulieu97/placard/internal/visibility"
)

// Options configures Mount.
type Options struct {
	Width     float64
	DarkMode  bool
	Scheduler visibility.Scheduler
	Offloader uistate.Offloader
	Logger    *logger.Logger
	// OnPhase observes phase changes of every conditional node.
	OnPhase func(id string, phase visibility.Phase)
}

// Tree is a mounted layout. It owns the store of its UI state and must be
// used from the UI thread only.
type Tree struct {
	doc     *layout.Document
	store   *uistate.Store
	engine  *predicate.Engine
	offers  *offer.Set
	sched   visibility.Scheduler
	log     *logger.Logger
	onPhase func(string, visibility.Phase)
	root    *mounted
}

type mounted struct {
	tree     *Tree
	node     *layout.Node
	position *int
	ctrl     *visibility.Controller
	memo     *style.Memo[style.Record]
	children []*mounted
	attached bool
}

// Mount builds the store for doc and mounts its root.
func Mount(doc *layout.Document, opts Options) *Tree {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = visibility.Immediate{}
	}

	offers := offer.NewSet(doc.Offers)
	store := uistate.NewStore(uistate.Options{
		Breakpoints: breakpoint.NewTable(doc.Breakpoints),
		Width:       opts.Width,
		DarkMode:    opts.DarkMode,
		Offloader:   opts.Offloader,
		Logger:      log,
	})
	if carousel := layout.FirstCarousel(doc.Root); carousel != nil {
		store.SetProgress(uistate.Progress{
			Total:         len(carousel.Children),
			ViewableItems: carousel.ViewableItems,
		})
	}

	t := &Tree{
		doc:     doc,
		store:   store,
		engine:  predicate.NewEngine(predicate.WithDataSource(offers), predicate.WithLogger(log)),
		offers:  offers,
		sched:   sched,
		log:     log.WithFields(map[string]any{"component": "tree", "layout": doc.Name}),
		onPhase: opts.OnPhase,
	}
	if doc.Root != nil {
		t.root = t.mount(doc.Root, nil)
	}
	t.log.Debug("tree mounted")
	return t
}

// Store returns the state store. All external state writes go through it.
func (t *Tree) Store() *uistate.Store {
	return t.store
}

// Offers returns the resolution context of the tree.
func (t *Tree) Offers() *offer.Set {
	return t.offers
}

// Unmount closes every controller. The tree must not be used afterwards.
func (t *Tree) Unmount() {
	if t.root != nil {
		t.root.unmount()
		t.root = nil
	}
	t.log.Debug("tree unmounted")
}

// Controllers returns the live controllers in mount order.
func (t *Tree) Controllers() []*visibility.Controller {
	var out []*visibility.Controller
	var visit func(m *mounted)
	visit = func(m *mounted) {
		if m.ctrl != nil {
			out = append(out, m.ctrl)
		}
		for _, child := range m.children {
			visit(child)
		}
	}
	if t.root != nil {
		visit(t.root)
	}
	return out
}

// Phase returns the phase of the node with the given id. Nodes without
// predicates report Visible; unmounted nodes report Hidden.
func (t *Tree) Phase(id string) visibility.Phase {
	var phase = visibility.Hidden
	var visit func(m *mounted) bool
	visit = func(m *mounted) bool {
		if m.node.ID == id {
			phase = m.phase()
			return true
		}
		for _, child := range m.children {
			if visit(child) {
				return true
			}
		}
		return false
	}
	if t.root != nil {
		visit(t.root)
	}
	return phase
}

func (t *Tree) mount(n *layout.Node, position *int) *mounted {
	m := &mounted{
		tree:     t,
		node:     n,
		position: position,
		memo:     style.NewMemo(n.Styles),
	}
	if !n.Conditional() {
		m.attach()
		return m
	}

	// the first phase callback fires inside Mount and attaches children
	m.ctrl = visibility.Mount(visibility.Config{
		ID:         n.ID,
		Predicates: n.Predicates,
		Position:   position,
		Timing:     n.Timing,
		Engine:     t.engine,
		Store:      t.store,
		Scheduler:  t.sched,
		Logger:     t.log,
		OnPhase:    m.phaseChanged,
	})
	return m
}

func (m *mounted) phaseChanged(phase visibility.Phase) {
	if phase.Present() {
		m.attach()
	} else {
		m.detach()
	}
	if m.tree.onPhase != nil {
		m.tree.onPhase(m.node.ID, phase)
	}
}

func (m *mounted) phase() visibility.Phase {
	if m.ctrl == nil {
		return visibility.Visible
	}
	return m.ctrl.Phase()
}

// attach mounts the children once. Carousel children are offer slots and
// carry their index as position.
func (m *mounted) attach() {
	if m.attached {
		return
	}
	m.attached = true
	for i, child := range m.node.Children {
		position := m.position
		if m.node.Kind == layout.KindCarousel {
			slot := i
			position = &slot
		}
		m.children = append(m.children, m.tree.mount(child, position))
	}
}

func (m *mounted) detach() {
	if !m.attached {
		return
	}
	m.attached = false
	for _, child := range m.children {
		child.unmount()
	}
	m.children = nil
}

func (m *mounted) unmount() {
	m.detach()
	if m.ctrl != nil {
		m.ctrl.Close()
	}
}
