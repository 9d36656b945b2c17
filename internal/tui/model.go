// Package tui implements the interactive layout preview.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/placard/internal/layout"
	"github.com/alexisbeaulieu97/placard/internal/logger"
	"github.com/alexisbeaulieu97/placard/internal/predicate"
	"github.com/alexisbeaulieu97/placard/internal/tree"
	"github.com/alexisbeaulieu97/placard/internal/uistate"
)

// Options configures NewModel.
type Options struct {
	Width    float64
	DarkMode bool
	// CustomKey is the global custom state key changed by + and -. When
	// empty the first custom state key used by the document is picked.
	CustomKey string
	Logger    *logger.Logger
}

// Model contains the Bubbletea state for the layout preview.
type Model struct {
	doc       *layout.Document
	tree      *tree.Tree
	fx        *effects
	log       *logger.Logger
	spinner   spinner.Model
	customKey string
	nextStep  int
	width     int
	height    int
	quitting  bool
}

// NewModel mounts doc and returns a preview model for it.
func NewModel(doc *layout.Document, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	fx := newEffects()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = enterStyle

	key := opts.CustomKey
	if key == "" {
		key = firstCustomKey(doc.Root)
	}

	t := tree.Mount(doc, tree.Options{
		Width:     opts.Width,
		DarkMode:  opts.DarkMode,
		Scheduler: fx,
		Offloader: fx,
		Logger:    log,
	})

	return Model{
		doc:       doc,
		tree:      t,
		fx:        fx,
		log:       log.With("component", "preview"),
		spinner:   s,
		customKey: key,
	}
}

// Init starts the spinner and any transitions queued while mounting.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fx.drain())
}

// Tree exposes the mounted layout.
func (m Model) Tree() *tree.Tree {
	return m.tree
}

// Context returns the current UI state snapshot.
func (m Model) Context() uistate.Context {
	return m.tree.Store().Snapshot()
}

// CustomKey returns the custom state key bound to + and -.
func (m Model) CustomKey() string {
	return m.customKey
}

// IsQuitting reports whether the user asked to leave.
func (m Model) IsQuitting() bool {
	return m.quitting
}

func firstCustomKey(root *layout.Node) string {
	var key string
	layout.Walk(root, func(n *layout.Node, _ int) bool {
		if key != "" {
			return false
		}
		for _, p := range n.Predicates {
			if p.Category == predicate.CustomState {
				key = p.Key
				return false
			}
		}
		return true
	})
	return key
}
