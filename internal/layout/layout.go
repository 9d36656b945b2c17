// Package layout holds the immutable node tree produced by the schema layer.
package layout

import (
	"time"

	"github.com/alexisbeaulieu97/placard/internal/offer"
	"github.com/alexisbeaulieu97/placard/internal/predicate"
	"github.com/alexisbeaulieu97/placard/internal/style"
	"github.com/alexisbeaulieu97/placard/internal/uistate"
	"github.com/alexisbeaulieu97/placard/internal/visibility"
)

// Kind is the role of a node in the tree.
type Kind string

const (
	KindColumn   Kind = "column"
	KindRow      Kind = "row"
	KindText     Kind = "text"
	KindButton   Kind = "button"
	KindCarousel Kind = "carousel"
)

// Node is one element of the tree. Nodes are never mutated after the schema
// layer hands them over.
type Node struct {
	ID   string
	Kind Kind
	Text string
	// Predicates gate the presence of the node; empty means always present.
	Predicates []predicate.Predicate
	// Styles holds one block per breakpoint.
	Styles []style.Block[style.Record]
	Timing visibility.Timing
	// ViewableItems applies to carousels: offers shown per page.
	ViewableItems int
	Children      []*Node
}

// Conditional reports whether the node needs a visibility controller.
func (n *Node) Conditional() bool {
	return len(n.Predicates) > 0
}

// Document is a complete layout handed to the runtime.
type Document struct {
	Name        string
	Breakpoints map[string]float64
	Root        *Node
	Offers      []offer.Offer
	Scenario    []Step
}

// Step is one scripted state write used by simulations.
type Step struct {
	After       time.Duration
	Width       *float64
	DarkMode    *bool
	Interaction *uistate.InteractionState
	Current     *int
	Custom      []CustomWrite
}

// CustomWrite sets a custom state value. A nil Position writes globally.
type CustomWrite struct {
	Position *int
	Key      string
	Value    int
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, fn)
	}
}

// FirstCarousel returns the first carousel found depth first.
func FirstCarousel(root *Node) *Node {
	var found *Node
	Walk(root, func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.Kind == KindCarousel {
			found = n
			return false
		}
		return true
	})
	return found
}
