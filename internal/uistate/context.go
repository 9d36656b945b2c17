// Package uistate holds the mutable state that predicates and style
// resolution are evaluated against.
package uistate

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/placard/internal/breakpoint"
)

// InteractionState selects a style variant inside a style block.
type InteractionState int

const (
	Default InteractionState = iota
	Hovered
	Pressed
	Disabled
)

func (s InteractionState) String() string {
	switch s {
	case Hovered:
		return "hovered"
	case Pressed:
		return "pressed"
	case Disabled:
		return "disabled"
	default:
		return "default"
	}
}

// ParseInteractionState parses the lowercase name of an interaction state.
func ParseInteractionState(s string) (InteractionState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return Default, nil
	case "hovered", "hover":
		return Hovered, nil
	case "pressed":
		return Pressed, nil
	case "disabled":
		return Disabled, nil
	}
	return Default, fmt.Errorf("unknown interaction state %q", s)
}

// Progress is the position within a paged or looping sequence.
type Progress struct {
	Current int
	// Total is the number of offers in the sequence.
	Total int
	// ViewableItems is how many offers are shown per page.
	ViewableItems int
}

// Pages returns the number of pages needed to show Total items.
func (p Progress) Pages() int {
	if p.ViewableItems <= 1 {
		return p.Total
	}
	return (p.Total + p.ViewableItems - 1) / p.ViewableItems
}

// Identifier addresses a custom state value. Scoped identifiers belong to one
// offer position; unscoped ones are global.
type Identifier struct {
	Position int
	Scoped   bool
	Key      string
}

// LocalID returns the identifier of key at position.
func LocalID(position int, key string) Identifier {
	return Identifier{Position: position, Scoped: true, Key: key}
}

// GlobalID returns the position independent identifier of key.
func GlobalID(key string) Identifier {
	return Identifier{Key: key}
}

func (id Identifier) String() string {
	if !id.Scoped {
		return id.Key
	}
	return fmt.Sprintf("%d:%s", id.Position, id.Key)
}

// Context is a read-only snapshot of the UI state. Maps are never mutated
// after a snapshot has been handed out.
type Context struct {
	Width           float64
	BreakpointIndex int
	Interaction     InteractionState
	DarkMode        bool
	Progress        Progress
	// Position is the offer position of the node being evaluated; nil at
	// the outer level.
	Position          *int
	CustomState       map[Identifier]int
	GlobalCustomState map[Identifier]int
	Breakpoints       breakpoint.Table
}

// WithPosition returns a copy of c scoped to an offer position.
func (c Context) WithPosition(position *int) Context {
	c.Position = position
	return c
}

// CustomValue looks key up locally for the current position, then globally.
// Missing values read as 0.
func (c Context) CustomValue(key string) int {
	if c.Position != nil {
		if v, ok := c.CustomState[LocalID(*c.Position, key)]; ok {
			return v
		}
	}
	if v, ok := c.GlobalCustomState[GlobalID(key)]; ok {
		return v
	}
	return 0
}

// Change is a bitmask describing which parts of the context a write touched.
type Change uint8

const (
	ChangeWidth Change = 1 << iota
	ChangeBreakpoint
	ChangeInteraction
	ChangeDarkMode
	ChangeProgress
	ChangeCustomState

	ChangeNone Change = 0
	ChangeAll         = ChangeWidth | ChangeBreakpoint | ChangeInteraction | ChangeDarkMode | ChangeProgress | ChangeCustomState
)

// Has reports whether c shares any bit with other.
func (c Change) Has(other Change) bool {
	return c&other != 0
}

func (c Change) String() string {
	if c == ChangeNone {
		return "none"
	}
	names := []struct {
		bit  Change
		name string
	}{
		{ChangeWidth, "width"},
		{ChangeBreakpoint, "breakpoint"},
		{ChangeInteraction, "interaction"},
		{ChangeDarkMode, "darkMode"},
		{ChangeProgress, "progress"},
		{ChangeCustomState, "customState"},
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if c.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
