// Package style selects the style record that applies for a breakpoint
// index and interaction state.
package style

import (
	"github.com/alexisbeaulieu97/placard/internal/breakpoint"
	"github.com/alexisbeaulieu97/placard/internal/uistate"
)

// Block holds the style variants of one breakpoint. Default is always set;
// missing states fall back to it.
type Block[T any] struct {
	Default  T
	Hovered  *T
	Pressed  *T
	Disabled *T
}

// For returns the variant for state, falling back to Default.
func (b Block[T]) For(state uistate.InteractionState) T {
	var variant *T
	switch state {
	case uistate.Hovered:
		variant = b.Hovered
	case uistate.Pressed:
		variant = b.Pressed
	case uistate.Disabled:
		variant = b.Disabled
	}
	if variant == nil {
		return b.Default
	}
	return *variant
}

// Resolve picks the block at index, using the last block when index runs
// past the end, and returns its variant for state. It never panics; an
// empty slice yields the zero value.
func Resolve[T any](blocks []Block[T], index int, state uistate.InteractionState) T {
	if len(blocks) == 0 {
		var zero T
		return zero
	}
	return blocks[breakpoint.Clamp(index, len(blocks))].For(state)
}

// Memo caches the last resolution of one style array. Any change of
// breakpoint index or interaction state recomputes.
type Memo[T any] struct {
	blocks []Block[T]
	valid  bool
	index  int
	state  uistate.InteractionState
	value  T
}

// NewMemo creates a Memo over blocks.
func NewMemo[T any](blocks []Block[T]) *Memo[T] {
	return &Memo[T]{blocks: blocks}
}

// Resolve returns the cached value when index and state are unchanged.
func (m *Memo[T]) Resolve(index int, state uistate.InteractionState) T {
	index = breakpoint.Clamp(index, len(m.blocks))
	if m.valid && m.index == index && m.state == state {
		return m.value
	}
	m.value = Resolve(m.blocks, index, state)
	m.index = index
	m.state = state
	m.valid = true
	return m.value
}

// Invalidate drops the cached value.
func (m *Memo[T]) Invalidate() {
	m.valid = false
}
