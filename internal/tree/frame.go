package tree

import (
	"github.com/alexisbeaulieu97/placard/internal/layout"
	"github.com/alexisbeaulieu97/placard/internal/style"
	"github.com/alexisbeaulieu97/placard/internal/uistate"
	"github.com/alexisbeaulieu97/placard/internal/visibility"
)

// Element is one resolved node handed to the renderer.
type Element struct {
	ID          string
	Kind        layout.Kind
	Depth       int
	Position    *int
	Phase       visibility.Phase
	Conditional bool
	Style       style.Record
	DarkMode    bool
	Text        string
}

// Frame is the list of present elements in depth first order.
type Frame struct {
	Elements []Element
	Context  uistate.Context
}

// IDs returns the element ids in order.
func (f Frame) IDs() []string {
	ids := make([]string, len(f.Elements))
	for i, e := range f.Elements {
		ids[i] = e.ID
	}
	return ids
}

// Find returns the element with the given id.
func (f Frame) Find(id string) (Element, bool) {
	for _, e := range f.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

// Frame resolves the present subtree against the current state. Carousel
// slots outside the current page are left out.
func (t *Tree) Frame() Frame {
	ctx := t.store.Snapshot()
	frame := Frame{Context: ctx}
	if t.root != nil {
		t.collect(&frame, t.root, 0, ctx)
	}
	return frame
}

func (t *Tree) collect(frame *Frame, m *mounted, depth int, ctx uistate.Context) {
	phase := m.phase()
	if !phase.Present() {
		return
	}

	frame.Elements = append(frame.Elements, Element{
		ID:          m.node.ID,
		Kind:        m.node.Kind,
		Depth:       depth,
		Position:    m.position,
		Phase:       phase,
		Conditional: m.ctrl != nil,
		Style:       m.memo.Resolve(ctx.BreakpointIndex, ctx.Interaction),
		DarkMode:    ctx.DarkMode,
		Text:        t.offers.Expand(m.node.Text, m.position),
	})

	for i, child := range m.children {
		if m.node.Kind == layout.KindCarousel && !onPage(i, ctx.Progress) {
			continue
		}
		t.collect(frame, child, depth+1, ctx)
	}
}

func onPage(slot int, p uistate.Progress) bool {
	per := p.ViewableItems
	if per < 1 {
		per = 1
	}
	return slot/per == p.Current
}
