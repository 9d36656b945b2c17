package config

import (
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/placard/internal/layout"
	"github.com/alexisbeaulieu97/placard/internal/offer"
	"github.com/alexisbeaulieu97/placard/internal/predicate"
	"github.com/alexisbeaulieu97/placard/internal/style"
	"github.com/alexisbeaulieu97/placard/internal/uistate"
	"github.com/alexisbeaulieu97/placard/internal/visibility"
)

// ToDocument converts a validated configuration into the immutable layout
// model consumed by the runtime.
func ToDocument(cfg *Config) (*layout.Document, error) {
	if cfg == nil {
		return nil, fmt.Errorf("convert layout: configuration is nil")
	}

	root, err := convertNode(cfg.Root)
	if err != nil {
		return nil, err
	}

	doc := &layout.Document{
		Name:        cfg.Name,
		Breakpoints: make(map[string]float64, len(cfg.Breakpoints)),
		Root:        root,
		Offers:      make([]offer.Offer, 0, len(cfg.Offers)),
		Scenario:    make([]layout.Step, 0, len(cfg.Scenario)),
	}
	for name, width := range cfg.Breakpoints {
		doc.Breakpoints[name] = width
	}
	for _, o := range cfg.Offers {
		doc.Offers = append(doc.Offers, convertOffer(o))
	}
	for i, s := range cfg.Scenario {
		step, err := convertStep(s)
		if err != nil {
			return nil, fmt.Errorf("convert scenario[%d]: %w", i, err)
		}
		doc.Scenario = append(doc.Scenario, step)
	}
	return doc, nil
}

func convertNode(n *Node) (*layout.Node, error) {
	out := &layout.Node{
		ID:            n.ID,
		Kind:          layout.Kind(n.Type),
		Text:          n.Text,
		ViewableItems: n.ViewableItems,
		Timing: visibility.Timing{
			Enter: time.Duration(n.Transition.Enter),
			Exit:  time.Duration(n.Transition.Exit),
		},
	}

	for i, p := range n.When {
		converted, err := convertPredicate(p)
		if err != nil {
			return nil, fmt.Errorf("convert node %s when[%d]: %w", n.ID, i, err)
		}
		out.Predicates = append(out.Predicates, converted)
	}

	for _, block := range n.Styles {
		out.Styles = append(out.Styles, convertBlock(block))
	}

	for _, child := range n.Children {
		converted, err := convertNode(child)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, converted)
	}
	return out, nil
}

func convertPredicate(p Predicate) (predicate.Predicate, error) {
	category, err := predicate.ParseCategory(p.Type)
	if err != nil {
		return predicate.Predicate{}, err
	}
	condition, err := predicate.ParseCondition(p.Condition)
	if err != nil {
		return predicate.Predicate{}, err
	}
	kind, err := predicate.ParsePlaceholderKind(p.Kind)
	if err != nil {
		return predicate.Predicate{}, err
	}
	return predicate.Predicate{
		Category:    category,
		Condition:   condition,
		Key:         p.Key,
		Value:       p.Value,
		Input:       p.Input,
		Placeholder: kind,
	}, nil
}

func convertBlock(b StyleBlock) style.Block[style.Record] {
	base := b.Default.partial().Merge(style.Record{})
	block := style.Block[style.Record]{Default: base}
	if b.Hovered != nil {
		v := b.Hovered.partial().Merge(base)
		block.Hovered = &v
	}
	if b.Pressed != nil {
		v := b.Pressed.partial().Merge(base)
		block.Pressed = &v
	}
	if b.Disabled != nil {
		v := b.Disabled.partial().Merge(base)
		block.Disabled = &v
	}
	return block
}

func (s Style) partial() style.Partial {
	p := style.Partial{
		Width:     s.Width,
		Bold:      s.Bold,
		Italic:    s.Italic,
		Underline: s.Underline,
		Faint:     s.Faint,
	}
	if s.Foreground != nil {
		p.Foreground = &style.Color{Light: s.Foreground.Light, Dark: s.Foreground.Dark}
	}
	if s.Background != nil {
		p.Background = &style.Color{Light: s.Background.Light, Dark: s.Background.Dark}
	}
	if s.BorderColor != nil {
		p.BorderFg = &style.Color{Light: s.BorderColor.Light, Dark: s.BorderColor.Dark}
	}
	if s.Border != nil {
		kind := style.BorderKind(*s.Border)
		if *s.Border == "none" {
			kind = style.BorderNone
		}
		p.Border = &kind
	}
	if s.Padding != nil {
		sp := style.Spacing(*s.Padding)
		p.Padding = &sp
	}
	if s.Margin != nil {
		sp := style.Spacing(*s.Margin)
		p.Margin = &sp
	}
	if s.Align != nil {
		align := style.Align(*s.Align)
		if *s.Align == "start" {
			align = style.AlignStart
		}
		p.Align = &align
	}
	return p
}

func convertOffer(o Offer) offer.Offer {
	out := offer.Offer{
		ID:            o.ID,
		CreativeCopy:  o.CreativeCopy,
		Attributes:    o.Attributes,
		ActiveCatalog: o.ActiveCatalog,
	}
	for _, item := range o.Catalog {
		out.Catalog = append(out.Catalog, offer.CatalogItem{
			ID:     item.ID,
			Title:  item.Title,
			Price:  item.Price,
			Copy:   item.Copy,
			Fields: item.Fields,
		})
	}
	return out
}

func convertStep(s Step) (layout.Step, error) {
	out := layout.Step{
		After:    time.Duration(s.After),
		Width:    s.Width,
		DarkMode: s.DarkMode,
		Current:  s.Current,
	}
	if s.State != "" {
		state, err := uistate.ParseInteractionState(s.State)
		if err != nil {
			return layout.Step{}, err
		}
		out.Interaction = &state
	}
	for _, w := range s.Custom {
		out.Custom = append(out.Custom, layout.CustomWrite{Position: w.Position, Key: w.Key, Value: w.Value})
	}
	return out, nil
}
