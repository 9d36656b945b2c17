package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents a full layout document.
type Config struct {
	Version     string             `yaml:"version" validate:"required,semver"`
	Name        string             `yaml:"name" validate:"required,min=1,max=100"`
	Description string             `yaml:"description,omitempty"`
	Breakpoints map[string]float64 `yaml:"breakpoints,omitempty" validate:"omitempty,dive,keys,breakpoint_name,endkeys,min=0"`
	Offers      []Offer            `yaml:"offers,omitempty" validate:"omitempty,dive"`
	Root        *Node              `yaml:"root" validate:"required"`
	Scenario    []Step             `yaml:"scenario,omitempty" validate:"omitempty,dive"`
}

// Offer is the data bound to one carousel slot.
type Offer struct {
	ID            string            `yaml:"id" validate:"required"`
	CreativeCopy  map[string]string `yaml:"creative_copy,omitempty"`
	Attributes    map[string]string `yaml:"attributes,omitempty"`
	Catalog       []CatalogItem     `yaml:"catalog,omitempty" validate:"omitempty,dive"`
	ActiveCatalog int               `yaml:"active_catalog,omitempty" validate:"min=0"`
}

// CatalogItem is a purchasable item attached to an offer.
type CatalogItem struct {
	ID     string            `yaml:"id" validate:"required"`
	Title  string            `yaml:"title,omitempty"`
	Price  string            `yaml:"price,omitempty"`
	Copy   map[string]string `yaml:"copy,omitempty"`
	Fields map[string]string `yaml:"fields,omitempty"`
}

// Node describes one element of the layout tree.
type Node struct {
	ID            string       `yaml:"id" validate:"required,node_id"`
	Type          string       `yaml:"type" validate:"required,oneof=column row text button carousel"`
	Text          string       `yaml:"text,omitempty"`
	When          []Predicate  `yaml:"when,omitempty" validate:"omitempty,dive"`
	Styles        []StyleBlock `yaml:"styles,omitempty" validate:"omitempty,dive"`
	Transition    Transition   `yaml:"transition,omitempty"`
	ViewableItems int          `yaml:"viewable_items,omitempty" validate:"omitempty,min=1,max=10"`
	Children      []*Node      `yaml:"children,omitempty" validate:"omitempty,dive,required"`
}

// Transition holds enter and exit durations.
type Transition struct {
	Enter Duration `yaml:"enter,omitempty"`
	Exit  Duration `yaml:"exit,omitempty"`
}

// Predicate is the YAML form of a visibility condition. Value holds the raw
// scalar so malformed values survive parsing and fail only at evaluation.
type Predicate struct {
	Type      string `yaml:"type" validate:"required,category"`
	Condition string `yaml:"condition" validate:"required,condition"`
	Key       string `yaml:"key,omitempty"`
	Value     string `yaml:"value,omitempty"`
	Input     string `yaml:"input,omitempty"`
	Kind      string `yaml:"kind,omitempty" validate:"omitempty,oneof=textValue textLength numeric"`
}

// UnmarshalYAML accepts numbers and booleans for value and input, keeping
// their literal text.
func (p *Predicate) UnmarshalYAML(value *yaml.Node) error {
	type basePredicate struct {
		Type      string    `yaml:"type"`
		Condition string    `yaml:"condition"`
		Key       string    `yaml:"key"`
		Value     yaml.Node `yaml:"value"`
		Input     yaml.Node `yaml:"input"`
		Kind      string    `yaml:"kind"`
	}

	var base basePredicate
	if err := value.Decode(&base); err != nil {
		return err
	}

	scalar := func(field string, n yaml.Node) (string, error) {
		if n.Kind == 0 || n.ShortTag() == "!!null" {
			return "", nil
		}
		if n.Kind != yaml.ScalarNode {
			return "", fmt.Errorf("line %d: predicate %s must be a scalar", n.Line, field)
		}
		return n.Value, nil
	}

	v, err := scalar("value", base.Value)
	if err != nil {
		return err
	}
	in, err := scalar("input", base.Input)
	if err != nil {
		return err
	}

	*p = Predicate{
		Type:      base.Type,
		Condition: base.Condition,
		Key:       base.Key,
		Value:     v,
		Input:     in,
		Kind:      base.Kind,
	}
	return nil
}

// StyleBlock is the YAML form of one breakpoint's style variants. State
// overrides are merged onto default.
type StyleBlock struct {
	Default  Style  `yaml:"default"`
	Hovered  *Style `yaml:"hovered,omitempty"`
	Pressed  *Style `yaml:"pressed,omitempty"`
	Disabled *Style `yaml:"disabled,omitempty"`
}

// Style is a sparse style record.
type Style struct {
	Foreground  *Color   `yaml:"foreground,omitempty"`
	Background  *Color   `yaml:"background,omitempty"`
	Border      *string  `yaml:"border,omitempty" validate:"omitempty,oneof=none normal rounded thick double"`
	BorderColor *Color   `yaml:"border_color,omitempty"`
	Padding     *Spacing `yaml:"padding,omitempty"`
	Margin      *Spacing `yaml:"margin,omitempty"`
	Width       *int     `yaml:"width,omitempty" validate:"omitempty,min=0"`
	Align       *string  `yaml:"align,omitempty" validate:"omitempty,oneof=start center end"`
	Bold        *bool    `yaml:"bold,omitempty"`
	Italic      *bool    `yaml:"italic,omitempty"`
	Underline   *bool    `yaml:"underline,omitempty"`
	Faint       *bool    `yaml:"faint,omitempty"`
}

// Color is either a single colour or a light/dark pair.
type Color struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// UnmarshalYAML accepts "#fff" as shorthand for {light: "#fff"}.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*c = Color{Light: value.Value}
		return nil
	}
	type rawColor Color
	var raw rawColor
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*c = Color(raw)
	return nil
}

// Spacing is a top/right/bottom/left box written with CSS shorthand: one,
// two or four integers.
type Spacing [4]int

// UnmarshalYAML expands the shorthand forms.
func (s *Spacing) UnmarshalYAML(value *yaml.Node) error {
	var values []int
	if value.Kind == yaml.ScalarNode {
		var single int
		if err := value.Decode(&single); err != nil {
			return err
		}
		values = []int{single}
	} else if err := value.Decode(&values); err != nil {
		return err
	}

	switch len(values) {
	case 1:
		*s = Spacing{values[0], values[0], values[0], values[0]}
	case 2:
		*s = Spacing{values[0], values[1], values[0], values[1]}
	case 4:
		*s = Spacing{values[0], values[1], values[2], values[3]}
	default:
		return fmt.Errorf("line %d: spacing takes 1, 2 or 4 values, got %d", value.Line, len(values))
	}
	return nil
}

// Duration is a time.Duration written as "150ms" or as a number of
// milliseconds.
type Duration time.Duration

// UnmarshalYAML parses Go duration strings and bare millisecond counts.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var ms int
	if err := value.Decode(&ms); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value.Value))
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", value.Line, value.Value)
	}
	*d = Duration(parsed)
	return nil
}

// Step is one scripted state write in a scenario.
type Step struct {
	After    Duration      `yaml:"after,omitempty"`
	Width    *float64      `yaml:"width,omitempty" validate:"omitempty,min=0"`
	DarkMode *bool         `yaml:"dark_mode,omitempty"`
	State    string        `yaml:"state,omitempty" validate:"omitempty,oneof=default hovered pressed disabled"`
	Current  *int          `yaml:"current,omitempty"`
	Custom   []CustomWrite `yaml:"custom,omitempty" validate:"omitempty,dive"`
}

// CustomWrite sets a custom state value; without a position it is global.
type CustomWrite struct {
	Position *int   `yaml:"position,omitempty" validate:"omitempty,min=0"`
	Key      string `yaml:"key" validate:"required"`
	Value    int    `yaml:"value"`
}
