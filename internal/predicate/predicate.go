// Package predicate evaluates typed visibility conditions against a UI
// state context.
package predicate

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/placard/internal/uistate"
)

// Category identifies the kind of a predicate. The set is closed.
type Category int

const (
	Progression Category = iota
	Position
	Breakpoint
	DarkMode
	StaticBoolean
	StaticString
	CreativeCopy
	CustomState
	Placeholder

	categoryCount = int(Placeholder) + 1
)

var categoryNames = [categoryCount]string{
	Progression:   "progression",
	Position:      "position",
	Breakpoint:    "breakpoint",
	DarkMode:      "darkMode",
	StaticBoolean: "staticBoolean",
	StaticString:  "staticString",
	CreativeCopy:  "creativeCopy",
	CustomState:   "customState",
	Placeholder:   "placeholder",
}

func (c Category) String() string {
	if c < 0 || int(c) >= categoryCount {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory parses a category name as written in layout documents.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown predicate category %q", s)
}

// Condition is the comparison operator of a predicate.
type Condition int

const (
	Is Condition = iota
	IsNot
	IsAbove
	IsBelow
	IsTrue
	IsFalse
	Exists
	NotExists
)

var conditionNames = map[Condition]string{
	Is:        "is",
	IsNot:     "isNot",
	IsAbove:   "isAbove",
	IsBelow:   "isBelow",
	IsTrue:    "isTrue",
	IsFalse:   "isFalse",
	Exists:    "exists",
	NotExists: "notExists",
}

func (c Condition) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("condition(%d)", int(c))
}

// ParseCondition parses a condition name as written in layout documents.
func ParseCondition(s string) (Condition, error) {
	for cond, name := range conditionNames {
		if strings.EqualFold(name, s) {
			return cond, nil
		}
	}
	return 0, fmt.Errorf("unknown predicate condition %q", s)
}

// PlaceholderKind selects how a resolved placeholder is compared.
type PlaceholderKind int

const (
	TextValue PlaceholderKind = iota
	TextLength
	Numeric
)

func (k PlaceholderKind) String() string {
	switch k {
	case TextLength:
		return "textLength"
	case Numeric:
		return "numeric"
	default:
		return "textValue"
	}
}

// ParsePlaceholderKind parses a placeholder kind name.
func ParsePlaceholderKind(s string) (PlaceholderKind, error) {
	switch strings.ToLower(s) {
	case "", "textvalue":
		return TextValue, nil
	case "textlength":
		return TextLength, nil
	case "numeric":
		return Numeric, nil
	}
	return 0, fmt.Errorf("unknown placeholder kind %q", s)
}

// Predicate is one typed condition. Which fields are read depends on
// Category:
//
//	progression, position  Value (integer, negative counts from the end)
//	breakpoint             Key (breakpoint name)
//	darkMode               Condition only
//	staticBoolean          Value ("true" or "false")
//	staticString           Input compared with Value
//	creativeCopy           Key
//	customState            Key, Value (integer)
//	placeholder            Key (placeholder name), Placeholder, Value
//
// Value stays a raw string so a malformed value only fails its own predicate.
type Predicate struct {
	Category    Category
	Condition   Condition
	Key         string
	Value       string
	Input       string
	Placeholder PlaceholderKind
}

func (p Predicate) String() string {
	var b strings.Builder
	b.WriteString(p.Category.String())
	if p.Key != "" {
		fmt.Fprintf(&b, "(%s)", p.Key)
	}
	b.WriteString(" ")
	b.WriteString(p.Condition.String())
	if p.Value != "" {
		fmt.Fprintf(&b, " %s", p.Value)
	}
	return b.String()
}

var allowedConditions = [categoryCount][]Condition{
	Progression:   {Is, IsNot, IsAbove, IsBelow},
	Position:      {Is, IsNot, IsAbove, IsBelow},
	Breakpoint:    {Is, IsNot, IsAbove, IsBelow},
	DarkMode:      {IsTrue, IsFalse},
	StaticBoolean: {IsTrue, IsFalse},
	StaticString:  {Is, IsNot},
	CreativeCopy:  {Exists, NotExists},
	CustomState:   {Is, IsNot, IsAbove, IsBelow},
	Placeholder:   {Is, IsNot, IsAbove, IsBelow},
}

// Supports reports whether cond is a valid operator for the category.
func (c Category) Supports(cond Condition) bool {
	if c < 0 || int(c) >= categoryCount {
		return false
	}
	for _, allowed := range allowedConditions[c] {
		if allowed == cond {
			return true
		}
	}
	return false
}

// Watches returns the context changes that can alter the result of preds.
// Static categories watch nothing.
func Watches(preds []Predicate) uistate.Change {
	var change uistate.Change
	for _, p := range preds {
		switch p.Category {
		case Progression, Position:
			change |= uistate.ChangeProgress
		case Breakpoint:
			change |= uistate.ChangeWidth
		case DarkMode:
			change |= uistate.ChangeDarkMode
		case CustomState:
			change |= uistate.ChangeCustomState
		}
	}
	return change
}
