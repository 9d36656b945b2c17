package predicate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alexisbeaulieu97/placard/internal/breakpoint"
	"github.com/alexisbeaulieu97/placard/internal/logger"
	"github.com/alexisbeaulieu97/placard/internal/uistate"
	placarderrors "github.com/alexisbeaulieu97/placard/pkg/errors"
)

// DataSource resolves offer data referenced by creativeCopy and placeholder
// predicates. Implementations report ok=false when nothing is found.
type DataSource interface {
	Placeholder(position *int, name string) (string, bool)
	CreativeCopy(position *int, key string) (string, bool)
	CatalogCopy(position *int, key string) (string, bool)
}

// Engine evaluates predicate lists. It holds no evaluation state and may be
// shared by every node of a tree.
type Engine struct {
	data DataSource
	log  *logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithDataSource sets the offer data used by creativeCopy and placeholder
// predicates. Without one those predicates never find anything.
func WithDataSource(data DataSource) Option {
	return func(e *Engine) {
		e.data = data
	}
}

// WithLogger sets the logger receiving diagnostics for malformed predicates.
func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{log: logger.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("component", "predicate")
	return e
}

type verdict int8

const (
	notApplicable verdict = iota
	satisfied
	unsatisfied
)

// Evaluate reports whether preds hold for ctx. Predicates of one category
// are combined with AND; categories without predicates are skipped rather
// than counted as true, and the overall result is the AND of the rest. An
// empty list is true.
//
// Position predicates never hold at the outer level (nil ctx.Position).
// Malformed predicates count as unsatisfied and are logged; they never stop
// the evaluation of their siblings.
func (e *Engine) Evaluate(preds []Predicate, ctx uistate.Context) bool {
	var results [categoryCount]verdict
	rejected := false

	for _, p := range preds {
		if p.Category < 0 || int(p.Category) >= categoryCount {
			e.report(p, fmt.Errorf("unknown category %d", int(p.Category)))
			rejected = true
			continue
		}
		if results[p.Category] == unsatisfied {
			continue
		}
		if e.satisfied(p, ctx) {
			results[p.Category] = satisfied
		} else {
			results[p.Category] = unsatisfied
		}
	}

	if rejected {
		return false
	}
	for _, v := range results {
		if v == unsatisfied {
			return false
		}
	}
	return true
}

func (e *Engine) satisfied(p Predicate, ctx uistate.Context) bool {
	if !p.Category.Supports(p.Condition) {
		e.report(p, placarderrors.ErrUnsupportedCondition)
		return false
	}

	ok, err := e.check(p, ctx)
	if err != nil {
		var resolveErr *placarderrors.ResolveError
		if errors.As(err, &resolveErr) {
			if e.log.DebugEnabled() {
				e.log.WithFields(map[string]any{"predicate": p.String()}).Debug(err.Error())
			}
			return false
		}
		e.report(p, err)
		return false
	}
	return ok
}

func (e *Engine) check(p Predicate, ctx uistate.Context) (bool, error) {
	switch p.Category {
	case Progression:
		target, err := parseInt(p.Value)
		if err != nil {
			return false, err
		}
		// progression counts pages while position counts offers
		resolved := normalize(target, ctx.Progress.Pages())
		return compareInt(p.Condition, ctx.Progress.Current, resolved), nil

	case Position:
		if ctx.Position == nil {
			return false, nil
		}
		target, err := parseInt(p.Value)
		if err != nil {
			return false, err
		}
		resolved := normalize(target, ctx.Progress.Total)
		return compareInt(p.Condition, *ctx.Position, resolved), nil

	case Breakpoint:
		threshold, ok := ctx.Breakpoints.Lookup(p.Key)
		if !ok {
			return false, fmt.Errorf("unknown breakpoint %q: %w", p.Key, placarderrors.ErrMalformedValue)
		}
		return compareFloat(p.Condition, breakpoint.Round(ctx.Width), breakpoint.Round(threshold)), nil

	case DarkMode:
		return ctx.DarkMode == (p.Condition == IsTrue), nil

	case StaticBoolean:
		value, err := strconv.ParseBool(strings.TrimSpace(p.Value))
		if err != nil {
			return false, placarderrors.ErrMalformedValue
		}
		return value == (p.Condition == IsTrue), nil

	case StaticString:
		equal := p.Input == p.Value
		return equal == (p.Condition == Is), nil

	case CreativeCopy:
		present := e.copyPresent(ctx.Position, p.Key)
		return present == (p.Condition == Exists), nil

	case CustomState:
		target, err := parseInt(p.Value)
		if err != nil {
			return false, err
		}
		return compareInt(p.Condition, ctx.CustomValue(p.Key), target), nil

	case Placeholder:
		return e.checkPlaceholder(p, ctx)
	}
	return false, fmt.Errorf("unknown category %d", int(p.Category))
}

func (e *Engine) checkPlaceholder(p Predicate, ctx uistate.Context) (bool, error) {
	var (
		resolved string
		found    bool
	)
	if e.data != nil {
		resolved, found = e.data.Placeholder(ctx.Position, p.Key)
	}
	if !found {
		return false, placarderrors.NewResolveError(p.Key, ctx.Position)
	}

	switch p.Placeholder {
	case TextLength:
		target, err := parseInt(p.Value)
		if err != nil {
			return false, err
		}
		return compareInt(p.Condition, utf8.RuneCountInString(resolved), target), nil
	case Numeric:
		actual, err := parseFloat(resolved)
		if err != nil {
			return false, fmt.Errorf("placeholder %q resolved to %q: %w", p.Key, resolved, err)
		}
		target, err := parseFloat(p.Value)
		if err != nil {
			return false, err
		}
		return compareFloat(p.Condition, actual, target), nil
	default:
		switch p.Condition {
		case Is:
			return resolved == p.Value, nil
		case IsNot:
			return resolved != p.Value, nil
		}
		return false, placarderrors.ErrUnsupportedCondition
	}
}

// copyPresent reports whether the offer or its active catalog item carries
// non-empty copy under key.
func (e *Engine) copyPresent(position *int, key string) bool {
	if e.data == nil {
		return false
	}
	if v, ok := e.data.CreativeCopy(position, key); ok && v != "" {
		return true
	}
	if v, ok := e.data.CatalogCopy(position, key); ok && v != "" {
		return true
	}
	return false
}

func (e *Engine) report(p Predicate, err error) {
	e.log.WarnErr(
		placarderrors.NewPredicateError(p.Category.String(), p.Condition.String(), p.Value, err),
		"predicate treated as unsatisfied",
	)
}

// normalize resolves negative values relative to the end of a sequence of
// total items.
func normalize(value, total int) int {
	if value >= 0 {
		return value
	}
	return total + value
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, placarderrors.ErrMalformedValue
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, placarderrors.ErrMalformedValue
	}
	return v, nil
}

func compareInt(cond Condition, actual, target int) bool {
	switch cond {
	case Is:
		return actual == target
	case IsNot:
		return actual != target
	case IsAbove:
		return actual > target
	case IsBelow:
		return actual < target
	}
	return false
}

func compareFloat(cond Condition, actual, target float64) bool {
	switch cond {
	case Is:
		return actual == target
	case IsNot:
		return actual != target
	case IsAbove:
		return actual > target
	case IsBelow:
		return actual < target
	}
	return false
}
