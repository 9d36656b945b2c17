package errors

import (
	"errors"
	"fmt"
)

// ErrMalformedValue marks a predicate comparison value that could not be parsed.
var ErrMalformedValue = errors.New("malformed predicate value")

// ErrUnsupportedCondition marks a condition that does not apply to a predicate category.
var ErrUnsupportedCondition = errors.New("unsupported condition")

// ParseError represents a layout document parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures layout document validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PredicateError describes a single predicate that could not be evaluated.
// It is reported for diagnostics only; the predicate counts as unsatisfied.
type PredicateError struct {
	Category  string
	Condition string
	Value     string
	Err       error
}

// NewPredicateError constructs a PredicateError.
func NewPredicateError(category, condition, value string, err error) error {
	return &PredicateError{Category: category, Condition: condition, Value: value, Err: err}
}

func (e *PredicateError) Error() string {
	if e == nil {
		return ""
	}
	if e.Value != "" {
		return fmt.Sprintf("predicate error [%s %s %q]: %v", e.Category, e.Condition, e.Value, e.Err)
	}
	return fmt.Sprintf("predicate error [%s %s]: %v", e.Category, e.Condition, e.Err)
}

// Unwrap exposes the underlying error.
func (e *PredicateError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ResolveError indicates a placeholder reference that could not be resolved.
type ResolveError struct {
	Name     string
	Position *int
}

// NewResolveError constructs a ResolveError for the given placeholder name.
func NewResolveError(name string, position *int) error {
	return &ResolveError{Name: name, Position: position}
}

func (e *ResolveError) Error() string {
	if e == nil {
		return ""
	}
	if e.Position != nil {
		return fmt.Sprintf("unresolved placeholder %q at position %d", e.Name, *e.Position)
	}
	return fmt.Sprintf("unresolved placeholder %q", e.Name)
}
