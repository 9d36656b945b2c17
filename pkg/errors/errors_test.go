package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("layout.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "layout.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "layout.yaml:12")
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("root.children[1].predicates[0]", "unknown breakpoint \"xl\"", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "root.children[1].predicates[0]", validationErr.Field)
	require.Contains(t, err.Error(), "unknown breakpoint")
}

func TestPredicateErrorWrapsCause(t *testing.T) {
	t.Parallel()

	err := NewPredicateError("customState", "isAbove", "two", ErrMalformedValue)

	var predErr *PredicateError
	require.ErrorAs(t, err, &predErr)
	require.Equal(t, "customState", predErr.Category)
	require.True(t, stdErrors.Is(err, ErrMalformedValue))
	require.Contains(t, err.Error(), `"two"`)
}

func TestResolveErrorMentionsPosition(t *testing.T) {
	t.Parallel()

	pos := 3
	require.Contains(t, NewResolveError("creativeCopy.title", &pos).Error(), "position 3")
	require.NotContains(t, NewResolveError("creativeCopy.title", nil).Error(), "position")
}
