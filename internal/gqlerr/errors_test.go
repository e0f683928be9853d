package gqlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gqlcpp/gql/internal/ast"
)

func TestAnalysisErrorStringWithPosition(t *testing.T) {
	err := New(ECodeUnknownReference, ast.NewInputPosition(3, 7), "name %q not found", "x")
	assert.Equal(t, `3:7: E0054: name "x" not found`, err.Error())
}

func TestAnalysisErrorStringWithoutPosition(t *testing.T) {
	err := New(ECodeUnknownReference, ast.InputPosition{}, "name %q not found", "x")
	assert.Equal(t, `E0054: name "x" not found`, err.Error())
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ECodeKindConflict, ast.NewInputPosition(1, 1), "conflict")
	assert.True(t, Is(err, ECodeKindConflict))
	assert.False(t, Is(err, ECodeUnknownReference))
}

func TestIsFalseForUnrelatedError(t *testing.T) {
	assert.False(t, Is(errors.New("boom"), ECodeKindConflict))
}

func TestIsUnwrapsWrappedError(t *testing.T) {
	inner := New(ECodeMinPathLengthZero, ast.NewInputPosition(1, 1), "zero length")
	wrapped := fmt.Errorf("processing pattern: %w", inner)
	assert.True(t, Is(wrapped, ECodeMinPathLengthZero))
}
