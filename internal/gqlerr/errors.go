// Package gqlerr defines the analyzer's typed, positioned error values.
// Every error the hard core raises is an *AnalysisError carrying a code, a
// position, and a formatted message; propagation is fail-fast — the first
// one returned aborts the pass (see internal/analyzer).
package gqlerr

import (
	"errors"
	"fmt"

	"github.com/gqlcpp/gql/internal/ast"
)

// Code is one of the analyzer's E00NN error codes. Only the subset the
// pattern-matching rules actually raise is defined below; there is no
// catch-all "unknown error" code — an un-coded failure is a bug, not a
// user error.
type Code string

const (
	// Variable-kind clashes.
	ECodeKindConflict       Code = "E0001" // same name declared with two different kinds
	ECodePathRedeclared     Code = "E0002" // path variable declared more than once
	ECodeSubpathRedeclared  Code = "E0003" // subpath variable declared more than once

	// Structural rule violations.
	ECodeNestedQuantifier       Code = "E0004" // QuantifiedPathPrimary entered while already active
	ECodeUnboundedNotRestrictive Code = "E0005" // unbounded quantifier outside restrictive/selective/different-edges context
	ECodeMinPathLengthZero      Code = "E0006" // accumulated minimum path length is zero where >=1 required
	ECodeMinPathLengthZeroQuant Code = "E0007" // quantified primary's own minimum path length is zero

	// Exposure conflicts.
	ECodeExposureConflict     Code = "E0008" // re-exposure with a degree other than UnconditionalSingleton on both sides
	ECodeStrictInteriorConflict Code = "E0009" // re-exposure of a strict-interior variable

	// Reference errors, dispatched by the search-condition scoper.
	ECodeRefAdjacentUnionOperand    Code = "E0051" // reference to a name declared only in an adjacent union operand
	ECodeGroupDegreeReferenceBanned Code = "E0052" // EBG/EUG-degree reference used where only a singleton is legal
	ECodeRefFromSelectivePattern    Code = "E0053" // reference to a strict-interior variable of a selective pattern
	ECodeUnknownReference           Code = "E0054" // name not found in any enclosing variable scope
	ECodeMissingFromWorkingRecord   Code = "E0113" // name exists in the working table but not the working record (aggregation)

	// Type legality.
	ECodeListTypeOnSingletonRef Code = "E0055" // list type referenced where a singleton element reference is required

	// Structural invariant violations — indicate a bug in the rewriters
	// or in upstream input, not a user mistake.
	ECodeSimplifiedPathSurvived Code = "E0060" // SimplifiedPathPatternExpression survived past the rewriters
	ECodePredicateNotLifted     Code = "E0111" // ElementPatternFiller.Predicate still present at analysis time
	ECodeFeatureNotEnabled      Code = "E0112" // construct gated by a feature the active dialect does not enable

	// Minimum node count violations.
	ECodeMinNodeCountZeroPattern Code = "E0109" // PathPattern's accumulated node count is zero
	ECodeMinNodeCountZeroSubpath Code = "E0110" // subpath-declaring ParenthesizedPathPatternExpression's node count is zero
)

// AnalysisError is the one error type the hard core ever returns.
type AnalysisError struct {
	Code     Code
	Position ast.InputPosition
	Message  string
}

func (e *AnalysisError) Error() string {
	if e.Position.IsSet() {
		return fmt.Sprintf("%s: %s: %s", e.Position, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New constructs an AnalysisError, formatting Message with fmt.Sprintf,
// mirroring the original's FormattedError(node, code, format, args...)
// constructors.
func New(code Code, pos ast.InputPosition, format string, args ...any) *AnalysisError {
	return &AnalysisError{Code: code, Position: pos, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err is an *AnalysisError carrying the given code.
// Exported as a package-level helper, not a method, because the standard
// errors.As idiom needs a concrete *AnalysisError target; this wraps that
// for call sites that only care about the code.
func Is(err error, code Code) bool {
	var ae *AnalysisError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Code == code
}
