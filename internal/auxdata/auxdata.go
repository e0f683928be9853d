// Package auxdata defines the read-only annotations the analyzer attaches
// to AST nodes as it exits each scope. Every struct here is set exactly
// once, by the analyzer, and observed thereafter through a shared pointer —
// never mutated in place, matching the "shared immutable aux-data" design
// note: ported as Go pointers to structs set once, not as mutable
// back-pointers.
package auxdata

// VariableKind classifies what kind of thing a declared pattern variable
// names.
type VariableKind int

const (
	NodeVariable VariableKind = iota
	EdgeVariable
	PathVariable
	SubpathVariable
)

func (k VariableKind) String() string {
	switch k {
	case NodeVariable:
		return "node"
	case EdgeVariable:
		return "edge"
	case PathVariable:
		return "path"
	case SubpathVariable:
		return "subpath"
	default:
		return "unknown"
	}
}

// DegreeOfExposure is the four-valued lattice tracking how many elements a
// variable may bind to, in order of increasing "groupness":
// US < CS < EBG < EUG.
type DegreeOfExposure int

const (
	UnconditionalSingleton DegreeOfExposure = iota
	ConditionalSingleton
	EffectivelyBoundedGroup
	EffectivelyUnboundedGroup
)

func (d DegreeOfExposure) String() string {
	switch d {
	case UnconditionalSingleton:
		return "UnconditionalSingleton"
	case ConditionalSingleton:
		return "ConditionalSingleton"
	case EffectivelyBoundedGroup:
		return "EffectivelyBoundedGroup"
	case EffectivelyUnboundedGroup:
		return "EffectivelyUnboundedGroup"
	default:
		return "unknown"
	}
}

// Max returns the greater of two degrees under US < CS < EBG < EUG.
func Max(a, b DegreeOfExposure) DegreeOfExposure {
	if a > b {
		return a
	}
	return b
}

// Variable is one entry of a GraphPatternAuxData.Variables map: everything
// the analyzer settled about a declared pattern variable once the whole
// graph pattern has been processed. DeclaredLine/DeclaredColumn are 0 when
// the first declaration carried no position.
type Variable struct {
	Kind          VariableKind
	Degree        DegreeOfExposure
	IsTemp        bool
	DeclaredLine  int
	DeclaredColumn int
}

// PathPatternAuxData is attached to a PathPattern on ExitPathPattern.
type PathPatternAuxData struct {
	// JoinableVariables is {name | degree == UnconditionalSingleton},
	// the set usable for joining across multiple path patterns in one
	// graph pattern.
	JoinableVariables map[string]struct{}
}

// GraphPatternAuxData is attached to a GraphPattern once every path pattern
// inside it has been processed.
type GraphPatternAuxData struct {
	Variables map[string]Variable
}

// GraphPatternWhereClauseAuxData is attached to a GraphPatternWhereClause
// or ParenthesizedPathPatternWhereClause once the search-condition scoper
// has finalized its accessibility computation.
type GraphPatternWhereClauseAuxData struct {
	// ReferencedVariables is the set of names legally resolvable from
	// this WHERE, after Finalize has pruned deferred inaccessibility.
	ReferencedVariables map[string]struct{}
}

// PathVariableReferenceScopeAuxData is attached to a PathFactor or
// PathPatternExpression: the element variables first declared at that
// syntactic point. Path and Subpath variables never appear here — only
// Node and Edge do (per the variable-kind-tracking rule).
type PathVariableReferenceScopeAuxData struct {
	DeclaredVariables map[string]struct{}
}
