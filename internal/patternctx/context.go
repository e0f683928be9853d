// Package patternctx implements the GraphPatternContext state machine
// (component C) together with the search-condition scoper it owns
// (component S). It is manipulated exclusively through scoped
// acquisitions: every Enter* method returns a scope value whose Exit
// method must be called on every success path; on an error path the
// caller drops the whole Context instead of calling Exit, so that no
// merge-upward logic ever runs over a partially-built construct.
package patternctx

import (
	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/auxdata"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

// exposedVariable is one entry of an exposure frame: what a currently open
// construct believes it exposes upward, before the enclosing construct's
// merge rule has run.
type exposedVariable struct {
	Kind             auxdata.VariableKind
	DeclPos          ast.InputPosition
	IsTemp           bool
	Degree           auxdata.DegreeOfExposure
	IsStrictInterior bool
}

type declarationRecord struct {
	Kind     auxdata.VariableKind
	FirstPos ast.InputPosition
	Count    int
}

// unionFrame is pushed by EnterPathPatternUnion and tracks the bookkeeping
// ExitPathPatternUnion needs once every operand has exited: each operand's
// own declaration counts (for the adjacency accessibility rule) and the
// range of searchConditionScopes that operand registered its WHEREs in.
type unionFrame struct {
	operandDeclarations []operandRecord
}

// patternFrame is pushed by EnterPathPattern and tracks the per-pattern
// boundary-variable bookkeeping a selective pattern needs, plus every
// search-condition scope registered while this pattern was the innermost
// one open (only populated when selective: see registeredScopes).
type patternFrame struct {
	selective                     bool
	expectingLeftBoundaryVariable bool
	leftBoundaryVariable          string
	possibleRightBoundaryVariable string
	registeredScopes              []*SearchConditionScope
}

// Config carries the small set of dialect knobs the context's structural
// rules consult (component F feeds this in).
type Config struct {
	// DifferentEdgesMatchMode, when true, is one of the three conditions
	// (alongside an enclosing restrictive search or selective pattern)
	// that legalizes an unbounded quantifier.
	DifferentEdgesMatchMode bool
}

// Context is the GraphPatternContext. Zero value is not usable; construct
// with New.
type Context struct {
	cfg Config

	exposedVariables      []map[string]*exposedVariable
	declarationsInUnions  []map[string]int
	minimumPathLength     []int
	nonZeroNodeCount      []bool
	isRestrictivePathMode []bool
	pathPatternUnion      []*unionFrame
	patternFrames         []*patternFrame

	variableScopes        []*variableScope // stack of currently-open lexical scopes, innermost last
	currentVariableReferenceScope *variableScope

	variableDeclarations map[string]*declarationRecord

	isInsideQuantifiedPathPrimary bool

	searchConditionScopes []*SearchConditionScope
	finalVariables        map[string]*exposedVariable

	finalized bool
}

// New constructs a Context with its permanent sentinel bottom frames.
func New(cfg Config) *Context {
	c := &Context{
		cfg:                   cfg,
		exposedVariables:      []map[string]*exposedVariable{{}},
		declarationsInUnions:  []map[string]int{{}},
		minimumPathLength:     []int{0},
		nonZeroNodeCount:      []bool{false},
		isRestrictivePathMode: []bool{false},
		variableDeclarations:  map[string]*declarationRecord{},
	}
	return c
}

// Balanced reports whether every stack has returned to exactly its
// sentinel bottom frame, the property the driver checks after a successful
// top-level analysis (§8 "Balanced scopes").
func (c *Context) Balanced() bool {
	return len(c.exposedVariables) == 1 &&
		len(c.declarationsInUnions) == 1 &&
		len(c.minimumPathLength) == 1 &&
		len(c.nonZeroNodeCount) == 1 &&
		len(c.isRestrictivePathMode) == 1 &&
		len(c.pathPatternUnion) == 0 &&
		len(c.patternFrames) == 0 &&
		len(c.variableScopes) == 0
}

func (c *Context) topExposed() map[string]*exposedVariable {
	return c.exposedVariables[len(c.exposedVariables)-1]
}

func (c *Context) pushExposureFrame() {
	c.exposedVariables = append(c.exposedVariables, map[string]*exposedVariable{})
}

func (c *Context) popExposureFrame() map[string]*exposedVariable {
	n := len(c.exposedVariables)
	frame := c.exposedVariables[n-1]
	c.exposedVariables = c.exposedVariables[:n-1]
	return frame
}

func (c *Context) topDeclarationsInUnions() map[string]int {
	return c.declarationsInUnions[len(c.declarationsInUnions)-1]
}

func (c *Context) pushDeclarationsInUnionsFrame() {
	c.declarationsInUnions = append(c.declarationsInUnions, map[string]int{})
}

func (c *Context) popDeclarationsInUnionsFrame() map[string]int {
	n := len(c.declarationsInUnions)
	frame := c.declarationsInUnions[n-1]
	c.declarationsInUnions = c.declarationsInUnions[:n-1]
	return frame
}

func (c *Context) topMinimumPathLength() int {
	return c.minimumPathLength[len(c.minimumPathLength)-1]
}

func (c *Context) pushMinimumPathLength() {
	c.minimumPathLength = append(c.minimumPathLength, 0)
}

func (c *Context) popMinimumPathLength() int {
	n := len(c.minimumPathLength)
	v := c.minimumPathLength[n-1]
	c.minimumPathLength = c.minimumPathLength[:n-1]
	return v
}

func (c *Context) addToMinimumPathLength(delta int) {
	c.minimumPathLength[len(c.minimumPathLength)-1] += delta
}

func (c *Context) topNonZeroNodeCount() bool {
	return c.nonZeroNodeCount[len(c.nonZeroNodeCount)-1]
}

func (c *Context) setTopNonZeroNodeCount(v bool) {
	c.nonZeroNodeCount[len(c.nonZeroNodeCount)-1] = v
}

func (c *Context) pushNonZeroNodeCount() {
	c.nonZeroNodeCount = append(c.nonZeroNodeCount, false)
}

func (c *Context) popNonZeroNodeCount() bool {
	n := len(c.nonZeroNodeCount)
	v := c.nonZeroNodeCount[n-1]
	c.nonZeroNodeCount = c.nonZeroNodeCount[:n-1]
	return v
}

func (c *Context) topIsRestrictivePathMode() bool {
	return c.isRestrictivePathMode[len(c.isRestrictivePathMode)-1]
}

func (c *Context) pushIsRestrictivePathMode(v bool) {
	c.isRestrictivePathMode = append(c.isRestrictivePathMode, v || c.topIsRestrictivePathMode())
}

func (c *Context) popIsRestrictivePathMode() {
	c.isRestrictivePathMode = c.isRestrictivePathMode[:len(c.isRestrictivePathMode)-1]
}

func (c *Context) topPatternFrame() *patternFrame {
	return c.patternFrames[len(c.patternFrames)-1]
}

// FinalAuxVariables converts the captured final exposure snapshot (see
// CaptureFinalVariables) into the plain auxdata.Variable map a
// GraphPatternAuxData carries.
func (c *Context) FinalAuxVariables() map[string]auxdata.Variable {
	out := make(map[string]auxdata.Variable, len(c.finalVariables))
	for name, v := range c.finalVariables {
		out[name] = auxdata.Variable{
			Kind:           v.Kind,
			Degree:         v.Degree,
			IsTemp:         v.IsTemp,
			DeclaredLine:   v.DeclPos.Line,
			DeclaredColumn: v.DeclPos.Column,
		}
	}
	return out
}

// exposeInto implements the conflict-checked upsert shared by fresh
// declarations (ExposeNewVariable) and upward merges (ExposeVariable): a
// name already present in frame is only compatible with a new occurrence
// if both are UnconditionalSingleton and neither is strict-interior.
func exposeInto(frame map[string]*exposedVariable, name string, v *exposedVariable) *gqlerr.AnalysisError {
	existing, ok := frame[name]
	if !ok {
		frame[name] = v
		return nil
	}
	if existing.Degree != auxdata.UnconditionalSingleton || v.Degree != auxdata.UnconditionalSingleton {
		return gqlerr.New(gqlerr.ECodeExposureConflict, v.DeclPos,
			"variable already exposed with a degree incompatible with unconditional singleton re-exposure")
	}
	if existing.IsStrictInterior || v.IsStrictInterior {
		return gqlerr.New(gqlerr.ECodeStrictInteriorConflict, v.DeclPos,
			"strict-interior variable of a selective path pattern cannot be re-exposed")
	}
	return nil
}

func (c *Context) exposeNewVariable(name string, kind auxdata.VariableKind, pos ast.InputPosition, isTemp bool) *gqlerr.AnalysisError {
	v := &exposedVariable{Kind: kind, DeclPos: pos, IsTemp: isTemp, Degree: auxdata.UnconditionalSingleton}
	return exposeInto(c.topExposed(), name, v)
}

func (c *Context) exposeVariable(name string, v *exposedVariable) *gqlerr.AnalysisError {
	return exposeInto(c.topExposed(), name, v)
}
