package patternctx

import (
	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/auxdata"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

// Declare records a variable declaration at the current point in the walk:
// a name/kind match against any prior declaration of the same name, the
// fresh exposure of the name in the currently open construct's top
// exposure frame, the per-union declaration count, and (if a lexical
// variable scope is open) the name's visibility for later reference
// resolution. An empty name means an anonymous element pattern and is a
// no-op beyond minimum-path-length/node-count bookkeeping done by the
// caller separately.
func (c *Context) Declare(name string, pos ast.InputPosition, kind auxdata.VariableKind, isTemp bool) *gqlerr.AnalysisError {
	if name == "" {
		return nil
	}

	rec, seen := c.variableDeclarations[name]
	if !seen {
		c.variableDeclarations[name] = &declarationRecord{Kind: kind, FirstPos: pos, Count: 1}
	} else {
		if rec.Kind != kind {
			return gqlerr.New(gqlerr.ECodeKindConflict, pos,
				"variable %q already declared as %s, cannot redeclare as %s", name, rec.Kind, kind)
		}
		switch kind {
		case auxdata.PathVariable:
			return gqlerr.New(gqlerr.ECodePathRedeclared, pos, "path variable %q declared more than once", name)
		case auxdata.SubpathVariable:
			return gqlerr.New(gqlerr.ECodeSubpathRedeclared, pos, "subpath variable %q declared more than once", name)
		}
		rec.Count++
	}

	if err := c.exposeNewVariable(name, kind, pos, isTemp); err != nil {
		return err
	}

	c.topDeclarationsInUnions()[name]++

	if c.currentVariableReferenceScope != nil {
		c.currentVariableReferenceScope.declareLocal(name)
	}

	c.updateBoundaryTracking(name, kind, isTemp)

	return nil
}

// DeclareNodeVariable is the Node-kind specialization of Declare, called by
// the driver when processing a NodePattern's filler variable.
func (c *Context) DeclareNodeVariable(name string, pos ast.InputPosition, isTemp bool) *gqlerr.AnalysisError {
	return c.Declare(name, pos, auxdata.NodeVariable, isTemp)
}

// DeclareEdgeVariable is the Edge-kind specialization of Declare.
func (c *Context) DeclareEdgeVariable(name string, pos ast.InputPosition, isTemp bool) *gqlerr.AnalysisError {
	return c.Declare(name, pos, auxdata.EdgeVariable, isTemp)
}

// DeclarePathVariable is the Path-kind specialization of Declare.
func (c *Context) DeclarePathVariable(name string, pos ast.InputPosition) *gqlerr.AnalysisError {
	return c.Declare(name, pos, auxdata.PathVariable, false)
}

// DeclareSubpathVariable is the Subpath-kind specialization of Declare.
func (c *Context) DeclareSubpathVariable(name string, pos ast.InputPosition) *gqlerr.AnalysisError {
	return c.Declare(name, pos, auxdata.SubpathVariable, false)
}

// updateBoundaryTracking implements the selective-pattern boundary-variable
// rule: the first declared non-temp node variable becomes the left
// boundary; every declared node variable updates the right-boundary
// candidate.
func (c *Context) updateBoundaryTracking(name string, kind auxdata.VariableKind, isTemp bool) {
	if len(c.patternFrames) == 0 || kind != auxdata.NodeVariable {
		return
	}
	pf := c.topPatternFrame()
	if pf.expectingLeftBoundaryVariable && !isTemp && pf.leftBoundaryVariable == "" {
		pf.leftBoundaryVariable = name
	}
	pf.possibleRightBoundaryVariable = name
}
