package patternctx

import (
	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/auxdata"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

// pendingReference is one variable reference found in a registered
// condition, queued for resolution until ResolveAll runs over every scope
// with the graph pattern's exposure state fully merged.
type pendingReference struct {
	name string
	pos  ast.InputPosition
}

// SearchConditionScope is one registered WHERE condition (graph-pattern
// level or element/parenthesized-pattern level) together with the lexical
// scope it resolves references against, the set of variable names made
// inaccessible to it by an adjacent union operand, and (when this
// condition sits inside a selective PathPattern) the set of names that
// pattern itself declares. InaccessibleVariables maps a name to the number
// of adjacent-operand declarations that exclude it; Finalize clears an
// entry once the graph pattern turns out to declare that name somewhere
// not subject to that exclusion. Scope is nil for a condition not owned by
// a selective pattern, meaning no restriction beyond the other checks.
type SearchConditionScope struct {
	ctx                   *Context
	Condition             ast.ValueExpression
	VariableScope         *variableScope
	InaccessibleVariables map[string]int
	Scope                 map[string]struct{}

	pending []pendingReference
}

func (c *Context) newSearchConditionScope(cond ast.ValueExpression) *SearchConditionScope {
	s := &SearchConditionScope{
		ctx:                   c,
		Condition:             cond,
		VariableScope:         c.currentVariableReferenceScope,
		InaccessibleVariables: map[string]int{},
	}
	c.searchConditionScopes = append(c.searchConditionScopes, s)
	if len(c.patternFrames) > 0 && c.topPatternFrame().selective {
		pf := c.topPatternFrame()
		pf.registeredScopes = append(pf.registeredScopes, s)
	}
	return s
}

// AddGraphPatternWhereClause registers the single WHERE clause attached
// directly to a graph pattern, recording the variables it references for
// later resolution by ResolveAll.
func (c *Context) AddGraphPatternWhereClause(w *ast.GraphPatternWhereClause) *gqlerr.AnalysisError {
	aux := &auxdata.GraphPatternWhereClauseAuxData{ReferencedVariables: map[string]struct{}{}}
	w.AuxData = aux
	scope := c.newSearchConditionScope(w.Condition)
	c.queueReferences(w.Condition, scope, aux)
	return nil
}

// AddParenthesizedWhereClause registers a WHERE clause lifted onto a
// ParenthesizedPathPatternExpression (by R3 or directly present).
func (c *Context) AddParenthesizedWhereClause(w *ast.ParenthesizedPathPatternWhereClause) *gqlerr.AnalysisError {
	aux := &auxdata.GraphPatternWhereClauseAuxData{ReferencedVariables: map[string]struct{}{}}
	w.AuxData = aux
	scope := c.newSearchConditionScope(w.Condition)
	c.queueReferences(w.Condition, scope, aux)
	return nil
}

func (c *Context) queueReferences(cond ast.ValueExpression, scope *SearchConditionScope, aux *auxdata.GraphPatternWhereClauseAuxData) {
	ast.ForEachNodeOfType(cond, func(ref *ast.BindingVariableReference) ast.VisitorResult {
		aux.ReferencedVariables[ref.Name] = struct{}{}
		scope.pending = append(scope.pending, pendingReference{name: ref.Name, pos: ref.Pos()})
		return ast.VisitContinue
	})
}

// ResolveAll resolves every variable reference queued across every
// registered search-condition scope, in registration order. It must run
// after CaptureFinalVariables and Finalize: only then has every pattern's
// exposure frame merged upward, every selective pattern's own Scope been
// populated, and every union's InaccessibleVariables entry been corrected,
// so a reference queued from deep inside the first path pattern a graph
// pattern declares can still see a name a later sibling pattern declares.
// Each resolved reference is additionally required to be singleton-valued
// (E0052), since every position a BindingVariableReference can occupy in
// this package's value-expression sum consumes a single value.
func (c *Context) ResolveAll() *gqlerr.AnalysisError {
	for _, scope := range c.searchConditionScopes {
		for _, ref := range scope.pending {
			if err := scope.ResolveReference(ref.name, ref.pos); err != nil {
				return err
			}
			if err := c.RequireSingletonDegree(ref.name, ref.pos); err != nil {
				return err
			}
		}
	}
	return nil
}

// CaptureFinalVariables snapshots the graph pattern's fully-merged top
// exposure frame so later reference resolution can tell a
// strict-interior variable of a selective pattern apart from one that is
// merely declared somewhere the search condition's lexical scope chain
// does not reach.
func (c *Context) CaptureFinalVariables() {
	snapshot := map[string]*exposedVariable{}
	for name, v := range c.topExposed() {
		snapshot[name] = v
	}
	c.finalVariables = snapshot
}

// ResolveReference implements the reference-resolution dispatch order: an
// adjacent-union-operand exclusion is checked first (E0051); then, if this
// condition belongs to a selective pattern, it may only see names that
// pattern itself declares (E0053) and the lexical chain and final-variable
// lookup below are skipped entirely; otherwise the lexical scope chain is
// tried, then whether the name is known anywhere in the graph pattern at
// all but from inside another selective pattern's interior (E0053 again,
// this direction caught via strict-interior status), and finally
// unknown-reference (E0054).
func (s *SearchConditionScope) ResolveReference(name string, pos ast.InputPosition) *gqlerr.AnalysisError {
	if count, ok := s.InaccessibleVariables[name]; ok && count > 0 {
		return gqlerr.New(gqlerr.ECodeRefAdjacentUnionOperand, pos,
			"reference to %q crosses an adjacent union operand boundary", name)
	}
	if s.Scope != nil {
		if _, ok := s.Scope[name]; !ok {
			return gqlerr.New(gqlerr.ECodeRefFromSelectivePattern, pos,
				"reference to %q is not declared by the selective path pattern its search condition belongs to", name)
		}
		return nil
	}
	if s.VariableScope != nil && s.VariableScope.resolve(name) {
		return nil
	}
	if v, known := s.ctx.finalVariables[name]; known {
		if v.IsStrictInterior {
			return gqlerr.New(gqlerr.ECodeRefFromSelectivePattern, pos,
				"reference to %q is not visible outside the boundary of its selective path pattern", name)
		}
		return nil
	}
	return gqlerr.New(gqlerr.ECodeUnknownReference, pos, "unknown variable %q", name)
}

// RequireSingletonDegree raises E0052 when name's resolved degree is EBG or
// EUG. Every position a BindingVariableReference can occupy in this
// package's value-expression sum (a Comparison operand, or the Element of
// a PropertyReference) consumes exactly one value, so ResolveAll calls this
// for every reference it resolves; a caller checking a position known in
// advance to accept group-degree values (an aggregation argument, once this
// package grows one) would need to bypass this rather than call it.
func (c *Context) RequireSingletonDegree(name string, pos ast.InputPosition) *gqlerr.AnalysisError {
	v, ok := c.finalVariables[name]
	if !ok {
		return gqlerr.New(gqlerr.ECodeUnknownReference, pos, "unknown variable %q", name)
	}
	if v.Degree == auxdata.EffectivelyBoundedGroup || v.Degree == auxdata.EffectivelyUnboundedGroup {
		return gqlerr.New(gqlerr.ECodeGroupDegreeReferenceBanned, pos,
			"reference to %q requires a singleton-valued variable, but it is group-valued", name)
	}
	return nil
}

// Finalize drops every inaccessibility entry that turns out to be
// over-counted: a name excluded by adjacent-union-operand declarations is
// still accessible if the graph pattern declares it somewhere beyond what
// those exclusions cover.
func (c *Context) Finalize() {
	for _, scope := range c.searchConditionScopes {
		for name, count := range scope.InaccessibleVariables {
			rec, ok := c.variableDeclarations[name]
			if ok && rec.Count > count {
				delete(scope.InaccessibleVariables, name)
			}
		}
	}
	c.finalized = true
}
