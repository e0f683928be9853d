// Package analyzer drives the single depth-first traversal over a
// rewritten graph pattern, acquiring GraphPatternContext scopes in
// structural order and consulting the feature gate before stepping into
// any construct that might be disabled in the active dialect.
package analyzer

import (
	"fmt"
	"log/slog"

	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/auxdata"
	"github.com/gqlcpp/gql/internal/featuregate"
	"github.com/gqlcpp/gql/internal/gqlerr"
	"github.com/gqlcpp/gql/internal/patternctx"
	"github.com/gqlcpp/gql/internal/rewrite"
)

// Analyze rewrites gp in place (R1-R4) and then runs the structural
// analysis pass over the result, attaching auxiliary data to every node
// the context's rules produce one for. A non-nil error means gp's
// attached aux data is incomplete and must not be relied upon; callers
// should discard gp's analysis state entirely rather than patch it up.
func Analyze(gp *ast.GraphPattern, gate featuregate.Gate, cfg patternctx.Config) error {
	slog.Debug("analyzing graph pattern", "patterns", len(gp.Patterns))
	rewrite.RunAll(gp)

	a := &analyzer{pc: patternctx.New(cfg), gate: gate}
	if err := a.processGraphPattern(gp); err != nil {
		slog.Error("analysis failed", "code", err.Code, "pos", err.Position.String())
		return err
	}
	if !a.pc.Balanced() {
		panic("analyzer: graph pattern context left unbalanced after a successful pass")
	}
	slog.Debug("analysis succeeded", "variables", len(gp.AuxData.Variables))
	return nil
}

type analyzer struct {
	pc        *patternctx.Context
	gate      featuregate.Gate
	parenDepth int
}

func (a *analyzer) processGraphPattern(gp *ast.GraphPattern) *gqlerr.AnalysisError {
	for _, pp := range gp.Patterns {
		if err := a.processPathPattern(pp); err != nil {
			return err
		}
	}

	a.pc.CaptureFinalVariables()

	if gp.Where != nil {
		if err := a.pc.AddGraphPatternWhereClause(gp.Where); err != nil {
			return err
		}
		if err := CheckPropertyValueTypes(gp.Where.Condition); err != nil {
			return err
		}
	}

	a.pc.Finalize()

	if err := a.pc.ResolveAll(); err != nil {
		return err
	}

	gp.AuxData = &auxdata.GraphPatternAuxData{Variables: a.pc.FinalAuxVariables()}
	return nil
}

func (a *analyzer) processPathPattern(pp *ast.PathPattern) *gqlerr.AnalysisError {
	selective := pp.Selective()
	if selective {
		if err := asAnalysisError(a.gate.Supported(featuregate.SelectivePathPattern, pp.Pos())); err != nil {
			return err
		}
	}

	scope := a.pc.EnterPathPattern(selective)

	if pp.PathVar != nil {
		if err := a.pc.DeclarePathVariable(pp.PathVar.Name, pp.PathVar.Pos()); err != nil {
			return err
		}
	}

	if err := a.processPathPatternExpression(pp.Expression); err != nil {
		return err
	}

	joinable, err := scope.Exit(pp.Pos())
	if err != nil {
		return err
	}
	pp.AuxData = &auxdata.PathPatternAuxData{JoinableVariables: joinable}
	return nil
}

func (a *analyzer) processPathPatternExpression(e *ast.PathPatternExpression) *gqlerr.AnalysisError {
	exprScope := a.pc.EnterPathPatternExpression()
	varScope := a.pc.EnterVariableReferenceScope()

	switch e.Operator {
	case ast.Concat:
		for _, term := range e.Terms {
			if err := a.processPathPatternTerm(term, varScope); err != nil {
				return err
			}
		}
	case ast.Union:
		unionScope := a.pc.EnterPathPatternUnion()
		for i, term := range e.Terms {
			opScope := a.pc.EnterPathPatternUnionOperand(i == 0)
			if err := a.processPathPatternTerm(term, varScope); err != nil {
				return err
			}
			if err := opScope.Exit(); err != nil {
				return err
			}
		}
		if err := unionScope.Exit(); err != nil {
			return err
		}
	default:
		panic(fmt.Sprintf("analyzer: unhandled path pattern operator %v", e.Operator))
	}

	e.AuxData = &auxdata.PathVariableReferenceScopeAuxData{DeclaredVariables: varScope.Declared()}
	varScope.Exit()
	exprScope.Exit()
	return nil
}

func (a *analyzer) processPathPatternTerm(t *ast.PathPatternTerm, varScope *patternctx.VariableReferenceScope) *gqlerr.AnalysisError {
	for _, f := range t.Factors {
		if err := a.processPathFactor(f, varScope); err != nil {
			return err
		}
	}
	return nil
}

func (a *analyzer) processPathFactor(f *ast.PathFactor, outer *patternctx.VariableReferenceScope) *gqlerr.AnalysisError {
	inner := a.pc.EnterVariableReferenceScope()

	var err *gqlerr.AnalysisError
	switch q := f.Quantifier.(type) {
	case ast.NoQuantifier:
		err = a.processPathFactorPattern(f.Pattern, inner)
	case ast.OptionalQuantifier:
		qs := a.pc.EnterQuestionedPathPrimary()
		if err = a.processPathFactorPattern(f.Pattern, inner); err == nil {
			err = qs.Exit(f.Pos())
		}
	case ast.RangeQuantifier:
		bounded := q.Bounded()
		if !bounded {
			if gerr := a.gate.Supported(featuregate.UnboundedQuantifier, f.Pos()); gerr != nil {
				return asAnalysisError(gerr)
			}
		}
		qs, qerr := a.pc.EnterQuantifiedPathPrimary(bounded, q.Lower, f.Pos())
		if qerr != nil {
			return qerr
		}
		if err = a.processPathFactorPattern(f.Pattern, inner); err == nil {
			err = qs.Exit(f.Pos())
		}
	default:
		panic(fmt.Sprintf("analyzer: unhandled quantifier type %T", q))
	}
	if err != nil {
		return err
	}

	f.AuxData = &auxdata.PathVariableReferenceScopeAuxData{DeclaredVariables: inner.Declared()}
	for name := range inner.Declared() {
		outer.NoteDeclared(name)
	}
	inner.Exit()
	return nil
}

func (a *analyzer) processPathFactorPattern(p ast.PathFactorPattern, varScope *patternctx.VariableReferenceScope) *gqlerr.AnalysisError {
	switch v := p.(type) {
	case *ast.NodePattern:
		return a.processNodePattern(v, varScope)
	case *ast.EdgePattern:
		return a.processEdgePattern(v, varScope)
	case *ast.ParenthesizedPathPatternExpression:
		return a.processParenthesized(v, varScope)
	case *ast.SimplifiedPathPatternExpression:
		return gqlerr.New(gqlerr.ECodeSimplifiedPathSurvived, v.Pos(),
			"simplified path pattern expression %q survived past the rewriters", v.Text)
	case *ast.BareDashPattern:
		return gqlerr.New(gqlerr.ECodeSimplifiedPathSurvived, v.Pos(),
			"bare dash pattern survived past the rewriters")
	default:
		panic(fmt.Sprintf("analyzer: unhandled path factor pattern type %T", p))
	}
}

func (a *analyzer) processNodePattern(n *ast.NodePattern, varScope *patternctx.VariableReferenceScope) *gqlerr.AnalysisError {
	scope := a.pc.EnterNodePattern()
	if err := a.processFiller(n.Filler, auxdata.NodeVariable, varScope); err != nil {
		return err
	}
	scope.Exit()
	return nil
}

func (a *analyzer) processEdgePattern(e *ast.EdgePattern, varScope *patternctx.VariableReferenceScope) *gqlerr.AnalysisError {
	scope := a.pc.EnterEdgePattern()
	if err := a.processFiller(e.Filler, auxdata.EdgeVariable, varScope); err != nil {
		return err
	}
	scope.Exit()
	return nil
}

func (a *analyzer) processFiller(filler *ast.ElementPatternFiller, kind auxdata.VariableKind, varScope *patternctx.VariableReferenceScope) *gqlerr.AnalysisError {
	if filler.Predicate != nil {
		return gqlerr.New(gqlerr.ECodePredicateNotLifted, filler.Pos(),
			"element pattern predicate was not lifted to a WHERE clause before analysis")
	}

	if filler.Variable != nil {
		var err *gqlerr.AnalysisError
		switch kind {
		case auxdata.NodeVariable:
			err = a.pc.DeclareNodeVariable(filler.Variable.Name, filler.Variable.Pos(), filler.Variable.IsTemp)
		case auxdata.EdgeVariable:
			err = a.pc.DeclareEdgeVariable(filler.Variable.Name, filler.Variable.Pos(), filler.Variable.IsTemp)
		}
		if err != nil {
			return err
		}
		varScope.NoteDeclared(filler.Variable.Name)
	}

	return a.checkLabel(filler.Label, filler.Pos())
}

func (a *analyzer) checkLabel(label ast.LabelExpression, pos ast.InputPosition) *gqlerr.AnalysisError {
	switch v := label.(type) {
	case ast.LabelWildcard:
		return asAnalysisError(a.gate.Supported(featuregate.WildcardLabelExpression, pos))
	case ast.LabelNegation:
		return a.checkLabel(v.Operand, pos)
	case ast.LabelConjunction:
		if err := a.checkLabel(v.Left, pos); err != nil {
			return err
		}
		return a.checkLabel(v.Right, pos)
	case ast.LabelDisjunction:
		if err := a.checkLabel(v.Left, pos); err != nil {
			return err
		}
		return a.checkLabel(v.Right, pos)
	default:
		return nil
	}
}

func (a *analyzer) processParenthesized(p *ast.ParenthesizedPathPatternExpression, varScope *patternctx.VariableReferenceScope) *gqlerr.AnalysisError {
	if a.parenDepth > 0 {
		if err := asAnalysisError(a.gate.Supported(featuregate.NestedParenthesizedPattern, p.Pos())); err != nil {
			return err
		}
	}
	a.parenDepth++

	if p.PathMode != ast.Walk {
		if err := asAnalysisError(a.gate.Supported(featuregate.TrailPathMode, p.Pos())); err != nil {
			return err
		}
	}

	hasSubpath := p.SubpathVariable != nil
	if hasSubpath {
		if err := a.pc.DeclareSubpathVariable(p.SubpathVariable.Name, p.SubpathVariable.Pos()); err != nil {
			return err
		}
	}

	modeScope := a.pc.EnterPathMode(p.PathMode)
	pScope := a.pc.EnterParenthesizedPathPatternExpression(hasSubpath)

	if err := a.processPathPatternExpression(p.Inner); err != nil {
		return err
	}

	if p.Where != nil {
		if err := a.pc.AddParenthesizedWhereClause(p.Where); err != nil {
			return err
		}
		if err := CheckPropertyValueTypes(p.Where.Condition); err != nil {
			return err
		}
	}

	if err := pScope.Exit(p.Pos()); err != nil {
		return err
	}
	modeScope.Exit()
	a.parenDepth--
	return nil
}

// asAnalysisError adapts a featuregate.Gate error (already an
// *AnalysisError in both shipped implementations) back to the concrete
// type the driver propagates internally.
func asAnalysisError(err error) *gqlerr.AnalysisError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*gqlerr.AnalysisError); ok {
		return ae
	}
	return gqlerr.New(gqlerr.ECodeFeatureNotEnabled, ast.InputPosition{}, "%v", err)
}
