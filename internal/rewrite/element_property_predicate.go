package rewrite

import "github.com/gqlcpp/gql/internal/ast"

// RewriteElementPropertyPredicate is R4: for each element pattern whose
// filler carries `{p1: v1, ..., pn: vn}`, inject a temporary variable if the
// filler has none, rewrite the properties into a left-associative AND-chain
// of equality comparisons against that variable, and lift the chain via the
// same wrap-in-a-parenthesized-expression mechanism R3 uses.
//
// The temp-name counter is scoped to one call (one analysis); reset by
// constructing a fresh generator every invocation, matching the "generator
// counter for temporaries" design note.
func RewriteElementPropertyPredicate(root ast.Node) {
	gen := newTempNameGenerator(collectDeclaredNames(root))

	ast.ForEachNodeOfType[*ast.PathFactor](root, func(factor *ast.PathFactor) ast.VisitorResult {
		elem, ok := factor.Pattern.(ast.ElementPattern)
		if !ok {
			return ast.VisitContinue
		}
		filler := fillerOf(elem)
		props, ok := filler.Predicate.(*ast.ElementPropertySpecification)
		if !ok {
			return ast.VisitContinue
		}

		elemPos := elem.Pos()

		if filler.Variable == nil {
			v := &ast.VariableDeclaration{Name: gen.next(), IsTemp: true}
			v.SetPos(elemPos)
			filler.Variable = v
		}
		varName := filler.Variable.Name

		var expr ast.ValueExpression
		for _, prop := range props.Props {
			ref := &ast.BindingVariableReference{Name: varName}
			ref.SetPos(elemPos)
			propRef := &ast.PropertyReference{Element: ref, Property: prop.Name}
			propRef.SetPos(prop.Pos())
			cmp := &ast.Comparison{Op: ast.Equals, Left: propRef, Right: prop.Value}
			cmp.SetPos(prop.Pos())

			if expr == nil {
				expr = cmp
				continue
			}
			and := &ast.BooleanConnective{Op: ast.BoolAnd, Left: expr, Right: cmp}
			and.SetPos(elemPos)
			expr = and
		}
		filler.Predicate = nil

		innerFactor := &ast.PathFactor{Pattern: elem}
		innerFactor.SetPos(elemPos)
		innerTerm := &ast.PathPatternTerm{Factors: []*ast.PathFactor{innerFactor}}
		innerTerm.SetPos(elemPos)
		inner := &ast.PathPatternExpression{Operator: ast.Concat, Terms: []*ast.PathPatternTerm{innerTerm}}
		inner.SetPos(elemPos)

		wrapper := &ast.ParenthesizedPathPatternExpression{
			Inner: inner,
			Where: &ast.ParenthesizedPathPatternWhereClause{Condition: expr},
		}
		wrapper.SetPos(elemPos)

		factor.Pattern = wrapper
		return ast.VisitSkipChildren
	})
}
