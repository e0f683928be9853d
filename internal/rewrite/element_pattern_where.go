package rewrite

import "github.com/gqlcpp/gql/internal/ast"

// RewriteElementPatternWhere is R3: for each element pattern carrying a
// directly-written `WHERE cond`, lift the condition to a surrounding
// ParenthesizedPathPatternExpression whose body is the original element
// pattern and whose own WHERE carries cond. Input positions of the original
// element and WHERE are preserved; the synthesized wrapper inherits the
// element's position.
func RewriteElementPatternWhere(root ast.Node) {
	ast.ForEachNodeOfType[*ast.PathFactor](root, func(factor *ast.PathFactor) ast.VisitorResult {
		elem, ok := factor.Pattern.(ast.ElementPattern)
		if !ok {
			return ast.VisitContinue
		}
		filler := fillerOf(elem)
		where, ok := filler.Predicate.(*ast.ElementPatternWhereClause)
		if !ok {
			return ast.VisitContinue
		}

		elemPos := elem.Pos()
		filler.Predicate = nil

		innerFactor := &ast.PathFactor{Pattern: elem}
		innerFactor.SetPos(elemPos)
		innerTerm := &ast.PathPatternTerm{Factors: []*ast.PathFactor{innerFactor}}
		innerTerm.SetPos(elemPos)
		inner := &ast.PathPatternExpression{Operator: ast.Concat, Terms: []*ast.PathPatternTerm{innerTerm}}
		inner.SetPos(elemPos)

		wrapper := &ast.ParenthesizedPathPatternExpression{
			Inner: inner,
			Where: &ast.ParenthesizedPathPatternWhereClause{Condition: where.Condition},
		}
		wrapper.SetPos(elemPos)
		wrapper.Where.SetPos(where.Pos())

		factor.Pattern = wrapper
		return ast.VisitSkipChildren
	})
}

// fillerOf extracts the ElementPatternFiller shared by both ElementPattern
// variants.
func fillerOf(elem ast.ElementPattern) *ast.ElementPatternFiller {
	switch v := elem.(type) {
	case *ast.NodePattern:
		return v.Filler
	case *ast.EdgePattern:
		return v.Filler
	default:
		panic("rewrite: unhandled ElementPattern variant")
	}
}
