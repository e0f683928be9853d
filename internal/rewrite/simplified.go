package rewrite

import "github.com/gqlcpp/gql/internal/ast"

// RewriteSimplifiedPathPatterns is R1: replace every
// SimplifiedPathPatternExpression by an equivalent
// ParenthesizedPathPatternExpression built from labeled edge patterns.
// A top-level label disjunction (`A|B`) becomes a union of single-label
// edges; any other label expression (including a conjunction or negation)
// becomes a single edge carrying that whole label expression, since only
// disjunction needs to fan out into separate alternatives at the pattern
// level. Directedness markers project onto the resulting edge's direction.
func RewriteSimplifiedPathPatterns(root ast.Node) {
	ast.ForEachNodeOfType[*ast.PathFactor](root, func(factor *ast.PathFactor) ast.VisitorResult {
		simplified, ok := factor.Pattern.(*ast.SimplifiedPathPatternExpression)
		if !ok {
			return ast.VisitContinue
		}
		pos := simplified.Pos()
		disjuncts := flattenDisjunction(simplified.Label)

		terms := make([]*ast.PathPatternTerm, 0, len(disjuncts))
		for _, label := range disjuncts {
			edge := &ast.EdgePattern{
				Direction: simplified.Direction,
				Filler:    &ast.ElementPatternFiller{Label: label},
			}
			edge.SetPos(pos)
			edge.Filler.SetPos(pos)
			term := &ast.PathPatternTerm{Factors: []*ast.PathFactor{{Pattern: edge}}}
			term.SetPos(pos)
			term.Factors[0].SetPos(pos)
			terms = append(terms, term)
		}

		op := ast.Concat
		if len(terms) > 1 {
			op = ast.Union
		}
		inner := &ast.PathPatternExpression{Operator: op, Terms: terms}
		inner.SetPos(pos)

		wrapper := &ast.ParenthesizedPathPatternExpression{Inner: inner}
		wrapper.SetPos(pos)

		factor.Pattern = wrapper
		return ast.VisitSkipChildren
	})
}

// flattenDisjunction collects the operands of a top-level chain of
// LabelDisjunction nodes, left to right. A label with no disjunction at all
// returns a single-element slice containing itself unchanged.
func flattenDisjunction(label ast.LabelExpression) []ast.LabelExpression {
	d, ok := label.(ast.LabelDisjunction)
	if !ok {
		return []ast.LabelExpression{label}
	}
	return append(flattenDisjunction(d.Left), flattenDisjunction(d.Right)...)
}
