package rewrite

import "github.com/gqlcpp/gql/internal/ast"

// RewriteBareDashPatterns is R2: expand every bare dash chain into explicit
// adjacent node/edge/node triples, introducing an anonymous node pattern
// between every pair of edges and at each end: `-` becomes `()-()`, `- -`
// becomes `()-()-()`, and so on.
func RewriteBareDashPatterns(root ast.Node) {
	ast.ForEachNodeOfType[*ast.PathPatternTerm](root, func(term *ast.PathPatternTerm) ast.VisitorResult {
		expanded := make([]*ast.PathFactor, 0, len(term.Factors))
		for _, factor := range term.Factors {
			dashes, ok := factor.Pattern.(*ast.BareDashPattern)
			if !ok {
				expanded = append(expanded, factor)
				continue
			}
			expanded = append(expanded, expandBareDash(dashes)...)
		}
		term.Factors = expanded
		return ast.VisitContinue
	})
}

// expandBareDash turns a chain of n bare dashes into n+1 anonymous node
// factors interleaved with n anonymous edge factors, all carrying the
// original chain's position and direction.
func expandBareDash(dashes *ast.BareDashPattern) []*ast.PathFactor {
	pos := dashes.Pos()
	n := dashes.DashCount
	if n < 1 {
		n = 1
	}
	factors := make([]*ast.PathFactor, 0, 2*n+1)
	newNodeFactor := func() *ast.PathFactor {
		node := &ast.NodePattern{Filler: &ast.ElementPatternFiller{}}
		node.SetPos(pos)
		node.Filler.SetPos(pos)
		f := &ast.PathFactor{Pattern: node}
		f.SetPos(pos)
		return f
	}
	newEdgeFactor := func() *ast.PathFactor {
		edge := &ast.EdgePattern{Direction: dashes.Direction, Filler: &ast.ElementPatternFiller{}}
		edge.SetPos(pos)
		edge.Filler.SetPos(pos)
		f := &ast.PathFactor{Pattern: edge}
		f.SetPos(pos)
		return f
	}

	factors = append(factors, newNodeFactor())
	for i := 0; i < n; i++ {
		factors = append(factors, newEdgeFactor(), newNodeFactor())
	}
	return factors
}
