package rewrite

import "github.com/gqlcpp/gql/internal/ast"

// RunAll applies R1 through R4, in an order that respects the one hard
// dependency among them (R1 must precede R4, since R1 can create new
// element patterns that R4 then needs to see). R2, R3 are independent of
// the others and slot in between. Each individual rewrite is already a
// fixpoint once run to completion over the whole tree, so calling RunAll a
// second time on its own output is a no-op.
func RunAll(root ast.Node) {
	RewriteSimplifiedPathPatterns(root)
	RewriteBareDashPatterns(root)
	RewriteElementPatternWhere(root)
	RewriteElementPropertyPredicate(root)
}
