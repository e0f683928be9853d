package analyzer

import (
	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

// CheckPropertyValueTypes walks a WHERE condition looking for a bare
// element-variable reference compared against a list-typed literal. An
// element reference denotes one graph element (or binding-table row), never
// a list, so pairing it with a list literal in an equality or ordering
// comparison is rejected (E0055) rather than silently coerced. A property
// reference (`a.prop`) is unaffected: its value's type is the property's,
// not the element's.
func CheckPropertyValueTypes(cond ast.ValueExpression) *gqlerr.AnalysisError {
	var firstErr *gqlerr.AnalysisError
	ast.ForEachNodeOfType(cond, func(cmp *ast.Comparison) ast.VisitorResult {
		if firstErr != nil {
			return ast.VisitSkipChildren
		}
		if lit := listLiteralAgainstElementReference(cmp); lit != nil {
			firstErr = gqlerr.New(gqlerr.ECodeListTypeOnSingletonRef, lit.Pos(),
				"list-typed literal cannot be compared against a singleton element-variable reference")
		}
		return ast.VisitContinue
	})
	return firstErr
}

func listLiteralAgainstElementReference(cmp *ast.Comparison) *ast.Literal {
	if lit, ok := cmp.Right.(*ast.Literal); ok && isListValue(lit.Value) {
		if _, ok := cmp.Left.(*ast.BindingVariableReference); ok {
			return lit
		}
	}
	if lit, ok := cmp.Left.(*ast.Literal); ok && isListValue(lit.Value) {
		if _, ok := cmp.Right.(*ast.BindingVariableReference); ok {
			return lit
		}
	}
	return nil
}

func isListValue(v any) bool {
	switch v.(type) {
	case []any:
		return true
	default:
		return false
	}
}
