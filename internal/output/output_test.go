package output

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

func TestFormatErrorWithPosition(t *testing.T) {
	err := gqlerr.New(gqlerr.ECodeUnknownReference, ast.NewInputPosition(2, 5), "name %q not found", "x")
	assert.Equal(t, `2:5: E0054: name "x" not found`, FormatError(err))
}

func TestFormatErrorNil(t *testing.T) {
	assert.Equal(t, "", FormatError(nil))
}

func TestFragmentNodePattern(t *testing.T) {
	n := &ast.NodePattern{Filler: &ast.ElementPatternFiller{
		Variable: &ast.VariableDeclaration{Name: "a"},
		Label:    ast.LabelName{Name: "Account"},
	}}
	assert.Equal(t, "(a:Account)", Fragment(n))
}

func TestFragmentEdgePatternDirections(t *testing.T) {
	cases := []struct {
		dir  ast.EdgeDirection
		want string
	}{
		{ast.DirectionLeftToRight, "-[e]->"},
		{ast.DirectionRightToLeft, "<-[e]-"},
		{ast.DirectionUndirected, "~[e]~"},
		{ast.DirectionEither, "-[e]-"},
	}
	for _, c := range cases {
		e := &ast.EdgePattern{
			Filler:    &ast.ElementPatternFiller{Variable: &ast.VariableDeclaration{Name: "e"}, Label: ast.NoLabel{}},
			Direction: c.dir,
		}
		assert.Equal(t, c.want, Fragment(e))
	}
}

func TestFragmentParenthesizedIsOpaque(t *testing.T) {
	p := &ast.ParenthesizedPathPatternExpression{Inner: &ast.PathPatternExpression{}}
	assert.Equal(t, "(...)", Fragment(p))
}

func TestFragmentUnknownNodeFallsBack(t *testing.T) {
	assert.Equal(t, "<?>", Fragment(&ast.GraphPattern{}))
}
