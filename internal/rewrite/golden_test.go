package rewrite

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/output"
)

// rewriteFragment runs RunAll over a single-factor path pattern term and
// renders every resulting factor back to a short canonical-form string via
// output.Fragment, concatenated in order. Rendering the term's whole factor
// list (rather than just the original factor) matters for R2, which
// replaces one factor with several.
func rewriteFragment(t *testing.T, name string, factor *ast.PathFactor) {
	t.Helper()
	term := &ast.PathPatternTerm{Factors: []*ast.PathFactor{factor}}
	RunAll(term)

	var parts []string
	for _, f := range term.Factors {
		parts = append(parts, output.Fragment(f.Pattern))
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(strings.Join(parts, "")))
}

func TestGoldenBareDashExpansion(t *testing.T) {
	rewriteFragment(t, "bare_dash_single", &ast.PathFactor{
		Pattern: &ast.BareDashPattern{DashCount: 1, Direction: ast.DirectionLeftToRight},
	})
}

func TestGoldenSimplifiedSingleLabel(t *testing.T) {
	rewriteFragment(t, "simplified_single_label", &ast.PathFactor{
		Pattern: &ast.SimplifiedPathPatternExpression{
			Label:     ast.LabelName{Name: "KNOWS"},
			Direction: ast.DirectionLeftToRight,
		},
	})
}
