package cli

import (
	"fmt"
	"sort"

	"github.com/gqlcpp/gql/internal/ast"
)

// fixtures holds a handful of named, hand-built graph patterns covering the
// scenarios worth demonstrating from the command line: a plain chain, a
// pattern with an optional quantifier, and a two-operand union. None of
// these ever passed through a lexer or parser; they are constructed
// directly, the way the analyzer's own tests build input.
var fixtures = map[string]func() *ast.GraphPattern{
	"chain":    chainFixture,
	"optional": optionalFixture,
	"union":    unionFixture,
}

// FixtureNames returns the sorted list of names LoadFixture accepts.
func FixtureNames() []string {
	names := make([]string, 0, len(fixtures))
	for name := range fixtures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFixture builds the named graph pattern fresh (fixtures are not
// shared, since Analyze mutates its input in place via the rewrites).
func LoadFixture(name string) (*ast.GraphPattern, error) {
	build, ok := fixtures[name]
	if !ok {
		return nil, fmt.Errorf("unknown fixture %q, want one of %v", name, FixtureNames())
	}
	return build(), nil
}

func node(varName string) *ast.NodePattern {
	var decl *ast.VariableDeclaration
	if varName != "" {
		decl = &ast.VariableDeclaration{Name: varName}
	}
	return &ast.NodePattern{Filler: &ast.ElementPatternFiller{Variable: decl, Label: ast.NoLabel{}}}
}

func edge(varName string, dir ast.EdgeDirection) *ast.EdgePattern {
	var decl *ast.VariableDeclaration
	if varName != "" {
		decl = &ast.VariableDeclaration{Name: varName}
	}
	return &ast.EdgePattern{Filler: &ast.ElementPatternFiller{Variable: decl, Label: ast.NoLabel{}}, Direction: dir}
}

func factor(p ast.PathFactorPattern) *ast.PathFactor {
	return &ast.PathFactor{Quantifier: ast.NoQuantifier{}, Pattern: p}
}

func term(factors ...*ast.PathFactor) *ast.PathPatternTerm {
	return &ast.PathPatternTerm{Factors: factors}
}

func concatExpr(terms ...*ast.PathPatternTerm) *ast.PathPatternExpression {
	return &ast.PathPatternExpression{Operator: ast.Concat, Terms: terms}
}

// chainFixture is `MATCH (a)-[e]->(b)`: two node variables, one edge
// variable, nothing but unconditional singletons.
func chainFixture() *ast.GraphPattern {
	expr := concatExpr(term(
		factor(node("a")),
		factor(edge("e", ast.DirectionLeftToRight)),
		factor(node("b")),
	))
	return &ast.GraphPattern{Patterns: []*ast.PathPattern{{Expression: expr}}}
}

// optionalFixture is `MATCH (a)-[e]->?(b)`, quantifying the edge with `?`
// so e's degree of exposure settles at ConditionalSingleton.
func optionalFixture() *ast.GraphPattern {
	opt := &ast.PathFactor{Quantifier: ast.OptionalQuantifier{}, Pattern: edge("e", ast.DirectionLeftToRight)}
	expr := concatExpr(term(
		factor(node("a")),
		opt,
		factor(node("b")),
	))
	return &ast.GraphPattern{Patterns: []*ast.PathPattern{{Expression: expr}}}
}

// unionFixture is `MATCH (a)-[e]->(b) | (a)-[e]->(c)`: a lets through as an
// unconditional singleton on both operands, while b and c each only appear
// on one side and settle at ConditionalSingleton.
func unionFixture() *ast.GraphPattern {
	left := term(
		factor(node("a")),
		factor(edge("e", ast.DirectionLeftToRight)),
		factor(node("b")),
	)
	right := term(
		factor(node("a")),
		factor(edge("e", ast.DirectionLeftToRight)),
		factor(node("c")),
	)
	expr := &ast.PathPatternExpression{Operator: ast.Union, Terms: []*ast.PathPatternTerm{left, right}}
	return &ast.GraphPattern{Patterns: []*ast.PathPattern{{Expression: expr}}}
}
