// Package output renders AnalysisError values and small AST fragments for
// diagnostic messages. It is not a pretty-printer: Fragment only covers
// the handful of node shapes worth quoting back at a user inside an error
// string, and falls back to a generic placeholder for anything else.
package output

import (
	"fmt"
	"strings"

	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

// FormatError renders an *AnalysisError the way the rest of the corpus's
// positioned errors render themselves: "<pos>: <code>: <message>", or
// "<code>: <message>" when no position was ever attached.
func FormatError(err *gqlerr.AnalysisError) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Fragment reconstructs a small piece of canonical-form source text from a
// PathFactor or ElementPattern, strictly for embedding in a diagnostic
// message (e.g. "edge pattern reads `-[b:Knows]->`"). It is not
// meant to round-trip arbitrary queries and does not attempt to render
// quantifiers, WHERE clauses, or property specifications.
func Fragment(n ast.Node) string {
	var b strings.Builder
	writeFragment(&b, n)
	return b.String()
}

func writeFragment(b *strings.Builder, n ast.Node) {
	switch v := n.(type) {
	case *ast.PathFactor:
		writeFragment(b, v.Pattern)
	case *ast.NodePattern:
		b.WriteByte('(')
		writeFiller(b, v.Filler)
		b.WriteByte(')')
	case *ast.EdgePattern:
		writeEdgeFragment(b, v)
	case *ast.ParenthesizedPathPatternExpression:
		b.WriteString("(...)")
	default:
		b.WriteString("<?>")
	}
}

func writeEdgeFragment(b *strings.Builder, e *ast.EdgePattern) {
	left, right := "-", "-"
	switch e.Direction {
	case ast.DirectionLeftToRight:
		right = "->"
	case ast.DirectionRightToLeft:
		left = "<-"
	case ast.DirectionUndirected:
		left, right = "~", "~"
	}
	b.WriteString(left)
	b.WriteByte('[')
	writeFiller(b, e.Filler)
	b.WriteByte(']')
	b.WriteString(right)
}

func writeFiller(b *strings.Builder, f *ast.ElementPatternFiller) {
	if f == nil {
		return
	}
	if f.Variable != nil && f.Variable.Name != "" {
		b.WriteString(f.Variable.Name)
	}
	writeLabel(b, f.Label)
}

func writeLabel(b *strings.Builder, l ast.LabelExpression) {
	switch v := l.(type) {
	case nil, ast.NoLabel:
	case ast.LabelName:
		b.WriteByte(':')
		b.WriteString(v.Name)
	case ast.LabelWildcard:
		b.WriteString(":%")
	case ast.LabelNegation:
		b.WriteByte('!')
		writeLabel(b, v.Operand)
	case ast.LabelConjunction:
		writeLabel(b, v.Left)
		b.WriteByte('&')
		writeLabel(b, v.Right)
	case ast.LabelDisjunction:
		writeLabel(b, v.Left)
		b.WriteByte('|')
		writeLabel(b, v.Right)
	default:
		fmt.Fprintf(b, "<label %T>", v)
	}
}
