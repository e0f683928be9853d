// Package ast defines the tagged-union abstract syntax tree the analyzer
// walks: graph patterns, path patterns, element patterns, and the small
// value-expression sublanguage the rewrites emit.
package ast

import "fmt"

// InputPosition is a (line, column) pair in the original query text. The
// zero value is "unset" — the parser did not attach a position, or a
// synthesized node has not yet had one copied onto it.
type InputPosition struct {
	Line   int
	Column int
	isSet  bool
}

// NewInputPosition returns a set position. Lines and columns are 1-based,
// matching the convention gqlerr.AnalysisError prints.
func NewInputPosition(line, column int) InputPosition {
	return InputPosition{Line: line, Column: column, isSet: true}
}

// IsSet reports whether the position carries real line/column information.
func (p InputPosition) IsSet() bool { return p.isSet }

// Less gives InputPosition a total order when both sides are set. Comparing
// an unset position is a programmer error and panics: order-sensitive checks
// should never run over synthesized-but-unpositioned nodes.
func (p InputPosition) Less(o InputPosition) bool {
	if !p.isSet || !o.isSet {
		panic("ast: Less on unset InputPosition")
	}
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

func (p InputPosition) String() string {
	if !p.isSet {
		return "<no position>"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is implemented by every AST node. Rewrites and the driver use it to
// propagate positions onto synthesized nodes without knowing their concrete
// type.
type Node interface {
	Pos() InputPosition
	SetPos(InputPosition)
}

// base is embedded by every concrete node and supplies Pos/SetPos.
type base struct {
	Position InputPosition
}

func (b *base) Pos() InputPosition     { return b.Position }
func (b *base) SetPos(p InputPosition) { b.Position = p }

// SetPositionRecursive copies pos onto n and every descendant that does not
// already carry a set position, so that a synthesized subtree still has a
// position for error messages. The rewrites do not call it; R3 and R4
// position their synthesized wrappers themselves.
func SetPositionRecursive(n Node, pos InputPosition) {
	if n == nil {
		return
	}
	WalkTree(n, func(child Node) VisitorResult {
		if !child.Pos().IsSet() {
			child.SetPos(pos)
		}
		return VisitContinue
	})
}
