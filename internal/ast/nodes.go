package ast

import "github.com/gqlcpp/gql/internal/auxdata"

// PathPatternOperator distinguishes concatenation from alternation inside a
// PathPatternExpression.
type PathPatternOperator int

const (
	Concat PathPatternOperator = iota
	Union
)

// PathPatternExpression is an ordered, non-empty sequence of terms joined by
// a single operator. When Operator is Union the terms are alternatives;
// when Concat they are concatenated in sequence.
type PathPatternExpression struct {
	base
	Operator PathPatternOperator
	Terms    []*PathPatternTerm
	AuxData  *auxdata.PathVariableReferenceScopeAuxData
}

// PathPatternTerm is one term of a PathPatternExpression: an ordered
// sequence of factors concatenated together.
type PathPatternTerm struct {
	base
	Factors []*PathFactor
}

// Quantifier is the closed sum of quantifier variants a PathFactor may
// carry.
type Quantifier interface {
	quantifier()
}

type NoQuantifier struct{}

func (NoQuantifier) quantifier() {}

// OptionalQuantifier is the `?` suffix.
type OptionalQuantifier struct{}

func (OptionalQuantifier) quantifier() {}

// RangeQuantifier is `{m,n}`, `{m,}`, `{m}`, or `+`/`*` in their expanded
// bounded/unbounded forms. Upper is nil for an unbounded quantifier.
type RangeQuantifier struct {
	Lower int
	Upper *int
}

func (RangeQuantifier) quantifier() {}

// Bounded reports whether the quantifier has a finite upper bound.
func (q RangeQuantifier) Bounded() bool { return q.Upper != nil }

// PathFactorPattern is the closed sum of pattern variants a PathFactor may
// carry.
type PathFactorPattern interface {
	Node
	pathFactorPattern()
}

// PathFactor carries one quantifier and one pattern variant.
type PathFactor struct {
	base
	Quantifier Quantifier
	Pattern    PathFactorPattern
	AuxData    *auxdata.PathVariableReferenceScopeAuxData
}

// ElementPattern is the closed sum Node | Edge.
type ElementPattern interface {
	PathFactorPattern
	elementPattern()
}

// EdgeDirection is the directedness of an EdgePattern.
type EdgeDirection int

const (
	DirectionEither EdgeDirection = iota
	DirectionLeftToRight
	DirectionRightToLeft
	DirectionUndirected
)

// VariableDeclaration is a single named (or anonymous, if Name == "")
// element/path/subpath variable occurrence.
type VariableDeclaration struct {
	base
	Name   string
	IsTemp bool
}

// ElementPatternPredicate is the closed sum of what an ElementPatternFiller
// may carry in its optional predicate slot before rewriting.
type ElementPatternPredicate interface {
	Node
	elementPatternPredicate()
}

// ElementPatternWhereClause is `WHERE cond` written directly inside an
// element pattern, e.g. `(a WHERE a.prop > 3)`. R3 lifts this away.
type ElementPatternWhereClause struct {
	base
	Condition ValueExpression
}

func (*ElementPatternWhereClause) elementPatternPredicate() {}

// PropertyKeyValuePair is one `name: value` entry of an
// ElementPropertySpecification.
type PropertyKeyValuePair struct {
	base
	Name  string
	Value ValueExpression
}

// ElementPropertySpecification is `{p1: v1, ..., pn: vn}` written directly
// inside an element pattern. R4 lifts this away into a WHERE.
type ElementPropertySpecification struct {
	base
	Props []*PropertyKeyValuePair
}

func (*ElementPropertySpecification) elementPatternPredicate() {}

// ElementPatternFiller is the body of a NodePattern or EdgePattern: the
// optional variable, label expression, and predicate.
type ElementPatternFiller struct {
	base
	Variable  *VariableDeclaration
	Label     LabelExpression
	Predicate ElementPatternPredicate
}

// NodePattern is `(filler)`.
type NodePattern struct {
	base
	Filler *ElementPatternFiller
}

func (*NodePattern) pathFactorPattern() {}
func (*NodePattern) elementPattern()    {}

// EdgePattern is `-[filler]-`/`-[filler]->`/`<-[filler]-` etc.
type EdgePattern struct {
	base
	Filler    *ElementPatternFiller
	Direction EdgeDirection
}

func (*EdgePattern) pathFactorPattern() {}
func (*EdgePattern) elementPattern()    {}

// PathMode is the restrictiveness of a ParenthesizedPathPatternExpression's
// walk: WALK imposes no restriction, the other three progressively forbid
// edge/vertex repetition.
type PathMode int

const (
	Walk PathMode = iota
	Trail
	Simple
	Acyclic
)

// ParenthesizedPathPatternWhereClause is the `WHERE` attached directly to a
// ParenthesizedPathPatternExpression (whether written by the user or
// synthesized by R3/R4).
type ParenthesizedPathPatternWhereClause struct {
	base
	Condition ValueExpression
	AuxData   *auxdata.GraphPatternWhereClauseAuxData
}

// ParenthesizedPathPatternExpression is `(subpathVar = PATH_MODE inner
// WHERE cond)`. All fields besides Inner are optional.
type ParenthesizedPathPatternExpression struct {
	base
	SubpathVariable *VariableDeclaration
	PathMode        PathMode
	Inner           *PathPatternExpression
	Where           *ParenthesizedPathPatternWhereClause
}

func (*ParenthesizedPathPatternExpression) pathFactorPattern() {}

// SimplifiedPathPatternExpression is surface syntax that R1 must rewrite
// away before analysis. Its presence at analysis time is an internal
// invariant violation (E0060). Label carries the simplified label
// expression (e.g. `A`, `A|B`, `!A & !B`); Direction carries the
// directedness markers (`~`, `<`, `>`) that project onto the resulting edge
// pattern's direction; Text is an opaque rendering kept only for
// diagnostics if E0060 fires.
type SimplifiedPathPatternExpression struct {
	base
	Label     LabelExpression
	Direction EdgeDirection
	Text      string
}

func (*SimplifiedPathPatternExpression) pathFactorPattern() {}

// BareDashPattern is a chain of N bare `-` edges with no intervening
// bracketed node/edge patterns, e.g. `- -`. R2 must rewrite it away before
// analysis.
type BareDashPattern struct {
	base
	DashCount int
	Direction EdgeDirection
}

func (*BareDashPattern) pathFactorPattern() {}

// SelectivePrefixKind names the selective search prefix of a PathPattern,
// when present (e.g. shortest path, any path).
type SelectivePrefixKind int

const (
	NotSelective SelectivePrefixKind = iota
	AnyPath
	AllPaths
	ShortestPath
	AnyShortestPath
	AllShortestPaths
)

// PathPattern wraps a PathPatternExpression plus an optional selective
// prefix and an optional outer path variable.
type PathPattern struct {
	base
	Prefix      SelectivePrefixKind
	PathVar     *VariableDeclaration
	Expression  *PathPatternExpression
	AuxData     *auxdata.PathPatternAuxData
}

// Selective reports whether this pattern carries a selective search prefix.
func (p *PathPattern) Selective() bool { return p.Prefix != NotSelective }

// GraphPatternWhereClause is a `WHERE` at graph-pattern level, applying
// across all of a GraphPattern's path patterns.
type GraphPatternWhereClause struct {
	base
	Condition ValueExpression
	AuxData   *auxdata.GraphPatternWhereClauseAuxData
}

// GraphPattern is the top-level unit the driver analyzes: one MATCH clause's
// worth of path patterns plus an optional graph-level WHERE.
type GraphPattern struct {
	base
	Patterns []*PathPattern
	Where    *GraphPatternWhereClause
	AuxData  *auxdata.GraphPatternAuxData
}
