package ast

// ValueExpression is the closed sum of the small expression sublanguage the
// analyzer needs to understand inside pattern predicates: variable
// references, property access, comparisons, and boolean conjunction. This
// is deliberately not a full GQL value-expression grammar — it covers
// exactly what R3/R4 emit and what a WHERE clause's accessibility check
// needs to walk looking for references.
//
// The shape mirrors a sealed query/predicate sum in the style of
// queryir.Query/queryir.Predicate: Equals and And here play the same role
// queryir.Equals and queryir.And play there.
type ValueExpression interface {
	Node
	valueExpression()
}

// BindingVariableReference is a bare identifier reference, e.g. `a` in
// `a.prop = 3`.
type BindingVariableReference struct {
	base
	Name string
}

func (*BindingVariableReference) valueExpression() {}

// PropertyReference is `element.property`.
type PropertyReference struct {
	base
	Element  ValueExpression
	Property string
}

func (*PropertyReference) valueExpression() {}

// Literal is a constant value appearing in a predicate, e.g. the `3` in
// `{prop: 3}`.
type Literal struct {
	base
	Value any
}

func (*Literal) valueExpression() {}

// CompOp is a comparison operator.
type CompOp int

const (
	Equals CompOp = iota
	NotEquals
	LessThan
	LessOrEqual
	GreaterThan
	GreaterOrEqual
)

// Comparison is `left op right`.
type Comparison struct {
	base
	Op    CompOp
	Left  ValueExpression
	Right ValueExpression
}

func (*Comparison) valueExpression() {}

// BoolOp is a boolean connective.
type BoolOp int

const (
	BoolAnd BoolOp = iota
	BoolOr
)

// BooleanConnective is `left AND right` or `left OR right`. R4 only ever
// produces BoolAnd chains; BoolOr exists for completeness of the sum and for
// user-written WHERE conditions the rewriter never touches.
type BooleanConnective struct {
	base
	Op    BoolOp
	Left  ValueExpression
	Right ValueExpression
}

func (*BooleanConnective) valueExpression() {}
