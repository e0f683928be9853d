package patternctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/auxdata"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

var pos = ast.NewInputPosition(1, 1)

func declareNode(t *testing.T, c *Context, name string) {
	t.Helper()
	require.NoError(t, toErr(c.DeclareNodeVariable(name, pos, false)))
}

func declareEdge(t *testing.T, c *Context, name string) {
	t.Helper()
	require.NoError(t, toErr(c.DeclareEdgeVariable(name, pos, false)))
}

func toErr(e *gqlerr.AnalysisError) error {
	if e == nil {
		return nil
	}
	return e
}

func TestSelectivePatternMarksNonNodeVariablesStrictInterior(t *testing.T) {
	// MATCH ANY (a)-[e]->(b), (x)-[e]->(y) — the first pattern is selective
	// and declares edge variable e; a sibling pattern re-declaring e must be
	// rejected (E0009) because e is strict-interior, not just a or b.
	c := New(Config{})

	ps := c.EnterPathPattern(true)
	es := c.EnterNodePattern()
	declareNode(t, c, "a")
	es.Exit()
	ees := c.EnterEdgePattern()
	declareEdge(t, c, "e")
	ees.Exit()
	ns := c.EnterNodePattern()
	declareNode(t, c, "b")
	ns.Exit()
	_, err := ps.Exit(pos)
	require.NoError(t, toErr(err))

	ps2 := c.EnterPathPattern(false)
	ns2 := c.EnterNodePattern()
	declareNode(t, c, "x")
	ns2.Exit()
	ees2 := c.EnterEdgePattern()
	declareEdge(t, c, "e")
	ees2.Exit()
	ns3 := c.EnterNodePattern()
	declareNode(t, c, "y")
	ns3.Exit()

	// Declare alone never conflicts: ps2's "e" is fresh within ps2's own
	// frame. The strict-interior conflict only surfaces once ps2's frame
	// merges upward and collides with the strict-interior "e" ps already
	// merged into the same enclosing frame.
	_, err2 := ps2.Exit(pos)
	require.Error(t, toErr(err2))
	assert.True(t, gqlerr.Is(toErr(err2), gqlerr.ECodeStrictInteriorConflict))
}

func TestSelectivePatternBoundaryVariablesRemainReexposable(t *testing.T) {
	// MATCH ANY (a)-[e]->(b), (a)-[e2]->(c) — a is the left boundary of the
	// first (selective) pattern and is not strict-interior, so the second,
	// non-selective pattern re-declaring it as UnconditionalSingleton again
	// is legal.
	c := New(Config{})

	ps := c.EnterPathPattern(true)
	ns := c.EnterNodePattern()
	declareNode(t, c, "a")
	ns.Exit()
	ees := c.EnterEdgePattern()
	declareEdge(t, c, "e")
	ees.Exit()
	ns2 := c.EnterNodePattern()
	declareNode(t, c, "b")
	ns2.Exit()
	_, err := ps.Exit(pos)
	require.NoError(t, toErr(err))

	ps2 := c.EnterPathPattern(false)
	ns3 := c.EnterNodePattern()
	require.NoError(t, toErr(c.DeclareNodeVariable("a", pos, false)))
	ns3.Exit()
	ees2 := c.EnterEdgePattern()
	declareEdge(t, c, "e2")
	ees2.Exit()
	ns4 := c.EnterNodePattern()
	declareNode(t, c, "c")
	ns4.Exit()
	_, err2 := ps2.Exit(pos)
	require.NoError(t, toErr(err2))
}

func TestBoundedQuantifierPromotesToEffectivelyBoundedGroup(t *testing.T) {
	// (a) ({2,5} (b)-[e]->), (c) — e and the inner node are declared under a
	// bounded quantifier in the first path pattern and must come out EBG,
	// not EUG, since EUG is reserved for unbounded quantifiers. A sibling
	// path pattern merges after it, so the assertion reads e's degree back
	// from the GraphPattern-level frame both patterns merge into, not just
	// the frame the first pattern's own Exit popped.
	c := New(Config{})

	ps := c.EnterPathPattern(false)
	ns := c.EnterNodePattern()
	declareNode(t, c, "a")
	ns.Exit()

	qs, qerr := c.EnterQuantifiedPathPrimary(true, 2, pos)
	require.NoError(t, toErr(qerr))
	ees := c.EnterEdgePattern()
	declareEdge(t, c, "e")
	ees.Exit()
	ns2 := c.EnterNodePattern()
	declareNode(t, c, "b")
	ns2.Exit()
	require.NoError(t, toErr(qs.Exit(pos)))

	_, err := ps.Exit(pos)
	require.NoError(t, toErr(err))

	ps2 := c.EnterPathPattern(false)
	ns3 := c.EnterNodePattern()
	declareNode(t, c, "c")
	ns3.Exit()
	_, err2 := ps2.Exit(pos)
	require.NoError(t, toErr(err2))

	c.CaptureFinalVariables()
	vars := c.FinalAuxVariables()
	require.Contains(t, vars, "e")
	assert.Equal(t, auxdata.EffectivelyBoundedGroup, vars["e"].Degree)
}

func TestUnboundedQuantifierPromotesToEffectivelyUnboundedGroupThenDowngradesAtPatternBoundary(t *testing.T) {
	// (a) ({1,} (b)-[e]->), (c) — e comes out of the quantifier itself as
	// EUG, but rule 22.h downgrades it to EBG the moment the enclosing path
	// pattern exits, before it ever reaches the shared GraphPattern-level
	// frame. A sibling path pattern merges after it so the final read is
	// genuinely taken from past that pattern boundary.
	c := New(Config{DifferentEdgesMatchMode: true})

	ps := c.EnterPathPattern(false)
	ns := c.EnterNodePattern()
	declareNode(t, c, "a")
	ns.Exit()

	qs, qerr := c.EnterQuantifiedPathPrimary(false, 1, pos)
	require.NoError(t, toErr(qerr))
	ees := c.EnterEdgePattern()
	declareEdge(t, c, "e")
	ees.Exit()
	ns2 := c.EnterNodePattern()
	declareNode(t, c, "b")
	ns2.Exit()
	require.NoError(t, toErr(qs.Exit(pos)))

	_, err := ps.Exit(pos)
	require.NoError(t, toErr(err))

	ps2 := c.EnterPathPattern(false)
	ns3 := c.EnterNodePattern()
	declareNode(t, c, "c")
	ns3.Exit()
	_, err2 := ps2.Exit(pos)
	require.NoError(t, toErr(err2))

	c.CaptureFinalVariables()
	vars := c.FinalAuxVariables()
	require.Contains(t, vars, "e")
	assert.Equal(t, auxdata.EffectivelyBoundedGroup, vars["e"].Degree)
}

func TestPathPatternWithNoNodePatternRejected(t *testing.T) {
	// A path pattern that never sees a node (a pathological edge-only
	// pattern) must raise E0109.
	c := New(Config{})
	ps := c.EnterPathPattern(false)
	ees := c.EnterEdgePattern()
	declareEdge(t, c, "e")
	ees.Exit()
	_, err := ps.Exit(pos)
	require.Error(t, toErr(err))
	assert.True(t, gqlerr.Is(toErr(err), gqlerr.ECodeMinNodeCountZeroPattern))
}

func TestSubpathParenthesizedExpressionWithNoNodeRejected(t *testing.T) {
	// (a) (p = (-[e]->)) — p's own parenthesized expression contains only
	// an edge; its own dedicated nonZeroNodeCount frame must see that and
	// raise E0110, even though the sibling (a) already set the outer
	// frame's node count to true.
	c := New(Config{})
	ps := c.EnterPathPattern(false)

	ns := c.EnterNodePattern()
	declareNode(t, c, "a")
	ns.Exit()

	require.NoError(t, toErr(c.DeclareSubpathVariable("p", pos)))
	modeScope := c.EnterPathMode(ast.Walk)
	pes := c.EnterParenthesizedPathPatternExpression(true)
	ees := c.EnterEdgePattern()
	declareEdge(t, c, "e")
	ees.Exit()
	err := pes.Exit(pos)
	modeScope.Exit()
	require.Error(t, toErr(err))
	assert.True(t, gqlerr.Is(toErr(err), gqlerr.ECodeMinNodeCountZeroSubpath))

	// Drop the context rather than finish exiting ps: an error path never
	// runs merge-upward logic over a partially built construct.
	_ = ps
}

func TestParenthesizedExpressionWithNodeAcceptedDespiteEmptySiblingSubpath(t *testing.T) {
	// The inverse of the previous case in the other order: a parenthesized
	// expression that does contain a node must be accepted regardless of
	// what an unrelated sibling construct's node count looked like.
	c := New(Config{})
	ps := c.EnterPathPattern(false)

	ns := c.EnterNodePattern()
	declareNode(t, c, "a")
	ns.Exit()

	require.NoError(t, toErr(c.DeclareSubpathVariable("p", pos)))
	modeScope := c.EnterPathMode(ast.Walk)
	pes := c.EnterParenthesizedPathPatternExpression(true)
	ns2 := c.EnterNodePattern()
	declareNode(t, c, "m")
	ns2.Exit()
	err := pes.Exit(pos)
	modeScope.Exit()
	require.NoError(t, toErr(err))

	_, err2 := ps.Exit(pos)
	require.NoError(t, toErr(err2))
}

func TestUnionOperandOnlyReferenceIsInaccessibleToSiblingOperand(t *testing.T) {
	// (a)-[e]->(b) | (a)-[e]->(c) — a WHERE clause inside the left operand
	// referencing c (declared only by the right operand) must raise E0051.
	c := New(Config{})
	ps := c.EnterPathPattern(false)
	es := c.EnterPathPatternExpression()

	us := c.EnterPathPatternUnion()

	op1 := c.EnterPathPatternUnionOperand(true)
	ns := c.EnterNodePattern()
	declareNode(t, c, "a")
	ns.Exit()
	ees := c.EnterEdgePattern()
	declareEdge(t, c, "e")
	ees.Exit()
	ns2 := c.EnterNodePattern()
	declareNode(t, c, "b")
	ns2.Exit()
	cond := &ast.BindingVariableReference{Name: "c"}
	cond.SetPos(pos)
	scope := c.newSearchConditionScope(cond)
	aux := &auxdata.GraphPatternWhereClauseAuxData{ReferencedVariables: map[string]struct{}{}}
	c.queueReferences(cond, scope, aux)
	require.NoError(t, toErr(op1.Exit()))

	op2 := c.EnterPathPatternUnionOperand(false)
	ns3 := c.EnterNodePattern()
	require.NoError(t, toErr(c.DeclareNodeVariable("a", pos, false)))
	ns3.Exit()
	ees2 := c.EnterEdgePattern()
	require.NoError(t, toErr(c.DeclareEdgeVariable("e", pos, false)))
	ees2.Exit()
	ns4 := c.EnterNodePattern()
	declareNode(t, c, "c")
	ns4.Exit()
	require.NoError(t, toErr(op2.Exit()))

	require.NoError(t, toErr(us.Exit()))
	es.Exit()
	_, err := ps.Exit(pos)
	require.NoError(t, toErr(err))

	c.CaptureFinalVariables()
	c.Finalize()
	rerr := c.ResolveAll()
	require.Error(t, toErr(rerr))
	assert.True(t, gqlerr.Is(toErr(rerr), gqlerr.ECodeRefAdjacentUnionOperand))
}
