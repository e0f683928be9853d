package patternctx

import (
	"math"

	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/auxdata"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

// PathPatternExpressionScope wraps the traversal of one PathPatternExpression
// node (a Concat or Union sequence of terms): it owns the minimumPathLength
// and nonZeroNodeCount accumulation for everything directly inside that
// expression, merging the total into whichever frame was open around it on
// Exit.
type PathPatternExpressionScope struct {
	ctx *Context
}

func (c *Context) EnterPathPatternExpression() *PathPatternExpressionScope {
	c.pushMinimumPathLength()
	c.pushNonZeroNodeCount()
	return &PathPatternExpressionScope{ctx: c}
}

func (s *PathPatternExpressionScope) Exit() {
	length := s.ctx.popMinimumPathLength()
	nzc := s.ctx.popNonZeroNodeCount()
	s.ctx.addToMinimumPathLength(length)
	s.ctx.setTopNonZeroNodeCount(s.ctx.topNonZeroNodeCount() || nzc)
}

// NodePatternScope brackets the processing of one NodePattern.
type NodePatternScope struct{ ctx *Context }

func (c *Context) EnterNodePattern() *NodePatternScope { return &NodePatternScope{ctx: c} }

// ExitNodePattern marks the enclosing construct as having seen a node, per
// the merge rule.
func (s *NodePatternScope) Exit() {
	s.ctx.setTopNonZeroNodeCount(true)
}

// EdgePatternScope brackets the processing of one EdgePattern.
type EdgePatternScope struct{ ctx *Context }

// EnterEdgePattern ends a selective pattern's search for its left boundary
// and forgets the right-boundary candidate.
func (c *Context) EnterEdgePattern() *EdgePatternScope {
	c.clearRightBoundaryCandidate()
	return &EdgePatternScope{ctx: c}
}

// ExitEdgePattern increments the enclosing minimum path length by one edge.
func (s *EdgePatternScope) Exit() {
	s.ctx.minimumPathLength[len(s.ctx.minimumPathLength)-1]++
}

// PathModeScope brackets a restrictive path mode (TRAIL/SIMPLE/ACYCLIC) or
// the default WALK, pushing the isRestrictivePathMode flag so nested
// unbounded-quantifier legality checks can see it.
type PathModeScope struct{ ctx *Context }

func (c *Context) EnterPathMode(mode ast.PathMode) *PathModeScope {
	c.pushIsRestrictivePathMode(mode != ast.Walk)
	return &PathModeScope{ctx: c}
}

func (s *PathModeScope) Exit() {
	s.ctx.popIsRestrictivePathMode()
}

// QuantifiedPathPrimaryScope brackets a bounded or unbounded quantified
// primary (`{m,n}`, `+`, `*`). Only one may be active at a time anywhere in
// the enclosing chain (E0004); an unbounded one additionally requires a
// restrictive, selective, or different-edges-match context (E0005).
type QuantifiedPathPrimaryScope struct {
	ctx     *Context
	bounded bool
	lower   int
}

func (c *Context) EnterQuantifiedPathPrimary(bounded bool, lower int, pos ast.InputPosition) (*QuantifiedPathPrimaryScope, *gqlerr.AnalysisError) {
	if c.isInsideQuantifiedPathPrimary {
		return nil, gqlerr.New(gqlerr.ECodeNestedQuantifier, pos, "quantified path primary cannot nest inside another")
	}
	if !bounded {
		allowed := c.topIsRestrictivePathMode() || c.insideSelectivePattern() || c.cfg.DifferentEdgesMatchMode
		if !allowed {
			return nil, gqlerr.New(gqlerr.ECodeUnboundedNotRestrictive, pos,
				"unbounded quantifier requires a restrictive path mode, a selective pattern, or different-edges-match mode")
		}
	}
	c.isInsideQuantifiedPathPrimary = true
	c.pushExposureFrame()
	c.pushMinimumPathLength()
	c.pushNonZeroNodeCount()
	c.clearRightBoundaryCandidate()
	return &QuantifiedPathPrimaryScope{ctx: c, bounded: bounded, lower: lower}, nil
}

func (c *Context) insideSelectivePattern() bool {
	for _, pf := range c.patternFrames {
		if pf.selective {
			return true
		}
	}
	return false
}

func (c *Context) clearRightBoundaryCandidate() {
	if len(c.patternFrames) > 0 {
		c.topPatternFrame().possibleRightBoundaryVariable = ""
		c.topPatternFrame().expectingLeftBoundaryVariable = false
	}
}

// Exit applies the quantified-primary merge rule: every exposed variable
// not already EUG is promoted to EBG (if bounded or inside a restrictive
// search) or EUG; the subtree's own minimum path length must be positive;
// `lower` copies of it are added into the outer length; node-count merges
// via AND with (lower > 0); any right-boundary candidate is forgotten.
func (s *QuantifiedPathPrimaryScope) Exit(pos ast.InputPosition) *gqlerr.AnalysisError {
	c := s.ctx
	c.isInsideQuantifiedPathPrimary = false
	c.clearRightBoundaryCandidate()

	frame := c.popExposureFrame()
	insideRestrictive := c.topIsRestrictivePathMode()
	for name, v := range frame {
		if v.Degree != auxdata.EffectivelyUnboundedGroup {
			if s.bounded || insideRestrictive {
				v.Degree = auxdata.EffectivelyBoundedGroup
			} else {
				v.Degree = auxdata.EffectivelyUnboundedGroup
			}
		}
		if err := c.exposeVariable(name, v); err != nil {
			return err
		}
	}

	length := c.popMinimumPathLength()
	if length <= 0 {
		return gqlerr.New(gqlerr.ECodeMinPathLengthZeroQuant, pos, "quantified path primary's minimum path length must be at least one")
	}
	c.addToMinimumPathLength(length * s.lower)

	nzc := c.popNonZeroNodeCount()
	c.setTopNonZeroNodeCount(c.topNonZeroNodeCount() && (nzc && s.lower > 0))

	return nil
}

// QuestionedPathPrimaryScope brackets an optional primary (`?`).
type QuestionedPathPrimaryScope struct{ ctx *Context }

func (c *Context) EnterQuestionedPathPrimary() *QuestionedPathPrimaryScope {
	c.pushExposureFrame()
	c.pushMinimumPathLength()
	c.clearRightBoundaryCandidate()
	return &QuestionedPathPrimaryScope{ctx: c}
}

// Exit promotes every UnconditionalSingleton exposure to ConditionalSingleton,
// leaving CS/EBG/EUG untouched, requires a positive minimum path length, and
// forgets any right-boundary candidate.
func (s *QuestionedPathPrimaryScope) Exit(pos ast.InputPosition) *gqlerr.AnalysisError {
	c := s.ctx
	c.clearRightBoundaryCandidate()
	frame := c.popExposureFrame()
	for name, v := range frame {
		if v.Degree == auxdata.UnconditionalSingleton {
			v.Degree = auxdata.ConditionalSingleton
		}
		if err := c.exposeVariable(name, v); err != nil {
			return err
		}
	}
	length := c.popMinimumPathLength()
	if length <= 0 {
		return gqlerr.New(gqlerr.ECodeMinPathLengthZero, pos, "questioned path primary's minimum path length must be at least one")
	}
	c.addToMinimumPathLength(length)
	return nil
}

// ParenthesizedPathPatternExpressionScope brackets a
// ParenthesizedPathPatternExpression. hasSubpath is set when the
// expression declares an outer subpath variable, which requires at least
// one node pattern inside. It owns its own nonZeroNodeCount frame so a
// sibling construct's node count can never leak into this one's E0110
// check; the popped value is OR-ed into the enclosing frame on Exit.
type ParenthesizedPathPatternExpressionScope struct {
	ctx        *Context
	hasSubpath bool
}

func (c *Context) EnterParenthesizedPathPatternExpression(hasSubpath bool) *ParenthesizedPathPatternExpressionScope {
	c.pushNonZeroNodeCount()
	return &ParenthesizedPathPatternExpressionScope{ctx: c, hasSubpath: hasSubpath}
}

func (s *ParenthesizedPathPatternExpressionScope) Exit(pos ast.InputPosition) *gqlerr.AnalysisError {
	nzc := s.ctx.popNonZeroNodeCount()
	if s.hasSubpath && !nzc {
		return gqlerr.New(gqlerr.ECodeMinNodeCountZeroSubpath, pos,
			"subpath-declaring parenthesized path pattern expression must contain at least one node pattern")
	}
	s.ctx.setTopNonZeroNodeCount(s.ctx.topNonZeroNodeCount() || nzc)
	return nil
}

// sentinelMinLength is the "min" identity used to seed a union's own
// minimumPathLength accumulator before any operand has merged into it.
const sentinelMinLength = math.MaxInt
