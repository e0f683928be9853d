package patternctx

import (
	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/auxdata"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

// PathPatternScope brackets one PathPattern (one comma-separated element of
// a graph pattern, selective or not). Its own exposure frame lets Exit
// compute the pattern's joinable-variable set and mark non-boundary,
// non-temporary variables (of any kind) of a selective pattern as
// strict-interior before merging
// upward into the graph pattern.
type PathPatternScope struct {
	ctx       *Context
	selective bool
}

func (c *Context) EnterPathPattern(selective bool) *PathPatternScope {
	c.pushExposureFrame()
	c.pushNonZeroNodeCount()
	c.patternFrames = append(c.patternFrames, &patternFrame{
		selective:                     selective,
		expectingLeftBoundaryVariable: selective,
	})
	return &PathPatternScope{ctx: c, selective: selective}
}

// Exit requires at least one node pattern in the path pattern (E0109),
// downgrades every EffectivelyUnboundedGroup exposure on the frame to
// EffectivelyBoundedGroup (rule 22.h: an unbounded quantifier's group-ness
// does not survive past the path pattern that contains it), marks every
// non-boundary, non-temporary variable of a selective pattern as
// strict-interior, populates the
// Scope of every search-condition scope a selective pattern's own WHERE
// clauses registered while it was open (Syntax Rule 8: such a WHERE may
// reference only names this pattern itself declares), computes the set of
// joinable variables (those exposed at UnconditionalSingleton), and merges
// every exposure upward.
func (s *PathPatternScope) Exit(pos ast.InputPosition) (map[string]struct{}, *gqlerr.AnalysisError) {
	c := s.ctx
	pf := c.patternFrames[len(c.patternFrames)-1]
	c.patternFrames = c.patternFrames[:len(c.patternFrames)-1]

	nzc := c.popNonZeroNodeCount()
	if !nzc {
		frame := c.popExposureFrame()
		_ = frame
		return nil, gqlerr.New(gqlerr.ECodeMinNodeCountZeroPattern, pos, "path pattern must contain at least one node pattern")
	}

	frame := c.popExposureFrame()
	joinable := map[string]struct{}{}
	if pf.selective && len(pf.registeredScopes) > 0 {
		declared := make(map[string]struct{}, len(frame))
		for name := range frame {
			declared[name] = struct{}{}
		}
		for _, rs := range pf.registeredScopes {
			rs.Scope = declared
		}
	}
	for name, v := range frame {
		if v.Degree == auxdata.EffectivelyUnboundedGroup {
			v.Degree = auxdata.EffectivelyBoundedGroup
		}
		if pf.selective && !v.IsTemp &&
			name != pf.leftBoundaryVariable && name != pf.possibleRightBoundaryVariable {
			v.IsStrictInterior = true
		}
		if v.Degree == auxdata.UnconditionalSingleton {
			joinable[name] = struct{}{}
		}
		if err := c.exposeVariable(name, v); err != nil {
			return nil, err
		}
	}
	return joinable, nil
}
