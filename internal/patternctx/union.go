package patternctx

import (
	"github.com/gqlcpp/gql/internal/auxdata"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

// operandRecord is one finished union operand's contribution, kept on the
// unionFrame until ExitPathPatternUnion runs the cross-operand
// inaccessibility pass.
type operandRecord struct {
	declarations map[string]int
	scopeStart   int
	scopeEnd     int
}

// PathPatternUnionScope brackets a top-level union of path pattern terms
// (`(a)->(b) | (a)<-(b)`). It owns an accumulating exposure frame (the
// "union-so-far" state each operand merges into) plus min/AND accumulator
// frames for path length and node count.
type PathPatternUnionScope struct{ ctx *Context }

func (c *Context) EnterPathPatternUnion() *PathPatternUnionScope {
	c.pathPatternUnion = append(c.pathPatternUnion, &unionFrame{})
	c.pushExposureFrame()
	c.minimumPathLength = append(c.minimumPathLength, sentinelMinLength)
	c.nonZeroNodeCount = append(c.nonZeroNodeCount, true)
	return &PathPatternUnionScope{ctx: c}
}

// Exit runs the cross-operand inaccessibility pass (§4.3's union-adjacency
// rule), then merges the union's accumulated exposures, minimum path
// length, and node-count flag into whatever was open around the union.
func (s *PathPatternUnionScope) Exit() *gqlerr.AnalysisError {
	c := s.ctx
	uf := c.pathPatternUnion[len(c.pathPatternUnion)-1]
	c.pathPatternUnion = c.pathPatternUnion[:len(c.pathPatternUnion)-1]

	operands := uf.operandDeclarations
	for i, oi := range operands {
		for j, oj := range operands {
			if i == j {
				continue
			}
			for idx := oj.scopeStart; idx < oj.scopeEnd; idx++ {
				scope := c.searchConditionScopes[idx]
				for name, count := range oi.declarations {
					scope.InaccessibleVariables[name] += count
				}
			}
		}
	}

	frame := c.popExposureFrame()
	for name, v := range frame {
		if err := c.exposeVariable(name, v); err != nil {
			return err
		}
	}

	length := c.popMinimumPathLength()
	c.addToMinimumPathLength(length)

	nzc := c.popNonZeroNodeCount()
	c.setTopNonZeroNodeCount(c.topNonZeroNodeCount() || nzc)

	return nil
}

// PathPatternUnionOperandScope brackets one operand of an enclosing union.
type PathPatternUnionOperandScope struct {
	ctx        *Context
	isFirst    bool
	scopeStart int
}

func (c *Context) EnterPathPatternUnionOperand(isFirst bool) *PathPatternUnionOperandScope {
	c.pushExposureFrame()
	c.pushMinimumPathLength()
	c.pushNonZeroNodeCount()
	c.pushDeclarationsInUnionsFrame()
	return &PathPatternUnionOperandScope{ctx: c, isFirst: isFirst, scopeStart: len(c.searchConditionScopes)}
}

// Exit merges this operand's exposures into the enclosing union's
// accumulator using the demote-on-asymmetry rule, folds its minimum path
// length in by min and its node-count flag in by AND, and records its
// declaration counts and search-condition-scope range for the union's
// later inaccessibility pass.
func (s *PathPatternUnionOperandScope) Exit() *gqlerr.AnalysisError {
	c := s.ctx

	operand := c.popExposureFrame()
	unionSoFar := c.topExposed()

	merged := map[string]*exposedVariable{}
	for name, v := range unionSoFar {
		merged[name] = v
	}
	for name, opVar := range operand {
		soFar, inSoFar := unionSoFar[name]
		switch {
		case inSoFar:
			combined := *opVar
			combined.Degree = auxdata.Max(soFar.Degree, opVar.Degree)
			combined.IsStrictInterior = soFar.IsStrictInterior || opVar.IsStrictInterior
			merged[name] = &combined
		case !s.isFirst:
			combined := *opVar
			combined.Degree = auxdata.Max(opVar.Degree, auxdata.ConditionalSingleton)
			merged[name] = &combined
		default:
			merged[name] = opVar
		}
	}
	if !s.isFirst {
		for name, soFar := range unionSoFar {
			if _, stillThere := operand[name]; !stillThere {
				combined := *soFar
				combined.Degree = auxdata.Max(soFar.Degree, auxdata.ConditionalSingleton)
				merged[name] = &combined
			}
		}
	}
	for name, v := range merged {
		unionSoFar[name] = v
	}

	length := c.popMinimumPathLength()
	if length < c.topMinimumPathLength() {
		c.minimumPathLength[len(c.minimumPathLength)-1] = length
	}

	nzc := c.popNonZeroNodeCount()
	c.setTopNonZeroNodeCount(c.topNonZeroNodeCount() && nzc)

	opDecls := c.popDeclarationsInUnionsFrame()
	outerDecls := c.topDeclarationsInUnions()
	for name, n := range opDecls {
		outerDecls[name] += n
	}

	uf := c.pathPatternUnion[len(c.pathPatternUnion)-1]
	uf.operandDeclarations = append(uf.operandDeclarations, operandRecord{
		declarations: opDecls,
		scopeStart:   s.scopeStart,
		scopeEnd:     len(c.searchConditionScopes),
	})

	return nil
}
