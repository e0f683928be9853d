package auxdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariableKindString(t *testing.T) {
	assert.Equal(t, "node", NodeVariable.String())
	assert.Equal(t, "edge", EdgeVariable.String())
	assert.Equal(t, "path", PathVariable.String())
	assert.Equal(t, "subpath", SubpathVariable.String())
	assert.Equal(t, "unknown", VariableKind(99).String())
}

func TestDegreeOfExposureString(t *testing.T) {
	assert.Equal(t, "UnconditionalSingleton", UnconditionalSingleton.String())
	assert.Equal(t, "ConditionalSingleton", ConditionalSingleton.String())
	assert.Equal(t, "EffectivelyBoundedGroup", EffectivelyBoundedGroup.String())
	assert.Equal(t, "EffectivelyUnboundedGroup", EffectivelyUnboundedGroup.String())
	assert.Equal(t, "unknown", DegreeOfExposure(99).String())
}

func TestMaxOrdersByLatticeRank(t *testing.T) {
	cases := []struct {
		a, b, want DegreeOfExposure
	}{
		{UnconditionalSingleton, ConditionalSingleton, ConditionalSingleton},
		{EffectivelyUnboundedGroup, UnconditionalSingleton, EffectivelyUnboundedGroup},
		{EffectivelyBoundedGroup, EffectivelyBoundedGroup, EffectivelyBoundedGroup},
		{ConditionalSingleton, EffectivelyBoundedGroup, EffectivelyBoundedGroup},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Max(c.a, c.b))
		assert.Equal(t, c.want, Max(c.b, c.a), "Max must be commutative")
	}
}

func TestMaxIsMonotonicAcrossTheWholeOrder(t *testing.T) {
	order := []DegreeOfExposure{
		UnconditionalSingleton,
		ConditionalSingleton,
		EffectivelyBoundedGroup,
		EffectivelyUnboundedGroup,
	}
	for i := range order {
		for j := range order {
			want := order[i]
			if j > i {
				want = order[j]
			}
			assert.Equal(t, want, Max(order[i], order[j]))
		}
	}
}
