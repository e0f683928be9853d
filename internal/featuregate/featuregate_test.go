package featuregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

func TestStaticGateAllowsEverything(t *testing.T) {
	g := NewStatic()
	for _, f := range []Feature{TrailPathMode, NestedParenthesizedPattern, WildcardLabelExpression, UnboundedQuantifier, SelectivePathPattern, DifferentEdgesMatchMode} {
		assert.NoError(t, g.Supported(f, ast.NewInputPosition(1, 1)))
	}
}

func TestConfiguredGateAllowsOnlyEnabledFeatures(t *testing.T) {
	g := NewConfigured([]Feature{WildcardLabelExpression})

	assert.NoError(t, g.Supported(WildcardLabelExpression, ast.NewInputPosition(1, 1)))

	err := g.Supported(UnboundedQuantifier, ast.NewInputPosition(2, 4))
	require.Error(t, err)
	assert.True(t, gqlerr.Is(err, gqlerr.ECodeFeatureNotEnabled))
}

func TestConfiguredGateWithNoFeaturesRejectsAll(t *testing.T) {
	g := NewConfigured(nil)
	err := g.Supported(SelectivePathPattern, ast.NewInputPosition(1, 1))
	require.Error(t, err)
	assert.True(t, gqlerr.Is(err, gqlerr.ECodeFeatureNotEnabled))
}

func TestFeatureString(t *testing.T) {
	assert.Equal(t, "G091", SelectivePathPattern.String())
}
