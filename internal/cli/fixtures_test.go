package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureNamesSorted(t *testing.T) {
	names := FixtureNames()
	assert.Equal(t, []string{"chain", "optional", "union"}, names)
}

func TestLoadFixtureUnknownName(t *testing.T) {
	_, err := LoadFixture("nope")
	require.Error(t, err)
}

func TestLoadFixtureReturnsFreshPatternEachCall(t *testing.T) {
	a, err := LoadFixture("chain")
	require.NoError(t, err)
	b, err := LoadFixture("chain")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}
