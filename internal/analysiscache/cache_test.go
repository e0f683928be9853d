package analysiscache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gqlcpp/gql/internal/auxdata"
	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

func TestKeyIsDeterministicAndDomainSeparated(t *testing.T) {
	k1 := Key("MATCH (a)", "dialect-v1")
	k2 := Key("MATCH (a)", "dialect-v1")
	assert.Equal(t, k1, k2)

	assert.NotEqual(t, k1, Key("MATCH (a)", "dialect-v2"))
	assert.NotEqual(t, k1, Key("MATCH (b)", "dialect-v1"))
}

func TestOpenMissGetPutRoundTripOK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.sqlite")
	c, err := Open(path)
	require.NoError(t, err)
	defer c.Close()

	key := Key("MATCH (a)", "default")

	_, hit, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, hit)

	outcome := Outcome{
		OK:        true,
		Variables: map[string]auxdata.Variable{"a": {Kind: auxdata.NodeVariable, Degree: auxdata.UnconditionalSingleton}},
		Joinable:  []string{"a"},
	}
	require.NoError(t, c.Put(context.Background(), key, outcome))

	got, hit, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, hit)
	assert.True(t, got.OK)
	assert.Equal(t, outcome.Variables, got.Variables)
	assert.Equal(t, outcome.Joinable, got.Joinable)
}

func TestPutErrorOutcomeRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.sqlite")
	c, err := Open(path)
	require.NoError(t, err)
	defer c.Close()

	key := Key("MATCH (a)-[e]->(a)", "default")
	outcome := Outcome{Err: gqlerr.New(gqlerr.ECodeKindConflict, ast.NewInputPosition(1, 12), "variable %q already declared", "a")}
	require.NoError(t, c.Put(context.Background(), key, outcome))

	got, hit, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, hit)
	assert.False(t, got.OK)
	require.NotNil(t, got.Err)
	assert.Equal(t, gqlerr.ECodeKindConflict, got.Err.Code)
	assert.Equal(t, 1, got.Err.Position.Line)
	assert.Equal(t, 12, got.Err.Position.Column)
}

func TestRunIDIsStablePerCacheInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.sqlite")
	c, err := Open(path)
	require.NoError(t, err)
	defer c.Close()

	id1 := c.RunID()
	id2 := c.RunID()
	assert.Equal(t, id1, id2)
	assert.NotEmpty(t, id1)
}
