package dialect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/featuregate"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "dialect.yaml", `
enabledFeatures: ["G091", "G074"]
differentEdgesMatchMode: true
generatedPrefix: "__gen_"
cacheEnabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"G091", "G074"}, cfg.EnabledFeatures)
	assert.True(t, cfg.DifferentEdgesMatchMode)
	assert.Equal(t, "__gen_", cfg.GeneratedPrefix)
	assert.True(t, cfg.CacheEnabled)
}

func TestLoadCUE(t *testing.T) {
	path := writeTemp(t, "dialect.cue", `
differentEdgesMatchMode: true
generatedPrefix: "__gen_"
cacheEnabled: false
enabledFeatures: ["G091"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.DifferentEdgesMatchMode)
	assert.Equal(t, "__gen_", cfg.GeneratedPrefix)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, []string{"G091"}, cfg.EnabledFeatures)
}

func TestLoadUnrecognizedExtension(t *testing.T) {
	path := writeTemp(t, "dialect.json", `{}`)
	_, err := Load(path)
	require.Error(t, err)
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
}

func TestConfigGateBuildsConfiguredGate(t *testing.T) {
	cfg := &Config{EnabledFeatures: []string{"G091"}}
	gate := cfg.Gate()

	assert.NoError(t, gate.Supported(featuregate.SelectivePathPattern, ast.NewInputPosition(1, 1)))

	err := gate.Supported(featuregate.UnboundedQuantifier, ast.NewInputPosition(1, 1))
	require.Error(t, err)
	assert.True(t, gqlerr.Is(err, gqlerr.ECodeFeatureNotEnabled))
}
