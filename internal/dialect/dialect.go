// Package dialect loads the small declarative document that configures
// one analyzer run: which optional features are enabled, the default
// different-edges-match mode, a generated-identifier prefix and a cache
// flag. GeneratedPrefix and CacheEnabled are loaded but nothing consults
// them: the R4 rewrite always uses its fixed prefix, and the CLI turns
// caching on with its --cache flag. A CUE document is evaluated with the CUE SDK's Go API; a flat
// YAML file is accepted as a convenience form for the common case.
package dialect

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"gopkg.in/yaml.v3"

	"github.com/gqlcpp/gql/internal/featuregate"
)

// Config is the resolved dialect document.
type Config struct {
	EnabledFeatures         []string `yaml:"enabledFeatures"`
	DifferentEdgesMatchMode bool     `yaml:"differentEdgesMatchMode"`
	GeneratedPrefix         string   `yaml:"generatedPrefix"`
	CacheEnabled            bool     `yaml:"cacheEnabled"`
}

// LoadError carries a positioned or unpositioned diagnostic from either
// loader path.
type LoadError struct {
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Load reads a dialect document from path, dispatching on its extension:
// `.cue` is evaluated with the CUE Go SDK, `.yaml`/`.yml` is decoded with
// yaml.v3. Any other extension is an error.
func Load(path string) (*Config, error) {
	switch filepath.Ext(path) {
	case ".cue":
		return loadCUE(path)
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return nil, &LoadError{Path: path, Message: "unrecognized dialect file extension, want .cue, .yaml, or .yml"}
	}
}

func loadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: err.Error()}
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("decoding yaml: %v", err)}
	}
	return cfg, nil
}

func loadCUE(path string) (*Config, error) {
	dir := filepath.Dir(path)
	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Path: path, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("loading cue files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("building cue value: %v", err)}
	}

	cfg := &Config{}

	if v := value.LookupPath(cue.ParsePath("differentEdgesMatchMode")); v.Exists() {
		b, err := v.Bool()
		if err != nil {
			return nil, &LoadError{Path: path, Message: fmt.Sprintf("differentEdgesMatchMode: %v", err)}
		}
		cfg.DifferentEdgesMatchMode = b
	}

	if v := value.LookupPath(cue.ParsePath("generatedPrefix")); v.Exists() {
		s, err := v.String()
		if err != nil {
			return nil, &LoadError{Path: path, Message: fmt.Sprintf("generatedPrefix: %v", err)}
		}
		cfg.GeneratedPrefix = s
	}

	if v := value.LookupPath(cue.ParsePath("cacheEnabled")); v.Exists() {
		b, err := v.Bool()
		if err != nil {
			return nil, &LoadError{Path: path, Message: fmt.Sprintf("cacheEnabled: %v", err)}
		}
		cfg.CacheEnabled = b
	}

	if v := value.LookupPath(cue.ParsePath("enabledFeatures")); v.Exists() {
		iter, err := v.List()
		if err != nil {
			return nil, &LoadError{Path: path, Message: fmt.Sprintf("enabledFeatures: %v", err)}
		}
		for iter.Next() {
			s, err := iter.Value().String()
			if err != nil {
				return nil, &LoadError{Path: path, Message: fmt.Sprintf("enabledFeatures entry: %v", err)}
			}
			cfg.EnabledFeatures = append(cfg.EnabledFeatures, s)
		}
	}

	return cfg, nil
}

// Gate builds the feature gate this config describes.
func (c *Config) Gate() featuregate.Gate {
	features := make([]featuregate.Feature, len(c.EnabledFeatures))
	for i, f := range c.EnabledFeatures {
		features[i] = featuregate.Feature(f)
	}
	return featuregate.NewConfigured(features)
}
