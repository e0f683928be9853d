// Package featuregate decides whether an optional ISO GQL construct the
// analyzer encounters is enabled for the current run.
package featuregate

import (
	"fmt"

	"github.com/gqlcpp/gql/internal/ast"
	"github.com/gqlcpp/gql/internal/gqlerr"
)

// Feature identifies an optional construct. Identifiers mirror the ones
// used during grounding against the reference feature catalogue; they are
// not error codes.
type Feature string

const (
	TrailPathMode              Feature = "G011"
	NestedParenthesizedPattern Feature = "G048"
	WildcardLabelExpression    Feature = "G074"
	UnboundedQuantifier        Feature = "G083"
	SelectivePathPattern       Feature = "G091"
	DifferentEdgesMatchMode    Feature = "G104"
)

// Gate is the policy collaborator the driver consults before acquiring a
// scope for a gated construct. StaticGate and ConfiguredGate are the two
// implementations; the driver never branches on which one it has.
type Gate interface {
	Supported(feature Feature, pos ast.InputPosition) error
}

// StaticGate enables every known feature; it is the default gate and the
// one test code constructs when it does not care about gating.
type StaticGate struct{}

func NewStatic() StaticGate { return StaticGate{} }

func (StaticGate) Supported(Feature, ast.InputPosition) error { return nil }

// ConfiguredGate enables exactly the features named in its set, typically
// built from a loaded dialect document.
type ConfiguredGate struct {
	enabled map[Feature]struct{}
}

func NewConfigured(features []Feature) ConfiguredGate {
	enabled := make(map[Feature]struct{}, len(features))
	for _, f := range features {
		enabled[f] = struct{}{}
	}
	return ConfiguredGate{enabled: enabled}
}

func (g ConfiguredGate) Supported(feature Feature, pos ast.InputPosition) error {
	if _, ok := g.enabled[feature]; ok {
		return nil
	}
	return gqlerr.New(gqlerr.ECodeFeatureNotEnabled, pos, "feature %s is not enabled for this dialect", feature)
}

var _ fmt.Stringer = Feature("")

func (f Feature) String() string { return string(f) }
