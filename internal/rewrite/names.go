package rewrite

import (
	"strconv"

	"github.com/gqlcpp/gql/internal/ast"
)

// collectDeclaredNames gathers every non-empty VariableDeclaration.Name
// under root, used by R4's temporary-name generator to avoid colliding with
// a user identifier that happens to match the reserved prefix.
func collectDeclaredNames(root ast.Node) map[string]struct{} {
	names := make(map[string]struct{})
	ast.ForEachNodeOfType[*ast.VariableDeclaration](root, func(v *ast.VariableDeclaration) ast.VisitorResult {
		if v.Name != "" {
			names[v.Name] = struct{}{}
		}
		return ast.VisitContinue
	})
	return names
}

// generatedNamePrefix is the fixed literal reserved from the user
// identifier space for R4's synthesized temporary variables.
const generatedNamePrefix = "gql_gen_prop"

// tempNameGenerator mints gql_gen_prop<N> names, skipping any value already
// taken by a user identifier (or by an earlier generated name in the same
// pass) rather than renaming or rejecting the user's identifier. See the
// generated-identifier-collision design note.
type tempNameGenerator struct {
	counter int
	taken   map[string]struct{}
}

func newTempNameGenerator(taken map[string]struct{}) *tempNameGenerator {
	return &tempNameGenerator{taken: taken}
}

func (g *tempNameGenerator) next() string {
	for {
		g.counter++
		candidate := generatedNamePrefix + strconv.Itoa(g.counter)
		if _, collides := g.taken[candidate]; collides {
			continue
		}
		g.taken[candidate] = struct{}{}
		return candidate
	}
}
