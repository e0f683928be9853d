package patternctx

// variableScope is one lexical scope in the parent-linked tree search
// conditions walk to resolve identifiers. localVariables records only
// presence (a name was declared while this scope was the innermost open
// scope) — the resolved kind/degree come from the finished
// GraphPatternAuxData once the whole graph pattern has exited, since a
// variable's degree is not settled until then.
type variableScope struct {
	parent         *variableScope
	localVariables map[string]struct{}
}

func newVariableScope(parent *variableScope) *variableScope {
	return &variableScope{parent: parent, localVariables: map[string]struct{}{}}
}

func (s *variableScope) declareLocal(name string) {
	s.localVariables[name] = struct{}{}
}

// resolve walks from s outward looking for name, returning true if found
// anywhere in the chain.
func (s *variableScope) resolve(name string) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.localVariables[name]; ok {
			return true
		}
	}
	return false
}

// VariableReferenceScope is a scoped acquisition ported from the two
// constructor overloads of the original's VariableReferenceScope: opening
// one pushes a fresh lexical scope (child of whatever scope was current)
// and a fresh declared-names accumulator; its Exit only restores the
// previous current scope. Copying the accumulator's snapshot (Declared())
// onto the owning AST node's PathVariableReferenceScopeAuxData is left to
// the caller.
type VariableReferenceScope struct {
	ctx        *Context
	previous   *variableScope
	scope      *variableScope
	declared   map[string]struct{}
}

// EnterVariableReferenceScope opens a new lexical scope for a PathFactor or
// PathPatternExpression. The caller is responsible for writing the
// returned scope's DeclaredVariables (via Declared()) onto the node's
// PathVariableReferenceScopeAuxData and calling Exit on every success
// path.
func (c *Context) EnterVariableReferenceScope() *VariableReferenceScope {
	previous := c.currentVariableReferenceScope
	scope := newVariableScope(previous)
	c.currentVariableReferenceScope = scope
	c.variableScopes = append(c.variableScopes, scope)
	return &VariableReferenceScope{ctx: c, previous: previous, scope: scope, declared: map[string]struct{}{}}
}

// NoteDeclared records that name was first declared syntactically at this
// scope's point (used to build PathVariableReferenceScopeAuxData.DeclaredVariables).
// Only Node/Edge names are ever passed here by the driver, per the
// variable-kind-tracking rule.
func (s *VariableReferenceScope) NoteDeclared(name string) {
	if name != "" {
		s.declared[name] = struct{}{}
	}
}

// Declared returns the snapshot of names first declared at this scope,
// ready to attach as PathVariableReferenceScopeAuxData.DeclaredVariables.
func (s *VariableReferenceScope) Declared() map[string]struct{} {
	return s.declared
}

// Exit closes the scope, restoring the context's notion of the current
// lexical scope for reference resolution.
func (s *VariableReferenceScope) Exit() {
	s.ctx.currentVariableReferenceScope = s.previous
	s.ctx.variableScopes = s.ctx.variableScopes[:len(s.ctx.variableScopes)-1]
}
