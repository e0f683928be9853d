// Package rewrite implements the four pre-analysis AST-to-AST rewrites that
// desugar surface MATCH pattern syntax into the canonical form the
// syntax-analyzer driver expects: no SimplifiedPathPatternExpression, no
// bare dash chains, no element-level WHERE or property-specification
// predicates. Each rewrite is a full tree walk and is idempotent; RunAll
// applies all four and is itself safe to call more than once.
package rewrite
