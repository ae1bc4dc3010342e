package formula

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Formula is a parsed formula expression, ready for reference extraction and
// repeated evaluation.
type Formula struct {
	// Source is the original formula text, kept for error messages.
	Source string

	expr hcl.Expression
}

// Parse parses formula source text. The filename only labels positions in
// error messages; pass the field name or wherever the text came from.
func Parse(src, filename string) (*Formula, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing formula: %w", diags)
	}
	return &Formula{Source: src, expr: expr}, nil
}

// References returns the distinct field names the formula reads, sorted.
// Only the root of each traversal counts: `Owner.email` references the
// field Owner.
func (f *Formula) References() []string {
	seen := make(map[string]bool)
	var refs []string
	for _, traversal := range f.expr.Variables() {
		name := traversal.RootName()
		if seen[name] {
			continue
		}
		seen[name] = true
		refs = append(refs, name)
	}
	sort.Strings(refs)
	return refs
}

// Eval evaluates the formula with the given field values in scope, under the
// package's function table. Every referenced field must be present in vars;
// a missing one surfaces as an unknown-variable error.
func (f *Formula) Eval(vars map[string]cty.Value) (cty.Value, error) {
	evalCtx := &hcl.EvalContext{
		Variables: vars,
		Functions: Functions(),
	}
	val, diags := f.expr.Value(evalCtx)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("evaluating %q: %w", f.Source, diags)
	}
	return val, nil
}
