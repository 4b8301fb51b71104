package analysis_test

import (
	"testing"

	"github.com/xpath31/xpathparser/pkg/analysis"
	"github.com/xpath31/xpathparser/pkg/ast"
	"github.com/xpath31/xpathparser/pkg/parser"
)

func mustParse(t *testing.T, src string) ast.Root {
	t.Helper()
	root, err := parser.Parse(src, parser.Config{})
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return root
}

func names(refs []*ast.VarRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Name.String()
	}
	return out
}

func TestFindFreeVariablesWithNoBindingConstructs(t *testing.T) {
	root := mustParse(t, "$a + $b")
	free := analysis.FindFreeVariables(root, nil)
	if got := names(free); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Free = %v", got)
	}
	if bound := analysis.FindBoundVariables(root, nil); len(bound) != 0 {
		t.Errorf("Bound = %v, want none", bound)
	}
}

func TestFindBoundVariablesInLetExpr(t *testing.T) {
	root := mustParse(t, "let $x := 1 return $x + $y")
	c := analysis.Classify(root, nil)
	if got := names(c.Bound); len(got) != 1 || got[0] != "x" {
		t.Errorf("Bound = %v, want [x]", got)
	}
	if got := names(c.Free); len(got) != 1 || got[0] != "y" {
		t.Errorf("Free = %v, want [y]", got)
	}
}

func TestForExprBindingInvisibleToItsOwnRHS(t *testing.T) {
	// The RHS of a binding never sees the name being introduced by that
	// same binding; $x inside "$x" here refers to an outer, unbound name.
	root := mustParse(t, "for $x in $x return $x")
	c := analysis.Classify(root, nil)
	if len(c.Free) != 1 {
		t.Fatalf("Free = %v, want exactly one free $x (the binding sequence)", c.Free)
	}
	if len(c.Bound) != 1 {
		t.Fatalf("Bound = %v, want exactly one bound $x (the return clause)", c.Bound)
	}
}

func TestLaterBindingSeesEarlierBoundName(t *testing.T) {
	root := mustParse(t, "let $x := 1, $y := $x return $x + $y")
	c := analysis.Classify(root, nil)
	if len(c.Free) != 0 {
		t.Errorf("Free = %v, want none", c.Free)
	}
	if len(c.Bound) != 3 {
		t.Errorf("Bound = %v, want 3 (y's RHS, x and y in return)", c.Bound)
	}
}

func TestQuantifiedExprSatisfiesSeesBoundName(t *testing.T) {
	root := mustParse(t, "some $x in $s satisfies $x eq $y")
	c := analysis.Classify(root, nil)
	if got := names(c.Free); len(got) != 2 || got[0] != "s" || got[1] != "y" {
		t.Errorf("Free = %v, want [s, y]", got)
	}
	if got := names(c.Bound); len(got) != 1 || got[0] != "x" {
		t.Errorf("Bound = %v, want [x]", got)
	}
}

func TestInlineFunctionParamsScopeBodyOnly(t *testing.T) {
	root := mustParse(t, "function($x as xs:integer) as xs:integer { $x + $y }")
	c := analysis.Classify(root, nil)
	if got := names(c.Bound); len(got) != 1 || got[0] != "x" {
		t.Errorf("Bound = %v, want [x]", got)
	}
	if got := names(c.Free); len(got) != 1 || got[0] != "y" {
		t.Errorf("Free = %v, want [y]", got)
	}
}

func TestInlineFunctionParamTypeDoesNotSeeOwnParameters(t *testing.T) {
	// The sequence-type annotation itself never contains a VarRef in this
	// grammar, but an empty body "{}" should still leave the parameter
	// name itself unreferenced and unclassified (no VarRef node exists
	// for the declaration), only usages inside Body are classified.
	root := mustParse(t, "function($x as xs:integer) {}")
	c := analysis.Classify(root, nil)
	if len(c.Bound) != 0 || len(c.Free) != 0 {
		t.Errorf("got Bound=%v Free=%v, want both empty for an empty body", c.Bound, c.Free)
	}
}

func TestInheritedNamesTreatedAsBoundAtRoot(t *testing.T) {
	root := mustParse(t, "$outer + $inner")
	free := analysis.FindFreeVariables(root, []ast.EQName{ast.QName("", "outer")})
	if got := names(free); len(got) != 1 || got[0] != "inner" {
		t.Errorf("Free = %v, want [inner]", got)
	}
	bound := analysis.FindBoundVariables(root, []ast.EQName{ast.QName("", "outer")})
	if got := names(bound); len(got) != 1 || got[0] != "outer" {
		t.Errorf("Bound = %v, want [outer]", got)
	}
}

func TestNestedLetShadowsOuterBinding(t *testing.T) {
	root := mustParse(t, "let $x := 1 return let $x := 2 return $x")
	c := analysis.Classify(root, nil)
	if len(c.Free) != 0 {
		t.Errorf("Free = %v, want none (inner $x shadows, nothing escapes unbound)", c.Free)
	}
	if len(c.Bound) != 1 {
		t.Errorf("Bound = %v, want exactly the one $x reference in the final return", c.Bound)
	}
}
