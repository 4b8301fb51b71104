package query_test

import (
	"testing"

	"github.com/xpath31/xpathparser/pkg/ast"
	"github.com/xpath31/xpathparser/pkg/parser"
	"github.com/xpath31/xpathparser/pkg/query"
)

func mustParse(t *testing.T, src string) ast.Root {
	t.Helper()
	root, err := parser.Parse(src, parser.Config{})
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return root
}

func isVarRef(n ast.Node) bool {
	_, ok := n.(*ast.VarRef)
	return ok
}

func isFunctionCall(n ast.Node) bool {
	_, ok := n.(*ast.FunctionCall)
	return ok
}

func TestDescendantsFindsNestedVarRefs(t *testing.T) {
	root := mustParse(t, "$a + $b + f($c)")
	vars := query.Descendants(root, isVarRef)
	if len(vars) != 3 {
		t.Fatalf("Descendants found %d var refs, want 3: %v", len(vars), vars)
	}
}

func TestDescendantsExcludesSelf(t *testing.T) {
	root := mustParse(t, "$a")
	if !isVarRef(root) {
		t.Fatalf("expected root to be a VarRef, got %T", root)
	}
	vars := query.Descendants(root, isVarRef)
	if len(vars) != 0 {
		t.Errorf("Descendants on a bare VarRef root should find nothing, got %v", vars)
	}
}

func TestDescendantsOrSelfIncludesSelf(t *testing.T) {
	root := mustParse(t, "$a")
	vars := query.DescendantsOrSelf(root, isVarRef)
	if len(vars) != 1 || vars[0] != root {
		t.Fatalf("DescendantsOrSelf = %v, want [root]", vars)
	}
}

func TestDescendantsOrSelfPreOrder(t *testing.T) {
	root := mustParse(t, "f($a, $b)")
	nodes := query.DescendantsOrSelf(root, func(n ast.Node) bool { return true })
	fc, ok := nodes[0].(*ast.FunctionCall)
	if !ok || fc != root {
		t.Fatalf("first visited node should be the root FunctionCall, got %T", nodes[0])
	}
}

func TestTopmostDescendantsDoesNotDescendIntoMatch(t *testing.T) {
	root := mustParse(t, "1 + outer(inner(2))")
	calls := query.TopmostDescendants(root, isFunctionCall)
	if len(calls) != 1 {
		t.Fatalf("TopmostDescendants = %v, want exactly [outer(...)]", calls)
	}
	fc, ok := calls[0].(*ast.FunctionCall)
	if !ok || fc.Name.Local != "outer" {
		t.Errorf("got %+v, want outer(...)", calls[0])
	}
}

func TestTopmostDescendantsOrSelfStopsImmediatelyWhenRootMatches(t *testing.T) {
	root := mustParse(t, "outer(inner(2))")
	calls := query.TopmostDescendantsOrSelf(root, isFunctionCall)
	if len(calls) != 1 || calls[0] != root {
		t.Fatalf("TopmostDescendantsOrSelf = %v, want [root]", calls)
	}
}

func TestFirstDescendantReturnsFirstInSourceOrder(t *testing.T) {
	root := mustParse(t, "$a + $b")
	first := query.FirstDescendant(root, isVarRef)
	vr, ok := first.(*ast.VarRef)
	if !ok || vr.Name.Local != "a" {
		t.Fatalf("FirstDescendant = %+v, want $a", first)
	}
}

func TestFirstDescendantReturnsNilWhenNoMatch(t *testing.T) {
	root := mustParse(t, "1 + 2")
	if found := query.FirstDescendant(root, isVarRef); found != nil {
		t.Errorf("FirstDescendant = %v, want nil", found)
	}
}

func TestFirstDescendantOrSelfTestsSelfFirst(t *testing.T) {
	root := mustParse(t, "$a")
	found := query.FirstDescendantOrSelf(root, isVarRef)
	if found != root {
		t.Errorf("FirstDescendantOrSelf = %v, want root", found)
	}
}

func TestFirstTopmostDescendantSkipsNestedMatchInsideAMatch(t *testing.T) {
	root := mustParse(t, "outer(inner(2))")
	found := query.FirstTopmostDescendant(root, isFunctionCall)
	fc, ok := found.(*ast.FunctionCall)
	if !ok || fc.Name.Local != "outer" {
		t.Fatalf("FirstTopmostDescendant = %+v, want outer(...)", found)
	}
}

func TestFirstTopmostDescendantOrSelfTestsSelfFirst(t *testing.T) {
	root := mustParse(t, "outer(inner(2))")
	found := query.FirstTopmostDescendantOrSelf(root, isFunctionCall)
	if found != root {
		t.Errorf("FirstTopmostDescendantOrSelf = %v, want root", found)
	}
}
