package ast

import "testing"

func TestNewPathExprCollapsesSingleUnrootedStep(t *testing.T) {
	p := Position{Line: 1, Column: 1}
	step := ctx()
	got := NewPathExpr(p, false, false, step, nil, step.End())
	if got != step {
		t.Errorf("NewPathExpr with one unrooted step should collapse, got %v", got)
	}
}

func TestNewPathExprBareSlash(t *testing.T) {
	p := Position{Line: 1, Column: 1}
	got := NewPathExpr(p, true, false, nil, nil, p)
	path, ok := got.(*PathExpr)
	if !ok {
		t.Fatalf("expected *PathExpr, got %T", got)
	}
	if !path.LeadingSlash || path.LeadingSlashSlash || path.Init != nil {
		t.Errorf("got %+v", path)
	}
	if children := path.Children(); children != nil {
		t.Errorf("Children() = %v, want nil", children)
	}
}

func TestNewPathExprDoesNotSynthesizeNodesForSlashSlash(t *testing.T) {
	p := Position{Line: 1, Column: 1}
	a, b := ctx(), ctx()
	got := NewPathExpr(p, false, true, a, []RelativeStep{{Op: StepSlashSlash, Step: b}}, b.End())
	path, ok := got.(*PathExpr)
	if !ok {
		t.Fatalf("expected *PathExpr, got %T", got)
	}
	children := path.Children()
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Errorf("Children() = %v, want exactly [a, b] with no synthetic node", children)
	}
	if path.Tail[0].Op != StepSlashSlash {
		t.Errorf("Tail[0].Op = %v, want StepSlashSlash", path.Tail[0].Op)
	}
}

func TestStepOpString(t *testing.T) {
	if StepSlash.String() != "/" {
		t.Errorf("StepSlash.String() = %q", StepSlash.String())
	}
	if StepSlashSlash.String() != "//" {
		t.Errorf("StepSlashSlash.String() = %q", StepSlashSlash.String())
	}
}

func TestNameTestStringForms(t *testing.T) {
	cases := []struct {
		test NameTest
		want string
	}{
		{NameTest{Wildcard: NotWildcard, Name: QName("xs", "foo")}, "xs:foo"},
		{NameTest{Wildcard: WildcardAny}, "*"},
		{NameTest{Wildcard: WildcardAnyLocal, Name: EQName{Prefix: "xs"}}, "xs:*"},
		{NameTest{Wildcard: WildcardAnyPrefix, Name: EQName{Local: "foo"}}, "*:foo"},
		{NameTest{Wildcard: WildcardAnyLocalInURI, Name: EQName{URI: "http://x"}}, "Q{http://x}*"},
	}
	for _, c := range cases {
		if got := c.test.String(); got != c.want {
			t.Errorf("%+v.String() = %q, want %q", c.test, got, c.want)
		}
	}
}

func TestAxisStepChildrenIncludesTestAndPredicates(t *testing.T) {
	test := &NameTest{Wildcard: WildcardAny}
	pred1, pred2 := ctx(), ctx()
	step := &AxisStep{Axis: AxisChild, Test: test, Predicates: []Expr{pred1, pred2}}
	children := step.Children()
	if len(children) != 3 || children[0] != test || children[1] != pred1 || children[2] != pred2 {
		t.Errorf("Children() = %v", children)
	}
}

func TestKindTestSatisfiesBothNodeTestAndItemType(t *testing.T) {
	var _ NodeTest = (*KindTest)(nil)
	var _ ItemType = (*KindTest)(nil)
}
