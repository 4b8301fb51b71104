package ast

import "testing"

func ctx() Expr {
	p := Position{Line: 1, Column: 1}
	return &ContextItemExpr{BaseNode: BaseNode{StartPos: p, EndPos: p}}
}

func TestNewOrExprCollapsesSingleOperand(t *testing.T) {
	a := ctx()
	if got := NewOrExpr([]Expr{a}); got != a {
		t.Errorf("NewOrExpr([a]) = %v, want a unchanged", got)
	}
}

func TestNewOrExprBuildsCompound(t *testing.T) {
	a, b := ctx(), ctx()
	got := NewOrExpr([]Expr{a, b})
	or, ok := got.(*OrExpr)
	if !ok {
		t.Fatalf("expected *OrExpr, got %T", got)
	}
	if len(or.Operands) != 2 {
		t.Errorf("Operands = %v", or.Operands)
	}
}

func TestNewComparisonExprCollapsesWithNilRight(t *testing.T) {
	left := ctx()
	got := NewComparisonExpr(left, OpEq, nil)
	if got != left {
		t.Errorf("NewComparisonExpr with nil right should collapse to left, got %v", got)
	}
}

func TestNewComparisonExprBuildsCompound(t *testing.T) {
	left, right := ctx(), ctx()
	got := NewComparisonExpr(left, OpEQ, right)
	cmp, ok := got.(*ComparisonExpr)
	if !ok {
		t.Fatalf("expected *ComparisonExpr, got %T", got)
	}
	if cmp.Op != OpEQ || cmp.Left != left || cmp.Right != right {
		t.Errorf("got %+v", cmp)
	}
}

func TestNewAdditiveExprCollapsesWithEmptyTail(t *testing.T) {
	init := ctx()
	if got := NewAdditiveExpr(init, nil); got != init {
		t.Errorf("NewAdditiveExpr with no tail should collapse, got %v", got)
	}
}

func TestNewAdditiveExprLeftAssociative(t *testing.T) {
	a, b, c := ctx(), ctx(), ctx()
	got := NewAdditiveExpr(a, []AdditiveStep{{Op: OpAdd, Operand: b}, {Op: OpSub, Operand: c}})
	add, ok := got.(*AdditiveExpr)
	if !ok {
		t.Fatalf("expected *AdditiveExpr, got %T", got)
	}
	if add.Init != a || len(add.Tail) != 2 {
		t.Fatalf("got %+v", add)
	}
	if add.Tail[0].Op != OpAdd || add.Tail[0].Operand != b {
		t.Errorf("tail[0] = %+v", add.Tail[0])
	}
	if add.Tail[1].Op != OpSub || add.Tail[1].Operand != c {
		t.Errorf("tail[1] = %+v", add.Tail[1])
	}
	children := add.Children()
	if len(children) != 3 || children[0] != a || children[1] != b || children[2] != c {
		t.Errorf("Children() = %v", children)
	}
}

func TestNewInstanceOfExprCollapsesWithNilType(t *testing.T) {
	operand := ctx()
	if got := NewInstanceOfExpr(operand, operand.End(), nil); got != operand {
		t.Errorf("NewInstanceOfExpr with nil type should collapse, got %v", got)
	}
}

func TestNewUnaryExprCollapsesWithNoOps(t *testing.T) {
	operand := ctx()
	if got := NewUnaryExpr(nil, operand.Start(), operand); got != operand {
		t.Errorf("NewUnaryExpr with no ops should collapse, got %v", got)
	}
}

func TestNewUnaryExprPreservesOuterToInnerOrder(t *testing.T) {
	operand := ctx()
	got := NewUnaryExpr([]AdditiveOp{OpSub, OpSub, OpAdd}, operand.Start(), operand)
	unary, ok := got.(*UnaryExpr)
	if !ok {
		t.Fatalf("expected *UnaryExpr, got %T", got)
	}
	want := []AdditiveOp{OpSub, OpSub, OpAdd}
	if len(unary.Ops) != len(want) {
		t.Fatalf("Ops = %v", unary.Ops)
	}
	for i := range want {
		if unary.Ops[i] != want[i] {
			t.Errorf("Ops[%d] = %v, want %v", i, unary.Ops[i], want[i])
		}
	}
}

func TestNewArrowExprCollapsesWithEmptyTail(t *testing.T) {
	init := ctx()
	if got := NewArrowExpr(init, init.End(), nil); got != init {
		t.Errorf("NewArrowExpr with no tail should collapse, got %v", got)
	}
}

func TestArrowSpecifierChildrenOnlyExposesParenthesizedForm(t *testing.T) {
	name := QName("", "upper-case")
	bare := ArrowSpecifier{Name: &name}
	if children := bare.Children(); children != nil {
		t.Errorf("bare EQName specifier Children() = %v, want nil", children)
	}
	inner := ctx()
	paren := ArrowSpecifier{Expr: inner}
	children := paren.Children()
	if len(children) != 1 || children[0] != inner {
		t.Errorf("parenthesized specifier Children() = %v, want [inner]", children)
	}
}

func TestQuantifierString(t *testing.T) {
	if Some.String() != "some" {
		t.Errorf("Some.String() = %q", Some.String())
	}
	if Every.String() != "every" {
		t.Errorf("Every.String() = %q", Every.String())
	}
}

func TestFlatOperandsPanicsOnEmpty(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on empty operand list")
		}
		if _, ok := r.(*ConstructionInvariantViolation); !ok {
			t.Errorf("panic value = %T, want *ConstructionInvariantViolation", r)
		}
	}()
	NewOrExpr(nil)
}
