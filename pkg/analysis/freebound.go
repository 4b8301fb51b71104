package analysis

import "github.com/xpath31/xpathparser/pkg/ast"

// Classification is the result of a free/bound walk: every VarRef
// descendant-or-self of the root, partitioned by whether its name was in
// the introduced set active at its occurrence. free ∩ bound = ∅ always,
// and free ∪ bound covers every VarRef in the tree.
type Classification struct {
	Free  []*ast.VarRef
	Bound []*ast.VarRef
}

// FindFreeVariables returns every VarRef in root whose name is not in
// inherited (the names bound by scopes enclosing root itself).
func FindFreeVariables(root ast.Node, inherited []ast.EQName) []*ast.VarRef {
	return classify(root, inherited).Free
}

// FindBoundVariables is FindFreeVariables's dual.
func FindBoundVariables(root ast.Node, inherited []ast.EQName) []*ast.VarRef {
	return classify(root, inherited).Bound
}

// Classify runs the full walk and returns both partitions in one pass,
// for callers that want both without walking twice.
func Classify(root ast.Node, inherited []ast.EQName) Classification {
	return classify(root, inherited)
}

func classify(root ast.Node, inherited []ast.EQName) Classification {
	w := &walker{scopes: newScopeStack()}
	w.scopes.push(inherited)
	w.visit(root)
	return w.result
}

type walker struct {
	scopes *scopeStack
	result Classification
}

func (w *walker) visit(n ast.Node) {
	if n == nil {
		return
	}
	switch node := n.(type) {
	case *ast.VarRef:
		if w.scopes.contains(node.Name) {
			w.result.Bound = append(w.result.Bound, node)
		} else {
			w.result.Free = append(w.result.Free, node)
		}
		return
	case *ast.ForExpr:
		w.visitBindings(node.Bindings, node.Return)
		return
	case *ast.LetExpr:
		w.visitBindings(node.Bindings, node.Return)
		return
	case *ast.QuantifiedExpr:
		w.visitBindings(node.Bindings, node.Satisfies)
		return
	case *ast.InlineFunctionExpr:
		w.visitInlineFunction(node)
		return
	}
	for _, c := range n.Children() {
		w.visit(c)
	}
}

// visitBindings implements the shared for/let/quantified scoping rule:
// Ek sees inherited plus every name bound strictly before it, and the
// trailing expression sees every bound name.
func (w *walker) visitBindings(bindings []ast.Binding, trailing ast.Expr) {
	for _, b := range bindings {
		w.visit(b.RHS) // sees only names introduced by earlier bindings
		w.scopes.push([]ast.EQName{b.Name})
	}
	w.visit(trailing)
	for range bindings {
		w.scopes.pop()
	}
}

// visitInlineFunction implements "body sees inherited ∪ {p1,...,pn};
// parameter types do not affect scope" — so parameter type annotations are
// walked with the outer (pre-function) scope, matching that they cannot
// reference the function's own parameters.
func (w *walker) visitInlineFunction(fn *ast.InlineFunctionExpr) {
	var names []ast.EQName
	for _, p := range fn.Params {
		names = append(names, p.Name)
		if p.Type != nil {
			w.visit(p.Type)
		}
	}
	if fn.ReturnType != nil {
		w.visit(fn.ReturnType)
	}
	w.scopes.push(names)
	if fn.Body != nil {
		w.visit(fn.Body)
	}
	w.scopes.pop()
}
