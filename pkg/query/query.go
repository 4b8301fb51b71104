// Package query provides generic tree traversal over the xpathparser AST,
// built entirely on ast.Node's Children method. Every search in this
// package is a thin specialization of one of four walks: descendant,
// descendant-or-self, topmost-descendant, and topmost-descendant-or-self,
// each with a first-match variant.
package query

import "github.com/xpath31/xpathparser/pkg/ast"

// Predicate reports whether a node matches a query.
type Predicate func(ast.Node) bool

// Descendants returns every strict descendant of n satisfying pred, in
// source (pre-)order.
func Descendants(n ast.Node, pred Predicate) []ast.Node {
	var out []ast.Node
	for _, c := range n.Children() {
		walkAll(c, pred, &out)
	}
	return out
}

// DescendantsOrSelf returns n itself (if it matches) followed by every
// matching strict descendant, in source order.
func DescendantsOrSelf(n ast.Node, pred Predicate) []ast.Node {
	var out []ast.Node
	walkAll(n, pred, &out)
	return out
}

func walkAll(n ast.Node, pred Predicate, out *[]ast.Node) {
	if pred(n) {
		*out = append(*out, n)
	}
	for _, c := range n.Children() {
		walkAll(c, pred, out)
	}
}

// TopmostDescendants returns every strict descendant of n satisfying pred,
// never descending further into the subtree of a match (so nested matches
// under a match are excluded).
func TopmostDescendants(n ast.Node, pred Predicate) []ast.Node {
	var out []ast.Node
	for _, c := range n.Children() {
		walkTopmost(c, pred, &out)
	}
	return out
}

// TopmostDescendantsOrSelf is TopmostDescendants, additionally matching n
// itself: if n matches, the result is just {n}.
func TopmostDescendantsOrSelf(n ast.Node, pred Predicate) []ast.Node {
	var out []ast.Node
	walkTopmost(n, pred, &out)
	return out
}

func walkTopmost(n ast.Node, pred Predicate, out *[]ast.Node) {
	if pred(n) {
		*out = append(*out, n)
		return
	}
	for _, c := range n.Children() {
		walkTopmost(c, pred, out)
	}
}

// FirstDescendant returns the first strict descendant of n satisfying
// pred, in source order, or nil if none matches.
func FirstDescendant(n ast.Node, pred Predicate) ast.Node {
	for _, c := range n.Children() {
		if found := firstAll(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// FirstDescendantOrSelf returns n if it matches, else the first matching
// strict descendant in source order, or nil if none matches.
func FirstDescendantOrSelf(n ast.Node, pred Predicate) ast.Node {
	return firstAll(n, pred)
}

func firstAll(n ast.Node, pred Predicate) ast.Node {
	if pred(n) {
		return n
	}
	for _, c := range n.Children() {
		if found := firstAll(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// FirstTopmostDescendant returns the first strict descendant of n
// satisfying pred without ever descending into a matched subtree.
func FirstTopmostDescendant(n ast.Node, pred Predicate) ast.Node {
	for _, c := range n.Children() {
		if found := firstTopmost(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// FirstTopmostDescendantOrSelf is FirstTopmostDescendant, additionally
// testing n itself first.
func FirstTopmostDescendantOrSelf(n ast.Node, pred Predicate) ast.Node {
	return firstTopmost(n, pred)
}

func firstTopmost(n ast.Node, pred Predicate) ast.Node {
	if pred(n) {
		return n
	}
	for _, c := range n.Children() {
		if found := firstTopmost(c, pred); found != nil {
			return found
		}
	}
	return nil
}
