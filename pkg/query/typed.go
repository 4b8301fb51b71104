package query

import "github.com/xpath31/xpathparser/pkg/ast"

// The functions below specialize three of the four traversal pairs
// (descendant, topmost-descendant and first-descendant, each with its
// or-self form) to "nodes of variant T", by combining the corresponding
// generic filter with a type assertion. The first-topmost pair has no
// typed form here. Every function here is a thin wrapper; the actual
// walks all live in query.go.

func asPredicate[T ast.Node]() Predicate {
	return func(n ast.Node) bool {
		_, ok := n.(T)
		return ok
	}
}

func convert[T ast.Node](nodes []ast.Node) []T {
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.(T))
	}
	return out
}

// DescendantsOf returns every strict descendant of n whose concrete type is
// T, in source order.
func DescendantsOf[T ast.Node](n ast.Node) []T {
	return convert[T](Descendants(n, asPredicate[T]()))
}

// DescendantsOrSelfOf is DescendantsOf, additionally testing n itself.
func DescendantsOrSelfOf[T ast.Node](n ast.Node) []T {
	return convert[T](DescendantsOrSelf(n, asPredicate[T]()))
}

// TopmostDescendantsOf returns every strict descendant of type T without
// descending into a matched subtree.
func TopmostDescendantsOf[T ast.Node](n ast.Node) []T {
	return convert[T](TopmostDescendants(n, asPredicate[T]()))
}

// TopmostDescendantsOrSelfOf is TopmostDescendantsOf, additionally testing
// n itself first.
func TopmostDescendantsOrSelfOf[T ast.Node](n ast.Node) []T {
	return convert[T](TopmostDescendantsOrSelf(n, asPredicate[T]()))
}

// FirstDescendantOf returns the first strict descendant of type T in
// source order, and whether one was found.
func FirstDescendantOf[T ast.Node](n ast.Node) (T, bool) {
	found := FirstDescendant(n, asPredicate[T]())
	if found == nil {
		var zero T
		return zero, false
	}
	return found.(T), true
}

// FirstDescendantOrSelfOf is FirstDescendantOf, additionally testing n
// itself first.
func FirstDescendantOrSelfOf[T ast.Node](n ast.Node) (T, bool) {
	found := FirstDescendantOrSelf(n, asPredicate[T]())
	if found == nil {
		var zero T
		return zero, false
	}
	return found.(T), true
}
