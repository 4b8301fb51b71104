package analysis

import (
	"testing"

	"github.com/xpath31/xpathparser/pkg/ast"
)

func TestScopeStackContainsMostRecentFrameFirst(t *testing.T) {
	s := newScopeStack()
	a, b := ast.QName("", "a"), ast.QName("", "b")
	s.push([]ast.EQName{a})
	if !s.contains(a) {
		t.Error("contains(a) = false after push([a])")
	}
	if s.contains(b) {
		t.Error("contains(b) = true before b is pushed")
	}
	s.push([]ast.EQName{b})
	if !s.contains(a) || !s.contains(b) {
		t.Error("both frames should be visible while both are pushed")
	}
	s.pop()
	if s.contains(b) {
		t.Error("contains(b) = true after popping b's frame")
	}
	if !s.contains(a) {
		t.Error("contains(a) = false, outer frame should still be visible")
	}
}

func TestScopeStackEmptyContainsNothing(t *testing.T) {
	s := newScopeStack()
	if s.contains(ast.QName("", "x")) {
		t.Error("empty scopeStack should contain nothing")
	}
}
