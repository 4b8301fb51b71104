// Package analysis implements scope-aware analyses over a parsed AST:
// free/bound variable classification and used-EQName/prefix collection.
// Both are pure functions of an already-constructed tree; neither ever
// fails on a well-formed AST.
package analysis

import (
	list "github.com/bahlo/generic-list-go"

	"github.com/xpath31/xpathparser/pkg/ast"
)

// frame is one level of introduced names pushed while descending into a
// binding's scope (a for/let/quantified clause or an inline function
// body).
type frame map[ast.EQName]struct{}

// scopeStack tracks the chain of currently-active introduced-name frames
// as a stack, mirroring the nested lexical scopes a recursive walk enters
// and leaves. A plain accumulated set would answer the same membership
// query, but the stack shape makes the push-on-enter/pop-on-exit
// discipline explicit and lets a frame be removed without rebuilding a
// smaller set from scratch.
type scopeStack struct {
	frames *list.List[frame]
}

func newScopeStack() *scopeStack {
	return &scopeStack{frames: list.New[frame]()}
}

func (s *scopeStack) push(names []ast.EQName) {
	f := make(frame, len(names))
	for _, n := range names {
		f[n] = struct{}{}
	}
	s.frames.PushBack(f)
}

func (s *scopeStack) pop() {
	s.frames.Remove(s.frames.Back())
}

func (s *scopeStack) contains(name ast.EQName) bool {
	for e := s.frames.Back(); e != nil; e = e.Prev() {
		if _, ok := e.Value[name]; ok {
			return true
		}
	}
	return false
}
