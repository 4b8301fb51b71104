package parser

import (
	"fmt"
	"strings"

	"github.com/xpath31/xpathparser/pkg/lexer"
)

// Kind distinguishes the error categories the parser can report.
type Kind int

const (
	// SyntaxError means the input does not conform to the grammar at the
	// reported position.
	SyntaxError Kind = iota
	// TrailingInput means the expression parsed successfully but input
	// remained after the last consumed token.
	TrailingInput
)

func (k Kind) String() string {
	if k == TrailingInput {
		return "TrailingInput"
	}
	return "SyntaxError"
}

// ParseError is the structured failure value returned by Parse and by every
// exported per-nonterminal entry point. It never carries a partial AST.
type ParseError struct {
	Kind       Kind
	Pos        lexer.Position
	Expected   []string // deduplicated, insertion order preserved
	Context    string   // a short run of source text at/after Pos
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at %s", e.Kind, e.Pos)
	if len(e.Expected) > 0 {
		fmt.Fprintf(&sb, ": expected %s", strings.Join(e.Expected, " or "))
	}
	if e.Context != "" {
		fmt.Fprintf(&sb, " near %q", e.Context)
	}
	return sb.String()
}

// expectSet accumulates the set of token/nonterminal descriptions expected
// at the furthest-reached failure position, used to build a high-quality
// error message out of many backtracked alternatives.
type expectSet struct {
	pos    lexer.Position
	offset int // furthest token index reached
	items  []string
	seen   map[string]bool
}

func newExpectSet() *expectSet {
	return &expectSet{seen: map[string]bool{}}
}

func (s *expectSet) record(offset int, pos lexer.Position, expected string) {
	switch {
	case offset > s.offset:
		s.offset = offset
		s.pos = pos
		s.items = nil
		s.seen = map[string]bool{}
		s.add(expected)
	case offset == s.offset:
		s.add(expected)
	}
}

func (s *expectSet) add(expected string) {
	if expected == "" || s.seen[expected] {
		return
	}
	s.seen[expected] = true
	s.items = append(s.items, expected)
}
