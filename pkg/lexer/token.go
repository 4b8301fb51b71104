// Package lexer tokenizes XPath 3.1 expressions.
package lexer

import (
	"fmt"

	"github.com/dghubble/trie"
)

// TokenType identifies the lexical category of a Token.
type TokenType int

// Position locates a point in the source expression.
type Position struct {
	Line   int // 1-indexed
	Column int // 1-indexed, in runes
	Offset int // 0-indexed, in bytes
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit together with its source span.
type Token struct {
	Type  TokenType
	Value string
	Start Position
	End   Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Value)
}

const (
	ILLEGAL TokenType = iota
	EOF

	// Names and literals
	NCNAME   // bare NCName; the parser decides whether it is a keyword
	QNAME    // prefix:local, lexed as one token when unambiguous
	URIQNAME // Q{uri}local
	STRING   // 'a' or "a", already unescaped of doubled quotes
	INTEGER  // [0-9]+
	DECIMAL  // [0-9.]+ containing a '.'
	DOUBLE   // mantissa e[+-]?digits
	BRACED_URI_LITERAL // Q{uri} without a trailing NCName (wildcard position decides)

	// Punctuation / operators, including those requiring lookahead
	SLASH        // /
	SLASHSLASH   // //
	DOT          // .
	DOTDOT       // ..
	COLON        // :
	COLONCOLON   // ::
	ASSIGN       // :=
	BANG         // ! (simple map operator)
	NE           // !=
	STAR         // *
	LT           // <
	LE           // <=
	PRECEDES     // <<
	GT           // >
	GE           // >=
	FOLLOWS      // >>
	EQ           // =
	ARROW        // =>
	PIPE         // |
	CONCAT       // ||
	PLUS         // +
	MINUS        // -
	COMMA        // ,
	LPAREN       // (
	RPAREN       // )
	LBRACKET     // [
	RBRACKET     // ]
	LBRACE       // {
	RBRACE       // }
	DOLLAR       // $
	AT           // @
	QUESTION     // ?
	HASH         // # (used by named function references: name#arity)
)

var tokenNames = map[TokenType]string{
	ILLEGAL:            "ILLEGAL",
	EOF:                "EOF",
	NCNAME:             "NCNAME",
	QNAME:              "QNAME",
	URIQNAME:           "URIQNAME",
	STRING:             "STRING",
	INTEGER:            "INTEGER",
	DECIMAL:            "DECIMAL",
	DOUBLE:             "DOUBLE",
	BRACED_URI_LITERAL: "BRACED_URI_LITERAL",
	SLASH:              "/",
	SLASHSLASH:         "//",
	DOT:                ".",
	DOTDOT:             "..",
	COLON:              ":",
	COLONCOLON:         "::",
	ASSIGN:             ":=",
	BANG:               "!",
	NE:                 "!=",
	STAR:               "*",
	LT:                 "<",
	LE:                 "<=",
	PRECEDES:           "<<",
	GT:                 ">",
	GE:                 ">=",
	FOLLOWS:            ">>",
	EQ:                 "=",
	ARROW:              "=>",
	PIPE:               "|",
	CONCAT:             "||",
	PLUS:               "+",
	MINUS:              "-",
	COMMA:              ",",
	LPAREN:             "(",
	RPAREN:             ")",
	LBRACKET:           "[",
	RBRACKET:           "]",
	LBRACE:             "{",
	RBRACE:             "}",
	DOLLAR:             "$",
	AT:                 "@",
	QUESTION:           "?",
	HASH:               "#",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Keywords that are reserved in specific grammar positions but remain valid
// NCNames everywhere else (XPath has no globally reserved words). The lexer
// never classifies these specially; this table exists for callers that need
// to test an already-lexed NCName against the keyword set.
var GrammarKeywords = map[string]bool{
	"for": true, "let": true, "some": true, "every": true, "if": true,
	"then": true, "else": true, "in": true, "return": true, "satisfies": true,
	"to": true, "div": true, "idiv": true, "mod": true, "union": true,
	"intersect": true, "except": true, "instance": true, "of": true,
	"treat": true, "as": true, "castable": true, "cast": true, "function": true,
	"map": true, "array": true, "item": true, "node": true, "text": true,
	"comment": true, "processing-instruction": true, "document-node": true,
	"element": true, "attribute": true, "schema-element": true,
	"schema-attribute": true, "namespace-node": true, "empty-sequence": true,
}

// ReservedFunctionNames cannot be used, unprefixed, as a function call or
// named function reference name (xgc:reserved-function-names).
var ReservedFunctionNames = map[string]bool{
	"array": true, "attribute": true, "comment": true, "document-node": true,
	"element": true, "empty-sequence": true, "function": true, "if": true,
	"item": true, "map": true, "namespace-node": true, "node": true,
	"processing-instruction": true, "schema-attribute": true,
	"schema-element": true, "switch": true, "text": true, "typeswitch": true,
}

// reservedFunctionTrie backs IsReservedFunctionName. It is built once at
// package initialization from ReservedFunctionNames and never mutated
// afterward, matching the read-only process-wide keyword tables the
// grammar parser relies on.
var reservedFunctionTrie = buildTrie(ReservedFunctionNames)

func buildTrie(names map[string]bool) *trie.RuneTrie {
	t := trie.NewRuneTrie()
	for name := range names {
		t.Put(name, true)
	}
	return t
}

// IsReservedFunctionName reports whether name is one of the fixed set of
// names that may never be used, unprefixed, as a function call or named
// function reference. A trie lookup rather than a map index, since this is
// the one membership test the grammar parser performs on nearly every
// primary expression it attempts, and the reserved set is fixed at
// startup.
func IsReservedFunctionName(name string) bool {
	return reservedFunctionTrie.Get(name) != nil
}
