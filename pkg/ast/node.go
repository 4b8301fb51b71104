// Package ast defines the XPath 3.1 abstract syntax tree: a sum of sums
// whose shape mirrors the language's operator-precedence grammar. Every node
// is immutable and value-equal once constructed, carries no back-pointer to
// its parent, and exposes its immediate children through a single generic
// Children method — the sole primitive the query and analysis layers build
// on.
package ast

import "github.com/xpath31/xpathparser/pkg/lexer"

// Position re-exports the lexer's source-location type so callers of this
// package never need to import pkg/lexer directly.
type Position = lexer.Position

// Node is implemented by every AST node. Children returns immediate
// children in source order; it is the only structural relation the tree
// exposes, and every traversal and analysis in this library is built by
// composing it.
type Node interface {
	Start() Position
	End() Position
	Children() []Node
	String() string
}

// Expr is implemented by every node that can appear in expression position.
// XPath makes no syntactic distinction richer than this at the top level;
// the finer categories from the specification (ExprSingle, the precedence
// chain, PrimaryExpr, ...) are expressed as Go types, not as marker
// interfaces, since a type switch on the concrete node is how every
// consumer (parser, query, analysis) actually distinguishes them.
type Expr interface {
	Node
	exprNode()
}

// BaseNode factors out the Start/End bookkeeping shared by every node.
type BaseNode struct {
	StartPos Position
	EndPos   Position
}

func (b BaseNode) Start() Position { return b.StartPos }
func (b BaseNode) End() Position   { return b.EndPos }

func span(first, last Node) BaseNode {
	return BaseNode{StartPos: first.Start(), EndPos: last.End()}
}

// ConstructionInvariantViolation reports programmer misuse of the AST
// algebra (e.g. a would-be compound node built from an empty operand list).
// It is never returned from parsing; a smart constructor that detects one
// of these panics with it, consistent with it being a programmer error
// rather than a user-facing input error.
type ConstructionInvariantViolation struct {
	Message string
}

func (e *ConstructionInvariantViolation) Error() string {
	return "construction invariant violation: " + e.Message
}

// EQName is either a QName (prefix optional, e.g. "xs:string" or "string")
// or a URIQualifiedName (namespace URI optional, e.g. "Q{http://x}local" or
// "Q{}local" meaning "no namespace"). It is a plain value, not a Node: it
// carries no span of its own because every node that embeds one (VarRef,
// FunctionCall, a NameTest, ...) already carries the span of the whole
// token it was lexed from.
type EQName struct {
	URIQualified bool   // true => URIQualifiedName form, false => QName form
	Prefix       string // QName form only; "" means unprefixed
	URI          string // URIQualifiedName form only; "" means Q{} (no namespace)
	Local        string
}

// HasPrefix reports whether this is a prefixed QName. URIQualifiedNames
// never contribute a prefix, even when their URI is non-empty.
func (n EQName) HasPrefix() bool {
	return !n.URIQualified && n.Prefix != ""
}

func (n EQName) String() string {
	if n.URIQualified {
		return "Q{" + n.URI + "}" + n.Local
	}
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Local
	}
	return n.Local
}

// QName builds an unprefixed or prefixed QName-form EQName.
func QName(prefix, local string) EQName {
	return EQName{Prefix: prefix, Local: local}
}

// URIQualifiedName builds a URIQualifiedName-form EQName.
func URIQualifiedName(uri, local string) EQName {
	return EQName{URIQualified: true, URI: uri, Local: local}
}

// Root is the abstract entry point produced by parsing a whole expression:
// either a single ExprSingle (Expr) or a comma-joined sequence (*XPathExpr).
// A caller pattern-matches on the concrete type the same way it would any
// other Expr; Root exists only to name the top-level result type in
// signatures.
type Root = Expr

// XPathExpr is the comma-joined "Expr" production: a head ExprSingle
// followed by one or more further ExprSingle separated by ','. NewXPathExpr
// collapses a single-element sequence to its sole element, so a compound
// XPathExpr node only ever exists when Tail is non-empty.
type XPathExpr struct {
	BaseNode
	Head Expr
	Tail []Expr // non-empty when this type is used at all
}

func (x *XPathExpr) exprNode() {}
func (x *XPathExpr) String() string { return "XPathExpr" }
func (x *XPathExpr) Children() []Node {
	children := make([]Node, 0, 1+len(x.Tail))
	children = append(children, x.Head)
	for _, e := range x.Tail {
		children = append(children, e)
	}
	return children
}

// NewXPathExpr builds the root of a parsed comma-expression. Panics if
// operands is empty: the grammar never produces a zero-length Expr list,
// and a caller hitting this has violated a construction invariant.
func NewXPathExpr(first Position, last Position, operands []Expr) Expr {
	if len(operands) == 0 {
		panic(&ConstructionInvariantViolation{Message: "NewXPathExpr requires at least one operand"})
	}
	if len(operands) == 1 {
		return operands[0]
	}
	return &XPathExpr{
		BaseNode: BaseNode{StartPos: first, EndPos: last},
		Head:     operands[0],
		Tail:     operands[1:],
	}
}

// Binding is a single "$name in/:= ExprSingle" clause shared by ForExpr,
// LetExpr and QuantifiedExpr.
type Binding struct {
	BaseNode
	Name EQName
	RHS  Expr
}

func (b Binding) Children() []Node { return []Node{b.RHS} }

// ScopeOf answers the scope query from the specification for the binding at
// index i within bindings: the list of AST children in whose subtree the
// i-th binding's name is visible, namely every later binding's RHS plus the
// trailing expression (the "return"/"satisfies" clause). This is the only
// place the AST itself encodes scoping; pkg/analysis does not call it and
// tracks scopes with its own stack during the free/bound walk.
func ScopeOf(bindings []Binding, i int, trailing Expr) []Node {
	scope := make([]Node, 0, len(bindings)-i)
	for _, b := range bindings[i+1:] {
		scope = append(scope, b.RHS)
	}
	scope = append(scope, trailing)
	return scope
}
