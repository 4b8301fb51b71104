// Package parser implements a hand-written recursive-descent parser for
// XPath 3.1 expressions, one method per grammar nonterminal, composing by
// ordered alternation with explicit backtracking and commit points.
package parser

import (
	"log/slog"

	"github.com/xpath31/xpathparser/pkg/ast"
	"github.com/xpath31/xpathparser/pkg/lexer"
)

// Config configures a parse. The zero value is ready to use.
type Config struct {
	// Logger, when non-nil, receives a debug-level trace event when Parse or
	// one of the exported nonterminal entry points starts; the internal
	// nonterminal methods and commit points are not traced. Parsing behavior
	// never depends on whether a Logger is configured.
	Logger *slog.Logger
}

// Parser holds the mutable state of one parse: a materialized token stream
// (the whole expression is lexed once, up front, so backtracking is just
// restoring an integer index) and the furthest-failure bookkeeping used to
// build a single high-quality error out of many abandoned alternatives.
type Parser struct {
	tokens []lexer.Token
	pos    int
	cfg    Config
	expect *expectSet
}

// New creates a parser over src with the given configuration.
func New(src string, cfg Config) *Parser {
	return &Parser{tokens: lexer.New(src).TokenizeAll(), cfg: cfg, expect: newExpectSet()}
}

func (p *Parser) trace(nonterminal string) {
	if p.cfg.Logger != nil {
		p.cfg.Logger.Debug("enter", "nonterminal", nonterminal, "pos", p.pos, "token", p.peek())
	}
}

// mark/reset implement backtracking: mark returns an opaque position to
// later restore via reset.
func (p *Parser) mark() int    { return p.pos }
func (p *Parser) reset(m int)  { p.pos = m }

func (p *Parser) peek() lexer.Token     { return p.tokens[p.pos] }
func (p *Parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos+n]
}
func (p *Parser) at(tt lexer.TokenType) bool { return p.peek().Type == tt }

func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// expectTok consumes a token of the given type or fails, recording the
// expectation for error reporting.
func (p *Parser) expectTok(tt lexer.TokenType, desc string) (lexer.Token, bool) {
	if p.peek().Type == tt {
		return p.advance(), true
	}
	p.fail(desc)
	return lexer.Token{}, false
}

// fail records an expectation at the current position without changing
// parser state; the caller is responsible for unwinding (backtrack or
// propagate).
func (p *Parser) fail(expected string) {
	p.expect.record(p.pos, p.peek().Start, expected)
}

// keyword reports whether the current token is an unreserved NCName equal
// to kw, which is how every contextual keyword (for, let, if, instance,
// of, ...) is recognized: XPath keywords are never lexically distinct from
// ordinary NCNames.
func (p *Parser) keyword(kw string) bool {
	t := p.peek()
	return t.Type == lexer.NCNAME && t.Value == kw
}

func (p *Parser) keywordAt(n int, kw string) bool {
	t := p.peekAt(n)
	return t.Type == lexer.NCNAME && t.Value == kw
}

// consumeKeyword consumes the current token if it is the contextual
// keyword kw, else fails.
func (p *Parser) consumeKeyword(kw string) bool {
	if p.keyword(kw) {
		p.advance()
		return true
	}
	p.fail("'" + kw + "'")
	return false
}

func (p *Parser) buildError(kind Kind) *ParseError {
	pos := p.expect.pos
	if len(p.expect.items) == 0 {
		pos = p.peek().Start
	}
	ctx := p.contextAt(p.expect.offset)
	return &ParseError{Kind: kind, Pos: pos, Expected: append([]string(nil), p.expect.items...), Context: ctx}
}

func (p *Parser) contextAt(tokenIdx int) string {
	if tokenIdx < 0 || tokenIdx >= len(p.tokens) {
		return ""
	}
	end := tokenIdx + 6
	if end > len(p.tokens) {
		end = len(p.tokens)
	}
	s := ""
	for i := tokenIdx; i < end; i++ {
		if p.tokens[i].Type == lexer.EOF {
			break
		}
		s += p.tokens[i].Value
	}
	return s
}

// Parse is the top-level entry point: skip (already-handled by the lexer)
// leading whitespace, parse a full Expr, and require end-of-input.
func Parse(src string, cfg Config) (ast.Root, error) {
	p := New(src, cfg)
	p.trace("Expr")
	root, ok := p.parseXPathExpr()
	if !ok {
		return nil, p.buildError(SyntaxError)
	}
	if !p.at(lexer.EOF) {
		p.fail("end of input")
		return nil, p.buildError(TrailingInput)
	}
	return root, nil
}

// parseXPathExpr parses "ExprSingle (',' ExprSingle)*".
func (p *Parser) parseXPathExpr() (ast.Root, bool) {
	first := p.peek().Start
	operands, ok := p.commaSeparated(p.parseExprSingle)
	if !ok {
		return nil, false
	}
	last := p.tokens[p.pos-1].End
	return ast.NewXPathExpr(first, last, operands), true
}

func (p *Parser) commaSeparated(parse func() (ast.Expr, bool)) ([]ast.Expr, bool) {
	first, ok := parse()
	if !ok {
		return nil, false
	}
	operands := []ast.Expr{first}
	for p.at(lexer.COMMA) {
		p.advance()
		next, ok := parse()
		if !ok {
			return nil, false
		}
		operands = append(operands, next)
	}
	return operands, true
}

// parseExprSingle is "ForExpr | LetExpr | QuantifiedExpr | IfExpr | OrExpr".
// The first four all begin with a keyword, so the keyword together with the
// token after it ('$' or '(') picks the branch; OrExpr is the fallback.
func (p *Parser) parseExprSingle() (ast.Expr, bool) {
	switch {
	case p.keyword("for") && p.peekAt(1).Type == lexer.DOLLAR:
		return p.parseForExpr()
	case p.keyword("let") && p.peekAt(1).Type == lexer.DOLLAR:
		return p.parseLetExpr()
	case (p.keyword("some") || p.keyword("every")) && p.peekAt(1).Type == lexer.DOLLAR:
		return p.parseQuantifiedExpr()
	case p.keyword("if") && p.peekAt(1).Type == lexer.LPAREN:
		return p.parseIfExpr()
	default:
		return p.parseOrExpr()
	}
}

func (p *Parser) parseBindingList(introducer string) ([]ast.Binding, bool) {
	var bindings []ast.Binding
	for {
		start := p.peek().Start
		if _, ok := p.expectTok(lexer.DOLLAR, "'$'"); !ok {
			return nil, false
		}
		name, ok := p.parseEQName()
		if !ok {
			return nil, false
		}
		if !p.consumeKeyword(introducer) {
			return nil, false
		}
		rhs, ok := p.parseExprSingle()
		if !ok {
			return nil, false
		}
		bindings = append(bindings, ast.Binding{
			BaseNode: ast.BaseNode{StartPos: start, EndPos: rhs.End()},
			Name:     name,
			RHS:      rhs,
		})
		if !p.at(lexer.COMMA) {
			break
		}
		p.advance()
	}
	return bindings, true
}

func (p *Parser) parseForExpr() (ast.Expr, bool) {
	start := p.peek().Start
	p.advance() // 'for', committed
	bindings, ok := p.parseBindingList("in")
	if !ok {
		return nil, false
	}
	if !p.consumeKeyword("return") {
		return nil, false
	}
	ret, ok := p.parseExprSingle()
	if !ok {
		return nil, false
	}
	return &ast.ForExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: ret.End()}, Bindings: bindings, Return: ret}, true
}

// parseLetExpr's binding separator is the ':=' token rather than a
// contextual keyword, unlike the "in" of for/quantified bindings, so it
// walks its own binding list instead of sharing parseBindingList.
func (p *Parser) parseLetExpr() (ast.Expr, bool) {
	start := p.peek().Start
	p.advance() // 'let', committed
	var bindings []ast.Binding
	for {
		bindStart := p.peek().Start
		if _, ok := p.expectTok(lexer.DOLLAR, "'$'"); !ok {
			return nil, false
		}
		name, ok := p.parseEQName()
		if !ok {
			return nil, false
		}
		if _, ok := p.expectTok(lexer.ASSIGN, "':='"); !ok {
			return nil, false
		}
		rhs, ok := p.parseExprSingle()
		if !ok {
			return nil, false
		}
		bindings = append(bindings, ast.Binding{
			BaseNode: ast.BaseNode{StartPos: bindStart, EndPos: rhs.End()},
			Name:     name,
			RHS:      rhs,
		})
		if !p.at(lexer.COMMA) {
			break
		}
		p.advance()
	}
	if !p.consumeKeyword("return") {
		return nil, false
	}
	ret, ok := p.parseExprSingle()
	if !ok {
		return nil, false
	}
	return &ast.LetExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: ret.End()}, Bindings: bindings, Return: ret}, true
}

func (p *Parser) parseQuantifiedExpr() (ast.Expr, bool) {
	start := p.peek().Start
	q := ast.Some
	if p.keyword("every") {
		q = ast.Every
	}
	p.advance() // 'some'/'every', committed
	bindings, ok := p.parseBindingList("in")
	if !ok {
		return nil, false
	}
	if !p.consumeKeyword("satisfies") {
		return nil, false
	}
	satisfies, ok := p.parseExprSingle()
	if !ok {
		return nil, false
	}
	return &ast.QuantifiedExpr{
		BaseNode:   ast.BaseNode{StartPos: start, EndPos: satisfies.End()},
		Quantifier: q,
		Bindings:   bindings,
		Satisfies:  satisfies,
	}, true
}

func (p *Parser) parseIfExpr() (ast.Expr, bool) {
	start := p.peek().Start
	p.advance() // 'if', committed on seeing '(' ahead
	if _, ok := p.expectTok(lexer.LPAREN, "'('"); !ok {
		return nil, false
	}
	cond, ok := p.parseXPathExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
		return nil, false
	}
	if !p.consumeKeyword("then") {
		return nil, false
	}
	then, ok := p.parseExprSingle()
	if !ok {
		return nil, false
	}
	if !p.consumeKeyword("else") {
		return nil, false
	}
	els, ok := p.parseExprSingle()
	if !ok {
		return nil, false
	}
	return &ast.IfExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: els.End()}, Cond: cond, Then: then, Else: els}, true
}

// flatLevel parses a flat/associative precedence level: next() builds the
// operand, isOp recognizes the recurring operator and consumeOp consumes it.
func (p *Parser) flatLevel(next func() (ast.Expr, bool), isOp func() bool, consumeOp func()) ([]ast.Expr, bool) {
	first, ok := next()
	if !ok {
		return nil, false
	}
	operands := []ast.Expr{first}
	for isOp() {
		consumeOp()
		operand, ok := next()
		if !ok {
			return nil, false
		}
		operands = append(operands, operand)
	}
	return operands, true
}

func (p *Parser) parseOrExpr() (ast.Expr, bool) {
	operands, ok := p.flatLevel(p.parseAndExpr,
		func() bool { return p.keyword("or") },
		func() { p.advance() })
	if !ok {
		return nil, false
	}
	return ast.NewOrExpr(operands), true
}

func (p *Parser) parseAndExpr() (ast.Expr, bool) {
	operands, ok := p.flatLevel(p.parseComparisonExpr,
		func() bool { return p.keyword("and") },
		func() { p.advance() })
	if !ok {
		return nil, false
	}
	return ast.NewAndExpr(operands), true
}

var valueCompareOps = map[string]ast.ComparisonOp{"eq": ast.OpEQ, "ne": ast.OpNE, "lt": ast.OpLT, "le": ast.OpLE, "gt": ast.OpGT, "ge": ast.OpGE}
var nodeCompareOps = map[string]ast.ComparisonOp{"is": ast.OpIs}

func (p *Parser) parseComparisonExpr() (ast.Expr, bool) {
	left, ok := p.parseStringConcatExpr()
	if !ok {
		return nil, false
	}
	op, consumed := p.tryComparisonOp()
	if !consumed {
		return left, true
	}
	right, ok := p.parseStringConcatExpr()
	if !ok {
		return nil, false
	}
	return ast.NewComparisonExpr(left, op, right), true
}

func (p *Parser) tryComparisonOp() (ast.ComparisonOp, bool) {
	switch p.peek().Type {
	case lexer.EQ:
		p.advance()
		return ast.OpEq, true
	case lexer.NE:
		p.advance()
		return ast.OpNe, true
	case lexer.LT:
		p.advance()
		return ast.OpLt, true
	case lexer.LE:
		p.advance()
		return ast.OpLe, true
	case lexer.GT:
		p.advance()
		return ast.OpGt, true
	case lexer.GE:
		p.advance()
		return ast.OpGe, true
	case lexer.PRECEDES:
		p.advance()
		return ast.OpPrecedes, true
	case lexer.FOLLOWS:
		p.advance()
		return ast.OpFollows, true
	}
	if p.peek().Type == lexer.NCNAME {
		if op, ok := valueCompareOps[p.peek().Value]; ok {
			p.advance()
			return op, true
		}
		if op, ok := nodeCompareOps[p.peek().Value]; ok {
			p.advance()
			return op, true
		}
	}
	return "", false
}

func (p *Parser) parseStringConcatExpr() (ast.Expr, bool) {
	operands, ok := p.flatLevel(p.parseRangeExpr,
		func() bool { return p.at(lexer.CONCAT) },
		func() { p.advance() })
	if !ok {
		return nil, false
	}
	return ast.NewStringConcatExpr(operands), true
}

func (p *Parser) parseRangeExpr() (ast.Expr, bool) {
	left, ok := p.parseAdditiveExpr()
	if !ok {
		return nil, false
	}
	if !p.keyword("to") {
		return left, true
	}
	p.advance()
	right, ok := p.parseAdditiveExpr()
	if !ok {
		return nil, false
	}
	return ast.NewRangeExpr(left, right), true
}

func (p *Parser) parseAdditiveExpr() (ast.Expr, bool) {
	init, ok := p.parseMultiplicativeExpr()
	if !ok {
		return nil, false
	}
	var tail []ast.AdditiveStep
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		op := ast.OpAdd
		if p.at(lexer.MINUS) {
			op = ast.OpSub
		}
		p.advance()
		operand, ok := p.parseMultiplicativeExpr()
		if !ok {
			return nil, false
		}
		tail = append(tail, ast.AdditiveStep{Op: op, Operand: operand})
	}
	return ast.NewAdditiveExpr(init, tail), true
}

var multiplicativeKeywordOps = map[string]ast.MultiplicativeOp{"div": ast.OpDiv, "idiv": ast.OpIDiv, "mod": ast.OpMod}

func (p *Parser) parseMultiplicativeExpr() (ast.Expr, bool) {
	init, ok := p.parseUnionExpr()
	if !ok {
		return nil, false
	}
	var tail []ast.MultiplicativeStep
	for {
		var op ast.MultiplicativeOp
		switch {
		case p.at(lexer.STAR) && p.peekAt(1).Type != lexer.COLON:
			op = ast.OpMul
		case p.peek().Type == lexer.NCNAME && multiplicativeKeywordOps[p.peek().Value] != "":
			op = multiplicativeKeywordOps[p.peek().Value]
		default:
			return ast.NewMultiplicativeExpr(init, tail), true
		}
		p.advance()
		operand, ok := p.parseUnionExpr()
		if !ok {
			return nil, false
		}
		tail = append(tail, ast.MultiplicativeStep{Op: op, Operand: operand})
	}
}

func (p *Parser) parseUnionExpr() (ast.Expr, bool) {
	operands, ok := p.flatLevel(p.parseIntersectExceptExpr,
		func() bool { return p.keyword("union") || p.at(lexer.PIPE) },
		func() { p.advance() })
	if !ok {
		return nil, false
	}
	return ast.NewUnionExpr(operands), true
}

func (p *Parser) parseIntersectExceptExpr() (ast.Expr, bool) {
	init, ok := p.parseInstanceOfExpr()
	if !ok {
		return nil, false
	}
	var tail []ast.IntersectExceptStep
	for p.keyword("intersect") || p.keyword("except") {
		op := ast.OpIntersect
		if p.keyword("except") {
			op = ast.OpExcept
		}
		p.advance()
		operand, ok := p.parseInstanceOfExpr()
		if !ok {
			return nil, false
		}
		tail = append(tail, ast.IntersectExceptStep{Op: op, Operand: operand})
	}
	return ast.NewIntersectExceptExpr(init, tail), true
}

func (p *Parser) parseInstanceOfExpr() (ast.Expr, bool) {
	operand, ok := p.parseTreatExpr()
	if !ok {
		return nil, false
	}
	if !(p.keyword("instance") && p.keywordAt(1, "of")) {
		return operand, true
	}
	p.advance()
	p.advance()
	ty, ok := p.parseSequenceType()
	if !ok {
		return nil, false
	}
	return ast.NewInstanceOfExpr(operand, p.tokens[p.pos-1].End, ty), true
}

func (p *Parser) parseTreatExpr() (ast.Expr, bool) {
	operand, ok := p.parseCastableExpr()
	if !ok {
		return nil, false
	}
	if !(p.keyword("treat") && p.keywordAt(1, "as")) {
		return operand, true
	}
	p.advance()
	p.advance()
	ty, ok := p.parseSequenceType()
	if !ok {
		return nil, false
	}
	return ast.NewTreatExpr(operand, p.tokens[p.pos-1].End, ty), true
}

func (p *Parser) parseCastableExpr() (ast.Expr, bool) {
	operand, ok := p.parseCastExpr()
	if !ok {
		return nil, false
	}
	if !(p.keyword("castable") && p.keywordAt(1, "as")) {
		return operand, true
	}
	p.advance()
	p.advance()
	ty, ok := p.parseSingleType()
	if !ok {
		return nil, false
	}
	return ast.NewCastableExpr(operand, p.tokens[p.pos-1].End, ty), true
}

func (p *Parser) parseCastExpr() (ast.Expr, bool) {
	operand, ok := p.parseArrowExpr()
	if !ok {
		return nil, false
	}
	if !(p.keyword("cast") && p.keywordAt(1, "as")) {
		return operand, true
	}
	p.advance()
	p.advance()
	ty, ok := p.parseSingleType()
	if !ok {
		return nil, false
	}
	return ast.NewCastExpr(operand, p.tokens[p.pos-1].End, ty), true
}

func (p *Parser) parseArrowExpr() (ast.Expr, bool) {
	init, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}
	var tail []ast.ArrowStep
	for p.at(lexer.ARROW) {
		p.advance()
		spec, ok := p.parseArrowSpecifier()
		if !ok {
			return nil, false
		}
		if _, ok := p.expectTok(lexer.LPAREN, "'('"); !ok {
			return nil, false
		}
		args, ok := p.parseArgumentList()
		if !ok {
			return nil, false
		}
		tail = append(tail, ast.ArrowStep{Specifier: spec, Args: args})
	}
	end := init.End()
	if len(tail) > 0 {
		end = p.tokens[p.pos-1].End
	}
	return ast.NewArrowExpr(init, end, tail), true
}

func (p *Parser) parseArrowSpecifier() (ast.ArrowSpecifier, bool) {
	start := p.peek().Start
	switch {
	case p.at(lexer.DOLLAR):
		p.advance()
		name, ok := p.parseEQName()
		if !ok {
			return ast.ArrowSpecifier{}, false
		}
		return ast.ArrowSpecifier{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, VarRef: &name}, true
	case p.at(lexer.LPAREN):
		p.advance()
		e, ok := p.parseXPathExpr()
		if !ok {
			return ast.ArrowSpecifier{}, false
		}
		if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
			return ast.ArrowSpecifier{}, false
		}
		return ast.ArrowSpecifier{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Expr: e}, true
	default:
		name, ok := p.parseEQName()
		if !ok {
			return ast.ArrowSpecifier{}, false
		}
		return ast.ArrowSpecifier{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Name: &name}, true
	}
}

func (p *Parser) parseUnaryExpr() (ast.Expr, bool) {
	start := p.peek().Start
	var ops []ast.AdditiveOp
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		if p.at(lexer.PLUS) {
			ops = append(ops, ast.OpAdd)
		} else {
			ops = append(ops, ast.OpSub)
		}
		p.advance()
	}
	operand, ok := p.parseValueExpr()
	if !ok {
		return nil, false
	}
	return ast.NewUnaryExpr(ops, start, operand), true
}

// parseValueExpr is "SimpleMapExpr", the precedence chain's bottom besides
// unary; it exists in the grammar only to sit between UnaryExpr and
// SimpleMapExpr and is never materialized as a distinct node.
func (p *Parser) parseValueExpr() (ast.Expr, bool) {
	return p.parseSimpleMapExpr()
}

func (p *Parser) parseSimpleMapExpr() (ast.Expr, bool) {
	operands, ok := p.flatLevel(p.parsePathExpr,
		func() bool { return p.at(lexer.BANG) },
		func() { p.advance() })
	if !ok {
		return nil, false
	}
	return ast.NewSimpleMapExpr(operands), true
}
