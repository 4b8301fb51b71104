package parser

import (
	"github.com/xpath31/xpathparser/pkg/ast"
	"github.com/xpath31/xpathparser/pkg/lexer"
)

var forwardAxisKeywords = map[string]ast.Axis{
	"child":              ast.AxisChild,
	"descendant":         ast.AxisDescendant,
	"attribute":          ast.AxisAttribute,
	"self":               ast.AxisSelf,
	"descendant-or-self": ast.AxisDescendantOrSelf,
	"following-sibling":  ast.AxisFollowingSibling,
	"following":          ast.AxisFollowing,
	"namespace":          ast.AxisNamespace,
}

var reverseAxisKeywords = map[string]ast.Axis{
	"parent":            ast.AxisParent,
	"ancestor":          ast.AxisAncestor,
	"preceding-sibling": ast.AxisPrecedingSibling,
	"preceding":         ast.AxisPreceding,
	"ancestor-or-self":  ast.AxisAncestorOrSelf,
}

// canStartStep implements the xgc:leading-lone-slash lookahead set: axis
// prefixes (forward/reverse axis keyword + '::', '@', '..'), the start of
// a node test (an EQName/NCName, '*', or the 'Q{uri}' of a 'Q{uri}*'
// wildcard), or anything that can start a PostfixExpr (literal, '$', '(',
// '.', an EQName/NCName, the keywords function/map/array, or '[' / '?').
func (p *Parser) canStartStep() bool {
	t := p.peek()
	switch t.Type {
	case lexer.AT, lexer.DOTDOT, lexer.DOT, lexer.DOLLAR, lexer.LPAREN,
		lexer.STRING, lexer.INTEGER, lexer.DECIMAL, lexer.DOUBLE,
		lexer.NCNAME, lexer.QNAME, lexer.URIQNAME, lexer.STAR,
		lexer.BRACED_URI_LITERAL, lexer.LBRACKET, lexer.QUESTION:
		return true
	}
	return false
}

func (p *Parser) isAxisKeyword() bool {
	if p.peek().Type != lexer.NCNAME {
		return false
	}
	if _, ok := forwardAxisKeywords[p.peek().Value]; ok {
		return p.peekAt(1).Type == lexer.COLONCOLON
	}
	if _, ok := reverseAxisKeywords[p.peek().Value]; ok {
		return p.peekAt(1).Type == lexer.COLONCOLON
	}
	return false
}

// parsePathExpr implements xgc:leading-lone-slash: a leading '/' (not
// '//') is a PathExprStartingWithSingleSlash only if what follows can
// start a relative path; otherwise it is the lone '/' expression. A
// leading '//' is always followed by a relative path.
func (p *Parser) parsePathExpr() (ast.Expr, bool) {
	start := p.peek().Start
	switch {
	case p.at(lexer.SLASHSLASH):
		p.advance()
		init, tail, ok := p.parseRelativePathExpr()
		if !ok {
			return nil, false
		}
		return ast.NewPathExpr(start, false, true, init, tail, p.tokens[p.pos-1].End), true
	case p.at(lexer.SLASH):
		p.advance()
		if !p.canStartStep() {
			return ast.NewPathExpr(start, true, false, nil, nil, p.tokens[p.pos-1].End), true
		}
		init, tail, ok := p.parseRelativePathExpr()
		if !ok {
			return nil, false
		}
		return ast.NewPathExpr(start, true, false, init, tail, p.tokens[p.pos-1].End), true
	default:
		init, tail, ok := p.parseRelativePathExpr()
		if !ok {
			return nil, false
		}
		return ast.NewPathExpr(start, false, false, init, tail, p.tokens[p.pos-1].End), true
	}
}

// parseRelativePathExpr reads a head StepExpr followed by zero or more
// ('/' | '//') StepExpr pairs, recording each operator on its RelativeStep
// exactly as written rather than synthesizing extra nodes for "//".
func (p *Parser) parseRelativePathExpr() (ast.Expr, []ast.RelativeStep, bool) {
	init, ok := p.parseStepExpr()
	if !ok {
		return nil, nil, false
	}
	var tail []ast.RelativeStep
	for p.at(lexer.SLASH) || p.at(lexer.SLASHSLASH) {
		op := ast.StepSlash
		if p.at(lexer.SLASHSLASH) {
			op = ast.StepSlashSlash
		}
		p.advance()
		next, ok := p.parseStepExpr()
		if !ok {
			return nil, nil, false
		}
		tail = append(tail, ast.RelativeStep{Op: op, Step: next})
	}
	return init, tail, true
}

// parseStepExpr tries PostfixExpr first, falling back to an axis step: a
// bare EQName parses fine as either, but is never a *complete* postfix
// without a trailing argument-list or lookup, so trying postfix first lets
// function calls and named function references win wherever punctuation
// forces the issue, while still falling through to a name test otherwise.
func (p *Parser) parseStepExpr() (ast.Expr, bool) {
	mark := p.mark()
	if postfix, ok := p.parsePostfixExpr(); ok {
		return postfix, true
	}
	p.reset(mark)
	if step, ok := p.parseAxisStep(); ok {
		return step, true
	}
	p.reset(mark)
	p.fail("step expression")
	return nil, false
}

func (p *Parser) parseAxisStep() (ast.Expr, bool) {
	start := p.peek().Start
	switch {
	case p.isAxisKeyword():
		axis := forwardAxisKeywords[p.peek().Value]
		if a, ok := reverseAxisKeywords[p.peek().Value]; ok {
			axis = a
		}
		p.advance() // axis keyword
		p.advance() // '::'
		test, ok := p.parseNodeTest()
		if !ok {
			return nil, false
		}
		return p.finishAxisStep(start, axis, test)
	case p.at(lexer.AT):
		p.advance()
		test, ok := p.parseNodeTest()
		if !ok {
			return nil, false
		}
		return p.finishAxisStep(start, ast.AxisAttribute, test)
	case p.at(lexer.DOTDOT):
		p.advance()
		test := &ast.KindTest{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Kind: ast.KindAnyKind}
		return &ast.AxisStep{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Axis: ast.AxisParent, Test: test}, true
	default:
		// Bare NodeTest: the default (abbreviated) child axis.
		test, ok := p.tryParseNodeTest()
		if !ok {
			p.fail("node test")
			return nil, false
		}
		return p.finishAxisStep(start, ast.AxisChild, test)
	}
}

func (p *Parser) finishAxisStep(start lexer.Position, axis ast.Axis, test ast.NodeTest) (ast.Expr, bool) {
	preds, ok := p.parsePredicateList()
	if !ok {
		return nil, false
	}
	end := test.End()
	if len(preds) > 0 {
		end = p.tokens[p.pos-1].End
	}
	return &ast.AxisStep{BaseNode: ast.BaseNode{StartPos: start, EndPos: end}, Axis: axis, Test: test, Predicates: preds}, true
}

func (p *Parser) parsePredicateList() ([]ast.Expr, bool) {
	var preds []ast.Expr
	for p.at(lexer.LBRACKET) {
		p.advance()
		e, ok := p.parseXPathExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expectTok(lexer.RBRACKET, "']'"); !ok {
			return nil, false
		}
		preds = append(preds, e)
	}
	return preds, true
}

// parseNodeTest requires a node test to be present, failing otherwise.
func (p *Parser) parseNodeTest() (ast.NodeTest, bool) {
	t, ok := p.tryParseNodeTest()
	if !ok {
		p.fail("node test")
	}
	return t, ok
}

// tryParseNodeTest attempts a KindTest, then a NameTest; returns false
// (without consuming) if neither applies at the current position.
func (p *Parser) tryParseNodeTest() (ast.NodeTest, bool) {
	if kt, ok := p.tryParseKindTest(); ok {
		return kt, true
	}
	return p.parseNameTest()
}

var kindTestKeywords = map[string]ast.KindKind{
	"document-node":     ast.KindDocument,
	"element":           ast.KindElement,
	"attribute":         ast.KindAttribute,
	"schema-element":    ast.KindSchemaElement,
	"schema-attribute":  ast.KindSchemaAttribute,
	"processing-instruction": ast.KindPI,
	"comment":           ast.KindComment,
	"text":              ast.KindText,
	"namespace-node":    ast.KindNamespaceNode,
	"node":              ast.KindAnyKind,
}

// tryParseKindTest recognizes any of the ten KindTest productions. It
// requires the keyword to be immediately followed by '(' to avoid
// misclassifying a plain NCName NameTest (e.g. an element named
// "comment") as a kind test.
func (p *Parser) tryParseKindTest() (*ast.KindTest, bool) {
	if p.peek().Type != lexer.NCNAME || p.peekAt(1).Type != lexer.LPAREN {
		return nil, false
	}
	kind, ok := kindTestKeywords[p.peek().Value]
	if !ok {
		return nil, false
	}
	start := p.peek().Start
	p.advance() // keyword
	p.advance() // '('

	test := &ast.KindTest{Kind: kind}
	switch kind {
	case ast.KindDocument:
		if !p.at(lexer.RPAREN) {
			inner, ok := p.tryParseKindTest()
			if ok && (inner.Kind == ast.KindElement || inner.Kind == ast.KindSchemaElement) {
				test.DocumentElement = inner
			} else {
				p.fail("element() or schema-element()")
				return nil, false
			}
		}
	case ast.KindElement, ast.KindAttribute:
		if !p.at(lexer.RPAREN) {
			if p.at(lexer.STAR) {
				test.NameIsWildcard = true
				p.advance()
			} else {
				name, ok := p.parseEQName()
				if !ok {
					return nil, false
				}
				test.Name = &name
			}
			if p.at(lexer.COMMA) {
				p.advance()
				tn, ok := p.parseEQName()
				if !ok {
					return nil, false
				}
				test.TypeName = &tn
				if kind == ast.KindElement && p.at(lexer.QUESTION) {
					test.Nillable = true
					p.advance()
				}
			}
		}
	case ast.KindSchemaElement, ast.KindSchemaAttribute:
		name, ok := p.parseEQName()
		if !ok {
			return nil, false
		}
		test.Name = &name
	case ast.KindPI:
		if p.peek().Type == lexer.NCNAME {
			name := ast.QName("", p.peek().Value)
			test.Name = &name
			p.advance()
		} else if p.peek().Type == lexer.STRING {
			name := ast.QName("", p.peek().Value)
			test.Name = &name
			p.advance()
		}
	case ast.KindComment, ast.KindText, ast.KindNamespaceNode, ast.KindAnyKind:
		// no parameters
	}
	if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
		return nil, false
	}
	test.BaseNode = ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}
	return test, true
}

// adjacent reports whether the token at offset i ends exactly where the
// token at offset j starts, with no intervening whitespace (or comment,
// once those exist). Used to enforce ws:explicit on the multi-token
// wildcard NameTest shapes, which the lexer leaves unmerged.
func (p *Parser) adjacent(i, j int) bool {
	return p.peekAt(i).End.Offset == p.peekAt(j).Start.Offset
}

// parseNameTest implements ws:explicit: try the exact-EQName form first
// (rejecting it when immediately followed by ':*', which belongs to the
// prefix-wildcard form), then try the four wildcard shapes in the
// mandated order prefix:*, *:local, Q{uri}*, *. Every multi-token wildcard
// shape additionally requires its tokens to be adjacent in the source,
// since whitespace inside a wildcard is forbidden (ws:explicit) even
// though the lexer itself does not merge these into single tokens.
func (p *Parser) parseNameTest() (*ast.NameTest, bool) {
	start := p.peek().Start
	switch p.peek().Type {
	case lexer.QNAME:
		prefix, local := splitQName(p.peek().Value)
		p.advance()
		return &ast.NameTest{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Name: ast.QName(prefix, local)}, true
	case lexer.URIQNAME:
		uri, local := splitURIQName(p.peek().Value)
		p.advance()
		return &ast.NameTest{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Name: ast.URIQualifiedName(uri, local)}, true
	case lexer.NCNAME:
		if p.peekAt(1).Type == lexer.COLON && p.peekAt(2).Type == lexer.STAR &&
			p.adjacent(0, 1) && p.adjacent(1, 2) {
			prefix := p.peek().Value
			p.advance()
			p.advance()
			p.advance()
			return &ast.NameTest{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Wildcard: ast.WildcardAnyLocal, Name: ast.QName(prefix, "")}, true
		}
		local := p.peek().Value
		p.advance()
		return &ast.NameTest{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Name: ast.QName("", local)}, true
	case lexer.BRACED_URI_LITERAL:
		if p.peekAt(1).Type == lexer.STAR && p.adjacent(0, 1) {
			uri := bracedLiteralURI(p.peek().Value)
			p.advance()
			p.advance()
			return &ast.NameTest{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Wildcard: ast.WildcardAnyLocalInURI, Name: ast.URIQualifiedName(uri, "")}, true
		}
	case lexer.STAR:
		if p.peekAt(1).Type == lexer.COLON && p.peekAt(2).Type != lexer.STAR &&
			p.adjacent(0, 1) && p.adjacent(1, 2) {
			p.advance() // '*'
			p.advance() // ':'
			if p.peek().Type != lexer.NCNAME {
				p.fail("local name after '*:'")
				return nil, false
			}
			local := p.peek().Value
			p.advance()
			return &ast.NameTest{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Wildcard: ast.WildcardAnyPrefix, Name: ast.QName("", local)}, true
		}
		p.advance()
		return &ast.NameTest{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Wildcard: ast.WildcardAny}, true
	}
	return nil, false
}

func splitQName(v string) (prefix, local string) {
	for i, r := range v {
		if r == ':' {
			return v[:i], v[i+1:]
		}
	}
	return "", v
}

func splitURIQName(v string) (uri, local string) {
	// v looks like "Q{uri}local".
	end := indexByte(v, '}')
	return v[2:end], v[end+1:]
}

func bracedLiteralURI(v string) string {
	end := indexByte(v, '}')
	return v[2:end]
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
