package parser

import (
	"github.com/xpath31/xpathparser/pkg/ast"
	"github.com/xpath31/xpathparser/pkg/lexer"
)

// parseEQName reads a QName or URIQualifiedName token already merged by the
// lexer (readName/readBracedURILiteral), or a bare NCNAME with no prefix.
func (p *Parser) parseEQName() (ast.EQName, bool) {
	t := p.peek()
	switch t.Type {
	case lexer.QNAME:
		prefix, local := splitQName(t.Value)
		p.advance()
		return ast.QName(prefix, local), true
	case lexer.URIQNAME:
		uri, local := splitURIQName(t.Value)
		p.advance()
		return ast.URIQualifiedName(uri, local), true
	case lexer.NCNAME:
		local := t.Value
		p.advance()
		return ast.QName("", local), true
	}
	p.fail("name")
	return ast.EQName{}, false
}

// parsePostfixExpr parses a PrimaryExpr followed by zero or more predicate,
// argument-list, or lookup suffixes.
func (p *Parser) parsePostfixExpr() (ast.Expr, bool) {
	primary, ok := p.parsePrimaryExpr()
	if !ok {
		return nil, false
	}
	var steps []ast.PostfixStep
	for {
		switch {
		case p.at(lexer.LBRACKET):
			p.advance()
			e, ok := p.parseXPathExpr()
			if !ok {
				return nil, false
			}
			if _, ok := p.expectTok(lexer.RBRACKET, "']'"); !ok {
				return nil, false
			}
			steps = append(steps, ast.PredicateStep{Expr: e})
		case p.at(lexer.LPAREN):
			p.advance()
			args, ok := p.parseArgumentList()
			if !ok {
				return nil, false
			}
			steps = append(steps, ast.ArgumentListStep{Args: args})
		case p.at(lexer.QUESTION):
			p.advance()
			key, ok := p.parseLookupKey()
			if !ok {
				return nil, false
			}
			steps = append(steps, ast.LookupStep{Key: key})
		default:
			return ast.NewPostfixExpr(primary, p.tokens[p.pos-1].End, steps), true
		}
	}
}

func (p *Parser) parseLookupKey() (ast.LookupKey, bool) {
	switch p.peek().Type {
	case lexer.NCNAME:
		name := p.peek().Value
		p.advance()
		return ast.LookupKey{Name: &name}, true
	case lexer.INTEGER:
		v := p.peek().Value
		p.advance()
		return ast.LookupKey{Integer: &v}, true
	case lexer.STAR:
		p.advance()
		return ast.LookupKey{Star: true}, true
	case lexer.LPAREN:
		p.advance()
		e, ok := p.parseXPathExpr()
		if !ok {
			return ast.LookupKey{}, false
		}
		if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
			return ast.LookupKey{}, false
		}
		return ast.LookupKey{Expr: e}, true
	}
	p.fail("key specifier")
	return ast.LookupKey{}, false
}

func (p *Parser) parseArgumentList() ([]ast.Argument, bool) {
	var args []ast.Argument
	if p.at(lexer.RPAREN) {
		p.advance()
		return args, true
	}
	for {
		start := p.peek().Start
		if p.at(lexer.QUESTION) {
			p.advance()
			args = append(args, ast.Argument{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Placeholder: true})
		} else {
			e, ok := p.parseExprSingle()
			if !ok {
				return nil, false
			}
			args = append(args, ast.Argument{BaseNode: ast.BaseNode{StartPos: start, EndPos: e.End()}, Expr: e})
		}
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
		return nil, false
	}
	return args, true
}

// parsePrimaryExpr tries each PrimaryExpr alternative. The inline function
// and map/array constructor forms are recognized by their keyword before
// any function call is tried. Function calls and named function references
// reject a reserved unprefixed name (xgc:reserved-function-names),
// backtracking so that parseStepExpr falls through to an axis step, where
// a kind test such as element(...) is recognized instead.
func (p *Parser) parsePrimaryExpr() (ast.Expr, bool) {
	start := p.peek().Start
	switch p.peek().Type {
	case lexer.STRING:
		v := p.peek().Value
		p.advance()
		return &ast.StringLiteral{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Value: v}, true
	case lexer.INTEGER:
		v := p.peek().Value
		p.advance()
		return &ast.IntegerLiteral{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Text: v}, true
	case lexer.DECIMAL:
		v := p.peek().Value
		p.advance()
		return &ast.DecimalLiteral{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Text: v}, true
	case lexer.DOUBLE:
		v := p.peek().Value
		p.advance()
		return &ast.DoubleLiteral{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Text: v}, true
	case lexer.DOLLAR:
		p.advance()
		name, ok := p.parseEQName()
		if !ok {
			return nil, false
		}
		return &ast.VarRef{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Name: name}, true
	case lexer.LPAREN:
		p.advance()
		if p.at(lexer.RPAREN) {
			p.advance()
			return &ast.ParenthesizedExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}}, true
		}
		inner, ok := p.parseXPathExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
			return nil, false
		}
		return &ast.ParenthesizedExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Inner: inner}, true
	case lexer.DOT:
		p.advance()
		return &ast.ContextItemExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}}, true
	case lexer.QUESTION:
		p.advance()
		key, ok := p.parseLookupKey()
		if !ok {
			return nil, false
		}
		return &ast.UnaryLookup{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Key: key}, true
	}

	if p.keyword("function") && p.peekAt(1).Type == lexer.LPAREN {
		return p.parseInlineFunctionExpr()
	}
	if p.keyword("map") && p.peekAt(1).Type == lexer.LBRACE {
		return p.parseMapConstructor()
	}
	if p.keyword("array") && p.peekAt(1).Type == lexer.LBRACE {
		return p.parseCurlyArrayConstructor()
	}
	if p.at(lexer.LBRACKET) {
		return p.parseSquareArrayConstructor()
	}

	mark := p.mark()
	if fc, ok := p.tryParseFunctionCall(); ok {
		return fc, true
	}
	p.reset(mark)
	if nfr, ok := p.tryParseNamedFunctionRef(); ok {
		return nfr, true
	}
	p.reset(mark)
	p.fail("primary expression")
	return nil, false
}

// tryParseFunctionCall parses "EQName(ArgumentList)", rejecting an
// unprefixed reserved function name.
func (p *Parser) tryParseFunctionCall() (ast.Expr, bool) {
	start := p.peek().Start
	if !(p.peek().Type == lexer.NCNAME || p.peek().Type == lexer.QNAME || p.peek().Type == lexer.URIQNAME) {
		return nil, false
	}
	if p.peek().Type == lexer.NCNAME && lexer.IsReservedFunctionName(p.peek().Value) {
		return nil, false
	}
	if p.peekAt(1).Type != lexer.LPAREN {
		return nil, false
	}
	name, ok := p.parseEQName()
	if !ok {
		return nil, false
	}
	p.advance() // '('
	args, ok := p.parseArgumentList()
	if !ok {
		return nil, false
	}
	return &ast.FunctionCall{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Name: name, Args: args}, true
}

// tryParseNamedFunctionRef parses "EQName#integer", rejecting an
// unprefixed reserved function name.
func (p *Parser) tryParseNamedFunctionRef() (ast.Expr, bool) {
	start := p.peek().Start
	if !(p.peek().Type == lexer.NCNAME || p.peek().Type == lexer.QNAME || p.peek().Type == lexer.URIQNAME) {
		return nil, false
	}
	if p.peek().Type == lexer.NCNAME && lexer.IsReservedFunctionName(p.peek().Value) {
		return nil, false
	}
	if p.peekAt(1).Type != lexer.HASH {
		return nil, false
	}
	name, ok := p.parseEQName()
	if !ok {
		return nil, false
	}
	p.advance() // '#'
	if p.peek().Type != lexer.INTEGER {
		p.fail("arity")
		return nil, false
	}
	arity := p.peek().Value
	p.advance()
	return &ast.NamedFunctionRef{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Name: name, Arity: arity}, true
}

func (p *Parser) parseInlineFunctionExpr() (ast.Expr, bool) {
	start := p.peek().Start
	p.advance() // 'function', committed
	if _, ok := p.expectTok(lexer.LPAREN, "'('"); !ok {
		return nil, false
	}
	var params []ast.Param
	if !p.at(lexer.RPAREN) {
		for {
			pStart := p.peek().Start
			if _, ok := p.expectTok(lexer.DOLLAR, "'$'"); !ok {
				return nil, false
			}
			name, ok := p.parseEQName()
			if !ok {
				return nil, false
			}
			var ty ast.SequenceType
			if p.keyword("as") {
				p.advance()
				ty, ok = p.parseSequenceType()
				if !ok {
					return nil, false
				}
			}
			params = append(params, ast.Param{BaseNode: ast.BaseNode{StartPos: pStart, EndPos: p.tokens[p.pos-1].End}, Name: name, Type: ty})
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
		return nil, false
	}
	var returnType ast.SequenceType
	if p.keyword("as") {
		p.advance()
		var ok bool
		returnType, ok = p.parseSequenceType()
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.expectTok(lexer.LBRACE, "'{'"); !ok {
		return nil, false
	}
	var body ast.Expr
	if !p.at(lexer.RBRACE) {
		var ok bool
		body, ok = p.parseXPathExpr()
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.expectTok(lexer.RBRACE, "'}'"); !ok {
		return nil, false
	}
	return &ast.InlineFunctionExpr{
		BaseNode:   ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End},
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}, true
}

func (p *Parser) parseMapConstructor() (ast.Expr, bool) {
	start := p.peek().Start
	p.advance() // 'map', committed
	p.advance() // '{'
	var entries []ast.MapEntry
	if !p.at(lexer.RBRACE) {
		for {
			key, ok := p.parseExprSingle()
			if !ok {
				return nil, false
			}
			if _, ok := p.expectTok(lexer.COLON, "':'"); !ok {
				return nil, false
			}
			value, ok := p.parseExprSingle()
			if !ok {
				return nil, false
			}
			entries = append(entries, ast.MapEntry{Key: key, Value: value})
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, ok := p.expectTok(lexer.RBRACE, "'}'"); !ok {
		return nil, false
	}
	return &ast.MapConstructor{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Entries: entries}, true
}

func (p *Parser) parseCurlyArrayConstructor() (ast.Expr, bool) {
	start := p.peek().Start
	p.advance() // 'array', committed
	p.advance() // '{'
	var body ast.Expr
	if !p.at(lexer.RBRACE) {
		var ok bool
		body, ok = p.parseXPathExpr()
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.expectTok(lexer.RBRACE, "'}'"); !ok {
		return nil, false
	}
	return &ast.ArrayConstructor{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, CurlyBody: body}, true
}

func (p *Parser) parseSquareArrayConstructor() (ast.Expr, bool) {
	start := p.peek().Start
	p.advance() // '[', committed
	var members []ast.Expr
	if !p.at(lexer.RBRACKET) {
		for {
			e, ok := p.parseExprSingle()
			if !ok {
				return nil, false
			}
			members = append(members, e)
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, ok := p.expectTok(lexer.RBRACKET, "']'"); !ok {
		return nil, false
	}
	return &ast.ArrayConstructor{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Square: true, Members: members}, true
}
