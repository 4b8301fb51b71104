package parser

import (
	"github.com/xpath31/xpathparser/pkg/ast"
	"github.com/xpath31/xpathparser/pkg/lexer"
)

// parseSequenceType parses "empty-sequence()" or an ItemType followed by at
// most one occurrence indicator ('?', '*', '+'); absence means exactly-one.
func (p *Parser) parseSequenceType() (ast.SequenceType, bool) {
	start := p.peek().Start
	if p.keyword("empty-sequence") && p.peekAt(1).Type == lexer.LPAREN {
		p.advance()
		p.advance()
		if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
			return nil, false
		}
		return &ast.EmptySequenceType{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}}, true
	}
	item, ok := p.parseItemType()
	if !ok {
		return nil, false
	}
	occ := ast.OccurrenceOne
	switch p.peek().Type {
	case lexer.QUESTION:
		occ = ast.OccurrenceOptional
		p.advance()
	case lexer.STAR:
		occ = ast.OccurrenceZeroOrMore
		p.advance()
	case lexer.PLUS:
		occ = ast.OccurrenceOneOrMore
		p.advance()
	}
	return &ast.ItemSequenceType{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Item: item, Occurrence: occ}, true
}

// parseSingleType parses an AtomicOrUnionType name with an optional
// trailing '?', used by castable/cast.
func (p *Parser) parseSingleType() (*ast.SingleType, bool) {
	start := p.peek().Start
	name, ok := p.parseEQName()
	if !ok {
		return nil, false
	}
	optional := false
	if p.at(lexer.QUESTION) {
		optional = true
		p.advance()
	}
	return &ast.SingleType{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Name: name, Optional: optional}, true
}

func (p *Parser) parseItemType() (ast.ItemType, bool) {
	start := p.peek().Start

	if p.keyword("item") && p.peekAt(1).Type == lexer.LPAREN {
		p.advance()
		p.advance()
		if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
			return nil, false
		}
		return &ast.AnyItemType{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}}, true
	}
	if p.keyword("function") && p.peekAt(1).Type == lexer.LPAREN {
		return p.parseFunctionTest()
	}
	if p.keyword("map") && p.peekAt(1).Type == lexer.LPAREN {
		return p.parseMapTest()
	}
	if p.keyword("array") && p.peekAt(1).Type == lexer.LPAREN {
		return p.parseArrayTest()
	}
	if kt, ok := p.tryParseKindTest(); ok {
		return kt, true
	}
	if p.at(lexer.LPAREN) {
		p.advance()
		inner, ok := p.parseItemType()
		if !ok {
			return nil, false
		}
		if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
			return nil, false
		}
		return &ast.ParenthesizedItemType{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Inner: inner}, true
	}
	name, ok := p.parseEQName()
	if !ok {
		p.fail("item type")
		return nil, false
	}
	return &ast.AtomicOrUnionType{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, Name: name}, true
}

func (p *Parser) parseFunctionTest() (ast.ItemType, bool) {
	start := p.peek().Start
	p.advance() // 'function', committed
	p.advance() // '('
	if p.at(lexer.STAR) {
		p.advance()
		if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
			return nil, false
		}
		return &ast.FunctionTest{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, AnyFunction: true}, true
	}
	var paramTypes []ast.SequenceType
	if !p.at(lexer.RPAREN) {
		for {
			ty, ok := p.parseSequenceType()
			if !ok {
				return nil, false
			}
			paramTypes = append(paramTypes, ty)
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
	if !p.consumeKeyword("as") {
		return nil, false
	}
	returnType, ok := p.parseSequenceType()
	if !ok {
		return nil, false
	}
	return &ast.FunctionTest{
		BaseNode:   ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End},
		ParamTypes: paramTypes,
		ReturnType: returnType,
	}, true
}

func (p *Parser) parseMapTest() (ast.ItemType, bool) {
	start := p.peek().Start
	p.advance() // 'map', committed
	p.advance() // '('
	if p.at(lexer.STAR) {
		p.advance()
		if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
			return nil, false
		}
		return &ast.MapTest{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, AnyMap: true}, true
	}
	keyName, ok := p.parseEQName()
	if !ok {
		return nil, false
	}
	keyType := &ast.AtomicOrUnionType{Name: keyName}
	if _, ok := p.expectTok(lexer.COMMA, "','"); !ok {
		return nil, false
	}
	valueType, ok := p.parseSequenceType()
	if !ok {
		return nil, false
	}
	if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
		return nil, false
	}
	return &ast.MapTest{
		BaseNode:  ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End},
		KeyType:   keyType,
		ValueType: valueType,
	}, true
}

func (p *Parser) parseArrayTest() (ast.ItemType, bool) {
	start := p.peek().Start
	p.advance() // 'array', committed
	p.advance() // '('
	if p.at(lexer.STAR) {
		p.advance()
		if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
			return nil, false
		}
		return &ast.ArrayTest{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, AnyArray: true}, true
	}
	memberType, ok := p.parseSequenceType()
	if !ok {
		return nil, false
	}
	if _, ok := p.expectTok(lexer.RPAREN, "')'"); !ok {
		return nil, false
	}
	return &ast.ArrayTest{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.tokens[p.pos-1].End}, MemberType: memberType}, true
}
