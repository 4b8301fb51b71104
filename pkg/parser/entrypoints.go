package parser

import "github.com/xpath31/xpathparser/pkg/ast"

// Each exported nonterminal entry point below parses its nonterminal from
// the start of src and returns the byte offset the parse stopped at,
// without requiring end-of-input the way Parse does. This lets a caller
// locate a sub-expression's span inside a larger source string: parse a
// known-sized prefix, inspect the returned offset, and keep parsing the
// remainder under whatever grammar context calls for next. Unlike Parse,
// a non-error return never means "stopped before the input ended" is a
// failure in itself; that judgment belongs to the caller composing these
// entry points.

// ParseExprSingle parses a single ExprSingle from the start of src.
func ParseExprSingle(src string, cfg Config) (ast.Expr, int, error) {
	p := New(src, cfg)
	p.trace("ExprSingle")
	expr, ok := p.parseExprSingle()
	if !ok {
		return nil, 0, p.buildError(SyntaxError)
	}
	return expr, p.peek().Start.Offset, nil
}

// ParsePathExpr parses a single PathExpr from the start of src.
func ParsePathExpr(src string, cfg Config) (ast.Expr, int, error) {
	p := New(src, cfg)
	p.trace("PathExpr")
	expr, ok := p.parsePathExpr()
	if !ok {
		return nil, 0, p.buildError(SyntaxError)
	}
	return expr, p.peek().Start.Offset, nil
}

// ParseStepExpr parses a single StepExpr from the start of src.
func ParseStepExpr(src string, cfg Config) (ast.Expr, int, error) {
	p := New(src, cfg)
	p.trace("StepExpr")
	expr, ok := p.parseStepExpr()
	if !ok {
		return nil, 0, p.buildError(SyntaxError)
	}
	return expr, p.peek().Start.Offset, nil
}

// ParseSequenceType parses a single SequenceType from the start of src.
func ParseSequenceType(src string, cfg Config) (ast.SequenceType, int, error) {
	p := New(src, cfg)
	p.trace("SequenceType")
	seqType, ok := p.parseSequenceType()
	if !ok {
		return nil, 0, p.buildError(SyntaxError)
	}
	return seqType, p.peek().Start.Offset, nil
}
