package parser

import "testing"

func TestParseExprSingleStopsBeforeTrailingInput(t *testing.T) {
	expr, offset, err := ParseExprSingle("1 + 2, 3", Config{})
	if err != nil {
		t.Fatalf("ParseExprSingle error: %v", err)
	}
	if expr == nil {
		t.Fatal("expr is nil")
	}
	// offset should land at the comma, not at EOF.
	if offset >= len("1 + 2, 3") {
		t.Errorf("offset = %d, want a position before end of input", offset)
	}
}

func TestParsePathExprStopsAtNonPathSuffix(t *testing.T) {
	expr, offset, err := ParsePathExpr("a/b + 1", Config{})
	if err != nil {
		t.Fatalf("ParsePathExpr error: %v", err)
	}
	if expr == nil {
		t.Fatal("expr is nil")
	}
	if offset != 4 {
		t.Errorf("offset = %d, want 4 (the '+' token position, just past \"a/b \")", offset)
	}
}

func TestParseStepExprOnBareName(t *testing.T) {
	expr, _, err := ParseStepExpr("foo", Config{})
	if err != nil {
		t.Fatalf("ParseStepExpr error: %v", err)
	}
	if expr == nil {
		t.Fatal("expr is nil")
	}
}

func TestParseSequenceTypeOnEmptySequence(t *testing.T) {
	seqType, _, err := ParseSequenceType("empty-sequence()", Config{})
	if err != nil {
		t.Fatalf("ParseSequenceType error: %v", err)
	}
	if seqType == nil {
		t.Fatal("seqType is nil")
	}
}

func TestParseExprSingleFailsOnEmptyInput(t *testing.T) {
	if _, _, err := ParseExprSingle("", Config{}); err == nil {
		t.Error("expected error on empty input")
	}
}
