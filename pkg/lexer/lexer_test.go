package lexer

import "testing"

func tokenTypes(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestNextTokenOperators(t *testing.T) {
	cases := []struct {
		input string
		want  []TokenType
	}{
		{"/", []TokenType{SLASH, EOF}},
		{"//", []TokenType{SLASHSLASH, EOF}},
		{".", []TokenType{DOT, EOF}},
		{"..", []TokenType{DOTDOT, EOF}},
		{":", []TokenType{COLON, EOF}},
		{"::", []TokenType{COLONCOLON, EOF}},
		{":=", []TokenType{ASSIGN, EOF}},
		{"!", []TokenType{BANG, EOF}},
		{"!=", []TokenType{NE, EOF}},
		{"<", []TokenType{LT, EOF}},
		{"<=", []TokenType{LE, EOF}},
		{"<<", []TokenType{PRECEDES, EOF}},
		{">", []TokenType{GT, EOF}},
		{">=", []TokenType{GE, EOF}},
		{">>", []TokenType{FOLLOWS, EOF}},
		{"=", []TokenType{EQ, EOF}},
		{"=>", []TokenType{ARROW, EOF}},
		{"|", []TokenType{PIPE, EOF}},
		{"||", []TokenType{CONCAT, EOF}},
		{"*", []TokenType{STAR, EOF}},
	}
	for _, c := range cases {
		got := tokenTypes(New(c.input).TokenizeAll())
		if !equalTypes(got, c.want) {
			t.Errorf("TokenizeAll(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func equalTypes(a, b []TokenType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStarNeverMergesWithColon(t *testing.T) {
	toks := New("*:local").TokenizeAll()
	want := []TokenType{STAR, COLON, NCNAME, EOF}
	if !equalTypes(tokenTypes(toks), want) {
		t.Errorf("TokenizeAll(%q) = %v, want %v", "*:local", tokenTypes(toks), want)
	}
}

func TestReadNameMergesPrefixedQName(t *testing.T) {
	toks := New("xs:string").TokenizeAll()
	if len(toks) != 2 || toks[0].Type != QNAME || toks[0].Value != "xs:string" {
		t.Fatalf("got %v", toks)
	}
}

func TestReadNameDoesNotMergeWildcardSuffix(t *testing.T) {
	toks := New("xs:*").TokenizeAll()
	want := []TokenType{NCNAME, COLON, STAR, EOF}
	if !equalTypes(tokenTypes(toks), want) {
		t.Errorf("TokenizeAll(%q) = %v, want %v", "xs:*", tokenTypes(toks), want)
	}
}

func TestBracedURILiteral(t *testing.T) {
	toks := New("Q{http://example.com/ns}local").TokenizeAll()
	if len(toks) != 2 || toks[0].Type != URIQNAME {
		t.Fatalf("got %v", toks)
	}
	if toks[0].Value != "Q{http://example.com/ns}local" {
		t.Errorf("got value %q", toks[0].Value)
	}
}

func TestBracedURILiteralBeforeWildcard(t *testing.T) {
	toks := New("Q{http://example.com/ns}*").TokenizeAll()
	want := []TokenType{BRACED_URI_LITERAL, STAR, EOF}
	if !equalTypes(tokenTypes(toks), want) {
		t.Errorf("TokenizeAll = %v, want %v", tokenTypes(toks), want)
	}
}

func TestEmptyBracedURILiteral(t *testing.T) {
	toks := New("Q{}local").TokenizeAll()
	if len(toks) != 2 || toks[0].Value != "Q{}local" {
		t.Fatalf("got %v", toks)
	}
}

func TestStringLiteralDoubledQuoteEscape(t *testing.T) {
	toks := New(`'it''s'`).TokenizeAll()
	if toks[0].Type != STRING || toks[0].Value != "it's" {
		t.Fatalf("got %+v", toks[0])
	}
	toks = New(`"say ""hi"""`).TokenizeAll()
	if toks[0].Type != STRING || toks[0].Value != `say "hi"` {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestUnterminatedStringIsIllegal(t *testing.T) {
	toks := New(`'abc`).TokenizeAll()
	if toks[0].Type != ILLEGAL {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestNumericLiteralDisambiguation(t *testing.T) {
	cases := []struct {
		input string
		typ   TokenType
		value string
	}{
		{"1", INTEGER, "1"},
		{"1.2", DECIMAL, "1.2"},
		{"1.", DECIMAL, "1."},
		{".1", DECIMAL, ".1"},
		{"1e2", DOUBLE, "1e2"},
		{"1.e2", DOUBLE, "1.e2"},
		{"1.2e-3", DOUBLE, "1.2e-3"},
		{"1E+2", DOUBLE, "1E+2"},
	}
	for _, c := range cases {
		toks := New(c.input).TokenizeAll()
		if toks[0].Type != c.typ || toks[0].Value != c.value {
			t.Errorf("TokenizeAll(%q) = %+v, want {%v %q}", c.input, toks[0], c.typ, c.value)
		}
	}
}

func TestExponentBacktracksWhenNotFollowedByDigits(t *testing.T) {
	toks := New("1eq 2").TokenizeAll()
	want := []TokenType{INTEGER, NCNAME, INTEGER, EOF}
	if !equalTypes(tokenTypes(toks), want) {
		t.Fatalf("TokenizeAll(%q) = %v, want %v", "1eq 2", tokenTypes(toks), want)
	}
	if toks[1].Value != "eq" {
		t.Errorf("got keyword token %q", toks[1].Value)
	}
}

func TestTripleDotLexesAsDotDotThenDot(t *testing.T) {
	toks := New("...").TokenizeAll()
	// ".." then "." — the grammar, not the lexer, rejects "...".
	want := []TokenType{DOTDOT, DOT, EOF}
	if !equalTypes(tokenTypes(toks), want) {
		t.Fatalf("TokenizeAll(%q) = %v, want %v", "...", tokenTypes(toks), want)
	}
}

func TestIsReservedFunctionName(t *testing.T) {
	for name := range ReservedFunctionNames {
		if !IsReservedFunctionName(name) {
			t.Errorf("IsReservedFunctionName(%q) = false, want true", name)
		}
	}
	if IsReservedFunctionName("local-name") {
		t.Error("IsReservedFunctionName(\"local-name\") = true, want false")
	}
}

func TestPositionTracksLinesAndColumns(t *testing.T) {
	toks := New("a\nb").TokenizeAll()
	if toks[0].Start.Line != 1 || toks[0].Start.Column != 1 {
		t.Errorf("got start %+v", toks[0].Start)
	}
	if toks[1].Start.Line != 2 || toks[1].Start.Column != 1 {
		t.Errorf("got start %+v", toks[1].Start)
	}
}

func TestByteOffsetsForMultibyteRunes(t *testing.T) {
	// "é" is a 2-byte UTF-8 sequence; after it and the space, the following
	// NCName token must start at byte offset 3, not rune offset 2.
	toks := New("é a").TokenizeAll()
	if toks[1].Start.Offset != 3 {
		t.Errorf("got offset %d, want 3", toks[1].Start.Offset)
	}
}
