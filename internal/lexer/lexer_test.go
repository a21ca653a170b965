package lexer_test

import (
	"testing"

	"github.com/theorylang/theorylang/internal/lexer"
)

func tokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()

	lx := lexer.New(src)
	return lx.Tokenize()
}

func assertKinds(t *testing.T, toks []lexer.Token, want []lexer.TokenType) {
	t.Helper()

	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Errorf("token %d: expected type %q, got %q (raw %q)", i, want[i], tok.Type, tok.Raw)
		}
	}
}

func TestTokenizeDeclaration(t *testing.T) {
	toks := tokenize(t, "x: nat = 0")

	assertKinds(t, toks, []lexer.TokenType{
		lexer.IDENT, lexer.COLON, lexer.IDENT, lexer.EQ, lexer.NUMBER, lexer.EOF,
	})

	if toks[0].Raw != "x" {
		t.Errorf("expected raw %q, got %q", "x", toks[0].Raw)
	}
	if toks[4].Raw != "0" {
		t.Errorf("expected raw %q, got %q", "0", toks[4].Raw)
	}
}

func TestKeywordsMatchExactText(t *testing.T) {
	toks := tokenize(t, "THEORY theory Theory END")

	assertKinds(t, toks, []lexer.TokenType{
		lexer.THEORY, lexer.IDENT, lexer.IDENT, lexer.END, lexer.EOF,
	})
}

func TestPredicateIdentifiers(t *testing.T) {
	toks := tokenize(t, "empty? rate_ok? x2_y")

	assertKinds(t, toks, []lexer.TokenType{
		lexer.IDENT, lexer.IDENT, lexer.IDENT, lexer.EOF,
	})

	if toks[0].Raw != "empty?" {
		t.Errorf("expected raw %q, got %q", "empty?", toks[0].Raw)
	}
}

func TestGreedyOperators(t *testing.T) {
	cases := []struct {
		src  string
		want []lexer.TokenType
	}{
		{":=", []lexer.TokenType{lexer.ASSIGN, lexer.EOF}},
		{": =", []lexer.TokenType{lexer.COLON, lexer.EQ, lexer.EOF}},
		{"<=", []lexer.TokenType{lexer.LE, lexer.EOF}},
		{"<=>", []lexer.TokenType{lexer.SEQUIV, lexer.EOF}},
		{">=", []lexer.TokenType{lexer.GE, lexer.EOF}},
		{"/=", []lexer.TokenType{lexer.NEQ, lexer.EOF}},
		{"/ =", []lexer.TokenType{lexer.SLASH, lexer.EQ, lexer.EOF}},
		{"->", []lexer.TokenType{lexer.ARROW, lexer.EOF}},
		{"=>", []lexer.TokenType{lexer.DARROW, lexer.EOF}},
		{"- >", []lexer.TokenType{lexer.MINUS, lexer.GT, lexer.EOF}},
		{"[#", []lexer.TokenType{lexer.LRECORD, lexer.EOF}},
		{"#]", []lexer.TokenType{lexer.RRECORD, lexer.EOF}},
		{"[ #]", []lexer.TokenType{lexer.LBRACKET, lexer.RRECORD, lexer.EOF}},
	}

	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			assertKinds(t, tokenize(t, tc.src), tc.want)
		})
	}
}

func TestSpansTrackLineAndColumn(t *testing.T) {
	toks := tokenize(t, "a\n  bb")

	if got := toks[0].Span; got.Line != 1 || got.Column != 1 {
		t.Errorf("expected a at 1:1, got %d:%d", got.Line, got.Column)
	}
	if got := toks[1].Span; got.Line != 2 || got.Column != 3 {
		t.Errorf("expected bb at 2:3, got %d:%d", got.Line, got.Column)
	}
	if got := toks[1].Span; got.Start != 4 || got.End != 6 {
		t.Errorf("expected bb offsets [4,6), got [%d,%d)", got.Start, got.End)
	}
}

func TestLineCommentSkippedWithoutTrivia(t *testing.T) {
	toks := tokenize(t, "x % trailing note\ny")

	assertKinds(t, toks, []lexer.TokenType{lexer.IDENT, lexer.IDENT, lexer.EOF})
}

func TestTriviaModeEmitsComments(t *testing.T) {
	lx := lexer.NewWithTrivia("x % note\n%%% doc %%%\ny")

	var kinds []lexer.TokenType
	for {
		tok := lx.NextToken()
		kinds = append(kinds, tok.Type)
		if tok.Type == lexer.EOF {
			break
		}
	}

	want := []lexer.TokenType{
		lexer.IDENT, lexer.WHITESPACE, lexer.LINE_COMMENT, lexer.NEWLINE,
		lexer.DOC_COMMENT, lexer.NEWLINE, lexer.IDENT, lexer.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(kinds), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], kinds[i])
		}
	}

	if len(lx.Errors) != 0 {
		t.Errorf("expected no lexer errors, got %v", lx.Errors)
	}
}

func TestDocCommentSpansMultipleLines(t *testing.T) {
	lx := lexer.NewWithTrivia("%%% first line\nsecond line %%%")
	tok := lx.NextToken()

	if tok.Type != lexer.DOC_COMMENT {
		t.Fatalf("expected DOC_COMMENT, got %q", tok.Type)
	}
	if tok.Raw != "%%% first line\nsecond line %%%" {
		t.Errorf("unexpected raw: %q", tok.Raw)
	}
	if len(lx.Errors) != 0 {
		t.Errorf("expected no lexer errors, got %v", lx.Errors)
	}
}

func TestUnterminatedDocComment(t *testing.T) {
	lx := lexer.NewWithTrivia("%%% never closed")
	tok := lx.NextToken()

	if tok.Type != lexer.DOC_COMMENT {
		t.Fatalf("expected DOC_COMMENT, got %q", tok.Type)
	}
	if len(lx.Errors) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(lx.Errors))
	}
	if lx.Errors[0].Kind != lexer.ErrUnterminatedDocComment {
		t.Errorf("expected unterminated doc comment error, got %v", lx.Errors[0].Kind)
	}
}

func TestIllegalRuneYieldsPlaceholder(t *testing.T) {
	lx := lexer.New("x @ y")
	toks := lx.Tokenize()

	assertKinds(t, toks, []lexer.TokenType{lexer.IDENT, lexer.ILLEGAL, lexer.IDENT, lexer.EOF})

	if len(lx.Errors) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(lx.Errors))
	}
	if lx.Errors[0].Kind != lexer.ErrIllegalRune {
		t.Errorf("expected illegal rune error, got %v", lx.Errors[0].Kind)
	}
	if got := lx.Errors[0].Span; got.Line != 1 || got.Column != 3 {
		t.Errorf("expected error at 1:3, got %d:%d", got.Line, got.Column)
	}
}

func TestEmptyInput(t *testing.T) {
	toks := tokenize(t, "")

	assertKinds(t, toks, []lexer.TokenType{lexer.EOF})
}

func TestSetFilenameStampsSpans(t *testing.T) {
	lx := lexer.New("x")
	lx.SetFilename("pump.tl")

	tok := lx.NextToken()
	if tok.Span.Filename != "pump.tl" {
		t.Errorf("expected filename on span, got %q", tok.Span.Filename)
	}
}
