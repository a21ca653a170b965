package parser

import (
	"github.com/theorylang/theorylang/internal/ast"
	"github.com/theorylang/theorylang/internal/diag"
	"github.com/theorylang/theorylang/internal/trivia"
)

// ParseSource is the fused entry point: it tokenizes and parses one
// compilation unit, attaches documentation comments to the declarations they
// precede, and merges lexer and parser diagnostics ordered by source
// position. A result with zero error diagnostics is well-formed per the
// grammar.
func ParseSource(input string, opts ...Option) (*ast.Theory, []diag.Diagnostic) {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := New(input, opts...)
	thy := p.ParseTheory()

	trivia.Attach(thy, trivia.Extract(input, cfg.filename))

	var diags []diag.Diagnostic
	for _, lexErr := range p.LexerErrors() {
		diags = append(diags, lexErr.ToDiagnostic())
	}
	for _, parseErr := range p.Errors() {
		diags = append(diags, parseErr.ToDiagnostic())
	}
	diag.SortByPosition(diags)

	return thy, diags
}
