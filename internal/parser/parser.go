package parser

import (
	"github.com/theorylang/theorylang/internal/ast"
	"github.com/theorylang/theorylang/internal/diag"
	"github.com/theorylang/theorylang/internal/lexer"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

type Option func(*options)

type options struct {
	filename string
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// Expression precedence, lowest to tightest binding. NOT sits between AND and
// the relational operators so `NOT a = b` reads as `NOT (a = b)`.
const (
	precedenceLowest = iota
	precedenceIff
	precedenceImplies
	precedenceOr
	precedenceAnd
	precedenceNot
	precedenceComparison
	precedenceSum
	precedenceProduct
	precedenceUnary
	precedencePostfix
)

var precedences = map[lexer.TokenType]int{
	lexer.SEQUIV:  precedenceIff,
	lexer.IFF:     precedenceIff,
	lexer.DARROW:  precedenceImplies,
	lexer.IMPLIES: precedenceImplies,
	lexer.OR:      precedenceOr,
	lexer.AND:     precedenceAnd,
	lexer.AMP:     precedenceAnd,
	lexer.EQ:      precedenceComparison,
	lexer.NEQ:     precedenceComparison,
	lexer.LT:      precedenceComparison,
	lexer.LE:      precedenceComparison,
	lexer.GT:      precedenceComparison,
	lexer.GE:      precedenceComparison,
	lexer.PLUS:    precedenceSum,
	lexer.MINUS:   precedenceSum,
	lexer.STAR:    precedenceProduct,
	lexer.SLASH:   precedenceProduct,
	lexer.LPAREN:  precedencePostfix,
	lexer.ACCESS:  precedencePostfix,
	lexer.WITH:    precedencePostfix,
}

// Parser implements a recursive descent parser for the theory language, with
// Pratt-style precedence climbing for expressions.
//
// Invariants:
//   - Lookahead: curTok always reflects the token currently under examination;
//     peekTok mirrors the next token pulled from the lexer. The pair forms the
//     parser's sole lookahead window and is only mutated via nextToken.
//   - Diagnostics: errors is an append-only accumulator of recoverable
//     diagnostics. Callers consult Errors() after ParseTheory.
//   - Spans: AST node spans are composed via mergeSpan so that tail.End is
//     never less than head.End.
//   - Recovery: a failed declaration synchronizes at the next token that can
//     begin a declaration (IDENT followed by ':' or '('), IMPORTING, END, or
//     end of input, so one defect yields one diagnostic instead of a cascade.
type Parser struct {
	lx      *lexer.Lexer
	curTok  lexer.Token
	peekTok lexer.Token

	errors []ParseError

	filename string

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New returns a parser initialised with the provided source input.
func New(input string, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Parser{
		lx:        lexer.New(input),
		prefixFns: make(map[lexer.TokenType]prefixParseFn),
		infixFns:  make(map[lexer.TokenType]infixParseFn),
		filename:  cfg.filename,
	}

	if cfg.filename != "" {
		p.lx.SetFilename(cfg.filename)
	}

	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.NUMBER, p.parseNumberLit)
	p.registerPrefix(lexer.TRUE, p.parseBoolLit)
	p.registerPrefix(lexer.FALSE, p.parseBoolLit)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpr)
	p.registerPrefix(lexer.NOT, p.parsePrefixExpr)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(lexer.LRECORD, p.parseRecordLit)
	p.registerPrefix(lexer.IF, p.parseIfExpr)
	p.registerPrefix(lexer.COND, p.parseCondExpr)
	p.registerPrefix(lexer.LET, p.parseLetExpr)
	p.registerPrefix(lexer.FORALL, p.parseQuantExpr)
	p.registerPrefix(lexer.EXISTS, p.parseQuantExpr)

	p.registerInfix(lexer.SEQUIV, p.parseInfixExpr)
	p.registerInfix(lexer.IFF, p.parseInfixExpr)
	p.registerInfix(lexer.DARROW, p.parseInfixExpr)
	p.registerInfix(lexer.IMPLIES, p.parseInfixExpr)
	p.registerInfix(lexer.OR, p.parseInfixExpr)
	p.registerInfix(lexer.AND, p.parseInfixExpr)
	p.registerInfix(lexer.AMP, p.parseInfixExpr)
	p.registerInfix(lexer.EQ, p.parseInfixExpr)
	p.registerInfix(lexer.NEQ, p.parseInfixExpr)
	p.registerInfix(lexer.LT, p.parseInfixExpr)
	p.registerInfix(lexer.LE, p.parseInfixExpr)
	p.registerInfix(lexer.GT, p.parseInfixExpr)
	p.registerInfix(lexer.GE, p.parseInfixExpr)
	p.registerInfix(lexer.PLUS, p.parseInfixExpr)
	p.registerInfix(lexer.MINUS, p.parseInfixExpr)
	p.registerInfix(lexer.STAR, p.parseInfixExpr)
	p.registerInfix(lexer.SLASH, p.parseInfixExpr)
	p.registerInfix(lexer.LPAREN, p.parseApplyExpr)
	p.registerInfix(lexer.ACCESS, p.parseProjExpr)
	p.registerInfix(lexer.WITH, p.parseUpdateExpr)

	// Seed curTok/peekTok.
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns all recoverable parse errors that were encountered.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// LexerErrors returns the errors recorded by the underlying lexer.
func (p *Parser) LexerErrors() []lexer.LexerError {
	return p.lx.Errors
}

// ParseTheory parses a full compilation unit: one theory. It always returns a
// theory node, possibly partial, so callers can inspect whatever declarations
// survived a malformed input alongside Errors().
func (p *Parser) ParseTheory() *ast.Theory {
	thy := ast.NewTheory(p.curTok.Span)

	if p.curTok.Type != lexer.IDENT {
		p.reportError("expected theory name", p.curTok.Span)
		return thy
	}

	thy.Name = ast.NewIdent(p.curTok.Raw, p.curTok.Span)

	if p.peekTok.Type == lexer.LBRACKET {
		p.nextToken() // move to '['
		thy.Params = p.parseTheoryParams()
	}

	if !p.expect(lexer.COLON) || !p.expect(lexer.THEORY) || !p.expect(lexer.BEGIN) {
		return thy
	}
	p.nextToken() // move past BEGIN into the body

	if p.curTok.Type == lexer.ASSUMING {
		thy.Assumes = p.parseAssumingBlock()
	}

	for p.curTok.Type != lexer.END && p.curTok.Type != lexer.EOF {
		prevTok := p.curTok

		switch p.curTok.Type {
		case lexer.SEMICOLON:
			p.nextToken()
			continue
		case lexer.IMPORTING:
			if imp := p.parseImport(); imp != nil {
				thy.Imports = append(thy.Imports, imp)
				p.nextToken()
				continue
			}
		default:
			if decl := p.parseDecl(); decl != nil {
				thy.Decls = append(thy.Decls, decl)
				p.nextToken()
				continue
			}
		}

		p.recoverDecl(prevTok)
	}

	if p.curTok.Type == lexer.END {
		p.parseEndName(thy)
	} else {
		p.reportError("expected END to close theory", p.curTok.Span)
	}

	thy.SetSpan(mergeSpan(thy.Span(), p.curTok.Span))

	return thy
}

// parseEndName checks that the identifier after END lexically matches the
// theory name. A mismatch is a syntax error referencing both positions; the
// mismatched name is still recorded on the node.
func (p *Parser) parseEndName(thy *ast.Theory) {
	if p.peekTok.Type != lexer.IDENT {
		p.reportError("expected theory name after END", p.peekTok.Span)
		return
	}
	p.nextToken()

	thy.EndName = ast.NewIdent(p.curTok.Raw, p.curTok.Span)

	if thy.Name != nil && thy.EndName.Name != thy.Name.Name {
		p.reportErrorCode(
			"theory name mismatch: opened as '"+thy.Name.Name+"' but closed as '"+thy.EndName.Name+"'",
			p.curTok.Span,
			diag.CodeParseTheoryNameMismatch,
			thy.Name.Span(),
		)
	}
}

// parseTheoryParams parses the bracketed formal parameter list. curTok is the
// opening '['; on success curTok is the closing ']'.
func (p *Parser) parseTheoryParams() []*ast.Param {
	if p.peekTok.Type == lexer.RBRACKET {
		p.reportError("expected formal parameter", p.peekTok.Span)
		p.nextToken()
		return nil
	}
	p.nextToken()

	res, ok := parseDelimited[*ast.Param](p, delimitedConfig{
		Closing:             lexer.RBRACKET,
		Separator:           lexer.COMMA,
		MissingElementMsg:   "expected formal parameter",
		MissingSeparatorMsg: "expected ',' or ']' in formal parameter list",
	}, func(int) (*ast.Param, bool) {
		param := p.parseParam()
		if param == nil {
			return nil, false
		}
		return param, true
	})
	if !ok {
		return res.Items
	}

	p.checkUniqueParams(res.Items, "formal parameter")

	return res.Items
}

// nextToken advances the parser's token window.
// Contract: after calling nextToken, curTok == old(peekTok). The lexer is
// only queried from this hop to keep lookahead bookkeeping centralized.
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lx.NextToken()
}

// expect asserts that the peek token matches the provided type.
// The caller is responsible for inspecting curTok before invoking expect,
// because expect never rewinds; on success it promotes peekTok into curTok.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.peekTok.Type == tt {
		p.nextToken()
		return true
	}

	p.reportError("expected '"+string(tt)+"'", p.peekTok.Span)
	return false
}

func sameTokenPosition(a, b lexer.Token) bool {
	return a.Type == b.Type && a.Span.Start == b.Span.Start && a.Span.End == b.Span.End
}

// declStart reports whether the current window looks like the start of a
// theory-body declaration: a name followed by ':' or a parameter clause.
func (p *Parser) declStart() bool {
	return p.curTok.Type == lexer.IDENT &&
		(p.peekTok.Type == lexer.COLON || p.peekTok.Type == lexer.LPAREN)
}

// recoverDecl performs panic-mode recovery at theory-body level: tokens are
// skipped until something that can begin a declaration, IMPORTING, END, or
// end of input.
func (p *Parser) recoverDecl(prev lexer.Token) {
	if p.curTok.Type == lexer.EOF {
		return
	}

	if sameTokenPosition(p.curTok, prev) {
		p.nextToken()
	}

	for p.curTok.Type != lexer.EOF {
		switch p.curTok.Type {
		case lexer.SEMICOLON:
			p.nextToken()
			return
		case lexer.END, lexer.IMPORTING, lexer.ENDASSUMING:
			return
		default:
			if p.declStart() {
				return
			}
		}

		p.nextToken()
	}
}

// checkUniqueParams reports a diagnostic for each parameter whose name
// repeats an earlier one in the same list.
func (p *Parser) checkUniqueParams(params []*ast.Param, what string) {
	seen := make(map[string]lexer.Span, len(params))
	for _, param := range params {
		if param == nil || param.Name == nil {
			continue
		}
		if first, dup := seen[param.Name.Name]; dup {
			p.reportErrorCode(
				"duplicate "+what+" name '"+param.Name.Name+"'",
				param.Name.Span(),
				diag.CodeParseDuplicateName,
				first,
			)
			continue
		}
		seen[param.Name.Name] = param.Name.Span()
	}
}

// mergeSpan assumes start.End <= end.End and returns a span covering both.
// The parser relies on lexer spans being half-open; callers should pass the
// earliest start span first to preserve monotonic growth for AST nodes.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if span.Filename == "" {
		span.Filename = end.Filename
	}

	if span.Line == 0 && end.Line != 0 {
		span.Line = end.Line
		span.Column = end.Column
		span.Start = end.Start
	}

	if end.End > span.End {
		span.End = end.End
	}

	return span
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixFns[tokenType] = fn
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekTok.Type]; ok {
		return prec
	}
	return precedenceLowest
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curTok.Type]; ok {
		return prec
	}
	return precedenceLowest
}
