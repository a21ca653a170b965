package parser

import (
	"github.com/theorylang/theorylang/internal/ast"
	"github.com/theorylang/theorylang/internal/diag"
	"github.com/theorylang/theorylang/internal/lexer"
)

// spanSetter is satisfied by nodes that expose SetSpan. parseGroupedExpr uses
// it to widen spans without wrapping the underlying node in a synthetic AST
// type.
type spanSetter interface {
	SetSpan(lexer.Span)
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprPrecedence(precedenceLowest)
}

func (p *Parser) parseExprPrecedence(precedence int) ast.Expr {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		shown := p.curTok.Raw
		if shown == "" {
			shown = string(p.curTok.Type)
		}
		p.reportErrorWithHelp(
			"unexpected token `"+shown+"` in expression",
			p.curTok.Span,
			"expected an identifier, a numeral, TRUE/FALSE, a prefix operator, '(', '[#', IF, COND, LET, or a quantifier",
		)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			break
		}

		p.nextToken()

		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expr {
	return ast.NewIdent(p.curTok.Raw, p.curTok.Span)
}

func (p *Parser) parseNumberLit() ast.Expr {
	return ast.NewNumberLit(p.curTok.Raw, p.curTok.Span)
}

func (p *Parser) parseBoolLit() ast.Expr {
	return ast.NewBoolLit(p.curTok.Type == lexer.TRUE, p.curTok.Span)
}

// parsePrefixExpr handles NOT and unary minus. NOT binds looser than the
// relational operators, so `NOT a = b` negates the comparison; unary minus
// binds tighter than '*' and '/'.
func (p *Parser) parsePrefixExpr() ast.Expr {
	operatorTok := p.curTok

	operandPrec := precedenceUnary
	if operatorTok.Type == lexer.NOT {
		operandPrec = precedenceNot
	}

	p.nextToken()

	right := p.parseExprPrecedence(operandPrec)
	if right == nil {
		return nil
	}

	return ast.NewPrefixExpr(operatorTok.Type, right, mergeSpan(operatorTok.Span, right.Span()))
}

// parseGroupedExpr parses "(expr)" without introducing an explicit paren
// node. Instead it rewrites the span on the parsed sub-expression, keeping
// the AST lean while spans still cover the parentheses.
func (p *Parser) parseGroupedExpr() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // consume '('

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	span := mergeSpan(start, expr.Span())
	span = mergeSpan(span, p.curTok.Span)

	if setter, ok := expr.(spanSetter); ok {
		setter.SetSpan(span)
	}

	return expr
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	operatorTok := p.curTok
	precedence := p.curPrecedence()

	// Implication is right-associative; everything else associates left.
	if operatorTok.Type == lexer.IMPLIES || operatorTok.Type == lexer.DARROW {
		precedence--
	}

	p.nextToken()

	right := p.parseExprPrecedence(precedence)
	if right == nil {
		return nil
	}

	span := mergeSpan(left.Span(), operatorTok.Span)
	span = mergeSpan(span, right.Span())

	return ast.NewInfixExpr(operatorTok.Type, left, right, span)
}

// parseApplyExpr parses an argument list applied to the expression so far.
// Curried applications fall out of the Pratt loop: each '(' wraps the
// previous application in a fresh node.
func (p *Parser) parseApplyExpr(fun ast.Expr) ast.Expr {
	openTok := p.curTok

	if p.peekTok.Type == lexer.RPAREN {
		p.reportError("expected argument", p.peekTok.Span)
		return nil
	}
	p.nextToken()

	res, ok := parseDelimited[ast.Expr](p, delimitedConfig{
		Closing:             lexer.RPAREN,
		Separator:           lexer.COMMA,
		MissingElementMsg:   "expected argument",
		MissingSeparatorMsg: "expected ',' or ')' in argument list",
	}, func(int) (ast.Expr, bool) {
		arg := p.parseExpr()
		if arg == nil {
			return nil, false
		}
		return arg, true
	})
	if !ok {
		return nil
	}

	span := mergeSpan(fun.Span(), openTok.Span)
	span = mergeSpan(span, p.curTok.Span)

	return ast.NewApplyExpr(fun, res.Items, span)
}

// parseProjExpr parses record field selection `target`field`.
func (p *Parser) parseProjExpr(target ast.Expr) ast.Expr {
	accessTok := p.curTok
	p.nextToken() // advance past '`'

	if p.curTok.Type != lexer.IDENT {
		p.reportError("expected field name after '`'", p.curTok.Span)
		return nil
	}

	field := ast.NewIdent(p.curTok.Raw, p.curTok.Span)

	span := mergeSpan(target.Span(), accessTok.Span)
	span = mergeSpan(span, field.Span())

	return ast.NewProjExpr(target, field, span)
}

// parseUpdateExpr parses `target WITH [f1 := e1, ...]`. Duplicate field names
// are structurally legal here and recorded in source order; whether they make
// sense is the semantic analyzer's call.
func (p *Parser) parseUpdateExpr(target ast.Expr) ast.Expr {
	if !p.expect(lexer.LBRACKET) {
		return nil
	}

	if p.peekTok.Type == lexer.RBRACKET {
		p.reportError("expected field assignment", p.peekTok.Span)
		return nil
	}
	p.nextToken()

	res, ok := parseDelimited[*ast.FieldAssign](p, delimitedConfig{
		Closing:             lexer.RBRACKET,
		Separator:           lexer.COMMA,
		MissingElementMsg:   "expected field assignment",
		MissingSeparatorMsg: "expected ',' or ']' in update",
	}, func(int) (*ast.FieldAssign, bool) {
		assign := p.parseFieldAssign()
		if assign == nil {
			return nil, false
		}
		return assign, true
	})
	if !ok {
		return nil
	}

	return ast.NewUpdateExpr(target, res.Items, mergeSpan(target.Span(), p.curTok.Span))
}

// parseRecordLit parses record construction `[# f1 := e1, ... #]`.
func (p *Parser) parseRecordLit() ast.Expr {
	start := p.curTok.Span

	if p.peekTok.Type == lexer.RRECORD {
		p.reportError("expected field assignment", p.peekTok.Span)
		return nil
	}
	p.nextToken()

	res, ok := parseDelimited[*ast.FieldAssign](p, delimitedConfig{
		Closing:             lexer.RRECORD,
		Separator:           lexer.COMMA,
		MissingElementMsg:   "expected field assignment",
		MissingSeparatorMsg: "expected ',' or '#]' in record construction",
	}, func(int) (*ast.FieldAssign, bool) {
		assign := p.parseFieldAssign()
		if assign == nil {
			return nil, false
		}
		return assign, true
	})
	if !ok {
		return nil
	}

	return ast.NewRecordLit(res.Items, mergeSpan(start, p.curTok.Span))
}

// parseFieldAssign parses one `name := expr` pair. curTok is the field name;
// on success curTok is the value's last token.
func (p *Parser) parseFieldAssign() *ast.FieldAssign {
	if p.curTok.Type != lexer.IDENT {
		p.reportError("expected field name", p.curTok.Span)
		return nil
	}

	name := ast.NewIdent(p.curTok.Raw, p.curTok.Span)

	if !p.expect(lexer.ASSIGN) {
		return nil
	}
	p.nextToken() // move to the value

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	return ast.NewFieldAssign(name, value, mergeSpan(name.Span(), value.Span()))
}

// parseIfExpr parses `IF c THEN a ELSE b ENDIF`. Both branches are required.
// An ELSIF continues the chain as a nested conditional in the ELSE position;
// the recursive call consumes the shared ENDIF.
func (p *Parser) parseIfExpr() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // move past IF/ELSIF

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}

	if !p.expect(lexer.THEN) {
		return nil
	}
	p.nextToken() // move to the THEN branch

	then := p.parseExpr()
	if then == nil {
		return nil
	}

	var els ast.Expr
	switch p.peekTok.Type {
	case lexer.ELSIF:
		p.nextToken() // move to ELSIF
		els = p.parseIfExpr()
	case lexer.ELSE:
		p.nextToken() // move to ELSE
		p.nextToken() // move to the ELSE branch
		els = p.parseExpr()
		if els == nil {
			return nil
		}
		if !p.expect(lexer.ENDIF) {
			return nil
		}
	default:
		p.reportErrorWithHelp(
			"expected ELSE in IF expression",
			p.peekTok.Span,
			"conditional expressions require both branches: IF c THEN a ELSE b ENDIF",
		)
		return nil
	}
	if els == nil {
		return nil
	}

	return ast.NewIfExpr(cond, then, els, mergeSpan(start, p.curTok.Span))
}

// parseCondExpr parses `COND g1 -> e1, ..., ELSE -> en ENDCOND`. Branch order
// is preserved exactly as written: downstream, the first matching guard wins,
// so reordering would change meaning. At most one ELSE is permitted and it
// must come last.
func (p *Parser) parseCondExpr() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // move to the first branch

	var branches []*ast.CondBranch
	elseSpan := lexer.Span{}
	haveElse := false

	for {
		branch := p.parseCondBranch()
		if branch == nil {
			return nil
		}

		if branch.IsElse() {
			if haveElse {
				p.reportErrorCode(
					"duplicate ELSE branch in COND expression",
					branch.Span(),
					diag.CodeParseMisplacedElse,
					elseSpan,
				)
			} else {
				haveElse = true
				elseSpan = branch.Span()
			}
		} else if haveElse {
			p.reportErrorCode(
				"COND branch after ELSE",
				branch.Span(),
				diag.CodeParseMisplacedElse,
				elseSpan,
			)
		}

		branches = append(branches, branch)

		switch p.peekTok.Type {
		case lexer.COMMA:
			p.nextToken() // move to ','
			p.nextToken() // move to the next branch
		case lexer.ENDCOND:
			p.nextToken()
			return ast.NewCondExpr(branches, mergeSpan(start, p.curTok.Span))
		default:
			p.reportError("expected ',' or ENDCOND in COND expression", p.peekTok.Span)
			return nil
		}
	}
}

// parseCondBranch parses one `guard -> result` pair; a bare ELSE guard
// matches unconditionally.
func (p *Parser) parseCondBranch() *ast.CondBranch {
	start := p.curTok.Span

	var guard ast.Expr
	if p.curTok.Type != lexer.ELSE {
		guard = p.parseExpr()
		if guard == nil {
			return nil
		}
	}

	if !p.expect(lexer.ARROW) {
		return nil
	}
	p.nextToken() // move to the result

	body := p.parseExpr()
	if body == nil {
		return nil
	}

	return ast.NewCondBranch(guard, body, mergeSpan(start, body.Span()))
}

// parseLetExpr parses `LET x [: T] = value IN body`.
func (p *Parser) parseLetExpr() ast.Expr {
	start := p.curTok.Span

	if p.peekTok.Type != lexer.IDENT {
		p.reportError("expected binding name after LET", p.peekTok.Span)
		return nil
	}
	p.nextToken()

	name := ast.NewIdent(p.curTok.Raw, p.curTok.Span)

	var typ ast.TypeExpr
	if p.peekTok.Type == lexer.COLON {
		p.nextToken() // move to ':'
		p.nextToken() // move to the type
		typ = p.parseType()
		if typ == nil {
			return nil
		}
	}

	if !p.expect(lexer.EQ) {
		return nil
	}
	p.nextToken() // move to the bound value

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	if !p.expect(lexer.IN) {
		return nil
	}
	p.nextToken() // move to the body

	body := p.parseExpr()
	if body == nil {
		return nil
	}

	return ast.NewLetExpr(name, typ, value, body, mergeSpan(start, body.Span()))
}

// parseQuantExpr parses `FORALL (x: T, ...): body` or the EXISTS form. The
// body extends as far right as possible.
func (p *Parser) parseQuantExpr() ast.Expr {
	start := p.curTok.Span
	kind := ast.QuantKind(p.curTok.Type)

	if !p.expect(lexer.LPAREN) {
		return nil
	}

	if p.peekTok.Type == lexer.RPAREN {
		p.reportError("expected binding declaration", p.peekTok.Span)
		return nil
	}
	p.nextToken()

	res, ok := parseDelimited[*ast.Param](p, delimitedConfig{
		Closing:             lexer.RPAREN,
		Separator:           lexer.COMMA,
		MissingElementMsg:   "expected binding declaration",
		MissingSeparatorMsg: "expected ',' or ')' in binding list",
	}, func(int) (*ast.Param, bool) {
		binding := p.parseParam()
		if binding == nil {
			return nil, false
		}
		return binding, true
	})
	if !ok {
		return nil
	}

	p.checkUniqueParams(res.Items, "binding")

	if !p.expect(lexer.COLON) {
		return nil
	}
	p.nextToken() // move to the body

	body := p.parseExpr()
	if body == nil {
		return nil
	}

	return ast.NewQuantExpr(kind, res.Items, body, mergeSpan(start, body.Span()))
}
