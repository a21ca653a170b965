package parser

import (
	"github.com/theorylang/theorylang/internal/ast"
	"github.com/theorylang/theorylang/internal/lexer"
)

// parseImport parses `IMPORTING name [actuals]`. curTok is the IMPORTING
// keyword; on success curTok is the last token of the statement.
func (p *Parser) parseImport() *ast.ImportDecl {
	start := p.curTok.Span

	if p.peekTok.Type != lexer.IDENT {
		p.reportError("expected theory name after IMPORTING", p.peekTok.Span)
		return nil
	}
	p.nextToken()

	name := ast.NewIdent(p.curTok.Raw, p.curTok.Span)

	var actuals []ast.Expr
	if p.peekTok.Type == lexer.LBRACKET {
		p.nextToken() // move to '['
		if p.peekTok.Type == lexer.RBRACKET {
			p.reportError("expected actual parameter", p.peekTok.Span)
			return nil
		}
		p.nextToken()

		res, ok := parseDelimited[ast.Expr](p, delimitedConfig{
			Closing:             lexer.RBRACKET,
			Separator:           lexer.COMMA,
			MissingElementMsg:   "expected actual parameter",
			MissingSeparatorMsg: "expected ',' or ']' in actual parameter list",
		}, func(int) (ast.Expr, bool) {
			actual := p.parseExpr()
			if actual == nil {
				return nil, false
			}
			return actual, true
		})
		if !ok {
			return nil
		}
		actuals = res.Items
	}

	return ast.NewImportDecl(name, actuals, mergeSpan(start, p.curTok.Span))
}

// parseAssumingBlock parses `ASSUMING {named formula} ENDASSUMING`. curTok is
// the ASSUMING keyword; afterwards curTok is the first token past the block.
func (p *Parser) parseAssumingBlock() []*ast.FormulaDecl {
	p.nextToken() // move past ASSUMING

	var formulas []*ast.FormulaDecl

	for p.curTok.Type != lexer.ENDASSUMING && p.curTok.Type != lexer.END && p.curTok.Type != lexer.EOF {
		prevTok := p.curTok

		if decl := p.parseDecl(); decl != nil {
			if formula, ok := decl.(*ast.FormulaDecl); ok {
				formulas = append(formulas, formula)
			} else {
				p.reportError("only named formulas may appear in an ASSUMING block", decl.Span())
			}
			p.nextToken()
			continue
		}

		p.recoverDecl(prevTok)
	}

	if p.curTok.Type != lexer.ENDASSUMING {
		p.reportError("expected ENDASSUMING to close ASSUMING block", p.curTok.Span)
		return formulas
	}
	p.nextToken() // move past ENDASSUMING

	return formulas
}

// parseDecl parses one theory-body declaration. curTok must be the declared
// name; on success curTok is the declaration's last token.
func (p *Parser) parseDecl() ast.Decl {
	if p.curTok.Type != lexer.IDENT {
		p.reportUnexpectedError(p.curTok, "theory body")
		return nil
	}

	name := ast.NewIdent(p.curTok.Raw, p.curTok.Span)

	switch p.peekTok.Type {
	case lexer.COLON:
		p.nextToken() // move to ':'
		p.nextToken() // move to what follows
		return p.parseColonDecl(name)
	case lexer.LPAREN:
		clauses, ok := p.parseParamClauses()
		if !ok {
			return nil
		}
		return p.parseDefinition(name, clauses)
	default:
		p.reportErrorWithHelp(
			"expected ':' or a parameter clause after '"+name.Name+"'",
			p.peekTok.Span,
			"a declaration is written `name: TYPE`, `name: LEMMA expr`, `name: T = expr`, or `name(params): T = expr`",
		)
		return nil
	}
}

// parseColonDecl handles everything that can follow `name:`.
func (p *Parser) parseColonDecl(name *ast.Ident) ast.Decl {
	switch p.curTok.Type {
	case lexer.TYPE:
		return p.parseTypeDecl(name)

	case lexer.VAR:
		p.nextToken() // move to the type
		typ := p.parseType()
		if typ == nil {
			return nil
		}
		return ast.NewVarDecl(name, typ, mergeSpan(name.Span(), p.curTok.Span))

	case lexer.LEMMA, lexer.AXIOM, lexer.ASSUMPTION:
		kind := ast.FormulaKind(p.curTok.Type)
		p.nextToken() // move to the formula body
		body := p.parseExpr()
		if body == nil {
			return nil
		}
		return ast.NewFormulaDecl(name, kind, body, mergeSpan(name.Span(), body.Span()))

	default:
		// Constant declaration: a type expression, optionally followed by a
		// defining body.
		typ := p.parseType()
		if typ == nil {
			return nil
		}

		if p.peekTok.Type != lexer.EQ {
			return ast.NewConstDecl(name, nil, typ, nil, mergeSpan(name.Span(), p.curTok.Span))
		}

		p.nextToken() // move to '='
		p.nextToken() // move to the body
		body := p.parseExpr()
		if body == nil {
			return nil
		}
		return ast.NewConstDecl(name, nil, typ, body, mergeSpan(name.Span(), body.Span()))
	}
}

// parseTypeDecl handles `name: TYPE [= TypeExpr]`. curTok is TYPE.
func (p *Parser) parseTypeDecl(name *ast.Ident) ast.Decl {
	if p.peekTok.Type != lexer.EQ {
		return ast.NewTypeDecl(name, nil, mergeSpan(name.Span(), p.curTok.Span))
	}

	p.nextToken() // move to '='
	p.nextToken() // move to the definition
	def := p.parseType()
	if def == nil {
		return nil
	}

	return ast.NewTypeDecl(name, def, mergeSpan(name.Span(), p.curTok.Span))
}

// parseParamClauses parses one or more successive parenthesized parameter
// clauses. curTok is the declared name with '(' in peek; afterwards curTok is
// the final ')'. Clauses stay separate in the AST: a curried definition like
// `infuse(r: rate)(st: state)` refines each domain independently.
func (p *Parser) parseParamClauses() ([]*ast.ParamClause, bool) {
	var clauses []*ast.ParamClause

	for p.peekTok.Type == lexer.LPAREN {
		p.nextToken() // move to '('
		start := p.curTok.Span

		if p.peekTok.Type == lexer.RPAREN {
			p.reportError("expected parameter declaration", p.peekTok.Span)
			return clauses, false
		}
		p.nextToken()

		res, ok := parseDelimited[*ast.Param](p, delimitedConfig{
			Closing:             lexer.RPAREN,
			Separator:           lexer.COMMA,
			MissingElementMsg:   "expected parameter declaration",
			MissingSeparatorMsg: "expected ',' or ')' in parameter list",
		}, func(int) (*ast.Param, bool) {
			param := p.parseParam()
			if param == nil {
				return nil, false
			}
			return param, true
		})
		if !ok {
			return clauses, false
		}

		p.checkUniqueParams(res.Items, "parameter")

		clauses = append(clauses, ast.NewParamClause(res.Items, mergeSpan(start, p.curTok.Span)))
	}

	return clauses, true
}

// parseDefinition finishes a constant/function definition after its parameter
// clauses: `[: TypeExpr] = Expr`.
func (p *Parser) parseDefinition(name *ast.Ident, clauses []*ast.ParamClause) ast.Decl {
	var ret ast.TypeExpr

	if p.peekTok.Type == lexer.COLON {
		p.nextToken() // move to ':'
		p.nextToken() // move to the return type
		ret = p.parseType()
		if ret == nil {
			return nil
		}
	}

	if !p.expect(lexer.EQ) {
		return nil
	}
	p.nextToken() // move to the body

	body := p.parseExpr()
	if body == nil {
		return nil
	}

	return ast.NewConstDecl(name, clauses, ret, body, mergeSpan(name.Span(), body.Span()))
}

// parseParam parses `name: TypeExpr`. curTok is the parameter name; on
// success curTok is the type's last token.
func (p *Parser) parseParam() *ast.Param {
	if p.curTok.Type != lexer.IDENT {
		p.reportError("expected parameter name", p.curTok.Span)
		return nil
	}

	name := ast.NewIdent(p.curTok.Raw, p.curTok.Span)

	if !p.expect(lexer.COLON) {
		return nil
	}
	p.nextToken() // move to the type

	typ := p.parseType()
	if typ == nil {
		return nil
	}

	return ast.NewParam(name, typ, mergeSpan(name.Span(), typ.Span()))
}
