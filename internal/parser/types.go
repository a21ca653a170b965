package parser

import (
	"github.com/theorylang/theorylang/internal/ast"
	"github.com/theorylang/theorylang/internal/diag"
	"github.com/theorylang/theorylang/internal/lexer"
)

// parseType parses a type expression. The alternatives are disambiguated by
// bounded lookahead on the opening token, never by backtracking: an
// identifier is a named reference, '{' opens a predicate subtype, '[#' a
// record type, and '[' a function type. curTok must be the type's first
// token; on success curTok is its last.
func (p *Parser) parseType() ast.TypeExpr {
	switch p.curTok.Type {
	case lexer.IDENT:
		return p.parseNamedType()
	case lexer.LBRACE:
		return p.parseSubtype()
	case lexer.LRECORD:
		return p.parseRecordType()
	case lexer.LBRACKET:
		return p.parseFuncType()
	default:
		p.reportError("expected type expression", p.curTok.Span)
		return nil
	}
}

// parseNamedType parses `name` or `name[actual, ...]`.
func (p *Parser) parseNamedType() ast.TypeExpr {
	nameTok := p.curTok
	name := ast.NewIdent(nameTok.Raw, nameTok.Span)

	if p.peekTok.Type != lexer.LBRACKET {
		return ast.NewNamedType(name, nil, nameTok.Span)
	}

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

	return ast.NewNamedType(name, res.Items, mergeSpan(nameTok.Span, p.curTok.Span))
}

// parseSubtype parses a predicate subtype `{x: T | pred}`.
func (p *Parser) parseSubtype() ast.TypeExpr {
	start := p.curTok.Span

	if p.peekTok.Type != lexer.IDENT {
		p.reportError("expected binder name in predicate subtype", p.peekTok.Span)
		return nil
	}
	p.nextToken()

	binder := ast.NewIdent(p.curTok.Raw, p.curTok.Span)

	if !p.expect(lexer.COLON) {
		return nil
	}
	p.nextToken() // move to the base type

	base := p.parseType()
	if base == nil {
		return nil
	}

	if !p.expect(lexer.BAR) {
		return nil
	}
	p.nextToken() // move to the predicate

	pred := p.parseExpr()
	if pred == nil {
		return nil
	}

	if !p.expect(lexer.RBRACE) {
		return nil
	}

	return ast.NewSubtypeExpr(binder, base, pred, mergeSpan(start, p.curTok.Span))
}

// parseRecordType parses `[# f1: T1, ..., fn: Tn #]`.
func (p *Parser) parseRecordType() ast.TypeExpr {
	start := p.curTok.Span

	if p.peekTok.Type == lexer.RRECORD {
		p.reportError("expected field declaration", p.peekTok.Span)
		return nil
	}
	p.nextToken()

	res, ok := parseDelimited[*ast.FieldDecl](p, delimitedConfig{
		Closing:             lexer.RRECORD,
		Separator:           lexer.COMMA,
		MissingElementMsg:   "expected field declaration",
		MissingSeparatorMsg: "expected ',' or '#]' in record type",
	}, func(int) (*ast.FieldDecl, bool) {
		field := p.parseFieldDecl()
		if field == nil {
			return nil, false
		}
		return field, true
	})
	if !ok {
		return nil
	}

	p.checkUniqueFields(res.Items)

	return ast.NewRecordType(res.Items, mergeSpan(start, p.curTok.Span))
}

// parseFieldDecl parses one `name: TypeExpr` record-type field.
func (p *Parser) parseFieldDecl() *ast.FieldDecl {
	if p.curTok.Type != lexer.IDENT {
		p.reportError("expected field name", p.curTok.Span)
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

	return ast.NewFieldDecl(name, typ, mergeSpan(name.Span(), typ.Span()))
}

// checkUniqueFields reports a diagnostic for each record-type field whose
// name repeats an earlier one.
func (p *Parser) checkUniqueFields(fields []*ast.FieldDecl) {
	seen := make(map[string]lexer.Span, len(fields))
	for _, field := range fields {
		if field == nil || field.Name == nil {
			continue
		}
		if first, dup := seen[field.Name.Name]; dup {
			p.reportErrorCode(
				"duplicate record field name '"+field.Name.Name+"'",
				field.Name.Span(),
				diag.CodeParseDuplicateName,
				first,
			)
			continue
		}
		seen[field.Name.Name] = field.Name.Span()
	}
}

// parseFuncType parses `[D1, ..., Dn -> R]`.
func (p *Parser) parseFuncType() ast.TypeExpr {
	start := p.curTok.Span
	p.nextToken() // move past '['

	var domain []ast.TypeExpr
	for {
		dom := p.parseType()
		if dom == nil {
			return nil
		}
		domain = append(domain, dom)

		if p.peekTok.Type != lexer.COMMA {
			break
		}
		p.nextToken() // move to ','
		p.nextToken() // move to the next domain type
	}

	if !p.expect(lexer.ARROW) {
		return nil
	}
	p.nextToken() // move to the range type

	rng := p.parseType()
	if rng == nil {
		return nil
	}

	if !p.expect(lexer.RBRACKET) {
		return nil
	}

	return ast.NewFuncType(domain, rng, mergeSpan(start, p.curTok.Span))
}
