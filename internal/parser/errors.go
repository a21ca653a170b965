package parser

import (
	"fmt"

	"github.com/theorylang/theorylang/internal/diag"
	"github.com/theorylang/theorylang/internal/lexer"
)

// ParseError captures a recoverable parsing error with location context.
type ParseError struct {
	Message  string
	Span     lexer.Span
	Severity diag.Severity
	Code     diag.Code
	Help     string
	Related  []lexer.Span
}

// ToDiagnostic converts a parse error into the shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: e.Severity,
		Code:     e.Code,
		Message:  e.Message,
		Span:     toDiagSpan(e.Span),
		Help:     e.Help,
	}
	if d.Code == "" {
		d.Code = diag.CodeParseUnexpectedToken
	}
	for _, rel := range e.Related {
		d.Related = append(d.Related, toDiagSpan(rel))
	}
	return d
}

func toDiagSpan(span lexer.Span) diag.Span {
	return diag.Span{
		Filename: span.Filename,
		Line:     span.Line,
		Column:   span.Column,
		Start:    span.Start,
		End:      span.End,
	}
}

// emitParseDiagnostic records a recoverable diagnostic without aborting
// parsing. Call sites must supply the best-effort span available at the
// failure site.
func (p *Parser) emitParseDiagnostic(err ParseError) {
	if err.Span.Filename == "" && p.filename != "" {
		err.Span.Filename = p.filename
	}
	for i := range err.Related {
		if err.Related[i].Filename == "" && p.filename != "" {
			err.Related[i].Filename = p.filename
		}
	}

	p.errors = append(p.errors, err)
}

// reportError reports a simple error.
func (p *Parser) reportError(msg string, span lexer.Span) {
	p.emitParseDiagnostic(ParseError{
		Message:  msg,
		Span:     span,
		Severity: diag.SeverityError,
	})
}

// reportErrorCode reports an error with a stable code and related locations.
func (p *Parser) reportErrorCode(msg string, span lexer.Span, code diag.Code, related ...lexer.Span) {
	p.emitParseDiagnostic(ParseError{
		Message:  msg,
		Span:     span,
		Severity: diag.SeverityError,
		Code:     code,
		Related:  related,
	})
}

// reportErrorWithHelp reports an error with help text.
func (p *Parser) reportErrorWithHelp(msg string, span lexer.Span, help string) {
	p.emitParseDiagnostic(ParseError{
		Message:  msg,
		Span:     span,
		Severity: diag.SeverityError,
		Help:     help,
	})
}

// reportUnexpectedError reports an error for an unexpected token.
func (p *Parser) reportUnexpectedError(unexpected lexer.Token, context string) {
	shown := unexpected.Raw
	if shown == "" {
		shown = string(unexpected.Type)
	}

	msg := fmt.Sprintf("unexpected token `%s`", shown)
	if context != "" {
		msg = fmt.Sprintf("%s in %s", msg, context)
	}

	p.emitParseDiagnostic(ParseError{
		Message:  msg,
		Span:     unexpected.Span,
		Severity: diag.SeverityError,
		Code:     diag.CodeParseUnexpectedToken,
	})
}
