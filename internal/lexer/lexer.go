package lexer

import (
	"strconv"
	"unicode"

	"github.com/theorylang/theorylang/internal/diag"
)

type LexerErrorKind int

const (
	ErrIllegalRune LexerErrorKind = iota
	ErrUnterminatedDocComment
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	case ErrUnterminatedDocComment:
		return diag.CodeLexerUnterminatedDocComment
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Lexer represents the lexer state
type Lexer struct {
	input      []rune
	pos        int  // index of the current rune
	ch         rune // current rune (0 = EOF)
	line       int  // current line number (1-based)
	column     int  // current column number (1-based)
	emitTrivia bool // whether to emit trivia tokens (comments, whitespace)
	filename   string

	Errors []LexerError
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// newLexer is the single internal constructor that sets up all lexer state
func newLexer(input string, emitTrivia bool) *Lexer {
	r := []rune(input)
	l := &Lexer{
		input:      r,
		pos:        -1, // start before first rune
		ch:         0,
		line:       1,
		column:     0, // will be 1 after first read()
		emitTrivia: emitTrivia,
	}
	l.read() // move to first character
	return l
}

// New creates a new lexer for the given input (trivia mode disabled)
func New(input string) *Lexer {
	return newLexer(input, false)
}

// NewWithTrivia creates a new lexer that emits trivia tokens
func NewWithTrivia(input string) *Lexer {
	return newLexer(input, true)
}

// SetFilename attributes all subsequently emitted spans to the given file.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
	for i := range l.Errors {
		if l.Errors[i].Span.Filename == "" {
			l.Errors[i].Span.Filename = name
		}
	}
}

// Tokenize drains the lexer and returns every remaining token including the
// trailing EOF. The returned slice is finite for finite input because the
// lexer always makes progress, even over illegal runes.
func (l *Lexer) Tokenize() []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

// read advances the lexer to the next character. Line/column always reflect
// the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1
	inputLen := len(l.input)

	if l.pos >= inputLen {
		// We've moved past the last rune; normalize position to virtual EOF
		if prevPos >= 0 && prevPos < inputLen {
			if l.input[prevPos] == '\n' {
				l.line++
				l.column = 1
			} else {
				l.column++
			}
		} else if prevPos < 0 {
			// Empty input: column should point to the first position
			l.column = 1
		}
		l.ch = 0 // EOF
		return
	}

	l.ch = l.input[l.pos]

	if prevPos >= 0 && prevPos < inputLen && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	return l.peekAt(1)
}

// peekAt returns the character n runes ahead without advancing
func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// currentSpanStart returns the current position for span tracking
func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

// makeToken creates a token with span information
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos, endPos int, raw string) Token {
	return Token{
		Type: tokType,
		Raw:  raw,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      endPos,
		},
	}
}

// operator emits a token for an operator whose raw text is already known,
// consuming len(raw) runes.
func (l *Lexer) operator(tokType TokenType, raw string) Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	for range raw {
		l.read()
	}
	return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, raw)
}

// skipWhitespace skips whitespace characters, optionally returning a trivia
// token. Returns the first trivia token if in trivia mode, nil otherwise.
func (l *Lexer) skipWhitespace() *Token {
	if !l.emitTrivia {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.read()
		}
		return nil
	}

	startLine, startColumn, startPos := l.currentSpanStart()

	// Handle newlines separately
	if l.ch == '\n' || l.ch == '\r' {
		raw := string(l.ch)
		l.read()
		// Handle \r\n
		if l.ch == '\n' && raw == "\r" {
			raw = "\r\n"
			l.read()
		}
		tok := l.makeToken(NEWLINE, startLine, startColumn, startPos, l.pos, raw)
		return &tok
	}

	if l.ch == ' ' || l.ch == '\t' {
		for l.ch == ' ' || l.ch == '\t' {
			l.read()
		}
		raw := string(l.input[startPos:l.pos])
		tok := l.makeToken(WHITESPACE, startLine, startColumn, startPos, l.pos, raw)
		return &tok
	}

	return nil
}

// lexLineComment reads from just past the '%' marker to end of line. The
// marker itself was consumed by the caller; startPos points at it.
func (l *Lexer) lexLineComment(startLine, startColumn, startPos int) *Token {
	for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
		l.read()
	}
	endPos := l.pos
	raw := string(l.input[startPos:endPos])

	if l.emitTrivia {
		tok := l.makeToken(LINE_COMMENT, startLine, startColumn, startPos, endPos, raw)
		return &tok
	}
	return nil
}

// lexDocComment reads a documentation block: the opening %%% has been
// consumed, and the block runs to the next %%% which may be on a later line.
// Reaching EOF first is an error; the partial comment is still emitted so
// the extractor sees it.
func (l *Lexer) lexDocComment(startLine, startColumn, startPos int) *Token {
	terminated := false
	for l.ch != 0 {
		if l.ch == '%' && l.peek() == '%' && l.peekAt(2) == '%' {
			l.read()
			l.read()
			l.read()
			terminated = true
			break
		}
		l.read()
	}

	if !terminated {
		l.addError(
			ErrUnterminatedDocComment,
			"unterminated documentation comment",
			Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
		)
	}

	endPos := l.pos
	raw := string(l.input[startPos:endPos])

	if l.emitTrivia {
		tok := l.makeToken(DOC_COMMENT, startLine, startColumn, startPos, endPos, raw)
		return &tok
	}
	return nil
}

// readIdentifier reads an identifier or keyword. A trailing '?' is part of
// the name: boolean-valued predicates are spelled empty?, rate_ok? and so on.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '?' {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readNumber reads a numeral. The grammar only has naturals; refined numeric
// subtypes come from predicates, not literal syntax, so there is no float or
// radix-prefix form to scan.
func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		if triviaTok := l.skipWhitespace(); triviaTok != nil {
			return *triviaTok
		}

		switch l.ch {
		case 0:
			startLine, startColumn, startPos := l.currentSpanStart()
			if startColumn == 0 {
				startColumn = 1
			}
			return l.makeToken(EOF, startLine, startColumn, startPos, startPos, "")

		case '%':
			startLine, startColumn, startPos := l.currentSpanStart()
			if l.peek() == '%' && l.peekAt(2) == '%' {
				l.read() // consume '%'
				l.read() // consume '%'
				l.read() // consume '%'
				if triviaTok := l.lexDocComment(startLine, startColumn, startPos); triviaTok != nil {
					return *triviaTok
				}
				continue
			}
			l.read() // consume '%'
			if triviaTok := l.lexLineComment(startLine, startColumn, startPos); triviaTok != nil {
				return *triviaTok
			}
			continue

		case ':':
			if l.peek() == '=' {
				return l.operator(ASSIGN, ":=")
			}
			return l.operator(COLON, ":")

		case '<':
			// Longest match wins: <=> before <= before <.
			if l.peek() == '=' {
				if l.peekAt(2) == '>' {
					return l.operator(SEQUIV, "<=>")
				}
				return l.operator(LE, "<=")
			}
			return l.operator(LT, "<")

		case '>':
			if l.peek() == '=' {
				return l.operator(GE, ">=")
			}
			return l.operator(GT, ">")

		case '/':
			if l.peek() == '=' {
				return l.operator(NEQ, "/=")
			}
			return l.operator(SLASH, "/")

		case '=':
			if l.peek() == '>' {
				return l.operator(DARROW, "=>")
			}
			return l.operator(EQ, "=")

		case '-':
			if l.peek() == '>' {
				return l.operator(ARROW, "->")
			}
			return l.operator(MINUS, "-")

		case '[':
			if l.peek() == '#' {
				return l.operator(LRECORD, "[#")
			}
			return l.operator(LBRACKET, "[")

		case '#':
			if l.peek() == ']' {
				return l.operator(RRECORD, "#]")
			}
			return l.illegalRune()

		case '+':
			return l.operator(PLUS, "+")
		case '*':
			return l.operator(STAR, "*")
		case '&':
			return l.operator(AMP, "&")
		case '|':
			return l.operator(BAR, "|")
		case '`':
			return l.operator(ACCESS, "`")
		case ',':
			return l.operator(COMMA, ",")
		case ';':
			return l.operator(SEMICOLON, ";")
		case '(':
			return l.operator(LPAREN, "(")
		case ')':
			return l.operator(RPAREN, ")")
		case ']':
			return l.operator(RBRACKET, "]")
		case '{':
			return l.operator(LBRACE, "{")
		case '}':
			return l.operator(RBRACE, "}")

		default:
			if isLetter(l.ch) {
				startLine, startColumn, startPos := l.currentSpanStart()
				literal := l.readIdentifier()
				tokType := LookupIdent(literal)
				return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, literal)
			} else if isDigit(l.ch) {
				startLine, startColumn, startPos := l.currentSpanStart()
				literal := l.readNumber()
				return l.makeToken(NUMBER, startLine, startColumn, startPos, l.pos, literal)
			}
			return l.illegalRune()
		}
	}
}

// illegalRune emits a placeholder token so parsing can continue past an
// unrecognized character, recording the error alongside.
func (l *Lexer) illegalRune() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	raw := string(l.ch)
	l.read()
	tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw)
	l.addError(
		ErrIllegalRune,
		"illegal character "+strconv.Quote(raw),
		tok.Span,
	)
	return tok
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}
