package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // index in []rune of the original string
	End      int    // exclusive end index
}

// Token represents a lexical token
type Token struct {
	Type TokenType
	Raw  string // exact runes from source
	Span Span   // source location information
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // level, empty?, rate_of
	NUMBER TokenType = "NUMBER" // 0, 42, 1343456

	// Operators
	EQ     TokenType = "="
	NEQ    TokenType = "/="
	LT     TokenType = "<"
	LE     TokenType = "<="
	GT     TokenType = ">"
	GE     TokenType = ">="
	PLUS   TokenType = "+"
	MINUS  TokenType = "-"
	STAR   TokenType = "*"
	SLASH  TokenType = "/"
	ASSIGN TokenType = ":="
	ARROW  TokenType = "->"
	DARROW TokenType = "=>"
	SEQUIV TokenType = "<=>"
	AMP    TokenType = "&"
	BAR    TokenType = "|"
	ACCESS TokenType = "`"

	// Delimiters
	COMMA     TokenType = ","
	COLON     TokenType = ":"
	SEMICOLON TokenType = ";"

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LRECORD  TokenType = "[#"
	RRECORD  TokenType = "#]"

	// Keywords
	THEORY      TokenType = "THEORY"
	BEGIN       TokenType = "BEGIN"
	END         TokenType = "END"
	IMPORTING   TokenType = "IMPORTING"
	ASSUMING    TokenType = "ASSUMING"
	ENDASSUMING TokenType = "ENDASSUMING"
	ASSUMPTION  TokenType = "ASSUMPTION"
	LEMMA       TokenType = "LEMMA"
	AXIOM       TokenType = "AXIOM"
	TYPE        TokenType = "TYPE"
	VAR         TokenType = "VAR"
	WITH        TokenType = "WITH"
	COND        TokenType = "COND"
	ENDCOND     TokenType = "ENDCOND"
	IF          TokenType = "IF"
	THEN        TokenType = "THEN"
	ELSE        TokenType = "ELSE"
	ELSIF       TokenType = "ELSIF"
	ENDIF       TokenType = "ENDIF"
	LET         TokenType = "LET"
	IN          TokenType = "IN"
	FORALL      TokenType = "FORALL"
	EXISTS      TokenType = "EXISTS"
	TRUE        TokenType = "TRUE"
	FALSE       TokenType = "FALSE"
	NOT         TokenType = "NOT"
	AND         TokenType = "AND"
	OR          TokenType = "OR"
	IMPLIES     TokenType = "IMPLIES"
	IFF         TokenType = "IFF"

	// Trivia tokens (comments, whitespace, newlines)
	LINE_COMMENT TokenType = "LINE_COMMENT" // % ...
	DOC_COMMENT  TokenType = "DOC_COMMENT"  // %%% ... %%%
	WHITESPACE   TokenType = "WHITESPACE"   // spaces, tabs
	NEWLINE      TokenType = "NEWLINE"      // \n, \r\n
)

// Reserved words are matched by exact text, so `theory` stays an ordinary
// identifier while `THEORY` opens a theory.
var keywords = map[string]TokenType{
	"THEORY":      THEORY,
	"BEGIN":       BEGIN,
	"END":         END,
	"IMPORTING":   IMPORTING,
	"ASSUMING":    ASSUMING,
	"ENDASSUMING": ENDASSUMING,
	"ASSUMPTION":  ASSUMPTION,
	"LEMMA":       LEMMA,
	"AXIOM":       AXIOM,
	"TYPE":        TYPE,
	"VAR":         VAR,
	"WITH":        WITH,
	"COND":        COND,
	"ENDCOND":     ENDCOND,
	"IF":          IF,
	"THEN":        THEN,
	"ELSE":        ELSE,
	"ELSIF":       ELSIF,
	"ENDIF":       ENDIF,
	"LET":         LET,
	"IN":          IN,
	"FORALL":      FORALL,
	"EXISTS":      EXISTS,
	"TRUE":        TRUE,
	"FALSE":       FALSE,
	"NOT":         NOT,
	"AND":         AND,
	"OR":          OR,
	"IMPLIES":     IMPLIES,
	"IFF":         IFF,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsTrivia reports whether the token carries no grammatical content.
func (t Token) IsTrivia() bool {
	switch t.Type {
	case LINE_COMMENT, DOC_COMMENT, WHITESPACE, NEWLINE:
		return true
	default:
		return false
	}
}
