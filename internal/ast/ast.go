package ast

import "github.com/theorylang/theorylang/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Decl represents a theory-body declaration.
type Decl interface {
	Node
	declNode()
	// DeclName returns the declared identifier; never nil on parser output.
	DeclName() *Ident
	// AttachDoc appends a documentation comment to the declaration.
	AttachDoc(doc *DocComment)
}

// TypeExpr represents a type expression.
type TypeExpr interface {
	Node
	typeNode()
}

// DocComment is a documentation block attached to the declaration that
// follows it in source. Text is the comment body without the delimiters.
type DocComment struct {
	Text string
	span lexer.Span
}

// Span returns the comment span.
func (d *DocComment) Span() lexer.Span { return d.span }

// NewDocComment constructs a documentation comment node.
func NewDocComment(text string, span lexer.Span) *DocComment {
	return &DocComment{Text: text, span: span}
}

// Theory represents a parsed compilation unit: one top-level theory.
type Theory struct {
	Name    *Ident
	Params  []*Param       // formal parameters, in source order
	Assumes []*FormulaDecl // ASSUMING block contents, in source order
	Imports []*ImportDecl  // IMPORTING statements, in source order
	Decls   []Decl         // body declarations, in source order
	EndName *Ident         // identifier after END; may differ from Name on bad input
	Docs    []*DocComment  // documentation preceding the theory header
	// TrailingDocs holds documentation blocks with no following declaration,
	// kept so a printer can round-trip them.
	TrailingDocs []*DocComment
	span         lexer.Span
}

// Span returns the span covering the entire theory.
func (t *Theory) Span() lexer.Span { return t.span }

// NewTheory constructs a theory node with the provided span.
func NewTheory(span lexer.Span) *Theory {
	return &Theory{span: span}
}

// SetSpan updates the theory span.
func (t *Theory) SetSpan(span lexer.Span) {
	t.span = span
}

// Param represents one formal parameter: name plus type, where the type may
// be a predicate subtype carrying the parameter's constraint.
type Param struct {
	Name *Ident
	Type TypeExpr
	span lexer.Span
}

// Span returns the parameter span.
func (p *Param) Span() lexer.Span { return p.span }

// NewParam constructs a parameter node.
func NewParam(name *Ident, typ TypeExpr, span lexer.Span) *Param {
	return &Param{Name: name, Type: typ, span: span}
}

// ParamClause is one parenthesized group of formal parameters. A definition
// may carry several clauses in a row; they stay separate because each clause
// can refine its own domain.
type ParamClause struct {
	Params []*Param
	span   lexer.Span
}

// Span returns the clause span.
func (c *ParamClause) Span() lexer.Span { return c.span }

// NewParamClause constructs a parameter clause node.
func NewParamClause(params []*Param, span lexer.Span) *ParamClause {
	return &ParamClause{Params: params, span: span}
}

// ImportDecl represents an IMPORTING statement with optional actuals.
type ImportDecl struct {
	Name    *Ident
	Actuals []Expr
	Docs    []*DocComment
	span    lexer.Span
}

// Span returns the import span.
func (d *ImportDecl) Span() lexer.Span { return d.span }

// NewImportDecl constructs an import node.
func NewImportDecl(name *Ident, actuals []Expr, span lexer.Span) *ImportDecl {
	return &ImportDecl{Name: name, Actuals: actuals, span: span}
}

// AttachDoc appends a documentation comment.
func (d *ImportDecl) AttachDoc(doc *DocComment) { d.Docs = append(d.Docs, doc) }

// TypeDecl represents `name: TYPE` with an optional definition.
type TypeDecl struct {
	Name *Ident
	Def  TypeExpr // nil for an uninterpreted type
	Docs []*DocComment
	span lexer.Span
}

// Span returns the declaration span.
func (d *TypeDecl) Span() lexer.Span { return d.span }

// NewTypeDecl constructs a type declaration node.
func NewTypeDecl(name *Ident, def TypeExpr, span lexer.Span) *TypeDecl {
	return &TypeDecl{Name: name, Def: def, span: span}
}

// SetSpan updates the declaration span.
func (d *TypeDecl) SetSpan(span lexer.Span) { d.span = span }

// DeclName returns the declared identifier.
func (d *TypeDecl) DeclName() *Ident { return d.Name }

// AttachDoc appends a documentation comment.
func (d *TypeDecl) AttachDoc(doc *DocComment) { d.Docs = append(d.Docs, doc) }

func (*TypeDecl) declNode() {}

// VarDecl represents a logical variable declaration `x: VAR T`.
type VarDecl struct {
	Name *Ident
	Type TypeExpr
	Docs []*DocComment
	span lexer.Span
}

// Span returns the declaration span.
func (d *VarDecl) Span() lexer.Span { return d.span }

// NewVarDecl constructs a variable declaration node.
func NewVarDecl(name *Ident, typ TypeExpr, span lexer.Span) *VarDecl {
	return &VarDecl{Name: name, Type: typ, span: span}
}

// DeclName returns the declared identifier.
func (d *VarDecl) DeclName() *Ident { return d.Name }

// AttachDoc appends a documentation comment.
func (d *VarDecl) AttachDoc(doc *DocComment) { d.Docs = append(d.Docs, doc) }

func (*VarDecl) declNode() {}

// ConstDecl represents a constant or function definition. Clauses holds the
// curried parameter groups in order; an empty Clauses with a nil Body is an
// uninterpreted constant.
type ConstDecl struct {
	Name       *Ident
	Clauses    []*ParamClause
	ReturnType TypeExpr // nil when omitted
	Body       Expr     // nil for an uninterpreted constant
	Docs       []*DocComment
	span       lexer.Span
}

// Span returns the declaration span.
func (d *ConstDecl) Span() lexer.Span { return d.span }

// NewConstDecl constructs a constant/function declaration node.
func NewConstDecl(name *Ident, clauses []*ParamClause, ret TypeExpr, body Expr, span lexer.Span) *ConstDecl {
	return &ConstDecl{
		Name:       name,
		Clauses:    clauses,
		ReturnType: ret,
		Body:       body,
		span:       span,
	}
}

// SetSpan updates the declaration span.
func (d *ConstDecl) SetSpan(span lexer.Span) { d.span = span }

// DeclName returns the declared identifier.
func (d *ConstDecl) DeclName() *Ident { return d.Name }

// AttachDoc appends a documentation comment.
func (d *ConstDecl) AttachDoc(doc *DocComment) { d.Docs = append(d.Docs, doc) }

func (*ConstDecl) declNode() {}

// FormulaKind distinguishes the formula-introducing keywords.
type FormulaKind string

const (
	FormulaLemma      FormulaKind = "LEMMA"
	FormulaAxiom      FormulaKind = "AXIOM"
	FormulaAssumption FormulaKind = "ASSUMPTION"
)

// FormulaDecl represents a named formula: `name: LEMMA expr` and friends.
type FormulaDecl struct {
	Name *Ident
	Kind FormulaKind
	Body Expr
	Docs []*DocComment
	span lexer.Span
}

// Span returns the declaration span.
func (d *FormulaDecl) Span() lexer.Span { return d.span }

// NewFormulaDecl constructs a formula declaration node.
func NewFormulaDecl(name *Ident, kind FormulaKind, body Expr, span lexer.Span) *FormulaDecl {
	return &FormulaDecl{Name: name, Kind: kind, Body: body, span: span}
}

// DeclName returns the declared identifier.
func (d *FormulaDecl) DeclName() *Ident { return d.Name }

// AttachDoc appends a documentation comment.
func (d *FormulaDecl) AttachDoc(doc *DocComment) { d.Docs = append(d.Docs, doc) }

func (*FormulaDecl) declNode() {}

// Ident represents an identifier.
type Ident struct {
	Name string
	span lexer.Span
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{Name: name, span: span}
}

// SetSpan updates the identifier span.
func (i *Ident) SetSpan(span lexer.Span) { i.span = span }

func (*Ident) exprNode() {}
