package ast

import "github.com/theorylang/theorylang/internal/lexer"

// NumberLit represents a numeral. The text is kept verbatim; the grammar has
// no floats, so downstream consumers interpret it as a natural number.
type NumberLit struct {
	Text string
	span lexer.Span
}

// Span returns the literal span.
func (l *NumberLit) Span() lexer.Span { return l.span }

// NewNumberLit constructs a numeral node.
func NewNumberLit(text string, span lexer.Span) *NumberLit {
	return &NumberLit{Text: text, span: span}
}

// SetSpan updates the literal span.
func (l *NumberLit) SetSpan(span lexer.Span) { l.span = span }

func (*NumberLit) exprNode() {}

// BoolLit represents TRUE or FALSE.
type BoolLit struct {
	Value bool
	span  lexer.Span
}

// Span returns the literal span.
func (l *BoolLit) Span() lexer.Span { return l.span }

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}

// SetSpan updates the literal span.
func (l *BoolLit) SetSpan(span lexer.Span) { l.span = span }

func (*BoolLit) exprNode() {}

// PrefixExpr represents a unary operator application: NOT p, -x.
type PrefixExpr struct {
	Op   lexer.TokenType
	Expr Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *PrefixExpr) Span() lexer.Span { return e.span }

// NewPrefixExpr constructs a unary expression node.
func NewPrefixExpr(op lexer.TokenType, expr Expr, span lexer.Span) *PrefixExpr {
	return &PrefixExpr{Op: op, Expr: expr, span: span}
}

// SetSpan updates the expression span.
func (e *PrefixExpr) SetSpan(span lexer.Span) { e.span = span }

func (*PrefixExpr) exprNode() {}

// InfixExpr represents a binary operator application.
type InfixExpr struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *InfixExpr) Span() lexer.Span { return e.span }

// NewInfixExpr constructs a binary expression node.
func NewInfixExpr(op lexer.TokenType, left, right Expr, span lexer.Span) *InfixExpr {
	return &InfixExpr{Op: op, Left: left, Right: right, span: span}
}

// SetSpan updates the expression span.
func (e *InfixExpr) SetSpan(span lexer.Span) { e.span = span }

func (*InfixExpr) exprNode() {}

// ApplyExpr represents a function application. Curried applications nest:
// f(x)(y) is Apply(Apply(f, x), y).
type ApplyExpr struct {
	Fun  Expr
	Args []Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *ApplyExpr) Span() lexer.Span { return e.span }

// NewApplyExpr constructs an application node.
func NewApplyExpr(fun Expr, args []Expr, span lexer.Span) *ApplyExpr {
	return &ApplyExpr{Fun: fun, Args: args, span: span}
}

// SetSpan updates the expression span.
func (e *ApplyExpr) SetSpan(span lexer.Span) { e.span = span }

func (*ApplyExpr) exprNode() {}

// ProjExpr represents record field selection: st`level.
type ProjExpr struct {
	Target Expr
	Field  *Ident
	span   lexer.Span
}

// Span returns the expression span.
func (e *ProjExpr) Span() lexer.Span { return e.span }

// NewProjExpr constructs a field-selection node.
func NewProjExpr(target Expr, field *Ident, span lexer.Span) *ProjExpr {
	return &ProjExpr{Target: target, Field: field, span: span}
}

// SetSpan updates the expression span.
func (e *ProjExpr) SetSpan(span lexer.Span) { e.span = span }

func (*ProjExpr) exprNode() {}

// FieldAssign is one `name := expr` pair in a record literal or WITH update.
type FieldAssign struct {
	Name  *Ident
	Value Expr
	span  lexer.Span
}

// Span returns the assignment span.
func (a *FieldAssign) Span() lexer.Span { return a.span }

// NewFieldAssign constructs a field assignment.
func NewFieldAssign(name *Ident, value Expr, span lexer.Span) *FieldAssign {
	return &FieldAssign{Name: name, Value: value, span: span}
}

// RecordLit represents record construction `[# f := e, ... #]`. Duplicate
// field names are structurally legal here; flagging them is the semantic
// analyzer's job.
type RecordLit struct {
	Fields []*FieldAssign
	span   lexer.Span
}

// Span returns the expression span.
func (e *RecordLit) Span() lexer.Span { return e.span }

// NewRecordLit constructs a record construction node.
func NewRecordLit(fields []*FieldAssign, span lexer.Span) *RecordLit {
	return &RecordLit{Fields: fields, span: span}
}

// SetSpan updates the expression span.
func (e *RecordLit) SetSpan(span lexer.Span) { e.span = span }

func (*RecordLit) exprNode() {}

// UpdateExpr represents a functional update `target WITH [f := e, ...]`:
// a copy of target with the listed fields replaced, in source order.
type UpdateExpr struct {
	Target  Expr
	Assigns []*FieldAssign
	span    lexer.Span
}

// Span returns the expression span.
func (e *UpdateExpr) Span() lexer.Span { return e.span }

// NewUpdateExpr constructs a functional-update node.
func NewUpdateExpr(target Expr, assigns []*FieldAssign, span lexer.Span) *UpdateExpr {
	return &UpdateExpr{Target: target, Assigns: assigns, span: span}
}

// SetSpan updates the expression span.
func (e *UpdateExpr) SetSpan(span lexer.Span) { e.span = span }

func (*UpdateExpr) exprNode() {}

// IfExpr represents `IF c THEN a ELSE b ENDIF`. ELSIF chains parse into a
// nested IfExpr in the Else position.
type IfExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *IfExpr) Span() lexer.Span { return e.span }

// NewIfExpr constructs a conditional node.
func NewIfExpr(cond, then, els Expr, span lexer.Span) *IfExpr {
	return &IfExpr{Cond: cond, Then: then, Else: els, span: span}
}

// SetSpan updates the expression span.
func (e *IfExpr) SetSpan(span lexer.Span) { e.span = span }

func (*IfExpr) exprNode() {}

// CondBranch is one `guard -> result` pair. A nil Guard is the ELSE branch.
type CondBranch struct {
	Guard Expr // nil for ELSE
	Body  Expr
	span  lexer.Span
}

// Span returns the branch span.
func (b *CondBranch) Span() lexer.Span { return b.span }

// NewCondBranch constructs a COND branch.
func NewCondBranch(guard, body Expr, span lexer.Span) *CondBranch {
	return &CondBranch{Guard: guard, Body: body, span: span}
}

// IsElse reports whether the branch is the unconditional catch-all.
func (b *CondBranch) IsElse() bool { return b.Guard == nil }

// CondExpr represents `COND b1, ..., bn ENDCOND`. Branch order is source
// order; it is meaningful downstream, where the first matching guard wins.
type CondExpr struct {
	Branches []*CondBranch
	span     lexer.Span
}

// Span returns the expression span.
func (e *CondExpr) Span() lexer.Span { return e.span }

// NewCondExpr constructs a multi-branch conditional node.
func NewCondExpr(branches []*CondBranch, span lexer.Span) *CondExpr {
	return &CondExpr{Branches: branches, span: span}
}

// SetSpan updates the expression span.
func (e *CondExpr) SetSpan(span lexer.Span) { e.span = span }

func (*CondExpr) exprNode() {}

// LetExpr represents `LET x [: T] = value IN body`.
type LetExpr struct {
	Name  *Ident
	Type  TypeExpr // nil when omitted
	Value Expr
	Body  Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *LetExpr) Span() lexer.Span { return e.span }

// NewLetExpr constructs a let-binding node.
func NewLetExpr(name *Ident, typ TypeExpr, value, body Expr, span lexer.Span) *LetExpr {
	return &LetExpr{Name: name, Type: typ, Value: value, Body: body, span: span}
}

// SetSpan updates the expression span.
func (e *LetExpr) SetSpan(span lexer.Span) { e.span = span }

func (*LetExpr) exprNode() {}

// QuantKind distinguishes the quantifier keywords.
type QuantKind string

const (
	QuantForall QuantKind = "FORALL"
	QuantExists QuantKind = "EXISTS"
)

// QuantExpr represents `FORALL (x: T, ...): body` or the EXISTS form.
type QuantExpr struct {
	Kind     QuantKind
	Bindings []*Param
	Body     Expr
	span     lexer.Span
}

// Span returns the expression span.
func (e *QuantExpr) Span() lexer.Span { return e.span }

// NewQuantExpr constructs a quantified expression node.
func NewQuantExpr(kind QuantKind, bindings []*Param, body Expr, span lexer.Span) *QuantExpr {
	return &QuantExpr{Kind: kind, Bindings: bindings, Body: body, span: span}
}

// SetSpan updates the expression span.
func (e *QuantExpr) SetSpan(span lexer.Span) { e.span = span }

func (*QuantExpr) exprNode() {}
