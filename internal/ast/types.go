package ast

import "github.com/theorylang/theorylang/internal/lexer"

// NamedType represents a type-name reference, possibly with actual
// parameters: nat, infusion_state, set[nat].
type NamedType struct {
	Name    *Ident
	Actuals []Expr
	span    lexer.Span
}

// Span returns the type span.
func (t *NamedType) Span() lexer.Span { return t.span }

// NewNamedType constructs a named type reference.
func NewNamedType(name *Ident, actuals []Expr, span lexer.Span) *NamedType {
	return &NamedType{Name: name, Actuals: actuals, span: span}
}

// SetSpan updates the type span.
func (t *NamedType) SetSpan(span lexer.Span) { t.span = span }

func (*NamedType) typeNode() {}

// FieldDecl is one field of a record type.
type FieldDecl struct {
	Name *Ident
	Type TypeExpr
	span lexer.Span
}

// Span returns the field span.
func (f *FieldDecl) Span() lexer.Span { return f.span }

// NewFieldDecl constructs a record-type field.
func NewFieldDecl(name *Ident, typ TypeExpr, span lexer.Span) *FieldDecl {
	return &FieldDecl{Name: name, Type: typ, span: span}
}

// RecordType represents `[# f1: T1, ..., fn: Tn #]`. Field order is the
// source order.
type RecordType struct {
	Fields []*FieldDecl
	span   lexer.Span
}

// Span returns the type span.
func (t *RecordType) Span() lexer.Span { return t.span }

// NewRecordType constructs a record type.
func NewRecordType(fields []*FieldDecl, span lexer.Span) *RecordType {
	return &RecordType{Fields: fields, span: span}
}

func (*RecordType) typeNode() {}

// SubtypeExpr represents a predicate subtype `{x: T | pred}`: Base restricted
// to the elements for which Pred holds, with Binder naming the element.
type SubtypeExpr struct {
	Binder *Ident
	Base   TypeExpr
	Pred   Expr
	span   lexer.Span
}

// Span returns the type span.
func (t *SubtypeExpr) Span() lexer.Span { return t.span }

// NewSubtypeExpr constructs a predicate subtype.
func NewSubtypeExpr(binder *Ident, base TypeExpr, pred Expr, span lexer.Span) *SubtypeExpr {
	return &SubtypeExpr{Binder: binder, Base: base, Pred: pred, span: span}
}

func (*SubtypeExpr) typeNode() {}

// FuncType represents a function type `[D1, ..., Dn -> R]`.
type FuncType struct {
	Domain []TypeExpr
	Range  TypeExpr
	span   lexer.Span
}

// Span returns the type span.
func (t *FuncType) Span() lexer.Span { return t.span }

// NewFuncType constructs a function type.
func NewFuncType(domain []TypeExpr, rng TypeExpr, span lexer.Span) *FuncType {
	return &FuncType{Domain: domain, Range: rng, span: span}
}

func (*FuncType) typeNode() {}
