package parser_test

import (
	"fmt"
	"testing"

	"github.com/theorylang/theorylang/internal/ast"
	"github.com/theorylang/theorylang/internal/parser"
)

func parseTheory(t *testing.T, src string) (*ast.Theory, []parser.ParseError) {
	t.Helper()

	p := parser.New(src)
	thy := p.ParseTheory()
	if thy == nil {
		t.Fatalf("ParseTheory returned nil theory for %q", src)
	}
	return thy, p.Errors()
}

func assertNoErrors(t *testing.T, errs []parser.ParseError) {
	t.Helper()

	for _, e := range errs {
		t.Errorf("unexpected parse error at %d:%d: %s", e.Span.Line, e.Span.Column, e.Message)
	}
	if len(errs) > 0 {
		t.FailNow()
	}
}

func parseClean(t *testing.T, src string) *ast.Theory {
	t.Helper()

	thy, errs := parseTheory(t, src)
	assertNoErrors(t, errs)
	return thy
}

// parseBody wraps an expression in a minimal theory and returns the parsed
// definition body.
func parseBody(t *testing.T, expr string) ast.Expr {
	t.Helper()

	thy := parseClean(t, "t: THEORY BEGIN x: nat = "+expr+" END t")
	if len(thy.Decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(thy.Decls))
	}
	cd, ok := thy.Decls[0].(*ast.ConstDecl)
	if !ok {
		t.Fatalf("expected *ast.ConstDecl, got %T", thy.Decls[0])
	}
	if cd.Body == nil {
		t.Fatalf("expected a definition body for %q", expr)
	}
	return cd.Body
}

func TestMinimalTheory(t *testing.T) {
	thy := parseClean(t, "f_th[m: posnat]: THEORY BEGIN x: nat = 0 END f_th")

	if thy.Name.Name != "f_th" {
		t.Errorf("expected theory name f_th, got %q", thy.Name.Name)
	}
	if len(thy.Params) != 1 {
		t.Fatalf("expected 1 formal parameter, got %d", len(thy.Params))
	}
	if thy.Params[0].Name.Name != "m" {
		t.Errorf("expected parameter m, got %q", thy.Params[0].Name.Name)
	}
	pt, ok := thy.Params[0].Type.(*ast.NamedType)
	if !ok || pt.Name.Name != "posnat" {
		t.Errorf("expected parameter type posnat, got %v", thy.Params[0].Type)
	}
	if len(thy.Decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(thy.Decls))
	}
	if thy.EndName == nil || thy.EndName.Name != "f_th" {
		t.Errorf("expected closing name f_th, got %v", thy.EndName)
	}
}

func TestTheoryWithoutParams(t *testing.T) {
	thy := parseClean(t, "t: THEORY BEGIN END t")

	if len(thy.Params) != 0 {
		t.Errorf("expected no formal parameters, got %d", len(thy.Params))
	}
	if len(thy.Decls) != 0 {
		t.Errorf("expected empty body, got %d declarations", len(thy.Decls))
	}
}

func TestSubtypeFormalParameter(t *testing.T) {
	thy := parseClean(t, "t[m: {n: nat | n > 0}]: THEORY BEGIN END t")

	st, ok := thy.Params[0].Type.(*ast.SubtypeExpr)
	if !ok {
		t.Fatalf("expected *ast.SubtypeExpr, got %T", thy.Params[0].Type)
	}
	if st.Binder.Name != "n" {
		t.Errorf("expected binder n, got %q", st.Binder.Name)
	}
	if base, ok := st.Base.(*ast.NamedType); !ok || base.Name.Name != "nat" {
		t.Errorf("expected base type nat, got %v", st.Base)
	}
	if _, ok := st.Pred.(*ast.InfixExpr); !ok {
		t.Errorf("expected infix predicate, got %T", st.Pred)
	}
}

func TestDuplicateFormalParameter(t *testing.T) {
	_, errs := parseTheory(t, "t[m: nat, m: bool]: THEORY BEGIN END t")

	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if len(errs[0].Related) != 1 {
		t.Errorf("expected a related span pointing at the first binding")
	}
}

func TestEndNameMismatch(t *testing.T) {
	thy, errs := parseTheory(t, "f_th: THEORY BEGIN x: nat = 0 END g_th")

	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	if len(thy.Decls) != 1 {
		t.Errorf("declarations should survive the mismatch, got %d", len(thy.Decls))
	}
	if len(errs[0].Related) != 1 {
		t.Errorf("expected a related span pointing at the opening name")
	}
}

func TestImporting(t *testing.T) {
	thy := parseClean(t, `
t: THEORY
BEGIN
  IMPORTING rates
  IMPORTING limits[max, 2]
  x: nat = 0
END t`)

	if len(thy.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(thy.Imports))
	}
	if thy.Imports[0].Name.Name != "rates" || len(thy.Imports[0].Actuals) != 0 {
		t.Errorf("unexpected first import: %v", thy.Imports[0])
	}
	if thy.Imports[1].Name.Name != "limits" || len(thy.Imports[1].Actuals) != 2 {
		t.Errorf("unexpected second import: %v", thy.Imports[1])
	}
}

func TestAssumingBlock(t *testing.T) {
	thy := parseClean(t, `
t[m: nat]: THEORY
BEGIN
  ASSUMING
    nonzero: ASSUMPTION m > 0
  ENDASSUMING
  x: nat = m
END t`)

	if len(thy.Assumes) != 1 {
		t.Fatalf("expected 1 assumption, got %d", len(thy.Assumes))
	}
	a := thy.Assumes[0]
	if a.Name.Name != "nonzero" || a.Kind != ast.FormulaAssumption {
		t.Errorf("unexpected assumption %q kind %v", a.Name.Name, a.Kind)
	}
	if len(thy.Decls) != 1 {
		t.Errorf("expected 1 declaration after the block, got %d", len(thy.Decls))
	}
}

func TestAssumingBlockRejectsNonAssumptions(t *testing.T) {
	_, errs := parseTheory(t, `
t: THEORY
BEGIN
  ASSUMING
    x: nat = 0
  ENDASSUMING
END t`)

	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
}

func TestTypeDeclarations(t *testing.T) {
	thy := parseClean(t, `
t: THEORY
BEGIN
  state: TYPE
  level: TYPE = {n: nat | n <= 100}
  readings: TYPE = [# level: nat, rate: nat #]
  update: TYPE = [readings, nat -> readings]
END t`)

	if len(thy.Decls) != 4 {
		t.Fatalf("expected 4 declarations, got %d", len(thy.Decls))
	}

	td0 := thy.Decls[0].(*ast.TypeDecl)
	if td0.Def != nil {
		t.Errorf("expected uninterpreted type, got definition %v", td0.Def)
	}

	td1 := thy.Decls[1].(*ast.TypeDecl)
	if _, ok := td1.Def.(*ast.SubtypeExpr); !ok {
		t.Errorf("expected subtype definition, got %T", td1.Def)
	}

	td2 := thy.Decls[2].(*ast.TypeDecl)
	rt, ok := td2.Def.(*ast.RecordType)
	if !ok {
		t.Fatalf("expected record type, got %T", td2.Def)
	}
	if len(rt.Fields) != 2 || rt.Fields[0].Name.Name != "level" || rt.Fields[1].Name.Name != "rate" {
		t.Errorf("unexpected record fields: %v", rt.Fields)
	}

	td3 := thy.Decls[3].(*ast.TypeDecl)
	ft, ok := td3.Def.(*ast.FuncType)
	if !ok {
		t.Fatalf("expected function type, got %T", td3.Def)
	}
	if len(ft.Domain) != 2 {
		t.Errorf("expected 2 domain types, got %d", len(ft.Domain))
	}
}

func TestDuplicateRecordField(t *testing.T) {
	_, errs := parseTheory(t, `
t: THEORY
BEGIN
  s: TYPE = [# a: nat, a: bool #]
END t`)

	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
}

func TestVarAndUninterpretedConst(t *testing.T) {
	thy := parseClean(t, `
t: THEORY
BEGIN
  st: VAR state
  cap: nat
END t`)

	vd, ok := thy.Decls[0].(*ast.VarDecl)
	if !ok || vd.Name.Name != "st" {
		t.Fatalf("expected VAR declaration st, got %T", thy.Decls[0])
	}

	cd, ok := thy.Decls[1].(*ast.ConstDecl)
	if !ok || cd.Name.Name != "cap" {
		t.Fatalf("expected constant declaration cap, got %T", thy.Decls[1])
	}
	if cd.Body != nil {
		t.Errorf("expected uninterpreted constant, got body %v", cd.Body)
	}
}

func TestCurriedDefinition(t *testing.T) {
	thy := parseClean(t, `
t: THEORY
BEGIN
  infuse(r: rate)(st: state): state = st WITH [level := st`+"`"+`level]
END t`)

	cd, ok := thy.Decls[0].(*ast.ConstDecl)
	if !ok {
		t.Fatalf("expected *ast.ConstDecl, got %T", thy.Decls[0])
	}
	if len(cd.Clauses) != 2 {
		t.Fatalf("expected 2 parameter clauses, got %d", len(cd.Clauses))
	}
	if cd.Clauses[0].Params[0].Name.Name != "r" || cd.Clauses[1].Params[0].Name.Name != "st" {
		t.Errorf("unexpected clause parameters: %v", cd.Clauses)
	}
	if rt, ok := cd.ReturnType.(*ast.NamedType); !ok || rt.Name.Name != "state" {
		t.Errorf("expected return type state, got %v", cd.ReturnType)
	}
	if _, ok := cd.Body.(*ast.UpdateExpr); !ok {
		t.Errorf("expected WITH update body, got %T", cd.Body)
	}
}

func TestFormulaDeclarations(t *testing.T) {
	thy := parseClean(t, `
t: THEORY
BEGIN
  safe: LEMMA FORALL (st: state): level(st) >= 0
  base: AXIOM level(init) = 0
END t`)

	f0 := thy.Decls[0].(*ast.FormulaDecl)
	if f0.Kind != ast.FormulaLemma {
		t.Errorf("expected LEMMA, got %v", f0.Kind)
	}
	q, ok := f0.Body.(*ast.QuantExpr)
	if !ok || q.Kind != ast.QuantForall {
		t.Fatalf("expected universal quantifier body, got %T", f0.Body)
	}
	if len(q.Bindings) != 1 || q.Bindings[0].Name.Name != "st" {
		t.Errorf("unexpected bindings: %v", q.Bindings)
	}

	f1 := thy.Decls[1].(*ast.FormulaDecl)
	if f1.Kind != ast.FormulaAxiom {
		t.Errorf("expected AXIOM, got %v", f1.Kind)
	}
}

func TestRecoveryFromUnterminatedExpression(t *testing.T) {
	thy, errs := parseTheory(t, "f_th: THEORY BEGIN x: nat = (1 + END f_th")

	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	if thy.Name.Name != "f_th" {
		t.Errorf("theory header should survive, got %q", thy.Name.Name)
	}
	if thy.EndName == nil || thy.EndName.Name != "f_th" {
		t.Errorf("recovery should reach the END clause, got %v", thy.EndName)
	}
}

func TestRecoveryResumesAtNextDeclaration(t *testing.T) {
	thy, errs := parseTheory(t, `
t: THEORY
BEGIN
  x: nat = (1 +
  y: nat = 2
END t`)

	if len(errs) == 0 {
		t.Fatal("expected at least one error")
	}
	var names []string
	for _, d := range thy.Decls {
		if n := d.DeclName(); n != nil {
			names = append(names, n.Name)
		}
	}
	found := false
	for _, n := range names {
		if n == "y" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected recovery to parse declaration y, got %v", names)
	}
}

func TestSemicolonSeparators(t *testing.T) {
	thy := parseClean(t, "t: THEORY BEGIN x: nat = 0; y: nat = 1; END t")

	if len(thy.Decls) != 2 {
		t.Errorf("expected 2 declarations, got %d", len(thy.Decls))
	}
}

func TestParseSameInputTwice(t *testing.T) {
	src := `
t[m: nat]: THEORY
BEGIN
  IMPORTING rates[m]
  x: nat = IF m > 0 THEN m ELSE 0 ENDIF
END t`

	first := parseClean(t, src)
	second := parseClean(t, src)

	var a, b []string
	for n := range ast.Preorder(first) {
		a = append(a, describeNode(n))
	}
	for n := range ast.Preorder(second) {
		b = append(b, describeNode(n))
	}
	if len(a) != len(b) {
		t.Fatalf("node counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("node %d differs: %q vs %q", i, a[i], b[i])
		}
	}
}

func describeNode(n ast.Node) string {
	sp := n.Span()
	return fmt.Sprintf("%T@%d:%d[%d,%d)", n, sp.Line, sp.Column, sp.Start, sp.End)
}
