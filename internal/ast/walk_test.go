package ast_test

import (
	"testing"

	"github.com/theorylang/theorylang/internal/ast"
	"github.com/theorylang/theorylang/internal/parser"
)

func parseClean(t *testing.T, src string) *ast.Theory {
	t.Helper()

	p := parser.New(src)
	thy := p.ParseTheory()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return thy
}

func TestWalkVisitsInSourceOrder(t *testing.T) {
	thy := parseClean(t, "t[m: nat]: THEORY BEGIN x: nat = m + 1 END t")

	var idents []string
	ast.Walk(thy, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			idents = append(idents, id.Name)
		}
		return true
	})

	want := []string{"t", "m", "nat", "x", "nat", "m", "t"}
	if len(idents) != len(want) {
		t.Fatalf("expected %d identifiers, got %d: %v", len(want), len(idents), idents)
	}
	for i := range want {
		if idents[i] != want[i] {
			t.Errorf("identifier %d: expected %q, got %q", i, want[i], idents[i])
		}
	}
}

func TestWalkPrunesBranch(t *testing.T) {
	thy := parseClean(t, "t: THEORY BEGIN x: nat = 1 + 2 END t")

	var visitedNumber bool
	ast.Walk(thy, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.InfixExpr:
			return false
		case *ast.NumberLit:
			visitedNumber = true
		}
		return true
	})

	if visitedNumber {
		t.Error("pruned branch should not be visited")
	}
}

func TestPreorderMatchesWalk(t *testing.T) {
	thy := parseClean(t, `
t: THEORY
BEGIN
  s: TYPE = [# a: nat, b: nat #]
  f(x: nat): nat = IF x > 0 THEN x ELSE 0 ENDIF
END t`)

	var walked []ast.Node
	ast.Walk(thy, func(n ast.Node) bool {
		walked = append(walked, n)
		return true
	})

	var iterated []ast.Node
	for n := range ast.Preorder(thy) {
		iterated = append(iterated, n)
	}

	if len(walked) != len(iterated) {
		t.Fatalf("expected %d nodes, got %d", len(walked), len(iterated))
	}
	for i := range walked {
		if walked[i] != iterated[i] {
			t.Errorf("node %d differs: %T vs %T", i, walked[i], iterated[i])
		}
	}
}

func TestPreorderEarlyStop(t *testing.T) {
	thy := parseClean(t, "t: THEORY BEGIN x: nat = 1 + 2 END t")

	var count int
	for range ast.Preorder(thy) {
		count++
		if count == 3 {
			break
		}
	}

	if count != 3 {
		t.Errorf("expected iteration to stop at 3 nodes, got %d", count)
	}
}

func TestSpansNestWithinParents(t *testing.T) {
	thy := parseClean(t, "t: THEORY BEGIN x: nat = 1 + 2 END t")

	root := thy.Span()
	for n := range ast.Preorder(thy) {
		sp := n.Span()
		if sp.Start < root.Start || sp.End > root.End {
			t.Errorf("%T span [%d,%d) escapes theory span [%d,%d)", n, sp.Start, sp.End, root.Start, root.End)
		}
	}
}
