package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/theorylang/theorylang/internal/ast"
)

// dumpTree prints the syntax tree one node per line, indented by nesting.
// Spans nest properly, so a stack of end offsets recovers the depth from the
// flat preorder sequence.
func dumpTree(w io.Writer, root ast.Node) {
	var ends []int

	for node := range ast.Preorder(root) {
		span := node.Span()
		for len(ends) > 0 && ends[len(ends)-1] <= span.Start {
			ends = ends[:len(ends)-1]
		}

		fmt.Fprintf(w, "%s%s @ %d:%d\n", strings.Repeat("  ", len(ends)), describe(node), span.Line, span.Column)

		ends = append(ends, span.End)
	}
}

func describe(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Theory:
		if n.Name != nil {
			return "Theory " + n.Name.Name
		}
		return "Theory"
	case *ast.Ident:
		return "Ident " + n.Name
	case *ast.NumberLit:
		return "Number " + n.Text
	case *ast.BoolLit:
		return fmt.Sprintf("Bool %t", n.Value)
	case *ast.PrefixExpr:
		return "Prefix " + string(n.Op)
	case *ast.InfixExpr:
		return "Infix " + string(n.Op)
	case *ast.ApplyExpr:
		return "Apply"
	case *ast.ProjExpr:
		return "Proj"
	case *ast.RecordLit:
		return "RecordLit"
	case *ast.UpdateExpr:
		return "Update"
	case *ast.FieldAssign:
		return "FieldAssign " + n.Name.Name
	case *ast.IfExpr:
		return "If"
	case *ast.CondExpr:
		return "Cond"
	case *ast.CondBranch:
		if n.IsElse() {
			return "Branch ELSE"
		}
		return "Branch"
	case *ast.LetExpr:
		return "Let " + n.Name.Name
	case *ast.QuantExpr:
		return "Quant " + string(n.Kind)
	case *ast.Param:
		return "Param " + n.Name.Name
	case *ast.ParamClause:
		return "ParamClause"
	case *ast.ImportDecl:
		return "Importing " + n.Name.Name
	case *ast.TypeDecl:
		return "TypeDecl " + n.Name.Name
	case *ast.VarDecl:
		return "VarDecl " + n.Name.Name
	case *ast.ConstDecl:
		return "ConstDecl " + n.Name.Name
	case *ast.FormulaDecl:
		return string(n.Kind) + " " + n.Name.Name
	case *ast.NamedType:
		return "NamedType " + n.Name.Name
	case *ast.RecordType:
		return "RecordType"
	case *ast.FieldDecl:
		return "Field " + n.Name.Name
	case *ast.SubtypeExpr:
		return "Subtype"
	case *ast.FuncType:
		return "FuncType"
	default:
		return fmt.Sprintf("%T", node)
	}
}
