package ast

// Walk traverses the AST starting from node in source order, calling fn for
// each node. If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Theory:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, param := range n.Params {
			Walk(param, fn)
		}
		for _, assume := range n.Assumes {
			Walk(assume, fn)
		}
		for _, imp := range n.Imports {
			Walk(imp, fn)
		}
		for _, decl := range n.Decls {
			Walk(decl, fn)
		}
		if n.EndName != nil {
			Walk(n.EndName, fn)
		}

	case *Param:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Type != nil {
			Walk(n.Type, fn)
		}

	case *ParamClause:
		for _, param := range n.Params {
			Walk(param, fn)
		}

	case *ImportDecl:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, actual := range n.Actuals {
			Walk(actual, fn)
		}

	case *TypeDecl:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Def != nil {
			Walk(n.Def, fn)
		}

	case *VarDecl:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Type != nil {
			Walk(n.Type, fn)
		}

	case *ConstDecl:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, clause := range n.Clauses {
			Walk(clause, fn)
		}
		if n.ReturnType != nil {
			Walk(n.ReturnType, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *FormulaDecl:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *NamedType:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, actual := range n.Actuals {
			Walk(actual, fn)
		}

	case *RecordType:
		for _, field := range n.Fields {
			Walk(field, fn)
		}

	case *FieldDecl:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Type != nil {
			Walk(n.Type, fn)
		}

	case *SubtypeExpr:
		if n.Binder != nil {
			Walk(n.Binder, fn)
		}
		if n.Base != nil {
			Walk(n.Base, fn)
		}
		if n.Pred != nil {
			Walk(n.Pred, fn)
		}

	case *FuncType:
		for _, dom := range n.Domain {
			Walk(dom, fn)
		}
		if n.Range != nil {
			Walk(n.Range, fn)
		}

	case *PrefixExpr:
		if n.Expr != nil {
			Walk(n.Expr, fn)
		}

	case *InfixExpr:
		if n.Left != nil {
			Walk(n.Left, fn)
		}
		if n.Right != nil {
			Walk(n.Right, fn)
		}

	case *ApplyExpr:
		if n.Fun != nil {
			Walk(n.Fun, fn)
		}
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *ProjExpr:
		if n.Target != nil {
			Walk(n.Target, fn)
		}
		if n.Field != nil {
			Walk(n.Field, fn)
		}

	case *RecordLit:
		for _, field := range n.Fields {
			Walk(field, fn)
		}

	case *UpdateExpr:
		if n.Target != nil {
			Walk(n.Target, fn)
		}
		for _, assign := range n.Assigns {
			Walk(assign, fn)
		}

	case *FieldAssign:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *IfExpr:
		if n.Cond != nil {
			Walk(n.Cond, fn)
		}
		if n.Then != nil {
			Walk(n.Then, fn)
		}
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *CondExpr:
		for _, branch := range n.Branches {
			Walk(branch, fn)
		}

	case *CondBranch:
		if n.Guard != nil {
			Walk(n.Guard, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *LetExpr:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		if n.Value != nil {
			Walk(n.Value, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *QuantExpr:
		for _, binding := range n.Bindings {
			Walk(binding, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	// Leaf nodes don't need traversal
	case *Ident, *NumberLit, *BoolLit, *DocComment:
	}
}
