package ops

import (
	"fmt"
	"strings"

	"github.com/kiwi-lang/kiwi/internal/ast"
)

// Lisp renders n as an s-expression dump, grounded on the original
// implementation's debug AST printer: a node becomes "(Kind field ...)"
// with scalar fields printed inline. Only part of the tree is dumped
// recursively: If and While show only their test, For only its target
// and iterable (no bodies), a Call omits its keywords, and any kind
// without its own case falls back to its kind name plus its printed
// source text. Used for diff-friendly golden-file testing.
func Lisp(n ast.Node) string {
	var sb strings.Builder
	lispNode(&sb, n)
	return sb.String()
}

func lispNode(sb *strings.Builder, n ast.Node) {
	if n == nil {
		sb.WriteString("nil")
		return
	}
	switch x := n.(type) {
	case *ast.Module:
		lispList(sb, "Module", stmts(x.Body)...)
	case *ast.FunctionDef:
		sb.WriteString("(FunctionDef " + x.Name)
		for _, s := range x.Body {
			sb.WriteByte(' ')
			lispNode(sb, s)
		}
		sb.WriteByte(')')
	case *ast.ClassDef:
		sb.WriteString("(ClassDef " + x.Name)
		for _, s := range x.Body {
			sb.WriteByte(' ')
			lispNode(sb, s)
		}
		sb.WriteByte(')')
	case *ast.Return:
		lispList(sb, "Return", exprOrNil(x.Value))
	case *ast.Assign:
		items := make([]ast.Node, 0, len(x.Targets)+1)
		for _, t := range x.Targets {
			items = append(items, t)
		}
		items = append(items, x.Value)
		lispList(sb, "Assign", items...)
	case *ast.If:
		lispList(sb, "If", x.Test)
	case *ast.While:
		lispList(sb, "While", x.Test)
	case *ast.For:
		lispList(sb, "For", x.Target, x.Iter)
	case *ast.ExprStmt:
		lispList(sb, "ExprStmt", x.Value)
	case *ast.Pass:
		sb.WriteString("(Pass)")
	case *ast.Break:
		sb.WriteString("(Break)")
	case *ast.Continue:
		sb.WriteString("(Continue)")

	case *ast.Name:
		fmt.Fprintf(sb, "(Name %s)", x.ID_)
	case *ast.Constant:
		sb.WriteString("(Constant " + constStr(x.CKind, x.I, x.F, x.B, x.S) + ")")
	case *ast.BinOp:
		fmt.Fprintf(sb, "(BinOp %s ", x.Op)
		lispNode(sb, x.Left)
		sb.WriteByte(' ')
		lispNode(sb, x.Right)
		sb.WriteByte(')')
	case *ast.BoolOp:
		sb.WriteString("(BoolOp " + x.Op)
		for _, v := range x.Values {
			sb.WriteByte(' ')
			lispNode(sb, v)
		}
		sb.WriteByte(')')
	case *ast.UnaryOp:
		fmt.Fprintf(sb, "(UnaryOp %s ", x.Op)
		lispNode(sb, x.Operand)
		sb.WriteByte(')')
	case *ast.Compare:
		sb.WriteString("(Compare ")
		lispNode(sb, x.Left)
		for i, op := range x.Ops {
			fmt.Fprintf(sb, " %s ", op)
			lispNode(sb, x.Comparators[i])
		}
		sb.WriteByte(')')
	case *ast.Call:
		sb.WriteString("(Call ")
		lispNode(sb, x.Func)
		for _, a := range x.Args {
			sb.WriteByte(' ')
			lispNode(sb, a)
		}
		sb.WriteByte(')')
	case *ast.Attribute:
		sb.WriteString("(Attribute ")
		lispNode(sb, x.Value)
		fmt.Fprintf(sb, " %s)", x.Attr)
	case *ast.Subscript:
		sb.WriteString("(Subscript ")
		lispNode(sb, x.Value)
		sb.WriteByte(' ')
		lispNode(sb, x.Slice)
		sb.WriteByte(')')
	case *ast.ListExpr:
		lispList(sb, "List", exprs(x.Elts)...)
	case *ast.TupleExpr:
		lispList(sb, "Tuple", exprs(x.Elts)...)
	case *ast.SetExpr:
		lispList(sb, "Set", exprs(x.Elts)...)
	case *ast.DictExpr:
		items := make([]ast.Node, 0, len(x.Keys)*2)
		for i := range x.Keys {
			items = append(items, exprOrNil(x.Keys[i]), x.Values[i])
		}
		lispList(sb, "Dict", items...)
	default:
		// Remaining kinds fall back to their printed surface form wrapped
		// in the kind name: sufficient for golden-dump stability without
		// hand-enumerating every rarely-exercised field shape.
		if e, ok := n.(ast.Expression); ok {
			fmt.Fprintf(sb, "(%s %q)", n.Kind(), exprStr(e))
			return
		}
		if s, ok := n.(ast.Statement); ok {
			fmt.Fprintf(sb, "(%s %q)", n.Kind(), Sprint(s))
			return
		}
		fmt.Fprintf(sb, "(%s)", n.Kind())
	}
}

func lispList(sb *strings.Builder, name string, items ...ast.Node) {
	sb.WriteString("(" + name)
	for _, it := range items {
		sb.WriteByte(' ')
		lispNode(sb, it)
	}
	sb.WriteByte(')')
}

func stmts(ss []ast.Statement) []ast.Node {
	out := make([]ast.Node, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func exprs(es []ast.Expression) []ast.Node {
	out := make([]ast.Node, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

func exprOrNil(e ast.Expression) ast.Node {
	if e == nil {
		return nil
	}
	return e
}
