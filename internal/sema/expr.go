package sema

import (
	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/bindings"
	"github.com/kiwi-lang/kiwi/internal/diagnostics"
	"github.com/kiwi-lang/kiwi/internal/token"
)

// expr dispatches one expression and returns its resolved
// type-expression node (spec.md §9's "visitor whose return type per
// family is a type expression").
func (a *Analyzer) expr(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case nil:
		return nil
	case *ast.Name:
		return a.resolveName(n)
	case *ast.Constant:
		return a.constantType(n)
	case *ast.BinOp:
		lhs := a.expr(n.Left)
		rhs := a.expr(n.Right)
		return a.resolveBinary(n, lhs, rhs)
	case *ast.BoolOp:
		var last ast.Expression
		for _, v := range n.Values {
			last = a.expr(v)
		}
		return last
	case *ast.UnaryOp:
		operand := a.expr(n.Operand)
		return a.resolveUnary(n, operand)
	case *ast.Compare:
		lhs := a.expr(n.Left)
		var result ast.Expression = a.builtinType("bool")
		for i, cmp := range n.Comparators {
			rhs := a.expr(cmp)
			result = a.resolveCompare(n.Tok, n.Ops[i], lhs, rhs)
			lhs = rhs
		}
		return result
	case *ast.Call:
		return a.analyzeCall(n)
	case *ast.Attribute:
		return a.resolveAttribute(n)
	case *ast.Subscript:
		return a.resolveSubscript(n)
	case *ast.Slice:
		if n.Lower != nil {
			a.expr(n.Lower)
		}
		if n.Upper != nil {
			a.expr(n.Upper)
		}
		if n.Step != nil {
			a.expr(n.Step)
		}
		return nil
	case *ast.IfExp:
		a.expr(n.Test)
		bodyT := a.expr(n.Body)
		a.expr(n.OrElse)
		return bodyT
	case *ast.Lambda:
		return a.analyzeLambdaLike(n.Args, nil, n.Body)
	case *ast.NamedExpr:
		rhsT := a.expr(n.Value)
		a.defineName(n.Target, rhsT, n.Value)
		return rhsT
	case *ast.Await:
		return a.expr(n.Value)
	case *ast.Yield:
		if n.Value != nil {
			return a.expr(n.Value)
		}
		return a.builtinType("None")
	case *ast.YieldFrom:
		return a.expr(n.Value)
	case *ast.Starred:
		return a.expr(n.Value)
	case *ast.ListExpr:
		for _, elt := range n.Elts {
			a.expr(elt)
		}
		return a.arrayTypeOf(n.Tok, n.Elts)
	case *ast.TupleExpr:
		elems := make([]ast.Expression, len(n.Elts))
		for i, elt := range n.Elts {
			elems[i] = a.expr(elt)
		}
		return ast.NewTupleType(a.arena, n.Tok, elems)
	case *ast.SetExpr:
		for _, elt := range n.Elts {
			a.expr(elt)
		}
		return a.setTypeOf(n.Tok, n.Elts)
	case *ast.DictExpr:
		var keyT, valT ast.Expression
		for i, k := range n.Keys {
			if k != nil {
				keyT = a.expr(k)
			}
			valT = a.expr(n.Values[i])
		}
		if keyT == nil {
			keyT = a.builtinType("str")
		}
		if valT == nil {
			valT = a.builtinType("None")
		}
		return ast.NewDictType(a.arena, n.Tok, keyT, valT)
	case *ast.Comprehension:
		return a.analyzeComprehension(n)
	case *ast.JoinedStr:
		for _, v := range n.Values {
			a.expr(v)
		}
		return a.builtinType("str")
	case *ast.FormattedValue:
		a.expr(n.Value)
		if n.FormatSpec != nil {
			a.expr(n.FormatSpec)
		}
		return a.builtinType("str")
	case *ast.Exported:
		return a.expr(n.Value)
	default:
		a.errors.Add(diagnostics.NewSyntaxError(token.Token{}, "sema: unhandled expression kind %T", e))
		return nil
	}
}

func (a *Analyzer) resolveName(n *ast.Name) ast.Expression {
	if n.Ctx == ast.Store {
		return nil
	}
	entry, ok := a.table.Find(n.ID_)
	if !ok {
		a.errors.Add(diagnostics.NewNameError(n.Tok, n.ID_))
		return nil
	}
	n.LoadID = entry.StoreID
	if t, ok2 := entry.Type.(ast.Expression); ok2 {
		return t
	}
	return nil
}

func (a *Analyzer) constantType(n *ast.Constant) ast.Expression {
	switch n.CKind {
	case ast.ConstInt:
		return a.builtinType("i64")
	case ast.ConstFloat:
		return a.builtinType("f64")
	case ast.ConstBool:
		return a.builtinType("bool")
	case ast.ConstString:
		return a.builtinType("str")
	default:
		return a.builtinType("None")
	}
}

func (a *Analyzer) arrayTypeOf(tok token.Token, elts []ast.Expression) ast.Expression {
	elem := a.builtinType("None")
	if len(elts) > 0 {
		if t := a.expr(elts[0]); t != nil {
			elem = t
		}
	}
	return ast.NewArrayType(a.arena, tok, elem)
}

func (a *Analyzer) setTypeOf(tok token.Token, elts []ast.Expression) ast.Expression {
	elem := a.builtinType("None")
	if len(elts) > 0 {
		if t := a.expr(elts[0]); t != nil {
			elem = t
		}
	}
	return ast.NewSetType(a.arena, tok, elem)
}

func (a *Analyzer) resolveAttribute(n *ast.Attribute) ast.Expression {
	valT := a.expr(n.Value)
	ct, ok := valT.(*ast.ClassType)
	if !ok || ct.Def == nil {
		return nil
	}
	for _, attr := range ct.Def.Attributes {
		if attr.Name == n.Attr {
			n.Resolved = attr.Stmt
			return attr.Type
		}
	}
	if fn := findMethod(ct.Def, n.Attr); fn != nil {
		n.Resolved = fn
		return fn.Type
	}
	a.errors.Add(diagnostics.NewAttributeError(n.Tok, ct.Def.Name, n.Attr))
	return nil
}

func (a *Analyzer) resolveSubscript(n *ast.Subscript) ast.Expression {
	valT := a.expr(n.Value)
	a.expr(n.Slice)
	switch t := valT.(type) {
	case *ast.ArrayType:
		return t.Elem
	case *ast.DictType:
		return t.Value
	case *ast.TupleType:
		if idx, ok := n.Slice.(*ast.Constant); ok && idx.CKind == ast.ConstInt && int(idx.I) < len(t.Elems) {
			return t.Elems[idx.I]
		}
	}
	return nil
}

func (a *Analyzer) analyzeComprehension(n *ast.Comprehension) ast.Expression {
	scope := bindings.Open(a.table)
	defer scope.Close()
	for _, cl := range n.Clauses {
		iterT := a.expr(cl.Iter)
		var elemT ast.Expression
		if at, ok := iterT.(*ast.ArrayType); ok {
			elemT = at.Elem
		}
		a.bindTarget(cl.Target, elemT, nil)
		for _, cond := range cl.Ifs {
			a.expr(cond)
		}
	}
	switch n.CKind {
	case ast.CompDict:
		keyT := a.expr(n.Key)
		valT := a.expr(n.Value)
		if keyT == nil {
			keyT = a.builtinType("str")
		}
		if valT == nil {
			valT = a.builtinType("None")
		}
		return ast.NewDictType(a.arena, n.Tok, keyT, valT)
	case ast.CompSet:
		elt := a.expr(n.Elt)
		if elt == nil {
			elt = a.builtinType("None")
		}
		return ast.NewSetType(a.arena, n.Tok, elt)
	default: // CompList, CompGenerator
		elt := a.expr(n.Elt)
		if elt == nil {
			elt = a.builtinType("None")
		}
		return ast.NewArrayType(a.arena, n.Tok, elt)
	}
}
