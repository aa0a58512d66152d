package evaluator

import (
	"strings"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/optable"
	"github.com/kiwi-lang/kiwi/internal/token"
	"github.com/kiwi-lang/kiwi/internal/values"
)

// eval dispatches one expression, returning its runtime Value. An
// exhaustive type switch per spec.md §3's closed Expression family,
// mirroring internal/sema/expr.go's shape but producing a Value instead
// of a type-expression node.
func (e *Evaluator) eval(expr ast.Expression, f *Frame) values.Value {
	switch n := expr.(type) {
	case nil:
		return values.None()
	case *ast.Constant:
		return e.evalConstant(n)
	case *ast.Name:
		if v, ok := f.Get(n.ID_); ok {
			return v
		}
		if v, ok := e.global.Get(n.ID_); ok {
			return v
		}
		e.raiseNameError(n.Tok, n.ID_)
		return values.None()
	case *ast.BinOp:
		return e.evalBinOp(n, f)
	case *ast.BoolOp:
		return e.evalBoolOp(n, f)
	case *ast.UnaryOp:
		return e.evalUnaryOp(n, f)
	case *ast.Compare:
		return e.evalCompare(n, f)
	case *ast.Call:
		return e.evalCall(n, f)
	case *ast.Attribute:
		return e.evalAttribute(n, f)
	case *ast.Subscript:
		return e.evalSubscript(n, f)
	case *ast.IfExp:
		if truthy(e.eval(n.Test, f)) {
			return e.eval(n.Body, f)
		}
		return e.eval(n.OrElse, f)
	case *ast.Lambda:
		return e.makeClosure("<lambda>", n.Args, []ast.Statement{}, n.Body, f)
	case *ast.NamedExpr:
		v := e.eval(n.Value, f)
		f.Set(n.Target.ID_, v)
		return v
	case *ast.Await:
		return e.eval(n.Value, f)
	case *ast.Yield:
		if n.Value != nil {
			return e.eval(n.Value, f)
		}
		return values.None()
	case *ast.YieldFrom:
		return e.eval(n.Value, f)
	case *ast.Starred:
		return e.eval(n.Value, f)
	case *ast.ListExpr:
		elems := make([]values.Value, len(n.Elts))
		for i, elt := range n.Elts {
			elems[i] = e.eval(elt, f)
		}
		return values.NewList(elems)
	case *ast.TupleExpr:
		elems := make([]values.Value, len(n.Elts))
		for i, elt := range n.Elts {
			elems[i] = e.eval(elt, f)
		}
		return values.NewList(elems)
	case *ast.SetExpr:
		elems := make([]values.Value, len(n.Elts))
		for i, elt := range n.Elts {
			elems[i] = e.eval(elt, f)
		}
		return values.NewList(elems)
	case *ast.DictExpr:
		d := values.NewDict()
		for i, k := range n.Keys {
			if k == nil {
				continue // **spread, no evaluator support yet
			}
			d.Set(e.eval(k, f), e.eval(n.Values[i], f))
		}
		return values.FromObject(0, d)
	case *ast.Slice:
		return values.None()
	case *ast.JoinedStr:
		var b strings.Builder
		for _, v := range n.Values {
			b.WriteString(values.Inspect(e.eval(v, f)))
		}
		return values.NewStr(b.String())
	case *ast.FormattedValue:
		return values.NewStr(values.Inspect(e.eval(n.Value, f)))
	case *ast.Exported:
		return e.eval(n.Value, f)
	case *ast.Comprehension:
		return e.evalComprehension(n, f)
	default:
		e.raise(values.NewStr("RuntimeError: unhandled expression kind"))
		return values.None()
	}
}

func (e *Evaluator) evalConstant(n *ast.Constant) values.Value {
	switch n.CKind {
	case ast.ConstInt:
		return values.I64(n.I)
	case ast.ConstFloat:
		return values.F64(n.F)
	case ast.ConstBool:
		return values.Bool(n.B)
	case ast.ConstString:
		return values.NewStr(n.S)
	default:
		return values.None()
	}
}

func truthy(v values.Value) bool {
	switch v.Tag {
	case values.TagNone:
		return false
	case values.TagBool:
		return v.AsBool()
	case values.TagObject:
		switch o := v.Obj.(type) {
		case *values.Str:
			return o.Value != ""
		case *values.List:
			return len(o.Elems) > 0
		case *values.Dict:
			return len(o.Keys) > 0
		default:
			return true
		}
	case values.TagF32, values.TagF64:
		return v.AsFloat64() != 0
	default:
		return v.AsInt() != 0
	}
}

func (e *Evaluator) evalBoolOp(n *ast.BoolOp, f *Frame) values.Value {
	var last values.Value
	for _, val := range n.Values {
		last = e.eval(val, f)
		if n.Native == optable.LogicAnd && !truthy(last) {
			return last
		}
		if n.Native == optable.LogicOr && truthy(last) {
			return last
		}
	}
	return last
}

func (e *Evaluator) evalUnaryOp(n *ast.UnaryOp, f *Frame) values.Value {
	v := e.eval(n.Operand, f)
	switch n.NativeOp {
	case optable.Not:
		return values.Bool(!truthy(v))
	case optable.USub:
		if v.IsFloat() {
			return values.F64(-v.AsFloat64())
		}
		return values.I64(-v.AsInt())
	case optable.UAdd:
		return v
	case optable.Invert:
		return values.I64(^v.AsInt())
	default:
		return v
	}
}

func (e *Evaluator) evalCompare(n *ast.Compare, f *Frame) values.Value {
	lhs := e.eval(n.Left, f)
	for i, cmpExpr := range n.Comparators {
		rhs := e.eval(cmpExpr, f)
		if !e.compareOne(n.NativeOps[i], lhs, rhs) {
			return values.Bool(false)
		}
		lhs = rhs
	}
	return values.Bool(true)
}

func (e *Evaluator) compareOne(op optable.CmpKind, lhs, rhs values.Value) bool {
	switch op {
	case optable.Eq:
		return values.Equal(lhs, rhs)
	case optable.NotEq:
		return !values.Equal(lhs, rhs)
	case optable.Is:
		return values.Equal(lhs, rhs)
	case optable.IsNot:
		return !values.Equal(lhs, rhs)
	case optable.Lt, optable.LtE, optable.Gt, optable.GtE:
		return numericCompare(op, lhs, rhs)
	case optable.In:
		return containsValue(rhs, lhs)
	case optable.NotIn:
		return !containsValue(rhs, lhs)
	default:
		return false
	}
}

func numericCompare(op optable.CmpKind, lhs, rhs values.Value) bool {
	if ls, ok := lhs.Obj.(*values.Str); ok {
		rs, _ := rhs.Obj.(*values.Str)
		var a, b string
		a = ls.Value
		if rs != nil {
			b = rs.Value
		}
		switch op {
		case optable.Lt:
			return a < b
		case optable.LtE:
			return a <= b
		case optable.Gt:
			return a > b
		default:
			return a >= b
		}
	}
	a, b := lhs.AsFloat64(), rhs.AsFloat64()
	if !lhs.IsFloat() {
		a = float64(lhs.AsInt())
	}
	if !rhs.IsFloat() {
		b = float64(rhs.AsInt())
	}
	switch op {
	case optable.Lt:
		return a < b
	case optable.LtE:
		return a <= b
	case optable.Gt:
		return a > b
	default:
		return a >= b
	}
}

func containsValue(container, needle values.Value) bool {
	switch o := container.Obj.(type) {
	case *values.List:
		for _, elt := range o.Elems {
			if values.Equal(elt, needle) {
				return true
			}
		}
	case *values.Dict:
		_, ok := o.Get(needle)
		return ok
	case *values.Str:
		if ns, ok := needle.Obj.(*values.Str); ok {
			return strings.Contains(o.Value, ns.Value)
		}
	}
	return false
}

func (e *Evaluator) evalBinOp(n *ast.BinOp, f *Frame) values.Value {
	lhs := e.eval(n.Left, f)
	rhs := e.eval(n.Right, f)
	return e.applyBinOp(n.Tok, n.NativeOp, lhs, rhs)
}

func (e *Evaluator) applyBinOp(tok token.Token, op optable.BinKind, lhs, rhs values.Value) values.Value {
	if op == optable.Add {
		if ls, ok := lhs.Obj.(*values.Str); ok {
			if rs, ok2 := rhs.Obj.(*values.Str); ok2 {
				return values.NewStr(ls.Value + rs.Value)
			}
		}
		if ll, ok := lhs.Obj.(*values.List); ok {
			if rl, ok2 := rhs.Obj.(*values.List); ok2 {
				return values.NewList(append(append([]values.Value{}, ll.Elems...), rl.Elems...))
			}
		}
	}
	if lhs.IsFloat() || rhs.IsFloat() {
		a, b := toF64(lhs), toF64(rhs)
		return values.F64(applyFloatBin(op, a, b))
	}
	if lhs.IsInteger() && rhs.IsInteger() {
		a, b := lhs.AsInt(), rhs.AsInt()
		result, divZero := applyIntBin(op, a, b)
		if divZero {
			e.raiseRuntime(tok, "ZeroDivisionError", "division by zero")
		}
		return values.I64(result)
	}
	e.raise(values.NewStr("TypeError: unsupported operand type(s)"))
	return values.None()
}

func toF64(v values.Value) float64 {
	if v.IsFloat() {
		return v.AsFloat64()
	}
	return float64(v.AsInt())
}

func applyFloatBin(op optable.BinKind, a, b float64) float64 {
	switch op {
	case optable.Add:
		return a + b
	case optable.Sub:
		return a - b
	case optable.Mul:
		return a * b
	case optable.Div, optable.FloorDiv:
		return a / b
	case optable.Mod:
		r := a - b*float64(int64(a/b))
		return r
	default:
		return 0
	}
}

func applyIntBin(op optable.BinKind, a, b int64) (int64, bool) {
	switch op {
	case optable.Add:
		return a + b, false
	case optable.Sub:
		return a - b, false
	case optable.Mul:
		return a * b, false
	case optable.Div, optable.FloorDiv:
		if b == 0 {
			return 0, true
		}
		return a / b, false
	case optable.Mod:
		if b == 0 {
			return 0, true
		}
		return a % b, false
	case optable.Pow:
		r := int64(1)
		for i := int64(0); i < b; i++ {
			r *= a
		}
		return r, false
	case optable.BitAnd:
		return a & b, false
	case optable.BitOr:
		return a | b, false
	case optable.BitXor:
		return a ^ b, false
	case optable.LShift:
		return a << uint(b), false
	case optable.RShift:
		return a >> uint(b), false
	default:
		return 0, false
	}
}

func (e *Evaluator) raiseNameError(tok token.Token, name string) {
	_ = tok
	e.raise(values.NewStr("NameError: name '" + name + "' is not defined"))
}

func (e *Evaluator) raiseRuntime(tok token.Token, kind, msg string) {
	_ = tok
	e.raise(values.NewStr(kind + ": " + msg))
}
