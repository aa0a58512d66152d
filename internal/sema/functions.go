package sema

import (
	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/bindings"
	"github.com/kiwi-lang/kiwi/internal/diagnostics"
	"github.com/kiwi-lang/kiwi/internal/token"
)

// typeExprOf converts an ordinary expression annotation (a Name,
// Subscript, or nested combination thereof) into the type-expression
// node family, per the Open Question #4 decision recorded in
// DESIGN.md: the parser treats annotations as plain expressions and
// Sema is the sole builder of Arrow/DictType/ArrayType/SetType/
// TupleType/BuiltinType/ClassType.
func (a *Analyzer) typeExprOf(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case nil:
		return nil
	case *ast.Name:
		if entry, ok := a.table.Find(n.ID_); ok {
			if def, ok2 := entry.Value.(*ast.ClassDef); ok2 {
				return ast.NewClassType(a.arena, n.Tok, def)
			}
		}
		for _, name := range builtinNames {
			if name == n.ID_ {
				return a.builtinType(name)
			}
		}
		return a.builtinType(n.ID_)
	case *ast.Constant:
		if n.CKind == ast.ConstNone {
			return a.builtinType("None")
		}
		return nil
	case *ast.Subscript:
		base, ok := n.Value.(*ast.Name)
		if !ok {
			return nil
		}
		switch base.ID_ {
		case "list", "array":
			return ast.NewArrayType(a.arena, n.Tok, a.typeExprOf(n.Slice))
		case "set":
			return ast.NewSetType(a.arena, n.Tok, a.typeExprOf(n.Slice))
		case "dict":
			if tup, ok2 := n.Slice.(*ast.TupleExpr); ok2 && len(tup.Elts) == 2 {
				return ast.NewDictType(a.arena, n.Tok, a.typeExprOf(tup.Elts[0]), a.typeExprOf(tup.Elts[1]))
			}
			return ast.NewDictType(a.arena, n.Tok, a.builtinType("str"), a.typeExprOf(n.Slice))
		case "tuple":
			if tup, ok2 := n.Slice.(*ast.TupleExpr); ok2 {
				elems := make([]ast.Expression, len(tup.Elts))
				for i, e2 := range tup.Elts {
					elems[i] = a.typeExprOf(e2)
				}
				return ast.NewTupleType(a.arena, n.Tok, elems)
			}
			return ast.NewTupleType(a.arena, n.Tok, []ast.Expression{a.typeExprOf(n.Slice)})
		default:
			return a.typeExprOf(n.Value)
		}
	default:
		return nil
	}
}

// analyzeFunctionDef defines the function's own name in the enclosing
// scope, then synthesizes its Arrow from parameter annotations and
// analyzes its body in a fresh Scope seeded with the parameters
// (spec.md §4.8 point 4).
func (a *Analyzer) analyzeFunctionDef(n *ast.FunctionDef) {
	for _, d := range n.Decorators {
		a.expr(d.Expr)
	}
	arrow := a.analyzeLambdaLike(n.Args, n.Returns, nil)
	n.Type = arrow.(*ast.Arrow)
	a.table.Add(n.Name, n, n.Type, -1)

	scope := bindings.Open(a.table)
	a.bindParams(n.Args)
	for _, s := range n.Body {
		a.stmt(s)
	}
	scope.Close()
}

// analyzeLambdaLike synthesizes an Arrow from a parameter list plus an
// optional return annotation. When there is no annotation and body is
// non-nil (a Lambda), body is analyzed with the parameters bound to infer
// the return type. FunctionDef passes a nil body and analyzes its
// statements separately once the Arrow is recorded, so
// recursive/self-referential defs resolve.
func (a *Analyzer) analyzeLambdaLike(args *ast.Arguments, returns ast.Expression, body ast.Expression) ast.Expression {
	var argTypes []ast.Expression
	allArgs := append(append([]*ast.Arg{}, args.PosOnlyArgs...), args.Args...)
	for _, arg := range allArgs {
		argTypes = append(argTypes, a.typeExprOf(arg.Annotation))
	}
	for _, arg := range args.KwOnlyArgs {
		argTypes = append(argTypes, a.typeExprOf(arg.Annotation))
	}
	var ret ast.Expression
	if returns != nil {
		ret = a.typeExprOf(returns)
	} else if body != nil {
		scope := bindings.Open(a.table)
		a.bindParams(args)
		ret = a.expr(body)
		scope.Close()
	} else {
		ret = a.builtinType("None")
	}
	return ast.NewArrow(a.arena, firstArgTok(args), argTypes, ret)
}

// firstArgTok picks a representative token for the synthesized Arrow
// node's span; Arguments carries no token of its own.
func firstArgTok(args *ast.Arguments) token.Token {
	for _, arg := range args.PosOnlyArgs {
		return arg.Tok
	}
	for _, arg := range args.Args {
		return arg.Tok
	}
	if args.Vararg != nil {
		return args.Vararg.Tok
	}
	return token.Token{}
}

func (a *Analyzer) bindParams(args *ast.Arguments) {
	for _, arg := range args.PosOnlyArgs {
		a.table.Add(arg.Name, nil, a.typeExprOf(arg.Annotation), -1)
	}
	for _, arg := range args.Args {
		a.table.Add(arg.Name, nil, a.typeExprOf(arg.Annotation), -1)
	}
	if args.Vararg != nil {
		a.table.Add(args.Vararg.Name, nil, nil, -1)
	}
	for _, arg := range args.KwOnlyArgs {
		a.table.Add(arg.Name, nil, a.typeExprOf(arg.Annotation), -1)
	}
	if args.Kwarg != nil {
		a.table.Add(args.Kwarg.Name, nil, nil, -1)
	}
}

// analyzeClassDef records the class's own name first (so a method
// referring to its own class, or a forward reference inside the body,
// resolves), then walks the body recording Assign/AnnAssign/
// FunctionDef/nested-ClassDef attributes (record_attributes) and the
// constructor's `self.x = ...` assignments (record_ctor_attributes),
// per spec.md §4.8.
func (a *Analyzer) analyzeClassDef(n *ast.ClassDef) {
	for _, b := range n.Bases {
		a.expr(b)
	}
	for _, kw := range n.Keywords {
		a.expr(kw.Value)
	}
	a.table.Add(n.Name, n, nil, -1)
	a.types.RegisterClass(n)

	prevClass := a.currentClass
	a.currentClass = n

	a.recordAttributes(n)
	a.recordCtorAttributes(n)

	scope := bindings.Open(a.table)
	selfType := ast.NewClassType(a.arena, n.Tok, n)
	for _, s := range n.Body {
		if fn, ok := s.(*ast.FunctionDef); ok {
			a.analyzeMethod(fn, selfType)
			continue
		}
		a.stmt(s)
	}
	scope.Close()
	a.synthesizeCtor(n)

	a.currentClass = prevClass
}

// recordAttributes walks the class body recording every Assign/
// AnnAssign/FunctionDef/nested-ClassDef as a ClassAttr, per spec.md
// §4.8's record_attributes.
func (a *Analyzer) recordAttributes(n *ast.ClassDef) {
	for _, s := range n.Body {
		switch stmt := s.(type) {
		case *ast.Assign:
			for _, t := range stmt.Targets {
				if name, ok := t.(*ast.Name); ok {
					n.Attributes = append(n.Attributes, &ast.ClassAttr{Name: name.ID_, Stmt: stmt})
				}
			}
		case *ast.AnnAssign:
			if name, ok := stmt.Target.(*ast.Name); ok {
				n.Attributes = append(n.Attributes, &ast.ClassAttr{Name: name.ID_, Stmt: stmt, Type: a.typeExprOf(stmt.Annotation)})
			}
		case *ast.FunctionDef:
			n.Attributes = append(n.Attributes, &ast.ClassAttr{Name: stmt.Name, Stmt: stmt})
		case *ast.ClassDef:
			stmt.ClsNS = n
			n.Attributes = append(n.Attributes, &ast.ClassAttr{Name: stmt.Name, Stmt: stmt})
		}
	}
}

// recordCtorAttributes walks `__init__`'s body adding `self.x = ...`
// assignments as attributes (spec.md §4.8's record_ctor_attributes).
func (a *Analyzer) recordCtorAttributes(n *ast.ClassDef) {
	ctor := findMethod(n, "__init__")
	if ctor == nil {
		return
	}
	var selfName string
	if len(ctor.Args.Args) > 0 {
		selfName = ctor.Args.Args[0].Name
	} else if len(ctor.Args.PosOnlyArgs) > 0 {
		selfName = ctor.Args.PosOnlyArgs[0].Name
	}
	if selfName == "" {
		return
	}
	for _, s := range ctor.Body {
		assign, ok := s.(*ast.Assign)
		if !ok {
			continue
		}
		for _, t := range assign.Targets {
			attr, ok2 := t.(*ast.Attribute)
			if !ok2 {
				continue
			}
			recv, ok3 := attr.Value.(*ast.Name)
			if !ok3 || recv.ID_ != selfName {
				continue
			}
			n.Attributes = append(n.Attributes, &ast.ClassAttr{Name: attr.Attr, Stmt: assign})
		}
	}
}

// analyzeMethod analyzes a method body with its first parameter bound
// to the enclosing class's ClassType (self/cls substitution, spec.md
// §4.8 point: "method receiver contributes typeof(value) as the first
// call argument").
func (a *Analyzer) analyzeMethod(fn *ast.FunctionDef, selfType ast.Expression) {
	for _, d := range fn.Decorators {
		a.expr(d.Expr)
	}
	arrow := a.analyzeLambdaLike(fn.Args, fn.Returns, nil)
	fn.Type = arrow.(*ast.Arrow)

	scope := bindings.Open(a.table)
	allArgs := append(append([]*ast.Arg{}, fn.Args.PosOnlyArgs...), fn.Args.Args...)
	for i, arg := range allArgs {
		if i == 0 {
			a.table.Add(arg.Name, nil, selfType, -1)
			continue
		}
		a.table.Add(arg.Name, nil, a.typeExprOf(arg.Annotation), -1)
	}
	for _, arg := range fn.Args.KwOnlyArgs {
		a.table.Add(arg.Name, nil, a.typeExprOf(arg.Annotation), -1)
	}
	if fn.Args.Vararg != nil {
		a.table.Add(fn.Args.Vararg.Name, nil, nil, -1)
	}
	if fn.Args.Kwarg != nil {
		a.table.Add(fn.Args.Kwarg.Name, nil, nil, -1)
	}
	for _, s := range fn.Body {
		a.stmt(s)
	}
	scope.Close()
}

// synthesizeCtor builds the class's constructor Arrow from `__init__`'s
// parameters (or `__new__`'s when there is no `__init__`), dropping the
// leading self/cls, with the class itself as the return type. When both
// methods exist, `__new__` is not consulted and the two signatures are
// not intersected.
func (a *Analyzer) synthesizeCtor(n *ast.ClassDef) {
	ctor := findMethod(n, "__init__")
	if ctor == nil {
		ctor = findMethod(n, "__new__")
	}
	classT := ast.NewClassType(a.arena, n.Tok, n)
	if ctor == nil {
		n.CtorT = ast.NewArrow(a.arena, n.Tok, nil, classT)
		return
	}
	var argTypes []ast.Expression
	allArgs := append(append([]*ast.Arg{}, ctor.Args.PosOnlyArgs...), ctor.Args.Args...)
	for i, arg := range allArgs {
		if i == 0 {
			continue // self/cls
		}
		argTypes = append(argTypes, a.typeExprOf(arg.Annotation))
	}
	n.CtorT = ast.NewArrow(a.arena, n.Tok, argTypes, classT)
}

// analyzeCall reorders keyword arguments into positional order against
// the callee's FunctionDef.Args (spec.md §4.8's reorder_arguments),
// rejects keywords on native calls, and typechecks the resulting call
// shape against the callee's Arrow.
func (a *Analyzer) analyzeCall(n *ast.Call) ast.Expression {
	calleeT := a.expr(n.Func)
	for _, arg := range n.Args {
		a.expr(arg)
	}
	for _, kw := range n.Keywords {
		a.expr(kw.Value)
	}

	var calleeFn *ast.FunctionDef
	var calleeClass *ast.ClassDef
	if attr, ok := n.Func.(*ast.Attribute); ok {
		if fn, ok2 := attr.Resolved.(*ast.FunctionDef); ok2 {
			calleeFn = fn
		}
	} else if name, ok := n.Func.(*ast.Name); ok {
		if entry, ok2 := a.table.Find(name.ID_); ok2 {
			switch v := entry.Value.(type) {
			case *ast.FunctionDef:
				calleeFn = v
			case *ast.ClassDef:
				calleeClass = v
			}
		}
	}

	if calleeFn != nil && calleeFn.Native != nil && len(n.Keywords) > 0 {
		a.errors.Add(diagnostics.NewTypeError(n.Tok, "native calls accept only positional arguments"))
		return nil
	}

	if calleeClass != nil {
		if len(n.Keywords) > 0 {
			if ctor := findMethod(calleeClass, "__init__"); ctor != nil {
				a.reorderArguments(n, ctor)
			}
		}
		return ast.NewClassType(a.arena, n.Tok, calleeClass)
	}

	if calleeFn != nil && len(n.Keywords) > 0 {
		a.reorderArguments(n, calleeFn)
	}

	if cls, ok := calleeT.(*ast.ClassType); ok && cls.Def != nil && cls.Def.CtorT != nil {
		return cls.Def.CtorT.Returns
	}
	if arrow, ok := calleeT.(*ast.Arrow); ok {
		if len(n.Args) < len(arrow.ArgTypes) {
			a.errors.Add(diagnostics.NewTypeError(n.Tok, "missing required argument"))
		}
		return arrow.Returns
	}
	return nil
}

// reorderArguments rewrites n.Args into pure positional order using
// fn.Args's declared parameter names, matching each Keyword by name
// (spec.md §4.8's reorder_arguments). A keyword naming a parameter with
// no positional match that still lacks a default is a TypeError.
func (a *Analyzer) reorderArguments(n *ast.Call, fn *ast.FunctionDef) {
	allParams := append(append([]*ast.Arg{}, fn.Args.PosOnlyArgs...), fn.Args.Args...)
	positional := append([]ast.Expression{}, n.Args...)
	ordered := make([]ast.Expression, len(allParams))
	copy(ordered, positional)
	for _, kw := range n.Keywords {
		found := false
		for i, p := range allParams {
			if p.Name == kw.Name {
				ordered[i] = kw.Value
				found = true
				break
			}
		}
		if !found {
			a.errors.Add(diagnostics.NewTypeError(kw.Tok, "unexpected keyword argument '%s'", kw.Name))
		}
	}
	for i, p := range allParams {
		if ordered[i] == nil {
			hasDefault := i >= len(allParams)-len(fn.Args.Defaults)
			if !hasDefault {
				a.errors.Add(diagnostics.NewTypeError(n.Tok, "missing required argument: '%s'", p.Name))
			}
		}
	}
	n.Args = ordered
	n.Keywords = nil
}
