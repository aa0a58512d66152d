package evaluator

import (
	"fmt"
	"strings"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/optable"
	"github.com/kiwi-lang/kiwi/internal/values"
)

// exec dispatches one statement. Control flow (break/continue/return)
// is communicated back to the nearest loop/call boundary via e.sig
// rather than a Go error return, matching spec.md §4.9's control
// registers.
func (e *Evaluator) exec(s ast.Statement, f *Frame) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		e.eval(n.Value, f)
	case *ast.Assign:
		e.execAssign(n, f)
	case *ast.AnnAssign:
		e.execAnnAssign(n, f)
	case *ast.AugAssign:
		e.execAugAssign(n, f)
	case *ast.Return:
		if n.Value != nil {
			e.returnValue = e.eval(n.Value, f)
		} else {
			e.returnValue = values.None()
		}
		e.sig = sigReturn
	case *ast.FunctionDef:
		f.Define(n.Name, e.makeClosure(n.Name, n.Args, n.Body, nil, f))
	case *ast.ClassDef:
		f.Define(n.Name, values.FromObject(0, &ClassRef{Def: n}))
	case *ast.If:
		e.execIf(n, f)
	case *ast.While:
		e.execWhile(n, f)
	case *ast.For:
		e.execFor(n, f)
	case *ast.Try:
		e.execTry(n, f)
	case *ast.With:
		e.execWith(n, f)
	case *ast.Match:
		e.execMatch(n, f)
	case *ast.Raise:
		e.execRaise(n, f)
	case *ast.Assert:
		if !truthy(e.eval(n.Test, f)) {
			msg := "assertion failed"
			if n.Msg != nil {
				msg = values.Inspect(e.eval(n.Msg, f))
			}
			e.raise(values.NewStr("AssertionError: " + msg))
		}
	case *ast.Delete:
		// no heap-level deletion model; a bare `del x` simply drops its
		// binding from the current frame.
		for _, t := range n.Targets {
			if name, ok := t.(*ast.Name); ok {
				delete(f.vars, name.ID_)
			}
		}
	case *ast.Import, *ast.ImportFrom, *ast.Global, *ast.Nonlocal, *ast.Pass, *ast.Comment, *ast.InvalidStatement:
		// Import/ImportFrom resolution is internal/modules's concern
		// (spec.md §6); Global/Nonlocal have no effect here because
		// Frame.Set already walks outward to the owning scope.
	case *ast.Break:
		e.sig = sigBreak
	case *ast.Continue:
		e.sig = sigContinue
	case *ast.Inline:
		for _, s2 := range n.Body {
			e.exec(s2, f)
			if e.sig != sigNone {
				return
			}
		}
	default:
		e.raise(values.NewStr(fmt.Sprintf("RuntimeError: unhandled statement kind %T", s)))
	}
}

func (e *Evaluator) execAssign(n *ast.Assign, f *Frame) {
	v := e.eval(n.Value, f)
	for _, target := range n.Targets {
		e.assignTo(target, v, f)
	}
}

func (e *Evaluator) assignTo(target ast.Expression, v values.Value, f *Frame) {
	switch t := target.(type) {
	case *ast.Name:
		f.Set(t.ID_, v)
	case *ast.TupleExpr:
		list, ok := v.Obj.(*values.List)
		if !ok {
			return
		}
		for i, elt := range t.Elts {
			if i < len(list.Elems) {
				e.assignTo(elt, list.Elems[i], f)
			}
		}
	case *ast.ListExpr:
		list, ok := v.Obj.(*values.List)
		if !ok {
			return
		}
		for i, elt := range t.Elts {
			if i < len(list.Elems) {
				e.assignTo(elt, list.Elems[i], f)
			}
		}
	case *ast.Attribute:
		recv := e.eval(t.Value, f)
		if inst, ok := recv.Obj.(*values.Instance); ok {
			inst.Attrs[t.Attr] = v
		}
	case *ast.Subscript:
		container := e.eval(t.Value, f)
		index := e.eval(t.Slice, f)
		switch o := container.Obj.(type) {
		case *values.List:
			i := index.AsInt()
			if i >= 0 && i < int64(len(o.Elems)) {
				o.Elems[i] = v
			}
		case *values.Dict:
			o.Set(index, v)
		}
	case *ast.Starred:
		e.assignTo(t.Value, v, f)
	}
}

func (e *Evaluator) execAnnAssign(n *ast.AnnAssign, f *Frame) {
	if n.Value == nil {
		return
	}
	e.assignTo(n.Target, e.eval(n.Value, f), f)
}

func (e *Evaluator) execAugAssign(n *ast.AugAssign, f *Frame) {
	op, ok := optable.AssignGlyphs[n.Op]
	if !ok {
		return
	}
	lhs := e.eval(n.Target, f)
	rhs := e.eval(n.Value, f)
	e.assignTo(n.Target, e.applyBinOp(n.Tok, op, lhs, rhs), f)
}

func (e *Evaluator) execIf(n *ast.If, f *Frame) {
	if truthy(e.eval(n.Test, f)) {
		e.execBody(n.Body, f)
		return
	}
	for i, test := range n.Tests {
		if truthy(e.eval(test, f)) {
			e.execBody(n.Bodies[i], f)
			return
		}
	}
	e.execBody(n.OrElse, f)
}

func (e *Evaluator) execWhile(n *ast.While, f *Frame) {
	for truthy(e.eval(n.Test, f)) {
		e.execBody(n.Body, f)
		if e.sig == sigBreak {
			e.sig = sigNone
			return
		}
		if e.sig == sigReturn {
			return
		}
		e.sig = sigNone
	}
	e.execBody(n.OrElse, f)
}

func (e *Evaluator) execFor(n *ast.For, f *Frame) {
	iter := e.eval(n.Iter, f)
	items := iterate(iter)
	broke := false
	for _, item := range items {
		e.assignTo(n.Target, item, f)
		e.execBody(n.Body, f)
		if e.sig == sigBreak {
			e.sig = sigNone
			broke = true
			break
		}
		if e.sig == sigReturn {
			return
		}
		e.sig = sigNone
	}
	if !broke {
		e.execBody(n.OrElse, f)
	}
}

func iterate(v values.Value) []values.Value {
	switch o := v.Obj.(type) {
	case *values.List:
		return o.Elems
	case *values.Dict:
		return o.Keys
	case *values.Str:
		r := []rune(o.Value)
		out := make([]values.Value, len(r))
		for i, c := range r {
			out[i] = values.NewStr(string(c))
		}
		return out
	default:
		return nil
	}
}

// execBody runs body statements in f directly (no child Frame): Python
// if/while/for/with bodies do not introduce a new scope, only function
// calls and module top level do (spec.md §4.9; this departs from
// internal/sema's per-block bindings.Scope, which exists purely for
// Sema's own name-shadowing bookkeeping and has no runtime counterpart
// here — see DESIGN.md).
func (e *Evaluator) execBody(body []ast.Statement, f *Frame) {
	for _, s := range body {
		e.exec(s, f)
		if e.sig != sigNone {
			return
		}
	}
}

func (e *Evaluator) execRaise(n *ast.Raise, f *Frame) {
	if n.Exc == nil {
		e.raise(values.NewStr("RuntimeError: no active exception to re-raise"))
		return
	}
	e.raise(e.eval(n.Exc, f))
}

func (e *Evaluator) execTry(n *ast.Try, f *Frame) {
	// finally runs on every exit, including a pending return/break/
	// continue and an exception escaping a handler; a pending signal is
	// set aside while it runs and restored unless finally sets its own.
	defer func() {
		savedSig, savedRet := e.sig, e.returnValue
		e.sig = sigNone
		e.execBody(n.FinalBody, f)
		if e.sig == sigNone {
			e.sig, e.returnValue = savedSig, savedRet
		}
	}()
	caught, handled := e.runCatching(n.Body, f)

	if caught != nil {
		for _, h := range n.Handlers {
			if !exceptionMatches(h.Type, *caught) {
				continue
			}
			handled = true
			if h.Name != "" {
				f.Set(h.Name, *caught)
			}
			e.execBody(h.Body, f)
			caught = nil
			break
		}
	} else {
		e.execBody(n.OrElse, f)
	}

	if caught != nil && !handled {
		e.raise(*caught)
	}
}

// runCatching runs body, recovering a *kiwiException raised from inside
// it (via e.raise's panic) so the caller can match it against handlers
// one at a time, the way spec.md §4.9 describes the handler table.
func (e *Evaluator) runCatching(body []ast.Statement, f *Frame) (caught *values.Value, handled bool) {
	defer func() {
		if r := recover(); r != nil {
			if ke, ok := r.(*kiwiException); ok {
				v := ke.Value
				caught = &v
				return
			}
			panic(r)
		}
	}()
	e.execBody(body, f)
	return nil, false
}

func exceptionMatches(handlerType ast.Expression, exc values.Value) bool {
	if handlerType == nil {
		return true
	}
	name, ok := handlerType.(*ast.Name)
	if !ok {
		return true
	}
	if name.ID_ == "Exception" || name.ID_ == "BaseException" {
		return true
	}
	if inst, ok := exc.Obj.(*values.Instance); ok {
		return inst.ClassDef != nil && inst.ClassDef.Name == name.ID_
	}
	if s, ok := exc.Obj.(*values.Str); ok {
		return strings.HasPrefix(s.Value, name.ID_+":")
	}
	return false
}

func (e *Evaluator) execWith(n *ast.With, f *Frame) {
	for _, item := range n.Items {
		ctx := e.eval(item.ContextExpr, f)
		if item.OptionalVars != nil {
			e.assignTo(item.OptionalVars, ctx, f)
		}
		if inst, ok := ctx.Obj.(*values.Instance); ok {
			if enter := e.findMethod(inst.ClassDef, "__enter__"); enter != nil {
				e.callFunctionDef(enter, []values.Value{ctx})
			}
			defer func() {
				if exit := e.findMethod(inst.ClassDef, "__exit__"); exit != nil {
					e.callFunctionDef(exit, []values.Value{ctx, values.None(), values.None(), values.None()})
				}
			}()
		}
	}
	e.execBody(n.Body, f)
}

func (e *Evaluator) execMatch(n *ast.Match, f *Frame) {
	subject := e.eval(n.Subject, f)
	for _, c := range n.Cases {
		bindings := map[string]values.Value{}
		if !e.matchPattern(c.Pattern, subject, bindings, f) {
			continue
		}
		for k, v := range bindings {
			f.Set(k, v)
		}
		if c.Guard != nil && !truthy(e.eval(c.Guard, f)) {
			continue
		}
		e.execBody(c.Body, f)
		return
	}
}

func (e *Evaluator) matchPattern(p ast.Pattern, v values.Value, out map[string]values.Value, f *Frame) bool {
	switch pat := p.(type) {
	case *ast.MatchValue:
		return values.Equal(e.eval(pat.Value, f), v)
	case *ast.MatchSingleton:
		switch pat.CKind {
		case ast.ConstBool:
			return v.Tag == values.TagBool && v.AsBool() == pat.B
		default:
			return v.Tag == values.TagNone
		}
	case *ast.MatchAs:
		if pat.Pattern != nil && !e.matchPattern(pat.Pattern, v, out, f) {
			return false
		}
		if pat.Name != "" {
			out[pat.Name] = v
		}
		return true
	case *ast.MatchStar:
		if pat.Name != "" {
			out[pat.Name] = v
		}
		return true
	case *ast.MatchOr:
		for _, sub := range pat.Patterns {
			if e.matchPattern(sub, v, out, f) {
				return true
			}
		}
		return false
	case *ast.MatchSequence:
		list, ok := v.Obj.(*values.List)
		if !ok || len(list.Elems) != len(pat.Patterns) {
			return false
		}
		for i, sub := range pat.Patterns {
			if !e.matchPattern(sub, list.Elems[i], out, f) {
				return false
			}
		}
		return true
	case *ast.MatchMapping:
		dict, ok := v.Obj.(*values.Dict)
		if !ok {
			return false
		}
		for i, keyExpr := range pat.Keys {
			key := e.eval(keyExpr, f)
			val, found := dict.Get(key)
			if !found || !e.matchPattern(pat.Pats[i], val, out, f) {
				return false
			}
		}
		return true
	case *ast.MatchClass:
		inst, ok := v.Obj.(*values.Instance)
		if !ok {
			return false
		}
		if name, ok2 := pat.Cls.(*ast.Name); ok2 && inst.ClassDef != nil && inst.ClassDef.Name != name.ID_ {
			return false
		}
		for i, attr := range pat.KwdAttrs {
			val, found := inst.Attrs[attr]
			if !found || !e.matchPattern(pat.KwdPatterns[i], val, out, f) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

