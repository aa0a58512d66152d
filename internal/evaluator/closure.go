package evaluator

import (
	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/values"
)

// Closure is the runtime Object a FunctionDef or Lambda literal
// evaluates to: its parameter list plus the Frame it closed over, so a
// nested function sees the enclosing call's locals after that call has
// already returned (spec.md §4.9). Body is empty for a Lambda, which
// carries a single Expr instead.
type Closure struct {
	Name   string
	Params *ast.Arguments
	Body   []ast.Statement
	Expr   ast.Expression
	Env    *Frame
}

func (*Closure) Fields() map[string]values.Value { return nil }
func (*Closure) Class() *ast.ClassDef             { return nil }

// boundMethod is what `instance.method` evaluates to when referenced as
// a value rather than called directly (`f = obj.method; f()`): it
// remembers the receiver so a later call still binds it as the first
// argument.
type boundMethod struct {
	recv values.Value
	fn   *ast.FunctionDef
}

func (*boundMethod) Fields() map[string]values.Value { return nil }
func (*boundMethod) Class() *ast.ClassDef             { return nil }

func (e *Evaluator) makeClosure(name string, params *ast.Arguments, body []ast.Statement, expr ast.Expression, f *Frame) values.Value {
	return values.FromObject(0, &Closure{Name: name, Params: params, Body: body, Expr: expr, Env: f})
}

// bindArgs binds args positionally against params into callFrame,
// applying trailing defaults for omitted arguments and collecting any
// *args tail into a list; keyword-only and **kwargs parameters are not
// bound (spec.md §4.8's argument-reordering already ran
// at Sema time for keyword calls, so by the time the evaluator sees a
// Call, n.Args is always in positional order).
func (e *Evaluator) bindArgs(params *ast.Arguments, args []values.Value, callFrame *Frame) {
	allParams := append(append([]*ast.Arg{}, params.PosOnlyArgs...), params.Args...)
	for i, p := range allParams {
		switch {
		case i < len(args):
			callFrame.Define(p.Name, args[i])
		default:
			di := i - (len(allParams) - len(params.Defaults))
			if di >= 0 && di < len(params.Defaults) {
				callFrame.Define(p.Name, e.eval(params.Defaults[di], callFrame))
			} else {
				callFrame.Define(p.Name, values.None())
			}
		}
	}
	if params.Vararg != nil {
		rest := []values.Value{}
		if len(args) > len(allParams) {
			rest = append(rest, args[len(allParams):]...)
		}
		callFrame.Define(params.Vararg.Name, values.NewList(rest))
	}
}
