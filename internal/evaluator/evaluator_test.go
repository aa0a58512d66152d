package evaluator_test

import (
	"testing"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/buffer"
	"github.com/kiwi-lang/kiwi/internal/evaluator"
	"github.com/kiwi-lang/kiwi/internal/lexer"
	"github.com/kiwi-lang/kiwi/internal/parser"
	"github.com/kiwi-lang/kiwi/internal/sema"
	"github.com/kiwi-lang/kiwi/internal/values"
)

func parse(t *testing.T, src string) *ast.Module {
	t.Helper()
	buf := buffer.NewStringBuffer("test.kiwi", src)
	lx := lexer.New(buf)
	p := parser.New("test.kiwi", lx)
	mod := p.ParseModule()
	if p.Errors().HasErrors() {
		for _, e := range p.Errors().Entries() {
			t.Errorf("parse error: %v", e)
		}
		t.FailNow()
	}
	return mod
}

func analyzed(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod := parse(t, src)
	a := sema.New(mod.Arena)
	a.Analyze(mod)
	if a.Errors().HasErrors() {
		for _, e := range a.Errors().Entries() {
			t.Errorf("sema error: %v", e)
		}
		t.FailNow()
	}
	return mod
}

func TestEval_ArithmeticAssignsExpectedValue(t *testing.T) {
	mod := analyzed(t, "x = 1 + 2 * 3\n")
	ev := evaluator.New(nil, values.NewTypeRegistry(), nil)
	if err := ev.Eval(mod); err != nil {
		t.Fatalf("Eval returned an error: %v", err)
	}
	got, ok := ev.Global().Get("x")
	if !ok {
		t.Fatalf("expected global frame to define x")
	}
	if got.AsInt() != 7 {
		t.Errorf("x = 1 + 2 * 3 = %v, want 7", got.AsInt())
	}
}

func TestEval_IfElseTakesTheTrueBranch(t *testing.T) {
	mod := analyzed(t, "x = 0\nif True:\n    x = 1\nelse:\n    x = 2\n")
	ev := evaluator.New(nil, values.NewTypeRegistry(), nil)
	if err := ev.Eval(mod); err != nil {
		t.Fatalf("Eval returned an error: %v", err)
	}
	got, _ := ev.Global().Get("x")
	if got.AsInt() != 1 {
		t.Errorf("expected the true branch to run, x = %v", got.AsInt())
	}
}

func TestEval_WhileLoopAccumulates(t *testing.T) {
	mod := analyzed(t, "i = 0\ntotal = 0\nwhile i < 5:\n    total = total + i\n    i = i + 1\n")
	ev := evaluator.New(nil, values.NewTypeRegistry(), nil)
	if err := ev.Eval(mod); err != nil {
		t.Fatalf("Eval returned an error: %v", err)
	}
	got, _ := ev.Global().Get("total")
	if got.AsInt() != 10 {
		t.Errorf("sum of 0..4 = %v, want 10", got.AsInt())
	}
}

func TestEval_FunctionCallReturnsValue(t *testing.T) {
	mod := analyzed(t, "def add(a, b):\n    return a + b\nresult = add(3, 4)\n")
	ev := evaluator.New(nil, values.NewTypeRegistry(), nil)
	if err := ev.Eval(mod); err != nil {
		t.Fatalf("Eval returned an error: %v", err)
	}
	got, _ := ev.Global().Get("result")
	if got.AsInt() != 7 {
		t.Errorf("add(3, 4) = %v, want 7", got.AsInt())
	}
}

func TestEval_NativeFunctionIsInvokedWithConvertedArgs(t *testing.T) {
	mod := analyzed(t, "def double(x) -> i64:\n    pass\nresult = double(21)\n")

	natives := map[string]ast.NativeFunc{
		"double": func(args []any) (any, error) {
			n := args[0].(int64)
			return n * 2, nil
		},
	}

	ev := evaluator.New(nil, values.NewTypeRegistry(), natives)
	if err := ev.Eval(mod); err != nil {
		t.Fatalf("Eval returned an error: %v", err)
	}
	got, _ := ev.Global().Get("result")
	if got.AsInt() != 42 {
		t.Errorf("double(21) = %v, want 42", got.AsInt())
	}
}
