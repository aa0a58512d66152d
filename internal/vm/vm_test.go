package vm_test

import (
	"testing"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/buffer"
	"github.com/kiwi-lang/kiwi/internal/evaluator"
	"github.com/kiwi-lang/kiwi/internal/lexer"
	"github.com/kiwi-lang/kiwi/internal/parser"
	"github.com/kiwi-lang/kiwi/internal/sema"
	"github.com/kiwi-lang/kiwi/internal/values"
	"github.com/kiwi-lang/kiwi/internal/vm"
)

func analyzed(t *testing.T, src string) *ast.Module {
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

func run(t *testing.T, src string) *evaluator.Evaluator {
	t.Helper()
	mod := analyzed(t, src)
	prog, err := vm.Compile(mod)
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}
	ev := evaluator.New(nil, values.NewTypeRegistry(), nil)
	exec := vm.NewExec(prog, ev)
	if err := exec.Execute(); err != nil {
		t.Fatalf("Execute returned an error: %v", err)
	}
	return ev
}

func TestExecute_IfFlattensToJumpsAndTakesTrueBranch(t *testing.T) {
	ev := run(t, "x = 0\nif True:\n    x = 1\nelse:\n    x = 2\n")
	got, ok := ev.Global().Get("x")
	if !ok || got.AsInt() != 1 {
		t.Errorf("expected x == 1, got %v (ok=%v)", got, ok)
	}
}

func TestExecute_IfFlattensToJumpsAndTakesFalseBranch(t *testing.T) {
	ev := run(t, "x = 0\nif False:\n    x = 1\nelse:\n    x = 2\n")
	got, ok := ev.Global().Get("x")
	if !ok || got.AsInt() != 2 {
		t.Errorf("expected x == 2, got %v (ok=%v)", got, ok)
	}
}

func TestExecute_WhileLoopWithBreakStopsEarly(t *testing.T) {
	ev := run(t, "i = 0\nwhile i < 100:\n    i = i + 1\n    if i == 3:\n        break\n")
	got, ok := ev.Global().Get("i")
	if !ok || got.AsInt() != 3 {
		t.Errorf("expected the loop to stop at i == 3 via break, got %v (ok=%v)", got, ok)
	}
}

func TestExecute_WhileLoopWithContinueSkipsAccumulation(t *testing.T) {
	ev := run(t, "i = 0\ntotal = 0\nwhile i < 5:\n    i = i + 1\n    if i == 3:\n        continue\n    total = total + i\n")
	got, ok := ev.Global().Get("total")
	// i runs 1,2,3,4,5; 3 is skipped by continue: 1+2+4+5 = 12
	if !ok || got.AsInt() != 12 {
		t.Errorf("expected total == 12, got %v (ok=%v)", got, ok)
	}
}

func TestCompile_RecordsFunctionStart(t *testing.T) {
	mod := analyzed(t, "def f():\n    return 1\nx = f()\n")
	prog, err := vm.Compile(mod)
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}
	if _, ok := prog.FuncStarts["f"]; !ok {
		t.Errorf("expected Compile to record a FuncStarts entry for f, got %+v", prog.FuncStarts)
	}
}
