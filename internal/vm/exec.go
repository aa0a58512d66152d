package vm

import (
	"fmt"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/evaluator"
)

// Exec drives a compiled Program with a plain instruction counter
// instead of Go call-stack recursion for If/While (spec.md §4.10),
// reusing internal/evaluator's Frame/Closure/ClassRef runtime and its
// statement/expression dispatch for every instruction that isn't a
// synthetic Jump/CondJump, so both backends share one value model and
// one set of call/class/exception semantics.
type Exec struct {
	Program *Program
	Eval    *evaluator.Evaluator
	IC      int
}

// NewExec builds an executor for prog, running against ev's runtime
// (global Frame, Types, Natives) so the VM and tree-walking backends
// are interchangeable for the same analyzed Module.
func NewExec(prog *Program, ev *evaluator.Evaluator) *Exec {
	return &Exec{Program: prog, Eval: ev}
}

// Execute runs the tape to completion, returning the first uncaught
// exception as a Go error the same way internal/evaluator.Eval does
// (both ultimately unwind through the same kiwiException panic, since
// ExecStmt/EvalExpr below call straight into the evaluator).
func (x *Exec) Execute() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("uncaught exception: %v", r)
		}
	}()

	f := x.Eval.Global()
	for x.IC < len(x.Program.Instructions) {
		switch n := x.Program.Instructions[x.IC].(type) {
		case *ast.Jump:
			x.IC = n.Destination
		case *ast.CondJump:
			if x.Eval.Truthy(x.Eval.EvalExpr(n.Condition, f)) {
				x.IC = n.ThenJump
			} else {
				x.IC = n.ElseJump
			}
		case *ast.VMNativeFunction:
			// A resolved Call dispatches straight to n.Fun; landing on
			// this instruction directly (IC stepped onto it rather than
			// jumping through a Call) is a no-op slot.
			x.IC++
		case *ast.VMStmt:
			x.Eval.ExecStmt(n.Stmt, f)
			if x.Eval.DidReturn() {
				return nil
			}
			if x.Eval.DidBreak() || x.Eval.DidContinue() {
				// No enclosing tape-level loop consumed this signal (a
				// stray top-level break/continue); clear it so it
				// doesn't leak into whatever runs next.
				x.Eval.ClearSignal()
			}
			x.IC++
		default:
			x.IC++
		}
	}
	return nil
}
