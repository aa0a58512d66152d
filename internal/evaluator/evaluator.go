// Package evaluator implements the tree-walking interpreter of
// spec.md §4.9: a recursive structural walk over a Sema-annotated
// Module that produces values.Value directly, with a call stack for
// tracebacks and an exception stack for try/except/else/finally. A
// yield evaluates its operand in place; generator functions are not
// suspended and resumed.
//
// Grounded on funvibe-funxy/internal/evaluator/evaluator.go's shape —
// an Evaluator struct holding Out io.Writer, a module loader, a call
// stack and a module cache — adapted to Kiwi's value/exception model.
// Dispatch is an explicit type switch per AST kind (internal/sema's
// precedent, itself grounded on internal/ops/equality.go's doc
// comment), not ast.Visitor.
//
// Name resolution does NOT reuse Sema's StoreID/LoadID as direct
// indices into a single flat array: bindings.Table assigns those
// indices during one static top-to-bottom walk, so two sibling
// function bodies (or two recursive activations of the same function)
// are assigned overlapping absolute indices. Indexing a single runtime
// array by those numbers is only sound for a single, non-reentrant
// trace. Instead each call pushes its own *Frame (a name-keyed scope
// chained to the closure's defining Frame), which is what
// spec.md §4.9's "Variables vector, truncated on scope exit" amounts
// to once generalized to recursion and closures — see DESIGN.md.
package evaluator

import (
	"fmt"
	"io"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/modules"
	"github.com/kiwi-lang/kiwi/internal/token"
	"github.com/kiwi-lang/kiwi/internal/values"
)

// CallFrame is one entry of the evaluator's StackTrace, printed by
// diagnostics on an uncaught exception (spec.md §7).
type CallFrame struct {
	Name string
	Tok  token.Token
}

// signal is the control register set by break, continue and return
// (yield does not set it); exactly one state is live after executing a
// statement, and every block-executing loop checks it before continuing
// to the next statement.
type signal uint8

const (
	sigNone signal = iota
	sigReturn
	sigBreak
	sigContinue
)

// kiwiException is the internal Go error type used to unwind the Go
// call stack when a `raise` (or a propagating native error) needs to
// reach the nearest enclosing `except`; Value holds the raised Kiwi
// value itself (spec.md §4.9's "exception stack" realized as a normal
// Go panic/recover pair scoped to Eval/execTry).
type kiwiException struct {
	Value values.Value
}

func (k *kiwiException) Error() string { return values.Inspect(k.Value) }

// Evaluator walks one analyzed Module at a time, reusing the Sema pass's
// TypeRegistry to resolve a Value.TypeID back to its ClassDef.
type Evaluator struct {
	Out     io.Writer
	Types   *values.TypeRegistry
	Loader  modules.Loader
	Natives map[string]ast.NativeFunc

	StackTrace []CallFrame

	module *ast.Module
	global *Frame

	sig         signal
	returnValue values.Value
}

// New builds an Evaluator writing program output to out, resolving
// class/builtin types through types, and invoking native functions
// registered in natives (internal/native's registry, spec.md §2/§6).
func New(out io.Writer, types *values.TypeRegistry, natives map[string]ast.NativeFunc) *Evaluator {
	if natives == nil {
		natives = map[string]ast.NativeFunc{}
	}
	return &Evaluator{
		Out:     out,
		Types:   types,
		Natives: natives,
		global:  NewFrame(nil),
	}
}

// Eval runs mod's Init statements followed by its Body (spec.md §3's
// "Init" preamble), returning the first uncaught exception as a Go
// error so the CLI driver can report it.
func (e *Evaluator) Eval(mod *ast.Module) (err error) {
	e.module = mod
	defer func() {
		if r := recover(); r != nil {
			if ke, ok := r.(*kiwiException); ok {
				err = fmt.Errorf("uncaught exception: %s", values.Inspect(ke.Value))
				return
			}
			panic(r)
		}
	}()
	for _, s := range mod.Init {
		e.exec(s, e.global)
	}
	for _, s := range mod.Body {
		e.exec(s, e.global)
	}
	return nil
}

// raise unwinds the current Go call stack via panic/recover up to the
// nearest execTry, matching spec.md §4.9's exception-stack/handler-table
// dispatch without threading an explicit error return through every
// call in the tree.
func (e *Evaluator) raise(v values.Value) {
	panic(&kiwiException{Value: v})
}

// Global returns the module-level Frame. Exported so internal/vm can
// seed/execute its tape against the same runtime this Evaluator owns
// (Types, Natives, TypeRegistry) rather than duplicating it.
func (e *Evaluator) Global() *Frame { return e.global }

// ExecStmt runs one statement against f, through the same dispatch
// Eval itself uses. Exported so internal/vm's tape executor can run a
// VMStmt's wrapped Statement without re-implementing statement
// execution (spec.md §4.10's tape literally embeds source statements).
func (e *Evaluator) ExecStmt(s ast.Statement, f *Frame) { e.exec(s, f) }

// EvalExpr evaluates expr against f. Exported for internal/vm's
// CondJump instruction, which needs identical expression semantics to
// the tree evaluator's If/While tests.
func (e *Evaluator) EvalExpr(expr ast.Expression, f *Frame) values.Value { return e.eval(expr, f) }

// Truthy exposes the tree evaluator's truth-value rules so internal/vm
// can use the identical definition for its CondJump branch test.
func (e *Evaluator) Truthy(v values.Value) bool { return truthy(v) }

// DidBreak/DidContinue/DidReturn/ClearSignal/ReturnValue let
// internal/vm observe and consume the same control-flow register
// ExecStmt may have set, the way a structured loop body already does
// internally for For/Try/With/Match statements kept unflattened on the
// tape (see DESIGN.md).
func (e *Evaluator) DidBreak() bool            { return e.sig == sigBreak }
func (e *Evaluator) DidContinue() bool         { return e.sig == sigContinue }
func (e *Evaluator) DidReturn() bool           { return e.sig == sigReturn }
func (e *Evaluator) ClearSignal()              { e.sig = sigNone }
func (e *Evaluator) LastReturnValue() values.Value { return e.returnValue }

func (e *Evaluator) pushFrame(name string, tok token.Token) {
	e.StackTrace = append(e.StackTrace, CallFrame{Name: name, Tok: tok})
}

func (e *Evaluator) popFrame() {
	if len(e.StackTrace) > 0 {
		e.StackTrace = e.StackTrace[:len(e.StackTrace)-1]
	}
}
