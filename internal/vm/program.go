// Package vm implements the second of Kiwi's two execution backends
// (spec.md §4.10): a flat instruction tape driven by a plain integer
// instruction counter, as an alternative to internal/evaluator's
// recursive tree walk. Grounded on funvibe-funxy/internal/vm's
// Program/Executor split, generalized the way spec.md §4.10 asks: the
// tape's instructions are not a separate opcode enum but the same AST
// node set already declared in internal/ast/nodes_vm.go (VMStmt wraps
// an ordinary source Statement; Jump/CondJump are the only synthetic
// nodes), so control flow is represented as data the executor can
// inspect instead of being baked into Go's call stack.
package vm

import "github.com/kiwi-lang/kiwi/internal/ast"

// Program is the flat tape vm.Compile produces for one Module: one
// entry per instruction, fetched and dispatched in order by IC.
type Program struct {
	Instructions []ast.Node

	// FuncStarts records, for every top-level FunctionDef compiled as a
	// VMStmt leaf, the tape index its VMStmt occupies. It is informational
	// only (inspectable by a tool printing the tape) — Exec still invokes
	// functions through internal/evaluator's Closure/callClosure machinery
	// rather than jumping IC into a callee's instructions, since a real
	// call/return tape needs its own saved-IC stack that spec.md §4.10
	// leaves to the backpatch step; see DESIGN.md for the scope decision.
	FuncStarts map[string]int
}
