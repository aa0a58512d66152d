package ast

import "github.com/kiwi-lang/kiwi/internal/token"

func (*Module) isModuleNode()          {}
func (*Interactive) isModuleNode()     {}
func (*ExpressionMod) isModuleNode()   {}
func (*FunctionTypeMod) isModuleNode() {}

// Module is the root node every parse produces: one per source file, and
// the owner of the Arena all of its descendants live in (spec.md §3,
// invariant 5).
type Module struct {
	Base
	Arena  *Arena
	Body   []Statement
	Init   []Statement // module-level `__init__` top-level statements, kept separate from def/class bodies per spec.md §4.10 lowering rules
}

func NewModule(a *Arena, body []Statement) *Module {
	n := New(a, &Module{Base: newBase(KModule, token.Span{}), Arena: a, Body: body})
	for _, s := range body {
		Attach(n, s)
	}
	return n
}
func (n *Module) Accept(v Visitor) { v.VisitModule(n) }

// Interactive is the REPL entry point: a single parsed line/statement
// group evaluated immediately, distinct from a file Module (spec.md §3).
type Interactive struct {
	Base
	Body []Statement
}

func NewInteractive(a *Arena, body []Statement) *Interactive {
	n := New(a, &Interactive{Base: newBase(KInteractive, token.Span{}), Body: body})
	for _, s := range body {
		Attach(n, s)
	}
	return n
}
func (n *Interactive) Accept(v Visitor) { v.VisitInteractive(n) }

// ExpressionMod wraps a single bare Expression parsed as a whole module
// (used by `eval`-style entry points).
type ExpressionMod struct {
	Base
	Value Expression
}

func NewExpressionMod(a *Arena, value Expression) *ExpressionMod {
	n := New(a, &ExpressionMod{Base: newBase(KExpressionMod, token.Span{}), Value: value})
	Attach(n, value)
	return n
}
func (n *ExpressionMod) Accept(v Visitor) { v.VisitExpressionMod(n) }

// FunctionTypeMod is the module form used when parsing a standalone type
// comment / `.pyi`-style signature: `(T1, ..., Tn) -> R`.
type FunctionTypeMod struct {
	Base
	ArgTypes []Expression
	Returns  Expression
}

func NewFunctionTypeMod(a *Arena, argTypes []Expression, returns Expression) *FunctionTypeMod {
	n := New(a, &FunctionTypeMod{Base: newBase(KFunctionType, token.Span{}), ArgTypes: argTypes, Returns: returns})
	for _, t := range argTypes {
		Attach(n, t)
	}
	Attach(n, returns)
	return n
}
func (n *FunctionTypeMod) Accept(v Visitor) { v.VisitFunctionType(n) }
