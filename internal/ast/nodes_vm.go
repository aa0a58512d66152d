package ast

import "github.com/kiwi-lang/kiwi/internal/token"

func (*VMStmt) isVMNode()           {}
func (*Jump) isVMNode()             {}
func (*CondJump) isVMNode()         {}
func (*VMNativeFunction) isVMNode() {}

// VMStmt wraps an ordinary source Statement as one instruction in the
// VM's flat tape (spec.md §4.10): the instruction counter fetches one of
// these (or a synthetic Jump/CondJump/VMNativeFunction) per step.
type VMStmt struct {
	Base
	Stmt Statement
}

func NewVMStmt(a *Arena, stmt Statement) *VMStmt {
	n := New(a, &VMStmt{Base: newBase(KVMStmt, stmt.Pos()), Stmt: stmt})
	Attach(n, stmt)
	return n
}
func (n *VMStmt) Accept(v Visitor) { v.VisitVMStmt(n) }

// Jump is an unconditional branch: the executor sets IC = Destination.
type Jump struct {
	Base
	Destination int
}

func NewJump(a *Arena, dest int) *Jump {
	return New(a, &Jump{Base: newBase(KJump, token.Span{}), Destination: dest})
}
func (n *Jump) Accept(v Visitor) { v.VisitJump(n) }

// CondJump evaluates Condition and sets IC to ThenJump or ElseJump.
type CondJump struct {
	Base
	Condition Expression
	ThenJump  int
	ElseJump  int
}

func NewCondJump(a *Arena, cond Expression) *CondJump {
	n := New(a, &CondJump{Base: newBase(KCondJump, cond.Pos())})
	n.Condition = cond
	Attach(n, cond)
	return n
}
func (n *CondJump) Accept(v Visitor) { v.VisitCondJump(n) }

// VMNativeFunction is the tape form of a native FunctionDef: the
// executor invokes Fun directly against the current argument window
// instead of stepping through a lowered body (spec.md §4.10, §6).
type VMNativeFunction struct {
	Base
	Fun  NativeFunc
	Name string
}

func NewVMNativeFunction(a *Arena, name string, fn NativeFunc) *VMNativeFunction {
	return New(a, &VMNativeFunction{Base: newBase(KVMNativeFunction, token.Span{}), Fun: fn, Name: name})
}
func (n *VMNativeFunction) Accept(v Visitor) { v.VisitVMNativeFunction(n) }
