// Package ast defines the closed family of AST node kinds produced by the
// parser: a fixed Kind enum, a Family tag, structural position info, and
// an arena that owns every node for one Module. See spec.md §3.
package ast

import (
	"github.com/google/uuid"
	"github.com/kiwi-lang/kiwi/internal/token"
)

// Family groups Kinds the way spec.md §3 does: every visitor-consuming
// pass dispatches first by Family philosophically, then by Kind.
type Family uint8

const (
	FamModule Family = iota
	FamStatement
	FamExpression
	FamPattern
	FamVM
)

func (f Family) String() string {
	switch f {
	case FamModule:
		return "Module"
	case FamStatement:
		return "Statement"
	case FamExpression:
		return "Expression"
	case FamPattern:
		return "Pattern"
	case FamVM:
		return "VM"
	default:
		return "?"
	}
}

// Kind is the closed enum of node kinds. Every switch over Kind in
// internal/ops, internal/sema, internal/evaluator and internal/vm must be
// exhaustive — see kindMethodCount in visitor.go.
type Kind uint16

const (
	// Module family.
	KModule Kind = iota
	KInteractive
	KExpressionMod
	KFunctionType

	// Statement family.
	KFunctionDef
	KAsyncFunctionDef
	KClassDef
	KReturn
	KAssign
	KAnnAssign
	KAugAssign
	KDelete
	KFor
	KAsyncFor
	KWhile
	KIf
	KWith
	KAsyncWith
	KRaise
	KTry
	KAssert
	KImport
	KImportFrom
	KGlobal
	KNonlocal
	KExprStmt
	KPass
	KBreak
	KContinue
	KMatch
	KInline
	KComment
	KInvalidStatement

	// Expression family.
	KName
	KConstant
	KBinOp
	KBoolOp
	KUnaryOp
	KCompare
	KCall
	KAttribute
	KSubscript
	KStarred
	KIfExp
	KLambda
	KNamedExpr
	KAwait
	KYield
	KYieldFrom
	KListExpr
	KTupleExpr
	KSetExpr
	KDictExpr
	KListComp
	KSetComp
	KDictComp
	KGeneratorExp
	KSlice
	KJoinedStr
	KFormattedValue
	KArrow
	KDictType
	KArrayType
	KSetType
	KTupleType
	KBuiltinType
	KClassType
	KPlaceholder
	KExported

	// Pattern family.
	KMatchValue
	KMatchSingleton
	KMatchSequence
	KMatchMapping
	KMatchClass
	KMatchStar
	KMatchAs
	KMatchOr

	// VM family.
	KVMStmt
	KJump
	KCondJump
	KVMNativeFunction

	kindCount // sentinel: len(Kind) for exhaustiveness assertions
)

var kindFamily = func() map[Kind]Family {
	m := map[Kind]Family{}
	mark := func(f Family, ks ...Kind) {
		for _, k := range ks {
			m[k] = f
		}
	}
	mark(FamModule, KModule, KInteractive, KExpressionMod, KFunctionType)
	mark(FamStatement,
		KFunctionDef, KAsyncFunctionDef, KClassDef, KReturn, KAssign, KAnnAssign, KAugAssign,
		KDelete, KFor, KAsyncFor, KWhile, KIf, KWith, KAsyncWith, KRaise, KTry, KAssert,
		KImport, KImportFrom, KGlobal, KNonlocal, KExprStmt, KPass, KBreak, KContinue,
		KMatch, KInline, KComment, KInvalidStatement)
	mark(FamExpression,
		KName, KConstant, KBinOp, KBoolOp, KUnaryOp, KCompare, KCall, KAttribute, KSubscript,
		KStarred, KIfExp, KLambda, KNamedExpr, KAwait, KYield, KYieldFrom, KListExpr,
		KTupleExpr, KSetExpr, KDictExpr, KListComp, KSetComp, KDictComp, KGeneratorExp,
		KSlice, KJoinedStr, KFormattedValue, KArrow, KDictType, KArrayType, KSetType,
		KTupleType, KBuiltinType, KClassType, KPlaceholder, KExported)
	mark(FamPattern, KMatchValue, KMatchSingleton, KMatchSequence, KMatchMapping, KMatchClass,
		KMatchStar, KMatchAs, KMatchOr)
	mark(FamVM, KVMStmt, KJump, KCondJump, KVMNativeFunction)
	return m
}()

// FamilyOf returns the Family a Kind belongs to. Invariant 1 (spec.md §3):
// every node's Family() must match FamilyOf(node.Kind()).
func FamilyOf(k Kind) Family { return kindFamily[k] }

// ExprContext tags the load/store/delete role of a Name/Attribute/
// Subscript/Starred/List/Tuple expression.
type ExprContext uint8

const (
	Load ExprContext = iota
	Store
	Del
)

// Node is the base interface every AST node implements.
type Node interface {
	Kind() Kind
	Family() Family
	Pos() token.Span
	ID() uuid.UUID
	Accept(v Visitor)
	// Parent returns the arena-owning statement/expression this node was
	// attached under, or nil for the Module root. Non-owning: used only
	// for diagnostics (spec.md §3, §9).
	Parent() Node
	setParent(Node)
}

// Base is embedded by every concrete node and supplies Kind/Family/Pos/ID
// plumbing plus the non-owning parent back-pointer.
type Base struct {
	kind   Kind
	span   token.Span
	id     uuid.UUID
	parent Node
}

func newBase(k Kind, sp token.Span) Base {
	return Base{kind: k, span: sp, id: uuid.New()}
}

func (b *Base) Kind() Kind        { return b.kind }
func (b *Base) Family() Family    { return FamilyOf(b.kind) }
func (b *Base) Pos() token.Span   { return b.span }
func (b *Base) ID() uuid.UUID     { return b.id }
func (b *Base) Parent() Node      { return b.parent }
func (b *Base) setParent(p Node)  { b.parent = p }

// Attach records child as a (diagnostic-only) child of parent, stamping
// child's non-owning parent back-pointer. Ops.HasCircle can detect (and
// tolerate) a misuse that creates a cycle here.
func Attach(parent Node, child Node) {
	if child == nil || parentIsNil(parent) {
		return
	}
	child.setParent(parent)
}

func parentIsNil(n Node) bool { return n == nil }

// Statement, Expression, Pattern, Module are marker sub-interfaces so
// that typed slices (e.g. []Statement) are possible while everything
// still satisfies Node.
type Statement interface {
	Node
	isStatement()
}

type Expression interface {
	Node
	isExpression()
}

type Pattern interface {
	Node
	isPattern()
}

type ModuleNode interface {
	Node
	isModuleNode()
}

type VMNode interface {
	Node
	isVMNode()
}
