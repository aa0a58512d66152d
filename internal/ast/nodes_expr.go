package ast

import (
	"github.com/kiwi-lang/kiwi/internal/optable"
	"github.com/kiwi-lang/kiwi/internal/token"
)

func (*Name) isExpression()            {}
func (*Constant) isExpression()        {}
func (*BinOp) isExpression()           {}
func (*BoolOp) isExpression()          {}
func (*UnaryOp) isExpression()         {}
func (*Compare) isExpression()         {}
func (*Call) isExpression()            {}
func (*Attribute) isExpression()       {}
func (*Subscript) isExpression()       {}
func (*Starred) isExpression()         {}
func (*IfExp) isExpression()           {}
func (*Lambda) isExpression()          {}
func (*NamedExpr) isExpression()       {}
func (*Await) isExpression()           {}
func (*Yield) isExpression()           {}
func (*YieldFrom) isExpression()       {}
func (*ListExpr) isExpression()        {}
func (*TupleExpr) isExpression()       {}
func (*SetExpr) isExpression()         {}
func (*DictExpr) isExpression()        {}
func (*Comprehension) isExpression()   {}
func (*Slice) isExpression()           {}
func (*JoinedStr) isExpression()       {}
func (*FormattedValue) isExpression()  {}
func (*Arrow) isExpression()           {}
func (*DictType) isExpression()        {}
func (*ArrayType) isExpression()       {}
func (*SetType) isExpression()         {}
func (*TupleType) isExpression()       {}
func (*BuiltinType) isExpression()     {}
func (*ClassType) isExpression()       {}
func (*Placeholder) isExpression()     {}
func (*Exported) isExpression()        {}

// Name is an identifier reference. StoreID/LoadID are de Bruijn-style
// binding indices stamped by Sema (spec.md §3, §4.8, §9).
type Name struct {
	Base
	Tok     token.Token
	ID_     string
	Ctx     ExprContext
	StoreID int // index in bindings at definition
	LoadID  int // index in bindings at this use site
}

func NewName(a *Arena, tok token.Token, id string, ctx ExprContext) *Name {
	return New(a, &Name{Base: newBase(KName, tok.Span), Tok: tok, ID_: id, Ctx: ctx, StoreID: -1, LoadID: -1})
}
func (n *Name) Accept(v Visitor) { v.VisitName(n) }

// ConstKind tags the scalar subtype of a Constant's payload.
type ConstKind uint8

const (
	ConstNone ConstKind = iota
	ConstBool
	ConstInt
	ConstFloat
	ConstString
)

type Constant struct {
	Base
	Tok   token.Token
	CKind ConstKind
	I     int64
	F     float64
	B     bool
	S     string
}

func NewConstantInt(a *Arena, tok token.Token, v int64) *Constant {
	return New(a, &Constant{Base: newBase(KConstant, tok.Span), Tok: tok, CKind: ConstInt, I: v})
}
func NewConstantFloat(a *Arena, tok token.Token, v float64) *Constant {
	return New(a, &Constant{Base: newBase(KConstant, tok.Span), Tok: tok, CKind: ConstFloat, F: v})
}
func NewConstantBool(a *Arena, tok token.Token, v bool) *Constant {
	return New(a, &Constant{Base: newBase(KConstant, tok.Span), Tok: tok, CKind: ConstBool, B: v})
}
func NewConstantString(a *Arena, tok token.Token, v string) *Constant {
	return New(a, &Constant{Base: newBase(KConstant, tok.Span), Tok: tok, CKind: ConstString, S: v})
}
func NewConstantNone(a *Arena, tok token.Token) *Constant {
	return New(a, &Constant{Base: newBase(KConstant, tok.Span), Tok: tok, CKind: ConstNone})
}
func (c *Constant) Accept(v Visitor) { v.VisitConstant(c) }

type BinOp struct {
	Base
	Tok       token.Token
	Left      Expression
	Op        string
	Right     Expression
	NativeOp  optable.BinKind
}

func NewBinOp(a *Arena, tok token.Token, left Expression, op string, right Expression, native optable.BinKind) *BinOp {
	n := New(a, &BinOp{Base: newBase(KBinOp, tok.Span), Tok: tok, Left: left, Op: op, Right: right, NativeOp: native})
	Attach(n, left)
	Attach(n, right)
	return n
}
func (n *BinOp) Accept(v Visitor) { v.VisitBinOp(n) }

// BoolOp represents a chain of same-operator boolean combinations:
// `a and b and c` is one BoolOp with Values=[a,b,c], OpCount=2 (invariant
// 2, spec.md §3).
type BoolOp struct {
	Base
	Tok     token.Token
	Op      string
	Values  []Expression
	OpCount int
	Native  optable.BoolKind
}

func NewBoolOp(a *Arena, tok token.Token, op string, values []Expression, native optable.BoolKind) *BoolOp {
	n := New(a, &BoolOp{Base: newBase(KBoolOp, tok.Span), Tok: tok, Op: op, Values: values, OpCount: len(values) - 1, Native: native})
	for _, val := range values {
		Attach(n, val)
	}
	return n
}
func (n *BoolOp) Accept(v Visitor) { v.VisitBoolOp(n) }

type UnaryOp struct {
	Base
	Tok      token.Token
	Op       string
	Operand  Expression
	NativeOp optable.UnaryKind
}

func NewUnaryOp(a *Arena, tok token.Token, op string, operand Expression, native optable.UnaryKind) *UnaryOp {
	n := New(a, &UnaryOp{Base: newBase(KUnaryOp, tok.Span), Tok: tok, Op: op, Operand: operand, NativeOp: native})
	Attach(n, operand)
	return n
}
func (n *UnaryOp) Accept(v Visitor) { v.VisitUnaryOp(n) }

// Compare is a (possibly chained) comparison: `a < b < c` is one node
// with Ops=[Lt,Lt], Comparators=[b,c] (invariant 2, spec.md §3/§8
// scenario 3).
type Compare struct {
	Base
	Tok         token.Token
	Left        Expression
	Ops         []string
	Comparators []Expression
	NativeOps   []optable.CmpKind
}

func NewCompare(a *Arena, tok token.Token, left Expression) *Compare {
	n := New(a, &Compare{Base: newBase(KCompare, tok.Span), Tok: tok, Left: left})
	Attach(n, left)
	return n
}
func (c *Compare) Extend(op string, native optable.CmpKind, comparator Expression) {
	c.Ops = append(c.Ops, op)
	c.NativeOps = append(c.NativeOps, native)
	c.Comparators = append(c.Comparators, comparator)
	Attach(c, comparator)
}
func (n *Compare) Accept(v Visitor) { v.VisitCompare(n) }

type Call struct {
	Base
	Tok      token.Token
	Func     Expression
	Args     []Expression
	Varargs  Expression // non-nil for `f(*args)` trailing spread
	Keywords []*Keyword
	JumpID   int // backpatched by the VM compiler once labels are known
}

func NewCall(a *Arena, tok token.Token, fn Expression, args []Expression, keywords []*Keyword) *Call {
	n := New(a, &Call{Base: newBase(KCall, tok.Span), Tok: tok, Func: fn, Args: args, Keywords: keywords, JumpID: -1})
	Attach(n, fn)
	for _, arg := range args {
		Attach(n, arg)
	}
	return n
}
func (n *Call) Accept(v Visitor) { v.VisitCall(n) }

type Attribute struct {
	Base
	Tok      token.Token
	Value    Expression
	Attr     string
	AttrID   int
	Resolved Node // the ClassAttr's statement, once Sema resolves it
	Ctx      ExprContext
}

func NewAttribute(a *Arena, tok token.Token, value Expression, attr string, ctx ExprContext) *Attribute {
	n := New(a, &Attribute{Base: newBase(KAttribute, tok.Span), Tok: tok, Value: value, Attr: attr, Ctx: ctx})
	Attach(n, value)
	return n
}
func (n *Attribute) Accept(v Visitor) { v.VisitAttribute(n) }

type Subscript struct {
	Base
	Tok   token.Token
	Value Expression
	Slice Expression
	Ctx   ExprContext
}

func NewSubscript(a *Arena, tok token.Token, value, slice Expression, ctx ExprContext) *Subscript {
	n := New(a, &Subscript{Base: newBase(KSubscript, tok.Span), Tok: tok, Value: value, Slice: slice, Ctx: ctx})
	Attach(n, value)
	Attach(n, slice)
	return n
}
func (n *Subscript) Accept(v Visitor) { v.VisitSubscript(n) }

type Starred struct {
	Base
	Tok   token.Token
	Value Expression
	Ctx   ExprContext
}

func NewStarred(a *Arena, tok token.Token, value Expression, ctx ExprContext) *Starred {
	n := New(a, &Starred{Base: newBase(KStarred, tok.Span), Tok: tok, Value: value, Ctx: ctx})
	Attach(n, value)
	return n
}
func (n *Starred) Accept(v Visitor) { v.VisitStarred(n) }

type IfExp struct {
	Base
	Tok    token.Token
	Test   Expression
	Body   Expression
	OrElse Expression
}

func NewIfExp(a *Arena, tok token.Token, test, body, orelse Expression) *IfExp {
	n := New(a, &IfExp{Base: newBase(KIfExp, tok.Span), Tok: tok, Test: test, Body: body, OrElse: orelse})
	Attach(n, test)
	Attach(n, body)
	Attach(n, orelse)
	return n
}
func (n *IfExp) Accept(v Visitor) { v.VisitIfExp(n) }

type Lambda struct {
	Base
	Tok  token.Token
	Args *Arguments
	Body Expression
}

func NewLambda(a *Arena, tok token.Token, args *Arguments, body Expression) *Lambda {
	n := New(a, &Lambda{Base: newBase(KLambda, tok.Span), Tok: tok, Args: args, Body: body})
	Attach(n, body)
	return n
}
func (n *Lambda) Accept(v Visitor) { v.VisitLambda(n) }

// NamedExpr is the walrus assignment expression `target := value`.
type NamedExpr struct {
	Base
	Tok    token.Token
	Target *Name
	Value  Expression
}

func NewNamedExpr(a *Arena, tok token.Token, target *Name, value Expression) *NamedExpr {
	n := New(a, &NamedExpr{Base: newBase(KNamedExpr, tok.Span), Tok: tok, Target: target, Value: value})
	Attach(n, target)
	Attach(n, value)
	return n
}
func (n *NamedExpr) Accept(v Visitor) { v.VisitNamedExpr(n) }

type Await struct {
	Base
	Tok   token.Token
	Value Expression
}

func NewAwait(a *Arena, tok token.Token, value Expression) *Await {
	n := New(a, &Await{Base: newBase(KAwait, tok.Span), Tok: tok, Value: value})
	Attach(n, value)
	return n
}
func (n *Await) Accept(v Visitor) { v.VisitAwait(n) }

type Yield struct {
	Base
	Tok   token.Token
	Value Expression // nil for a bare `yield`
}

func NewYield(a *Arena, tok token.Token, value Expression) *Yield {
	n := New(a, &Yield{Base: newBase(KYield, tok.Span), Tok: tok, Value: value})
	Attach(n, value)
	return n
}
func (n *Yield) Accept(v Visitor) { v.VisitYield(n) }

type YieldFrom struct {
	Base
	Tok   token.Token
	Value Expression
}

func NewYieldFrom(a *Arena, tok token.Token, value Expression) *YieldFrom {
	n := New(a, &YieldFrom{Base: newBase(KYieldFrom, tok.Span), Tok: tok, Value: value})
	Attach(n, value)
	return n
}
func (n *YieldFrom) Accept(v Visitor) { v.VisitYieldFrom(n) }

type ListExpr struct {
	Base
	Tok   token.Token
	Elts  []Expression
	Ctx   ExprContext
}

func NewListExpr(a *Arena, tok token.Token, elts []Expression, ctx ExprContext) *ListExpr {
	n := New(a, &ListExpr{Base: newBase(KListExpr, tok.Span), Tok: tok, Elts: elts, Ctx: ctx})
	for _, e := range elts {
		Attach(n, e)
	}
	return n
}
func (n *ListExpr) Accept(v Visitor) { v.VisitListExpr(n) }

type TupleExpr struct {
	Base
	Tok  token.Token
	Elts []Expression
	Ctx  ExprContext
}

func NewTupleExpr(a *Arena, tok token.Token, elts []Expression, ctx ExprContext) *TupleExpr {
	n := New(a, &TupleExpr{Base: newBase(KTupleExpr, tok.Span), Tok: tok, Elts: elts, Ctx: ctx})
	for _, e := range elts {
		Attach(n, e)
	}
	return n
}
func (n *TupleExpr) Accept(v Visitor) { v.VisitTupleExpr(n) }

type SetExpr struct {
	Base
	Tok  token.Token
	Elts []Expression
}

func NewSetExpr(a *Arena, tok token.Token, elts []Expression) *SetExpr {
	n := New(a, &SetExpr{Base: newBase(KSetExpr, tok.Span), Tok: tok, Elts: elts})
	for _, e := range elts {
		Attach(n, e)
	}
	return n
}
func (n *SetExpr) Accept(v Visitor) { v.VisitSetExpr(n) }

type DictExpr struct {
	Base
	Tok    token.Token
	Keys   []Expression // a nil entry at index i means `**Values[i]` unpacking
	Values []Expression
}

func NewDictExpr(a *Arena, tok token.Token, keys, values []Expression) *DictExpr {
	n := New(a, &DictExpr{Base: newBase(KDictExpr, tok.Span), Tok: tok, Keys: keys, Values: values})
	for _, k := range keys {
		Attach(n, k)
	}
	for _, val := range values {
		Attach(n, val)
	}
	return n
}
func (n *DictExpr) Accept(v Visitor) { v.VisitDictExpr(n) }

// CompClause is one `for target in iter [if cond]*` clause of a
// comprehension.
type CompClause struct {
	Target  Expression
	Iter    Expression
	Ifs     []Expression
	IsAsync bool
}

// CompKind distinguishes which of the four comprehension forms a
// Comprehension node represents; they share one struct because their
// shape (Elt/Key/Value + Clauses) is identical, only the Visitor entry
// point differs (spec.md §3).
type CompKind uint8

const (
	CompList CompKind = iota
	CompSet
	CompDict
	CompGenerator
)

type Comprehension struct {
	Base
	Tok     token.Token
	CKind   CompKind
	Elt     Expression // for List/Set/Generator
	Key     Expression // for Dict
	Value   Expression // for Dict
	Clauses []*CompClause
}

func NewComprehension(a *Arena, tok token.Token, kind CompKind) *Comprehension {
	k := KListComp
	switch kind {
	case CompSet:
		k = KSetComp
	case CompDict:
		k = KDictComp
	case CompGenerator:
		k = KGeneratorExp
	}
	return New(a, &Comprehension{Base: newBase(k, tok.Span), Tok: tok, CKind: kind})
}
func (n *Comprehension) Accept(v Visitor) {
	switch n.CKind {
	case CompSet:
		v.VisitSetComp(n)
	case CompDict:
		v.VisitDictComp(n)
	case CompGenerator:
		v.VisitGeneratorExp(n)
	default:
		v.VisitListComp(n)
	}
}

type Slice struct {
	Base
	Tok   token.Token
	Lower Expression
	Upper Expression
	Step  Expression
}

func NewSlice(a *Arena, tok token.Token, lower, upper, step Expression) *Slice {
	n := New(a, &Slice{Base: newBase(KSlice, tok.Span), Tok: tok, Lower: lower, Upper: upper, Step: step})
	Attach(n, lower)
	Attach(n, upper)
	Attach(n, step)
	return n
}
func (n *Slice) Accept(v Visitor) { v.VisitSlice(n) }

// JoinedStr is an f-string: a sequence of literal-text Constants and
// FormattedValue expressions, in source order.
type JoinedStr struct {
	Base
	Tok    token.Token
	Values []Expression
}

func NewJoinedStr(a *Arena, tok token.Token, values []Expression) *JoinedStr {
	n := New(a, &JoinedStr{Base: newBase(KJoinedStr, tok.Span), Tok: tok, Values: values})
	for _, val := range values {
		Attach(n, val)
	}
	return n
}
func (n *JoinedStr) Accept(v Visitor) { v.VisitJoinedStr(n) }

type FormattedValue struct {
	Base
	Tok        token.Token
	Value      Expression
	Conversion rune // 0, 'r', 's', 'a'
	FormatSpec Expression
}

func NewFormattedValue(a *Arena, tok token.Token, value Expression, conv rune, spec Expression) *FormattedValue {
	n := New(a, &FormattedValue{Base: newBase(KFormattedValue, tok.Span), Tok: tok, Value: value, Conversion: conv, FormatSpec: spec})
	Attach(n, value)
	Attach(n, spec)
	return n
}
func (n *FormattedValue) Accept(v Visitor) { v.VisitFormattedValue(n) }

// --- type-expression kinds ---

// Arrow is the function type `(T1, ..., Tn) -> R`, with optional per-arg
// Names/Defaults for keyword-callable signatures (spec.md §3, Glossary).
type Arrow struct {
	Base
	Tok      token.Token
	ArgTypes []Expression
	Returns  Expression
	Names    []string
	Defaults []Expression
}

func NewArrow(a *Arena, tok token.Token, argTypes []Expression, returns Expression) *Arrow {
	n := New(a, &Arrow{Base: newBase(KArrow, tok.Span), Tok: tok, ArgTypes: argTypes, Returns: returns})
	for _, t := range argTypes {
		Attach(n, t)
	}
	Attach(n, returns)
	return n
}
func (n *Arrow) Accept(v Visitor) { v.VisitArrow(n) }

type DictType struct {
	Base
	Tok   token.Token
	Key   Expression
	Value Expression
}

func NewDictType(a *Arena, tok token.Token, key, value Expression) *DictType {
	n := New(a, &DictType{Base: newBase(KDictType, tok.Span), Tok: tok, Key: key, Value: value})
	Attach(n, key)
	Attach(n, value)
	return n
}
func (n *DictType) Accept(v Visitor) { v.VisitDictType(n) }

type ArrayType struct {
	Base
	Tok  token.Token
	Elem Expression
}

func NewArrayType(a *Arena, tok token.Token, elem Expression) *ArrayType {
	n := New(a, &ArrayType{Base: newBase(KArrayType, tok.Span), Tok: tok, Elem: elem})
	Attach(n, elem)
	return n
}
func (n *ArrayType) Accept(v Visitor) { v.VisitArrayType(n) }

type SetType struct {
	Base
	Tok  token.Token
	Elem Expression
}

func NewSetType(a *Arena, tok token.Token, elem Expression) *SetType {
	n := New(a, &SetType{Base: newBase(KSetType, tok.Span), Tok: tok, Elem: elem})
	Attach(n, elem)
	return n
}
func (n *SetType) Accept(v Visitor) { v.VisitSetType(n) }

type TupleType struct {
	Base
	Tok   token.Token
	Elems []Expression
}

func NewTupleType(a *Arena, tok token.Token, elems []Expression) *TupleType {
	n := New(a, &TupleType{Base: newBase(KTupleType, tok.Span), Tok: tok, Elems: elems})
	for _, e := range elems {
		Attach(n, e)
	}
	return n
}
func (n *TupleType) Accept(v Visitor) { v.VisitTupleType(n) }

// BuiltinType names one of the pre-registered built-in types (i8..u64,
// f32/f64, bool, str, None, ...), per spec.md §4.7.
type BuiltinType struct {
	Base
	Tok  token.Token
	Name string
}

func NewBuiltinType(a *Arena, tok token.Token, name string) *BuiltinType {
	return New(a, &BuiltinType{Base: newBase(KBuiltinType, tok.Span), Tok: tok, Name: name})
}
func (n *BuiltinType) Accept(v Visitor) { v.VisitBuiltinType(n) }

// ClassType is a reference to a user-defined class used as a type.
type ClassType struct {
	Base
	Tok token.Token
	Def *ClassDef
}

func NewClassType(a *Arena, tok token.Token, def *ClassDef) *ClassType {
	return New(a, &ClassType{Base: newBase(KClassType, tok.Span), Tok: tok, Def: def})
}
func (n *ClassType) Accept(v Visitor) { v.VisitClassType(n) }

// Placeholder stands in for an expression the parser could not produce
// (used by type-expression parsing error recovery and by the VM
// compiler for not-yet-lowered slots).
type Placeholder struct {
	Base
	Tok token.Token
}

func NewPlaceholder(a *Arena, tok token.Token) *Placeholder {
	return New(a, &Placeholder{Base: newBase(KPlaceholder, tok.Span), Tok: tok})
}
func (n *Placeholder) Accept(v Visitor) { v.VisitPlaceholder(n) }

// Exported wraps an expression that a `package` export list re-exports
// under its own name.
type Exported struct {
	Base
	Tok   token.Token
	Name  string
	Value Expression
}

func NewExported(a *Arena, tok token.Token, name string, value Expression) *Exported {
	n := New(a, &Exported{Base: newBase(KExported, tok.Span), Tok: tok, Name: name, Value: value})
	Attach(n, value)
	return n
}
func (n *Exported) Accept(v Visitor) { v.VisitExported(n) }

// TokenLiteral-style accessors used by diagnostics (mirrors the
// GetToken() helper pattern the teacher repo uses throughout its AST).
func (n *Name) GetToken() token.Token            { return n.Tok }
func (c *Constant) GetToken() token.Token        { return c.Tok }
func (n *BinOp) GetToken() token.Token           { return n.Tok }
func (n *Call) GetToken() token.Token            { return n.Tok }
func (n *Attribute) GetToken() token.Token       { return n.Tok }
