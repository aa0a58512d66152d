package ast

// Visitor is a uniform dispatch interface with one method per Kind and a
// Node.Accept(v) that calls straight through (Go has no CRTP). No pass in
// the tree implements it: the printers, equality, Sema, the evaluator and
// the VM compiler all dispatch by type switch. kindMethodCount below
// mirrors kindCount as a cross-check of the method count.
type Visitor interface {
	// Module family.
	VisitModule(*Module)
	VisitInteractive(*Interactive)
	VisitExpressionMod(*ExpressionMod)
	VisitFunctionType(*FunctionTypeMod)

	// Statement family.
	VisitFunctionDef(*FunctionDef)
	VisitAsyncFunctionDef(*FunctionDef)
	VisitClassDef(*ClassDef)
	VisitReturn(*Return)
	VisitAssign(*Assign)
	VisitAnnAssign(*AnnAssign)
	VisitAugAssign(*AugAssign)
	VisitDelete(*Delete)
	VisitFor(*For)
	VisitAsyncFor(*For)
	VisitWhile(*While)
	VisitIf(*If)
	VisitWith(*With)
	VisitAsyncWith(*With)
	VisitRaise(*Raise)
	VisitTry(*Try)
	VisitAssert(*Assert)
	VisitImport(*Import)
	VisitImportFrom(*ImportFrom)
	VisitGlobal(*Global)
	VisitNonlocal(*Nonlocal)
	VisitExprStmt(*ExprStmt)
	VisitPass(*Pass)
	VisitBreak(*Break)
	VisitContinue(*Continue)
	VisitMatch(*Match)
	VisitInline(*Inline)
	VisitComment(*Comment)
	VisitInvalidStatement(*InvalidStatement)

	// Expression family.
	VisitName(*Name)
	VisitConstant(*Constant)
	VisitBinOp(*BinOp)
	VisitBoolOp(*BoolOp)
	VisitUnaryOp(*UnaryOp)
	VisitCompare(*Compare)
	VisitCall(*Call)
	VisitAttribute(*Attribute)
	VisitSubscript(*Subscript)
	VisitStarred(*Starred)
	VisitIfExp(*IfExp)
	VisitLambda(*Lambda)
	VisitNamedExpr(*NamedExpr)
	VisitAwait(*Await)
	VisitYield(*Yield)
	VisitYieldFrom(*YieldFrom)
	VisitListExpr(*ListExpr)
	VisitTupleExpr(*TupleExpr)
	VisitSetExpr(*SetExpr)
	VisitDictExpr(*DictExpr)
	VisitListComp(*Comprehension)
	VisitSetComp(*Comprehension)
	VisitDictComp(*Comprehension)
	VisitGeneratorExp(*Comprehension)
	VisitSlice(*Slice)
	VisitJoinedStr(*JoinedStr)
	VisitFormattedValue(*FormattedValue)
	VisitArrow(*Arrow)
	VisitDictType(*DictType)
	VisitArrayType(*ArrayType)
	VisitSetType(*SetType)
	VisitTupleType(*TupleType)
	VisitBuiltinType(*BuiltinType)
	VisitClassType(*ClassType)
	VisitPlaceholder(*Placeholder)
	VisitExported(*Exported)

	// Pattern family.
	VisitMatchValue(*MatchValue)
	VisitMatchSingleton(*MatchSingleton)
	VisitMatchSequence(*MatchSequence)
	VisitMatchMapping(*MatchMapping)
	VisitMatchClass(*MatchClass)
	VisitMatchStar(*MatchStar)
	VisitMatchAs(*MatchAs)
	VisitMatchOr(*MatchOr)

	// VM family.
	VisitVMStmt(*VMStmt)
	VisitJump(*Jump)
	VisitCondJump(*CondJump)
	VisitVMNativeFunction(*VMNativeFunction)
}

// BaseVisitor carries a pass Name and an unimplemented helper that panics
// naming the pass and the kind. It defines no Visit methods itself, so a
// type embedding it must still implement every Visitor method.
type BaseVisitor struct{ Name string }

func (b BaseVisitor) unimplemented(kind string) {
	panic("ast: visitor " + b.Name + " has no case for " + kind)
}

// kindMethodCount must track kindCount; it exists purely so a reviewer
// (or a future generator) has a single place to cross-check that
// Visitor's method count still matches len(Kind).
const kindMethodCount = int(kindCount)
