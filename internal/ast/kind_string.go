package ast

// kindNames mirrors the teacher's token.names lookup table pattern:
// one String() entry per enum value, used by diagnostics and the
// ops.Lisp dump fallback.
var kindNames = [kindCount]string{
	KModule: "Module", KInteractive: "Interactive", KExpressionMod: "ExpressionMod", KFunctionType: "FunctionType",

	KFunctionDef: "FunctionDef", KAsyncFunctionDef: "AsyncFunctionDef", KClassDef: "ClassDef",
	KReturn: "Return", KAssign: "Assign", KAnnAssign: "AnnAssign", KAugAssign: "AugAssign",
	KDelete: "Delete", KFor: "For", KAsyncFor: "AsyncFor", KWhile: "While", KIf: "If",
	KWith: "With", KAsyncWith: "AsyncWith", KRaise: "Raise", KTry: "Try", KAssert: "Assert",
	KImport: "Import", KImportFrom: "ImportFrom", KGlobal: "Global", KNonlocal: "Nonlocal",
	KExprStmt: "ExprStmt", KPass: "Pass", KBreak: "Break", KContinue: "Continue", KMatch: "Match",
	KInline: "Inline", KComment: "Comment", KInvalidStatement: "InvalidStatement",

	KName: "Name", KConstant: "Constant", KBinOp: "BinOp", KBoolOp: "BoolOp", KUnaryOp: "UnaryOp",
	KCompare: "Compare", KCall: "Call", KAttribute: "Attribute", KSubscript: "Subscript",
	KStarred: "Starred", KIfExp: "IfExp", KLambda: "Lambda", KNamedExpr: "NamedExpr",
	KAwait: "Await", KYield: "Yield", KYieldFrom: "YieldFrom", KListExpr: "List",
	KTupleExpr: "Tuple", KSetExpr: "Set", KDictExpr: "Dict", KListComp: "ListComp",
	KSetComp: "SetComp", KDictComp: "DictComp", KGeneratorExp: "GeneratorExp", KSlice: "Slice",
	KJoinedStr: "JoinedStr", KFormattedValue: "FormattedValue", KArrow: "Arrow",
	KDictType: "DictType", KArrayType: "ArrayType", KSetType: "SetType", KTupleType: "TupleType",
	KBuiltinType: "BuiltinType", KClassType: "ClassType", KPlaceholder: "Placeholder", KExported: "Exported",

	KMatchValue: "MatchValue", KMatchSingleton: "MatchSingleton", KMatchSequence: "MatchSequence",
	KMatchMapping: "MatchMapping", KMatchClass: "MatchClass", KMatchStar: "MatchStar",
	KMatchAs: "MatchAs", KMatchOr: "MatchOr",

	KVMStmt: "VMStmt", KJump: "Jump", KCondJump: "CondJump", KVMNativeFunction: "VMNativeFunction",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
