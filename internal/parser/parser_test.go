package parser_test

import (
	"strings"
	"testing"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/buffer"
	"github.com/kiwi-lang/kiwi/internal/lexer"
	"github.com/kiwi-lang/kiwi/internal/ops"
	"github.com/kiwi-lang/kiwi/internal/parser"
)

// parse lexes+parses src and fails the test on any diagnostic.
func parse(t *testing.T, src string) *ast.Module {
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
	return mod
}

// parseAllowErrors is like parse but returns the module even when the
// recovery path produced diagnostics, for error-recovery tests.
func parseAllowErrors(t *testing.T, src string) (*ast.Module, int) {
	t.Helper()
	buf := buffer.NewStringBuffer("test.kiwi", src)
	lx := lexer.New(buf)
	p := parser.New("test.kiwi", lx)
	mod := p.ParseModule()
	return mod, p.Errors().Len()
}

func stmt(t *testing.T, mod *ast.Module, idx int) ast.Statement {
	t.Helper()
	if idx >= len(mod.Body) {
		t.Fatalf("expected at least %d statements, got %d", idx+1, len(mod.Body))
	}
	return mod.Body[idx]
}

func exprStmtValue(t *testing.T, mod *ast.Module, idx int) ast.Expression {
	t.Helper()
	es, ok := stmt(t, mod, idx).(*ast.ExprStmt)
	if !ok {
		t.Fatalf("statement %d: expected *ast.ExprStmt, got %T", idx, stmt(t, mod, idx))
	}
	return es.Value
}

// ---------- precedence ----------

func TestPrecedence_ArithmeticBindsTighterThanBoolOp(t *testing.T) {
	mod := parse(t, "1 + 2 or 3\n")
	bo, ok := exprStmtValue(t, mod, 0).(*ast.BoolOp)
	if !ok {
		t.Fatalf("expected top node *ast.BoolOp, got %T", exprStmtValue(t, mod, 0))
	}
	if len(bo.Values) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(bo.Values))
	}
	if _, ok := bo.Values[0].(*ast.BinOp); !ok {
		t.Fatalf("expected left operand *ast.BinOp (1 + 2), got %T", bo.Values[0])
	}
}

func TestPrecedence_ComparisonLooserThanBitOr(t *testing.T) {
	mod := parse(t, "a | b == c\n")
	cmp, ok := exprStmtValue(t, mod, 0).(*ast.Compare)
	if !ok {
		t.Fatalf("expected top node *ast.Compare, got %T", exprStmtValue(t, mod, 0))
	}
	if _, ok := cmp.Left.(*ast.BinOp); !ok {
		t.Fatalf("expected comparison left side *ast.BinOp (a | b), got %T", cmp.Left)
	}
}

func TestPrecedence_PowerIsRightAssociative(t *testing.T) {
	mod := parse(t, "2 ** 3 ** 2\n")
	top, ok := exprStmtValue(t, mod, 0).(*ast.BinOp)
	if !ok {
		t.Fatalf("expected *ast.BinOp, got %T", exprStmtValue(t, mod, 0))
	}
	if _, ok := top.Right.(*ast.BinOp); !ok {
		t.Fatalf("expected right-associative grouping (2 ** (3 ** 2)), right was %T", top.Right)
	}
	if _, ok := top.Left.(*ast.Constant); !ok {
		t.Fatalf("expected left side to be the bare literal 2, got %T", top.Left)
	}
}

func TestPrecedence_UnaryMinusLooserThanPower(t *testing.T) {
	// -2 ** 2 is -(2 ** 2) in Python-style precedence.
	mod := parse(t, "-2 ** 2\n")
	u, ok := exprStmtValue(t, mod, 0).(*ast.UnaryOp)
	if !ok {
		t.Fatalf("expected top node *ast.UnaryOp, got %T", exprStmtValue(t, mod, 0))
	}
	if _, ok := u.Operand.(*ast.BinOp); !ok {
		t.Fatalf("expected unary operand *ast.BinOp (2 ** 2), got %T", u.Operand)
	}
}

func TestPrecedence_ChainedComparisonIsOneNode(t *testing.T) {
	mod := parse(t, "1 < 2 < 3\n")
	cmp, ok := exprStmtValue(t, mod, 0).(*ast.Compare)
	if !ok {
		t.Fatalf("expected *ast.Compare, got %T", exprStmtValue(t, mod, 0))
	}
	if len(cmp.Ops) != 2 || len(cmp.Comparators) != 2 {
		t.Fatalf("expected a 2-op chain, got ops=%v comparators=%d", cmp.Ops, len(cmp.Comparators))
	}
}

func TestPrecedence_ChainedBoolOpMergesIntoOneNode(t *testing.T) {
	mod := parse(t, "a and b and c\n")
	bo, ok := exprStmtValue(t, mod, 0).(*ast.BoolOp)
	if !ok {
		t.Fatalf("expected *ast.BoolOp, got %T", exprStmtValue(t, mod, 0))
	}
	if len(bo.Values) != 3 || bo.OpCount != 2 {
		t.Fatalf("expected 3 values/OpCount=2, got values=%d OpCount=%d", len(bo.Values), bo.OpCount)
	}
}

func TestPrecedence_IsNotAndNotInAreSingleOperators(t *testing.T) {
	mod := parse(t, "a is not b\nc not in d\n")
	cmp1 := exprStmtValue(t, mod, 0).(*ast.Compare)
	if len(cmp1.Ops) != 1 || cmp1.Ops[0] != "is not" {
		t.Fatalf("expected single 'is not' op, got %v", cmp1.Ops)
	}
	cmp2 := exprStmtValue(t, mod, 1).(*ast.Compare)
	if len(cmp2.Ops) != 1 || cmp2.Ops[0] != "not in" {
		t.Fatalf("expected single 'not in' op, got %v", cmp2.Ops)
	}
}

// ---------- assignment / simple statements ----------

func TestAssign_Simple(t *testing.T) {
	mod := parse(t, "x = 1\n")
	as, ok := stmt(t, mod, 0).(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", stmt(t, mod, 0))
	}
	if len(as.Targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(as.Targets))
	}
	if n, ok := as.Targets[0].(*ast.Name); !ok || n.ID_ != "x" {
		t.Fatalf("expected target Name(x), got %#v", as.Targets[0])
	}
}

func TestAssign_Chained(t *testing.T) {
	mod := parse(t, "a = b = 1\n")
	as := stmt(t, mod, 0).(*ast.Assign)
	if len(as.Targets) != 2 {
		t.Fatalf("expected 2 chained targets, got %d", len(as.Targets))
	}
}

func TestAugAssign(t *testing.T) {
	mod := parse(t, "x += 1\n")
	aa, ok := stmt(t, mod, 0).(*ast.AugAssign)
	if !ok {
		t.Fatalf("expected *ast.AugAssign, got %T", stmt(t, mod, 0))
	}
	_ = aa
}

func TestAnnAssign(t *testing.T) {
	mod := parse(t, "x: int = 1\n")
	an, ok := stmt(t, mod, 0).(*ast.AnnAssign)
	if !ok {
		t.Fatalf("expected *ast.AnnAssign, got %T", stmt(t, mod, 0))
	}
	if an.Annotation == nil {
		t.Fatalf("expected non-nil annotation")
	}
}

func TestTupleAssignTarget(t *testing.T) {
	mod := parse(t, "a, b = 1, 2\n")
	as := stmt(t, mod, 0).(*ast.Assign)
	tup, ok := as.Targets[0].(*ast.TupleExpr)
	if !ok {
		t.Fatalf("expected tuple target, got %T", as.Targets[0])
	}
	if len(tup.Elts) != 2 {
		t.Fatalf("expected 2 tuple elements, got %d", len(tup.Elts))
	}
}

// ---------- control flow ----------

func TestIf_ElifElse(t *testing.T) {
	mod := parse(t, "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n")
	n, ok := stmt(t, mod, 0).(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", stmt(t, mod, 0))
	}
	if n.Test == nil || len(n.Body) != 1 {
		t.Fatalf("expected leading if clause populated, got Test=%v Body=%d", n.Test, len(n.Body))
	}
	if len(n.Tests) != 1 || len(n.Bodies) != 1 {
		t.Fatalf("expected exactly 1 elif clause, got Tests=%d Bodies=%d", len(n.Tests), len(n.Bodies))
	}
	if len(n.OrElse) != 1 {
		t.Fatalf("expected 1 else statement, got %d", len(n.OrElse))
	}
}

func TestFor_BareTupleTarget(t *testing.T) {
	mod := parse(t, "for k, v in d.items():\n    pass\n")
	n, ok := stmt(t, mod, 0).(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", stmt(t, mod, 0))
	}
	tup, ok := n.Target.(*ast.TupleExpr)
	if !ok {
		t.Fatalf("expected tuple target, got %T", n.Target)
	}
	if len(tup.Elts) != 2 {
		t.Fatalf("expected 2 target names, got %d", len(tup.Elts))
	}
}

func TestWhile_WithElse(t *testing.T) {
	mod := parse(t, "while a:\n    pass\nelse:\n    pass\n")
	n, ok := stmt(t, mod, 0).(*ast.While)
	if !ok {
		t.Fatalf("expected *ast.While, got %T", stmt(t, mod, 0))
	}
	if len(n.OrElse) != 1 {
		t.Fatalf("expected 1 else statement, got %d", len(n.OrElse))
	}
}

func TestTry_ExceptElseFinally(t *testing.T) {
	src := "try:\n    pass\nexcept ValueError as e:\n    pass\nelse:\n    pass\nfinally:\n    pass\n"
	mod := parse(t, src)
	n, ok := stmt(t, mod, 0).(*ast.Try)
	if !ok {
		t.Fatalf("expected *ast.Try, got %T", stmt(t, mod, 0))
	}
	if len(n.Handlers) != 1 {
		t.Fatalf("expected 1 handler, got %d", len(n.Handlers))
	}
	if len(n.OrElse) != 1 || len(n.FinalBody) != 1 {
		t.Fatalf("expected else/finally bodies populated, got OrElse=%d FinalBody=%d", len(n.OrElse), len(n.FinalBody))
	}
}

func TestWith_MultipleItems(t *testing.T) {
	mod := parse(t, "with a() as x, b() as y:\n    pass\n")
	n, ok := stmt(t, mod, 0).(*ast.With)
	if !ok {
		t.Fatalf("expected *ast.With, got %T", stmt(t, mod, 0))
	}
	if len(n.Items) != 2 {
		t.Fatalf("expected 2 with-items, got %d", len(n.Items))
	}
}

// ---------- functions ----------

func TestFunctionDef_FullParamGrammar(t *testing.T) {
	src := "def f(a, b=1, /, c, *args, d, e=2, **kwargs) -> int:\n    return 1\n"
	mod := parse(t, src)
	fn, ok := stmt(t, mod, 0).(*ast.FunctionDef)
	if !ok {
		t.Fatalf("expected *ast.FunctionDef, got %T", stmt(t, mod, 0))
	}
	args := fn.Args
	if len(args.PosOnlyArgs) != 2 {
		t.Fatalf("expected 2 positional-only args, got %d", len(args.PosOnlyArgs))
	}
	if len(args.Args) != 1 {
		t.Fatalf("expected 1 ordinary arg (c), got %d", len(args.Args))
	}
	if args.Vararg == nil || args.Vararg.Name != "args" {
		t.Fatalf("expected vararg 'args', got %v", args.Vararg)
	}
	if len(args.KwOnlyArgs) != 2 {
		t.Fatalf("expected 2 kw-only args, got %d", len(args.KwOnlyArgs))
	}
	if args.Kwarg == nil || args.Kwarg.Name != "kwargs" {
		t.Fatalf("expected kwarg 'kwargs', got %v", args.Kwarg)
	}
	if fn.Returns == nil {
		t.Fatalf("expected non-nil return annotation")
	}
}

func TestFunctionDef_IsGeneratorDetection(t *testing.T) {
	mod := parse(t, "def gen():\n    yield 1\n")
	fn := stmt(t, mod, 0).(*ast.FunctionDef)
	if !fn.IsGenerator {
		t.Fatalf("expected IsGenerator=true for a function whose body yields")
	}

	mod2 := parse(t, "def plain():\n    return 1\n")
	fn2 := stmt(t, mod2, 0).(*ast.FunctionDef)
	if fn2.IsGenerator {
		t.Fatalf("expected IsGenerator=false for a non-yielding function")
	}
}

func TestDecoratedFunctionDef(t *testing.T) {
	mod := parse(t, "@staticmethod\ndef f():\n    pass\n")
	fn := stmt(t, mod, 0).(*ast.FunctionDef)
	if len(fn.Decorators) != 1 {
		t.Fatalf("expected 1 decorator, got %d", len(fn.Decorators))
	}
}

func TestLambda(t *testing.T) {
	mod := parse(t, "f = lambda x, y=1: x + y\n")
	as := stmt(t, mod, 0).(*ast.Assign)
	lam, ok := as.Value.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected *ast.Lambda, got %T", as.Value)
	}
	if len(lam.Args.Args) != 2 {
		t.Fatalf("expected 2 lambda args, got %d", len(lam.Args.Args))
	}
}

// ---------- calls / collections ----------

func TestCall_PositionalKeywordStarStarKwargs(t *testing.T) {
	mod := parse(t, "f(1, 2, x=3, *a, **b)\n")
	call, ok := exprStmtValue(t, mod, 0).(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %T", exprStmtValue(t, mod, 0))
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 positional args, got %d", len(call.Args))
	}
	if call.Varargs == nil {
		t.Fatalf("expected varargs spread to be set")
	}
	foundKw, foundSpread := false, false
	for _, kw := range call.Keywords {
		if kw.Name == "x" {
			foundKw = true
		}
		if kw.Name == "" {
			foundSpread = true
		}
	}
	if !foundKw {
		t.Fatalf("expected keyword arg x=3")
	}
	if !foundSpread {
		t.Fatalf("expected **b spread keyword")
	}
}

func TestListDictSetLiterals(t *testing.T) {
	mod := parse(t, "[1, 2, 3]\n{1: 2, 3: 4}\n{1, 2, 3}\n()\n(1,)\n")
	if _, ok := exprStmtValue(t, mod, 0).(*ast.ListExpr); !ok {
		t.Fatalf("expected *ast.ListExpr, got %T", exprStmtValue(t, mod, 0))
	}
	if _, ok := exprStmtValue(t, mod, 1).(*ast.DictExpr); !ok {
		t.Fatalf("expected *ast.DictExpr, got %T", exprStmtValue(t, mod, 1))
	}
	if _, ok := exprStmtValue(t, mod, 2).(*ast.SetExpr); !ok {
		t.Fatalf("expected *ast.SetExpr, got %T", exprStmtValue(t, mod, 2))
	}
	tup0, ok := exprStmtValue(t, mod, 3).(*ast.TupleExpr)
	if !ok || len(tup0.Elts) != 0 {
		t.Fatalf("expected empty tuple, got %#v", exprStmtValue(t, mod, 3))
	}
	tup1, ok := exprStmtValue(t, mod, 4).(*ast.TupleExpr)
	if !ok || len(tup1.Elts) != 1 {
		t.Fatalf("expected 1-tuple, got %#v", exprStmtValue(t, mod, 4))
	}
}

func TestListComprehension(t *testing.T) {
	mod := parse(t, "[x for x in xs if x > 0]\n")
	comp, ok := exprStmtValue(t, mod, 0).(*ast.Comprehension)
	if !ok {
		t.Fatalf("expected *ast.Comprehension, got %T", exprStmtValue(t, mod, 0))
	}
	if comp.CKind != ast.CompList {
		t.Fatalf("expected CompList kind, got %v", comp.CKind)
	}
	if len(comp.Clauses) != 1 {
		t.Fatalf("expected 1 for-clause, got %d", len(comp.Clauses))
	}
	if len(comp.Clauses[0].Ifs) != 1 {
		t.Fatalf("expected 1 if-filter, got %d", len(comp.Clauses[0].Ifs))
	}
}

func TestDictComprehension(t *testing.T) {
	mod := parse(t, "{k: v for k, v in d.items()}\n")
	comp, ok := exprStmtValue(t, mod, 0).(*ast.Comprehension)
	if !ok {
		t.Fatalf("expected *ast.Comprehension, got %T", exprStmtValue(t, mod, 0))
	}
	if comp.CKind != ast.CompDict {
		t.Fatalf("expected CompDict kind, got %v", comp.CKind)
	}
}

func TestSubscriptSlice(t *testing.T) {
	mod := parse(t, "a[1:2:3]\n")
	sub, ok := exprStmtValue(t, mod, 0).(*ast.Subscript)
	if !ok {
		t.Fatalf("expected *ast.Subscript, got %T", exprStmtValue(t, mod, 0))
	}
	if _, ok := sub.Slice.(*ast.Slice); !ok {
		t.Fatalf("expected *ast.Slice index, got %T", sub.Slice)
	}
}

func TestConditionalExpression(t *testing.T) {
	mod := parse(t, "a if cond else b\n")
	if _, ok := exprStmtValue(t, mod, 0).(*ast.IfExp); !ok {
		t.Fatalf("expected *ast.IfExp, got %T", exprStmtValue(t, mod, 0))
	}
}

func TestWalrus(t *testing.T) {
	mod := parse(t, "(x := 1)\n")
	if _, ok := exprStmtValue(t, mod, 0).(*ast.NamedExpr); !ok {
		t.Fatalf("expected *ast.NamedExpr, got %T", exprStmtValue(t, mod, 0))
	}
}

// ---------- f-strings ----------

func TestFString_FieldAndConversionAndFormatSpec(t *testing.T) {
	mod := parse(t, "f\"hello {name!r:>10}\"\n")
	js, ok := exprStmtValue(t, mod, 0).(*ast.JoinedStr)
	if !ok {
		t.Fatalf("expected *ast.JoinedStr, got %T", exprStmtValue(t, mod, 0))
	}
	var fv *ast.FormattedValue
	for _, part := range js.Values {
		if f, ok := part.(*ast.FormattedValue); ok {
			fv = f
		}
	}
	if fv == nil {
		t.Fatalf("expected a FormattedValue part in the f-string")
	}
	if fv.Conversion != 'r' {
		t.Fatalf("expected conversion 'r', got %q", fv.Conversion)
	}
	if fv.FormatSpec == nil {
		t.Fatalf("expected a format spec to be attached")
	}
}

// ---------- match ----------

func TestMatch_Patterns(t *testing.T) {
	src := "match point:\n" +
		"    case Point(x=0, y=0):\n" +
		"        pass\n" +
		"    case [a, *rest]:\n" +
		"        pass\n" +
		"    case {\"k\": v, **rest2}:\n" +
		"        pass\n" +
		"    case 1 | 2:\n" +
		"        pass\n" +
		"    case _:\n" +
		"        pass\n"
	mod := parse(t, src)
	m, ok := stmt(t, mod, 0).(*ast.Match)
	if !ok {
		t.Fatalf("expected *ast.Match, got %T", stmt(t, mod, 0))
	}
	if len(m.Cases) != 5 {
		t.Fatalf("expected 5 case clauses, got %d", len(m.Cases))
	}
	if _, ok := m.Cases[0].Pattern.(*ast.MatchClass); !ok {
		t.Fatalf("expected case 0 *ast.MatchClass, got %T", m.Cases[0].Pattern)
	}
	if _, ok := m.Cases[1].Pattern.(*ast.MatchSequence); !ok {
		t.Fatalf("expected case 1 *ast.MatchSequence, got %T", m.Cases[1].Pattern)
	}
	if _, ok := m.Cases[2].Pattern.(*ast.MatchMapping); !ok {
		t.Fatalf("expected case 2 *ast.MatchMapping, got %T", m.Cases[2].Pattern)
	}
	if _, ok := m.Cases[3].Pattern.(*ast.MatchOr); !ok {
		t.Fatalf("expected case 3 *ast.MatchOr, got %T", m.Cases[3].Pattern)
	}
	wc, ok := m.Cases[4].Pattern.(*ast.MatchAs)
	if !ok || wc.Pattern != nil || wc.Name != "" {
		t.Fatalf("expected case 4 to be a bare wildcard MatchAs, got %#v", m.Cases[4].Pattern)
	}
}

// ---------- comments ----------

func TestStandaloneComment(t *testing.T) {
	mod := parse(t, "# hello\nx = 1\n")
	if _, ok := stmt(t, mod, 0).(*ast.Comment); !ok {
		t.Fatalf("expected a standalone *ast.Comment statement, got %T", stmt(t, mod, 0))
	}
}

func TestTrailingCommentAttachesToAssign(t *testing.T) {
	mod := parse(t, "x = 1  # note\n")
	as := stmt(t, mod, 0).(*ast.Assign)
	if as.Comment == nil {
		t.Fatalf("expected trailing comment attached to the Assign node")
	}
}

// ---------- error recovery ----------

func TestErrorRecovery_InvalidStatementDoesNotHaltParsing(t *testing.T) {
	mod, errCount := parseAllowErrors(t, "x = \ny = 2\n")
	if errCount == 0 {
		t.Fatalf("expected at least one diagnostic for the malformed assignment")
	}
	if len(mod.Body) < 2 {
		t.Fatalf("expected parsing to recover and still see the following statement, got %d statements", len(mod.Body))
	}
	if _, ok := stmt(t, mod, 1).(*ast.Assign); !ok {
		t.Fatalf("expected statement after the error to still parse as *ast.Assign, got %T", stmt(t, mod, 1))
	}
}

// ---------- print round-trip ----------

func TestPrintRoundTrip(t *testing.T) {
	srcs := []string{
		"x = 1\n",
		"def f(a, b=1):\n    return a + b\n",
		"if a:\n    pass\nelse:\n    pass\n",
		"for x in xs:\n    print(x)\n",
		"class C:\n    def m(self):\n        pass\n",
	}
	for _, src := range srcs {
		mod := parse(t, src)
		out := ops.Sprint(mod)
		if strings.TrimSpace(out) == "" {
			t.Fatalf("expected non-empty printed output for %q", src)
		}
		mod2 := parse(t, out)
		if len(mod2.Body) != len(mod.Body) {
			t.Fatalf("round-trip statement count mismatch for %q: got %d want %d", src, len(mod2.Body), len(mod.Body))
		}
	}
}
