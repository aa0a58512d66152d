// Package sema implements the semantic analysis pass of spec.md §4.8:
// name resolution, assignment binding, structural typechecking,
// operator resolution, class building and constructor typing, and call
// reordering/typing. Dispatch is an explicit type switch per AST kind
// rather than ast.Visitor, mirroring internal/ops/equality.go's
// precedent — the Design Notes (spec.md §9) sanction "a closed sum type
// with an explicit match/dispatch" over a 90-method visitor interface
// for passes like this one.
package sema

import (
	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/bindings"
	"github.com/kiwi-lang/kiwi/internal/diagnostics"
	"github.com/kiwi-lang/kiwi/internal/ops"
	"github.com/kiwi-lang/kiwi/internal/token"
	"github.com/kiwi-lang/kiwi/internal/values"
)

// Analyzer walks a parsed Module and annotates it in place: Name nodes
// get their StoreID/LoadID stamped, FunctionDef.Type/ClassDef.CtorT get
// synthesized Arrows, and Call.Args get reordered to positional form.
// Diagnostics accumulate in Errors rather than aborting the walk, so a
// single analysis pass reports every error it can find (spec.md §4.8).
type Analyzer struct {
	arena   *ast.Arena
	table   *bindings.Table
	errors  *diagnostics.Bag
	types   *values.TypeRegistry

	binary map[string]ast.Expression
	cmp    map[string]ast.Expression
	unary  map[string]ast.Expression

	builtins map[string]ast.Expression

	currentClass *ast.ClassDef
}

// New builds an Analyzer over module's arena, pre-populating bindings
// with the builtin type/constant set (spec.md §4.7) and the scalar
// operator-resolution registries (spec.md §4.8).
func New(arena *ast.Arena) *Analyzer {
	a := &Analyzer{
		arena:    arena,
		table:    bindings.New(),
		errors:   &diagnostics.Bag{},
		types:    values.NewTypeRegistry(),
		binary:   map[string]ast.Expression{},
		cmp:      map[string]ast.Expression{},
		unary:    map[string]ast.Expression{},
		builtins: map[string]ast.Expression{},
	}
	a.registerBuiltinOperators()
	return a
}

// Errors returns the diagnostics accumulated during Analyze.
func (a *Analyzer) Errors() *diagnostics.Bag { return a.errors }

// Table exposes the binding table that maps StoreID/LoadID indices back
// to their definition sites. The evaluator and VM do not read it; they
// resolve names through their own name-keyed frames.
func (a *Analyzer) Table() *bindings.Table { return a.table }

// Types exposes the class/builtin TypeRegistry the evaluator/VM use to
// resolve a runtime values.Value's TypeID back to its ast.ClassDef.
func (a *Analyzer) Types() *values.TypeRegistry { return a.types }

// Analyze walks every top-level statement of mod, resolving names,
// binding assignments, and typing expressions. Module.Init is analyzed
// first so a module's statically-evaluable preamble (spec.md §3's
// "Init" field) sees the same bindings an Interactive re-run would.
func (a *Analyzer) Analyze(mod *ast.Module) {
	for _, s := range mod.Init {
		a.stmt(s)
	}
	for _, s := range mod.Body {
		a.stmt(s)
	}
}

// stmt dispatches one statement. Returning nothing: statements don't
// carry a type in Kiwi's sense (only expressions and FunctionDef/
// ClassDef's synthesized Arrow do).
func (a *Analyzer) stmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		a.expr(n.Value)
	case *ast.Assign:
		a.analyzeAssign(n)
	case *ast.AnnAssign:
		a.analyzeAnnAssign(n)
	case *ast.AugAssign:
		a.analyzeAugAssign(n)
	case *ast.Return:
		if n.Value != nil {
			a.expr(n.Value)
		}
	case *ast.FunctionDef:
		a.analyzeFunctionDef(n)
	case *ast.ClassDef:
		a.analyzeClassDef(n)
	case *ast.If:
		a.analyzeIf(n)
	case *ast.While:
		a.analyzeWhile(n)
	case *ast.For:
		a.analyzeFor(n)
	case *ast.Try:
		a.analyzeTry(n)
	case *ast.With:
		a.analyzeWith(n)
	case *ast.Match:
		a.analyzeMatch(n)
	case *ast.Raise:
		if n.Exc != nil {
			a.expr(n.Exc)
		}
		if n.Cause != nil {
			a.expr(n.Cause)
		}
	case *ast.Assert:
		a.expr(n.Test)
		if n.Msg != nil {
			a.expr(n.Msg)
		}
	case *ast.Import, *ast.ImportFrom, *ast.Global, *ast.Nonlocal,
		*ast.Pass, *ast.Break, *ast.Continue, *ast.Comment, *ast.InvalidStatement:
		// no bindings or types to resolve
	case *ast.Inline:
		for _, s2 := range n.Body {
			a.stmt(s2)
		}
	default:
		a.errors.Add(diagnostics.NewSyntaxError(token.Token{}, "sema: unhandled statement kind %T", s))
	}
}

func (a *Analyzer) analyzeAssign(n *ast.Assign) {
	var rhsT ast.Expression
	if n.Value != nil {
		rhsT = a.expr(n.Value)
	}
	for _, target := range n.Targets {
		a.bindTarget(target, rhsT, n.Value)
	}
}

// bindTarget adds (or rebinds) names in target with typ, unpacking a
// tuple target against a TupleType of matching arity (spec.md §4.8's
// "tuple targets unpack a TupleType").
func (a *Analyzer) bindTarget(target ast.Expression, typ ast.Expression, value ast.Expression) {
	switch t := target.(type) {
	case *ast.Name:
		a.defineName(t, typ, value)
	case *ast.TupleExpr:
		tt, _ := typ.(*ast.TupleType)
		for i, elt := range t.Elts {
			var elemT ast.Expression
			if tt != nil && i < len(tt.Elems) {
				elemT = tt.Elems[i]
			}
			a.bindTarget(elt, elemT, nil)
		}
	case *ast.ListExpr:
		for _, elt := range t.Elts {
			a.bindTarget(elt, nil, nil)
		}
	case *ast.Attribute:
		a.expr(t.Value)
	case *ast.Subscript:
		a.expr(t.Value)
		a.expr(t.Slice)
	case *ast.Starred:
		a.bindTarget(t.Value, typ, nil)
	default:
		a.expr(target)
	}
}

func (a *Analyzer) defineName(n *ast.Name, typ ast.Expression, value ast.Expression) {
	idx := a.table.Add(n.ID_, value, typ, -1)
	n.StoreID = idx
	n.Ctx = ast.Store
}

func (a *Analyzer) analyzeAnnAssign(n *ast.AnnAssign) {
	declT := a.typeExprOf(n.Annotation)
	if n.Value != nil {
		valT := a.expr(n.Value)
		a.typecheck(n.Tok, declT, valT)
	}
	a.bindTarget(n.Target, declT, n.Value)
}

func (a *Analyzer) analyzeAugAssign(n *ast.AugAssign) {
	lhsT := a.expr(n.Target)
	rhsT := a.expr(n.Value)
	a.resolveBinary(&ast.BinOp{Tok: n.Tok, Op: n.Op}, lhsT, rhsT)
	a.bindTarget(n.Target, lhsT, nil)
}

// typecheck compares lhsT and rhsT's structural type via ops.Equal
// (spec.md §4.8), emitting a TypeError on mismatch. A nil declared type
// (e.g. an un-annotated binding) always matches.
func (a *Analyzer) typecheck(tok token.Token, lhsT, rhsT ast.Node) {
	if lhsT == nil || rhsT == nil {
		return
	}
	if !ops.Equal(lhsT, rhsT) {
		a.errors.Add(diagnostics.NewTypeError(tok, "expected %s, got %s", typeName(lhsT), typeName(rhsT)))
	}
}
