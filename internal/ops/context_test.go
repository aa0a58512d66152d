package ops_test

import (
	"testing"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/ops"
)

func TestSetContext_RewritesNameContext(t *testing.T) {
	mod := parse(t, "x\n")
	name, ok := exprStmtValue(t, mod, 0).(*ast.Name)
	if !ok {
		t.Fatalf("expected *ast.Name, got %T", exprStmtValue(t, mod, 0))
	}
	if name.Ctx != ast.Load {
		t.Fatalf("expected a bare expression statement name to start as Load")
	}
	ops.SetContext(name, ast.Store)
	if name.Ctx != ast.Store {
		t.Errorf("expected SetContext to rewrite Ctx to Store, got %v", name.Ctx)
	}
}

func TestSetContext_RecursesIntoListAndTupleElements(t *testing.T) {
	mod := parse(t, "[a, b]\n")
	lst, ok := exprStmtValue(t, mod, 0).(*ast.ListExpr)
	if !ok {
		t.Fatalf("expected *ast.ListExpr, got %T", exprStmtValue(t, mod, 0))
	}
	ops.SetContext(lst, ast.Store)
	if lst.Ctx != ast.Store {
		t.Errorf("expected list's own Ctx to become Store")
	}
	for i, elt := range lst.Elts {
		name, ok := elt.(*ast.Name)
		if !ok {
			t.Fatalf("element %d: expected *ast.Name, got %T", i, elt)
		}
		if name.Ctx != ast.Store {
			t.Errorf("element %d: expected Ctx Store, got %v", i, name.Ctx)
		}
	}
}

func TestSetContext_RecursesIntoStarred(t *testing.T) {
	mod := parse(t, "[*a]\n")
	lst, ok := exprStmtValue(t, mod, 0).(*ast.ListExpr)
	if !ok {
		t.Fatalf("expected *ast.ListExpr, got %T", exprStmtValue(t, mod, 0))
	}
	starred, ok := lst.Elts[0].(*ast.Starred)
	if !ok {
		t.Fatalf("expected *ast.Starred element, got %T", lst.Elts[0])
	}
	ops.SetContext(lst, ast.Store)
	if starred.Ctx != ast.Store {
		t.Errorf("expected Starred.Ctx to become Store")
	}
	name, ok := starred.Value.(*ast.Name)
	if !ok {
		t.Fatalf("expected Starred.Value to be *ast.Name, got %T", starred.Value)
	}
	if name.Ctx != ast.Store {
		t.Errorf("expected the starred name's Ctx to become Store")
	}
}

// exprStmtValue mirrors internal/parser's test helper of the same name:
// it isn't exported, so this package keeps its own small copy.
func exprStmtValue(t *testing.T, mod *ast.Module, idx int) ast.Expression {
	t.Helper()
	es, ok := mod.Body[idx].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("statement %d: expected *ast.ExprStmt, got %T", idx, mod.Body[idx])
	}
	return es.Value
}
