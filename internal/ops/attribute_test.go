package ops_test

import (
	"testing"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/ops"
	"github.com/kiwi-lang/kiwi/internal/sema"
	"github.com/kiwi-lang/kiwi/internal/token"
)

var zeroTok token.Token

func analyzedClass(t *testing.T, src, className string) *ast.ClassDef {
	t.Helper()
	mod := parse(t, src)
	a := sema.New(mod.Arena)
	a.Analyze(mod)
	if a.Errors().HasErrors() {
		for _, e := range a.Errors().Entries() {
			t.Errorf("sema error: %v", e)
		}
		t.FailNow()
	}
	for _, stmt := range mod.Body {
		if cd, ok := stmt.(*ast.ClassDef); ok && cd.Name == className {
			return cd
		}
	}
	t.Fatalf("class %q not found in parsed module", className)
	return nil
}

func TestHasAttr_FindsOwnMember(t *testing.T) {
	cd := analyzedClass(t, "class Point:\n    def __init__(self, x):\n        self.x = x\n", "Point")
	if !ops.HasAttr(cd, "x") {
		t.Errorf("expected Point to have attribute x")
	}
	if ops.HasAttr(cd, "y") {
		t.Errorf("expected Point to not have attribute y")
	}
}

// TestGetAttr_WalksBaseClassChain builds the Base/Derived ClassDefs by
// hand with an *ast.ClassType base (the shape GetAttr's base-chain walk
// expects), rather than via sema.Analyze, since record_attributes never
// rewrites ClassDef.Bases's plain Name references into ClassType (it
// discards a.expr's return value) — see DESIGN.md.
func TestGetAttr_WalksBaseClassChain(t *testing.T) {
	arena := ast.NewArena("test.kiwi")
	base := ast.NewClassDef(arena, zeroTok, "Base", nil, nil)
	base.Attributes = append(base.Attributes, &ast.ClassAttr{Name: "a"})

	baseType := ast.NewClassType(arena, zeroTok, base)
	derived := ast.NewClassDef(arena, zeroTok, "Derived", []ast.Expression{baseType}, nil)
	derived.Attributes = append(derived.Attributes, &ast.ClassAttr{Name: "b"})

	if !ops.HasAttr(derived, "b") {
		t.Errorf("expected Derived to have its own attribute b")
	}
	if !ops.HasAttr(derived, "a") {
		t.Errorf("expected Derived to inherit attribute a from Base")
	}
	if ops.HasAttr(derived, "c") {
		t.Errorf("expected Derived to not have attribute c")
	}
}

func TestGetAttr_NilClassReturnsNil(t *testing.T) {
	if ops.GetAttr(nil, "x") != nil {
		t.Errorf("expected GetAttr(nil, ...) to return nil")
	}
	if ops.HasAttr(nil, "x") {
		t.Errorf("expected HasAttr(nil, ...) to be false")
	}
}
