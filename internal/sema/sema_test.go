package sema_test

import (
	"testing"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/buffer"
	"github.com/kiwi-lang/kiwi/internal/diagnostics"
	"github.com/kiwi-lang/kiwi/internal/lexer"
	"github.com/kiwi-lang/kiwi/internal/parser"
	"github.com/kiwi-lang/kiwi/internal/sema"
)

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

func analyze(t *testing.T, src string) (*ast.Module, *sema.Analyzer) {
	t.Helper()
	mod := parse(t, src)
	a := sema.New(mod.Arena)
	a.Analyze(mod)
	return mod, a
}

func TestAnalyze_UndefinedNameProducesNameError(t *testing.T) {
	_, a := analyze(t, "x = undefined_name\n")
	if !a.Errors().HasErrors() {
		t.Fatalf("expected a NameError for an undefined identifier")
	}
	found := false
	for _, e := range a.Errors().Entries() {
		if e.Kind == diagnostics.KindNameError {
			found = true
		}
	}
	if !found {
		t.Errorf("expected at least one NameError, got %+v", a.Errors().Entries())
	}
}

func TestAnalyze_AssignmentBindsNameForLaterUse(t *testing.T) {
	_, a := analyze(t, "x = 1\ny = x + 1\n")
	if a.Errors().HasErrors() {
		t.Errorf("expected no errors, got %+v", a.Errors().Entries())
	}
}

func TestAnalyze_NameGetsStoreIDAndLoadIDStamped(t *testing.T) {
	mod, a := analyze(t, "x = 1\nx\n")
	if a.Errors().HasErrors() {
		t.Fatalf("expected no errors, got %+v", a.Errors().Entries())
	}
	assign, ok := mod.Body[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected statement 0 to be *ast.Assign, got %T", mod.Body[0])
	}
	target, ok := assign.Targets[0].(*ast.Name)
	if !ok {
		t.Fatalf("expected assignment target to be *ast.Name, got %T", assign.Targets[0])
	}
	if target.StoreID < 0 {
		t.Errorf("expected the assigned name to get a non-negative StoreID, got %d", target.StoreID)
	}

	exprStmt, ok := mod.Body[1].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected statement 1 to be *ast.ExprStmt, got %T", mod.Body[1])
	}
	use, ok := exprStmt.Value.(*ast.Name)
	if !ok {
		t.Fatalf("expected expression statement value to be *ast.Name, got %T", exprStmt.Value)
	}
	if use.LoadID != target.StoreID {
		t.Errorf("expected the later use's LoadID (%d) to resolve back to the assignment's StoreID (%d)", use.LoadID, target.StoreID)
	}
}

func TestAnalyze_ClassBodyRecordsConstructorAttributes(t *testing.T) {
	mod, a := analyze(t, "class Point:\n    def __init__(self, x):\n        self.x = x\n")
	if a.Errors().HasErrors() {
		t.Fatalf("expected no errors, got %+v", a.Errors().Entries())
	}
	cd, ok := mod.Body[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("expected statement 0 to be *ast.ClassDef, got %T", mod.Body[0])
	}
	found := false
	for _, attr := range cd.Attributes {
		if attr.Name == "x" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Point.Attributes to include constructor attribute x, got %+v", cd.Attributes)
	}
}

func TestAnalyze_BinaryArithmeticResolvesToNumericType(t *testing.T) {
	_, a := analyze(t, "x = 1 + 2\n")
	if a.Errors().HasErrors() {
		t.Errorf("expected integer addition to type-check cleanly, got %+v", a.Errors().Entries())
	}
}

func TestAnalyze_MismatchedOperandTypesProduceDiagnostic(t *testing.T) {
	_, a := analyze(t, "x = 1 + \"a\"\n")
	if !a.Errors().HasErrors() {
		t.Errorf("expected adding an int and a str to produce a diagnostic")
	}
}

func TestTypes_RegistersEveryClassDef(t *testing.T) {
	mod, a := analyze(t, "class Point:\n    def __init__(self, x):\n        self.x = x\n")
	if a.Errors().HasErrors() {
		t.Fatalf("expected no errors, got %+v", a.Errors().Entries())
	}
	cd := mod.Body[0].(*ast.ClassDef)
	found := false
	for id := 1; id <= 64; id++ {
		if def, ok := a.Types().ClassOf(id); ok && def == cd {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected Point's ClassDef to be registered in the Analyzer's TypeRegistry")
	}
}
