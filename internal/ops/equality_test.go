package ops_test

import (
	"testing"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/buffer"
	"github.com/kiwi-lang/kiwi/internal/lexer"
	"github.com/kiwi-lang/kiwi/internal/ops"
	"github.com/kiwi-lang/kiwi/internal/parser"
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

func TestEqual_ReflexiveOnSameModule(t *testing.T) {
	mod := parse(t, "x = 1 + 2\n")
	if !ops.Equal(mod, mod) {
		t.Fatalf("expected a module to equal itself")
	}
}

func TestEqual_TwoParsesOfSameSourceAreEqual(t *testing.T) {
	a := parse(t, "def f(x):\n    return x + 1\n")
	b := parse(t, "def f(x):\n    return x + 1\n")
	if !ops.Equal(a, b) {
		t.Fatalf("expected two independent parses of identical source to be structurally equal")
	}
}

func TestEqual_DifferentOperatorsAreUnequal(t *testing.T) {
	a := parse(t, "x = 1 + 2\n")
	b := parse(t, "x = 1 - 2\n")
	if ops.Equal(a, b) {
		t.Fatalf("expected 1 + 2 and 1 - 2 to be unequal")
	}
}

func TestEqual_DifferentIdentifiersAreUnequal(t *testing.T) {
	a := parse(t, "x = 1\n")
	b := parse(t, "y = 1\n")
	if ops.Equal(a, b) {
		t.Fatalf("expected distinct target names to be unequal")
	}
}

func TestEqual_IgnoresNodeIdentityAndSpan(t *testing.T) {
	// Two separately parsed copies get distinct node ids and spans (the
	// lexer/parser stamp a fresh uuid and Span per node); Equal must
	// still report them equal since those fields aren't structural.
	a := parse(t, "if x:\n    y = 1\nelse:\n    y = 2\n")
	b := parse(t, "if x:\n    y = 1\nelse:\n    y = 2\n")
	if a.ID() == b.ID() {
		t.Fatalf("test is vacuous: expected distinct node ids between independent parses")
	}
	if !ops.Equal(a, b) {
		t.Fatalf("expected equality to ignore node id/span and compare structure only")
	}
}

func TestEqual_DifferentStatementCountsAreUnequal(t *testing.T) {
	a := parse(t, "x = 1\n")
	b := parse(t, "x = 1\ny = 2\n")
	if ops.Equal(a, b) {
		t.Fatalf("expected modules with different statement counts to be unequal")
	}
}

func TestEqual_ListLiteralsCompareElementwise(t *testing.T) {
	a := parse(t, "x = [1, 2, 3]\n")
	b := parse(t, "x = [1, 2, 3]\n")
	c := parse(t, "x = [1, 2, 4]\n")
	if !ops.Equal(a, b) {
		t.Fatalf("expected identical list literals to be equal")
	}
	if ops.Equal(a, c) {
		t.Fatalf("expected list literals differing in one element to be unequal")
	}
}

func TestEqual_FunctionDefCallArgsCompared(t *testing.T) {
	a := parse(t, "def f(a, b=1):\n    pass\n")
	b := parse(t, "def f(a, b=1):\n    pass\n")
	c := parse(t, "def f(a, b=2):\n    pass\n")
	if !ops.Equal(a, b) {
		t.Fatalf("expected identical parameter lists to be equal")
	}
	if ops.Equal(a, c) {
		t.Fatalf("expected differing default values to be unequal")
	}
}
