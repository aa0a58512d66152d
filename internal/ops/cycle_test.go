package ops_test

import (
	"testing"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/ops"
)

func TestHasCircle_FalseForOrdinaryParsedTree(t *testing.T) {
	mod := parse(t, "if x:\n    y = 1\nelse:\n    y = 2\n")
	if ops.HasCircle(mod.Body[0]) {
		t.Errorf("expected an ordinary parsed statement to have no Parent() cycle")
	}
}

func TestHasCircle_TrueWhenNodeIsOwnAncestor(t *testing.T) {
	mod := parse(t, "x = 1\n")
	stmt := mod.Body[0]
	ast.Attach(stmt, stmt)
	if !ops.HasCircle(stmt) {
		t.Errorf("expected a node attached to itself to be reported as a cycle")
	}
}
