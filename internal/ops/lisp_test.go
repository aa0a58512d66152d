package ops_test

import (
	"strings"
	"testing"

	"github.com/kiwi-lang/kiwi/internal/ops"
)

func TestLisp_ContainsNodeKindNames(t *testing.T) {
	mod := parse(t, "x = 1 + 2\n")
	out := ops.Lisp(mod)
	for _, want := range []string{"Module", "Assign", "BinOp", "Name", "Constant"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected Lisp dump to mention %q, got %q", want, out)
		}
	}
}

func TestLisp_NilNodeRendersAsNil(t *testing.T) {
	if got := ops.Lisp(nil); got != "nil" {
		t.Errorf("expected Lisp(nil) == \"nil\", got %q", got)
	}
}

func TestLisp_DistinctTreesProduceDistinctDumps(t *testing.T) {
	a := parse(t, "x = 1 + 2\n")
	b := parse(t, "x = 1 - 2\n")
	if ops.Lisp(a) == ops.Lisp(b) {
		t.Errorf("expected differing operators to produce differing dumps")
	}
}
