package ops_test

import (
	"strings"
	"testing"

	"github.com/kiwi-lang/kiwi/internal/ops"
)

func TestSprint_RoundTripsThroughReparse(t *testing.T) {
	srcs := []string{
		"x = 1 + 2\n",
		"def f(a, b=1):\n    return a + b\n",
		"if x:\n    y = 1\nelse:\n    y = 2\n",
		"for i in range(10):\n    print(i)\n",
		"x = [1, 2, 3]\n",
	}
	for _, src := range srcs {
		mod := parse(t, src)
		printed := ops.Sprint(mod)
		reparsed := parse(t, printed)
		if !ops.Equal(mod, reparsed) {
			t.Errorf("print/reparse not idempotent for %q: printed as %q, reparsed structurally differs", src, printed)
		}
	}
}

func TestSprint_RendersRecognizableSourceText(t *testing.T) {
	mod := parse(t, "x = 1 + 2\n")
	out := ops.Sprint(mod)
	if !strings.Contains(out, "x") || !strings.Contains(out, "+") {
		t.Errorf("expected printed output to contain the assignment and operator, got %q", out)
	}
}
