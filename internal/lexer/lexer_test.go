package lexer_test

import (
	"testing"

	"github.com/kiwi-lang/kiwi/internal/buffer"
	"github.com/kiwi-lang/kiwi/internal/lexer"
	"github.com/kiwi-lang/kiwi/internal/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	buf := buffer.NewStringBuffer("test.kiwi", src)
	lx := lexer.New(buf)
	var out []token.Kind
	for {
		tok := lx.Next()
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func assertKinds(t *testing.T, src string, want []token.Kind) {
	t.Helper()
	got := kinds(t, src)
	if len(got) != len(want) {
		t.Fatalf("%q: got %d tokens %v, want %d %v", src, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%q: token %d: got %v, want %v (full: %v)", src, i, got[i], want[i], got)
		}
	}
}

func TestNext_SimpleAssignment(t *testing.T) {
	assertKinds(t, "x = 1\n", []token.Kind{
		token.IDENT, token.OP, token.INT, token.NEWLINE, token.EOF,
	})
}

func TestNext_IndentDedentAroundBlock(t *testing.T) {
	src := "if x:\n    y = 1\nz = 2\n"
	got := kinds(t, src)

	var sawIndent, sawDedent bool
	for _, k := range got {
		if k == token.INDENT {
			sawIndent = true
		}
		if k == token.DEDENT {
			sawDedent = true
		}
	}
	if !sawIndent {
		t.Errorf("%q: expected an INDENT token, got %v", src, got)
	}
	if !sawDedent {
		t.Errorf("%q: expected a DEDENT token, got %v", src, got)
	}
	if got[len(got)-1] != token.EOF {
		t.Errorf("%q: expected stream to end in EOF, got %v", src, got[len(got)-1])
	}
}

func TestNext_BlankLineDoesNotEmitDuplicateNewline(t *testing.T) {
	got := kinds(t, "x = 1\n\ny = 2\n")
	count := 0
	for _, k := range got {
		if k == token.NEWLINE {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected exactly 2 NEWLINEs for two statement lines, got %d in %v", count, got)
	}
}

func TestNext_WordOperatorsBecomeKeywordTokens(t *testing.T) {
	assertKinds(t, "a and b\n", []token.Kind{
		token.IDENT, token.AND, token.IDENT, token.NEWLINE, token.EOF,
	})
	assertKinds(t, "a is not b\n", []token.Kind{
		token.IDENT, token.IS, token.NOT, token.IDENT, token.NEWLINE, token.EOF,
	})
	assertKinds(t, "a not in b\n", []token.Kind{
		token.IDENT, token.NOT, token.IN, token.IDENT, token.NEWLINE, token.EOF,
	})
}

func TestNext_FloatVsIntLiteral(t *testing.T) {
	assertKinds(t, "1\n", []token.Kind{token.INT, token.NEWLINE, token.EOF})
	assertKinds(t, "1.5\n", []token.Kind{token.FLOAT, token.NEWLINE, token.EOF})
	assertKinds(t, "1e10\n", []token.Kind{token.FLOAT, token.NEWLINE, token.EOF})
}

func TestNext_CommentIsItsOwnToken(t *testing.T) {
	assertKinds(t, "x = 1 # trailing\n", []token.Kind{
		token.IDENT, token.OP, token.INT, token.COMMENT, token.NEWLINE, token.EOF,
	})
}

func TestPeek_DoesNotConsume(t *testing.T) {
	buf := buffer.NewStringBuffer("test.kiwi", "x = 1\n")
	lx := lexer.New(buf)
	first := lx.Peek()
	second := lx.Peek()
	if first.Kind != second.Kind || first.Lexeme != second.Lexeme {
		t.Fatalf("Peek() is not idempotent: %v != %v", first, second)
	}
	next := lx.Next()
	if next.Kind != first.Kind {
		t.Fatalf("Next() after Peek() returned %v, want %v", next.Kind, first.Kind)
	}
}

func TestNext_FStringEntersCharacterModeForInterior(t *testing.T) {
	got := kinds(t, "f\"hello {name}\"\n")
	var sawStart, sawEnd bool
	for _, k := range got {
		if k == token.FSTRING_START {
			sawStart = true
		}
		if k == token.FSTRING_END {
			sawEnd = true
		}
	}
	if !sawStart || !sawEnd {
		t.Errorf("expected FSTRING_START/FSTRING_END around interior, got %v", got)
	}
}
