// Package diagnostics implements the typed error kinds and caret-style
// printer of spec.md §7, grounded on original_source/src/sema/errors.h
// (SemaException subclasses) and src/printer/error_printer.h (the
// "Parsing error messages (2) / File ... line N / code line / ^ / Kind:
// message" layout). Sema, the parser and the lexer all report through
// a Bag rather than an error return, mirroring the teacher's
// []*diagnostics.DiagnosticError accumulation in internal/analyzer.
package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/kiwi-lang/kiwi/internal/token"
)

// Kind identifies which error struct produced an Entry, mirroring the
// original implementation's exception hierarchy name-for-name.
type Kind string

const (
	KindSyntaxError        Kind = "SyntaxError"
	KindNameError          Kind = "NameError"
	KindTypeError          Kind = "TypeError"
	KindAttributeError     Kind = "AttributeError"
	KindUnsupportedOperand Kind = "UnsupportedOperand"
	KindModuleNotFoundError Kind = "ModuleNotFoundError"
	KindImportError        Kind = "ImportError"
	KindRecursiveDefinition Kind = "RecursiveDefinition"
)

// Entry is one reported diagnostic: a kind, a message, and the token
// whose span the caret-printer underlines.
type Entry struct {
	Kind    Kind
	Tok     token.Token
	Message string
	File    string
}

func (e *Entry) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newEntry(k Kind, tok token.Token, format string, args ...any) *Entry {
	return &Entry{Kind: k, Tok: tok, Message: fmt.Sprintf(format, args...)}
}

func NewSyntaxError(tok token.Token, format string, args ...any) *Entry {
	return newEntry(KindSyntaxError, tok, format, args...)
}

// NewNameError matches the original's `name 'x' is not defined` wording.
func NewNameError(tok token.Token, name string) *Entry {
	return newEntry(KindNameError, tok, "name '%s' is not defined", name)
}

func NewTypeError(tok token.Token, format string, args ...any) *Entry {
	return newEntry(KindTypeError, tok, format, args...)
}

// NewAttributeError matches `'Name' object has no attribute 'n'`.
func NewAttributeError(tok token.Token, className, attr string) *Entry {
	return newEntry(KindAttributeError, tok, "'%s' object has no attribute '%s'", className, attr)
}

func NewUnsupportedOperand(tok token.Token, op, lhsType, rhsType string) *Entry {
	return newEntry(KindUnsupportedOperand, tok,
		"unsupported operand type(s) for %s: '%s' and '%s'", op, lhsType, rhsType)
}

func NewModuleNotFoundError(tok token.Token, module string) *Entry {
	return newEntry(KindModuleNotFoundError, tok, "No module named '%s'", module)
}

func NewImportError(tok token.Token, module, name string) *Entry {
	return newEntry(KindImportError, tok, "cannot import name '%s' from '%s'", name, module)
}

func NewRecursiveDefinition(tok token.Token, msg string) *Entry {
	return newEntry(KindRecursiveDefinition, tok, "%s", msg)
}

// Bag accumulates diagnostics across a pass, the way the teacher's
// walker accumulates into errorSet/errors before returning them from
// Analyze. Unlike the teacher, Kiwi does not deduplicate by
// line:col:code — Sema's registries already avoid re-reporting the same
// site twice (spec.md §4.8), so a plain append is enough.
type Bag struct {
	entries []*Entry
}

func (b *Bag) Add(e *Entry)         { b.entries = append(b.entries, e) }
func (b *Bag) Entries() []*Entry    { return b.entries }
func (b *Bag) HasErrors() bool      { return len(b.entries) > 0 }
func (b *Bag) Len() int             { return len(b.entries) }

// Printer renders a Bag in the original implementation's caret-diagram
// format, gating ANSI color on whether out is a terminal (spec.md §7).
type Printer struct {
	out      io.Writer
	color    bool
	source   func(file string, line int) (string, bool)
}

// NewPrinter builds a Printer. isTTYFd should be the fd backing out
// (e.g. os.Stdout.Fd()) so color can be auto-detected the way the
// teacher's builtins_term.go gates ANSI escapes on go-isatty.
func NewPrinter(out io.Writer, isTTYFd uintptr, source func(file string, line int) (string, bool)) *Printer {
	return &Printer{out: out, color: isatty.IsTerminal(isTTYFd) || isatty.IsCygwinTerminal(isTTYFd), source: source}
}

func (p *Printer) colorize(code, s string) string {
	if !p.color {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

// Print renders every entry in order:
//
//	File "<file>", line N
//	    |<code line>
//	    |    ^
//	<Kind>: <message>
func (p *Printer) Print(b *Bag) {
	for _, e := range b.entries {
		p.printEntry(e)
	}
}

func (p *Printer) printEntry(e *Entry) {
	file := e.File
	if file == "" {
		file = "<unknown>"
	}
	line := e.Tok.Span.Line
	fmt.Fprintf(p.out, "  File %q, line %d\n", file, line)

	if p.source != nil {
		if text, ok := p.source(file, line); ok {
			fmt.Fprintf(p.out, "    |%s\n", text)
			col := e.Tok.Span.Col
			if col < 0 {
				col = 0
			}
			fmt.Fprintf(p.out, "    |%s%s\n", strings.Repeat(" ", col), p.colorize("31", strings.Repeat("^", caretWidth(e.Tok))))
		}
	}
	fmt.Fprintf(p.out, "%s: %s\n", p.colorize("1", string(e.Kind)), e.Message)
}

func caretWidth(tok token.Token) int {
	n := len(tok.Lexeme)
	if n == 0 {
		return 1
	}
	return n
}
