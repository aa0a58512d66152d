// Package token defines the closed set of lexical token kinds produced by
// the lexer and consumed by the parser.
package token

import "fmt"

// Kind identifies the lexical category of a Token. The enum is closed:
// every switch over Kind in the lexer and parser is expected to be
// exhaustive.
type Kind uint8

const (
	EOF Kind = iota
	INCORRECT

	// Layout tokens, produced by the lexer's indentation tracker.
	NEWLINE
	INDENT
	DEDENT

	// Identifiers and literals.
	IDENT
	INT
	FLOAT
	STRING
	FSTRING_START // f" or f""" opener, switches lexer into character mode
	FSTRING_MID   // text run between { } interiors
	FSTRING_END   // closing quote of an f-string
	RAWSTRING
	BYTESTRING
	DOCSTRING
	COMMENT

	// Keywords.
	AND
	AS
	ASSERT
	ASYNC
	AWAIT
	BREAK
	CASE
	CLASS
	CONTINUE
	DEF
	DEL
	ELIF
	ELSE
	EXCEPT
	FINALLY
	FOR
	FROM
	GLOBAL
	IF
	IMPORT
	IN
	IS
	LAMBDA
	MATCH
	NONLOCAL
	NOT
	OR
	PASS
	RAISE
	RETURN
	TRY
	WHILE
	WITH
	YIELD

	// Constants.
	TRUE
	FALSE
	NONE

	// Punctuation.
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	COMMA
	COLON
	SEMI
	DOT
	ARROW  // ->
	WALRUS // :=
	AT     // decorator prefix

	// Operators (glyphs live in the precedence table, internal/optable/optable.go).
	OP
)

var names = map[Kind]string{
	EOF: "EOF", INCORRECT: "INCORRECT", NEWLINE: "NEWLINE", INDENT: "INDENT", DEDENT: "DEDENT",
	IDENT: "IDENT", INT: "INT", FLOAT: "FLOAT", STRING: "STRING",
	FSTRING_START: "FSTRING_START", FSTRING_MID: "FSTRING_MID", FSTRING_END: "FSTRING_END",
	RAWSTRING: "RAWSTRING", BYTESTRING: "BYTESTRING", DOCSTRING: "DOCSTRING", COMMENT: "COMMENT",
	AND: "and", AS: "as", ASSERT: "assert", ASYNC: "async", AWAIT: "await", BREAK: "break",
	CASE: "case", CLASS: "class", CONTINUE: "continue", DEF: "def", DEL: "del", ELIF: "elif",
	ELSE: "else", EXCEPT: "except", FINALLY: "finally", FOR: "for", FROM: "from", GLOBAL: "global",
	IF: "if", IMPORT: "import", IN: "in", IS: "is", LAMBDA: "lambda", MATCH: "match",
	NONLOCAL: "nonlocal", NOT: "not", OR: "or", PASS: "pass", RAISE: "raise", RETURN: "return",
	TRY: "try", WHILE: "while", WITH: "with", YIELD: "yield",
	TRUE: "True", FALSE: "False", NONE: "None",
	LPAREN: "(", RPAREN: ")", LBRACKET: "[", RBRACKET: "]", LBRACE: "{", RBRACE: "}",
	COMMA: ",", COLON: ":", SEMI: ";", DOT: ".", ARROW: "->", WALRUS: ":=", AT: "@",
	OP: "OP",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Keywords maps the lexeme of a reserved word to its Kind. Populated once
// at init so the lexer can re-tag an IDENT after scanning it.
var Keywords = map[string]Kind{
	"and": AND, "as": AS, "assert": ASSERT, "async": ASYNC, "await": AWAIT, "break": BREAK,
	"case": CASE, "class": CLASS, "continue": CONTINUE, "def": DEF, "del": DEL, "elif": ELIF,
	"else": ELSE, "except": EXCEPT, "finally": FINALLY, "for": FOR, "from": FROM, "global": GLOBAL,
	"if": IF, "import": IMPORT, "in": IN, "is": IS, "lambda": LAMBDA, "match": MATCH,
	"nonlocal": NONLOCAL, "not": NOT, "or": OR, "pass": PASS, "raise": RAISE, "return": RETURN,
	"try": TRY, "while": WHILE, "with": WITH, "yield": YIELD,
	"True": TRUE, "False": FALSE, "None": NONE,
}

// Span is a half-open source range: line is 1-based, columns are 0-based
// rune-column counters (a multi-byte UTF-8 rune advances Col once; its
// continuation bytes do not, per buffer.Buffer's contract).
type Span struct {
	Line      int
	Col       int
	EndLine   int
	EndCol    int
}

// Token is a value type: it owns its Lexeme, it does not alias Buffer
// storage.
type Token struct {
	Kind   Kind
	Lexeme string
	// Literal holds a pre-parsed payload for INT/FLOAT tokens (int64 or
	// float64) so Sema need not re-parse the lexeme.
	Literal any
	Span    Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s[l:%d c:%d] %q", t.Kind, t.Span.Line, t.Span.Col, t.Lexeme)
}

// IsWordOperator reports whether an IDENT-shaped token is actually one of
// the word operators (and/or/not/in/is) that the lexer recategorizes after
// scanning an identifier.
func IsWordOperator(k Kind) bool {
	switch k {
	case AND, OR, NOT, IN, IS:
		return true
	default:
		return false
	}
}
