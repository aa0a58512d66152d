// Package optable holds the single operator precedence table shared by
// the lexer (for its longest-match glyph extension via Lookup and
// AssignGlyphs) and the parser (for precedence
// climbing), per spec.md §4.4: "The set used by lexer and parser is
// identical."
package optable

// BinKind, BoolKind, CmpKind and UnaryKind are the native operator kinds
// an operator glyph may resolve to; they are stamped onto BinOp/BoolOp/
// Compare/UnaryOp AST nodes as NativeOp so Sema and the evaluator can
// dispatch without re-parsing the glyph.
type BinKind uint8

const (
	BinNone BinKind = iota
	Add
	Sub
	Mul
	Div
	FloorDiv
	Mod
	Pow
	BitAnd
	BitOr
	BitXor
	LShift
	RShift
	MatMul
)

type BoolKind uint8

const (
	BoolNone BoolKind = iota
	LogicAnd
	LogicOr
)

type CmpKind uint8

const (
	CmpNone CmpKind = iota
	Eq
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

type UnaryKind uint8

const (
	UnaryNone UnaryKind = iota
	UAdd
	USub
	Invert
	Not
)

// Entry describes one operator glyph's behavior.
type Entry struct {
	Glyph         string
	Precedence    int
	LeftAssoc     bool
	Bin           BinKind
	Bool          BoolKind
	Cmp           CmpKind
	Unary         UnaryKind
	UnaryAllowed  bool // true if this glyph may also appear as a unary prefix op
}

// Table is keyed by glyph. Precedence bands follow spec.md §4.4's
// ranked order (or < and < not < comparison < | < ^ < & < shift <
// +/- < * / // % @ < unary ~ < **, with `**` at 40 and `.` highest at
// 60, handled directly by the parser's postfix-primary loop rather
// than through this table).
var Table = map[string]Entry{
	"or":  {Glyph: "or", Precedence: 20, LeftAssoc: true, Bool: LogicOr},
	"and": {Glyph: "and", Precedence: 21, LeftAssoc: true, Bool: LogicAnd},
	"not in": {Glyph: "not in", Precedence: 23, LeftAssoc: true, Cmp: NotIn},
	"is not": {Glyph: "is not", Precedence: 23, LeftAssoc: true, Cmp: IsNot},
	"in":   {Glyph: "in", Precedence: 23, LeftAssoc: true, Cmp: In},
	"is":   {Glyph: "is", Precedence: 23, LeftAssoc: true, Cmp: Is},
	"<":    {Glyph: "<", Precedence: 23, LeftAssoc: true, Cmp: Lt},
	"<=":   {Glyph: "<=", Precedence: 23, LeftAssoc: true, Cmp: LtE},
	">":    {Glyph: ">", Precedence: 23, LeftAssoc: true, Cmp: Gt},
	">=":   {Glyph: ">=", Precedence: 23, LeftAssoc: true, Cmp: GtE},
	"==":   {Glyph: "==", Precedence: 23, LeftAssoc: true, Cmp: Eq},
	"!=":   {Glyph: "!=", Precedence: 23, LeftAssoc: true, Cmp: NotEq},
	"|":    {Glyph: "|", Precedence: 24, LeftAssoc: true, Bin: BitOr},
	"^":    {Glyph: "^", Precedence: 25, LeftAssoc: true, Bin: BitXor},
	"&":    {Glyph: "&", Precedence: 26, LeftAssoc: true, Bin: BitAnd},
	"<<":   {Glyph: "<<", Precedence: 27, LeftAssoc: true, Bin: LShift},
	">>":   {Glyph: ">>", Precedence: 27, LeftAssoc: true, Bin: RShift},
	"+":    {Glyph: "+", Precedence: 28, LeftAssoc: true, Bin: Add, Unary: UAdd, UnaryAllowed: true},
	"-":    {Glyph: "-", Precedence: 28, LeftAssoc: true, Bin: Sub, Unary: USub, UnaryAllowed: true},
	"*":    {Glyph: "*", Precedence: 29, LeftAssoc: true, Bin: Mul},
	"@":    {Glyph: "@", Precedence: 29, LeftAssoc: true, Bin: MatMul},
	"/":    {Glyph: "/", Precedence: 29, LeftAssoc: true, Bin: Div},
	"//":   {Glyph: "//", Precedence: 29, LeftAssoc: true, Bin: FloorDiv},
	"%":    {Glyph: "%", Precedence: 29, LeftAssoc: true, Bin: Mod},
	"~":    {Glyph: "~", Precedence: 31, LeftAssoc: true, Unary: Invert, UnaryAllowed: true},
	"**":   {Glyph: "**", Precedence: 40, LeftAssoc: false, Bin: Pow},
	"not":  {Glyph: "not", Precedence: 22, LeftAssoc: true, Unary: Not, UnaryAllowed: true},
}

// AssignGlyphs are the augmented-assignment operator glyphs (precedence
// 50, per spec.md §4.4); parsed as statement punctuation, not through the
// expression precedence climb.
var AssignGlyphs = map[string]BinKind{
	"+=": Add, "-=": Sub, "*=": Mul, "/=": Div, "//=": FloorDiv, "%=": Mod,
	"**=": Pow, "&=": BitAnd, "|=": BitOr, "^=": BitXor, "<<=": LShift, ">>=": RShift,
}

// Lookup returns the table entry for glyph and whether it exists.
func Lookup(glyph string) (Entry, bool) {
	e, ok := Table[glyph]
	return e, ok
}

// Glyphs lists the operator glyphs sorted longest-first so a caller
// scanning greedily can stop at the first match in order. The lexer does
// not read it; it extends glyphs one rune at a time through Lookup.
var Glyphs = []string{
	"**=", "//=", "<<=", ">>=",
	"==", "!=", "<=", ">=", "<<", ">>", "**", "//",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"+", "-", "*", "/", "%", "<", ">", "&", "|", "^", "~", "@",
}
