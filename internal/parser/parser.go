// Package parser turns a token stream into a Module: recursive descent
// over statements, precedence climbing over expressions, driven by the
// single operator table shared with the lexer (spec.md §4.3, §4.4).
// Grounded on funvibe-funxy/internal/parser's curToken/peekToken/
// nextToken shape and its per-statement error-recovery wrapper, with
// the prefix/infix-function-map dispatch replaced by optable-driven
// precedence climbing since Kiwi's expression grammar is table-driven
// rather than per-token-type-registered (spec.md §4.4's "the set used
// by lexer and parser is identical").
package parser

import (
	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/diagnostics"
	"github.com/kiwi-lang/kiwi/internal/lexer"
	"github.com/kiwi-lang/kiwi/internal/ops"
	"github.com/kiwi-lang/kiwi/internal/optable"
	"github.com/kiwi-lang/kiwi/internal/token"
)

// MaxRecursionDepth guards runaway expression nesting, mirroring the
// teacher's parser.MaxRecursionDepth guard in expressions_core.go.
const MaxRecursionDepth = 200

type Parser struct {
	lex  *lexer.Lexer
	cur  token.Token
	peek token.Token

	arena *ast.Arena
	errs  *diagnostics.Bag
	file  string

	depth int

	pendingComments []*ast.Comment
}

func New(fileName string, lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex, arena: ast.NewArena(fileName), errs: &diagnostics.Bag{}, file: fileName}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) Errors() *diagnostics.Bag { return p.errs }
func (p *Parser) Arena() *ast.Arena        { return p.arena }

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.cur.Kind != k {
		p.errorf(p.cur, "expected %s, found %s", k, p.cur.Kind)
		return p.cur, false
	}
	tok := p.cur
	p.advance()
	return tok, true
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.errs.Add(diagnostics.NewSyntaxError(tok, format, args...))
}

// skipNewlines consumes zero or more NEWLINE tokens, used where the
// grammar allows blank lines (module top level, inside brackets).
func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.advance()
	}
}

// ParseModule parses an entire file into a Module (spec.md §3, §4.3).
func (p *Parser) ParseModule() *ast.Module {
	var body []ast.Statement
	p.skipNewlines()
	for !p.curIs(token.EOF) {
		if stmt := p.parseStatementChecked(); stmt != nil {
			body = append(body, stmt)
		}
		p.skipNewlines()
	}
	return ast.NewModule(p.arena, body)
}

// parseStatementChecked wraps parseStatement with the error-recovery
// policy of spec.md §4.3: on failure, consume tokens up to the next
// NEWLINE/EOF and substitute an InvalidStatement.
func (p *Parser) parseStatementChecked() ast.Statement {
	startErrs := p.errs.Len()
	startTok := p.cur
	stmt := p.parseStatement()
	if p.errs.Len() > startErrs && stmt == nil {
		var consumed []token.Token
		for !p.curIs(token.NEWLINE) && !p.curIs(token.EOF) && !p.curIs(token.DEDENT) {
			consumed = append(consumed, p.cur)
			p.advance()
		}
		return ast.NewInvalidStatement(p.arena, startTok, consumed)
	}
	return stmt
}

// parseBlock parses an indented statement suite: NEWLINE INDENT
// stmt+ DEDENT, per spec.md §4.2's layout tokens.
func (p *Parser) parseBlock() []ast.Statement {
	if !p.curIs(token.NEWLINE) {
		// Single inline statement suite: `if x: y`.
		return p.parseSimpleStatementList()
	}
	p.advance() // NEWLINE
	if _, ok := p.expect(token.INDENT); !ok {
		return nil
	}
	var body []ast.Statement
	p.skipNewlines()
	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		if stmt := p.parseStatementChecked(); stmt != nil {
			body = append(body, stmt)
		}
		p.skipNewlines()
	}
	p.expect(token.DEDENT)
	return body
}

// parseSimpleStatementList parses `stmt (';' stmt)* NEWLINE?` for the
// single-line suite form (`if x: y; z`).
func (p *Parser) parseSimpleStatementList() []ast.Statement {
	var body []ast.Statement
	for {
		if stmt := p.parseStatement(); stmt != nil {
			body = append(body, stmt)
		}
		if p.curIs(token.SEMI) {
			p.advance()
			continue
		}
		break
	}
	if p.curIs(token.NEWLINE) {
		p.advance()
	}
	return body
}

// --- expression precedence climbing (spec.md §4.3/§4.4) ---

func (p *Parser) glyphAt(tok token.Token) (string, bool) {
	switch tok.Kind {
	case token.OP:
		return tok.Lexeme, true
	case token.AND:
		return "and", true
	case token.OR:
		return "or", true
	case token.NOT:
		return "not", true
	case token.IN:
		return "in", true
	case token.IS:
		return "is", true
	default:
		return "", false
	}
}

// peekOperator resolves the current token to a binary/bool/cmp operator
// entry, handling the two-keyword glyphs `not in` / `is not`.
func (p *Parser) peekOperator() (string, optable.Entry, int, bool) {
	glyph, ok := p.glyphAt(p.cur)
	if !ok {
		return "", optable.Entry{}, 0, false
	}
	consumed := 1
	if glyph == "is" && p.peek.Kind == token.NOT {
		glyph = "is not"
		consumed = 2
	} else if glyph == "not" && p.peek.Kind == token.IN {
		glyph = "not in"
		consumed = 2
	}
	entry, ok := optable.Lookup(glyph)
	if !ok || (entry.Bin == optable.BinNone && entry.Bool == optable.BoolNone && entry.Cmp == optable.CmpNone) {
		return "", optable.Entry{}, 0, false
	}
	return glyph, entry, consumed, true
}

func (p *Parser) advanceN(n int) {
	for i := 0; i < n; i++ {
		p.advance()
	}
}

// ParseExpression is the public entry point used by statement parsing.
func (p *Parser) ParseExpression() ast.Expression {
	return p.parseExpr(0)
}

func (p *Parser) parseExpr(minPrec int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.errorf(p.cur, "expression too complex: recursion depth limit exceeded")
		return ast.NewPlaceholder(p.arena, p.cur)
	}

	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for {
		glyph, entry, consumed, ok := p.peekOperator()
		if !ok || entry.Precedence < minPrec {
			break
		}
		opTok := p.cur
		p.advanceN(consumed)

		nextMin := entry.Precedence + 1
		if !entry.LeftAssoc {
			nextMin = entry.Precedence
		}
		right := p.parseExpr(nextMin)
		if right == nil {
			return left
		}

		switch {
		case entry.Cmp != optable.CmpNone:
			if cmp, ok := left.(*ast.Compare); ok {
				cmp.Extend(glyph, entry.Cmp, right)
				left = cmp
			} else {
				cmp := ast.NewCompare(p.arena, opTok, left)
				cmp.Extend(glyph, entry.Cmp, right)
				left = cmp
			}
		case entry.Bool != optable.BoolNone:
			if b, ok := left.(*ast.BoolOp); ok && b.Op == glyph {
				left = ast.NewBoolOp(p.arena, opTok, glyph, append(b.Values, right), entry.Bool)
			} else {
				left = ast.NewBoolOp(p.arena, opTok, glyph, []ast.Expression{left, right}, entry.Bool)
			}
		default:
			left = ast.NewBinOp(p.arena, opTok, left, glyph, right, entry.Bin)
		}
	}
	return left
}

// parseUnary handles prefix `+ - ~ not *` and falls through to postfix
// primaries (spec.md §4.3's "unary-prefix starred/+/-/~/not").
func (p *Parser) parseUnary() ast.Expression {
	if glyph, ok := p.glyphAt(p.cur); ok {
		if entry, found := optable.Lookup(glyph); found && entry.UnaryAllowed {
			tok := p.cur
			p.advance()
			operand := p.parseExpr(entry.Precedence)
			if operand == nil {
				return nil
			}
			return ast.NewUnaryOp(p.arena, tok, glyph, operand, entry.Unary)
		}
	}
	if p.curIs(token.OP) && p.cur.Lexeme == "*" {
		tok := p.cur
		p.advance()
		val := p.parseExpr(29)
		return ast.NewStarred(p.arena, tok, val, ast.Load)
	}
	return p.parsePostfix(p.parseAtom())
}

// parsePostfix consumes `.`, `(...)`, `[...]` trailers at precedence 60.
func (p *Parser) parsePostfix(left ast.Expression) ast.Expression {
	for left != nil {
		switch {
		case p.curIs(token.DOT):
			tok := p.cur
			p.advance()
			name, ok := p.expect(token.IDENT)
			if !ok {
				return left
			}
			left = ast.NewAttribute(p.arena, tok, left, name.Lexeme, ast.Load)
		case p.curIs(token.LPAREN):
			left = p.parseCallTrailer(left)
		case p.curIs(token.LBRACKET):
			left = p.parseSubscriptTrailer(left)
		default:
			return left
		}
	}
	return left
}

func (p *Parser) parseCallTrailer(fn ast.Expression) ast.Expression {
	tok, _ := p.expect(token.LPAREN)
	var args []ast.Expression
	var keywords []*ast.Keyword
	var varargs ast.Expression
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if p.curIs(token.OP) && p.cur.Lexeme == "**" {
			p.advance()
			val := p.parseExpr(0)
			keywords = append(keywords, &ast.Keyword{Name: "", Value: val})
		} else if p.curIs(token.OP) && p.cur.Lexeme == "*" {
			p.advance()
			varargs = p.parseExpr(0)
		} else if p.curIs(token.IDENT) && p.peekIs(token.OP) && p.peek.Lexeme == "=" {
			name := p.cur
			p.advance()
			p.advance() // '='
			val := p.parseExpr(0)
			keywords = append(keywords, &ast.Keyword{Tok: name, Name: name.Lexeme, Value: val})
		} else {
			args = append(args, p.parseExpr(0))
		}
		if p.curIs(token.COMMA) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	call := ast.NewCall(p.arena, tok, fn, args, keywords)
	call.Varargs = varargs
	if varargs != nil {
		ast.Attach(call, varargs)
	}
	for _, kw := range keywords {
		ast.Attach(call, kw.Value)
	}
	return call
}

func (p *Parser) parseSubscriptTrailer(value ast.Expression) ast.Expression {
	tok, _ := p.expect(token.LBRACKET)
	slice := p.parseSliceOrExpr()
	p.expect(token.RBRACKET)
	return ast.NewSubscript(p.arena, tok, value, slice, ast.Load)
}

// parseSliceOrExpr parses either a bare expression or a `a:b:c` slice.
func (p *Parser) parseSliceOrExpr() ast.Expression {
	tok := p.cur
	var lower ast.Expression
	if !p.curIs(token.COLON) {
		lower = p.parseExpr(0)
	}
	if !p.curIs(token.COLON) {
		return lower
	}
	p.advance()
	var upper, step ast.Expression
	if !p.curIs(token.COLON) && !p.curIs(token.RBRACKET) {
		upper = p.parseExpr(0)
	}
	if p.curIs(token.COLON) {
		p.advance()
		if !p.curIs(token.RBRACKET) {
			step = p.parseExpr(0)
		}
	}
	return ast.NewSlice(p.arena, tok, lower, upper, step)
}

// parseAtom parses a primary expression (spec.md §4.3's "Primary
// expressions"): identifiers, literals, parens/tuples, list/set/dict
// literals or comprehensions, lambda, await, yield, conditional expr.
func (p *Parser) parseAtom() ast.Expression {
	tok := p.cur
	switch tok.Kind {
	case token.IDENT:
		p.advance()
		name := ast.NewName(p.arena, tok, tok.Lexeme, ast.Load)
		return p.maybeCondExpr(name)
	case token.INT:
		p.advance()
		v, _ := tok.Literal.(int64)
		return p.maybeCondExpr(ast.NewConstantInt(p.arena, tok, v))
	case token.FLOAT:
		p.advance()
		v, _ := tok.Literal.(float64)
		return p.maybeCondExpr(ast.NewConstantFloat(p.arena, tok, v))
	case token.STRING, token.RAWSTRING, token.BYTESTRING, token.DOCSTRING:
		p.advance()
		return p.maybeCondExpr(ast.NewConstantString(p.arena, tok, tok.Lexeme))
	case token.TRUE:
		p.advance()
		return p.maybeCondExpr(ast.NewConstantBool(p.arena, tok, true))
	case token.FALSE:
		p.advance()
		return p.maybeCondExpr(ast.NewConstantBool(p.arena, tok, false))
	case token.NONE:
		p.advance()
		return p.maybeCondExpr(ast.NewConstantNone(p.arena, tok))
	case token.FSTRING_START:
		return p.maybeCondExpr(p.parseFString())
	case token.LPAREN:
		return p.maybeCondExpr(p.parseParenOrTuple())
	case token.LBRACKET:
		return p.maybeCondExpr(p.parseListLiteralOrComp())
	case token.LBRACE:
		return p.maybeCondExpr(p.parseSetOrDict())
	case token.LAMBDA:
		return p.parseLambda()
	case token.AWAIT:
		p.advance()
		val := p.parseExpr(30)
		return ast.NewAwait(p.arena, tok, val)
	case token.YIELD:
		p.advance()
		if p.curIs(token.FROM) {
			p.advance()
			val := p.parseExpr(0)
			return ast.NewYieldFrom(p.arena, tok, val)
		}
		if p.atExprEnd() {
			return ast.NewYield(p.arena, tok, nil)
		}
		val := p.parseExpr(0)
		return ast.NewYield(p.arena, tok, val)
	default:
		p.errorf(tok, "expected an expression, found %s", tok.Kind)
		p.advance()
		return ast.NewPlaceholder(p.arena, tok)
	}
}

func (p *Parser) atExprEnd() bool {
	switch p.cur.Kind {
	case token.NEWLINE, token.EOF, token.RPAREN, token.RBRACKET, token.RBRACE, token.COMMA, token.COLON, token.SEMI:
		return true
	default:
		return false
	}
}

// maybeCondExpr wraps atom in an IfExp if a trailing `if ... else ...`
// follows (spec.md §4.3's conditional expression).
func (p *Parser) maybeCondExpr(atom ast.Expression) ast.Expression {
	atom = p.parsePostfix(atom)
	if !p.curIs(token.IF) {
		return atom
	}
	tok := p.cur
	p.advance()
	test := p.parseExpr(0)
	if _, ok := p.expect(token.ELSE); !ok {
		return atom
	}
	orelse := p.parseExpr(0)
	return ast.NewIfExp(p.arena, tok, test, atom, orelse)
}

func (p *Parser) parseLambda() ast.Expression {
	tok := p.cur
	p.advance()
	args := p.parseLambdaArgs()
	p.expect(token.COLON)
	body := p.parseExpr(0)
	return ast.NewLambda(p.arena, tok, args, body)
}

func (p *Parser) parseLambdaArgs() *ast.Arguments {
	args := &ast.Arguments{}
	for !p.curIs(token.COLON) && !p.curIs(token.EOF) {
		name, ok := p.expect(token.IDENT)
		if !ok {
			break
		}
		arg := &ast.Arg{Tok: name, Name: name.Lexeme}
		args.Args = append(args.Args, arg)
		if p.curIs(token.OP) && p.cur.Lexeme == "=" {
			p.advance()
			args.Defaults = append(args.Defaults, p.parseExpr(0))
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return args
}

func (p *Parser) parseParenOrTuple() ast.Expression {
	tok, _ := p.expect(token.LPAREN)
	p.skipNewlines()
	if p.curIs(token.RPAREN) {
		p.advance()
		return ast.NewTupleExpr(p.arena, tok, nil, ast.Load)
	}
	first := p.parseExpr(0)
	if genClauses := p.tryParseCompClauses(); genClauses != nil {
		comp := ast.NewComprehension(p.arena, tok, ast.CompGenerator)
		comp.Elt = first
		comp.Clauses = genClauses
		ast.Attach(comp, first)
		for _, c := range genClauses {
			ast.Attach(comp, c.Target)
			ast.Attach(comp, c.Iter)
			for _, i := range c.Ifs {
				ast.Attach(comp, i)
			}
		}
		p.expect(token.RPAREN)
		return comp
	}
	if p.curIs(token.WALRUS) {
		p.advance()
		val := p.parseExpr(0)
		p.expect(token.RPAREN)
		n, _ := first.(*ast.Name)
		return ast.NewNamedExpr(p.arena, tok, n, val)
	}
	if !p.curIs(token.COMMA) {
		p.expect(token.RPAREN)
		return first
	}
	elts := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.advance()
		p.skipNewlines()
		if p.curIs(token.RPAREN) {
			break
		}
		elts = append(elts, p.parseExpr(0))
	}
	p.expect(token.RPAREN)
	return ast.NewTupleExpr(p.arena, tok, elts, ast.Load)
}

func (p *Parser) parseListLiteralOrComp() ast.Expression {
	tok, _ := p.expect(token.LBRACKET)
	p.skipNewlines()
	if p.curIs(token.RBRACKET) {
		p.advance()
		return ast.NewListExpr(p.arena, tok, nil, ast.Load)
	}
	first := p.parseExpr(0)
	if clauses := p.tryParseCompClauses(); clauses != nil {
		p.expect(token.RBRACKET)
		return p.buildComp(tok, ast.CompList, first, nil, nil, clauses)
	}
	elts := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.advance()
		p.skipNewlines()
		if p.curIs(token.RBRACKET) {
			break
		}
		elts = append(elts, p.parseExpr(0))
	}
	p.skipNewlines()
	p.expect(token.RBRACKET)
	return ast.NewListExpr(p.arena, tok, elts, ast.Load)
}

func (p *Parser) parseSetOrDict() ast.Expression {
	tok, _ := p.expect(token.LBRACE)
	p.skipNewlines()
	if p.curIs(token.RBRACE) {
		p.advance()
		return ast.NewDictExpr(p.arena, tok, nil, nil)
	}
	if p.curIs(token.OP) && p.cur.Lexeme == "**" {
		return p.parseDictTail(tok, nil, nil)
	}
	first := p.parseExpr(0)
	if p.curIs(token.COLON) {
		p.advance()
		val := p.parseExpr(0)
		if clauses := p.tryParseCompClauses(); clauses != nil {
			p.expect(token.RBRACE)
			return p.buildComp(tok, ast.CompDict, nil, first, val, clauses)
		}
		return p.parseDictTail(tok, []ast.Expression{first}, []ast.Expression{val})
	}
	if clauses := p.tryParseCompClauses(); clauses != nil {
		p.expect(token.RBRACE)
		return p.buildComp(tok, ast.CompSet, first, nil, nil, clauses)
	}
	elts := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.advance()
		p.skipNewlines()
		if p.curIs(token.RBRACE) {
			break
		}
		elts = append(elts, p.parseExpr(0))
	}
	p.skipNewlines()
	p.expect(token.RBRACE)
	return ast.NewSetExpr(p.arena, tok, elts)
}

func (p *Parser) parseDictTail(tok token.Token, keys, values []ast.Expression) ast.Expression {
	for {
		if p.curIs(token.RBRACE) {
			break
		}
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
		p.skipNewlines()
		if p.curIs(token.RBRACE) {
			break
		}
		if p.curIs(token.OP) && p.cur.Lexeme == "**" {
			p.advance()
			keys = append(keys, nil)
			values = append(values, p.parseExpr(0))
			continue
		}
		k := p.parseExpr(0)
		p.expect(token.COLON)
		v := p.parseExpr(0)
		keys = append(keys, k)
		values = append(values, v)
	}
	p.skipNewlines()
	p.expect(token.RBRACE)
	return ast.NewDictExpr(p.arena, tok, keys, values)
}

func (p *Parser) buildComp(tok token.Token, kind ast.CompKind, elt, key, val ast.Expression, clauses []*ast.CompClause) ast.Expression {
	comp := ast.NewComprehension(p.arena, tok, kind)
	comp.Elt, comp.Key, comp.Value, comp.Clauses = elt, key, val, clauses
	ast.Attach(comp, elt)
	ast.Attach(comp, key)
	ast.Attach(comp, val)
	for _, c := range clauses {
		ast.Attach(comp, c.Target)
		ast.Attach(comp, c.Iter)
		for _, i := range c.Ifs {
			ast.Attach(comp, i)
		}
	}
	return comp
}

// parseTargetExpr parses a `for`-clause target, allowing a bare (paren-
// free) comma-separated tuple such as `for k, v in d.items()`. Each
// element is parsed above comparison precedence so the clause's `in` is
// not read as a membership test.
func (p *Parser) parseTargetExpr() ast.Expression {
	tok := p.cur
	minPrec := optable.Table["in"].Precedence + 1
	first := p.parseExpr(minPrec)
	if !p.curIs(token.COMMA) {
		return first
	}
	elts := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.IN) {
			break
		}
		elts = append(elts, p.parseExpr(minPrec))
	}
	return ast.NewTupleExpr(p.arena, tok, elts, ast.Load)
}

// tryParseCompClauses parses one or more `[async] for target in iter
// (if cond)*` clauses, or returns nil if the current token isn't `for`/
// `async for` (i.e. this isn't a comprehension).
func (p *Parser) tryParseCompClauses() []*ast.CompClause {
	if !p.curIs(token.FOR) && !(p.curIs(token.ASYNC) && p.peekIs(token.FOR)) {
		return nil
	}
	var clauses []*ast.CompClause
	for p.curIs(token.FOR) || (p.curIs(token.ASYNC) && p.peekIs(token.FOR)) {
		isAsync := false
		if p.curIs(token.ASYNC) {
			isAsync = true
			p.advance()
		}
		p.advance() // for
		target := p.parseTargetExpr()
		ops.SetContext(target, ast.Store)
		p.expect(token.IN)
		iter := p.parseExpr(0)
		clause := &ast.CompClause{Target: target, Iter: iter, IsAsync: isAsync}
		for p.curIs(token.IF) {
			p.advance()
			clause.Ifs = append(clause.Ifs, p.parseExpr(0))
		}
		clauses = append(clauses, clause)
	}
	return clauses
}

func (p *Parser) parseFString() ast.Expression {
	start := p.cur
	var values []ast.Expression
	p.advance() // FSTRING_START
	for {
		switch p.cur.Kind {
		case token.FSTRING_MID:
			values = append(values, ast.NewConstantString(p.arena, p.cur, p.cur.Lexeme))
			p.advance()
		case token.FSTRING_END:
			p.advance()
			return ast.NewJoinedStr(p.arena, start, values)
		case token.EOF:
			p.errorf(p.cur, "unterminated f-string")
			return ast.NewJoinedStr(p.arena, start, values)
		default:
			fieldTok := p.cur
			expr := p.parseExpr(0)
			var conv rune
			var spec ast.Expression
			if p.curIs(token.OP) && p.cur.Lexeme == "!" && p.peekIs(token.IDENT) && len(p.peek.Lexeme) == 1 {
				p.advance()
				conv = rune(p.cur.Lexeme[0])
				p.advance()
			}
			if p.curIs(token.COLON) {
				p.advance()
				if p.curIs(token.FSTRING_MID) {
					spec = ast.NewConstantString(p.arena, p.cur, p.cur.Lexeme)
					p.advance()
				}
			}
			fv := ast.NewFormattedValue(p.arena, fieldTok, expr, conv, spec)
			values = append(values, fv)
			p.closeFStringBrace()
		}
	}
}

func (p *Parser) closeFStringBrace() {
	p.cur = p.lex.RBrace()
	p.peek = p.lex.Next()
}
