package parser

import (
	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/ops"
	"github.com/kiwi-lang/kiwi/internal/optable"
	"github.com/kiwi-lang/kiwi/internal/token"
)

// parseStatement dispatches on the current token's keyword kind,
// recursive-descent over the compound forms and falling through to
// parseSimpleStatement for everything else (spec.md §4.3).
func (p *Parser) parseStatement() ast.Statement {
	if p.curIs(token.COMMENT) {
		return p.parseStandaloneComment()
	}
	if p.curIs(token.AT) {
		return p.parseDecorated()
	}
	switch p.cur.Kind {
	case token.DEF:
		return p.parseFunctionDef(nil, false)
	case token.ASYNC:
		return p.parseAsyncStatement()
	case token.CLASS:
		return p.parseClassDef(nil)
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor(false)
	case token.WITH:
		return p.parseWith(false)
	case token.TRY:
		return p.parseTry()
	case token.MATCH:
		return p.parseMatch()
	default:
		return p.parseSimpleStatementLine()
	}
}

func (p *Parser) parseStandaloneComment() ast.Statement {
	tok := p.cur
	p.advance()
	if p.curIs(token.NEWLINE) {
		p.advance()
	}
	return ast.NewComment(p.arena, tok, tok.Lexeme)
}

func (p *Parser) parseAsyncStatement() ast.Statement {
	p.advance() // async
	switch p.cur.Kind {
	case token.DEF:
		return p.parseFunctionDef(nil, true)
	case token.FOR:
		return p.parseFor(true)
	case token.WITH:
		return p.parseWith(true)
	default:
		p.errorf(p.cur, "expected def/for/with after async, found %s", p.cur.Kind)
		return nil
	}
}

func (p *Parser) parseDecorated() ast.Statement {
	var decorators []*ast.Decorator
	for p.curIs(token.AT) {
		tok := p.cur
		p.advance()
		expr := p.parseExpr(0)
		if p.curIs(token.NEWLINE) {
			p.advance()
		}
		decorators = append(decorators, &ast.Decorator{Tok: tok, Expr: expr})
	}
	isAsync := false
	if p.curIs(token.ASYNC) {
		isAsync = true
		p.advance()
	}
	switch p.cur.Kind {
	case token.DEF:
		return p.parseFunctionDef(decorators, isAsync)
	case token.CLASS:
		return p.parseClassDef(decorators)
	default:
		p.errorf(p.cur, "expected def/class after decorator, found %s", p.cur.Kind)
		return nil
	}
}

// --- simple statements (a single logical line, `;`-separated) ---

func (p *Parser) parseSimpleStatementLine() ast.Statement {
	lineTok := p.cur
	first := p.parseSimpleStatement()
	if !p.curIs(token.SEMI) {
		if c := p.consumeTrailingComment(); c != nil {
			attachComment(first, c)
		}
		if p.curIs(token.NEWLINE) {
			p.advance()
		}
		return first
	}
	body := []ast.Statement{first}
	for p.curIs(token.SEMI) {
		p.advance()
		if p.curIs(token.NEWLINE) || p.curIs(token.EOF) || p.curIs(token.COMMENT) {
			break
		}
		body = append(body, p.parseSimpleStatement())
	}
	if c := p.consumeTrailingComment(); c != nil {
		attachComment(body[len(body)-1], c)
	}
	if p.curIs(token.NEWLINE) {
		p.advance()
	}
	return ast.NewInline(p.arena, lineTok, body)
}

func attachComment(stmt ast.Statement, c *ast.Comment) {
	switch s := stmt.(type) {
	case *ast.Assign:
		s.Comment = c
	case *ast.ExprStmt:
		s.Comment = c
	}
}

func (p *Parser) consumeTrailingComment() *ast.Comment {
	if !p.curIs(token.COMMENT) {
		return nil
	}
	tok := p.cur
	p.advance()
	return ast.NewComment(p.arena, tok, tok.Lexeme)
}

func (p *Parser) parseSimpleStatement() ast.Statement {
	switch p.cur.Kind {
	case token.RETURN:
		return p.parseReturn()
	case token.PASS:
		tok := p.cur
		p.advance()
		return ast.NewPass(p.arena, tok)
	case token.BREAK:
		tok := p.cur
		p.advance()
		return ast.NewBreak(p.arena, tok)
	case token.CONTINUE:
		tok := p.cur
		p.advance()
		return ast.NewContinue(p.arena, tok)
	case token.DEL:
		return p.parseDelete()
	case token.RAISE:
		return p.parseRaise()
	case token.ASSERT:
		return p.parseAssert()
	case token.IMPORT:
		return p.parseImport()
	case token.FROM:
		return p.parseImportFrom()
	case token.GLOBAL:
		return p.parseGlobal()
	case token.NONLOCAL:
		return p.parseNonlocal()
	default:
		return p.parseExprOrAssign()
	}
}

func (p *Parser) parseReturn() ast.Statement {
	tok := p.cur
	p.advance()
	if p.atSimpleStmtEnd() {
		return ast.NewReturn(p.arena, tok, nil)
	}
	val := p.parseExprList()
	return ast.NewReturn(p.arena, tok, val)
}

func (p *Parser) atSimpleStmtEnd() bool {
	switch p.cur.Kind {
	case token.NEWLINE, token.EOF, token.SEMI, token.COMMENT:
		return true
	default:
		return false
	}
}

// parseExprList parses a comma-separated expression list, building a
// TupleExpr when more than one element is present (return/yield/del's
// shared "may be a bare tuple" grammar).
func (p *Parser) parseExprList() ast.Expression {
	tok := p.cur
	first := p.parseExpr(0)
	if !p.curIs(token.COMMA) {
		return first
	}
	elts := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.advance()
		if p.atSimpleStmtEnd() {
			break
		}
		elts = append(elts, p.parseExpr(0))
	}
	return ast.NewTupleExpr(p.arena, tok, elts, ast.Load)
}

func (p *Parser) parseDelete() ast.Statement {
	tok := p.cur
	p.advance()
	var targets []ast.Expression
	for {
		t := p.parseExpr(0)
		ops.SetContext(t, ast.Del)
		targets = append(targets, t)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return ast.NewDelete(p.arena, tok, targets)
}

func (p *Parser) parseRaise() ast.Statement {
	tok := p.cur
	p.advance()
	if p.atSimpleStmtEnd() {
		return ast.NewRaise(p.arena, tok, nil, nil)
	}
	exc := p.parseExpr(0)
	var cause ast.Expression
	if p.curIs(token.FROM) {
		p.advance()
		cause = p.parseExpr(0)
	}
	return ast.NewRaise(p.arena, tok, exc, cause)
}

func (p *Parser) parseAssert() ast.Statement {
	tok := p.cur
	p.advance()
	test := p.parseExpr(0)
	var msg ast.Expression
	if p.curIs(token.COMMA) {
		p.advance()
		msg = p.parseExpr(0)
	}
	return ast.NewAssert(p.arena, tok, test, msg)
}

func (p *Parser) parseImport() ast.Statement {
	tok := p.cur
	p.advance()
	var names []*ast.Alias
	for {
		names = append(names, p.parseAlias())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return ast.NewImport(p.arena, tok, names)
}

func (p *Parser) parseAlias() *ast.Alias {
	name, _ := p.expect(token.IDENT)
	alias := &ast.Alias{Tok: name, Name: name.Lexeme}
	for p.curIs(token.DOT) {
		p.advance()
		next, _ := p.expect(token.IDENT)
		alias.Name += "." + next.Lexeme
	}
	if p.curIs(token.AS) {
		p.advance()
		asName, _ := p.expect(token.IDENT)
		alias.AsName = asName.Lexeme
	}
	return alias
}

func (p *Parser) parseImportFrom() ast.Statement {
	tok := p.cur
	p.advance()
	level := 0
	for p.curIs(token.DOT) {
		level++
		p.advance()
	}
	module := ""
	if p.curIs(token.IDENT) {
		module = p.cur.Lexeme
		p.advance()
		for p.curIs(token.DOT) {
			p.advance()
			next, _ := p.expect(token.IDENT)
			module += "." + next.Lexeme
		}
	}
	p.expect(token.IMPORT)
	var names []*ast.Alias
	if p.curIs(token.OP) && p.cur.Lexeme == "*" {
		starTok := p.cur
		p.advance()
		names = append(names, &ast.Alias{Tok: starTok, Name: "*"})
		return ast.NewImportFrom(p.arena, tok, module, names, level)
	}
	paren := p.curIs(token.LPAREN)
	if paren {
		p.advance()
		p.skipNewlines()
	}
	for {
		names = append(names, p.parseAlias())
		if p.curIs(token.COMMA) {
			p.advance()
			p.skipNewlines()
			if paren && p.curIs(token.RPAREN) {
				break
			}
			continue
		}
		break
	}
	if paren {
		p.skipNewlines()
		p.expect(token.RPAREN)
	}
	return ast.NewImportFrom(p.arena, tok, module, names, level)
}

func (p *Parser) parseGlobal() ast.Statement {
	tok := p.cur
	p.advance()
	names := p.parseNameList()
	return ast.NewGlobal(p.arena, tok, names)
}

func (p *Parser) parseNonlocal() ast.Statement {
	tok := p.cur
	p.advance()
	names := p.parseNameList()
	return ast.NewNonlocal(p.arena, tok, names)
}

func (p *Parser) parseNameList() []string {
	var names []string
	for {
		name, ok := p.expect(token.IDENT)
		if !ok {
			break
		}
		names = append(names, name.Lexeme)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return names
}

// parseExprOrAssign handles expression statements, assignments
// (possibly chained: `a = b = c`), annotated assigns (`x: T = v`),
// augmented assigns, and walrus-free named expressions.
func (p *Parser) parseExprOrAssign() ast.Statement {
	tok := p.cur
	first := p.parseExprList()

	if p.curIs(token.COLON) {
		p.advance()
		annotation := p.parseExpr(0)
		var value ast.Expression
		if p.curIs(token.OP) && p.cur.Lexeme == "=" {
			p.advance()
			value = p.parseExprList()
		}
		ops.SetContext(first, ast.Store)
		return ast.NewAnnAssign(p.arena, tok, first, annotation, value)
	}

	if p.curIs(token.OP) {
		if glyph := p.cur.Lexeme; glyph == "=" {
			targets := []ast.Expression{first}
			p.advance()
			value := p.parseExprList()
			for p.curIs(token.OP) && p.cur.Lexeme == "=" {
				targets = append(targets, value)
				p.advance()
				value = p.parseExprList()
			}
			for _, t := range targets {
				ops.SetContext(t, ast.Store)
			}
			return ast.NewAssign(p.arena, tok, targets, value)
		} else if _, ok := optable.AssignGlyphs[glyph]; ok {
			p.advance()
			value := p.parseExprList()
			ops.SetContext(first, ast.Store)
			return ast.NewAugAssign(p.arena, tok, first, glyph, value)
		}
	}

	return ast.NewExprStmt(p.arena, tok, first)
}

// --- compound statements ---

func (p *Parser) parseFunctionDef(decorators []*ast.Decorator, isAsync bool) ast.Statement {
	tok := p.cur
	p.advance() // def
	name, _ := p.expect(token.IDENT)
	p.expect(token.LPAREN)
	args := p.parseFuncArgs()
	p.expect(token.RPAREN)
	var returns ast.Expression
	if p.curIs(token.ARROW) {
		p.advance()
		returns = p.parseExpr(0)
	}
	p.expect(token.COLON)
	body := p.parseBlock()
	fn := ast.NewFunctionDef(p.arena, tok, name.Lexeme, args, body)
	fn.Decorators = decorators
	fn.Returns = returns
	fn.IsAsync = isAsync
	fn.IsGenerator = containsYield(body)
	return fn
}

func containsYield(body []ast.Statement) bool {
	found := false
	for _, s := range body {
		switch st := s.(type) {
		case *ast.ExprStmt:
			if isYieldExpr(st.Value) {
				found = true
			}
		case *ast.Assign:
			if isYieldExpr(st.Value) {
				found = true
			}
		case *ast.If:
			found = found || containsYield(st.Body) || containsYield(st.OrElse)
		case *ast.While:
			found = found || containsYield(st.Body) || containsYield(st.OrElse)
		case *ast.For:
			found = found || containsYield(st.Body) || containsYield(st.OrElse)
		case *ast.With:
			found = found || containsYield(st.Body)
		case *ast.Try:
			found = found || containsYield(st.Body) || containsYield(st.OrElse) || containsYield(st.FinalBody)
		}
		if found {
			return true
		}
	}
	return false
}

func isYieldExpr(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Yield, *ast.YieldFrom:
		return true
	default:
		return false
	}
}

// parseFuncArgs parses a full parameter list: positional-only (before
// a bare `/`), ordinary, `*args`/bare `*` keyword-only marker,
// keyword-only, `**kwargs`, with per-parameter annotations and
// defaults (spec.md §3's Arguments shape).
func (p *Parser) parseFuncArgs() *ast.Arguments {
	args := &ast.Arguments{}
	seenStar := false
	var pending []*ast.Arg
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if p.curIs(token.OP) && p.cur.Lexeme == "/" {
			p.advance()
			args.PosOnlyArgs = append(args.PosOnlyArgs, pending...)
			pending = nil
			p.consumeComma()
			continue
		}
		if p.curIs(token.OP) && p.cur.Lexeme == "**" {
			p.advance()
			name, _ := p.expect(token.IDENT)
			arg := &ast.Arg{Tok: name, Name: name.Lexeme}
			if p.curIs(token.COLON) {
				p.advance()
				arg.Annotation = p.parseExpr(0)
			}
			args.Kwarg = arg
			p.consumeComma()
			continue
		}
		if p.curIs(token.OP) && p.cur.Lexeme == "*" {
			p.advance()
			seenStar = true
			args.Args = append(args.Args, pending...)
			pending = nil
			if p.curIs(token.IDENT) {
				name := p.cur
				p.advance()
				arg := &ast.Arg{Tok: name, Name: name.Lexeme}
				if p.curIs(token.COLON) {
					p.advance()
					arg.Annotation = p.parseExpr(0)
				}
				args.Vararg = arg
			}
			p.consumeComma()
			continue
		}
		name, ok := p.expect(token.IDENT)
		if !ok {
			break
		}
		arg := &ast.Arg{Tok: name, Name: name.Lexeme}
		if p.curIs(token.COLON) {
			p.advance()
			arg.Annotation = p.parseExpr(0)
		}
		var def ast.Expression
		if p.curIs(token.OP) && p.cur.Lexeme == "=" {
			p.advance()
			def = p.parseExpr(0)
		}
		if seenStar {
			args.KwOnlyArgs = append(args.KwOnlyArgs, arg)
			args.KwDefaults = append(args.KwDefaults, def)
		} else {
			pending = append(pending, arg)
			if def != nil {
				args.Defaults = append(args.Defaults, def)
			}
		}
		p.consumeComma()
	}
	args.Args = append(args.Args, pending...)
	return args
}

func (p *Parser) consumeComma() {
	if p.curIs(token.COMMA) {
		p.advance()
	}
}

func (p *Parser) parseClassDef(decorators []*ast.Decorator) ast.Statement {
	tok := p.cur
	p.advance() // class
	name, _ := p.expect(token.IDENT)
	var bases []ast.Expression
	var keywords []*ast.Keyword
	if p.curIs(token.LPAREN) {
		p.advance()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			if p.curIs(token.IDENT) && p.peekIs(token.OP) && p.peek.Lexeme == "=" {
				kwTok := p.cur
				p.advance()
				p.advance()
				val := p.parseExpr(0)
				keywords = append(keywords, &ast.Keyword{Tok: kwTok, Name: kwTok.Lexeme, Value: val})
			} else {
				bases = append(bases, p.parseExpr(0))
			}
			p.consumeComma()
		}
		p.expect(token.RPAREN)
	}
	p.expect(token.COLON)
	body := p.parseBlock()
	cls := ast.NewClassDef(p.arena, tok, name.Lexeme, bases, body)
	cls.Decorators = decorators
	cls.Keywords = keywords
	return cls
}

func (p *Parser) parseIf() ast.Statement {
	tok := p.cur
	p.advance() // if
	test := p.parseExpr(0)
	p.expect(token.COLON)
	body := p.parseBlock()
	node := ast.NewIf(p.arena, tok, test, body, nil)

	for p.curIs(token.ELIF) {
		p.advance()
		t := p.parseExpr(0)
		p.expect(token.COLON)
		b := p.parseBlock()
		node.Tests = append(node.Tests, t)
		node.Bodies = append(node.Bodies, b)
		for _, s := range b {
			ast.Attach(node, s)
		}
		ast.Attach(node, t)
	}
	if p.curIs(token.ELSE) {
		p.advance()
		p.expect(token.COLON)
		node.OrElse = p.parseBlock()
		for _, s := range node.OrElse {
			ast.Attach(node, s)
		}
	}
	return node
}

func (p *Parser) parseWhile() ast.Statement {
	tok := p.cur
	p.advance()
	test := p.parseExpr(0)
	p.expect(token.COLON)
	body := p.parseBlock()
	var orelse []ast.Statement
	if p.curIs(token.ELSE) {
		p.advance()
		p.expect(token.COLON)
		orelse = p.parseBlock()
	}
	return ast.NewWhile(p.arena, tok, test, body, orelse)
}

func (p *Parser) parseFor(isAsync bool) ast.Statement {
	tok := p.cur
	p.advance() // for
	target := p.parseTargetExpr()
	ops.SetContext(target, ast.Store)
	p.expect(token.IN)
	iter := p.parseExprList()
	p.expect(token.COLON)
	body := p.parseBlock()
	var orelse []ast.Statement
	if p.curIs(token.ELSE) {
		p.advance()
		p.expect(token.COLON)
		orelse = p.parseBlock()
	}
	node := ast.NewFor(p.arena, tok, target, iter, body, orelse)
	node.IsAsync = isAsync
	return node
}

func (p *Parser) parseWith(isAsync bool) ast.Statement {
	tok := p.cur
	p.advance() // with
	var items []*ast.WithItem
	for {
		expr := p.parseExpr(0)
		item := &ast.WithItem{ContextExpr: expr}
		if p.curIs(token.AS) {
			p.advance()
			target := p.parseExpr(0)
			ops.SetContext(target, ast.Store)
			item.OptionalVars = target
		}
		items = append(items, item)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.COLON)
	body := p.parseBlock()
	node := ast.NewWith(p.arena, tok, items, body)
	node.IsAsync = isAsync
	return node
}

func (p *Parser) parseTry() ast.Statement {
	tok := p.cur
	p.advance() // try
	p.expect(token.COLON)
	body := p.parseBlock()
	var handlers []*ast.ExceptHandler
	for p.curIs(token.EXCEPT) {
		hTok := p.cur
		p.advance()
		h := &ast.ExceptHandler{Tok: hTok}
		if !p.curIs(token.COLON) {
			h.Type = p.parseExpr(0)
			if p.curIs(token.AS) {
				p.advance()
				name, _ := p.expect(token.IDENT)
				h.Name = name.Lexeme
			}
		}
		p.expect(token.COLON)
		h.Body = p.parseBlock()
		handlers = append(handlers, h)
	}
	var orelse []ast.Statement
	if p.curIs(token.ELSE) {
		p.advance()
		p.expect(token.COLON)
		orelse = p.parseBlock()
	}
	var final []ast.Statement
	if p.curIs(token.FINALLY) {
		p.advance()
		p.expect(token.COLON)
		final = p.parseBlock()
	}
	return ast.NewTry(p.arena, tok, body, handlers, orelse, final)
}

// --- match statement (spec.md §3's MatchCase/Pattern family) ---

func (p *Parser) parseMatch() ast.Statement {
	tok := p.cur
	p.advance() // match
	subject := p.parseExprList()
	p.expect(token.COLON)
	p.advance() // NEWLINE
	p.expect(token.INDENT)
	var cases []*ast.MatchCase
	p.skipNewlines()
	for p.curIs(token.CASE) {
		cTok := p.cur
		p.advance()
		pat := p.parsePattern()
		var guard ast.Expression
		if p.curIs(token.IF) {
			p.advance()
			guard = p.parseExpr(0)
		}
		p.expect(token.COLON)
		body := p.parseBlock()
		cases = append(cases, &ast.MatchCase{Tok: cTok, Pattern: pat, Guard: guard, Body: body})
		p.skipNewlines()
	}
	p.expect(token.DEDENT)
	return ast.NewMatch(p.arena, tok, subject, cases)
}
