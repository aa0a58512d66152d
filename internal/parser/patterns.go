package parser

import (
	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/optable"
	"github.com/kiwi-lang/kiwi/internal/token"
)

// parsePattern parses one `case` pattern, including `|`-alternatives
// and a trailing `as name` capture (spec.md §3's Pattern family).
func (p *Parser) parsePattern() ast.Pattern {
	first := p.parseOrPattern()
	if p.curIs(token.AS) {
		tok := p.cur
		p.advance()
		name, _ := p.expect(token.IDENT)
		return ast.NewMatchAs(p.arena, tok, first, name.Lexeme)
	}
	return first
}

func (p *Parser) parseOrPattern() ast.Pattern {
	tok := p.cur
	first := p.parseClosedPattern()
	if !(p.curIs(token.OP) && p.cur.Lexeme == "|") {
		return first
	}
	pats := []ast.Pattern{first}
	for p.curIs(token.OP) && p.cur.Lexeme == "|" {
		p.advance()
		pats = append(pats, p.parseClosedPattern())
	}
	return ast.NewMatchOr(p.arena, tok, pats)
}

// parseClosedPattern parses one pattern with no top-level `|` or `as`.
// Value expressions are parsed above `|` precedence so a following `|`
// is left for parseOrPattern.
func (p *Parser) parseClosedPattern() ast.Pattern {
	tok := p.cur
	valuePrec := optable.Table["|"].Precedence + 1
	switch p.cur.Kind {
	case token.OP:
		if p.cur.Lexeme == "*" {
			p.advance()
			if p.curIs(token.IDENT) && p.cur.Lexeme != "_" {
				name := p.cur
				p.advance()
				return ast.NewMatchStar(p.arena, tok, name.Lexeme)
			}
			if p.curIs(token.IDENT) {
				p.advance()
			}
			return ast.NewMatchStar(p.arena, tok, "")
		}
		if p.cur.Lexeme == "-" {
			val := p.parseExpr(valuePrec)
			return ast.NewMatchValue(p.arena, tok, val)
		}
	case token.NONE:
		p.advance()
		return ast.NewMatchSingleton(p.arena, tok, ast.ConstNone, false)
	case token.TRUE:
		p.advance()
		return ast.NewMatchSingleton(p.arena, tok, ast.ConstBool, true)
	case token.FALSE:
		p.advance()
		return ast.NewMatchSingleton(p.arena, tok, ast.ConstBool, false)
	case token.LBRACKET:
		return p.parseSequencePattern(token.LBRACKET, token.RBRACKET)
	case token.LPAREN:
		return p.parseSequencePattern(token.LPAREN, token.RPAREN)
	case token.LBRACE:
		return p.parseMappingPattern()
	case token.IDENT:
		if p.cur.Lexeme == "_" && !p.peekIsDotOrParen() {
			p.advance()
			return ast.NewMatchAs(p.arena, tok, nil, "")
		}
		return p.parseCaptureOrValueOrClassPattern()
	}
	val := p.parseExpr(valuePrec)
	return ast.NewMatchValue(p.arena, tok, val)
}

func (p *Parser) peekIsDotOrParen() bool {
	return p.peek.Kind == token.DOT || p.peek.Kind == token.LPAREN
}

// parseCaptureOrValueOrClassPattern handles a bare name (capture
// pattern), a dotted name (value pattern, e.g. `Color.RED`), or a
// dotted/bare name followed by `(...)` (class pattern).
func (p *Parser) parseCaptureOrValueOrClassPattern() ast.Pattern {
	tok := p.cur
	expr := ast.Expression(ast.NewName(p.arena, p.cur, p.cur.Lexeme, ast.Load))
	p.advance()
	dotted := false
	for p.curIs(token.DOT) {
		dotted = true
		p.advance()
		attr, _ := p.expect(token.IDENT)
		expr = ast.NewAttribute(p.arena, attr, expr, attr.Lexeme, ast.Load)
	}
	if p.curIs(token.LPAREN) {
		return p.parseClassPattern(tok, expr)
	}
	if dotted {
		return ast.NewMatchValue(p.arena, tok, expr)
	}
	name := expr.(*ast.Name)
	return ast.NewMatchAs(p.arena, tok, nil, name.ID_)
}

func (p *Parser) parseClassPattern(tok token.Token, cls ast.Expression) ast.Pattern {
	p.expect(token.LPAREN)
	var patterns []ast.Pattern
	var kwdAttrs []string
	var kwdPatterns []ast.Pattern
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if p.curIs(token.IDENT) && p.peekIs(token.OP) && p.peek.Lexeme == "=" {
			name := p.cur
			p.advance()
			p.advance() // '='
			kwdAttrs = append(kwdAttrs, name.Lexeme)
			kwdPatterns = append(kwdPatterns, p.parsePattern())
		} else {
			patterns = append(patterns, p.parsePattern())
		}
		p.consumeComma()
	}
	p.expect(token.RPAREN)
	return ast.NewMatchClass(p.arena, tok, cls, patterns, kwdAttrs, kwdPatterns)
}

func (p *Parser) parseSequencePattern(open, close token.Kind) ast.Pattern {
	tok := p.cur
	p.expect(open)
	var pats []ast.Pattern
	for !p.curIs(close) && !p.curIs(token.EOF) {
		pats = append(pats, p.parsePattern())
		p.consumeComma()
	}
	p.expect(close)
	return ast.NewMatchSequence(p.arena, tok, pats)
}

func (p *Parser) parseMappingPattern() ast.Pattern {
	tok := p.cur
	p.expect(token.LBRACE)
	var keys []ast.Expression
	var pats []ast.Pattern
	rest := ""
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.OP) && p.cur.Lexeme == "**" {
			p.advance()
			name, _ := p.expect(token.IDENT)
			rest = name.Lexeme
			p.consumeComma()
			continue
		}
		key := p.parseExpr(0)
		p.expect(token.COLON)
		val := p.parsePattern()
		keys = append(keys, key)
		pats = append(pats, val)
		p.consumeComma()
	}
	p.expect(token.RBRACE)
	return ast.NewMatchMapping(p.arena, tok, keys, pats, rest)
}
