package ast

import "github.com/kiwi-lang/kiwi/internal/token"

func (*MatchValue) isPattern()     {}
func (*MatchSingleton) isPattern() {}
func (*MatchSequence) isPattern()  {}
func (*MatchMapping) isPattern()   {}
func (*MatchClass) isPattern()     {}
func (*MatchStar) isPattern()      {}
func (*MatchAs) isPattern()        {}
func (*MatchOr) isPattern()        {}

// MatchValue matches the subject against a constant expression's value.
type MatchValue struct {
	Base
	Tok   token.Token
	Value Expression
}

func NewMatchValue(a *Arena, tok token.Token, value Expression) *MatchValue {
	n := New(a, &MatchValue{Base: newBase(KMatchValue, tok.Span), Tok: tok, Value: value})
	Attach(n, value)
	return n
}
func (n *MatchValue) Accept(v Visitor) { v.VisitMatchValue(n) }

// MatchSingleton matches None/True/False by identity.
type MatchSingleton struct {
	Base
	Tok   token.Token
	CKind ConstKind
	B     bool
}

func NewMatchSingleton(a *Arena, tok token.Token, ckind ConstKind, b bool) *MatchSingleton {
	return New(a, &MatchSingleton{Base: newBase(KMatchSingleton, tok.Span), Tok: tok, CKind: ckind, B: b})
}
func (n *MatchSingleton) Accept(v Visitor) { v.VisitMatchSingleton(n) }

// MatchSequence matches a `[pat, ...]` pattern.
type MatchSequence struct {
	Base
	Tok      token.Token
	Patterns []Pattern
}

func NewMatchSequence(a *Arena, tok token.Token, patterns []Pattern) *MatchSequence {
	n := New(a, &MatchSequence{Base: newBase(KMatchSequence, tok.Span), Tok: tok, Patterns: patterns})
	for _, p := range patterns {
		Attach(n, p)
	}
	return n
}
func (n *MatchSequence) Accept(v Visitor) { v.VisitMatchSequence(n) }

// MatchMapping matches `{k: pat, **rest}`.
type MatchMapping struct {
	Base
	Tok   token.Token
	Keys  []Expression
	Pats  []Pattern
	Rest  string // empty if no `**rest` capture
}

func NewMatchMapping(a *Arena, tok token.Token, keys []Expression, pats []Pattern, rest string) *MatchMapping {
	n := New(a, &MatchMapping{Base: newBase(KMatchMapping, tok.Span), Tok: tok, Keys: keys, Pats: pats, Rest: rest})
	for _, k := range keys {
		Attach(n, k)
	}
	for _, p := range pats {
		Attach(n, p)
	}
	return n
}
func (n *MatchMapping) Accept(v Visitor) { v.VisitMatchMapping(n) }

// MatchClass matches `Name(pat, name=pat)`.
type MatchClass struct {
	Base
	Tok          token.Token
	Cls          Expression
	Patterns     []Pattern
	KwdAttrs     []string
	KwdPatterns  []Pattern
}

func NewMatchClass(a *Arena, tok token.Token, cls Expression, patterns []Pattern, kwdAttrs []string, kwdPatterns []Pattern) *MatchClass {
	n := New(a, &MatchClass{Base: newBase(KMatchClass, tok.Span), Tok: tok, Cls: cls, Patterns: patterns, KwdAttrs: kwdAttrs, KwdPatterns: kwdPatterns})
	Attach(n, cls)
	for _, p := range patterns {
		Attach(n, p)
	}
	for _, p := range kwdPatterns {
		Attach(n, p)
	}
	return n
}
func (n *MatchClass) Accept(v Visitor) { v.VisitMatchClass(n) }

// MatchStar is the `*name` rest-capture inside a sequence pattern.
type MatchStar struct {
	Base
	Tok  token.Token
	Name string // empty for a bare `*_`
}

func NewMatchStar(a *Arena, tok token.Token, name string) *MatchStar {
	return New(a, &MatchStar{Base: newBase(KMatchStar, tok.Span), Tok: tok, Name: name})
}
func (n *MatchStar) Accept(v Visitor) { v.VisitMatchStar(n) }

// MatchAs is `pattern as name` (or a bare capture `name` when Pattern is
// nil), spec.md §4.3 pattern grammar.
type MatchAs struct {
	Base
	Tok     token.Token
	Pattern Pattern
	Name    string
}

func NewMatchAs(a *Arena, tok token.Token, pattern Pattern, name string) *MatchAs {
	n := New(a, &MatchAs{Base: newBase(KMatchAs, tok.Span), Tok: tok, Pattern: pattern, Name: name})
	Attach(n, pattern)
	return n
}
func (n *MatchAs) Accept(v Visitor) { v.VisitMatchAs(n) }

// MatchOr is `pat1 | pat2 | ...`.
type MatchOr struct {
	Base
	Tok      token.Token
	Patterns []Pattern
}

func NewMatchOr(a *Arena, tok token.Token, patterns []Pattern) *MatchOr {
	n := New(a, &MatchOr{Base: newBase(KMatchOr, tok.Span), Tok: tok, Patterns: patterns})
	for _, p := range patterns {
		Attach(n, p)
	}
	return n
}
func (n *MatchOr) Accept(v Visitor) { v.VisitMatchOr(n) }
