package sema

import (
	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/bindings"
)

// analyzeIf runs the leading test/body and every elif's test/body, each
// in its own fresh Scope (spec.md §4.8's control-flow scoping rule),
// plus the trailing else body.
func (a *Analyzer) analyzeIf(n *ast.If) {
	a.expr(n.Test)
	a.runScoped(n.Body)
	for i, test := range n.Tests {
		a.expr(test)
		a.runScoped(n.Bodies[i])
	}
	a.runScoped(n.OrElse)
}

func (a *Analyzer) analyzeWhile(n *ast.While) {
	a.expr(n.Test)
	a.runScoped(n.Body)
	a.runScoped(n.OrElse)
}

func (a *Analyzer) analyzeFor(n *ast.For) {
	iterT := a.expr(n.Iter)
	scope := bindings.Open(a.table)
	var elemT ast.Expression
	switch t := iterT.(type) {
	case *ast.ArrayType:
		elemT = t.Elem
	case *ast.SetType:
		elemT = t.Elem
	case *ast.DictType:
		elemT = t.Key
	}
	a.bindTarget(n.Target, elemT, nil)
	for _, s := range n.Body {
		a.stmt(s)
	}
	scope.Close()
	a.runScoped(n.OrElse)
}

func (a *Analyzer) analyzeTry(n *ast.Try) {
	a.runScoped(n.Body)
	for _, h := range n.Handlers {
		scope := bindings.Open(a.table)
		if h.Type != nil {
			a.expr(h.Type)
		}
		if h.Name != "" {
			a.table.Add(h.Name, nil, nil, -1)
		}
		for _, s := range h.Body {
			a.stmt(s)
		}
		scope.Close()
	}
	a.runScoped(n.OrElse)
	a.runScoped(n.FinalBody)
}

func (a *Analyzer) analyzeWith(n *ast.With) {
	scope := bindings.Open(a.table)
	for _, item := range n.Items {
		ctxT := a.expr(item.ContextExpr)
		if item.OptionalVars != nil {
			a.bindTarget(item.OptionalVars, ctxT, nil)
		}
	}
	for _, s := range n.Body {
		a.stmt(s)
	}
	scope.Close()
}

func (a *Analyzer) analyzeMatch(n *ast.Match) {
	a.expr(n.Subject)
	for _, c := range n.Cases {
		scope := bindings.Open(a.table)
		a.bindPattern(c.Pattern)
		if c.Guard != nil {
			a.expr(c.Guard)
		}
		for _, s := range c.Body {
			a.stmt(s)
		}
		scope.Close()
	}
}

// bindPattern adds every capture name a match pattern introduces to the
// current scope (spec.md §3's MatchAs/MatchStar/MatchSequence/
// MatchMapping/MatchClass/MatchOr family).
func (a *Analyzer) bindPattern(p ast.Pattern) {
	switch pat := p.(type) {
	case *ast.MatchAs:
		if pat.Pattern != nil {
			a.bindPattern(pat.Pattern)
		}
		if pat.Name != "" {
			a.table.Add(pat.Name, nil, nil, -1)
		}
	case *ast.MatchStar:
		if pat.Name != "" {
			a.table.Add(pat.Name, nil, nil, -1)
		}
	case *ast.MatchOr:
		for _, sub := range pat.Patterns {
			a.bindPattern(sub)
		}
	case *ast.MatchSequence:
		for _, sub := range pat.Patterns {
			a.bindPattern(sub)
		}
	case *ast.MatchMapping:
		for _, sub := range pat.Pats {
			a.bindPattern(sub)
		}
		if pat.Rest != "" {
			a.table.Add(pat.Rest, nil, nil, -1)
		}
	case *ast.MatchClass:
		a.expr(pat.Cls)
		for _, sub := range pat.Patterns {
			a.bindPattern(sub)
		}
		for _, sub := range pat.KwdPatterns {
			a.bindPattern(sub)
		}
	case *ast.MatchValue:
		a.expr(pat.Value)
	case *ast.MatchSingleton:
		// no bindings
	}
}

// runScoped runs body in a fresh Scope, per spec.md §4.8: "If/While/For/
// Try/Match each run their bodies in a fresh bindings.Scope".
func (a *Analyzer) runScoped(body []ast.Statement) {
	if len(body) == 0 {
		return
	}
	scope := bindings.Open(a.table)
	for _, s := range body {
		a.stmt(s)
	}
	scope.Close()
}
