package ops

import "github.com/kiwi-lang/kiwi/internal/ast"

// SetContext rewrites the ExprContext of e and (recursively) every
// sub-target inside it to ctx. The parser calls this once it knows
// whether an expression it built optimistically as a Load turned out to
// be an assignment/del target (Name/Starred/Attribute/Subscript/List/
// Tuple are the only kinds that carry an ExprContext, spec.md §3).
func SetContext(e ast.Expression, ctx ast.ExprContext) {
	switch x := e.(type) {
	case *ast.Name:
		x.Ctx = ctx
	case *ast.Starred:
		x.Ctx = ctx
		SetContext(x.Value, ctx)
	case *ast.Attribute:
		x.Ctx = ctx
	case *ast.Subscript:
		x.Ctx = ctx
	case *ast.ListExpr:
		x.Ctx = ctx
		for _, elt := range x.Elts {
			SetContext(elt, ctx)
		}
	case *ast.TupleExpr:
		x.Ctx = ctx
		for _, elt := range x.Elts {
			SetContext(elt, ctx)
		}
	}
}
