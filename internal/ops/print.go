package ops

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kiwi-lang/kiwi/internal/ast"
)

// Print renders n as indented source text, the inverse of lex+parse
// (spec.md §8's parse/print idempotence property: Print(Parse(Print(m)))
// == Print(m)). Only Module/Statement/Expression kinds are rendered;
// VM-family nodes have no surface syntax and are not accepted here.
func Print(n ast.Node, w io.Writer) {
	p := &printer{w: w}
	p.node(n)
}

// Sprint is the string-returning convenience form used by tests.
func Sprint(n ast.Node) string {
	var sb strings.Builder
	Print(n, &sb)
	return sb.String()
}

type printer struct {
	w     io.Writer
	depth int
}

func (p *printer) indent() string { return strings.Repeat(" ", p.depth*4) }

func (p *printer) writef(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) block(body []ast.Statement) {
	p.depth++
	if len(body) == 0 {
		p.writef("%spass\n", p.indent())
	}
	for _, s := range body {
		p.writef("%s", p.indent())
		p.node(s)
		p.writef("\n")
	}
	p.depth--
}

func (p *printer) node(n ast.Node) {
	switch x := n.(type) {
	case *ast.Module:
		for _, s := range x.Body {
			p.node(s)
			p.writef("\n")
		}

	case *ast.FunctionDef:
		kw := "def"
		if x.IsAsync {
			kw = "async def"
		}
		p.writef("%s %s(%s):\n", kw, x.Name, printArgs(x.Args))
		p.block(x.Body)
	case *ast.ClassDef:
		bases := ""
		if len(x.Bases) > 0 {
			bases = "(" + joinExprs(x.Bases) + ")"
		}
		p.writef("class %s%s:\n", x.Name, bases)
		p.block(x.Body)
	case *ast.Return:
		if x.Value == nil {
			p.writef("return")
		} else {
			p.writef("return %s", exprStr(x.Value))
		}
	case *ast.Assign:
		targets := make([]string, len(x.Targets))
		for i, t := range x.Targets {
			targets[i] = exprStr(t)
		}
		p.writef("%s = %s", strings.Join(targets, " = "), exprStr(x.Value))
	case *ast.AnnAssign:
		if x.Value != nil {
			p.writef("%s: %s = %s", exprStr(x.Target), exprStr(x.Annotation), exprStr(x.Value))
		} else {
			p.writef("%s: %s", exprStr(x.Target), exprStr(x.Annotation))
		}
	case *ast.AugAssign:
		p.writef("%s %s= %s", exprStr(x.Target), x.Op, exprStr(x.Value))
	case *ast.Delete:
		p.writef("del %s", joinExprs(x.Targets))
	case *ast.For:
		kw := "for"
		if x.IsAsync {
			kw = "async for"
		}
		p.writef("%s %s in %s:\n", kw, exprStr(x.Target), exprStr(x.Iter))
		p.block(x.Body)
		if len(x.OrElse) > 0 {
			p.writef("%selse:\n", p.indent())
			p.block(x.OrElse)
		}
	case *ast.While:
		p.writef("while %s:\n", exprStr(x.Test))
		p.block(x.Body)
		if len(x.OrElse) > 0 {
			p.writef("%selse:\n", p.indent())
			p.block(x.OrElse)
		}
	case *ast.If:
		p.writef("if %s:\n", exprStr(x.Test))
		p.block(x.Body)
		for i, t := range x.Tests {
			p.writef("%selif %s:\n", p.indent(), exprStr(t))
			p.block(x.Bodies[i])
		}
		if len(x.OrElse) > 0 {
			p.writef("%selse:\n", p.indent())
			p.block(x.OrElse)
		}
	case *ast.With:
		kw := "with"
		if x.IsAsync {
			kw = "async with"
		}
		items := make([]string, len(x.Items))
		for i, it := range x.Items {
			if it.OptionalVars != nil {
				items[i] = exprStr(it.ContextExpr) + " as " + exprStr(it.OptionalVars)
			} else {
				items[i] = exprStr(it.ContextExpr)
			}
		}
		p.writef("%s %s:\n", kw, strings.Join(items, ", "))
		p.block(x.Body)
	case *ast.Raise:
		switch {
		case x.Exc == nil:
			p.writef("raise")
		case x.Cause != nil:
			p.writef("raise %s from %s", exprStr(x.Exc), exprStr(x.Cause))
		default:
			p.writef("raise %s", exprStr(x.Exc))
		}
	case *ast.Try:
		p.writef("try:\n")
		p.block(x.Body)
		for _, h := range x.Handlers {
			switch {
			case h.Type == nil:
				p.writef("%sexcept:\n", p.indent())
			case h.Name != "":
				p.writef("%sexcept %s as %s:\n", p.indent(), exprStr(h.Type), h.Name)
			default:
				p.writef("%sexcept %s:\n", p.indent(), exprStr(h.Type))
			}
			p.block(h.Body)
		}
		if len(x.OrElse) > 0 {
			p.writef("%selse:\n", p.indent())
			p.block(x.OrElse)
		}
		if len(x.FinalBody) > 0 {
			p.writef("%sfinally:\n", p.indent())
			p.block(x.FinalBody)
		}
	case *ast.Assert:
		if x.Msg != nil {
			p.writef("assert %s, %s", exprStr(x.Test), exprStr(x.Msg))
		} else {
			p.writef("assert %s", exprStr(x.Test))
		}
	case *ast.Import:
		p.writef("import %s", joinAliases(x.Names))
	case *ast.ImportFrom:
		p.writef("from %s%s import %s", strings.Repeat(".", x.Level), x.Module, joinAliases(x.Names))
	case *ast.Global:
		p.writef("global %s", strings.Join(x.Names, ", "))
	case *ast.Nonlocal:
		p.writef("nonlocal %s", strings.Join(x.Names, ", "))
	case *ast.ExprStmt:
		p.writef("%s", exprStr(x.Value))
	case *ast.Pass:
		p.writef("pass")
	case *ast.Break:
		p.writef("break")
	case *ast.Continue:
		p.writef("continue")
	case *ast.Match:
		p.writef("match %s:\n", exprStr(x.Subject))
		p.depth++
		for _, c := range x.Cases {
			if c.Guard != nil {
				p.writef("%scase %s if %s:\n", p.indent(), patStr(c.Pattern), exprStr(c.Guard))
			} else {
				p.writef("%scase %s:\n", p.indent(), patStr(c.Pattern))
			}
			p.block(c.Body)
		}
		p.depth--
	case *ast.Inline:
		parts := make([]string, len(x.Body))
		for i, s := range x.Body {
			parts[i] = Sprint(s)
		}
		p.writef("%s", strings.Join(parts, "; "))
	case *ast.Comment:
		p.writef("# %s", x.Text)
	case *ast.InvalidStatement:
		p.writef("<invalid>")

	default:
		if e, ok := n.(ast.Expression); ok {
			p.writef("%s", exprStr(e))
			return
		}
		panic(fmt.Sprintf("ops.Print: unhandled node kind %v", n.Kind()))
	}
}

func printArgs(args *ast.Arguments) string {
	if args == nil {
		return ""
	}
	var parts []string
	offset := len(args.PosOnlyArgs) + len(args.Args) - len(args.Defaults)
	idx := 0
	for _, a := range args.PosOnlyArgs {
		s := argStr(a)
		if idx >= offset {
			s += "=" + exprStr(args.Defaults[idx-offset])
		}
		parts = append(parts, s)
		idx++
	}
	if len(args.PosOnlyArgs) > 0 {
		parts = append(parts, "/")
	}
	for _, a := range args.Args {
		s := argStr(a)
		if idx >= offset {
			s += "=" + exprStr(args.Defaults[idx-offset])
		}
		parts = append(parts, s)
		idx++
	}
	if args.Vararg != nil {
		parts = append(parts, "*"+argStr(args.Vararg))
	} else if len(args.KwOnlyArgs) > 0 {
		parts = append(parts, "*")
	}
	for i, a := range args.KwOnlyArgs {
		s := argStr(a)
		if args.KwDefaults[i] != nil {
			s += "=" + exprStr(args.KwDefaults[i])
		}
		parts = append(parts, s)
	}
	if args.Kwarg != nil {
		parts = append(parts, "**"+argStr(args.Kwarg))
	}
	return strings.Join(parts, ", ")
}

func argStr(a *ast.Arg) string {
	if a.Annotation != nil {
		return a.Name + ": " + exprStr(a.Annotation)
	}
	return a.Name
}

func joinAliases(names []*ast.Alias) string {
	parts := make([]string, len(names))
	for i, a := range names {
		if a.AsName != "" {
			parts[i] = a.Name + " as " + a.AsName
		} else {
			parts[i] = a.Name
		}
	}
	return strings.Join(parts, ", ")
}

func joinExprs(es []ast.Expression) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = exprStr(e)
	}
	return strings.Join(parts, ", ")
}

func patStr(p ast.Pattern) string {
	switch x := p.(type) {
	case nil:
		return "_"
	case *ast.MatchValue:
		return exprStr(x.Value)
	case *ast.MatchSingleton:
		return constStr(x.CKind, 0, 0, x.B, "")
	case *ast.MatchSequence:
		parts := make([]string, len(x.Patterns))
		for i, sub := range x.Patterns {
			parts[i] = patStr(sub)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.MatchMapping:
		parts := make([]string, len(x.Keys))
		for i, k := range x.Keys {
			parts[i] = exprStr(k) + ": " + patStr(x.Pats[i])
		}
		if x.Rest != "" {
			parts = append(parts, "**"+x.Rest)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.MatchClass:
		parts := make([]string, len(x.Patterns))
		for i, sub := range x.Patterns {
			parts[i] = patStr(sub)
		}
		for i, name := range x.KwdAttrs {
			parts = append(parts, name+"="+patStr(x.KwdPatterns[i]))
		}
		return exprStr(x.Cls) + "(" + strings.Join(parts, ", ") + ")"
	case *ast.MatchStar:
		if x.Name == "" {
			return "*_"
		}
		return "*" + x.Name
	case *ast.MatchAs:
		if x.Pattern == nil {
			return x.Name
		}
		return patStr(x.Pattern) + " as " + x.Name
	case *ast.MatchOr:
		parts := make([]string, len(x.Patterns))
		for i, sub := range x.Patterns {
			parts[i] = patStr(sub)
		}
		return strings.Join(parts, " | ")
	default:
		panic("ops.Print: unhandled pattern kind")
	}
}

func constStr(ckind ast.ConstKind, i int64, f float64, b bool, s string) string {
	switch ckind {
	case ast.ConstInt:
		return strconv.FormatInt(i, 10)
	case ast.ConstFloat:
		return strconv.FormatFloat(f, 'g', -1, 64)
	case ast.ConstBool:
		if b {
			return "True"
		}
		return "False"
	case ast.ConstString:
		return strconv.Quote(s)
	default:
		return "None"
	}
}

// exprStr renders an expression with the minimal parenthesization
// needed to round-trip precedence correctly (spec.md §4.4, §8).
func exprStr(e ast.Expression) string {
	if e == nil {
		return ""
	}
	switch x := e.(type) {
	case *ast.Name:
		return x.ID_
	case *ast.Constant:
		return constStr(x.CKind, x.I, x.F, x.B, x.S)
	case *ast.BinOp:
		return paren(x.Left, x) + " " + x.Op + " " + paren(x.Right, x)
	case *ast.BoolOp:
		parts := make([]string, len(x.Values))
		for i, v := range x.Values {
			parts[i] = paren(v, x)
		}
		return strings.Join(parts, " "+x.Op+" ")
	case *ast.UnaryOp:
		sep := ""
		if x.Op == "not" {
			sep = " "
		}
		return x.Op + sep + paren(x.Operand, x)
	case *ast.Compare:
		sb := strings.Builder{}
		sb.WriteString(paren(x.Left, x))
		for i, op := range x.Ops {
			sb.WriteString(" " + op + " ")
			sb.WriteString(paren(x.Comparators[i], x))
		}
		return sb.String()
	case *ast.Call:
		parts := make([]string, 0, len(x.Args)+len(x.Keywords))
		for _, a := range x.Args {
			parts = append(parts, exprStr(a))
		}
		for _, kw := range x.Keywords {
			if kw.Name == "" {
				parts = append(parts, "**"+exprStr(kw.Value))
			} else {
				parts = append(parts, kw.Name+"="+exprStr(kw.Value))
			}
		}
		if x.Varargs != nil {
			parts = append(parts, "*"+exprStr(x.Varargs))
		}
		return exprStr(x.Func) + "(" + strings.Join(parts, ", ") + ")"
	case *ast.Attribute:
		return exprStr(x.Value) + "." + x.Attr
	case *ast.Subscript:
		return exprStr(x.Value) + "[" + exprStr(x.Slice) + "]"
	case *ast.Starred:
		return "*" + exprStr(x.Value)
	case *ast.IfExp:
		return exprStr(x.Body) + " if " + exprStr(x.Test) + " else " + exprStr(x.OrElse)
	case *ast.Lambda:
		return "lambda " + printArgs(x.Args) + ": " + exprStr(x.Body)
	case *ast.NamedExpr:
		return "(" + x.Target.ID_ + " := " + exprStr(x.Value) + ")"
	case *ast.Await:
		return "await " + exprStr(x.Value)
	case *ast.Yield:
		if x.Value == nil {
			return "yield"
		}
		return "yield " + exprStr(x.Value)
	case *ast.YieldFrom:
		return "yield from " + exprStr(x.Value)
	case *ast.ListExpr:
		return "[" + joinExprs(x.Elts) + "]"
	case *ast.TupleExpr:
		s := joinExprs(x.Elts)
		if len(x.Elts) == 1 {
			s += ","
		}
		return "(" + s + ")"
	case *ast.SetExpr:
		return "{" + joinExprs(x.Elts) + "}"
	case *ast.DictExpr:
		parts := make([]string, len(x.Values))
		for i, v := range x.Values {
			if x.Keys[i] == nil {
				parts[i] = "**" + exprStr(v)
			} else {
				parts[i] = exprStr(x.Keys[i]) + ": " + exprStr(v)
			}
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.Comprehension:
		return comprehensionStr(x)
	case *ast.Slice:
		s := ""
		if x.Lower != nil {
			s += exprStr(x.Lower)
		}
		s += ":"
		if x.Upper != nil {
			s += exprStr(x.Upper)
		}
		if x.Step != nil {
			s += ":" + exprStr(x.Step)
		}
		return s
	case *ast.JoinedStr:
		var sb strings.Builder
		sb.WriteByte('f')
		sb.WriteByte('"')
		for _, v := range x.Values {
			if c, ok := v.(*ast.Constant); ok && c.CKind == ast.ConstString {
				sb.WriteString(c.S)
				continue
			}
			sb.WriteByte('{')
			sb.WriteString(exprStr(v))
			sb.WriteByte('}')
		}
		sb.WriteByte('"')
		return sb.String()
	case *ast.FormattedValue:
		s := exprStr(x.Value)
		if x.Conversion != 0 {
			s += "!" + string(x.Conversion)
		}
		if x.FormatSpec != nil {
			s += ":" + exprStr(x.FormatSpec)
		}
		return s
	case *ast.Arrow:
		return "(" + joinExprs(x.ArgTypes) + ") -> " + exprStr(x.Returns)
	case *ast.DictType:
		return "dict[" + exprStr(x.Key) + ", " + exprStr(x.Value) + "]"
	case *ast.ArrayType:
		return "array[" + exprStr(x.Elem) + "]"
	case *ast.SetType:
		return "set[" + exprStr(x.Elem) + "]"
	case *ast.TupleType:
		return "tuple[" + joinExprs(x.Elems) + "]"
	case *ast.BuiltinType:
		return x.Name
	case *ast.ClassType:
		if x.Def != nil {
			return x.Def.Name
		}
		return "<class>"
	case *ast.Placeholder:
		return "<placeholder>"
	case *ast.Exported:
		return x.Name + " as " + exprStr(x.Value)
	default:
		panic(fmt.Sprintf("ops.Print: unhandled expression kind %v", e.Kind()))
	}
}

func comprehensionStr(x *ast.Comprehension) string {
	var clauses strings.Builder
	for _, c := range x.Clauses {
		kw := "for"
		if c.IsAsync {
			kw = "async for"
		}
		clauses.WriteString(" " + kw + " " + exprStr(c.Target) + " in " + exprStr(c.Iter))
		for _, i := range c.Ifs {
			clauses.WriteString(" if " + exprStr(i))
		}
	}
	switch x.CKind {
	case ast.CompSet:
		return "{" + exprStr(x.Elt) + clauses.String() + "}"
	case ast.CompDict:
		return "{" + exprStr(x.Key) + ": " + exprStr(x.Value) + clauses.String() + "}"
	case ast.CompGenerator:
		return "(" + exprStr(x.Elt) + clauses.String() + ")"
	default:
		return "[" + exprStr(x.Elt) + clauses.String() + "]"
	}
}

// paren wraps child in parentheses when its own precedence binds strictly
// looser than parent's (spec.md §4.4). A child of equal precedence is
// printed bare, so `a - (b - c)` or `(a ** b) ** c` loses its parentheses
// and re-parses with the default associativity.
func paren(child ast.Expression, parent ast.Expression) string {
	s := exprStr(child)
	if precedence(child) < precedence(parent) {
		return "(" + s + ")"
	}
	return s
}

// precedence returns a rough binding-power rank for parenthesization
// purposes.
func precedence(e ast.Expression) int {
	switch x := e.(type) {
	case *ast.BoolOp:
		if x.Op == "or" {
			return 1
		}
		return 2
	case *ast.UnaryOp:
		if x.Op == "not" {
			return 3
		}
		return 9
	case *ast.Compare:
		return 4
	case *ast.BinOp:
		switch x.Op {
		case "|":
			return 5
		case "^":
			return 6
		case "&":
			return 7
		case "<<", ">>":
			return 8
		case "+", "-":
			return 9
		case "*", "/", "//", "%", "@":
			return 10
		case "**":
			return 12
		default:
			return 9
		}
	case *ast.IfExp:
		return 0
	case *ast.Lambda:
		return 0
	default:
		return 100 // atoms: calls, names, literals, subscripts never need parens
	}
}
