package sema

import (
	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/diagnostics"
	"github.com/kiwi-lang/kiwi/internal/optable"
	"github.com/kiwi-lang/kiwi/internal/token"
)

// opSignature is the registry key of spec.md §4.8: "{op}-{lhs}-{rhs}".
func opSignature(op, lhs, rhs string) string { return op + "-" + lhs + "-" + rhs }

// registerBuiltinOperators seeds the three operator-resolution registries
// (binary/unary/cmp) with the scalar-type signatures spec.md §4.8
// describes: same-type-preferred, with int/float promotion mirroring
// Python's arithmetic coercion. Each entry maps straight to a result
// type-expression rather than a function pointer, since Sema only needs
// to know the resulting type here — the evaluator/VM perform the actual
// arithmetic natively per values.Tag (SPEC_FULL.md §9/§11).
func (a *Analyzer) registerBuiltinOperators() {
	numeric := []string{"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64"}
	arith := []optable.BinKind{optable.Add, optable.Sub, optable.Mul, optable.Div, optable.FloorDiv, optable.Mod, optable.Pow}
	arithGlyph := map[optable.BinKind]string{
		optable.Add: "+", optable.Sub: "-", optable.Mul: "*", optable.Div: "/",
		optable.FloorDiv: "//", optable.Mod: "%", optable.Pow: "**",
	}
	for _, lhs := range numeric {
		for _, rhs := range numeric {
			result := widen(lhs, rhs)
			for _, k := range arith {
				glyph := arithGlyph[k]
				a.binary[opSignature(glyph, lhs, rhs)] = a.builtinType(result)
			}
			for _, glyph := range []string{"&", "|", "^", "<<", ">>"} {
				if !isFloat(lhs) && !isFloat(rhs) {
					a.binary[opSignature(glyph, lhs, rhs)] = a.builtinType(widen(lhs, rhs))
				}
			}
			for _, glyph := range []string{"<", "<=", ">", ">=", "==", "!="} {
				a.cmp[opSignature(glyph, lhs, rhs)] = a.builtinType("bool")
			}
		}
		a.unary[opSignature("-", lhs, "")] = a.builtinType(lhs)
		a.unary[opSignature("+", lhs, "")] = a.builtinType(lhs)
		if !isFloat(lhs) {
			a.unary[opSignature("~", lhs, "")] = a.builtinType(lhs)
		}
	}
	// str concatenation and comparison.
	a.binary[opSignature("+", "str", "str")] = a.builtinType("str")
	for _, glyph := range []string{"==", "!=", "<", "<=", ">", ">="} {
		a.cmp[opSignature(glyph, "str", "str")] = a.builtinType("bool")
	}
	a.cmp[opSignature("==", "None", "None")] = a.builtinType("bool")
	a.cmp[opSignature("!=", "None", "None")] = a.builtinType("bool")
	a.cmp[opSignature("is", "None", "None")] = a.builtinType("bool")
	// `and`/`or` have no registry entries: Sema gives a BoolOp the type
	// of its last operand. Only `not` is registered, for bool.
	a.unary[opSignature("not", "bool", "")] = a.builtinType("bool")
}

func (a *Analyzer) builtinType(name string) ast.Expression {
	if t, ok := a.builtins[name]; ok {
		return t
	}
	t := newBuiltinType(a.arena, name)
	a.builtins[name] = t
	return t
}

// resolveBinary looks up the binary-operator registry, falling back to
// the lhs class's magic method (`__add__`, …) and then the rhs's
// reflected method (`__radd__`, …), per spec.md §4.8. Returns the
// result type, or nil with an UnsupportedOperand diagnostic on miss.
func (a *Analyzer) resolveBinary(node *ast.BinOp, lhs, rhs ast.Expression) ast.Expression {
	sig := opSignature(node.Op, typeName(lhs), typeName(rhs))
	if t, ok := a.binary[sig]; ok {
		return t
	}
	if t := a.resolveMagicMethod(lhs, rhs, magicName(node.Op), reflectedMagicName(node.Op)); t != nil {
		return t
	}
	a.unsupportedOperand(node.Tok, node.Op, lhs, rhs)
	return nil
}

func (a *Analyzer) resolveCompare(tok token.Token, op string, lhs, rhs ast.Expression) ast.Expression {
	sig := opSignature(op, typeName(lhs), typeName(rhs))
	if t, ok := a.cmp[sig]; ok {
		return t
	}
	if t := a.resolveMagicMethod(lhs, rhs, cmpMagicName(op), ""); t != nil {
		return t
	}
	return a.builtinType("bool") // comparisons default to bool even on a miss; Equal/NotEq always apply in Python
}

func (a *Analyzer) resolveUnary(node *ast.UnaryOp, operand ast.Expression) ast.Expression {
	name := typeName(operand)
	sig := opSignature(node.Op, name, "")
	if t, ok := a.unary[sig]; ok {
		return t
	}
	if node.Op == "~" && isNumeric(name) && !isFloat(name) {
		return operand // shift/invert on a width the registry hasn't seen yet still passes through
	}
	return operand
}

// resolveMagicMethod looks for name on lhs's class first, then
// reflectedName on rhs's class, per spec.md §4.8's "miss falls back to
// the magic method ... and then the rhs's reflected method" rule.
func (a *Analyzer) resolveMagicMethod(lhs, rhs ast.Expression, name, reflectedName string) ast.Expression {
	if ct, ok := lhs.(*ast.ClassType); ok && ct.Def != nil {
		if fn := findMethod(ct.Def, name); fn != nil {
			return a.arrowReturn(fn)
		}
	}
	if reflectedName != "" {
		if ct, ok := rhs.(*ast.ClassType); ok && ct.Def != nil {
			if fn := findMethod(ct.Def, reflectedName); fn != nil {
				return a.arrowReturn(fn)
			}
		}
	}
	return nil
}

func (a *Analyzer) arrowReturn(fn *ast.FunctionDef) ast.Expression {
	if fn.Returns != nil {
		return fn.Returns
	}
	return a.builtinType("None")
}

func findMethod(def *ast.ClassDef, name string) *ast.FunctionDef {
	for _, s := range def.Body {
		if fn, ok := s.(*ast.FunctionDef); ok && fn.Name == name {
			return fn
		}
	}
	return nil
}

func magicName(op string) string {
	switch op {
	case "+":
		return "__add__"
	case "-":
		return "__sub__"
	case "*":
		return "__mul__"
	case "/":
		return "__truediv__"
	case "//":
		return "__floordiv__"
	case "%":
		return "__mod__"
	case "**":
		return "__pow__"
	case "&":
		return "__and__"
	case "|":
		return "__or__"
	case "^":
		return "__xor__"
	case "<<":
		return "__lshift__"
	case ">>":
		return "__rshift__"
	case "@":
		return "__matmul__"
	default:
		return ""
	}
}

func reflectedMagicName(op string) string {
	if n := magicName(op); n != "" {
		return "__r" + n[2:]
	}
	return ""
}

func cmpMagicName(op string) string {
	switch op {
	case "==":
		return "__eq__"
	case "!=":
		return "__ne__"
	case "<":
		return "__lt__"
	case "<=":
		return "__le__"
	case ">":
		return "__gt__"
	case ">=":
		return "__ge__"
	default:
		return ""
	}
}

func (a *Analyzer) unsupportedOperand(tok token.Token, op string, lhs, rhs ast.Expression) {
	a.errors.Add(diagnostics.NewUnsupportedOperand(tok, op, typeName(lhs), typeName(rhs)))
}
