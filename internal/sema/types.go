package sema

import (
	"strings"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/token"
)

// Builtin type-expression singletons (spec.md §4.7's pre-populated
// `i8..u64, f32/f64, str, bool, None` set). Built once so typecheck's
// ops.Equal comparisons see stable nodes per name.
var builtinNames = []string{
	"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64",
	"str", "bool", "None", "Type", "Module",
}

func newBuiltinType(a *ast.Arena, name string) *ast.BuiltinType {
	return ast.NewBuiltinType(a, token.Token{}, name)
}

// typeName renders a type-expression node to the canonical string used
// as half of an operator-registry signature key (spec.md §4.8's
// `"{op}-{lhs}-{rhs}"`).
func typeName(t ast.Node) string {
	switch x := t.(type) {
	case nil:
		return "None"
	case *ast.BuiltinType:
		return x.Name
	case *ast.ClassType:
		if x.Def != nil {
			return x.Def.Name
		}
		return "object"
	case *ast.ArrayType:
		return "array<" + typeName(x.Elem) + ">"
	case *ast.SetType:
		return "set<" + typeName(x.Elem) + ">"
	case *ast.DictType:
		return "dict<" + typeName(x.Key) + "," + typeName(x.Value) + ">"
	case *ast.TupleType:
		parts := make([]string, len(x.Elems))
		for i, e := range x.Elems {
			parts[i] = typeName(e)
		}
		return "tuple<" + strings.Join(parts, ",") + ">"
	case *ast.Arrow:
		parts := make([]string, len(x.ArgTypes))
		for i, e := range x.ArgTypes {
			parts[i] = typeName(e)
		}
		return "(" + strings.Join(parts, ",") + ")->" + typeName(x.Returns)
	case *ast.Name:
		return x.ID_
	default:
		return "?"
	}
}

func isNumeric(name string) bool {
	switch name {
	case "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64":
		return true
	default:
		return false
	}
}

func isFloat(name string) bool { return name == "f32" || name == "f64" }

// widen picks the wider of two numeric builtin type names the way
// Python's int/float promotion rule does: float beats int (f64 if either
// side is f64, else f32), and two different integer types widen to i64
// (spec.md §4.8's typecheck
// "structural equality" is exact-match; this is the promotion step
// operator resolution performs before that exact match).
func widen(a, b string) string {
	if a == b {
		return a
	}
	if isFloat(a) || isFloat(b) {
		if a == "f64" || b == "f64" {
			return "f64"
		}
		return "f32"
	}
	return "i64"
}
