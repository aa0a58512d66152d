// Package native is the host-side registry of functions a Kiwi
// FunctionDef can bind to via its Native field (spec.md §6) instead of
// an interpreted Body: the bridge between the language and the real
// third-party libraries named in SPEC_FULL.md's domain stack (yaml.v3,
// go-humanize, protoreflect/grpc/protobuf, modernc.org/sqlite).
//
// Grounded on funvibe-funxy/internal/evaluator/builtins.go's map-of-
// builtins shape, adapted from its *Builtin{Fn, TypeInfo} wrapper to a
// plain map[string]ast.NativeFunc, since Kiwi's native call boundary
// (internal/values.ToAny/FromAny) already does the one conversion step
// spec.md §6 asks for without a separate typesystem layer.
package native

import "github.com/kiwi-lang/kiwi/internal/ast"

// Registry returns the complete set of host functions available to a
// Kiwi program as `native` FunctionDefs, keyed by the name a script
// binds via `def name(...) -> T: native`. cmd/kiwi wires this into
// internal/evaluator.New/internal/vm's shared runtime.
func Registry() map[string]ast.NativeFunc {
	reg := map[string]ast.NativeFunc{}
	register(reg, dataFuncs())
	register(reg, formatFuncs())
	register(reg, grpcFuncs())
	register(reg, sqliteFuncs())
	return reg
}

func register(reg map[string]ast.NativeFunc, funcs map[string]ast.NativeFunc) {
	for name, fn := range funcs {
		reg[name] = fn
	}
}
