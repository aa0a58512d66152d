// Package values implements the runtime scalar representation of
// SPEC_FULL.md §9: a tagged union over the fixed-width integer/float
// types, bool, None, and a TypeID indirection for everything heap
// allocated (strings, lists, class instances). Grounded on
// funvibe-funxy/internal/vm/value.go's Value{Type,Data,Obj} tagged
// union — generalized from that VM's four scalar tags (Int/Float/
// Bool/Nil) to the wider integer/float width set spec.md's BuiltinType
// names require (i8..i64, u8..u64, f32/f64).
package values

import (
	"fmt"
	"math"
	"strings"

	"github.com/kiwi-lang/kiwi/internal/ast"
)

// Tag identifies which field of Value is live.
type Tag uint8

const (
	TagNone Tag = iota
	TagI8
	TagI16
	TagI32
	TagI64
	TagU8
	TagU16
	TagU32
	TagU64
	TagF32
	TagF64
	TagBool
	TagObject // TypeID holds an index into the owning TypeRegistry; Obj holds the payload
)

func (t Tag) String() string {
	switch t {
	case TagNone:
		return "None"
	case TagI8:
		return "i8"
	case TagI16:
		return "i16"
	case TagI32:
		return "i32"
	case TagI64:
		return "i64"
	case TagU8:
		return "u8"
	case TagU16:
		return "u16"
	case TagU32:
		return "u32"
	case TagU64:
		return "u64"
	case TagF32:
		return "f32"
	case TagF64:
		return "f64"
	case TagBool:
		return "bool"
	case TagObject:
		return "object"
	default:
		return "?"
	}
}

// Object is a heap payload: a string, list, dict, or class instance.
// Fields/Class are populated for class instances; a plain scalar
// container (string, list, dict) returns a nil Class and keeps its
// payload in its own struct fields (Str.Value, List.Elems, Dict's maps).
type Object interface {
	Fields() map[string]Value
	Class() *ast.ClassDef
}

// Value is a stack-sized tagged scalar: Data holds the bit pattern for
// every numeric/bool tag (mirroring the teacher's uint64 Data field),
// Obj holds the heap payload for TagObject, and TypeID names which
// TypeRegistry entry describes it.
type Value struct {
	Tag    Tag
	Data   uint64
	Obj    Object
	TypeID int
}

func None() Value                  { return Value{Tag: TagNone} }
func Bool(v bool) Value            { if v { return Value{Tag: TagBool, Data: 1} }; return Value{Tag: TagBool} }
func I64(v int64) Value            { return Value{Tag: TagI64, Data: uint64(v)} }
func I32(v int32) Value            { return Value{Tag: TagI32, Data: uint64(uint32(v))} }
func I16(v int16) Value            { return Value{Tag: TagI16, Data: uint64(uint16(v))} }
func I8(v int8) Value              { return Value{Tag: TagI8, Data: uint64(uint8(v))} }
func U64(v uint64) Value           { return Value{Tag: TagU64, Data: v} }
func U32(v uint32) Value           { return Value{Tag: TagU32, Data: uint64(v)} }
func U16(v uint16) Value           { return Value{Tag: TagU16, Data: uint64(v)} }
func U8(v uint8) Value             { return Value{Tag: TagU8, Data: uint64(v)} }
func F64(v float64) Value          { return Value{Tag: TagF64, Data: math.Float64bits(v)} }
func F32(v float32) Value          { return Value{Tag: TagF32, Data: uint64(math.Float32bits(v))} }
func FromObject(typeID int, o Object) Value {
	return Value{Tag: TagObject, TypeID: typeID, Obj: o}
}

func (v Value) AsInt() int64     { return int64(v.Data) }
func (v Value) AsUint() uint64   { return v.Data }
func (v Value) AsFloat64() float64 { return math.Float64frombits(v.Data) }
func (v Value) AsFloat32() float32 { return math.Float32frombits(uint32(v.Data)) }
func (v Value) AsBool() bool     { return v.Data != 0 }
func (v Value) IsNone() bool     { return v.Tag == TagNone }
func (v Value) IsNumeric() bool  { return v.Tag >= TagI8 && v.Tag <= TagF64 }
func (v Value) IsInteger() bool  { return v.Tag >= TagI8 && v.Tag <= TagU64 }
func (v Value) IsFloat() bool    { return v.Tag == TagF32 || v.Tag == TagF64 }

// Equal compares two values, allowing implicit integer<->float
// promotion the way the teacher's Value.Equals does for Int/Float.
func Equal(a, b Value) bool {
	if a.Tag != b.Tag {
		if a.IsFloat() && b.IsInteger() {
			return a.AsFloat64() == float64(b.AsInt())
		}
		if a.IsInteger() && b.IsFloat() {
			return float64(a.AsInt()) == b.AsFloat64()
		}
		return false
	}
	switch a.Tag {
	case TagNone:
		return true
	case TagObject:
		if as, ok := a.Obj.(*Str); ok {
			bs, ok2 := b.Obj.(*Str)
			return ok2 && as.Value == bs.Value
		}
		return a.TypeID == b.TypeID && a.Obj == b.Obj
	default:
		return a.Data == b.Data
	}
}

// Inspect renders a value for repr/print purposes.
func Inspect(v Value) string {
	switch v.Tag {
	case TagNone:
		return "None"
	case TagBool:
		if v.AsBool() {
			return "True"
		}
		return "False"
	case TagF32:
		return fmt.Sprintf("%g", v.AsFloat32())
	case TagF64:
		return fmt.Sprintf("%g", v.AsFloat64())
	case TagU8, TagU16, TagU32, TagU64:
		return fmt.Sprintf("%d", v.AsUint())
	case TagObject:
		return inspectObject(v)
	default:
		return fmt.Sprintf("%d", v.AsInt())
	}
}

// inspectObject renders the builtin container Objects the way Python's
// repr does; a class instance with no special-cased Object falls back to
// the teacher-free generic form.
func inspectObject(v Value) string {
	switch o := v.Obj.(type) {
	case *Str:
		return o.Value
	case *List:
		parts := make([]string, len(o.Elems))
		for i, e := range o.Elems {
			parts[i] = Inspect(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Dict:
		parts := make([]string, len(o.Keys))
		for i, k := range o.Keys {
			val, _ := o.Get(k)
			parts[i] = Inspect(k) + ": " + Inspect(val)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *Instance:
		if o.ClassDef != nil {
			return fmt.Sprintf("<%s object>", o.ClassDef.Name)
		}
		return "<object>"
	default:
		return fmt.Sprintf("<object type=%d>", v.TypeID)
	}
}

// TypeRegistry maps a runtime TypeID back to the ClassDef (user class)
// or builtin descriptor it names, the way a BuiltinType/ClassType
// AST node is resolved back to its definition during evaluation
// (SPEC_FULL.md §9).
type TypeRegistry struct {
	classes  map[int]*ast.ClassDef
	builtins map[int]string
	next     int
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{classes: map[int]*ast.ClassDef{}, builtins: map[int]string{}}
}

func (r *TypeRegistry) RegisterClass(def *ast.ClassDef) int {
	r.next++
	r.classes[r.next] = def
	return r.next
}

func (r *TypeRegistry) RegisterBuiltin(name string) int {
	r.next++
	r.builtins[r.next] = name
	return r.next
}

func (r *TypeRegistry) ClassOf(id int) (*ast.ClassDef, bool) {
	c, ok := r.classes[id]
	return c, ok
}

func (r *TypeRegistry) BuiltinNameOf(id int) (string, bool) {
	n, ok := r.builtins[id]
	return n, ok
}
