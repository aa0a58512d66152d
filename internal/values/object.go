package values

import "github.com/kiwi-lang/kiwi/internal/ast"

// Instance is a user-defined class instance: the general-purpose
// Object payload every ClassDef call site constructs (spec.md §4.9's
// "class-constructor call semantics").
type Instance struct {
	ClassDef *ast.ClassDef
	Attrs    map[string]Value
}

func NewInstance(def *ast.ClassDef) *Instance {
	return &Instance{ClassDef: def, Attrs: map[string]Value{}}
}

func (i *Instance) Fields() map[string]Value { return i.Attrs }
func (i *Instance) Class() *ast.ClassDef     { return i.ClassDef }

// Str is the heap payload for `str` values — not a class instance, so
// Fields/Class are empty/nil to satisfy the Object interface.
type Str struct {
	Value string
}

func (s *Str) Fields() map[string]Value { return nil }
func (s *Str) Class() *ast.ClassDef     { return nil }

// List is the heap payload for `list`/array values.
type List struct {
	Elems []Value
}

func (l *List) Fields() map[string]Value { return nil }
func (l *List) Class() *ast.ClassDef     { return nil }

// Dict is the heap payload for `dict` values, keyed by the Inspect
// string of the key Value (sufficient for the scalar/str key types
// spec.md's structural type system admits).
type Dict struct {
	Keys   []Value
	Values map[string]Value
}

func NewDict() *Dict { return &Dict{Values: map[string]Value{}} }

func (d *Dict) Fields() map[string]Value { return nil }
func (d *Dict) Class() *ast.ClassDef     { return nil }

func (d *Dict) Set(key Value, v Value) {
	k := Inspect(key)
	if _, exists := d.Values[k]; !exists {
		d.Keys = append(d.Keys, key)
	}
	d.Values[k] = v
}

func (d *Dict) Get(key Value) (Value, bool) {
	v, ok := d.Values[Inspect(key)]
	return v, ok
}
