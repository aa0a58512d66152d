// Package bindings implements the scoped symbol table of spec.md §4.7:
// an ordered, append-only sequence of entries, reverse-scanned on
// lookup so shadowing falls out for free, with an RAII-style Scope
// guard that truncates on exit. Grounded on
// original_source/src/sema/bindings.cpp's Bindings::add/Bindings::Bindings
// (flat vector, push_back-and-return-index, constructor pre-population
// of builtin types and None/True/False) — Funxy's symbol table
// (internal/symbols) is a nested map-of-maps built for HM
// generalization/instantiation, which this structural type system has
// no use for, so the shape here follows the original implementation
// instead (see DESIGN.md).
package bindings

import "github.com/kiwi-lang/kiwi/internal/ast"

// Entry is one binding: a name paired with the AST node that defines
// its value (if any) and the type-expression node Sema resolved for it.
type Entry struct {
	Name    string
	Value   ast.Node // definition site node, or nil for a builtin
	Type    ast.Node // a type-expression Expression, set by Sema
	TypeID  int      // native type id, for attribute lookup by id (spec.md §4.7)
	StoreID int      // this entry's own index
}

// Table is the append-only binding sequence. Lookup always scans from
// the end so a later definition shadows an earlier one with the same
// name, matching Python's "most recent wins" rebinding semantics.
type Table struct {
	entries []Entry
	nested  bool // true once inside a function/block Scope: new entries address locally
	globalIndex int
}

// New builds a Table pre-populated with the builtin types and
// constants spec.md §4.7 lists: Type, None, i8..u64, f32/f64, str,
// bool, Module, plus the None/True/False constants.
func New() *Table {
	t := &Table{}
	for _, name := range []string{"Type", "None", "Module", "str", "bool",
		"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64"} {
		t.add(name, nil, nil, nextBuiltinTypeID())
	}
	t.add("None", nil, nil, -1)
	t.add("True", nil, nil, -1)
	t.add("False", nil, nil, -1)
	return t
}

var builtinTypeIDCounter int

func nextBuiltinTypeID() int {
	builtinTypeIDCounter++
	return builtinTypeIDCounter
}

// Add appends a new entry and returns its index. When the table is
// nested (inside a Scope), the entry is addressed locally rather than
// bumping the global counter (spec.md §4.7's "nested flag").
func (t *Table) Add(name string, value ast.Node, typ ast.Node, typeID int) int {
	return t.add(name, value, typ, typeID)
}

func (t *Table) add(name string, value ast.Node, typ ast.Node, typeID int) int {
	idx := len(t.entries)
	t.entries = append(t.entries, Entry{Name: name, Value: value, Type: typ, TypeID: typeID, StoreID: idx})
	if !t.nested {
		t.globalIndex++
	}
	return idx
}

// Find scans in reverse for the most recent entry named name.
func (t *Table) Find(name string) (*Entry, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Name == name {
			return &t.entries[i], true
		}
	}
	return nil, false
}

// GetValue/GetType read back an entry by its StoreID (the index Add
// returned), as spec.md §4.7 names them.
func (t *Table) GetValue(index int) ast.Node {
	if index < 0 || index >= len(t.entries) {
		return nil
	}
	return t.entries[index].Value
}

func (t *Table) GetType(index int) ast.Node {
	if index < 0 || index >= len(t.entries) {
		return nil
	}
	return t.entries[index].Type
}

// SetType backfills the type of the most recent entry named name —
// used once Sema has inferred a previously-forward-declared binding's
// type.
func (t *Table) SetType(name string, typ ast.Node) bool {
	e, ok := t.Find(name)
	if !ok {
		return false
	}
	e.Type = typ
	return true
}

// Len is the current binding count (a Scope's entry mark).
func (t *Table) Len() int { return len(t.entries) }

// Nested reports whether new entries are addressed locally.
func (t *Table) Nested() bool { return t.nested }

// Scope is the RAII-style nested-lexical-scope guard: Open records the
// current length and flips nested on; Close truncates back to that
// length and restores the previous nested flag, discarding every
// binding the scope's body added (spec.md §4.7, §4.8's "fresh Scope"
// control-flow rule).
type Scope struct {
	table      *Table
	mark       int
	wasNested  bool
}

// Open begins a new nested scope over t.
func Open(t *Table) *Scope {
	s := &Scope{table: t, mark: len(t.entries), wasNested: t.nested}
	t.nested = true
	return s
}

// Close truncates the table back to the scope's entry point.
func (s *Scope) Close() {
	s.table.entries = s.table.entries[:s.mark]
	s.table.nested = s.wasNested
}
