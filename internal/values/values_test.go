package values_test

import (
	"testing"

	"github.com/kiwi-lang/kiwi/internal/values"
)

func TestScalarConstructors_RoundTrip(t *testing.T) {
	if got := values.I64(-5).AsInt(); got != -5 {
		t.Errorf("I64(-5).AsInt() = %d, want -5", got)
	}
	if got := values.U8(200).AsUint(); got != 200 {
		t.Errorf("U8(200).AsUint() = %d, want 200", got)
	}
	if got := values.F64(1.5).AsFloat64(); got != 1.5 {
		t.Errorf("F64(1.5).AsFloat64() = %v, want 1.5", got)
	}
	if got := values.F32(2.5).AsFloat32(); got != 2.5 {
		t.Errorf("F32(2.5).AsFloat32() = %v, want 2.5", got)
	}
	if !values.Bool(true).AsBool() {
		t.Errorf("Bool(true).AsBool() = false, want true")
	}
	if values.Bool(false).AsBool() {
		t.Errorf("Bool(false).AsBool() = true, want false")
	}
}

func TestIsNone(t *testing.T) {
	if !values.None().IsNone() {
		t.Errorf("expected None() to report IsNone")
	}
	if values.I64(0).IsNone() {
		t.Errorf("expected a zero int to not report IsNone")
	}
}

func TestIsNumericIsIntegerIsFloat(t *testing.T) {
	if !values.I32(1).IsNumeric() || !values.I32(1).IsInteger() || values.I32(1).IsFloat() {
		t.Errorf("expected I32 to be numeric+integer, not float")
	}
	if !values.F64(1).IsNumeric() || values.F64(1).IsInteger() || !values.F64(1).IsFloat() {
		t.Errorf("expected F64 to be numeric+float, not integer")
	}
	if values.Bool(true).IsNumeric() {
		t.Errorf("expected Bool to not be numeric")
	}
}

func TestEqual_SameTagCompares(t *testing.T) {
	if !values.Equal(values.I64(3), values.I64(3)) {
		t.Errorf("expected equal I64 values to compare equal")
	}
	if values.Equal(values.I64(3), values.I64(4)) {
		t.Errorf("expected different I64 values to compare unequal")
	}
}

func TestEqual_IntFloatPromotion(t *testing.T) {
	if !values.Equal(values.I64(3), values.F64(3.0)) {
		t.Errorf("expected I64(3) and F64(3.0) to compare equal via promotion")
	}
	if !values.Equal(values.F64(3.0), values.I64(3)) {
		t.Errorf("expected F64(3.0) and I64(3) to compare equal via promotion (symmetric)")
	}
	if values.Equal(values.I64(3), values.F64(3.5)) {
		t.Errorf("expected I64(3) and F64(3.5) to compare unequal")
	}
}

func TestEqual_NoneEqualsNone(t *testing.T) {
	if !values.Equal(values.None(), values.None()) {
		t.Errorf("expected None to equal None")
	}
}

func TestEqual_StrComparesByValueNotIdentity(t *testing.T) {
	a := values.NewStr("hi")
	b := values.NewStr("hi")
	if !values.Equal(a, b) {
		t.Errorf("expected two distinct *Str objects with the same text to compare equal")
	}
	c := values.NewStr("bye")
	if values.Equal(a, c) {
		t.Errorf("expected strings with different text to compare unequal")
	}
}

func TestInspect_Scalars(t *testing.T) {
	cases := []struct {
		v    values.Value
		want string
	}{
		{values.None(), "None"},
		{values.Bool(true), "True"},
		{values.Bool(false), "False"},
		{values.I64(42), "42"},
		{values.U32(7), "7"},
	}
	for _, c := range cases {
		if got := values.Inspect(c.v); got != c.want {
			t.Errorf("Inspect(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestInspect_ListAndDict(t *testing.T) {
	list := values.NewList([]values.Value{values.I64(1), values.I64(2)})
	if got, want := values.Inspect(list), "[1, 2]"; got != want {
		t.Errorf("Inspect(list) = %q, want %q", got, want)
	}

	d := values.NewDict()
	d.Set(values.NewStr("a"), values.I64(1))
	dv := values.FromObject(0, d)
	if got, want := values.Inspect(dv), "{a: 1}"; got != want {
		t.Errorf("Inspect(dict) = %q, want %q", got, want)
	}
}

func TestTypeRegistry_RegisterAndLookup(t *testing.T) {
	reg := values.NewTypeRegistry()
	id := reg.RegisterBuiltin("str")
	name, ok := reg.BuiltinNameOf(id)
	if !ok || name != "str" {
		t.Errorf("expected BuiltinNameOf(%d) = (str, true), got (%q, %v)", id, name, ok)
	}
	if _, ok := reg.ClassOf(id); ok {
		t.Errorf("expected a builtin id to not resolve as a class")
	}
	if _, ok := reg.BuiltinNameOf(id + 100); ok {
		t.Errorf("expected an unregistered id to not resolve")
	}
}

func TestDict_SetOverwritesWithoutDuplicatingKeys(t *testing.T) {
	d := values.NewDict()
	d.Set(values.NewStr("a"), values.I64(1))
	d.Set(values.NewStr("a"), values.I64(2))
	if len(d.Keys) != 1 {
		t.Fatalf("expected re-setting an existing key to not duplicate it, got %d keys", len(d.Keys))
	}
	got, ok := d.Get(values.NewStr("a"))
	if !ok || got.AsInt() != 2 {
		t.Errorf("expected the second Set to win, got %v, ok=%v", got, ok)
	}
}
