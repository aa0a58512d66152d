package values_test

import (
	"testing"

	"github.com/kiwi-lang/kiwi/internal/values"
)

func TestToAny_Scalars(t *testing.T) {
	if got := values.ToAny(values.None()); got != nil {
		t.Errorf("ToAny(None()) = %v, want nil", got)
	}
	if got := values.ToAny(values.Bool(true)); got != true {
		t.Errorf("ToAny(Bool(true)) = %v, want true", got)
	}
	if got, ok := values.ToAny(values.I64(42)).(int64); !ok || got != 42 {
		t.Errorf("ToAny(I64(42)) = %v (%T), want int64(42)", got, got)
	}
	if got, ok := values.ToAny(values.I32(7)).(int32); !ok || got != 7 {
		t.Errorf("ToAny(I32(7)) = %v (%T), want int32(7)", got, got)
	}
	if got, ok := values.ToAny(values.F64(1.5)).(float64); !ok || got != 1.5 {
		t.Errorf("ToAny(F64(1.5)) = %v (%T), want float64(1.5)", got, got)
	}
}

func TestToAny_StrBecomesGoString(t *testing.T) {
	got, ok := values.ToAny(values.NewStr("hi")).(string)
	if !ok || got != "hi" {
		t.Errorf("ToAny(NewStr) = %v (%T), want string(hi)", got, got)
	}
}

func TestToAny_ListBecomesSliceOfAny(t *testing.T) {
	lv := values.NewList([]values.Value{values.I64(1), values.NewStr("a")})
	got, ok := values.ToAny(lv).([]any)
	if !ok {
		t.Fatalf("ToAny(list) = %T, want []any", values.ToAny(lv))
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(got))
	}
	if got[0].(int64) != 1 {
		t.Errorf("element 0 = %v, want int64(1)", got[0])
	}
	if got[1].(string) != "a" {
		t.Errorf("element 1 = %v, want string(a)", got[1])
	}
}

func TestToAny_DictBecomesMapStringAny(t *testing.T) {
	d := values.NewDict()
	d.Set(values.NewStr("k"), values.I64(9))
	got, ok := values.ToAny(values.FromObject(0, d)).(map[string]any)
	if !ok {
		t.Fatalf("ToAny(dict) did not produce map[string]any")
	}
	if got["k"].(int64) != 9 {
		t.Errorf("got[\"k\"] = %v, want int64(9)", got["k"])
	}
}

func TestFromAny_Scalars(t *testing.T) {
	if v := values.FromAny(nil); !v.IsNone() {
		t.Errorf("FromAny(nil) should be None")
	}
	if v := values.FromAny(true); v.Tag != values.TagBool || !v.AsBool() {
		t.Errorf("FromAny(true) should box to Bool(true)")
	}
	if v := values.FromAny(int64(5)); v.Tag != values.TagI64 || v.AsInt() != 5 {
		t.Errorf("FromAny(int64(5)) should box to I64(5)")
	}
	if v := values.FromAny(3.25); v.Tag != values.TagF64 || v.AsFloat64() != 3.25 {
		t.Errorf("FromAny(3.25) should box to F64(3.25)")
	}
}

func TestFromAny_StringBoxesToStrObject(t *testing.T) {
	v := values.FromAny("hello")
	s, ok := v.Obj.(*values.Str)
	if !ok || s.Value != "hello" {
		t.Errorf("FromAny(\"hello\") should box to a *Str{Value: \"hello\"}")
	}
}

func TestFromAny_SliceBoxesToList(t *testing.T) {
	v := values.FromAny([]any{int64(1), "a"})
	lst, ok := v.Obj.(*values.List)
	if !ok {
		t.Fatalf("FromAny([]any{...}) should box to a *List")
	}
	if len(lst.Elems) != 2 || lst.Elems[0].AsInt() != 1 {
		t.Errorf("unexpected list contents: %+v", lst.Elems)
	}
}

func TestFromAny_MapBoxesToDict(t *testing.T) {
	v := values.FromAny(map[string]any{"k": int64(9)})
	d, ok := v.Obj.(*values.Dict)
	if !ok {
		t.Fatalf("FromAny(map[string]any{...}) should box to a *Dict")
	}
	got, ok := d.Get(values.NewStr("k"))
	if !ok || got.AsInt() != 9 {
		t.Errorf("expected dict[\"k\"] == 9, got %v, ok=%v", got, ok)
	}
}

func TestFromAny_ValuePassesThroughUnchanged(t *testing.T) {
	orig := values.NewStr("already boxed")
	got := values.FromAny(orig)
	if !values.Equal(orig, got) {
		t.Errorf("expected an already-boxed Value to pass through FromAny unchanged")
	}
}

func TestToAnyFromAny_RoundTripThroughNativeBoundary(t *testing.T) {
	original := values.NewList([]values.Value{values.I64(1), values.NewStr("x")})
	roundTripped := values.FromAny(values.ToAny(original))
	lst, ok := roundTripped.Obj.(*values.List)
	if !ok || len(lst.Elems) != 2 {
		t.Fatalf("round trip through ToAny/FromAny lost structure: %+v", roundTripped)
	}
	if lst.Elems[0].AsInt() != 1 {
		t.Errorf("round-tripped element 0 = %v, want 1", lst.Elems[0])
	}
}
