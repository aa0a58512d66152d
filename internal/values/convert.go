package values

// ToAny unboxes a Value into the Go-native shape internal/ast.NativeFunc's
// signature requires at the native-call boundary (spec.md §6): scalars
// become their Go primitive, Str/List/Dict payloads become string/
// []any/map[string]any, everything else passes through as the Value
// itself so a native function written against internal/values can still
// recover the original (e.g. to re-wrap a class instance it was handed).
func ToAny(v Value) any {
	switch v.Tag {
	case TagNone:
		return nil
	case TagBool:
		return v.AsBool()
	case TagI8:
		return int8(v.AsInt())
	case TagI16:
		return int16(v.AsInt())
	case TagI32:
		return int32(v.AsInt())
	case TagI64:
		return v.AsInt()
	case TagU8:
		return uint8(v.AsUint())
	case TagU16:
		return uint16(v.AsUint())
	case TagU32:
		return uint32(v.AsUint())
	case TagU64:
		return v.AsUint()
	case TagF32:
		return v.AsFloat32()
	case TagF64:
		return v.AsFloat64()
	case TagObject:
		switch o := v.Obj.(type) {
		case *Str:
			return o.Value
		case *List:
			out := make([]any, len(o.Elems))
			for i, e := range o.Elems {
				out[i] = ToAny(e)
			}
			return out
		case *Dict:
			out := make(map[string]any, len(o.Keys))
			for _, k := range o.Keys {
				val, _ := o.Get(k)
				out[Inspect(k)] = ToAny(val)
			}
			return out
		default:
			return v
		}
	default:
		return v
	}
}

// FromAny boxes a Go-native result coming back from a NativeFunc into a
// Value. A result that already is a Value passes through unchanged;
// slice and map results are boxed element by element.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return None()
	case bool:
		return Bool(x)
	case int:
		return I64(int64(x))
	case int8:
		return I8(x)
	case int16:
		return I16(x)
	case int32:
		return I32(x)
	case int64:
		return I64(x)
	case uint:
		return U64(uint64(x))
	case uint8:
		return U8(x)
	case uint16:
		return U16(x)
	case uint32:
		return U32(x)
	case uint64:
		return U64(x)
	case float32:
		return F32(x)
	case float64:
		return F64(x)
	case string:
		return NewStr(x)
	case Value:
		return x
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = FromAny(e)
		}
		return NewList(elems)
	case map[string]any:
		d := NewDict()
		for k, e := range x {
			d.Set(NewStr(k), FromAny(e))
		}
		return FromObject(0, d)
	default:
		return None()
	}
}

// NewStr/NewList are the Value-level constructors for the two builtin
// container Objects (spec.md §9); TypeID 0 marks "not a registered
// user class", which Inspect/ops type-switch around via Obj's concrete
// type rather than a TypeRegistry lookup.
func NewStr(s string) Value        { return FromObject(0, &Str{Value: s}) }
func NewList(elems []Value) Value  { return FromObject(0, &List{Elems: elems}) }
