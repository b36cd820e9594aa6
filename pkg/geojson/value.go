package geojson

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"
)

// ValueKind discriminates the property-value variant: the five wire
// primitives (bool, signed/unsigned integer, double, string) plus the two
// composite shapes (array, object) that the wire format only knows how to
// carry as embedded JSON text (field 6 of the value submessage).
type ValueKind int

const (
	Null ValueKind = iota
	Bool
	Int64
	Uint64
	Double
	String
	Array
	Object
)

// Value is the tagged union for any property value, feature id payload, or
// nested composite element.
type Value struct {
	Kind ValueKind

	BoolV   bool
	Int64V  int64
	Uint64V uint64
	DoubleV float64
	StringV string
	ArrayV  []Value
	ObjectV OrderedProps
}

func NullValue() Value                { return Value{Kind: Null} }
func BoolValue(v bool) Value          { return Value{Kind: Bool, BoolV: v} }
func Int64Value(v int64) Value        { return Value{Kind: Int64, Int64V: v} }
func Uint64Value(v uint64) Value      { return Value{Kind: Uint64, Uint64V: v} }
func DoubleValue(v float64) Value     { return Value{Kind: Double, DoubleV: v} }
func StringValue(v string) Value      { return Value{Kind: String, StringV: v} }
func ArrayValue(v []Value) Value      { return Value{Kind: Array, ArrayV: v} }
func ObjectValue(v OrderedProps) Value { return Value{Kind: Object, ObjectV: v} }

// IsComposite reports whether the value must be carried on the wire as
// embedded JSON text (field 6) rather than one of the primitive value
// fields.
func (v Value) IsComposite() bool {
	return v.Kind == Array || v.Kind == Object
}

// jsonShape is the intermediate shape used to marshal/unmarshal a Value
// through github.com/goccy/go-json.
type jsonShape any

// MarshalJSON renders v as ordinary JSON text.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.toJSONShape())
}

func (v Value) toJSONShape() jsonShape {
	switch v.Kind {
	case Null:
		return nil
	case Bool:
		return v.BoolV
	case Int64:
		return v.Int64V
	case Uint64:
		return v.Uint64V
	case Double:
		return v.DoubleV
	case String:
		return v.StringV
	case Array:
		out := make([]jsonShape, len(v.ArrayV))
		for i, e := range v.ArrayV {
			out[i] = e.toJSONShape()
		}
		return out
	case Object:
		out := make(map[string]jsonShape, v.ObjectV.Len())
		v.ObjectV.Range(func(k string, val Value) bool {
			out[k] = val.toJSONShape()
			return true
		})
		return out
	default:
		return nil
	}
}

// UnmarshalJSON parses JSON text into v, classifying numbers as Int64 when
// they round-trip exactly through strconv.ParseInt, Uint64 when they are
// non-negative and don't fit int64, and Double otherwise.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return &TextError{Reason: "value: " + err.Error()}
	}
	*v = fromJSONAny(raw)
	return nil
}

func fromJSONAny(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return NullValue()
	case bool:
		return BoolValue(x)
	case string:
		return StringValue(x)
	case json.Number:
		return numberValue(string(x))
	case float64:
		return DoubleValue(x)
	case []any:
		out := make([]Value, len(x))
		for i, e := range x {
			out[i] = fromJSONAny(e)
		}
		return ArrayValue(out)
	case map[string]any:
		var props OrderedProps
		for k, e := range x {
			props.Set(k, fromJSONAny(e))
		}
		return ObjectValue(props)
	default:
		return NullValue()
	}
}

func numberValue(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int64Value(i)
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint64Value(u)
	}
	f, _ := strconv.ParseFloat(s, 64)
	return DoubleValue(f)
}
