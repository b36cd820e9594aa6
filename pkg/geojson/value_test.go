package geojson

import "testing"

func TestValueJSONRoundTripScalars(t *testing.T) {
	cases := []Value{
		NullValue(),
		BoolValue(true),
		Int64Value(-42),
		Uint64Value(18446744073709551615),
		DoubleValue(3.5),
		StringValue("hello"),
	}
	for _, v := range cases {
		data, err := v.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON(%+v): %v", v, err)
		}
		var got Value
		if err := got.UnmarshalJSON(data); err != nil {
			t.Fatalf("UnmarshalJSON(%s): %v", data, err)
		}
		if got.Kind != v.Kind {
			t.Errorf("round trip %+v: kind = %v, want %v (json %s)", v, got.Kind, v.Kind, data)
		}
	}
}

func TestValueJSONArrayAndObject(t *testing.T) {
	arr := ArrayValue([]Value{Int64Value(1), StringValue("two"), BoolValue(false)})
	data, err := arr.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var got Value
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if got.Kind != Array || len(got.ArrayV) != 3 {
		t.Fatalf("unexpected array decode: %+v", got)
	}
	if got.ArrayV[0].Int64V != 1 || got.ArrayV[1].StringV != "two" || got.ArrayV[2].BoolV != false {
		t.Errorf("array elements mismatch: %+v", got.ArrayV)
	}

	obj := ObjectValue(NewOrderedProps(Prop{Key: "k", Value: DoubleValue(1.5)}))
	data, err = obj.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var gotObj Value
	if err := gotObj.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if gotObj.Kind != Object {
		t.Fatalf("expected Object, got %v", gotObj.Kind)
	}
	v, ok := gotObj.ObjectV.Get("k")
	if !ok || v.DoubleV != 1.5 {
		t.Errorf("object field mismatch: %+v %v", v, ok)
	}
}

func TestNumberValueClassification(t *testing.T) {
	if v := numberValue("42"); v.Kind != Int64 || v.Int64V != 42 {
		t.Errorf("42 should classify as Int64, got %+v", v)
	}
	if v := numberValue("18446744073709551615"); v.Kind != Uint64 {
		t.Errorf("max uint64 should classify as Uint64, got %+v", v)
	}
	if v := numberValue("3.14"); v.Kind != Double || v.DoubleV != 3.14 {
		t.Errorf("3.14 should classify as Double, got %+v", v)
	}
}

func TestIsComposite(t *testing.T) {
	if !ArrayValue(nil).IsComposite() {
		t.Error("Array should be composite")
	}
	if !ObjectValue(OrderedProps{}).IsComposite() {
		t.Error("Object should be composite")
	}
	if StringValue("x").IsComposite() {
		t.Error("String should not be composite")
	}
}
