package geojson

import "testing"

func TestOrderedPropsPreservesInsertionOrder(t *testing.T) {
	var p OrderedProps
	p.Set("z", StringValue("first"))
	p.Set("a", StringValue("second"))
	p.Set("m", StringValue("third"))

	want := []string{"z", "a", "m"}
	got := p.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOrderedPropsSetUpdatesInPlace(t *testing.T) {
	var p OrderedProps
	p.Set("a", StringValue("1"))
	p.Set("b", StringValue("2"))
	p.Set("a", StringValue("updated"))

	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	if got := p.Keys(); got[0] != "a" || got[1] != "b" {
		t.Errorf("update should preserve original position, got %v", got)
	}
	v, ok := p.Get("a")
	if !ok || v.StringV != "updated" {
		t.Errorf("Get(a) = %+v, %v", v, ok)
	}
}

func TestOrderedPropsGetMissing(t *testing.T) {
	var p OrderedProps
	if _, ok := p.Get("missing"); ok {
		t.Error("Get on empty OrderedProps should report not-found")
	}
}

func TestNewOrderedPropsFromPairs(t *testing.T) {
	p := NewOrderedProps(
		Prop{Key: "name", Value: StringValue("x")},
		Prop{Key: "count", Value: Int64Value(3)},
	)
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	var seen []string
	p.Range(func(key string, _ Value) bool {
		seen = append(seen, key)
		return true
	})
	if seen[0] != "name" || seen[1] != "count" {
		t.Errorf("Range order = %v", seen)
	}
}

func TestOrderedPropsRangeStopsEarly(t *testing.T) {
	p := NewOrderedProps(
		Prop{Key: "a", Value: Int64Value(1)},
		Prop{Key: "b", Value: Int64Value(2)},
		Prop{Key: "c", Value: Int64Value(3)},
	)
	var visited []string
	p.Range(func(key string, _ Value) bool {
		visited = append(visited, key)
		return key != "b"
	})
	if len(visited) != 2 {
		t.Errorf("Range should stop after returning false, visited %v", visited)
	}
}
