package geojson

import "testing"

func TestNewFeatureDefaultsToNoID(t *testing.T) {
	f := NewFeature(NewPoint(Position{0, 0}))
	if f.ID.Kind != NoID {
		t.Errorf("NewFeature should default to NoFeatureID, got %+v", f.ID)
	}
}

func TestFeatureIDConstructors(t *testing.T) {
	cases := []struct {
		name string
		id   FeatureID
		kind FeatureIDKind
	}{
		{"int64", Int64ID(-5), IDInt64},
		{"uint64", Uint64ID(5), IDUint64},
		{"double", DoubleID(1.5), IDDouble},
		{"string", StringID("x"), IDString},
		{"composite", CompositeID(Int64Value(1)), IDComposite},
		{"none", NoFeatureID(), NoID},
	}
	for _, tc := range cases {
		if tc.id.Kind != tc.kind {
			t.Errorf("%s: Kind = %v, want %v", tc.name, tc.id.Kind, tc.kind)
		}
	}
}

func TestFeaturePropertiesIndependentOfCustomProperties(t *testing.T) {
	f := NewFeature(NewPoint(Position{0, 0}))
	f.Properties.Set("name", StringValue("a"))
	f.CustomProperties.Set("name", StringValue("b"))

	v1, _ := f.Properties.Get("name")
	v2, _ := f.CustomProperties.Get("name")
	if v1.StringV != "a" || v2.StringV != "b" {
		t.Errorf("Properties and CustomProperties should not alias: %q %q", v1.StringV, v2.StringV)
	}
}
