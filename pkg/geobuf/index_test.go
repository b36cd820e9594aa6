package geobuf

import (
	"testing"

	"github.com/beetlebugorg/geobuf/pkg/geojson"
)

func TestIndexQueryReturnsIntersectingFeatures(t *testing.T) {
	fc := &geojson.FeatureCollection{
		Features: []geojson.Feature{
			geojson.NewFeature(geojson.NewPoint(geojson.Position{-122.4, 37.8})), // San Francisco
			geojson.NewFeature(geojson.NewPoint(geojson.Position{-74.0, 40.7})),  // New York
		},
	}
	idx := NewIndex(fc)
	if idx.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", idx.Count())
	}

	sfBounds := Bounds{MinLon: -123, MaxLon: -122, MinLat: 37, MaxLat: 38}
	got := idx.Query(sfBounds)
	if len(got) != 1 {
		t.Fatalf("expected 1 feature near San Francisco, got %d", len(got))
	}
	if got[0].Geometry.Point[0] != -122.4 {
		t.Errorf("expected the San Francisco feature, got %+v", got[0].Geometry.Point)
	}
}

func TestIndexQueryNoMatches(t *testing.T) {
	fc := &geojson.FeatureCollection{
		Features: []geojson.Feature{
			geojson.NewFeature(geojson.NewPoint(geojson.Position{0, 0})),
		},
	}
	idx := NewIndex(fc)
	got := idx.Query(Bounds{MinLon: 50, MaxLon: 60, MinLat: 50, MaxLat: 60})
	if len(got) != 0 {
		t.Errorf("expected no matches far from the indexed feature, got %d", len(got))
	}
}

func TestBoundsIntersectsAndUnion(t *testing.T) {
	a := Bounds{MinLon: 0, MaxLon: 10, MinLat: 0, MaxLat: 10}
	b := Bounds{MinLon: 5, MaxLon: 15, MinLat: 5, MaxLat: 15}
	if !a.Intersects(b) {
		t.Error("overlapping bounds should intersect")
	}
	c := Bounds{MinLon: 20, MaxLon: 30, MinLat: 20, MaxLat: 30}
	if a.Intersects(c) {
		t.Error("disjoint bounds should not intersect")
	}
	u := a.Union(c)
	if u.MinLon != 0 || u.MaxLon != 30 || u.MinLat != 0 || u.MaxLat != 30 {
		t.Errorf("Union mismatch: %+v", u)
	}
	if !a.Contains(5, 5) || a.Contains(50, 50) {
		t.Errorf("Contains mismatch")
	}
}
