package codec

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/beetlebugorg/geobuf/internal/wire"
	"github.com/beetlebugorg/geobuf/pkg/geojson"
)

func roundTrip(t *testing.T, doc geojson.Document) geojson.Document {
	t.Helper()
	data, err := NewEncoder(0).Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := NewDecoder().Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return got
}

func TestPointRoundTrip(t *testing.T) {
	doc := geojson.NewGeometryDocument(geojson.NewPoint(geojson.Position{119.88281249999999, 30}))
	got := roundTrip(t, doc)

	if got.Kind != geojson.DocGeometry || got.Geometry.Kind != geojson.Point {
		t.Fatalf("unexpected result: %+v", got)
	}
	if diff := deep.Equal(got.Geometry.Point, geojson.Position{119.882812, 30}); diff != nil {
		t.Errorf("point mismatch: %v", diff)
	}
}

func TestPolygonWithHoleRoundTrip(t *testing.T) {
	outer := []geojson.Position{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	hole := []geojson.Position{{2, 2}, {2, 4}, {4, 4}, {4, 2}, {2, 2}}
	doc := geojson.NewGeometryDocument(geojson.NewPolygon([][]geojson.Position{outer, hole}))

	got := roundTrip(t, doc)
	if got.Geometry.Kind != geojson.Polygon {
		t.Fatalf("expected polygon, got %v", got.Geometry.Kind)
	}
	if len(got.Geometry.Rings) != 2 {
		t.Fatalf("expected 2 rings, got %d", len(got.Geometry.Rings))
	}
	for i, ring := range got.Geometry.Rings {
		first, last := ring[0], ring[len(ring)-1]
		if diff := deep.Equal(first, last); diff != nil {
			t.Errorf("ring %d not closed: %v", i, diff)
		}
	}
}

func TestSingleRingPolygonOmitsLengths(t *testing.T) {
	outer := []geojson.Position{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	doc := geojson.NewGeometryDocument(geojson.NewPolygon([][]geojson.Position{outer}))
	data, err := NewEncoder(0).Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := NewDecoder().Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := deep.Equal(got.Geometry.Rings[0], outer); diff != nil {
		t.Errorf("ring mismatch: %v", diff)
	}

	top := wire.NewReader(data)
	for {
		num, typ, ok, err := top.Next()
		if err != nil || !ok {
			t.Fatalf("no top-level geometry field (err=%v)", err)
		}
		if num != tagTopGeometry {
			if err := top.Skip(num, typ); err != nil {
				t.Fatalf("Skip: %v", err)
			}
			continue
		}
		geom, err := top.Message()
		if err != nil {
			t.Fatalf("Message: %v", err)
		}
		for {
			n, ty, ok, err := geom.Next()
			if err != nil {
				t.Fatalf("geometry Next: %v", err)
			}
			if !ok {
				break
			}
			if n == tagGeomLengths {
				t.Errorf("single-ring polygon should omit the lengths field")
			}
			if err := geom.Skip(n, ty); err != nil {
				t.Fatalf("geometry Skip: %v", err)
			}
		}
		break
	}
}

func TestFeatureCollectionSharedKeys(t *testing.T) {
	f1 := geojson.NewFeature(geojson.NewPoint(geojson.Position{1, 1}))
	f1.Properties.Set("name", geojson.StringValue("a"))
	f2 := geojson.NewFeature(geojson.NewPoint(geojson.Position{2, 2}))
	f2.Properties.Set("name", geojson.StringValue("b"))

	fc := geojson.FeatureCollection{Features: []geojson.Feature{f1, f2}}
	doc := geojson.NewFeatureCollectionDocument(fc)

	got := roundTrip(t, doc)
	if len(got.FeatureCollection.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(got.FeatureCollection.Features))
	}
	n1, _ := got.FeatureCollection.Features[0].Properties.Get("name")
	n2, _ := got.FeatureCollection.Features[1].Properties.Get("name")
	if n1.StringV != "a" || n2.StringV != "b" {
		t.Errorf("properties mismatch: %q %q", n1.StringV, n2.StringV)
	}
}

func TestFeatureSignedIDRoundTrip(t *testing.T) {
	f := geojson.NewFeature(geojson.NewPoint(geojson.Position{0, 0}))
	f.ID = geojson.Int64ID(-7)
	got := roundTrip(t, geojson.NewFeatureDocument(f))
	if got.Feature.ID.Kind != geojson.IDInt64 || got.Feature.ID.Int64V != -7 {
		t.Errorf("id mismatch: %+v", got.Feature.ID)
	}
}

func TestFeatureStringIDRoundTrip(t *testing.T) {
	f := geojson.NewFeature(geojson.NewPoint(geojson.Position{0, 0}))
	f.ID = geojson.StringID("abc")
	got := roundTrip(t, geojson.NewFeatureDocument(f))
	if got.Feature.ID.Kind != geojson.IDString || got.Feature.ID.StringV != "abc" {
		t.Errorf("id mismatch: %+v", got.Feature.ID)
	}
}

func TestThreeDimensionalGeometryPromotesDim(t *testing.T) {
	pts := []geojson.Position{{0, 0, 0}, {1, 1, 2}}
	doc := geojson.NewGeometryDocument(geojson.NewLineString(pts))
	got := roundTrip(t, doc)
	for i, p := range got.Geometry.Points {
		if diff := deep.Equal(p, pts[i]); diff != nil {
			t.Errorf("point %d mismatch: %v", i, diff)
		}
	}
}

func TestOddLengthPropertyIndexIsStructuralError(t *testing.T) {
	// Hand-build a document whose top-level feature has a properties index
	// (tag 14) with an odd number of elements, the malformed shape the
	// decoder must reject rather than silently skip.
	w := wire.NewWriter()
	w.String(tagKeys, "k")
	w.Submessage(tagFeature, func(f *wire.Writer) {
		f.Submessage(tagFeatGeometry, func(g *wire.Writer) {
			g.Uint64(tagGeomType, 0) // Point
			g.PackedSint64(tagGeomCoords, []int64{0, 0})
		})
		f.Submessage(tagFeatValues, func(v *wire.Writer) {
			v.String(tagValString, "x")
		})
		// Odd-length index: one key/value pair plus one dangling index.
		f.PackedUint32(tagFeatPropsIndex, []uint32{0, 0, 0})
	})

	if _, err := NewDecoder().Decode(w.Bytes()); err == nil {
		t.Fatalf("expected structural error for odd-length property index")
	}
}

func TestFeaturePropertiesAndCustomPropertiesDoNotAlias(t *testing.T) {
	// Both maps write their value submessages onto the same tag (13), so the
	// encoder must number them as one continuous sequence: Properties first,
	// then CustomProperties continuing where it left off. Otherwise the
	// decoder's single combined values slice lets the two index fields
	// collide and custom properties resolve to the wrong value.
	f := geojson.NewFeature(geojson.NewPoint(geojson.Position{0, 0}))
	f.Properties.Set("a", geojson.Int64Value(1))
	f.CustomProperties.Set("title", geojson.StringValue("x"))

	got := roundTrip(t, geojson.NewFeatureDocument(f))

	a, ok := got.Feature.Properties.Get("a")
	// A non-negative signed value travels in the unsigned value field (3) and
	// comes back as Uint64.
	if !ok || a.Kind != geojson.Uint64 || a.Uint64V != 1 {
		t.Errorf("properties[a] mismatch: %+v (ok=%v)", a, ok)
	}
	title, ok := got.Feature.CustomProperties.Get("title")
	if !ok || title.Kind != geojson.String || title.StringV != "x" {
		t.Errorf("custom_properties[title] mismatch: %+v (ok=%v)", title, ok)
	}
}

func TestMinInt64ValueRejected(t *testing.T) {
	f := geojson.NewFeature(geojson.NewPoint(geojson.Position{0, 0}))
	f.Properties.Set("v", geojson.Int64Value(-9223372036854775808))
	_, err := NewEncoder(0).Encode(geojson.NewFeatureDocument(f))
	if err == nil {
		t.Fatalf("expected error encoding math.MinInt64 value")
	}
}
