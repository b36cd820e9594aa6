package codec

import (
	"math"

	"github.com/beetlebugorg/geobuf/pkg/geojson"
)

const defaultMaxPrecision uint64 = 1_000_000

// analysis is the result of the encoder's single preparatory walk over a
// document: the dimensionality, the precision multiplier, and the full set
// of interned property keys, all needed before a single byte of the body
// can be written (the header carries dim/precision/keys ahead of the body).
type analysis struct {
	dim int
	e   uint64
	keys *KeyTable
}

// analyze walks doc once before anything is written: it raises dim to 3 the
// moment any point has a nonzero z, and grows e by powers of ten until every
// coordinate round-trips through round(v*e)/e, capped at maxPrecision. e
// only ever grows during the walk, never shrinks.
func analyze(doc geojson.Document, maxPrecision uint64) *analysis {
	a := &analysis{dim: 2, e: 1, keys: NewKeyTable()}
	switch doc.Kind {
	case geojson.DocFeatureCollection:
		a.analyzeFeatureCollection(doc.FeatureCollection, maxPrecision)
	case geojson.DocFeature:
		a.analyzeFeature(doc.Feature, maxPrecision)
	case geojson.DocGeometry:
		a.analyzeGeometry(doc.Geometry, maxPrecision)
	}
	return a
}

func (a *analysis) analyzeFeatureCollection(fc *geojson.FeatureCollection, maxPrecision uint64) {
	a.internProps(fc.CustomProperties, maxPrecision)
	for i := range fc.Features {
		a.analyzeFeature(&fc.Features[i], maxPrecision)
	}
}

func (a *analysis) analyzeFeature(f *geojson.Feature, maxPrecision uint64) {
	a.analyzeGeometry(&f.Geometry, maxPrecision)
	a.internProps(f.Properties, maxPrecision)
	a.internProps(f.CustomProperties, maxPrecision)
	if f.ID.Kind == geojson.IDComposite {
		a.analyzeValue(f.ID.Composite, maxPrecision)
	}
}

func (a *analysis) analyzeGeometry(g *geojson.Geometry, maxPrecision uint64) {
	a.internProps(g.CustomProperties, maxPrecision)
	switch g.Kind {
	case geojson.Point:
		a.analyzePoint(g.Point, maxPrecision)
	case geojson.MultiPoint, geojson.LineString:
		for _, p := range g.Points {
			a.analyzePoint(p, maxPrecision)
		}
	case geojson.MultiLineString, geojson.Polygon:
		for _, ring := range g.Rings {
			for _, p := range ring {
				a.analyzePoint(p, maxPrecision)
			}
		}
	case geojson.MultiPolygon:
		for _, poly := range g.Polygons {
			for _, ring := range poly {
				for _, p := range ring {
					a.analyzePoint(p, maxPrecision)
				}
			}
		}
	case geojson.GeometryCollection:
		for i := range g.Geometries {
			a.analyzeGeometry(&g.Geometries[i], maxPrecision)
		}
	}
}

func (a *analysis) analyzePoint(p geojson.Position, maxPrecision uint64) {
	if p.Z() != 0 {
		a.dim = 3
	}
	for axis := 0; axis < a.dim && axis < len(p); axis++ {
		v := p[axis]
		for a.e < maxPrecision && math.Round(v*float64(a.e))/float64(a.e) != v {
			a.e *= 10
		}
	}
}

func (a *analysis) analyzeValue(v geojson.Value, maxPrecision uint64) {
	switch v.Kind {
	case geojson.Array:
		for _, e := range v.ArrayV {
			a.analyzeValue(e, maxPrecision)
		}
	case geojson.Object:
		a.internProps(v.ObjectV, maxPrecision)
	}
}

func (a *analysis) internProps(props geojson.OrderedProps, maxPrecision uint64) {
	props.Range(func(key string, value geojson.Value) bool {
		a.keys.Intern(key)
		a.analyzeValue(value, maxPrecision)
		return true
	})
}
