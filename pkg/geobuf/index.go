package geobuf

import (
	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/s2"

	"github.com/beetlebugorg/geobuf/pkg/geojson"
)

// Index provides fast spatial queries over a decoded feature collection: an
// R-tree holding one bounding rectangle per feature, answering intersection
// queries in O(log n) instead of a linear scan.
//
// Index performs no geometric operations beyond bounding-rectangle
// intersection — no buffering, simplification, or topology.
type Index struct {
	entries []indexEntry
	rtree   *rtreego.Rtree
}

type indexEntry struct {
	feature *geojson.Feature
	bounds  Bounds
}

func (e indexEntry) Bounds() rtreego.Rect {
	point := rtreego.Point{e.bounds.MinLon, e.bounds.MinLat}
	lengths := []float64{
		dimOrEpsilon(e.bounds.MaxLon - e.bounds.MinLon),
		dimOrEpsilon(e.bounds.MaxLat - e.bounds.MinLat),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// dimOrEpsilon guards against rtreego.NewRect rejecting a zero-size
// dimension for single-point features.
func dimOrEpsilon(d float64) float64 {
	if d <= 0 {
		return 1e-9
	}
	return d
}

// NewIndex builds a spatial index over every feature in fc.
func NewIndex(fc *geojson.FeatureCollection) *Index {
	rtree := rtreego.NewTree(2, 25, 50)
	entries := make([]indexEntry, len(fc.Features))
	for i := range fc.Features {
		f := &fc.Features[i]
		entries[i] = indexEntry{feature: f, bounds: featureBounds(f)}
		rtree.Insert(entries[i])
	}
	return &Index{entries: entries, rtree: rtree}
}

// Query returns every feature whose bounding rectangle intersects bounds.
func (idx *Index) Query(bounds Bounds) []*geojson.Feature {
	point := rtreego.Point{bounds.MinLon, bounds.MinLat}
	lengths := []float64{
		dimOrEpsilon(bounds.MaxLon - bounds.MinLon),
		dimOrEpsilon(bounds.MaxLat - bounds.MinLat),
	}
	queryRect, _ := rtreego.NewRect(point, lengths)

	spatials := idx.rtree.SearchIntersect(queryRect)
	result := make([]*geojson.Feature, 0, len(spatials))
	for _, sp := range spatials {
		result = append(result, sp.(indexEntry).feature)
	}
	return result
}

// Count reports the number of indexed features.
func (idx *Index) Count() int {
	return len(idx.entries)
}

// featureBounds computes f's bounding rectangle using s2.RectBounder. For a
// geometry that crosses the antimeridian, s2 reports a wrapped longitude
// interval, which lands here as MinLon > MaxLon; Bounds and the R-tree entry
// do not treat that as a wrapped interval.
func featureBounds(f *geojson.Feature) Bounds {
	var bounder s2.RectBounder
	seen := false
	walkPositions(&f.Geometry, func(p geojson.Position) {
		seen = true
		lon, lat := p[0], 0.0
		if len(p) > 1 {
			lat = p[1]
		}
		bounder.AddPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon)))
	})
	if !seen {
		return Bounds{}
	}
	rect := bounder.RectBound()
	return Bounds{
		MinLon: rect.Lo().Lng.Degrees(),
		MaxLon: rect.Hi().Lng.Degrees(),
		MinLat: rect.Lo().Lat.Degrees(),
		MaxLat: rect.Hi().Lat.Degrees(),
	}
}

// walkPositions is a small public-package mirror of geojson.Geometry's
// internal walkPositions, needed here because that method is unexported.
func walkPositions(g *geojson.Geometry, fn func(geojson.Position)) {
	switch g.Kind {
	case geojson.Point:
		fn(g.Point)
	case geojson.MultiPoint, geojson.LineString:
		for _, p := range g.Points {
			fn(p)
		}
	case geojson.MultiLineString, geojson.Polygon:
		for _, ring := range g.Rings {
			for _, p := range ring {
				fn(p)
			}
		}
	case geojson.MultiPolygon:
		for _, poly := range g.Polygons {
			for _, ring := range poly {
				for _, p := range ring {
					fn(p)
				}
			}
		}
	case geojson.GeometryCollection:
		for i := range g.Geometries {
			walkPositions(&g.Geometries[i], fn)
		}
	}
}
