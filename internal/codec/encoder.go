package codec

import (
	"math"

	"github.com/beetlebugorg/geobuf/internal/wire"
	"github.com/beetlebugorg/geobuf/pkg/geojson"
)

// Encoder writes a single GeoJSON document to its Geobuf byte-string form.
// An Encoder is scratch for exactly one Encode call; state (the interned
// key table, dim, and precision multiplier) is never shared or reused
// across calls.
type Encoder struct {
	MaxPrecision uint64 // default applied by NewEncoder if zero
}

// NewEncoder returns an Encoder with the conservative default: e starts at 1
// and is only raised by the analyze pass, bounded by maxPrecision (0 means
// the standard 10^6 cap).
func NewEncoder(maxPrecision uint64) *Encoder {
	if maxPrecision == 0 {
		maxPrecision = defaultMaxPrecision
	}
	return &Encoder{MaxPrecision: maxPrecision}
}

// Encode runs the two-pass algorithm: analyze to fix dim/e/keys, then emit
// the header followed by exactly one of {feature-collection, feature,
// geometry}.
func (enc *Encoder) Encode(doc geojson.Document) ([]byte, error) {
	a := analyze(doc, enc.MaxPrecision)
	w := wire.NewWriter()

	for _, k := range a.keys.Keys() {
		w.String(tagKeys, k)
	}
	if a.dim != 2 {
		w.Uint64(tagDim, uint64(a.dim))
	}
	precision := precisionOf(a.e)
	if precision != 6 {
		w.Uint64(tagPrecision, uint64(precision))
	}

	state := &encodeState{dim: a.dim, e: float64(a.e), keys: a.keys}

	switch doc.Kind {
	case geojson.DocFeatureCollection:
		w.Submessage(tagFeatureCollection, func(child *wire.Writer) {
			state.writeFeatureCollection(child, doc.FeatureCollection)
		})
	case geojson.DocFeature:
		w.Submessage(tagFeature, func(child *wire.Writer) {
			state.writeFeature(child, doc.Feature)
		})
	case geojson.DocGeometry:
		w.Submessage(tagTopGeometry, func(child *wire.Writer) {
			state.writeGeometry(child, doc.Geometry)
		})
	}

	if state.err != nil {
		return nil, state.err
	}
	return w.Bytes(), nil
}

// precisionOf returns log10(e) for e a power of ten.
func precisionOf(e uint64) int {
	p := 0
	for e > 1 {
		e /= 10
		p++
	}
	return p
}

// encodeState carries the per-call scratch the analyze pass produced, plus
// the first error encountered while writing (so deeply nested writer
// callbacks, which have no return path of their own, can surface a failure
// to the top-level Encode call).
type encodeState struct {
	dim  int
	e    float64
	keys *KeyTable
	err  error
}

func (s *encodeState) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *encodeState) writeFeatureCollection(w *wire.Writer, fc *geojson.FeatureCollection) {
	for i := range fc.Features {
		w.Submessage(tagFCFeature, func(child *wire.Writer) {
			s.writeFeature(child, &fc.Features[i])
		})
	}
	s.writeProps(w, fc.CustomProperties, tagFCValues, tagFCCustomPropsIndex, 0)
}

func (s *encodeState) writeFeature(w *wire.Writer, f *geojson.Feature) {
	if !f.Geometry.IsEmpty() {
		w.Submessage(tagFeatGeometry, func(child *wire.Writer) {
			s.writeGeometry(child, &f.Geometry)
		})
	}
	switch f.ID.Kind {
	case geojson.IDInt64:
		w.Sint64(tagFeatIDInt64, f.ID.Int64V)
	case geojson.IDUint64:
		// Unsigned ids outside int64 range are carried as string-encoded
		// JSON text: the wire format only has int64 (field 12) and string
		// (field 11) id slots, so anything else goes through the string
		// field.
		if f.ID.Uint64V <= math.MaxInt64 {
			w.Sint64(tagFeatIDInt64, int64(f.ID.Uint64V))
			break
		}
		w.String(tagFeatIDString, jsonText(geojson.Uint64Value(f.ID.Uint64V), s))
	case geojson.IDDouble:
		w.String(tagFeatIDString, jsonText(geojson.DoubleValue(f.ID.DoubleV), s))
	case geojson.IDString:
		w.String(tagFeatIDString, f.ID.StringV)
	case geojson.IDComposite:
		w.String(tagFeatIDString, jsonText(f.ID.Composite, s))
	}

	next := s.writeProps(w, f.Properties, tagFeatValues, tagFeatPropsIndex, 0)
	s.writeProps(w, f.CustomProperties, tagFeatValues, tagFeatCustomPropsIdx, next)
}

// writeProps writes a property map's value submessages at valuesTag and its
// flattened key/value index pairs at indexTag. startIdx is the first value
// index to assign; it returns the next unused index. Callers that write two
// property maps onto the same valuesTag (properties and custom_properties
// both land on the feature's value-13 field) must chain the returned index
// into the second call, since the decoder resolves both index fields against
// one combined sequence of value submessages.
func (s *encodeState) writeProps(w *wire.Writer, props geojson.OrderedProps, valuesTag, indexTag wire.Number, startIdx int) int {
	if props.Len() == 0 {
		return startIdx
	}
	valueIdx := startIdx
	var pairs []uint32
	props.Range(func(key string, val geojson.Value) bool {
		idx, ok := s.keys.IndexOf(key)
		if !ok {
			s.fail(errStructural("unresolved property key %q", key))
			return false
		}
		w.Submessage(valuesTag, func(child *wire.Writer) {
			s.writeValue(child, val)
		})
		pairs = append(pairs, uint32(idx), uint32(valueIdx))
		valueIdx++
		return true
	})
	if len(pairs) > 0 {
		w.PackedUint32(indexTag, pairs)
	}
	return valueIdx
}

func (s *encodeState) writeValue(w *wire.Writer, v geojson.Value) {
	switch v.Kind {
	case geojson.String:
		w.String(tagValString, v.StringV)
	case geojson.Double:
		w.Double(tagValDouble, v.DoubleV)
	case geojson.Uint64:
		w.Uint64(tagValPosInt, v.Uint64V)
	case geojson.Int64:
		if v.Int64V >= 0 {
			w.Uint64(tagValPosInt, uint64(v.Int64V))
			return
		}
		if v.Int64V == math.MinInt64 {
			s.fail(errStructural("int64 value %d has no representable negated magnitude", v.Int64V))
			return
		}
		w.Uint64(tagValNegInt, uint64(-v.Int64V))
	case geojson.Bool:
		w.Bool(tagValBool, v.BoolV)
	case geojson.Array, geojson.Object:
		w.String(tagValJSON, jsonText(v, s))
	case geojson.Null:
		// No field set: an absent value submessage round-trips to Null.
	}
}

func jsonText(v geojson.Value, s *encodeState) string {
	b, err := v.MarshalJSON()
	if err != nil {
		s.fail(err)
		return ""
	}
	return string(b)
}

func (s *encodeState) writeGeometry(w *wire.Writer, g *geojson.Geometry) {
	if g.Kind == geojson.Empty {
		return
	}
	w.Uint64(tagGeomType, uint64(g.Kind-geojson.Point))

	switch g.Kind {
	case geojson.Point:
		s.writePoint(w, g.Point)
	case geojson.MultiPoint, geojson.LineString:
		s.writeLine(w, g.Points, false)
	case geojson.MultiLineString:
		s.writeMultiLine(w, g.Rings, false)
	case geojson.Polygon:
		s.writeMultiLine(w, g.Rings, true)
	case geojson.MultiPolygon:
		s.writeMultiPolygon(w, g.Polygons)
	case geojson.GeometryCollection:
		for i := range g.Geometries {
			w.Submessage(tagGeomChildren, func(child *wire.Writer) {
				s.writeGeometry(child, &g.Geometries[i])
			})
		}
	}

	s.writeProps(w, g.CustomProperties, tagGeomValues, tagGeomCustomPropsIdx, 0)
}

// writePoint writes a lone point as dim absolute-quantized values (there is
// only one point, so "delta from a zero accumulator" and "absolute"
// coincide).
func (s *encodeState) writePoint(w *wire.Writer, p geojson.Position) {
	coords := make([]int64, s.dim)
	for axis := 0; axis < s.dim; axis++ {
		coords[axis] = s.quantize(axisValue(p, axis))
	}
	w.PackedSint64(tagGeomCoords, coords)
}

// writeLine delta-encodes a single point sequence (used for multi_point and
// line_string, and as the single-line fast path of writeMultiLine). closed
// indicates the last point is a ring-closing duplicate of the first and
// should be elided.
func (s *encodeState) writeLine(w *wire.Writer, pts []geojson.Position, closed bool) {
	acc := make([]int64, s.dim)
	n := len(pts)
	if closed && n > 0 {
		n--
	}
	coords := make([]int64, 0, n*s.dim)
	for i := 0; i < n; i++ {
		for axis := 0; axis < s.dim; axis++ {
			q := s.quantize(axisValue(pts[i], axis))
			delta := q - acc[axis]
			acc[axis] = q
			coords = append(coords, delta)
		}
	}
	w.PackedSint64(tagGeomCoords, coords)
}

// writeMultiLine handles multi_line_string (closed=false) and polygon
// (closed=true): a sequence of lines/rings sharing ONE running coordinate
// accumulator across the whole structure — deltas do not reset between
// rings.
func (s *encodeState) writeMultiLine(w *wire.Writer, lines [][]geojson.Position, closed bool) {
	if len(lines) == 1 {
		s.writeLine(w, lines[0], closed)
		return
	}
	lengths := make([]uint32, len(lines))
	for i, line := range lines {
		n := len(line)
		if closed && n > 0 {
			n--
		}
		lengths[i] = uint32(n)
	}
	w.PackedUint32(tagGeomLengths, lengths)

	acc := make([]int64, s.dim)
	var coords []int64
	for _, line := range lines {
		n := len(line)
		if closed && n > 0 {
			n--
		}
		for i := 0; i < n; i++ {
			for axis := 0; axis < s.dim; axis++ {
				q := s.quantize(axisValue(line[i], axis))
				delta := q - acc[axis]
				acc[axis] = q
				coords = append(coords, delta)
			}
		}
	}
	w.PackedSint64(tagGeomCoords, coords)
}

// writeMultiPolygon flattens [n_polygons, n_rings_i, ring_len_i_j, ...] as
// the lengths descriptor and shares one running accumulator across every
// ring of every polygon, same rule as writeMultiLine.
func (s *encodeState) writeMultiPolygon(w *wire.Writer, polys [][][]geojson.Position) {
	if len(polys) == 1 && len(polys[0]) == 1 {
		s.writeLine(w, polys[0][0], true)
		return
	}

	lengths := []uint32{uint32(len(polys))}
	for _, poly := range polys {
		lengths = append(lengths, uint32(len(poly)))
		for _, ring := range poly {
			n := len(ring)
			if n > 0 {
				n--
			}
			lengths = append(lengths, uint32(n))
		}
	}
	w.PackedUint32(tagGeomLengths, lengths)

	acc := make([]int64, s.dim)
	var coords []int64
	for _, poly := range polys {
		for _, ring := range poly {
			n := len(ring)
			if n > 0 {
				n--
			}
			for i := 0; i < n; i++ {
				for axis := 0; axis < s.dim; axis++ {
					q := s.quantize(axisValue(ring[i], axis))
					delta := q - acc[axis]
					acc[axis] = q
					coords = append(coords, delta)
				}
			}
		}
	}
	w.PackedSint64(tagGeomCoords, coords)
}

func (s *encodeState) quantize(v float64) int64 {
	return int64(math.Round(v * s.e))
}

func axisValue(p geojson.Position, axis int) float64 {
	if axis >= len(p) {
		return 0
	}
	return p[axis]
}
