package codec

import (
	"github.com/beetlebugorg/geobuf/internal/wire"
	"github.com/beetlebugorg/geobuf/pkg/geojson"
)

// Decoder reads a single Geobuf byte string back into a GeoJSON document.
// Like Encoder, a Decoder's state exists for exactly one Decode call.
type Decoder struct{}

// NewDecoder returns a ready-to-use Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode reads the header (keys, dim, precision) and then dispatches on the
// first of {feature-collection, feature, geometry} encountered, returning
// immediately — a well-formed document carries exactly one of the three.
func (dec *Decoder) Decode(data []byte) (geojson.Document, error) {
	r := wire.NewReader(data)
	st := &decodeState{dim: 2, e: defaultMaxPrecision, keys: NewKeyTable()}

	for {
		num, typ, ok, err := r.Next()
		if err != nil {
			return geojson.Document{}, err
		}
		if !ok {
			return geojson.Document{}, errStructural("document has no feature-collection, feature, or geometry field")
		}
		switch num {
		case tagKeys:
			s, err := r.String()
			if err != nil {
				return geojson.Document{}, err
			}
			st.keys.Intern(s)
		case tagDim:
			v, err := r.Uint64()
			if err != nil {
				return geojson.Document{}, err
			}
			st.dim = int(v)
		case tagPrecision:
			v, err := r.Uint64()
			if err != nil {
				return geojson.Document{}, err
			}
			st.e = pow10(v)
		case tagFeatureCollection:
			sub, err := r.Message()
			if err != nil {
				return geojson.Document{}, err
			}
			fc, err := st.readFeatureCollection(sub)
			if err != nil {
				return geojson.Document{}, err
			}
			return geojson.NewFeatureCollectionDocument(*fc), nil
		case tagFeature:
			sub, err := r.Message()
			if err != nil {
				return geojson.Document{}, err
			}
			f, err := st.readFeature(sub)
			if err != nil {
				return geojson.Document{}, err
			}
			return geojson.NewFeatureDocument(*f), nil
		case tagTopGeometry:
			sub, err := r.Message()
			if err != nil {
				return geojson.Document{}, err
			}
			g, err := st.readGeometry(sub)
			if err != nil {
				return geojson.Document{}, err
			}
			return geojson.NewGeometryDocument(*g), nil
		default:
			if err := r.Skip(num, typ); err != nil {
				return geojson.Document{}, err
			}
		}
	}
}

func pow10(n uint64) uint64 {
	e := uint64(1)
	for i := uint64(0); i < n; i++ {
		e *= 10
	}
	return e
}

// decodeState is the accumulated header state (dim, precision multiplier,
// key table) every nested read needs.
type decodeState struct {
	dim  int
	e    uint64
	keys *KeyTable
}

func (s *decodeState) invE() float64 {
	return 1 / float64(s.e)
}

func (s *decodeState) readFeatureCollection(r *wire.Reader) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{}
	var values []geojson.Value
	for {
		num, typ, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch num {
		case tagFCFeature:
			sub, err := r.Message()
			if err != nil {
				return nil, err
			}
			f, err := s.readFeature(sub)
			if err != nil {
				return nil, err
			}
			fc.Features = append(fc.Features, *f)
		case tagFCValues:
			sub, err := r.Message()
			if err != nil {
				return nil, err
			}
			v, err := s.readValue(sub)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		case tagFCCustomPropsIndex:
			idxs, err := r.PackedUint32()
			if err != nil {
				return nil, err
			}
			props, err := s.pairsToProps(idxs, values)
			if err != nil {
				return nil, err
			}
			fc.CustomProperties = props
		default:
			if err := r.Skip(num, typ); err != nil {
				return nil, err
			}
		}
	}
	return fc, nil
}

func (s *decodeState) readFeature(r *wire.Reader) (*geojson.Feature, error) {
	f := &geojson.Feature{}
	var values []geojson.Value
	for {
		num, typ, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch num {
		case tagFeatGeometry:
			sub, err := r.Message()
			if err != nil {
				return nil, err
			}
			g, err := s.readGeometry(sub)
			if err != nil {
				return nil, err
			}
			f.Geometry = *g
		case tagFeatIDString:
			v, err := r.String()
			if err != nil {
				return nil, err
			}
			f.ID = geojson.StringID(v)
		case tagFeatIDInt64:
			v, err := r.Sint64()
			if err != nil {
				return nil, err
			}
			f.ID = geojson.Int64ID(v)
		case tagFeatValues:
			sub, err := r.Message()
			if err != nil {
				return nil, err
			}
			v, err := s.readValue(sub)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		case tagFeatPropsIndex:
			idxs, err := r.PackedUint32()
			if err != nil {
				return nil, err
			}
			props, err := s.pairsToProps(idxs, values)
			if err != nil {
				return nil, err
			}
			f.Properties = props
		case tagFeatCustomPropsIdx:
			idxs, err := r.PackedUint32()
			if err != nil {
				return nil, err
			}
			props, err := s.pairsToProps(idxs, values)
			if err != nil {
				return nil, err
			}
			f.CustomProperties = props
		default:
			if err := r.Skip(num, typ); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func (s *decodeState) readGeometry(r *wire.Reader) (*geojson.Geometry, error) {
	gtype := -1
	var lengths []uint32
	var coords []int64
	var children []geojson.Geometry
	var values []geojson.Value
	var customProps geojson.OrderedProps

	for {
		num, typ, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch num {
		case tagGeomType:
			v, err := r.Uint64()
			if err != nil {
				return nil, err
			}
			gtype = int(v)
		case tagGeomLengths:
			lengths, err = r.PackedUint32()
			if err != nil {
				return nil, err
			}
		case tagGeomCoords:
			coords, err = r.PackedSint64()
			if err != nil {
				return nil, err
			}
		case tagGeomChildren:
			sub, err := r.Message()
			if err != nil {
				return nil, err
			}
			child, err := s.readGeometry(sub)
			if err != nil {
				return nil, err
			}
			children = append(children, *child)
		case tagGeomValues:
			sub, err := r.Message()
			if err != nil {
				return nil, err
			}
			v, err := s.readValue(sub)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		case tagGeomCustomPropsIdx:
			idxs, err := r.PackedUint32()
			if err != nil {
				return nil, err
			}
			customProps, err = s.pairsToProps(idxs, values)
			if err != nil {
				return nil, err
			}
		default:
			if err := r.Skip(num, typ); err != nil {
				return nil, err
			}
		}
	}

	if gtype < 0 {
		return &geojson.Geometry{Kind: geojson.Empty}, nil
	}
	if gtype > 6 {
		return nil, errStructural("geometry type %d out of range", gtype)
	}
	kind := geojson.GeometryKind(gtype) + geojson.Point

	g, err := s.buildGeometry(kind, lengths, coords, children)
	if err != nil {
		return nil, err
	}
	g.CustomProperties = customProps
	return g, nil
}

// coordCursor walks a flat delta stream, maintaining the running per-axis
// accumulator across however many lines/rings the caller pulls points for —
// the decode-side mirror of the shared accumulator in writeMultiLine and
// writeMultiPolygon.
type coordCursor struct {
	coords []int64
	pos    int
	acc    []int64
	dim    int
	invE   float64
}

func newCoordCursor(coords []int64, dim int, invE float64) *coordCursor {
	return &coordCursor{coords: coords, acc: make([]int64, dim), dim: dim, invE: invE}
}

func (c *coordCursor) next() geojson.Position {
	p := make(geojson.Position, c.dim)
	for axis := 0; axis < c.dim; axis++ {
		if c.pos < len(c.coords) {
			c.acc[axis] += c.coords[c.pos]
			c.pos++
		}
		p[axis] = float64(c.acc[axis]) * c.invE
	}
	return p
}

func (c *coordCursor) readN(n int) []geojson.Position {
	out := make([]geojson.Position, n)
	for i := 0; i < n; i++ {
		out[i] = c.next()
	}
	return out
}

// closeRing appends a copy of ring's first point, restoring the
// ring-closing coordinate the encoder elided.
func closeRing(ring []geojson.Position) []geojson.Position {
	if len(ring) == 0 {
		return ring
	}
	closed := make(geojson.Position, len(ring[0]))
	copy(closed, ring[0])
	return append(ring, closed)
}

func (s *decodeState) buildGeometry(kind geojson.GeometryKind, lengths []uint32, coords []int64, children []geojson.Geometry) (*geojson.Geometry, error) {
	cur := newCoordCursor(coords, s.dim, s.invE())
	switch kind {
	case geojson.Point:
		p := cur.next()
		return &geojson.Geometry{Kind: geojson.Point, Point: p}, nil

	case geojson.MultiPoint, geojson.LineString:
		n := len(coords) / s.dim
		pts := cur.readN(n)
		return &geojson.Geometry{Kind: kind, Points: pts}, nil

	case geojson.MultiLineString:
		rings := s.readLines(cur, lengths, coords, false)
		return &geojson.Geometry{Kind: geojson.MultiLineString, Rings: rings}, nil

	case geojson.Polygon:
		rings := s.readLines(cur, lengths, coords, true)
		return &geojson.Geometry{Kind: geojson.Polygon, Rings: rings}, nil

	case geojson.MultiPolygon:
		polys := s.readPolygons(cur, lengths, coords)
		return &geojson.Geometry{Kind: geojson.MultiPolygon, Polygons: polys}, nil

	case geojson.GeometryCollection:
		return &geojson.Geometry{Kind: geojson.GeometryCollection, Geometries: children}, nil

	default:
		return nil, errStructural("unreachable geometry kind %v", kind)
	}
}

func (s *decodeState) readLines(cur *coordCursor, lengths []uint32, coords []int64, closed bool) [][]geojson.Position {
	if len(lengths) == 0 {
		n := len(coords) / s.dim
		line := cur.readN(n)
		if closed {
			line = closeRing(line)
		}
		return [][]geojson.Position{line}
	}
	lines := make([][]geojson.Position, len(lengths))
	for i, length := range lengths {
		line := cur.readN(int(length))
		if closed {
			line = closeRing(line)
		}
		lines[i] = line
	}
	return lines
}

func (s *decodeState) readPolygons(cur *coordCursor, lengths []uint32, coords []int64) [][][]geojson.Position {
	if len(lengths) == 0 {
		n := len(coords) / s.dim
		ring := closeRing(cur.readN(n))
		return [][][]geojson.Position{{ring}}
	}
	idx := 0
	nPolys := int(lengths[idx])
	idx++
	polys := make([][][]geojson.Position, nPolys)
	for p := 0; p < nPolys; p++ {
		nRings := int(lengths[idx])
		idx++
		rings := make([][]geojson.Position, nRings)
		for r := 0; r < nRings; r++ {
			ringLen := int(lengths[idx])
			idx++
			rings[r] = closeRing(cur.readN(ringLen))
		}
		polys[p] = rings
	}
	return polys
}

func (s *decodeState) pairsToProps(idxs []uint32, values []geojson.Value) (geojson.OrderedProps, error) {
	if len(idxs)%2 != 0 {
		return geojson.OrderedProps{}, errStructural("property index array has odd length %d", len(idxs))
	}
	var props geojson.OrderedProps
	for i := 0; i < len(idxs); i += 2 {
		keyIdx, valIdx := idxs[i], idxs[i+1]
		key, ok := s.keys.At(int(keyIdx))
		if !ok {
			return geojson.OrderedProps{}, errStructural("property key index %d out of range", keyIdx)
		}
		if int(valIdx) >= len(values) {
			return geojson.OrderedProps{}, errStructural("property value index %d out of range", valIdx)
		}
		props.Set(key, values[valIdx])
	}
	return props, nil
}

func (s *decodeState) readValue(r *wire.Reader) (geojson.Value, error) {
	v := geojson.NullValue()
	for {
		num, typ, ok, err := r.Next()
		if err != nil {
			return v, err
		}
		if !ok {
			break
		}
		switch num {
		case tagValString:
			sv, err := r.String()
			if err != nil {
				return v, err
			}
			v = geojson.StringValue(sv)
		case tagValDouble:
			dv, err := r.Double()
			if err != nil {
				return v, err
			}
			v = geojson.DoubleValue(dv)
		case tagValPosInt:
			uv, err := r.Uint64()
			if err != nil {
				return v, err
			}
			v = geojson.Uint64Value(uv)
		case tagValNegInt:
			uv, err := r.Uint64()
			if err != nil {
				return v, err
			}
			v = geojson.Int64Value(-int64(uv))
		case tagValBool:
			bv, err := r.Bool()
			if err != nil {
				return v, err
			}
			v = geojson.BoolValue(bv)
		case tagValJSON:
			sv, err := r.String()
			if err != nil {
				return v, err
			}
			var parsed geojson.Value
			if err := parsed.UnmarshalJSON([]byte(sv)); err != nil {
				return v, err
			}
			v = parsed
		default:
			if err := r.Skip(num, typ); err != nil {
				return v, err
			}
		}
	}
	return v, nil
}
