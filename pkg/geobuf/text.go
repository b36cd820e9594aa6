package geobuf

import (
	"bytes"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/beetlebugorg/geobuf/pkg/geojson"
)

// EncodeText parses GeoJSON text and encodes the result to Geobuf bytes. The
// only JSON-specific code here is the shape conversion between a generic
// JSON tree and the geojson.Document union; github.com/goccy/go-json does
// the actual parsing.
func EncodeText(geojsonText []byte, opts EncoderOptions) ([]byte, error) {
	doc, err := documentFromJSON(geojsonText)
	if err != nil {
		return nil, err
	}
	return Encode(doc, opts)
}

// DecodeToText decodes Geobuf bytes and renders the result as GeoJSON text.
func DecodeToText(data []byte, opts TextOptions) ([]byte, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return documentToJSON(doc, opts)
}

func documentFromJSON(text []byte) (geojson.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return geojson.Document{}, &geojson.TextError{Reason: err.Error()}
	}
	typ, _ := raw["type"].(string)
	switch typ {
	case "FeatureCollection":
		fc, err := featureCollectionFromJSON(raw)
		if err != nil {
			return geojson.Document{}, err
		}
		return geojson.NewFeatureCollectionDocument(fc), nil
	case "Feature":
		f, err := featureFromJSON(raw)
		if err != nil {
			return geojson.Document{}, err
		}
		return geojson.NewFeatureDocument(f), nil
	case "":
		return geojson.Document{}, &geojson.TextError{Reason: "missing \"type\" member"}
	default:
		g, err := geometryFromJSON(raw)
		if err != nil {
			return geojson.Document{}, err
		}
		return geojson.NewGeometryDocument(g), nil
	}
}

func featureCollectionFromJSON(raw map[string]any) (geojson.FeatureCollection, error) {
	var fc geojson.FeatureCollection
	items, _ := raw["features"].([]any)
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return fc, &geojson.TextError{Reason: "feature is not an object"}
		}
		f, err := featureFromJSON(m)
		if err != nil {
			return fc, err
		}
		fc.Features = append(fc.Features, f)
	}
	fc.CustomProperties = otherMembersToProps(raw, "type", "features")
	return fc, nil
}

func featureFromJSON(raw map[string]any) (geojson.Feature, error) {
	var f geojson.Feature
	if gm, ok := raw["geometry"].(map[string]any); ok {
		g, err := geometryFromJSON(gm)
		if err != nil {
			return f, err
		}
		f.Geometry = g
	}
	if id, ok := raw["id"]; ok {
		f.ID = featureIDFromJSON(id)
	}
	if pm, ok := raw["properties"].(map[string]any); ok {
		f.Properties = propsFromJSON(pm)
	}
	f.CustomProperties = otherMembersToProps(raw, "type", "geometry", "id", "properties")
	return f, nil
}

func featureIDFromJSON(id any) geojson.FeatureID {
	switch v := id.(type) {
	case json.Number:
		val := fromJSONNumber(v)
		switch val.Kind {
		case geojson.Int64:
			return geojson.Int64ID(val.Int64V)
		case geojson.Uint64:
			return geojson.Uint64ID(val.Uint64V)
		default:
			return geojson.DoubleID(val.DoubleV)
		}
	case string:
		return geojson.StringID(v)
	default:
		return geojson.NoFeatureID()
	}
}

func fromJSONNumber(n json.Number) geojson.Value {
	s := string(n)
	if iv, err := parseInt64(s); err == nil {
		return geojson.Int64Value(iv)
	}
	if uv, err := parseUint64(s); err == nil {
		return geojson.Uint64Value(uv)
	}
	f, _ := n.Float64()
	return geojson.DoubleValue(f)
}

func geometryFromJSON(raw map[string]any) (geojson.Geometry, error) {
	typ, _ := raw["type"].(string)
	var g geojson.Geometry
	switch typ {
	case "Point":
		g = geojson.NewPoint(positionFromJSON(raw["coordinates"]))
	case "MultiPoint":
		g = geojson.NewMultiPoint(positionsFromJSON(raw["coordinates"]))
	case "LineString":
		g = geojson.NewLineString(positionsFromJSON(raw["coordinates"]))
	case "MultiLineString":
		g = geojson.NewMultiLineString(ringsFromJSON(raw["coordinates"]))
	case "Polygon":
		g = geojson.NewPolygon(ringsFromJSON(raw["coordinates"]))
	case "MultiPolygon":
		g = geojson.NewMultiPolygon(polygonsFromJSON(raw["coordinates"]))
	case "GeometryCollection":
		items, _ := raw["geometries"].([]any)
		children := make([]geojson.Geometry, 0, len(items))
		for _, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				return g, &geojson.TextError{Reason: "geometry in collection is not an object"}
			}
			child, err := geometryFromJSON(m)
			if err != nil {
				return g, err
			}
			children = append(children, child)
		}
		g = geojson.NewGeometryCollection(children)
	default:
		return g, &geojson.TextError{Reason: "unknown geometry type " + typ}
	}
	g.CustomProperties = otherMembersToProps(raw, "type", "coordinates", "geometries")
	return g, nil
}

func positionFromJSON(raw any) geojson.Position {
	arr, _ := raw.([]any)
	p := make(geojson.Position, len(arr))
	for i, v := range arr {
		if n, ok := v.(json.Number); ok {
			f, _ := n.Float64()
			p[i] = f
		}
	}
	return p
}

func positionsFromJSON(raw any) []geojson.Position {
	arr, _ := raw.([]any)
	out := make([]geojson.Position, len(arr))
	for i, v := range arr {
		out[i] = positionFromJSON(v)
	}
	return out
}

func ringsFromJSON(raw any) [][]geojson.Position {
	arr, _ := raw.([]any)
	out := make([][]geojson.Position, len(arr))
	for i, v := range arr {
		out[i] = positionsFromJSON(v)
	}
	return out
}

func polygonsFromJSON(raw any) [][][]geojson.Position {
	arr, _ := raw.([]any)
	out := make([][][]geojson.Position, len(arr))
	for i, v := range arr {
		out[i] = ringsFromJSON(v)
	}
	return out
}

func propsFromJSON(raw map[string]any) geojson.OrderedProps {
	var props geojson.OrderedProps
	for k, v := range raw {
		props.Set(k, valueFromJSONAny(v))
	}
	return props
}

func valueFromJSONAny(raw any) geojson.Value {
	switch v := raw.(type) {
	case nil:
		return geojson.NullValue()
	case bool:
		return geojson.BoolValue(v)
	case string:
		return geojson.StringValue(v)
	case json.Number:
		return fromJSONNumber(v)
	case []any:
		out := make([]geojson.Value, len(v))
		for i, e := range v {
			out[i] = valueFromJSONAny(e)
		}
		return geojson.ArrayValue(out)
	case map[string]any:
		var props geojson.OrderedProps
		for k, e := range v {
			props.Set(k, valueFromJSONAny(e))
		}
		return geojson.ObjectValue(props)
	default:
		return geojson.NullValue()
	}
}

// otherMembersToProps captures any JSON object member not in the standard
// schema for its GeoJSON type as a custom property, so round-tripping
// through the text adapter doesn't silently drop unrecognized fields.
func otherMembersToProps(raw map[string]any, skip ...string) geojson.OrderedProps {
	skipSet := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipSet[s] = true
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		if !skipSet[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var props geojson.OrderedProps
	for _, k := range keys {
		props.Set(k, valueFromJSONAny(raw[k]))
	}
	return props
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseUint64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

func documentToJSON(doc geojson.Document, opts TextOptions) ([]byte, error) {
	w := newJSONWriter(opts)
	switch doc.Kind {
	case geojson.DocFeatureCollection:
		featureCollectionToJSON(w, doc.FeatureCollection)
	case geojson.DocFeature:
		featureToJSON(w, doc.Feature)
	case geojson.DocGeometry:
		geometryToJSON(w, doc.Geometry)
	}
	return w.buf.Bytes(), nil
}

func featureCollectionToJSON(w *jsonWriter, fc *geojson.FeatureCollection) {
	w.beginObject()
	w.member("type", func() { w.writeString("FeatureCollection") })
	w.member("features", func() {
		w.beginArray()
		for i := range fc.Features {
			f := &fc.Features[i]
			w.element(func() { featureToJSON(w, f) })
		}
		w.endArray()
	})
	for _, key := range w.orderedKeys(fc.CustomProperties) {
		val, _ := fc.CustomProperties.Get(key)
		w.member(key, func() { w.writeValue(val) })
	}
	w.endObject()
}

func featureToJSON(w *jsonWriter, f *geojson.Feature) {
	w.beginObject()
	w.member("type", func() { w.writeString("Feature") })
	if f.ID.Kind != geojson.NoID {
		w.member("id", func() { featureIDToJSON(w, f.ID) })
	}
	w.member("geometry", func() { geometryToJSON(w, &f.Geometry) })
	w.member("properties", func() { w.writeProps(f.Properties) })
	for _, key := range w.orderedKeys(f.CustomProperties) {
		val, _ := f.CustomProperties.Get(key)
		w.member(key, func() { w.writeValue(val) })
	}
	w.endObject()
}

func featureIDToJSON(w *jsonWriter, id geojson.FeatureID) {
	switch id.Kind {
	case geojson.IDInt64:
		w.buf.WriteString(strconv.FormatInt(id.Int64V, 10))
	case geojson.IDUint64:
		w.buf.WriteString(strconv.FormatUint(id.Uint64V, 10))
	case geojson.IDDouble:
		w.buf.WriteString(strconv.FormatFloat(id.DoubleV, 'g', -1, 64))
	case geojson.IDString:
		w.writeString(id.StringV)
	case geojson.IDComposite:
		w.writeValue(id.Composite)
	}
}

func geometryToJSON(w *jsonWriter, g *geojson.Geometry) {
	if g.Kind == geojson.Empty {
		w.buf.WriteString("null")
		return
	}
	w.beginObject()
	w.member("type", func() { w.writeString(g.Kind.String()) })
	switch g.Kind {
	case geojson.Point:
		w.member("coordinates", func() { positionToJSON(w, g.Point) })
	case geojson.MultiPoint, geojson.LineString:
		w.member("coordinates", func() { positionsToJSON(w, g.Points) })
	case geojson.MultiLineString, geojson.Polygon:
		w.member("coordinates", func() { ringsToJSON(w, g.Rings) })
	case geojson.MultiPolygon:
		w.member("coordinates", func() { polygonsToJSON(w, g.Polygons) })
	case geojson.GeometryCollection:
		w.member("geometries", func() {
			w.beginArray()
			for i := range g.Geometries {
				child := &g.Geometries[i]
				w.element(func() { geometryToJSON(w, child) })
			}
			w.endArray()
		})
	}
	for _, key := range w.orderedKeys(g.CustomProperties) {
		val, _ := g.CustomProperties.Get(key)
		w.member(key, func() { w.writeValue(val) })
	}
	w.endObject()
}

func positionToJSON(w *jsonWriter, p geojson.Position) {
	w.beginArray()
	for _, v := range p {
		w.element(func() { w.buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64)) })
	}
	w.endArray()
}

func positionsToJSON(w *jsonWriter, pts []geojson.Position) {
	w.beginArray()
	for _, p := range pts {
		w.element(func() { positionToJSON(w, p) })
	}
	w.endArray()
}

func ringsToJSON(w *jsonWriter, rings [][]geojson.Position) {
	w.beginArray()
	for _, ring := range rings {
		w.element(func() { positionsToJSON(w, ring) })
	}
	w.endArray()
}

func polygonsToJSON(w *jsonWriter, polys [][][]geojson.Position) {
	w.beginArray()
	for _, poly := range polys {
		w.element(func() { ringsToJSON(w, poly) })
	}
	w.endArray()
}
