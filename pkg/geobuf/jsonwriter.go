package geobuf

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/beetlebugorg/geobuf/pkg/geojson"
)

// jsonWriter renders GeoJSON text by hand rather than through a generic
// map[string]any marshal, because Go's JSON marshalers always sort map
// keys — which would silently reorder properties whenever SortKeys is
// false. Scalar encoding (string escaping) still goes through
// github.com/goccy/go-json; only object/array structure and key ordering
// are hand-driven.
type jsonWriter struct {
	buf       bytes.Buffer
	indent    string
	depth     int
	needComma []bool
	sortKeys  bool
}

func newJSONWriter(opts TextOptions) *jsonWriter {
	w := &jsonWriter{sortKeys: opts.SortKeys}
	if opts.Indent {
		w.indent = "  "
	}
	return w
}

func (w *jsonWriter) newline() {
	if w.indent == "" {
		return
	}
	w.buf.WriteByte('\n')
	w.buf.WriteString(strings.Repeat(w.indent, w.depth))
}

func (w *jsonWriter) item() {
	if len(w.needComma) > 0 {
		top := len(w.needComma) - 1
		if w.needComma[top] {
			w.buf.WriteByte(',')
		}
		w.needComma[top] = true
	}
	w.newline()
}

func (w *jsonWriter) pushScope() {
	w.depth++
	w.needComma = append(w.needComma, false)
}

func (w *jsonWriter) popScope() bool {
	hadItems := w.needComma[len(w.needComma)-1]
	w.needComma = w.needComma[:len(w.needComma)-1]
	w.depth--
	return hadItems
}

func (w *jsonWriter) beginObject() {
	w.buf.WriteByte('{')
	w.pushScope()
}

func (w *jsonWriter) endObject() {
	hadItems := w.popScope()
	if hadItems {
		w.newline()
	}
	w.buf.WriteByte('}')
}

func (w *jsonWriter) beginArray() {
	w.buf.WriteByte('[')
	w.pushScope()
}

func (w *jsonWriter) endArray() {
	hadItems := w.popScope()
	if hadItems {
		w.newline()
	}
	w.buf.WriteByte(']')
}

func (w *jsonWriter) rawKey(key string) {
	w.writeString(key)
	w.buf.WriteByte(':')
	if w.indent != "" {
		w.buf.WriteByte(' ')
	}
}

func (w *jsonWriter) writeString(s string) {
	b, _ := json.Marshal(s)
	w.buf.Write(b)
}

// member writes one object key/value pair, handling the comma/newline
// bookkeeping shared by every caller that writes into an open object.
func (w *jsonWriter) member(key string, writeValue func()) {
	w.item()
	w.rawKey(key)
	writeValue()
}

// element writes one array entry, same bookkeeping for array contexts.
func (w *jsonWriter) element(writeValue func()) {
	w.item()
	writeValue()
}

func (w *jsonWriter) writeValue(v geojson.Value) {
	switch v.Kind {
	case geojson.Null:
		w.buf.WriteString("null")
	case geojson.Bool:
		w.buf.WriteString(strconv.FormatBool(v.BoolV))
	case geojson.Int64:
		w.buf.WriteString(strconv.FormatInt(v.Int64V, 10))
	case geojson.Uint64:
		w.buf.WriteString(strconv.FormatUint(v.Uint64V, 10))
	case geojson.Double:
		w.buf.WriteString(strconv.FormatFloat(v.DoubleV, 'g', -1, 64))
	case geojson.String:
		w.writeString(v.StringV)
	case geojson.Array:
		w.beginArray()
		for _, e := range v.ArrayV {
			w.element(func() { w.writeValue(e) })
		}
		w.endArray()
	case geojson.Object:
		w.writeProps(v.ObjectV)
	}
}

func (w *jsonWriter) writeProps(props geojson.OrderedProps) {
	w.beginObject()
	for _, key := range w.orderedKeys(props) {
		val, _ := props.Get(key)
		w.member(key, func() { w.writeValue(val) })
	}
	w.endObject()
}

func (w *jsonWriter) orderedKeys(props geojson.OrderedProps) []string {
	keys := props.Keys()
	if w.sortKeys {
		sorted := append([]string(nil), keys...)
		sort.Strings(sorted)
		return sorted
	}
	return keys
}
