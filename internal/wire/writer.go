package wire

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Writer accumulates a Geobuf byte string. Zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated byte string. The returned slice aliases the
// Writer's internal buffer; callers that keep using the Writer afterward
// should copy it first.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) tag(num Number, typ Type) {
	w.buf = protowire.AppendTag(w.buf, num, typ)
}

// Uint64 writes a varint field.
func (w *Writer) Uint64(num Number, v uint64) {
	w.tag(num, Varint)
	w.buf = protowire.AppendVarint(w.buf, v)
}

// Sint64 writes a zigzag-varint field.
func (w *Writer) Sint64(num Number, v int64) {
	w.tag(num, Varint)
	w.buf = protowire.AppendVarint(w.buf, protowire.EncodeZigZag(v))
}

// Bool writes a varint-encoded boolean field.
func (w *Writer) Bool(num Number, v bool) {
	var u uint64
	if v {
		u = 1
	}
	w.Uint64(num, u)
}

// Double writes a fixed64 field holding an IEEE-754 double.
func (w *Writer) Double(num Number, v float64) {
	w.tag(num, Fixed64)
	w.buf = protowire.AppendFixed64(w.buf, math.Float64bits(v))
}

// Bytes writes a length-delimited field verbatim.
func (w *Writer) Bytes(num Number, b []byte) {
	w.tag(num, Bytes)
	w.buf = protowire.AppendBytes(w.buf, b)
}

// String writes a length-delimited string field.
func (w *Writer) String(num Number, s string) {
	w.Bytes(num, []byte(s))
}

// PackedUint32 writes a length-delimited field containing a tightly packed
// sequence of uint32 varints. Writing a zero-length slice still emits an
// empty length-delimited field; callers that want the field entirely
// omitted when empty must check len(v) themselves.
func (w *Writer) PackedUint32(num Number, v []uint32) {
	var payload []byte
	for _, x := range v {
		payload = protowire.AppendVarint(payload, uint64(x))
	}
	w.Bytes(num, payload)
}

// PackedSint64 writes a length-delimited field containing a tightly packed
// sequence of zigzag-encoded sint64 varints.
func (w *Writer) PackedSint64(num Number, v []int64) {
	var payload []byte
	for _, x := range v {
		payload = protowire.AppendVarint(payload, protowire.EncodeZigZag(x))
	}
	w.Bytes(num, payload)
}

// Submessage begins a length-delimited field whose payload is produced by
// fn writing into a fresh Writer; the child's bytes are then framed under
// num in w. This mirrors protozero's RAII submessage scoping as an explicit
// call instead of a destructor.
func (w *Writer) Submessage(num Number, fn func(child *Writer)) {
	child := NewWriter()
	fn(child)
	w.Bytes(num, child.buf)
}
