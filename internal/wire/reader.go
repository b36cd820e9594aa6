package wire

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Reader walks a Geobuf byte string one field at a time. Call Next to
// advance to the next field's tag, then call the scalar/bytes/message
// accessor matching the field's declared kind. The accessors do not check
// the wire type returned by Next: calling the wrong one reads the payload
// in the accessor's own shape, and returns an *Error only if the bytes run
// out.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps b for sequential field reads. b is not copied.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Done reports whether every byte has been consumed.
func (r *Reader) Done() bool {
	return r.pos >= len(r.buf)
}

// Next consumes the next field's tag and reports its number and wire type.
// ok is false once the reader is exhausted.
func (r *Reader) Next() (num Number, typ Type, ok bool, err error) {
	if r.Done() {
		return 0, 0, false, nil
	}
	n, t, length := protowire.ConsumeTag(r.buf[r.pos:])
	if length < 0 {
		return 0, 0, false, errAt(r.pos, "truncated tag")
	}
	r.pos += length
	return n, t, true, nil
}

// Uint64 consumes a varint payload as an unsigned integer.
func (r *Reader) Uint64() (uint64, error) {
	v, n := protowire.ConsumeVarint(r.buf[r.pos:])
	if n < 0 {
		return 0, errAt(r.pos, "truncated varint")
	}
	r.pos += n
	return v, nil
}

// Sint64 consumes a varint payload as a zigzag-encoded signed integer.
func (r *Reader) Sint64() (int64, error) {
	v, err := r.Uint64()
	if err != nil {
		return 0, err
	}
	return protowire.DecodeZigZag(v), nil
}

// Bool consumes a varint payload as a boolean (nonzero is true).
func (r *Reader) Bool() (bool, error) {
	v, err := r.Uint64()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// Double consumes a fixed64 payload reinterpreted as an IEEE-754 double.
// Geobuf stores doubles through the same value slot protobuf uses for a
// fixed64 field; the wire type on these fields is length-delimited only
// when the value arrives as part of a packed array (unused by Geobuf for
// doubles), so plain scalar doubles are read as fixed64 here.
func (r *Reader) Double() (float64, error) {
	v, n := protowire.ConsumeFixed64(r.buf[r.pos:])
	if n < 0 {
		return 0, errAt(r.pos, "truncated fixed64")
	}
	r.pos += n
	return math.Float64frombits(v), nil
}

// Bytes consumes a length-delimited payload and returns a view into the
// underlying buffer (not a copy).
func (r *Reader) Bytes() ([]byte, error) {
	b, n := protowire.ConsumeBytes(r.buf[r.pos:])
	if n < 0 {
		return nil, errAt(r.pos, "truncated length-delimited field")
	}
	r.pos += n
	return b, nil
}

// String consumes a length-delimited payload as a string.
func (r *Reader) String() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Message consumes a length-delimited payload and returns a Reader scoped
// to just that submessage.
func (r *Reader) Message() (*Reader, error) {
	b, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	return NewReader(b), nil
}

// PackedUint32 consumes a length-delimited payload as a tightly packed
// sequence of uint32 varints.
func (r *Reader) PackedUint32() ([]uint32, error) {
	b, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	out := make([]uint32, 0, len(b))
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, errAt(r.pos, "truncated packed uint32 element")
		}
		out = append(out, uint32(v))
		b = b[n:]
	}
	return out, nil
}

// PackedSint64 consumes a length-delimited payload as a tightly packed
// sequence of zigzag-encoded sint64 varints.
func (r *Reader) PackedSint64() ([]int64, error) {
	b, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(b))
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, errAt(r.pos, "truncated packed sint64 element")
		}
		out = append(out, protowire.DecodeZigZag(v))
		b = b[n:]
	}
	return out, nil
}

// Skip consumes a field's payload without interpreting it, using typ (the
// wire type already returned by Next) to know the payload's shape. Used for
// fields the caller's schema doesn't recognize.
func (r *Reader) Skip(num Number, typ Type) error {
	n := protowire.ConsumeFieldValue(num, typ, r.buf[r.pos:])
	if n < 0 {
		return errAt(r.pos, "truncated field of wire type %d", typ)
	}
	r.pos += n
	return nil
}
