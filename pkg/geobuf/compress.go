package geobuf

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/beetlebugorg/geobuf/pkg/geojson"
)

// EncodeCompressed encodes doc to Geobuf and wraps the result in a zstd
// frame. The delta-varint coordinate stream and key table are repetitive
// enough that compressing it on top is usually worthwhile for storage or
// transmission; the wire format itself is unchanged, this is purely an
// outer envelope.
func EncodeCompressed(doc geojson.Document, opts EncoderOptions) ([]byte, error) {
	raw, err := Encode(doc, opts)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("geobuf: open zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// DecodeCompressed reverses EncodeCompressed.
func DecodeCompressed(data []byte) (geojson.Document, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return geojson.Document{}, fmt.Errorf("geobuf: open zstd reader: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return geojson.Document{}, fmt.Errorf("geobuf: zstd decompress: %w", err)
	}
	return Decode(raw)
}
