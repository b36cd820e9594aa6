// Package geobuf is the public API: encode/decode between a GeoJSON
// document and its Geobuf byte-string form, plus the convenience layers
// (text-level JSON, a spatial index, zstd-compressed wrappers, a printable
// debug dump) built on top of the core codec in internal/codec.
package geobuf

import (
	"github.com/beetlebugorg/geobuf/internal/codec"
	"github.com/beetlebugorg/geobuf/pkg/geojson"
)

// Encode serializes doc to its Geobuf byte-string form.
func Encode(doc geojson.Document, opts EncoderOptions) ([]byte, error) {
	max := opts.MaxPrecision
	if max == 0 {
		max = 1_000_000
	}
	return codec.NewEncoder(max).Encode(doc)
}

// Decode parses a Geobuf byte string into a GeoJSON document.
func Decode(data []byte) (geojson.Document, error) {
	return codec.NewDecoder().Decode(data)
}
