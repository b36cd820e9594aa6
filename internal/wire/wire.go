// Package wire implements the tag/varint framing that the Geobuf format
// borrows from the protocol-buffer wire format: length-delimited
// submessages, packed-repeated scalars, and zigzag-encoded signed integers.
//
// It does not know anything about GeoJSON or Geobuf's field schema; it only
// knows how to walk a stream of (field number, wire type, payload) triples.
package wire

import "google.golang.org/protobuf/encoding/protowire"

// Type mirrors the protobuf wire types. Geobuf messages themselves use
// Varint, Fixed64 and Bytes; the others are named for skipping.
type Type = protowire.Type

const (
	Varint     = protowire.VarintType
	Fixed64    = protowire.Fixed64Type
	Bytes      = protowire.BytesType
	StartGroup = protowire.StartGroupType
	EndGroup   = protowire.EndGroupType
	Fixed32    = protowire.Fixed32Type
)

// Number is a 1-based field number.
type Number = protowire.Number
