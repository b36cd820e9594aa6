package codec

import "github.com/beetlebugorg/geobuf/internal/wire"

// Field numbers for each Geobuf submessage. Grouped by the message they
// belong to; the same number means different things in different messages,
// exactly as the wire format's per-message framing intends.
const (
	// Document (top-level) framing.
	tagKeys              wire.Number = 1
	tagDim               wire.Number = 2
	tagPrecision         wire.Number = 3
	tagFeatureCollection wire.Number = 4
	tagFeature           wire.Number = 5
	tagTopGeometry       wire.Number = 6

	// FeatureCollection submessage.
	tagFCFeature          wire.Number = 1
	tagFCValues           wire.Number = 13
	tagFCCustomPropsIndex wire.Number = 15

	// Feature submessage.
	tagFeatGeometry       wire.Number = 1
	tagFeatIDString       wire.Number = 11
	tagFeatIDInt64        wire.Number = 12
	tagFeatValues         wire.Number = 13
	tagFeatPropsIndex     wire.Number = 14
	tagFeatCustomPropsIdx wire.Number = 15

	// Geometry submessage.
	tagGeomType           wire.Number = 1
	tagGeomLengths        wire.Number = 2
	tagGeomCoords         wire.Number = 3
	tagGeomChildren       wire.Number = 4
	tagGeomValues         wire.Number = 13
	tagGeomCustomPropsIdx wire.Number = 15

	// Value submessage.
	tagValString wire.Number = 1
	tagValDouble wire.Number = 2
	tagValPosInt wire.Number = 3
	tagValNegInt wire.Number = 4
	tagValBool   wire.Number = 5
	tagValJSON   wire.Number = 6
)
