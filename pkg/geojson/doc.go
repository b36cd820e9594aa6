// Package geojson models GeoJSON geometries, features, and feature
// collections as a closed set of tagged unions (Geometry, Value, FeatureID,
// Document), mirroring how the parser's own GeometryType + Geometry struct
// represent a different fixed set of spatial shapes.
//
// Property maps use OrderedProps rather than a bare Go map: Geobuf's
// re-encode law requires that property iteration order be part of the data
// model, not left to chance.
//
// This package has no notion of Geobuf's wire format; internal/codec reads
// and writes these types, and internal/wire frames the bytes.
package geojson
