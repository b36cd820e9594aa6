// Package geobuf provides a bidirectional codec between GeoJSON and
// Geobuf, a compact binary encoding of GeoJSON based on the
// protocol-buffer wire format.
//
// # Basic Usage
//
//	doc := geojson.NewFeatureDocument(geojson.NewFeature(
//	    geojson.NewPoint(geojson.Position{-122.42, 37.78}),
//	))
//	data, err := geobuf.Encode(doc, geobuf.DefaultEncoderOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	decoded, err := geobuf.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Text-level Convenience
//
//	data, err := geobuf.EncodeText(geojsonBytes, geobuf.DefaultEncoderOptions())
//	text, err := geobuf.DecodeToText(data, geobuf.TextOptions{Indent: true})
//
// # Spatial Queries
//
// Decoding once and querying many times is cheaper through an Index:
//
//	fc, _ := geobuf.Decode(data)
//	idx := geobuf.NewIndex(fc.FeatureCollection)
//	nearby := idx.Query(geobuf.Bounds{MinLon: -122.5, MaxLon: -122.0, MinLat: 37.5, MaxLat: 38.0})
package geobuf
