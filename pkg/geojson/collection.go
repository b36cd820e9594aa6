package geojson

// FeatureCollection is an ordered sequence of features plus any
// non-standard top-level fields.
type FeatureCollection struct {
	Features         []Feature
	CustomProperties OrderedProps
}

// DocumentKind discriminates which of the three top-level Geobuf
// submessages a Document carries: exactly one of feature-collection,
// feature, or geometry is present.
type DocumentKind int

const (
	DocFeatureCollection DocumentKind = iota
	DocFeature
	DocGeometry
)

// Document is the top-level union a full Geobuf byte string decodes to, or
// an Encode call consumes.
type Document struct {
	Kind DocumentKind

	FeatureCollection *FeatureCollection
	Feature           *Feature
	Geometry          *Geometry
}

// NewFeatureCollectionDocument wraps fc as a top-level document.
func NewFeatureCollectionDocument(fc FeatureCollection) Document {
	return Document{Kind: DocFeatureCollection, FeatureCollection: &fc}
}

// NewFeatureDocument wraps f as a top-level document.
func NewFeatureDocument(f Feature) Document {
	return Document{Kind: DocFeature, Feature: &f}
}

// NewGeometryDocument wraps g as a top-level document.
func NewGeometryDocument(g Geometry) Document {
	return Document{Kind: DocGeometry, Geometry: &g}
}

// Dim reports the coordinate dimensionality (2 or 3) the whole document
// requires.
func (d Document) Dim() int {
	switch d.Kind {
	case DocFeatureCollection:
		dim := 2
		for _, f := range d.FeatureCollection.Features {
			if f.Geometry.Dim() == 3 {
				dim = 3
			}
		}
		return dim
	case DocFeature:
		return d.Feature.Geometry.Dim()
	case DocGeometry:
		return d.Geometry.Dim()
	default:
		return 2
	}
}
