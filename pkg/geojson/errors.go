package geojson

import "fmt"

// TextError reports a failure to parse or render the JSON text used for
// composite property values and the text-level encode/decode entry points.
type TextError struct {
	Reason string
}

func (e *TextError) Error() string {
	return fmt.Sprintf("geojson: text: %s", e.Reason)
}

// ErrUnsupportedGeometryKind reports a GeometryKind with no defined
// coordinate shape (out of range, or Empty where a shape was required).
type ErrUnsupportedGeometryKind struct {
	Kind GeometryKind
}

func (e *ErrUnsupportedGeometryKind) Error() string {
	return fmt.Sprintf("geojson: unsupported geometry kind %v", e.Kind)
}
