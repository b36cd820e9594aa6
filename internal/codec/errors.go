package codec

import "fmt"

// StructuralError reports wire content that parses cleanly as protobuf
// framing but violates a Geobuf-level structural rule: an odd-length
// property-index array, an out-of-range geometry type enum, or a signed
// property value whose magnitude cannot be represented after negation.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("codec: structural: %s", e.Reason)
}

func errStructural(format string, args ...any) *StructuralError {
	return &StructuralError{Reason: fmt.Sprintf(format, args...)}
}
