package geobuf

// EncoderOptions configures Encode.
type EncoderOptions struct {
	// MaxPrecision caps the coordinate precision multiplier the analyze
	// pass may grow to. Zero means the standard cap of 10^6 (6 decimal
	// digits).
	MaxPrecision uint64
}

// DefaultEncoderOptions returns the standard 10^6 precision cap.
func DefaultEncoderOptions() EncoderOptions {
	return EncoderOptions{MaxPrecision: 1_000_000}
}

// TextOptions configures the text-level entry points (EncodeText,
// DecodeToText).
type TextOptions struct {
	// Indent pretty-prints the JSON output with two-space indentation.
	Indent bool

	// SortKeys renders object keys in lexicographic order instead of
	// insertion order. Properties keep insertion order on the wire
	// regardless; this only affects the text-level convenience wrapper's
	// human-readable output.
	SortKeys bool
}

// DefaultTextOptions returns compact, insertion-ordered JSON output.
func DefaultTextOptions() TextOptions {
	return TextOptions{}
}
