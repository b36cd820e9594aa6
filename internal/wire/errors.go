package wire

import "fmt"

// Error reports a malformed wire stream: a truncated tag, varint or fixed64
// payload, or a length prefix that overruns the remaining bytes. A wire type
// that doesn't match the accessor called is not detected.
type Error struct {
	Offset int
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("wire: offset %d: %s", e.Offset, e.Reason)
}

func errAt(offset int, format string, args ...any) *Error {
	return &Error{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
