package geobuf

import (
	"fmt"
	"strings"

	"github.com/beetlebugorg/geobuf/internal/wire"
)

// Dump renders data as an indented, human-readable listing of its raw
// wire fields — number, wire type, and (for scalars) decoded value —
// without interpreting it as GeoJSON. It tolerates fields of a wire type it
// doesn't specifically handle by falling back to a skip summary, and a
// length-delimited payload that does not parse as a message is shown as
// bytes. A truncated tag, varint or length prefix ends the dump with an
// error.
func Dump(data []byte, indentUnit string) (string, error) {
	var b strings.Builder
	if err := dumpMessage(&b, data, 0, indentUnit); err != nil {
		return "", err
	}
	return b.String(), nil
}

func dumpMessage(b *strings.Builder, data []byte, depth int, indentUnit string) error {
	r := wire.NewReader(data)
	prefix := strings.Repeat(indentUnit, depth)
	for {
		num, typ, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch typ {
		case wire.Varint:
			v, err := r.Uint64()
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "%sfield %d (varint) = %d\n", prefix, num, v)
		case wire.Fixed64:
			v, err := r.Double()
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "%sfield %d (fixed64) = %v\n", prefix, num, v)
		case wire.Bytes:
			payload, err := r.Bytes()
			if err != nil {
				return err
			}
			if looksLikeMessage(payload) {
				fmt.Fprintf(b, "%sfield %d (message, %d bytes)\n", prefix, num, len(payload))
				if err := dumpMessage(b, payload, depth+1, indentUnit); err != nil {
					// Not actually a submessage; fall back to a string/byte
					// summary instead of failing the whole dump.
					fmt.Fprintf(b, "%s%s(unparseable as message: %v)\n", prefix, indentUnit, err)
				}
			} else {
				fmt.Fprintf(b, "%sfield %d (bytes, %d bytes) = %q\n", prefix, num, len(payload), string(payload))
			}
		default:
			if err := r.Skip(num, typ); err != nil {
				return err
			}
			fmt.Fprintf(b, "%sfield %d (wire type %d, skipped)\n", prefix, num, typ)
		}
	}
}

// looksLikeMessage is a heuristic: try parsing payload as a sequence of
// well-formed tagged fields. Used only to decide how to render a
// length-delimited field in the dump, never to validate real decoding.
func looksLikeMessage(payload []byte) bool {
	if len(payload) == 0 {
		return true
	}
	r := wire.NewReader(payload)
	for {
		num, typ, ok, err := r.Next()
		if err != nil {
			return false
		}
		if !ok {
			return true
		}
		if err := r.Skip(num, typ); err != nil {
			return false
		}
	}
}
