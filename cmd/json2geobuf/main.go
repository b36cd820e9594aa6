// Command json2geobuf converts GeoJSON text to Geobuf bytes.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/beetlebugorg/geobuf/pkg/geobuf"
)

func main() {
	precision := flag.Uint64("precision", 6, "number of decimal digits to retain per coordinate")
	flag.Parse()

	var in io.Reader = os.Stdin
	if path := flag.Arg(0); path != "" {
		f, err := os.Open(path)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	text, err := io.ReadAll(in)
	if err != nil {
		log.Fatal(err)
	}

	opts := geobuf.EncoderOptions{MaxPrecision: pow10(*precision)}
	data, err := geobuf.EncodeText(text, opts)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := os.Stdout.Write(data); err != nil {
		log.Fatal(err)
	}
}

func pow10(n uint64) uint64 {
	e := uint64(1)
	for i := uint64(0); i < n; i++ {
		e *= 10
	}
	return e
}
