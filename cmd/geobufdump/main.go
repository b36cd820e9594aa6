// Command geobufdump prints the raw wire-field structure of a Geobuf byte
// string, without interpreting it as GeoJSON. Useful for inspecting
// malformed or unexpected input that won't decode cleanly.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/beetlebugorg/geobuf/pkg/geobuf"
)

func main() {
	indent := flag.String("indent", "  ", "indentation unit per nesting level")
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

	data, err := io.ReadAll(in)
	if err != nil {
		log.Fatal(err)
	}

	out, err := geobuf.Dump(data, *indent)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(out)
}
