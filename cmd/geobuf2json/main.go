// Command geobuf2json converts Geobuf bytes back to GeoJSON text.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/beetlebugorg/geobuf/pkg/geobuf"
)

func main() {
	pretty := flag.Bool("pretty", false, "indent the output")
	sortKeys := flag.Bool("sort-keys", false, "sort object keys instead of preserving encode order")
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

	text, err := geobuf.DecodeToText(data, geobuf.TextOptions{Indent: *pretty, SortKeys: *sortKeys})
	if err != nil {
		log.Fatal(err)
	}

	if _, err := os.Stdout.Write(text); err != nil {
		log.Fatal(err)
	}
	os.Stdout.WriteString("\n")
}
