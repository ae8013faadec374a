package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	outDir := flag.String("out", "conformance/fixtures", "fixture output directory")
	flag.Parse()

	if err := run(*outDir); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
