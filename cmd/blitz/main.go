package main

import (
	"fmt"
	"os"

	"github.com/blitz-io/blitz-go"
	_ "github.com/mtibben/androiddnsfix"
)

func main() {
	if err := blitz.Main(&blitz.Options{}); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
