// burphist CLI - load, query, and re-export proxy history files.
package main

import (
	"fmt"
	"os"

	"github.com/burphist/burphist/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
