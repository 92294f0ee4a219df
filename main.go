package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/slokas/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := cli.Execute(fmt.Sprintf("%s (%s)", Version, Commit)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
