// Command treestat reports aggregate statistics for a directory tree.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/treestat/internal/cli"
)

// version is set at build time via ldflags.
//
//nolint:gochecknoglobals // Set by the linker
var version = "unknown - unofficial build"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "treestat:", err)
		os.Exit(1)
	}
}
