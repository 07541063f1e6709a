// Command tzclock prints local wall clock time for UTC instants using an
// embedded timezone table.
package main

import (
	"os"

	"github.com/ngrash/go-tzclock/internal/cli"
)

func main() {
	if err := cli.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
