// Command vln inspects VLN task registrations and episode datasets.
package main

import (
	"os"

	"github.com/embodied-nav/vln-sdk/cmd/vln/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
