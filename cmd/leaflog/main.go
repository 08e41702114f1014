// Command leaflog is a client for the leaflog server: it hashes values,
// submits leaf insertions, and queries the accumulator state.
package main

import (
	"os"

	"github.com/Bren2010/leaflog/cmd/leaflog/commands"
)

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
