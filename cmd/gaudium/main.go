// SPDX-License-Identifier: Unlicense OR MIT

// Command gaudium watches, records and replays input events.
package main

import (
	"os"

	"gaudium.org/cmd/gaudium/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
