// Command copilot runs the advisor copilot API and its maintenance tasks.
package main

import (
	"os"

	"github.com/quirkauto/advisorcopilot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
