// Command periodctl builds and subdivides periods from the command line
// using the same application service as the HTTP API.
//
//	periodctl relative days 7
//	periodctl create "2026-01-01" "2026-03-31 18:00" --to Europe/Paris
//	periodctl steps 2026-01-01 2026-01-02 --interval 6 --scale hours
package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/jsamuelsen11/period-service/internal/adapters/clock"
)

func main() {
	root := newRootCmd(clock.System{})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
