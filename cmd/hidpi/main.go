// Command hidpi renders and inspects device-pixel-exact surfaces headlessly.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/hidpi/cmd/hidpi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
