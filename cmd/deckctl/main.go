// Command deckctl drives a Deck server from the terminal with the same
// operations the mobile app uses.
package main

import (
	"fmt"
	"os"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	if err := newRootCmd(newCLI(os.Stdout)).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
