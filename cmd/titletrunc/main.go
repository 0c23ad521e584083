// Command titletrunc picks short titles for library tracks whose titles
// are too long.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		// Cobra already prints the error.
		os.Exit(1)
	}
}
