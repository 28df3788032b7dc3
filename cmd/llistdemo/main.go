// Command llistdemo runs one of the named lock-free list demonstration
// scenarios and reports whether the list's invariants held afterward.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
