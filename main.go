// The main package for the kbfetch executable.
package main

import (
	"github.com/genomedepot/kbfetch/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
