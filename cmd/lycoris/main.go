// Command lycoris is the reference CLI host for the Lycoris language
// runtime: it drives pkg/lycoris the way an embedding application would,
// exposing run/tokens/repl/save/load as cobra subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/masamoto1982/Lycoris/cmd/lycoris/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
