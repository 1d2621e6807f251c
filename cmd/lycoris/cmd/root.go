package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lycoris",
	Short: "Lycoris concatenative language interpreter",
	Long: `lycoris is a Go implementation of the Lycoris language runtime.

Lycoris is a small concatenative (stack-based, postfix) language with a
homoiconic vector data model and exact rational arithmetic:
  - Arbitrary-precision rational numbers, never floating point
  - Vectors that are both data and suspended code (run/quote)
  - Scope modifiers (@map, *reduce, #global) over ordinary words
  - A persistable user dictionary of custom words

This CLI drives the evaluator the way an embedding host would: it is a
thin shell over pkg/lycoris, not a second implementation of the language.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics on stderr")
}
