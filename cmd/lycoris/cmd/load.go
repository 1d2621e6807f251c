package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/masamoto1982/Lycoris/pkg/lycoris"
)

var loadListOnly bool

var loadCmd = &cobra.Command{
	Use:   "load <dictionary>",
	Short: "Load a saved dictionary and list its entries",
	Long: `Load a YAML dictionary saved by "lycoris save" and print its user words,
reporting any entries that failed to re-tokenize. Corrupt entries are
skipped; the rest still install.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().BoolVar(&loadListOnly, "list", true, "list loaded entries after loading")
}

func runLoad(_ *cobra.Command, args []string) error {
	blob, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	m := lycoris.New()
	corrupt, err := m.LoadState(blob)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	for _, c := range corrupt {
		fmt.Fprintf(os.Stderr, "skipped corrupt entry: %s\n", c)
	}

	if loadListOnly {
		for _, e := range m.DictionarySnapshot("") {
			fmt.Printf("%s = %s\n", e.Name, e.BodyCanonical)
		}
	}
	return nil
}
