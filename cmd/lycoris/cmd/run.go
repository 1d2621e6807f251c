package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/masamoto1982/Lycoris/internal/lycerrors"
	"github.com/masamoto1982/Lycoris/pkg/lycoris"
)

var (
	evalExpr string
	loadFile string
	saveFile string
	maxDepth int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lycoris program",
	Long: `Execute a Lycoris program from a file or inline source and print the
output buffer and final stack.

Examples:
  # Run a script file
  lycoris run square.lyc

  # Evaluate inline source
  lycoris run -e "5 3 add print"

  # Resume from a saved dictionary, then save it back
  lycoris run --load dict.yaml --save dict.yaml script.lyc`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from a file")
	runCmd.Flags().StringVar(&loadFile, "load", "", "load a saved dictionary before running")
	runCmd.Flags().StringVar(&saveFile, "save", "", "save the dictionary to this path after running")
	runCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "override the recursion-depth guard (0 = default)")
}

func runScript(_ *cobra.Command, args []string) error {
	source, _, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	m := lycoris.New()
	if maxDepth > 0 {
		m.SetMaxRecursionDepth(maxDepth)
	}

	if loadFile != "" {
		blob, err := os.ReadFile(loadFile)
		if err != nil {
			return fmt.Errorf("failed to read dictionary %s: %w", loadFile, err)
		}
		corrupt, err := m.LoadState(blob)
		if err != nil {
			return fmt.Errorf("failed to load dictionary %s: %w", loadFile, err)
		}
		for _, c := range corrupt {
			fmt.Fprintf(os.Stderr, "warning: %s\n", c)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "executing %d bytes\n", len(source))
	}

	_, execErr := m.Execute(source)
	fmt.Print(m.OutputBuffer())

	if execErr != nil {
		fmt.Fprintln(os.Stderr, lycerrors.FormatWithSource(execErr, source))
	} else {
		for _, v := range m.StackSnapshot() {
			fmt.Println(v)
		}
	}

	if saveFile != "" {
		blob, err := m.SaveState()
		if err != nil {
			return fmt.Errorf("failed to serialize dictionary: %w", err)
		}
		if err := os.WriteFile(saveFile, blob, 0o644); err != nil {
			return fmt.Errorf("failed to write dictionary %s: %w", saveFile, err)
		}
	}

	if execErr != nil {
		return fmt.Errorf("execution failed: %s", execErr.Error())
	}
	return nil
}

// readSource resolves the input source from either -e/--eval or a single
// positional file argument.
func readSource(eval string, args []string) (source, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline source")
}
