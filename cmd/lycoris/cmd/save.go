package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/masamoto1982/Lycoris/pkg/lycoris"
)

var (
	saveSourceFile string
	savePatchName  string
	savePatchField string
	savePatchValue string
)

var saveCmd = &cobra.Command{
	Use:   "save [output]",
	Short: "Run a script and save its resulting dictionary",
	Long: `Execute a Lycoris program and write its user dictionary (only: built-ins
and the stack are never persisted) to a YAML file.

With --patch, instead of running a script this edits a single field of one
already-saved dictionary entry in place (e.g. recoloring a word) using a
targeted JSON-path patch rather than a full decode/mutate/encode pass.`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().StringVar(&saveSourceFile, "source", "", "Lycoris script to run before saving (required unless --patch)")
	saveCmd.Flags().StringVar(&savePatchName, "patch", "", "name of an existing entry to patch, instead of running a script")
	saveCmd.Flags().StringVar(&savePatchField, "patch-field", "color", "field to patch (name, body, or color)")
	saveCmd.Flags().StringVar(&savePatchValue, "patch-value", "", "new value for --patch-field")
}

func runSave(_ *cobra.Command, args []string) error {
	outPath := args[0]

	if savePatchName != "" {
		existing, err := os.ReadFile(outPath)
		if err != nil {
			return fmt.Errorf("failed to read %s for patching: %w", outPath, err)
		}
		m := lycoris.New()
		if _, err := m.LoadState(existing); err != nil {
			return fmt.Errorf("failed to load %s: %w", outPath, err)
		}
		blob, err := m.SaveStatePatch(savePatchName, savePatchField, savePatchValue)
		if err != nil {
			return fmt.Errorf("failed to patch entry %q: %w", savePatchName, err)
		}
		return os.WriteFile(outPath, []byte(blob), 0o644)
	}

	if saveSourceFile == "" {
		return fmt.Errorf("--source is required unless --patch is given")
	}
	content, err := os.ReadFile(saveSourceFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", saveSourceFile, err)
	}

	m := lycoris.New()
	if _, err := m.Execute(string(content)); err != nil {
		return fmt.Errorf("script execution failed: %w", err)
	}

	blob, err := m.SaveState()
	if err != nil {
		return fmt.Errorf("failed to serialize dictionary: %w", err)
	}
	return os.WriteFile(outPath, blob, 0o644)
}
