package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/masamoto1982/Lycoris/internal/lycerrors"
	"github.com/masamoto1982/Lycoris/pkg/lycoris"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive read-eval-print loop",
	Long: `Start an interactive Lycoris session: one evaluator stays alive across
lines, and the stack is printed after each successful line (the
Lycoris analogue of an interactive scripting session).

Type "quit" or press Ctrl-D to exit.`,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(_ *cobra.Command, _ []string) error {
	m := lycoris.New()
	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 1024), 1024*1024)

	interactive := false
	if fi, err := os.Stdin.Stat(); err == nil {
		interactive = (fi.Mode() & os.ModeCharDevice) != 0
	}

	if interactive {
		fmt.Println("lycoris REPL. Type 'quit' or Ctrl-D to exit.")
	}

	for {
		if interactive {
			fmt.Print("lyc> ")
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				fmt.Fprintln(os.Stderr, "read error:", err)
			}
			return nil
		}

		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		out, err := m.Execute(line)
		if out != "" {
			fmt.Print(out)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, lycerrors.FormatWithSource(err, line))
			continue
		}
		fmt.Printf("=> %s\n", formatStack(m.StackSnapshot()))
	}
}

func formatStack(stack []string) string {
	return "[" + strings.Join(stack, " ") + "]"
}
