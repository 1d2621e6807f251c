package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/masamoto1982/Lycoris/internal/lexer"
	"github.com/masamoto1982/Lycoris/internal/lycerrors"
	"github.com/masamoto1982/Lycoris/pkg/lycoris"
)

var tokensEvalExpr string

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize a Lycoris file or expression without evaluating it",
	Long: `Tokenize (lex) Lycoris source and print the resulting token stream.

This is the tokenizer-only counterpart of "lycoris run": useful for
debugging dictionary longest-match boundaries and understanding how
source without whitespace gets split into words.

Examples:
  lycoris tokens script.lyc
  lycoris tokens -e "2add3mul"`,
	Args: cobra.MaximumNArgs(1),
	RunE: tokenizeScript,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().StringVarP(&tokensEvalExpr, "eval", "e", "", "tokenize inline source instead of reading from a file")
}

func tokenizeScript(_ *cobra.Command, args []string) error {
	source, _, err := readSource(tokensEvalExpr, args)
	if err != nil {
		return err
	}

	m := lycoris.New()
	toks, err := m.Tokenize(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, lycerrors.FormatWithSource(err, source))
		return fmt.Errorf("tokenize failed")
	}

	for _, t := range toks {
		printToken(t)
	}
	return nil
}

func printToken(t lexer.Token) {
	switch t.Kind {
	case lexer.KindLiteral:
		fmt.Printf("[literal] %s @%d\n", t.Val.Canonical(), t.Offset)
	case lexer.KindWordRef:
		scope := ""
		if t.Scope != 0 {
			scope = string(t.Scope)
		}
		fmt.Printf("[word]    %s%s @%d\n", scope, t.Name, t.Offset)
	case lexer.KindGuardSep:
		fmt.Printf("[guard]   : @%d\n", t.Offset)
	}
}
