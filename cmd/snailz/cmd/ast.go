package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/snailz/pkg/compiler/ast"
	"github.com/agenthands/snailz/pkg/compiler/parser"
)

var astSexpr bool

var astCmd = &cobra.Command{
	Use:   "ast SOURCE",
	Short: "Print the syntax tree of a statement",
	Long: `Parse one statement and print its tree as YAML, or as an
S-expression with --sexpr. Nothing is evaluated.`,
	Example: `  snailz ast "1 + 2 * 3"
  snailz ast --sexpr "if (x > 1) y = 2 else y = 3"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().BoolVar(&astSexpr, "sexpr", false, "print an S-expression instead of YAML")
}

func runAST(cmd *cobra.Command, args []string) error {
	node, diags, err := parser.ParseString(strings.Join(args, " "))
	out := cmd.OutOrStdout()
	for _, d := range diags {
		fmt.Fprintln(cmd.ErrOrStderr(), d.String())
	}
	if err != nil {
		return err
	}

	if astSexpr {
		fmt.Fprintln(out, node.String())
		return nil
	}
	doc, err := ast.Dump(node)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	fmt.Fprint(out, doc)
	return nil
}
