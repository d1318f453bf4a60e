package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agenthands/snailz/pkg/repl"
)

var runEcho bool

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Execute a Snailz source file",
	Long: `Execute a source file one line at a time in a single session. Errors
are reported and execution continues with the next line; the command exits
non-zero if any statement failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runEcho, "echo", false, "print the value of expression statements")
}

func runFile(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot open source: %w", err)
	}
	defer f.Close()

	sess, err := newSession(os.Stdout)
	if err != nil {
		return err
	}

	r := repl.New(sess, f, os.Stdout,
		repl.WithPrompt(""),
		repl.WithEcho(runEcho),
		repl.WithColor(appConfig.REPL.Color),
	)
	if err := r.Run(); err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	if r.Failed > 0 {
		return fmt.Errorf("%s: %d statement(s) failed", args[0], r.Failed)
	}
	return nil
}
