package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agenthands/snailz/pkg/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal user interface",
	Long: `Start a full-screen terminal interface over one session.

Navigation:
  Enter      - run the statement
  Up/Down    - input history
  PgUp/PgDn  - scroll the transcript
  Esc/Ctrl+C - quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The model redirects output into its transcript.
	sess, err := newSession(io.Discard)
	if err != nil {
		return err
	}
	if err := tui.Run(sess, appConfig.REPL.Prompt); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
