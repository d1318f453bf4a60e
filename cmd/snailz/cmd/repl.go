package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agenthands/snailz/pkg/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive REPL",
	Long: `Start the interactive REPL. Each line is parsed and evaluated on its
own; errors are reported and the session continues. Ctrl+D exits.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	sess, err := newSession(os.Stdout)
	if err != nil {
		return err
	}
	logger.Debug("session started", "session", sess.ID)

	r := repl.New(sess, os.Stdin, os.Stdout,
		repl.WithPrompt(appConfig.REPL.Prompt),
		repl.WithColor(appConfig.REPL.Color),
	)
	return r.Run()
}
