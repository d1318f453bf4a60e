package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agenthands/snailz/pkg/server"
	"github.com/agenthands/snailz/pkg/session"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve sessions over a websocket",
	Long: `Start an HTTP server with a websocket endpoint at /ws. Every
connection gets its own session.

Messages:
  {"type":"exec","source":"x = 1"}
  {"type":"ping"}`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := appConfig.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	factory := func() (*session.Session, error) {
		return newSession(io.Discard)
	}

	srv := server.New(addr, appConfig.Server.ReadTimeout.Duration, factory, logger.WithPrefix("server"))
	return srv.ListenAndServe(ctx)
}
