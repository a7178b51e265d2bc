package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/hance08/kinko/internal/app"
	"github.com/hance08/kinko/internal/server"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type serveRunner struct {
	app     *app.App
	address string
	cmd     *cobra.Command
}

func NewServeCmd(application *app.App) *cobra.Command {
	runner := &serveRunner{app: application}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger over HTTP",
		Long: `Start the JSON API used by the web front end. The server stops
gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.cmd = cmd
			return runner.Run()
		},
	}
	cmd.Flags().StringVarP(&runner.address, "address", "a", "", "Listen address (default from config)")

	return cmd
}

func (r *serveRunner) Run() error {
	if r.address != "" {
		r.app.Config.Server.Address = r.address
	}

	ctx, stop := signal.NotifyContext(r.cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Info.Printf("Listening on http://%s (database %s)\n", r.app.Config.Server.Address, r.app.DBPath)

	srv := server.New(r.app.Service, r.app.Config, r.app.Log)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
