package cmd

import (
	"os"

	"github.com/hance08/kinko/internal/app"
	"github.com/hance08/kinko/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	app *app.App
	cmd *cobra.Command
}

func NewInfoCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database path, and system details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: application,
				cmd: cmd,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	cfg := r.app.Config

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	dbExists := false
	if _, err := os.Stat(r.app.DBPath); err == nil {
		dbExists = true
	}

	count, err := r.app.Service.Report.Count(r.cmd.Context())
	if err != nil {
		return err
	}

	items := views.SystemInfoItem{
		ConfigPath:   configPath,
		DBPath:       r.app.DBPath,
		DBExists:     dbExists,
		AppDataDir:   appDataDirOrUnknown(),
		Transactions: count,
		DefaultType:  cfg.Defaults.Type,
		EnforceStock: cfg.Ledger.EnforceStock,
		LogLevel:     cfg.Log.Level,
	}

	return views.RenderSystemInfo(items)
}

func appDataDirOrUnknown() string {
	dir, err := app.DataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
