package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/kinko/cmd/transaction"
	"github.com/hance08/kinko/internal/app"
	"github.com/hance08/kinko/internal/config"
	"github.com/hance08/kinko/internal/errhandler"
	"github.com/hance08/kinko/internal/service"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	// Commands are built before the flags are parsed, so they share this
	// and the pre-run hook fills them in once the config is known.
	application := &app.App{Service: &service.Service{}}
	cleanup := func() {}

	rootCmd := NewRootCmd(application, func() error {
		cfg, err := initConfig()
		if err != nil {
			return err
		}

		loaded, closeFn, err := app.NewApp(cfg, migrations)
		if err != nil {
			return err
		}
		cleanup = closeFn

		adopt(application, loaded)
		return nil
	})

	err := rootCmd.Execute()
	cleanup()
	if err != nil {
		os.Exit(errhandler.HandleError(err))
	}
}

// NewRootCmd assembles the command tree. load runs before any subcommand.
func NewRootCmd(application *app.App, load func() error) *cobra.Command {
	svc := application.Service

	rootCmd := &cobra.Command{
		Use:   "kinko",
		Short: "kinko is a CLI ledger for a petty-cash box",
		Long: `kinko is a CLI ledger for a petty-cash box.

Every deposit and withdrawal is recorded together with the notes and coins
that moved, so the balance and the cash on hand can be checked against each
other at any time.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return load()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(transaction.NewTransactionCmd(svc))

	rootCmd.AddCommand(NewAddCmd(application))
	rootCmd.AddCommand(NewListCmd(svc))
	rootCmd.AddCommand(NewInventoryCmd(svc))
	rootCmd.AddCommand(NewCarryoverCmd(svc))
	rootCmd.AddCommand(NewExportCmd(svc))
	rootCmd.AddCommand(NewImportCmd(svc))
	rootCmd.AddCommand(NewReportCmd(svc))
	rootCmd.AddCommand(NewServeCmd(application))
	rootCmd.AddCommand(NewInfoCmd(application))

	return rootCmd
}

// adopt copies a freshly loaded app into the shared one the commands hold.
func adopt(shared, loaded *app.App) {
	*shared.Service = *loaded.Service
	loaded.Service = shared.Service
	*shared = *loaded
}

func initConfig() (*config.Config, error) {
	// A missing .env is fine; one that cannot be parsed is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.DataDir()
		if err != nil {
			return nil, fmt.Errorf("error getting app dir: %w", err)
		}

		v.AddConfigPath(appDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if err := createDefaultConfig(v, appDir); err != nil {
			return nil, fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	v.SetEnvPrefix("KINKO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // allow using environment variables to override
	if err := v.BindEnv("database.path", "KINKO_DATABASE_PATH", "DB_PATH"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
	}

	cfg := config.NewDefault()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = v.ConfigFileUsed()

	return cfg, nil
}

// setDefaults registers every key so that env overrides apply even when the
// config file does not mention them.
func setDefaults(v *viper.Viper) {
	def := config.NewDefault()
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("server.address", def.Server.Address)
	v.SetDefault("server.allowed_origins", def.Server.AllowedOrigins)
	v.SetDefault("server.max_upload_mb", def.Server.MaxUploadMB)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("defaults.type", def.Defaults.Type)
	v.SetDefault("defaults.summary", def.Defaults.Summary)
	v.SetDefault("defaults.recipient", def.Defaults.Recipient)
	v.SetDefault("ledger.enforce_stock", def.Ledger.EnforceStock)
}

func createDefaultConfig(v *viper.Viper, appDir string) error {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
