package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/kinko/internal/config"
	"github.com/hance08/kinko/internal/logger"
	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/store"
	"github.com/rs/zerolog"
)

type App struct {
	Service *service.Service
	Store   store.Repository
	Config  *config.Config
	Log     zerolog.Logger
	DBPath  string
}

// NewApp opens the database, runs migrations and wires the services. The
// returned cleanup closes the database.
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	dbPath, err := ResolveDBPath(cfg)
	if err != nil {
		return nil, nil, err
	}

	log := logger.Configure(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	dbStore, err := store.NewStore(dbPath, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	svc := service.NewService(dbStore, cfg, log)

	cleanup := func() {
		if err := dbStore.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	}

	log.Debug().Str("db_path", dbPath).Msg("database ready")

	return &App{
		Service: svc,
		Store:   dbStore,
		Config:  cfg,
		Log:     log,
		DBPath:  dbPath,
	}, cleanup, nil
}

// ResolveDBPath returns the configured database path, or kinko.db in the
// application data directory when none is set.
func ResolveDBPath(cfg *config.Config) (string, error) {
	if cfg.Database.Path != "" {
		return ExpandPath(cfg.Database.Path)
	}
	appDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, "kinko.db"), nil
}

func DataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".kinko"), nil
	}

	return filepath.Join(configDir, "kinko"), nil
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
