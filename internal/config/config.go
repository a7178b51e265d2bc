package config

import "github.com/hance08/kinko/internal/constants"

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Server     ServerConfig   `mapstructure:"server"`
	Log        LogConfig      `mapstructure:"log"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxUploadMB    int64    `mapstructure:"max_upload_mb"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// DefaultsConfig pre-fills the interactive add form.
type DefaultsConfig struct {
	Type      string `mapstructure:"type"`
	Summary   string `mapstructure:"summary"`
	Recipient string `mapstructure:"recipient"`
}

type LedgerConfig struct {
	// EnforceStock rejects withdrawals that take out more notes or coins of a
	// denomination than the box currently holds.
	EnforceStock bool `mapstructure:"enforce_stock"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Server: ServerConfig{
			Address:        "127.0.0.1:3001",
			AllowedOrigins: []string{"http://localhost:3000"},
			MaxUploadMB:    10,
		},
		Log:      LogConfig{Level: "info", Format: "console"},
		Defaults: DefaultsConfig{Type: constants.TypeWithdrawal},
		Ledger:   LedgerConfig{EnforceStock: false},
	}
}

// MaxUploadBytes is the import size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	if c.Server.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return c.Server.MaxUploadMB << 20
}
