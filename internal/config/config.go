// /internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultGuildID is the guild private commands are deployed to.
const DefaultGuildID = "1240063050581676143"

// Config is the process-wide configuration, read once and passed down.
// Token and ApplicationID are deliberately not required here: a missing value
// is reported by Discord as an authorization or validation failure.
type Config struct {
	Token         string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"CLIENT_ID"`
	GuildID       string `env:"PRIVATE_GUILD_ID" envDefault:"1240063050581676143"`

	LedgerPath    string `env:"LEDGER_PATH" envDefault:"data/deploy.json"`
	LedgerBackups int    `env:"LEDGER_BACKUPS" envDefault:"3"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"20s"`
	RequestRate    float64       `env:"REQUEST_RATE" envDefault:"2"`
}

// LoadDotenv loads variables from the given files (".env" when none) into the
// process environment. Existing variables win. A missing file is not an error;
// the returned bool says whether anything was loaded.
func LoadDotenv(files ...string) (bool, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load dotenv: %w", err)
	}
	return true, nil
}

// New parses the environment into a Config.
func New() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.GuildID == "" {
		cfg.GuildID = DefaultGuildID
	}
	return &cfg, nil
}
