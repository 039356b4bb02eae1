package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Server configuration
	Server struct {
		Port int `env:"PORT" envDefault:"5250"`

		// Largest accepted upload, in megabytes
		MaxUploadMB int64 `env:"MAX_UPLOAD_MB" envDefault:"32"`

		CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	}

	// Parser configuration
	Parser struct {
		// Zone in which notice dates are read
		Timezone string `env:"TIMEZONE" envDefault:"Europe/Warsaw"`

		// Narrowest row that can still hold a record
		MinColumns int `env:"PARSER_MIN_COLUMNS" envDefault:"12"`

		// Unit of area cells without an explicit suffix (ha or m2)
		AreaUnit string `env:"PARSER_AREA_UNIT" envDefault:"ha"`
	}

	// RunLog configuration. The run log keeps one diagnostic row per
	// processed upload; it is disabled when DBPath is empty.
	RunLog struct {
		DBPath string `env:"RUNLOG_DB_PATH"`

		// Number of pending batches the queue holds before dropping
		Buffer int `env:"RUNLOG_BUFFER" envDefault:"64"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"RUNLOG_MAX_RETRIES" envDefault:"3"`

		// Delay between retries
		RetryDelay time.Duration `env:"RUNLOG_RETRY_DELAY" envDefault:"2s"`

		// Age after which runs are pruned
		Retention time.Duration `env:"RUNLOG_RETENTION" envDefault:"720h"`

		// Cron spec of the pruning job
		PruneSchedule string `env:"RUNLOG_PRUNE_SCHEDULE" envDefault:"@daily"`
	}
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first when present; variables already set
// take precedence over it.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid MAX_UPLOAD_MB %d", c.Server.MaxUploadMB)
	}
	if c.Parser.MinColumns <= 0 {
		return fmt.Errorf("invalid PARSER_MIN_COLUMNS %d", c.Parser.MinColumns)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if c.RunLog.MaxRetries < 0 {
		return fmt.Errorf("invalid RUNLOG_MAX_RETRIES %d", c.RunLog.MaxRetries)
	}
	if c.RunLog.Buffer <= 0 {
		return fmt.Errorf("invalid RUNLOG_BUFFER %d", c.RunLog.Buffer)
	}
	return nil
}

// Location returns the parser time zone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Parser.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Parser.Timezone, err)
	}
	return loc, nil
}

// MaxUploadBytes returns the upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}

// RunLogEnabled reports whether runs are persisted
func (c *Config) RunLogEnabled() bool {
	return c.RunLog.DBPath != ""
}
