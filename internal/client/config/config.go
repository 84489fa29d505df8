package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/mcadmin/internal/client/apierr"
	"github.com/dmitrijs2005/mcadmin/internal/logging"
)

type Config struct {
	ServerURL     string
	ErrorStyle    string
	DBPath        string
	LogLevel      string
	LogFormat     string
	VerifyTimeout time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.ErrorStyle = string(apierr.StyleAuto)
	c.DBPath = "mcadmin.db"
	c.LogLevel = "info"
	c.LogFormat = logging.FormatText
	c.VerifyTimeout = 10 * time.Second
}

// Validate reports the first setting that cannot be used as is.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server url is empty")
	}
	if _, err := apierr.ParseStyle(c.ErrorStyle); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != logging.FormatText && c.LogFormat != logging.FormatJSON {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.VerifyTimeout <= 0 {
		return fmt.Errorf("verify timeout must be positive, got %s", c.VerifyTimeout)
	}
	return nil
}

// LoadConfig applies defaults, then the config file named by -c/-config,
// then command-line flags, and validates the result.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
