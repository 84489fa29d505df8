package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/mcadmin/internal/flagx"
	"github.com/dmitrijs2005/mcadmin/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for decoding. Empty values keep what the
// defaults set.
type fileConfig struct {
	ServerURL     string         `json:"server_url" yaml:"server_url"`
	ErrorStyle    string         `json:"error_style" yaml:"error_style"`
	DBPath        string         `json:"db_path" yaml:"db_path"`
	LogLevel      string         `json:"log_level" yaml:"log_level"`
	LogFormat     string         `json:"log_format" yaml:"log_format"`
	VerifyTimeout timex.Duration `json:"verify_timeout" yaml:"verify_timeout"`
}

func parseFile(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}
	return loadFile(cfg, path)
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.ServerURL, fc.ServerURL)
	set(&cfg.ErrorStyle, fc.ErrorStyle)
	set(&cfg.DBPath, fc.DBPath)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.LogFormat, fc.LogFormat)
	if fc.VerifyTimeout.Duration != 0 {
		cfg.VerifyTimeout = fc.VerifyTimeout.Duration
	}
}
