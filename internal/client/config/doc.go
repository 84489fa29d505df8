// Package config loads runtime configuration for the mcadmin CLI.
//
// Sources, later ones override earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file given with -c or -config. Files ending in .yaml or
//     .yml are read as YAML, anything else as JSON.
//  3. Command-line flags.
//
// Flags:
//
//	-a string   admin server base URL, e.g. http://127.0.0.1:8080
//	-e string   error body style: auto, wrapped or raw
//	-d string   path of the local SQLite database
//	-l string   log level: debug, info, warn, error
//
// File keys (JSON shown, YAML uses the same names):
//
//	{
//	  "server_url": "http://mc.example:8080",
//	  "error_style": "wrapped",
//	  "db_path": "/var/lib/mcadmin/state.db",
//	  "log_level": "debug",
//	  "log_format": "json",
//	  "verify_timeout": "5s"
//	}
//
// verify_timeout accepts a duration string or integer nanoseconds.
package config
