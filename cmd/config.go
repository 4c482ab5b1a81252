package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable read into Config.
const EnvPrefix = "SIMBOOT_"

// Config is the effective CLI configuration. Sources apply in order, later
// ones winning: built-in defaults, the YAML file given by --config,
// SIMBOOT_* environment variables, then explicitly set flags.
// All fields must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	LogFile   string `yaml:"log_file" env:"LOG_FILE"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	Scenario  string `yaml:"scenario" env:"SCENARIO"`
	HistoryDB string `yaml:"history_db" env:"HISTORY_DB"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogFile:  "simboot.log",
		LogLevel: "info",
	}
}

// loadConfig layers the YAML file at path (if any) and the environment over
// the defaults.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// loadConfigFile decodes a YAML config file with strict field checking, so
// a misspelled key is an error rather than a silently ignored setting.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// addConfigFlags registers the flags that override Config fields.
func addConfigFlags(fs *pflag.FlagSet) {
	fs.StringVar(&configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	fs.StringVar(&logFile, "log-file", "simboot.log", "Path of the durable diagnostic log (overwritten on each run)")
	fs.StringVar(&historyDB, "history", "", "Path of the SQLite run history database (disabled when empty)")
}

// applyFlags copies flags the user set explicitly into cfg.
func applyFlags(fs *pflag.FlagSet, cfg *Config) {
	if fs.Changed("log") {
		cfg.LogLevel = logLevel
	}
	if fs.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if fs.Changed("history") {
		cfg.HistoryDB = historyDB
	}
}
