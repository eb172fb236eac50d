package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pingcap/errors"
	"github.com/spf13/pflag"
)

const envPrefix = "WINCALL_"

// Config is the REPL's startup configuration.
type Config struct {
	Engine       string `koanf:"engine"`
	DSN          string `koanf:"dsn"`
	LogLevel     string `koanf:"log_level"`
	LogFormat    string `koanf:"log_format"`
	LogFile      string `koanf:"log_file"`
	HistoryFile  string `koanf:"history_file"`
	Parameterize bool   `koanf:"parameterize"`
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("wincall", pflag.ContinueOnError)
	fs.String("config", "", "path to a YAML config file")
	fs.String("engine", "postgres", "SQL dialect: postgres, mysql or sqlite")
	fs.String("dsn", "", "database to connect to on startup")
	fs.String("log-level", "warn", "log level: debug, info, warn or error")
	fs.String("log-format", "text", "log format: text or json")
	fs.String("log-file", "", "log to this file instead of stderr")
	fs.String("history-file", "", "readline history file")
	fs.Bool("parameterize", false, "render literals as bind parameters")
	return fs
}

// loadConfig layers defaults, the --config file, WINCALL_* environment
// variables and explicitly set flags, in increasing priority.
func loadConfig(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"engine":       "postgres",
		"log_level":    "warn",
		"log_format":   "text",
		"history_file": historyPath(),
		"parameterize": false,
	}, "."), nil); err != nil {
		return nil, errors.Annotate(err, "load defaults")
	}

	var cfgFile string
	if flags != nil {
		cfgFile, _ = flags.GetString("config")
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, errors.Annotatef(err, "read config file %s", cfgFile)
		}
	}

	// WINCALL_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, errors.Annotate(err, "load environment")
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, errors.Annotate(err, "load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Annotate(err, "decode config")
	}
	if cfg.DSN == "" {
		cfg.DSN = os.Getenv("DATABASE_URL")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Engine = strings.ToLower(strings.TrimSpace(c.Engine))
	if !isValidEngine(c.Engine) {
		return errors.Errorf("unknown engine %q (choose: postgres, mysql, sqlite)", c.Engine)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format %q (choose: text, json)", c.LogFormat)
	}
	return nil
}

func isValidEngine(engine string) bool {
	switch engine {
	case "postgres", "mysql", "sqlite":
		return true
	}
	return false
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wincall_history")
}
