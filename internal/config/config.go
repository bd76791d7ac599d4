// Package config loads kioku settings from flags, a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	envPrefix  = "KIOKU_"
	configFlag = "config"
)

// Config holds the resolved settings for one command.
type Config struct {
	Root      string `koanf:"root"`
	DB        string `koanf:"db" validate:"required"`
	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`
	Seed      int64  `koanf:"seed"`
	Commit    bool   `koanf:"commit"`
}

var validate = validator.New()

// Dir is the directory holding the default config file and database.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".kioku"
	}
	return filepath.Join(dir, "kioku")
}

// RegisterFlags adds the configuration flags to flags. Their defaults are the
// lowest-priority layer of Load.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(configFlag, "", "config file (default "+filepath.Join(Dir(), "config.yaml")+")")
	flags.String("root", "", "deck root directory (default: last used root)")
	flags.String("db", filepath.Join(Dir(), "kioku.db"), "path to the SQLite database")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
	flags.Int64("seed", 0, "shuffle seed for review sessions (0 picks one at random)")
	flags.Bool("commit", false, "commit the deck root to git after changes")
}

// Load layers flag defaults, the config file, KIOKU_* environment variables
// and explicitly set flags, in that order, and validates the result.
func Load(flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	path, explicit := configPath(flags)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	err = k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if f.Name == configFlag {
			return "", nil
		}
		return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func configPath(flags *pflag.FlagSet) (string, bool) {
	if f := flags.Lookup(configFlag); f != nil && f.Value.String() != "" {
		return f.Value.String(), true
	}
	return filepath.Join(Dir(), "config.yaml"), false
}

// Logger builds the slog logger described by the config.
func (c Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c Config) level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}
