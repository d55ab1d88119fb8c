// Package config loads settings from flags, environment, .env and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/toeicz/internal/narration"
	"github.com/abhisek/toeicz/internal/store"
)

// EnvPrefix prefixes every environment variable, e.g. TOEICZ_SESSION_SIZE.
const EnvPrefix = "TOEICZ"

// MaxSessionSize bounds session_size.
const MaxSessionSize = 50

// Speech configures narration.
type Speech struct {
	Rate    string `mapstructure:"rate"`
	Command string `mapstructure:"command"`
	Voice   string `mapstructure:"voice"`
}

// Config is the resolved application configuration.
type Config struct {
	DB          string `mapstructure:"db"`
	Bank        string `mapstructure:"bank"`
	SessionSize int    `mapstructure:"session_size"`
	Timezone    string `mapstructure:"timezone"`
	LogLevel    string `mapstructure:"log_level"`
	Speech      Speech `mapstructure:"speech"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Load resolves configuration. Precedence, highest first: flags,
// environment (including .env in the working directory), config file,
// defaults.
func Load(flags *pflag.FlagSet) (*Config, error) {
	return load(flags, ".env")
}

func load(flags *pflag.FlagSet, envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault("db", "")
	v.SetDefault("bank", "")
	v.SetDefault("session_size", 10)
	v.SetDefault("timezone", "Local")
	v.SetDefault("log_level", "warn")
	v.SetDefault("speech.rate", "normal")
	v.SetDefault("speech.command", "")
	v.SetDefault("speech.voice", narration.DefaultVoice)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	if flags != nil {
		for _, name := range []string{"db", "bank"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readConfigFile reads TOEICZ_CONFIG if set, otherwise an optional
// config.yaml under the user config directory.
func readConfigFile(v *viper.Viper) error {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(dir, "toeicz"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Validate checks value ranges and formats.
func (c *Config) Validate() error {
	var errs []error
	if c.SessionSize < 1 || c.SessionSize > MaxSessionSize {
		errs = append(errs, fmt.Errorf("session_size %d out of range 1-%d", c.SessionSize, MaxSessionSize))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.SpeechRate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location returns the time zone that defines a practice day.
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SpeechRate parses speech.rate.
func (c *Config) SpeechRate() (narration.Rate, error) {
	return narration.ParseRate(c.Speech.Rate)
}

// Level parses log_level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// DBPath returns the database path, creating its directory.
func (c *Config) DBPath() (string, error) {
	if c.DB != "" {
		return c.DB, store.EnsureDir(c.DB)
	}
	return store.DefaultDBPath()
}

// NewLogger returns a text logger at the configured level writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := c.Level()
	if err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
