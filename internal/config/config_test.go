package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/toeicz/internal/narration"
)

// isolate points every lookup Load performs at empty temp locations and
// clears TOEICZ_ variables for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	for _, k := range []string{"DB", "BANK", "SESSION_SIZE", "TIMEZONE", "LOG_LEVEL", "SPEECH_RATE", "SPEECH_COMMAND", "SPEECH_VOICE", "CONFIG"} {
		key := EnvPrefix + "_" + k
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := load(nil, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.SessionSize)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "normal", cfg.Speech.Rate)
	assert.Equal(t, narration.DefaultVoice, cfg.Speech.Voice)
	assert.Empty(t, cfg.File)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)

	cfgDir := filepath.Join(dir, "config", "toeicz")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	yaml := "session_size: 5\ntimezone: Asia/Tokyo\nbank: /from/file.json\nspeech:\n  rate: slow\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(yaml), 0o644))

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TOEICZ_SESSION_SIZE=7\n"), 0o644))
	t.Setenv("TOEICZ_SPEECH_RATE", "fast")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.String("bank", "", "")
	require.NoError(t, flags.Parse([]string{"--bank", "/from/flag.json"}))

	cfg, err := load(flags, envFile)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.SessionSize, ".env beats the config file")
	assert.Equal(t, "fast", cfg.Speech.Rate, "environment beats the config file")
	assert.Equal(t, "/from/flag.json", cfg.Bank, "flag beats the config file")
	assert.Equal(t, "Asia/Tokyo", cfg.Timezone)
	assert.Equal(t, filepath.Join(cfgDir, "config.yaml"), cfg.File)

	rate, err := cfg.SpeechRate()
	require.NoError(t, err)
	assert.Equal(t, narration.RateFast, rate)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	dir := isolate(t)
	p := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(p, []byte("log_level: debug\n"), 0o644))
	t.Setenv("TOEICZ_CONFIG", p)

	cfg, err := load(nil, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	t.Setenv("TOEICZ_CONFIG", filepath.Join(dir, "absent.yaml"))
	_, err = load(nil, filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{SessionSize: 10, Timezone: "UTC", LogLevel: "info", Speech: Speech{Rate: "normal"}}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero size", func(c *Config) { c.SessionSize = 0 }},
		{"huge size", func(c *Config) { c.SessionSize = MaxSessionSize + 1 }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"bad rate", func(c *Config) { c.Speech.Rate = "warp" }},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }},
	}

	c := valid()
	require.NoError(t, c.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestDBPath(t *testing.T) {
	dir := isolate(t)
	p := filepath.Join(dir, "nested", "my.db")
	c := Config{DB: p}

	got, err := c.DBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Join(dir, "nested"))
}
