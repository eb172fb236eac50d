package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// parseFlags parses args and loads the resulting config.
func parseFlags(t *testing.T, args ...string) *loadResult {
	t.Helper()
	fs := newFlagSet()
	require.NoError(t, fs.Parse(args))
	cfg, err := loadConfig(fs)
	return &loadResult{cfg: cfg, err: err}
}

type loadResult struct {
	cfg *Config
	err error
}

// clearEnv blanks every variable loadConfig reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"DATABASE_URL", "WINCALL_ENGINE", "WINCALL_DSN", "WINCALL_LOG_LEVEL",
		"WINCALL_LOG_FORMAT", "WINCALL_LOG_FILE", "WINCALL_HISTORY_FILE", "WINCALL_PARAMETERIZE",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wincall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	res := parseFlags(t)
	require.NoError(t, res.err)
	require.Equal(t, "postgres", res.cfg.Engine)
	require.Equal(t, "warn", res.cfg.LogLevel)
	require.Equal(t, "text", res.cfg.LogFormat)
	require.Empty(t, res.cfg.DSN)
	require.False(t, res.cfg.Parameterize)
}

func TestLoadConfigEnvOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("WINCALL_ENGINE", "MySQL")
	t.Setenv("WINCALL_LOG_LEVEL", "debug")
	res := parseFlags(t)
	require.NoError(t, res.err)
	require.Equal(t, "mysql", res.cfg.Engine)
	require.Equal(t, "debug", res.cfg.LogLevel)
}

func TestLoadConfigFlagBeatsEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("WINCALL_ENGINE", "mysql")
	res := parseFlags(t, "--engine", "sqlite", "--parameterize")
	require.NoError(t, res.err)
	require.Equal(t, "sqlite", res.cfg.Engine)
	require.True(t, res.cfg.Parameterize)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "engine: sqlite\ndsn: /tmp/hr.db\nlog_format: json\n")
	res := parseFlags(t, "--config", path)
	require.NoError(t, res.err)
	require.Equal(t, "sqlite", res.cfg.Engine)
	require.Equal(t, "/tmp/hr.db", res.cfg.DSN)
	require.Equal(t, "json", res.cfg.LogFormat)
}

func TestLoadConfigEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("WINCALL_ENGINE", "postgres")
	path := writeConfig(t, "engine: sqlite\n")
	res := parseFlags(t, "--config", path)
	require.NoError(t, res.err)
	require.Equal(t, "postgres", res.cfg.Engine)
}

func TestLoadConfigUnsetFlagKeepsFileValue(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "engine: mysql\nlog_level: error\n")
	res := parseFlags(t, "--config", path, "--log-level", "info")
	require.NoError(t, res.err)
	require.Equal(t, "mysql", res.cfg.Engine, "the --engine default must not override the file")
	require.Equal(t, "info", res.cfg.LogLevel)
}

func TestLoadConfigDatabaseURLFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/hr")
	res := parseFlags(t)
	require.NoError(t, res.err)
	require.Equal(t, "postgres://localhost/hr", res.cfg.DSN)

	res = parseFlags(t, "--dsn", "postgres://localhost/other")
	require.NoError(t, res.err)
	require.Equal(t, "postgres://localhost/other", res.cfg.DSN)
}

func TestLoadConfigRejectsUnknownValues(t *testing.T) {
	clearEnv(t)
	res := parseFlags(t, "--engine", "oracle")
	require.ErrorContains(t, res.err, `unknown engine "oracle"`)

	res = parseFlags(t, "--log-format", "xml")
	require.ErrorContains(t, res.err, `unknown log format "xml"`)
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearEnv(t)
	res := parseFlags(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, res.err, "read config file")
}

func TestRunExitCodes(t *testing.T) {
	clearEnv(t)
	require.Equal(t, 2, run([]string{"--engine", "oracle"}))
	require.Equal(t, 2, run([]string{"--no-such-flag"}))
	require.Equal(t, 0, run([]string{"--help"}))
}
