// Package logutil owns the process-wide zap logger used by wincall.
package logutil

import (
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig serializes log related config.
type LogConfig struct {
	log.Config
}

// NewLogConfig creates a LogConfig. An empty file name logs to stderr.
func NewLogConfig(level, format, file string) *LogConfig {
	c := &LogConfig{
		Config: log.Config{
			Level:  level,
			Format: format,
		},
	}
	if file != "" {
		c.File = log.FileLogConfig{Filename: file}
	}
	return c
}

// InitLogger initializes the global logger with cfg.
func InitLogger(cfg *LogConfig, opts ...zap.Option) error {
	opts = append(opts, zap.AddStacktrace(zapcore.FatalLevel))
	gl, props, err := log.InitLogger(&cfg.Config, opts...)
	if err != nil {
		return errors.Trace(err)
	}
	log.ReplaceGlobals(gl, props)
	return nil
}

// SetLevel changes the global logger's level at runtime.
func SetLevel(level string) error {
	l := zap.NewAtomicLevel()
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return errors.Trace(err)
	}
	log.SetLevel(l.Level())
	return nil
}

// Level returns the global logger's current level name.
func Level() string {
	return log.GetLevel().String()
}

// BgLogger returns the global logger. Until InitLogger runs it is
// pingcap/log's default stdout logger.
func BgLogger() *zap.Logger {
	return log.L()
}
