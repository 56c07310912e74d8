// Package logger holds the process-wide zap logger.
//
// The interactive editor owns the terminal, so logs never go to stdout or
// stderr while it runs: they are written to a file, or dropped.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/mathclip/internal/errors"
)

var (
	// Logger is the global logger. It is a no-op until Initialize runs.
	Logger *zap.SugaredLogger
	// JSONOutput reports whether the active logger writes JSON lines.
	JSONOutput bool
)

func init() {
	// Initialize with a safe no-op logger at package load time
	Logger = zap.NewNop().Sugar()
}

// Config selects where and how much to log.
type Config struct {
	// File is the log path. Empty disables logging.
	File string
	// Level is a zap level name: debug, info, warn, error.
	Level string
	// JSON selects the JSON encoder instead of the console one.
	JSON bool
}

// Initialize replaces the global logger according to cfg.
func Initialize(cfg Config) error {
	if cfg.File == "" {
		Logger = zap.NewNop().Sugar()
		JSONOutput = false
		return nil
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return errors.WithHint(errors.Wrapf(err, "log level %q", cfg.Level),
			"use one of debug, info, warn, error")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return errors.Wrap(err, "create log directory")
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrap(err, "open log file")
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encoder := zapcore.NewConsoleEncoder(encCfg)
	if cfg.JSON {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(f), level)
	Logger = zap.New(core).Sugar()
	JSONOutput = cfg.JSON
	return nil
}

// DefaultFile returns the log path used when none is configured.
func DefaultFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mathclip", "mathclip.log")
}

// Named returns a child of the global logger.
func Named(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
