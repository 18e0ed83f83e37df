// Package logging builds the zap logger shared by every command.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level and destination of the logger.
type Options struct {
	// Level is a zap level name such as "info" or "debug".
	Level string
	// Verbose forces debug logging regardless of Level.
	Verbose bool
	// Path sends logs to a file instead of stderr. The TUI uses this so
	// log lines do not land on the screen.
	Path string
}

// New builds a production JSON logger.
func New(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	if opts.Path != "" {
		config.OutputPaths = []string{opts.Path}
		config.ErrorOutputPaths = []string{opts.Path}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
