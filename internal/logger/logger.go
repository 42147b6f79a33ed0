package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps the zap logger used across the settlement desk.
type Logger struct {
	*zap.Logger
}

// NewLogger creates a JSON logger at info level writing to stdout.
func NewLogger() (*Logger, error) {
	return NewLoggerWithConfig(Config{Level: "info", OutputPath: "stdout"})
}

// Config selects the level and sink of a Logger.
type Config struct {
	// Level is a zap level name: debug, info, warn or error.
	Level string
	// OutputPath is "stdout", "stderr" or a file path.
	OutputPath string
}

// NewLoggerWithConfig builds a production logger from cfg.
// File sinks get their parent directory created. The terminal UI uses a
// file sink so log lines never land on the screen it draws.
func NewLoggerWithConfig(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	output := cfg.OutputPath
	if output == "" {
		output = "stdout"
	}

	if output != "stdout" && output != "stderr" {
		if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
			return nil, err
		}
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{output}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{Logger: zapLogger}, nil
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l.Logger != nil {
		return l.Logger.Sync()
	}

	return nil
}
