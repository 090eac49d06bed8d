// Package logging provides the structured operator log used across vox.
// Entries go to a rotated JSON file and, unless suppressed, to the console.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Fields carries structured details for a log entry.
type Fields map[string]interface{}

// Logger is the logging surface used by every vox component.
// Module is a short lowercase tag naming the emitting component.
type Logger interface {
	Debug(module, message string, details Fields)
	Info(module, message string, details Fields)
	Warn(module, message string, details Fields)
	Error(module, message string, details Fields)
	Sync() error
}

// Options configures a ZapLogger.
type Options struct {
	// FilePath is the rotated JSON log file. Empty disables the file core.
	FilePath string
	// Level is the minimum level: debug, info, warn or error.
	Level string
	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int
	// Console enables the human-readable console core.
	Console bool
}

// ZapLogger implements Logger on top of zap.
type ZapLogger struct {
	logger *zap.Logger
}

// New creates a ZapLogger from opts.
func New(opts Options) (*ZapLogger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var cores []zapcore.Core

	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}
		rotator := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    maxSize,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		}

		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.MessageKey = "message"
		encoderConfig.LevelKey = "level"
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(rotator),
			level,
		))
	}

	if opts.Console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stderr),
			level,
		))
	}

	if len(cores) == 0 {
		return &ZapLogger{logger: zap.NewNop()}, nil
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &ZapLogger{logger: l}, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func (l *ZapLogger) fields(module string, details Fields) []zap.Field {
	out := []zap.Field{zap.String("module", module)}
	if len(details) > 0 {
		out = append(out, zap.Any("details", map[string]interface{}(details)))
	}
	if err, ok := details["error"].(error); ok {
		out = append(out, zap.Error(err))
	}
	return out
}

// Debug logs at debug level.
func (l *ZapLogger) Debug(module, message string, details Fields) {
	l.logger.Debug(message, l.fields(module, details)...)
}

// Info logs at info level.
func (l *ZapLogger) Info(module, message string, details Fields) {
	l.logger.Info(message, l.fields(module, details)...)
}

// Warn logs at warn level.
func (l *ZapLogger) Warn(module, message string, details Fields) {
	l.logger.Warn(message, l.fields(module, details)...)
}

// Error logs at error level.
func (l *ZapLogger) Error(module, message string, details Fields) {
	l.logger.Error(message, l.fields(module, details)...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

// Zap exposes the underlying zap logger.
func (l *ZapLogger) Zap() *zap.Logger {
	return l.logger
}

type nopLogger struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, string, Fields) {}
func (nopLogger) Info(string, string, Fields)  {}
func (nopLogger) Warn(string, string, Fields)  {}
func (nopLogger) Error(string, string, Fields) {}
func (nopLogger) Sync() error                  { return nil }

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}
