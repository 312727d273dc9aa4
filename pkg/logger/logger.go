/*
Package logger is the process-wide zap logger.

Call Init once at start-up. Until then every helper is a safe no-op,
so packages can log from tests without any setup.

Request and invoice ids travel in the context (ContextWithRequestID,
ContextWithInvoiceID); FromContext and the GORM logger turn them into fields.
*/
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"invoicing/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *zap.Logger

// Init builds the global logger from the log section.
// Development defaults to console output, everything else to JSON.
func Init(cfg *config.LogConfig, env string) error {
	sink, err := newSink(cfg)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(newEncoder(cfg.Format, env), sink, zap.NewAtomicLevelAt(parseLevel(cfg.Level)))
	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return nil
}

func newEncoder(format, env string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	switch {
	case format == "json":
		return zapcore.NewJSONEncoder(encoderConfig)
	case format == "console", env == "development":
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return zapcore.NewJSONEncoder(encoderConfig)
	}
}

// newSink writes to stdout, or to a lumberjack-rotated file for output=file.
func newSink(cfg *config.LogConfig) (zapcore.WriteSyncer, error) {
	if cfg.Output != "file" {
		return zapcore.Lock(os.Stdout), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}), nil
}

func parseLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync() error {
	if log == nil {
		return nil
	}
	err := log.Sync()
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EBADF) {
		return nil
	}
	return err
}

func base() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// With returns a child logger, e.g. for a long-lived component.
func With(fields ...zap.Field) *zap.Logger {
	return base().With(fields...)
}

// FromContext returns the logger enriched with the request and invoice ids carried by ctx.
func FromContext(ctx context.Context) *zap.Logger {
	if fields := contextFields(ctx); len(fields) > 0 {
		return base().With(fields...)
	}
	return base()
}

func Debug(msg string, fields ...zap.Field) { base().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { base().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { base().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { base().Error(msg, fields...) }
