package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// GormOptions mirrors the SQL logging keys of the database config section.
type GormOptions struct {
	SlowThreshold time.Duration // 0 disables slow query warnings
	LogNotFound   bool          // false: a missing row is a normal outcome, logged at debug
}

// GormLogger sends GORM output to zap, tagged with the request and invoice ids
// found in the statement's context.
type GormLogger struct {
	level gormlogger.LogLevel
	opts  GormOptions
	zap   *zap.Logger
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// NewGormLogger binds to the global logger as it is at call time, so call it after Init.
func NewGormLogger(level gormlogger.LogLevel, opts GormOptions) *GormLogger {
	return &GormLogger{
		level: level,
		opts:  opts,
		zap:   base().With(zap.String("component", "gorm")),
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, args)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, args)
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, args)
}

func (l *GormLogger) printf(ctx context.Context, min gormlogger.LogLevel, lvl zapcore.Level, msg string, args []interface{}) {
	if l.level < min {
		return
	}
	l.withContext(ctx).Log(lvl, fmt.Sprintf(msg, args...))
}

// Trace reports one statement: failures at error, slow statements at warn,
// everything else at info when the level allows it.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	lvl, msg, ok := l.classify(elapsed, err)
	if !ok {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.withContext(ctx).Log(lvl, msg, fields...)
}

func (l *GormLogger) classify(elapsed time.Duration, err error) (zapcore.Level, string, bool) {
	switch {
	case err != nil && errors.Is(err, gormlogger.ErrRecordNotFound) && !l.opts.LogNotFound:
		return zapcore.DebugLevel, "Record not found", l.level >= gormlogger.Info
	case err != nil:
		return zapcore.ErrorLevel, "Database operation failed", l.level >= gormlogger.Error
	case l.opts.SlowThreshold > 0 && elapsed > l.opts.SlowThreshold:
		return zapcore.WarnLevel, "Slow SQL query", l.level >= gormlogger.Warn
	default:
		return zapcore.InfoLevel, "SQL query executed", l.level >= gormlogger.Info
	}
}

func (l *GormLogger) withContext(ctx context.Context) *zap.Logger {
	if fields := contextFields(ctx); len(fields) > 0 {
		return l.zap.With(fields...)
	}
	return l.zap
}
