// Package gorm routes gorm's statement and error logging through zerolog.
package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
)

// Logger implements gorm's logger.Interface on top of a zerolog logger.
type Logger struct {
	SlowThreshold time.Duration
	level         gormlogger.LogLevel
	log           *zerolog.Logger
}

// New creates a gorm logger writing to the global zerolog logger.
// In dev mode every statement is traced.
func New(devMode bool) *Logger {
	l := &Logger{
		SlowThreshold: 200 * time.Millisecond, //nolint:mnd
		level:         gormlogger.Warn,
	}

	if devMode {
		l.level = gormlogger.Info
	}

	return l
}

// WithLogger uses zl instead of the global logger.
func (l *Logger) WithLogger(zl *zerolog.Logger) *Logger {
	out := *l
	out.log = zl

	return &out
}

func (l *Logger) logger() *zerolog.Logger {
	if l.log != nil {
		return l.log
	}

	return &log.Logger
}

// LogMode implements logger.Interface.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	out := *l
	out.level = level

	return &out
}

// Info implements logger.Interface.
func (l *Logger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.logger().Info().Str("component", "gorm").Msgf(msg, args...)
	}
}

// Warn implements logger.Interface.
func (l *Logger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.logger().Warn().Str("component", "gorm").Msgf(msg, args...)
	}
}

// Error implements logger.Interface.
func (l *Logger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.logger().Error().Str("component", "gorm").Msgf(msg, args...)
	}
}

// Trace implements logger.Interface. Record-not-found is not an error here,
// the controllers map it to their own sentinels.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		l.logger().Error().Err(err).Str("component", "gorm").
			Dur("elapsed", elapsed).Int64("rows", rows).Msg(sql)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger().Warn().Str("component", "gorm").
			Dur("elapsed", elapsed).Int64("rows", rows).Msgf("slow sql: %s", sql)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.logger().Debug().Str("component", "gorm").
			Dur("elapsed", elapsed).Int64("rows", rows).Msg(sql)
	}
}
