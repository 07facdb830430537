// Package gormlog routes gorm's logger through zerolog.
package gormlog

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
)

// Logger implements gormlogger.Interface on top of a zerolog logger.
//
// gorm levels map to zerolog levels: Info and plain SQL traces are debug events,
// slow queries are warnings and failed queries are errors.
type Logger struct {
	log           zerolog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// LogLevel maps the zerolog global level to the closest gorm level.
func LogLevel(level zerolog.Level) gormlogger.LogLevel {
	switch {
	case level <= zerolog.DebugLevel:
		return gormlogger.Info
	case level <= zerolog.WarnLevel:
		return gormlogger.Warn
	case level <= zerolog.PanicLevel:
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}

// New returns a gorm logger writing through the global zerolog logger at the current global level.
// Queries slower than slowThreshold are logged as warnings, zero disables slow query logging.
func New(slowThreshold time.Duration) gormlogger.Interface {
	return NewLogger(log.Logger, LogLevel(zerolog.GlobalLevel()), slowThreshold)
}

// NewLogger returns a gorm logger writing to l.
func NewLogger(l zerolog.Logger, level gormlogger.LogLevel, slowThreshold time.Duration) *Logger {
	return &Logger{
		log:           l.With().Str("component", "gorm").Logger(),
		level:         level,
		slowThreshold: slowThreshold,
	}
}

// LogMode implements gormlogger.Interface.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	out := *l
	out.level = level

	return &out
}

// Info implements gormlogger.Interface.
func (l *Logger) Info(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.log.Debug().Msgf(msg, data...)
	}
}

// Warn implements gormlogger.Interface.
func (l *Logger) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Warn().Msgf(msg, data...)
	}
}

// Error implements gormlogger.Interface.
func (l *Logger) Error(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.log.Error().Msgf(msg, data...)
	}
}

// Trace implements gormlogger.Interface. Record not found is not an error.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		l.log.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.Warn().Dur("elapsed", elapsed).Dur("threshold", l.slowThreshold).
			Int64("rows", rows).Str("sql", sql).Msg("slow query")
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.log.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}
