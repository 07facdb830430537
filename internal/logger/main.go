// Package logger configures the global zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelWriter splits log output by level, see WriteLevel.
type LevelWriter struct {
	io.Writer
	ErrorWriter io.Writer
	InfoWriter  io.Writer
	TraceWriter io.Writer
	WarnWriter  io.Writer
}

// WriteLevel writes trace to TraceWriter, warn to WarnWriter, error and above to
// ErrorWriter and everything else to InfoWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (n int, err error) {
	var w io.Writer

	switch {
	case l == zerolog.Disabled:
		return 0, nil
	case l == zerolog.TraceLevel:
		w = lw.TraceWriter
	case l == zerolog.WarnLevel:
		w = lw.WarnWriter
	case l > zerolog.WarnLevel:
		w = lw.ErrorWriter
	default:
		w = lw.InfoWriter
	}

	if w == nil {
		return len(p), nil
	}

	return w.Write(p) //nolint:wrapcheck
}

// Write implements io.Writer for events without level.
func (lw *LevelWriter) Write(p []byte) (int, error) {
	return lw.WriteLevel(zerolog.NoLevel, p)
}

// Init configures the global logger from cfg and registers the log counter with
// the default prometheus registerer. Without an enabled output nothing is logged.
func Init(cfg Log) error {
	return InitWithRegisterer(cfg, prometheus.DefaultRegisterer)
}

// InitWithRegisterer is Init with an explicit prometheus registerer.
func InitWithRegisterer(cfg Log, reg prometheus.Registerer) error {
	logLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("loglevel %s is not supported", cfg.LogLevel))
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	stack := logLevel == zerolog.TraceLevel
	if stack {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
	}

	zerolog.SetGlobalLevel(logLevel)
	zerolog.ErrorHandler = ErrorHandler

	var writers []io.Writer

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		fw, err := newRollingFiles(cfg.File)
		if err != nil {
			return err
		}

		writers = append(writers, fw)
	}

	lc := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(NewPrometheusHook(cfg.ServiceName, reg)).
		With().Timestamp().Str("app", cfg.AppName)

	switch {
	case cfg.ReportCaller && stack:
		lc = lc.Stack().Caller()
	case cfg.ReportCaller:
		lc = lc.Caller()
	}

	log.Logger = lc.Logger()

	return nil
}

func rolling(dir, name string, maxSize, maxAge, maxBackups int) io.Writer {
	if name == "" {
		return nil
	}

	return &lumberjack.Logger{
		Filename:   path.Join(dir, name),
		MaxSize:    maxSize,
		MaxAge:     maxAge,
		MaxBackups: maxBackups,
	}
}

// newRollingFiles creates the lumberjack backed file writers. Groups without a file name are dropped.
func newRollingFiles(cfg LogFile) (io.Writer, error) {
	if err := os.MkdirAll(cfg.Path, 0o750); err != nil { //nolint:mnd
		return nil, errors.Wrap(err, "can't create log directory "+cfg.Path)
	}

	return &LevelWriter{
		ErrorWriter: rolling(cfg.Path, cfg.ErrorLog, cfg.ErrorMaxSize, cfg.ErrorMaxAge, cfg.ErrorMaxBackups),
		InfoWriter:  rolling(cfg.Path, cfg.InfoLog, cfg.InfoMaxSize, cfg.InfoMaxAge, cfg.InfoMaxBackups),
		TraceWriter: rolling(cfg.Path, cfg.TraceLog, cfg.TraceMaxSize, cfg.TraceMaxAge, cfg.TraceMaxBackups),
		WarnWriter:  rolling(cfg.Path, cfg.WarnLog, cfg.WarnMaxSize, cfg.WarnMaxAge, cfg.WarnMaxBackups),
	}, nil
}

// NewConsoleWriter writes info and debug to stdout and the rest to stderr,
// optionally through a zerolog.ConsoleWriter.
func NewConsoleWriter(cfg Log) io.Writer {
	wrap := func(out io.Writer) io.Writer {
		if !cfg.Console.UseConsoleWriter {
			return out
		}

		return zerolog.ConsoleWriter{Out: out, TimeFormat: zerolog.TimeFieldFormat}
	}

	return &LevelWriter{
		ErrorWriter: wrap(os.Stderr),
		InfoWriter:  wrap(os.Stdout),
		TraceWriter: wrap(os.Stderr),
		WarnWriter:  wrap(os.Stderr),
	}
}
