package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N2Core/N2Identity/internal/logger"
)

func TestLogger(t *testing.T) {
	type testCase struct {
		name             string
		cfg              logger.Log
		shouldHaveOutPut bool
		outPutIsJSON     bool
	}

	testCases := []testCase{
		{
			name: "no logger enabled log level not set",
			cfg: logger.Log{
				ServiceName: "test",
				AppName:     "test",
			},
		},
		{
			name: "console enabled log level info",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
		{
			name: "console writer enabled",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			shouldHaveOutPut: true,
		},
		{
			name: "trace level with caller expect json stack",
			cfg: logger.Log{
				LogLevel:     "trace",
				ServiceName:  "test",
				AppName:      "test",
				ReportCaller: true,
				Console:      logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureOutput(t, tc.cfg)

			if !tc.shouldHaveOutPut {
				assert.Empty(t, out)
				return
			}

			require.NotEmpty(t, out)

			if tc.outPutIsJSON {
				for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
					var event map[string]any
					require.NoError(t, json.Unmarshal([]byte(line), &event), "expected json output but got: %s", line)
					assert.Equal(t, "test", event["app"])
				}
			}
		})
	}
}

func TestInitErrors(t *testing.T) {
	reg := prometheus.NewRegistry()

	err := logger.InitWithRegisterer(logger.Log{LogLevel: "loud", ServiceName: "s", AppName: "a"}, reg)
	require.Error(t, err)

	err = logger.InitWithRegisterer(logger.Log{LogLevel: "info", AppName: "a"}, reg)
	require.ErrorIs(t, err, logger.ErrServiceNameIsEmpty)

	err = logger.InitWithRegisterer(logger.Log{LogLevel: "info", ServiceName: "s"}, reg)
	require.ErrorIs(t, err, logger.ErrAppNameIsEmpty)
}

func TestRollingFiles(t *testing.T) {
	dir := t.TempDir()

	err := logger.InitWithRegisterer(logger.Log{
		LogLevel:    "info",
		ServiceName: "test",
		AppName:     "test",
		File: logger.LogFile{
			Enabled:  true,
			Path:     dir,
			InfoLog:  "info.log",
			ErrorLog: "error.log",
		},
	}, prometheus.NewRegistry())
	require.NoError(t, err)

	log.Info().Msg("to info file")
	log.Error().Msg("to error file")
	log.Warn().Msg("no warn file configured")

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "to info file")
	assert.NotContains(t, string(info), "to error file")

	errs, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errs), "to error file")
}

func TestPrometheusHook(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	reg := prometheus.NewRegistry()
	hook := logger.NewPrometheusHook("svc", reg)

	l := zerolog.New(io.Discard).Hook(hook)
	l.Warn().Msg("one")
	l.Warn().Msg("two")
	l.Error().Msg("three")

	again := logger.NewPrometheusHook("svc", reg)
	l2 := zerolog.New(io.Discard).Hook(again)
	l2.Warn().Msg("four")

	count, err := testutil.GatherAndCount(reg, "log_statements_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func alwaysErrFunc() error {
	return errors.New("a test error") //nolint:goerr113
}

func captureOutput(t *testing.T, cfg logger.Log) string {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	os.Stderr = w

	err = logger.InitWithRegisterer(cfg, prometheus.NewRegistry())
	if err != nil {
		t.Error(err)
	}

	log.Info().Msg("this info message should be seen...")
	log.Error().Err(alwaysErrFunc()).Msg("this err message should be seen...")
	log.Trace().Err(alwaysErrFunc()).Msg("this trace message should be seen...")

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr

	return <-outC
}
