package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
)

func TestParseLogLevel(t *testing.T) {
	gt.V(t, logging.ParseLogLevel("debug")).Equal(slog.LevelDebug)
	gt.V(t, logging.ParseLogLevel("WARNING")).Equal(slog.LevelWarn)
	gt.V(t, logging.ParseLogLevel("error")).Equal(slog.LevelError)
	gt.V(t, logging.ParseLogLevel("")).Equal(slog.LevelInfo)
	gt.V(t, logging.ParseLogLevel("verbose")).Equal(slog.LevelInfo)
}

func TestJSONLoggerRedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithFormat(slog.LevelInfo, &buf, logging.FormatJSON)

	logger.Info("login attempt", "email", "ana@example.com", "password", "hunter22")

	out := buf.String()
	gt.S(t, out).Contains("ana@example.com")
	gt.B(t, strings.Contains(out, "hunter22")).False()
}

func TestAutoFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithFormat(slog.LevelInfo, &buf, logging.FormatAuto)
	logger.Info("hello")
	gt.S(t, buf.String()).Contains(`"msg":"hello"`)
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithFormat(slog.LevelInfo, &buf, logging.FormatJSON)

	ctx := logging.With(context.Background(), logger)
	logging.From(ctx).Info("from context")
	gt.S(t, buf.String()).Contains("from context")

	gt.V(t, logging.From(context.Background())).Equal(logging.Default())
}
