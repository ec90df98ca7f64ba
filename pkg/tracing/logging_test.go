package tracing_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/gradlepin/pkg/tracing"
)

func TestLoggingTracer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tr := tracing.NewLoggingTracer(logger)

	ticks := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, int(1500*time.Microsecond), time.UTC),
	}
	tr.SetClock(func() time.Time {
		now := ticks[0]
		ticks = ticks[1:]

		return now
	})

	span := tr.StartSpan(context.Background(), "converge.app")
	span.SetBaggageItem("status", "patched")
	span.Finish()

	rec := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))

	assert.Equal(t, "trace", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "converge.app", rec["operation_name"])
	assert.InDelta(t, 1.5, rec["time_ms"], 0.0001)
	assert.Equal(t, "patched", rec["status"])
}

func TestLoggingTracerLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	tracing.NewLoggingTracer(logger).StartSpan(context.Background(), "x").Finish()

	assert.Empty(t, buf.String())
}
