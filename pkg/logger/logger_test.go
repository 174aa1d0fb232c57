package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manzanit0/mapboxgeo/pkg/logger"
	"github.com/manzanit0/mapboxgeo/pkg/middleware"
)

func TestContextJSONHandlerAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(logger.NewContextJSONHandler(&buf, nil)).With("service", "test")

	ctx := context.WithValue(context.Background(), middleware.CtxKeyTraceID, "2Dg3kQ0yFCM1fDwMdkHAb1FgMmS")
	l.InfoContext(ctx, "geocoded")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "geocoded", record["msg"])
	assert.Equal(t, "test", record["service"])
	assert.Equal(t, "2Dg3kQ0yFCM1fDwMdkHAb1FgMmS", record["trace_id"])
}

func TestContextJSONHandlerWithoutTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(logger.NewContextJSONHandler(&buf, nil))

	l.InfoContext(context.Background(), "geocoded")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.NotContains(t, record, "trace_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
}
