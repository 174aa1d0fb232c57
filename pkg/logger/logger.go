package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/manzanit0/mapboxgeo/pkg/middleware"
)

// InitGlobalSlog installs a JSON logger tagged with the service name as the
// slog default.
func InitGlobalSlog(service, level string) {
	handler := NewContextJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level)})
	logger := slog.New(handler)
	logger = logger.With("service", service)
	slog.SetDefault(logger)
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ContextJSONHandler adds the request trace id, when present, to every
// record.
type ContextJSONHandler struct {
	jsonHandler slog.Handler
}

func NewContextJSONHandler(w io.Writer, opts *slog.HandlerOptions) *ContextJSONHandler {
	return &ContextJSONHandler{slog.NewJSONHandler(w, opts)}
}

func (h *ContextJSONHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.jsonHandler.Enabled(ctx, level)
}

func (h *ContextJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextJSONHandler{jsonHandler: h.jsonHandler.WithAttrs(attrs)}
}

func (h *ContextJSONHandler) WithGroup(name string) slog.Handler {
	return &ContextJSONHandler{jsonHandler: h.jsonHandler.WithGroup(name)}
}

func (h *ContextJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID := middleware.TraceIDFromContext(ctx); traceID != "" {
		r.AddAttrs(slog.String(string(middleware.CtxKeyTraceID), traceID))
	}

	return h.jsonHandler.Handle(ctx, r)
}
