package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey string

const correlationIDCtxKey contextKey = "correlation_id"

// CorrelationIDKey is the slog attribute key every log line carries.
const CorrelationIDKey = "correlation_id"

// WithCorrelationID attaches a correlation ID to ctx, generating one if id
// is empty. Nothing in this repository calls it: the server facade's debug
// lines carry an id only when the caller's ctx already holds one, and the
// engine worker's log lines carry none.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.New().String()
	}
	return context.WithValue(ctx, correlationIDCtxKey, id)
}

// CorrelationIDFromContext extracts the correlation ID, or "" if none.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDCtxKey).(string); ok {
		return id
	}
	return ""
}

// correlationHandler wraps a slog.Handler to stamp the correlation ID
// found on the record's context, if any.
type correlationHandler struct {
	handler slog.Handler
}

func (h *correlationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *correlationHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := CorrelationIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String(CorrelationIDKey, id))
	}
	return h.handler.Handle(ctx, r)
}

func (h *correlationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &correlationHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *correlationHandler) WithGroup(name string) slog.Handler {
	return &correlationHandler{handler: h.handler.WithGroup(name)}
}
