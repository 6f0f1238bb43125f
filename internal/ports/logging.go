package ports

import (
	"context"

	"github.com/google/uuid"
)

// Logger is the engine's structured logging contract, grounded on the
// teacher's internal/ports/logging.go. All log calls are key/value pairs,
// must be safe for concurrent use, and should automatically enrich entries
// with a correlation ID when present in context. Common fields:
//   - correlation_id (UUIDv4, generated at CLI entry point)
//   - route / connector_type / processor_type
//   - duration_ms for timed operations
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, msg string, fields ...interface{})
	Error(ctx context.Context, msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

type correlationIDKey struct{}

// WithCorrelationID attaches the provided correlation ID to the context so
// downstream layers can emit correlated logs.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID extracts a correlation ID from context. It returns an
// empty string when none has been set — callers should treat that as
// "uncorrelated".
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateCorrelationID produces a new UUIDv4 string suitable for log
// correlation. The CLI entry point invokes this once per run; the engine
// does not generate per-message ids.
func GenerateCorrelationID() string {
	return uuid.NewString()
}
