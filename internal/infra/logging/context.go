package logging

import (
	"context"

	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// WithCorrelationID stores the provided correlation identifier inside the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return ports.WithCorrelationID(ctx, id)
}

// GetCorrelationID retrieves the correlation identifier from the context, returning
// an empty string when none is present.
func GetCorrelationID(ctx context.Context) string {
	return ports.GetCorrelationID(ctx)
}

// GenerateCorrelationID creates a new correlation identifier. The CLI calls
// it once at startup and stores it in the root context, so every log line
// of one run carries the same id.
func GenerateCorrelationID() string {
	return ports.GenerateCorrelationID()
}
