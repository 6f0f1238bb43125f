package processor

import (
	"context"

	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// noopLogger is a test double satisfying ports.Logger, shared across this
// package's test files.
type noopLogger struct {
	infoCalls int
}

func (l *noopLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {}
func (l *noopLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.infoCalls++
}
func (l *noopLogger) Warn(ctx context.Context, msg string, fields ...interface{})  {}
func (l *noopLogger) Error(ctx context.Context, msg string, fields ...interface{}) {}
func (l *noopLogger) With(fields ...interface{}) ports.Logger                     { return l }
