package connector

import (
	"context"

	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// logDestination writes each message through the component Logger port,
// grounded on original_source/engine/connector.py's log destination (the
// simplest destination: "print the message"). It never fails a Send, since
// a logging sink has no transport to retry.
type logDestination struct {
	logger ports.Logger
}

// NewLogDestination returns a constructor bound to logger, so the manager's
// built-in registration can close over the component's shared Logger
// instance.
func NewLogDestination(logger ports.Logger) ports.DestinationConstructor {
	return func(_ context.Context, _ map[string]any) (ports.Destination, error) {
		return &logDestination{logger: logger}, nil
	}
}

func (d *logDestination) Send(ctx context.Context, msg message.Message) error {
	d.logger.Info(ctx, "message", "body", msg.Body, "metadata", msg.Metadata)
	return nil
}

func (d *logDestination) Close(_ context.Context) error { return nil }
