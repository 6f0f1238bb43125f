package processor

import (
	"context"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// debugProcessor logs the message unchanged, grounded on
// original_source/processors/debug.py.
type debugProcessor struct {
	prefix string
	logger ports.Logger
}

// NewDebug returns a constructor closing over the shared component Logger,
// matching the Filter/Transform/External/Aggregate constructor shape
// (ports.ProcessorConstructor) while still getting a logger injected.
func NewDebug(logger ports.Logger) ports.ProcessorConstructor {
	return func(opts map[string]any) (ports.Processor, error) {
		prefix, _ := opts["prefix"].(string)
		if prefix == "" {
			prefix = DefaultDebugPrefix
		}
		if logger == nil {
			return nil, dcerrors.Configuration("debug processor requires a logger", nil)
		}
		return &debugProcessor{prefix: prefix, logger: logger}, nil
	}
}

// DefaultDebugPrefix mirrors routeconfig's default.
const DefaultDebugPrefix = "DEBUG"

func (d *debugProcessor) Process(ctx context.Context, msg message.Message) (message.Result, error) {
	d.logger.Info(ctx, d.prefix, "body", msg.Body, "metadata", msg.Metadata)
	return message.Keep(msg), nil
}
