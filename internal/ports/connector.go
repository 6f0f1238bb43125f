// Package ports declares the capability interfaces a route is built from:
// Source, Destination, Processor, plus the cross-cutting Logger,
// EventPublisher, MetricsCollector, and ConfigLoader contracts consumed by
// the application layer. Following spec.md §9's design note, each capability
// is its own small interface — there is no shared connector base class for a
// component to partially implement.
package ports

import (
	"context"

	"github.com/dialogchain-go/dialogchain/internal/message"
)

// Source produces messages for a route. Receive blocks until a message is
// available, ctx is cancelled, or the source is exhausted (in which case it
// returns io.EOF-compatible semantics via a CodeConnector DomainError of kind
// permanent — see spec.md §7). Implementations must be safe to call Receive
// from a single goroutine only; the route supervisor never calls Receive
// concurrently with itself.
type Source interface {
	// Receive blocks for the next message. A transient failure (e.g. a
	// dropped TCP connection) should be reported as a CodeConnector error
	// with ConnectorKind transient so the route supervisor can retry.
	Receive(ctx context.Context) (message.Message, error)

	// Close releases any held resources (sockets, file handles, watchers).
	// Close must be idempotent.
	Close(ctx context.Context) error
}

// Destination accepts messages emitted by a route's processor chain. Send
// must respect ctx cancellation and report transient vs. permanent failure
// via dcerrors.ConnectorKind so the caller's retry policy can decide whether
// to retry.
type Destination interface {
	Send(ctx context.Context, msg message.Message) error
	Close(ctx context.Context) error
}

// Processor transforms, filters, or otherwise acts on a message as it moves
// through a route's chain. A Processor that wants to stop the message from
// continuing returns message.Dropped() rather than an error — drops are a
// normal outcome, not a failure (spec.md §4.3.2).
type Processor interface {
	Process(ctx context.Context, msg message.Message) (message.Result, error)
}

// ProcessorFunc adapts a plain function to the Processor interface, mirroring
// the teacher's handler-as-function idiom for lightweight adapters (e.g. in
// tests or for processors with no internal state).
type ProcessorFunc func(ctx context.Context, msg message.Message) (message.Result, error)

func (f ProcessorFunc) Process(ctx context.Context, msg message.Message) (message.Result, error) {
	return f(ctx, msg)
}

// Closer is implemented by processors that hold resources needing explicit
// release at route shutdown (e.g. Aggregate's pending flush timer). Not
// every Processor needs this; the route
// supervisor type-asserts for it rather than requiring every processor to
// implement a no-op Close.
type Closer interface {
	Close(ctx context.Context) error
}

// EmitFunc is invoked by a processor that produces output outside the call
// stack of its own Process call — notably Aggregate's deferred flush timer
// (spec.md §4.3.4). The route supervisor binds this to "run the remainder
// of the chain from this processor's position, then send to the
// destination", so an async flush rejoins the same pipeline a synchronous
// message would have followed.
type EmitFunc func(ctx context.Context, msg message.Message)

// EmitBinder is implemented by processors that need to push output
// downstream asynchronously. The route supervisor calls BindEmit once
// during route construction, before Start.
type EmitBinder interface {
	BindEmit(emit EmitFunc)
}

// SourceConstructor builds a Source from a normalized URI record's options.
// Registered per scheme in a connector.Manager.
type SourceConstructor func(ctx context.Context, opts map[string]any) (Source, error)

// DestinationConstructor builds a Destination from a normalized URI record's options.
type DestinationConstructor func(ctx context.Context, opts map[string]any) (Destination, error)

// ProcessorConstructor builds a Processor from a processor config's options.
// Registered per processor type in a processor.Factory.
type ProcessorConstructor func(opts map[string]any) (Processor, error)
