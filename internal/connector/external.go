package connector

import (
	"context"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// The rtsp/imap/smtp connectors are external collaborators per spec.md §1
// ("Concrete source/destination implementations beyond the abstract
// contract ... specified only by the interface the core consumes"). These
// constructors document the capability contract each real adapter must
// satisfy and fail loudly with a permanent CodeConnector error until a
// genuine implementation is wired in, rather than silently pretending to
// work. Registering them (instead of leaving the scheme unbound) lets
// config validation distinguish "recognized but not yet implemented" from
// "unknown scheme", per spec.md §4.2's built-in scheme list.

// NewUnimplementedSource returns a SourceConstructor for a documented
// out-of-scope source scheme.
func NewUnimplementedSource(scheme string) ports.SourceConstructor {
	return func(_ context.Context, _ map[string]any) (ports.Source, error) {
		return nil, dcerrors.Connector(dcerrors.ConnectorPermanent, scheme+" source is an external collaborator and has no built-in implementation", nil)
	}
}

// NewUnimplementedDestination returns a DestinationConstructor for a
// documented out-of-scope destination scheme.
func NewUnimplementedDestination(scheme string) ports.DestinationConstructor {
	return func(_ context.Context, _ map[string]any) (ports.Destination, error) {
		return nil, dcerrors.Connector(dcerrors.ConnectorPermanent, scheme+" destination is an external collaborator and has no built-in implementation", nil)
	}
}
