// Package connector implements the Connector Manager of spec.md §4.2: a
// registry of source/destination constructors keyed by URI scheme, plus a
// set of built-in connectors. Grounded on the teacher's
// internal/infrastructure/plugin.Registry (mutex-guarded map, sorted
// List) and on original_source/engine/connector.py's ConnectorManager,
// adapted to "idempotent override allowed" registration semantics instead
// of the teacher's "duplicate registration is an error" policy — spec.md
// §4.2 explicitly calls registration idempotent.
package connector

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/ports"
	"github.com/dialogchain-go/dialogchain/internal/uriconfig"
)

// Manager is the registry of source/destination constructors described by
// spec.md §4.2. The zero value is not usable; construct with NewManager.
type Manager struct {
	mu          sync.RWMutex
	sources     map[string]ports.SourceConstructor
	destination map[string]ports.DestinationConstructor
	opened      []closer
}

type closer interface {
	Close(ctx context.Context) error
}

// NewManager constructs an empty Manager. Callers normally follow with
// RegisterBuiltins to install the standard scheme set.
func NewManager() *Manager {
	return &Manager{
		sources:     make(map[string]ports.SourceConstructor),
		destination: make(map[string]ports.DestinationConstructor),
	}
}

// RegisterSource installs or replaces the constructor for scheme. Per
// spec.md §4.2, overriding an existing registration is allowed, not an
// error — later registrations win.
func (m *Manager) RegisterSource(scheme string, ctor ports.SourceConstructor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[strings.ToLower(scheme)] = ctor
}

// RegisterDestination installs or replaces the constructor for scheme.
func (m *Manager) RegisterDestination(scheme string, ctor ports.DestinationConstructor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destination[strings.ToLower(scheme)] = ctor
}

// RegisteredSourceSchemes returns the currently registered source schemes,
// sorted, for diagnostics (e.g. the CLI's `routes` subcommand).
func (m *Manager) RegisteredSourceSchemes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.sources)
}

// RegisteredDestinationSchemes returns the currently registered destination
// schemes, sorted.
func (m *Manager) RegisteredDestinationSchemes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedDestKeys(m.destination)
}

// CreateSource resolves rec's scheme and invokes the registered
// constructor. A constructor failure that is already a DomainError is
// returned unchanged; any other failure is wrapped in a permanent
// CodeConnector DomainError. An unregistered scheme is a
// CodeConfiguration error (fatal at startup).
func (m *Manager) CreateSource(ctx context.Context, rec uriconfig.Record) (ports.Source, error) {
	m.mu.RLock()
	ctor, ok := m.sources[strings.ToLower(rec.Scheme)]
	m.mu.RUnlock()
	if !ok {
		return nil, dcerrors.Configuration("unknown source scheme \""+rec.Scheme+"\"", nil)
	}

	opts := recordToOptions(rec)
	src, err := ctor(ctx, opts)
	if err != nil {
		if de, ok := dcerrors.As(err); ok {
			return nil, de
		}
		return nil, dcerrors.Connector(dcerrors.ConnectorPermanent, "failed to construct source \""+rec.Scheme+"\"", err)
	}

	m.mu.Lock()
	m.opened = append(m.opened, src)
	m.mu.Unlock()

	return src, nil
}

// CreateDestination is the destination-side counterpart of CreateSource.
func (m *Manager) CreateDestination(ctx context.Context, rec uriconfig.Record) (ports.Destination, error) {
	m.mu.RLock()
	ctor, ok := m.destination[strings.ToLower(rec.Scheme)]
	m.mu.RUnlock()
	if !ok {
		return nil, dcerrors.Configuration("unknown destination scheme \""+rec.Scheme+"\"", nil)
	}

	opts := recordToOptions(rec)
	dst, err := ctor(ctx, opts)
	if err != nil {
		if de, ok := dcerrors.As(err); ok {
			return nil, de
		}
		return nil, dcerrors.Connector(dcerrors.ConnectorPermanent, "failed to construct destination \""+rec.Scheme+"\"", err)
	}

	m.mu.Lock()
	m.opened = append(m.opened, dst)
	m.mu.Unlock()

	return dst, nil
}

// CloseAll releases any pool-level state the manager itself is tracking
// (spec.md §4.2's close-all). Per-connector closing is still each route's
// own responsibility at stop time; CloseAll additionally sweeps any
// connector the manager constructed that the caller never explicitly
// tracked, so process-wide shutdown cannot leak a handle.
func (m *Manager) CloseAll(ctx context.Context) error {
	m.mu.Lock()
	opened := m.opened
	m.opened = nil
	m.mu.Unlock()

	var firstErr error
	for _, c := range opened {
		if err := c.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func recordToOptions(rec uriconfig.Record) map[string]any {
	opts := make(map[string]any, len(rec.Options)+6)
	for k, v := range rec.Options {
		opts[k] = v
	}
	if rec.Host != "" {
		opts["host"] = rec.Host
	}
	if rec.Netloc != "" {
		opts["netloc"] = rec.Netloc
	}
	if rec.Port != 0 {
		opts["port"] = rec.Port
	}
	if rec.Username != "" {
		opts["username"] = rec.Username
	}
	if rec.Password != "" {
		opts["password"] = rec.Password
	}
	opts["path"] = rec.Path
	return opts
}

func sortedKeys(m map[string]ports.SourceConstructor) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedDestKeys(m map[string]ports.DestinationConstructor) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
