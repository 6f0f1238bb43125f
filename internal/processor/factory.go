// Package processor implements the Processor Chain of spec.md §4.3: a
// type-keyed constructor registry (Factory) plus the five built-in
// processors — Transform, Filter, External, Aggregate, Debug. Grounded on
// original_source/processors/factory.py (the Python processor factory)
// and the teacher's internal/infrastructure/plugin registration idiom,
// adapted to spec.md §4.3.6's case-insensitive type matching.
package processor

import (
	"strconv"
	"strings"
	"sync"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// Factory is a type→constructor registry keyed by a processor config's
// `type` field (spec.md §4.3.6). Unlike the Connector Manager, the factory
// is seeded once at startup with the five built-in types; Register exists
// mainly so tests and future processor types can extend it.
type Factory struct {
	mu    sync.RWMutex
	ctors map[string]ports.ProcessorConstructor
}

// NewFactory constructs a Factory with the five built-in processor types
// already registered.
func NewFactory(logger ports.Logger) *Factory {
	f := &Factory{ctors: make(map[string]ports.ProcessorConstructor)}
	f.Register("transform", NewTransform)
	f.Register("filter", NewFilter)
	f.Register("external", NewExternal)
	f.Register("aggregate", NewAggregate)
	f.Register("debug", NewDebug(logger))
	return f
}

// Register installs or replaces the constructor for typ (case-insensitive).
func (f *Factory) Register(typ string, ctor ports.ProcessorConstructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctors[strings.ToLower(typ)] = ctor
}

// Build constructs the processor named by opts["type"]. Unknown types are
// a CodeConfiguration DomainError (spec.md §4.3.6).
func (f *Factory) Build(opts map[string]any) (ports.Processor, error) {
	typ, _ := opts["type"].(string)
	normalized := strings.ToLower(typ)

	f.mu.RLock()
	ctor, ok := f.ctors[normalized]
	f.mu.RUnlock()
	if !ok {
		return nil, dcerrors.Configuration("unknown processor type \""+typ+"\"", nil)
	}
	return ctor(opts)
}

// BuildChain constructs an ordered processor chain from a list of option
// maps, stopping at the first construction failure.
func (f *Factory) BuildChain(configs []map[string]any) ([]ports.Processor, error) {
	chain := make([]ports.Processor, 0, len(configs))
	for i, cfg := range configs {
		proc, err := f.Build(cfg)
		if err != nil {
			return nil, dcerrors.Configuration("processors["+strconv.Itoa(i)+"]: "+err.Error(), nil)
		}
		chain = append(chain, proc)
	}
	return chain, nil
}
