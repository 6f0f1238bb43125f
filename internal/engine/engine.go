// Package engine implements the Engine of spec.md §4.5: construction of
// every configured route, OS-signal-driven shutdown, and a process-message
// operation for programmatic/test ingress. Grounded on
// original_source/engine/core.py's DialogChainEngine and the teacher's
// cmd/streamy/main.go wiring style.
package engine

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dialogchain-go/dialogchain/internal/connector"
	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
	"github.com/dialogchain-go/dialogchain/internal/processor"
	"github.com/dialogchain-go/dialogchain/internal/route"
	"github.com/dialogchain-go/dialogchain/internal/routeconfig"
)

// DefaultHealthLogInterval is how often Run logs a one-line route-state
// summary while idling, per SPEC_FULL §12 (grounded on engine/core.py's
// `while self.running: await asyncio.sleep(1)` idle loop, widened from 1s
// to a configurable interval since a per-second log line is noisy for a
// long-running service).
const DefaultHealthLogInterval = 30 * time.Second

// Engine owns every configured route's lifecycle plus the shared
// connector/processor registries they were built from.
type Engine struct {
	connMgr     *connector.Manager
	procFactory *processor.Factory

	logger  ports.Logger
	metrics ports.MetricsCollector
	events  ports.EventPublisher

	healthLogInterval time.Duration

	mu      sync.Mutex
	routes  []*route.Route
	byName  map[string]*route.Route
	running bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger injects a logger, propagated to every route the engine builds.
func WithLogger(logger ports.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics injects a metrics collector, propagated to every route.
func WithMetrics(metrics ports.MetricsCollector) Option {
	return func(e *Engine) { e.metrics = metrics }
}

// WithEvents injects an event publisher, propagated to every route.
func WithEvents(events ports.EventPublisher) Option {
	return func(e *Engine) { e.events = events }
}

// WithHealthLogInterval overrides DefaultHealthLogInterval.
func WithHealthLogInterval(d time.Duration) Option {
	return func(e *Engine) { e.healthLogInterval = d }
}

// New constructs an Engine and every enabled route named in cfg. Per
// spec.md §4.5, a per-route construction failure is logged and does not
// prevent the remaining routes from loading — mirroring
// original_source/engine/core.py::_load_routes's per-route try/except.
func New(cfg *routeconfig.EngineConfig, connMgr *connector.Manager, procFactory *processor.Factory, opts ...Option) *Engine {
	e := &Engine{
		connMgr:           connMgr,
		procFactory:       procFactory,
		healthLogInterval: DefaultHealthLogInterval,
		byName:            make(map[string]*route.Route),
	}
	for _, opt := range opts {
		opt(e)
	}

	if cfg == nil {
		return e
	}

	for _, rc := range cfg.Routes {
		if !rc.Enabled {
			e.logf(context.Background(), "info", fmt.Sprintf("skipping disabled route %q", rc.Name))
			continue
		}
		r, err := route.New(rc, connMgr, procFactory,
			route.WithLogger(e.logger),
			route.WithMetrics(e.metrics),
			route.WithEvents(e.events),
		)
		if err != nil {
			e.logf(context.Background(), "error", fmt.Sprintf("failed to load route %q: %v", rc.Name, err))
			continue
		}
		e.routes = append(e.routes, r)
		e.byName[rc.Name] = r
		e.logf(context.Background(), "info", fmt.Sprintf("loaded route: %s", rc.Name))
	}

	return e
}

// Routes returns the successfully constructed routes, in load order.
func (e *Engine) Routes() []*route.Route {
	return append([]*route.Route(nil), e.routes...)
}

// Start launches every constructed route's supervisor. Start is idempotent.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		e.logf(ctx, "warn", "engine is already running")
		return
	}
	e.running = true

	e.logf(ctx, "info", "starting dialogchain engine")
	for _, r := range e.routes {
		r.Start(ctx)
	}
	e.publish(ctx, ports.EventEngineStarted, map[string]interface{}{"routes": len(e.routes)})
}

// Stop stops every route in reverse start order, per spec.md §4.5. Stop is
// idempotent; per-route stop failures are logged, not propagated.
func (e *Engine) Stop(ctx context.Context) {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.mu.Unlock()

	e.logf(ctx, "info", "stopping dialogchain engine")
	for i := len(e.routes) - 1; i >= 0; i-- {
		r := e.routes[i]
		if err := r.Stop(ctx); err != nil {
			e.logf(ctx, "error", fmt.Sprintf("error stopping route %q: %v", r.Name(), err))
		}
	}
	if err := e.connMgr.CloseAll(ctx); err != nil {
		e.logf(ctx, "error", fmt.Sprintf("error closing connector manager: %v", err))
	}
	e.publish(ctx, ports.EventEngineStopped, map[string]interface{}{"routes": len(e.routes)})
}

// Run starts every route, blocks until ctx is cancelled or an INT/TERM
// signal arrives, then stops every route. It periodically logs a one-line
// route-state summary while idling, per SPEC_FULL §12.
func (e *Engine) Run(ctx context.Context) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	e.Start(sigCtx)
	defer e.Stop(context.Background())

	ticker := time.NewTicker(e.healthLogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sigCtx.Done():
			e.logf(context.Background(), "info", "shutting down")
			return nil
		case <-ticker.C:
			e.logf(context.Background(), "info", e.healthSummary())
		}
	}
}

func (e *Engine) healthSummary() string {
	return fmt.Sprintf("health: %d routes loaded", len(e.routes))
}

// ProcessMessage locates the named route and feeds payload directly into
// its chain and destination, bypassing the source (spec.md §4.5). It
// returns the final result, including a dropped result if a processor
// discarded the message.
func (e *Engine) ProcessMessage(ctx context.Context, routeName string, payload any) (message.Result, error) {
	e.mu.Lock()
	r, ok := e.byName[routeName]
	e.mu.Unlock()
	if !ok {
		return message.Result{}, dcerrors.Configuration(fmt.Sprintf("route not found: %q", routeName), nil)
	}
	return r.ProcessAndDeliver(ctx, message.New(payload))
}

func (e *Engine) logf(ctx context.Context, level, msg string) {
	if e.logger == nil {
		return
	}
	switch level {
	case "warn":
		e.logger.Warn(ctx, msg)
	case "error":
		e.logger.Error(ctx, msg)
	default:
		e.logger.Info(ctx, msg)
	}
}

func (e *Engine) publish(ctx context.Context, eventType string, payload map[string]interface{}) {
	if e.events == nil {
		return
	}
	if err := e.events.Publish(ctx, engineEvent{eventType: eventType, payload: payload}); err != nil && e.logger != nil {
		e.logger.Warn(ctx, "failed to publish engine event", "event_type", eventType, "error", err)
	}
}

type engineEvent struct {
	eventType string
	payload   interface{}
}

func (ev engineEvent) EventType() string    { return ev.eventType }
func (ev engineEvent) Payload() interface{} { return ev.payload }
