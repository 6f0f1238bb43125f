// Package route implements the Route of spec.md §4.4: a single supervisory
// goroutine that pulls messages from a source, runs them through a
// processor chain, and delivers the result to a destination, with retry and
// error-handler policies applied at each stage. Grounded on
// original_source/engine/route.py's Route (_run_loop, _safe_receive,
// _safe_send, _handle_error) and the teacher's
// internal/infrastructure/engine/executor.go for the Go idiom: functional
// options, metrics/event hooks threaded through every stage, DomainError
// normalization at the boundary.
package route

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dialogchain-go/dialogchain/internal/connector"
	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
	"github.com/dialogchain-go/dialogchain/internal/processor"
	"github.com/dialogchain-go/dialogchain/internal/routeconfig"
)

// Route connects one source to one destination through an ordered
// processor chain, applying spec.md §3's retry/timeout/error-handler
// policy to every message it moves.
type Route struct {
	name string

	source      ports.Source
	processors  []ports.Processor
	destination ports.Destination

	retryAttempts int
	retryDelay    time.Duration
	timeout       time.Duration // 0 means "no deadline"

	errorHandlers []routeconfig.ErrorHandler
	connMgr       *connector.Manager

	logger  ports.Logger
	metrics ports.MetricsCollector
	events  ports.EventPublisher

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Option configures a Route at construction time, mirroring the teacher's
// ExecutorOption idiom.
type Option func(*Route)

// WithLogger injects a logger.
func WithLogger(logger ports.Logger) Option {
	return func(r *Route) { r.logger = logger }
}

// WithMetrics injects a metrics collector.
func WithMetrics(metrics ports.MetricsCollector) Option {
	return func(r *Route) { r.metrics = metrics }
}

// WithEvents injects an event publisher.
func WithEvents(events ports.EventPublisher) Option {
	return func(r *Route) { r.events = events }
}

// New builds a Route from a decoded RouteConfig, resolving its source,
// processor chain, and destination through the supplied managers. This
// mirrors original_source/engine/route.py::Route.from_config, one call per
// stage instead of the Python version's inline construction.
func New(cfg routeconfig.RouteConfig, connMgr *connector.Manager, procFactory *processor.Factory, opts ...Option) (*Route, error) {
	ctx := context.Background()

	srcRec, err := cfg.Source.Resolve()
	if err != nil {
		return nil, dcerrors.Configuration(fmt.Sprintf("route %q: invalid source", cfg.Name), err).WithRoute(cfg.Name)
	}
	src, err := connMgr.CreateSource(ctx, srcRec)
	if err != nil {
		return nil, annotateRoute(err, cfg.Name)
	}

	dstRec, err := cfg.Destination.Resolve()
	if err != nil {
		return nil, dcerrors.Configuration(fmt.Sprintf("route %q: invalid destination", cfg.Name), err).WithRoute(cfg.Name)
	}
	dst, err := connMgr.CreateDestination(ctx, dstRec)
	if err != nil {
		return nil, annotateRoute(err, cfg.Name)
	}

	chainOpts := make([]map[string]any, len(cfg.Processors))
	for i, p := range cfg.Processors {
		chainOpts[i] = p.Options()
	}
	chain, err := procFactory.BuildChain(chainOpts)
	if err != nil {
		return nil, annotateRoute(err, cfg.Name)
	}

	var timeout time.Duration
	if cfg.Timeout != nil {
		timeout = time.Duration(*cfg.Timeout * float64(time.Second))
	}

	r := &Route{
		name:          cfg.Name,
		source:        src,
		processors:    chain,
		destination:   dst,
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    time.Duration(cfg.RetryDelay * float64(time.Second)),
		timeout:       timeout,
		errorHandlers: cfg.ErrorHandlers,
		connMgr:       connMgr,
	}
	for _, opt := range opts {
		opt(r)
	}

	// Bind every EmitBinder-implementing processor (currently only
	// Aggregate) to "run the remainder of the chain from here, then send to
	// the destination" — spec.md §5's requirement that a deferred flush
	// rejoins the same pipeline a synchronous message would have followed.
	for i, proc := range r.processors {
		binder, ok := proc.(ports.EmitBinder)
		if !ok {
			continue
		}
		position := i
		binder.BindEmit(func(ctx context.Context, msg message.Message) {
			r.continueFrom(ctx, position+1, msg)
		})
	}

	return r, nil
}

func annotateRoute(err error, name string) error {
	if de, ok := dcerrors.As(err); ok {
		return de.WithRoute(name)
	}
	return err
}

// Name returns the route's configured name.
func (r *Route) Name() string { return r.name }

// Start launches the route's supervisory goroutine. Start is idempotent;
// calling it twice on a running route is a no-op, matching
// original_source/engine/route.py::Route.start's "already running" guard.
func (r *Route) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		r.logf(ctx, "warn", "route is already running")
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true

	r.logf(ctx, "info", "starting route")
	r.publish(ctx, ports.EventRouteStarted, map[string]interface{}{"route": r.name})

	go r.runLoop(runCtx)
}

// Stop cancels the supervisory goroutine, waits for it to exit, and closes
// the source/destination/processor resources, mirroring
// original_source/engine/route.py::Route.stop.
func (r *Route) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	cancel := r.cancel
	done := r.done
	r.running = false
	r.mu.Unlock()

	r.logf(ctx, "info", "stopping route")
	cancel()
	<-done

	var firstErr error
	if err := r.source.Close(ctx); err != nil {
		r.logf(ctx, "error", fmt.Sprintf("error closing source: %v", err))
		if firstErr == nil {
			firstErr = err
		}
	}
	if err := r.destination.Close(ctx); err != nil {
		r.logf(ctx, "error", fmt.Sprintf("error closing destination: %v", err))
		if firstErr == nil {
			firstErr = err
		}
	}
	for _, proc := range r.processors {
		closer, ok := proc.(ports.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	r.publish(ctx, ports.EventRouteStopped, map[string]interface{}{"route": r.name})
	return firstErr
}

// runLoop is the route's main processing loop: receive, process, send,
// with error-handler fallback on any stage failure.
func (r *Route) runLoop(ctx context.Context) {
	defer close(r.done)

	for {
		select {
		case <-ctx.Done():
			r.logf(ctx, "info", "route processing cancelled")
			return
		default:
		}

		msg, err := r.safeReceive(ctx)
		if err != nil {
			if de, ok := dcerrors.As(err); ok && de.Code == dcerrors.CodeCancelled {
				return
			}
			r.handleError(ctx, err, nil)
			continue
		}

		result, err := r.Process(ctx, msg)
		if err != nil {
			r.handleError(ctx, err, &msg)
			continue
		}
		if result.Dropped {
			r.incOutcome(ctx, "dropped")
			continue
		}

		if err := r.safeSend(ctx, result.Message); err != nil {
			r.handleError(ctx, err, &msg)
			continue
		}

		r.incOutcome(ctx, "processed")
		r.publish(ctx, ports.EventRouteMessageProcessed, map[string]interface{}{"route": r.name})
	}
}

func (r *Route) incOutcome(ctx context.Context, outcome string) {
	if r.metrics == nil {
		return
	}
	r.metrics.IncCounter(ctx, "dialogchain_route_messages_total", map[string]string{"route": r.name, "outcome": outcome})
}

// Process runs msg through the full processor chain, starting at index 0.
func (r *Route) Process(ctx context.Context, msg message.Message) (message.Result, error) {
	return r.runChain(ctx, 0, msg)
}

// ProcessAndDeliver runs msg through the chain and, if it survives, sends
// it to the destination, returning the final result. This is the engine's
// process-message operation (spec.md §4.5): it feeds a payload directly
// into a route's chain and destination, bypassing the source entirely.
func (r *Route) ProcessAndDeliver(ctx context.Context, msg message.Message) (message.Result, error) {
	result, err := r.Process(ctx, msg)
	if err != nil {
		return message.Result{}, err
	}
	if result.Dropped {
		return message.Dropped(), nil
	}
	if err := r.safeSend(ctx, result.Message); err != nil {
		return message.Result{}, err
	}
	return result, nil
}

// continueFrom resumes the chain at processors[from:] and, if the result
// survives, sends it to the destination — the "remainder of the chain"
// helper bound to every EmitBinder processor.
func (r *Route) continueFrom(ctx context.Context, from int, msg message.Message) {
	result, err := r.runChain(ctx, from, msg)
	if err != nil {
		r.handleError(ctx, err, &msg)
		return
	}
	if result.Dropped {
		r.incOutcome(ctx, "dropped")
		return
	}
	if err := r.safeSend(ctx, result.Message); err != nil {
		r.handleError(ctx, err, &msg)
		return
	}
	r.incOutcome(ctx, "processed")
	r.publish(ctx, ports.EventRouteMessageProcessed, map[string]interface{}{"route": r.name})
}

func (r *Route) runChain(ctx context.Context, from int, msg message.Message) (message.Result, error) {
	current := msg
	for i := from; i < len(r.processors); i++ {
		start := time.Now()
		result, err := r.processors[i].Process(ctx, current)
		if r.metrics != nil {
			r.metrics.ObserveHistogram(ctx, "dialogchain_route_message_duration_seconds", time.Since(start).Seconds(), map[string]string{"route": r.name})
		}
		if err != nil {
			return message.Result{}, dcerrors.Processor(fmt.Sprintf("route %q processor[%d] failed", r.name, i), err).WithRoute(r.name)
		}
		if result.Dropped {
			return message.Dropped(), nil
		}
		current = result.Message
	}
	return message.Keep(current), nil
}

// safeReceive wraps source.Receive with spec.md §3's retry/timeout policy:
// retry_attempts additional tries, retry_delay between them, each attempt
// bounded by timeout if one is configured.
func (r *Route) safeReceive(ctx context.Context) (message.Message, error) {
	var lastErr error
	for attempt := 0; attempt <= r.retryAttempts; attempt++ {
		attemptCtx, cancel := r.withTimeout(ctx)
		msg, err := r.source.Receive(attemptCtx)
		cancel()

		if err == nil {
			return msg, nil
		}
		if ctx.Err() != nil {
			return message.Message{}, dcerrors.Cancelled(ctx.Err())
		}
		lastErr = err
		r.logf(ctx, "error", fmt.Sprintf("error receiving from source: %v", err))
		if attempt == r.retryAttempts {
			break
		}
		if !r.sleep(ctx) {
			return message.Message{}, dcerrors.Cancelled(ctx.Err())
		}
	}
	return message.Message{}, annotateRoute(lastErr, r.name)
}

// safeSend wraps destination.Send with the same retry/timeout policy.
func (r *Route) safeSend(ctx context.Context, msg message.Message) error {
	var lastErr error
	for attempt := 0; attempt <= r.retryAttempts; attempt++ {
		attemptCtx, cancel := r.withTimeout(ctx)
		err := r.destination.Send(attemptCtx, msg)
		cancel()

		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return dcerrors.Cancelled(ctx.Err())
		}
		lastErr = err
		r.logf(ctx, "error", fmt.Sprintf("error sending to destination: %v", err))
		if attempt == r.retryAttempts {
			break
		}
		if !r.sleep(ctx) {
			return dcerrors.Cancelled(ctx.Err())
		}
	}
	return annotateRoute(lastErr, r.name)
}

func (r *Route) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// sleep waits retryDelay or until ctx is cancelled, returning false in the
// latter case.
func (r *Route) sleep(ctx context.Context) bool {
	if r.retryDelay <= 0 {
		return true
	}
	timer := time.NewTimer(r.retryDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// handleError runs the route's declared error_handlers in order, grounded
// on original_source/engine/route.py::Route._handle_error. Unlike the
// Python original's best-effort loop, a retry handler that succeeds stops
// the remaining handlers from running, since the message has already been
// delivered.
func (r *Route) handleError(ctx context.Context, err error, msg *message.Message) {
	r.logf(ctx, "error", fmt.Sprintf("handling error: %v", err))
	r.publish(ctx, ports.EventRouteMessageFailed, map[string]interface{}{"route": r.name, "error": err.Error()})
	r.incOutcome(ctx, "failed")

	for _, handler := range r.errorHandlers {
		switch {
		case handler.Log != nil:
			logMsg := handler.Log.Message
			if logMsg == "" {
				logMsg = fmt.Sprintf("error in route %s: %v", r.name, err)
			}
			r.logf(ctx, "error", logMsg)
		case handler.Retry != nil:
			if r.retryHandler(ctx, *handler.Retry, msg) {
				return
			}
		case handler.Fallback != nil:
			if r.fallbackHandler(ctx, *handler.Fallback, msg) {
				return
			}
		}
	}
}

func (r *Route) retryHandler(ctx context.Context, opts routeconfig.RetryHandlerOptions, msg *message.Message) bool {
	if msg == nil {
		return false
	}
	delay := time.Duration(opts.Delay * float64(time.Second))
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		r.logf(ctx, "warn", fmt.Sprintf("retry attempt %d/%d", attempt, opts.MaxAttempts))
		result, err := r.Process(ctx, *msg)
		if err == nil && !result.Dropped {
			if sendErr := r.safeSend(ctx, result.Message); sendErr == nil {
				return true
			}
		}
		if attempt == opts.MaxAttempts {
			break
		}
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return false
			}
		}
	}
	r.logf(ctx, "error", fmt.Sprintf("max retries (%d) exceeded", opts.MaxAttempts))
	return false
}

// fallbackHandler sends the original message to a fallback destination and
// stops the handler list on success, per spec.md §4.4. The fallback
// connector is constructed on demand and closed immediately after use
// rather than cached on the Route, since a fallback is expected to be a
// rare path and this avoids holding a second live connection per route for
// its entire lifetime.
func (r *Route) fallbackHandler(ctx context.Context, opts routeconfig.FallbackHandlerOptions, msg *message.Message) bool {
	if msg == nil || opts.Destination.IsZero() || r.connMgr == nil {
		return false
	}
	rec, err := opts.Destination.Resolve()
	if err != nil {
		r.logf(ctx, "error", fmt.Sprintf("invalid fallback destination: %v", err))
		return false
	}

	r.logf(ctx, "warn", fmt.Sprintf("using fallback destination scheme %q", rec.Scheme))
	dst, err := r.connMgr.CreateDestination(ctx, rec)
	if err != nil {
		r.logf(ctx, "error", fmt.Sprintf("failed to construct fallback destination: %v", err))
		return false
	}
	defer dst.Close(ctx)

	if err := dst.Send(ctx, *msg); err != nil {
		r.logf(ctx, "error", fmt.Sprintf("fallback send failed: %v", err))
		return false
	}
	return true
}

func (r *Route) logf(ctx context.Context, level, msg string) {
	if r.logger == nil {
		return
	}
	switch level {
	case "debug":
		r.logger.Debug(ctx, msg, "route", r.name)
	case "warn":
		r.logger.Warn(ctx, msg, "route", r.name)
	case "error":
		r.logger.Error(ctx, msg, "route", r.name)
	default:
		r.logger.Info(ctx, msg, "route", r.name)
	}
}

func (r *Route) publish(ctx context.Context, eventType string, payload map[string]interface{}) {
	if r.events == nil {
		return
	}
	if err := r.events.Publish(ctx, routeEvent{eventType: eventType, payload: payload}); err != nil && r.logger != nil {
		r.logger.Warn(ctx, "failed to publish route event", "event_type", eventType, "error", err)
	}
}

type routeEvent struct {
	eventType string
	payload   interface{}
}

func (e routeEvent) EventType() string    { return e.eventType }
func (e routeEvent) Payload() interface{} { return e.payload }
