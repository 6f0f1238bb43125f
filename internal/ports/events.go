package ports

import "context"

const (
	// EventEngineStarted is emitted once all routes have been started.
	EventEngineStarted = "engine.started"
	// EventEngineStopped is emitted after a clean shutdown of all routes.
	EventEngineStopped = "engine.stopped"
	// EventRouteStarted is emitted when a route's supervisor goroutine begins.
	EventRouteStarted = "route.started"
	// EventRouteStopped is emitted when a route's supervisor goroutine exits.
	EventRouteStopped = "route.stopped"
	// EventRouteMessageProcessed is emitted after a message passes a route's
	// processor chain and is delivered to its destination. A dropped message
	// emits no event.
	EventRouteMessageProcessed = "route.message_processed"
	// EventRouteMessageFailed is emitted when receiving, processing or
	// sending a message fails, before the route's error handlers run.
	EventRouteMessageFailed = "route.message_failed"
	// EventConnectorReconnected names a transient connector error that was
	// retried successfully. No route or connector in this module publishes
	// it.
	EventConnectorReconnected = "connector.reconnected"
)

// DomainEvent represents a significant occurrence within the domain or
// application layer. Events carry structured payloads that downstream
// subscribers can use for logging, UI updates, or integrations.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous—Publish blocks until all handlers run—ensuring observability
// signals appear before the process exits. Handlers may spawn goroutines for
// async processing if work should continue in the background. Implementations
// must be thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Handlers should avoid
// panicking; failures should be surfaced via returned errors so publishers can
// log diagnostics and continue delivering to remaining subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving events and release resources.
type Subscription interface {
	Unsubscribe()
}
