package events

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	cblog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	logginginfra "github.com/dialogchain-go/dialogchain/internal/infra/logging"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

func TestLoggingPublisherIncludesCorrelationID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := logginginfra.New(logginginfra.Options{
		Writer:    buf,
		Level:     "info",
		Component: "publisher",
		Formatter: cblog.JSONFormatter,
	})
	require.NoError(t, err)

	publisher := NewLoggingPublisher(logger)

	ctx := logginginfra.WithCorrelationID(context.Background(), "abc-123")
	err = publisher.Publish(ctx, sampleEvent{
		eventType: ports.EventRouteStarted,
		payload:   map[string]interface{}{"route": "alerts"},
	})
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "route event", entry["msg"])
	require.Equal(t, ports.EventRouteStarted, entry["event_type"])
	require.Equal(t, "abc-123", entry["correlation_id"])
	require.Equal(t, "alerts", entry["route"])
}

func TestLoggingPublisherInvokesSubscribers(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := logginginfra.New(logginginfra.Options{
		Writer:    buf,
		Level:     "info",
		Component: "publisher",
		Formatter: cblog.JSONFormatter,
	})
	require.NoError(t, err)

	publisher := NewLoggingPublisher(logger)

	var handled bool
	_, err = publisher.Subscribe(ports.EventRouteMessageProcessed, func(ctx context.Context, event ports.DomainEvent) error {
		handled = true
		return nil
	})
	require.NoError(t, err)

	err = publisher.Publish(context.Background(), sampleEvent{
		eventType: ports.EventRouteMessageProcessed,
		payload:   map[string]interface{}{"route": "alerts"},
	})
	require.NoError(t, err)
	require.True(t, handled, "subscriber should be invoked")
}

func TestLoggingPublisherUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	publisher := NewLoggingPublisher(nil)

	var calls int
	sub, err := publisher.Subscribe(ports.EventRouteStopped, func(ctx context.Context, event ports.DomainEvent) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{eventType: ports.EventRouteStopped}))
	sub.Unsubscribe()
	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{eventType: ports.EventRouteStopped}))

	require.Equal(t, 1, calls)
}

type sampleEvent struct {
	eventType string
	payload   interface{}
}

func (e sampleEvent) EventType() string    { return e.eventType }
func (e sampleEvent) Payload() interface{} { return e.payload }
