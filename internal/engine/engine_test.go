package engine

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogchain-go/dialogchain/internal/connector"
	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/ports"
	"github.com/dialogchain-go/dialogchain/internal/processor"
	"github.com/dialogchain-go/dialogchain/internal/routeconfig"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, msg)
}

func (l *recordingLogger) Debug(ctx context.Context, msg string, fields ...interface{}) { l.record(msg) }
func (l *recordingLogger) Info(ctx context.Context, msg string, fields ...interface{})  { l.record(msg) }
func (l *recordingLogger) Warn(ctx context.Context, msg string, fields ...interface{})  { l.record(msg) }
func (l *recordingLogger) Error(ctx context.Context, msg string, fields ...interface{}) { l.record(msg) }
func (l *recordingLogger) With(fields ...interface{}) ports.Logger                     { return l }

func (l *recordingLogger) has(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func newTestEnvironment(logger ports.Logger) (*connector.Manager, *processor.Factory) {
	mgr := connector.NewManager()
	connector.RegisterBuiltins(mgr, logger)
	return mgr, processor.NewFactory(logger)
}

const sampleConfig = `
routes:
  - name: ticks
    from: "timer:10ms"
    to: "log:out"
  - name: disabled-route
    enabled: false
    from: "timer:10ms"
    to: "log:out"
  - name: broken-route
    from: "bogus-scheme://nowhere"
    to: "log:out"
`

func mustDecode(t *testing.T) *routeconfig.EngineConfig {
	t.Helper()
	cfg, _, err := routeconfig.Decode([]byte(sampleConfig))
	require.NoError(t, err)
	return cfg
}

func TestNewLoadsEnabledRoutesAndSkipsDisabled(t *testing.T) {
	logger := &recordingLogger{}
	mgr, factory := newTestEnvironment(logger)
	cfg := mustDecode(t)

	e := New(cfg, mgr, factory, WithLogger(logger))

	assert.Len(t, e.Routes(), 1)
	assert.Equal(t, "ticks", e.Routes()[0].Name())
	assert.True(t, logger.has(`skipping disabled route "disabled-route"`))
}

func TestNewLogsAndContinuesOnRouteConstructionFailure(t *testing.T) {
	logger := &recordingLogger{}
	mgr, factory := newTestEnvironment(logger)
	cfg := mustDecode(t)

	e := New(cfg, mgr, factory, WithLogger(logger))

	assert.True(t, logger.has(`failed to load route "broken-route"`))
	assert.Len(t, e.Routes(), 1)
}

func TestNewWithNilConfigProducesNoRoutes(t *testing.T) {
	logger := &recordingLogger{}
	mgr, factory := newTestEnvironment(logger)

	e := New(nil, mgr, factory, WithLogger(logger))
	assert.Empty(t, e.Routes())
}

func TestStartStopLifecycleIsIdempotent(t *testing.T) {
	logger := &recordingLogger{}
	mgr, factory := newTestEnvironment(logger)
	cfg := mustDecode(t)
	e := New(cfg, mgr, factory, WithLogger(logger))

	e.Start(context.Background())
	e.Start(context.Background())
	assert.True(t, logger.has("already running"))

	time.Sleep(20 * time.Millisecond)

	e.Stop(context.Background())
	e.Stop(context.Background())
	assert.True(t, logger.has("stopping dialogchain engine"))
}

func TestProcessMessageReturnsConfigurationErrorForUnknownRoute(t *testing.T) {
	logger := &recordingLogger{}
	mgr, factory := newTestEnvironment(logger)
	cfg := mustDecode(t)
	e := New(cfg, mgr, factory, WithLogger(logger))

	_, err := e.ProcessMessage(context.Background(), "does-not-exist", map[string]any{"x": 1})
	require.Error(t, err)
	de, ok := dcerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dcerrors.CodeConfiguration, de.Code)
}

func TestProcessMessageDeliversToKnownRoute(t *testing.T) {
	logger := &recordingLogger{}
	mgr, factory := newTestEnvironment(logger)
	cfg := mustDecode(t)
	e := New(cfg, mgr, factory, WithLogger(logger))

	result, err := e.ProcessMessage(context.Background(), "ticks", map[string]any{"hello": "world"})
	require.NoError(t, err)
	assert.False(t, result.Dropped)
}

func TestHealthSummaryReportsLoadedRouteCount(t *testing.T) {
	logger := &recordingLogger{}
	mgr, factory := newTestEnvironment(logger)
	cfg := mustDecode(t)
	e := New(cfg, mgr, factory, WithLogger(logger))

	assert.Equal(t, "health: 1 routes loaded", e.healthSummary())
}
