package processor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

func TestNewAggregateRequiresKnownStrategy(t *testing.T) {
	_, err := NewAggregate(map[string]any{"strategy": "median", "timeout": "10s", "max_size": 5})
	assert.Error(t, err)
}

func TestNewAggregateRequiresTimeoutAndMaxSize(t *testing.T) {
	_, err := NewAggregate(map[string]any{"strategy": "count"})
	assert.Error(t, err)

	_, err = NewAggregate(map[string]any{"strategy": "count", "timeout": "10s"})
	assert.Error(t, err)
}

func TestAggregateFlushesImmediatelyAtMaxSize(t *testing.T) {
	proc, err := NewAggregate(map[string]any{"strategy": "count", "timeout": "1h", "max_size": 2})
	require.NoError(t, err)

	r1, err := proc.Process(context.Background(), message.New("a"))
	require.NoError(t, err)
	assert.True(t, r1.Dropped)

	r2, err := proc.Process(context.Background(), message.New("b"))
	require.NoError(t, err)
	require.False(t, r2.Dropped)

	body := r2.Message.Body.(map[string]any)
	assert.Equal(t, 2, body["count"])
}

func TestAggregateSumAndAverageStrategies(t *testing.T) {
	sumProc, err := NewAggregate(map[string]any{"strategy": "sum", "timeout": "1h", "max_size": 3})
	require.NoError(t, err)

	for _, v := range []any{1.0, 2.0} {
		_, err := sumProc.Process(context.Background(), message.New(v))
		require.NoError(t, err)
	}
	result, err := sumProc.Process(context.Background(), message.New(3.0))
	require.NoError(t, err)
	body := result.Message.Body.(map[string]any)
	assert.Equal(t, 6.0, body["sum"])
	assert.Equal(t, 3, body["count"])

	avgProc, err := NewAggregate(map[string]any{"strategy": "average", "timeout": "1h", "max_size": 2})
	require.NoError(t, err)
	_, err = avgProc.Process(context.Background(), message.New(2.0))
	require.NoError(t, err)
	avgResult, err := avgProc.Process(context.Background(), message.New(4.0))
	require.NoError(t, err)
	avgBody := avgResult.Message.Body.(map[string]any)
	assert.Equal(t, 3.0, avgBody["average"])
}

func TestAggregateDeferredFlushEmitsViaBoundEmit(t *testing.T) {
	proc, err := NewAggregate(map[string]any{"strategy": "count", "timeout": "20ms", "max_size": 100})
	require.NoError(t, err)

	binder := proc.(ports.EmitBinder)

	var mu sync.Mutex
	var emitted *message.Message
	done := make(chan struct{})
	binder.BindEmit(func(_ context.Context, msg message.Message) {
		mu.Lock()
		emitted = &msg
		mu.Unlock()
		close(done)
	})

	result, err := proc.Process(context.Background(), message.New("a"))
	require.NoError(t, err)
	assert.True(t, result.Dropped)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("deferred flush did not fire in time")
	}

	mu.Lock()
	defer mu.Unlock()
	require.NotNil(t, emitted)
	body := emitted.Body.(map[string]any)
	assert.Equal(t, 1, body["count"])
}

func TestAggregateCloseFlushesRemainingItemsSynchronously(t *testing.T) {
	proc, err := NewAggregate(map[string]any{"strategy": "count", "timeout": "1h", "max_size": 100})
	require.NoError(t, err)

	binder := proc.(ports.EmitBinder)
	var emitted *message.Message
	binder.BindEmit(func(_ context.Context, msg message.Message) {
		emitted = &msg
	})

	_, err = proc.Process(context.Background(), message.New("a"))
	require.NoError(t, err)

	closer, ok := proc.(interface {
		Close(ctx context.Context) error
	})
	require.True(t, ok)

	require.NoError(t, closer.Close(context.Background()))
	require.NotNil(t, emitted)
	body := emitted.Body.(map[string]any)
	assert.Equal(t, 1, body["count"])
}

func TestAggregateCloseIsNoopWhenEmpty(t *testing.T) {
	proc, err := NewAggregate(map[string]any{"strategy": "count", "timeout": "1h", "max_size": 100})
	require.NoError(t, err)

	closer := proc.(interface{ Close(ctx context.Context) error })
	assert.NoError(t, closer.Close(context.Background()))
}
