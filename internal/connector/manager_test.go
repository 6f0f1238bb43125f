package connector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
	"github.com/dialogchain-go/dialogchain/internal/uriconfig"
)

type noopLogger struct{}

func (noopLogger) Debug(context.Context, string, ...interface{}) {}
func (noopLogger) Info(context.Context, string, ...interface{})  {}
func (noopLogger) Warn(context.Context, string, ...interface{})  {}
func (noopLogger) Error(context.Context, string, ...interface{}) {}
func (l noopLogger) With(...interface{}) ports.Logger            { return l }

func TestCreateSourceUnknownSchemeIsConfigurationError(t *testing.T) {
	m := NewManager()
	rec, err := uriconfig.Parse("nope:5s")
	require.NoError(t, err)

	_, err = m.CreateSource(context.Background(), rec)
	require.Error(t, err)

	de, ok := dcerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dcerrors.CodeConfiguration, de.Code)
}

func TestRegisterSourceIsIdempotentOverride(t *testing.T) {
	m := NewManager()
	calls := 0
	m.RegisterSource("timer", func(ctx context.Context, opts map[string]any) (ports.Source, error) {
		calls = 1
		return NewTimerSource(ctx, opts)
	})
	m.RegisterSource("timer", func(ctx context.Context, opts map[string]any) (ports.Source, error) {
		calls = 2
		return NewTimerSource(ctx, opts)
	})

	rec, err := uriconfig.Parse("timer:1s")
	require.NoError(t, err)
	src, err := m.CreateSource(context.Background(), rec)
	require.NoError(t, err)
	defer src.Close(context.Background())

	assert.Equal(t, 2, calls)
}

func TestTimerSourceEmitsOnSchedule(t *testing.T) {
	m := NewManager()
	RegisterBuiltins(m, noopLogger{})

	rec, err := uriconfig.Parse("timer:10ms")
	require.NoError(t, err)

	src, err := m.CreateSource(context.Background(), rec)
	require.NoError(t, err)
	defer src.Close(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	msg, err := src.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.Body.(map[string]any)["tick"])
}

func TestCreateDestinationUnknownSchemeIsConfigurationError(t *testing.T) {
	m := NewManager()
	RegisterBuiltins(m, noopLogger{})

	rec, err := uriconfig.Parse("ftp://example.com/")
	require.NoError(t, err)

	_, err = m.CreateDestination(context.Background(), rec)
	require.Error(t, err)
	de, ok := dcerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dcerrors.CodeConfiguration, de.Code)
}

func TestLogDestinationNeverFails(t *testing.T) {
	m := NewManager()
	RegisterBuiltins(m, noopLogger{})

	rec, err := uriconfig.Parse("log:")
	require.NoError(t, err)

	dst, err := m.CreateDestination(context.Background(), rec)
	require.NoError(t, err)
	defer dst.Close(context.Background())

	require.NoError(t, dst.Send(context.Background(), message.New("hello")))
}

func TestUnimplementedSchemesRegisterButFailAtConstruction(t *testing.T) {
	m := NewManager()
	RegisterBuiltins(m, noopLogger{})

	rec, err := uriconfig.Parse("rtsp://camera.local/stream")
	require.NoError(t, err)

	_, err = m.CreateSource(context.Background(), rec)
	require.Error(t, err)
	assert.True(t, dcerrors.IsTransientConnector(err) == false)
}
