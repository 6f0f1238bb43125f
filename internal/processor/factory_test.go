package processor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

func TestNewFactoryRegistersAllBuiltinTypes(t *testing.T) {
	f := NewFactory(&noopLogger{})

	for _, typ := range []string{"transform", "filter", "external", "aggregate", "debug"} {
		f.mu.RLock()
		_, ok := f.ctors[typ]
		f.mu.RUnlock()
		assert.True(t, ok, "expected %q to be registered", typ)
	}
}

func TestBuildIsCaseInsensitive(t *testing.T) {
	f := NewFactory(&noopLogger{})

	proc, err := f.Build(map[string]any{"type": "TRANSFORM", "template": "{x}"})
	require.NoError(t, err)
	require.NotNil(t, proc)
}

func TestBuildUnknownTypeIsConfigurationError(t *testing.T) {
	f := NewFactory(&noopLogger{})

	_, err := f.Build(map[string]any{"type": "nonexistent"})
	require.Error(t, err)
	de, ok := dcerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dcerrors.CodeConfiguration, de.Code)
}

func TestRegisterOverridesExistingConstructor(t *testing.T) {
	f := NewFactory(&noopLogger{})

	called := false
	f.Register("debug", ports.ProcessorConstructor(func(opts map[string]any) (ports.Processor, error) {
		called = true
		return ports.ProcessorFunc(func(ctx context.Context, msg message.Message) (message.Result, error) {
			return message.Keep(msg), nil
		}), nil
	}))

	_, _ = f.Build(map[string]any{"type": "debug"})
	assert.True(t, called)
}

func TestBuildChainStopsAtFirstFailure(t *testing.T) {
	f := NewFactory(&noopLogger{})

	_, err := f.BuildChain([]map[string]any{
		{"type": "transform", "template": "{x}"},
		{"type": "nonexistent"},
	})
	assert.Error(t, err)
}

func TestBuildChainConstructsOrderedChain(t *testing.T) {
	f := NewFactory(&noopLogger{})

	chain, err := f.BuildChain([]map[string]any{
		{"type": "transform", "template": "{x}"},
		{"type": "debug"},
	})
	require.NoError(t, err)
	assert.Len(t, chain, 2)
}
