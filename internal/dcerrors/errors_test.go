package dcerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorIsMatchesByCode(t *testing.T) {
	a := Configuration("bad scheme", nil)
	b := Configuration("something else entirely", nil)

	assert.True(t, errors.Is(a, b))
}

func TestDomainErrorUnwrapExposesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Processor("processing failed", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestWithRouteAndContextDoNotMutateOriginal(t *testing.T) {
	base := Connector(ConnectorTransient, "dial failed", nil)
	withRoute := base.WithRoute("r1")
	withContext := base.WithContext(map[string]any{"attempt": 2})

	assert.Empty(t, base.Route)
	assert.Equal(t, "r1", withRoute.Route)
	assert.Empty(t, base.Context["attempt"])
	assert.Equal(t, 2, withContext.Context["attempt"])
}

func TestIsTransientConnector(t *testing.T) {
	transient := Connector(ConnectorTransient, "timeout", nil)
	permanent := Connector(ConnectorPermanent, "unauthorized", nil)

	assert.True(t, IsTransientConnector(transient))
	assert.False(t, IsTransientConnector(permanent))
	assert.False(t, IsTransientConnector(errors.New("plain")))
}

func TestAsExtractsDomainError(t *testing.T) {
	err := MissingEnvVar("API_KEY")
	de, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, de.Code)
	assert.Equal(t, "API_KEY", de.Context["variable"])
}
