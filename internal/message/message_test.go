package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageFieldPrefersBodyOverMetadata(t *testing.T) {
	m := New(map[string]any{"confidence": 0.9}).WithMetadata("confidence", 0.1)

	v, ok := m.Field("confidence")
	require.True(t, ok)
	assert.Equal(t, 0.9, v)
}

func TestMessageFieldFallsBackToMetadata(t *testing.T) {
	m := New(map[string]any{}).WithMetadata("path", "/tmp/x")

	v, ok := m.Field("path")
	require.True(t, ok)
	assert.Equal(t, "/tmp/x", v)
}

func TestMessageFieldMissing(t *testing.T) {
	m := New(map[string]any{})
	_, ok := m.Field("missing")
	assert.False(t, ok)
}

func TestWithMetadataDoesNotMutateOriginal(t *testing.T) {
	base := New("body")
	derived := base.WithMetadata("k", "v")

	assert.Empty(t, base.Metadata)
	assert.Equal(t, "v", derived.Metadata["k"])
}

func TestFieldsMergesMetadataAndBody(t *testing.T) {
	m := New(map[string]any{"a": 1}).WithMetadata("b", 2)
	fields := m.Fields()
	assert.Equal(t, 1, fields["a"])
	assert.Equal(t, 2, fields["b"])
}

func TestResultHelpers(t *testing.T) {
	r := Keep(New("x"))
	assert.False(t, r.Dropped)

	d := Dropped()
	assert.True(t, d.Dropped)
}
