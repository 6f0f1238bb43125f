package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessCommandDeliversPayloadThroughRoute(t *testing.T) {
	app := newTestAppContext()
	path := writeSampleConfig(t)

	cmd := newProcessCmd(&rootFlags{}, app)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--config", path, "--route", "ticks", "--payload", `{"msg":"hello"}`})

	require.NoError(t, cmd.Execute())
	require.Contains(t, buf.String(), "hello")
}

func TestProcessCommandRejectsUnknownRoute(t *testing.T) {
	app := newTestAppContext()
	path := writeSampleConfig(t)

	cmd := newProcessCmd(&rootFlags{}, app)
	cmd.SetArgs([]string{"--config", path, "--route", "missing", "--payload", "{}"})

	require.Error(t, cmd.Execute())
}
