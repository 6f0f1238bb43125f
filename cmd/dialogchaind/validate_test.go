package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateCommandAcceptsWellFormedConfig(t *testing.T) {
	app := newTestAppContext()
	path := writeSampleConfig(t)

	cmd := newValidateCmd(&rootFlags{}, app)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--config", path})

	require.NoError(t, cmd.Execute())
	require.Contains(t, buf.String(), "OK")
}

func TestValidateCommandRejectsMalformedConfig(t *testing.T) {
	app := newTestAppContext()
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("routes: [{name: \"\", from: x, to: y}]"), 0o644))

	cmd := newValidateCmd(&rootFlags{}, app)
	cmd.SetArgs([]string{"--config", path})

	require.Error(t, cmd.Execute())
}

func TestValidateCommandScansDirectory(t *testing.T) {
	app := newTestAppContext()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(sampleRouteConfig), 0o644))

	cmd := newValidateCmd(&rootFlags{}, app)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--scan", dir})

	require.NoError(t, cmd.Execute())
	require.Contains(t, buf.String(), "OK")
}
