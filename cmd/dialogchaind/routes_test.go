package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dialogchain-go/dialogchain/internal/connector"
	"github.com/dialogchain-go/dialogchain/internal/infra/events"
	"github.com/dialogchain-go/dialogchain/internal/infra/logging"
	"github.com/dialogchain-go/dialogchain/internal/processor"
)

func newTestAppContext() *AppContext {
	logger := logging.NewNoOpLogger()
	connMgr := connector.NewManager()
	connector.RegisterBuiltins(connMgr, logger)
	return &AppContext{
		Logger:      logger,
		Events:      events.NewLoggingPublisher(logger),
		ConnMgr:     connMgr,
		ProcFactory: processor.NewFactory(logger),
	}
}

const sampleRouteConfig = `
routes:
  - name: ticks
    from: "timer:10ms"
    to: "log:out"
`

func writeSampleConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRouteConfig), 0o644))
	return path
}

func TestRoutesCommandListsSchemesWithoutConfig(t *testing.T) {
	app := newTestAppContext()
	cmd := newRoutesCmd(&rootFlags{}, app)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)

	require.NoError(t, cmd.Execute())
	require.Contains(t, buf.String(), "sources:")
	require.Contains(t, buf.String(), "destinations:")
}

func TestRoutesCommandListsConfiguredRoutes(t *testing.T) {
	app := newTestAppContext()
	path := writeSampleConfig(t)

	cmd := newRoutesCmd(&rootFlags{}, app)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--config", path})

	require.NoError(t, cmd.Execute())
	require.Contains(t, buf.String(), "ticks")
	require.Contains(t, buf.String(), "enabled")
}
