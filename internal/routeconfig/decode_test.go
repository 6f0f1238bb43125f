package routeconfig

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
routes:
  - name: motion-alerts
    from: "rtsp://${CAMERA_HOST}/stream1"
    processors:
      - type: Filter
        min_confidence: 0.8
      - type: transform
        template: "Motion detected: {label}"
      - type: aggregate
        strategy: count
        timeout: 30s
        max_size: 10
    to: "http://${ALERT_HOST}/webhook"
    error_handlers:
      - type: log
        message: "delivery failed"
      - type: retry
        max_attempts: 3
        delay: 2
`

func TestDecodeAppliesDefaultsAndInterpolation(t *testing.T) {
	os.Setenv("CAMERA_HOST", "192.168.1.5")
	defer os.Unsetenv("CAMERA_HOST")

	cfg, missing, err := Decode([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, cfg.Routes, 1)

	route := cfg.Routes[0]
	assert.True(t, route.Enabled)
	assert.Equal(t, DefaultRetryAttempts, route.RetryAttempts)
	assert.Equal(t, DefaultRetryDelay, route.RetryDelay)

	src, ok := route.Source.String()
	require.True(t, ok)
	assert.Equal(t, "rtsp://192.168.1.5/stream1", src)

	assert.Contains(t, missing, "ALERT_HOST")
	assert.NotContains(t, missing, "CAMERA_HOST")
}

func TestDecodeProcessorTypeIsCaseInsensitive(t *testing.T) {
	os.Setenv("CAMERA_HOST", "host")
	os.Setenv("ALERT_HOST", "host")
	defer os.Unsetenv("CAMERA_HOST")
	defer os.Unsetenv("ALERT_HOST")

	cfg, _, err := Decode([]byte(sampleYAML))
	require.NoError(t, err)

	filterProc := cfg.Routes[0].Processors[0]
	require.NotNil(t, filterProc.Filter)
	assert.Equal(t, 0.8, *filterProc.Filter.MinConfidence)
}

func TestDecodeRejectsDuplicateRouteNames(t *testing.T) {
	doc := `
routes:
  - name: r1
    from: "timer:5s"
    to: "log:"
  - name: r1
    from: "timer:5s"
    to: "log:"
`
	_, _, err := Decode([]byte(doc))
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownProcessorType(t *testing.T) {
	doc := `
routes:
  - name: r1
    from: "timer:5s"
    processors:
      - type: nonsense
    to: "log:"
`
	_, _, err := Decode([]byte(doc))
	assert.Error(t, err)
}

func TestDecodeRejectsFilterWithNeitherOption(t *testing.T) {
	doc := `
routes:
  - name: r1
    from: "timer:5s"
    processors:
      - type: filter
    to: "log:"
`
	_, _, err := Decode([]byte(doc))
	assert.Error(t, err)
}

func TestDecodeAppliesExternalAndDebugDefaults(t *testing.T) {
	doc := `
routes:
  - name: r1
    from: "timer:5s"
    processors:
      - type: external
        command: "classify.sh {input_file}"
      - type: debug
    to: "log:"
`
	cfg, _, err := Decode([]byte(doc))
	require.NoError(t, err)

	procs := cfg.Routes[0].Processors
	require.NotNil(t, procs[0].External)
	assert.Equal(t, DefaultExternalTimeoutSeconds, procs[0].External.Timeout)

	require.NotNil(t, procs[1].Debug)
	assert.Equal(t, DefaultDebugPrefix, procs[1].Debug.Prefix)
}
