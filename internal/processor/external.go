package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// externalProcessor serializes the message to a temp file and runs an
// external command against it, grounded on
// original_source/processors/external.py (tempfile + subprocess + timeout +
// guaranteed cleanup). Stdlib os/exec: no pack repo reaches for a
// process-supervision library for a single bounded subprocess invocation.
type externalProcessor struct {
	command string
	timeout time.Duration
}

// NewExternal builds the External processor (spec.md §4.3.3).
func NewExternal(opts map[string]any) (ports.Processor, error) {
	command, _ := opts["command"].(string)
	if command == "" {
		return nil, dcerrors.Configuration("external processor requires a command", nil)
	}
	if !strings.Contains(command, "{input_file}") {
		return nil, dcerrors.Configuration("external processor command must contain {input_file}", nil)
	}

	timeoutSeconds := DefaultExternalTimeoutSeconds
	if raw, ok := opts["timeout"]; ok {
		v, ok := toFloat(raw)
		if !ok || v <= 0 {
			return nil, dcerrors.Configuration("external processor timeout must be a positive number", nil)
		}
		timeoutSeconds = int(v)
	}

	return &externalProcessor{command: command, timeout: time.Duration(timeoutSeconds) * time.Second}, nil
}

// DefaultExternalTimeoutSeconds mirrors routeconfig's default so the
// processor is independently constructible (e.g. in tests) without going
// through config decode.
const DefaultExternalTimeoutSeconds = 30

func (e *externalProcessor) Process(ctx context.Context, msg message.Message) (message.Result, error) {
	payload, err := json.Marshal(msg.Body)
	if err != nil {
		return message.Dropped(), dcerrors.Processor("failed to serialize message for external processor", err)
	}

	tmp, err := os.CreateTemp("", "dialogchain-external-*.json")
	if err != nil {
		return message.Dropped(), dcerrors.Processor("failed to create temp file", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return message.Dropped(), dcerrors.Processor("failed to write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return message.Dropped(), dcerrors.Processor("failed to close temp file", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	commandLine := strings.ReplaceAll(e.command, "{input_file}", tmpPath)
	cmd := exec.CommandContext(runCtx, "sh", "-c", commandLine)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runCtx.Err() != nil {
		return message.Dropped(), dcerrors.Timeout("external processor command timed out", runCtx.Err())
	}
	if runErr != nil {
		return message.Dropped(), dcerrors.Processor("external processor command failed: "+stderr.String(), runErr)
	}

	out := stdout.Bytes()
	var decoded any
	if err := json.Unmarshal(out, &decoded); err == nil {
		return message.Keep(msg.WithBody(decoded)), nil
	}
	return message.Keep(msg.WithBody(strings.TrimRight(string(out), "\n"))), nil
}
