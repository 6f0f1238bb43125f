package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// httpDestination POSTs each message's body as JSON, grounded on
// original_source/engine/connector.py's HTTP destination. Stdlib net/http:
// no pack repo commits to a third-party HTTP client library for simple
// webhook-style delivery.
type httpDestination struct {
	url    string
	client *http.Client
}

// NewHTTPDestination constructs a Destination posting to the scheme/host/
// port/path the endpoint resolved to.
func NewHTTPDestination(scheme string) ports.DestinationConstructor {
	return func(_ context.Context, opts map[string]any) (ports.Destination, error) {
		host, _ := opts["host"].(string)
		if host == "" {
			host, _ = opts["netloc"].(string)
		}
		if host == "" {
			return nil, dcerrors.Configuration(scheme+" destination requires a host", nil)
		}
		path, _ := opts["path"].(string)
		port := 0
		if p, ok := opts["port"].(int); ok {
			port = p
		}

		url := scheme + "://" + host
		if port != 0 {
			url = fmt.Sprintf("%s:%d", url, port)
		}
		url += path

		return &httpDestination{
			url:    url,
			client: &http.Client{Timeout: 30 * time.Second},
		}, nil
	}
}

func (d *httpDestination) Send(ctx context.Context, msg message.Message) error {
	payload, err := json.Marshal(msg.Body)
	if err != nil {
		return dcerrors.Processor("failed to marshal message body for HTTP destination", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return dcerrors.Connector(dcerrors.ConnectorPermanent, "failed to build HTTP request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return dcerrors.Connector(dcerrors.ConnectorTransient, "HTTP request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return dcerrors.Connector(dcerrors.ConnectorTransient, fmt.Sprintf("HTTP destination returned %d", resp.StatusCode), nil)
	}
	if resp.StatusCode >= 400 {
		return dcerrors.Connector(dcerrors.ConnectorPermanent, fmt.Sprintf("HTTP destination returned %d", resp.StatusCode), nil)
	}
	return nil
}

func (d *httpDestination) Close(_ context.Context) error {
	d.client.CloseIdleConnections()
	return nil
}
