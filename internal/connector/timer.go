package connector

import (
	"context"
	"fmt"
	"time"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// timerSource emits a message on a fixed period, grounded on
// original_source/engine/connector.py's timer source (interval parsed from
// the URI's opaque path, e.g. "timer:5s") and built on stdlib time.Ticker —
// no pack repo reaches for a scheduling library for a plain fixed-interval
// tick.
type timerSource struct {
	ticker *time.Ticker
	period time.Duration
	count  int64
}

// NewTimerSource constructs a Source that ticks every period and emits a
// message whose body carries a sequence counter and the tick time.
func NewTimerSource(_ context.Context, opts map[string]any) (ports.Source, error) {
	period, err := parseTimerPeriod(opts)
	if err != nil {
		return nil, err
	}
	return &timerSource{ticker: time.NewTicker(period), period: period}, nil
}

func parseTimerPeriod(opts map[string]any) (time.Duration, error) {
	raw, _ := opts["path"].(string)
	if raw == "" {
		return 0, dcerrors.Configuration("timer source requires a duration, e.g. timer:5s", nil)
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, dcerrors.Configuration(fmt.Sprintf("invalid timer duration %q", raw), err)
	}
	if d <= 0 {
		return 0, dcerrors.Configuration("timer duration must be positive", nil)
	}
	return d, nil
}

func (t *timerSource) Receive(ctx context.Context) (message.Message, error) {
	select {
	case <-ctx.Done():
		return message.Message{}, dcerrors.Cancelled(ctx.Err())
	case tick := <-t.ticker.C:
		t.count++
		return message.New(map[string]any{
			"tick":      t.count,
			"timestamp": tick,
			"period":    t.period.String(),
		}), nil
	}
}

func (t *timerSource) Close(_ context.Context) error {
	t.ticker.Stop()
	return nil
}
