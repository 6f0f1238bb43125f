package processor

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// aggregateStrategy enumerates spec.md §3/§4.3.4's flush strategies.
type aggregateStrategy string

const (
	strategyCollect aggregateStrategy = "collect"
	strategySum     aggregateStrategy = "sum"
	strategyAverage aggregateStrategy = "average"
	strategyCount   aggregateStrategy = "count"
)

// aggregateProcessor implements the AggregateBuffer of spec.md §3/§4.3.4,
// grounded on original_source/processors/aggregate.py. It is the one
// processor that produces output outside its own Process call (the
// deferred flush timer), so it implements ports.EmitBinder and
// ports.Closer in addition to ports.Processor.
type aggregateProcessor struct {
	strategy aggregateStrategy
	timeout  time.Duration
	maxSize  int

	mu             sync.Mutex
	items          []message.Message
	firstAdmitTime time.Time
	pendingFlush   *time.Timer

	emit ports.EmitFunc
}

// NewAggregate builds the Aggregate processor (spec.md §4.3.4). The human
// -readable duration grammar ("30s", "1m", "1.5h", or a bare number of
// seconds) is grounded on original_source/processors/aggregate.py's
// _parse_timeout.
func NewAggregate(opts map[string]any) (ports.Processor, error) {
	strategyRaw, _ := opts["strategy"].(string)
	strategy := aggregateStrategy(strategyRaw)
	switch strategy {
	case strategyCollect, strategySum, strategyAverage, strategyCount:
	default:
		return nil, dcerrors.Configuration("aggregate strategy must be one of collect, sum, average, count", nil)
	}

	timeoutRaw, _ := opts["timeout"].(string)
	timeout, err := parseAggregateTimeout(timeoutRaw)
	if err != nil {
		return nil, err
	}

	maxSize := 0
	if raw, ok := opts["max_size"]; ok {
		v, ok := toFloat(raw)
		if !ok || v < 1 {
			return nil, dcerrors.Configuration("aggregate max_size must be a positive integer", nil)
		}
		maxSize = int(v)
	} else {
		return nil, dcerrors.Configuration("aggregate processor requires max_size", nil)
	}

	return &aggregateProcessor{strategy: strategy, timeout: timeout, maxSize: maxSize}, nil
}

func parseAggregateTimeout(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, dcerrors.Configuration("aggregate processor requires a timeout", nil)
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(v * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, dcerrors.Configuration("invalid aggregate timeout \""+raw+"\"", err)
	}
	return d, nil
}

// BindEmit satisfies ports.EmitBinder; the route supervisor calls this once
// at construction time.
func (a *aggregateProcessor) BindEmit(emit ports.EmitFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.emit = emit
}

// Process implements spec.md §4.3.4's contract:
//  1. append msg,
//  2. if first item, set first_admit_time and schedule the deferred flush,
//  3. if |items| >= max_size, flush immediately and return the result,
//  4. otherwise return drop.
func (a *aggregateProcessor) Process(_ context.Context, msg message.Message) (message.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.items = append(a.items, msg)

	if a.firstAdmitTime.IsZero() {
		a.firstAdmitTime = time.Now()
		a.pendingFlush = time.AfterFunc(a.timeout, a.fireDeferredFlush)
	}

	if len(a.items) >= a.maxSize {
		result := a.flushLocked()
		return message.Keep(result), nil
	}

	return message.Dropped(), nil
}

// fireDeferredFlush runs on the timer goroutine when no synchronous
// Process call has flushed the buffer first. Per spec.md §4.3.4's
// contract on deferred-flush fire, a non-empty buffer is flushed and the
// result is emitted downstream via the route's emit channel — not
// returned, since nothing is waiting on a return value here.
func (a *aggregateProcessor) fireDeferredFlush() {
	a.mu.Lock()
	if len(a.items) == 0 {
		a.mu.Unlock()
		return
	}
	result := a.flushLocked()
	emit := a.emit
	a.mu.Unlock()

	if emit != nil {
		emit(context.Background(), result)
	}
}

// flushLocked computes the aggregated message and resets buffer state. The
// caller must hold a.mu.
func (a *aggregateProcessor) flushLocked() message.Message {
	items := a.items
	first := a.firstAdmitTime

	a.items = nil
	a.firstAdmitTime = time.Time{}
	if a.pendingFlush != nil {
		a.pendingFlush.Stop()
		a.pendingFlush = nil
	}

	return aggregateResult(a.strategy, items, first)
}

func aggregateResult(strategy aggregateStrategy, items []message.Message, first time.Time) message.Message {
	switch strategy {
	case strategyCollect:
		bodies := make([]any, len(items))
		for i, m := range items {
			bodies[i] = m.Body
		}
		last := first
		if len(items) > 0 {
			last = time.Now()
		}
		return message.New(map[string]any{
			"items":           bodies,
			"count":           len(items),
			"first_timestamp": first,
			"last_timestamp":  last,
		})
	case strategySum:
		return message.New(map[string]any{"sum": numericSum(items), "count": len(items)})
	case strategyAverage:
		if len(items) == 0 {
			return message.New(map[string]any{"average": 0.0, "count": 0})
		}
		return message.New(map[string]any{"average": numericSum(items) / float64(len(items)), "count": len(items)})
	case strategyCount:
		return message.New(map[string]any{"count": len(items)})
	default:
		return message.New(map[string]any{"count": len(items)})
	}
}

func numericSum(items []message.Message) float64 {
	var sum float64
	for _, m := range items {
		if v, ok := toFloat(m.Body); ok {
			sum += v
			continue
		}
		if body, ok := m.Body.(map[string]any); ok {
			if v, ok := body["value"]; ok {
				if f, ok := toFloat(v); ok {
					sum += f
				}
			}
		}
	}
	return sum
}

// Close implements ports.Closer: spec.md §4.3.4's shutdown contract
// flushes any remaining items synchronously.
func (a *aggregateProcessor) Close(ctx context.Context) error {
	a.mu.Lock()
	if len(a.items) == 0 {
		a.mu.Unlock()
		return nil
	}
	result := a.flushLocked()
	emit := a.emit
	a.mu.Unlock()

	if emit != nil {
		emit(ctx, result)
	}
	return nil
}
