package ports

import "context"

// MetricsCollector records quantitative observability signals for the
// engine. The interface is intentionally generic so adapters can back onto
// Prometheus, StatsD, or a no-op collector in tests. Standard metric names:
//   - Counters:
//     dialogchain_route_messages_total{route="...", outcome="processed|dropped|failed"}
//     dialogchain_connector_errors_total{route="...", kind="transient|permanent"}
//   - Gauges:
//     dialogchain_routes_active
//     dialogchain_aggregate_buffer_size{route="..."}
//   - Histograms:
//     dialogchain_route_message_duration_seconds{route="..."}
//     dialogchain_external_processor_duration_seconds{route="..."}
type MetricsCollector interface {
	IncCounter(ctx context.Context, name string, labels map[string]string)
	SetGauge(ctx context.Context, name string, value float64, labels map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, labels map[string]string)
}
