// Package metrics collects per-route request metrics for the demo API.
//
// Request middleware emits events on a buffered channel without blocking;
// a single collector goroutine folds them into a mutex guarded store:
//   - Request counts per route
//   - Response times with percentile calculations (P50, P95, P99)
//   - HTTP status code distribution
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	collector.EventChannel() <- metrics.Event{
//		Type:       metrics.EventResponseCompleted,
//		Route:      "GET /demo",
//		Duration:   150 * time.Microsecond,
//		StatusCode: 200,
//	}
//
//	snapshot := collector.Snapshot("demo")
//
// Remaining events are drained when the collector's context is cancelled.
package metrics
