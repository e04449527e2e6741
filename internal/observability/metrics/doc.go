// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - Feed fetch metrics (duration, errors, articles fetched)
//   - Pipeline run metrics (outcome, duration, selection size)
//   - Content enrichment metrics
//   - Digest summarization metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint of the worker's metrics server.
//
// Example usage:
//
//	import "techpulse/internal/observability/metrics"
//
//	func fetchFeed(source string) {
//	    start := time.Now()
//	    // ... fetch and parse ...
//	    metrics.RecordFeedFetch(source, time.Since(start), len(items))
//	}
package metrics
