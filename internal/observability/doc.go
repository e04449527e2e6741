// Package observability centralizes logging, metrics, and tracing for the
// aggregation pipeline.
//
// Subpackages:
//   - logging: structured logging utilities with slog
//   - metrics: Prometheus metrics for pipeline runs, feed fetches, and reports
//   - tracing: OpenTelemetry tracing integration
//   - slo: service level objective tracking for scheduled runs
package observability
