// Package tracing provides OpenTelemetry tracing integration.
//
// The pipeline creates a root span per aggregation run with child spans
// for the fetch and match stages; the worker's HTTP servers use the
// tracing middleware for request spans. Span export is left to the
// environment: the application only uses the OpenTelemetry API, so a
// deployment can install any SDK tracer provider it likes.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "pipeline.run")
//	defer span.End()
package tracing
