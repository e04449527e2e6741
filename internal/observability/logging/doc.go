// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats
//   - Run ID propagation across one aggregation run
//   - Context-aware logging
//   - Configurable log levels via LOG_LEVEL
//
// Example usage:
//
//	import "techpulse/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started", slog.String("version", "1.0"))
//	}
//
//	func runPipeline(runID string) {
//	    logger := logging.WithRunID(slog.Default(), runID)
//	    logger.Info("run started")
//	}
package logging
