// Package pipeline orchestrates one aggregation run: concurrent feed
// retrieval, normalization, keyword matching, weighted scoring, and
// threshold-based selection of the final article set.
package pipeline

import (
	"errors"
	"fmt"

	"techpulse/internal/domain/entity"
)

// Sentinel errors for pipeline construction and execution.
var (
	// ErrNoSources indicates the pipeline was handed an empty feed list.
	ErrNoSources = errors.New("no feed sources configured")

	// ErrNoInterests indicates the pipeline was handed an empty interest list.
	ErrNoInterests = errors.New("no interests configured")
)

// FetchError records the failure of a single feed without aborting the run.
// One failing feed never takes down its siblings; the run collects these
// alongside the successful results.
type FetchError struct {
	Source *entity.FeedSource
	Cause  error
}

// Error returns a formatted message naming the failed source.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch feed %q (%s): %v", e.Source.Name, e.Source.URL, e.Cause)
}

// Unwrap exposes the underlying cause for errors.Is/As checks.
func (e *FetchError) Unwrap() error {
	return e.Cause
}
