// Package fetcher provides full-content fetching for description enrichment.
// Feeds often carry only a teaser description; fetching the article page and
// extracting its readable text gives the keyword matcher more to work with.
package fetcher

import "errors"

// Sentinel errors for content fetching operations. Callers treat all of
// them as "keep the feed description" but can distinguish failure modes
// for logging and metrics.
var (
	// ErrInvalidURL indicates the URL format is invalid or uses an
	// unsupported scheme. Only http and https are fetched.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a private IP address.
	ErrPrivateIP = errors.New("private IP access denied")

	// ErrTooManyRedirects indicates the redirect chain exceeded the
	// configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrExtractFailed indicates readable content extraction failed.
	ErrExtractFailed = errors.New("content extraction failed")
)
