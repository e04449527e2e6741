// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breakers and retry logic for the external calls the
// aggregator makes: feed endpoints, article pages, AI APIs, and webhooks.
//
// Feed fetching uses circuit breakers only; within one aggregation run each
// feed gets exactly one attempt. Retry with exponential backoff is reserved
// for AI summarization and notification delivery.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.FeedFetchConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchFeed()
//	})
//
//	err := retry.WithBackoff(ctx, retry.AIAPIConfig(), func() error {
//	    return callSummarizer()
//	})
package resilience
