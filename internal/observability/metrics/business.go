package metrics

import (
	"time"
)

// RecordFeedFetch records a successful feed fetch with its duration and
// the number of entries the feed yielded.
func RecordFeedFetch(source string, duration time.Duration, items int) {
	FeedFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if items > 0 {
		ArticlesFetchedTotal.WithLabelValues(source).Add(float64(items))
	}
}

// RecordFeedFetchError records a failed feed fetch.
// errorType is a coarse bucket such as "timeout", "canceled", or "fetch_failed".
func RecordFeedFetchError(source, errorType string) {
	FeedFetchErrors.WithLabelValues(source, errorType).Inc()
}

// RecordPipelineRun records the outcome of one aggregation run.
// Status should be "success", "partial", or "failed".
func RecordPipelineRun(status string, duration time.Duration, selected int) {
	PipelineRunsTotal.WithLabelValues(status).Inc()
	PipelineRunDuration.Observe(duration.Seconds())
	ArticlesSelectedLastRun.Set(float64(selected))
}

// RecordContentFetch records a content enrichment attempt.
// Result should be "success", "failure", or "skipped"; duration and size
// are only observed for attempts that actually went to the network.
func RecordContentFetch(result string, duration time.Duration, size int) {
	ContentFetchAttemptsTotal.WithLabelValues(result).Inc()
	if result == "skipped" {
		return
	}
	ContentFetchDuration.Observe(duration.Seconds())
	if size > 0 {
		ContentFetchSize.Observe(float64(size))
	}
}

// RecordSummarization records the result and duration of a digest
// summarization call.
func RecordSummarization(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	SummarizationsTotal.WithLabelValues(status).Inc()
	SummarizationDuration.Observe(duration.Seconds())
}

// RecordReportRendered records a rendered report by output format.
func RecordReportRendered(format string) {
	ReportsRenderedTotal.WithLabelValues(format).Inc()
}
