package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordFeedFetch(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		duration time.Duration
		items    int
	}{
		{name: "fast feed", source: "Heise", duration: 200 * time.Millisecond, items: 12},
		{name: "slow feed", source: "The Verge", duration: 4 * time.Second, items: 40},
		{name: "empty feed", source: "Empty", duration: 100 * time.Millisecond, items: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordFeedFetch(tt.source, tt.duration, tt.items)
			})
		})
	}
}

func TestRecordFeedFetchError(t *testing.T) {
	tests := []struct {
		name      string
		errorType string
	}{
		{name: "timeout", errorType: "timeout"},
		{name: "canceled", errorType: "canceled"},
		{name: "generic failure", errorType: "fetch_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordFeedFetchError("Heise", tt.errorType)
			})
		})
	}
}

func TestRecordPipelineRun(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		selected int
	}{
		{name: "clean run", status: "success", selected: 10},
		{name: "partial run", status: "partial", selected: 3},
		{name: "failed run", status: "failed", selected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordPipelineRun(tt.status, 2*time.Second, tt.selected)
			})
		})
	}
}

func TestRecordContentFetch(t *testing.T) {
	tests := []struct {
		name     string
		result   string
		duration time.Duration
		size     int
	}{
		{name: "success", result: "success", duration: 800 * time.Millisecond, size: 4096},
		{name: "failure", result: "failure", duration: 2 * time.Second, size: 0},
		{name: "skipped", result: "skipped", duration: 0, size: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordContentFetch(tt.result, tt.duration, tt.size)
			})
		})
	}
}

func TestRecordSummarization(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordSummarization(true, time.Second)
		RecordSummarization(false, 3*time.Second)
	})
}

func TestMetricsFunctions_AllCallable(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordFeedFetch("Test Source", time.Second, 10)
		RecordFeedFetchError("Test Source", "fetch_failed")
		RecordPipelineRun("success", 5*time.Second, 7)
		RecordContentFetch("success", 500*time.Millisecond, 2048)
		RecordSummarization(true, 2*time.Second)
		RecordReportRendered("html")
	})
}
