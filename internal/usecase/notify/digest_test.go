package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techpulse/internal/usecase/pipeline"
	"techpulse/internal/usecase/report"
)

func TestBuildDigest(t *testing.T) {
	entries := make([]report.Entry, 0, 7)
	for i := 0; i < 7; i++ {
		entries = append(entries, report.Entry{
			Title:    "Article",
			Link:     "https://example.com/a",
			Interest: "AI",
			Source:   "Alpha",
			Score:    float64(10 - i),
		})
	}
	entries[0].Title = "Top story"

	rep := &report.Report{
		GeneratedAt: time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC),
		RunID:       "run-1",
		Summary:     "a quiet week",
		Entries:     entries,
		Stats: report.Statistics{
			TotalArticles: 7,
			AvgScore:      6.5,
			MaxScore:      10,
		},
		RunStats: pipeline.RunStats{
			SourcesSucceeded: 3,
			SourcesFailed:    1,
		},
	}

	digest := BuildDigest(rep, "output/report.html")

	assert.Equal(t, "run-1", digest.RunID)
	assert.Equal(t, rep.GeneratedAt, digest.GeneratedAt)
	assert.Equal(t, "output/report.html", digest.ReportPath)
	assert.Equal(t, "a quiet week", digest.Summary)
	assert.Equal(t, 7, digest.TotalArticles)
	assert.Equal(t, 6.5, digest.AvgScore)
	assert.Equal(t, 3, digest.FeedsSucceeded)
	assert.Equal(t, 1, digest.FeedsFailed)

	// capped at the top five
	require.Len(t, digest.Top, 5)
	assert.Equal(t, "Top story", digest.Top[0].Title)
	assert.Equal(t, 10.0, digest.Top[0].Score)
}

func TestBuildDigest_EmptyReport(t *testing.T) {
	rep := &report.Report{RunID: "run-2", GeneratedAt: time.Now()}

	digest := BuildDigest(rep, "")

	assert.Empty(t, digest.Top)
	assert.Empty(t, digest.ReportPath)
	assert.Zero(t, digest.TotalArticles)
}
