package notify

import (
	"techpulse/internal/infra/notifier"
	"techpulse/internal/usecase/report"
)

// digestTopN is how many top articles a digest carries.
const digestTopN = 5

// BuildDigest flattens a report into the notification payload.
// reportPath is the saved HTML file, empty on dry runs.
func BuildDigest(rep *report.Report, reportPath string) *notifier.Digest {
	top := rep.Top(digestTopN)
	items := make([]notifier.DigestItem, 0, len(top))
	for _, e := range top {
		items = append(items, notifier.DigestItem{
			Title:    e.Title,
			Link:     e.Link,
			Interest: e.Interest,
			Source:   e.Source,
			Score:    e.Score,
		})
	}

	return &notifier.Digest{
		GeneratedAt:    rep.GeneratedAt,
		RunID:          rep.RunID,
		ReportPath:     reportPath,
		Summary:        rep.Summary,
		TotalArticles:  rep.Stats.TotalArticles,
		AvgScore:       rep.Stats.AvgScore,
		MaxScore:       rep.Stats.MaxScore,
		FeedsSucceeded: rep.RunStats.SourcesSucceeded,
		FeedsFailed:    rep.RunStats.SourcesFailed,
		Top:            items,
	}
}
