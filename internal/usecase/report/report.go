// Package report builds the presentation model of one aggregation run:
// score bands, grouping, summary statistics, and keyword counts for the
// HTML renderer and the notification digest.
package report

import (
	"sort"
	"strings"
	"time"

	"techpulse/internal/domain/entity"
	"techpulse/internal/usecase/pipeline"
)

// Band classifies a score for presentation.
type Band string

// Presentation bands. The values double as CSS classes in the HTML report.
const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// Score band boundaries.
const (
	lowThreshold  = 3.0
	highThreshold = 6.0
)

// BandFor returns the band of a score. Scores below 3 are low, scores
// from 3 up to but excluding 6 are medium, 6 and above are high.
func BandFor(score float64) Band {
	switch {
	case score < lowThreshold:
		return BandLow
	case score < highThreshold:
		return BandMedium
	default:
		return BandHigh
	}
}

// Label returns the human-readable band name.
func (b Band) Label() string {
	switch b {
	case BandLow:
		return "Low"
	case BandMedium:
		return "Medium"
	case BandHigh:
		return "High"
	default:
		return string(b)
	}
}

// Entry is one selected article prepared for rendering.
type Entry struct {
	Title       string
	Description string
	Link        string
	Source      string
	Category    string
	Interest    string
	Score       float64
	Band        Band
	PublishedAt *time.Time
}

// Group is an ordered set of entries sharing a grouping key.
type Group struct {
	Name    string
	Entries []Entry
}

// Statistics summarizes the selected set for the report header.
type Statistics struct {
	TotalArticles   int
	AvgScore        float64
	MaxScore        float64
	MinScore        float64
	CategoriesCount int
	InterestsCount  int
}

// DistributionBucket is one range of the score histogram.
type DistributionBucket struct {
	Range string
	Count int
}

// KeywordCount is one keyword with its total occurrence count across the
// selected articles.
type KeywordCount struct {
	Keyword string
	Count   int
}

// Report is the full presentation model of one run.
type Report struct {
	GeneratedAt  time.Time
	RunID        string
	MinScore     float64
	Entries      []Entry
	ByInterest   []Group
	ByCategory   []Group
	Stats        Statistics
	Distribution []DistributionBucket
	TopKeywords  []KeywordCount
	FetchErrors  []string
	RunStats     pipeline.RunStats

	// Summary is an optional AI-generated digest of the selection.
	// Empty when summarization is disabled.
	Summary string
}

// Build assembles the report model from a finished aggregation run.
// The entries keep the selection's ranked order; groups are ordered by
// first appearance within that ranking, so everything downstream stays
// deterministic.
func Build(result *pipeline.Result, interests []*entity.Interest, minScore float64, generatedAt time.Time) *Report {
	entries := make([]Entry, 0, len(result.Selected))
	for _, scored := range result.Selected {
		entries = append(entries, Entry{
			Title:       scored.Article.Title,
			Description: scored.Article.Description,
			Link:        scored.Article.Link,
			Source:      scored.Article.SourceName,
			Category:    scored.Article.Category,
			Interest:    scored.InterestName,
			Score:       scored.Score,
			Band:        BandFor(scored.Score),
			PublishedAt: scored.Article.PublishedAt,
		})
	}

	fetchErrs := make([]string, 0, len(result.FetchErrors))
	for _, fe := range result.FetchErrors {
		fetchErrs = append(fetchErrs, fe.Error())
	}

	return &Report{
		GeneratedAt:  generatedAt,
		RunID:        result.Stats.RunID,
		MinScore:     minScore,
		Entries:      entries,
		ByInterest:   groupBy(entries, func(e Entry) string { return e.Interest }),
		ByCategory:   groupBy(entries, func(e Entry) string { return e.Category }),
		Stats:        calculateStatistics(entries),
		Distribution: scoreDistribution(entries),
		TopKeywords:  keywordStatistics(entries, interests),
		FetchErrors:  fetchErrs,
		RunStats:     result.Stats,
	}
}

// Top returns the first n entries of the ranked selection.
func (r *Report) Top(n int) []Entry {
	if n <= 0 || n > len(r.Entries) {
		n = len(r.Entries)
	}
	return r.Entries[:n]
}

// groupBy partitions entries by key, keeping groups in order of first
// appearance and entries in their ranked order.
func groupBy(entries []Entry, key func(Entry) string) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, e := range entries {
		name := key(e)
		if name == "" {
			name = "Other"
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// calculateStatistics aggregates header statistics. An empty selection
// yields all zeros rather than dividing by zero.
func calculateStatistics(entries []Entry) Statistics {
	if len(entries) == 0 {
		return Statistics{}
	}

	stats := Statistics{
		TotalArticles: len(entries),
		MaxScore:      entries[0].Score,
		MinScore:      entries[0].Score,
	}

	var sum float64
	categories := make(map[string]struct{})
	interests := make(map[string]struct{})
	for _, e := range entries {
		sum += e.Score
		if e.Score > stats.MaxScore {
			stats.MaxScore = e.Score
		}
		if e.Score < stats.MinScore {
			stats.MinScore = e.Score
		}
		categories[e.Category] = struct{}{}
		interests[e.Interest] = struct{}{}
	}

	stats.AvgScore = sum / float64(len(entries))
	stats.CategoriesCount = len(categories)
	stats.InterestsCount = len(interests)
	return stats
}

// scoreDistribution buckets the selection's scores for the statistics
// section. Buckets are fixed and returned in ascending order, including
// empty ones.
func scoreDistribution(entries []Entry) []DistributionBucket {
	buckets := []DistributionBucket{
		{Range: "0-2"},
		{Range: "2-4"},
		{Range: "4-6"},
		{Range: "6-8"},
		{Range: "8+"},
	}
	for _, e := range entries {
		switch {
		case e.Score < 2:
			buckets[0].Count++
		case e.Score < 4:
			buckets[1].Count++
		case e.Score < 6:
			buckets[2].Count++
		case e.Score < 8:
			buckets[3].Count++
		default:
			buckets[4].Count++
		}
	}
	return buckets
}

// keywordStatistics counts how often each configured keyword occurs in
// the selected articles, sorted by count descending, then keyword.
// Each entry is matched against its own interest's keywords only.
func keywordStatistics(entries []Entry, interests []*entity.Interest) []KeywordCount {
	keywordsByInterest := make(map[string][]string, len(interests))
	for _, in := range interests {
		keywordsByInterest[in.Name] = in.Keywords
	}

	counts := make(map[string]int)
	for _, e := range entries {
		haystack := strings.ToLower(e.Title + " " + e.Description)
		for _, kw := range keywordsByInterest[e.Interest] {
			needle := strings.ToLower(strings.TrimSpace(kw))
			if needle == "" {
				continue
			}
			if n := strings.Count(haystack, needle); n > 0 {
				counts[kw] += n
			}
		}
	}

	stats := make([]KeywordCount, 0, len(counts))
	for kw, n := range counts {
		stats = append(stats, KeywordCount{Keyword: kw, Count: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Keyword < stats[j].Keyword
	})
	return stats
}
