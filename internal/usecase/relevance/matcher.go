// Package relevance matches fetched articles against configured interests
// and ranks the resulting candidates. Matching is plain case-insensitive
// substring search; every keyword occurrence counts, and every
// (article, interest) pair is evaluated independently.
package relevance

import (
	"strings"

	"techpulse/internal/domain/entity"
)

// MatchCounts holds the number of keyword occurrences found in each
// searchable field of an article.
type MatchCounts struct {
	Title       int
	Description int
}

// Total returns the combined occurrence count across all fields.
func (m MatchCounts) Total() int {
	return m.Title + m.Description
}

// CountMatches counts case-insensitive substring occurrences of every
// keyword of the interest in the article's title and description.
// Occurrences are summed across keywords, so two keywords hitting the same
// field both contribute to that field's count.
func CountMatches(article *entity.Article, interest *entity.Interest) MatchCounts {
	title := strings.ToLower(article.Title)
	description := strings.ToLower(article.Description)

	var counts MatchCounts
	for _, keyword := range interest.Keywords {
		kw := strings.ToLower(strings.TrimSpace(keyword))
		if kw == "" {
			continue
		}
		counts.Title += strings.Count(title, kw)
		counts.Description += strings.Count(description, kw)
	}
	return counts
}

// Match evaluates a single article against a single interest.
// It returns a scored candidate and true when at least one keyword occurs
// in the title or description.
func Match(article *entity.Article, interest *entity.Interest) (entity.ScoredArticle, bool) {
	counts := CountMatches(article, interest)
	if counts.Total() == 0 {
		return entity.ScoredArticle{}, false
	}

	return entity.ScoredArticle{
		Article:            article,
		InterestName:       interest.Name,
		Score:              Score(counts, interest.Weight),
		TitleMatches:       counts.Title,
		DescriptionMatches: counts.Description,
	}, true
}

// MatchAll evaluates every (article, interest) pair and returns one
// candidate per pair with at least one keyword occurrence. An article
// matching several interests appears once per matching interest.
func MatchAll(articles []*entity.Article, interests []*entity.Interest) []entity.ScoredArticle {
	candidates := make([]entity.ScoredArticle, 0, len(articles))
	for _, article := range articles {
		for _, interest := range interests {
			if scored, ok := Match(article, interest); ok {
				candidates = append(candidates, scored)
			}
		}
	}
	return candidates
}
