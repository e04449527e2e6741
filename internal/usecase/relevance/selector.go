package relevance

import (
	"sort"

	"techpulse/internal/domain/entity"
)

// Selection controls how ranked candidates are reduced to the final set.
type Selection struct {
	// MinScore drops candidates scoring strictly below it. Candidates
	// whose score equals MinScore exactly are kept.
	MinScore float64

	// MaxArticles caps the total number of selected entries across all
	// interests combined. Zero or negative disables the cap.
	MaxArticles int
}

// Select filters, orders, deduplicates, and caps the candidate set.
//
// Ordering is fully deterministic: score descending, then title, interest
// name, and link ascending. Two runs over the same input always produce
// the same output slice. Duplicate (interest, link) pairs keep only their
// first occurrence after sorting.
func Select(candidates []entity.ScoredArticle, sel Selection) []entity.ScoredArticle {
	kept := make([]entity.ScoredArticle, 0, len(candidates))
	for _, c := range candidates {
		if c.Score < sel.MinScore {
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		switch {
		case a.Score != b.Score:
			return a.Score > b.Score
		case a.Article.Title != b.Article.Title:
			return a.Article.Title < b.Article.Title
		case a.InterestName != b.InterestName:
			return a.InterestName < b.InterestName
		default:
			return a.Article.Link < b.Article.Link
		}
	})

	type dedupeKey struct {
		interest string
		link     string
	}
	seen := make(map[dedupeKey]struct{}, len(kept))
	selected := make([]entity.ScoredArticle, 0, len(kept))
	for _, c := range kept {
		key := dedupeKey{interest: c.InterestName, link: c.Article.Link}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		selected = append(selected, c)
	}

	if sel.MaxArticles > 0 && len(selected) > sel.MaxArticles {
		selected = selected[:sel.MaxArticles]
	}
	return selected
}
