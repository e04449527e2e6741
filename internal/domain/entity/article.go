// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article, FeedSource and Interest,
// along with their validation rules and domain-specific errors.
package entity

import (
	"strings"
	"time"
)

// Article represents a single normalized entry from an RSS/Atom feed.
// Articles are created by the fetcher and are immutable afterwards:
// no downstream stage mutates an Article once it has been normalized.
type Article struct {
	Title       string
	Description string
	Link        string
	SourceName  string
	Category    string
	Author      string
	PublishedAt *time.Time
}

// Normalize trims surrounding whitespace from the free-text fields.
// Feeds frequently ship titles and descriptions with leading or trailing
// whitespace; normalization happens exactly once, at the fetcher boundary.
func (a *Article) Normalize() {
	a.Title = strings.TrimSpace(a.Title)
	a.Description = strings.TrimSpace(a.Description)
	a.Author = strings.TrimSpace(a.Author)
	a.Link = strings.TrimSpace(a.Link)
}

// ScoredArticle pairs an Article with the interest it matched and the
// relevance score computed for that pairing. One article may yield several
// ScoredArticle values, one per matching interest.
//
// Invariant: Score >= 0, and Score is fully determined by the article text
// and the interest's keywords and weight.
type ScoredArticle struct {
	Article            *Article
	InterestName       string
	Score              float64
	TitleMatches       int
	DescriptionMatches int
}
