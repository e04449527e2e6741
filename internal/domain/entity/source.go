package entity

// FeedSource describes one configured RSS/Atom feed.
// Sources are loaded from configuration and are read-only for the
// lifetime of a run.
type FeedSource struct {
	Name     string
	URL      string
	Category string
}

// Validate checks that the source carries the fields every feed needs.
// The URL is validated for scheme and host; deeper reachability checks are
// the fetcher's job.
func (s *FeedSource) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "feed name is required"}
	}
	if s.Category == "" {
		return &ValidationError{Field: "category", Message: "feed category is required"}
	}
	return ValidateURL(s.URL)
}
