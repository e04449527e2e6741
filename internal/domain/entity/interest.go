package entity

// Interest is a user-defined topic: a set of keywords plus a weight that
// scales the relevance score of matching articles.
// Interests are loaded from configuration and never mutated afterwards.
type Interest struct {
	Name     string
	Keywords []string
	Weight   float64
}

// Validate enforces the interest invariants: a name, at least one non-empty
// keyword, and a strictly positive weight. A non-positive weight would make
// every score meaningless, so it is rejected up front rather than silently
// computed.
func (i *Interest) Validate() error {
	if i.Name == "" {
		return &ValidationError{Field: "name", Message: "interest name is required"}
	}
	if len(i.Keywords) == 0 {
		return &ValidationError{Field: "keywords", Message: "at least one keyword is required"}
	}
	for _, kw := range i.Keywords {
		if kw == "" {
			return &ValidationError{Field: "keywords", Message: "keywords must not be empty strings"}
		}
	}
	if i.Weight <= 0 {
		return &ValidationError{Field: "weight", Message: "weight must be greater than zero"}
	}
	return nil
}
