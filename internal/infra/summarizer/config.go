package summarizer

import "fmt"

// SummarizerConfig is the common shape of backend configuration.
type SummarizerConfig interface {
	// GetCharacterLimit returns the maximum summary length in characters.
	GetCharacterLimit() int

	// Validate checks all configuration fields.
	Validate() error
}

const (
	minCharLimit     = 100
	maxCharLimit     = 5000
	defaultCharLimit = 500
)

// ValidateCharacterLimit checks that the limit is within 100-5000.
func ValidateCharacterLimit(limit int) error {
	if limit < minCharLimit {
		return fmt.Errorf("character limit %d is below minimum %d", limit, minCharLimit)
	}
	if limit > maxCharLimit {
		return fmt.Errorf("character limit %d exceeds maximum %d", limit, maxCharLimit)
	}
	return nil
}
