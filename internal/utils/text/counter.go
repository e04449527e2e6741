// Package text provides utilities for text processing and analysis.
// This package includes reusable functions for character counting and HTML
// stripping shared by the feed pipeline, the summarizer, and the notifiers.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
// It correctly handles multi-byte characters including Japanese, Chinese,
// emoji, and other Unicode characters by counting runes instead of bytes.
//
// Examples:
//
//	CountRunes("hello")     // returns 5 (ASCII text)
//	CountRunes("こんにちは")  // returns 5 (Japanese text)
//	CountRunes("")          // returns 0 (empty string)
func CountRunes(text string) int {
	return len([]rune(text))
}

// Truncate shortens text to at most limit runes, appending an ellipsis when
// anything was cut. A limit of zero or less returns the text unchanged.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
