package text

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML extracts the visible text from an HTML fragment and collapses
// runs of whitespace to single spaces. Feed descriptions routinely arrive
// as HTML; matching operates on plain text only.
//
// Plain text input comes back trimmed with entities decoded. On a parse
// failure the input is returned whitespace-collapsed rather than dropped.
func StripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	if !strings.ContainsAny(fragment, "<&") {
		return collapseWhitespace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseWhitespace(fragment)
	}
	doc.Find("script,style").Remove()
	return collapseWhitespace(doc.Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
