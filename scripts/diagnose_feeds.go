// Diagnose every feed in the YAML configuration: HTTP reachability,
// redirects, parseability, item counts, and staleness. Produces a text
// report, a JSON report, and suggested config edits.
//
// Usage: go run scripts/diagnose_feeds.go [config.yaml]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"techpulse/internal/config"
)

// FeedDiagnostic is the diagnostic result for a single feed.
type FeedDiagnostic struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	Category      string `json:"category"`
	Status        string `json:"status"` // "OK", "HTTP_ERROR", "PARSE_ERROR", "EMPTY", "TIMEOUT", "REDIRECT", "STALE"
	HTTPCode      int    `json:"http_code"`
	ItemCount     int    `json:"item_count"`
	LatestDate    string `json:"latest_date"`
	ErrorMessage  string `json:"error_message,omitempty"`
	FeedType      string `json:"feed_type"` // "rss", "atom", "json", ""
	RedirectURL   string `json:"redirect_url,omitempty"`
	ResponseTime  int64  `json:"response_time_ms"`
	ContentLength int64  `json:"content_length"`
}

// Feeds with no item newer than this are flagged STALE.
const staleAfter = 90 * 24 * time.Hour

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Diagnosing %d feed sources from %s...\n", len(cfg.Feeds), configPath)

	diagnostics := make([]FeedDiagnostic, 0, len(cfg.Feeds))
	for i, feed := range cfg.Feeds {
		log.Printf("[%d/%d] Diagnosing: %s", i+1, len(cfg.Feeds), feed.Name)
		diag := diagnoseFeed(feed, 30*time.Second)
		diagnostics = append(diagnostics, diag)

		// Rate limiting to be nice to servers
		time.Sleep(500 * time.Millisecond)
	}

	generateReport(diagnostics)
	generateJSONReport(diagnostics)
	generateConfigFixes(diagnostics, configPath)
}

func diagnoseFeed(feed config.FeedConfig, timeout time.Duration) FeedDiagnostic {
	diag := FeedDiagnostic{
		Name:     feed.Name,
		URL:      feed.URL,
		Category: feed.Category,
	}

	startTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		diag.Status = "REQUEST_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}
	req.Header.Set("User-Agent", "TechPulse-Diagnostic/1.0")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}

	resp, err := client.Do(req)
	diag.ResponseTime = time.Since(startTime).Milliseconds()

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
			diag.ErrorMessage = fmt.Sprintf("Request timeout after %v", timeout)
		} else {
			diag.Status = "HTTP_ERROR"
			diag.ErrorMessage = err.Error()
		}
		return diag
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Failed to close response body: %v", err)
		}
	}()

	diag.HTTPCode = resp.StatusCode
	diag.ContentLength = resp.ContentLength

	if resp.Request.URL.String() != feed.URL {
		diag.RedirectURL = resp.Request.URL.String()
		diag.Status = "REDIRECT"
	}

	if resp.StatusCode != http.StatusOK {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status)
		return diag
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		diag.Status = "PARSE_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	diag.FeedType = parsed.FeedType
	diag.ItemCount = len(parsed.Items)

	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
		diag.ErrorMessage = "Feed has no items"
		return diag
	}

	var latest time.Time
	for _, item := range parsed.Items {
		ts := item.PublishedParsed
		if ts == nil {
			ts = item.UpdatedParsed
		}
		if ts != nil && ts.After(latest) {
			latest = *ts
		}
	}
	if !latest.IsZero() {
		diag.LatestDate = latest.Format(time.RFC3339)
		if time.Since(latest) > staleAfter {
			diag.Status = "STALE"
			diag.ErrorMessage = fmt.Sprintf("Latest item is %s old", time.Since(latest).Round(24*time.Hour))
			return diag
		}
	}

	if diag.Status == "" {
		diag.Status = "OK"
	}
	return diag
}

func writef(f *os.File, format string, args ...interface{}) {
	if _, err := fmt.Fprintf(f, format, args...); err != nil {
		log.Printf("Failed to write to report: %v", err)
	}
}

func isWorking(status string) bool {
	return status == "OK" || status == "REDIRECT"
}

func generateReport(diagnostics []FeedDiagnostic) {
	f, err := os.Create("feed_diagnostic_report.txt")
	if err != nil {
		log.Printf("Failed to create report file: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close report file: %v", err)
		}
	}()

	writef(f, "===============================================\n")
	writef(f, "TechPulse Feed Diagnostic Report\n")
	writef(f, "Generated: %s\n", time.Now().Format(time.RFC3339))
	writef(f, "Total Sources: %d\n", len(diagnostics))
	writef(f, "===============================================\n\n")

	statusCount := make(map[string]int)
	var okCount, errorCount int
	for _, d := range diagnostics {
		statusCount[d.Status]++
		if isWorking(d.Status) {
			okCount++
		} else {
			errorCount++
		}
	}

	writef(f, "SUMMARY:\n")
	writef(f, "  Working: %d (%.1f%%)\n", okCount, float64(okCount)/float64(len(diagnostics))*100)
	writef(f, "  Broken:  %d (%.1f%%)\n", errorCount, float64(errorCount)/float64(len(diagnostics))*100)
	writef(f, "\nSTATUS BREAKDOWN:\n")
	for status, count := range statusCount {
		writef(f, "  %s: %d\n", status, count)
	}
	writef(f, "\n")

	writef(f, "WORKING FEEDS (%d):\n", okCount)
	writef(f, "-------------------------------------------\n")
	for _, d := range diagnostics {
		if !isWorking(d.Status) {
			continue
		}
		writef(f, "Name: %s (%s)\n", d.Name, d.Category)
		writef(f, "  URL: %s\n", d.URL)
		writef(f, "  Type: %s | Items: %d | Latest: %s\n", d.FeedType, d.ItemCount, d.LatestDate)
		writef(f, "  Response: %dms | HTTP: %d\n", d.ResponseTime, d.HTTPCode)
		if d.RedirectURL != "" {
			writef(f, "  Redirected to: %s\n", d.RedirectURL)
		}
		writef(f, "\n")
	}

	writef(f, "\nBROKEN FEEDS (%d):\n", errorCount)
	writef(f, "-------------------------------------------\n")
	for _, d := range diagnostics {
		if isWorking(d.Status) {
			continue
		}
		writef(f, "Name: %s (%s)\n", d.Name, d.Category)
		writef(f, "  URL: %s\n", d.URL)
		writef(f, "  Status: %s | HTTP: %d\n", d.Status, d.HTTPCode)
		writef(f, "  Error: %s\n", d.ErrorMessage)
		writef(f, "  Response: %dms\n", d.ResponseTime)
		writef(f, "\n")
	}

	log.Println("Text report generated: feed_diagnostic_report.txt")
}

func generateJSONReport(diagnostics []FeedDiagnostic) {
	f, err := os.Create("feed_diagnostic_report.json")
	if err != nil {
		log.Printf("Failed to create JSON report: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close JSON report file: %v", err)
		}
	}()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(diagnostics); err != nil {
		log.Printf("Failed to write JSON report: %v", err)
		return
	}

	log.Println("JSON report generated: feed_diagnostic_report.json")
}

// generateConfigFixes writes suggested YAML edits: updated URLs for
// permanent redirects and a removal list for broken feeds.
func generateConfigFixes(diagnostics []FeedDiagnostic, configPath string) {
	f, err := os.Create("feed_fixes.yaml")
	if err != nil {
		log.Printf("Failed to create fixes file: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close fixes file: %v", err)
		}
	}()

	writef(f, "# Suggested edits for %s\n", configPath)
	writef(f, "# Generated: %s\n\n", time.Now().Format(time.RFC3339))

	hasRedirects := false
	for _, d := range diagnostics {
		if d.RedirectURL == "" || d.RedirectURL == d.URL {
			continue
		}
		if !hasRedirects {
			writef(f, "# Feeds that redirect, update their url to the final location:\n")
			hasRedirects = true
		}
		writef(f, "#   %s\n", d.Name)
		writef(f, "#     old: %s\n", d.URL)
		writef(f, "#     new: %s\n", d.RedirectURL)
	}
	if hasRedirects {
		writef(f, "\n")
	}

	hasBroken := false
	for _, d := range diagnostics {
		if isWorking(d.Status) {
			continue
		}
		if !hasBroken {
			writef(f, "# Broken feeds, review and fix or remove from the feeds list:\n")
			hasBroken = true
		}
		writef(f, "#   %s (%s): %s\n", d.Name, d.Status, strings.ReplaceAll(d.ErrorMessage, "\n", " "))
	}

	log.Println("Config fixes generated: feed_fixes.yaml")
}
