// Command techpulse runs one aggregation cycle from the terminal: fetch
// the configured feeds, score articles against the interest profiles, and
// write an HTML report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"techpulse/internal/config"
	"techpulse/internal/infra/fetcher"
	"techpulse/internal/infra/renderer"
	"techpulse/internal/infra/scraper"
	"techpulse/internal/infra/summarizer"
	"techpulse/internal/observability/logging"
	"techpulse/internal/usecase/pipeline"
	"techpulse/internal/usecase/report"
	"techpulse/internal/utils/text"
)

const previewTitleLimit = 50

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	outputDir := flag.String("output", "", "override the report output directory")
	dryRun := flag.Bool("dry-run", false, "run the pipeline but do not write the report")
	verbose := flag.Bool("verbose", false, "log pipeline internals to stderr")
	flag.Parse()

	if *verbose {
		slog.SetDefault(logging.NewTextLogger())
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("TechPulse RSS Aggregator")
	fmt.Println(strings.Repeat("=", 40))

	fmt.Printf("[1/5] Loading configuration from %s\n", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if *outputDir != "" {
		cfg.Output.Directory = *outputDir
	}
	fmt.Printf("      %d feeds, %d interests\n", len(cfg.Feeds), len(cfg.Interests))

	client := &http.Client{Timeout: cfg.Fetching.Timeout()}
	feedFetcher := scraper.NewRSSFetcher(client, cfg.Fetching.UserAgent)

	var contentFetcher pipeline.ContentFetcher
	contentCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: content fetch config invalid, enrichment disabled: %v\n", err)
	} else if contentCfg.Enabled {
		contentFetcher = fetcher.NewReadabilityFetcher(contentCfg)
	}

	svc, err := pipeline.NewService(feedFetcher, contentFetcher, cfg.Sources(), cfg.InterestEntities(), pipeline.Config{
		MaxConcurrent:    cfg.Fetching.MaxWorkers,
		MinScore:         cfg.Output.MinScoreValue(),
		MaxArticles:      cfg.Output.MaxArticlesValue(),
		ContentThreshold: contentCfg.Threshold,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Printf("[2/5] Fetching %d feeds (timeout %s, %d workers)\n",
		len(cfg.Feeds), cfg.Fetching.Timeout(), cfg.Fetching.MaxWorkers)
	result, err := svc.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Printf("      %d articles from %d/%d feeds\n",
		result.Stats.ArticlesFetched, result.Stats.SourcesSucceeded, result.Stats.Sources)
	for _, fe := range result.FetchErrors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", fe)
	}

	fmt.Printf("[3/5] Scoring against %d interests\n", len(cfg.Interests))
	fmt.Printf("      %d candidates, %d selected (min score %.1f)\n",
		result.Stats.Candidates, result.Stats.Selected, cfg.Output.MinScoreValue())

	fmt.Println("[4/5] Generating report")
	rep := report.Build(result, cfg.InterestEntities(), cfg.Output.MinScoreValue(), time.Now())
	attachSummary(ctx, rep)

	reportPath := ""
	if *dryRun {
		fmt.Println("      dry run, report not written")
	} else {
		rend, err := renderer.NewHTMLRenderer(cfg.Output.Directory, cfg.Output.FilenamePrefix)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		reportPath, err = rend.Save(rep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Printf("      written to %s\n", reportPath)
	}

	fmt.Println("[5/5] Done")
	printSummary(rep, result, reportPath)

	if errors.Is(ctx.Err(), context.Canceled) {
		return 130
	}
	return 0
}

// attachSummary generates the optional AI digest. Any failure leaves
// Summary empty; the report is complete without it.
func attachSummary(ctx context.Context, rep *report.Report) {
	if len(rep.Entries) == 0 {
		return
	}
	summ, err := summarizer.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: summarizer disabled: %v\n", err)
		return
	}
	if _, ok := summ.(*summarizer.NoOp); ok {
		return
	}

	var sb strings.Builder
	for _, entry := range rep.Top(10) {
		fmt.Fprintf(&sb, "%s: %s\n", entry.Title, entry.Description)
	}
	summary, err := summ.Summarize(ctx, sb.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: summary generation failed: %v\n", err)
		return
	}
	rep.Summary = summary
}

func printSummary(rep *report.Report, result *pipeline.Result, reportPath string) {
	fmt.Println()
	fmt.Println("Summary")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("  Feeds:     %d ok, %d failed\n", result.Stats.SourcesSucceeded, result.Stats.SourcesFailed)
	fmt.Printf("  Articles:  %d fetched, %d selected\n", result.Stats.ArticlesFetched, result.Stats.Selected)
	if rep.Stats.TotalArticles > 0 {
		fmt.Printf("  Scores:    avg %.1f, max %.1f, min %.1f\n",
			rep.Stats.AvgScore, rep.Stats.MaxScore, rep.Stats.MinScore)
	}
	fmt.Printf("  Duration:  %s\n", result.Stats.Duration.Round(time.Millisecond))

	if len(rep.TopKeywords) > 0 {
		fmt.Println()
		fmt.Println("Top keywords")
		for i, kw := range rep.TopKeywords {
			if i >= 5 {
				break
			}
			fmt.Printf("  %-20s %d\n", kw.Keyword, kw.Count)
		}
	}

	if rep.Stats.TotalArticles > 0 {
		fmt.Println()
		fmt.Println("Score distribution")
		for _, bucket := range rep.Distribution {
			fmt.Printf("  %-6s %s (%d)\n", bucket.Range, strings.Repeat("#", bucket.Count), bucket.Count)
		}
	}

	top := rep.Top(3)
	if len(top) > 0 {
		fmt.Println()
		fmt.Println("Top picks")
		for _, entry := range top {
			fmt.Printf("  [%.1f] %s\n        -> %s | %s\n",
				entry.Score, text.Truncate(entry.Title, previewTitleLimit), entry.Interest, entry.Source)
		}
	}

	if reportPath != "" {
		if abs, err := filepath.Abs(reportPath); err == nil {
			fmt.Printf("\nOpen file://%s in a browser to view the report.\n", abs)
		}
	}
}
