// Command worker runs the aggregation pipeline on a cron schedule and
// delivers the resulting digest to the configured notification channels.
// It exposes health and Prometheus metrics endpoints for operations.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"techpulse/internal/config"
	"techpulse/internal/infra/fetcher"
	"techpulse/internal/infra/notifier"
	"techpulse/internal/infra/renderer"
	"techpulse/internal/infra/scraper"
	"techpulse/internal/infra/summarizer"
	"techpulse/internal/infra/worker"
	"techpulse/internal/observability/logging"
	"techpulse/internal/observability/slo"
	"techpulse/internal/usecase/notify"
	"techpulse/internal/usecase/pipeline"
	"techpulse/internal/usecase/report"
)

const notifyWebhookTimeout = 10 * time.Second

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := runWorker(logger); err != nil {
		logger.Error("worker exited with error", "error", err)
		os.Exit(1)
	}
}

func runWorker(logger *slog.Logger) error {
	metrics := worker.NewWorkerMetrics()
	cfg := worker.LoadConfigFromEnv(logger, metrics)
	if err := cfg.Validate(); err != nil {
		return err
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	summ, err := summarizer.NewFromEnv()
	if err != nil {
		return fmt.Errorf("configure summarizer: %w", err)
	}

	appCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	notifySvc := notify.NewService(buildChannels(appCfg.Notify), cfg.NotifyMaxConcurrent)

	job := &aggregationJob{
		logger:     logger,
		metrics:    metrics,
		configPath: cfg.ConfigPath,
		runTimeout: cfg.RunTimeout,
		summarizer: summ,
		notify:     notifySvc,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	healthServer := worker.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)

	scheduler := cron.New(cron.WithLocation(location))
	if _, err := scheduler.AddFunc(cfg.CronSchedule, func() { job.execute(ctx) }); err != nil {
		return fmt.Errorf("register cron schedule %q: %w", cfg.CronSchedule, err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return healthServer.Start(groupCtx)
	})
	group.Go(func() error {
		return runMetricsServer(groupCtx, fmt.Sprintf(":%d", cfg.MetricsPort), logger)
	})
	group.Go(func() error {
		scheduler.Start()
		logger.Info("scheduler started",
			"schedule", cfg.CronSchedule,
			"timezone", cfg.Timezone,
		)
		<-groupCtx.Done()

		stopCtx := scheduler.Stop()
		select {
		case <-stopCtx.Done():
		case <-time.After(30 * time.Second):
			logger.Warn("scheduler stop timed out, abandoning running job")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return notifySvc.Shutdown(shutdownCtx)
	})

	healthServer.SetReady(true)
	logger.Info("worker ready",
		"health_port", cfg.HealthPort,
		"metrics_port", cfg.MetricsPort,
	)

	err = group.Wait()
	healthServer.SetReady(false)
	return err
}

// buildChannels wires notification channels. The YAML toggles say whether
// a channel should be used; the webhook URLs come from the environment. A
// channel with no webhook URL stays disabled but still reports health.
func buildChannels(toggles config.NotifyConfig) []notify.Channel {
	return []notify.Channel{
		notify.NewSlackChannel(notifier.SlackConfig{
			Enabled:    toggles.Slack.On() && os.Getenv("SLACK_WEBHOOK_URL") != "",
			WebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
			Timeout:    notifyWebhookTimeout,
		}),
		notify.NewDiscordChannel(notifier.DiscordConfig{
			Enabled:    toggles.Discord.On() && os.Getenv("DISCORD_WEBHOOK_URL") != "",
			WebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),
			Timeout:    notifyWebhookTimeout,
		}),
	}
}

// aggregationJob is one scheduled fetch-score-report-notify cycle.
type aggregationJob struct {
	logger     *slog.Logger
	metrics    *worker.WorkerMetrics
	configPath string
	runTimeout time.Duration
	summarizer summarizer.Summarizer
	notify     notify.Service
}

// execute runs one cycle. The configuration file is re-read on every run
// so feed and interest edits take effect without a restart.
func (j *aggregationJob) execute(ctx context.Context) {
	start := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, j.runTimeout)
	defer cancel()

	err := j.runOnce(runCtx)
	duration := time.Since(start)
	j.metrics.RecordJobDuration(duration.Seconds())

	if err != nil {
		j.metrics.RecordJobRun("failure")
		j.logger.Error("scheduled run failed", "error", err, "duration", duration)
		return
	}
	j.metrics.RecordJobRun("success")
	j.metrics.RecordLastSuccess()
}

func (j *aggregationJob) runOnce(ctx context.Context) error {
	cfg, err := config.Load(j.configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	client := &http.Client{Timeout: cfg.Fetching.Timeout()}
	feedFetcher := scraper.NewRSSFetcher(client, cfg.Fetching.UserAgent)

	var contentFetcher pipeline.ContentFetcher
	contentCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		j.logger.Warn("content fetch config invalid, enrichment disabled", "error", err)
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
		return fmt.Errorf("build pipeline: %w", err)
	}

	result, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}
	j.metrics.RecordFeedsProcessed(result.Stats.Sources)
	slo.UpdateFeedSuccess(result.Stats.SourcesSucceeded, result.Stats.Sources)
	slo.UpdateRunDuration(result.Stats.Duration.Seconds())

	rep := report.Build(result, cfg.InterestEntities(), cfg.Output.MinScoreValue(), time.Now())
	j.attachSummary(ctx, rep)

	rend, err := renderer.NewHTMLRenderer(cfg.Output.Directory, cfg.Output.FilenamePrefix)
	if err != nil {
		return fmt.Errorf("build renderer: %w", err)
	}
	reportPath, err := rend.Save(rep)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	j.logger.Info("report written",
		"path", reportPath,
		"run_id", result.Stats.RunID,
		"selected", result.Stats.Selected,
	)

	digest := notify.BuildDigest(rep, reportPath)
	if err := j.notify.NotifyDigest(ctx, digest); err != nil {
		j.logger.Warn("digest dispatch incomplete", "error", err)
	}
	j.recordDeliveryHealth()
	return nil
}

// recordDeliveryHealth approximates delivery success from circuit breaker
// state: a channel with an open breaker has been failing consistently.
func (j *aggregationJob) recordDeliveryHealth() {
	var enabled, healthy int
	for _, ch := range j.notify.GetChannelHealth() {
		if !ch.Enabled {
			continue
		}
		enabled++
		if !ch.CircuitBreakerOpen {
			healthy++
		}
	}
	slo.UpdateDeliverySuccess(healthy, enabled)
}

func (j *aggregationJob) attachSummary(ctx context.Context, rep *report.Report) {
	if len(rep.Entries) == 0 {
		return
	}
	if _, ok := j.summarizer.(*summarizer.NoOp); ok {
		return
	}

	var sb strings.Builder
	for _, entry := range rep.Top(10) {
		fmt.Fprintf(&sb, "%s: %s\n", entry.Title, entry.Description)
	}
	summary, err := j.summarizer.Summarize(ctx, sb.String())
	if err != nil {
		j.logger.Warn("summary generation failed", "error", err)
		return
	}
	rep.Summary = summary
}
