// Package worker holds the scheduled-run infrastructure: environment
// configuration, health endpoints, and Prometheus metrics for the cron
// daemon.
package worker

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	pkgconfig "techpulse/internal/pkg/config"
)

const (
	defaultCronSchedule  = "0 7 * * *"
	defaultTimezone      = "UTC"
	defaultNotifyWorkers = 10
	defaultRunTimeout    = 30 * time.Minute
	defaultHealthPort    = 9091
	defaultMetricsPort   = 9092
	defaultConfigPath    = "config.yaml"

	minRunTimeout = time.Minute
	maxRunTimeout = 4 * time.Hour
)

// WorkerConfig is the runtime configuration of the scheduled aggregation
// worker. All fields come from the environment with fail-open defaults.
type WorkerConfig struct {
	// CronSchedule is a standard 5-field cron expression for pipeline runs.
	CronSchedule string

	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone string

	// NotifyMaxConcurrent bounds parallel notification deliveries.
	NotifyMaxConcurrent int

	// RunTimeout bounds one full fetch-score-report-notify cycle.
	RunTimeout time.Duration

	// HealthPort serves /health and /health/ready.
	HealthPort int

	// MetricsPort serves the Prometheus /metrics endpoint.
	MetricsPort int

	// ConfigPath locates the YAML feeds and interests file.
	ConfigPath string
}

// Validate checks every field and aggregates all failures into one error.
func (c *WorkerConfig) Validate() error {
	var problems []string

	if err := pkgconfig.ValidateCronSchedule(c.CronSchedule); err != nil {
		problems = append(problems, err.Error())
	}
	if err := pkgconfig.ValidateTimezone(c.Timezone); err != nil {
		problems = append(problems, err.Error())
	}
	if err := pkgconfig.ValidateIntRange(c.NotifyMaxConcurrent, 1, 50); err != nil {
		problems = append(problems, fmt.Sprintf("notify max concurrent: %v", err))
	}
	if err := pkgconfig.ValidateDuration(c.RunTimeout, minRunTimeout, maxRunTimeout); err != nil {
		problems = append(problems, fmt.Sprintf("run timeout: %v", err))
	}
	if err := pkgconfig.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		problems = append(problems, fmt.Sprintf("health port: %v", err))
	}
	if err := pkgconfig.ValidateIntRange(c.MetricsPort, 1024, 65535); err != nil {
		problems = append(problems, fmt.Sprintf("metrics port: %v", err))
	}
	if c.ConfigPath == "" {
		problems = append(problems, "config path: cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid worker configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// LoadConfigFromEnv builds a WorkerConfig from environment variables.
// Invalid values fall back to defaults per field; each fallback is logged
// and recorded in metrics so a misconfigured worker still starts.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) *WorkerConfig {
	cfg := &WorkerConfig{
		ConfigPath: pkgconfig.LoadEnvString("TECHPULSE_CONFIG", defaultConfigPath),
	}

	anyFallback := false
	apply := func(field string, result pkgconfig.ConfigLoadResult) pkgconfig.ConfigLoadResult {
		for _, w := range result.Warnings {
			logger.Warn("worker config fallback", "field", field, "warning", w)
		}
		if result.FallbackApplied {
			anyFallback = true
			if metrics != nil {
				metrics.RecordValidationError(field)
				metrics.RecordFallback(field, "default")
				metrics.SetFallbackActive(field, true)
			}
		}
		return result
	}

	cfg.CronSchedule = apply("cron_schedule",
		pkgconfig.LoadEnvWithFallback("CRON_SCHEDULE", defaultCronSchedule, pkgconfig.ValidateCronSchedule)).Value.(string)
	cfg.Timezone = apply("timezone",
		pkgconfig.LoadEnvWithFallback("WORKER_TIMEZONE", defaultTimezone, pkgconfig.ValidateTimezone)).Value.(string)
	cfg.NotifyMaxConcurrent = apply("notify_max_concurrent",
		pkgconfig.LoadEnvInt("NOTIFY_MAX_CONCURRENT", defaultNotifyWorkers, func(v int) error {
			return pkgconfig.ValidateIntRange(v, 1, 50)
		})).Value.(int)
	cfg.RunTimeout = apply("run_timeout",
		pkgconfig.LoadEnvDuration("RUN_TIMEOUT", defaultRunTimeout, func(d time.Duration) error {
			return pkgconfig.ValidateDuration(d, minRunTimeout, maxRunTimeout)
		})).Value.(time.Duration)
	cfg.HealthPort = apply("health_port",
		pkgconfig.LoadEnvInt("WORKER_HEALTH_PORT", defaultHealthPort, func(v int) error {
			return pkgconfig.ValidateIntRange(v, 1024, 65535)
		})).Value.(int)
	cfg.MetricsPort = apply("metrics_port",
		pkgconfig.LoadEnvInt("WORKER_METRICS_PORT", defaultMetricsPort, func(v int) error {
			return pkgconfig.ValidateIntRange(v, 1024, 65535)
		})).Value.(int)

	if metrics != nil {
		metrics.RecordLoadTimestamp()
		if !anyFallback {
			metrics.SetFallbackActive("", false)
		}
	}

	logger.Info("worker configuration loaded",
		"cron_schedule", cfg.CronSchedule,
		"timezone", cfg.Timezone,
		"notify_max_concurrent", cfg.NotifyMaxConcurrent,
		"run_timeout", cfg.RunTimeout,
		"health_port", cfg.HealthPort,
		"metrics_port", cfg.MetricsPort,
		"config_path", cfg.ConfigPath,
		"fallback_applied", anyFallback,
	)

	return cfg
}
