// Package config loads and validates the aggregator's YAML configuration.
// The file declares the feed sources, the interest profiles, and the
// fetching/output settings of a run. Optional settings get defaults before
// validation so a minimal file only needs feeds and interests.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"techpulse/internal/domain/entity"
)

// Defaults for optional settings.
const (
	DefaultTimeoutSeconds = 10
	DefaultMaxWorkers     = 5
	DefaultUserAgent      = "TechPulse RSS Aggregator/1.0"
	DefaultOutputDir      = "output"
	DefaultFilenamePrefix = "techpulse_report"
	DefaultMaxArticles    = 50
	DefaultMinScore       = 0.5
)

// Config is the root of the YAML configuration.
type Config struct {
	Feeds     []FeedConfig     `yaml:"feeds"`
	Interests []InterestConfig `yaml:"interests"`
	Fetching  FetchingConfig   `yaml:"fetching"`
	Output    OutputConfig     `yaml:"output"`
	Notify    NotifyConfig     `yaml:"notify"`
}

// FeedConfig declares one feed source.
type FeedConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// InterestConfig declares one interest profile.
type InterestConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Weight   float64  `yaml:"weight"`
}

// FetchingConfig controls feed retrieval.
type FetchingConfig struct {
	// TimeoutSeconds bounds one feed fetch. Always finite; zero means
	// the default.
	TimeoutSeconds int `yaml:"timeout"`

	// MaxWorkers limits parallel feed fetches.
	MaxWorkers int `yaml:"max_workers"`

	// UserAgent sent on feed requests.
	UserAgent string `yaml:"user_agent"`
}

// Timeout returns the fetch timeout as a duration.
func (f FetchingConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// OutputConfig controls report generation and selection thresholds.
// MaxArticles and MinScore are pointers so an explicit zero in the file is
// distinguishable from an omitted setting.
type OutputConfig struct {
	Directory      string   `yaml:"directory"`
	FilenamePrefix string   `yaml:"filename_prefix"`
	MaxArticles    *int     `yaml:"max_articles"`
	MinScore       *float64 `yaml:"min_score"`
}

// MaxArticlesValue returns the configured cap, or the default when unset.
// Zero disables the cap.
func (o OutputConfig) MaxArticlesValue() int {
	if o.MaxArticles == nil {
		return DefaultMaxArticles
	}
	return *o.MaxArticles
}

// MinScoreValue returns the configured score threshold, or the default
// when unset.
func (o OutputConfig) MinScoreValue() float64 {
	if o.MinScore == nil {
		return DefaultMinScore
	}
	return *o.MinScore
}

// NotifyConfig toggles digest notification channels. The webhook URLs
// themselves come from the environment; the file only says whether a
// channel should be used at all. An omitted toggle means enabled.
type NotifyConfig struct {
	Slack   ChannelToggle `yaml:"slack"`
	Discord ChannelToggle `yaml:"discord"`
}

// ChannelToggle is one channel's on/off switch. Enabled is a pointer so
// an omitted section defaults to on.
type ChannelToggle struct {
	Enabled *bool `yaml:"enabled"`
}

// On reports whether the channel is enabled, defaulting to true.
func (t ChannelToggle) On() bool {
	return t.Enabled == nil || *t.Enabled
}

// ConfigurationError reports an invalid or missing configuration value.
type ConfigurationError struct {
	Key     string
	Message string
}

// Error returns the message, prefixed with the offending key when known.
func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

// Load reads, defaults, and validates the configuration at path.
// Order matters: defaults are applied before validation so optional
// settings can be omitted from the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigurationError{Message: fmt.Sprintf("configuration file not found: %s", path)}
		}
		return nil, &ConfigurationError{Message: fmt.Sprintf("configuration file not readable: %v", err)}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigurationError{Message: fmt.Sprintf("YAML syntax error in configuration: %v", err)}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Fetching.TimeoutSeconds == 0 {
		c.Fetching.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Fetching.MaxWorkers == 0 {
		c.Fetching.MaxWorkers = DefaultMaxWorkers
	}
	if c.Fetching.UserAgent == "" {
		c.Fetching.UserAgent = DefaultUserAgent
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	if c.Output.FilenamePrefix == "" {
		c.Output.FilenamePrefix = DefaultFilenamePrefix
	}
}

// Validate checks the configuration for completeness and correctness.
func (c *Config) Validate() error {
	if len(c.Feeds) == 0 {
		return &ConfigurationError{
			Key:     "feeds",
			Message: "no feeds configured, at least one feed is required",
		}
	}
	for i, feed := range c.Feeds {
		if feed.Name == "" {
			return &ConfigurationError{
				Key:     fmt.Sprintf("feeds[%d].name", i),
				Message: "missing or empty",
			}
		}
		if feed.Category == "" {
			return &ConfigurationError{
				Key:     fmt.Sprintf("feeds[%d].category", i),
				Message: "missing or empty",
			}
		}
		if !strings.HasPrefix(feed.URL, "http://") && !strings.HasPrefix(feed.URL, "https://") {
			return &ConfigurationError{
				Key:     fmt.Sprintf("feeds[%d].url", i),
				Message: fmt.Sprintf("URL %q must start with http:// or https://", feed.URL),
			}
		}
	}

	if len(c.Interests) == 0 {
		return &ConfigurationError{
			Key:     "interests",
			Message: "no interests configured, at least one interest with keywords is required",
		}
	}
	for i, interest := range c.Interests {
		if interest.Name == "" {
			return &ConfigurationError{
				Key:     fmt.Sprintf("interests[%d].name", i),
				Message: "missing or empty",
			}
		}
		if len(interest.Keywords) == 0 {
			return &ConfigurationError{
				Key:     fmt.Sprintf("interests[%d].keywords", i),
				Message: fmt.Sprintf("interest %q needs at least one keyword", interest.Name),
			}
		}
		if interest.Weight <= 0 {
			return &ConfigurationError{
				Key:     fmt.Sprintf("interests[%d].weight", i),
				Message: fmt.Sprintf("weight %v is invalid, must be > 0", interest.Weight),
			}
		}
	}

	if c.Fetching.TimeoutSeconds <= 0 {
		return &ConfigurationError{
			Key:     "fetching.timeout",
			Message: "timeout must be a positive number of seconds",
		}
	}
	if c.Fetching.MaxWorkers <= 0 {
		return &ConfigurationError{
			Key:     "fetching.max_workers",
			Message: "max_workers must be positive",
		}
	}

	if v := c.Output.MaxArticlesValue(); v < 0 {
		return &ConfigurationError{
			Key:     "output.max_articles",
			Message: fmt.Sprintf("max_articles=%d is invalid, must be non-negative", v),
		}
	}
	if v := c.Output.MinScoreValue(); v < 0 {
		return &ConfigurationError{
			Key:     "output.min_score",
			Message: fmt.Sprintf("min_score=%v is invalid, must be non-negative", v),
		}
	}

	return nil
}

// Sources converts the feed declarations into domain entities.
func (c *Config) Sources() []*entity.FeedSource {
	sources := make([]*entity.FeedSource, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		sources = append(sources, &entity.FeedSource{
			Name:     f.Name,
			URL:      f.URL,
			Category: f.Category,
		})
	}
	return sources
}

// InterestEntities converts the interest declarations into domain entities.
func (c *Config) InterestEntities() []*entity.Interest {
	interests := make([]*entity.Interest, 0, len(c.Interests))
	for _, in := range c.Interests {
		interests = append(interests, &entity.Interest{
			Name:     in.Name,
			Keywords: in.Keywords,
			Weight:   in.Weight,
		})
	}
	return interests
}
