package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
feeds:
  - name: Heise
    url: https://www.heise.de/rss/news.rdf
    category: tech
  - name: The Verge
    url: https://www.theverge.com/rss/index.xml
    category: tech

interests:
  - name: AI
    keywords: ["AI", "Machine Learning"]
    weight: 2.0
  - name: Security
    keywords: ["CVE"]
    weight: 1.5

fetching:
  timeout: 15
  max_workers: 8

output:
  directory: reports
  max_articles: 25
  min_score: 3.0
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	require.Len(t, cfg.Feeds, 2)
	assert.Equal(t, "Heise", cfg.Feeds[0].Name)
	assert.Equal(t, "tech", cfg.Feeds[0].Category)

	require.Len(t, cfg.Interests, 2)
	assert.Equal(t, []string{"AI", "Machine Learning"}, cfg.Interests[0].Keywords)
	assert.Equal(t, 2.0, cfg.Interests[0].Weight)

	assert.Equal(t, 15*time.Second, cfg.Fetching.Timeout())
	assert.Equal(t, 8, cfg.Fetching.MaxWorkers)
	// unset settings get defaults
	assert.Equal(t, DefaultUserAgent, cfg.Fetching.UserAgent)

	assert.Equal(t, "reports", cfg.Output.Directory)
	assert.Equal(t, DefaultFilenamePrefix, cfg.Output.FilenamePrefix)
	assert.Equal(t, 25, cfg.Output.MaxArticlesValue())
	assert.Equal(t, 3.0, cfg.Output.MinScoreValue())
}

func TestLoad_MinimalConfigGetsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
feeds:
  - name: Example
    url: https://example.com/feed.xml
    category: tech
interests:
  - name: Go
    keywords: ["golang"]
    weight: 1.0
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultTimeoutSeconds, cfg.Fetching.TimeoutSeconds)
	assert.Equal(t, DefaultMaxWorkers, cfg.Fetching.MaxWorkers)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Directory)
	assert.Equal(t, DefaultMaxArticles, cfg.Output.MaxArticlesValue())
	assert.Equal(t, DefaultMinScore, cfg.Output.MinScoreValue())
}

func TestLoad_ExplicitZeroMaxArticlesDisablesCap(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
feeds:
  - name: Example
    url: https://example.com/feed.xml
    category: tech
interests:
  - name: Go
    keywords: ["golang"]
    weight: 1.0
output:
  max_articles: 0
  min_score: 0
`))
	require.NoError(t, err)

	// explicit zeros are honored, not replaced by defaults
	assert.Equal(t, 0, cfg.Output.MaxArticlesValue())
	assert.Equal(t, 0.0, cfg.Output.MinScoreValue())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantKey string
	}{
		{
			name:    "no feeds",
			content: "interests:\n  - name: AI\n    keywords: [\"ai\"]\n    weight: 1.0\n",
			wantKey: "feeds",
		},
		{
			name: "feed missing name",
			content: `
feeds:
  - url: https://example.com/feed.xml
    category: tech
interests:
  - name: AI
    keywords: ["ai"]
    weight: 1.0
`,
			wantKey: "feeds[0].name",
		},
		{
			name: "feed with bad scheme",
			content: `
feeds:
  - name: Bad
    url: ftp://example.com/feed.xml
    category: tech
interests:
  - name: AI
    keywords: ["ai"]
    weight: 1.0
`,
			wantKey: "feeds[0].url",
		},
		{
			name: "no interests",
			content: `
feeds:
  - name: Example
    url: https://example.com/feed.xml
    category: tech
`,
			wantKey: "interests",
		},
		{
			name: "interest without keywords",
			content: `
feeds:
  - name: Example
    url: https://example.com/feed.xml
    category: tech
interests:
  - name: AI
    keywords: []
    weight: 1.0
`,
			wantKey: "interests[0].keywords",
		},
		{
			name: "interest with negative weight",
			content: `
feeds:
  - name: Example
    url: https://example.com/feed.xml
    category: tech
interests:
  - name: AI
    keywords: ["ai"]
    weight: -2.0
`,
			wantKey: "interests[0].weight",
		},
		{
			name: "negative max_articles",
			content: `
feeds:
  - name: Example
    url: https://example.com/feed.xml
    category: tech
interests:
  - name: AI
    keywords: ["ai"]
    weight: 1.0
output:
  max_articles: -1
`,
			wantKey: "output.max_articles",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantKey, cfgErr.Key)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "feeds: [unclosed"))
	require.Error(t, err)
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestConfig_EntityConversion(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	sources := cfg.Sources()
	require.Len(t, sources, 2)
	assert.Equal(t, "Heise", sources[0].Name)
	assert.Equal(t, "https://www.heise.de/rss/news.rdf", sources[0].URL)

	interests := cfg.InterestEntities()
	require.Len(t, interests, 2)
	assert.Equal(t, "AI", interests[0].Name)
	assert.Equal(t, 2.0, interests[0].Weight)
}

func TestNotifyToggles(t *testing.T) {
	t.Run("omitted section enables both channels", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, validYAML))
		require.NoError(t, err)
		assert.True(t, cfg.Notify.Slack.On())
		assert.True(t, cfg.Notify.Discord.On())
	})

	t.Run("explicit false disables a channel", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, validYAML+`
notify:
  slack:
    enabled: true
  discord:
    enabled: false
`))
		require.NoError(t, err)
		assert.True(t, cfg.Notify.Slack.On())
		assert.False(t, cfg.Notify.Discord.On())
	})
}
