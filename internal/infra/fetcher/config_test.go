package fetcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 300, cfg.Threshold)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxBodySize)
	assert.Equal(t, 5, cfg.MaxRedirects)
	assert.True(t, cfg.DenyPrivateIPs)
	assert.NoError(t, cfg.Validate())
}

func TestContentFetchConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ContentFetchConfig)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(*ContentFetchConfig) {}, wantErr: false},
		{name: "negative threshold", mutate: func(c *ContentFetchConfig) { c.Threshold = -1 }, wantErr: true},
		{name: "zero threshold allowed", mutate: func(c *ContentFetchConfig) { c.Threshold = 0 }, wantErr: false},
		{name: "zero timeout", mutate: func(c *ContentFetchConfig) { c.Timeout = 0 }, wantErr: true},
		{name: "body size too small", mutate: func(c *ContentFetchConfig) { c.MaxBodySize = 512 }, wantErr: true},
		{name: "body size too large", mutate: func(c *ContentFetchConfig) { c.MaxBodySize = 200 * 1024 * 1024 }, wantErr: true},
		{name: "too many redirects", mutate: func(c *ContentFetchConfig) { c.MaxRedirects = 11 }, wantErr: true},
		{name: "zero redirects allowed", mutate: func(c *ContentFetchConfig) { c.MaxRedirects = 0 }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		cfg, err := LoadConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("overrides from environment", func(t *testing.T) {
		t.Setenv("CONTENT_FETCH_ENABLED", "false")
		t.Setenv("CONTENT_FETCH_THRESHOLD", "2000")
		t.Setenv("CONTENT_FETCH_TIMEOUT", "5s")
		t.Setenv("CONTENT_FETCH_MAX_REDIRECTS", "3")

		cfg, err := LoadConfigFromEnv()
		require.NoError(t, err)
		assert.False(t, cfg.Enabled)
		assert.Equal(t, 2000, cfg.Threshold)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 3, cfg.MaxRedirects)
	})

	t.Run("invalid duration rejected", func(t *testing.T) {
		t.Setenv("CONTENT_FETCH_TIMEOUT", "not-a-duration")
		_, err := LoadConfigFromEnv()
		assert.Error(t, err)
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		t.Setenv("CONTENT_FETCH_MAX_BODY_SIZE", "10")
		_, err := LoadConfigFromEnv()
		assert.Error(t, err)
	})
}
