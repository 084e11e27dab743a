package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "news_api:\n  api_key: secret\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://newsapi.org/v2", cfg.NewsAPI.BaseURL)
	assert.Equal(t, "secret", cfg.NewsAPI.APIKey)
	assert.Equal(t, "us", cfg.NewsAPI.Country)
	assert.Equal(t, "general", cfg.NewsAPI.Category)
	assert.Equal(t, 30*time.Second, cfg.NewsAPI.Timeout)
	assert.Equal(t, uint32(1), cfg.NewsAPI.Breaker.MaxRequests)
	assert.Equal(t, 0.6, cfg.NewsAPI.Breaker.FailureThreshold)
	assert.Equal(t, uint32(5), cfg.NewsAPI.Breaker.MinRequests)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, BackendMemory, cfg.History.Backend)
	assert.Equal(t, "headlines.db", cfg.History.BoltPath)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "headlines", cfg.RabbitMQ.Exchange)
	assert.Equal(t, "en_US", cfg.Date.Locale)
	assert.Equal(t, "UTC", cfg.Date.Timezone)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_NEWS_API_KEY", "from-env")
	path := writeConfig(t, `
news_api:
  api_key: ${TEST_NEWS_API_KEY}
  country: tr
  category: technology
  timeout: 5s
history:
  backend: bolt
  bolt_path: /tmp/history.db
date:
  locale: tr_TR
  timezone: Europe/Istanbul
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.NewsAPI.APIKey)
	assert.Equal(t, "tr", cfg.NewsAPI.Country)
	assert.Equal(t, "technology", cfg.NewsAPI.Category)
	assert.Equal(t, 5*time.Second, cfg.NewsAPI.Timeout)
	assert.Equal(t, BackendBolt, cfg.History.Backend)
	assert.Equal(t, "/tmp/history.db", cfg.History.BoltPath)
	assert.Equal(t, "tr_TR", cfg.Date.Locale)
	assert.Equal(t, "debug", cfg.LogLevel)

	loc, err := cfg.Date.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Istanbul", loc.String())
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("TEST_NEWS_API_KEY_UNSET", "")
	path := writeConfig(t, "news_api:\n  api_key: ${TEST_NEWS_API_KEY_UNSET}\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "news_api: [unclosed\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "postgres backend", mutate: func(c *Config) { c.History.Backend = BackendPostgres }},
		{name: "unknown backend", mutate: func(c *Config) { c.History.Backend = "redis" }, wantErr: "unknown history backend"},
		{name: "threshold above one", mutate: func(c *Config) { c.NewsAPI.Breaker.FailureThreshold = 1.5 }, wantErr: "failure_threshold"},
		{name: "bad timezone", mutate: func(c *Config) { c.Date.Timezone = "Mars/Olympus" }, wantErr: "load timezone"},
		{name: "no api key", mutate: func(c *Config) { c.NewsAPI.APIKey = "" }, wantErr: ErrMissingAPIKey.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{NewsAPI: NewsAPIConfig{APIKey: "key"}}
			cfg.setDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "headlines", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=headlines sslmode=disable", d.DSN())
}
