package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithEnvVars(t *testing.T) {
	os.Setenv("INFACT_MONGO_URI", "mongodb://localhost:27017")
	os.Setenv("INFACT_MONGO_DATABASE", "infact_test")
	os.Setenv("INFACT_PORT", "9090")
	os.Setenv("INFACT_DEBUG", "true")
	os.Setenv("INFACT_ML_SERVICE_URL", "http://ml:9000")
	os.Setenv("INFACT_NEWSAPI_KEY", "key-123")
	os.Setenv("INFACT_RSS_FEEDS", "https://a.example/rss,https://b.example/rss")
	defer func() {
		os.Unsetenv("INFACT_MONGO_URI")
		os.Unsetenv("INFACT_MONGO_DATABASE")
		os.Unsetenv("INFACT_PORT")
		os.Unsetenv("INFACT_DEBUG")
		os.Unsetenv("INFACT_ML_SERVICE_URL")
		os.Unsetenv("INFACT_NEWSAPI_KEY")
		os.Unsetenv("INFACT_RSS_FEEDS")
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "infact_test", cfg.MongoDatabase)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "http://ml:9000", cfg.MLServiceURL)
	assert.Equal(t, "key-123", cfg.NewsAPIKey)
	assert.Equal(t, []string{"https://a.example/rss", "https://b.example/rss"}, cfg.RSSFeeds)
}

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("INFACT_MONGO_URI", "mongodb://localhost:27017")
	defer os.Unsetenv("INFACT_MONGO_URI")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "infact", cfg.MongoDatabase)
	assert.Equal(t, "http://localhost:8001", cfg.MLServiceURL)
	assert.Equal(t, 2, cfg.RSSWindowDays)
	assert.Equal(t, 30, cfg.CleanupMaxAgeDays)
}

func TestLoad_RequiredMongoURI(t *testing.T) {
	os.Unsetenv("INFACT_MONGO_URI")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
}

func TestHasNewsAPI(t *testing.T) {
	cfg := &Config{NewsAPIKey: "key-123"}
	assert.True(t, cfg.HasNewsAPI())

	cfg.NewsAPIKey = ""
	assert.False(t, cfg.HasNewsAPI())
}

func TestHasUnsplash(t *testing.T) {
	cfg := &Config{UnsplashAccessKey: "access-123"}
	assert.True(t, cfg.HasUnsplash())

	cfg.UnsplashAccessKey = ""
	assert.False(t, cfg.HasUnsplash())
}
