package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	MongoURI      string `envconfig:"MONGO_URI" required:"true"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"infact"`

	MLServiceURL string `envconfig:"ML_SERVICE_URL" default:"http://localhost:8001"`

	NewsAPIKey        string `envconfig:"NEWSAPI_KEY"`
	UnsplashAccessKey string `envconfig:"UNSPLASH_ACCESS_KEY"`

	// Comma-separated RSS feed URLs polled by the ingestion job.
	RSSFeeds []string `envconfig:"RSS_FEEDS"`

	// How far back feed items are accepted, in days.
	RSSWindowDays int `envconfig:"RSS_WINDOW_DAYS" default:"2"`

	// Clusters older than this are removed by the cleanup job.
	CleanupMaxAgeDays int `envconfig:"CLEANUP_MAX_AGE_DAYS" default:"30"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("INFACT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasNewsAPI() bool {
	return c.NewsAPIKey != ""
}

func (c *Config) HasUnsplash() bool {
	return c.UnsplashAccessKey != ""
}
