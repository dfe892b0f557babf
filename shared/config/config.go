package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	YouTube   YouTubeConfig   `yaml:"youtube"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Filters   FiltersConfig   `yaml:"filters"`
	Storage   StorageConfig   `yaml:"storage"`
	Export    ExportConfig    `yaml:"export"`
	AI        AIConfig        `yaml:"ai"`
	Watch     WatchConfig     `yaml:"watch"`
}

type YouTubeConfig struct {
	APIKey               string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	MaxResultsPerRequest int64  `yaml:"max_results_per_request"`
	MaxTotalComments     int64  `yaml:"max_total_comments"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

type FiltersConfig struct {
	MinCommentLength int      `yaml:"min_comment_length"`
	MaxCommentLength int      `yaml:"max_comment_length"`
	ExcludeSpam      bool     `yaml:"exclude_spam"`
	Languages        []string `yaml:"languages"`
}

type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	ExportsPath  string `yaml:"exports_path"`
}

type ExportConfig struct {
	TimestampFormat string `yaml:"timestamp_format"`
}

type AIConfig struct {
	// SentimentModel selects the polarity/subjectivity model: "lexicon"
	// (default, offline) or "gemini".
	SentimentModel string `yaml:"sentiment_model"`
	GeminiAPIKey   string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model          string `yaml:"model"`
}

type WatchConfig struct {
	Schedule   string   `yaml:"schedule"`
	Videos     []string `yaml:"videos"`
	HealthPort int      `yaml:"health_port"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		// No config file: run entirely on environment variables and defaults.
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	if cfg.YouTube.APIKey == "" {
		cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}

	cfg.ApplyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// ApplyDefaults fills zero-valued settings. Exported so tests can build
// minimal configs without going through a file.
func (c *Config) ApplyDefaults() {
	if c.YouTube.MaxResultsPerRequest <= 0 || c.YouTube.MaxResultsPerRequest > 100 {
		c.YouTube.MaxResultsPerRequest = 100 // API page-size ceiling
	}
	if c.YouTube.MaxTotalComments <= 0 {
		c.YouTube.MaxTotalComments = 1000
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		c.RateLimit.RequestsPerSecond = 1
	}
	if c.Filters.MinCommentLength <= 0 {
		c.Filters.MinCommentLength = 1
	}
	if c.Filters.MaxCommentLength <= 0 {
		c.Filters.MaxCommentLength = 10000
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "data/comments.db"
	}
	if c.Storage.ExportsPath == "" {
		c.Storage.ExportsPath = "data/exports"
	}
	if c.Export.TimestampFormat == "" {
		c.Export.TimestampFormat = "2006-01-02 15:04:05"
	}
	if c.AI.SentimentModel == "" {
		c.AI.SentimentModel = "lexicon"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.Watch.Schedule == "" {
		c.Watch.Schedule = "0 0 6 * * *" // Daily at 6 AM
	}
	if c.Watch.HealthPort == 0 {
		c.Watch.HealthPort = 8080
	}
}

func (c *Config) validate() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YouTube API key is required (set YOUTUBE_API_KEY or youtube.api_key)")
	}
	if c.YouTube.APIKey == "YOUR_YOUTUBE_API_KEY_HERE" {
		return fmt.Errorf("please set a valid YouTube API key, not the placeholder")
	}
	if c.AI.SentimentModel == "gemini" && c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required for ai.sentiment_model=gemini (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	if c.Filters.MinCommentLength > c.Filters.MaxCommentLength {
		return fmt.Errorf("filters.min_comment_length (%d) exceeds max_comment_length (%d)",
			c.Filters.MinCommentLength, c.Filters.MaxCommentLength)
	}
	return nil
}
