// Package config holds the runtime configuration for the enrichment
// pipeline: provider credentials, model selection, and the generation
// policy resolved from host settings.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ShkrSltn/dbot-sub000/utils"
)

// Config is the process-level configuration, populated from the
// environment. OPENAI_API_KEY is the only variable the pipeline
// requires; everything else has a usable default.
type Config struct {
	Provider       string         `env:"LLM_PROVIDER" envDefault:"openai"`
	Model          string         `env:"LLM_MODEL" envDefault:"gpt-4o"`
	EmbeddingModel string         `env:"LLM_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	APIKey         string         `env:"OPENAI_API_KEY"`
	Temperature    float64        `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	MaxTokens      int            `env:"LLM_MAX_TOKENS" envDefault:"1024"`
	Timeout        time.Duration  `env:"LLM_TIMEOUT" envDefault:"30s"`
	LogLevel       utils.LogLevel `env:"LLM_LOG_LEVEL" envDefault:"WARN"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

type ConfigOption func(*Config)

func NewConfig() *Config {
	return &Config{
		Provider:       "openai",
		Model:          "gpt-4o",
		EmbeddingModel: "text-embedding-3-small",
		Temperature:    0.7,
		MaxTokens:      1024,
		Timeout:        30 * time.Second,
		LogLevel:       utils.LogLevelWarn,
	}
}

func SetProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

func SetModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

func SetEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

func SetAPIKey(apiKey string) ConfigOption {
	return func(c *Config) {
		c.APIKey = apiKey
	}
}

func SetTemperature(temperature float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

func SetMaxTokens(maxTokens int) ConfigOption {
	return func(c *Config) {
		if maxTokens < 1 {
			maxTokens = 1
		}
		c.MaxTokens = maxTokens
	}
}

func SetTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

func SetLogLevel(level utils.LogLevel) ConfigOption {
	return func(c *Config) {
		c.LogLevel = level
	}
}

func ApplyOptions(cfg *Config, options ...ConfigOption) {
	for _, option := range options {
		option(cfg)
	}
}
