// Package newsapi provides a client for the NewsAPI "everything" search endpoint.
package newsapi

import (
	"os"
	"time"
)

// Config holds configuration for the NewsAPI client.
type Config struct {
	NewsAPIKey string        // API key for authentication
	BaseURL    string        // Base URL for the API (e.g., "https://newsapi.org/v2")
	Timeout    time.Duration // HTTP request timeout
}

// LoadConfig loads NewsAPI configuration from environment variables.
func LoadConfig() Config {
	baseURL := os.Getenv("NEWS_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://newsapi.org/v2"
	}
	return Config{
		NewsAPIKey: os.Getenv("NEWS_API_KEY"),
		BaseURL:    baseURL,
		Timeout:    10 * time.Second,
	}
}
