// Package fred provides a client for the FRED (Federal Reserve Economic Data) API.
package fred

import (
	"os"
	"time"
)

// Config holds configuration for the FRED API client.
type Config struct {
	FredAPIKey string        // API key for authentication
	BaseURL    string        // Base URL for the API (e.g., "https://api.stlouisfed.org")
	Timeout    time.Duration // HTTP request timeout
}

// LoadConfig loads FRED configuration from environment variables.
func LoadConfig() Config {
	baseURL := os.Getenv("FRED_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.stlouisfed.org"
	}
	return Config{
		FredAPIKey: os.Getenv("FRED_API_KEY"),
		BaseURL:    baseURL,
		Timeout:    10 * time.Second,
	}
}
