// Package tradingeconomics provides a client for the Trading Economics calendar API.
package tradingeconomics

import (
	"os"
	"time"
)

// Config holds configuration for the Trading Economics API client.
type Config struct {
	TradingEconomicsAPIKey string        // API key for authentication
	BaseURL                string        // Base URL for the API (e.g., "https://api.tradingeconomics.com")
	Timeout                time.Duration // HTTP request timeout
}

// LoadConfig loads Trading Economics configuration from environment variables.
func LoadConfig() Config {
	baseURL := os.Getenv("TRADING_ECONOMICS_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.tradingeconomics.com"
	}
	return Config{
		TradingEconomicsAPIKey: os.Getenv("TRADING_ECONOMICS_API_KEY"),
		BaseURL:                baseURL,
		Timeout:                10 * time.Second,
	}
}
