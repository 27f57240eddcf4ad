// Package langfuse provides a minimal client for the Langfuse trace ingestion API.
package langfuse

import (
	"os"
	"time"
)

// Config holds configuration for the Langfuse client.
type Config struct {
	PublicKey string        // Public API key (basic auth user)
	SecretKey string        // Secret API key (basic auth password)
	Host      string        // Base URL (e.g., "https://cloud.langfuse.com")
	Timeout   time.Duration // HTTP request timeout
}

// LoadConfig loads Langfuse configuration from environment variables.
func LoadConfig() Config {
	host := os.Getenv("LANGFUSE_HOST")
	if host == "" {
		host = "https://cloud.langfuse.com"
	}
	return Config{
		PublicKey: os.Getenv("LANGFUSE_PUBLIC_KEY"),
		SecretKey: os.Getenv("LANGFUSE_SECRET_KEY"),
		Host:      host,
		Timeout:   10 * time.Second,
	}
}

// Enabled はトレース送信に必要なキーが揃っているかを返します。
func (c Config) Enabled() bool {
	return c.PublicKey != "" && c.SecretKey != ""
}
