package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	EOD     EODConfig
	Mistral MistralConfig
	Log     LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// EODConfig holds the market-data provider settings.
// APIKey is a secret and must never be logged or returned to callers.
type EODConfig struct {
	BaseURL string
	APIKey  string
}

// MistralConfig holds the language-model provider settings.
// APIKey is a secret and must never be logged or returned to callers.
type MistralConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables and .env file.
// Provider secrets prefixed with "fernet:" are decrypted with SECRETS_KEY.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		EOD: EODConfig{
			BaseURL: strings.TrimRight(getEnv("EOD_BASE_URL", "https://eodhd.com/api"), "/"),
			APIKey:  getEnvAny("EOD_API_KEY", "VITE_EOD_API"),
		},
		Mistral: MistralConfig{
			BaseURL: strings.TrimRight(getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai"), "/"),
			APIKey:  getEnvAny("MISTRAL_API_KEY", "VITE_MISTRAL_API"),
			Model:   getEnv("MISTRAL_MODEL", "open-mistral-7b"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	secrets, err := newSecretBox(os.Getenv("SECRETS_KEY"))
	if err != nil {
		return nil, err
	}
	if config.EOD.APIKey, err = secrets.Open(config.EOD.APIKey); err != nil {
		return nil, fmt.Errorf("EOD_API_KEY: %w", err)
	}
	if config.Mistral.APIKey, err = secrets.Open(config.Mistral.APIKey); err != nil {
		return nil, fmt.Errorf("MISTRAL_API_KEY: %w", err)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAny returns the first non-empty value among keys.
func getEnvAny(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
