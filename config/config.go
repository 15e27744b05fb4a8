package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultLLMAPIURL = "https://api.openai.com/v1/chat/completions"
	defaultLLMModel  = "gpt-4o-mini"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Shared-secret API key required on the protected endpoints
	RecipeAPIKey string

	// LLM configuration
	LLMAPIKey      string
	LLMAPIURL      string
	LLMModel       string
	LLMTemperature float64
	LLMMaxTokens   int

	// Redis configuration; optional, enables rate limiting when set
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// Load creates a Config from environment variables. Secrets also accept a
// *_FILE indirection so they can be mounted from Docker secrets. A missing
// secret fails the load; the process must not start serving without one.
func Load() (*Config, error) {
	cfg := &Config{
		ServerHost:     os.Getenv("SERVER_HOST"),
		ServerPort:     getEnvDefault("SERVER_PORT", "8080"),
		RecipeAPIKey:   getSecret("RECIPE_API_KEY"),
		LLMAPIKey:      getSecret("OPENAI_API_KEY"),
		LLMAPIURL:      getEnvDefault("OPENAI_API_URL", defaultLLMAPIURL),
		LLMModel:       getEnvDefault("OPENAI_MODEL", defaultLLMModel),
		LLMTemperature: 0.7,
		LLMMaxTokens:   1000,
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      getEnvDefault("REDIS_PORT", "6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
	}

	if v := os.Getenv("OPENAI_TEMPERATURE"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid OPENAI_TEMPERATURE %q: %w", v, err)
		}
		cfg.LLMTemperature = t
	}
	if v := os.Getenv("OPENAI_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid OPENAI_MAX_TOKENS %q: %w", v, err)
		}
		cfg.LLMMaxTokens = n
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RedisAddr reports the host:port of the configured Redis instance, or ""
// when no Redis host was configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

func validate(cfg *Config) error {
	var errs []string
	if cfg.RecipeAPIKey == "" {
		errs = append(errs, "RECIPE_API_KEY not found in environment variables")
	}
	if cfg.LLMAPIKey == "" {
		errs = append(errs, "OPENAI_API_KEY not found in environment variables")
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getSecret reads a secret from the environment, falling back to the file
// named by <KEY>_FILE.
func getSecret(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}
