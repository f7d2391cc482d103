package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/health"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr             string        `validate:"required"`
	APIBaseURL       string        `validate:"required,url"`
	Debug            bool
	Timeout          time.Duration `validate:"gt=0"`
	InferenceTimeout time.Duration `validate:"gtefield=Timeout"`
	RetryAttempts    int           `validate:"gte=1,lte=10"`
	RetryDelay       time.Duration `validate:"gte=0"`
	HealthInterval   time.Duration `validate:"gte=1s"`
	DatabaseURL      string
	JWTSecret        string
}

// Load reads configuration from environment variables and validates it.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	first := func(keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				return v
			}
		}
		return ""
	}

	cfg := Config{
		Addr:             ":8080",
		APIBaseURL:       backend.DefaultBaseURL,
		Timeout:          backend.DefaultTimeout,
		InferenceTimeout: backend.DefaultInferenceTimeout,
		RetryAttempts:    backend.DefaultMaxAttempts,
		RetryDelay:       backend.DefaultRetryDelay,
		HealthInterval:   health.DefaultInterval,
		DatabaseURL:      first("DATABASE_URL"),
		JWTSecret:        first("JWT_SECRET"),
	}
	if v := first("TRENDS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := first("NEXT_PUBLIC_API_URL", "API_BASE_URL"); v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if v := first("DEBUG_MODE", "NEXT_PUBLIC_DEBUG_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("DEBUG_MODE: %w", err)
		}
		cfg.Debug = b
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"API_TIMEOUT", &cfg.Timeout},
		{"API_INFERENCE_TIMEOUT", &cfg.InferenceTimeout},
		{"API_RETRY_DELAY", &cfg.RetryDelay},
		{"HEALTH_INTERVAL", &cfg.HealthInterval},
	}
	for _, d := range durations {
		v := first(d.key)
		if v == "" {
			continue
		}
		parsed, err := parseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if v := first("API_RETRY_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("API_RETRY_ATTEMPTS: %w", err)
		}
		cfg.RetryAttempts = n
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// parseDuration accepts Go durations ("30s") and bare milliseconds ("30000").
func parseDuration(v string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(v)
}

// Backend returns the client settings carried by cfg.
func (c Config) Backend() backend.Config {
	return backend.Config{
		BaseURL:          c.APIBaseURL,
		Timeout:          c.Timeout,
		InferenceTimeout: c.InferenceTimeout,
		MaxAttempts:      c.RetryAttempts,
		RetryDelay:       c.RetryDelay,
	}
}
