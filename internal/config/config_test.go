package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(env(nil))
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, backend.DefaultBaseURL, cfg.APIBaseURL)
	require.Equal(t, 30*time.Second, cfg.Timeout)
	require.Equal(t, 60*time.Second, cfg.InferenceTimeout)
	require.Equal(t, 3, cfg.RetryAttempts)
	require.Equal(t, time.Second, cfg.RetryDelay)
	require.Equal(t, 30*time.Second, cfg.HealthInterval)
	require.False(t, cfg.Debug)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"TRENDS_ADDR":            ":9090",
		"API_BASE_URL":           "http://analytics:5000/",
		"NEXT_PUBLIC_API_URL":    "http://127.0.0.1:7000/",
		"NEXT_PUBLIC_DEBUG_MODE": "true",
		"API_TIMEOUT":            "15000",
		"API_INFERENCE_TIMEOUT":  "45s",
		"API_RETRY_ATTEMPTS":     "5",
		"API_RETRY_DELAY":        "250ms",
		"DATABASE_URL":           "postgres://u:p@localhost/trends",
	}))
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, "http://127.0.0.1:7000", cfg.APIBaseURL)
	require.True(t, cfg.Debug)
	require.Equal(t, 15*time.Second, cfg.Timeout)
	require.Equal(t, 45*time.Second, cfg.InferenceTimeout)
	require.Equal(t, 5, cfg.RetryAttempts)
	require.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	require.Equal(t, "postgres://u:p@localhost/trends", cfg.DatabaseURL)

	bc := cfg.Backend()
	require.Equal(t, cfg.APIBaseURL, bc.BaseURL)
	require.Equal(t, 5, bc.MaxAttempts)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad url", map[string]string{"API_BASE_URL": "not a url"}},
		{"zero attempts", map[string]string{"API_RETRY_ATTEMPTS": "0"}},
		{"bad attempts", map[string]string{"API_RETRY_ATTEMPTS": "three"}},
		{"bad duration", map[string]string{"API_TIMEOUT": "soon"}},
		{"inference shorter than standard", map[string]string{"API_INFERENCE_TIMEOUT": "5s"}},
		{"bad debug flag", map[string]string{"DEBUG_MODE": "maybe"}},
		{"health too eager", map[string]string{"HEALTH_INTERVAL": "10ms"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(env(tt.env))
			require.Error(t, err)
		})
	}
}

func TestLoad_InferenceMayEqualStandardTimeout(t *testing.T) {
	cfg, err := load(env(map[string]string{"API_TIMEOUT": "60000"}))
	require.NoError(t, err)
	require.Equal(t, time.Minute, cfg.Timeout)
	require.Equal(t, cfg.Timeout, cfg.InferenceTimeout)
}
