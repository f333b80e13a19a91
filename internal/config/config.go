package config

import (
	"os"
	"time"
)

// Config holds runtime configuration from environment variables.
type Config struct {
	Port         string
	OpenAIKey    string
	SupabaseURL  string
	SupabaseKey  string
	GuestTTL     time.Duration
	InterviewCfg string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		SupabaseURL:  os.Getenv("SUPABASE_URL"),
		SupabaseKey:  os.Getenv("SUPABASE_SERVICE_KEY"),
		GuestTTL:     getDuration("GUEST_SESSION_TTL", 30*time.Minute),
		InterviewCfg: getEnv("INTERVIEW_CONFIG", "config/interview.yaml"),
	}

	// OpenAI key is optional at startup (only needed when questions or
	// feedback are generated). Supabase keys are optional too: without
	// them the answer store falls back to in-memory persistence.

	return cfg, nil
}

// HasDocumentStore reports whether a real document store is configured.
func (c *Config) HasDocumentStore() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
