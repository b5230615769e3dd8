// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/herdbook/herdbook/internal/kvstore"
)

// Advice providers selectable with ADVICE_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds all configuration values for the API server and herdctl.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// Store selects where the farm collections are persisted.
	// STORE_DRIVER is one of sqlite (default), postgres, s3 or memory.
	Store kvstore.Config

	Advice AdviceConfig
	Launch LaunchConfig
}

// AdviceConfig configures the AI advice provider.
type AdviceConfig struct {
	Provider      string // openai (default) or gemini
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string
	Model         string // empty means the provider default
	MaxTokens     int
	Temperature   float64
}

// LaunchConfig configures the start URL resolution run by herdctl launch.
type LaunchConfig struct {
	BootstrapURL string
	Marker       string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("STORE_DRIVER", string(kvstore.DriverSQLite))
	v.SetDefault("SQLITE_PATH", "herdbook.db")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("ADVICE_PROVIDER", ProviderOpenAI)
	v.SetDefault("ADVICE_MAX_TOKENS", 1000)
	v.SetDefault("ADVICE_TEMPERATURE", 0.7)

	cfg := Config{
		Port:         v.GetString("PORT"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		CORSOrigins:  splitCSV(v.GetString("CORS_ORIGINS")),
		MaxBodyBytes: v.GetInt64("MAX_BODY_BYTES"),
		Store: kvstore.Config{
			Driver:      kvstore.Driver(strings.ToLower(v.GetString("STORE_DRIVER"))),
			SQLitePath:  v.GetString("SQLITE_PATH"),
			DatabaseURL: v.GetString("DATABASE_URL"),
			S3: kvstore.S3Config{
				Bucket:    v.GetString("S3_BUCKET"),
				Region:    v.GetString("S3_REGION"),
				Endpoint:  v.GetString("S3_ENDPOINT"),
				Prefix:    v.GetString("S3_PREFIX"),
				PathStyle: v.GetBool("S3_PATH_STYLE"),
			},
		},
		Advice: AdviceConfig{
			Provider:      strings.ToLower(v.GetString("ADVICE_PROVIDER")),
			OpenAIAPIKey:  v.GetString("OPENAI_API_KEY"),
			OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),
			GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
			Model:         v.GetString("ADVICE_MODEL"),
			MaxTokens:     v.GetInt("ADVICE_MAX_TOKENS"),
			Temperature:   v.GetFloat64("ADVICE_TEMPERATURE"),
		},
		Launch: LaunchConfig{
			BootstrapURL: v.GetString("LAUNCH_BOOTSTRAP_URL"),
			Marker:       v.GetString("LAUNCH_MARKER"),
		},
	}

	switch cfg.Store.Driver {
	case kvstore.DriverSQLite, kvstore.DriverPostgres, kvstore.DriverS3, kvstore.DriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	switch cfg.Advice.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return Config{}, fmt.Errorf("unknown ADVICE_PROVIDER %q", cfg.Advice.Provider)
	}

	var missing []string
	if cfg.Store.Driver == kvstore.DriverPostgres && cfg.Store.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.Store.Driver == kvstore.DriverS3 && cfg.Store.S3.Bucket == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if cfg.Advice.Provider == ProviderGemini && cfg.Advice.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
