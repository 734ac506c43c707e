package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. FLASHDECK_SERVER_PORT.
const EnvPrefix = "FLASHDECK"

var defaults = map[string]any{
	"server.port":                         8080,
	"server.log_level":                    "info",
	"server.allowed_origins":              []string{"http://localhost:5173"},
	"server.shutdown_timeout_seconds":     15,
	"database.max_open_conns":             25,
	"database.max_idle_conns":             5,
	"database.conn_max_lifetime_minutes":  5,
	"auth.token_lifetime_minutes":         60,
	"auth.refresh_token_lifetime_minutes": 10080,
	"auth.bcrypt_cost":                    10,
	"llm.default_provider":                "openai",
	"llm.openai_model":                    "gpt-4o-mini",
	"llm.gemini_model":                    "gemini-2.0-flash",
	"llm.temperature":                     0.7,
	"llm.top_k":                           40,
	"llm.top_p":                           0.95,
	"llm.max_output_tokens":               4096,
	"llm.request_timeout_seconds":         0,
}

// keys without defaults still need an env binding so Unmarshal sees them
var requiredKeys = []string{
	"database.url",
	"auth.jwt_secret",
	"auth.settings_secret",
	"llm.openai_base_url",
	"llm.gemini_base_url",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range requiredKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
