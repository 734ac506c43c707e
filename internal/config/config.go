package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	AllowedOrigins         []string `mapstructure:"allowed_origins" validate:"dive,required"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"gt=0,lte=1440"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"gtfield=TokenLifetimeMinutes"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
	// SettingsSecret derives the key that seals user API keys at rest.
	SettingsSecret string `mapstructure:"settings_secret" validate:"required,min=32"`
}

// LLMConfig contains the provider defaults. Users bring their own API keys.
type LLMConfig struct {
	DefaultProvider       string  `mapstructure:"default_provider" validate:"required,oneof=openai gemini"`
	OpenAIModel           string  `mapstructure:"openai_model" validate:"required"`
	GeminiModel           string  `mapstructure:"gemini_model" validate:"required"`
	OpenAIBaseURL         string  `mapstructure:"openai_base_url" validate:"omitempty,url"`
	GeminiBaseURL         string  `mapstructure:"gemini_base_url" validate:"omitempty,url"`
	Temperature           float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	TopK                  int32   `mapstructure:"top_k" validate:"gte=0"`
	TopP                  float32 `mapstructure:"top_p" validate:"gte=0,lte=1"`
	MaxOutputTokens       int     `mapstructure:"max_output_tokens" validate:"gt=0"`
	RequestTimeoutSeconds int     `mapstructure:"request_timeout_seconds" validate:"gte=0"`
}
