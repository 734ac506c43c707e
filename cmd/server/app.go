package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/flashdeck/internal/api"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/gemini"
	"github.com/phrazzld/flashdeck/internal/platform/openai"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/platform/secretbox"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/auth"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService

	accounts    api.AccountService
	generations api.GenerationService
	sessions    api.SessionService
	settings    api.SettingsService
	profiles    api.ProfileService
}

// newApplication wires stores, providers and services over an open database.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	log.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	box, err := secretbox.New(cfg.Auth.SettingsSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize settings encryption: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, log)
	profileStore := postgres.NewPostgresProfileStore(db, log)
	settingsStore := postgres.NewPostgresSettingsStore(db, box, log)
	sessionStore := postgres.NewPostgresSessionStore(db, log)

	pipeline, err := newGenerationPipeline(cfg.LLM, log)
	if err != nil {
		return nil, err
	}

	app.accounts = service.NewAccountService(
		db,
		userStore,
		profileStore,
		app.jwtService,
		auth.NewBcryptHasher(cfg.Auth.BCryptCost),
		time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute,
		log,
	)
	app.generations = service.NewGenerationService(pipeline, sessionStore, settingsStore, cfg.LLM.DefaultProvider, log)
	app.sessions = service.NewSessionService(sessionStore, log)
	app.settings = service.NewSettingsService(settingsStore, log)
	app.profiles = service.NewProfileService(profileStore)

	log.Info("application initialized successfully")
	return app, nil
}

// newGenerationPipeline registers both provider adapters behind one pipeline.
func newGenerationPipeline(cfg config.LLMConfig, log *slog.Logger) (*generation.Pipeline, error) {
	var httpClient *http.Client
	if cfg.RequestTimeoutSeconds > 0 {
		httpClient = &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second}
	}

	openaiProvider, err := openai.New(openai.Config{
		BaseURL:      cfg.OpenAIBaseURL,
		DefaultModel: cfg.OpenAIModel,
		Temperature:  cfg.Temperature,
		MaxTokens:    cfg.MaxOutputTokens,
		HTTPClient:   httpClient,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize openai provider: %w", err)
	}

	geminiProvider, err := gemini.New(gemini.Config{
		BaseURL:         cfg.GeminiBaseURL,
		DefaultModel:    cfg.GeminiModel,
		Temperature:     cfg.Temperature,
		TopK:            cfg.TopK,
		TopP:            cfg.TopP,
		MaxOutputTokens: int32(cfg.MaxOutputTokens),
		HTTPClient:      httpClient,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini provider: %w", err)
	}

	registry, err := generation.NewRegistry(cfg.DefaultProvider, openaiProvider, geminiProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider registry: %w", err)
	}
	log.Info("LLM providers initialized",
		slog.Any("providers", registry.Names()),
		slog.String("default_provider", registry.Default()))

	return generation.NewPipeline(registry, log), nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
