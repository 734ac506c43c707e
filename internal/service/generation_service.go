package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
	"github.com/phrazzld/flashdeck/internal/store"
)

// GenerationResult carries the generated cards and, separately, the outcome
// of the best-effort save. A non-nil PersistenceWarning never invalidates Cards.
type GenerationResult struct {
	Cards              []domain.Flashcard
	Session            *domain.Session
	PersistenceWarning *PersistenceError
}

// GenerationService runs one generation for a user and records it in their history.
type GenerationService struct {
	generator       generation.Generator
	sessions        store.SessionStore
	settings        store.SettingsStore
	defaultProvider string
	logger          *slog.Logger
}

// NewGenerationService creates a GenerationService. defaultProvider is used
// when neither the request nor the user's settings name one.
func NewGenerationService(
	generator generation.Generator,
	sessions store.SessionStore,
	settings store.SettingsStore,
	defaultProvider string,
	logger *slog.Logger,
) *GenerationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationService{
		generator:       generator,
		sessions:        sessions,
		settings:        settings,
		defaultProvider: defaultProvider,
		logger:          logger.With(slog.String("component", "generation_service")),
	}
}

// Generate resolves the provider, model and API key, runs the pipeline and
// saves the result for userID. Generation errors are returned as-is;
// persistence errors are reported through the result.
// A nil userID skips persistence.
func (s *GenerationService) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req domain.GenerationRequest,
) (*GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	req.Normalize()
	s.applyUserDefaults(ctx, userID, &req)

	cards, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &GenerationResult{Cards: cards}
	if userID == uuid.Nil {
		return result, nil
	}

	session, perr := s.persist(ctx, userID, req, cards)
	if perr != nil {
		result.PersistenceWarning = perr
		log.Warn("generated cards were not saved",
			slog.String("user_id", userID.String()),
			slog.String("error", redact.Error(perr)))
		return result, nil
	}

	result.Session = session
	return result, nil
}

// applyUserDefaults fills provider, model and key from the user's saved
// settings when the request leaves them empty. Lookup failures are logged
// and otherwise ignored; validation later reports a missing key.
func (s *GenerationService) applyUserDefaults(
	ctx context.Context,
	userID uuid.UUID,
	req *domain.GenerationRequest,
) {
	var settings *domain.UserSettings
	if userID != uuid.Nil && s.settings != nil {
		found, err := s.settings.Get(ctx, userID)
		switch {
		case err == nil:
			settings = found
		case !errors.Is(err, store.ErrSettingsNotFound):
			logger.FromContextOrDefault(ctx, s.logger).Warn("failed to load user settings",
				slog.String("user_id", userID.String()),
				slog.String("error", redact.Error(err)))
		}
	}

	if req.Provider == "" && settings != nil {
		req.Provider = settings.DefaultProvider
	}
	if req.Provider == "" {
		req.Provider = s.defaultProvider
	}

	if settings == nil {
		return
	}
	if req.Model == "" && settings.DefaultProvider == req.Provider {
		req.Model = settings.DefaultModel
	}
	if req.APIKey == "" {
		req.APIKey = settings.APIKeyFor(req.Provider)
	}
}

func (s *GenerationService) persist(
	ctx context.Context,
	userID uuid.UUID,
	req domain.GenerationRequest,
	cards []domain.Flashcard,
) (*domain.Session, *PersistenceError) {
	session, err := domain.NewSession(userID, req.Topic, req.Difficulty, len(cards))
	if err != nil {
		return nil, &PersistenceError{Op: "build session", Err: err}
	}

	rows := domain.NewSessionCards(session.ID, cards, time.Now().UTC())
	if err := s.sessions.CreateWithCards(ctx, userID, session, rows); err != nil {
		return nil, &PersistenceError{Op: "create session", Err: err}
	}

	return session, nil
}
