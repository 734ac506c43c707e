package generation

import (
	"context"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
)

// Generator defines the interface for generating flashcards.
// This interface is the boundary between the service layer and the
// external LLM providers.
type Generator interface {
	// Generate validates req, performs one provider call and returns the
	// mapped flashcards.
	//
	// Parameters:
	//   - ctx: Context for the operation, used for cancellation
	//   - req: The request with provider, model and API key already resolved
	//
	// Returns:
	//   - The canonical flashcards in provider order
	//   - An error wrapping one of the errors in errors.go, or domain.ErrValidation
	Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Flashcard, error)
}

// Pipeline is the Generator that runs prompt building, the provider call,
// normalization and field mapping in sequence.
type Pipeline struct {
	registry *Registry
	logger   *slog.Logger
}

var _ Generator = (*Pipeline)(nil)

// NewPipeline creates a Pipeline over the given provider registry.
func NewPipeline(registry *Registry, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		registry: registry,
		logger:   log.With(slog.String("component", "generation_pipeline")),
	}
}

// Generate implements Generator.
func (p *Pipeline) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	provider, err := p.registry.Get(req.Provider)
	if err != nil {
		return nil, err
	}

	log = log.With(
		slog.String("provider", provider.Name()),
		slog.String("mode", string(req.Mode)),
		slog.Int("requested_count", req.Count),
	)

	raw, err := provider.Generate(ctx, ProviderRequest{
		Prompt: BuildPrompt(req),
		APIKey: req.APIKey,
		Model:  req.Model,
	})
	if err != nil {
		log.WarnContext(ctx, "provider call failed", slog.String("error", redact.Error(err)))
		return nil, err
	}

	rawCards, err := Normalize(raw)
	if err != nil {
		log.WarnContext(ctx, "provider response rejected",
			slog.String("error", redact.Error(err)),
			slog.Int("response_length", len(raw)))
		return nil, err
	}

	cards, dropped := mapCards(req.Mode, rawCards)
	if dropped > 0 {
		log.InfoContext(ctx, "dropped incomplete cards", slog.Int("dropped", dropped))
	}
	if len(cards) == 0 {
		return nil, emptyResult(len(rawCards))
	}

	log.DebugContext(ctx, "flashcards generated", slog.Int("card_count", len(cards)))
	return cards, nil
}
