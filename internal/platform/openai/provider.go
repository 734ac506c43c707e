package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/httpx"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	goopenai "github.com/sashabaranov/go-openai"
)

// Config contains the adapter settings.
type Config struct {
	// BaseURL overrides the API root, e.g. "https://api.openai.com/v1".
	BaseURL      string
	DefaultModel string
	Temperature  float32
	MaxTokens    int
	// HTTPClient is used as the base client for every call. Optional.
	HTTPClient *http.Client
}

// Provider is the chat completions adapter.
type Provider struct {
	cfg    Config
	logger *slog.Logger
}

var _ generation.Provider = (*Provider)(nil)

// New creates a Provider. API keys are supplied per call, not here.
func New(cfg Config, log *slog.Logger) (*Provider, error) {
	if cfg.DefaultModel == "" {
		return nil, fmt.Errorf("%w: openai default model cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.MaxTokens < 0 {
		return nil, fmt.Errorf("%w: openai max tokens cannot be negative", generation.ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Provider{
		cfg:    cfg,
		logger: log.With(slog.String("component", "openai_provider")),
	}, nil
}

// Name implements generation.Provider.
func (p *Provider) Name() string { return domain.ProviderOpenAI }

// Generate implements generation.Provider. It sends the system and user
// messages and returns choices[0].message.content.
func (p *Provider) Generate(ctx context.Context, req generation.ProviderRequest) (string, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	model := req.Model
	if model == "" {
		model = p.cfg.DefaultModel
	}

	httpClient, rec := httpx.NewRecordingClient(p.cfg.HTTPClient)
	clientCfg := goopenai.DefaultConfig(req.APIKey)
	if p.cfg.BaseURL != "" {
		clientCfg.BaseURL = p.cfg.BaseURL
	}
	clientCfg.HTTPClient = httpClient
	client := goopenai.NewClientWithConfig(clientCfg)

	log.DebugContext(ctx, "sending chat completion request", slog.String("model", model))

	resp, err := client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: req.Prompt.System},
			{Role: goopenai.ChatMessageRoleUser, Content: req.Prompt.User},
		},
		Temperature: p.cfg.Temperature,
		MaxTokens:   p.cfg.MaxTokens,
	})
	if err != nil {
		return "", classifyError(ctx, err, rec)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &generation.ProviderRequestError{
			Provider:   domain.ProviderOpenAI,
			StatusCode: statusOrOK(rec.Status()),
			Message:    "response contained no message content",
		}
	}

	log.DebugContext(ctx, "chat completion received",
		slog.String("finish_reason", string(resp.Choices[0].FinishReason)),
		slog.Int("total_tokens", resp.Usage.TotalTokens))

	return resp.Choices[0].Message.Content, nil
}

// classifyError maps client errors onto the generation error taxonomy.
// Timeouts, cancellation and bodies cut off mid-read are transport failures
// even when a status line already arrived.
func classifyError(ctx context.Context, err error, rec *httpx.StatusRecorder) error {
	if ctx.Err() != nil || httpx.IsTimeout(err) || rec.ReadErr() != nil {
		return &generation.ProviderUnreachableError{Provider: domain.ProviderOpenAI, Err: err}
	}
	status := rec.Status()

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return &generation.ProviderRequestError{
			Provider:   domain.ProviderOpenAI,
			StatusCode: firstNonZero(apiErr.HTTPStatusCode, status),
			Message:    apiErr.Message,
		}
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return &generation.ProviderRequestError{
			Provider:   domain.ProviderOpenAI,
			StatusCode: firstNonZero(reqErr.HTTPStatusCode, status),
			Message:    http.StatusText(firstNonZero(reqErr.HTTPStatusCode, status)),
		}
	}

	switch {
	case status >= 300:
		return &generation.ProviderRequestError{
			Provider:   domain.ProviderOpenAI,
			StatusCode: status,
			Message:    http.StatusText(status),
		}
	case status != 0:
		// a 2xx whose body could not be decoded
		return &generation.ProviderRequestError{
			Provider:   domain.ProviderOpenAI,
			StatusCode: status,
			Message:    "unreadable response body",
		}
	}

	return &generation.ProviderUnreachableError{Provider: domain.ProviderOpenAI, Err: err}
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

func statusOrOK(status int) int {
	return firstNonZero(status, http.StatusOK)
}
