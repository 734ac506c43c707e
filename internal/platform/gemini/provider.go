package gemini

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
	"google.golang.org/genai"
)

// Config contains the adapter settings.
type Config struct {
	// BaseURL overrides the API root, e.g. "https://generativelanguage.googleapis.com/".
	BaseURL         string
	DefaultModel    string
	Temperature     float32
	TopK            int32
	TopP            float32
	MaxOutputTokens int32
	// HTTPClient is used as the base client for every call. Optional.
	HTTPClient *http.Client
}

// Provider is the generateContent adapter.
type Provider struct {
	cfg    Config
	logger *slog.Logger
}

var _ generation.Provider = (*Provider)(nil)

// New creates a Provider. API keys are supplied per call, not here.
func New(cfg Config, log *slog.Logger) (*Provider, error) {
	if cfg.DefaultModel == "" {
		return nil, fmt.Errorf("%w: gemini default model cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.MaxOutputTokens < 0 || cfg.TopK < 0 {
		return nil, fmt.Errorf("%w: gemini token limits cannot be negative", generation.ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Provider{
		cfg:    cfg,
		logger: log.With(slog.String("component", "gemini_provider")),
	}, nil
}

// Name implements generation.Provider.
func (p *Provider) Name() string { return domain.ProviderGemini }

// Generate implements generation.Provider and returns
// candidates[0].content.parts[0].text.
func (p *Provider) Generate(ctx context.Context, req generation.ProviderRequest) (string, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	model := req.Model
	if model == "" {
		model = p.cfg.DefaultModel
	}

	httpClient, rec := httpx.NewRecordingClient(p.cfg.HTTPClient)
	clientCfg := &genai.ClientConfig{
		APIKey:     req.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if p.cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create gemini client: %v", generation.ErrInvalidConfig, err)
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: req.Prompt.Combined()}},
	}}

	log.DebugContext(ctx, "sending generateContent request", slog.String("model", model))

	resp, err := client.Models.GenerateContent(ctx, model, contents, p.generationConfig())
	if err != nil {
		return "", classifyError(ctx, err, rec)
	}

	return extractText(resp, statusOrOK(rec.Status()))
}

func (p *Provider) generationConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(p.cfg.Temperature),
		MaxOutputTokens:  p.cfg.MaxOutputTokens,
		ResponseMIMEType: "application/json",
	}
	if p.cfg.TopK > 0 {
		cfg.TopK = genai.Ptr(float32(p.cfg.TopK))
	}
	if p.cfg.TopP > 0 {
		cfg.TopP = genai.Ptr(p.cfg.TopP)
	}
	return cfg
}

func extractText(resp *genai.GenerateContentResponse, status int) (string, error) {
	empty := func(msg string) error {
		return &generation.ProviderRequestError{
			Provider:   domain.ProviderGemini,
			StatusCode: status,
			Message:    msg,
		}
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", empty("response contained no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", empty("content blocked by safety filters")
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 || candidate.Content.Parts[0] == nil {
		return "", empty("response contained no content parts")
	}
	text := candidate.Content.Parts[0].Text
	if text == "" {
		return "", empty("response contained no text")
	}
	return text, nil
}

// classifyError maps client errors onto the generation error taxonomy.
// Timeouts, cancellation and bodies cut off mid-read are transport failures
// even when a status line already arrived.
func classifyError(ctx context.Context, err error, rec *httpx.StatusRecorder) error {
	if ctx.Err() != nil || httpx.IsTimeout(err) || rec.ReadErr() != nil {
		return &generation.ProviderUnreachableError{Provider: domain.ProviderGemini, Err: err}
	}
	status := rec.Status()

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.Code
		if status >= 300 {
			code = status
		}
		return &generation.ProviderRequestError{
			Provider:   domain.ProviderGemini,
			StatusCode: code,
			Message:    apiErr.Message,
		}
	}

	if status != 0 {
		msg := http.StatusText(status)
		if status < 300 {
			msg = "unreadable response body"
		}
		return &generation.ProviderRequestError{
			Provider:   domain.ProviderGemini,
			StatusCode: status,
			Message:    msg,
		}
	}

	return &generation.ProviderUnreachableError{Provider: domain.ProviderGemini, Err: err}
}

func statusOrOK(status int) int {
	if status == 0 {
		return http.StatusOK
	}
	return status
}
