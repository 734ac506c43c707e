package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/platform/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardsJSON = `{"flashcards":[{"front":"Hund","back":"dog","difficulty":"easy"}]}`

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

func newProvider(t *testing.T, baseURL string) *openai.Provider {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	p, err := openai.New(openai.Config{
		BaseURL:      baseURL,
		DefaultModel: "gpt-4o-mini",
		Temperature:  0.7,
		MaxTokens:    2048,
	}, log)
	require.NoError(t, err)
	return p
}

func providerRequest() generation.ProviderRequest {
	return generation.ProviderRequest{
		Prompt: generation.Prompt{System: "system prompt", User: "user prompt"},
		APIKey: "sk-test",
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestGenerateSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var in chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "gpt-4o-mini", in.Model)
		require.Len(t, in.Messages, 2)
		assert.Equal(t, "system", in.Messages[0].Role)
		assert.Equal(t, "system prompt", in.Messages[0].Content)
		assert.Equal(t, "user", in.Messages[1].Role)
		assert.Equal(t, "user prompt", in.Messages[1].Content)
		assert.InDelta(t, 0.7, in.Temperature, 0.0001)
		assert.Equal(t, 2048, in.MaxTokens)

		writeJSON(w, http.StatusOK, map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": cardsJSON},
				"finish_reason": "stop",
			}},
		})
	}))
	defer srv.Close()

	text, err := newProvider(t, srv.URL+"/v1").Generate(context.Background(), providerRequest())
	require.NoError(t, err)
	assert.Equal(t, cardsJSON, text)
	assert.Equal(t, int32(1), calls.Load(), "exactly one request, no retries")
}

func TestGenerateModelOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "gpt-4.1", in.Model)
		writeJSON(w, http.StatusOK, map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": cardsJSON}}},
		})
	}))
	defer srv.Close()

	req := providerRequest()
	req.Model = "gpt-4.1"
	_, err := newProvider(t, srv.URL+"/v1").Generate(context.Background(), req)
	require.NoError(t, err)
}

func TestGenerateProviderRequestErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantMessage string
	}{
		{
			name:        "json error body",
			status:      http.StatusUnauthorized,
			contentType: "application/json",
			body:        `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`,
			wantMessage: "Incorrect API key provided",
		},
		{
			name:        "rate limited",
			status:      http.StatusTooManyRequests,
			contentType: "application/json",
			body:        `{"error":{"message":"Rate limit reached","type":"requests"}}`,
			wantMessage: "Rate limit reached",
		},
		{
			name:        "non json error body",
			status:      http.StatusBadGateway,
			contentType: "text/html",
			body:        "<html>bad gateway</html>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newProvider(t, srv.URL+"/v1").Generate(context.Background(), providerRequest())
			require.ErrorIs(t, err, generation.ErrProviderRequest)

			var reqErr *generation.ProviderRequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tt.status, reqErr.StatusCode)
			assert.Equal(t, "openai", reqErr.Provider)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, reqErr.Message)
			}
			assert.Equal(t, int32(1), calls.Load(), "errors are not retried")
		})
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	_, err := newProvider(t, srv.URL+"/v1").Generate(context.Background(), providerRequest())
	var reqErr *generation.ProviderRequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusOK, reqErr.StatusCode)
}

func TestGenerateUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newProvider(t, url+"/v1").Generate(context.Background(), providerRequest())
	require.ErrorIs(t, err, generation.ErrProviderUnreachable)
	assert.NotErrorIs(t, err, generation.ErrProviderRequest)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := openai.New(openai.Config{}, nil)
	require.ErrorIs(t, err, generation.ErrInvalidConfig)

	p, err := openai.New(openai.Config{DefaultModel: "gpt-4o-mini"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
}

func TestGenerateTimeoutAfterHeadersIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices":[`))
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	t.Run("client timeout", func(t *testing.T) {
		log, _ := logger.NewTestLogger(t)
		p, err := openai.New(openai.Config{
			BaseURL:      srv.URL + "/v1",
			DefaultModel: "test-model",
			HTTPClient:   &http.Client{Timeout: 300 * time.Millisecond},
		}, log)
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), providerRequest())
		require.ErrorIs(t, err, generation.ErrProviderUnreachable)
		assert.NotErrorIs(t, err, generation.ErrProviderRequest)
	})

	t.Run("context deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()

		_, err := newProvider(t, srv.URL+"/v1").Generate(ctx, providerRequest())
		require.ErrorIs(t, err, generation.ErrProviderUnreachable)
		assert.NotErrorIs(t, err, generation.ErrProviderRequest)
	})
}
