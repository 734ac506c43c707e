// Package openai implements generation.Provider for the bearer authenticated
// chat completions protocol (POST /v1/chat/completions) using the
// sashabaranov/go-openai client. Any OpenAI compatible endpoint can be used by
// setting Config.BaseURL.
package openai
