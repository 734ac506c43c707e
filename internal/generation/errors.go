package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrProviderRequest is matched by every ProviderRequestError.
	ErrProviderRequest = errors.New("provider rejected the request")

	// ErrProviderUnreachable is matched by every ProviderUnreachableError.
	ErrProviderUnreachable = errors.New("provider unreachable")

	// ErrMalformedResponse is returned when provider text is neither JSON
	// nor contains a fenced JSON block.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrUnexpectedResponseShape is returned when the parsed JSON has no
	// flashcards array.
	ErrUnexpectedResponseShape = errors.New("unexpected provider response shape")

	// ErrEmptyResult is returned when mapping leaves no usable cards.
	ErrEmptyResult = errors.New("no usable flashcards in provider response")

	// ErrUnknownProvider is returned when no adapter is registered under a name.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidConfig is returned when an adapter is constructed with invalid settings.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// ProviderRequestError reports a non-success HTTP status from a provider.
type ProviderRequestError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderRequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request failed with status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: request failed with status %d: %s", e.Provider, e.StatusCode, e.Message)
}

func (e *ProviderRequestError) Unwrap() error { return ErrProviderRequest }

// IsAuthFailure reports whether the provider refused the API key.
func (e *ProviderRequestError) IsAuthFailure() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// ProviderUnreachableError reports a transport level failure.
type ProviderUnreachableError struct {
	Provider string
	Err      error
}

func (e *ProviderUnreachableError) Error() string {
	return fmt.Sprintf("%s: provider unreachable: %v", e.Provider, e.Err)
}

func (e *ProviderUnreachableError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrProviderUnreachable while Unwrap exposes the cause.
func (e *ProviderUnreachableError) Is(target error) bool {
	return target == ErrProviderUnreachable
}
