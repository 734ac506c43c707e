package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/phrazzld/flashdeck/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var providerErr *generation.ProviderRequestError
	var validationErrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.As(err, &validationErrs),
		isUserInputError(err),
		errors.Is(err, generation.ErrUnknownProvider),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Provider errors
	case errors.Is(err, generation.ErrEmptyResult):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generation.ErrProviderUnreachable):
		return http.StatusServiceUnavailable
	case errors.As(err, &providerErr),
		errors.Is(err, generation.ErrProviderRequest),
		errors.Is(err, generation.ErrMalformedResponse),
		errors.Is(err, generation.ErrUnexpectedResponseShape):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err. Validation
// messages are passed through since they only name request fields.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var providerErr *generation.ProviderRequestError
	var validationErr *domain.ValidationError
	var validationErrs domain.ValidationErrors
	var fieldErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	// Validation errors
	case errors.As(err, &validationErrs):
		return "Validation error: " + validationErrs.Error()
	case errors.As(err, &validationErr):
		return "Validation error: " + validationErr.Error()
	case errors.As(err, &fieldErrs):
		return SanitizeValidationError(fieldErrs)
	case isUserInputError(err):
		return upperFirst(err.Error())
	case errors.Is(err, generation.ErrUnknownProvider):
		return "Unknown provider"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Not found errors
	case errors.Is(err, store.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, store.ErrProfileNotFound):
		return "Profile not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	// Provider errors
	case errors.As(err, &providerErr):
		switch {
		case providerErr.IsAuthFailure():
			return "The provider rejected the API key"
		case providerErr.StatusCode == http.StatusTooManyRequests:
			return "The provider rate limit was exceeded"
		}
		return "The provider rejected the request"
	case errors.Is(err, generation.ErrProviderUnreachable):
		return "The provider could not be reached"
	case errors.Is(err, generation.ErrMalformedResponse),
		errors.Is(err, generation.ErrUnexpectedResponseShape):
		return "The provider returned an unreadable response"
	case errors.Is(err, generation.ErrEmptyResult):
		return "The provider returned no usable flashcards"

	default:
		return "An unexpected error occurred"
	}
}

// isUserInputError reports the plain sentinel errors of domain.User validation.
func isUserInputError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidEmail,
		domain.ErrEmptyEmail,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
		domain.ErrEmptyPassword,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// SanitizeValidationError turns validator errors into a message naming the
// first offending field.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Validation error"
	}
	fe := fieldErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
