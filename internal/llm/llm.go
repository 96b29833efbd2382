// Package llm wraps the chat completion providers used by the AI commands.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when a provider has no API key
var ErrNotConfigured = errors.New("provider is not configured")

// ErrEmptyResponse is returned when a provider answers without any text
var ErrEmptyResponse = errors.New("empty response")

// Provider completes a single user prompt
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// APIError is an error reported by the provider's API
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

func result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotConfigured):
		return "unconfigured"
	default:
		return "error"
	}
}
