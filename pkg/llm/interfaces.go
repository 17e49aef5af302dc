// Package llm provides text-generation clients for pitch and suggestion
// generation. Both OpenAI-compatible and Anthropic endpoints are supported
// behind the same interface.
package llm

import (
	"context"
)

// Client defines the interface for text-generation operations.
// Use this interface for dependency injection to enable mocking in tests.
type Client interface {
	// GenerateResponse generates a chat completion response.
	GenerateResponse(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error)

	// GetModel returns the configured model name.
	GetModel() string

	// GetEndpoint returns the configured endpoint.
	GetEndpoint() string
}

// Ensure both backends implement Client at compile time.
var (
	_ Client = (*OpenAIClient)(nil)
	_ Client = (*AnthropicClient)(nil)
)
