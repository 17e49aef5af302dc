package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// anthropicMaxTokens caps completion length for pitch generation.
const anthropicMaxTokens = 2048

// AnthropicClient provides access to the Anthropic API.
type AnthropicClient struct {
	client   *anthropic.Client
	endpoint string
	model    string
	logger   *zap.Logger
}

// NewAnthropicClient creates a new Anthropic client.
func NewAnthropicClient(cfg *Config, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	var opts []anthropic.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.Endpoint))
	}

	return &AnthropicClient{
		client:   anthropic.NewClient(cfg.APIKey, opts...),
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		logger:   logger.Named("llm"),
	}, nil
}

// GenerateResponse generates a chat completion response.
func (c *AnthropicClient) GenerateResponse(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error) {
	c.logger.Debug("LLM request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float64("temperature", temperature))

	start := time.Now()
	temp := float32(temperature)

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		System:      systemMessage,
		MaxTokens:   anthropicMaxTokens,
		Temperature: &temp,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
	})
	if err != nil {
		c.logger.Error("LLM request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", c.parseError(err)
	}

	text := resp.GetFirstContentText()
	if text == "" {
		return "", NewError(ErrorTypeEndpoint, "empty completion", true, nil)
	}

	c.logger.Debug("LLM response",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_len", len(text)))

	return text, nil
}

// GetModel returns the configured model name.
func (c *AnthropicClient) GetModel() string {
	return c.model
}

// GetEndpoint returns the configured endpoint.
func (c *AnthropicClient) GetEndpoint() string {
	return c.endpoint
}

// parseError converts go-anthropic errors into structured llm errors.
func (c *AnthropicClient) parseError(err error) error {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsAuthenticationErr() || apiErr.IsPermissionErr():
			return NewError(ErrorTypeAuth, "authentication failed", false, err)
		case apiErr.IsNotFoundErr():
			return NewError(ErrorTypeModel, "model not found", false, err)
		case apiErr.IsRateLimitErr():
			return NewError(ErrorTypeUnknown, "rate limited", true, err)
		case apiErr.IsApiErr() || apiErr.IsOverloadedErr():
			return NewError(ErrorTypeEndpoint, "server error", true, err)
		default:
			return NewError(ErrorTypeUnknown, "request failed", false, err)
		}
	}
	return NewError(ErrorTypeEndpoint, "request failed", true, err)
}
