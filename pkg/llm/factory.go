package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/config"
)

// NewClient creates the text-generation client selected by configuration.
// Returns the Client interface to enable dependency injection of mocks.
func NewClient(cfg *config.AIConfig, logger *zap.Logger) (Client, error) {
	clientCfg := &Config{
		Endpoint: cfg.BaseURL,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
	}

	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(clientCfg, logger)
	case "anthropic":
		return NewAnthropicClient(clientCfg, logger)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %q", cfg.Provider)
	}
}
