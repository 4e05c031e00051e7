package llm

import (
	"context"
	"errors"
	"fmt"

	"productdesc/app/config"
	"productdesc/internal/domain/repository"
)

// ErrNotConfigured is returned by the placeholder generator used when no API
// key is set. The service still starts and reports the gap on /health.
var ErrNotConfigured = errors.New("model api key is not configured")

// NewFromConfig builds the generator selected by cfg.Provider.
func NewFromConfig(ctx context.Context, cfg config.LLMConfig) (repository.TextGenerator, error) {
	if cfg.APIKey == "" {
		return unconfigured{provider: cfg.Provider, model: cfg.Model}, nil
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := NewGeminiGenerator(ctx, GeminiOptions{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: cfg.Temperature,
			JSONMode:    cfg.JSONMode,
			Timeout:     cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderOpenAI:
		g, err := NewChatGenerator(ChatOptions{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			JSONMode:    cfg.JSONMode,
			Timeout:     cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

type unconfigured struct {
	provider string
	model    string
}

func (u unconfigured) GenerateText(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

func (u unconfigured) Provider() string { return u.provider }

func (u unconfigured) Model() string { return u.model }
