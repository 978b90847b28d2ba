package suggest

import (
	"context"
	"errors"
	"fmt"

	"jobform-api/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
)

var ErrNotConfigured = errors.New("suggestion model not configured")

const (
	ProviderGoogleAI = "googleai"
	ProviderOllama   = "ollama"
)

// LLMGenerator adapts a langchaingo model to Generator.
type LLMGenerator struct {
	Model       llms.Model
	Temperature float64
}

func (g LLMGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.Model, prompt,
		llms.WithTemperature(g.Temperature),
		llms.WithJSONMode(),
	)
}

// NewModel builds the configured langchaingo model. It returns
// ErrNotConfigured when the provider needs credentials that are missing; the
// service then runs without suggestions.
func NewModel(ctx context.Context, cfg config.AIConfig) (llms.Model, error) {
	switch cfg.Provider {
	case "", ProviderGoogleAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: AI_API_KEY is empty", ErrNotConfigured)
		}
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create googleai client: %w", err)
		}
		return model, nil
	case ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		model, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create ollama client: %w", err)
		}
		return model, nil
	}
	return nil, fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, cfg.Provider)
}
