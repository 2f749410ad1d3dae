// Package llm builds the card prompt and sends it to a generative-language provider.
package llm

import (
	"context"
	"fmt"

	"github.com/joestump/cuecard/internal/config"
	"github.com/joestump/cuecard/internal/cuecard"
)

// Generator sends a prompt to a model and returns its text reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// New creates a Generator for cfg.Provider. It returns cuecard.ErrNotConfigured
// when cfg.APIKey is empty.
func New(cfg config.LLM) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, cuecard.ErrNotConfigured
	}
	switch cfg.Provider {
	case "", "gemini":
		return newGeminiGenerator(cfg)
	case "anthropic":
		return newAnthropicGenerator(cfg), nil
	case "openai", "openai-compatible":
		return newOpenAIGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}
