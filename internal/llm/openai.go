package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/joestump/cuecard/internal/config"
)

const defaultOpenAIModel = "gpt-4o-mini"

type openaiGenerator struct {
	model  string
	client *openai.Client
}

func newOpenAIGenerator(cfg config.LLM) *openaiGenerator {
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		// Base URLs are configured without the version path, as for the other providers.
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + "/v1"
	}
	return &openaiGenerator{
		model:  model,
		client: openai.NewClientWithConfig(oc),
	}
}

func (o *openaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: 1024,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}
