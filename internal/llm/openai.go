package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ZenithArcX/Synapx/internal/model"
)

// OpenAIProvider talks to OpenAI or any OpenAI-compatible endpoint
// (Ollama via its /v1 API) through the chat completions interface.
type OpenAIProvider struct {
	client *openai.Client
	name   string
	model  string
}

// NewOpenAIProvider creates a new provider from configuration
func NewOpenAIProvider(cfg model.LLMConfig) (*OpenAIProvider, error) {
	name := strings.ToLower(cfg.Provider)

	apiKey := cfg.APIKey
	if name == "ollama" && apiKey == "" {
		// Ollama ignores the key but the client requires one
		apiKey = "ollama"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s API key is required", cfg.Provider)
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	chatModel := cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		name:   name,
		model:  chatModel,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Complete generates a completion via the chat completions API
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", p.name)
	}

	return resp.Choices[0].Message.Content, nil
}

// Model returns the effective chat model, after any defaulting
func (p *OpenAIProvider) Model() string {
	return p.model
}
