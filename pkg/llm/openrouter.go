package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible
// chat-completions endpoint. It requests a JSON-object response so the
// model's answer can be unmarshalled by the caller.
type OpenRouterProvider struct {
	client *openai.Client
	model  string
}

// NewOpenRouterProvider builds a provider from the given configuration.
func NewOpenRouterProvider(cfg Config) *OpenRouterProvider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.APIURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.APIURL, "/")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenRouterProvider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// Complete issues one chat completion and returns the raw message text.
func (p *OpenRouterProvider) Complete(ctx context.Context, req Request) (Response, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	if model == "" {
		return Response{}, errors.New("openrouter: model is required")
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens: 1000,
	})
	if err != nil {
		return Response{}, fmt.Errorf("openrouter: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, errors.New("openrouter: response contains no choices")
	}

	return Response{
		Text:       resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
