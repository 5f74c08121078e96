package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrAIDisabled is returned by the disabled client when no provider is configured.
var ErrAIDisabled = errors.New("ai provider not configured")

// ChatMessage is one prior turn handed to a completion client.
type ChatMessage struct {
	Role    string // "user" or "assistant"
	Content string
}

// CompletionClientInterface is the single seam to the chat model provider.
type CompletionClientInterface interface {
	Complete(ctx context.Context, system string, history []ChatMessage, message string) (string, error)
	// CompleteJSON asks the model for a JSON-only reply.
	CompleteJSON(ctx context.Context, system, prompt string) (string, error)
	Close() error
}

// NewCompletionClient picks the implementation for provider.
func NewCompletionClient(ctx context.Context, provider, apiKey, model string) (CompletionClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when using the openai provider")
		}
		return NewOpenAICompletionClient(apiKey, model, ""), nil
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when using the gemini provider")
		}
		return NewGeminiCompletionClient(ctx, apiKey, model)
	case "", "none":
		return DisabledCompletionClient{}, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s. Use 'openai', 'gemini' or 'none'", provider)
	}
}

type DisabledCompletionClient struct{}

func (DisabledCompletionClient) Complete(context.Context, string, []ChatMessage, string) (string, error) {
	return "", ErrAIDisabled
}

func (DisabledCompletionClient) CompleteJSON(context.Context, string, string) (string, error) {
	return "", ErrAIDisabled
}

func (DisabledCompletionClient) Close() error { return nil }

// cleanJSONResponse strips markdown fences and any prose around the first object.
func cleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start != -1 && end > start {
		response = response[start : end+1]
	}
	return response
}
