package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiCompletionClient implements CompletionClientInterface using Google's Gemini models
type GeminiCompletionClient struct {
	client *genai.Client
	model  string
}

func NewGeminiCompletionClient(ctx context.Context, apiKey, model string) (*GeminiCompletionClient, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCompletionClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiCompletionClient) Complete(ctx context.Context, system string, history []ChatMessage, message string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.7)
	if system != "" {
		m.SystemInstruction = genai.NewUserContent(genai.Text(system))
	}

	cs := m.StartChat()
	for _, turn := range history {
		role := "user"
		if turn.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(turn.Content)}})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return firstText(resp)
}

func (c *GeminiCompletionClient) CompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SystemInstruction = genai.NewUserContent(genai.Text(system))

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	content, err := firstText(resp)
	if err != nil {
		return "", err
	}
	content = cleanJSONResponse(content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini: not valid json")
	}
	return content, nil
}

func (c *GeminiCompletionClient) Close() error {
	return c.client.Close()
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: no content")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("gemini: no content")
	}
	return b.String(), nil
}
