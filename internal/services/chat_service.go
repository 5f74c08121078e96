package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"mindcare/internal/models/request_models"
	"mindcare/internal/models/response_models"
	"mindcare/pkg/utils"
)

const (
	maxChatMessageLength = 4000
	maxChatHistory       = 20

	companionSystemPrompt = `You are a supportive mental wellness companion. Listen with empathy,
reflect feelings back, and suggest small practical coping steps. You are not a therapist and
never diagnose. If the user mentions self-harm or being in danger, encourage them to contact
local emergency services or a crisis line right away. Keep replies under 150 words.`
)

type ChatServiceInterface interface {
	Complete(ctx context.Context, p Principal, request request_models.ChatRequest) (*response_models.ChatResponse, error)
	Analyze(ctx context.Context, p Principal, request request_models.AnalyzeRequest) (*response_models.SentimentResult, error)
}

type ChatService struct {
	client    utils.CompletionClientInterface
	sentiment SentimentClassifier
	timeout   time.Duration
}

func NewChatService(client utils.CompletionClientInterface, sentiment SentimentClassifier, timeout time.Duration) *ChatService {
	return &ChatService{client: client, sentiment: sentiment, timeout: timeout}
}

// Complete has no local fallback: any provider failure surfaces as
// ErrUpstreamUnavailable.
func (s *ChatService) Complete(ctx context.Context, p Principal, request request_models.ChatRequest) (*response_models.ChatResponse, error) {
	message := strings.TrimSpace(request.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", utils.ErrValidation)
	}
	if utf8.RuneCountInString(message) > maxChatMessageLength {
		return nil, fmt.Errorf("%w: message cannot be more than %d characters", utils.ErrValidation, maxChatMessageLength)
	}

	history, err := chatHistory(request.History)
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	reply, err := s.client.Complete(ctx, companionSystemPrompt, history, message)
	if err != nil {
		if errors.Is(err, utils.ErrAIDisabled) {
			return nil, fmt.Errorf("%w: chat is not configured", utils.ErrUpstreamUnavailable)
		}
		slog.WarnContext(ctx, "chat completion failed", "user_id", p.ID, "error", err)
		return nil, fmt.Errorf("%w: chat service is temporarily unavailable", utils.ErrUpstreamUnavailable)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, fmt.Errorf("%w: empty reply from chat service", utils.ErrUpstreamUnavailable)
	}
	return &response_models.ChatResponse{Reply: reply}, nil
}

func (s *ChatService) Analyze(ctx context.Context, _ Principal, request request_models.AnalyzeRequest) (*response_models.SentimentResult, error) {
	text := strings.TrimSpace(request.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", utils.ErrValidation)
	}
	if utf8.RuneCountInString(text) > maxContentLength {
		return nil, fmt.Errorf("%w: text cannot be more than %d characters", utils.ErrValidation, maxContentLength)
	}
	result := s.sentiment.Classify(ctx, text)
	return &result, nil
}

// chatHistory keeps the most recent turns and rejects unknown roles.
func chatHistory(turns []request_models.ChatTurn) ([]utils.ChatMessage, error) {
	if len(turns) > maxChatHistory {
		turns = turns[len(turns)-maxChatHistory:]
	}
	out := make([]utils.ChatMessage, 0, len(turns))
	for _, t := range turns {
		if t.Role != "user" && t.Role != "assistant" {
			return nil, fmt.Errorf("%w: history role must be user or assistant", utils.ErrValidation)
		}
		content := strings.TrimSpace(t.Content)
		if content == "" {
			continue
		}
		out = append(out, utils.ChatMessage{Role: t.Role, Content: content})
	}
	return out, nil
}
