package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode"

	"mindcare/internal/models/db_models"
	"mindcare/internal/models/response_models"
	"mindcare/pkg/metrics"
	"mindcare/pkg/utils"
)

var errMalformedSentiment = errors.New("malformed sentiment reply")

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	// Scores strictly beyond this are labelled positive or negative.
	sentimentLabelThreshold = 0.1
)

var positiveWords = map[string]bool{
	"happy": true, "good": true, "great": true, "excellent": true, "wonderful": true,
	"amazing": true, "love": true, "joy": true, "grateful": true, "thankful": true,
	"calm": true, "peaceful": true, "excited": true, "hopeful": true, "proud": true,
	"relaxed": true, "better": true, "glad": true, "content": true, "positive": true,
}

var negativeWords = map[string]bool{
	"sad": true, "bad": true, "terrible": true, "awful": true, "angry": true,
	"hate": true, "anxious": true, "worried": true, "stressed": true, "depressed": true,
	"lonely": true, "tired": true, "upset": true, "afraid": true, "scared": true,
	"hopeless": true, "worse": true, "hurt": true, "frustrated": true, "negative": true,
}

type SentimentClassifier interface {
	// Classify never fails; when the model is unavailable it falls back to
	// the keyword scorer.
	Classify(ctx context.Context, text string) response_models.SentimentResult
}

// KeywordSentiment scores text by counting hits on fixed word lists.
type KeywordSentiment struct {
	PointsPerHit float64
}

func (k KeywordSentiment) Score(text string) float64 {
	points := k.PointsPerHit
	if points <= 0 {
		points = 0.2
	}
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	score := 0.0
	for _, w := range words {
		switch {
		case positiveWords[w]:
			score += points
		case negativeWords[w]:
			score -= points
		}
	}
	return clampScore(score)
}

func (k KeywordSentiment) Classify(_ context.Context, text string) response_models.SentimentResult {
	score := k.Score(text)
	return response_models.SentimentResult{
		Label:  SentimentLabel(score),
		Score:  score,
		Source: string(db_models.SentimentKeyword),
	}
}

// SentimentLabel maps a score onto positive, negative or neutral.
func SentimentLabel(score float64) string {
	switch {
	case score > sentimentLabelThreshold:
		return SentimentPositive
	case score < -sentimentLabelThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func clampScore(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	score = math.Max(-1, math.Min(1, score))
	// Keep scores tidy after repeated float additions.
	return math.Round(score*1000) / 1000
}

const sentimentSystemPrompt = `You classify the sentiment of short personal texts.
Return JSON only: {"label":"positive|negative|neutral","score":<number between -1 and 1>}.
No comments, no markdown.`

// LLMSentiment asks the completion model first and falls back to keywords.
type LLMSentiment struct {
	client   utils.CompletionClientInterface
	fallback KeywordSentiment
	timeout  time.Duration
	recorder metrics.Recorder
}

func NewLLMSentiment(client utils.CompletionClientInterface, fallback KeywordSentiment, timeout time.Duration, recorder metrics.Recorder) *LLMSentiment {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &LLMSentiment{client: client, fallback: fallback, timeout: timeout, recorder: recorder}
}

func (s *LLMSentiment) Classify(ctx context.Context, text string) response_models.SentimentResult {
	if s.client != nil {
		result, err := s.classifyRemote(ctx, text)
		if err == nil {
			s.recorder.RecordSentiment(result.Source)
			return result
		}
		if !errors.Is(err, utils.ErrAIDisabled) {
			slog.WarnContext(ctx, "sentiment model unavailable, using keyword fallback", "error", err)
		}
	}

	result := s.fallback.Classify(ctx, text)
	s.recorder.RecordSentiment(result.Source)
	return result
}

func (s *LLMSentiment) classifyRemote(ctx context.Context, text string) (response_models.SentimentResult, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.client.CompleteJSON(ctx, sentimentSystemPrompt, text)
	if err != nil {
		return response_models.SentimentResult{}, err
	}

	var parsed struct {
		Label string   `json:"label"`
		Score *float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return response_models.SentimentResult{}, err
	}
	if parsed.Score == nil || math.IsNaN(*parsed.Score) {
		return response_models.SentimentResult{}, errMalformedSentiment
	}

	score := clampScore(*parsed.Score)
	return response_models.SentimentResult{
		// The label always agrees with the score, whatever the model claimed.
		Label:  SentimentLabel(score),
		Score:  score,
		Source: string(db_models.SentimentLLM),
	}, nil
}

