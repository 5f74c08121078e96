package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"mindcare/pkg/utils"
)

func TestKeywordSentiment_Score(t *testing.T) {
	k := KeywordSentiment{PointsPerHit: 0.2}

	tests := []struct {
		text  string
		score float64
		label string
	}{
		{"I feel happy and grateful, but tired.", 0.2, SentimentPositive},
		{"Great great great day", 0.6, SentimentPositive},
		{"Sad. Lonely. Worried.", -0.6, SentimentNegative},
		{"The bus was late", 0, SentimentNeutral},
		{"good bad", 0, SentimentNeutral},
		{"happy happy happy happy happy happy happy", 1, SentimentPositive},
		{"awful awful awful awful awful awful", -1, SentimentNegative},
		{"", 0, SentimentNeutral},
	}
	for _, tt := range tests {
		result := k.Classify(context.Background(), tt.text)
		assert.Equal(t, tt.score, result.Score, tt.text)
		assert.Equal(t, tt.label, result.Label, tt.text)
		assert.Equal(t, "keyword", result.Source)
	}
}

func TestKeywordSentiment_DefaultPoints(t *testing.T) {
	assert.Equal(t, 0.2, KeywordSentiment{}.Score("happy"))
	assert.Equal(t, 0.5, KeywordSentiment{PointsPerHit: 0.5}.Score("happy"))
}

func TestSentimentLabelThresholds(t *testing.T) {
	assert.Equal(t, SentimentNeutral, SentimentLabel(0.1))
	assert.Equal(t, SentimentPositive, SentimentLabel(0.11))
	assert.Equal(t, SentimentNeutral, SentimentLabel(-0.1))
	assert.Equal(t, SentimentNegative, SentimentLabel(-0.11))
}

func TestLLMSentiment_UsesModelReply(t *testing.T) {
	client := &fakeCompletion{jsonReply: `{"label":"negative","score":0.7}`}
	s := NewLLMSentiment(client, KeywordSentiment{}, 0, nil)

	result := s.Classify(context.Background(), "whatever")
	assert.Equal(t, 0.7, result.Score)
	// The label is derived from the score.
	assert.Equal(t, SentimentPositive, result.Label)
	assert.Equal(t, "llm", result.Source)

	client.jsonReply = `{"label":"positive","score":4}`
	assert.Equal(t, 1.0, s.Classify(context.Background(), "x").Score)
}

func TestLLMSentiment_FallsBack(t *testing.T) {
	cases := map[string]*fakeCompletion{
		"provider error": {err: errors.New("connection reset")},
		"disabled":       {err: utils.ErrAIDisabled},
		"not json":       {jsonReply: "I think it is positive"},
		"missing score":  {jsonReply: `{"label":"positive"}`},
	}
	for name, client := range cases {
		t.Run(name, func(t *testing.T) {
			s := NewLLMSentiment(client, KeywordSentiment{}, 0, nil)
			result := s.Classify(context.Background(), "so sad today")
			assert.Equal(t, "keyword", result.Source)
			assert.Equal(t, -0.2, result.Score)
			assert.Equal(t, SentimentNegative, result.Label)
		})
	}

	s := NewLLMSentiment(nil, KeywordSentiment{}, 0, nil)
	assert.Equal(t, "keyword", s.Classify(context.Background(), "fine").Source)
}
