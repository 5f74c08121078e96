package request_models

import "time"

type CreateJournalRequest struct {
	Title          string   `json:"title"`
	Content        string   `json:"content" binding:"required"`
	Emotion        string   `json:"emotion"`
	SentimentScore *float64 `json:"sentiment_score"`
	Mood           *int     `json:"mood"`
	Tags           []string `json:"tags"`
}

type UpdateJournalRequest struct {
	Title          *string   `json:"title"`
	Content        *string   `json:"content"`
	Emotion        *string   `json:"emotion"`
	SentimentScore *float64  `json:"sentiment_score"`
	Mood           *int      `json:"mood"`
	Tags           *[]string `json:"tags"`
}

type JournalFilter struct {
	Emotion string
	Tag     string
	Mood    int
	From    time.Time
	To      time.Time
}
