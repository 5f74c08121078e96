package client

import (
	"time"

	"github.com/google/uuid"
)

// Wire types mirror the server's JSON. Timestamps are unix seconds.

type User struct {
	ID          uuid.UUID   `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   int64       `json:"created_at"`
}

type Preferences struct {
	Theme         string            `json:"theme,omitempty"`
	Notifications bool              `json:"notifications"`
	ReminderTime  string            `json:"reminder_time,omitempty"`
	Language      string            `json:"language,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`
}

type tokenPair struct {
	AccessToken     string    `json:"access_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
	RefreshToken    string    `json:"refresh_token"`
}

func (p tokenPair) tokens() Tokens {
	return Tokens{AccessToken: p.AccessToken, AccessExpiresAt: p.AccessExpiresAt, RefreshToken: p.RefreshToken}
}

type authResult struct {
	tokenPair
	User User `json:"user"`
}

type MoodEntry struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Mood       string    `json:"mood"`
	Intensity  int       `json:"intensity"`
	Note       string    `json:"note"`
	Activities []string  `json:"activities"`
	Tags       []string  `json:"tags"`
	CreatedAt  int64     `json:"created_at"`
	UpdatedAt  int64     `json:"updated_at"`
}

type NewMood struct {
	Mood       string   `json:"mood"`
	Intensity  int      `json:"intensity"`
	Note       string   `json:"note,omitempty"`
	Activities []string `json:"activities,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// MoodPatch leaves nil fields untouched.
type MoodPatch struct {
	Mood       *string   `json:"mood,omitempty"`
	Intensity  *int      `json:"intensity,omitempty"`
	Note       *string   `json:"note,omitempty"`
	Activities *[]string `json:"activities,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
}

type JournalEntry struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Emotion         string    `json:"emotion"`
	SentimentScore  float64   `json:"sentiment_score"`
	SentimentSource string    `json:"sentiment_source"`
	Mood            int       `json:"mood"`
	Tags            []string  `json:"tags"`
	CreatedAt       int64     `json:"created_at"`
	UpdatedAt       int64     `json:"updated_at"`
}

type NewJournal struct {
	Title          string   `json:"title,omitempty"`
	Content        string   `json:"content"`
	Emotion        string   `json:"emotion,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	Mood           *int     `json:"mood,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

type JournalPatch struct {
	Title          *string   `json:"title,omitempty"`
	Content        *string   `json:"content,omitempty"`
	Emotion        *string   `json:"emotion,omitempty"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	Mood           *int      `json:"mood,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
}

type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type StatBucket struct {
	Key          string   `json:"key"`
	Count        int64    `json:"count"`
	AvgIntensity float64  `json:"avg_intensity"`
	AvgSentiment *float64 `json:"avg_sentiment,omitempty"`
}

type TimeRange struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Dense    bool      `json:"dense"`
	Timezone string    `json:"timezone"`
}

type MoodStats struct {
	Range        TimeRange    `json:"range"`
	Total        int64        `json:"total"`
	AvgIntensity float64      `json:"avg_intensity"`
	Distribution []StatBucket `json:"distribution"`
	Timeline     []StatBucket `json:"timeline"`
	DayOfWeek    []StatBucket `json:"day_of_week"`
	HourOfDay    []StatBucket `json:"hour_of_day"`
	Activities   []StatBucket `json:"activities"`
	Tags         []StatBucket `json:"tags"`
}

type JournalStats struct {
	Range        TimeRange    `json:"range"`
	Total        int64        `json:"total"`
	AvgMood      float64      `json:"avg_mood"`
	AvgSentiment float64      `json:"avg_sentiment"`
	Emotions     []StatBucket `json:"emotions"`
	Timeline     []StatBucket `json:"timeline"`
	DayOfWeek    []StatBucket `json:"day_of_week"`
	Tags         []StatBucket `json:"tags"`
}

type Insights struct {
	WindowDays  int      `json:"window_days"`
	EntryCount  int      `json:"entry_count"`
	Insights    []string `json:"insights"`
	Suggestions []string `json:"suggestions"`
}

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Sentiment struct {
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Source string  `json:"source"`
}
