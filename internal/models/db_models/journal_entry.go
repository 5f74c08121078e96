package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Emotion string

const (
	EmotionHappy    Emotion = "happy"
	EmotionSad      Emotion = "sad"
	EmotionAnxious  Emotion = "anxious"
	EmotionAngry    Emotion = "angry"
	EmotionCalm     Emotion = "calm"
	EmotionExcited  Emotion = "excited"
	EmotionStressed Emotion = "stressed"
	EmotionGrateful Emotion = "grateful"
	EmotionHopeful  Emotion = "hopeful"
	EmotionNeutral  Emotion = "neutral"
)

var Emotions = []Emotion{
	EmotionHappy, EmotionSad, EmotionAnxious, EmotionAngry, EmotionCalm,
	EmotionExcited, EmotionStressed, EmotionGrateful, EmotionHopeful, EmotionNeutral,
}

func (e Emotion) Valid() bool {
	for _, v := range Emotions {
		if v == e {
			return true
		}
	}
	return false
}

type SentimentSource string

const (
	SentimentSupplied SentimentSource = "supplied"
	SentimentLLM      SentimentSource = "llm"
	SentimentKeyword  SentimentSource = "keyword"
)

const (
	MinJournalMood     = 1
	MaxJournalMood     = 5
	DefaultJournalMood = 3
)

type JournalEntry struct {
	BaseModel
	OwnerID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title           string          `gorm:"type:varchar(200)" json:"title,omitempty"`
	Content         string          `gorm:"type:text;not null" json:"content"`
	Emotion         Emotion         `gorm:"type:varchar(20);not null;index" json:"emotion"`
	SentimentScore  float64         `gorm:"not null;default:0" json:"sentiment_score"`
	SentimentSource SentimentSource `gorm:"type:varchar(20)" json:"sentiment_source"`
	Mood            int             `gorm:"not null;default:3;check:mood >= 1 AND mood <= 5" json:"mood"`
	Tags            pq.StringArray  `gorm:"type:text[]" json:"tags"`
}
