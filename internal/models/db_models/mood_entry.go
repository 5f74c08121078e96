package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type MoodLabel string

const (
	MoodHappy    MoodLabel = "happy"
	MoodSad      MoodLabel = "sad"
	MoodAnxious  MoodLabel = "anxious"
	MoodAngry    MoodLabel = "angry"
	MoodCalm     MoodLabel = "calm"
	MoodExcited  MoodLabel = "excited"
	MoodStressed MoodLabel = "stressed"
	MoodTired    MoodLabel = "tired"
	MoodGrateful MoodLabel = "grateful"
	MoodNeutral  MoodLabel = "neutral"
)

var MoodLabels = []MoodLabel{
	MoodHappy, MoodSad, MoodAnxious, MoodAngry, MoodCalm,
	MoodExcited, MoodStressed, MoodTired, MoodGrateful, MoodNeutral,
}

func (m MoodLabel) Valid() bool {
	for _, l := range MoodLabels {
		if l == m {
			return true
		}
	}
	return false
}

// Negative reports moods the insight rules treat as low points.
func (m MoodLabel) Negative() bool {
	switch m {
	case MoodSad, MoodAnxious, MoodAngry, MoodStressed, MoodTired:
		return true
	}
	return false
}

const (
	MinIntensity = 1
	MaxIntensity = 10
)

type MoodEntry struct {
	BaseModel
	OwnerID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Mood       MoodLabel      `gorm:"type:varchar(20);not null;index" json:"mood"`
	Intensity  int            `gorm:"not null;check:intensity >= 1 AND intensity <= 10" json:"intensity"`
	Note       string         `gorm:"type:text" json:"note"`
	Activities pq.StringArray `gorm:"type:text[]" json:"activities"`
	Tags       pq.StringArray `gorm:"type:text[]" json:"tags"`
}
