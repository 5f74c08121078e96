package response_models

import "time"

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// Dense zero-fills days without entries in the timeline.
	Dense bool `json:"dense"`
	// Timezone used for bucketing; always UTC.
	Timezone string `json:"timezone"`
}

// StatBucket is one group of an aggregation. AvgIntensity is the mood
// intensity for mood entries and the 1-5 mood for journal entries.
type StatBucket struct {
	Key          string   `json:"key"`
	Count        int64    `json:"count"`
	AvgIntensity float64  `json:"avg_intensity"`
	AvgSentiment *float64 `json:"avg_sentiment,omitempty"`
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
