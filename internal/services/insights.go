package services

import (
	"fmt"
	"math"
	"time"

	"mindcare/internal/models/db_models"
	"mindcare/internal/models/response_models"
)

const (
	DefaultInsightWindowDays     = 7
	DefaultInsightTrendThreshold = 2
	maxSuggestions               = 3

	StarterSuggestion = "Log how you feel once a day to build a picture of your week."
)

// NoDataInsight is the only insight returned when the window holds no entries.
func NoDataInsight(windowDays int) string {
	return fmt.Sprintf("No mood entries in the last %d days yet. Start tracking to see your patterns.", windowDays)
}

type InsightConfig struct {
	WindowDays int
	// TrendThreshold is the intensity change, oldest to newest entry, that
	// must be exceeded before a trend is reported.
	TrendThreshold int
}

func DefaultInsightConfig() InsightConfig {
	return InsightConfig{WindowDays: DefaultInsightWindowDays, TrendThreshold: DefaultInsightTrendThreshold}
}

var moodSuggestions = map[db_models.MoodLabel]string{
	db_models.MoodAnxious:  "Try a five-minute breathing exercise when anxiety builds up.",
	db_models.MoodStressed: "Schedule a short break away from screens to reset.",
	db_models.MoodSad:      "Reach out to a friend or someone you trust today.",
	db_models.MoodAngry:    "A brisk walk can help release tension before you respond.",
	db_models.MoodTired:    "Aim for a consistent bedtime over the next few nights.",
}

// BuildInsights turns the recent mood entries into short insights and at most
// three distinct suggestions. Entries outside the window ending at now are ignored.
func BuildInsights(entries []db_models.MoodEntry, now time.Time, cfg InsightConfig) response_models.Insights {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = DefaultInsightWindowDays
	}
	if cfg.TrendThreshold < 0 {
		cfg.TrendThreshold = DefaultInsightTrendThreshold
	}

	from := now.AddDate(0, 0, -cfg.WindowDays).Unix()
	var recent []db_models.MoodEntry
	for _, e := range sortedMoods(entries) {
		if e.CreatedAt >= from && e.CreatedAt <= now.Unix() {
			recent = append(recent, e)
		}
	}

	out := response_models.Insights{
		WindowDays:  cfg.WindowDays,
		EntryCount:  len(recent),
		Insights:    []string{},
		Suggestions: []string{},
	}
	if len(recent) == 0 {
		out.Insights = append(out.Insights, NoDataInsight(cfg.WindowDays))
		out.Suggestions = append(out.Suggestions, StarterSuggestion)
		return out
	}

	stats := ComputeMoodStats(recent, response_models.TimeRange{})
	top := stats.Distribution[0]
	out.Insights = append(out.Insights,
		fmt.Sprintf("You logged %d mood entries with an average intensity of %.1f/10.", len(recent), stats.AvgIntensity),
		fmt.Sprintf("Your most frequent mood was %s (%d of %d entries).", top.Key, top.Count, len(recent)),
	)

	suggestions := newSuggestionSet()

	if len(recent) >= 2 {
		delta := recent[len(recent)-1].Intensity - recent[0].Intensity
		if int(math.Abs(float64(delta))) > cfg.TrendThreshold {
			if delta > 0 {
				out.Insights = append(out.Insights, fmt.Sprintf("Your mood intensity improved by %d points over the period.", delta))
			} else {
				out.Insights = append(out.Insights, fmt.Sprintf("Your mood intensity declined by %d points over the period.", -delta))
				suggestions.add("Consider talking things through with someone you trust.")
			}
		}
	}

	if len(stats.Activities) > 0 {
		out.Insights = append(out.Insights, fmt.Sprintf("%q was your most common activity.", stats.Activities[0].Key))
	}

	if s, ok := moodSuggestions[db_models.MoodLabel(top.Key)]; ok {
		suggestions.add(s)
	}

	negative := 0
	for _, e := range recent {
		if e.Mood.Negative() {
			negative++
		}
	}
	if negative*2 > len(recent) {
		suggestions.add("Most of your week leaned difficult; be gentle with yourself and keep routines simple.")
	}
	if len(recent) < 3 {
		suggestions.add("Log your mood more often to get more accurate insights.")
	}
	suggestions.add("Keep up your tracking habit to notice what lifts your mood.")

	out.Suggestions = suggestions.list()
	return out
}

type suggestionSet struct {
	seen  map[string]bool
	items []string
}

func newSuggestionSet() *suggestionSet {
	return &suggestionSet{seen: make(map[string]bool)}
}

func (s *suggestionSet) add(text string) {
	if s.seen[text] || len(s.items) >= maxSuggestions {
		return
	}
	s.seen[text] = true
	s.items = append(s.items, text)
}

func (s *suggestionSet) list() []string {
	if s.items == nil {
		return []string{}
	}
	return s.items
}
