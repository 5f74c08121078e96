package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"mindcare/internal/models/db_models"
	"mindcare/internal/models/response_models"
	"mindcare/pkg/utils"
)

// Aggregations are computed in memory over one owner's entries for a window,
// bucketed in utils.StatsLocation. Group order never depends on map iteration:
// ties on count keep the order in which groups first appeared.

var weekdayOrder = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

type sample struct {
	at        time.Time
	intensity float64
	sentiment *float64
}

type bucketAcc struct {
	count        int64
	sumIntensity float64
	sumSentiment float64
	sentiments   int64
}

type grouper struct {
	order []string
	acc   map[string]*bucketAcc
}

func newGrouper() *grouper {
	return &grouper{acc: make(map[string]*bucketAcc)}
}

func (g *grouper) add(key string, s sample) {
	a, ok := g.acc[key]
	if !ok {
		a = &bucketAcc{}
		g.acc[key] = a
		g.order = append(g.order, key)
	}
	a.count++
	a.sumIntensity += s.intensity
	if s.sentiment != nil {
		a.sumSentiment += *s.sentiment
		a.sentiments++
	}
}

func (g *grouper) bucket(key string) response_models.StatBucket {
	a := g.acc[key]
	if a == nil {
		return response_models.StatBucket{Key: key}
	}
	b := response_models.StatBucket{
		Key:          key,
		Count:        a.count,
		AvgIntensity: round2(a.sumIntensity / float64(a.count)),
	}
	if a.sentiments > 0 {
		avg := round2(a.sumSentiment / float64(a.sentiments))
		b.AvgSentiment = &avg
	}
	return b
}

// byCount sorts by count descending, ties by first appearance.
func (g *grouper) byCount() []response_models.StatBucket {
	out := make([]response_models.StatBucket, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, g.bucket(key))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// inOrder follows keys, skipping the ones that never occurred.
func (g *grouper) inOrder(keys []string) []response_models.StatBucket {
	out := make([]response_models.StatBucket, 0, len(g.acc))
	for _, key := range keys {
		if _, ok := g.acc[key]; ok {
			out = append(out, g.bucket(key))
		}
	}
	return out
}

func distribution(samples []sample, keyOf func(i int) string) []response_models.StatBucket {
	g := newGrouper()
	for i, s := range samples {
		g.add(keyOf(i), s)
	}
	return g.byCount()
}

// correlation explodes a list-valued field and groups by each value, ignoring case.
func correlation(samples []sample, listOf func(i int) []string) []response_models.StatBucket {
	g := newGrouper()
	for i, s := range samples {
		for _, v := range listOf(i) {
			g.add(strings.ToLower(v), s)
		}
	}
	return g.byCount()
}

// timeline groups by calendar day ascending. With dense set every day from
// start to end is present, zero-filled where empty.
func timeline(samples []sample, start, end time.Time, dense bool) []response_models.StatBucket {
	g := newGrouper()
	for _, s := range samples {
		g.add(utils.DayKey(s.at), s)
	}

	var keys []string
	if dense && !end.Before(start) {
		last := utils.StartOfDay(end)
		for d := utils.StartOfDay(start); !d.After(last); d = d.AddDate(0, 0, 1) {
			keys = append(keys, utils.DayKey(d))
		}
		out := make([]response_models.StatBucket, 0, len(keys))
		for _, key := range keys {
			out = append(out, g.bucket(key))
		}
		return out
	}

	keys = append(keys, g.order...)
	sort.Strings(keys)
	return g.inOrder(keys)
}

func dayOfWeek(samples []sample) []response_models.StatBucket {
	g := newGrouper()
	for _, s := range samples {
		g.add(utils.Weekday(s.at), s)
	}
	return g.inOrder(weekdayOrder)
}

func hourOfDay(samples []sample) []response_models.StatBucket {
	g := newGrouper()
	for _, s := range samples {
		g.add(hourKey(s.at.In(utils.StatsLocation).Hour()), s)
	}
	keys := make([]string, 24)
	for h := range keys {
		keys[h] = hourKey(h)
	}
	return g.inOrder(keys)
}

func hourKey(h int) string { return fmt.Sprintf("%02d", h) }

// ComputeMoodStats aggregates mood entries that already fall inside rng.
func ComputeMoodStats(entries []db_models.MoodEntry, rng response_models.TimeRange) response_models.MoodStats {
	entries = sortedMoods(entries)
	samples := make([]sample, len(entries))
	var sum float64
	for i, e := range entries {
		samples[i] = sample{at: utils.FromUnixSeconds(e.CreatedAt), intensity: float64(e.Intensity)}
		sum += float64(e.Intensity)
	}

	stats := response_models.MoodStats{
		Range:        rng,
		Total:        int64(len(entries)),
		Distribution: distribution(samples, func(i int) string { return string(entries[i].Mood) }),
		Timeline:     timeline(samples, rng.Start, rng.End, rng.Dense),
		DayOfWeek:    dayOfWeek(samples),
		HourOfDay:    hourOfDay(samples),
		Activities:   correlation(samples, func(i int) []string { return entries[i].Activities }),
		Tags:         correlation(samples, func(i int) []string { return entries[i].Tags }),
	}
	if len(entries) > 0 {
		stats.AvgIntensity = round2(sum / float64(len(entries)))
	}
	return stats
}

// ComputeJournalStats aggregates journal entries; the 1-5 mood plays the
// role of intensity in every bucket.
func ComputeJournalStats(entries []db_models.JournalEntry, rng response_models.TimeRange) response_models.JournalStats {
	entries = sortedJournals(entries)
	samples := make([]sample, len(entries))
	var sumMood, sumSentiment float64
	for i, e := range entries {
		score := e.SentimentScore
		samples[i] = sample{at: utils.FromUnixSeconds(e.CreatedAt), intensity: float64(e.Mood), sentiment: &score}
		sumMood += float64(e.Mood)
		sumSentiment += score
	}

	stats := response_models.JournalStats{
		Range:     rng,
		Total:     int64(len(entries)),
		Emotions:  distribution(samples, func(i int) string { return string(entries[i].Emotion) }),
		Timeline:  timeline(samples, rng.Start, rng.End, rng.Dense),
		DayOfWeek: dayOfWeek(samples),
		Tags:      correlation(samples, func(i int) []string { return entries[i].Tags }),
	}
	if len(entries) > 0 {
		stats.AvgMood = round2(sumMood / float64(len(entries)))
		stats.AvgSentiment = round2(sumSentiment / float64(len(entries)))
	}
	return stats
}

func sortedMoods(entries []db_models.MoodEntry) []db_models.MoodEntry {
	out := append([]db_models.MoodEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out
}

func sortedJournals(entries []db_models.JournalEntry) []db_models.JournalEntry {
	out := append([]db_models.JournalEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
