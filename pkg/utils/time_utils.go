package utils

import (
	"strings"
	"time"
)

// StatsLocation is the single zone used for all day/weekday/hour bucketing.
// Entries are stored as unix seconds, so the choice only affects grouping.
var StatsLocation = time.UTC

const DayLayout = "2006-01-02"

func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSeconds converts an epoch value in seconds to StatsLocation.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(StatsLocation)
}

func DayKey(t time.Time) string {
	return t.In(StatsLocation).Format(DayLayout)
}

func StartOfDay(t time.Time) time.Time {
	t = t.In(StatsLocation)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, StatsLocation)
}

// TimeOfDay labels an instant as morning, afternoon, evening or night.
func TimeOfDay(t time.Time) string {
	h := t.In(StatsLocation).Hour()
	switch {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 17:
		return "afternoon"
	case h >= 17 && h < 21:
		return "evening"
	default:
		return "night"
	}
}

func Weekday(t time.Time) string {
	return strings.ToLower(t.In(StatsLocation).Weekday().String())
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(StatsLocation).Format(time.RFC3339)
}
