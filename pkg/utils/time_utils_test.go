package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeOfDay(t *testing.T) {
	cases := map[int]string{
		4:  "night",
		5:  "morning",
		11: "morning",
		12: "afternoon",
		16: "afternoon",
		17: "evening",
		20: "evening",
		21: "night",
		23: "night",
	}
	for hour, want := range cases {
		at := time.Date(2025, 3, 10, hour, 30, 0, 0, time.UTC)
		assert.Equal(t, want, TimeOfDay(at), "hour %d", hour)
	}
}

func TestDayHelpers_UseUTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	at := time.Date(2025, 3, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))

	assert.Equal(t, "2025-03-10", DayKey(at))
	assert.Equal(t, "monday", Weekday(at))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), StartOfDay(at))
}

func TestFromUnixSeconds(t *testing.T) {
	assert.True(t, FromUnixSeconds(0).IsZero())
	assert.Equal(t, time.UTC, FromUnixSeconds(1700000000).Location())
}
