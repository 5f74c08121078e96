package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcare/internal/models/request_models"
	"mindcare/internal/repositories/repotest"
	"mindcare/pkg/utils"
)

func TestResolveWindow(t *testing.T) {
	now := monday

	rng, err := ResolveWindow(request_models.StatsWindow{}, now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -DefaultStatsDays), rng.Start)
	assert.Equal(t, now, rng.End)
	assert.Equal(t, "UTC", rng.Timezone)

	rng, err = ResolveWindow(request_models.StatsWindow{Days: 7, Dense: true}, now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), rng.Start)
	assert.True(t, rng.Dense)

	// Reversed bounds are swapped.
	rng, err = ResolveWindow(request_models.StatsWindow{Start: now, End: now.AddDate(0, 0, -3)}, now)
	require.NoError(t, err)
	assert.True(t, rng.Start.Before(rng.End))
	assert.Equal(t, now.AddDate(0, 0, -3), rng.Start)
}

func TestResolveWindow_Rejects(t *testing.T) {
	cases := map[string]request_models.StatsWindow{
		"days and start": {Days: 7, Start: monday.AddDate(0, 0, -1)},
		"negative days":  {Days: -1},
		"too many days":  {Days: MaxStatsDays + 1},
		"range too long": {Start: monday.AddDate(-2, 0, 0), End: monday},
	}
	for name, w := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ResolveWindow(w, monday)
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}
}

func TestStatsService_ScopesToOwner(t *testing.T) {
	ctx := context.Background()
	moods := repotest.NewMoods()
	svc := NewStatsService(moods, repotest.NewJournals(), DefaultInsightConfig())
	svc.now = func() time.Time { return monday.AddDate(0, 0, 2) }

	alice := userPrincipal()
	bob := userPrincipal()
	for _, e := range sampleMoods()[:3] {
		e.OwnerID = alice.ID
		require.NoError(t, moods.Create(ctx, &e))
	}
	other := moodAt("sad", 2, monday)
	other.OwnerID = bob.ID
	require.NoError(t, moods.Create(ctx, &other))

	stats, err := svc.MoodStats(ctx, alice, alice.ID, request_models.StatsWindow{Days: 7})
	require.NoError(t, err)
	// The Thursday entry lies after "now".
	assert.Equal(t, int64(2), stats.Total)

	_, err = svc.MoodStats(ctx, bob, alice.ID, request_models.StatsWindow{})
	assert.ErrorIs(t, err, utils.ErrNotAuthorized)
	_, err = svc.JournalStats(ctx, bob, alice.ID, request_models.StatsWindow{})
	assert.ErrorIs(t, err, utils.ErrNotAuthorized)
	_, err = svc.MoodInsights(ctx, bob, alice.ID)
	assert.ErrorIs(t, err, utils.ErrNotAuthorized)

	insights, err := svc.MoodInsights(ctx, adminPrincipal(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, insights.EntryCount)

	journal, err := svc.JournalStats(ctx, bob, bob.ID, request_models.StatsWindow{Days: 30})
	require.NoError(t, err)
	assert.Zero(t, journal.Total)
}
