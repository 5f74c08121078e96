package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcare/internal/models/db_models"
	"mindcare/internal/models/request_models"
	"mindcare/internal/repositories/repotest"
	"mindcare/pkg/utils"
)

func newMoodService() (*MoodService, *testClock) {
	clock := newTestClock()
	svc := NewMoodService(repotest.NewMoods())
	svc.now = clock.Now
	return svc, clock
}

func moodRequest(mood string, intensity int) request_models.CreateMoodRequest {
	return request_models.CreateMoodRequest{Mood: mood, Intensity: intPtr(intensity)}
}

func TestMoodService_CreateFillsDefaults(t *testing.T) {
	svc, clock := newMoodService()
	p := userPrincipal()

	entry, err := svc.Create(context.Background(), p, moodRequest("happy", 7))
	require.NoError(t, err)

	assert.Equal(t, p.ID, entry.OwnerID)
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, clock.Now().Unix(), entry.CreatedAt)
	assert.Equal(t, "Feeling happy", entry.Note)
	assert.Equal(t, []string{"morning", "monday"}, []string(entry.Tags))
	assert.Empty(t, entry.Activities)
}

func TestMoodService_GetReturnsSuppliedFields(t *testing.T) {
	svc, _ := newMoodService()
	ctx := context.Background()
	p := userPrincipal()

	req := moodRequest("calm", 4)
	req.Note = "  walked by the river "
	req.Activities = []string{"Exercise", "Yoga Class"}
	req.Tags = []string{"Work"}

	created, err := svc.Create(ctx, p, req)
	require.NoError(t, err)

	got, err := svc.Get(ctx, p, created.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.MoodCalm, got.Mood)
	assert.Equal(t, 4, got.Intensity)
	assert.Equal(t, req.Note, got.Note)
	assert.Equal(t, req.Activities, []string(got.Activities))
	assert.Equal(t, req.Tags, []string(got.Tags))
}

func TestMoodService_CreateDropsBlankAndRepeatedItems(t *testing.T) {
	svc, _ := newMoodService()

	req := moodRequest("calm", 4)
	req.Activities = []string{"Walking", "walking", " ", "Reading "}

	entry, err := svc.Create(context.Background(), userPrincipal(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Walking", "Reading"}, []string(entry.Activities))
}

func TestMoodService_LabelCaseIsNormalized(t *testing.T) {
	svc, _ := newMoodService()
	ctx := context.Background()
	p := userPrincipal()

	entry, err := svc.Create(ctx, p, moodRequest(" Anxious", 6))
	require.NoError(t, err)
	assert.Equal(t, db_models.MoodAnxious, entry.Mood)

	updated, err := svc.Update(ctx, p, entry.ID, request_models.UpdateMoodRequest{Mood: strPtr("CALM")})
	require.NoError(t, err)
	assert.Equal(t, db_models.MoodCalm, updated.Mood)

	page, err := svc.List(ctx, p, p.ID, request_models.MoodFilter{Mood: "Calm"}, request_models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestMoodService_ListFiltersIgnoreCase(t *testing.T) {
	svc, _ := newMoodService()
	ctx := context.Background()
	p := userPrincipal()

	req := moodRequest("happy", 7)
	req.Activities = []string{"Exercise"}
	req.Tags = []string{"Work"}
	_, err := svc.Create(ctx, p, req)
	require.NoError(t, err)

	page, err := svc.List(ctx, p, p.ID, request_models.MoodFilter{Activity: "exercise", Tag: "WORK"}, request_models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, []string{"Exercise"}, []string(page.Items[0].Activities))
}

func TestMoodService_IntensityBounds(t *testing.T) {
	svc, _ := newMoodService()
	ctx := context.Background()
	p := userPrincipal()

	for _, v := range []int{1, 10} {
		_, err := svc.Create(ctx, p, moodRequest("sad", v))
		assert.NoError(t, err, "intensity %d", v)
	}
	for _, v := range []int{0, 11, -3} {
		_, err := svc.Create(ctx, p, moodRequest("sad", v))
		assert.ErrorIs(t, err, utils.ErrValidation, "intensity %d", v)
	}

	_, err := svc.Create(ctx, p, request_models.CreateMoodRequest{Mood: "sad"})
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = svc.Create(ctx, p, moodRequest("melancholic", 5))
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestMoodService_OwnershipGuard(t *testing.T) {
	svc, _ := newMoodService()
	ctx := context.Background()
	owner := userPrincipal()
	stranger := userPrincipal()
	admin := adminPrincipal()

	entry, err := svc.Create(ctx, owner, moodRequest("anxious", 6))
	require.NoError(t, err)

	_, err = svc.Get(ctx, stranger, entry.ID)
	assert.ErrorIs(t, err, utils.ErrNotAuthorized)
	_, err = svc.Update(ctx, stranger, entry.ID, request_models.UpdateMoodRequest{Intensity: intPtr(2)})
	assert.ErrorIs(t, err, utils.ErrNotAuthorized)
	assert.ErrorIs(t, svc.Delete(ctx, stranger, entry.ID), utils.ErrNotAuthorized)

	got, err := svc.Get(ctx, owner, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Intensity)

	got, err = svc.Get(ctx, admin, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.OwnerID)
}

func TestMoodService_UpdatePatchesAndRevalidates(t *testing.T) {
	svc, _ := newMoodService()
	ctx := context.Background()
	p := userPrincipal()

	entry, err := svc.Create(ctx, p, moodRequest("tired", 3))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p, entry.ID, request_models.UpdateMoodRequest{
		Mood:       strPtr("calm"),
		Activities: &[]string{"yoga"},
	})
	require.NoError(t, err)
	assert.Equal(t, "calm", string(updated.Mood))
	assert.Equal(t, 3, updated.Intensity)
	assert.Equal(t, []string{"yoga"}, []string(updated.Activities))
	assert.Equal(t, p.ID, updated.OwnerID)

	_, err = svc.Update(ctx, p, entry.ID, request_models.UpdateMoodRequest{Intensity: intPtr(0)})
	assert.ErrorIs(t, err, utils.ErrValidation)

	stored, err := svc.Get(ctx, p, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Intensity)
}

func TestMoodService_DeleteTwice(t *testing.T) {
	svc, _ := newMoodService()
	ctx := context.Background()
	p := userPrincipal()

	entry, err := svc.Create(ctx, p, moodRequest("happy", 8))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p, entry.ID))
	assert.ErrorIs(t, svc.Delete(ctx, p, entry.ID), utils.ErrNotFound)

	_, err = svc.Get(ctx, p, entry.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestMoodService_ListScopesAndOrders(t *testing.T) {
	svc, clock := newMoodService()
	ctx := context.Background()
	alice := userPrincipal()
	bob := userPrincipal()

	var ids []uuid.UUID
	for i, mood := range []string{"happy", "sad", "happy"} {
		e, err := svc.Create(ctx, alice, moodRequest(mood, i+1))
		require.NoError(t, err)
		ids = append(ids, e.ID)
		clock.Advance(time.Hour)
	}
	_, err := svc.Create(ctx, bob, moodRequest("angry", 9))
	require.NoError(t, err)

	page, err := svc.List(ctx, alice, alice.ID, request_models.MoodFilter{}, request_models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, ids[2], page.Items[0].ID)
	assert.Equal(t, ids[0], page.Items[2].ID)

	filtered, err := svc.List(ctx, alice, alice.ID, request_models.MoodFilter{Mood: "happy"}, request_models.PageRequest{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), filtered.Total)
	assert.Equal(t, 2, filtered.Pages)
	assert.Len(t, filtered.Items, 1)

	_, err = svc.List(ctx, bob, alice.ID, request_models.MoodFilter{}, request_models.PageRequest{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, utils.ErrNotAuthorized)

	asAdmin, err := svc.List(ctx, adminPrincipal(), alice.ID, request_models.MoodFilter{}, request_models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), asAdmin.Total)
}

func TestMoodService_ListRejectsBadInput(t *testing.T) {
	svc, _ := newMoodService()
	ctx := context.Background()
	p := userPrincipal()

	_, err := svc.List(ctx, p, p.ID, request_models.MoodFilter{}, request_models.PageRequest{Page: 0, Limit: 10})
	assert.ErrorIs(t, err, utils.ErrInvalidPage)
	_, err = svc.List(ctx, p, p.ID, request_models.MoodFilter{}, request_models.PageRequest{Page: 1, Limit: 500})
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)
	_, err = svc.List(ctx, p, p.ID, request_models.MoodFilter{Mood: "bored"}, request_models.PageRequest{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, utils.ErrValidation)

	empty, err := svc.List(ctx, p, p.ID, request_models.MoodFilter{}, request_models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
}
