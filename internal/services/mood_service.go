package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mindcare/internal/models/db_models"
	"mindcare/internal/models/request_models"
	"mindcare/internal/models/response_models"
	"mindcare/internal/repositories"
	"mindcare/pkg/utils"
)

type MoodServiceInterface interface {
	Create(ctx context.Context, p Principal, request request_models.CreateMoodRequest) (*db_models.MoodEntry, error)
	Get(ctx context.Context, p Principal, id uuid.UUID) (*db_models.MoodEntry, error)
	Update(ctx context.Context, p Principal, id uuid.UUID, request request_models.UpdateMoodRequest) (*db_models.MoodEntry, error)
	Delete(ctx context.Context, p Principal, id uuid.UUID) error
	List(ctx context.Context, p Principal, ownerID uuid.UUID, filter request_models.MoodFilter, page request_models.PageRequest) (*response_models.Page[db_models.MoodEntry], error)
}

type MoodService struct {
	moodRepo repositories.MoodRepository
	now      func() time.Time
}

func NewMoodService(moodRepo repositories.MoodRepository) *MoodService {
	return &MoodService{moodRepo: moodRepo, now: time.Now}
}

// Create always stamps the caller as owner.
func (s *MoodService) Create(ctx context.Context, p Principal, request request_models.CreateMoodRequest) (*db_models.MoodEntry, error) {
	if request.Intensity == nil {
		return nil, fmt.Errorf("%w: intensity is required", utils.ErrValidation)
	}

	entry := &db_models.MoodEntry{
		OwnerID:    p.ID,
		Mood:       db_models.MoodLabel(normalizeLabel(request.Mood)),
		Intensity:  *request.Intensity,
		Note:       request.Note,
		Activities: request.Activities,
		Tags:       request.Tags,
	}
	entry.CreatedAt = s.now().Unix()
	entry.UpdatedAt = entry.CreatedAt

	FillMoodDefaults(entry)
	if err := ValidateMoodEntry(entry); err != nil {
		return nil, err
	}

	if err := s.moodRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return entry, nil
}

func (s *MoodService) Get(ctx context.Context, p Principal, id uuid.UUID) (*db_models.MoodEntry, error) {
	return s.load(ctx, p, id, ActionRead)
}

func (s *MoodService) Update(ctx context.Context, p Principal, id uuid.UUID, request request_models.UpdateMoodRequest) (*db_models.MoodEntry, error) {
	entry, err := s.load(ctx, p, id, ActionWrite)
	if err != nil {
		return nil, err
	}

	if request.Mood != nil {
		entry.Mood = db_models.MoodLabel(normalizeLabel(*request.Mood))
	}
	if request.Intensity != nil {
		entry.Intensity = *request.Intensity
	}
	if request.Note != nil {
		entry.Note = *request.Note
	}
	if request.Activities != nil {
		entry.Activities = *request.Activities
	}
	if request.Tags != nil {
		entry.Tags = *request.Tags
	}

	FillMoodDefaults(entry)
	if err := ValidateMoodEntry(entry); err != nil {
		return nil, err
	}

	if err := s.moodRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return entry, nil
}

func (s *MoodService) Delete(ctx context.Context, p Principal, id uuid.UUID) error {
	if _, err := s.load(ctx, p, id, ActionDelete); err != nil {
		return err
	}
	deleted, err := s.moodRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return fmt.Errorf("%w: mood entry %s", utils.ErrNotFound, id)
	}
	return nil
}

// List is scoped to ownerID; listing someone else's entries needs admin.
func (s *MoodService) List(ctx context.Context, p Principal, ownerID uuid.UUID, filter request_models.MoodFilter, page request_models.PageRequest) (*response_models.Page[db_models.MoodEntry], error) {
	if err := Authorize(p, ownerID, ActionRead); err != nil {
		return nil, err
	}
	if err := validatePage(page); err != nil {
		return nil, err
	}
	filter.Mood = normalizeLabel(filter.Mood)
	if filter.Mood != "" && !db_models.MoodLabel(filter.Mood).Valid() {
		return nil, fmt.Errorf("%w: unknown mood filter %q", utils.ErrValidation, filter.Mood)
	}

	entries, total, err := s.moodRepo.List(ctx, ownerID, filter, page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	result := response_models.NewPage(entries, total, page.Page, page.Limit)
	return &result, nil
}

func (s *MoodService) load(ctx context.Context, p Principal, id uuid.UUID, action Action) (*db_models.MoodEntry, error) {
	entry, err := s.moodRepo.FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: mood entry %s", utils.ErrNotFound, id)
	}
	if err := Authorize(p, entry.OwnerID, action); err != nil {
		return nil, err
	}
	return entry, nil
}
