package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mindcare/internal/models/db_models"
	"mindcare/internal/models/request_models"
	"mindcare/internal/models/response_models"
	"mindcare/internal/repositories"
	"mindcare/pkg/utils"
)

type JournalServiceInterface interface {
	Create(ctx context.Context, p Principal, request request_models.CreateJournalRequest) (*db_models.JournalEntry, error)
	Get(ctx context.Context, p Principal, id uuid.UUID) (*db_models.JournalEntry, error)
	Update(ctx context.Context, p Principal, id uuid.UUID, request request_models.UpdateJournalRequest) (*db_models.JournalEntry, error)
	Delete(ctx context.Context, p Principal, id uuid.UUID) error
	List(ctx context.Context, p Principal, ownerID uuid.UUID, filter request_models.JournalFilter, page request_models.PageRequest) (*response_models.Page[db_models.JournalEntry], error)
}

type JournalService struct {
	journalRepo repositories.JournalRepository
	sentiment   SentimentClassifier
	now         func() time.Time
}

func NewJournalService(journalRepo repositories.JournalRepository, sentiment SentimentClassifier) *JournalService {
	return &JournalService{journalRepo: journalRepo, sentiment: sentiment, now: time.Now}
}

func (s *JournalService) Create(ctx context.Context, p Principal, request request_models.CreateJournalRequest) (*db_models.JournalEntry, error) {
	if err := checkExplicitMood(request.Mood); err != nil {
		return nil, err
	}

	entry := &db_models.JournalEntry{
		OwnerID: p.ID,
		Title:   request.Title,
		Content: request.Content,
		Emotion: db_models.Emotion(normalizeLabel(request.Emotion)),
		Tags:    request.Tags,
	}
	if request.Mood != nil {
		entry.Mood = *request.Mood
	}
	entry.CreatedAt = s.now().Unix()
	entry.UpdatedAt = entry.CreatedAt

	FillJournalDefaults(entry)
	if strings.TrimSpace(entry.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", utils.ErrValidation)
	}

	label, err := s.applySentiment(ctx, entry, request.SentimentScore)
	if err != nil {
		return nil, err
	}
	if entry.Emotion == "" {
		entry.Emotion = emotionForLabel(label)
	}

	if err := ValidateJournalEntry(entry); err != nil {
		return nil, err
	}
	if err := s.journalRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return entry, nil
}

func (s *JournalService) Get(ctx context.Context, p Principal, id uuid.UUID) (*db_models.JournalEntry, error) {
	return s.load(ctx, p, id, ActionRead)
}

// Update re-scores sentiment only when the content actually changed and the
// caller did not supply a score.
func (s *JournalService) Update(ctx context.Context, p Principal, id uuid.UUID, request request_models.UpdateJournalRequest) (*db_models.JournalEntry, error) {
	if err := checkExplicitMood(request.Mood); err != nil {
		return nil, err
	}
	entry, err := s.load(ctx, p, id, ActionWrite)
	if err != nil {
		return nil, err
	}

	contentChanged := false
	if request.Content != nil {
		contentChanged = *request.Content != entry.Content
		entry.Content = *request.Content
	}
	if request.Title != nil {
		entry.Title = *request.Title
	}
	if request.Emotion != nil {
		entry.Emotion = db_models.Emotion(normalizeLabel(*request.Emotion))
	}
	if request.Mood != nil {
		entry.Mood = *request.Mood
	}
	if request.Tags != nil {
		entry.Tags = *request.Tags
	}

	FillJournalDefaults(entry)
	if strings.TrimSpace(entry.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", utils.ErrValidation)
	}

	if request.SentimentScore != nil || contentChanged {
		if _, err := s.applySentiment(ctx, entry, request.SentimentScore); err != nil {
			return nil, err
		}
	}

	if err := ValidateJournalEntry(entry); err != nil {
		return nil, err
	}
	if err := s.journalRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return entry, nil
}

func (s *JournalService) Delete(ctx context.Context, p Principal, id uuid.UUID) error {
	if _, err := s.load(ctx, p, id, ActionDelete); err != nil {
		return err
	}
	deleted, err := s.journalRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return fmt.Errorf("%w: journal entry %s", utils.ErrNotFound, id)
	}
	return nil
}

func (s *JournalService) List(ctx context.Context, p Principal, ownerID uuid.UUID, filter request_models.JournalFilter, page request_models.PageRequest) (*response_models.Page[db_models.JournalEntry], error) {
	if err := Authorize(p, ownerID, ActionRead); err != nil {
		return nil, err
	}
	if err := validatePage(page); err != nil {
		return nil, err
	}
	filter.Emotion = normalizeLabel(filter.Emotion)
	if filter.Emotion != "" && !db_models.Emotion(filter.Emotion).Valid() {
		return nil, fmt.Errorf("%w: unknown emotion filter %q", utils.ErrValidation, filter.Emotion)
	}
	if filter.Mood != 0 && (filter.Mood < db_models.MinJournalMood || filter.Mood > db_models.MaxJournalMood) {
		return nil, fmt.Errorf("%w: mood filter must be between %d and %d", utils.ErrValidation, db_models.MinJournalMood, db_models.MaxJournalMood)
	}

	entries, total, err := s.journalRepo.List(ctx, ownerID, filter, page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	result := response_models.NewPage(entries, total, page.Page, page.Limit)
	return &result, nil
}

// applySentiment stores a supplied score as is, otherwise classifies the
// content. It returns the label of the stored score.
func (s *JournalService) applySentiment(ctx context.Context, entry *db_models.JournalEntry, supplied *float64) (string, error) {
	if supplied != nil {
		if err := validateSentimentScore(*supplied); err != nil {
			return "", err
		}
		entry.SentimentScore = *supplied
		entry.SentimentSource = db_models.SentimentSupplied
		return SentimentLabel(*supplied), nil
	}

	result := s.sentiment.Classify(ctx, entry.Content)
	entry.SentimentScore = result.Score
	entry.SentimentSource = db_models.SentimentSource(result.Source)
	return result.Label, nil
}

func (s *JournalService) load(ctx context.Context, p Principal, id uuid.UUID, action Action) (*db_models.JournalEntry, error) {
	entry, err := s.journalRepo.FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: journal entry %s", utils.ErrNotFound, id)
	}
	if err := Authorize(p, entry.OwnerID, action); err != nil {
		return nil, err
	}
	return entry, nil
}

// checkExplicitMood rejects an out-of-range mood before defaults are filled,
// so an explicit 0 is not mistaken for "absent".
func checkExplicitMood(mood *int) error {
	if mood != nil && (*mood < db_models.MinJournalMood || *mood > db_models.MaxJournalMood) {
		return fmt.Errorf("%w: mood must be between %d and %d", utils.ErrValidation, db_models.MinJournalMood, db_models.MaxJournalMood)
	}
	return nil
}

func emotionForLabel(label string) db_models.Emotion {
	switch label {
	case SentimentPositive:
		return db_models.EmotionHappy
	case SentimentNegative:
		return db_models.EmotionSad
	default:
		return db_models.EmotionNeutral
	}
}
