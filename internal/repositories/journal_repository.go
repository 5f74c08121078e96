package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mindcare/internal/models/db_models"
	"mindcare/internal/models/request_models"
)

type JournalRepository interface {
	Create(ctx context.Context, entry *db_models.JournalEntry) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.JournalEntry, error)
	Update(ctx context.Context, entry *db_models.JournalEntry) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, ownerID uuid.UUID, filter request_models.JournalFilter, page request_models.PageRequest) ([]db_models.JournalEntry, int64, error)
	ListBetween(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]db_models.JournalEntry, error)
}

type journalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Create(ctx context.Context, entry *db_models.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *journalRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.JournalEntry, error) {
	var entry db_models.JournalEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *journalRepository) Update(ctx context.Context, entry *db_models.JournalEntry) error {
	return r.db.WithContext(ctx).
		Model(entry).
		Select("title", "content", "emotion", "sentiment_score", "sentiment_source", "mood", "tags", "updated_at").
		Updates(entry).Error
}

func (r *journalRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&db_models.JournalEntry{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *journalRepository) List(ctx context.Context, ownerID uuid.UUID, filter request_models.JournalFilter, page request_models.PageRequest) ([]db_models.JournalEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.JournalEntry{}).Where("owner_id = ?", ownerID)
	if filter.Emotion != "" {
		q = q.Where("emotion = ?", filter.Emotion)
	}
	if filter.Tag != "" {
		q = scopeListContains(q, "tags", filter.Tag)
	}
	if filter.Mood != 0 {
		q = q.Where("mood = ?", filter.Mood)
	}
	q = scopeCreatedBetween(q, filter.From, filter.To)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []db_models.JournalEntry
	err := q.Scopes(paginate(page)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&entries).Error
	return entries, total, err
}

func (r *journalRepository) ListBetween(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]db_models.JournalEntry, error) {
	var entries []db_models.JournalEntry
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Order("created_at ASC").
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}
