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

type MoodRepository interface {
	Create(ctx context.Context, entry *db_models.MoodEntry) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.MoodEntry, error)
	// Update writes the mutable columns only; owner_id is never part of the write.
	Update(ctx context.Context, entry *db_models.MoodEntry) error
	// Delete soft-deletes the entry and reports whether a live row was hit.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, ownerID uuid.UUID, filter request_models.MoodFilter, page request_models.PageRequest) ([]db_models.MoodEntry, int64, error)
	// ListBetween returns the owner's entries in [start, end], oldest first.
	ListBetween(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]db_models.MoodEntry, error)
}

type moodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) MoodRepository {
	return &moodRepository{db: db}
}

func (r *moodRepository) Create(ctx context.Context, entry *db_models.MoodEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *moodRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.MoodEntry, error) {
	var entry db_models.MoodEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *moodRepository) Update(ctx context.Context, entry *db_models.MoodEntry) error {
	return r.db.WithContext(ctx).
		Model(entry).
		Select("mood", "intensity", "note", "activities", "tags", "updated_at").
		Updates(entry).Error
}

func (r *moodRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&db_models.MoodEntry{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *moodRepository) List(ctx context.Context, ownerID uuid.UUID, filter request_models.MoodFilter, page request_models.PageRequest) ([]db_models.MoodEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.MoodEntry{}).Where("owner_id = ?", ownerID)
	if filter.Mood != "" {
		q = q.Where("mood = ?", filter.Mood)
	}
	if filter.Tag != "" {
		q = scopeListContains(q, "tags", filter.Tag)
	}
	if filter.Activity != "" {
		q = scopeListContains(q, "activities", filter.Activity)
	}
	q = scopeCreatedBetween(q, filter.From, filter.To)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []db_models.MoodEntry
	err := q.Scopes(paginate(page)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&entries).Error
	return entries, total, err
}

func (r *moodRepository) ListBetween(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]db_models.MoodEntry, error) {
	var entries []db_models.MoodEntry
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Order("created_at ASC").
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

// ---------- Helpers ----------

func paginate(page request_models.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (page.Page - 1) * page.Limit
		return db.Offset(offset).Limit(page.Limit)
	}
}

// scopeListContains matches a text[] column element case-insensitively.
// column is always a literal from this package.
func scopeListContains(q *gorm.DB, column, value string) *gorm.DB {
	return q.Where("EXISTS (SELECT 1 FROM unnest("+column+") AS v WHERE lower(v) = lower(?))", value)
}

func scopeCreatedBetween(q *gorm.DB, from, to time.Time) *gorm.DB {
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from.Unix())
	}
	if !to.IsZero() {
		q = q.Where("created_at <= ?", to.Unix())
	}
	return q
}
