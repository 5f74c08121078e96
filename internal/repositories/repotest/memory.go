// Package repotest provides in-memory repositories with the same contracts
// as the gorm implementations, for service and handler tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"mindcare/internal/models/db_models"
	"mindcare/internal/models/request_models"
	"mindcare/pkg/utils"
)

func stamp(b *db_models.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt == 0 {
		b.CreatedAt = time.Now().Unix()
	}
	if b.UpdatedAt == 0 {
		b.UpdatedAt = b.CreatedAt
	}
}

// ---------- Accounts ----------

type Accounts struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]db_models.Account
}

func NewAccounts() *Accounts {
	return &Accounts{rows: make(map[uuid.UUID]db_models.Account)}
}

func (r *Accounts) Insert(_ context.Context, account *db_models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.Email == account.Email || strings.EqualFold(a.Username, account.Username) {
			return utils.ErrDuplicateIdentity
		}
	}
	stamp(&account.BaseModel)
	r.rows[account.ID] = *account
	return nil
}

func (r *Accounts) Update(_ context.Context, account *db_models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.rows {
		if id == account.ID {
			continue
		}
		if a.Email == account.Email || strings.EqualFold(a.Username, account.Username) {
			return utils.ErrDuplicateIdentity
		}
	}
	if _, ok := r.rows[account.ID]; !ok {
		return nil
	}
	account.UpdatedAt = time.Now().Unix()
	r.rows[account.ID] = *account
	return nil
}

func (r *Accounts) FindById(_ context.Context, id uuid.UUID) (*db_models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.rows[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *Accounts) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	return r.find(func(a db_models.Account) bool { return a.Email == email })
}

func (r *Accounts) FindByUsername(_ context.Context, username string) (*db_models.Account, error) {
	return r.find(func(a db_models.Account) bool { return strings.EqualFold(a.Username, username) })
}

func (r *Accounts) find(match func(db_models.Account) bool) (*db_models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.rows {
		if match(a) {
			return &a, nil
		}
	}
	return nil, nil
}

// ---------- Mood entries ----------

type Moods struct {
	mu      sync.RWMutex
	rows    map[uuid.UUID]db_models.MoodEntry
	deleted map[uuid.UUID]bool
}

func NewMoods() *Moods {
	return &Moods{rows: make(map[uuid.UUID]db_models.MoodEntry), deleted: make(map[uuid.UUID]bool)}
}

func (r *Moods) Create(_ context.Context, entry *db_models.MoodEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&entry.BaseModel)
	r.rows[entry.ID] = cloneMood(*entry)
	return nil
}

func (r *Moods) FindById(_ context.Context, id uuid.UUID) (*db_models.MoodEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rows[id]
	if !ok || r.deleted[id] {
		return nil, nil
	}
	e = cloneMood(e)
	return &e, nil
}

func (r *Moods) Update(_ context.Context, entry *db_models.MoodEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[entry.ID]
	if !ok || r.deleted[entry.ID] {
		return nil
	}
	cur.Mood = entry.Mood
	cur.Intensity = entry.Intensity
	cur.Note = entry.Note
	cur.Activities = entry.Activities
	cur.Tags = entry.Tags
	cur.UpdatedAt = time.Now().Unix()
	entry.UpdatedAt = cur.UpdatedAt
	r.rows[entry.ID] = cloneMood(cur)
	return nil
}

func (r *Moods) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok || r.deleted[id] {
		return false, nil
	}
	r.deleted[id] = true
	return true, nil
}

func (r *Moods) List(_ context.Context, ownerID uuid.UUID, filter request_models.MoodFilter, page request_models.PageRequest) ([]db_models.MoodEntry, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []db_models.MoodEntry
	for id, e := range r.rows {
		if r.deleted[id] || e.OwnerID != ownerID {
			continue
		}
		if filter.Mood != "" && string(e.Mood) != filter.Mood {
			continue
		}
		if filter.Tag != "" && !contains(e.Tags, filter.Tag) {
			continue
		}
		if filter.Activity != "" && !contains(e.Activities, filter.Activity) {
			continue
		}
		if !inRange(e.CreatedAt, filter.From, filter.To) {
			continue
		}
		out = append(out, cloneMood(e))
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[i].BaseModel, out[j].BaseModel) })
	return window(out, page), int64(len(out)), nil
}

func (r *Moods) ListBetween(_ context.Context, ownerID uuid.UUID, start, end time.Time) ([]db_models.MoodEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []db_models.MoodEntry
	for id, e := range r.rows {
		if r.deleted[id] || e.OwnerID != ownerID || !inRange(e.CreatedAt, start, end) {
			continue
		}
		out = append(out, cloneMood(e))
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[j].BaseModel, out[i].BaseModel) })
	return out, nil
}

// ---------- Journal entries ----------

type Journals struct {
	mu      sync.RWMutex
	rows    map[uuid.UUID]db_models.JournalEntry
	deleted map[uuid.UUID]bool
}

func NewJournals() *Journals {
	return &Journals{rows: make(map[uuid.UUID]db_models.JournalEntry), deleted: make(map[uuid.UUID]bool)}
}

func (r *Journals) Create(_ context.Context, entry *db_models.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&entry.BaseModel)
	r.rows[entry.ID] = cloneJournal(*entry)
	return nil
}

func (r *Journals) FindById(_ context.Context, id uuid.UUID) (*db_models.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rows[id]
	if !ok || r.deleted[id] {
		return nil, nil
	}
	e = cloneJournal(e)
	return &e, nil
}

func (r *Journals) Update(_ context.Context, entry *db_models.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[entry.ID]
	if !ok || r.deleted[entry.ID] {
		return nil
	}
	owner := cur.OwnerID
	created := cur.CreatedAt
	cur = cloneJournal(*entry)
	cur.OwnerID = owner
	cur.CreatedAt = created
	cur.UpdatedAt = time.Now().Unix()
	entry.UpdatedAt = cur.UpdatedAt
	r.rows[entry.ID] = cur
	return nil
}

func (r *Journals) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok || r.deleted[id] {
		return false, nil
	}
	r.deleted[id] = true
	return true, nil
}

func (r *Journals) List(_ context.Context, ownerID uuid.UUID, filter request_models.JournalFilter, page request_models.PageRequest) ([]db_models.JournalEntry, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []db_models.JournalEntry
	for id, e := range r.rows {
		if r.deleted[id] || e.OwnerID != ownerID {
			continue
		}
		if filter.Emotion != "" && string(e.Emotion) != filter.Emotion {
			continue
		}
		if filter.Tag != "" && !contains(e.Tags, filter.Tag) {
			continue
		}
		if filter.Mood != 0 && e.Mood != filter.Mood {
			continue
		}
		if !inRange(e.CreatedAt, filter.From, filter.To) {
			continue
		}
		out = append(out, cloneJournal(e))
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[i].BaseModel, out[j].BaseModel) })
	return window(out, page), int64(len(out)), nil
}

func (r *Journals) ListBetween(_ context.Context, ownerID uuid.UUID, start, end time.Time) ([]db_models.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []db_models.JournalEntry
	for id, e := range r.rows {
		if r.deleted[id] || e.OwnerID != ownerID || !inRange(e.CreatedAt, start, end) {
			continue
		}
		out = append(out, cloneJournal(e))
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[j].BaseModel, out[i].BaseModel) })
	return out, nil
}

// ---------- Helpers ----------

func newerFirst(a, b db_models.BaseModel) bool {
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt > b.CreatedAt
	}
	return a.ID.String() > b.ID.String()
}

func inRange(created int64, from, to time.Time) bool {
	if !from.IsZero() && created < from.Unix() {
		return false
	}
	if !to.IsZero() && created > to.Unix() {
		return false
	}
	return true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func window[T any](rows []T, page request_models.PageRequest) []T {
	if page.Limit <= 0 {
		return rows
	}
	start := (page.Page - 1) * page.Limit
	if start >= len(rows) {
		return nil
	}
	end := start + page.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func cloneMood(e db_models.MoodEntry) db_models.MoodEntry {
	e.Activities = cloneStrings(e.Activities)
	e.Tags = cloneStrings(e.Tags)
	return e
}

func cloneJournal(e db_models.JournalEntry) db_models.JournalEntry {
	e.Tags = cloneStrings(e.Tags)
	return e
}

func cloneStrings(in pq.StringArray) pq.StringArray {
	if in == nil {
		return nil
	}
	out := make(pq.StringArray, len(in))
	copy(out, in)
	return out
}
