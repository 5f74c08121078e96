package services

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"mindcare/internal/models/db_models"
	"mindcare/internal/models/request_models"
	"mindcare/pkg/utils"
)

// Default filling and validation run explicitly from the service create and
// update paths, before anything reaches the repository.

const (
	maxNoteLength    = 1000
	maxContentLength = 20000
	maxTitleLength   = 200
	maxListItems     = 20
	maxPageSize      = 100
)

// FillMoodDefaults completes a mood entry whose CreatedAt is already stamped.
func FillMoodDefaults(e *db_models.MoodEntry) {
	if strings.TrimSpace(e.Note) == "" {
		e.Note = fmt.Sprintf("Feeling %s", e.Mood)
	}
	e.Activities = normalizeList(e.Activities)
	e.Tags = normalizeList(e.Tags)
	if len(e.Tags) == 0 {
		created := utils.FromUnixSeconds(e.CreatedAt)
		e.Tags = []string{utils.TimeOfDay(created), utils.Weekday(created)}
	}
}

func ValidateMoodEntry(e *db_models.MoodEntry) error {
	if !e.Mood.Valid() {
		return fmt.Errorf("%w: mood must be one of %s", utils.ErrValidation, joinLabels(db_models.MoodLabels))
	}
	if e.Intensity < db_models.MinIntensity || e.Intensity > db_models.MaxIntensity {
		return fmt.Errorf("%w: intensity must be between %d and %d", utils.ErrValidation, db_models.MinIntensity, db_models.MaxIntensity)
	}
	if utf8.RuneCountInString(e.Note) > maxNoteLength {
		return fmt.Errorf("%w: note cannot be more than %d characters", utils.ErrValidation, maxNoteLength)
	}
	if len(e.Activities) > maxListItems || len(e.Tags) > maxListItems {
		return fmt.Errorf("%w: at most %d activities and %d tags", utils.ErrValidation, maxListItems, maxListItems)
	}
	return nil
}

// FillJournalDefaults covers everything except sentiment, which needs the
// classifier and is handled by the journal service.
func FillJournalDefaults(e *db_models.JournalEntry) {
	if e.Mood == 0 {
		e.Mood = db_models.DefaultJournalMood
	}
	e.Tags = normalizeList(e.Tags)
	if len(e.Tags) == 0 {
		e.Tags = []string{utils.TimeOfDay(utils.FromUnixSeconds(e.CreatedAt))}
	}
}

func ValidateJournalEntry(e *db_models.JournalEntry) error {
	if strings.TrimSpace(e.Content) == "" {
		return fmt.Errorf("%w: content is required", utils.ErrValidation)
	}
	if utf8.RuneCountInString(e.Content) > maxContentLength {
		return fmt.Errorf("%w: content cannot be more than %d characters", utils.ErrValidation, maxContentLength)
	}
	if utf8.RuneCountInString(e.Title) > maxTitleLength {
		return fmt.Errorf("%w: title cannot be more than %d characters", utils.ErrValidation, maxTitleLength)
	}
	if !e.Emotion.Valid() {
		return fmt.Errorf("%w: emotion must be one of %s", utils.ErrValidation, joinLabels(db_models.Emotions))
	}
	if e.Mood < db_models.MinJournalMood || e.Mood > db_models.MaxJournalMood {
		return fmt.Errorf("%w: mood must be between %d and %d", utils.ErrValidation, db_models.MinJournalMood, db_models.MaxJournalMood)
	}
	if err := validateSentimentScore(e.SentimentScore); err != nil {
		return err
	}
	if len(e.Tags) > maxListItems {
		return fmt.Errorf("%w: at most %d tags", utils.ErrValidation, maxListItems)
	}
	return nil
}

func validateSentimentScore(score float64) error {
	if math.IsNaN(score) || score < -1 || score > 1 {
		return fmt.Errorf("%w: sentiment_score must be between -1 and 1", utils.ErrValidation)
	}
	return nil
}

func validatePage(page request_models.PageRequest) error {
	if page.Page < 1 {
		return utils.ErrInvalidPage
	}
	if page.Limit < 1 || page.Limit > maxPageSize {
		return utils.ErrInvalidPageSize
	}
	return nil
}

// normalizeLabel canonicalizes enum labels such as mood and emotion.
func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// normalizeList trims and drops empties. Duplicates are detected ignoring
// case; the first spelling seen is kept as supplied.
func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

func joinLabels[T ~string](labels []T) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}

