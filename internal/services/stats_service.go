package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mindcare/internal/models/request_models"
	"mindcare/internal/models/response_models"
	"mindcare/internal/repositories"
	"mindcare/pkg/utils"
)

const (
	DefaultStatsDays = 30
	MaxStatsDays     = 365
)

type StatsServiceInterface interface {
	MoodStats(ctx context.Context, p Principal, ownerID uuid.UUID, window request_models.StatsWindow) (*response_models.MoodStats, error)
	JournalStats(ctx context.Context, p Principal, ownerID uuid.UUID, window request_models.StatsWindow) (*response_models.JournalStats, error)
	MoodInsights(ctx context.Context, p Principal, ownerID uuid.UUID) (*response_models.Insights, error)
}

type StatsService struct {
	moodRepo    repositories.MoodRepository
	journalRepo repositories.JournalRepository
	insights    InsightConfig
	now         func() time.Time
}

func NewStatsService(moodRepo repositories.MoodRepository, journalRepo repositories.JournalRepository, insights InsightConfig) *StatsService {
	return &StatsService{
		moodRepo:    moodRepo,
		journalRepo: journalRepo,
		insights:    insights,
		now:         time.Now,
	}
}

func (s *StatsService) MoodStats(ctx context.Context, p Principal, ownerID uuid.UUID, window request_models.StatsWindow) (*response_models.MoodStats, error) {
	if err := Authorize(p, ownerID, ActionRead); err != nil {
		return nil, err
	}
	rng, err := ResolveWindow(window, s.now())
	if err != nil {
		return nil, err
	}

	entries, err := s.moodRepo.ListBetween(ctx, ownerID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	stats := ComputeMoodStats(entries, rng)
	return &stats, nil
}

func (s *StatsService) JournalStats(ctx context.Context, p Principal, ownerID uuid.UUID, window request_models.StatsWindow) (*response_models.JournalStats, error) {
	if err := Authorize(p, ownerID, ActionRead); err != nil {
		return nil, err
	}
	rng, err := ResolveWindow(window, s.now())
	if err != nil {
		return nil, err
	}

	entries, err := s.journalRepo.ListBetween(ctx, ownerID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	stats := ComputeJournalStats(entries, rng)
	return &stats, nil
}

func (s *StatsService) MoodInsights(ctx context.Context, p Principal, ownerID uuid.UUID) (*response_models.Insights, error) {
	if err := Authorize(p, ownerID, ActionRead); err != nil {
		return nil, err
	}
	cfg := s.insights
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = DefaultInsightWindowDays
	}

	now := s.now()
	entries, err := s.moodRepo.ListBetween(ctx, ownerID, now.AddDate(0, 0, -cfg.WindowDays), now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	insights := BuildInsights(entries, now, cfg)
	return &insights, nil
}

// ResolveWindow turns the query into a concrete UTC range ending no later
// than it starts. Days and start/end are mutually exclusive.
func ResolveWindow(w request_models.StatsWindow, now time.Time) (response_models.TimeRange, error) {
	if w.Days != 0 && (!w.Start.IsZero() || !w.End.IsZero()) {
		return response_models.TimeRange{}, fmt.Errorf("%w: provide either days or start/end (not both)", utils.ErrValidation)
	}

	end := now.In(utils.StatsLocation)
	var start time.Time
	switch {
	case w.Days != 0:
		if w.Days < 1 || w.Days > MaxStatsDays {
			return response_models.TimeRange{}, fmt.Errorf("%w: days must be between 1 and %d", utils.ErrValidation, MaxStatsDays)
		}
		start = end.AddDate(0, 0, -w.Days)
	default:
		if !w.End.IsZero() {
			end = w.End.In(utils.StatsLocation)
		}
		if !w.Start.IsZero() {
			start = w.Start.In(utils.StatsLocation)
		} else {
			start = end.AddDate(0, 0, -DefaultStatsDays)
		}
	}

	if start.After(end) {
		start, end = end, start
	}
	if end.Sub(start) > time.Duration(MaxStatsDays+1)*24*time.Hour {
		return response_models.TimeRange{}, fmt.Errorf("%w: range cannot exceed %d days", utils.ErrValidation, MaxStatsDays)
	}

	return response_models.TimeRange{
		Start:    start,
		End:      end,
		Dense:    w.Dense,
		Timezone: utils.StatsLocation.String(),
	}, nil
}
