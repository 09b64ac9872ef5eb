// AngelaMos | 2026
// service.go

package analytics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/mindtrack/internal/core"
	"github.com/carterperez-dev/mindtrack/internal/habit"
	"github.com/carterperez-dev/mindtrack/internal/mood"
)

const tracerName = "mindtrack/analytics"

type HabitStore interface {
	GetByID(ctx context.Context, id string) (*habit.Habit, error)
	ListByUser(ctx context.Context, userID string) ([]habit.Habit, error)
	CompletionsInRange(
		ctx context.Context,
		userID string,
		from, to core.Date,
	) ([]habit.Completion, error)
}

type MoodStore interface {
	ListByUser(ctx context.Context, userID string) ([]mood.Entry, error)
}

// Service reads a snapshot of the user's records per call and hands it to
// the pure engines in this package.
type Service struct {
	habits HabitStore
	moods  MoodStore
	cache  *Cache
	now    func() time.Time
	loc    *time.Location
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func WithCache(cache *Cache) Option {
	return func(s *Service) { s.cache = cache }
}

func NewService(habits HabitStore, moods MoodStore, opts ...Option) *Service {
	s := &Service{
		habits: habits,
		moods:  moods,
		now:    time.Now,
		loc:    time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Today() core.Date {
	return core.Today(s.now(), s.loc)
}

func (s *Service) ownedHabit(
	ctx context.Context,
	userID, habitID string,
) (*habit.Habit, error) {
	h, err := s.habits.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if !h.IsOwnedBy(userID) {
		return nil, fmt.Errorf("habit %s: %w", habitID, core.ErrForbidden)
	}
	return h, nil
}

// profile reads habits, the last week of completions and moods for one
// user, and derives the seven-day rates.
func (s *Service) profile(
	ctx context.Context,
	userID string,
	today core.Date,
) (Profile, []habit.Completion, error) {
	habits, err := s.habits.ListByUser(ctx, userID)
	if err != nil {
		return Profile{}, nil, fmt.Errorf("list habits: %w", err)
	}

	completions, err := s.habits.CompletionsInRange(
		ctx,
		userID,
		today.AddDays(-weekDays),
		today,
	)
	if err != nil {
		return Profile{}, nil, fmt.Errorf("list completions: %w", err)
	}

	moods, err := s.moods.ListByUser(ctx, userID)
	if err != nil {
		return Profile{}, nil, fmt.Errorf("list moods: %w", err)
	}

	return Profile{
		Habits: habits,
		Moods:  moods,
		Rates:  WeeklyRates(habits, completions, today),
	}, completions, nil
}

func (s *Service) HabitStats(
	ctx context.Context,
	userID, habitID string,
	windowDays int,
) (stats HabitStats, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "analytics.HabitStats",
		attribute.String("habit.id", habitID),
		attribute.Int("window_days", windowDays),
	)
	defer func() { core.EndSpan(span, err) }()

	if windowDays <= 0 {
		return HabitStats{}, core.ValidationError("days must be positive")
	}

	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return HabitStats{}, err
	}

	today := s.Today()
	completions, err := s.habits.CompletionsInRange(
		ctx,
		userID,
		today.AddDays(-windowDays),
		today,
	)
	if err != nil {
		return HabitStats{}, fmt.Errorf("list completions: %w", err)
	}

	return ComputeHabitStats(completions, habitID, today, windowDays)
}

func (s *Service) WeeklyTrend(
	ctx context.Context,
	userID, habitID string,
) (trend []TrendDay, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "analytics.WeeklyTrend",
		attribute.String("habit.id", habitID),
	)
	defer func() { core.EndSpan(span, err) }()

	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return nil, err
	}

	today := s.Today()
	completions, err := s.habits.CompletionsInRange(
		ctx,
		userID,
		today.AddDays(-(weekDays - 1)),
		today,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	return ComputeWeeklyTrend(completions, habitID, today), nil
}

// MonthCalendar covers every day of the month. An empty habitID counts
// completions of any of the user's habits.
func (s *Service) MonthCalendar(
	ctx context.Context,
	userID string,
	year int,
	month time.Month,
	habitID string,
) (calendar map[string]bool, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "analytics.MonthCalendar",
		attribute.Int("year", year),
		attribute.Int("month", int(month)),
	)
	defer func() { core.EndSpan(span, err) }()

	first, last, err := MonthBounds(year, month)
	if err != nil {
		return nil, err
	}

	if habitID != "" {
		if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
			return nil, err
		}
	}

	completions, err := s.habits.CompletionsInRange(ctx, userID, first, last)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	return ComputeMonthCalendar(completions, habitID, year, month)
}

func (s *Service) CategoryStats(
	ctx context.Context,
	userID string,
) (stats map[string]CategoryStat, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "analytics.CategoryStats")
	defer func() { core.EndSpan(span, err) }()

	today := s.Today()
	return cached(ctx, s.cache, kindCategories, userID, today,
		func() (map[string]CategoryStat, error) {
			p, _, err := s.profile(ctx, userID, today)
			if err != nil {
				return nil, err
			}
			return ComputeCategoryStats(p.Habits, p.Rates), nil
		},
	)
}

func (s *Service) CategoryBreakdown(
	ctx context.Context,
	userID string,
) (breakdown map[string]BreakdownEntry, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "analytics.CategoryBreakdown")
	defer func() { core.EndSpan(span, err) }()

	today := s.Today()
	return cached(ctx, s.cache, kindBreakdown, userID, today,
		func() (map[string]BreakdownEntry, error) {
			p, completions, err := s.profile(ctx, userID, today)
			if err != nil {
				return nil, err
			}
			return ComputeCategoryBreakdown(p.Habits, completions, today), nil
		},
	)
}

func (s *Service) Insights(
	ctx context.Context,
	userID string,
) (insights []Insight, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "analytics.Insights")
	defer func() { core.EndSpan(span, err) }()

	today := s.Today()
	return cached(ctx, s.cache, kindInsights, userID, today,
		func() ([]Insight, error) {
			p, _, err := s.profile(ctx, userID, today)
			if err != nil {
				return nil, err
			}
			return GenerateInsights(p), nil
		},
	)
}

func (s *Service) Suggestions(
	ctx context.Context,
	userID string,
	existing []string,
	limit int,
) (suggestions []Suggestion, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "analytics.Suggestions",
		attribute.Int("limit", limit),
	)
	defer func() { core.EndSpan(span, err) }()

	if limit < 0 {
		return nil, core.ValidationError("limit must not be negative")
	}

	p, _, err := s.profile(ctx, userID, s.Today())
	if err != nil {
		return nil, err
	}

	return Suggest(p, existing, limit)
}

// InvalidateUser drops the user's cached analytics.
func (s *Service) InvalidateUser(ctx context.Context, userID string) {
	s.cache.InvalidateUser(ctx, userID)
}

var _ core.Invalidator = (*Service)(nil)
