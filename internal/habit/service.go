// AngelaMos | 2026
// service.go

package habit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/carterperez-dev/mindtrack/internal/core"
)

var ErrAlreadyCompleted = errors.New("habit already completed for date")

const (
	maxNameLength     = 100
	maxCategoryLength = 50
)

type Service struct {
	repo        Repository
	locks       *keyedMutex
	invalidator core.Invalidator
	now         func() time.Time
	loc         *time.Location
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func WithInvalidator(inv core.Invalidator) Option {
	return func(s *Service) {
		if inv != nil {
			s.invalidator = inv
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		locks:       newKeyedMutex(),
		invalidator: core.NopInvalidator,
		now:         time.Now,
		loc:         time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Today() core.Date {
	return core.Today(s.now(), s.loc)
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateHabitRequest,
) (*Habit, error) {
	name, err := cleanField("name", req.Name, maxNameLength)
	if err != nil {
		return nil, err
	}
	category, err := cleanField("category", req.Category, maxCategoryLength)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate habit id: %w", err)
	}

	now := s.now().UTC()
	habit := &Habit{
		ID:        id.String(),
		UserID:    userID,
		Name:      name,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	s.invalidator.InvalidateUser(ctx, userID)
	return habit, nil
}

// Get returns ErrNotFound for unknown ids and ErrForbidden when the habit
// belongs to another user.
func (s *Service) Get(
	ctx context.Context,
	userID, habitID string,
) (*Habit, error) {
	habit, err := s.repo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}

	if !habit.IsOwnedBy(userID) {
		return nil, fmt.Errorf("get habit %s: %w", habitID, core.ErrForbidden)
	}

	return habit, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Habit, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Update(
	ctx context.Context,
	userID, habitID string,
	req UpdateHabitRequest,
) (*Habit, error) {
	habit, err := s.Get(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if habit.Name, err = cleanField("name", *req.Name, maxNameLength); err != nil {
			return nil, err
		}
	}
	if req.Category != nil {
		if habit.Category, err = cleanField(
			"category",
			*req.Category,
			maxCategoryLength,
		); err != nil {
			return nil, err
		}
	}

	habit.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	s.invalidator.InvalidateUser(ctx, userID)
	return habit, nil
}

func (s *Service) Delete(ctx context.Context, userID, habitID string) error {
	if _, err := s.Get(ctx, userID, habitID); err != nil {
		return err
	}

	unlock := s.locks.Lock(habitID)
	defer unlock()

	if err := s.repo.Delete(ctx, habitID); err != nil {
		return err
	}

	s.invalidator.InvalidateUser(ctx, userID)
	return nil
}

// Complete records a completion for date, or for today when date is nil,
// and advances the habit's streak. Completions of the same habit are
// serialized; a repeated date returns ErrAlreadyCompleted.
func (s *Service) Complete(
	ctx context.Context,
	userID, habitID string,
	date *core.Date,
) (*Completion, *Habit, error) {
	if _, err := s.Get(ctx, userID, habitID); err != nil {
		return nil, nil, err
	}

	day := s.Today()
	if date != nil && !date.IsZero() {
		day = *date
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, nil, fmt.Errorf("generate completion id: %w", err)
	}

	completion := &Completion{
		ID:        id.String(),
		HabitID:   habitID,
		UserID:    userID,
		Date:      day,
		Completed: true,
		CreatedAt: s.now().UTC(),
	}

	unlock := s.locks.Lock(habitID)
	defer unlock()

	habit, err := s.repo.RecordCompletion(ctx, completion)
	if err != nil {
		return nil, nil, err
	}

	s.invalidator.InvalidateUser(ctx, userID)
	return completion, habit, nil
}

// Completions lists the user's completions, limited to one habit when
// habitID is set.
func (s *Service) Completions(
	ctx context.Context,
	userID, habitID string,
) ([]Completion, error) {
	if habitID != "" {
		if _, err := s.Get(ctx, userID, habitID); err != nil {
			return nil, err
		}
	}

	return s.repo.ListCompletions(ctx, userID, habitID)
}

func (s *Service) CompletionsByDate(
	ctx context.Context,
	userID string,
	date core.Date,
) ([]Completion, error) {
	return s.repo.CompletionsByDate(ctx, userID, date)
}

func cleanField(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", core.ValidationError(field + " is required")
	}
	if utf8.RuneCountInString(value) > maxLen {
		return "", core.ValidationError(
			fmt.Sprintf("%s must be at most %d characters", field, maxLen),
		)
	}
	return value, nil
}
