// AngelaMos | 2026
// service.go

package mood

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/mindtrack/internal/core"
)

const maxNoteLength = 1000

type Service struct {
	repo        Repository
	invalidator core.Invalidator
	now         func() time.Time
	loc         *time.Location
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

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
		invalidator: core.NopInvalidator,
		now:         time.Now,
		loc:         time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save records the user's mood for req.Date, or today when it is omitted.
// Saving again for the same date replaces the score and note.
func (s *Service) Save(
	ctx context.Context,
	userID string,
	req SaveMoodRequest,
) (*Entry, error) {
	if req.Mood < MinScore || req.Mood > MaxScore {
		return nil, core.ValidationError(
			fmt.Sprintf("mood must be between %d and %d", MinScore, MaxScore),
		)
	}

	date := core.Today(s.now(), s.loc)
	if req.Date != nil && !req.Date.IsZero() {
		date = *req.Date
	}

	var note *string
	if req.Note != nil {
		if trimmed := strings.TrimSpace(*req.Note); trimmed != "" {
			if len([]rune(trimmed)) > maxNoteLength {
				return nil, core.ValidationError(
					fmt.Sprintf("note must be at most %d characters", maxNoteLength),
				)
			}
			note = &trimmed
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate mood id: %w", err)
	}

	now := s.now().UTC()
	entry, err := s.repo.Upsert(ctx, &Entry{
		ID:        id.String(),
		UserID:    userID,
		Mood:      req.Mood,
		Date:      date,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.InvalidateUser(ctx, userID)
	return entry, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) GetByDate(
	ctx context.Context,
	userID string,
	date core.Date,
) (*Entry, error) {
	return s.repo.GetByDate(ctx, userID, date)
}
