// AngelaMos | 2026
// repository.go

package mood

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/mindtrack/internal/core"
)

type Repository interface {
	Upsert(ctx context.Context, entry *Entry) (*Entry, error)
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
	GetByDate(ctx context.Context, userID string, date core.Date) (*Entry, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const entryColumns = `id, user_id, mood, date, note, created_at, updated_at`

// Upsert stores the entry, or overwrites mood and note of the user's
// existing entry for that date. The existing entry keeps its id and
// created_at, so its position in ListByUser does not change.
func (r *repository) Upsert(ctx context.Context, entry *Entry) (*Entry, error) {
	query := r.db.Rebind(`
		INSERT INTO moods (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE
		SET mood = excluded.mood,
			note = excluded.note,
			updated_at = excluded.updated_at`)

	if _, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Mood,
		entry.Date,
		entry.Note,
		entry.CreatedAt,
		entry.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("save mood: %w", err)
	}

	return r.GetByDate(ctx, entry.UserID, entry.Date)
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Entry, error) {
	query := r.db.Rebind(`
		SELECT ` + entryColumns + `
		FROM moods
		WHERE user_id = ?
		ORDER BY created_at, id`)

	entries := []Entry{}
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}

	return entries, nil
}

func (r *repository) GetByDate(
	ctx context.Context,
	userID string,
	date core.Date,
) (*Entry, error) {
	query := r.db.Rebind(`
		SELECT ` + entryColumns + `
		FROM moods
		WHERE user_id = ? AND date = ?`)

	var entry Entry
	err := r.db.GetContext(ctx, &entry, query, userID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get mood %s: %w", date, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get mood: %w", err)
	}

	return &entry, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM moods`); err != nil {
		return 0, fmt.Errorf("count moods: %w", err)
	}
	return n, nil
}
