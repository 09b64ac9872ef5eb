// AngelaMos | 2026
// repository.go

package habit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/mindtrack/internal/core"
)

type Repository interface {
	Create(ctx context.Context, habit *Habit) error
	GetByID(ctx context.Context, id string) (*Habit, error)
	ListByUser(ctx context.Context, userID string) ([]Habit, error)
	Update(ctx context.Context, habit *Habit) error
	Delete(ctx context.Context, id string) error
	RecordCompletion(ctx context.Context, completion *Completion) (*Habit, error)
	ListCompletions(
		ctx context.Context,
		userID, habitID string,
	) ([]Completion, error)
	CompletionsByDate(
		ctx context.Context,
		userID string,
		date core.Date,
	) ([]Completion, error)
	CompletionsInRange(
		ctx context.Context,
		userID string,
		from, to core.Date,
	) ([]Completion, error)
	Counts(ctx context.Context) (habits, completions int, err error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const habitColumns = `id, user_id, name, category, streak, last_completed, created_at, updated_at`

const completionColumns = `id, habit_id, user_id, date, completed, created_at`

func (r *repository) Create(ctx context.Context, habit *Habit) error {
	query := r.db.Rebind(`
		INSERT INTO habits (` + habitColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		habit.ID,
		habit.UserID,
		habit.Name,
		habit.Category,
		habit.Streak,
		dateArg(habit.LastCompleted),
		habit.CreatedAt,
		habit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create habit: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Habit, error) {
	return getHabit(ctx, r.db, id, false)
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Habit, error) {
	query := r.db.Rebind(`
		SELECT ` + habitColumns + `
		FROM habits
		WHERE user_id = ?
		ORDER BY created_at, id`)

	habits := []Habit{}
	if err := r.db.SelectContext(ctx, &habits, query, userID); err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	return habits, nil
}

func (r *repository) Update(ctx context.Context, habit *Habit) error {
	query := r.db.Rebind(`
		UPDATE habits
		SET name = ?, category = ?, updated_at = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		habit.Name,
		habit.Category,
		habit.UpdatedAt,
		habit.ID,
	)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}

	return requireRow(result, "update habit")
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		r.db.Rebind(`DELETE FROM habits WHERE id = ?`),
		id,
	)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}

	return requireRow(result, "delete habit")
}

// RecordCompletion inserts the completion and applies the streak transition
// in one transaction. On PostgreSQL the habit row is locked for the
// duration so concurrent replicas serialize. A second completion for the
// same habit and date returns ErrAlreadyCompleted and changes nothing.
func (r *repository) RecordCompletion(
	ctx context.Context,
	completion *Completion,
) (*Habit, error) {
	var updated *Habit

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		habit, err := getHabit(ctx, tx, completion.HabitID, true)
		if err != nil {
			return err
		}

		insert := tx.Rebind(`
			INSERT INTO completions (` + completionColumns + `)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (habit_id, date) DO NOTHING`)

		result, err := tx.ExecContext(ctx, insert,
			completion.ID,
			completion.HabitID,
			completion.UserID,
			completion.Date,
			completion.Completed,
			completion.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert completion: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert completion: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf(
				"record completion %s: %w",
				completion.Date,
				ErrAlreadyCompleted,
			)
		}

		next := Advance(habit.StreakState(), completion.Date)
		habit.Streak = next.Streak
		habit.LastCompleted = next.LastCompleted
		habit.UpdatedAt = completion.CreatedAt

		update := tx.Rebind(`
			UPDATE habits
			SET streak = ?, last_completed = ?, updated_at = ?
			WHERE id = ?`)

		if _, err := tx.ExecContext(ctx, update,
			habit.Streak,
			dateArg(habit.LastCompleted),
			habit.UpdatedAt,
			habit.ID,
		); err != nil {
			return fmt.Errorf("update streak: %w", err)
		}

		updated = habit
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *repository) ListCompletions(
	ctx context.Context,
	userID, habitID string,
) ([]Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM completions WHERE user_id = ?`
	args := []any{userID}

	if habitID != "" {
		query += ` AND habit_id = ?`
		args = append(args, habitID)
	}
	query += ` ORDER BY created_at, id`

	completions := []Completion{}
	if err := r.db.SelectContext(
		ctx,
		&completions,
		r.db.Rebind(query),
		args...,
	); err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	return completions, nil
}

func (r *repository) CompletionsByDate(
	ctx context.Context,
	userID string,
	date core.Date,
) ([]Completion, error) {
	return r.CompletionsInRange(ctx, userID, date, date)
}

func (r *repository) CompletionsInRange(
	ctx context.Context,
	userID string,
	from, to core.Date,
) ([]Completion, error) {
	query := r.db.Rebind(`
		SELECT ` + completionColumns + `
		FROM completions
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date, created_at, id`)

	completions := []Completion{}
	if err := r.db.SelectContext(
		ctx,
		&completions,
		query,
		userID,
		from,
		to,
	); err != nil {
		return nil, fmt.Errorf("list completions in range: %w", err)
	}

	return completions, nil
}

func (r *repository) Counts(ctx context.Context) (int, int, error) {
	var counts struct {
		Habits      int `db:"habits"`
		Completions int `db:"completions"`
	}

	err := r.db.GetContext(ctx, &counts, `
		SELECT
			(SELECT COUNT(*) FROM habits) AS habits,
			(SELECT COUNT(*) FROM completions) AS completions`)
	if err != nil {
		return 0, 0, fmt.Errorf("count habits: %w", err)
	}

	return counts.Habits, counts.Completions, nil
}

func getHabit(
	ctx context.Context,
	db core.DBTX,
	id string,
	forUpdate bool,
) (*Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = ?`
	if forUpdate && db.DriverName() == core.DriverPostgres {
		query += ` FOR UPDATE`
	}

	var habit Habit
	err := db.GetContext(ctx, &habit, db.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get habit: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}

	return &habit, nil
}

// dateArg turns a nullable date into a driver argument without relying on
// each driver's handling of nil pointers to Valuers.
func dateArg(d *core.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func requireRow(result sql.Result, op string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
