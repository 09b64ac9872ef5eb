// AngelaMos | 2026
// migration.go

package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/mindtrack/internal/core"
	"github.com/carterperez-dev/mindtrack/migrations"
)

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Runner applies NNN_name.sql files from an fs.FS and tracks the applied
// version in a single-row schema_version table.
type Runner struct {
	db     *sqlx.DB
	fs     fs.FS
	logger *slog.Logger
}

func NewRunner(db *sqlx.DB, migrationFS fs.FS, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{db: db, fs: migrationFS, logger: logger}
}

// ForDriver returns a runner over the embedded migrations for the driver
// the database was opened with.
func ForDriver(db *sqlx.DB, logger *slog.Logger) (*Runner, error) {
	dir := "postgres"
	if db.DriverName() == core.DriverSQLite {
		dir = "sqlite"
	}

	sub, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", dir, err)
	}

	return NewRunner(db, sub, logger), nil
}

func (r *Runner) ensureVersionTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema_version: %w", err)
	}
	return nil
}

// CurrentVersion is 0 for a fresh database.
func (r *Runner) CurrentVersion(ctx context.Context) (int, error) {
	if err := r.ensureVersionTable(ctx); err != nil {
		return 0, err
	}

	var version int
	err := r.db.GetContext(ctx, &version, "SELECT version FROM schema_version")
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}

	return version, nil
}

func (r *Runner) Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		prefix, rest, ok := strings.Cut(entry.Name(), "_")
		if !ok {
			return nil, fmt.Errorf(
				"invalid migration filename %s (expected NNN_name.sql)",
				entry.Name(),
			)
		}

		version, err := strconv.Atoi(prefix)
		if err != nil || version < 1 {
			return nil, fmt.Errorf("invalid version in filename %s", entry.Name())
		}

		content, err := fs.ReadFile(r.fs, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		out = append(out, Migration{
			Version: version,
			Name:    strings.TrimSuffix(rest, ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Version < out[j].Version
	})

	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}

	return out, nil
}

// Apply runs every pending migration, each in its own transaction together
// with the version bump. It returns the number applied.
func (r *Runner) Apply(ctx context.Context) (int, error) {
	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return 0, err
	}

	all, err := r.Migrations()
	if err != nil {
		return 0, err
	}

	if len(all) == 0 {
		return 0, nil
	}

	latest := all[len(all)-1].Version
	if current > latest {
		return 0, fmt.Errorf(
			"database schema version %d is newer than supported version %d",
			current,
			latest,
		)
	}

	applied := 0
	for _, m := range all {
		if m.Version <= current {
			continue
		}

		r.logger.Info("applying migration", "version", m.Version, "name", m.Name)

		err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
				return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
				return fmt.Errorf("clear schema version: %w", err)
			}
			if _, err := tx.ExecContext(
				ctx,
				tx.Rebind("INSERT INTO schema_version (version) VALUES (?)"),
				m.Version,
			); err != nil {
				return fmt.Errorf("set schema version: %w", err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}

		applied++
	}

	if applied > 0 {
		r.logger.Info("migrations applied", "count", applied, "version", latest)
	}

	return applied, nil
}
