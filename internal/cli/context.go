// AngelaMos | 2026
// context.go

// Package cli holds the mindtrackctl commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/mindtrack/internal/analytics"
	"github.com/carterperez-dev/mindtrack/internal/habit"
	"github.com/carterperez-dev/mindtrack/internal/mood"
	"github.com/carterperez-dev/mindtrack/internal/user"
)

// Context is handed to every command's Run method.
type Context struct {
	Ctx       context.Context
	DB        *sqlx.DB
	Users     *user.Service
	Analytics *analytics.Service
	Logger    *slog.Logger
	Out       io.Writer
}

// NewContext wires the read services over db. loc decides which day is
// today.
func NewContext(
	ctx context.Context,
	db *sqlx.DB,
	loc *time.Location,
	logger *slog.Logger,
	out io.Writer,
) *Context {
	return &Context{
		Ctx:   ctx,
		DB:    db,
		Users: user.NewService(user.NewRepository(db)),
		Analytics: analytics.NewService(
			habit.NewRepository(db),
			mood.NewRepository(db),
			analytics.WithLocation(loc),
		),
		Logger: logger,
		Out:    out,
	}
}

// resolveUser accepts a user id or an email address.
func (c *Context) resolveUser(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if !strings.Contains(ref, "@") {
		return ref, nil
	}

	u, err := c.Users.GetByEmail(c.Ctx, ref)
	if err != nil {
		return "", fmt.Errorf("look up user %s: %w", ref, err)
	}
	return u.ID, nil
}

func (c *Context) printJSON(v any) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
