// AngelaMos | 2026
// entity.go

package mood

import (
	"time"

	"github.com/carterperez-dev/mindtrack/internal/core"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Entry is one mood rating per user per calendar day.
type Entry struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Mood      int       `db:"mood"`
	Date      core.Date `db:"date"`
	Note      *string   `db:"note"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
