// AngelaMos | 2026
// entity.go

package habit

import (
	"time"

	"github.com/carterperez-dev/mindtrack/internal/core"
)

// Known categories used by insight and suggestion rules. Habit.Category is
// free-form and may hold any other value.
const (
	CategoryMeditation = "meditation"
	CategoryJournaling = "journaling"
	CategoryReading    = "reading"
	CategoryExercise   = "exercise"
	CategoryNutrition  = "nutrition"
	CategoryStretching = "stretching"
	CategoryWater      = "water"
	CategorySleep      = "sleep"
)

type Habit struct {
	ID            string     `db:"id"`
	UserID        string     `db:"user_id"`
	Name          string     `db:"name"`
	Category      string     `db:"category"`
	Streak        int        `db:"streak"`
	LastCompleted *core.Date `db:"last_completed"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (h *Habit) IsOwnedBy(userID string) bool {
	return h.UserID == userID
}

func (h *Habit) StreakState() StreakState {
	return StreakState{Streak: h.Streak, LastCompleted: h.LastCompleted}
}

type Completion struct {
	ID        string    `db:"id"`
	HabitID   string    `db:"habit_id"`
	UserID    string    `db:"user_id"`
	Date      core.Date `db:"date"`
	Completed bool      `db:"completed"`
	CreatedAt time.Time `db:"created_at"`
}
