// AngelaMos | 2026
// streak.go

package habit

import (
	"github.com/carterperez-dev/mindtrack/internal/core"
)

// StreakState is the part of a habit a completion may change.
type StreakState struct {
	Streak        int
	LastCompleted *core.Date
}

// Advance returns the state after completing the habit on d.
//
// Completing on LastCompleted is a no-op. Completing on the day after
// LastCompleted extends the streak; any other date starts a new streak of
// one. LastCompleted always becomes d, even when d is earlier than the
// previous value.
func Advance(s StreakState, d core.Date) StreakState {
	if s.LastCompleted != nil && s.LastCompleted.Equal(d) {
		return s
	}

	next := StreakState{Streak: 1, LastCompleted: &d}
	if s.LastCompleted != nil && d.DaysSince(*s.LastCompleted) == 1 {
		next.Streak = s.Streak + 1
	}

	return next
}
