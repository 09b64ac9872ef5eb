// AngelaMos | 2026
// streak_test.go

package habit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mindtrack/internal/core"
)

func datePtr(s string) *core.Date {
	d := core.MustParseDate(s)
	return &d
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name       string
		state      StreakState
		date       string
		wantStreak int
		wantLast   string
	}{
		{
			name:       "first completion",
			state:      StreakState{},
			date:       "2024-01-01",
			wantStreak: 1,
			wantLast:   "2024-01-01",
		},
		{
			name:       "same day is a no-op",
			state:      StreakState{Streak: 4, LastCompleted: datePtr("2024-01-05")},
			date:       "2024-01-05",
			wantStreak: 4,
			wantLast:   "2024-01-05",
		},
		{
			name:       "next day extends",
			state:      StreakState{Streak: 2, LastCompleted: datePtr("2024-01-02")},
			date:       "2024-01-03",
			wantStreak: 3,
			wantLast:   "2024-01-03",
		},
		{
			name:       "gap resets",
			state:      StreakState{Streak: 3, LastCompleted: datePtr("2024-01-03")},
			date:       "2024-01-05",
			wantStreak: 1,
			wantLast:   "2024-01-05",
		},
		{
			name:       "backfill resets and overwrites last completed",
			state:      StreakState{Streak: 3, LastCompleted: datePtr("2024-01-10")},
			date:       "2024-01-02",
			wantStreak: 1,
			wantLast:   "2024-01-02",
		},
		{
			name:       "month boundary",
			state:      StreakState{Streak: 1, LastCompleted: datePtr("2024-01-31")},
			date:       "2024-02-01",
			wantStreak: 2,
			wantLast:   "2024-02-01",
		},
		{
			name:       "leap day",
			state:      StreakState{Streak: 5, LastCompleted: datePtr("2024-02-28")},
			date:       "2024-02-29",
			wantStreak: 6,
			wantLast:   "2024-02-29",
		},
		{
			name:       "year boundary",
			state:      StreakState{Streak: 9, LastCompleted: datePtr("2023-12-31")},
			date:       "2024-01-01",
			wantStreak: 10,
			wantLast:   "2024-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advance(tt.state, core.MustParseDate(tt.date))
			assert.Equal(t, tt.wantStreak, got.Streak)
			require.NotNil(t, got.LastCompleted)
			assert.Equal(t, tt.wantLast, got.LastCompleted.String())
		})
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	last := core.MustParseDate("2024-01-01")
	state := StreakState{Streak: 1, LastCompleted: &last}

	_ = Advance(state, core.MustParseDate("2024-01-02"))

	assert.Equal(t, 1, state.Streak)
	assert.Equal(t, "2024-01-01", state.LastCompleted.String())
}

func TestAdvanceConsecutiveRun(t *testing.T) {
	state := StreakState{}
	d := core.MustParseDate("2024-01-01")

	for i, want := range []int{1, 2, 3} {
		state = Advance(state, d.AddDays(i))
		assert.Equal(t, want, state.Streak)
	}
	assert.Equal(t, "2024-01-03", state.LastCompleted.String())
}
