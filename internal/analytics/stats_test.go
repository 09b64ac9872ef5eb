// AngelaMos | 2026
// stats_test.go

package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mindtrack/internal/core"
	"github.com/carterperez-dev/mindtrack/internal/habit"
)

func done(habitID string, dates ...string) []habit.Completion {
	out := make([]habit.Completion, 0, len(dates))
	for _, d := range dates {
		out = append(out, habit.Completion{
			HabitID:   habitID,
			Date:      core.MustParseDate(d),
			Completed: true,
		})
	}
	return out
}

func TestComputeHabitStats(t *testing.T) {
	today := core.MustParseDate("2024-01-03")

	tests := []struct {
		name        string
		completions []habit.Completion
		window      int
		want        HabitStats
	}{
		{
			name:   "no completions",
			window: 7,
			want:   HabitStats{CompletedDays: 0, TotalDays: 7, CompletionRate: 0},
		},
		{
			name:        "three of seven rounds to 43",
			completions: done("h1", "2024-01-01", "2024-01-02", "2024-01-03"),
			window:      7,
			want:        HabitStats{CompletedDays: 3, TotalDays: 7, CompletionRate: 43},
		},
		{
			name: "completed days equal window",
			completions: done("h1",
				"2023-12-28", "2023-12-29", "2023-12-30", "2023-12-31",
				"2024-01-01", "2024-01-02", "2024-01-03",
			),
			window: 7,
			want:   HabitStats{CompletedDays: 7, TotalDays: 7, CompletionRate: 100},
		},
		{
			name:        "window start is inclusive",
			completions: done("h1", "2023-12-27"),
			window:      7,
			want:        HabitStats{CompletedDays: 1, TotalDays: 7, CompletionRate: 14},
		},
		{
			name:        "outside window and future ignored",
			completions: done("h1", "2023-12-26", "2024-01-04"),
			window:      7,
			want:        HabitStats{CompletedDays: 0, TotalDays: 7, CompletionRate: 0},
		},
		{
			name:        "other habits ignored",
			completions: done("h2", "2024-01-03"),
			window:      7,
			want:        HabitStats{CompletedDays: 0, TotalDays: 7, CompletionRate: 0},
		},
		{
			name:        "half rounds away from zero",
			completions: done("h1", "2024-01-03"),
			window:      8,
			want:        HabitStats{CompletedDays: 1, TotalDays: 8, CompletionRate: 13},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeHabitStats(tt.completions, "h1", today, tt.window)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeHabitStatsRejectsEmptyWindow(t *testing.T) {
	for _, window := range []int{0, -3} {
		_, err := ComputeHabitStats(nil, "h1", core.MustParseDate("2024-01-03"), window)
		assert.True(t, errors.Is(err, core.ErrInvalidInput), "window %d", window)
	}
}

func TestComputeCategoryStats(t *testing.T) {
	habits := []habit.Habit{
		{ID: "h1", Category: "exercise"},
		{ID: "h2", Category: "exercise"},
		{ID: "h3", Category: "reading"},
	}
	rates := map[string]int{"h1": 43, "h2": 0, "h3": 71}

	got := ComputeCategoryStats(habits, rates)

	assert.Equal(t, map[string]CategoryStat{
		"exercise": {Count: 2, CompletionRate: 22},
		"reading":  {Count: 1, CompletionRate: 71},
	}, got)
}

func TestComputeCategoryStatsEmpty(t *testing.T) {
	got := ComputeCategoryStats(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestComputeCategoryBreakdown(t *testing.T) {
	today := core.MustParseDate("2024-01-03")
	habits := []habit.Habit{
		{ID: "h1", Category: "exercise"},
		{ID: "h2", Category: "exercise"},
		{ID: "h3", Category: "reading"},
	}
	completions := append(
		done("h1", "2024-01-01", "2024-01-02", "2024-01-03"),
		done("h3", "2024-01-03")...,
	)

	got := ComputeCategoryBreakdown(habits, completions, today)

	assert.Equal(t, map[string]BreakdownEntry{
		"exercise": {Total: 2, Completed: 3, Rate: 21},
		"reading":  {Total: 1, Completed: 1, Rate: 14},
	}, got)
}

func TestComputeWeeklyTrend(t *testing.T) {
	today := core.MustParseDate("2024-01-03")
	completions := append(
		done("h1", "2023-12-28", "2024-01-02", "2024-01-03"),
		done("h2", "2023-12-30")...,
	)

	trend := ComputeWeeklyTrend(completions, "h1", today)
	require.Len(t, trend, 7)

	assert.Equal(t, "2023-12-28", trend[0].Date.String())
	assert.Equal(t, "Thu", trend[0].Day)
	assert.True(t, trend[0].Completed)

	assert.Equal(t, "2023-12-30", trend[2].Date.String())
	assert.False(t, trend[2].Completed)

	assert.Equal(t, "2024-01-03", trend[6].Date.String())
	assert.Equal(t, "Wed", trend[6].Day)
	assert.True(t, trend[6].Completed)
}

func TestComputeMonthCalendar(t *testing.T) {
	completions := append(
		done("h1", "2024-02-01", "2024-02-29", "2024-03-01"),
		done("h2", "2024-02-14")...,
	)

	all, err := ComputeMonthCalendar(completions, "", 2024, time.February)
	require.NoError(t, err)
	assert.Len(t, all, 29)
	assert.True(t, all["2024-02-01"])
	assert.True(t, all["2024-02-14"])
	assert.True(t, all["2024-02-29"])
	assert.False(t, all["2024-02-02"])
	assert.NotContains(t, all, "2024-03-01")

	one, err := ComputeMonthCalendar(completions, "h1", 2024, time.February)
	require.NoError(t, err)
	assert.False(t, one["2024-02-14"])
	assert.True(t, one["2024-02-29"])
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		first string
		last  string
	}{
		{2024, time.February, "2024-02-01", "2024-02-29"},
		{2023, time.February, "2023-02-01", "2023-02-28"},
		{2024, time.January, "2024-01-01", "2024-01-31"},
		{2024, time.December, "2024-12-01", "2024-12-31"},
	}

	for _, tt := range tests {
		first, last, err := MonthBounds(tt.year, tt.month)
		require.NoError(t, err)
		assert.Equal(t, tt.first, first.String())
		assert.Equal(t, tt.last, last.String())
	}

	_, _, err := MonthBounds(2024, 13)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	_, _, err = MonthBounds(0, time.March)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
