// AngelaMos | 2026
// stats.go

package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/carterperez-dev/mindtrack/internal/core"
	"github.com/carterperez-dev/mindtrack/internal/habit"
)

const (
	DefaultWindowDays = 7
	MaxWindowDays     = 366
	weekDays          = 7
)

type HabitStats struct {
	CompletedDays  int `json:"completed_days"`
	TotalDays      int `json:"total_days"`
	CompletionRate int `json:"completion_rate"`
}

type CategoryStat struct {
	Count          int `json:"count"`
	CompletionRate int `json:"completion_rate"`
}

type BreakdownEntry struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Rate      int `json:"rate"`
}

type TrendDay struct {
	Date      core.Date `json:"date"`
	Day       string    `json:"day"`
	Completed bool      `json:"completed"`
}

// percent rounds half away from zero.
func percent(num, den int) int {
	return int(math.Round(float64(num) / float64(den) * 100))
}

// ComputeHabitStats counts the habit's completions dated within
// [today-windowDays, today]. The range spans windowDays+1 calendar days
// while the rate divides by windowDays, so a habit completed every day of
// the range reports slightly over 100.
func ComputeHabitStats(
	completions []habit.Completion,
	habitID string,
	today core.Date,
	windowDays int,
) (HabitStats, error) {
	if windowDays <= 0 {
		return HabitStats{}, fmt.Errorf(
			"window of %d days: %w",
			windowDays,
			core.ErrInvalidInput,
		)
	}

	start := today.AddDays(-windowDays)
	completed := 0
	for _, c := range completions {
		if c.HabitID != habitID || !c.Completed {
			continue
		}
		if c.Date.Before(start) || c.Date.After(today) {
			continue
		}
		completed++
	}

	return HabitStats{
		CompletedDays:  completed,
		TotalDays:      windowDays,
		CompletionRate: percent(completed, windowDays),
	}, nil
}

// WeeklyRates returns each habit's seven-day completion rate keyed by habit
// id.
func WeeklyRates(
	habits []habit.Habit,
	completions []habit.Completion,
	today core.Date,
) map[string]int {
	rates := make(map[string]int, len(habits))
	for _, h := range habits {
		//nolint:errcheck // weekDays is positive
		stats, _ := ComputeHabitStats(completions, h.ID, today, weekDays)
		rates[h.ID] = stats.CompletionRate
	}
	return rates
}

func weeklyCompleted(
	habits []habit.Habit,
	completions []habit.Completion,
	today core.Date,
) map[string]int {
	counts := make(map[string]int, len(habits))
	for _, h := range habits {
		//nolint:errcheck // weekDays is positive
		stats, _ := ComputeHabitStats(completions, h.ID, today, weekDays)
		counts[h.ID] = stats.CompletedDays
	}
	return counts
}

// ComputeCategoryStats groups habits by category. A category's rate is the
// rounded mean of its habits' seven-day rates.
func ComputeCategoryStats(
	habits []habit.Habit,
	rates map[string]int,
) map[string]CategoryStat {
	sums := make(map[string]int)
	stats := make(map[string]CategoryStat)

	for _, h := range habits {
		s := stats[h.Category]
		s.Count++
		stats[h.Category] = s
		sums[h.Category] += rates[h.ID]
	}

	for category, s := range stats {
		s.CompletionRate = int(math.Round(float64(sums[category]) / float64(s.Count)))
		stats[category] = s
	}

	return stats
}

// ComputeCategoryBreakdown totals seven-day completed days per category.
// Rate is completed over total*7.
func ComputeCategoryBreakdown(
	habits []habit.Habit,
	completions []habit.Completion,
	today core.Date,
) map[string]BreakdownEntry {
	completed := weeklyCompleted(habits, completions, today)
	breakdown := make(map[string]BreakdownEntry)

	for _, h := range habits {
		e := breakdown[h.Category]
		e.Total++
		e.Completed += completed[h.ID]
		e.Rate = percent(e.Completed, e.Total*weekDays)
		breakdown[h.Category] = e
	}

	return breakdown
}

// ComputeWeeklyTrend reports the seven days ending today, oldest first.
func ComputeWeeklyTrend(
	completions []habit.Completion,
	habitID string,
	today core.Date,
) []TrendDay {
	done := make(map[core.Date]bool)
	for _, c := range completions {
		if c.HabitID == habitID && c.Completed {
			done[c.Date] = true
		}
	}

	trend := make([]TrendDay, 0, weekDays)
	for i := weekDays - 1; i >= 0; i-- {
		d := today.AddDays(-i)
		trend = append(trend, TrendDay{
			Date:      d,
			Day:       d.Weekday().String()[:3],
			Completed: done[d],
		})
	}

	return trend
}

// MonthBounds returns the first and last day of the month.
func MonthBounds(year int, month time.Month) (core.Date, core.Date, error) {
	if month < time.January || month > time.December {
		return core.Date{}, core.Date{}, fmt.Errorf(
			"month %d: %w",
			month,
			core.ErrInvalidInput,
		)
	}
	if year < 1 || year > 9999 {
		return core.Date{}, core.Date{}, fmt.Errorf(
			"year %d: %w",
			year,
			core.ErrInvalidInput,
		)
	}

	first := core.NewDate(year, month, 1)
	last := first.AddDays(32)
	last = core.NewDate(last.Year(), last.Month(), 1).AddDays(-1)
	return first, last, nil
}

// ComputeMonthCalendar marks every day of the month with whether any
// completion, or one for habitID when set, falls on it.
func ComputeMonthCalendar(
	completions []habit.Completion,
	habitID string,
	year int,
	month time.Month,
) (map[string]bool, error) {
	first, last, err := MonthBounds(year, month)
	if err != nil {
		return nil, err
	}

	calendar := make(map[string]bool, last.Day())
	for d := first; !d.After(last); d = d.AddDays(1) {
		calendar[d.String()] = false
	}

	for _, c := range completions {
		if !c.Completed || (habitID != "" && c.HabitID != habitID) {
			continue
		}
		if key := c.Date.String(); !c.Date.Before(first) && !c.Date.After(last) {
			calendar[key] = true
		}
	}

	return calendar, nil
}
