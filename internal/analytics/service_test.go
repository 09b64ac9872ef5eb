// AngelaMos | 2026
// service_test.go

package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mindtrack/internal/core"
	"github.com/carterperez-dev/mindtrack/internal/habit"
	"github.com/carterperez-dev/mindtrack/internal/mood"
	"github.com/carterperez-dev/mindtrack/internal/testdb"
)

type fixture struct {
	analytics *Service
	habits    *habit.Service
	moods     *mood.Service
	alice     string
	bob       string
}

func newFixture(t *testing.T, today string) *fixture {
	t.Helper()

	db := testdb.New(t)
	alice := testdb.SeedUser(t, db, "user-alice", "alice@example.com")
	bob := testdb.SeedUser(t, db, "user-bob", "bob@example.com")

	now := core.MustParseDate(today).Time().Add(18 * time.Hour)
	clock := func() time.Time { return now }

	habitRepo := habit.NewRepository(db)
	moodRepo := mood.NewRepository(db)

	svc := NewService(habitRepo, moodRepo, WithClock(clock))

	return &fixture{
		analytics: svc,
		habits: habit.NewService(habitRepo,
			habit.WithClock(clock),
			habit.WithInvalidator(svc),
		),
		moods: mood.NewService(moodRepo,
			mood.WithClock(clock),
			mood.WithInvalidator(svc),
		),
		alice: alice,
		bob:   bob,
	}
}

func (f *fixture) habit(t *testing.T, userID, name, category string) *habit.Habit {
	t.Helper()
	h, err := f.habits.Create(context.Background(), userID, habit.CreateHabitRequest{
		Name:     name,
		Category: category,
	})
	require.NoError(t, err)
	return h
}

func (f *fixture) complete(t *testing.T, userID, habitID string, dates ...string) {
	t.Helper()
	for _, d := range dates {
		date := core.MustParseDate(d)
		_, _, err := f.habits.Complete(context.Background(), userID, habitID, &date)
		require.NoError(t, err)
	}
}

func (f *fixture) mood(t *testing.T, userID string, score int, date string) {
	t.Helper()
	d := core.MustParseDate(date)
	_, err := f.moods.Save(context.Background(), userID, mood.SaveMoodRequest{
		Mood: score,
		Date: &d,
	})
	require.NoError(t, err)
}

func TestYogaEndToEnd(t *testing.T) {
	f := newFixture(t, "2024-01-03")
	ctx := context.Background()

	yoga := f.habit(t, f.alice, "Yoga", "exercise")
	f.complete(t, f.alice, yoga.ID, "2024-01-01", "2024-01-02", "2024-01-03")

	got, err := f.habits.Get(ctx, f.alice, yoga.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Streak)
	require.NotNil(t, got.LastCompleted)
	assert.Equal(t, "2024-01-03", got.LastCompleted.String())

	stats, err := f.analytics.HabitStats(ctx, f.alice, yoga.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, HabitStats{CompletedDays: 3, TotalDays: 7, CompletionRate: 43}, stats)

	categories, err := f.analytics.CategoryStats(ctx, f.alice)
	require.NoError(t, err)
	assert.Equal(t, map[string]CategoryStat{
		"exercise": {Count: 1, CompletionRate: 43},
	}, categories)

	trend, err := f.analytics.WeeklyTrend(ctx, f.alice, yoga.ID)
	require.NoError(t, err)
	require.Len(t, trend, 7)
	assert.False(t, trend[3].Completed)
	assert.True(t, trend[4].Completed)
	assert.True(t, trend[6].Completed)
}

func TestInsightsForNewUser(t *testing.T) {
	f := newFixture(t, "2024-01-03")
	f.mood(t, f.alice, 5, "2024-01-01")
	f.mood(t, f.alice, 5, "2024-01-02")
	f.mood(t, f.alice, 5, "2024-01-03")

	insights, err := f.analytics.Insights(context.Background(), f.alice)
	require.NoError(t, err)

	require.Len(t, insights, 1)
	assert.Equal(t, "Get Started", insights[0].Title)
	assert.Equal(t, InsightSuggestion, insights[0].Type)
	assert.Equal(t, 1, insights[0].Priority)
}

func TestInsightsUseStoredData(t *testing.T) {
	f := newFixture(t, "2024-01-03")

	yoga := f.habit(t, f.alice, "Yoga", "exercise")
	f.habit(t, f.alice, "Read", "reading")
	f.complete(t, f.alice, yoga.ID, "2024-01-02", "2024-01-03")
	f.mood(t, f.alice, 1, "2024-01-01")
	f.mood(t, f.alice, 2, "2024-01-02")
	f.mood(t, f.alice, 2, "2024-01-03")

	insights, err := f.analytics.Insights(context.Background(), f.alice)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Great Consistency",
		"Habits Need Attention",
		"Mood Support",
		"Diversify Your Habits",
	}, titles(insights))
	assert.Contains(t, insights[1].Description, "Yoga, Read")
}

func TestHabitStatsErrors(t *testing.T) {
	f := newFixture(t, "2024-01-03")
	ctx := context.Background()
	yoga := f.habit(t, f.alice, "Yoga", "exercise")

	_, err := f.analytics.HabitStats(ctx, f.bob, yoga.ID, 7)
	assert.True(t, errors.Is(err, core.ErrForbidden))

	_, err = f.analytics.HabitStats(ctx, f.alice, "missing", 7)
	assert.True(t, errors.Is(err, core.ErrNotFound))

	for _, days := range []int{0, -1} {
		_, err = f.analytics.HabitStats(ctx, f.alice, yoga.ID, days)
		assert.True(t, errors.Is(err, core.ErrInvalidInput), "days %d", days)
	}

	_, err = f.analytics.WeeklyTrend(ctx, f.bob, yoga.ID)
	assert.True(t, errors.Is(err, core.ErrForbidden))

	_, err = f.analytics.MonthCalendar(ctx, f.bob, 2024, time.January, yoga.ID)
	assert.True(t, errors.Is(err, core.ErrForbidden))
}

func TestHabitStatsReportsRequestedWindow(t *testing.T) {
	f := newFixture(t, "2024-01-03")
	yoga := f.habit(t, f.alice, "Yoga", "exercise")

	stats, err := f.analytics.HabitStats(context.Background(), f.alice, yoga.ID, 400)
	require.NoError(t, err)
	assert.Equal(t, HabitStats{CompletedDays: 0, TotalDays: 400, CompletionRate: 0}, stats)
}

func TestSuggestionsExcludeStoredAndGivenNames(t *testing.T) {
	f := newFixture(t, "2024-01-03")
	f.habit(t, f.alice, "yoga session", "exercise")

	got, err := f.analytics.Suggestions(
		context.Background(),
		f.alice,
		[]string{"READING"},
		MaxSuggestionLimit(),
	)
	require.NoError(t, err)

	assert.Len(t, got, 13)
	assert.NotContains(t, names(got), "Yoga Session")
	assert.NotContains(t, names(got), "Reading")

	_, err = f.analytics.Suggestions(context.Background(), f.alice, nil, -1)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestSuggestionsIdenticalForIdenticalUsers(t *testing.T) {
	f := newFixture(t, "2024-01-03")
	ctx := context.Background()

	for _, user := range []string{f.alice, f.bob} {
		h := f.habit(t, user, "Sit", "meditation")
		f.complete(t, user, h.ID, "2024-01-03")
		f.mood(t, user, 2, "2024-01-03")
	}

	a, err := f.analytics.Suggestions(ctx, f.alice, nil, 5)
	require.NoError(t, err)
	b, err := f.analytics.Suggestions(ctx, f.bob, nil, 5)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestMonthCalendarAndBreakdown(t *testing.T) {
	f := newFixture(t, "2024-02-10")
	ctx := context.Background()

	run := f.habit(t, f.alice, "Run", "exercise")
	lift := f.habit(t, f.alice, "Lift", "exercise")
	f.complete(t, f.alice, run.ID, "2024-01-31", "2024-02-01", "2024-02-09")
	f.complete(t, f.alice, lift.ID, "2024-02-10")

	calendar, err := f.analytics.MonthCalendar(ctx, f.alice, 2024, time.February, "")
	require.NoError(t, err)
	assert.Len(t, calendar, 29)
	assert.True(t, calendar["2024-02-01"])
	assert.True(t, calendar["2024-02-09"])
	assert.True(t, calendar["2024-02-10"])
	assert.False(t, calendar["2024-02-02"])

	runOnly, err := f.analytics.MonthCalendar(ctx, f.alice, 2024, time.February, run.ID)
	require.NoError(t, err)
	assert.False(t, runOnly["2024-02-10"])

	breakdown, err := f.analytics.CategoryBreakdown(ctx, f.alice)
	require.NoError(t, err)
	assert.Equal(t, map[string]BreakdownEntry{
		"exercise": {Total: 2, Completed: 2, Rate: 14},
	}, breakdown)

	empty, err := f.analytics.CategoryBreakdown(ctx, f.bob)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
