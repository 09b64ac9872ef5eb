// AngelaMos | 2026
// insights.go

package analytics

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/carterperez-dev/mindtrack/internal/habit"
	"github.com/carterperez-dev/mindtrack/internal/mood"
)

type InsightType string

const (
	InsightSuccess    InsightType = "success"
	InsightWarning    InsightType = "warning"
	InsightSuggestion InsightType = "suggestion"
)

const (
	lowRateThreshold   = 50
	moodInsightMinimum = 3
	moodInsightWindow  = 7
	positiveMoodMean   = 4.0
	lowMoodMean        = 2.5
)

var diversifyOrder = []string{
	habit.CategoryMeditation,
	habit.CategoryJournaling,
	habit.CategoryReading,
	habit.CategoryExercise,
}

type Insight struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        InsightType `json:"type"`
	Priority    int         `json:"priority"`
}

// Profile is one consistent read of a user's data. Moods are in storage
// order and Rates holds each habit's seven-day completion rate by id.
type Profile struct {
	Habits []habit.Habit
	Moods  []mood.Entry
	Rates  map[string]int
}

func (p Profile) categories() map[string]bool {
	set := make(map[string]bool, len(p.Habits))
	for _, h := range p.Habits {
		set[h.Category] = true
	}
	return set
}

// meanRate is the average seven-day rate across habits, or 50 with none.
func (p Profile) meanRate() float64 {
	if len(p.Habits) == 0 {
		return lowRateThreshold
	}
	sum := 0
	for _, h := range p.Habits {
		sum += p.Rates[h.ID]
	}
	return float64(sum) / float64(len(p.Habits))
}

// recentMoodMean averages the last n entries in storage order.
func (p Profile) recentMoodMean(n int) float64 {
	recent := p.Moods
	if len(recent) > n {
		recent = recent[len(recent)-n:]
	}
	if len(recent) == 0 {
		return 0
	}
	sum := 0
	for _, m := range recent {
		sum += m.Mood
	}
	return float64(sum) / float64(len(recent))
}

// GenerateInsights applies every rule that matches and orders the result by
// priority, keeping rule order among equals.
func GenerateInsights(p Profile) []Insight {
	if len(p.Habits) == 0 {
		return []Insight{{
			Title:       "Get Started",
			Description: "Create your first habit to begin tracking your wellness journey.",
			Type:        InsightSuggestion,
			Priority:    1,
		}}
	}

	insights := make([]Insight, 0, 5)

	best := p.Habits[0]
	for _, h := range p.Habits[1:] {
		if h.Streak > best.Streak {
			best = h
		}
	}
	if best.Streak > 0 {
		insights = append(insights, Insight{
			Title: "Great Consistency",
			Description: fmt.Sprintf(
				`Your "%s" habit has a %d-day streak. Keep the momentum going!`,
				best.Name,
				best.Streak,
			),
			Type:     InsightSuccess,
			Priority: 1,
		})
	}

	var struggling []string
	for _, h := range p.Habits {
		if p.Rates[h.ID] < lowRateThreshold {
			struggling = append(struggling, h.Name)
		}
	}
	if len(struggling) > 0 {
		insights = append(insights, Insight{
			Title: "Habits Need Attention",
			Description: fmt.Sprintf(
				"%s have low completion rates. Consider adjusting the time or difficulty.",
				strings.Join(struggling, ", "),
			),
			Type:     InsightWarning,
			Priority: 2,
		})
	}

	if len(p.Moods) >= moodInsightMinimum {
		avg := p.recentMoodMean(moodInsightWindow)
		switch {
		case avg >= positiveMoodMean:
			insights = append(insights, Insight{
				Title:       "Positive Mood Trend",
				Description: "Your mood has been consistently positive. Your habits are contributing to your wellness!",
				Type:        InsightSuccess,
				Priority:    1,
			})
		case avg < lowMoodMean:
			insights = append(insights, Insight{
				Title:       "Mood Support",
				Description: "Consider adding meditation or journaling to help improve your mood.",
				Type:        InsightSuggestion,
				Priority:    2,
			})
		}
	}

	present := p.categories()
	if len(present) < len(diversifyOrder) {
		if i := slices.IndexFunc(diversifyOrder, func(c string) bool {
			return !present[c]
		}); i >= 0 {
			insights = append(insights, Insight{
				Title: "Diversify Your Habits",
				Description: fmt.Sprintf(
					"Try adding a %s habit to create a more balanced wellness routine.",
					diversifyOrder[i],
				),
				Type:     InsightSuggestion,
				Priority: 3,
			})
		}
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority < insights[j].Priority
	})

	return insights
}
