// AngelaMos | 2026
// suggestions.go

package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/carterperez-dev/mindtrack/internal/core"
	"github.com/carterperez-dev/mindtrack/internal/habit"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	DefaultSuggestionLimit = 3

	newCategoryBonus = 10
	easyHabitBonus   = 5
	lowMoodBonus     = 8
	exerciseBonus    = 7

	lowMoodWindow    = 3
	lowMoodThreshold = 3.0
)

type CatalogEntry struct {
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	Reason         string     `json:"reason"`
	Difficulty     Difficulty `json:"difficulty"`
	TimeCommitment string     `json:"time_commitment"`
}

type Suggestion struct {
	CatalogEntry
	Score int `json:"score"`
}

var catalog = []CatalogEntry{
	{"Morning Meditation", habit.CategoryMeditation, "Starts your day with mindfulness and clarity", DifficultyEasy, "5-10 min"},
	{"Gratitude Journaling", habit.CategoryJournaling, "Increases positivity and self-awareness", DifficultyEasy, "5-10 min"},
	{"Stretching Routine", habit.CategoryStretching, "Improves flexibility and reduces muscle tension", DifficultyEasy, "10-15 min"},
	{"Evening Reflection", habit.CategoryMeditation, "Helps process the day and prepare for sleep", DifficultyEasy, "5-10 min"},
	{"Cold Water Shower", habit.CategoryExercise, "Boosts energy, resilience, and circulation", DifficultyHard, "5 min"},
	{"Breathing Exercises", habit.CategoryMeditation, "Reduces stress, anxiety, and improves focus", DifficultyEasy, "5 min"},
	{"Reading", habit.CategoryReading, "Expands knowledge and improves focus", DifficultyEasy, "20-30 min"},
	{"Yoga Session", habit.CategoryExercise, "Combines strength, flexibility, and mindfulness", DifficultyMedium, "20-30 min"},
	{"Meal Prep", habit.CategoryNutrition, "Supports healthy eating habits", DifficultyMedium, "30-45 min"},
	{"Walk in Nature", habit.CategoryExercise, "Combines exercise with mental health benefits", DifficultyEasy, "20-30 min"},
	{"Creative Writing", habit.CategoryJournaling, "Enhances creativity and emotional expression", DifficultyMedium, "15-20 min"},
	{"Hydration Tracking", habit.CategoryWater, "Ensures proper hydration for health", DifficultyEasy, "1 min"},
	{"Sleep Hygiene", habit.CategorySleep, "Improves sleep quality and recovery", DifficultyEasy, "varies"},
	{"Strength Training", habit.CategoryExercise, "Builds muscle and improves overall fitness", DifficultyHard, "30-45 min"},
	{"Mindful Eating", habit.CategoryNutrition, "Improves digestion and food awareness", DifficultyMedium, "varies"},
}

// MaxSuggestionLimit is the catalog size. Larger limits are clamped to it.
func MaxSuggestionLimit() int {
	return len(catalog)
}

// Catalog returns a copy of the candidate habits in ranking tie order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// Suggest scores every catalog entry the user does not already have and
// returns the top limit by score, catalog order breaking ties. existing
// names are excluded in addition to the profile's habit names. A limit of
// zero selects the default.
func Suggest(p Profile, existing []string, limit int) ([]Suggestion, error) {
	if limit < 0 {
		return nil, fmt.Errorf("limit %d: %w", limit, core.ErrInvalidInput)
	}
	if limit == 0 {
		limit = DefaultSuggestionLimit
	}
	limit = min(limit, MaxSuggestionLimit())

	taken := make(map[string]bool, len(existing)+len(p.Habits))
	for _, name := range existing {
		taken[strings.ToLower(strings.TrimSpace(name))] = true
	}
	for _, h := range p.Habits {
		taken[strings.ToLower(strings.TrimSpace(h.Name))] = true
	}

	categories := p.categories()
	struggling := p.meanRate() < lowRateThreshold
	lowMood := len(p.Moods) > 0 && p.recentMoodMean(lowMoodWindow) < lowMoodThreshold

	scored := make([]Suggestion, 0, len(catalog))
	for _, entry := range catalog {
		if taken[strings.ToLower(entry.Name)] {
			continue
		}

		score := 0
		if !categories[entry.Category] {
			score += newCategoryBonus
		}
		if struggling && entry.Difficulty == DifficultyEasy {
			score += easyHabitBonus
		}
		if lowMood && entry.Category == habit.CategoryMeditation {
			score += lowMoodBonus
		}
		if !categories[habit.CategoryExercise] &&
			entry.Category == habit.CategoryExercise {
			score += exerciseBonus
		}

		scored = append(scored, Suggestion{CatalogEntry: entry, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

type tipSet struct {
	key  string
	tips []string
}

var tipSets = []tipSet{
	{habit.CategoryMeditation, []string{
		"Start with just 5 minutes and gradually increase",
		"Find a quiet, comfortable space",
		"Try different meditation styles to find what works",
		"Practice at the same time each day",
	}},
	{habit.CategoryExercise, []string{
		"Start with low intensity and build up gradually",
		"Find an activity you enjoy",
		"Exercise with a friend for accountability",
		"Schedule it like any other appointment",
	}},
	{habit.CategoryJournaling, []string{
		"Write without judging your thoughts",
		"Set a specific time each day",
		"Use prompts if you're stuck",
		"Reflect on your entries weekly",
	}},
	{habit.CategoryReading, []string{
		"Choose books that interest you",
		"Set a daily reading goal",
		"Create a comfortable reading space",
		"Join a book club for motivation",
	}},
	{habit.CategoryNutrition, []string{
		"Plan meals ahead of time",
		"Start with small dietary changes",
		"Focus on whole foods",
		"Stay hydrated throughout the day",
	}},
}

var fallbackTips = []string{
	"Be consistent",
	"Start small",
	"Track your progress",
	"Celebrate wins",
}

// Tips returns the tip list of the first key contained in the lower-cased
// habit name, or a generic list.
func Tips(habitName string) ([]string, error) {
	name := strings.ToLower(strings.TrimSpace(habitName))
	if name == "" {
		return nil, fmt.Errorf("habit name is required: %w", core.ErrInvalidInput)
	}

	for _, set := range tipSets {
		if strings.Contains(name, set.key) {
			return append([]string(nil), set.tips...), nil
		}
	}
	return append([]string(nil), fallbackTips...), nil
}
