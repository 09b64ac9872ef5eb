// AngelaMos | 2026
// dto.go

package analytics

type SuggestionsRequest struct {
	ExistingHabits []string `json:"existing_habits" validate:"max=100,dive,max=100"`
	Limit          *int     `json:"limit"           validate:"omitempty,min=0"`
}

type TipsResponse struct {
	Habit string   `json:"habit"`
	Tips  []string `json:"tips"`
}

type CalendarResponse struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	HabitID string          `json:"habit_id,omitempty"`
	Days    map[string]bool `json:"days"`
}
