// AngelaMos | 2026
// dto.go

package habit

import (
	"time"

	"github.com/carterperez-dev/mindtrack/internal/core"
)

type CreateHabitRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Category string `json:"category" validate:"required,max=50"`
}

type UpdateHabitRequest struct {
	Name     *string `json:"name"     validate:"omitempty,max=100"`
	Category *string `json:"category" validate:"omitempty,max=50"`
}

type CompleteRequest struct {
	Date *core.Date `json:"date"`
}

type HabitResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	Streak        int        `json:"streak"`
	LastCompleted *core.Date `json:"last_completed"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type CompletionResponse struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Date      core.Date `json:"date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type CompleteResponse struct {
	Completion CompletionResponse `json:"completion"`
	Habit      HabitResponse      `json:"habit"`
}

func ToHabitResponse(h *Habit) HabitResponse {
	return HabitResponse{
		ID:            h.ID,
		Name:          h.Name,
		Category:      h.Category,
		Streak:        h.Streak,
		LastCompleted: h.LastCompleted,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}

func ToHabitResponses(habits []Habit) []HabitResponse {
	out := make([]HabitResponse, len(habits))
	for i := range habits {
		out[i] = ToHabitResponse(&habits[i])
	}
	return out
}

func ToCompletionResponse(c *Completion) CompletionResponse {
	return CompletionResponse{
		ID:        c.ID,
		HabitID:   c.HabitID,
		Date:      c.Date,
		Completed: c.Completed,
		CreatedAt: c.CreatedAt,
	}
}

func ToCompletionResponses(completions []Completion) []CompletionResponse {
	out := make([]CompletionResponse, len(completions))
	for i := range completions {
		out[i] = ToCompletionResponse(&completions[i])
	}
	return out
}
