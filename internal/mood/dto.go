// AngelaMos | 2026
// dto.go

package mood

import (
	"time"

	"github.com/carterperez-dev/mindtrack/internal/core"
)

type SaveMoodRequest struct {
	Mood int        `json:"mood" validate:"required,min=1,max=5"`
	Date *core.Date `json:"date"`
	Note *string    `json:"note" validate:"omitempty,max=1000"`
}

type EntryResponse struct {
	ID        string    `json:"id"`
	Mood      int       `json:"mood"`
	Date      core.Date `json:"date"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToEntryResponse(e *Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Mood:      e.Mood,
		Date:      e.Date,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToEntryResponses(entries []Entry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out
}
