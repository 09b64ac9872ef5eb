// AngelaMos | 2026
// handler.go

package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/mindtrack/internal/core"
	"github.com/carterperez-dev/mindtrack/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/analytics/categories", h.CategoryStats)
		r.Get("/analytics/breakdown", h.CategoryBreakdown)
		r.Get("/insights", h.Insights)
		r.Post("/suggestions", h.Suggestions)
		r.Get("/tips", h.Tips)
		r.Get("/habits/{habitID}/stats", h.HabitStats)
		r.Get("/habits/{habitID}/trend", h.WeeklyTrend)
		r.Get("/completions/calendar", h.MonthCalendar)
	})
}

func (h *Handler) CategoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.CategoryStats(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.service.CategoryBreakdown(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, breakdown)
}

func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.service.Insights(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, insights)
}

// Suggestions accepts an empty body.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req SuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil &&
		!errors.Is(err, io.EOF) {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	limit := 0
	if req.Limit != nil {
		limit = *req.Limit
	}

	suggestions, err := h.service.Suggestions(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req.ExistingHabits,
		limit,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, suggestions)
}

func (h *Handler) Tips(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("habit")

	tips, err := Tips(name)
	if err != nil {
		core.BadRequest(w, "habit query parameter is required")
		return
	}

	core.OK(w, TipsResponse{Habit: name, Tips: tips})
}

func (h *Handler) HabitStats(w http.ResponseWriter, r *http.Request) {
	days := DefaultWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			core.BadRequest(w, "days must be an integer")
			return
		}
		if n > MaxWindowDays {
			core.BadRequest(w, fmt.Sprintf("days must be at most %d", MaxWindowDays))
			return
		}
		days = n
	}

	stats, err := h.service.HabitStats(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "habitID"),
		days,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) WeeklyTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.service.WeeklyTrend(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "habitID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, trend)
}

// MonthCalendar defaults year and month to the current ones.
func (h *Handler) MonthCalendar(w http.ResponseWriter, r *http.Request) {
	today := h.service.Today()
	query := r.URL.Query()

	year, err := intParam(query.Get("year"), today.Year())
	if err != nil {
		core.BadRequest(w, "year must be an integer")
		return
	}
	month, err := intParam(query.Get("month"), int(today.Month()))
	if err != nil {
		core.BadRequest(w, "month must be an integer")
		return
	}
	habitID := query.Get("habit_id")

	days, err := h.service.MonthCalendar(
		r.Context(),
		middleware.GetUserID(r.Context()),
		year,
		time.Month(month),
		habitID,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, CalendarResponse{
		Year:    year,
		Month:   month,
		HabitID: habitID,
		Days:    days,
	})
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "habit")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "habit belongs to another user")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
