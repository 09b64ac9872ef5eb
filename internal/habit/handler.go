// AngelaMos | 2026
// handler.go

package habit

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

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

		r.Get("/habits", h.List)
		r.Post("/habits", h.Create)
		r.Get("/habits/{habitID}", h.Get)
		r.Patch("/habits/{habitID}", h.Update)
		r.Delete("/habits/{habitID}", h.Delete)
		r.Post("/habits/{habitID}/complete", h.Complete)
		r.Get("/habits/{habitID}/completions", h.ListCompletions)
		r.Get("/completions", h.CompletionsByDate)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	habits, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToHabitResponses(habits))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	habit, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToHabitResponse(habit))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	habit, err := h.service.Get(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "habitID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToHabitResponse(habit))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	habit, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "habitID"),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToHabitResponse(habit))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "habitID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.NoContent(w)
}

// Complete accepts an empty body, in which case the completion is for
// today.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	var req CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil &&
		!errors.Is(err, io.EOF) {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "date must be formatted as YYYY-MM-DD")
			return
		}
		core.BadRequest(w, "invalid request body")
		return
	}

	completion, habit, err := h.service.Complete(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "habitID"),
		req.Date,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, CompleteResponse{
		Completion: ToCompletionResponse(completion),
		Habit:      ToHabitResponse(habit),
	})
}

func (h *Handler) ListCompletions(w http.ResponseWriter, r *http.Request) {
	completions, err := h.service.Completions(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "habitID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToCompletionResponses(completions))
}

// CompletionsByDate lists all of the user's completions, or those on
// ?date= when given.
func (h *Handler) CompletionsByDate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	raw := r.URL.Query().Get("date")
	if raw == "" {
		completions, err := h.service.Completions(r.Context(), userID, "")
		if err != nil {
			writeError(w, err)
			return
		}
		core.OK(w, ToCompletionResponses(completions))
		return
	}

	date, err := core.ParseDate(raw)
	if err != nil {
		core.BadRequest(w, "date must be formatted as YYYY-MM-DD")
		return
	}

	completions, err := h.service.CompletionsByDate(r.Context(), userID, date)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToCompletionResponses(completions))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "habit")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "habit belongs to another user")
	case errors.Is(err, ErrAlreadyCompleted):
		core.JSONError(w, core.ConflictError(
			"habit already completed for this date",
			"ALREADY_COMPLETED",
		))
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
