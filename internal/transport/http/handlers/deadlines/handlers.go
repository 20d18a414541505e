package deadlineshandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"reportdesk/internal/domain/auth"
	"reportdesk/internal/domain/deadlines"
	"reportdesk/internal/transport/http/api"
	"reportdesk/internal/transport/http/middleware"
	"reportdesk/internal/transport/http/shared"
)

type Handler struct {
	Deadlines *deadlines.Service
}

func NewHandler(svc *deadlines.Service) *Handler {
	return &Handler{Deadlines: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/deadlines", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/next", h.handleNext)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleHR))
			r.Post("/", h.handleCreate)
			r.Get("/{id}", h.handleGet)
			r.Put("/{id}", h.handleUpdate)
			r.Delete("/{id}", h.handleDelete)
		})
	})
}

type deadlineRequest struct {
	Type         string  `json:"type"`
	DepartmentID *string `json:"departmentId"`
	UnitID       *string `json:"unitId"`
	DeadlineTime string  `json:"deadlineTime"`
	DayOfWeek    *int    `json:"dayOfWeek"`
	DayOfMonth   *int    `json:"dayOfMonth"`
	IsActive     *bool   `json:"isActive"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req deadlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", requestID)
		return
	}

	deadline, err := h.Deadlines.Create(r.Context(), deadlines.CreateInput{
		Type:         req.Type,
		DepartmentID: req.DepartmentID,
		UnitID:       req.UnitID,
		DeadlineTime: req.DeadlineTime,
		DayOfWeek:    req.DayOfWeek,
		DayOfMonth:   req.DayOfMonth,
	})
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Created(w, deadline, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	deadline, err := h.Deadlines.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, deadline, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req deadlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", requestID)
		return
	}

	in := deadlines.UpdateInput{
		DayOfWeek:  req.DayOfWeek,
		DayOfMonth: req.DayOfMonth,
		IsActive:   req.IsActive,
	}
	if req.DeadlineTime != "" {
		in.DeadlineTime = &req.DeadlineTime
	}

	deadline, err := h.Deadlines.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, deadline, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.Deadlines.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	list, err := h.Deadlines.List(r.Context(), deadlines.ListFilters{
		Type:         query.Get("type"),
		DepartmentID: query.Get("departmentId"),
		UnitID:       query.Get("unitId"),
		ActiveOnly:   query.Get("active") == "true",
	})
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, list, requestID)
}

// handleNext reports the caller's next applicable deadline for a
// report type.
func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	reportType := r.URL.Query().Get("type")
	if !deadlines.ValidType(reportType) {
		api.Fail(w, http.StatusBadRequest, "bad_request", "type must be daily, weekly or monthly", requestID)
		return
	}

	next, err := h.Deadlines.NextForUser(r.Context(), user.UserID, reportType, time.Now().UTC())
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]any{"type": reportType, "next": next}, requestID)
}
