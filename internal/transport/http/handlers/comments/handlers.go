package commentshandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reportdesk/internal/domain/comments"
	"reportdesk/internal/transport/http/api"
	"reportdesk/internal/transport/http/middleware"
	"reportdesk/internal/transport/http/shared"
)

type Handler struct {
	Comments *comments.Service
}

func NewHandler(svc *comments.Service) *Handler {
	return &Handler{Comments: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/reports/{reportId}/comments", h.handleListForReport)
		r.Post("/reports/{reportId}/comments", h.handleCreate)
		r.Put("/comments/{id}", h.handleUpdate)
		r.Delete("/comments/{id}", h.handleDelete)
	})
}

type commentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parentId"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", requestID)
		return
	}

	comment, err := h.Comments.Create(r.Context(), user, chi.URLParam(r, "reportId"), req.Content, req.ParentID)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Created(w, comment, requestID)
}

func (h *Handler) handleListForReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	list, err := h.Comments.ListForReport(r.Context(), chi.URLParam(r, "reportId"))
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, list, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", requestID)
		return
	}

	comment, err := h.Comments.Update(r.Context(), user, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, comment, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	if err := h.Comments.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}
