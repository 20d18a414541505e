package notificationshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"reportdesk/internal/domain/notifications"
	"reportdesk/internal/transport/http/api"
	"reportdesk/internal/transport/http/middleware"
	"reportdesk/internal/transport/http/shared"
)

type Handler struct {
	Notifications *notifications.Service
}

func NewHandler(svc *notifications.Service) *Handler {
	return &Handler{Notifications: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/unread-count", h.handleUnreadCount)
		r.Post("/{id}/read", h.handleMarkRead)
		r.Post("/read-all", h.handleMarkAllRead)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	page := shared.ParsePagination(r)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	list, total, err := h.Notifications.List(r.Context(), user.UserID, unreadOnly, page.Limit, page.Offset)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.SuccessPage(w, list, api.Meta{Total: total, Limit: page.Limit, Offset: page.Offset}, requestID)
}

func (h *Handler) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	count, err := h.Notifications.CountUnread(r.Context(), user.UserID)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]int{"unread": count}, requestID)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	if err := h.Notifications.MarkRead(r.Context(), user.UserID, chi.URLParam(r, "id")); err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]bool{"read": true}, requestID)
}

func (h *Handler) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	if err := h.Notifications.MarkAllRead(r.Context(), user.UserID); err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]bool{"read": true}, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	if err := h.Notifications.Delete(r.Context(), user.UserID, chi.URLParam(r, "id")); err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}
