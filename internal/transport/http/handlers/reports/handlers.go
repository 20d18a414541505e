package reportshandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"reportdesk/internal/domain/auth"
	"reportdesk/internal/domain/comments"
	"reportdesk/internal/domain/export"
	"reportdesk/internal/domain/reports"
	"reportdesk/internal/transport/http/api"
	"reportdesk/internal/transport/http/middleware"
	"reportdesk/internal/transport/http/shared"
)

type Handler struct {
	Reports  *reports.Service
	Comments *comments.Service
}

func NewHandler(reportsSvc *reports.Service, commentsSvc *comments.Service) *Handler {
	return &Handler{Reports: reportsSvc, Comments: commentsSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/today", h.handleToday)
		r.Get("/export/xlsx", h.handleExportListXLSX)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
		r.Post("/{id}/submit", h.handleSubmit)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/{id}/lock", h.handleLock)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/{id}/unlock", h.handleUnlock)
		r.With(middleware.RequireRole(auth.RoleHOD)).Get("/{id}/versions", h.handleVersions)
		r.Get("/{id}/export/pdf", h.handleExportPDF)
	})
}

type createRequest struct {
	Type       string          `json:"type"`
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	Date       string          `json:"date"`
	WeekNumber *int            `json:"weekNumber"`
	Month      *int            `json:"month"`
	Year       int             `json:"year"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", requestID)
		return
	}
	date, err := shared.ParseDate(req.Date)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "date must be RFC3339 or YYYY-MM-DD", requestID)
		return
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	report, err := h.Reports.Create(r.Context(), user, reports.CreateInput{
		Type:       req.Type,
		Title:      req.Title,
		Content:    req.Content,
		Date:       date,
		WeekNumber: req.WeekNumber,
		Month:      req.Month,
		Year:       req.Year,
	})
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Created(w, report, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	filters, ok := h.parseFilters(w, r, requestID)
	if !ok {
		return
	}

	list, total, err := h.Reports.List(r.Context(), user, filters)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.SuccessPage(w, list, api.Meta{Total: total, Limit: filters.Limit, Offset: filters.Offset}, requestID)
}

func (h *Handler) handleToday(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	report, err := h.Reports.Today(r.Context(), user)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, report, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	report, err := h.Reports.Get(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, report, requestID)
}

type updateRequest struct {
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	EditReason string          `json:"editReason"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", requestID)
		return
	}

	report, err := h.Reports.Update(r.Context(), user, chi.URLParam(r, "id"), reports.UpdateInput{
		Title:      req.Title,
		Content:    req.Content,
		EditReason: req.EditReason,
	})
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, report, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	if err := h.Reports.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	report, err := h.Reports.Submit(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, report, requestID)
}

func (h *Handler) handleLock(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	report, err := h.Reports.Lock(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, report, requestID)
}

func (h *Handler) handleUnlock(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	report, err := h.Reports.Unlock(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, report, requestID)
}

func (h *Handler) handleVersions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	versions, err := h.Reports.Versions(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, versions, requestID)
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	id := chi.URLParam(r, "id")

	report, err := h.Reports.Get(r.Context(), user, id)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	thread, err := h.Comments.ListForReport(r.Context(), id)
	if err != nil {
		slog.Warn("comment load for export failed", "reportId", id, "err", err)
	}

	payload, err := export.ReportPDF(report, thread)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "pdf generation failed", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "report-"+id+".pdf"))
	_, _ = w.Write(payload)
}

func (h *Handler) handleExportListXLSX(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	filters, ok := h.parseFilters(w, r, requestID)
	if !ok {
		return
	}
	filters.Limit = 0
	filters.Offset = 0

	list, _, err := h.Reports.List(r.Context(), user, filters)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}

	payload, err := export.ReportsXLSX(list)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "xlsx generation failed", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="reports.xlsx"`)
	_, _ = w.Write(payload)
}

func (h *Handler) parseFilters(w http.ResponseWriter, r *http.Request, requestID string) (reports.ListFilters, bool) {
	query := r.URL.Query()
	page := shared.ParsePagination(r)

	startDate, err := shared.ParseDate(query.Get("startDate"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "startDate must be RFC3339 or YYYY-MM-DD", requestID)
		return reports.ListFilters{}, false
	}
	endDate, err := shared.ParseDate(query.Get("endDate"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "endDate must be RFC3339 or YYYY-MM-DD", requestID)
		return reports.ListFilters{}, false
	}

	return reports.ListFilters{
		UserID:    query.Get("userId"),
		Type:      query.Get("type"),
		Status:    query.Get("status"),
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}, true
}
