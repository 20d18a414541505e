package compiledhandler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"reportdesk/internal/domain/compile"
	"reportdesk/internal/domain/export"
	"reportdesk/internal/transport/http/api"
	"reportdesk/internal/transport/http/middleware"
	"reportdesk/internal/transport/http/shared"
)

type Handler struct {
	Compiler *compile.Service
}

func NewHandler(compiler *compile.Service) *Handler {
	return &Handler{Compiler: compiler}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/compiled-reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Post("/weekly", h.handleCompileWeekly)
		r.Post("/monthly", h.handleCompileMonthly)
		r.Post("/annual", h.handleCompileAnnual)
		r.Get("/{id}/export/pdf", h.handleExportPDF)
		r.Get("/{id}/export/xlsx", h.handleExportXLSX)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	query := r.URL.Query()
	page := shared.ParsePagination(r)
	filters := compile.ListFilters{
		UserID: query.Get("userId"),
		Type:   query.Get("type"),
		Status: query.Get("status"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	list, total, err := h.Compiler.List(r.Context(), user, filters)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.SuccessPage(w, list, api.Meta{Total: total, Limit: page.Limit, Offset: page.Offset}, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	compiled, err := h.Compiler.Get(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, compiled, requestID)
}

type compileRequest struct {
	Date   string `json:"date"`
	Year   int    `json:"year"`
	Months []int  `json:"months"`
}

// decodeAnchor resolves the requested period anchor, defaulting to
// now.
func decodeAnchor(r *http.Request) (compileRequest, time.Time, error) {
	var req compileRequest
	if r.Body != nil {
		// An empty body means "compile the current period".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	anchor := time.Now().UTC()
	if req.Date != "" {
		parsed, err := shared.ParseDate(req.Date)
		if err != nil {
			return req, time.Time{}, err
		}
		anchor = parsed
	}
	return req, anchor, nil
}

func (h *Handler) handleCompileWeekly(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	_, anchor, err := decodeAnchor(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "date must be RFC3339 or YYYY-MM-DD", requestID)
		return
	}

	compiled, err := h.Compiler.CompileWeekly(r.Context(), user.UserID, anchor)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Created(w, compiled, requestID)
}

func (h *Handler) handleCompileMonthly(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	_, anchor, err := decodeAnchor(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "date must be RFC3339 or YYYY-MM-DD", requestID)
		return
	}

	compiled, err := h.Compiler.CompileMonthly(r.Context(), user.UserID, anchor)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Created(w, compiled, requestID)
}

func (h *Handler) handleCompileAnnual(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	req, anchor, err := decodeAnchor(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "date must be RFC3339 or YYYY-MM-DD", requestID)
		return
	}
	year := req.Year
	if year == 0 {
		year = anchor.Year()
	}

	compiled, err := h.Compiler.CompileAnnual(r.Context(), user.UserID, year, req.Months)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Created(w, compiled, requestID)
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	id := chi.URLParam(r, "id")

	compiled, err := h.Compiler.Get(r.Context(), user, id)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}

	payload, err := export.CompiledPDF(compiled)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "pdf generation failed", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "compiled-"+id+".pdf"))
	_, _ = w.Write(payload)
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	id := chi.URLParam(r, "id")

	compiled, err := h.Compiler.Get(r.Context(), user, id)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}

	payload, err := export.CompiledXLSX(compiled)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "xlsx generation failed", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "compiled-"+id+".xlsx"))
	_, _ = w.Write(payload)
}
