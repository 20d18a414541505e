package usershandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reportdesk/internal/domain/auth"
	"reportdesk/internal/domain/reports"
	"reportdesk/internal/domain/users"
	"reportdesk/internal/transport/http/api"
	"reportdesk/internal/transport/http/middleware"
	"reportdesk/internal/transport/http/shared"
)

type Handler struct {
	Users   *users.Service
	Reports *reports.Service
}

func NewHandler(usersSvc *users.Service, reportsSvc *reports.Service) *Handler {
	return &Handler{Users: usersSvc, Reports: reportsSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireRole(auth.RoleHR)).Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{id}", h.handleDeactivate)
		r.Get("/{id}/reports", h.handleUserReports)
	})

	r.Route("/departments", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleListDepartments)
		r.Get("/{id}/units", h.handleListUnits)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleHR))
			r.Post("/", h.handleCreateDepartment)
			r.Put("/{id}", h.handleUpdateDepartment)
			r.Delete("/{id}", h.handleDeleteDepartment)
			r.Post("/{id}/units", h.handleCreateUnit)
		})
	})
}

type createUserRequest struct {
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	DepartmentID *string `json:"departmentId"`
	UnitID       *string `json:"unitId"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", requestID)
		return
	}

	created, err := h.Users.Create(r.Context(), user, users.CreateInput{
		Email:        req.Email,
		Name:         req.Name,
		Password:     req.Password,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		UnitID:       req.UnitID,
	})
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	page := shared.ParsePagination(r)

	list, total, err := h.Users.List(r.Context(), users.ListFilters{
		DepartmentID: query.Get("departmentId"),
		Role:         query.Get("role"),
		Search:       query.Get("search"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.SuccessPage(w, list, api.Meta{Total: total, Limit: page.Limit, Offset: page.Offset}, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	found, err := h.Users.Get(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, found, requestID)
}

type updateUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	Role         *string `json:"role"`
	IsActive     *bool   `json:"isActive"`
	DepartmentID *string `json:"departmentId"`
	UnitID       *string `json:"unitId"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", requestID)
		return
	}

	updated, err := h.Users.Update(r.Context(), user, chi.URLParam(r, "id"), users.UpdateInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		IsActive:     req.IsActive,
		DepartmentID: req.DepartmentID,
		UnitID:       req.UnitID,
	})
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	if err := h.Users.Deactivate(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]bool{"deactivated": true}, requestID)
}

// handleUserReports lists one user's reports with the usual filters.
func (h *Handler) handleUserReports(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	id := chi.URLParam(r, "id")

	if user.Role == auth.RoleStaff && user.UserID != id {
		shared.WriteDomainError(w, users.ErrForbidden, requestID)
		return
	}

	query := r.URL.Query()
	page := shared.ParsePagination(r)
	startDate, err := shared.ParseDate(query.Get("startDate"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "startDate must be RFC3339 or YYYY-MM-DD", requestID)
		return
	}
	endDate, err := shared.ParseDate(query.Get("endDate"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "endDate must be RFC3339 or YYYY-MM-DD", requestID)
		return
	}

	list, total, err := h.Reports.List(r.Context(), user, reports.ListFilters{
		UserID:    id,
		Type:      query.Get("type"),
		Status:    query.Get("status"),
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.SuccessPage(w, list, api.Meta{Total: total, Limit: page.Limit, Offset: page.Offset}, requestID)
}

type departmentRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", requestID)
		return
	}

	department, err := h.Users.CreateDepartment(r.Context(), users.DepartmentInput{Name: req.Name, Description: req.Description})
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Created(w, department, requestID)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", requestID)
		return
	}

	department, err := h.Users.UpdateDepartment(r.Context(), chi.URLParam(r, "id"), users.DepartmentInput{Name: req.Name, Description: req.Description})
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, department, requestID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.Users.DeleteDepartment(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	list, err := h.Users.ListDepartments(r.Context())
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, list, requestID)
}

type unitRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreateUnit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req unitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", requestID)
		return
	}

	unit, err := h.Users.CreateUnit(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Created(w, unit, requestID)
}

func (h *Handler) handleListUnits(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	list, err := h.Users.ListUnits(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteDomainError(w, err, requestID)
		return
	}
	api.Success(w, list, requestID)
}
