package shared

import (
	"errors"
	"net/http"

	"reportdesk/internal/domain/comments"
	"reportdesk/internal/domain/compile"
	"reportdesk/internal/domain/deadlines"
	"reportdesk/internal/domain/notifications"
	"reportdesk/internal/domain/reports"
	"reportdesk/internal/domain/users"
	"reportdesk/internal/transport/http/api"
)

// WriteDomainError maps domain sentinel errors to HTTP responses.
// Unknown errors become an opaque 500.
func WriteDomainError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, reports.ErrNotFound),
		errors.Is(err, compile.ErrNotFound),
		errors.Is(err, deadlines.ErrNotFound),
		errors.Is(err, notifications.ErrNotFound),
		errors.Is(err, comments.ErrNotFound),
		errors.Is(err, comments.ErrReportMissing),
		errors.Is(err, users.ErrNotFound),
		errors.Is(err, users.ErrDepartmentNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)

	case errors.Is(err, reports.ErrLocked):
		api.Fail(w, http.StatusForbidden, "report_locked", "report is locked", requestID)

	case errors.Is(err, reports.ErrNotOwner),
		errors.Is(err, reports.ErrRoleDenied),
		errors.Is(err, compile.ErrForbidden),
		errors.Is(err, comments.ErrNotAuthor),
		errors.Is(err, users.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), requestID)

	case errors.Is(err, reports.ErrDuplicateDaily):
		api.Fail(w, http.StatusConflict, "duplicate_daily", err.Error(), requestID)

	case errors.Is(err, users.ErrEmailTaken):
		api.Fail(w, http.StatusConflict, "email_taken", err.Error(), requestID)

	case errors.Is(err, compile.ErrNoSources):
		api.Fail(w, http.StatusBadRequest, "no_source_reports", err.Error(), requestID)

	case errors.Is(err, reports.ErrNotDraft),
		errors.Is(err, reports.ErrInvalidType),
		errors.Is(err, deadlines.ErrInvalidRule),
		errors.Is(err, comments.ErrEmptyContent),
		errors.Is(err, comments.ErrNestedReply),
		errors.Is(err, users.ErrInvalidRole),
		errors.Is(err, users.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "bad_request", err.Error(), requestID)

	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", requestID)
	}
}
