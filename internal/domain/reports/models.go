package reports

import (
	"encoding/json"
	"time"
)

// Report type values. These strings are persisted and serialized
// verbatim; existing stored data depends on them.
const (
	TypeDaily   = "daily"
	TypeWeekly  = "weekly"
	TypeMonthly = "monthly"
	TypeAnnual  = "annual"
)

// Report status values.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusReviewed  = "reviewed"
	StatusLocked    = "locked"
)

type Report struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Content     json.RawMessage `json:"content"`
	Status      string          `json:"status"`
	Date        time.Time       `json:"date"`
	WeekNumber  *int            `json:"weekNumber,omitempty"`
	Month       *int            `json:"month,omitempty"`
	Year        int             `json:"year"`
	IsLocked    bool            `json:"isLocked"`
	LockedByID  *string         `json:"lockedById,omitempty"`
	LockedAt    *time.Time      `json:"lockedAt,omitempty"`
	Deadline    *time.Time      `json:"deadline,omitempty"`
	SubmittedAt *time.Time      `json:"submittedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ReportVersion is the immutable pre-edit snapshot written when a
// privileged non-owner edits a report.
type ReportVersion struct {
	ID         string          `json:"id"`
	ReportID   string          `json:"reportId"`
	Content    json.RawMessage `json:"content"`
	EditedByID string          `json:"editedById"`
	EditReason string          `json:"editReason"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ValidType reports whether t is one of the four report types.
func ValidType(t string) bool {
	switch t {
	case TypeDaily, TypeWeekly, TypeMonthly, TypeAnnual:
		return true
	}
	return false
}

// Editable statuses accepted by the overdue lock sweep.
var sweepStatuses = []string{StatusDraft, StatusSubmitted, StatusReviewed}

// CompileStatuses are the statuses a report must hold to qualify as a
// roll-up source.
var CompileStatuses = []string{StatusSubmitted, StatusReviewed, StatusLocked}
