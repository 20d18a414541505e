package reports

import (
	"context"
	"encoding/json"
	"time"
)

type ListFilters struct {
	UserID       string
	DepartmentID string
	Type         string
	Status       string
	StartDate    time.Time
	EndDate      time.Time
	Limit        int
	Offset       int
}

type StoreAPI interface {
	CreateReport(ctx context.Context, report Report) (Report, error)
	GetReport(ctx context.Context, id string) (Report, error)
	DailyReportExists(ctx context.Context, userID string, dayStart, dayEnd time.Time) (bool, error)
	UpdateReport(ctx context.Context, id, title string, content json.RawMessage) (Report, error)
	// UpdateReportWithVersion persists the snapshot and the update in
	// one transaction.
	UpdateReportWithVersion(ctx context.Context, id, title string, content json.RawMessage, version ReportVersion) (Report, error)
	MarkSubmitted(ctx context.Context, id string, at time.Time) (Report, error)
	MarkLocked(ctx context.Context, id, lockedByID string, at time.Time) (Report, error)
	ClearLock(ctx context.Context, id string) (Report, error)
	DeleteReport(ctx context.Context, id string) error
	ListReports(ctx context.Context, filters ListFilters) ([]Report, int, error)
	ListVersions(ctx context.Context, reportID string) ([]ReportVersion, error)
	FindDailyReport(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*Report, error)
	UserDepartmentID(ctx context.Context, userID string) (string, error)
	// ListOverdue returns unlocked reports in sweepable statuses whose
	// deadline is before now.
	ListOverdue(ctx context.Context, now time.Time) ([]Report, error)
	// AutoLock locks a report without an acting user, the deadline
	// sweep path.
	AutoLock(ctx context.Context, id string, at time.Time) error
}

// Notifier is the side channel invoked on status-changing operations.
type Notifier interface {
	ReportLocked(ctx context.Context, ownerID, reportID string, date time.Time) error
	ReportUnlocked(ctx context.Context, ownerID, reportID string, date time.Time) error
}

// DeadlineResolver stamps new reports with their next applicable
// deadline instant.
type DeadlineResolver interface {
	NextForUser(ctx context.Context, userID, reportType string, now time.Time) (*time.Time, error)
}
