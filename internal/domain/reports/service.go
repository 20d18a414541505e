package reports

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"reportdesk/internal/domain/auth"
)

// DefaultEditReason tags privileged edits when the editor supplies no
// reason of their own.
const DefaultEditReason = "Edited by HR/HOD"

type Service struct {
	store     StoreAPI
	notifier  Notifier
	deadlines DeadlineResolver
	Now       func() time.Time
}

func NewService(store StoreAPI, notifier Notifier, deadlines DeadlineResolver) *Service {
	return &Service{store: store, notifier: notifier, deadlines: deadlines, Now: time.Now}
}

type CreateInput struct {
	Type       string
	Title      string
	Content    json.RawMessage
	Date       time.Time
	WeekNumber *int
	Month      *int
	Year       int
}

func (s *Service) Create(ctx context.Context, actor auth.UserContext, in CreateInput) (Report, error) {
	if !ValidType(in.Type) {
		return Report{}, ErrInvalidType
	}

	if in.Type == TypeDaily {
		dayStart, dayEnd := DayBounds(in.Date)
		exists, err := s.store.DailyReportExists(ctx, actor.UserID, dayStart, dayEnd)
		if err != nil {
			return Report{}, err
		}
		if exists {
			return Report{}, ErrDuplicateDaily
		}
	}

	title := in.Title
	if title == "" {
		title = GenerateTitle(in.Type, in.Date)
	}

	content := in.Content
	if len(content) == 0 {
		content = json.RawMessage("{}")
	}

	weekNumber := in.WeekNumber
	if weekNumber == nil && in.Type == TypeWeekly {
		week := ISOWeekNumber(in.Date)
		weekNumber = &week
	}
	month := in.Month
	if month == nil && (in.Type == TypeMonthly || in.Type == TypeAnnual) {
		m := int(in.Date.Month())
		month = &m
	}
	year := in.Year
	if year == 0 {
		year = in.Date.Year()
	}

	report := Report{
		UserID:     actor.UserID,
		Type:       in.Type,
		Title:      title,
		Content:    content,
		Status:     StatusDraft,
		Date:       in.Date,
		WeekNumber: weekNumber,
		Month:      month,
		Year:       year,
		Deadline:   s.nextDeadline(ctx, actor.UserID, in.Type),
	}
	return s.store.CreateReport(ctx, report)
}

// nextDeadline stamping is best effort; a missing or failing rule
// lookup never blocks report creation.
func (s *Service) nextDeadline(ctx context.Context, userID, reportType string) *time.Time {
	if s.deadlines == nil || reportType == TypeAnnual {
		return nil
	}
	next, err := s.deadlines.NextForUser(ctx, userID, reportType, s.Now())
	if err != nil {
		slog.Warn("deadline resolution failed", "userId", userID, "type", reportType, "err", err)
		return nil
	}
	return next
}

type UpdateInput struct {
	Title      string
	Content    json.RawMessage
	EditReason string
}

func (s *Service) Update(ctx context.Context, actor auth.UserContext, id string, in UpdateInput) (Report, error) {
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return Report{}, err
	}
	if report.IsLocked {
		return Report{}, ErrLocked
	}

	isOwner := report.UserID == actor.UserID
	if !isOwner && !auth.AtLeast(actor.Role, auth.RoleHOD) {
		return Report{}, ErrNotOwner
	}

	title := in.Title
	if title == "" {
		title = report.Title
	}
	content := in.Content
	if content == nil {
		content = report.Content
	}

	if isOwner {
		return s.store.UpdateReport(ctx, id, title, content)
	}

	reason := in.EditReason
	if reason == "" {
		reason = DefaultEditReason
	}
	version := ReportVersion{
		ReportID:   report.ID,
		Content:    report.Content,
		EditedByID: actor.UserID,
		EditReason: reason,
	}
	return s.store.UpdateReportWithVersion(ctx, id, title, content, version)
}

func (s *Service) Submit(ctx context.Context, actor auth.UserContext, id string) (Report, error) {
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return Report{}, err
	}
	if report.UserID != actor.UserID {
		return Report{}, ErrNotOwner
	}
	if report.IsLocked {
		return Report{}, ErrLocked
	}
	// Re-submission is allowed and always refreshes submittedAt.
	return s.store.MarkSubmitted(ctx, id, s.Now())
}

func (s *Service) Lock(ctx context.Context, actor auth.UserContext, id string) (Report, error) {
	if !auth.AtLeast(actor.Role, auth.RoleHR) {
		return Report{}, ErrRoleDenied
	}
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return Report{}, err
	}
	locked, err := s.store.MarkLocked(ctx, id, actor.UserID, s.Now())
	if err != nil {
		return Report{}, err
	}
	if s.notifier != nil {
		if err := s.notifier.ReportLocked(ctx, report.UserID, report.ID, report.Date); err != nil {
			slog.Warn("lock notification failed", "reportId", report.ID, "err", err)
		}
	}
	return locked, nil
}

func (s *Service) Unlock(ctx context.Context, actor auth.UserContext, id string) (Report, error) {
	if !auth.AtLeast(actor.Role, auth.RoleHR) {
		return Report{}, ErrRoleDenied
	}
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return Report{}, err
	}
	unlocked, err := s.store.ClearLock(ctx, id)
	if err != nil {
		return Report{}, err
	}
	if s.notifier != nil {
		if err := s.notifier.ReportUnlocked(ctx, report.UserID, report.ID, report.Date); err != nil {
			slog.Warn("unlock notification failed", "reportId", report.ID, "err", err)
		}
	}
	return unlocked, nil
}

func (s *Service) Delete(ctx context.Context, actor auth.UserContext, id string) error {
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return err
	}
	if report.UserID != actor.UserID {
		return ErrNotOwner
	}
	if report.Status != StatusDraft {
		return ErrNotDraft
	}
	return s.store.DeleteReport(ctx, id)
}

func (s *Service) Get(ctx context.Context, actor auth.UserContext, id string) (Report, error) {
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return Report{}, err
	}
	if actor.Role == auth.RoleStaff && report.UserID != actor.UserID {
		return Report{}, ErrNotOwner
	}
	return report, nil
}

// List applies role scoping before the store filter: staff see only
// their own reports, HODs their department, HR and admins everything.
func (s *Service) List(ctx context.Context, actor auth.UserContext, filters ListFilters) ([]Report, int, error) {
	switch actor.Role {
	case auth.RoleStaff:
		filters.UserID = actor.UserID
	case auth.RoleHOD:
		if filters.DepartmentID == "" {
			departmentID, err := s.store.UserDepartmentID(ctx, actor.UserID)
			if err != nil {
				slog.Warn("department lookup failed", "userId", actor.UserID, "err", err)
			}
			filters.DepartmentID = departmentID
		}
	}
	return s.store.ListReports(ctx, filters)
}

// Versions is reserved for reviewers; owners see only the current
// content of their report.
func (s *Service) Versions(ctx context.Context, actor auth.UserContext, id string) ([]ReportVersion, error) {
	if !auth.AtLeast(actor.Role, auth.RoleHOD) {
		return nil, ErrRoleDenied
	}
	if _, err := s.store.GetReport(ctx, id); err != nil {
		return nil, err
	}
	return s.store.ListVersions(ctx, id)
}

func (s *Service) Today(ctx context.Context, actor auth.UserContext) (*Report, error) {
	dayStart, dayEnd := DayBounds(s.Now())
	return s.store.FindDailyReport(ctx, actor.UserID, dayStart, dayEnd)
}
