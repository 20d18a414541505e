package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const reportColumns = `
    id, user_id, type, title, content, status, date, week_number, month, year,
    is_locked, locked_by_id, locked_at, deadline, submitted_at, created_at, updated_at`

func scanReport(row pgx.Row) (Report, error) {
	var r Report
	err := row.Scan(
		&r.ID, &r.UserID, &r.Type, &r.Title, &r.Content, &r.Status, &r.Date,
		&r.WeekNumber, &r.Month, &r.Year, &r.IsLocked, &r.LockedByID,
		&r.LockedAt, &r.Deadline, &r.SubmittedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Report{}, ErrNotFound
	}
	if err != nil {
		return Report{}, err
	}
	return r, nil
}

func (s *Store) CreateReport(ctx context.Context, report Report) (Report, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO reports (user_id, type, title, content, status, date, week_number, month, year, deadline)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING`+reportColumns,
		report.UserID, report.Type, report.Title, report.Content, report.Status,
		report.Date, report.WeekNumber, report.Month, report.Year, report.Deadline)
	return scanReport(row)
}

func (s *Store) GetReport(ctx context.Context, id string) (Report, error) {
	row := s.DB.QueryRow(ctx, `SELECT`+reportColumns+` FROM reports WHERE id = $1`, id)
	return scanReport(row)
}

func (s *Store) DailyReportExists(ctx context.Context, userID string, dayStart, dayEnd time.Time) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM reports
    WHERE user_id = $1 AND type = $2 AND date >= $3 AND date <= $4
  `, userID, TypeDaily, dayStart, dayEnd).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) UpdateReport(ctx context.Context, id, title string, content json.RawMessage) (Report, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE reports
    SET title = $1, content = $2, updated_at = now()
    WHERE id = $3
    RETURNING`+reportColumns, title, content, id)
	return scanReport(row)
}

func (s *Store) UpdateReportWithVersion(ctx context.Context, id, title string, content json.RawMessage, version ReportVersion) (Report, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Report{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO report_versions (report_id, content, edited_by_id, edit_reason)
    VALUES ($1,$2,$3,$4)
  `, version.ReportID, version.Content, version.EditedByID, version.EditReason); err != nil {
		return Report{}, err
	}

	row := tx.QueryRow(ctx, `
    UPDATE reports
    SET title = $1, content = $2, updated_at = now()
    WHERE id = $3
    RETURNING`+reportColumns, title, content, id)
	updated, err := scanReport(row)
	if err != nil {
		return Report{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Report{}, err
	}
	return updated, nil
}

func (s *Store) MarkSubmitted(ctx context.Context, id string, at time.Time) (Report, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE reports
    SET status = $1, submitted_at = $2, updated_at = now()
    WHERE id = $3
    RETURNING`+reportColumns, StatusSubmitted, at, id)
	return scanReport(row)
}

func (s *Store) MarkLocked(ctx context.Context, id, lockedByID string, at time.Time) (Report, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE reports
    SET is_locked = true, status = $1, locked_by_id = $2, locked_at = $3, updated_at = now()
    WHERE id = $4
    RETURNING`+reportColumns, StatusLocked, lockedByID, at, id)
	return scanReport(row)
}

func (s *Store) ClearLock(ctx context.Context, id string) (Report, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE reports
    SET is_locked = false, status = $1, locked_by_id = NULL, locked_at = NULL, updated_at = now()
    WHERE id = $2
    RETURNING`+reportColumns, StatusSubmitted, id)
	return scanReport(row)
}

func (s *Store) DeleteReport(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM reports WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func buildListQuery(filters ListFilters) (countQuery, listQuery string, countArgs, listArgs []any) {
	where := " WHERE 1=1"
	args := []any{}

	add := func(clause string, value any) {
		args = append(args, value)
		where += fmt.Sprintf(clause, len(args))
	}

	if filters.UserID != "" {
		add(" AND r.user_id = $%d", filters.UserID)
	}
	if filters.DepartmentID != "" {
		add(" AND r.user_id IN (SELECT id FROM users WHERE department_id = $%d)", filters.DepartmentID)
	}
	if filters.Type != "" {
		add(" AND r.type = $%d", filters.Type)
	}
	if filters.Status != "" {
		add(" AND r.status = $%d", filters.Status)
	}
	if !filters.StartDate.IsZero() {
		add(" AND r.date >= $%d", filters.StartDate)
	}
	if !filters.EndDate.IsZero() {
		add(" AND r.date <= $%d", filters.EndDate)
	}

	countQuery = "SELECT COUNT(1) FROM reports r" + where
	countArgs = args

	listQuery = "SELECT" + reportColumns + " FROM reports r" + where + " ORDER BY r.date DESC, r.created_at DESC"
	listArgs = args
	// Limit 0 means unpaginated, used by the spreadsheet export.
	if filters.Limit > 0 {
		listArgs = append(listArgs, filters.Limit, filters.Offset)
		listQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(listArgs)-1, len(listArgs))
	}
	return countQuery, listQuery, countArgs, listArgs
}

func (s *Store) ListReports(ctx context.Context, filters ListFilters) ([]Report, int, error) {
	countQuery, listQuery, countArgs, listArgs := buildListQuery(filters)

	var total int
	if err := s.DB.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.DB.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

func (s *Store) ListVersions(ctx context.Context, reportID string) ([]ReportVersion, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, report_id, content, edited_by_id, edit_reason, created_at
    FROM report_versions
    WHERE report_id = $1
    ORDER BY created_at DESC
  `, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReportVersion
	for rows.Next() {
		var v ReportVersion
		if err := rows.Scan(&v.ID, &v.ReportID, &v.Content, &v.EditedByID, &v.EditReason, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) FindDailyReport(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*Report, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+reportColumns+`
    FROM reports
    WHERE user_id = $1 AND type = $2 AND date >= $3 AND date <= $4
    LIMIT 1
  `, userID, TypeDaily, dayStart, dayEnd)
	report, err := scanReport(row)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Store) UserDepartmentID(ctx context.Context, userID string) (string, error) {
	var departmentID *string
	if err := s.DB.QueryRow(ctx, "SELECT department_id FROM users WHERE id = $1", userID).Scan(&departmentID); err != nil {
		return "", err
	}
	if departmentID == nil {
		return "", nil
	}
	return *departmentID, nil
}

func (s *Store) ListOverdue(ctx context.Context, now time.Time) ([]Report, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+reportColumns+`
    FROM reports
    WHERE status = ANY($1) AND is_locked = false AND deadline IS NOT NULL AND deadline < $2
  `, sweepStatuses, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) AutoLock(ctx context.Context, id string, at time.Time) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE reports
    SET is_locked = true, status = $1, locked_at = $2, updated_at = now()
    WHERE id = $3
  `, StatusLocked, at, id)
	return err
}

// OwnerAndDate supports the comments feedback notification.
func (s *Store) OwnerAndDate(ctx context.Context, reportID string) (string, time.Time, error) {
	var ownerID string
	var date time.Time
	err := s.DB.QueryRow(ctx, "SELECT user_id, date FROM reports WHERE id = $1", reportID).Scan(&ownerID, &date)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", time.Time{}, ErrNotFound
	}
	if err != nil {
		return "", time.Time{}, err
	}
	return ownerID, date, nil
}
