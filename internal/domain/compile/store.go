package compile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reportdesk/internal/domain/reports"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const compiledColumns = `id, user_id, type, title, content, date_range_start, date_range_end, included_reports, status, created_at, updated_at`

func scanCompiled(row pgx.Row) (CompiledReport, error) {
	var c CompiledReport
	err := row.Scan(&c.ID, &c.UserID, &c.Type, &c.Title, &c.Content, &c.DateRangeStart, &c.DateRangeEnd, &c.IncludedReports, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return CompiledReport{}, ErrNotFound
	}
	if err != nil {
		return CompiledReport{}, fmt.Errorf("scan compiled report: %w", err)
	}
	return c, nil
}

func (s *Store) DailySources(ctx context.Context, userID string, start, end time.Time) ([]SourceReport, error) {
	query := `SELECT id, user_id, content, date FROM reports
		WHERE type = 'daily' AND status = ANY($1) AND date >= $2 AND date <= $3`
	args := []any{reports.CompileStatuses, start, end}
	if userID != "" {
		query += ` AND user_id = $4`
		args = append(args, userID)
	}
	query += ` ORDER BY date ASC`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load daily sources: %w", err)
	}
	defer rows.Close()

	var out []SourceReport
	for rows.Next() {
		var src SourceReport
		if err := rows.Scan(&src.ID, &src.UserID, &src.Content, &src.Date); err != nil {
			return nil, fmt.Errorf("scan daily source: %w", err)
		}
		out = append(out, src)
	}
	return out, rows.Err()
}

func (s *Store) WeeklyCompiledInRange(ctx context.Context, userID string, start, end time.Time, statusFilter string) ([]CompiledReport, error) {
	query := `SELECT ` + compiledColumns + ` FROM compiled_reports
		WHERE type = 'weekly' AND date_range_start >= $1 AND date_range_end <= $2`
	args := []any{start, end}
	if userID != "" {
		args = append(args, userID)
		query += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	if statusFilter != "" {
		args = append(args, statusFilter)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY date_range_start ASC`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load weekly compiled: %w", err)
	}
	defer rows.Close()
	return collectCompiled(rows)
}

func (s *Store) MonthlyCompiledInYear(ctx context.Context, userID string, year int, months []int) ([]CompiledReport, error) {
	query := `SELECT ` + compiledColumns + ` FROM compiled_reports
		WHERE type = 'monthly' AND EXTRACT(YEAR FROM date_range_start) = $1`
	args := []any{year}
	if userID != "" {
		args = append(args, userID)
		query += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	if len(months) > 0 {
		args = append(args, months)
		query += fmt.Sprintf(` AND EXTRACT(MONTH FROM date_range_start) = ANY($%d)`, len(args))
	}
	query += ` ORDER BY date_range_start ASC`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load monthly compiled: %w", err)
	}
	defer rows.Close()
	return collectCompiled(rows)
}

func (s *Store) CreateCompiled(ctx context.Context, c CompiledReport) (CompiledReport, error) {
	c.ID = uuid.NewString()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := s.DB.Exec(ctx, `INSERT INTO compiled_reports
		(id, user_id, type, title, content, date_range_start, date_range_end, included_reports, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.UserID, c.Type, c.Title, c.Content, c.DateRangeStart, c.DateRangeEnd, c.IncludedReports, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return CompiledReport{}, fmt.Errorf("insert compiled report: %w", err)
	}
	return c, nil
}

func (s *Store) GetCompiled(ctx context.Context, id string) (CompiledReport, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+compiledColumns+` FROM compiled_reports WHERE id = $1`, id)
	return scanCompiled(row)
}

func (s *Store) ListCompiled(ctx context.Context, filters ListFilters) ([]CompiledReport, int, error) {
	where := ` WHERE 1=1`
	var args []any
	add := func(clause string, value any) {
		args = append(args, value)
		where += fmt.Sprintf(clause, len(args))
	}
	if filters.UserID != "" {
		add(` AND c.user_id = $%d`, filters.UserID)
	}
	if filters.DepartmentID != "" {
		add(` AND u.department_id = $%d`, filters.DepartmentID)
	}
	if filters.Type != "" {
		add(` AND c.type = $%d`, filters.Type)
	}
	if filters.Status != "" {
		add(` AND c.status = $%d`, filters.Status)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM compiled_reports c JOIN users u ON u.id = c.user_id` + where
	if err := s.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count compiled reports: %w", err)
	}

	query := `SELECT ` + prefixedCompiledColumns() + ` FROM compiled_reports c JOIN users u ON u.id = c.user_id` + where +
		` ORDER BY c.created_at DESC`
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
		args = append(args, filters.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list compiled reports: %w", err)
	}
	defer rows.Close()

	out, err := collectCompiled(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Store) UserDepartmentID(ctx context.Context, userID string) (string, error) {
	var departmentID *string
	err := s.DB.QueryRow(ctx, `SELECT department_id FROM users WHERE id = $1`, userID).Scan(&departmentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load user department: %w", err)
	}
	if departmentID == nil {
		return "", nil
	}
	return *departmentID, nil
}

func prefixedCompiledColumns() string {
	return `c.id, c.user_id, c.type, c.title, c.content, c.date_range_start, c.date_range_end, c.included_reports, c.status, c.created_at, c.updated_at`
}

func collectCompiled(rows pgx.Rows) ([]CompiledReport, error) {
	var out []CompiledReport
	for rows.Next() {
		var c CompiledReport
		if err := rows.Scan(&c.ID, &c.UserID, &c.Type, &c.Title, &c.Content, &c.DateRangeStart, &c.DateRangeEnd, &c.IncludedReports, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan compiled report: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
