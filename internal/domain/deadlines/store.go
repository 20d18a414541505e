package deadlines

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const deadlineColumns = `id, type, department_id, unit_id, deadline_time, day_of_week, day_of_month, is_active, created_at, updated_at`

func scanDeadline(row pgx.Row) (Deadline, error) {
	var d Deadline
	err := row.Scan(&d.ID, &d.Type, &d.DepartmentID, &d.UnitID, &d.DeadlineTime, &d.DayOfWeek, &d.DayOfMonth, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Deadline{}, ErrNotFound
	}
	if err != nil {
		return Deadline{}, fmt.Errorf("scan deadline: %w", err)
	}
	return d, nil
}

func (s *Store) CreateDeadline(ctx context.Context, d Deadline) (Deadline, error) {
	d.ID = uuid.NewString()
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	_, err := s.DB.Exec(ctx, `INSERT INTO deadlines
		(id, type, department_id, unit_id, deadline_time, day_of_week, day_of_month, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.Type, d.DepartmentID, d.UnitID, d.DeadlineTime, d.DayOfWeek, d.DayOfMonth, d.IsActive, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return Deadline{}, fmt.Errorf("insert deadline: %w", err)
	}
	return d, nil
}

func (s *Store) GetDeadline(ctx context.Context, id string) (Deadline, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+deadlineColumns+` FROM deadlines WHERE id = $1`, id)
	return scanDeadline(row)
}

func (s *Store) UpdateDeadline(ctx context.Context, d Deadline) (Deadline, error) {
	d.UpdatedAt = time.Now().UTC()
	tag, err := s.DB.Exec(ctx, `UPDATE deadlines SET
		deadline_time = $1, day_of_week = $2, day_of_month = $3, is_active = $4, updated_at = $5
		WHERE id = $6`,
		d.DeadlineTime, d.DayOfWeek, d.DayOfMonth, d.IsActive, d.UpdatedAt, d.ID)
	if err != nil {
		return Deadline{}, fmt.Errorf("update deadline: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Deadline{}, ErrNotFound
	}
	return d, nil
}

func (s *Store) DeleteDeadline(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM deadlines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deadline: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListDeadlines(ctx context.Context, filters ListFilters) ([]Deadline, error) {
	query := `SELECT ` + deadlineColumns + ` FROM deadlines WHERE 1=1`
	var args []any
	add := func(clause string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(clause, len(args))
	}
	if filters.Type != "" {
		add(` AND type = $%d`, filters.Type)
	}
	if filters.DepartmentID != "" {
		add(` AND department_id = $%d`, filters.DepartmentID)
	}
	if filters.UnitID != "" {
		add(` AND unit_id = $%d`, filters.UnitID)
	}
	if filters.ActiveOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deadlines: %w", err)
	}
	defer rows.Close()
	return collectDeadlines(rows)
}

func (s *Store) ActiveRules(ctx context.Context, reportType string) ([]Deadline, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+deadlineColumns+` FROM deadlines
		WHERE type = $1 AND is_active = TRUE ORDER BY created_at DESC`, reportType)
	if err != nil {
		return nil, fmt.Errorf("load active deadlines: %w", err)
	}
	defer rows.Close()
	return collectDeadlines(rows)
}

func (s *Store) UserScope(ctx context.Context, userID string) (*string, *string, error) {
	var departmentID, unitID *string
	err := s.DB.QueryRow(ctx, `SELECT department_id, unit_id FROM users WHERE id = $1`, userID).
		Scan(&departmentID, &unitID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load user scope: %w", err)
	}
	return departmentID, unitID, nil
}

func collectDeadlines(rows pgx.Rows) ([]Deadline, error) {
	var out []Deadline
	for rows.Next() {
		var d Deadline
		if err := rows.Scan(&d.ID, &d.Type, &d.DepartmentID, &d.UnitID, &d.DeadlineTime, &d.DayOfWeek, &d.DayOfMonth, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deadline: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
