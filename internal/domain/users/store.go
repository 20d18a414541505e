package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const userColumns = `
    id, email, name, role, department_id, unit_id, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.DepartmentID, &u.UnitID,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u User, passwordHash string) (User, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, name, role, department_id, unit_id, is_active)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING`+userColumns,
		u.Email, passwordHash, u.Name, u.Role, u.DepartmentID, u.UnitID, u.IsActive)
	return scanUser(row)
}

func (s *Store) GetUser(ctx context.Context, id string) (User, error) {
	row := s.DB.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *Store) UpdateUser(ctx context.Context, u User) (User, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE users
    SET email = $1, name = $2, role = $3, department_id = $4, unit_id = $5,
        is_active = $6, updated_at = now()
    WHERE id = $7
    RETURNING`+userColumns,
		u.Email, u.Name, u.Role, u.DepartmentID, u.UnitID, u.IsActive, u.ID)
	return scanUser(row)
}

func (s *Store) SetPassword(ctx context.Context, id, passwordHash string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2
  `, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Deactivate(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE users SET is_active = false, updated_at = now() WHERE id = $1
  `, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	return exists, err
}

func (s *Store) ListUsers(ctx context.Context, filters ListFilters) ([]User, int, error) {
	where := " WHERE 1=1"
	args := []any{}

	add := func(clause string, value any) {
		args = append(args, value)
		where += fmt.Sprintf(clause, len(args))
	}

	if filters.DepartmentID != "" {
		add(" AND department_id = $%d", filters.DepartmentID)
	}
	if filters.Role != "" {
		add(" AND role = $%d", filters.Role)
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d)", n, n)
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + userColumns + " FROM users" + where + " ORDER BY created_at DESC"
	if filters.Limit > 0 {
		args = append(args, filters.Limit, filters.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, d Department) (Department, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, description)
    VALUES ($1,$2)
    RETURNING id, name, description, created_at
  `, d.Name, d.Description)
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
		return Department{}, err
	}
	return d, nil
}

func (s *Store) GetDepartment(ctx context.Context, id string) (Department, error) {
	var d Department
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, description, created_at FROM departments WHERE id = $1
  `, id).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, ErrDepartmentNotFound
	}
	if err != nil {
		return Department{}, err
	}
	return d, nil
}

func (s *Store) UpdateDepartment(ctx context.Context, d Department) (Department, error) {
	err := s.DB.QueryRow(ctx, `
    UPDATE departments SET name = $1, description = $2 WHERE id = $3
    RETURNING id, name, description, created_at
  `, d.Name, d.Description, d.ID).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, ErrDepartmentNotFound
	}
	if err != nil {
		return Department{}, err
	}
	return d, nil
}

func (s *Store) DeleteDepartment(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, description, created_at FROM departments ORDER BY name ASC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	index := map[string]int{}
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Units = []Unit{}
		index[d.ID] = len(out)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	unitRows, err := s.DB.Query(ctx, `
    SELECT id, department_id, name, created_at FROM units ORDER BY name ASC
  `)
	if err != nil {
		return nil, err
	}
	defer unitRows.Close()

	for unitRows.Next() {
		var u Unit
		if err := unitRows.Scan(&u.ID, &u.DepartmentID, &u.Name, &u.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[u.DepartmentID]; ok {
			out[i].Units = append(out[i].Units, u)
		}
	}
	return out, unitRows.Err()
}

func (s *Store) CreateUnit(ctx context.Context, u Unit) (Unit, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO units (department_id, name)
    VALUES ($1,$2)
    RETURNING id, department_id, name, created_at
  `, u.DepartmentID, u.Name)
	if err := row.Scan(&u.ID, &u.DepartmentID, &u.Name, &u.CreatedAt); err != nil {
		return Unit{}, err
	}
	return u, nil
}

func (s *Store) ListUnits(ctx context.Context, departmentID string) ([]Unit, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, department_id, name, created_at FROM units
    WHERE department_id = $1 ORDER BY name ASC
  `, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.ID, &u.DepartmentID, &u.Name, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
