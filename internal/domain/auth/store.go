package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type User struct {
	ID           string
	Email        string
	Name         string
	Role         string
	DepartmentID *string
	UnitID       *string
	PasswordHash string
	IsActive     bool
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (User, error) {
	var out User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, name, role, department_id, unit_id, password_hash, is_active
    FROM users
    WHERE email = $1 AND is_active = true
  `, email).Scan(&out.ID, &out.Email, &out.Name, &out.Role, &out.DepartmentID, &out.UnitID, &out.PasswordHash, &out.IsActive)
	if err != nil {
		return User{}, err
	}
	return out, nil
}
