package users

import "context"

type StoreAPI interface {
	CreateUser(ctx context.Context, u User, passwordHash string) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	UpdateUser(ctx context.Context, u User) (User, error)
	SetPassword(ctx context.Context, id, passwordHash string) error
	Deactivate(ctx context.Context, id string) error
	ListUsers(ctx context.Context, filters ListFilters) ([]User, int, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	CreateDepartment(ctx context.Context, d Department) (Department, error)
	UpdateDepartment(ctx context.Context, d Department) (Department, error)
	DeleteDepartment(ctx context.Context, id string) error
	GetDepartment(ctx context.Context, id string) (Department, error)
	ListDepartments(ctx context.Context) ([]Department, error)
	CreateUnit(ctx context.Context, u Unit) (Unit, error)
	ListUnits(ctx context.Context, departmentID string) ([]Unit, error)
}
