package users

import (
	"context"
	"fmt"
	"strings"

	"reportdesk/internal/domain/auth"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

type CreateInput struct {
	Email        string
	Name         string
	Password     string
	Role         string
	DepartmentID *string
	UnitID       *string
}

// Create adds a directory record. Only HR and admins reach this path;
// staff accounts are never self-registered.
func (s *Service) Create(ctx context.Context, actor auth.UserContext, in CreateInput) (User, error) {
	if !auth.AtLeast(actor.Role, auth.RoleHR) {
		return User{}, ErrForbidden
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return User{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = auth.RoleStaff
	}
	if !auth.ValidRole(role) {
		return User{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	taken, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return User{}, err
	}
	if taken {
		return User{}, ErrEmailTaken
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}
	return s.store.CreateUser(ctx, User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		DepartmentID: in.DepartmentID,
		UnitID:       in.UnitID,
		IsActive:     true,
	}, hash)
}

func (s *Service) Get(ctx context.Context, actor auth.UserContext, id string) (User, error) {
	if actor.Role == auth.RoleStaff && actor.UserID != id {
		return User{}, ErrForbidden
	}
	return s.store.GetUser(ctx, id)
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]User, int, error) {
	return s.store.ListUsers(ctx, filters)
}

type UpdateInput struct {
	Name         *string
	Email        *string
	Password     *string
	Role         *string
	IsActive     *bool
	DepartmentID *string
	UnitID       *string
}

// Update lets anyone edit their own name, email and password. Role,
// activation and org placement only move under an HR or admin hand;
// for other editors those fields are dropped, not rejected.
func (s *Service) Update(ctx context.Context, actor auth.UserContext, id string, in UpdateInput) (User, error) {
	if actor.Role == auth.RoleStaff && actor.UserID != id {
		return User{}, ErrForbidden
	}
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != "" && email != user.Email {
			taken, err := s.store.EmailExists(ctx, email)
			if err != nil {
				return User{}, err
			}
			if taken {
				return User{}, ErrEmailTaken
			}
			user.Email = email
		}
	}

	if auth.AtLeast(actor.Role, auth.RoleHR) {
		if in.Role != nil {
			if !auth.ValidRole(*in.Role) {
				return User{}, fmt.Errorf("%w: %q", ErrInvalidRole, *in.Role)
			}
			user.Role = *in.Role
		}
		if in.IsActive != nil {
			user.IsActive = *in.IsActive
		}
		if in.DepartmentID != nil {
			user.DepartmentID = in.DepartmentID
		}
		if in.UnitID != nil {
			user.UnitID = in.UnitID
		}
	}

	updated, err := s.store.UpdateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return User{}, err
		}
		if err := s.store.SetPassword(ctx, id, hash); err != nil {
			return User{}, err
		}
	}
	return updated, nil
}

// Deactivate soft-deletes; the account keeps its reports and drops out
// of the reminder and fan-out populations.
func (s *Service) Deactivate(ctx context.Context, actor auth.UserContext, id string) error {
	if !auth.AtLeast(actor.Role, auth.RoleAdmin) {
		return ErrForbidden
	}
	return s.store.Deactivate(ctx, id)
}

type DepartmentInput struct {
	Name        string
	Description *string
}

func (s *Service) CreateDepartment(ctx context.Context, in DepartmentInput) (Department, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Department{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return s.store.CreateDepartment(ctx, Department{Name: strings.TrimSpace(in.Name), Description: in.Description})
}

func (s *Service) UpdateDepartment(ctx context.Context, id string, in DepartmentInput) (Department, error) {
	department, err := s.store.GetDepartment(ctx, id)
	if err != nil {
		return Department{}, err
	}
	if strings.TrimSpace(in.Name) != "" {
		department.Name = strings.TrimSpace(in.Name)
	}
	if in.Description != nil {
		department.Description = in.Description
	}
	return s.store.UpdateDepartment(ctx, department)
}

func (s *Service) DeleteDepartment(ctx context.Context, id string) error {
	return s.store.DeleteDepartment(ctx, id)
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.store.ListDepartments(ctx)
}

func (s *Service) CreateUnit(ctx context.Context, departmentID, name string) (Unit, error) {
	if _, err := s.store.GetDepartment(ctx, departmentID); err != nil {
		return Unit{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Unit{}, fmt.Errorf("%w: unit name is required", ErrInvalidInput)
	}
	return s.store.CreateUnit(ctx, Unit{DepartmentID: departmentID, Name: strings.TrimSpace(name)})
}

func (s *Service) ListUnits(ctx context.Context, departmentID string) ([]Unit, error) {
	return s.store.ListUnits(ctx, departmentID)
}
