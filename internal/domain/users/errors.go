package users

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("access denied")
)
