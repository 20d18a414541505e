package users

import "time"

// User is the directory record. The password hash never leaves the
// store layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	DepartmentID *string   `json:"departmentId,omitempty"`
	UnitID       *string   `json:"unitId,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Units       []Unit    `json:"units"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Unit struct {
	ID           string    `json:"id"`
	DepartmentID string    `json:"departmentId"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ListFilters struct {
	DepartmentID string
	Role         string
	Search       string
	Limit        int
	Offset       int
}
