package deadlines

import "context"

type ListFilters struct {
	Type         string
	DepartmentID string
	UnitID       string
	ActiveOnly   bool
}

type StoreAPI interface {
	CreateDeadline(ctx context.Context, d Deadline) (Deadline, error)
	GetDeadline(ctx context.Context, id string) (Deadline, error)
	UpdateDeadline(ctx context.Context, d Deadline) (Deadline, error)
	DeleteDeadline(ctx context.Context, id string) error
	ListDeadlines(ctx context.Context, filters ListFilters) ([]Deadline, error)
	ActiveRules(ctx context.Context, reportType string) ([]Deadline, error)
	UserScope(ctx context.Context, userID string) (departmentID, unitID *string, err error)
}
