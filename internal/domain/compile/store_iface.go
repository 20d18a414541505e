package compile

import (
	"context"
	"time"
)

type ListFilters struct {
	UserID       string
	DepartmentID string
	Type         string
	Status       string
	Limit        int
	Offset       int
}

type StoreAPI interface {
	// DailySources returns one owner's compile-eligible daily reports
	// in [start, end], date ascending. Empty userID returns the whole
	// population for fan-out grouping.
	DailySources(ctx context.Context, userID string, start, end time.Time) ([]SourceReport, error)
	// WeeklyCompiledInRange returns weekly compilations fully contained
	// in [start, end]. statusFilter narrows by status when non-empty.
	WeeklyCompiledInRange(ctx context.Context, userID string, start, end time.Time, statusFilter string) ([]CompiledReport, error)
	// MonthlyCompiledInYear returns monthly compilations whose range
	// starts inside year, restricted to months when non-empty.
	MonthlyCompiledInYear(ctx context.Context, userID string, year int, months []int) ([]CompiledReport, error)
	CreateCompiled(ctx context.Context, compiled CompiledReport) (CompiledReport, error)
	GetCompiled(ctx context.Context, id string) (CompiledReport, error)
	ListCompiled(ctx context.Context, filters ListFilters) ([]CompiledReport, int, error)
	UserDepartmentID(ctx context.Context, userID string) (string, error)
}
