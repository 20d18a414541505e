package deadlines

import "time"

// Deadline is a submission rule. Scope is encoded by which of
// DepartmentID and UnitID are set: both nil means organisation-wide.
type Deadline struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	DepartmentID *string    `json:"departmentId,omitempty"`
	UnitID       *string    `json:"unitId,omitempty"`
	DeadlineTime string     `json:"deadlineTime"`
	DayOfWeek    *int       `json:"dayOfWeek,omitempty"`
	DayOfMonth   *int       `json:"dayOfMonth,omitempty"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

const (
	TypeDaily   = "daily"
	TypeWeekly  = "weekly"
	TypeMonthly = "monthly"
)

func ValidType(t string) bool {
	return t == TypeDaily || t == TypeWeekly || t == TypeMonthly
}
